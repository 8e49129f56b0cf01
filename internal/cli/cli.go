// Package cli sets up the shared runtime of the pipeline commands: flags,
// configuration, logging, the optional source cache and the fetch client.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"geoquiz/pkg/cache"
	"geoquiz/pkg/config"
	"geoquiz/pkg/db"
	"geoquiz/pkg/logging"
	"geoquiz/pkg/pipeline"
	"geoquiz/pkg/request"
	"geoquiz/pkg/source"
	"geoquiz/pkg/tracker"
	"geoquiz/pkg/version"
)

// Env is what a command runs against.
type Env struct {
	Config *config.Config
	Logger *slog.Logger
	Loader *source.Loader
}

// RunFunc performs one pipeline command. The report, when non-nil, is
// logged after the run.
type RunFunc func(ctx context.Context, env *Env) (*pipeline.Report, error)

// Main runs a command with the process arguments and exits with its status.
func Main(name string, run RunFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Execute(ctx, name, os.Args[1:], os.Stdout, os.Stderr, run)
	stop()
	os.Exit(code)
}

// Execute parses args, brings up the runtime and runs the command. It
// returns the process exit code.
func Execute(ctx context.Context, name string, args []string, stdout, stderr io.Writer, run RunFunc) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", config.DefaultPath, "Path to the pipeline config")
	initConfig := fs.Bool("init-config", false, "Generate default config file and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *initConfig {
		if err := config.GenerateDefault(*configPath); err != nil {
			fmt.Fprintf(stderr, "Failed to generate config: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Config file generated: %s\n", *configPath)
		return 0
	}

	if err := execute(ctx, name, *configPath, stdout, run); err != nil {
		fmt.Fprintf(stderr, "CRITICAL ERROR: %s failed: %v\n", name, err)
		return 1
	}
	return 0
}

func execute(ctx context.Context, name, configPath string, stdout io.Writer, run RunFunc) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	collector, cleanupLogs, err := logging.Init(cfg.Log, stdout)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()

	logger := slog.Default().With("run", uuid.NewString())
	logger.Info("Pipeline started", "command", name, "version", version.Version, "config", configPath)
	start := time.Now()

	var c cache.Cacher
	if cfg.Cache.Enabled {
		d, err := db.Init(cfg.Cache.Path)
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		defer d.Close()

		ttl := cfg.Cache.TTL.Std()
		if n, err := d.PruneCache(ttl); err != nil {
			logger.Warn("Cache prune failed", "error", err)
		} else if n > 0 {
			logger.Info("Pruned cache", "entries", n)
		}
		c = cache.NewSQLiteCache(d, ttl)
	}

	tr := tracker.New()
	client := request.New(request.Options{
		Retries:   cfg.Request.Retries,
		Delay:     cfg.Request.Delay.Std(),
		Timeout:   cfg.Request.Timeout.Std(),
		UserAgent: cfg.Request.UserAgent,
		Cache:     c,
		Tracker:   tr,
		Logger:    logger,
	})

	report, err := run(ctx, &Env{
		Config: cfg,
		Logger: logger,
		Loader: source.NewLoader(client, logger),
	})
	tr.Log(logger)
	if err != nil {
		return err
	}
	if report != nil {
		report.Log(logger)
	}

	logger.Info("Pipeline finished", "command", name, "elapsed", time.Since(start).Round(time.Millisecond))
	if s := collector.Summary(); s != "" {
		fmt.Fprint(stdout, s)
	}
	return nil
}
