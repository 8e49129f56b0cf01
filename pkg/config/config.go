package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no -config flag is given.
const DefaultPath = "configs/pipeline.yaml"

// Config holds the pipeline configuration.
type Config struct {
	Request   RequestConfig   `yaml:"request"`
	Log       LogConfig       `yaml:"log"`
	Cache     CacheConfig     `yaml:"cache"`
	Rivers    LinesConfig     `yaml:"rivers"`
	Lakes     LinesConfig     `yaml:"lakes"`
	Marine    MarineConfig    `yaml:"marine"`
	Countries CountriesConfig `yaml:"countries"`
}

// RequestConfig holds HTTP fetch settings.
type RequestConfig struct {
	Retries   int      `yaml:"retries"`
	Delay     Duration `yaml:"delay"`
	Timeout   Duration `yaml:"timeout"` // per attempt, 0 disables
	UserAgent string   `yaml:"user_agent"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Path  string `yaml:"path"` // empty logs to the console only
	Level string `yaml:"level"`
}

// CacheConfig holds settings for the optional source cache.
type CacheConfig struct {
	Enabled bool     `yaml:"enabled"`
	Path    string   `yaml:"path"`
	TTL     Duration `yaml:"ttl"`
}

// LinesConfig configures a GeoJSON-producing build (rivers, lakes).
type LinesConfig struct {
	Sources   []string `yaml:"sources"`
	Output    string   `yaml:"output"`
	Tolerance float64  `yaml:"tolerance"`
}

// MarineConfig configures the world-marine topology merge.
type MarineConfig struct {
	Countries    string `yaml:"countries"`
	Coarse       string `yaml:"coarse"`
	CoarseObject string `yaml:"coarse_object"` // empty picks the only object
	Fine         string `yaml:"fine"`
	FineObject   string `yaml:"fine_object"`
	Output       string `yaml:"output"`
	Quantization int    `yaml:"quantization"`
}

// CountriesConfig configures the corrective countries rewrite.
type CountriesConfig struct {
	Input        string `yaml:"input"`
	Output       string `yaml:"output"` // defaults to Input
	Quantization int    `yaml:"quantization"`
}

const neBase = "https://raw.githubusercontent.com/nvkelso/natural-earth-vector/master/geojson/"

// DefaultConfig returns the compiled-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Request: RequestConfig{
			Retries: 3,
			Delay:   Duration(2 * time.Second),
			Timeout: Duration(5 * time.Minute),
		},
		Log: LogConfig{
			Level: "INFO",
		},
		Cache: CacheConfig{
			Enabled: false,
			Path:    "data/cache.db",
			TTL:     Duration(Week),
		},
		Rivers: LinesConfig{
			Sources: []string{
				neBase + "ne_10m_rivers_lake_centerlines.geojson",
				neBase + "ne_10m_rivers_lake_centerlines_scale_rank.geojson",
			},
			Output:    "public/data/rivers.json",
			Tolerance: 0.035,
		},
		Lakes: LinesConfig{
			Sources:   []string{neBase + "ne_10m_lakes.geojson"},
			Output:    "public/data/lakes.json",
			Tolerance: 0.04,
		},
		Marine: MarineConfig{
			Countries:    "data/countries-50m.json",
			Coarse:       "data/FinalMarine50m.json",
			Fine:         "data/FinalMarine10m.json",
			Output:       "public/data/world-marine.json",
			Quantization: 10000,
		},
		Countries: CountriesConfig{
			Input:        "public/data/countries-110m.json",
			Quantization: 100000,
		},
	}
}

// Load overlays the YAML file at path onto the defaults. A missing file is
// not an error and nothing is written to disk.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if c.Request.Retries < 1 {
		return fmt.Errorf("request.retries must be at least 1, got %d", c.Request.Retries)
	}
	if c.Marine.Quantization < 2 || c.Countries.Quantization < 2 {
		return fmt.Errorf("quantization must be at least 2")
	}
	if c.Rivers.Tolerance < 0 || c.Lakes.Tolerance < 0 {
		return fmt.Errorf("tolerance must not be negative")
	}
	return nil
}

// Save writes the configuration to path with a short header.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# geoquiz pipeline configuration
# Durations accept ns, us, ms, s, m, h, d (day), w (week).
# Sources may be http(s) URLs or local paths.

`)
	data = append(header, data...)

	reTol := regexp.MustCompile(`(?m)^(\s+)tolerance:`)
	data = reTol.ReplaceAll(data, []byte("${1}# Douglas-Peucker tolerance in degrees\n${1}tolerance:"))
	reQuant := regexp.MustCompile(`(?m)^(\s+)quantization:`)
	data = reQuant.ReplaceAll(data, []byte("${1}# Grid steps per axis; larger keeps more detail\n${1}quantization:"))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateDefault writes the default configuration to path unless a file
// already exists there.
func GenerateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return Save(path, DefaultConfig())
}
