package cli

import (
	"context"

	"geoquiz/pkg/pipeline"
)

// BuildRivers writes the simplified rivers collection.
func BuildRivers(ctx context.Context, env *Env) (*pipeline.Report, error) {
	cfg := env.Config.Rivers
	fc, report, err := pipeline.Rivers(ctx, env.Loader, cfg, env.Logger)
	if err != nil {
		return nil, err
	}
	if err := pipeline.WriteJSON(cfg.Output, fc); err != nil {
		return nil, err
	}
	return &report, nil
}

// BuildLakes writes the simplified lakes collection.
func BuildLakes(ctx context.Context, env *Env) (*pipeline.Report, error) {
	cfg := env.Config.Lakes
	fc, report, err := pipeline.Lakes(ctx, env.Loader, cfg, env.Logger)
	if err != nil {
		return nil, err
	}
	if err := pipeline.WriteJSON(cfg.Output, fc); err != nil {
		return nil, err
	}
	return &report, nil
}

// MergeMarine writes the combined countries, land and marine topology.
func MergeMarine(ctx context.Context, env *Env) (*pipeline.Report, error) {
	cfg := env.Config.Marine
	topo, report, err := pipeline.Marine(ctx, env.Loader, cfg, env.Logger)
	if err != nil {
		return nil, err
	}
	if err := pipeline.WriteJSON(cfg.Output, topo); err != nil {
		return nil, err
	}
	return &report, nil
}

// FixCountries rewrites the countries topology in place unless an output
// path is configured.
func FixCountries(ctx context.Context, env *Env) (*pipeline.Report, error) {
	cfg := env.Config.Countries
	topo, err := pipeline.Countries(ctx, env.Loader, cfg, env.Logger)
	if err != nil {
		return nil, err
	}
	out := cfg.Output
	if out == "" {
		out = cfg.Input
	}
	return nil, pipeline.WriteJSON(out, topo)
}
