package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path"

	"github.com/paulmach/orb/geojson"

	"geoquiz/pkg/config"
	"geoquiz/pkg/datasets"
	"geoquiz/pkg/match"
	"geoquiz/pkg/relocate"
	"geoquiz/pkg/source"
	"geoquiz/pkg/topology"
)

// loadIndexes fetches every source in order and indexes it by name. Any
// failure is fatal for the run.
func loadIndexes(ctx context.Context, loader *source.Loader, uris []string, logger *slog.Logger) ([]*match.Index, error) {
	if len(uris) == 0 {
		return nil, fmt.Errorf("no sources configured")
	}
	indexes := make([]*match.Index, 0, len(uris))
	for _, uri := range uris {
		fc, err := loader.FeatureCollection(ctx, uri)
		if err != nil {
			return nil, err
		}
		idx := match.NewIndex(path.Base(uri), fc.Features)
		logger.Info("Indexed source", "source", idx.Label, "features", len(fc.Features), "names", idx.Len())
		indexes = append(indexes, idx)
	}
	return indexes, nil
}

// Rivers builds rivers.json content.
func Rivers(ctx context.Context, loader *source.Loader, cfg config.LinesConfig, logger *slog.Logger) (*geojson.FeatureCollection, Report, error) {
	if logger == nil {
		logger = slog.Default()
	}
	indexes, err := loadIndexes(ctx, loader, cfg.Sources, logger)
	if err != nil {
		return nil, Report{}, err
	}
	fc, report := BuildRivers(indexes, datasets.RiverPatterns(), datasets.RiverRules(), cfg.Tolerance, logger)
	return fc, report, nil
}

// Lakes builds lakes.json content.
func Lakes(ctx context.Context, loader *source.Loader, cfg config.LinesConfig, logger *slog.Logger) (*geojson.FeatureCollection, Report, error) {
	if logger == nil {
		logger = slog.Default()
	}
	indexes, err := loadIndexes(ctx, loader, cfg.Sources, logger)
	if err != nil {
		return nil, Report{}, err
	}
	fc, report := BuildLakes(indexes, datasets.LakePatterns(), datasets.LakeRules(), cfg.Tolerance, logger)
	return fc, report, nil
}

// Marine merges the countries and land objects of the countries topology
// with the selected water bodies into one topology.
func Marine(ctx context.Context, loader *source.Loader, cfg config.MarineConfig, logger *slog.Logger) (*topology.Topology, Report, error) {
	if logger == nil {
		logger = slog.Default()
	}

	base, err := loader.Topology(ctx, cfg.Countries)
	if err != nil {
		return nil, Report{}, err
	}
	countries, err := base.FeatureCollection("countries")
	if err != nil {
		return nil, Report{}, fmt.Errorf("%s: %w", cfg.Countries, err)
	}
	land, err := base.FeatureCollection("land")
	if err != nil {
		return nil, Report{}, fmt.Errorf("%s: %w", cfg.Countries, err)
	}

	coarse, err := loader.Object(ctx, cfg.Coarse, cfg.CoarseObject)
	if err != nil {
		return nil, Report{}, err
	}
	fine, err := loader.Object(ctx, cfg.Fine, cfg.FineObject)
	if err != nil {
		return nil, Report{}, err
	}

	marine, report := SelectMarine(coarse, fine, datasets.MarineNames(), logger)

	topo, err := topology.Encode([]topology.Layer{
		{Name: "countries", Collection: countries},
		{Name: "land", Collection: land},
		{Name: "marine", Collection: marine},
	}, cfg.Quantization)
	if err != nil {
		return nil, Report{}, err
	}
	logger.Info("Encoded topology", "objects", len(topo.Objects), "arcs", len(topo.Arcs), "quantization", cfg.Quantization)
	return topo, report, nil
}

// Countries applies the country corrections to the input topology.
func Countries(ctx context.Context, loader *source.Loader, cfg config.CountriesConfig, logger *slog.Logger) (*topology.Topology, error) {
	if logger == nil {
		logger = slog.Default()
	}
	orig, err := loader.Topology(ctx, cfg.Input)
	if err != nil {
		return nil, err
	}
	return relocate.Rewrite(logger, orig, datasets.CountryFixes(), cfg.Quantization)
}
