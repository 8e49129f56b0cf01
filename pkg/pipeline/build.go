package pipeline

import (
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geoquiz/pkg/disambig"
	"geoquiz/pkg/geo"
	"geoquiz/pkg/match"
	"geoquiz/pkg/simplify"
)

// shape describes how one kind of coordinate sequence flows through a build.
type shape[T any] struct {
	extract  func(orb.Geometry) []T
	filter   func(*slog.Logger, string, []T, disambig.Rule) []T
	dedupe   func([]T) []T
	simplify func(T, float64) (T, bool)
	assemble func([]T) orb.Geometry
}

var lineShape = shape[orb.LineString]{
	extract: geo.Lines,
	filter:  disambig.Lines,
	dedupe:  geo.DedupeLines,
	simplify: func(ls orb.LineString, tol float64) (orb.LineString, bool) {
		out := simplify.LineString(ls, tol)
		return out, len(out) >= 2
	},
	assemble: geo.LinesGeometry,
}

var polygonShape = shape[orb.Polygon]{
	extract: geo.Polygons,
	filter:  disambig.Polygons,
	dedupe:  geo.DedupePolygons,
	simplify: func(p orb.Polygon, tol float64) (orb.Polygon, bool) {
		out := simplify.Polygon(p, tol)
		return out, len(out) > 0 && len(out[0]) >= 4
	},
	assemble: geo.PolygonsGeometry,
}

// build emits one feature per declared pattern, in declaration order.
func build[T any](s shape[T], dataset string, indexes []*match.Index, patterns []match.Pattern,
	rules map[string]disambig.Rule, tolerance float64, logger *slog.Logger,
) (*geojson.FeatureCollection, Report) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("dataset", dataset)
	matcher := match.NewMatcher(logger, indexes...)

	fc := geojson.NewFeatureCollection()
	report := Report{Dataset: dataset, Declared: len(patterns)}

	for _, p := range patterns {
		var parts []T
		for _, f := range matcher.Match(p) {
			parts = append(parts, s.extract(f.Geometry)...)
		}
		if len(parts) == 0 {
			report.Missing = append(report.Missing, p.Name)
			continue
		}

		parts = s.filter(logger, p.Name, parts, rules[p.Name])
		parts = s.dedupe(parts)

		kept := make([]T, 0, len(parts))
		for _, part := range parts {
			if out, ok := s.simplify(part, tolerance); ok {
				kept = append(kept, out)
			}
		}

		g := s.assemble(kept)
		if g == nil {
			report.Missing = append(report.Missing, p.Name)
			continue
		}
		f := geojson.NewFeature(g)
		f.Properties["name"] = p.Name
		fc.Append(f)
		report.Matched++
		logger.Debug("Built feature", "feature", p.Name, "parts", len(kept), "type", g.GeoJSONType())
	}
	return fc, report
}

// BuildRivers assembles the rivers collection from indexed sources.
func BuildRivers(indexes []*match.Index, patterns []match.Pattern, rules map[string]disambig.Rule,
	tolerance float64, logger *slog.Logger,
) (*geojson.FeatureCollection, Report) {
	return build(lineShape, "rivers", indexes, patterns, rules, tolerance, logger)
}

// BuildLakes assembles the lakes collection from indexed sources. Every
// emitted ring is closed.
func BuildLakes(indexes []*match.Index, patterns []match.Pattern, rules map[string]disambig.Rule,
	tolerance float64, logger *slog.Logger,
) (*geojson.FeatureCollection, Report) {
	return build(polygonShape, "lakes", indexes, patterns, rules, tolerance, logger)
}
