package pipeline

import (
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geoquiz/pkg/geo"
	"geoquiz/pkg/match"
)

// SelectMarine picks one feature per allow-listed name, preferring the
// coarse source and falling back to the fine one. Every polygon carrying
// the name is merged into that feature.
func SelectMarine(coarse, fine *geojson.FeatureCollection, names []string, logger *slog.Logger) (*geojson.FeatureCollection, Report) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("dataset", "marine")

	coarseIdx := match.NewIndex("coarse", features(coarse))
	fineIdx := match.NewIndex("fine", features(fine))

	fc := geojson.NewFeatureCollection()
	report := Report{Dataset: "marine", Declared: len(names)}
	var fromCoarse, fromFine int

	for _, name := range names {
		found, res := coarseIdx.Lookup(name), "coarse"
		if len(found) == 0 {
			found, res = fineIdx.Lookup(name), "fine"
		}

		var polys []orb.Polygon
		for _, f := range found {
			polys = append(polys, geo.Polygons(f.Geometry)...)
		}
		g := geo.PolygonsGeometry(geo.DedupePolygons(polys))
		if g == nil {
			report.Missing = append(report.Missing, name)
			continue
		}

		f := geojson.NewFeature(g)
		f.Properties["name"] = name
		fc.Append(f)
		report.Matched++
		if res == "coarse" {
			fromCoarse++
		} else {
			fromFine++
		}
		logger.Debug("Selected water body", "name", name, "source", res, "polygons", len(polys))
	}

	logger.Info("Marine selection", "coarse", fromCoarse, "fine", fromFine)
	return fc, report
}

func features(fc *geojson.FeatureCollection) []*geojson.Feature {
	if fc == nil {
		return nil
	}
	return fc.Features
}
