package source

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ReadShapefile converts a shapefile and its .dbf attributes into GeoJSON.
// Attribute keys are lower-cased; Natural Earth ships both NAME and name
// spellings depending on the release.
func ReadShapefile(path string) (*geojson.FeatureCollection, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open shapefile: %w", err)
	}
	defer r.Close()

	fields := r.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = strings.ToLower(strings.TrimRight(f.String(), "\x00 "))
	}

	fc := geojson.NewFeatureCollection()
	for r.Next() {
		n, s := r.Shape()

		var g orb.Geometry
		switch v := s.(type) {
		case *shp.Null:
			continue
		case *shp.Point:
			g = orb.Point{v.X, v.Y}
		case *shp.PolyLine:
			g = polyLine(v)
		case *shp.Polygon:
			g = polygon(v)
		default:
			slog.Warn("Skipping unsupported shape type", "path", path, "type", fmt.Sprintf("%T", s))
			continue
		}

		f := geojson.NewFeature(g)
		for i, name := range names {
			f.Properties[name] = strings.TrimSpace(strings.Trim(r.ReadAttribute(n, i), "\x00"))
		}
		fc.Append(f)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shapes: %w", err)
	}
	return fc, nil
}

func parts(numParts int32, numPoints int32, starts []int32, pts []shp.Point) [][]orb.Point {
	out := make([][]orb.Point, 0, numParts)
	for i := 0; i < int(numParts); i++ {
		start, end := starts[i], numPoints
		if i < int(numParts)-1 {
			end = starts[i+1]
		}
		part := make([]orb.Point, 0, end-start)
		for j := start; j < end; j++ {
			part = append(part, orb.Point{pts[j].X, pts[j].Y})
		}
		out = append(out, part)
	}
	return out
}

func polyLine(s *shp.PolyLine) orb.MultiLineString {
	var ml orb.MultiLineString
	for _, p := range parts(s.NumParts, s.NumPoints, s.Parts, s.Points) {
		ml = append(ml, orb.LineString(p))
	}
	return ml
}

// polygon groups shapefile rings into polygons: clockwise rings are outer
// boundaries, counter-clockwise rings are holes of the preceding outer ring.
func polygon(s *shp.Polygon) orb.MultiPolygon {
	var mp orb.MultiPolygon
	for _, p := range parts(s.NumParts, s.NumPoints, s.Parts, s.Points) {
		ring := orb.Ring(p)
		if ring.Orientation() == orb.CCW && len(mp) > 0 {
			mp[len(mp)-1] = append(mp[len(mp)-1], ring)
			continue
		}
		mp = append(mp, orb.Polygon{ring})
	}
	return mp
}
