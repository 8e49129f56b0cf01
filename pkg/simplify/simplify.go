// Package simplify reduces the point density of lines and polygon rings
// with Douglas-Peucker, keeping endpoints and closing rings.
package simplify

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// Minimum sizes below which geometries are returned untouched.
const (
	minLinePoints = 2
	minRingPoints = 4
)

// LineString simplifies a line at the given tolerance (coordinate units).
// Lines of two points or fewer are returned unchanged. The input is not modified.
func LineString(ls orb.LineString, tolerance float64) orb.LineString {
	if len(ls) <= minLinePoints || tolerance <= 0 {
		return ls
	}

	// orb simplifies in place
	out, ok := simplify.DouglasPeucker(tolerance).Simplify(ls.Clone()).(orb.LineString)
	if !ok || len(out) < minLinePoints {
		return ls
	}
	return out
}

// Ring simplifies a polygon ring and guarantees the result is closed.
// Rings of four points or fewer are only closed; a ring that would collapse
// below four points keeps its input.
func Ring(r orb.Ring, tolerance float64) orb.Ring {
	if len(r) <= minRingPoints {
		return Close(r)
	}

	out := orb.Ring(LineString(orb.LineString(r), tolerance))
	out = Close(out)
	if len(out) < minRingPoints {
		return Close(r)
	}
	return out
}

// Close returns the ring with a copy of its first point appended when it is
// open. Open rings are copied so the input's backing array is never shared.
func Close(r orb.Ring) orb.Ring {
	if len(r) == 0 || r[0].Equal(r[len(r)-1]) {
		return r
	}
	out := make(orb.Ring, len(r), len(r)+1)
	copy(out, r)
	return append(out, r[0])
}

// Polygon simplifies every ring of a polygon.
func Polygon(p orb.Polygon, tolerance float64) orb.Polygon {
	out := make(orb.Polygon, 0, len(p))
	for _, r := range p {
		out = append(out, Ring(r, tolerance))
	}
	return out
}

// MultiPolygon simplifies every polygon.
func MultiPolygon(mp orb.MultiPolygon, tolerance float64) orb.MultiPolygon {
	out := make(orb.MultiPolygon, 0, len(mp))
	for _, p := range mp {
		out = append(out, Polygon(p, tolerance))
	}
	return out
}

// MultiLineString simplifies every line, dropping lines left with fewer than two points.
func MultiLineString(mls orb.MultiLineString, tolerance float64) orb.MultiLineString {
	out := make(orb.MultiLineString, 0, len(mls))
	for _, ls := range mls {
		s := LineString(ls, tolerance)
		if len(s) < minLinePoints {
			continue
		}
		out = append(out, s)
	}
	return out
}
