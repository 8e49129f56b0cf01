// Package geo holds coordinate helpers shared by the builds: flattening,
// endpoint deduplication, geometry assembly and property access.
package geo

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Lines flattens a line geometry into its parts. Non-line geometries yield nothing.
func Lines(g orb.Geometry) []orb.LineString {
	switch v := g.(type) {
	case orb.LineString:
		return []orb.LineString{v}
	case orb.MultiLineString:
		return append([]orb.LineString(nil), v...)
	case orb.Collection:
		var out []orb.LineString
		for _, c := range v {
			out = append(out, Lines(c)...)
		}
		return out
	}
	return nil
}

// Polygons flattens an areal geometry into its polygons.
func Polygons(g orb.Geometry) []orb.Polygon {
	switch v := g.(type) {
	case orb.Polygon:
		return []orb.Polygon{v}
	case orb.MultiPolygon:
		return append([]orb.Polygon(nil), v...)
	case orb.Collection:
		var out []orb.Polygon
		for _, c := range v {
			out = append(out, Polygons(c)...)
		}
		return out
	}
	return nil
}

// EndpointKey identifies a coordinate sequence by its first and last point.
func EndpointKey(ls orb.LineString) string {
	if len(ls) == 0 {
		return ""
	}
	a, b := ls[0], ls[len(ls)-1]
	return fmt.Sprintf("%v,%v|%v,%v", a[0], a[1], b[0], b[1])
}

// DedupeLines removes lines whose endpoints match an earlier line.
// Empty lines are dropped.
func DedupeLines(lines []orb.LineString) []orb.LineString {
	seen := make(map[string]bool, len(lines))
	out := make([]orb.LineString, 0, len(lines))
	for _, ls := range lines {
		if len(ls) == 0 {
			continue
		}
		key := EndpointKey(ls)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ls)
	}
	return out
}

// DedupePolygons removes polygons whose outer ring shares its endpoints with
// an earlier polygon's outer ring.
func DedupePolygons(polys []orb.Polygon) []orb.Polygon {
	seen := make(map[string]bool, len(polys))
	out := make([]orb.Polygon, 0, len(polys))
	for _, p := range polys {
		if len(p) == 0 || len(p[0]) == 0 {
			continue
		}
		key := EndpointKey(orb.LineString(p[0]))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

// Outer returns the outer ring of a polygon as a line.
func Outer(p orb.Polygon) orb.LineString {
	if len(p) == 0 {
		return nil
	}
	return orb.LineString(p[0])
}

// LinesGeometry assembles lines into a LineString or MultiLineString.
// It returns nil when there is nothing to emit.
func LinesGeometry(lines []orb.LineString) orb.Geometry {
	switch len(lines) {
	case 0:
		return nil
	case 1:
		return lines[0]
	}
	return orb.MultiLineString(lines)
}

// PolygonsGeometry assembles polygons into a Polygon or MultiPolygon.
// It returns nil when there is nothing to emit.
func PolygonsGeometry(polys []orb.Polygon) orb.Geometry {
	switch len(polys) {
	case 0:
		return nil
	case 1:
		return polys[0]
	}
	return orb.MultiPolygon(polys)
}
