// Package disambig splits same-named source segments into distinct
// real-world features using coarse geographic thresholds.
package disambig

import (
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"geoquiz/pkg/geo"
)

// Rule decides whether a candidate segment belongs to a game feature.
type Rule func(line orb.LineString) bool

// Filter keeps the items whose coordinates satisfy keep. A nil rule keeps
// everything. If the rule rejects every candidate the unfiltered input is
// returned and a warning is logged, so a stale threshold never drops a
// feature entirely.
func Filter[T any](logger *slog.Logger, name string, items []T, coords func(T) orb.LineString, keep Rule) []T {
	if keep == nil || len(items) == 0 {
		return items
	}
	if logger == nil {
		logger = slog.Default()
	}

	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(coords(it)) {
			out = append(out, it)
		}
	}

	if len(out) == 0 {
		logger.Warn("Disambiguation rejected every candidate, keeping all",
			"feature", name, "candidates", len(items))
		return items
	}
	if dropped := len(items) - len(out); dropped > 0 {
		logger.Debug("Disambiguated", "feature", name, "kept", len(out), "dropped", dropped)
	}
	return out
}

// Lines filters plain line candidates.
func Lines(logger *slog.Logger, name string, lines []orb.LineString, keep Rule) []orb.LineString {
	return Filter(logger, name, lines, func(ls orb.LineString) orb.LineString { return ls }, keep)
}

// Polygons filters polygon candidates by their outer ring.
func Polygons(logger *slog.Logger, name string, polys []orb.Polygon, keep Rule) []orb.Polygon {
	return Filter(logger, name, polys, geo.Outer, keep)
}

// MeanLatAbove keeps segments whose average latitude exceeds lat.
func MeanLatAbove(lat float64) Rule {
	return func(ls orb.LineString) bool { return len(ls) > 0 && geo.Mean(ls).Lat() > lat }
}

// MeanLatBelow keeps segments whose average latitude is below lat.
func MeanLatBelow(lat float64) Rule {
	return func(ls orb.LineString) bool { return len(ls) > 0 && geo.Mean(ls).Lat() < lat }
}

// MeanLonAbove keeps segments whose average longitude exceeds lon.
func MeanLonAbove(lon float64) Rule {
	return func(ls orb.LineString) bool { return len(ls) > 0 && geo.Mean(ls).Lon() > lon }
}

// MeanLonBelow keeps segments whose average longitude is below lon.
func MeanLonBelow(lon float64) Rule {
	return func(ls orb.LineString) bool { return len(ls) > 0 && geo.Mean(ls).Lon() < lon }
}

// Within keeps segments whose bounding box lies inside b.
func Within(b orb.Bound) Rule {
	return func(ls orb.LineString) bool {
		if len(ls) == 0 {
			return false
		}
		sb := ls.Bound()
		return b.Contains(sb.Min) && b.Contains(sb.Max)
	}
}

// MaxLonBelow keeps segments lying entirely west of lon.
func MaxLonBelow(lon float64) Rule {
	return func(ls orb.LineString) bool { return len(ls) > 0 && ls.Bound().Max.Lon() < lon }
}

// MinLatAbove keeps segments lying entirely north of lat.
func MinLatAbove(lat float64) Rule {
	return func(ls orb.LineString) bool { return len(ls) > 0 && ls.Bound().Min.Lat() > lat }
}

// CentroidWithin keeps segments whose planar centroid falls inside b. Closed
// segments use the area centroid, open ones the length-weighted centroid.
func CentroidWithin(b orb.Bound) Rule {
	return func(ls orb.LineString) bool {
		if len(ls) == 0 {
			return false
		}
		var g orb.Geometry = ls
		if len(ls) >= 4 && ls[0].Equal(ls[len(ls)-1]) {
			g = orb.Polygon{orb.Ring(ls)}
		}
		c, _ := planar.CentroidArea(g)
		return b.Contains(c)
	}
}

// All combines rules; a segment must satisfy every one.
func All(rules ...Rule) Rule {
	return func(ls orb.LineString) bool {
		for _, r := range rules {
			if !r(ls) {
				return false
			}
		}
		return true
	}
}

// Not inverts a rule.
func Not(r Rule) Rule {
	return func(ls orb.LineString) bool { return !r(ls) }
}
