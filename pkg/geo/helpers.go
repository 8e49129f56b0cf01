package geo

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// StringProp returns the first populated string among the given property keys.
// Natural Earth uses "-99" for missing values, which counts as empty.
func StringProp(props geojson.Properties, keys ...string) string {
	for _, key := range keys {
		val, ok := props[key]
		if !ok {
			continue
		}
		var s string
		switch v := val.(type) {
		case string:
			s = v
		case json.Number:
			s = string(v)
		case float64:
			s = fmt.Sprintf("%g", v)
		default:
			continue
		}
		s = strings.TrimSpace(s)
		if s != "" && s != "-99" {
			return s
		}
	}
	return ""
}

// Name returns the "name" property of a feature.
func Name(f *geojson.Feature) string {
	if f == nil {
		return ""
	}
	return StringProp(f.Properties, "name", "NAME")
}

// Mean returns the average of all points of a line. The zero point is
// returned for empty input.
func Mean(ls orb.LineString) orb.Point {
	if len(ls) == 0 {
		return orb.Point{}
	}
	var sx, sy float64
	for _, p := range ls {
		sx += p[0]
		sy += p[1]
	}
	n := float64(len(ls))
	return orb.Point{sx / n, sy / n}
}
