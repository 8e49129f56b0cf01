// Package match maps canonical game feature names to raw source features
// through per-dataset name patterns.
package match

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/paulmach/orb/geojson"

	"geoquiz/pkg/geo"
)

// NameFields are the source properties a feature is indexed under.
var NameFields = []string{"name", "name_en", "name_alt"}

// Pattern maps one game feature name to the source names it is built from.
type Pattern struct {
	Name    string
	Sources []string
	// ExactOnly disables the prefix/suffix modes so e.g. "Rio Grande" does
	// not pull in "Río Grande de Matagalpa".
	ExactOnly bool
}

// Index is a name lookup table over one source dataset.
type Index struct {
	Label  string
	byName map[string][]*geojson.Feature
	names  []string // sorted, for deterministic substring scans
}

// NewIndex indexes every feature under each populated name field.
// When no fields are given NameFields is used.
func NewIndex(label string, features []*geojson.Feature, fields ...string) *Index {
	if len(fields) == 0 {
		fields = NameFields
	}
	idx := &Index{
		Label:  label,
		byName: make(map[string][]*geojson.Feature),
	}
	for _, f := range features {
		if f == nil {
			continue
		}
		added := make(map[string]bool, len(fields))
		for _, field := range fields {
			name := geo.StringProp(f.Properties, field, strings.ToUpper(field))
			if name == "" || added[name] {
				continue
			}
			added[name] = true
			idx.byName[name] = append(idx.byName[name], f)
		}
	}
	idx.names = make([]string, 0, len(idx.byName))
	for name := range idx.byName {
		idx.names = append(idx.names, name)
	}
	sort.Strings(idx.names)
	return idx
}

// Len returns the number of distinct indexed names.
func (idx *Index) Len() int {
	return len(idx.names)
}

// Lookup returns the features indexed under exactly this name.
func (idx *Index) Lookup(name string) []*geojson.Feature {
	return idx.byName[name]
}

// Matches reports whether an indexed name satisfies a pattern: equality,
// "pattern " prefix or " pattern" suffix. Only equality counts when exact is set.
func Matches(indexed, pattern string, exact bool) bool {
	if indexed == pattern {
		return true
	}
	if exact {
		return false
	}
	return strings.HasPrefix(indexed, pattern+" ") || strings.HasSuffix(indexed, " "+pattern)
}

// Matcher resolves patterns against one or more indexes.
type Matcher struct {
	Indexes []*Index
	Logger  *slog.Logger
}

// NewMatcher creates a matcher over the given indexes.
func NewMatcher(logger *slog.Logger, indexes ...*Index) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{Indexes: indexes, Logger: logger}
}

// Match returns the union of features matched by any of the pattern's
// source names across all indexes, deduplicated by identity and ordered by
// first appearance. A warning is logged when nothing matches.
func (m *Matcher) Match(p Pattern) []*geojson.Feature {
	seen := make(map[*geojson.Feature]bool)
	var out []*geojson.Feature
	add := func(fs []*geojson.Feature) {
		for _, f := range fs {
			if seen[f] {
				continue
			}
			seen[f] = true
			out = append(out, f)
		}
	}

	for _, idx := range m.Indexes {
		for _, src := range p.Sources {
			add(idx.Lookup(src))
			if p.ExactOnly {
				continue
			}
			for _, name := range idx.names {
				if name != src && Matches(name, src, false) {
					add(idx.byName[name])
				}
			}
		}
	}

	if len(out) == 0 {
		m.logger().Warn("No source features matched", "feature", p.Name, "patterns", p.Sources)
	}
	return out
}

func (m *Matcher) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.Default()
	}
	return m.Logger
}
