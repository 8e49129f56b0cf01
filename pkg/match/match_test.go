package match

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func feature(props map[string]interface{}) *geojson.Feature {
	f := geojson.NewFeature(orb.LineString{{0, 0}, {1, 1}})
	for k, v := range props {
		f.Properties[k] = v
	}
	return f
}

func TestMatches(t *testing.T) {
	tests := []struct {
		indexed, pattern string
		exact            bool
		want             bool
	}{
		{"Aral Sea", "Aral Sea", false, true},
		{"North Aral Sea", "Aral Sea", false, true},
		{"Aral Sea North", "Aral Sea", false, true},
		{"Aral Seaside", "Aral Sea", false, false},
		{"Caral Sea", "Aral Sea", false, false},
		{"North Aral Sea", "Aral Sea", true, false},
		{"Rio Grande", "Rio Grande", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.indexed+"/"+tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.indexed, tt.pattern, tt.exact))
		})
	}
}

func TestMatcher_ExactOnlyPrecision(t *testing.T) {
	rioGrande := feature(map[string]interface{}{"name": "Rio Grande"})
	matagalpa := feature(map[string]interface{}{"name": "Río Grande de Matagalpa"})
	ricoGrande := feature(map[string]interface{}{"name": "Rio Grande de Santiago"})

	idx := NewIndex("rivers", []*geojson.Feature{rioGrande, matagalpa, ricoGrande})
	m := NewMatcher(quietLogger(), idx)

	got := m.Match(Pattern{Name: "Rio Grande", Sources: []string{"Rio Grande"}, ExactOnly: true})
	require.Len(t, got, 1)
	assert.Same(t, rioGrande, got[0])

	// Without the flag the prefix mode picks up the longer name.
	loose := m.Match(Pattern{Name: "Rio Grande", Sources: []string{"Rio Grande"}})
	assert.Len(t, loose, 2)
	assert.Contains(t, loose, ricoGrande)
	assert.NotContains(t, loose, matagalpa)
}

func TestMatcher_SuffixMode(t *testing.T) {
	north := feature(map[string]interface{}{"name": "North Aral Sea"})
	idx := NewIndex("lakes", []*geojson.Feature{north})
	m := NewMatcher(quietLogger(), idx)

	got := m.Match(Pattern{Name: "Aral Sea", Sources: []string{"Aral Sea"}})
	require.Len(t, got, 1)
	assert.Same(t, north, got[0])
}

func TestMatcher_AllNameFields(t *testing.T) {
	f1 := feature(map[string]interface{}{"name": "Huang", "name_en": "Yellow River"})
	f2 := feature(map[string]interface{}{"name": "Hwang Ho", "name_alt": "Yellow River"})
	f3 := feature(map[string]interface{}{"NAME": "Yellow River"})

	idx := NewIndex("rivers", []*geojson.Feature{f1, f2, f3})
	m := NewMatcher(quietLogger(), idx)

	got := m.Match(Pattern{Name: "Yellow", Sources: []string{"Yellow River"}})
	assert.Equal(t, []*geojson.Feature{f1, f2, f3}, got)
}

func TestMatcher_DeduplicatesByIdentity(t *testing.T) {
	// Same feature reachable through two names, two patterns and two indexes.
	f := feature(map[string]interface{}{"name": "Volga", "name_en": "Volga River"})
	other := feature(map[string]interface{}{"name": "Volga"})

	a := NewIndex("base", []*geojson.Feature{f, other})
	b := NewIndex("scale_rank", []*geojson.Feature{f})
	m := NewMatcher(quietLogger(), a, b)

	got := m.Match(Pattern{Name: "Volga", Sources: []string{"Volga", "Volga River"}})
	assert.Equal(t, []*geojson.Feature{f, other}, got)
}

func TestMatcher_NamesKeptApart(t *testing.T) {
	// Two distinct features sharing a name both match.
	a := feature(map[string]interface{}{"name": "Negro"})
	b := feature(map[string]interface{}{"name": "Negro"})
	idx := NewIndex("rivers", []*geojson.Feature{a, b})

	got := NewMatcher(quietLogger(), idx).Match(Pattern{Name: "Rio Negro", Sources: []string{"Negro"}})
	assert.Len(t, got, 2)
}

func TestMatcher_ZeroMatchWarns(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	idx := NewIndex("lakes", []*geojson.Feature{feature(map[string]interface{}{"name": "Lake Victoria"})})
	got := NewMatcher(logger, idx).Match(Pattern{Name: "Lake Titicaca", Sources: []string{"Titicaca"}})

	assert.Empty(t, got)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "Lake Titicaca")
}

func TestNewIndex_SkipsMissingValues(t *testing.T) {
	f := feature(map[string]interface{}{"name": "  Ob ", "name_en": "-99", "name_alt": ""})
	idx := NewIndex("rivers", []*geojson.Feature{f, nil})

	assert.Equal(t, 1, idx.Len())
	assert.Len(t, idx.Lookup("Ob"), 1)
	assert.Empty(t, idx.Lookup("-99"))
}
