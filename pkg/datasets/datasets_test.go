package datasets

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoquiz/pkg/match"
	"geoquiz/pkg/relocate"
)

func checkPatterns(t *testing.T, ps []match.Pattern, rules map[string]bool) {
	t.Helper()
	seen := map[string]bool{}
	for _, p := range ps {
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Sources, p.Name)
		assert.False(t, seen[p.Name], "duplicate game feature %q", p.Name)
		seen[p.Name] = true
	}
	for name := range rules {
		assert.True(t, seen[name], "rule for undeclared feature %q", name)
	}
}

func keys[V any](m map[string]V) map[string]bool {
	out := map[string]bool{}
	for k := range m {
		out[k] = true
	}
	return out
}

func TestRiverPatterns(t *testing.T) {
	ps := RiverPatterns()
	checkPatterns(t, ps, keys(RiverRules()))

	var rioGrande match.Pattern
	for _, p := range ps {
		if p.Name == "Rio Grande" {
			rioGrande = p
		}
	}
	assert.True(t, rioGrande.ExactOnly)

	// callers get their own copy
	ps[0].Sources[0] = "changed"
	assert.NotEqual(t, "changed", RiverPatterns()[0].Sources[0])
}

func TestRiverRules(t *testing.T) {
	rules := RiverRules()

	amazonNegro := orb.LineString{{-67.1, 1.9}, {-64.8, -0.5}, {-60.1, -3.1}}
	patagoniaNegro := orb.LineString{{-68.0, -39.0}, {-65.5, -40.2}, {-62.8, -41.0}}
	assert.True(t, rules["Rio Negro"](amazonNegro))
	assert.False(t, rules["Rio Negro"](patagoniaNegro))

	usRed := orb.LineString{{-103, 34.9}, {-97, 33.8}, {-92, 31}}
	vnRed := orb.LineString{{102.5, 23.5}, {104.5, 22}, {106.5, 20.3}}
	assert.True(t, rules["Red River"](usRed))
	assert.False(t, rules["Red River"](vnRed))
	assert.True(t, rules["Red River (Asia)"](vnRed))
	assert.False(t, rules["Red River (Asia)"](usRed))

	usColorado := orb.LineString{{-105.8, 40.4}, {-111, 36}, {-114.7, 32.7}}
	arColorado := orb.LineString{{-69.9, -36.9}, {-66, -38.5}, {-62.1, -39.8}}
	assert.True(t, rules["Colorado"](usColorado))
	assert.False(t, rules["Colorado"](arColorado))
	assert.True(t, rules["Rio Colorado"](arColorado))
}

func TestLakePatterns(t *testing.T) {
	ps := LakePatterns()
	checkPatterns(t, ps, keys(LakeRules()))

	for _, p := range ps {
		if p.Name == "Aral Sea" {
			assert.Equal(t, []string{"North Aral Sea", "South Aral Sea"}, p.Sources)
			return
		}
	}
	t.Fatal("Aral Sea not declared")
}

func TestLakeRules(t *testing.T) {
	rules := LakeRules()
	africa := orb.LineString{{31.5, -1}, {34, -1}, {34, 0.5}, {31.5, 0.5}, {31.5, -1}}
	murray := orb.LineString{{141.2, -34}, {141.3, -34}, {141.3, -34.1}, {141.2, -34}}
	assert.True(t, rules["Lake Victoria"](africa))
	assert.False(t, rules["Lake Victoria"](murray))
}

func TestMarineNames(t *testing.T) {
	names := MarineNames()
	assert.GreaterOrEqual(t, len(names), 100)

	seen := map[string]bool{}
	for _, n := range names {
		assert.False(t, seen[n], "duplicate %q", n)
		seen[n] = true
	}
	assert.True(t, seen["Gulf of Guinea"])
}

func TestCountryFixes(t *testing.T) {
	ops := CountryFixes()
	require.Len(t, ops, 3)

	assert.Equal(t, relocate.Move, ops[0].Kind)
	assert.True(t, ops[0].Box.Contains(orb.Point{34.1, 45.0}), "Simferopol inside the Crimea box")
	assert.False(t, ops[0].Box.Contains(orb.Point{39.7, 47.2}), "Rostov-on-Don outside")

	assert.Equal(t, relocate.Operation{Kind: relocate.Merge, Source: "Somaliland", Target: "Somalia"}, ops[2])
}
