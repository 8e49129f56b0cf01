package pipeline

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoquiz/pkg/disambig"
	"geoquiz/pkg/match"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func named(name string, g orb.Geometry) *geojson.Feature {
	f := geojson.NewFeature(g)
	f.Properties["name"] = name
	return f
}

const aralDoc = `{"type":"FeatureCollection","features":[
	{"type":"Feature","properties":{"name":"South Aral Sea","scalerank":0},
	 "geometry":{"type":"Polygon","coordinates":[[[58,44,31],[60,44,31],[60,46,31],[58,46,31]]]}},
	{"type":"Feature","properties":{"name":"North Aral Sea","scalerank":0},
	 "geometry":{"type":"Polygon","coordinates":[[[60.5,46,42],[61.5,46,42],[61.5,47,42],[60.5,47,42],[60.5,46,42]]]}},
	{"type":"Feature","properties":{"name":"Lake Balkhash"},
	 "geometry":{"type":"Polygon","coordinates":[[[74,45],[78,45],[78,47],[74,45]]]}}
]}`

func TestBuildLakes_AralSea(t *testing.T) {
	src, err := geojson.UnmarshalFeatureCollection([]byte(aralDoc))
	require.NoError(t, err)

	patterns := []match.Pattern{{Name: "Aral Sea", Sources: []string{"North Aral Sea", "South Aral Sea"}}}
	fc, report := BuildLakes([]*match.Index{match.NewIndex("lakes", src.Features)}, patterns, nil, 0.04, quiet())

	require.Len(t, fc.Features, 1)
	f := fc.Features[0]
	assert.Equal(t, "Aral Sea", f.Properties["name"])
	assert.Len(t, f.Properties, 1)

	mp, ok := f.Geometry.(orb.MultiPolygon)
	require.True(t, ok, "got %T", f.Geometry)
	require.Len(t, mp, 2)
	for _, p := range mp {
		require.Len(t, p, 1)
		ring := p[0]
		assert.Equal(t, ring[0], ring[len(ring)-1], "ring closed")
	}

	// serialised coordinates are [lon, lat] pairs
	data, err := json.Marshal(fc)
	require.NoError(t, err)
	var out struct {
		Features []struct {
			Geometry struct {
				Type        string          `json:"type"`
				Coordinates [][][][]float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "MultiPolygon", out.Features[0].Geometry.Type)
	for _, poly := range out.Features[0].Geometry.Coordinates {
		for _, ring := range poly {
			for _, pos := range ring {
				assert.Len(t, pos, 2)
			}
		}
	}

	assert.Equal(t, Report{Dataset: "lakes", Declared: 1, Matched: 1}, report)
}

func TestBuildLakes_RuleAndDedup(t *testing.T) {
	africa := orb.Polygon{{{31.5, -1}, {34, -1}, {34, 0.5}, {31.5, 0.5}, {31.5, -1}}}
	murray := orb.Polygon{{{141.2, -34}, {141.5, -34}, {141.5, -34.3}, {141.2, -34}}}
	src := []*geojson.Feature{
		named("Lake Victoria", africa),
		named("Lake Victoria", murray),
		named("Lake Victoria", africa.Clone()),
	}
	rules := map[string]disambig.Rule{"Lake Victoria": disambig.MeanLonBelow(60)}

	fc, _ := BuildLakes([]*match.Index{match.NewIndex("lakes", src)},
		[]match.Pattern{{Name: "Lake Victoria", Sources: []string{"Lake Victoria"}}}, rules, 0.04, quiet())

	require.Len(t, fc.Features, 1)
	assert.Equal(t, africa, fc.Features[0].Geometry)
}

func riverIndexes() []*match.Index {
	volgaA := orb.LineString{{45, 58}, {47, 56}, {44, 53}}
	volgaB := orb.LineString{{44, 53}, {46, 49}, {48, 46}}
	amazonNegro := orb.LineString{{-67.1, 1.9}, {-64.8, -0.5}, {-60.1, -3.1}}
	patagoniaNegro := orb.LineString{{-68.0, -39.0}, {-65.5, -40.2}, {-62.8, -41.0}}
	rioGrande := orb.LineString{{-106.6, 37.8}, {-106.6, 31.8}, {-97.2, 25.9}}
	matagalpa := orb.LineString{{-85.9, 12.9}, {-83.6, 13}}

	base := []*geojson.Feature{
		named("Rio Grande de Matagalpa", orb.MultiLineString{matagalpa}),
		named("Volga", volgaA),
		named("Negro", patagoniaNegro),
		named("Negro", amazonNegro),
		named("Rio Grande", rioGrande),
	}
	scaleRank := []*geojson.Feature{
		named("Volga", orb.MultiLineString{volgaA.Clone(), volgaB}),
	}
	return []*match.Index{match.NewIndex("base", base), match.NewIndex("scale_rank", scaleRank)}
}

func TestBuildRivers(t *testing.T) {
	patterns := []match.Pattern{
		{Name: "Rio Negro", Sources: []string{"Negro"}, ExactOnly: true},
		{Name: "Volga", Sources: []string{"Volga"}},
		{Name: "Nile", Sources: []string{"Nile"}},
		{Name: "Rio Grande", Sources: []string{"Rio Grande"}, ExactOnly: true},
	}
	rules := map[string]disambig.Rule{"Rio Negro": disambig.MeanLatAbove(-10)}

	fc, report := BuildRivers(riverIndexes(), patterns, rules, 0.035, quiet())

	names := []string{}
	for _, f := range fc.Features {
		names = append(names, f.Properties["name"].(string))
	}
	assert.Equal(t, []string{"Rio Negro", "Volga", "Rio Grande"}, names, "declaration order")

	assert.Equal(t, orb.LineString{{-67.1, 1.9}, {-64.8, -0.5}, {-60.1, -3.1}}, fc.Features[0].Geometry)

	volga, ok := fc.Features[1].Geometry.(orb.MultiLineString)
	require.True(t, ok, "got %T", fc.Features[1].Geometry)
	assert.Len(t, volga, 2, "duplicate segment from the second source is dropped")

	rioGrande, ok := fc.Features[2].Geometry.(orb.LineString)
	require.True(t, ok, "exact-only pattern must not pull in Matagalpa, got %T", fc.Features[2].Geometry)
	assert.Equal(t, orb.Point{-106.6, 37.8}, rioGrande[0])

	assert.Equal(t, Report{Dataset: "rivers", Declared: 4, Matched: 3, Missing: []string{"Nile"}}, report)
}

func TestBuildRivers_FailSafeKeepsCandidates(t *testing.T) {
	patterns := []match.Pattern{{Name: "Rio Negro", Sources: []string{"Negro"}, ExactOnly: true}}
	rules := map[string]disambig.Rule{"Rio Negro": disambig.MeanLatAbove(80)}

	fc, report := BuildRivers(riverIndexes(), patterns, rules, 0.035, quiet())
	require.Len(t, fc.Features, 1)
	assert.Len(t, fc.Features[0].Geometry.(orb.MultiLineString), 2)
	assert.True(t, report.Complete())
}

func TestBuildRivers_Simplifies(t *testing.T) {
	dense := orb.LineString{{0, 0}, {1, 0.01}, {2, 0}, {3, 0.01}, {4, 0}}
	idx := match.NewIndex("base", []*geojson.Feature{named("Volta", dense)})

	fc, _ := BuildRivers([]*match.Index{idx}, []match.Pattern{{Name: "Volta", Sources: []string{"Volta"}}}, nil, 0.035, quiet())
	require.Len(t, fc.Features, 1)
	assert.Equal(t, orb.LineString{{0, 0}, {4, 0}}, fc.Features[0].Geometry)
}
