// Package datasets holds the fixed tables that drive each build: which
// source names make up a game feature, how colliding names are split, which
// water bodies ship in the marine layer and which country corrections run.
package datasets

import (
	"github.com/paulmach/orb"

	"geoquiz/pkg/disambig"
	"geoquiz/pkg/match"
)

// river is shorthand for a pattern whose sources are the listed names.
func river(name string, sources ...string) match.Pattern {
	if len(sources) == 0 {
		sources = []string{name}
	}
	return match.Pattern{Name: name, Sources: sources}
}

func exact(p match.Pattern) match.Pattern {
	p.ExactOnly = true
	return p
}

var rivers = []match.Pattern{
	// Africa
	river("Nile"),
	river("Congo", "Congo", "Lualaba"),
	river("Niger"),
	river("Zambezi", "Zambezi", "Zambeze"),
	river("Orange", "Orange", "Senqu"),
	river("Limpopo"),
	river("Senegal", "Sénégal", "Senegal"),
	river("Volta"),
	river("Ubangi", "Ubangi", "Oubangui"),
	river("Kasai"),
	river("Okavango", "Okavango", "Cubango"),

	// Europe
	river("Volga"),
	river("Danube", "Danube", "Donau", "Dunărea", "Duna"),
	river("Rhine", "Rhine", "Rhein", "Rijn"),
	river("Elbe", "Elbe", "Labe"),
	river("Oder", "Oder", "Odra"),
	river("Vistula", "Vistula", "Wisla"),
	river("Dnieper", "Dnieper", "Dnipro", "Dnepr"),
	river("Dniester", "Dniester", "Dnister"),
	river("Don"),
	river("Ural"),
	river("Loire"),
	river("Seine"),
	river("Rhône", "Rhône", "Rhone"),
	river("Po"),
	river("Tagus", "Tagus", "Tajo", "Tejo"),
	river("Ebro"),
	river("Thames"),
	river("Severn"),
	river("Northern Dvina", "Severnaya Dvina"),

	// Asia
	river("Yangtze", "Yangtze", "Chang Jiang", "Jinsha"),
	river("Yellow River", "Huang He", "Huang"),
	river("Mekong"),
	river("Ganges", "Ganges", "Ganga"),
	river("Brahmaputra", "Brahmaputra", "Yarlung Tsangpo"),
	river("Indus"),
	river("Irrawaddy", "Irrawaddy", "Ayeyarwady"),
	river("Salween", "Salween", "Nu"),
	river("Tigris", "Tigris", "Dicle"),
	river("Euphrates", "Euphrates", "Firat"),
	river("Amu Darya"),
	river("Syr Darya"),
	river("Ob", "Ob'", "Ob"),
	river("Irtysh"),
	river("Yenisei", "Yenisey", "Yenisei"),
	river("Lena"),
	river("Amur", "Amur", "Heilong"),
	river("Kolyma"),
	exact(river("Red River (Asia)", "Red", "Hong", "Song Hong")),
	river("Pearl River", "Xi", "Zhujiang"),

	// North America
	river("Mississippi"),
	river("Missouri"),
	river("Ohio"),
	river("Arkansas"),
	exact(river("Red River", "Red")),
	river("Colorado"),
	river("Columbia"),
	river("Snake"),
	river("Yukon"),
	river("Mackenzie"),
	river("St. Lawrence", "St. Lawrence", "Saint Lawrence"),
	exact(river("Rio Grande", "Rio Grande", "Río Bravo del Norte")),
	river("Nelson"),
	river("Saskatchewan"),
	river("Fraser"),
	river("Hudson"),

	// South America
	river("Amazon", "Amazonas", "Amazon", "Solimões"),
	river("Paraná", "Paraná", "Parana"),
	river("Paraguay"),
	river("Uruguay"),
	river("Orinoco"),
	river("Madeira"),
	exact(river("Rio Negro", "Negro", "Rio Negro", "Río Negro")),
	river("São Francisco", "São Francisco", "Sao Francisco"),
	river("Magdalena"),
	river("Tocantins"),
	river("Purus"),
	exact(river("Rio Colorado", "Colorado", "Río Colorado")),

	// Oceania
	river("Murray"),
	river("Darling"),
	river("Murrumbidgee"),
	river("Sepik"),
	river("Fly"),
	river("Waikato"),
}

// riverRules split names shared by unrelated rivers. Thresholds are coarse
// lon/lat cuts tuned against the Natural Earth 10m release.
var riverRules = map[string]disambig.Rule{
	// Amazon tributary; the Argentine and Uruguayan rivers lie south of 30S
	"Rio Negro": disambig.MeanLatAbove(-10),
	// Argentine Río Colorado vs the North American one
	"Colorado":     disambig.MeanLatAbove(15),
	"Rio Colorado": disambig.MeanLatBelow(-20),
	// Red River of the South (US) and of the North (US/Canada) vs Vietnam
	"Red River":        disambig.MeanLonBelow(-60),
	"Red River (Asia)": disambig.Within(orb.Bound{Min: orb.Point{95, 15}, Max: orb.Point{110, 27}}),
	// Thames and Severn also name rivers in Ontario
	"Thames": disambig.MeanLonAbove(-20),
	"Severn": disambig.MeanLonAbove(-20),
	// Don in Russia vs the rivers in Scotland and England
	"Don": disambig.MeanLonAbove(30),
}

// RiverPatterns returns the river game features in emission order.
func RiverPatterns() []match.Pattern {
	return clonePatterns(rivers)
}

// RiverRules returns the river disambiguation rules keyed by game name.
func RiverRules() map[string]disambig.Rule {
	return cloneRules(riverRules)
}

func clonePatterns(ps []match.Pattern) []match.Pattern {
	out := make([]match.Pattern, len(ps))
	for i, p := range ps {
		p.Sources = append([]string(nil), p.Sources...)
		out[i] = p
	}
	return out
}

func cloneRules(m map[string]disambig.Rule) map[string]disambig.Rule {
	out := make(map[string]disambig.Rule, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
