package datasets

import (
	"github.com/paulmach/orb"

	"geoquiz/pkg/disambig"
	"geoquiz/pkg/match"
)

func lake(name string, sources ...string) match.Pattern {
	return river(name, sources...)
}

var lakes = []match.Pattern{
	// North America
	lake("Lake Superior"),
	lake("Lake Michigan"),
	lake("Lake Huron"),
	lake("Lake Erie"),
	lake("Lake Ontario"),
	lake("Great Bear Lake"),
	lake("Great Slave Lake"),
	lake("Lake Winnipeg"),
	lake("Lake Athabasca"),
	lake("Reindeer Lake"),
	lake("Lake Manitoba"),
	lake("Lake of the Woods"),
	lake("Great Salt Lake"),
	lake("Lake Okeechobee"),
	lake("Lake Champlain"),
	lake("Lake Nicaragua", "Lago de Nicaragua", "Lake Nicaragua"),

	// South America
	lake("Lake Titicaca", "Lago Titicaca", "Lake Titicaca"),
	lake("Lake Maracaibo", "Lago de Maracaibo", "Lake Maracaibo"),
	lake("Lake Poopó", "Lago Poopó"),

	// Europe
	lake("Lake Ladoga", "Ladozhskoye Ozero", "Lake Ladoga"),
	lake("Lake Onega", "Onezhskoye Ozero", "Lake Onega"),
	lake("Lake Peipus", "Peipsi järv", "Lake Peipus"),
	lake("Lake Vänern", "Vänern"),
	lake("Lake Vättern", "Vättern"),
	lake("Lake Saimaa", "Saimaa"),
	lake("Lake Inari", "Inarijärvi"),
	lake("Lake Geneva", "Lac Léman", "Lake Geneva"),
	lake("Lake Constance", "Bodensee", "Lake Constance"),
	lake("Lake Balaton", "Balaton"),
	lake("Lake Garda", "Lago di Garda"),
	lake("Lake Ohrid", "Ohrid"),

	// Africa
	lake("Lake Victoria"),
	lake("Lake Tanganyika"),
	lake("Lake Malawi", "Lake Malawi", "Lake Nyasa"),
	lake("Lake Chad"),
	lake("Lake Turkana"),
	lake("Lake Volta"),
	lake("Lake Albert"),
	lake("Lake Edward"),
	lake("Lake Kivu"),
	lake("Lake Kariba"),
	lake("Lake Nasser"),
	lake("Lake Tana"),
	lake("Lake Mweru"),

	// Asia
	lake("Caspian Sea"),
	lake("Aral Sea", "North Aral Sea", "South Aral Sea"),
	lake("Lake Baikal", "Ozero Baykal", "Lake Baikal"),
	lake("Lake Balkhash", "Ozero Balkhash", "Lake Balkhash"),
	lake("Issyk-Kul", "Ysyk-Köl", "Issyk-Kul"),
	lake("Dead Sea"),
	lake("Lake Van", "Van Gölü", "Lake Van"),
	lake("Lake Urmia", "Daryacheh-ye Orumieh", "Lake Urmia"),
	lake("Lake Sevan", "Sevan"),
	lake("Qinghai Lake", "Qinghai Hu", "Qinghai Lake"),
	lake("Poyang Lake", "Poyang Hu"),
	lake("Tonlé Sap"),
	lake("Lake Khanka", "Ozero Khanka"),
	lake("Lake Khövsgöl", "Hövsgöl Nuur"),
	lake("Lake Taymyr", "Ozero Taymyr"),

	// Oceania
	lake("Lake Eyre", "Lake Eyre North", "Lake Eyre South"),
	lake("Lake Taupo", "Lake Taupo"),
}

// lakeRules split lake names used on several continents.
var lakeRules = map[string]disambig.Rule{
	// the reservoir of the same name on the Murray in New South Wales
	"Lake Victoria": disambig.MeanLonBelow(60),
	// the Lake Albert at the Murray mouth in South Australia
	"Lake Albert": disambig.CentroidWithin(orb.Bound{Min: orb.Point{25, -5}, Max: orb.Point{35, 5}}),
}

// LakePatterns returns the lake game features in emission order.
func LakePatterns() []match.Pattern {
	return clonePatterns(lakes)
}

// LakeRules returns the lake disambiguation rules keyed by game name.
func LakeRules() map[string]disambig.Rule {
	return cloneRules(lakeRules)
}
