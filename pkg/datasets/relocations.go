package datasets

import (
	"github.com/paulmach/orb"

	"geoquiz/pkg/relocate"
)

// crimea encloses the peninsula but none of mainland Russia.
var crimea = orb.Bound{Min: orb.Point{32, 44}, Max: orb.Point{37, 46.5}}

var countryFixes = []relocate.Operation{
	{Kind: relocate.Move, Source: "Russia", Target: "Ukraine", Box: crimea},
	{Kind: relocate.Merge, Source: "N. Cyprus", Target: "Cyprus"},
	{Kind: relocate.Merge, Source: "Somaliland", Target: "Somalia"},
}

// CountryFixes returns the corrections applied to countries-110m.json.
func CountryFixes() []relocate.Operation {
	return append([]relocate.Operation(nil), countryFixes...)
}
