// Command fix_countries applies the territory corrections to the countries
// topology, keeping every surviving country's id.
package main

import "geoquiz/internal/cli"

func main() {
	cli.Main("fix_countries", cli.FixCountries)
}
