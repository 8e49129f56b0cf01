// Command build_rivers writes the simplified rivers GeoJSON used by the game.
package main

import "geoquiz/internal/cli"

func main() {
	cli.Main("build_rivers", cli.BuildRivers)
}
