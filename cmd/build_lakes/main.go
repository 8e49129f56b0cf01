// Command build_lakes writes the simplified lakes GeoJSON used by the game.
package main

import "geoquiz/internal/cli"

func main() {
	cli.Main("build_lakes", cli.BuildLakes)
}
