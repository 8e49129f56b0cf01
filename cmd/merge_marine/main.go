// Command merge_marine combines countries, land and the allow-listed marine
// areas into world-marine.json.
package main

import "geoquiz/internal/cli"

func main() {
	cli.Main("merge_marine", cli.MergeMarine)
}
