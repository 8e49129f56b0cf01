// Command shp2geojson converts a Natural Earth shapefile into GeoJSON so it
// can be used as a local pipeline source.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geoquiz/pkg/pipeline"
	"geoquiz/pkg/simplify"
	"geoquiz/pkg/source"
)

func main() {
	inputPath := flag.String("input", "", "Path to input .shp file")
	outputPath := flag.String("output", "", "Path to output .geojson file")
	tolerance := flag.Float64("simplify", 0, "Douglas-Peucker tolerance in degrees, 0 keeps every point")
	flag.Parse()

	if *inputPath == "" || *outputPath == "" {
		flag.Usage()
		log.Fatal("Input and output paths are required")
	}

	n, err := run(*inputPath, *outputPath, *tolerance)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Successfully converted %d features to %s\n", n, *outputPath)
}

func run(inputPath, outputPath string, tolerance float64) (int, error) {
	fc, err := source.ReadShapefile(inputPath)
	if err != nil {
		return 0, err
	}
	if tolerance > 0 {
		simplifyAll(fc, tolerance)
	}
	if err := pipeline.WriteJSON(outputPath, fc); err != nil {
		return 0, err
	}
	return len(fc.Features), nil
}

func simplifyAll(fc *geojson.FeatureCollection, tolerance float64) {
	for _, f := range fc.Features {
		switch g := f.Geometry.(type) {
		case orb.LineString:
			f.Geometry = simplify.LineString(g, tolerance)
		case orb.MultiLineString:
			f.Geometry = simplify.MultiLineString(g, tolerance)
		case orb.Polygon:
			f.Geometry = simplify.Polygon(g, tolerance)
		case orb.MultiPolygon:
			f.Geometry = simplify.MultiPolygon(g, tolerance)
		}
	}
}
