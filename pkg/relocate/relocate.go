// Package relocate applies one-off corrections to country geometries:
// moving a sub-polygon between entities, or merging one entity into another.
package relocate

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"geoquiz/pkg/geo"
	"geoquiz/pkg/topology"
)

// CountriesObject is the topology object relocations operate on.
const CountriesObject = "countries"

var (
	// ErrEntityNotFound is returned when a named entity is missing.
	ErrEntityNotFound = errors.New("entity not found")
	// ErrNoMatchingPolygon is returned when no sub-polygon lies in the box.
	ErrNoMatchingPolygon = errors.New("no sub-polygon inside bounding box")
)

// Kind selects the relocation variant.
type Kind string

const (
	// Move transfers the sub-polygon inside Box from Source to Target.
	Move Kind = "move"
	// Merge absorbs every sub-polygon of Source into Target and removes Source.
	Merge Kind = "merge"
)

// Operation is one parameterised correction.
type Operation struct {
	Kind   Kind
	Source string
	Target string
	Box    orb.Bound // Move only
}

func (op Operation) String() string {
	if op.Kind == Move {
		return fmt.Sprintf("move %s -> %s within %v-%v", op.Source, op.Target, op.Box.Min, op.Box.Max)
	}
	return fmt.Sprintf("merge %s into %s", op.Source, op.Target)
}

func find(fc *geojson.FeatureCollection, name string) (int, error) {
	for i, f := range fc.Features {
		if geo.Name(f) == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrEntityNotFound, name)
}

// MovePolygon removes the first sub-polygon of source whose bounding box
// lies within box and appends it to target, promoting target to a
// MultiPolygon.
func MovePolygon(fc *geojson.FeatureCollection, source string, box orb.Bound, target string) error {
	si, err := find(fc, source)
	if err != nil {
		return err
	}
	ti, err := find(fc, target)
	if err != nil {
		return err
	}

	src := geo.Polygons(fc.Features[si].Geometry)
	pick := -1
	for i, p := range src {
		b := p.Bound()
		if box.Contains(b.Min) && box.Contains(b.Max) {
			pick = i
			break
		}
	}
	if pick < 0 {
		return fmt.Errorf("%w: %q within %v-%v", ErrNoMatchingPolygon, source, box.Min, box.Max)
	}

	moved := src[pick]
	rest := make(orb.MultiPolygon, 0, len(src)-1)
	rest = append(rest, src[:pick]...)
	rest = append(rest, src[pick+1:]...)
	fc.Features[si].Geometry = rest

	dst := append(orb.MultiPolygon(geo.Polygons(fc.Features[ti].Geometry)), moved)
	fc.Features[ti].Geometry = dst
	return nil
}

// MergeEntities appends every sub-polygon of secondary to primary and drops
// secondary from the collection.
func MergeEntities(fc *geojson.FeatureCollection, primary, secondary string) error {
	pi, err := find(fc, primary)
	if err != nil {
		return err
	}
	si, err := find(fc, secondary)
	if err != nil {
		return err
	}

	merged := orb.MultiPolygon(geo.Polygons(fc.Features[pi].Geometry))
	merged = append(merged, geo.Polygons(fc.Features[si].Geometry)...)
	fc.Features[pi].Geometry = merged

	fc.Features = append(fc.Features[:si], fc.Features[si+1:]...)
	return nil
}

// Apply runs the operations in order and stops at the first failure.
func Apply(logger *slog.Logger, fc *geojson.FeatureCollection, ops ...Operation) error {
	if logger == nil {
		logger = slog.Default()
	}
	for _, op := range ops {
		var err error
		switch op.Kind {
		case Move:
			err = MovePolygon(fc, op.Source, op.Box, op.Target)
		case Merge:
			err = MergeEntities(fc, op.Target, op.Source)
		default:
			err = fmt.Errorf("unknown relocation kind %q", op.Kind)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		logger.Info("Relocation applied", "op", op.String(), "entities", len(fc.Features),
			"target_area", fmt.Sprintf("%.3f", area(fc, op.Target)))
	}
	return nil
}

// Rewrite decodes the countries object of original, applies ops, and
// re-encodes every object of original into a new topology at the given
// quantization. Ids of the countries are carried over by name.
func Rewrite(logger *slog.Logger, original *topology.Topology, ops []Operation, quantization int) (*topology.Topology, error) {
	if logger == nil {
		logger = slog.Default()
	}

	countries, err := original.FeatureCollection(CountriesObject)
	if err != nil {
		return nil, err
	}
	if err := Apply(logger, countries, ops...); err != nil {
		return nil, err
	}

	layers := []topology.Layer{{Name: CountriesObject, Collection: countries}}
	for _, name := range original.ObjectNames() {
		if name == CountriesObject {
			continue
		}
		fc, err := original.FeatureCollection(name)
		if err != nil {
			return nil, err
		}
		layers = append(layers, topology.Layer{Name: name, Collection: fc})
	}

	out, err := topology.Encode(layers, quantization)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode topology: %w", err)
	}

	n := topology.PreserveIDs(out, original, CountriesObject)
	logger.Info("Preserved entity ids", "count", n, "arcs", len(out.Arcs))
	return out, nil
}

// area returns the planar area of the named entity in square degrees.
func area(fc *geojson.FeatureCollection, name string) float64 {
	i, err := find(fc, name)
	if err != nil || fc.Features[i].Geometry == nil {
		return 0
	}
	return planar.Area(fc.Features[i].Geometry)
}
