package topology

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type decoder struct {
	t    *Topology
	arcs []orb.LineString
}

func newDecoder(t *Topology) *decoder {
	d := &decoder{t: t, arcs: make([]orb.LineString, len(t.Arcs))}
	for i, arc := range t.Arcs {
		d.arcs[i] = d.decodeArc(arc)
	}
	return d
}

// decodeArc undoes delta encoding and the quantization transform.
func (d *decoder) decodeArc(arc [][]float64) orb.LineString {
	out := make(orb.LineString, 0, len(arc))
	tr := d.t.Transform
	var x, y float64
	for _, pos := range arc {
		if len(pos) < 2 {
			continue
		}
		if tr == nil {
			out = append(out, orb.Point{pos[0], pos[1]})
			continue
		}
		x += pos[0]
		y += pos[1]
		out = append(out, orb.Point{x*tr.Scale[0] + tr.Translate[0], y*tr.Scale[1] + tr.Translate[1]})
	}
	return out
}

func (d *decoder) position(pos []float64) orb.Point {
	if len(pos) < 2 {
		return orb.Point{}
	}
	if tr := d.t.Transform; tr != nil {
		return orb.Point{pos[0]*tr.Scale[0] + tr.Translate[0], pos[1]*tr.Scale[1] + tr.Translate[1]}
	}
	return orb.Point{pos[0], pos[1]}
}

func (d *decoder) arc(ref int) (orb.LineString, error) {
	i := ref
	if ref < 0 {
		i = ^ref
	}
	if i >= len(d.arcs) {
		return nil, fmt.Errorf("arc reference %d out of range (%d arcs)", ref, len(d.arcs))
	}
	a := d.arcs[i]
	if ref >= 0 {
		return a, nil
	}
	rev := make(orb.LineString, len(a))
	for k, p := range a {
		rev[len(a)-1-k] = p
	}
	return rev, nil
}

// stitch joins consecutive arcs, dropping the shared position between them.
func (d *decoder) stitch(refs []int) (orb.LineString, error) {
	var out orb.LineString
	for _, ref := range refs {
		a, err := d.arc(ref)
		if err != nil {
			return nil, err
		}
		if len(out) > 0 && len(a) > 0 {
			a = a[1:]
		}
		out = append(out, a...)
	}
	return out, nil
}

func (d *decoder) rings(refs [][]int) (orb.Polygon, error) {
	poly := make(orb.Polygon, 0, len(refs))
	for _, r := range refs {
		ls, err := d.stitch(r)
		if err != nil {
			return nil, err
		}
		poly = append(poly, orb.Ring(ls))
	}
	return poly, nil
}

func (d *decoder) geometry(g *Geometry) (orb.Geometry, error) {
	switch g.Type {
	case TypePoint:
		return d.position(g.Point), nil
	case TypeMultiPoint:
		mp := make(orb.MultiPoint, 0, len(g.MultiPoint))
		for _, p := range g.MultiPoint {
			mp = append(mp, d.position(p))
		}
		return mp, nil
	case TypeLineString:
		return d.stitch(g.LineString)
	case TypeMultiLineString:
		mls := make(orb.MultiLineString, 0, len(g.MultiLineString))
		for _, refs := range g.MultiLineString {
			ls, err := d.stitch(refs)
			if err != nil {
				return nil, err
			}
			mls = append(mls, ls)
		}
		return mls, nil
	case TypePolygon:
		return d.rings(g.Polygon)
	case TypeMultiPolygon:
		mp := make(orb.MultiPolygon, 0, len(g.MultiPolygon))
		for _, p := range g.MultiPolygon {
			poly, err := d.rings(p)
			if err != nil {
				return nil, err
			}
			mp = append(mp, poly)
		}
		return mp, nil
	case TypeGeometryCollection:
		c := make(orb.Collection, 0, len(g.Geometries))
		for _, child := range g.Geometries {
			cg, err := d.geometry(child)
			if err != nil {
				return nil, err
			}
			if cg != nil {
				c = append(c, cg)
			}
		}
		return c, nil
	case "":
		return nil, nil
	}
	return nil, fmt.Errorf("unsupported geometry type %q", g.Type)
}

// FeatureCollection decodes one named object into GeoJSON. A
// GeometryCollection becomes one feature per member; ids and properties are
// carried over. Members with a null geometry are skipped.
func (t *Topology) FeatureCollection(object string) (*geojson.FeatureCollection, error) {
	obj, ok := t.Objects[object]
	if !ok || obj == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownObject, object)
	}

	d := newDecoder(t)
	fc := geojson.NewFeatureCollection()
	for _, g := range obj.Members() {
		if g == nil {
			continue
		}
		geom, err := d.geometry(g)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", object, err)
		}
		if geom == nil {
			continue
		}
		f := geojson.NewFeature(geom)
		f.ID = g.ID
		for k, v := range g.Properties {
			f.Properties[k] = v
		}
		fc.Append(f)
	}
	return fc, nil
}
