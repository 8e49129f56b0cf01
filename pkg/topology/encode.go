package topology

import (
	"encoding/binary"
	"fmt"
	"hash"
	"math"

	"github.com/minio/highwayhash"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Layer is one named FeatureCollection to be stored as a topology object.
type Layer struct {
	Name       string
	Collection *geojson.FeatureCollection
}

// arcHashKey seeds the arc index hash. highwayhash requires 32 bytes.
var arcHashKey = []byte("geoquiz-topology-arc-index-key-0")

type qpoint [2]int64

func (p qpoint) less(o qpoint) bool {
	if p[0] != o[0] {
		return p[0] < o[0]
	}
	return p[1] < o[1]
}

type part struct {
	points []qpoint
	ring   bool
	arcs   []int
}

// shape links an output geometry to the parts it is built from.
type shape struct {
	geom  *Geometry
	lines []*part
	polys [][]*part
}

type encoder struct {
	x0, y0 float64
	kx, ky float64

	parts  []*part
	shapes []*shape

	junctions map[qpoint]bool
	arcs      [][]qpoint
	index     map[uint64][]int
	hasher    hash.Hash64
	buf       []byte
}

// Encode builds one topology holding every layer as a GeometryCollection
// object that shares a single arc pool. Coordinates are snapped to a
// quantization x quantization grid over the combined bounding box; shared
// boundaries are stored once and referenced by index from every object.
func Encode(layers []Layer, quantization int) (*Topology, error) {
	if quantization < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantization, quantization)
	}

	hasher, err := highwayhash.New64(arcHashKey)
	if err != nil {
		return nil, fmt.Errorf("failed to init arc hash: %w", err)
	}

	bound, ok := layersBound(layers)
	e := &encoder{
		kx:        1,
		ky:        1,
		junctions: make(map[qpoint]bool),
		index:     make(map[uint64][]int),
		hasher:    hasher,
	}
	if ok {
		e.x0, e.y0 = bound.Min[0], bound.Min[1]
		if dx := bound.Max[0] - bound.Min[0]; dx > 0 {
			e.kx = dx / float64(quantization-1)
		}
		if dy := bound.Max[1] - bound.Min[1]; dy > 0 {
			e.ky = dy / float64(quantization-1)
		}
	}

	t := &Topology{
		Type:    TypeTopology,
		Objects: make(map[string]*Geometry, len(layers)),
		Transform: &Transform{
			Scale:     [2]float64{e.kx, e.ky},
			Translate: [2]float64{e.x0, e.y0},
		},
	}
	if ok {
		t.BBox = []float64{bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1]}
	}

	for _, l := range layers {
		if _, dup := t.Objects[l.Name]; dup {
			return nil, fmt.Errorf("duplicate layer %q", l.Name)
		}
		obj := &Geometry{Type: TypeGeometryCollection, Geometries: []*Geometry{}}
		if l.Collection != nil {
			for _, f := range l.Collection.Features {
				obj.Geometries = append(obj.Geometries, e.feature(f))
			}
		}
		t.Objects[l.Name] = obj
	}

	e.join()
	e.cut()
	e.emit()

	t.Arcs = make([][][]float64, len(e.arcs))
	for i, arc := range e.arcs {
		t.Arcs[i] = deltaEncode(arc)
	}
	return t, nil
}

func layersBound(layers []Layer) (orb.Bound, bool) {
	var b orb.Bound
	found := false
	for _, l := range layers {
		if l.Collection == nil {
			continue
		}
		for _, f := range l.Collection.Features {
			if f == nil || f.Geometry == nil {
				continue
			}
			eachPoint(f.Geometry, func(p orb.Point) {
				if !found {
					b = orb.Bound{Min: p, Max: p}
					found = true
					return
				}
				b = b.Extend(p)
			})
		}
	}
	return b, found
}

func eachPoint(g orb.Geometry, fn func(orb.Point)) {
	switch v := g.(type) {
	case orb.Point:
		fn(v)
	case orb.MultiPoint:
		for _, p := range v {
			fn(p)
		}
	case orb.LineString:
		for _, p := range v {
			fn(p)
		}
	case orb.Ring:
		for _, p := range v {
			fn(p)
		}
	case orb.MultiLineString:
		for _, ls := range v {
			eachPoint(ls, fn)
		}
	case orb.Polygon:
		for _, r := range v {
			eachPoint(r, fn)
		}
	case orb.MultiPolygon:
		for _, p := range v {
			eachPoint(p, fn)
		}
	case orb.Collection:
		for _, c := range v {
			eachPoint(c, fn)
		}
	}
}

func (e *encoder) quantize(p orb.Point) qpoint {
	return qpoint{
		int64(math.Round((p[0] - e.x0) / e.kx)),
		int64(math.Round((p[1] - e.y0) / e.ky)),
	}
}

func (e *encoder) feature(f *geojson.Feature) *Geometry {
	if f == nil {
		return &Geometry{}
	}
	g := e.geometry(f.Geometry)
	g.ID = f.ID
	if len(f.Properties) > 0 {
		g.Properties = make(map[string]interface{}, len(f.Properties))
		for k, v := range f.Properties {
			g.Properties[k] = v
		}
	}
	return g
}

func (e *encoder) geometry(geom orb.Geometry) *Geometry {
	switch v := geom.(type) {
	case orb.Point:
		q := e.quantize(v)
		return &Geometry{Type: TypePoint, Point: []float64{float64(q[0]), float64(q[1])}}
	case orb.MultiPoint:
		g := &Geometry{Type: TypeMultiPoint}
		for _, p := range v {
			q := e.quantize(p)
			g.MultiPoint = append(g.MultiPoint, []float64{float64(q[0]), float64(q[1])})
		}
		return g
	case orb.LineString:
		return e.lineShape(TypeLineString, orb.MultiLineString{v})
	case orb.MultiLineString:
		return e.lineShape(TypeMultiLineString, v)
	case orb.Ring:
		return e.polygonShape(TypePolygon, orb.MultiPolygon{{v}})
	case orb.Polygon:
		return e.polygonShape(TypePolygon, orb.MultiPolygon{v})
	case orb.MultiPolygon:
		return e.polygonShape(TypeMultiPolygon, v)
	case orb.Collection:
		g := &Geometry{Type: TypeGeometryCollection, Geometries: []*Geometry{}}
		for _, c := range v {
			g.Geometries = append(g.Geometries, e.geometry(c))
		}
		return g
	}
	return &Geometry{}
}

func (e *encoder) lineShape(typ string, lines orb.MultiLineString) *Geometry {
	s := &shape{geom: &Geometry{Type: typ}}
	for _, ls := range lines {
		pts := e.quantizeLine(ls)
		if len(pts) == 0 {
			continue
		}
		p := &part{points: pts}
		e.parts = append(e.parts, p)
		s.lines = append(s.lines, p)
	}
	if len(s.lines) == 0 {
		return &Geometry{}
	}
	e.shapes = append(e.shapes, s)
	return s.geom
}

func (e *encoder) polygonShape(typ string, polys orb.MultiPolygon) *Geometry {
	s := &shape{geom: &Geometry{Type: typ}}
	for _, poly := range polys {
		var rings []*part
		for i, r := range poly {
			pts := e.quantizeRing(r)
			if pts == nil {
				if i == 0 {
					// outer ring collapsed on the grid, holes go with it
					break
				}
				continue
			}
			p := &part{points: pts, ring: true}
			e.parts = append(e.parts, p)
			rings = append(rings, p)
		}
		if len(rings) > 0 {
			s.polys = append(s.polys, rings)
		}
	}
	if len(s.polys) == 0 {
		return &Geometry{}
	}
	e.shapes = append(e.shapes, s)
	return s.geom
}

// quantizeLine snaps a line to the grid and drops consecutive duplicates.
// A line collapsing to one position is kept as a two-point arc.
func (e *encoder) quantizeLine(ls orb.LineString) []qpoint {
	if len(ls) == 0 {
		return nil
	}
	out := make([]qpoint, 0, len(ls))
	for _, p := range ls {
		q := e.quantize(p)
		if len(out) > 0 && out[len(out)-1] == q {
			continue
		}
		out = append(out, q)
	}
	if len(out) == 1 {
		out = append(out, out[0])
	}
	return out
}

// quantizeRing snaps a ring to the grid, drops consecutive duplicates and
// closes it. Rings collapsing below four positions return nil.
func (e *encoder) quantizeRing(r orb.Ring) []qpoint {
	out := make([]qpoint, 0, len(r)+1)
	for _, p := range r {
		q := e.quantize(p)
		if len(out) > 0 && out[len(out)-1] == q {
			continue
		}
		out = append(out, q)
	}
	if len(out) > 0 && out[0] != out[len(out)-1] {
		out = append(out, out[0])
	}
	if len(out) < 4 {
		return nil
	}
	return out
}

type neighbors [2]qpoint

func pair(a, b qpoint) neighbors {
	if b.less(a) {
		return neighbors{b, a}
	}
	return neighbors{a, b}
}

// join marks junctions: line endpoints and every position visited with
// differing neighbours by different parts.
func (e *encoder) join() {
	visited := make(map[qpoint]neighbors)
	visit := func(p, prev, next qpoint) {
		n := pair(prev, next)
		if seen, ok := visited[p]; ok {
			if seen != n {
				e.junctions[p] = true
			}
			return
		}
		visited[p] = n
	}

	for _, pt := range e.parts {
		pts := pt.points
		if !pt.ring {
			e.junctions[pts[0]] = true
			e.junctions[pts[len(pts)-1]] = true
			for i := 1; i < len(pts)-1; i++ {
				visit(pts[i], pts[i-1], pts[i+1])
			}
			continue
		}
		n := len(pts) - 1
		for i := 0; i < n; i++ {
			visit(pts[i], pts[(i-1+n)%n], pts[(i+1)%n])
		}
	}
}

// cut splits every part at its junctions and registers the pieces as arcs.
func (e *encoder) cut() {
	for _, pt := range e.parts {
		if pt.ring {
			e.cutRing(pt)
		} else {
			e.cutLine(pt)
		}
	}
}

func (e *encoder) cutLine(pt *part) {
	pts := pt.points
	start := 0
	for i := 1; i < len(pts)-1; i++ {
		if e.junctions[pts[i]] {
			pt.arcs = append(pt.arcs, e.arc(pts[start:i+1]))
			start = i
		}
	}
	pt.arcs = append(pt.arcs, e.arc(pts[start:]))
}

func (e *encoder) cutRing(pt *part) {
	pts := pt.points
	n := len(pts) - 1

	first := -1
	for i := 0; i < n; i++ {
		if e.junctions[pts[i]] {
			first = i
			break
		}
	}

	if first < 0 {
		// No junction: start at the smallest position so identical rings
		// from different objects produce identical arcs.
		first = 0
		for i := 1; i < n; i++ {
			if pts[i].less(pts[first]) {
				first = i
			}
		}
		pt.arcs = append(pt.arcs, e.arc(rotate(pts, first)))
		return
	}

	rotated := rotate(pts, first)
	start := 0
	for i := 1; i < n; i++ {
		if e.junctions[rotated[i]] {
			pt.arcs = append(pt.arcs, e.arc(rotated[start:i+1]))
			start = i
		}
	}
	pt.arcs = append(pt.arcs, e.arc(rotated[start:]))
}

// rotate returns the closed ring re-started at index k.
func rotate(ring []qpoint, k int) []qpoint {
	n := len(ring) - 1
	out := make([]qpoint, 0, len(ring))
	out = append(out, ring[k:n]...)
	out = append(out, ring[:k]...)
	return append(out, ring[k])
}

// arc returns the index of an existing arc equal to pts, ^index when an
// existing arc equals pts reversed, or registers pts as a new arc.
func (e *encoder) arc(pts []qpoint) int {
	h := e.hash(pts)
	for _, i := range e.index[h] {
		if equalPoints(e.arcs[i], pts) {
			return i
		}
	}

	rev := reversed(pts)
	for _, i := range e.index[e.hash(rev)] {
		if equalPoints(e.arcs[i], rev) {
			return ^i
		}
	}

	cp := append([]qpoint(nil), pts...)
	e.arcs = append(e.arcs, cp)
	i := len(e.arcs) - 1
	e.index[h] = append(e.index[h], i)
	return i
}

func (e *encoder) hash(pts []qpoint) uint64 {
	e.buf = e.buf[:0]
	for _, p := range pts {
		e.buf = binary.LittleEndian.AppendUint64(e.buf, uint64(p[0]))
		e.buf = binary.LittleEndian.AppendUint64(e.buf, uint64(p[1]))
	}
	e.hasher.Reset()
	_, _ = e.hasher.Write(e.buf)
	return e.hasher.Sum64()
}

func reversed(pts []qpoint) []qpoint {
	out := make([]qpoint, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

func equalPoints(a, b []qpoint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// emit writes the arc references of every shape into its geometry.
func (e *encoder) emit() {
	for _, s := range e.shapes {
		g := s.geom
		switch g.Type {
		case TypeLineString:
			g.LineString = s.lines[0].arcs
		case TypeMultiLineString:
			for _, l := range s.lines {
				g.MultiLineString = append(g.MultiLineString, l.arcs)
			}
		case TypePolygon:
			for _, r := range s.polys[0] {
				g.Polygon = append(g.Polygon, r.arcs)
			}
		case TypeMultiPolygon:
			for _, poly := range s.polys {
				rings := make([][]int, 0, len(poly))
				for _, r := range poly {
					rings = append(rings, r.arcs)
				}
				g.MultiPolygon = append(g.MultiPolygon, rings)
			}
		}
	}
}

func deltaEncode(arc []qpoint) [][]float64 {
	out := make([][]float64, len(arc))
	var px, py int64
	for i, p := range arc {
		out[i] = []float64{float64(p[0] - px), float64(p[1] - py)}
		px, py = p[0], p[1]
	}
	return out
}
