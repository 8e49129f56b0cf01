// Package topology encodes GeoJSON layers into a shared-arc TopoJSON
// topology and decodes topology objects back into GeoJSON.
package topology

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

// Geometry types used in topology objects.
const (
	TypeTopology           = "Topology"
	TypeGeometryCollection = "GeometryCollection"
	TypePoint              = "Point"
	TypeMultiPoint         = "MultiPoint"
	TypeLineString         = "LineString"
	TypeMultiLineString    = "MultiLineString"
	TypePolygon            = "Polygon"
	TypeMultiPolygon       = "MultiPolygon"
)

var (
	// ErrInvalidQuantization is returned for quantization factors below 2.
	ErrInvalidQuantization = errors.New("quantization must be at least 2")
	// ErrUnknownObject is returned when a named object is not in the topology.
	ErrUnknownObject = errors.New("unknown topology object")
)

// Transform maps quantized integer positions back to coordinates.
type Transform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

// Topology is a TopoJSON document: named objects over one shared arc pool.
type Topology struct {
	Type      string               `json:"type"`
	BBox      []float64            `json:"bbox,omitempty"`
	Transform *Transform           `json:"transform,omitempty"`
	Objects   map[string]*Geometry `json:"objects"`
	Arcs      [][][]float64        `json:"arcs"`
}

// Geometry is a topology object. Exactly one of the typed fields is used,
// selected by Type. Arc references are indexes into Topology.Arcs; a
// negative reference ^i means arc i traversed in reverse.
type Geometry struct {
	Type       string
	ID         interface{}
	Properties map[string]interface{}
	BBox       []float64

	Point           []float64
	MultiPoint      [][]float64
	LineString      []int
	MultiLineString [][]int
	Polygon         [][]int
	MultiPolygon    [][][]int
	Geometries      []*Geometry
}

// Name returns the "name" property, or "" when absent.
func (g *Geometry) Name() string {
	if g == nil || g.Properties == nil {
		return ""
	}
	s, _ := g.Properties["name"].(string)
	return s
}

type jsonGeometry struct {
	Type        interface{}            `json:"type"`
	ID          interface{}            `json:"id,omitempty"`
	Properties  map[string]interface{} `json:"properties,omitempty"`
	BBox        []float64              `json:"bbox,omitempty"`
	Arcs        interface{}            `json:"arcs,omitempty"`
	Coordinates interface{}            `json:"coordinates,omitempty"`
}

type jsonCollection struct {
	Type       string                 `json:"type"`
	ID         interface{}            `json:"id,omitempty"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	BBox       []float64              `json:"bbox,omitempty"`
	Geometries []*Geometry            `json:"geometries"`
}

// MarshalJSON implements json.Marshaler.
func (g *Geometry) MarshalJSON() ([]byte, error) {
	if g.Type == TypeGeometryCollection {
		geoms := g.Geometries
		if geoms == nil {
			geoms = []*Geometry{}
		}
		return json.Marshal(jsonCollection{
			Type:       g.Type,
			ID:         g.ID,
			Properties: g.Properties,
			BBox:       g.BBox,
			Geometries: geoms,
		})
	}

	jg := jsonGeometry{
		ID:         g.ID,
		Properties: g.Properties,
		BBox:       g.BBox,
	}
	if g.Type != "" {
		jg.Type = g.Type
	}
	switch g.Type {
	case TypePoint:
		jg.Coordinates = g.Point
	case TypeMultiPoint:
		jg.Coordinates = g.MultiPoint
	case TypeLineString:
		jg.Arcs = g.LineString
	case TypeMultiLineString:
		jg.Arcs = g.MultiLineString
	case TypePolygon:
		jg.Arcs = g.Polygon
	case TypeMultiPolygon:
		jg.Arcs = g.MultiPolygon
	case "":
		// null geometry keeps only its id and properties
	default:
		return nil, fmt.Errorf("unsupported geometry type %q", g.Type)
	}
	return json.Marshal(jg)
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *Geometry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type        *string                `json:"type"`
		ID          interface{}            `json:"id"`
		Properties  map[string]interface{} `json:"properties"`
		BBox        []float64              `json:"bbox"`
		Arcs        json.RawMessage        `json:"arcs"`
		Coordinates json.RawMessage        `json:"coordinates"`
		Geometries  []*Geometry            `json:"geometries"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*g = Geometry{ID: raw.ID, Properties: raw.Properties, BBox: raw.BBox}
	if raw.Type != nil {
		g.Type = *raw.Type
	}

	var err error
	switch g.Type {
	case TypeGeometryCollection:
		g.Geometries = raw.Geometries
	case TypePoint:
		err = decodeField(raw.Coordinates, &g.Point)
	case TypeMultiPoint:
		err = decodeField(raw.Coordinates, &g.MultiPoint)
	case TypeLineString:
		err = decodeField(raw.Arcs, &g.LineString)
	case TypeMultiLineString:
		err = decodeField(raw.Arcs, &g.MultiLineString)
	case TypePolygon:
		err = decodeField(raw.Arcs, &g.Polygon)
	case TypeMultiPolygon:
		err = decodeField(raw.Arcs, &g.MultiPolygon)
	case "":
	default:
		return fmt.Errorf("unsupported geometry type %q", g.Type)
	}
	if err != nil {
		return fmt.Errorf("invalid %s: %w", g.Type, err)
	}
	return nil
}

func decodeField(data json.RawMessage, v interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

// Members returns the geometries of a collection, or the object itself.
func (g *Geometry) Members() []*Geometry {
	if g == nil {
		return nil
	}
	if g.Type == TypeGeometryCollection {
		return g.Geometries
	}
	return []*Geometry{g}
}

// ObjectNames returns the object names in sorted order.
func (t *Topology) ObjectNames() []string {
	names := make([]string, 0, len(t.Objects))
	for name := range t.Objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse decodes a TopoJSON document.
func Parse(data []byte) (*Topology, error) {
	var t Topology
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse topology: %w", err)
	}
	if t.Type != TypeTopology {
		return nil, fmt.Errorf("failed to parse topology: unexpected type %q", t.Type)
	}
	if t.Objects == nil {
		t.Objects = make(map[string]*Geometry)
	}
	return &t, nil
}

// Read loads a TopoJSON file from disk.
func Read(path string) (*Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read topology %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
