// Package vtile reads and writes Mapbox Vector Tiles (specification 2.1).
//
// Read and Write convert between the wire format and plain Go values. Reader
// is the deferred variant: it decodes layer headers up front and features and
// their geometry only when asked for them.
package vtile

import (
	"errors"
	"fmt"

	"github.com/anirudhraja/pbf/wire"
)

// Field numbers from vector_tile.proto.
const (
	tileLayers wire.FieldNumber = 3

	layerName     wire.FieldNumber = 1
	layerFeatures wire.FieldNumber = 2
	layerKeys     wire.FieldNumber = 3
	layerValues   wire.FieldNumber = 4
	layerExtent   wire.FieldNumber = 5
	layerVersion  wire.FieldNumber = 15

	featureID       wire.FieldNumber = 1
	featureTags     wire.FieldNumber = 2
	featureType     wire.FieldNumber = 3
	featureGeometry wire.FieldNumber = 4
)

const (
	DefaultVersion = 1
	DefaultExtent  = 4096
)

var (
	ErrTagIndex = errors.New("vtile: tag index out of range")
	ErrGeometry = errors.New("vtile: malformed geometry")
)

// GeomType is the geometry type of a feature.
type GeomType uint64

const (
	GeomUnknown GeomType = iota
	GeomPoint
	GeomLineString
	GeomPolygon
)

func (t GeomType) String() string {
	switch t {
	case GeomPoint:
		return "Point"
	case GeomLineString:
		return "LineString"
	case GeomPolygon:
		return "Polygon"
	default:
		return "Unknown"
	}
}

// ValueType says which member of a Value is set. The numbering matches the
// field numbers of Tile.Value.
type ValueType uint8

const (
	ValueUnset ValueType = iota
	ValueString
	ValueFloat
	ValueDouble
	ValueInt
	ValueUint
	ValueSint
	ValueBool
)

// Value is an attribute value shared by the features of a layer.
//
// Decoding sets Type to the last member present on the wire. When encoding a
// Value with Type set only that member is written; with ValueUnset every
// non-zero member is.
type Value struct {
	Type        ValueType
	StringValue string
	FloatValue  float32
	DoubleValue float64
	IntValue    int64
	UintValue   uint64
	SintValue   int64
	BoolValue   bool
}

// Interface returns the member named by Type, or nil when Type is unset.
func (v Value) Interface() interface{} {
	switch v.Type {
	case ValueString:
		return v.StringValue
	case ValueFloat:
		return v.FloatValue
	case ValueDouble:
		return v.DoubleValue
	case ValueInt:
		return v.IntValue
	case ValueUint:
		return v.UintValue
	case ValueSint:
		return v.SintValue
	case ValueBool:
		return v.BoolValue
	default:
		return nil
	}
}

// Tile is a fully decoded vector tile.
type Tile struct {
	Layers []*Layer
}

// Layer returns the first layer called name, or nil.
func (t *Tile) Layer(name string) *Layer {
	for _, l := range t.Layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

type Layer struct {
	Version  uint64
	Name     string
	Features []*Feature
	Keys     []string
	Values   []Value
	Extent   uint64
}

// NewLayer returns a layer with the default version and extent.
func NewLayer(name string) *Layer {
	return &Layer{Version: DefaultVersion, Name: name, Extent: DefaultExtent}
}

// Properties resolves the tags of f against the layer's keys and values.
func (l *Layer) Properties(f *Feature) (map[string]interface{}, error) {
	return properties(l.Keys, l.Values, f.Tags)
}

// Feature is a single feature. Geometry holds the raw command stream; use
// DecodeGeometry or LoadGeometry to turn it into points.
type Feature struct {
	ID       uint64
	Tags     []uint64
	Type     GeomType
	Geometry []uint64
}

// LoadGeometry decodes the feature's command stream.
func (f *Feature) LoadGeometry() ([][]Point, error) {
	return DecodeGeometry(f.Geometry)
}

// ===== DECODE =====

// Read decodes a whole tile.
func Read(data []byte) (*Tile, error) {
	return wire.ReadFields(wire.NewCursor(data), readTile, &Tile{})
}

func readTile(field wire.FieldNumber, t *Tile, c *wire.Cursor) error {
	if field != tileLayers {
		return nil
	}
	l, err := wire.ReadMessage(c, readLayer, NewLayer(""))
	if err != nil {
		return err
	}
	t.Layers = append(t.Layers, l)
	return nil
}

func readLayer(field wire.FieldNumber, l *Layer, c *wire.Cursor) (err error) {
	switch field {
	case layerVersion:
		l.Version, err = c.ReadVarint()
	case layerName:
		l.Name, err = c.ReadString()
	case layerFeatures:
		var f *Feature
		if f, err = wire.ReadMessage(c, readFeature, &Feature{}); err == nil {
			l.Features = append(l.Features, f)
		}
	case layerKeys:
		var k string
		if k, err = c.ReadString(); err == nil {
			l.Keys = append(l.Keys, k)
		}
	case layerValues:
		var v *Value
		if v, err = wire.ReadMessage(c, readValue, &Value{}); err == nil {
			l.Values = append(l.Values, *v)
		}
	case layerExtent:
		l.Extent, err = c.ReadVarint()
	}
	return err
}

func readFeature(field wire.FieldNumber, f *Feature, c *wire.Cursor) (err error) {
	switch field {
	case featureID:
		f.ID, err = c.ReadVarint()
	case featureTags:
		f.Tags, err = c.ReadPackedVarint(f.Tags)
	case featureType:
		var t uint64
		t, err = c.ReadVarint()
		f.Type = GeomType(t)
	case featureGeometry:
		f.Geometry, err = c.ReadPackedVarint(f.Geometry)
	}
	return err
}

func readValue(field wire.FieldNumber, v *Value, c *wire.Cursor) (err error) {
	switch ValueType(field) {
	case ValueString:
		v.StringValue, err = c.ReadString()
	case ValueFloat:
		v.FloatValue, err = c.ReadFloat()
	case ValueDouble:
		v.DoubleValue, err = c.ReadDouble()
	case ValueInt:
		v.IntValue, err = c.ReadInt64()
	case ValueUint:
		v.UintValue, err = c.ReadVarint()
	case ValueSint:
		v.SintValue, err = c.ReadSVarint()
	case ValueBool:
		v.BoolValue, err = c.ReadBoolean()
	default:
		return nil // extensions
	}
	if err == nil {
		v.Type = ValueType(field)
	}
	return err
}

func properties(keys []string, values []Value, tags []uint64) (map[string]interface{}, error) {
	if len(tags)%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of tags (%d)", ErrTagIndex, len(tags))
	}
	props := make(map[string]interface{}, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		k, v := tags[i], tags[i+1]
		if k >= uint64(len(keys)) {
			return nil, fmt.Errorf("%w: key %d of %d", ErrTagIndex, k, len(keys))
		}
		if v >= uint64(len(values)) {
			return nil, fmt.Errorf("%w: value %d of %d", ErrTagIndex, v, len(values))
		}
		props[keys[k]] = values[v].Interface()
	}
	return props, nil
}

// ===== ENCODE =====

// Write encodes t.
func Write(t *Tile) ([]byte, error) {
	c := wire.NewBuffer(0)
	if err := writeTile(t, c); err != nil {
		return nil, err
	}
	return c.Finish(), nil
}

func writeTile(t *Tile, c *wire.Cursor) error {
	for _, l := range t.Layers {
		if err := wire.WriteMessage(c, tileLayers, writeLayer, l); err != nil {
			return err
		}
	}
	return nil
}

func writeLayer(l *Layer, c *wire.Cursor) error {
	if l.Version != DefaultVersion {
		c.WriteVarintField(layerVersion, l.Version)
	}
	if l.Name != "" {
		c.WriteStringField(layerName, l.Name)
	}
	for _, f := range l.Features {
		if err := wire.WriteMessage(c, layerFeatures, writeFeature, f); err != nil {
			return err
		}
	}
	for _, k := range l.Keys {
		c.WriteStringField(layerKeys, k)
	}
	for i := range l.Values {
		if err := wire.WriteMessage(c, layerValues, writeValue, &l.Values[i]); err != nil {
			return err
		}
	}
	if l.Extent != DefaultExtent {
		c.WriteVarintField(layerExtent, l.Extent)
	}
	return nil
}

func writeFeature(f *Feature, c *wire.Cursor) error {
	if f.ID != 0 {
		c.WriteVarintField(featureID, f.ID)
	}
	c.WritePackedVarint(featureTags, f.Tags)
	if f.Type != GeomUnknown {
		c.WriteVarintField(featureType, uint64(f.Type))
	}
	c.WritePackedVarint(featureGeometry, f.Geometry)
	return nil
}

func writeValue(v *Value, c *wire.Cursor) error {
	all := v.Type == ValueUnset
	if v.Type == ValueString || all && v.StringValue != "" {
		c.WriteStringField(wire.FieldNumber(ValueString), v.StringValue)
	}
	if v.Type == ValueFloat || all && v.FloatValue != 0 {
		c.WriteFloatField(wire.FieldNumber(ValueFloat), v.FloatValue)
	}
	if v.Type == ValueDouble || all && v.DoubleValue != 0 {
		c.WriteDoubleField(wire.FieldNumber(ValueDouble), v.DoubleValue)
	}
	if v.Type == ValueInt || all && v.IntValue != 0 {
		c.WriteInt64Field(wire.FieldNumber(ValueInt), v.IntValue)
	}
	if v.Type == ValueUint || all && v.UintValue != 0 {
		c.WriteVarintField(wire.FieldNumber(ValueUint), v.UintValue)
	}
	if v.Type == ValueSint || all && v.SintValue != 0 {
		c.WriteSVarintField(wire.FieldNumber(ValueSint), v.SintValue)
	}
	if v.Type == ValueBool || all && v.BoolValue {
		c.WriteBooleanField(wire.FieldNumber(ValueBool), v.BoolValue)
	}
	return nil
}
