package vtile

import (
	"fmt"

	"github.com/anirudhraja/pbf/wire"
)

// Reader decodes a tile on demand. NewReader reads every layer's name, keys,
// values, version and extent but only records where its features start;
// LayerReader.Feature decodes one feature header and FeatureReader.Geometry
// its command stream.
//
// A Reader and everything obtained from it share one cursor and are not safe
// for concurrent use. The tile bytes must not change while it is in use.
type Reader struct {
	c      *wire.Cursor
	Layers []*LayerReader
}

type LayerReader struct {
	Version uint64
	Name    string
	Keys    []string
	Values  []Value
	Extent  uint64

	c        *wire.Cursor
	features []int // positions of each feature's length prefix
}

type FeatureReader struct {
	ID   uint64
	Tags []uint64
	Type GeomType

	layer    *LayerReader
	geometry []fieldRef
}

// fieldRef locates a field value that has not been decoded yet.
type fieldRef struct {
	pos      int
	wireType wire.WireType
}

// NewReader scans the layers of a tile.
func NewReader(data []byte) (*Reader, error) {
	r := &Reader{c: wire.NewCursor(data)}
	return wire.ReadFields(r.c, readTileHeader, r)
}

func readTileHeader(field wire.FieldNumber, r *Reader, c *wire.Cursor) error {
	if field != tileLayers {
		return nil
	}
	l, err := wire.ReadMessage(c, readLayerHeader, &LayerReader{Version: DefaultVersion, Extent: DefaultExtent, c: c})
	if err != nil {
		return err
	}
	r.Layers = append(r.Layers, l)
	return nil
}

func readLayerHeader(field wire.FieldNumber, l *LayerReader, c *wire.Cursor) (err error) {
	switch field {
	case layerVersion:
		l.Version, err = c.ReadVarint()
	case layerName:
		l.Name, err = c.ReadString()
	case layerFeatures:
		// left unread, so the field gets skipped
		l.features = append(l.features, c.Pos())
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

// Layer returns the first layer called name, or nil.
func (r *Reader) Layer(name string) *LayerReader {
	for _, l := range r.Layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Len returns the number of features in the layer.
func (l *LayerReader) Len() int { return len(l.features) }

// Feature decodes the header of feature i. Its geometry stays undecoded.
func (l *LayerReader) Feature(i int) (*FeatureReader, error) {
	if i < 0 || i >= len(l.features) {
		return nil, fmt.Errorf("vtile: feature index %d out of range [0,%d)", i, len(l.features))
	}
	if err := l.c.SetPos(l.features[i]); err != nil {
		return nil, err
	}
	f, err := wire.ReadMessage(l.c, readFeatureHeader, &FeatureReader{layer: l})
	if err != nil {
		return nil, fmt.Errorf("layer %q feature %d: %w", l.Name, i, err)
	}
	return f, nil
}

func readFeatureHeader(field wire.FieldNumber, f *FeatureReader, c *wire.Cursor) (err error) {
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
		f.geometry = append(f.geometry, fieldRef{pos: c.Pos(), wireType: c.WireType()})
	}
	return err
}

// Properties resolves the feature's tags against its layer.
func (f *FeatureReader) Properties() (map[string]interface{}, error) {
	return properties(f.layer.Keys, f.layer.Values, f.Tags)
}

// Geometry decodes the raw command stream of the feature.
func (f *FeatureReader) Geometry() ([]uint64, error) {
	c := f.layer.c
	var cmds []uint64
	for _, ref := range f.geometry {
		if err := c.SetPos(ref.pos); err != nil {
			return nil, err
		}
		if ref.wireType != wire.WireBytes {
			v, err := c.ReadVarint()
			if err != nil {
				return nil, err
			}
			cmds = append(cmds, v)
			continue
		}

		body, err := c.ReadBytes()
		if err != nil {
			return nil, err
		}
		g := wire.NewCursor(body)
		for g.Pos() < g.Len() {
			v, err := g.ReadVarint()
			if err != nil {
				return nil, err
			}
			cmds = append(cmds, v)
		}
	}
	return cmds, nil
}

// LoadGeometry decodes the feature's geometry into rings of points.
func (f *FeatureReader) LoadGeometry() ([][]Point, error) {
	cmds, err := f.Geometry()
	if err != nil {
		return nil, err
	}
	return DecodeGeometry(cmds)
}

// Bounds returns the bounding box of the feature's geometry.
func (f *FeatureReader) Bounds() ([4]int64, error) {
	rings, err := f.LoadGeometry()
	if err != nil {
		return [4]int64{}, err
	}
	return Bounds(rings), nil
}
