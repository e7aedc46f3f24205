package pbf

import (
	"fmt"

	"github.com/anirudhraja/pbf/wire"
)

// ===== TYPED API =====

// Marshal encodes v with fn into a freshly allocated buffer.
func Marshal[T any](v T, fn wire.MessageFunc[T]) ([]byte, error) {
	c := wire.NewBuffer(0)
	if err := fn(v, c); err != nil {
		return nil, err
	}
	return c.Finish(), nil
}

// MarshalSized is Marshal with a starting buffer of size bytes, for callers
// that know roughly how large the message will be.
func MarshalSized[T any](v T, fn wire.MessageFunc[T], size int) ([]byte, error) {
	c := wire.NewBuffer(size)
	if err := fn(v, c); err != nil {
		return nil, err
	}
	return c.Finish(), nil
}

// Unmarshal decodes data into result, calling fn for every field.
// Fields fn does not consume are skipped.
func Unmarshal[T any](data []byte, fn wire.FieldFunc[T], result T) (T, error) {
	return wire.ReadFields(wire.NewCursor(data), fn, result)
}

// ===== SCHEMA-LESS API =====

// Parse decodes data without a schema. Every field becomes an entry
// "field_N": {"type": <wire type>, "value": <payload>} where the payload is a
// uint64 for varints and fixed64, a uint32 for fixed32 and a []byte for
// length-delimited fields. A field that occurs more than once maps to a
// []interface{} of such entries in wire order.
func Parse(data []byte) (map[string]interface{}, error) {
	fields, err := wire.Fields(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}

	result := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		entry, err := rawEntry(f)
		if err != nil {
			return nil, err
		}

		key := fmt.Sprintf("field_%d", f.FieldNumber)
		switch prev := result[key].(type) {
		case nil:
			result[key] = entry
		case []interface{}:
			result[key] = append(prev, entry)
		default:
			result[key] = []interface{}{prev, entry}
		}
	}
	return result, nil
}

func rawEntry(f wire.RawValue) (map[string]interface{}, error) {
	c := wire.NewCursor(f.Data)
	var value interface{}
	var err error
	switch f.WireType {
	case wire.WireVarint:
		value, err = c.ReadVarint()
	case wire.WireFixed64:
		value, err = c.ReadFixed64()
	case wire.WireFixed32:
		value, err = c.ReadFixed32()
	case wire.WireBytes:
		value = f.Data
	}
	if err != nil {
		return nil, fmt.Errorf("field %d: %w", f.FieldNumber, err)
	}
	return map[string]interface{}{
		"type":  f.WireType.String(),
		"value": value,
	}, nil
}
