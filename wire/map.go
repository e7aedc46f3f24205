package wire

import (
	"cmp"
	"maps"
	"slices"
)

// Map fields are repeated entry messages with the key in field 1 and the
// value in field 2. A missing key or value decodes as its zero value, and a
// later entry for the same key replaces an earlier one.

const (
	mapKeyField   FieldNumber = 1
	mapValueField FieldNumber = 2
)

// MapEntry is a single decoded key/value pair.
type MapEntry[K comparable, V any] struct {
	Key   K
	Value V
}

// ReadMapEntry decodes one entry of a map field.
func ReadMapEntry[K comparable, V any](c *Cursor, readKey func(*Cursor) (K, error), readValue func(*Cursor) (V, error)) (MapEntry[K, V], error) {
	e, err := ReadMessage(c, func(field FieldNumber, e *MapEntry[K, V], c *Cursor) (err error) {
		switch field {
		case mapKeyField:
			e.Key, err = readKey(c)
		case mapValueField:
			e.Value, err = readValue(c)
		}
		return err
	}, &MapEntry[K, V]{})
	if err != nil {
		return MapEntry[K, V]{}, err
	}
	return *e, nil
}

// ReadMapField decodes one entry of a map field into m.
func ReadMapField[K comparable, V any](c *Cursor, m map[K]V, readKey func(*Cursor) (K, error), readValue func(*Cursor) (V, error)) error {
	e, err := ReadMapEntry(c, readKey, readValue)
	if err != nil {
		return err
	}
	m[e.Key] = e.Value
	return nil
}

// WriteMapField writes m as a map field, one entry per key in ascending key
// order so the output is deterministic. writeKey and writeValue are field
// writers such as (*Cursor).WriteStringField.
func WriteMapField[K cmp.Ordered, V any](c *Cursor, field FieldNumber, m map[K]V, writeKey func(*Cursor, FieldNumber, K), writeValue func(*Cursor, FieldNumber, V)) {
	for _, k := range slices.Sorted(maps.Keys(m)) {
		e := MapEntry[K, V]{Key: k, Value: m[k]}
		// The entry writer cannot fail, so neither can WriteMessage.
		_ = WriteMessage(c, field, func(e MapEntry[K, V], c *Cursor) error {
			writeKey(c, mapKeyField, e.Key)
			writeValue(c, mapValueField, e.Value)
			return nil
		}, e)
	}
}

// WriteMapMessageField is WriteMapField for maps whose values are messages.
func WriteMapMessageField[K cmp.Ordered, V any](c *Cursor, field FieldNumber, m map[K]V, writeKey func(*Cursor, FieldNumber, K), fn MessageFunc[V]) error {
	for _, k := range slices.Sorted(maps.Keys(m)) {
		err := WriteMessage(c, field, func(e MapEntry[K, V], c *Cursor) error {
			writeKey(c, mapKeyField, e.Key)
			return WriteMessage(c, mapValueField, fn, e.Value)
		}, MapEntry[K, V]{Key: k, Value: m[k]})
		if err != nil {
			return err
		}
	}
	return nil
}
