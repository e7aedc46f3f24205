package pbf

import (
	"errors"
	"reflect"
	"testing"

	"github.com/anirudhraja/pbf/wire"
)

type user struct {
	ID     uint64
	Name   string
	Email  string
	Active bool
	Scores []int64
}

func writeUser(u *user, c *wire.Cursor) error {
	c.WriteVarintField(1, u.ID)
	c.WriteStringField(2, u.Name)
	c.WriteStringField(3, u.Email)
	c.WriteBooleanField(4, u.Active)
	c.WritePackedSVarint(5, u.Scores)
	return nil
}

func readUser(field wire.FieldNumber, u *user, c *wire.Cursor) (err error) {
	switch field {
	case 1:
		u.ID, err = c.ReadVarint()
	case 2:
		u.Name, err = c.ReadString()
	case 3:
		u.Email, err = c.ReadString()
	case 4:
		u.Active, err = c.ReadBoolean()
	case 5:
		u.Scores, err = c.ReadPackedSVarint(u.Scores)
	}
	return err
}

func TestMarshalUnmarshal(t *testing.T) {
	in := &user{ID: 12345, Name: "John Doe", Email: "john.doe@example.com", Active: true, Scores: []int64{-5, 10, 300}}

	data, err := Marshal(in, writeUser)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	out, err := Unmarshal(data, readUser, &user{})
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("Expected %+v, got %+v", in, out)
	}

	sized, err := MarshalSized(in, writeUser, 256)
	if err != nil {
		t.Fatalf("MarshalSized failed: %v", err)
	}
	if !reflect.DeepEqual(data, sized) {
		t.Errorf("MarshalSized produced % x, Marshal % x", sized, data)
	}
}

func TestMarshalError(t *testing.T) {
	boom := errors.New("boom")
	data, err := Marshal(1, func(int, *wire.Cursor) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if data != nil {
		t.Errorf("expected no data, got % x", data)
	}
}

func TestUnmarshalTruncated(t *testing.T) {
	_, err := Unmarshal([]byte{0x12, 0x10, 'a'}, readUser, &user{})
	if !errors.Is(err, wire.ErrTruncatedInput) {
		t.Fatalf("expected ErrTruncatedInput, got %v", err)
	}
}

func TestParse(t *testing.T) {
	t.Run("empty_data", func(t *testing.T) {
		result, err := Parse([]byte{})
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(result) != 0 {
			t.Errorf("Expected empty result, got %v", result)
		}
	})

	t.Run("simple_varint", func(t *testing.T) {
		c := wire.NewBuffer(0)
		c.WriteVarintField(1, 42)

		result, err := Parse(c.Finish())
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}

		expected := map[string]interface{}{
			"field_1": map[string]interface{}{
				"type":  "varint",
				"value": uint64(42),
			},
		}
		if !reflect.DeepEqual(result, expected) {
			t.Errorf("Expected %v, got %v", expected, result)
		}
	})

	t.Run("all_wire_types", func(t *testing.T) {
		c := wire.NewBuffer(0)
		c.WriteStringField(2, "hello")
		c.WriteFixed32Field(3, 7)
		c.WriteFixed64Field(4, 1<<40)

		result, err := Parse(c.Finish())
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}

		expected := map[string]interface{}{
			"field_2": map[string]interface{}{"type": "bytes", "value": []byte("hello")},
			"field_3": map[string]interface{}{"type": "fixed32", "value": uint32(7)},
			"field_4": map[string]interface{}{"type": "fixed64", "value": uint64(1 << 40)},
		}
		if !reflect.DeepEqual(result, expected) {
			t.Errorf("Expected %v, got %v", expected, result)
		}
	})

	t.Run("repeated_field", func(t *testing.T) {
		c := wire.NewBuffer(0)
		c.WriteVarintField(1, 1)
		c.WriteVarintField(1, 2)
		c.WriteVarintField(1, 3)

		result, err := Parse(c.Finish())
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}

		list, ok := result["field_1"].([]interface{})
		if !ok {
			t.Fatalf("field_1 should be a list, got %T", result["field_1"])
		}
		if len(list) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(list))
		}
		for i, e := range list {
			if v := e.(map[string]interface{})["value"]; v != uint64(i+1) {
				t.Errorf("entry %d: expected %d, got %v", i, i+1, v)
			}
		}
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Parse([]byte{0x0b, 0x00})
		if !errors.Is(err, wire.ErrUnsupportedWireType) {
			t.Errorf("expected ErrUnsupportedWireType, got %v", err)
		}
	})
}
