package wire

import "strconv"

// ===== PROTOBUF WIRE FORMAT TYPES =====

// WireType represents protobuf wire format types
type WireType int32

const (
	WireVarint  WireType = 0 // int32, int64, uint32, uint64, sint32, sint64, bool, enum
	WireFixed64 WireType = 1 // fixed64, sfixed64, double
	WireBytes   WireType = 2 // string, bytes, embedded messages, packed repeated fields
	WireFixed32 WireType = 5 // fixed32, sfixed32, float
)

func (t WireType) String() string {
	switch t {
	case WireVarint:
		return "varint"
	case WireFixed64:
		return "fixed64"
	case WireBytes:
		return "bytes"
	case WireFixed32:
		return "fixed32"
	default:
		return "wiretype(" + strconv.Itoa(int(t)) + ")"
	}
}

// FieldNumber represents a protobuf field number
type FieldNumber int32

// Tag represents a protobuf field tag (field number + wire type)
type Tag uint64

// MakeTag creates a tag from field number and wire type
func MakeTag(fieldNumber FieldNumber, wireType WireType) Tag {
	return Tag(uint64(fieldNumber)<<3 | uint64(wireType))
}

// ParseTag parses a tag into field number and wire type
func ParseTag(tag Tag) (FieldNumber, WireType) {
	return FieldNumber(tag >> 3), WireType(tag & 0x7)
}

// RawValue is a single field whose payload has not been interpreted.
// Data is a view into the cursor buffer: the varint bytes, the fixed bytes,
// or the body of a length-delimited field (without its length prefix).
type RawValue struct {
	FieldNumber FieldNumber
	WireType    WireType
	Offset      int // position of the payload in the source buffer
	Data        []byte
}

// FieldFunc is invoked by ReadFields for every tag it decodes. A handler that
// does not recognize the field leaves the cursor where it is and the field is
// skipped.
type FieldFunc[T any] func(field FieldNumber, result T, c *Cursor) error

// MessageFunc writes the body of an embedded message into c.
type MessageFunc[T any] func(obj T, c *Cursor) error
