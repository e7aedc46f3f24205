package wire

import (
	"fmt"
	"math"
)

// maxVarintLen is the longest varint a 64-bit value can need.
const maxVarintLen = 10

// ConsumeVarint decodes the varint starting at buf[pos]. It returns the value
// and the number of bytes it occupied. The tenth byte only contributes its
// lowest bit; anything above 64 bits is dropped.
func ConsumeVarint(buf []byte, pos int) (uint64, int, error) {
	if pos < 0 || pos >= len(buf) {
		return 0, 0, truncated("varint", pos, 1, len(buf))
	}
	b := buf[pos:]

	// Low 28 bits are assembled directly while four bytes are known to be available.
	if len(b) >= 4 {
		var v uint64
		c := b[0]
		v = uint64(c & 0x7f)
		if c < 0x80 {
			return v, 1, nil
		}
		c = b[1]
		v |= uint64(c&0x7f) << 7
		if c < 0x80 {
			return v, 2, nil
		}
		c = b[2]
		v |= uint64(c&0x7f) << 14
		if c < 0x80 {
			return v, 3, nil
		}
		c = b[3]
		v |= uint64(c&0x7f) << 21
		if c < 0x80 {
			return v, 4, nil
		}
		return consumeVarintRemainder(b, v, 4, pos)
	}
	return consumeVarintRemainder(b, 0, 0, pos)
}

func consumeVarintRemainder(b []byte, v uint64, i, pos int) (uint64, int, error) {
	for shift := uint(7 * i); i < maxVarintLen; i, shift = i+1, shift+7 {
		if i >= len(b) {
			return 0, 0, truncated("varint", pos, uint64(i+1), pos+len(b))
		}
		c := b[i]
		v |= uint64(c&0x7f) << shift
		if c < 0x80 {
			return v, i + 1, nil
		}
	}
	return 0, 0, fmt.Errorf("%w at offset %d", ErrMalformedVarint, pos)
}

// PutVarint writes v at buf[pos] and returns the position just past it.
// The caller guarantees VarintSize(v) bytes of room.
func PutVarint(buf []byte, pos int, v uint64) int {
	if v <= 0xfffffff {
		// at most four bytes
		if v < 1<<7 {
			buf[pos] = byte(v)
			return pos + 1
		}
		buf[pos] = byte(v) | 0x80
		if v < 1<<14 {
			buf[pos+1] = byte(v >> 7)
			return pos + 2
		}
		buf[pos+1] = byte(v>>7) | 0x80
		if v < 1<<21 {
			buf[pos+2] = byte(v >> 14)
			return pos + 3
		}
		buf[pos+2] = byte(v>>14) | 0x80
		buf[pos+3] = byte(v >> 21)
		return pos + 4
	}

	for v >= 0x80 {
		buf[pos] = byte(v) | 0x80
		v >>= 7
		pos++
	}
	buf[pos] = byte(v)
	return pos + 1
}

// VarintSize returns the number of bytes needed to encode the given varint
func VarintSize(v uint64) int {
	switch {
	case v < 1<<7:
		return 1
	case v < 1<<14:
		return 2
	case v < 1<<21:
		return 3
	case v < 1<<28:
		return 4
	case v < 1<<35:
		return 5
	case v < 1<<42:
		return 6
	case v < 1<<49:
		return 7
	case v < 1<<56:
		return 8
	case v < 1<<63:
		return 9
	default:
		return 10
	}
}

// EncodeZigZag maps v >= 0 to 2v and v < 0 to -2v-1.
func EncodeZigZag(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

// DecodeZigZag reverses EncodeZigZag.
func DecodeZigZag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// READ METHODS

// ReadVarint decodes an unsigned varint at the current position
func (c *Cursor) ReadVarint() (uint64, error) {
	v, n, err := ConsumeVarint(c.buf[:c.length], c.pos)
	if err != nil {
		return 0, err
	}
	c.pos += n
	return v, nil
}

// ReadInt64 decodes a varint as a two's complement int64 (int32/int64/enum fields)
func (c *Cursor) ReadInt64() (int64, error) {
	v, err := c.ReadVarint()
	return int64(v), err
}

// ReadSVarint decodes a zigzag-encoded varint (sint32/sint64 fields)
func (c *Cursor) ReadSVarint() (int64, error) {
	v, err := c.ReadVarint()
	if err != nil {
		return 0, err
	}
	return DecodeZigZag(v), nil
}

// ReadBoolean decodes a varint as bool
func (c *Cursor) ReadBoolean() (bool, error) {
	v, err := c.ReadVarint()
	return v != 0, err
}

// WRITE METHODS

// WriteVarint encodes v as an unsigned varint
func (c *Cursor) WriteVarint(v uint64) {
	c.Realloc(VarintSize(v))
	c.pos = PutVarint(c.buf, c.pos, v)
}

// WriteInt64 encodes v as a two's complement varint; negative values take 10 bytes
func (c *Cursor) WriteInt64(v int64) {
	c.WriteVarint(uint64(v))
}

// WriteSVarint encodes v with zigzag encoding
func (c *Cursor) WriteSVarint(v int64) {
	c.WriteVarint(EncodeZigZag(v))
}

// WriteBoolean encodes v as a one byte varint
func (c *Cursor) WriteBoolean(v bool) {
	if v {
		c.WriteVarint(1)
	} else {
		c.WriteVarint(0)
	}
}

// WriteVarintNumber encodes a float64-typed integer as a varint. The value is
// truncated toward zero, NaN is written as 0, and negative values are written
// as 64-bit two's complement. Magnitudes of 2^64 and above (including the
// infinities) do not fit into 10 bytes and are rejected.
func (c *Cursor) WriteVarintNumber(v float64) error {
	if math.IsNaN(v) {
		c.WriteVarint(0)
		return nil
	}
	if v >= 0x1p64 || v <= -0x1p64 {
		return fmt.Errorf("%w: %g", ErrOversizedVarint, v)
	}

	v = math.Trunc(v)
	if v >= 0 {
		c.WriteVarint(uint64(v))
		return nil
	}
	c.WriteVarint(^uint64(-v) + 1)
	return nil
}
