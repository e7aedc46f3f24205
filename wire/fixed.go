package wire

import (
	"encoding/binary"
	"math"
)

// READ METHODS

// ReadFixed32 decodes a 32-bit little-endian value
func (c *Cursor) ReadFixed32() (uint32, error) {
	if err := c.need("fixed32", 4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v, nil
}

// ReadSFixed32 decodes a signed 32-bit little-endian value
func (c *Cursor) ReadSFixed32() (int32, error) {
	v, err := c.ReadFixed32()
	return int32(v), err
}

// ReadFixed64 decodes a 64-bit little-endian value
func (c *Cursor) ReadFixed64() (uint64, error) {
	if err := c.need("fixed64", 8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(c.buf[c.pos:])
	c.pos += 8
	return v, nil
}

// ReadSFixed64 decodes a signed 64-bit little-endian value
func (c *Cursor) ReadSFixed64() (int64, error) {
	v, err := c.ReadFixed64()
	return int64(v), err
}

// ReadFloat decodes a 32-bit IEEE 754 float
func (c *Cursor) ReadFloat() (float32, error) {
	v, err := c.ReadFixed32()
	return math.Float32frombits(v), err
}

// ReadDouble decodes a 64-bit IEEE 754 float
func (c *Cursor) ReadDouble() (float64, error) {
	v, err := c.ReadFixed64()
	return math.Float64frombits(v), err
}

// WRITE METHODS

// WriteFixed32 encodes a 32-bit little-endian value
func (c *Cursor) WriteFixed32(v uint32) {
	c.Realloc(4)
	binary.LittleEndian.PutUint32(c.buf[c.pos:], v)
	c.pos += 4
}

// WriteSFixed32 encodes a signed 32-bit little-endian value
func (c *Cursor) WriteSFixed32(v int32) {
	c.WriteFixed32(uint32(v))
}

// WriteFixed64 encodes a 64-bit little-endian value
func (c *Cursor) WriteFixed64(v uint64) {
	c.Realloc(8)
	binary.LittleEndian.PutUint64(c.buf[c.pos:], v)
	c.pos += 8
}

// WriteSFixed64 encodes a signed 64-bit little-endian value
func (c *Cursor) WriteSFixed64(v int64) {
	c.WriteFixed64(uint64(v))
}

// WriteFloat encodes a 32-bit IEEE 754 float
func (c *Cursor) WriteFloat(v float32) {
	c.WriteFixed32(math.Float32bits(v))
}

// WriteDouble encodes a 64-bit IEEE 754 float
func (c *Cursor) WriteDouble(v float64) {
	c.WriteFixed64(math.Float64bits(v))
}
