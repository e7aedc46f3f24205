package wire

// Field writers: a tag of the matching wire type followed by the value.

// WriteBytesField writes a bytes field
func (c *Cursor) WriteBytesField(field FieldNumber, data []byte) {
	c.WriteTag(field, WireBytes)
	c.WriteBytes(data)
}

// WriteStringField writes a string field
func (c *Cursor) WriteStringField(field FieldNumber, s string) {
	c.WriteTag(field, WireBytes)
	c.WriteString(s)
}

// WriteFixed32Field writes a fixed32 field
func (c *Cursor) WriteFixed32Field(field FieldNumber, v uint32) {
	c.WriteTag(field, WireFixed32)
	c.WriteFixed32(v)
}

// WriteSFixed32Field writes an sfixed32 field
func (c *Cursor) WriteSFixed32Field(field FieldNumber, v int32) {
	c.WriteTag(field, WireFixed32)
	c.WriteSFixed32(v)
}

// WriteFixed64Field writes a fixed64 field
func (c *Cursor) WriteFixed64Field(field FieldNumber, v uint64) {
	c.WriteTag(field, WireFixed64)
	c.WriteFixed64(v)
}

// WriteSFixed64Field writes an sfixed64 field
func (c *Cursor) WriteSFixed64Field(field FieldNumber, v int64) {
	c.WriteTag(field, WireFixed64)
	c.WriteSFixed64(v)
}

// WriteVarintField writes a uint32/uint64 field
func (c *Cursor) WriteVarintField(field FieldNumber, v uint64) {
	c.WriteTag(field, WireVarint)
	c.WriteVarint(v)
}

// WriteInt64Field writes an int32/int64/enum field
func (c *Cursor) WriteInt64Field(field FieldNumber, v int64) {
	c.WriteTag(field, WireVarint)
	c.WriteInt64(v)
}

// WriteVarintNumberField writes a float64-typed integer as a varint field.
// Nothing is written when the value is out of range.
func (c *Cursor) WriteVarintNumberField(field FieldNumber, v float64) error {
	mark := c.pos
	c.WriteTag(field, WireVarint)
	if err := c.WriteVarintNumber(v); err != nil {
		c.pos = mark
		return wrapWithField(err, field)
	}
	return nil
}

// WriteSVarintField writes a sint32/sint64 field
func (c *Cursor) WriteSVarintField(field FieldNumber, v int64) {
	c.WriteTag(field, WireVarint)
	c.WriteSVarint(v)
}

// WriteBooleanField writes a bool field
func (c *Cursor) WriteBooleanField(field FieldNumber, v bool) {
	c.WriteTag(field, WireVarint)
	c.WriteBoolean(v)
}

// WriteFloatField writes a float field
func (c *Cursor) WriteFloatField(field FieldNumber, v float32) {
	c.WriteTag(field, WireFixed32)
	c.WriteFloat(v)
}

// WriteDoubleField writes a double field
func (c *Cursor) WriteDoubleField(field FieldNumber, v float64) {
	c.WriteTag(field, WireFixed64)
	c.WriteDouble(v)
}
