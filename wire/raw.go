package wire

// ReadRawField decodes the next tag and returns the field payload without
// interpreting it. For length-delimited fields Data excludes the length prefix.
func (c *Cursor) ReadRawField() (RawValue, error) {
	v, err := c.ReadVarint()
	if err != nil {
		return RawValue{}, err
	}
	tag := Tag(v)
	field, wireType := ParseTag(tag)
	c.wireType = wireType

	raw := RawValue{FieldNumber: field, WireType: wireType, Offset: c.pos}
	if wireType == WireBytes {
		start, end, err := c.readDelimited("bytes")
		if err != nil {
			return RawValue{}, wrapWithField(err, field)
		}
		c.pos = end
		raw.Offset = start
		raw.Data = c.buf[start:end:end]
		return raw, nil
	}

	if err := c.Skip(tag); err != nil {
		return RawValue{}, wrapWithField(err, field)
	}
	raw.Data = c.buf[raw.Offset:c.pos:c.pos]
	return raw, nil
}

// Fields splits data into its top-level fields.
func Fields(data []byte) ([]RawValue, error) {
	c := NewCursor(data)
	var fields []RawValue
	for c.pos < c.length {
		raw, err := c.ReadRawField()
		if err != nil {
			return fields, err
		}
		fields = append(fields, raw)
	}
	return fields, nil
}
