package wire

// WriteTag writes the tag of a field: (field << 3) | wireType as a varint.
func (c *Cursor) WriteTag(field FieldNumber, wireType WireType) {
	c.WriteVarint(uint64(MakeTag(field, wireType)))
}

// WriteRawMessage writes the body produced by fn with a length prefix and no tag.
//
// fn writes straight into this cursor's buffer after a single reserved length
// byte. Bodies of 128 bytes or more are shifted right afterwards to fit the
// longer prefix. If fn fails, everything written since the call is discarded.
func WriteRawMessage[T any](c *Cursor, fn MessageFunc[T], obj T) error {
	mark := c.pos
	c.Realloc(1)
	c.pos++ // reserve 1 byte for short message length

	start := c.pos
	if err := fn(obj, c); err != nil {
		c.pos = mark
		return err
	}
	c.backfillLength(start)
	return nil
}

// WriteMessage writes obj as an embedded message field.
func WriteMessage[T any](c *Cursor, field FieldNumber, fn MessageFunc[T], obj T) error {
	mark := c.pos
	c.WriteTag(field, WireBytes)
	if err := WriteRawMessage(c, fn, obj); err != nil {
		c.pos = mark
		return wrapWithField(err, field)
	}
	return nil
}
