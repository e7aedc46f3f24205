package wire

import "fmt"

// ReadTag decodes a field tag and records its wire type for the packed readers.
func (c *Cursor) ReadTag() (FieldNumber, WireType, error) {
	v, err := c.ReadVarint()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode tag: %w", err)
	}
	field, wireType := ParseTag(Tag(v))
	c.wireType = wireType
	return field, wireType, nil
}

// ReadFields decodes fields until the end of the buffer, calling fn for each
// one. A field that fn leaves unread is skipped using its wire type, so fn
// only needs to handle the fields it knows about.
func ReadFields[T any](c *Cursor, fn FieldFunc[T], result T) (T, error) {
	return readFields(c, fn, result, c.length)
}

// ReadMessage decodes a length-prefixed embedded message with fn.
func ReadMessage[T any](c *Cursor, fn FieldFunc[T], result T) (T, error) {
	_, end, err := c.readDelimited("message")
	if err != nil {
		return result, err
	}
	return readFields(c, fn, result, end)
}

func readFields[T any](c *Cursor, fn FieldFunc[T], result T, end int) (T, error) {
	for c.pos < end {
		v, err := c.ReadVarint()
		if err != nil {
			return result, fmt.Errorf("failed to decode tag: %w", err)
		}
		tag := Tag(v)
		field, wireType := ParseTag(tag)
		c.wireType = wireType
		start := c.pos

		if err := fn(field, result, c); err != nil {
			return result, wrapWithField(err, field)
		}

		if c.pos == start {
			if err := c.Skip(tag); err != nil {
				return result, wrapWithField(err, field)
			}
		}
	}

	if c.pos > end {
		return result, fmt.Errorf("%w: fields run %d bytes past the end of the message", ErrTruncatedInput, c.pos-end)
	}
	return result, nil
}

// Skip advances past the value of the field whose tag was just read.
func (c *Cursor) Skip(tag Tag) error {
	switch wireType := WireType(tag & 0x7); wireType {
	case WireVarint:
		for i := 0; ; i++ {
			if i == maxVarintLen {
				return fmt.Errorf("%w at offset %d", ErrMalformedVarint, c.pos-i)
			}
			if c.pos >= c.length {
				return truncated("varint", c.pos-i, uint64(i+1), c.length)
			}
			b := c.buf[c.pos]
			c.pos++
			if b < 0x80 {
				return nil
			}
		}
	case WireBytes:
		_, end, err := c.readDelimited("bytes")
		if err != nil {
			return err
		}
		c.pos = end
		return nil
	case WireFixed32:
		if err := c.need("fixed32", 4); err != nil {
			return err
		}
		c.pos += 4
		return nil
	case WireFixed64:
		if err := c.need("fixed64", 8); err != nil {
			return err
		}
		c.pos += 8
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedWireType, wireType)
	}
}
