package wire

import (
	"fmt"
	"unicode/utf8"
)

// readDelimited reads a length prefix and returns the bounds of the payload
// that follows it. The position is left at the start of the payload.
func (c *Cursor) readDelimited(what string) (int, int, error) {
	n, err := c.ReadVarint()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode %s length: %w", what, err)
	}
	if n > uint64(c.length-c.pos) {
		return 0, 0, truncated(what, c.pos, n, c.length)
	}
	return c.pos, c.pos + int(n), nil
}

// DECODER METHODS

// ReadBytes decodes a length-delimited byte array. The result shares the
// cursor buffer.
func (c *Cursor) ReadBytes() ([]byte, error) {
	start, end, err := c.readDelimited("bytes")
	if err != nil {
		return nil, err
	}
	c.pos = end
	return c.buf[start:end:end], nil
}

// ReadString decodes a length-delimited UTF-8 string. Malformed sequences are
// replaced with U+FFFD unless the cursor was created with Config.StrictUTF8.
func (c *Cursor) ReadString() (string, error) {
	start, end, err := c.readDelimited("string")
	if err != nil {
		return "", err
	}
	c.pos = end

	b := c.buf[start:end]
	if utf8.Valid(b) {
		return string(b), nil
	}
	if c.strictUTF8 {
		return "", fmt.Errorf("%w at offset %d", ErrMalformedUTF8, start)
	}
	return decodeUTF8Lossy(b), nil
}

// ENCODER METHODS

// WriteBytes encodes a byte array as length-delimited
func (c *Cursor) WriteBytes(data []byte) {
	c.WriteVarint(uint64(len(data)))
	c.Realloc(len(data))
	c.pos += copy(c.buf[c.pos:], data)
}

// WriteString encodes s as a length-delimited UTF-8 string. The payload is
// written first and the length is backfilled into the byte reserved in front
// of it. Invalid UTF-8 in s is written as U+FFFD.
func (c *Cursor) WriteString(s string) {
	valid := utf8.ValidString(s)
	room := len(s)
	if !valid {
		room *= utf8.RuneLen(utf8.RuneError)
	}
	c.Realloc(room + 1)

	c.pos++ // reserve 1 byte for short string length
	start := c.pos
	if valid {
		c.pos += copy(c.buf[c.pos:], s)
	} else {
		c.pos = putUTF8(c.buf, c.pos, s)
	}
	c.backfillLength(start)
}

// backfillLength writes the length of buf[start:pos] into the byte reserved
// at start-1, shifting the payload right when the length needs more room.
func (c *Cursor) backfillLength(start int) {
	n := c.pos - start
	if n >= 0x80 {
		c.makeRoomForExtraLength(start, n)
	}

	c.pos = PutVarint(c.buf, start-1, uint64(n))
	c.pos += n
}

// makeRoomForExtraLength moves the n byte payload at start far enough right
// that its length varint fits in front of it.
func (c *Cursor) makeRoomForExtraLength(start, n int) {
	extra := VarintSize(uint64(n)) - 1
	c.Realloc(extra)
	shiftRight(c.buf, start, c.pos, extra)
}

// shiftRight moves buf[from:to] by bytes to the right. The ranges may overlap.
func shiftRight(buf []byte, from, to, by int) {
	if by <= 0 || from >= to {
		return
	}
	copy(buf[from+by:to+by], buf[from:to])
}

// putUTF8 writes s at buf[pos] rune by rune; every invalid byte becomes U+FFFD.
func putUTF8(buf []byte, pos int, s string) int {
	for _, r := range s {
		pos += utf8.EncodeRune(buf[pos:], r)
	}
	return pos
}

// decodeUTF8Lossy decodes b, replacing every byte that does not start a
// well-formed sequence (overlong forms, surrogates, values past U+10FFFF and
// sequences cut off by the end of b) with U+FFFD.
func decodeUTF8Lossy(b []byte) string {
	out := make([]byte, 0, len(b)+8)

	for i := 0; i < len(b); {
		b0 := b[i]
		size := 1
		switch {
		case b0 > 0xEF:
			size = 4
		case b0 > 0xDF:
			size = 3
		case b0 > 0xBF:
			size = 2
		}

		r := rune(-1)
		if i+size <= len(b) {
			switch size {
			case 1:
				if b0 < 0x80 {
					r = rune(b0)
				}
			case 2:
				b1 := b[i+1]
				if b1&0xC0 == 0x80 {
					r = rune(b0&0x1F)<<6 | rune(b1&0x3F)
					if r <= 0x7F {
						r = -1
					}
				}
			case 3:
				b1, b2 := b[i+1], b[i+2]
				if b1&0xC0 == 0x80 && b2&0xC0 == 0x80 {
					r = rune(b0&0x0F)<<12 | rune(b1&0x3F)<<6 | rune(b2&0x3F)
					if r <= 0x7FF || (r >= 0xD800 && r <= 0xDFFF) {
						r = -1
					}
				}
			case 4:
				b1, b2, b3 := b[i+1], b[i+2], b[i+3]
				if b1&0xC0 == 0x80 && b2&0xC0 == 0x80 && b3&0xC0 == 0x80 {
					r = rune(b0&0x0F)<<18 | rune(b1&0x3F)<<12 | rune(b2&0x3F)<<6 | rune(b3&0x3F)
					if r <= 0xFFFF || r > utf8.MaxRune {
						r = -1
					}
				}
			}
		}

		if r < 0 {
			out = utf8.AppendRune(out, utf8.RuneError)
			i++
			continue
		}
		out = utf8.AppendRune(out, r)
		i += size
	}

	return string(out)
}

// UTILITY FUNCTIONS

// BytesSize returns the size needed to encode the given bytes
func BytesSize(data []byte) int {
	return VarintSize(uint64(len(data))) + len(data)
}
