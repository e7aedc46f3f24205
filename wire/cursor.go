package wire

import "fmt"

// Cursor reads and writes the protobuf wire format over a single byte buffer.
//
// A cursor built with NewCursor reads the bytes it was given; one built with
// NewBuffer owns a buffer that grows on demand as values are written. Writes
// always append at Pos. Finish ends a write sequence and returns the encoded
// bytes, after which the same cursor can read them back from the start or be
// reused for another write sequence.
//
// A Cursor is not safe for concurrent use.
type Cursor struct {
	buf        []byte // len(buf) is the capacity
	pos        int
	length     int      // logical size
	wireType   WireType // wire type of the last tag read
	writing    bool
	strictUTF8 bool
}

// NewCursor creates a cursor over data. Writing to such a cursor overwrites
// data in place until the buffer needs to grow.
func NewCursor(data []byte) *Cursor {
	return &Cursor{
		buf:        data,
		length:     len(data),
		strictUTF8: config.StrictUTF8,
	}
}

// NewBuffer creates a write cursor with size bytes of room. A size of zero or
// less uses Config.InitialCapacity. Finish on a buffer nothing was written to
// returns an empty slice.
func NewBuffer(size int) *Cursor {
	if size <= 0 {
		size = config.InitialCapacity
	}
	c := NewCursor(make([]byte, size))
	c.writing = true
	return c
}

// Pos returns the current offset into the buffer.
func (c *Cursor) Pos() int { return c.pos }

// SetPos moves the cursor, e.g. back to an offset recorded for deferred parsing.
func (c *Cursor) SetPos(pos int) error {
	if pos < 0 || pos > c.length {
		return fmt.Errorf("%w: position %d outside [0,%d]", ErrTruncatedInput, pos, c.length)
	}
	c.pos = pos
	return nil
}

// Len returns the logical size: the readable length, or while writing the
// current capacity.
func (c *Cursor) Len() int { return c.length }

// Bytes returns the buffer up to Len without copying.
func (c *Cursor) Bytes() []byte { return c.buf[:c.length:c.length] }

// WireType returns the wire type of the tag most recently read.
func (c *Cursor) WireType() WireType { return c.wireType }

// Reset rewinds the cursor and makes the whole buffer available again.
func (c *Cursor) Reset() {
	c.pos = 0
	c.length = len(c.buf)
	c.wireType = 0
	c.writing = false
}

// Realloc makes sure min more bytes can be written at Pos, doubling the
// buffer until they fit. Previously written bytes are preserved.
func (c *Cursor) Realloc(min int) {
	c.writing = true

	need := c.pos + min
	if need <= len(c.buf) {
		c.length = len(c.buf)
		return
	}

	size := len(c.buf)
	if size == 0 {
		size = config.InitialCapacity
	}
	for size < need {
		size *= 2
	}

	buf := make([]byte, size)
	copy(buf, c.buf)
	c.buf = buf
	c.length = size
}

// Finish ends the current write sequence: the logical length becomes the
// number of bytes written and the position returns to 0. It returns a view of
// exactly the written bytes; the underlying allocation may be larger. Calling
// Finish again without writing in between returns the same view.
func (c *Cursor) Finish() []byte {
	if c.writing {
		c.length = c.pos
		c.writing = false
	}
	c.pos = 0
	return c.buf[:c.length:c.length]
}

// need checks that n bytes can be read at the current position.
func (c *Cursor) need(what string, n int) error {
	if n < 0 || c.pos+n > c.length || c.pos+n < c.pos {
		return truncated(what, c.pos, uint64(n), c.length)
	}
	return nil
}
