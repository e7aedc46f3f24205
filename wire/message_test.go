package wire

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Fields [10]string
}

func writeRecord(r *record, c *Cursor) error {
	for i, s := range r.Fields {
		c.WriteStringField(FieldNumber(i+1), s)
	}
	return nil
}

func readRecord(field FieldNumber, r *record, c *Cursor) (err error) {
	if field >= 1 && field <= 10 {
		r.Fields[field-1], err = c.ReadString()
	}
	return err
}

func TestWriteMessageTwoBytePrefix(t *testing.T) {
	in := &record{}
	for i := range in.Fields {
		in.Fields[i] = strings.Repeat(string(rune('a'+i)), 20)
	}

	c := NewBuffer(0)
	require.NoError(t, WriteMessage(c, 1, writeRecord, in))
	c.WriteVarintField(2, 77)
	out := c.Finish()

	// 10 fields of tag + length + 20 bytes
	assert.Equal(t, byte(0x0a), out[0])
	assert.Equal(t, []byte{0xdc, 0x01}, out[1:3])
	assert.Len(t, out, 3+220+2)

	var got *record
	var trailer uint64
	_, err := ReadFields(c, func(field FieldNumber, _ *struct{}, c *Cursor) (err error) {
		switch field {
		case 1:
			got, err = ReadMessage(c, readRecord, &record{})
		case 2:
			trailer, err = c.ReadVarint()
		}
		return err
	}, &struct{}{})
	require.NoError(t, err)
	assert.Equal(t, in, got)
	assert.Equal(t, uint64(77), trailer)
}

func TestWriteRawMessageLengthBoundaries(t *testing.T) {
	for _, n := range []int{0, 1, 127, 128, 300, 16383, 16384, 2097151, 2097152} {
		c := NewBuffer(0)
		c.WriteFixed32(0xcafebabe)
		require.NoError(t, WriteRawMessage(c, func(n int, c *Cursor) error {
			for i := 0; i < n; i++ {
				c.WriteVarint(uint64(i % 0x80))
			}
			return nil
		}, n))
		c.WriteFixed32(0xfeedface)
		out := c.Finish()

		prefix := VarintSize(uint64(n))
		require.Len(t, out, 4+prefix+n+4, "body of %d bytes", n)

		head, err := c.ReadFixed32()
		require.NoError(t, err)
		require.Equal(t, uint32(0xcafebabe), head)

		body, err := c.ReadBytes()
		require.NoError(t, err)
		require.Len(t, body, n)
		for i, b := range body {
			if b != byte(i%0x80) {
				t.Fatalf("body of %d bytes: byte %d is %d", n, i, b)
			}
		}

		tail, err := c.ReadFixed32()
		require.NoError(t, err)
		require.Equal(t, uint32(0xfeedface), tail)
	}
}

func TestWriteMessageDeeplyNested(t *testing.T) {
	type node struct {
		Label string
		Child *node
	}
	var writeNode func(n *node, c *Cursor) error
	writeNode = func(n *node, c *Cursor) error {
		c.WriteStringField(1, n.Label)
		if n.Child != nil {
			return WriteMessage(c, 2, writeNode, n.Child)
		}
		return nil
	}
	var readNode func(field FieldNumber, n *node, c *Cursor) error
	readNode = func(field FieldNumber, n *node, c *Cursor) (err error) {
		switch field {
		case 1:
			n.Label, err = c.ReadString()
		case 2:
			n.Child, err = ReadMessage(c, readNode, &node{})
		}
		return err
	}

	// every level is long enough to need a wider prefix than the one reserved
	var root *node
	for i := 0; i < 6; i++ {
		root = &node{Label: strings.Repeat("n", 150*(i+1)), Child: root}
	}

	c := NewBuffer(0)
	require.NoError(t, WriteMessage(c, 1, writeNode, root))
	c.Finish()

	got, err := ReadFields(c, func(field FieldNumber, n **node, c *Cursor) (err error) {
		if field == 1 {
			*n, err = ReadMessage(c, readNode, &node{})
		}
		return err
	}, new(*node))
	require.NoError(t, err)
	assert.Equal(t, root, *got)
}

func TestWriteMessageRewindsOnError(t *testing.T) {
	boom := errors.New("boom")

	c := NewBuffer(0)
	c.WriteVarint(7)
	err := WriteMessage(c, 3, func(_ int, c *Cursor) error {
		c.WriteBytes(make([]byte, 200))
		return boom
	}, 0)
	require.ErrorIs(t, err, boom)

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, []FieldNumber{3}, fe.FieldPath)

	assert.Equal(t, []byte{7}, c.Finish())
}

func TestWriteMessageNestedErrorPath(t *testing.T) {
	boom := errors.New("bad value")

	c := NewBuffer(0)
	err := WriteMessage(c, 1, func(_ int, c *Cursor) error {
		return WriteMessage(c, 4, func(_ int, c *Cursor) error {
			return boom
		}, 0)
	}, 0)
	assert.EqualError(t, err, "error at field path 1.4: bad value")
	assert.Empty(t, c.Finish())
}

func TestWriteEmptyMessage(t *testing.T) {
	c := NewBuffer(0)
	require.NoError(t, WriteMessage(c, 5, func(struct{}, *Cursor) error { return nil }, struct{}{}))
	assert.Equal(t, []byte{0x2a, 0x00}, c.Finish())

	calls := 0
	_, err := ReadFields(c, func(field FieldNumber, _ *int, c *Cursor) error {
		_, err := ReadMessage(c, func(FieldNumber, *int, *Cursor) error {
			calls++
			return nil
		}, new(int))
		return err
	}, new(int))
	require.NoError(t, err)
	assert.Zero(t, calls)
}
