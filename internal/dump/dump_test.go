package dump

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anirudhraja/pbf/wire"
)

func sample(t *testing.T) []byte {
	t.Helper()
	c := wire.NewBuffer(0)
	c.WriteVarintField(1, 150)
	c.WriteStringField(2, "testing")
	require.NoError(t, wire.WriteMessage(c, 3, func(_ int, c *wire.Cursor) error {
		c.WriteFixed32Field(1, 1)
		c.WriteFixed64Field(2, 2)
		return nil
	}, 0))
	c.WriteBytesField(4, []byte{0xff, 0x00, 0x07})
	c.WriteStringField(5, "")
	return c.Finish()
}

func TestWalk(t *testing.T) {
	nodes, err := Walk(sample(t), Options{})
	require.NoError(t, err)
	require.Len(t, nodes, 5)

	assert.Equal(t, uint64(150), nodes[0].Value)
	assert.Equal(t, 1, nodes[0].Offset)
	assert.Equal(t, "testing", nodes[1].Value)

	require.True(t, nodes[2].IsMessage())
	require.Len(t, nodes[2].Children, 2)
	assert.Equal(t, uint32(1), nodes[2].Children[0].Value)
	assert.Equal(t, uint64(2), nodes[2].Children[1].Value)
	assert.Equal(t, nodes[2].Offset+1, nodes[2].Children[0].Offset, "child offsets are absolute")

	assert.Equal(t, []byte{0xff, 0x00, 0x07}, nodes[3].Value)
	assert.Equal(t, "", nodes[4].Value)
	assert.Equal(t, 7, Count(nodes))
}

func TestFprint(t *testing.T) {
	nodes, err := Walk(sample(t), Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Fprint(&out, nodes, false))
	assert.Equal(t, strings.Join([]string{
		"1: 150",
		`2: "testing"`,
		"3 {",
		"  1: 0x00000001",
		"  2: 0x0000000000000002",
		"}",
		"4: <ff0007>",
		`5: ""`,
		"",
	}, "\n"), out.String())
}

func TestFprintOffsets(t *testing.T) {
	c := wire.NewBuffer(0)
	c.WriteVarintField(1, 1)
	nodes, err := Walk(c.Finish(), Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Fprint(&out, nodes, true))
	assert.Equal(t, "00000001  1: 1\n", out.String())
}

func TestWalkMaxDepth(t *testing.T) {
	c := wire.NewBuffer(0)
	require.NoError(t, wire.WriteMessage(c, 1, func(_ int, c *wire.Cursor) error {
		return wire.WriteMessage(c, 2, func(_ int, c *wire.Cursor) error {
			c.WriteVarintField(3, 1)
			return nil
		}, 0)
	}, 0))
	data := c.Finish()

	nodes, err := Walk(data, Options{MaxDepth: 1})
	require.NoError(t, err)
	require.True(t, nodes[0].IsMessage())
	assert.False(t, nodes[0].Children[0].IsMessage())
	assert.Equal(t, []byte{0x18, 0x01}, nodes[0].Children[0].Value)

	nodes, err = Walk(data, Options{MaxDepth: -1})
	require.NoError(t, err)
	assert.False(t, nodes[0].IsMessage())
}

func TestWalkLogsFallback(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c := wire.NewBuffer(0)
	c.WriteStringField(2, "testing")
	_, err := Walk(c.Finish(), Options{Logger: logger})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "not a message")
	assert.Contains(t, logs.String(), "field=2")
}

func TestWalkErrors(t *testing.T) {
	_, err := Walk([]byte{0x0a, 0x05, 'a'}, Options{})
	require.ErrorIs(t, err, wire.ErrTruncatedInput)

	// field number zero
	_, err = Walk([]byte{0x00, 0x01}, Options{})
	require.Error(t, err)
}
