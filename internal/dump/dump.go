// Package dump decodes protobuf payloads without a schema, in the manner of
// protoc --decode_raw.
package dump

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/anirudhraja/pbf/wire"
)

// DefaultMaxDepth bounds how deep length-delimited fields are tried as messages.
const DefaultMaxDepth = 16

// Node is one decoded field.
type Node struct {
	Field    wire.FieldNumber
	WireType wire.WireType
	Offset   int // of the payload, from the start of the outermost buffer

	// Value holds a uint64 for varint and fixed64, uint32 for fixed32, and a
	// string or []byte for length-delimited fields that are not messages.
	Value    interface{}
	Children []*Node // set when a length-delimited field parsed as a message
}

// IsMessage reports whether the node was decoded as an embedded message.
func (n *Node) IsMessage() bool { return n.Children != nil }

type Options struct {
	MaxDepth int // 0 means DefaultMaxDepth; negative disables nesting
	Logger   *slog.Logger
}

type walker struct {
	maxDepth int
	log      *slog.Logger
}

// Walk decodes data into a field tree. Length-delimited fields are decoded as
// embedded messages when every byte of them parses as one, otherwise as text
// when they are printable UTF-8 and as raw bytes if not.
func Walk(data []byte, opts Options) ([]*Node, error) {
	w := walker{maxDepth: opts.MaxDepth, log: opts.Logger}
	if w.maxDepth == 0 {
		w.maxDepth = DefaultMaxDepth
	}
	if w.log == nil {
		w.log = slog.New(discardHandler{})
	}
	return w.walk(data, 0, 0)
}

func (w walker) walk(data []byte, base, depth int) ([]*Node, error) {
	fields, err := wire.Fields(data)
	if err != nil {
		return nil, err
	}

	nodes := make([]*Node, 0, len(fields))
	for _, f := range fields {
		if f.FieldNumber < 1 {
			return nil, fmt.Errorf("invalid field number %d at offset %d", f.FieldNumber, base+f.Offset)
		}
		n := &Node{Field: f.FieldNumber, WireType: f.WireType, Offset: base + f.Offset}
		if err := w.fill(n, f, depth); err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (w walker) fill(n *Node, f wire.RawValue, depth int) (err error) {
	c := wire.NewCursor(f.Data)
	switch f.WireType {
	case wire.WireVarint:
		n.Value, err = c.ReadVarint()
	case wire.WireFixed64:
		n.Value, err = c.ReadFixed64()
	case wire.WireFixed32:
		n.Value, err = c.ReadFixed32()
	case wire.WireBytes:
		w.fillBytes(n, f.Data, depth)
	}
	return err
}

func (w walker) fillBytes(n *Node, data []byte, depth int) {
	if len(data) > 0 && depth < w.maxDepth {
		children, err := w.walk(data, n.Offset, depth+1)
		if err == nil {
			n.Children = children
			return
		}
		w.log.Debug("not a message", "field", n.Field, "offset", n.Offset, "len", len(data), "reason", err)
	}
	if isText(data) {
		n.Value = string(data)
	} else {
		n.Value = data
	}
}

func isText(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}
	for _, r := range string(b) {
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Count returns the number of nodes in the tree.
func Count(nodes []*Node) int {
	n := len(nodes)
	for _, node := range nodes {
		n += Count(node.Children)
	}
	return n
}

// Fprint writes nodes in decode_raw text form. With offsets set every line is
// prefixed by the payload offset.
func Fprint(out io.Writer, nodes []*Node, offsets bool) error {
	var sb strings.Builder
	format(&sb, nodes, 0, offsets)
	_, err := io.WriteString(out, sb.String())
	return err
}

func format(sb *strings.Builder, nodes []*Node, indent int, offsets bool) {
	for _, n := range nodes {
		if offsets {
			fmt.Fprintf(sb, "%08x  ", n.Offset)
		}
		sb.WriteString(strings.Repeat("  ", indent))
		sb.WriteString(strconv.Itoa(int(n.Field)))

		if n.IsMessage() {
			sb.WriteString(" {\n")
			format(sb, n.Children, indent+1, offsets)
			if offsets {
				sb.WriteString("          ")
			}
			sb.WriteString(strings.Repeat("  ", indent))
			sb.WriteString("}\n")
			continue
		}

		sb.WriteString(": ")
		switch v := n.Value.(type) {
		case uint32:
			fmt.Fprintf(sb, "0x%08x", v)
		case uint64:
			if n.WireType == wire.WireFixed64 {
				fmt.Fprintf(sb, "0x%016x", v)
			} else {
				sb.WriteString(strconv.FormatUint(v, 10))
			}
		case string:
			sb.WriteString(strconv.Quote(v))
		case []byte:
			fmt.Fprintf(sb, "<%x>", v)
		}
		sb.WriteByte('\n')
	}
}

// discardHandler drops every record.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler     { return d }
func (d discardHandler) WithGroup(string) slog.Handler          { return d }
