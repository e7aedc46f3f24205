package wire

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Decode/encode errors. They are returned wrapped; match with errors.Is.
var (
	ErrMalformedVarint     = errors.New("varint longer than 10 bytes")
	ErrOversizedVarint     = errors.New("value does not fit into a 10 byte varint")
	ErrUnsupportedWireType = errors.New("unsupported wire type")
	ErrTruncatedInput      = errors.New("unexpected end of buffer")
	ErrMalformedUTF8       = errors.New("malformed utf-8 in string field")
)

// FieldError represents an encoding/decoding error with a field path.
type FieldError struct {
	FieldPath []FieldNumber // outermost first, e.g. [3 2 1] for layer.feature.id
	Err       error         // underlying error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if len(e.FieldPath) == 0 {
		return e.Err.Error()
	}

	parts := make([]string, len(e.FieldPath))
	for i, f := range e.FieldPath {
		parts[i] = strconv.Itoa(int(f))
	}
	return fmt.Sprintf("error at field path %s: %v", strings.Join(parts, "."), e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for compatibility.
func (e *FieldError) Is(target error) bool {
	_, ok := target.(*FieldError)
	return ok
}

// wrapWithField wraps an error with a field number
func wrapWithField(err error, field FieldNumber) error {
	if err == nil {
		return nil
	}

	if fe, ok := err.(*FieldError); ok {
		return &FieldError{
			FieldPath: append([]FieldNumber{field}, fe.FieldPath...),
			Err:       fe.Err,
		}
	}

	return &FieldError{
		FieldPath: []FieldNumber{field},
		Err:       err,
	}
}

// truncated reports an out-of-bounds access of need bytes at pos.
func truncated(what string, pos int, need uint64, length int) error {
	return fmt.Errorf("%w: %s needs %d bytes at offset %d, buffer has %d", ErrTruncatedInput, what, need, pos, length)
}
