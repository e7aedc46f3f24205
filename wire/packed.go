package wire

import "fmt"

// Packed repeated fields are a length-delimited run of untagged values. A
// reader also accepts the unpacked form, one tagged value per field, because
// the wire type of the tag tells the two apart.

// readPackedEnd returns where the elements of a packed field end.
func (c *Cursor) readPackedEnd() (int, error) {
	_, end, err := c.readDelimited("packed field")
	return end, err
}

func readPacked[E any](c *Cursor, dst []E, read func(*Cursor) (E, error)) ([]E, error) {
	if c.wireType != WireBytes {
		// a single unpacked element
		v, err := read(c)
		if err != nil {
			return dst, err
		}
		return append(dst, v), nil
	}

	end, err := c.readPackedEnd()
	if err != nil {
		return dst, err
	}
	for c.pos < end {
		v, err := read(c)
		if err != nil {
			return dst, err
		}
		dst = append(dst, v)
	}
	if c.pos > end {
		return dst, fmt.Errorf("%w: last element runs %d bytes past the end of the packed field", ErrTruncatedInput, c.pos-end)
	}
	return dst, nil
}

// ReadPackedVarint appends the elements of a repeated uint32/uint64 field to dst.
func (c *Cursor) ReadPackedVarint(dst []uint64) ([]uint64, error) {
	return readPacked(c, dst, (*Cursor).ReadVarint)
}

// ReadPackedInt64 appends the elements of a repeated int32/int64/enum field to dst.
func (c *Cursor) ReadPackedInt64(dst []int64) ([]int64, error) {
	return readPacked(c, dst, (*Cursor).ReadInt64)
}

// ReadPackedSVarint appends the elements of a repeated sint32/sint64 field to dst.
func (c *Cursor) ReadPackedSVarint(dst []int64) ([]int64, error) {
	return readPacked(c, dst, (*Cursor).ReadSVarint)
}

// ReadPackedBoolean appends the elements of a repeated bool field to dst.
func (c *Cursor) ReadPackedBoolean(dst []bool) ([]bool, error) {
	return readPacked(c, dst, (*Cursor).ReadBoolean)
}

// ReadPackedFloat appends the elements of a repeated float field to dst.
func (c *Cursor) ReadPackedFloat(dst []float32) ([]float32, error) {
	return readPacked(c, dst, (*Cursor).ReadFloat)
}

// ReadPackedDouble appends the elements of a repeated double field to dst.
func (c *Cursor) ReadPackedDouble(dst []float64) ([]float64, error) {
	return readPacked(c, dst, (*Cursor).ReadDouble)
}

// ReadPackedFixed32 appends the elements of a repeated fixed32 field to dst.
func (c *Cursor) ReadPackedFixed32(dst []uint32) ([]uint32, error) {
	return readPacked(c, dst, (*Cursor).ReadFixed32)
}

// ReadPackedSFixed32 appends the elements of a repeated sfixed32 field to dst.
func (c *Cursor) ReadPackedSFixed32(dst []int32) ([]int32, error) {
	return readPacked(c, dst, (*Cursor).ReadSFixed32)
}

// ReadPackedFixed64 appends the elements of a repeated fixed64 field to dst.
func (c *Cursor) ReadPackedFixed64(dst []uint64) ([]uint64, error) {
	return readPacked(c, dst, (*Cursor).ReadFixed64)
}

// ReadPackedSFixed64 appends the elements of a repeated sfixed64 field to dst.
func (c *Cursor) ReadPackedSFixed64(dst []int64) ([]int64, error) {
	return readPacked(c, dst, (*Cursor).ReadSFixed64)
}

func writePacked[E any](c *Cursor, field FieldNumber, arr []E, write func(*Cursor, E)) {
	if len(arr) == 0 {
		return
	}
	// The body writer cannot fail, so neither can WriteMessage.
	_ = WriteMessage(c, field, func(arr []E, c *Cursor) error {
		for _, v := range arr {
			write(c, v)
		}
		return nil
	}, arr)
}

// WritePackedVarint writes arr as a packed repeated uint32/uint64 field.
func (c *Cursor) WritePackedVarint(field FieldNumber, arr []uint64) {
	writePacked(c, field, arr, (*Cursor).WriteVarint)
}

// WritePackedInt64 writes arr as a packed repeated int32/int64/enum field.
func (c *Cursor) WritePackedInt64(field FieldNumber, arr []int64) {
	writePacked(c, field, arr, (*Cursor).WriteInt64)
}

// WritePackedSVarint writes arr as a packed repeated sint32/sint64 field.
func (c *Cursor) WritePackedSVarint(field FieldNumber, arr []int64) {
	writePacked(c, field, arr, (*Cursor).WriteSVarint)
}

// WritePackedBoolean writes arr as a packed repeated bool field.
func (c *Cursor) WritePackedBoolean(field FieldNumber, arr []bool) {
	writePacked(c, field, arr, (*Cursor).WriteBoolean)
}

// WritePackedFloat writes arr as a packed repeated float field.
func (c *Cursor) WritePackedFloat(field FieldNumber, arr []float32) {
	writePacked(c, field, arr, (*Cursor).WriteFloat)
}

// WritePackedDouble writes arr as a packed repeated double field.
func (c *Cursor) WritePackedDouble(field FieldNumber, arr []float64) {
	writePacked(c, field, arr, (*Cursor).WriteDouble)
}

// WritePackedFixed32 writes arr as a packed repeated fixed32 field.
func (c *Cursor) WritePackedFixed32(field FieldNumber, arr []uint32) {
	writePacked(c, field, arr, (*Cursor).WriteFixed32)
}

// WritePackedSFixed32 writes arr as a packed repeated sfixed32 field.
func (c *Cursor) WritePackedSFixed32(field FieldNumber, arr []int32) {
	writePacked(c, field, arr, (*Cursor).WriteSFixed32)
}

// WritePackedFixed64 writes arr as a packed repeated fixed64 field.
func (c *Cursor) WritePackedFixed64(field FieldNumber, arr []uint64) {
	writePacked(c, field, arr, (*Cursor).WriteFixed64)
}

// WritePackedSFixed64 writes arr as a packed repeated sfixed64 field.
func (c *Cursor) WritePackedSFixed64(field FieldNumber, arr []int64) {
	writePacked(c, field, arr, (*Cursor).WriteSFixed64)
}
