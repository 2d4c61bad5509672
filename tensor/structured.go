package tensor

import (
	"fmt"

	"github.com/NeuroJSON/bjdata/endian"
	"github.com/NeuroJSON/bjdata/errs"
	"github.com/NeuroJSON/bjdata/internal/buffer"
	"github.com/NeuroJSON/bjdata/internal/marker"
	"github.com/NeuroJSON/bjdata/internal/numcodec"
	"github.com/NeuroJSON/bjdata/internal/pool"
)

// Layout selects row (array-of-structs) or column (struct-of-arrays)
// output for a structured array.
type Layout int

const (
	Row Layout = iota
	Column
)

// FieldDescriptor describes one named scalar field of a structured
// array's record type.
type FieldDescriptor struct {
	Name       string
	Kind       ElementKind
	ByteOffset int
}

// StructuredTensor is the adapter interface for a record array: a
// shape, a field schema, the byte stride between consecutive records,
// and the raw row-major payload. Column layout is derived from this
// single row-major representation using each field's byte offset — the
// adapter never needs to supply a pre-transposed copy.
type StructuredTensor interface {
	Shape() []int
	Fields() []FieldDescriptor
	Stride() int
	Payload() []byte
}

// EncodeStructured writes t per §4.7: schema object, then count spec,
// then the field payload in the requested layout.
func EncodeStructured(buf *buffer.OutputBuffer, engine endian.EndianEngine, t StructuredTensor, layout Layout) error {
	shape := t.Shape()
	fields := t.Fields()
	stride := t.Stride()
	payload := t.Payload()

	for _, f := range fields {
		if f.Kind == FixedText || ItemSize(f.Kind) == 0 {
			return fmt.Errorf("%w: structured-array field %q has no fixed scalar width", errs.ErrInvalidStructuredArray, f.Name)
		}
	}

	outer := byte(marker.ArrayStart)
	if layout == Column {
		outer = marker.ObjectStart
	}

	if err := buf.WriteByte(outer); err != nil {
		return err
	}

	if err := buf.WriteByte(marker.ContainerType); err != nil {
		return err
	}

	if err := writeSchema(buf, engine, fields); err != nil {
		return err
	}

	if err := buf.WriteByte(marker.ContainerCount); err != nil {
		return err
	}

	if err := writeCountSpec(buf, engine, shape); err != nil {
		return err
	}

	recordCount := 1
	for _, d := range shape {
		recordCount *= d
	}

	if layout == Row {
		for rec := 0; rec < recordCount; rec++ {
			base := rec * stride
			for _, f := range fields {
				if err := writeFieldValue(buf, f, payload, base); err != nil {
					return err
				}
			}
		}

		return nil
	}

	// Column layout transposes the row-major payload field-by-field.
	// Each field's column is gathered into a pooled scratch buffer first
	// so it reaches the output as a single contiguous write instead of
	// recordCount individual ones.
	colBuf := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(colBuf)

	for _, f := range fields {
		colBuf.Reset()
		gatherColumn(colBuf, f, payload, stride, recordCount)

		if err := buf.Write(colBuf.Bytes()); err != nil {
			return err
		}
	}

	return nil
}

// gatherColumn appends field f's value for every record into col, in
// record order, producing the contiguous column bjdata's Column layout
// writes for that field.
func gatherColumn(col *pool.ByteBuffer, f FieldDescriptor, payload []byte, stride, recordCount int) {
	if f.Kind == Bool {
		for rec := 0; rec < recordCount; rec++ {
			off := rec*stride + f.ByteOffset
			if payload[off] != 0 {
				col.MustWrite([]byte{marker.BoolTrue})
			} else {
				col.MustWrite([]byte{marker.BoolFalse})
			}
		}

		return
	}

	size := ItemSize(f.Kind)

	for rec := 0; rec < recordCount; rec++ {
		off := rec*stride + f.ByteOffset
		col.MustWrite(payload[off : off+size])
	}
}

func writeSchema(buf *buffer.OutputBuffer, engine endian.EndianEngine, fields []FieldDescriptor) error {
	if err := buf.WriteByte(marker.ObjectStart); err != nil {
		return err
	}

	for _, f := range fields {
		if err := numcodec.EncodeLength(buf, engine, len(f.Name)); err != nil {
			return err
		}

		if err := buf.Write([]byte(f.Name)); err != nil {
			return err
		}

		if err := buf.WriteByte(Marker(f.Kind)); err != nil {
			return err
		}
	}

	return buf.WriteByte(marker.ObjectEnd)
}

func writeCountSpec(buf *buffer.OutputBuffer, engine endian.EndianEngine, shape []int) error {
	if len(shape) == 1 {
		return numcodec.EncodeLength(buf, engine, shape[0])
	}

	if err := buf.WriteByte(marker.ArrayStart); err != nil {
		return err
	}

	for _, d := range shape {
		if err := numcodec.EncodeLength(buf, engine, d); err != nil {
			return err
		}
	}

	return buf.WriteByte(marker.ArrayEnd)
}

func writeFieldValue(buf *buffer.OutputBuffer, f FieldDescriptor, payload []byte, recordBase int) error {
	off := recordBase + f.ByteOffset

	if f.Kind == Bool {
		if payload[off] != 0 {
			return buf.WriteByte(marker.BoolTrue)
		}

		return buf.WriteByte(marker.BoolFalse)
	}

	size := ItemSize(f.Kind)

	return buf.Write(payload[off : off+size])
}
