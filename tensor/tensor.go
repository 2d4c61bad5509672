// Package tensor encodes homogeneous numeric arrays and structured
// (record) arrays for an array-library-agnostic caller: it only needs
// an element-kind tag, a shape, a byte stride, and a raw payload,
// mirroring the minimal adapter shape the teacher repo's columnar
// encoders expect from a caller-supplied value source.
package tensor

import (
	"github.com/NeuroJSON/bjdata/endian"
	"github.com/NeuroJSON/bjdata/internal/buffer"
	"github.com/NeuroJSON/bjdata/internal/marker"
	"github.com/NeuroJSON/bjdata/internal/numcodec"
)

// ElementKind enumerates the scalar element types a tensor or a
// structured-array field can hold.
type ElementKind int

const (
	Bool ElementKind = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float16
	Float32
	Float64
	Complex64
	Complex128
	// FixedText is a fixed-width Unicode element (e.g. numpy's 'U' dtype):
	// each element is WIDTH 4-byte code units, laid out row-major like any
	// other scalar, but with an extra trailing shape dimension equal to
	// the code-unit width.
	FixedText
)

const fixedTextCodeUnitWidth = 4

// Marker maps an element kind to the BJData scalar marker used in typed
// containers and structured-array schemas, per the §4.6 table.
func Marker(k ElementKind) byte {
	switch k {
	case Bool, Uint8:
		return marker.Uint8
	case Int8:
		return marker.Int8
	case Int16:
		return marker.Int16
	case Int32:
		return marker.Int32
	case Int64:
		return marker.Int64
	case Uint16:
		return marker.Uint16
	case Uint32:
		return marker.Uint32
	case Uint64:
		return marker.Uint64
	case Float16:
		return marker.Float16
	case Float32, Complex64:
		return marker.Float32
	case Float64, Complex128:
		return marker.Float64
	case FixedText:
		return marker.Char
	default:
		return marker.Null
	}
}

// ItemSize reports the scalar byte width for k, used to slice a
// structured-array record's raw bytes field by field. FixedText has no
// fixed scalar width (its element is itself code-unit-wide) and is not
// a valid structured-array field kind.
func ItemSize(k ElementKind) int {
	switch k {
	case Bool, Int8, Uint8:
		return 1
	case Int16, Uint16, Float16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64, Complex64:
		return 8
	case Complex128:
		return 16
	default:
		return 0
	}
}

// NumericTensor is the minimal adapter interface an array library (or a
// hand-built fixture) implements: an element kind, a shape, and the raw
// row-major payload bytes in the caller's native byte order. The core
// never repacks tensor payload bytes — only the shape integers and
// schema go through the endian-aware codecs.
type NumericTensor interface {
	ElementKind() ElementKind
	Shape() []int
	Payload() []byte
}

// Encode writes t per §4.6: a bare marker+bytes for rank 0, otherwise a
// typed, counted array whose trailing dimension block is followed by
// the verbatim payload.
func Encode(buf *buffer.OutputBuffer, engine endian.EndianEngine, t NumericTensor) error {
	kind := t.ElementKind()
	shape := t.Shape()
	payload := t.Payload()

	if len(shape) == 0 {
		// A scalar uses the plain STRING marker for text, not the CHAR
		// substitution the rank>=1 typed-array branch below makes: CHAR is
		// a fixed one-raw-byte marker with no length field, so it cannot
		// carry a FixedText scalar's length-prefixed payload. The original
		// encoder.c's ndim==0 branch looks up the scalar marker directly
		// (TYPE_STRING for string/unicode dtypes) and only swaps in
		// TYPE_CHAR inside the ndim>=1 CONTAINER_TYPE byte.
		scalarMarker := Marker(kind)
		if kind == FixedText {
			scalarMarker = marker.String
		}

		if err := buf.WriteByte(scalarMarker); err != nil {
			return err
		}

		if kind == FixedText {
			if err := numcodec.EncodeLength(buf, engine, len(payload)); err != nil {
				return err
			}
		}

		return buf.Write(payload)
	}

	if err := buf.WriteByte(marker.ArrayStart); err != nil {
		return err
	}

	if err := buf.WriteByte(marker.ContainerType); err != nil {
		return err
	}

	if err := buf.WriteByte(Marker(kind)); err != nil {
		return err
	}

	if err := buf.WriteByte(marker.ContainerCount); err != nil {
		return err
	}

	dims := shape
	if kind == FixedText {
		dims = append(append([]int{}, shape...), fixedTextCodeUnitWidth)
	}

	if err := buf.WriteByte(marker.ArrayStart); err != nil {
		return err
	}

	for _, d := range dims {
		if err := numcodec.EncodeLength(buf, engine, d); err != nil {
			return err
		}
	}

	if err := buf.WriteByte(marker.ArrayEnd); err != nil {
		return err
	}

	return buf.Write(payload)
}
