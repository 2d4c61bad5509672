package numcodec

import (
	"math"

	"github.com/NeuroJSON/bjdata/endian"
	"github.com/NeuroJSON/bjdata/internal/buffer"
	"github.com/NeuroJSON/bjdata/internal/marker"
)

// floatClass classifies a float64 the way the original C encoder relies
// on fpclassify, implemented directly on the IEEE-754 bit pattern so the
// classification never depends on the host libm.
type floatClass int

const (
	classNormal floatClass = iota
	classZero
	classSubnormal
	classInfOrNaN
)

const (
	exponentMask = 0x7FF0000000000000
	mantissaMask = 0x000FFFFFFFFFFFFF
)

func classify(x float64) floatClass {
	bits := math.Float64bits(x)
	exp := bits & exponentMask
	mant := bits & mantissaMask

	switch {
	case exp == exponentMask:
		return classInfOrNaN
	case exp == 0:
		if mant == 0 {
			return classZero
		}

		return classSubnormal
	default:
		return classNormal
	}
}

// float32 normal-range bounds from the §4.3 classification table.
const (
	float32NormalMin = 1.18e-38
	float32NormalMax = 3.4e38
)

// EncodeFloat64 classifies x per the §4.3 table and writes the resulting
// marker and payload. NaN and ±Inf collapse to NULL (lossy, by design).
// ±0 always takes the 4-byte FLOAT32 path. A subnormal magnitude is
// delegated to the caller (ok=false) so it can be re-encoded through the
// decimal codec, preserving the exact textual form a binary float32/64
// payload would lose.
func EncodeFloat64(buf *buffer.OutputBuffer, engine endian.EndianEngine, x float64, noFloat32 bool) (ok bool, err error) {
	switch classify(x) {
	case classInfOrNaN:
		return true, buf.WriteByte(marker.Null)
	case classZero:
		return true, encodeFloat32(buf, engine, float32(x))
	case classSubnormal:
		return false, nil
	default:
		abs := math.Abs(x)
		if !noFloat32 && abs >= float32NormalMin && abs <= float32NormalMax {
			return true, encodeFloat32(buf, engine, float32(x))
		}

		return true, encodeFloat64(buf, engine, x)
	}
}

func encodeFloat32(buf *buffer.OutputBuffer, engine endian.EndianEngine, x float32) error {
	if err := buf.WriteByte(marker.Float32); err != nil {
		return err
	}

	var b [4]byte
	engine.PutUint32(b[:], math.Float32bits(x))

	return buf.Write(b[:])
}

func encodeFloat64(buf *buffer.OutputBuffer, engine endian.EndianEngine, x float64) error {
	if err := buf.WriteByte(marker.Float64); err != nil {
		return err
	}

	var b [8]byte
	engine.PutUint64(b[:], math.Float64bits(x))

	return buf.Write(b[:])
}
