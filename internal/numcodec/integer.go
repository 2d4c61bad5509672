// Package numcodec implements the integer, float, and high-precision
// decimal codecs: range-based type-marker selection and endian-aware
// packing, adapted from the teacher repo's raw-value encoders
// (encoding.NumericRawEncoder's direct-memory-operation style) and
// grounded in the original pybj encoder.c's _encode_longlong /
// _encode_PyFloat / _encode_PyDecimal.
package numcodec

import (
	"math/big"

	"github.com/NeuroJSON/bjdata/endian"
	"github.com/NeuroJSON/bjdata/internal/buffer"
	"github.com/NeuroJSON/bjdata/internal/marker"
)

var (
	maxUint8  = big.NewInt(1 << 8)
	maxUint16 = big.NewInt(1 << 16)
	maxUint32 = new(big.Int).Lsh(big.NewInt(1), 32)
	maxUint64 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(1))

	minInt8  = big.NewInt(-1 << 7)
	minInt16 = big.NewInt(-1 << 15)
	minInt32 = big.NewInt(-1 << 31)
	minInt64 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 63))
)

// writeMagnitude writes the marker byte followed by the width-byte
// two's-complement/unsigned encoding of u, in engine byte order.
func writeMagnitude(buf *buffer.OutputBuffer, engine endian.EndianEngine, m byte, u uint64, width int) error {
	if err := buf.WriteByte(m); err != nil {
		return err
	}

	switch width {
	case 1:
		return buf.WriteByte(byte(u))
	case 2:
		var b [2]byte
		engine.PutUint16(b[:], uint16(u))

		return buf.Write(b[:])
	case 4:
		var b [4]byte
		engine.PutUint32(b[:], uint32(u))

		return buf.Write(b[:])
	default:
		var b [8]byte
		engine.PutUint64(b[:], u)

		return buf.Write(b[:])
	}
}

// EncodeBigInt selects the narrowest BJData integer marker for v per the
// §4.2 range table and writes marker+payload. handled is false when v
// falls outside [-2^63, 2^64-1]; the caller must fall back to the
// decimal codec in that case.
func EncodeBigInt(buf *buffer.OutputBuffer, engine endian.EndianEngine, v *big.Int) (handled bool, err error) {
	if v.Sign() >= 0 {
		switch {
		case v.Cmp(maxUint8) < 0:
			return true, writeMagnitude(buf, engine, marker.Uint8, v.Uint64(), 1)
		case v.Cmp(maxUint16) < 0:
			return true, writeMagnitude(buf, engine, marker.Uint16, v.Uint64(), 2)
		case v.Cmp(maxUint32) < 0:
			return true, writeMagnitude(buf, engine, marker.Uint32, v.Uint64(), 4)
		case v.Cmp(maxUint64) <= 0:
			return true, writeMagnitude(buf, engine, marker.Uint64, v.Uint64(), 8)
		default:
			return false, nil
		}
	}

	switch {
	case v.Cmp(minInt8) >= 0:
		return true, writeMagnitude(buf, engine, marker.Int8, uint64(uint8(int8(v.Int64()))), 1)
	case v.Cmp(minInt16) >= 0:
		return true, writeMagnitude(buf, engine, marker.Int16, uint64(uint16(int16(v.Int64()))), 2)
	case v.Cmp(minInt32) >= 0:
		return true, writeMagnitude(buf, engine, marker.Int32, uint64(uint32(int32(v.Int64()))), 4)
	case v.Cmp(minInt64) >= 0:
		return true, writeMagnitude(buf, engine, marker.Int64, uint64(v.Int64()), 8)
	default:
		return false, nil
	}
}

// EncodeLength writes a non-negative count (lengths, dimensions,
// container counts) using the same range table, specialized to plain
// int64 arithmetic since lengths never approach the 2^64-1 boundary that
// forces the big.Int path.
func EncodeLength(buf *buffer.OutputBuffer, engine endian.EndianEngine, n int) error {
	v := int64(n)
	switch {
	case v >= 0 && v < 1<<8:
		return writeMagnitude(buf, engine, marker.Uint8, uint64(v), 1)
	case v >= 0 && v < 1<<16:
		return writeMagnitude(buf, engine, marker.Uint16, uint64(v), 2)
	case v >= 0 && v < 1<<32:
		return writeMagnitude(buf, engine, marker.Uint32, uint64(v), 4)
	case v >= 0:
		return writeMagnitude(buf, engine, marker.Uint64, uint64(v), 8)
	case v >= -1<<7:
		return writeMagnitude(buf, engine, marker.Int8, uint64(uint8(int8(v))), 1)
	case v >= -1<<15:
		return writeMagnitude(buf, engine, marker.Int16, uint64(uint16(int16(v))), 2)
	case v >= -1<<31:
		return writeMagnitude(buf, engine, marker.Int32, uint64(uint32(int32(v))), 4)
	default:
		return writeMagnitude(buf, engine, marker.Int64, uint64(v), 8)
	}
}
