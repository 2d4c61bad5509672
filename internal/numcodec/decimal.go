package numcodec

import (
	"math/big"
	"strconv"

	"github.com/NeuroJSON/bjdata/endian"
	"github.com/NeuroJSON/bjdata/internal/buffer"
	"github.com/NeuroJSON/bjdata/internal/marker"
)

// EncodeDecimalText writes the HIGH_PREC marker, its length, and the raw
// ASCII text, the BJData fallback representation for values that cannot
// round-trip through a fixed-width numeric marker: integers wider than
// 64 bits and subnormal floats.
func EncodeDecimalText(buf *buffer.OutputBuffer, engine endian.EndianEngine, text string) error {
	if err := buf.WriteByte(marker.HighPrec); err != nil {
		return err
	}

	if err := EncodeLength(buf, engine, len(text)); err != nil {
		return err
	}

	return buf.Write([]byte(text))
}

// BigIntText renders an arbitrary-precision integer as the exact decimal
// text EncodeDecimalText expects, for the overflow path out of
// EncodeBigInt.
func BigIntText(v *big.Int) string {
	return v.String()
}

// SubnormalFloatText renders x (known subnormal, so finite and nonzero)
// as the shortest decimal string that round-trips back to the same
// float64 bit pattern ('g' format, so subnormals render in exponent
// form, e.g. "5e-320").
func SubnormalFloatText(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// EncodeNullDecimal writes NULL, the representation for a non-finite
// decimal value (one whose source text could not be parsed as finite).
func EncodeNullDecimal(buf *buffer.OutputBuffer) error {
	return buf.WriteByte(marker.Null)
}
