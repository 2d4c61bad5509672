package numcodec

import (
	"math/big"
	"testing"

	"github.com/NeuroJSON/bjdata/endian"
	"github.com/NeuroJSON/bjdata/internal/buffer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecimalText_WritesMarkerLengthAndBytes(t *testing.T) {
	buf := buffer.New(nil)
	engine := endian.GetLittleEndianEngine()

	require.NoError(t, EncodeDecimalText(buf, engine, "3.14"))

	out, err := buf.Finalize()
	require.NoError(t, err)
	assert.Equal(t, []byte{'H', 'U', 0x04, '3', '.', '1', '4'}, out)
}

func TestBigIntText_RoundTripsArbitraryPrecision(t *testing.T) {
	v, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)
	assert.Equal(t, "123456789012345678901234567890", BigIntText(v))
}

func TestSubnormalFloatText_IsShortestRoundTrip(t *testing.T) {
	text := SubnormalFloatText(5e-320)
	assert.Equal(t, "5e-320", text)
}

func TestEncodeNullDecimal_WritesNullMarker(t *testing.T) {
	buf := buffer.New(nil)
	require.NoError(t, EncodeNullDecimal(buf))

	out, err := buf.Finalize()
	require.NoError(t, err)
	assert.Equal(t, []byte{'Z'}, out)
}
