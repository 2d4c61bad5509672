package buffer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NoSink(t *testing.T) {
	b := New(nil)
	require.NotNil(t, b)
	assert.Equal(t, noSinkInitialSize, cap(b.buf))
}

func TestWrite_NoSink_Accumulates(t *testing.T) {
	b := New(nil)
	require.NoError(t, b.Write([]byte("hello")))
	require.NoError(t, b.Write([]byte(" world")))

	out, err := b.Finalize()
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(out))
}

func TestWrite_NoSink_GrowsByDoubling(t *testing.T) {
	b := New(nil)
	big := make([]byte, noSinkInitialSize+1)
	require.NoError(t, b.Write(big))
	assert.GreaterOrEqual(t, cap(b.buf), noSinkInitialSize+1)
}

func TestWrite_WithSink_DrainsAtThreshold(t *testing.T) {
	var pages [][]byte
	sink := func(page []byte) error {
		cp := make([]byte, len(page))
		copy(cp, page)
		pages = append(pages, cp)

		return nil
	}

	b := New(sink)
	chunk := make([]byte, sinkInitialSize)
	for i := range chunk {
		chunk[i] = byte(i)
	}

	require.NoError(t, b.Write(chunk))
	require.Len(t, pages, 1)
	assert.Equal(t, chunk, pages[0])

	_, err := b.Finalize()
	require.NoError(t, err)
	assert.Len(t, pages, 1, "finalize with nothing buffered should not call sink again")
}

func TestWrite_WithSink_FlushesRemainderOnFinalize(t *testing.T) {
	var pages [][]byte
	sink := func(page []byte) error {
		cp := make([]byte, len(page))
		copy(cp, page)
		pages = append(pages, cp)

		return nil
	}

	b := New(sink)
	require.NoError(t, b.Write([]byte("tail")))

	_, err := b.Finalize()
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "tail", string(pages[0]))
}

func TestWrite_SinkError_Propagates(t *testing.T) {
	boom := errors.New("disk full")
	b := New(func(page []byte) error { return boom })

	chunk := make([]byte, sinkInitialSize)
	err := b.Write(chunk)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestDigest_DisabledByDefault(t *testing.T) {
	b := New(nil)
	_, ok := b.Digest()
	assert.False(t, ok)
}

func TestDigest_DeterministicForEqualBytes(t *testing.T) {
	a := New(nil)
	a.EnableDigest()
	require.NoError(t, a.Write([]byte("same bytes")))
	da, _ := a.Digest()

	c := New(nil)
	c.EnableDigest()
	require.NoError(t, c.Write([]byte("same bytes")))
	dc, _ := c.Digest()

	assert.Equal(t, da, dc)
}
