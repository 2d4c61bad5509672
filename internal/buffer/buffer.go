// Package buffer implements the encoder's growable output accumulator.
//
// OutputBuffer owns the bytes written by a session until they are either
// returned whole (no sink configured) or drained page-by-page to a
// caller-supplied sink. The growth strategy is adapted from the teacher
// repo's internal/pool.ByteBuffer: double on grow when the buffer is not
// draining, grow to exact fit when it is (since a drained page is about
// to be handed off and doesn't benefit from amortized overallocation).
package buffer

import (
	"fmt"

	"github.com/NeuroJSON/bjdata/errs"
	"github.com/NeuroJSON/bjdata/internal/hash"
)

// Sink receives a filled page of encoded bytes. It must be transactional:
// a returned error aborts the encode and is not retried.
type Sink func(page []byte) error

const (
	// noSinkInitialSize is B when no sink is configured.
	noSinkInitialSize = 64
	// sinkInitialSize is B when a sink is configured; also the drain threshold.
	sinkInitialSize = 256
)

// OutputBuffer is the single mutator of a session's emitted bytes.
//
// Not safe for concurrent use; a session owns exactly one OutputBuffer.
type OutputBuffer struct {
	buf       []byte
	sink      Sink
	threshold int
	digest    *hash.Digest
}

// New creates an OutputBuffer. A nil sink means Finalize returns the
// accumulated bytes directly; a non-nil sink causes pages to be drained
// as they fill past the threshold.
func New(sink Sink) *OutputBuffer {
	b := &OutputBuffer{sink: sink}
	if sink == nil {
		b.threshold = noSinkInitialSize
		b.buf = make([]byte, 0, noSinkInitialSize)
	} else {
		b.threshold = sinkInitialSize
		b.buf = make([]byte, 0, sinkInitialSize)
	}

	return b
}

// EnableDigest turns on the running xxHash64 digest of committed bytes.
// Purely observational: it never changes what is written or drained.
func (b *OutputBuffer) EnableDigest() {
	b.digest = hash.NewDigest()
}

// Digest returns the running digest and whether one was enabled.
func (b *OutputBuffer) Digest() (uint64, bool) {
	if b.digest == nil {
		return 0, false
	}

	return b.digest.Sum64(), true
}

// growNoSink doubles capacity until the buffer can hold extra more bytes.
func (b *OutputBuffer) growNoSink(extra int) {
	needed := len(b.buf) + extra
	if cap(b.buf) >= needed {
		return
	}

	newCap := cap(b.buf)
	if newCap == 0 {
		newCap = noSinkInitialSize
	}

	for newCap < needed {
		newCap *= 2
	}

	grown := make([]byte, len(b.buf), newCap)
	copy(grown, b.buf)
	b.buf = grown
}

// growSinkExact grows to exactly fit extra more bytes, no amortization.
func (b *OutputBuffer) growSinkExact(extra int) {
	needed := len(b.buf) + extra
	if cap(b.buf) >= needed {
		return
	}

	grown := make([]byte, len(b.buf), needed)
	copy(grown, b.buf)
	b.buf = grown
}

// Write appends bytes to the buffer, growing it as needed and draining to
// the sink once the threshold is crossed.
func (b *OutputBuffer) Write(p []byte) error {
	if len(p) == 0 {
		return nil
	}

	if b.sink == nil {
		b.growNoSink(len(p))
	} else {
		b.growSinkExact(len(p))
	}

	b.buf = append(b.buf, p...)

	if b.digest != nil {
		b.digest.Write(p)
	}

	if b.sink != nil && len(b.buf) >= b.threshold {
		if err := b.sink(b.buf); err != nil {
			return fmt.Errorf("%w: %w", errs.ErrSinkError, err)
		}

		b.buf = make([]byte, 0, b.threshold)
	}

	return nil
}

// WriteByte appends a single byte without the caller allocating a slice.
func (b *OutputBuffer) WriteByte(c byte) error {
	var tmp [1]byte
	tmp[0] = c

	return b.Write(tmp[:])
}

// Finalize trims the trailing unused capacity and returns the result.
//
// Without a sink, it returns the accumulated bytes. With a sink, it
// flushes any remaining partial page and returns a nil slice.
func (b *OutputBuffer) Finalize() ([]byte, error) {
	if b.sink == nil {
		out := make([]byte, len(b.buf))
		copy(out, b.buf)

		return out, nil
	}

	if len(b.buf) > 0 {
		if err := b.sink(b.buf); err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrSinkError, err)
		}

		b.buf = nil
	}

	return nil, nil
}
