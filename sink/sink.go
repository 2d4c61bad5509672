// Package sink provides buffer.Sink implementations that drain encoded
// pages to an io.Writer, optionally compressing each page first.
package sink

import (
	"fmt"
	"io"

	"github.com/NeuroJSON/bjdata/compress"
	"github.com/NeuroJSON/bjdata/internal/buffer"
)

// Writer drains pages directly to w without any transformation.
//
// Use this when a session must stream its output incrementally (e.g. one
// Finalize call per page via buffer.New(sink) + a nil sink for small
// single-shot payloads is simpler; Writer is for the streaming case).
func Writer(w io.Writer) buffer.Sink {
	return func(page []byte) error {
		_, err := w.Write(page)
		return err
	}
}

// CompressingSink compresses each drained page with algorithm before
// writing it to w.
//
// Compression operates per page, not over the whole session's output:
// a reader must know the page boundaries (and the algorithm used) to
// reverse the transform, since the compressed stream is not itself a
// single valid Codec payload.
func CompressingSink(w io.Writer, algorithm compress.Algorithm) (buffer.Sink, error) {
	codec, err := compress.GetCodec(algorithm)
	if err != nil {
		return nil, fmt.Errorf("sink: %w", err)
	}

	return func(page []byte) error {
		compressed, err := codec.Compress(page)
		if err != nil {
			return fmt.Errorf("sink: compress page: %w", err)
		}

		if _, err := w.Write(compressed); err != nil {
			return fmt.Errorf("sink: write compressed page: %w", err)
		}

		return nil
	}, nil
}
