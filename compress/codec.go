package compress

import "fmt"

// Algorithm identifies a compression codec a Sink can wrap output pages
// with, independent of the BJData wire format itself (compression is
// not part of the wire grammar; it is a transport-level concern for the
// optional sink path).
type Algorithm int

const (
	AlgorithmNone Algorithm = iota
	AlgorithmZstd
	AlgorithmS2
	AlgorithmLZ4
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmNone:
		return "none"
	case AlgorithmZstd:
		return "zstd"
	case AlgorithmS2:
		return "s2"
	case AlgorithmLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// Compressor compresses an emitted page before it reaches the
// underlying sink.
//
// The interface is optimized for the encoder's paged output, where:
//   - Pages are flushed at a fixed drain threshold (see internal/buffer)
//   - Payload sizes are typically small (64B-64KB per page)
//   - Compression runs off the hot encode path, at drain time only
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// The input data is one drained OutputBuffer page.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor's transform for a consumer that
// reads compressed pages back off a sink-backed stream.
//
// This interface mirrors the Compressor interface but focuses on the decompression
// operation. Separate interfaces allow for asymmetric implementations where
// compression and decompression may have different performance characteristics
// or resource requirements.
//
// Example:
//
//	decompressor := NewZstdCompressor()
//	originalData, err := decompressor.Decompress(compressedPayload)
//	if err != nil {
//	    return fmt.Errorf("decompression failed: %w", err)
//	}
//
// Thread Safety: Decompressor implementations must be safe for concurrent use
// or document their thread safety requirements clearly.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// The input data should be previously compressed using the same compression
	// algorithm. The decompressor validates the data format and returns an error
	// if the data is corrupted or uses an incompatible format.
	//
	// Performance expectations:
	//   - Decompression is typically 2-5x faster than compression
	//   - Memory overhead: 1-2x output size for decompression buffers
	//   - Output size: Determined by original data size (stored in compressed format)
	//
	// Error conditions:
	//   - Returns error if input data is corrupted or invalid
	//   - Returns error if data was compressed with incompatible algorithm
	//   - Returns error if decompression buffer allocation fails
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
//
// This interface is useful for implementations that can handle both operations
// efficiently with shared internal state or optimizations.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats provides detailed information about compression operations.
//
// This is useful for monitoring, profiling, and optimization of compression
// performance in a production sink pipeline.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm Algorithm

	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the size of data after compression
	CompressedSize int64

	// Ratio is the ratio of compressed size to original size (< 1.0 for compression)
	Ratio float64

	// CompressionTime is the time taken to compress the data
	CompressionTimeNs int64

	// DecompressionTime is the time taken to decompress the data (if applicable)
	DecompressionTimeNs int64
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Values less than 1.0 indicate successful compression.
// Values equal to 1.0 indicate no compression benefit.
// Values greater than 1.0 indicate compression overhead (rare for time-series data).
//
// Returns:
//   - float64: Compression ratio (0.0 if original size is zero)
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage.
//
// Higher values indicate better compression. The result is negative when
// the compressed size exceeds the original, and 100 when OriginalSize is
// zero (since CompressionRatio reports 0.0 in that case).
//
// Returns:
//   - float64: Space savings percentage (100 * (1 - CompressionRatio()))
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

var builtinCodecs = map[Algorithm]Codec{
	AlgorithmNone: NewNoOpCompressor(),
	AlgorithmZstd: NewZstdCompressor(),
	AlgorithmS2:   NewS2Compressor(),
	AlgorithmLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression algorithm.
func GetCodec(algorithm Algorithm) (Codec, error) {
	if codec, ok := builtinCodecs[algorithm]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression algorithm: %s", algorithm)
}
