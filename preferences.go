package bjdata

import (
	"github.com/NeuroJSON/bjdata/internal/options"
	"github.com/NeuroJSON/bjdata/logx"
)

// SOAFormat selects the structured-array output layout.
type SOAFormat int

const (
	// SOANone lets the encoder auto-select a layout (Column) for
	// structured arrays; it has no effect on plain tensors or scalars.
	SOANone SOAFormat = iota
	SOARow
	SOAColumn
)

// FallbackFunc converts an otherwise-unsupported Value into one the
// encoder can handle. It must not return the same Value identity it was
// given; a returned error is reported as ErrFallbackFailed.
type FallbackFunc func(Value) (Value, error)

// Option is a functional option for configuring EncoderPreferences.
type Option = options.Option[*EncoderPreferences]

// EncoderPreferences configures one encoding session. The zero value is
// not ready to use; build one with NewPreferences and functional
// options.
type EncoderPreferences struct {
	ContainerCount  bool
	SortKeys        bool
	NoFloat32       bool
	LittleEndian    bool
	SOAFormat       SOAFormat
	DefaultFallback FallbackFunc
	Logger          logx.Logger
	EnableDigest    bool
}

// NewPreferences returns the default preferences: little-endian,
// terminator-delimited containers, unsorted keys, float32 preferred
// when lossless, no SOA layout override, no fallback, no digest.
func NewPreferences(opts ...Option) (*EncoderPreferences, error) {
	p := &EncoderPreferences{LittleEndian: true}
	if err := options.Apply(p, opts...); err != nil {
		return nil, err
	}

	return p, nil
}

// WithContainerCount emits COUNT-prefixed containers instead of
// terminator-delimited ones for sequences and mappings.
func WithContainerCount() Option {
	return options.NoError(func(p *EncoderPreferences) {
		p.ContainerCount = true
	})
}

// WithSortKeys emits mapping pairs in lexicographic key order.
func WithSortKeys() Option {
	return options.NoError(func(p *EncoderPreferences) {
		p.SortKeys = true
	})
}

// WithNoFloat32 always uses FLOAT64 for normal-range floats.
func WithNoFloat32() Option {
	return options.NoError(func(p *EncoderPreferences) {
		p.NoFloat32 = true
	})
}

// WithLittleEndian selects little-endian byte order. It is the default.
func WithLittleEndian() Option {
	return options.NoError(func(p *EncoderPreferences) {
		p.LittleEndian = true
	})
}

// WithBigEndian selects big-endian byte order.
func WithBigEndian() Option {
	return options.NoError(func(p *EncoderPreferences) {
		p.LittleEndian = false
	})
}

// WithSOAFormat overrides the structured-array layout.
func WithSOAFormat(f SOAFormat) Option {
	return options.NoError(func(p *EncoderPreferences) {
		p.SOAFormat = f
	})
}

// WithDefaultFallback installs a fallback for values the dispatcher has
// no codec for. Without one, such values fail with ErrUnsupportedType.
func WithDefaultFallback(fn FallbackFunc) Option {
	return options.NoError(func(p *EncoderPreferences) {
		p.DefaultFallback = fn
	})
}

// WithLogger attaches a logger for session lifecycle events. Without
// one, events are discarded.
func WithLogger(l logx.Logger) Option {
	return options.NoError(func(p *EncoderPreferences) {
		p.Logger = l
	})
}

// WithDigest turns on the running xxHash64 digest of emitted bytes. The
// digest never affects wire output; it is available from Session.Digest
// after Finalize for callers who want a cheap output fingerprint.
func WithDigest() Option {
	return options.NoError(func(p *EncoderPreferences) {
		p.EnableDigest = true
	})
}
