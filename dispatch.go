package bjdata

import (
	"fmt"
	"sort"

	"github.com/NeuroJSON/bjdata/errs"
	"github.com/NeuroJSON/bjdata/internal/marker"
	"github.com/NeuroJSON/bjdata/internal/numcodec"
	"github.com/NeuroJSON/bjdata/internal/textcodec"
	"github.com/NeuroJSON/bjdata/tensor"
)

// EncodeValue dispatches on v's dynamic type and writes its BJData
// encoding to the session's buffer, per the §4.8 priority order. Since
// Value is a closed tagged union, the branches below are mutually
// exclusive by construction; the ordering that matters is the internal
// fallback chain each branch implements (integer range overflow, float
// classification, and the trailing default-fallback hook).
func EncodeValue(s *Session, v Value) error {
	if s.err != nil {
		return fmt.Errorf("%w", errs.ErrSessionClosed)
	}

	if err := encodeValue(s, v); err != nil {
		s.err = err

		return err
	}

	return nil
}

// encodeValue is the unwrapped recursive-descent entry point; composite
// codecs re-enter it directly (not EncodeValue) so the closed-session
// check and error-latching happen once per root call, not once per node.
func encodeValue(s *Session, v Value) error {
	switch val := v.(type) {
	case nullValue:
		return s.buf.WriteByte(marker.Null)
	case Bool:
		if val {
			return s.buf.WriteByte(marker.BoolTrue)
		}

		return s.buf.WriteByte(marker.BoolFalse)
	case Text:
		return textcodec.Encode(s.buf, s.engine, string(val))
	case Int:
		return encodeInt(s, val)
	case Float:
		return encodeFloat(s, val)
	case Decimal:
		return encodeDecimal(s, val)
	case Bytes:
		return encodeBytes(s, val)
	case TensorValue:
		return tensor.Encode(s.buf, s.engine, val.T)
	case StructuredArrayValue:
		return encodeStructuredArray(s, val)
	case *Sequence:
		return encodeSequence(s, val)
	case *Mapping:
		return encodeMapping(s, val)
	default:
		return encodeFallback(s, v)
	}
}

func encodeInt(s *Session, v Int) error {
	handled, err := numcodec.EncodeBigInt(s.buf, s.engine, v.V)
	if err != nil {
		return err
	}

	if handled {
		return nil
	}

	return numcodec.EncodeDecimalText(s.buf, s.engine, numcodec.BigIntText(v.V))
}

func encodeFloat(s *Session, v Float) error {
	ok, err := numcodec.EncodeFloat64(s.buf, s.engine, float64(v), s.prefs.NoFloat32)
	if err != nil {
		return err
	}

	if ok {
		return nil
	}

	return numcodec.EncodeDecimalText(s.buf, s.engine, numcodec.SubnormalFloatText(float64(v)))
}

func encodeDecimal(s *Session, d Decimal) error {
	if !d.Finite {
		return numcodec.EncodeNullDecimal(s.buf)
	}

	return numcodec.EncodeDecimalText(s.buf, s.engine, d.Text)
}

// encodeBytes writes the fixed ARRAY_START TYPE UINT8 COUNT prefix, the
// length, and the raw bytes, with no ARRAY_END terminator (the COUNT
// already bounds the container per §4.8 step 6).
func encodeBytes(s *Session, b Bytes) error {
	if err := s.buf.WriteByte(marker.ArrayStart); err != nil {
		return err
	}

	if err := s.buf.WriteByte(marker.ContainerType); err != nil {
		return err
	}

	if err := s.buf.WriteByte(marker.Uint8); err != nil {
		return err
	}

	if err := s.buf.WriteByte(marker.ContainerCount); err != nil {
		return err
	}

	if err := numcodec.EncodeLength(s.buf, s.engine, len(b)); err != nil {
		return err
	}

	return s.buf.Write(b)
}

func encodeStructuredArray(s *Session, sv StructuredArrayValue) error {
	layout := tensor.Column
	if s.prefs.SOAFormat == SOARow {
		layout = tensor.Row
	}

	return tensor.EncodeStructured(s.buf, s.engine, sv.T, layout)
}

// enterComposite applies the recursion-depth gate and circular-reference
// check shared by Sequence and Mapping, and returns the cleanup to run on
// the way back out regardless of outcome. The default-fallback path
// applies the same depth gate in encodeFallback, without the identity
// check.
func (s *Session) enterComposite(id any) (leave func(), err error) {
	s.depth++

	if s.depth > defaultMaxDepth {
		s.depth--

		return func() {}, errs.ErrRecursionDepthExceeded
	}

	if err := s.visited.Enter(id); err != nil {
		s.depth--

		return func() {}, err
	}

	return func() {
		s.visited.Leave(id)
		s.depth--
	}, nil
}

func encodeSequence(s *Session, seq *Sequence) error {
	leave, err := s.enterComposite(seq)
	if err != nil {
		return err
	}
	defer leave()

	if s.prefs.ContainerCount {
		if err := s.buf.WriteByte(marker.ArrayStart); err != nil {
			return err
		}

		if err := s.buf.WriteByte(marker.ContainerCount); err != nil {
			return err
		}

		if err := numcodec.EncodeLength(s.buf, s.engine, len(seq.Items)); err != nil {
			return err
		}

		for _, item := range seq.Items {
			if err := encodeValue(s, item); err != nil {
				return err
			}
		}

		return nil
	}

	if err := s.buf.WriteByte(marker.ArrayStart); err != nil {
		return err
	}

	for _, item := range seq.Items {
		if err := encodeValue(s, item); err != nil {
			return err
		}
	}

	return s.buf.WriteByte(marker.ArrayEnd)
}

func encodeMapping(s *Session, m *Mapping) error {
	leave, err := s.enterComposite(m)
	if err != nil {
		return err
	}
	defer leave()

	pairs := m.Pairs
	if s.prefs.SortKeys {
		sorted := make([]Pair, len(pairs))
		copy(sorted, pairs)
		sort.SliceStable(sorted, func(i, j int) bool {
			ki, _ := sorted[i].Key.(Text)
			kj, _ := sorted[j].Key.(Text)

			return ki < kj
		})
		pairs = sorted
	}

	if s.prefs.ContainerCount {
		if err := s.buf.WriteByte(marker.ObjectStart); err != nil {
			return err
		}

		if err := s.buf.WriteByte(marker.ContainerCount); err != nil {
			return err
		}

		if err := numcodec.EncodeLength(s.buf, s.engine, len(pairs)); err != nil {
			return err
		}

		for _, p := range pairs {
			if err := encodeMappingPair(s, p); err != nil {
				return err
			}
		}

		return nil
	}

	if err := s.buf.WriteByte(marker.ObjectStart); err != nil {
		return err
	}

	for _, p := range pairs {
		if err := encodeMappingPair(s, p); err != nil {
			return err
		}
	}

	return s.buf.WriteByte(marker.ObjectEnd)
}

// encodeMappingPair enforces the text-only key contract (§4.8: "Only
// text keys are accepted; non-text keys cause BadKeyType") and writes
// the key as a bare length-prefixed UTF-8 byte string, with no type
// marker of its own — the object grammar implies the key is text.
func encodeMappingPair(s *Session, p Pair) error {
	key, ok := p.Key.(Text)
	if !ok {
		return fmt.Errorf("%w: got %T", errs.ErrBadKeyType, p.Key)
	}

	if err := numcodec.EncodeLength(s.buf, s.engine, len(key)); err != nil {
		return err
	}

	if err := s.buf.Write([]byte(key)); err != nil {
		return err
	}

	return encodeValue(s, p.Value)
}

// encodeFallback invokes the configured default fallback at most once
// per node and re-dispatches on its result, per §9's fallback-recursion
// note. Each fallback step counts toward the same recursion-depth gate
// as Sequence and Mapping, so a chain of replacements that never reaches
// a supported value ends in ErrRecursionDepthExceeded.
func encodeFallback(s *Session, v Value) error {
	if s.prefs.DefaultFallback == nil {
		return fmt.Errorf("%w: %T", errs.ErrUnsupportedType, v)
	}

	s.depth++
	defer func() { s.depth-- }()

	if s.depth > defaultMaxDepth {
		return errs.ErrRecursionDepthExceeded
	}

	replaced, err := s.prefs.DefaultFallback(v)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrFallbackFailed, err)
	}

	if sameValueIdentity(v, replaced) {
		return fmt.Errorf("%w: fallback returned the same value", errs.ErrFallbackFailed)
	}

	return encodeValue(s, replaced)
}

// sameValueIdentity reports whether a and b are the same Value,
// guarding against custom Value implementations backed by an
// uncomparable type (slice, map, func), whose == would otherwise panic.
func sameValueIdentity(a, b Value) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()

	return a == b
}
