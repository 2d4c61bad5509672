// Package bjdata serializes a closed universe of dynamic value types
// into the BJData binary format, a typed extension of UBJSON.
//
// The package is the type-directed encoder core: construct a Value
// tree, open a Session with the desired EncoderPreferences, and call
// EncodeValue followed by Session.Finalize.
package bjdata

import (
	"math/big"

	"github.com/NeuroJSON/bjdata/tensor"
)

// Kind tags the dynamic type of a Value. The set is closed: every
// concrete type implementing Value corresponds to exactly one Kind and
// every Kind has exactly one implementing type.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindDecimal
	KindBytes
	KindText
	KindSequence
	KindMapping
	KindTensor
	KindStructuredArray
)

// Value is implemented by every member of the closed value universe the
// encoder understands. Kind reports which one a given Value is, so the
// dispatcher can branch with a plain type switch.
type Value interface {
	Kind() Kind
}

type nullValue struct{}

func (nullValue) Kind() Kind { return KindNull }

// Null is the single representative of the absence of a value.
var Null Value = nullValue{}

// Bool is a BJData boolean.
type Bool bool

func (Bool) Kind() Kind { return KindBool }

// Int wraps an arbitrary-precision signed integer.
type Int struct {
	V *big.Int
}

func (Int) Kind() Kind { return KindInt }

// IntValue wraps v as an Int Value.
func IntValue(v *big.Int) Int { return Int{V: v} }

// IntFromInt64 is a convenience constructor for small integers.
func IntFromInt64(v int64) Int { return Int{V: big.NewInt(v)} }

// Float is an IEEE-754 binary64 value.
type Float float64

func (Float) Kind() Kind { return KindFloat }

// Decimal carries an arbitrary-precision number whose canonical textual
// form is authoritative. Finite=false represents a non-finite decimal
// (e.g. a source NaN/Infinity token), encoded as NULL.
type Decimal struct {
	Text   string
	Finite bool
}

func (Decimal) Kind() Kind { return KindDecimal }

// DecimalValue wraps a finite decimal's canonical text.
func DecimalValue(text string) Decimal { return Decimal{Text: text, Finite: true} }

// NonFiniteDecimal represents a decimal value with no finite textual form.
var NonFiniteDecimal = Decimal{Finite: false}

// Bytes is an immutable byte buffer.
type Bytes []byte

func (Bytes) Kind() Kind { return KindBytes }

// Text is a Unicode string.
type Text string

func (Text) Kind() Kind { return KindText }

// Sequence is an ordered, finite list of Values. Its pointer identity is
// what the circular-reference tracker records, so two distinct
// Sequences with identical contents are never mistaken for the same
// composite.
type Sequence struct {
	Items []Value
}

func (*Sequence) Kind() Kind { return KindSequence }

// NewSequence creates a Sequence from the given items.
func NewSequence(items ...Value) *Sequence {
	return &Sequence{Items: items}
}

// Append adds v to the sequence and returns the receiver, for chaining.
func (s *Sequence) Append(v Value) *Sequence {
	s.Items = append(s.Items, v)

	return s
}

// Pair is one (key, value) entry of a Mapping. Key is typically Text;
// any other Kind is rejected at encode time with ErrBadKeyType, which is
// how the mapping key contract in §4.8 is enforced for producers that
// build a Mapping directly rather than through Set.
type Pair struct {
	Key   Value
	Value Value
}

// Mapping is an ordered, finite list of (Text, Value) pairs. Like
// Sequence, its pointer identity is what circular-reference detection
// tracks.
type Mapping struct {
	Pairs []Pair
}

func (*Mapping) Kind() Kind { return KindMapping }

// NewMapping creates an empty Mapping.
func NewMapping() *Mapping {
	return &Mapping{}
}

// Set appends a (key, value) pair with a Text key and returns the
// receiver, for chaining. Duplicate keys are not deduplicated; the
// producer is responsible for not introducing them (§3 invariant).
func (m *Mapping) Set(key string, v Value) *Mapping {
	m.Pairs = append(m.Pairs, Pair{Key: Text(key), Value: v})

	return m
}

// SetKey appends a pair with an arbitrary key Value, for exercising or
// testing the BadKeyType rejection path.
func (m *Mapping) SetKey(key Value, v Value) *Mapping {
	m.Pairs = append(m.Pairs, Pair{Key: key, Value: v})

	return m
}

// TensorValue wraps a homogeneous numeric array (any rank, including 0)
// supplied by an array-library adapter.
type TensorValue struct {
	T tensor.NumericTensor
}

func (TensorValue) Kind() Kind { return KindTensor }

// NewTensor wraps t as a Value.
func NewTensor(t tensor.NumericTensor) TensorValue {
	return TensorValue{T: t}
}

// StructuredArrayValue wraps a structured (record) array supplied by an
// array-library adapter.
type StructuredArrayValue struct {
	T tensor.StructuredTensor
}

func (StructuredArrayValue) Kind() Kind { return KindStructuredArray }

// NewStructuredArray wraps t as a Value.
func NewStructuredArray(t tensor.StructuredTensor) StructuredArrayValue {
	return StructuredArrayValue{T: t}
}
