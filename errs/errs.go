// Package errs defines the sentinel errors returned by the encoder core.
//
// Every error the encoder surfaces wraps one of these sentinels with
// fmt.Errorf("%w: ..."), so callers can test the error kind with errors.Is
// regardless of the added context.
package errs

import "errors"

var (
	// ErrOutOfMemory is the error kind for a failed output-buffer
	// allocation. No code path returns it: a failed make panics instead.
	ErrOutOfMemory = errors.New("bjdata: out of memory")

	// ErrSinkError is returned when the caller-supplied sink rejects a page.
	ErrSinkError = errors.New("bjdata: sink write failed")

	// ErrCircularReference is returned when a composite value references itself
	// transitively through the encoding stack.
	ErrCircularReference = errors.New("bjdata: circular reference detected")

	// ErrRecursionDepthExceeded is returned when nested composites exceed the
	// configured recursion-depth gate.
	ErrRecursionDepthExceeded = errors.New("bjdata: recursion depth exceeded")

	// ErrBadKeyType is returned when a mapping key is not text.
	ErrBadKeyType = errors.New("bjdata: mapping key must be text")

	// ErrUnsupportedType is returned when a value has no codec and no fallback
	// is configured.
	ErrUnsupportedType = errors.New("bjdata: unsupported value type")

	// ErrOverflowToDecimalFailed is the error kind for a decimal fallback
	// that cannot render an out-of-range integer or float. No code path
	// returns it: big.Int.String and strconv.FormatFloat cannot fail.
	ErrOverflowToDecimalFailed = errors.New("bjdata: decimal fallback failed")

	// ErrInvalidStructuredArray is returned when a structured array has an
	// unknown field element type or a nested (non-scalar) field shape.
	ErrInvalidStructuredArray = errors.New("bjdata: invalid structured array")

	// ErrFallbackFailed is returned when the default fallback function itself
	// returns an error.
	ErrFallbackFailed = errors.New("bjdata: default fallback failed")

	// ErrSessionClosed is returned when EncodeValue is called on a session
	// whose earlier EncodeValue or Finalize call failed. Finalize on such a
	// session returns the latched error itself, not this sentinel.
	ErrSessionClosed = errors.New("bjdata: session already closed")
)
