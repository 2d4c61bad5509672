// Package visited tracks which composite values are currently on the
// encoding stack, so the dispatcher can detect circular references.
//
// Adapted from the teacher repo's internal/collision.Tracker: same
// map-backed shape (here Enter/Leave/Len), repurposed from metric-name collision
// detection to composite-identity cycle detection. Entry and exit follow
// a strict LIFO discipline matching the recursion stack.
package visited

import "github.com/NeuroJSON/bjdata/errs"

// Tracker records the identities of composites currently being encoded.
// K is typically a pointer type (e.g. *Sequence, *Mapping), whose
// pointer value is the Go-native analogue of a stable object address.
type Tracker[K comparable] struct {
	active map[K]struct{}
}

// New creates an empty tracker.
func New[K comparable]() *Tracker[K] {
	return &Tracker[K]{active: make(map[K]struct{})}
}

// Enter marks id as currently being encoded. Returns ErrCircularReference
// if id is already on the stack.
func (t *Tracker[K]) Enter(id K) error {
	if _, exists := t.active[id]; exists {
		return errs.ErrCircularReference
	}

	t.active[id] = struct{}{}

	return nil
}

// Leave removes id from the stack. Safe to call even if id was never
// entered (idempotent), so callers can unconditionally defer it.
func (t *Tracker[K]) Leave(id K) {
	delete(t.active, id)
}

// Len reports how many composites are currently on the stack.
func (t *Tracker[K]) Len() int {
	return len(t.active)
}
