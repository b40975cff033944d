// Package slots provides fixed containers of erased cells.
//
// The containers keep the payload bytes in a homogeneous array of
// typeless cells and the per-slot bookkeeping (type witnesses) in a
// parallel column beside it, so the cells themselves stay free of type
// metadata. All containers are single-goroutine, like the cells they
// hold.
package slots

import (
	"errors"

	"github.com/oliverbestmann/typeless"
)

// ErrEmpty is returned when popping from a ring that holds no values.
var ErrEmpty = errors.New("slots: ring is empty")

// Ring is a fixed-capacity FIFO of erased cells. Every slot has the same
// byte capacity and alignment, fixed by the backing array type B, while
// each occupant may be of a different payload type. The slot storage is
// allocated once up front; pushing and popping never allocates.
type Ring[B any] struct {
	cells     []typeless.Cell[B]
	witnesses []*typeless.Layout

	head int
	len  int
}

// NewRing creates a ring with n slots of the capacity given by B.
func NewRing[B any](n int) *Ring[B] {
	return &Ring[B]{
		cells:     make([]typeless.Cell[B], n),
		witnesses: make([]*typeless.Layout, n),
	}
}

// Push erases value into the next free slot. Returns false if the ring
// is full. Panics like typeless.New if T violates the capacity,
// alignment or pointer contract of B.
func Push[T any, B any](r *Ring[B], value T) bool {
	if r.len == len(r.cells) {
		return false
	}

	slot := (r.head + r.len) % len(r.cells)
	typeless.Put(&r.cells[slot], value)
	r.witnesses[slot] = typeless.LayoutOf[T]()

	r.len += 1
	return true
}

// Pop moves the oldest occupant out as a T. Returns ErrEmpty if the ring
// holds no values and typeless.ErrTypeMismatch if the oldest occupant is
// not a T; the occupant stays queued in both cases.
func Pop[T any, B any](r *Ring[B]) (T, error) {
	var zero T

	if r.len == 0 {
		return zero, ErrEmpty
	}

	if asserted := typeless.LayoutOf[T](); r.witnesses[r.head] != asserted {
		return zero, typeless.ErrTypeMismatch
	}

	value := typeless.Take[T](&r.cells[r.head])
	r.drop()
	return value, nil
}

// Discard forgets the oldest occupant without reconstructing it. If the
// occupant owned a resource, that resource leaks, same as dropping a raw
// cell. Returns false if the ring is empty.
func (r *Ring[B]) Discard() bool {
	if r.len == 0 {
		return false
	}

	r.drop()
	return true
}

// Peek returns the layout of the oldest occupant without removing it, or
// nil if the ring is empty. Callers use this to pick the right type
// parameter for Pop.
func (r *Ring[B]) Peek() *typeless.Layout {
	if r.len == 0 {
		return nil
	}

	return r.witnesses[r.head]
}

// Len returns the number of occupied slots.
func (r *Ring[B]) Len() int {
	return r.len
}

// Cap returns the number of slots.
func (r *Ring[B]) Cap() int {
	return len(r.cells)
}

// Reset forgets all occupants without teardown and clears all slots.
func (r *Ring[B]) Reset() {
	for idx := range r.cells {
		r.cells[idx].Zero()
		r.witnesses[idx] = nil
	}

	r.head = 0
	r.len = 0
}

func (r *Ring[B]) drop() {
	r.witnesses[r.head] = nil
	r.head = (r.head + 1) % len(r.cells)
	r.len -= 1
}
