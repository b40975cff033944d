package typeless

import "fmt"

// Tagged pairs a raw cell with an occupancy flag and a type witness kept
// beside the storage, not inside it. It turns the two unchecked misuses
// of a raw cell, reading the wrong type and reading a vacant cell, into
// errors. The raw cell's bit-for-bit indistinguishability is unchanged;
// the metadata costs one word next to it.
//
// A Tagged tracks occupancy state and must not be copied.
type Tagged[B any] struct {
	noCopy noCopy

	cell    Cell[B]
	witness *Layout
}

// PutTagged stores value in the cell and records its type witness. A
// previous occupant is forgotten without teardown, same as Put.
func PutTagged[T any, B any](t *Tagged[B], value T) error {
	cell, err := TryNew[T, B](value)
	if err != nil {
		return err
	}

	t.cell = cell
	t.witness = LayoutOf[T]()
	return nil
}

// TakeTagged moves the occupant out as a T. Returns ErrEmptyCell if the
// cell is vacant and ErrTypeMismatch if T is not the stored type; the
// occupant stays in place in both cases. On success the cell is vacant.
func TakeTagged[T any, B any](t *Tagged[B]) (T, error) {
	var zero T

	if t.witness == nil {
		return zero, ErrEmptyCell
	}

	if asserted := LayoutOf[T](); t.witness != asserted {
		return zero, fmt.Errorf("typeless: cell holds %s, not %s: %w",
			t.witness, asserted, ErrTypeMismatch)
	}

	t.witness = nil
	return Take[T](&t.cell), nil
}

// RefTagged returns a pointer to the occupant without ending the
// occupancy, with the same checks as TakeTagged.
func RefTagged[T any, B any](t *Tagged[B]) (*T, error) {
	if t.witness == nil {
		return nil, ErrEmptyCell
	}

	if asserted := LayoutOf[T](); t.witness != asserted {
		return nil, fmt.Errorf("typeless: cell holds %s, not %s: %w",
			t.witness, asserted, ErrTypeMismatch)
	}

	return Ref[T](&t.cell), nil
}

// Occupied reports whether the cell currently holds a value.
func (t *Tagged[B]) Occupied() bool {
	return t.witness != nil
}

// Witness returns the layout of the current occupant, or nil if vacant.
func (t *Tagged[B]) Witness() *Layout {
	return t.witness
}

// Raw grants access to the underlying cell. Writes through it bypass the
// witness bookkeeping.
func (t *Tagged[B]) Raw() *Cell[B] {
	return &t.cell
}

// Clear forgets the occupant without teardown and marks the cell vacant.
func (t *Tagged[B]) Clear() {
	t.witness = nil
	t.cell.Zero()
}
