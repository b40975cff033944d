package typeless

import (
	"fmt"
	"unsafe"
)

// Cell is fixed-size type-erased storage. The backing array type B fixes
// both the capacity and the alignment of the cell: a Cell[[2]uint64] is a
// 16 byte cell aligned to 8 bytes. B must not contain pointers; use a
// plain integer array.
//
// The zero value is a valid, vacant cell.
//
// See the package docs for the access and teardown contract.
type Cell[B any] struct {
	buf B
}

// Empty returns a cell containing no value. All storage bytes are zero.
func Empty[B any]() Cell[B] {
	return Cell[B]{}
}

// New creates a cell by erasing the type of value.
//
// Panics if the size of T exceeds the capacity, the alignment of T
// exceeds the alignment of B, or T contains pointers (see the package
// docs). The panic value wraps ErrCapacity, ErrAlignment or ErrPointers.
func New[T any, B any](value T) Cell[B] {
	var cell Cell[B]
	Put(&cell, value)
	return cell
}

// TryNew is New returning the constraint violation instead of panicking.
func TryNew[T any, B any](value T) (Cell[B], error) {
	var cell Cell[B]

	if err := checkPayload[T, B](false); err != nil {
		return cell, err
	}

	*(*T)(unsafe.Pointer(&cell.buf)) = value
	return cell, nil
}

// NewUnchecked creates a cell by erasing the type of value, allowing
// payload types that contain pointers.
//
// The cell's storage is invisible to the garbage collector. The caller
// must keep every object referenced by value reachable through some other
// path for as long as the occupancy lives, or the reconstructed value
// will point at freed memory. Capacity and alignment are still verified.
func NewUnchecked[T any, B any](value T) Cell[B] {
	var cell Cell[B]

	if err := checkPayload[T, B](true); err != nil {
		panic(err)
	}

	*(*T)(unsafe.Pointer(&cell.buf)) = value
	return cell
}

// Put overwrites the cell with the erased bytes of value, applying the
// same checks as New. A previous occupant is forgotten, not torn down: if
// it owned a resource and was never taken back out, that resource leaks.
func Put[T any, B any](c *Cell[B], value T) {
	if err := checkPayload[T, B](false); err != nil {
		panic(err)
	}

	*(*T)(unsafe.Pointer(&c.buf)) = value
}

// Take assumes the cell holds a valid T and moves it out, transferring
// ownership of any resource the value holds to the caller. The cell is
// logically empty afterwards; its bytes are left as they are.
//
// The type assertion is not checked. Naming a type other than the one
// that was stored yields a corrupted value; taking the same occupancy
// twice duplicates resource ownership. Size and alignment of T are still
// verified against B so that a wrong assertion can never read out of
// bounds.
func Take[T any, B any](c *Cell[B]) T {
	if err := checkPayload[T, B](true); err != nil {
		panic(err)
	}

	return *(*T)(unsafe.Pointer(&c.buf))
}

// Ref assumes the cell holds a valid T and returns a pointer to it in
// place, without ending the occupancy. The same unchecked type assertion
// as in Take applies. The pointer is invalidated by the next Put.
func Ref[T any, B any](c *Cell[B]) *T {
	if err := checkPayload[T, B](true); err != nil {
		panic(err)
	}

	return (*T)(unsafe.Pointer(&c.buf))
}

// Bytes returns a view of the cell's storage, always exactly Cap bytes,
// including any bytes past the logically occupied region. The view
// aliases the storage and must be treated as read-only. This is the only
// access that requires no type assertion.
func (c *Cell[B]) Bytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&c.buf)), unsafe.Sizeof(c.buf))
}

// Cap returns the capacity of the cell in bytes.
func (c *Cell[B]) Cap() int {
	return int(unsafe.Sizeof(c.buf))
}

// Zero forgets the current occupant and clears all storage bytes. Like
// Put, this runs no payload teardown.
func (c *Cell[B]) Zero() {
	var zero B
	c.buf = zero
}

// checkPayload verifies the layout contract between a payload type T and
// a backing array type B. All checks happen before any byte is copied.
func checkPayload[T any, B any](allowPointers bool) error {
	payload := LayoutOf[T]()
	backing := LayoutOf[B]()

	if backing.HasPointers {
		return fmt.Errorf("typeless: backing %s: %w", backing, ErrBacking)
	}

	if payload.Size > backing.Size {
		return fmt.Errorf("typeless: size of %s (%d) > capacity (%d): %w",
			payload, payload.Size, backing.Size, ErrCapacity)
	}

	if payload.Align > backing.Align {
		return fmt.Errorf("typeless: alignment of %s (%d) > alignment of %s (%d): %w",
			payload, payload.Align, backing, backing.Align, ErrAlignment)
	}

	if !allowPointers && payload.HasPointers {
		return fmt.Errorf("typeless: %s: %w", payload, ErrPointers)
	}

	return nil
}
