package typeless

import "errors"

var (
	// ErrCapacity reports a payload whose size exceeds the cell capacity.
	ErrCapacity = errors.New("payload size exceeds cell capacity")

	// ErrAlignment reports a payload whose alignment exceeds the alignment
	// of the cell's backing array.
	ErrAlignment = errors.New("payload alignment exceeds cell alignment")

	// ErrPointers reports a payload type that contains pointers. The
	// garbage collector cannot trace pointers through erased storage.
	ErrPointers = errors.New("payload type contains pointers")

	// ErrBacking reports a backing array type that itself contains
	// pointers. Erased payload bytes written into pointer slots would be
	// misread by the garbage collector.
	ErrBacking = errors.New("backing array type must not contain pointers")

	// ErrTypeMismatch reports a checked reconstruction whose asserted type
	// differs from the type that was stored.
	ErrTypeMismatch = errors.New("cell holds a different payload type")

	// ErrEmptyCell reports a checked reconstruction from a vacant cell.
	ErrEmptyCell = errors.New("cell holds no payload")
)
