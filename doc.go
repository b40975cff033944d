// Package typeless provides fixed-capacity storage cells that erase the
// type of the value they hold.
//
// Storing a value x of type T in a [Cell] destroys all type information
// associated with it. The cell keeps only the raw bytes of x: no type tag,
// no discriminant, no interface header. Two cells that held values of
// different types are indistinguishable. This makes it possible to keep
// heterogeneous values in homogeneous slots, e.g. arrays or rings of
// cells, without boxing every value in an interface and without a heap
// allocation per value.
//
// # Restrictions
//
// The size of a Cell is not based on the value it contains but on the
// backing array type B, effectively a maximum size for the payloads it
// can hold. The alignment of the cell is the alignment of B, so a backing
// like [2]uint64 yields a 16 byte cell that accepts any payload with an
// alignment of 8 or less. Both bounds are verified before any byte is
// copied; a violation panics (or surfaces as an error from [TryNew]) and
// never truncates.
//
// Payload types containing pointers are refused by default: the garbage
// collector cannot see pointers through an erased byte buffer, so a cell
// holding the only reference to an object would not keep it alive. See
// [NewUnchecked] for the escape hatch.
//
// # Access
//
// Since there is no type data anymore, reading a cell back requires the
// caller to assert the payload type. [Take] and [Ref] trust that
// assertion: naming a type other than the one that was written, or taking
// the same occupancy twice, corrupts the reconstructed value or
// double-transfers a resource. The cell cannot detect this. [Cell.Bytes]
// is the only access that needs no type assertion and is always safe.
//
// A cell also cannot run payload teardown on its own. Whoever erased a
// value that owns a resource must [Take] it back out and release it;
// letting the cell go out of scope leaks the resource.
//
// [Tagged] layers an occupancy flag and a type witness on top of a raw
// cell and turns both misuses into errors, at the cost of one word of
// metadata beside the storage.
//
// A cell has no internal synchronization and its contents must not be
// accessed from multiple goroutines without external locking; whether
// even synchronized sharing is sound depends on the erased payload type,
// which the cell no longer knows.
package typeless
