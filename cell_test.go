package typeless

import (
	"encoding/binary"
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

// a 16 byte cell aligned to 8 bytes, the default shape used throughout
// the tests
type words16 = [2]uint64

func TestCell_RoundTrip(t *testing.T) {
	type Velocity struct {
		X, Y float64
	}

	cell := New[Velocity, words16](Velocity{X: 1.5, Y: -2.25})
	require.Equal(t, Velocity{X: 1.5, Y: -2.25}, Take[Velocity](&cell))
}

func TestCell_Scenario(t *testing.T) {
	// capacity 16, 8 byte integer occupant
	cell := New[int64, words16](42)

	raw := cell.Bytes()
	require.Len(t, raw, 16)
	require.Equal(t, binary.NativeEndian.AppendUint64(nil, 42), raw[:8])

	require.Equal(t, int64(42), Take[int64](&cell))
}

func TestCell_CapacityBoundary(t *testing.T) {
	// a payload of exactly 16 bytes fits a 16 byte cell
	cell, err := TryNew[[16]byte, words16]([16]byte{1: 0xff})
	require.NoError(t, err)
	require.Equal(t, byte(0xff), cell.Bytes()[1])

	// one byte more is rejected before any copy
	_, err = TryNew[[17]byte, words16]([17]byte{})
	require.ErrorIs(t, err, ErrCapacity)

	require.Panics(t, func() {
		New[[17]byte, words16]([17]byte{})
	})
}

func TestCell_AlignmentBoundary(t *testing.T) {
	// a byte-array backing only aligns to 1
	type loose = [16]byte

	_, err := TryNew[int64, loose](1)
	require.ErrorIs(t, err, ErrAlignment)

	cell, err := TryNew[[8]byte, loose]([8]byte{7: 1})
	require.NoError(t, err)
	require.Equal(t, byte(1), cell.Bytes()[7])
}

func TestCell_PointerPayloads(t *testing.T) {
	_, err := TryNew[string, [4]uint64]("hello")
	require.ErrorIs(t, err, ErrPointers)

	// pointer-shaped backing arrays are refused outright
	_, err = TryNew[int64, [2]*int64](1)
	require.ErrorIs(t, err, ErrBacking)

	// the unchecked path stores the string header; the original binding
	// keeps the bytes reachable for the garbage collector
	value := "hello"
	cell := NewUnchecked[string, [4]uint64](value)
	require.Equal(t, "hello", Take[string](&cell))
}

func TestCell_RawViewStability(t *testing.T) {
	cell := New[int64, words16](1234)

	first := append([]byte(nil), cell.Bytes()...)
	second := append([]byte(nil), cell.Bytes()...)

	require.Equal(t, first, second)
	require.Equal(t, cell.Cap(), len(first))
}

func TestCell_Erasure(t *testing.T) {
	fromInt := New[uint64, words16](uint64(42))
	fromFloat := New[float64, words16](math.Float64frombits(42))

	// same cell type, same bytes: the origin is gone
	require.Equal(t, reflect.TypeOf(fromInt), reflect.TypeOf(fromFloat))
	require.Equal(t, fromInt.Bytes(), fromFloat.Bytes())
}

func TestCell_PutOverwrites(t *testing.T) {
	cell := Empty[words16]()

	Put(&cell, int64(1))
	Put(&cell, uint32(7))
	require.Equal(t, uint32(7), Take[uint32](&cell))

	cell.Zero()
	require.Equal(t, make([]byte, 16), cell.Bytes())
}

func TestCell_RefInPlace(t *testing.T) {
	type Counter struct {
		N int64
	}

	cell := New[Counter, words16](Counter{N: 1})

	Ref[Counter](&cell).N += 10
	require.Equal(t, Counter{N: 11}, Take[Counter](&cell))
}

func TestCell_ZeroSizedPayload(t *testing.T) {
	cell := New[struct{}, [0]uint64](struct{}{})
	require.Equal(t, 0, cell.Cap())
	require.Equal(t, struct{}{}, Take[struct{}](&cell))
}

func TestCell_LeakOnSkip(t *testing.T) {
	// stand-in for a resource-owning occupant: the handle indexes an
	// external table that records whether cleanup ran
	type fileHandle struct {
		id int64
	}

	released := []bool{false, false}
	closeHandle := func(h fileHandle) { released[h.id] = true }

	// erased and never taken back out: the cell cannot run cleanup
	func() {
		_ = New[fileHandle, words16](fileHandle{id: 0})
	}()
	require.False(t, released[0])

	// taken back out with the right type: the handle survives erasure
	// unchanged and cleanup reaches the same resource
	cell := New[fileHandle, words16](fileHandle{id: 1})
	closeHandle(Take[fileHandle](&cell))
	require.True(t, released[1])
}

func BenchmarkCell_RoundTrip(b *testing.B) {
	type Velocity struct {
		X, Y float64
	}

	b.ReportAllocs()

	var dummy float64

	for i := 0; i < b.N; i++ {
		cell := New[Velocity, words16](Velocity{X: 1, Y: 2})
		dummy += Take[Velocity](&cell).X
	}

	_ = dummy
}

func BenchmarkCell_Put(b *testing.B) {
	cell := Empty[words16]()

	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		Put(&cell, int64(3))
	}
}
