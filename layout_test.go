package typeless

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestLayoutOf_Canonical(t *testing.T) {
	first := LayoutOf[int64]()
	second := LayoutOf[int64]()

	// the registry hands out one Layout per type, so the pointer doubles
	// as a type witness
	require.Same(t, first, second)
	require.NotSame(t, first, LayoutOf[uint64]())
}

func TestLayoutOf_Values(t *testing.T) {
	lt := LayoutOf[int64]()
	require.Equal(t, uintptr(8), lt.Size)
	require.Equal(t, uintptr(8), lt.Align)
	require.Equal(t, "int64", lt.String())

	type Velocity struct {
		X, Y float64
	}

	lt = LayoutOf[Velocity]()
	require.Equal(t, unsafe.Sizeof(Velocity{}), lt.Size)
	require.Equal(t, unsafe.Alignof(Velocity{}), lt.Align)
}

func TestLayout_HasPointers(t *testing.T) {
	require.False(t, LayoutOf[int64]().HasPointers)
	require.False(t, LayoutOf[[4]uint64]().HasPointers)
	require.False(t, LayoutOf[struct{ A, B float64 }]().HasPointers)
	require.False(t, LayoutOf[[0]string]().HasPointers)

	require.True(t, LayoutOf[string]().HasPointers)
	require.True(t, LayoutOf[[]byte]().HasPointers)
	require.True(t, LayoutOf[*int64]().HasPointers)
	require.True(t, LayoutOf[map[int]int]().HasPointers)
	require.True(t, LayoutOf[struct{ S struct{ P *int } }]().HasPointers)
	require.True(t, LayoutOf[[2]*int]().HasPointers)
}
