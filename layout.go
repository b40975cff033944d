package typeless

import (
	"log/slog"
	"maps"
	"reflect"
	"sync/atomic"
	"unsafe"
)

// Layout describes the storage-relevant properties of a payload type.
// Instances are canonical: LayoutOf returns the same pointer for the same
// type for the lifetime of the process, so a *Layout doubles as a cheap
// runtime type witness.
type Layout struct {
	Name string
	Type reflect.Type

	// Size and Align of the described type in bytes.
	Size  uintptr
	Align uintptr

	// HasPointers indicates that a value of the type contains pointers,
	// e.g. by having a field of type *T, a string, a slice or a map value.
	HasPointers bool
}

func (l *Layout) String() string {
	return l.Name
}

var layouts atomic.Pointer[map[unsafe.Pointer]*Layout]

func init() {
	// initialize the lookup table
	layouts.Store(&map[unsafe.Pointer]*Layout{})
}

// LayoutOf returns the canonical Layout of the type T.
func LayoutOf[T any]() *Layout {
	reflectType := reflect.TypeOf((*T)(nil)).Elem()
	ptrToType := abiTypePointerTo(reflectType)

	if cached, ok := (*layouts.Load())[ptrToType]; ok {
		return cached
	}

	return ensureLayout(ptrToType, reflectType)
}

func ensureLayout(ptrToType unsafe.Pointer, reflectType reflect.Type) *Layout {
	for {
		previousLayouts := layouts.Load()
		if cached, ok := (*previousLayouts)[ptrToType]; ok {
			return cached
		}

		newLayout := &Layout{
			Name:        reflectType.String(),
			Type:        reflectType,
			Size:        reflectType.Size(),
			Align:       uintptr(reflectType.Align()),
			HasPointers: typeHasPointers(reflectType),
		}

		newLayouts := maps.Clone(*previousLayouts)
		newLayouts[ptrToType] = newLayout

		if layouts.CompareAndSwap(previousLayouts, &newLayouts) {
			slog.Debug(
				"New payload layout registered",
				slog.String("type", newLayout.Name),
				slog.Int("size", int(newLayout.Size)),
				slog.Int("align", int(newLayout.Align)),
			)

			return newLayout
		}
	}
}

func abiTypePointerTo(t reflect.Type) unsafe.Pointer {
	type eface struct {
		typ, val unsafe.Pointer
	}

	// a reflect.Type is backed by an *rType. The rType contains a abi.Type as
	// its first value. This means, that a *rType can be re-interpreted as *abi.Type
	return (*eface)(unsafe.Pointer(&t)).val
}

// typeHasPointers reports whether a value of type t contains pointer
// words the garbage collector would need to trace.
func typeHasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return false

	case reflect.Array:
		return t.Len() > 0 && typeHasPointers(t.Elem())

	case reflect.Struct:
		for idx := 0; idx < t.NumField(); idx++ {
			if typeHasPointers(t.Field(idx).Type) {
				return true
			}
		}

		return false

	default:
		// chan, func, interface, map, pointer, slice, string, unsafe.Pointer
		return true
	}
}
