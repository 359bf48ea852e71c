// Package storage holds the raw cells that owning wrappers keep their
// target in, and the strategy that decides per concrete type which part
// of a cell the target occupies.
//
// A target type is stored in exactly one of three modes, fixed before
// the first operation ever touches it:
//
//   - ModeInline: the target's bytes live directly in the cell's fixed
//     buffer. Only pointer-free types are admissible, because the
//     garbage collector does not scan the buffer: relocating such a
//     value is a plain byte copy that cannot go wrong, which is the
//     guarantee the wrappers' move and swap operations rely on.
//   - ModeDirect: pointer-shaped types (funcs, pointers, maps, chans)
//     are one traced word; the cell's reference slot holds that word
//     as-is, so storing and invoking never allocate and never take the
//     address of a copy.
//   - ModeBoxed: everything else goes into a single heap cell whose
//     address the reference slot holds. Exactly one allocation per
//     store.
package storage

import (
	"fmt"
	"reflect"
	"unsafe"
)

// InlineCapacity is the adaptive cell's buffer size: two pointer words,
// matching the footprint of the reference slot it shares the cell with.
const InlineCapacity = 2 * unsafe.Sizeof(uintptr(0))

// Mode identifies which part of a cell a target type occupies.
type Mode uint8

const (
	// ModeInline stores the target's bytes in the fixed buffer.
	ModeInline Mode = iota
	// ModeDirect stores a pointer-shaped target in the reference slot.
	ModeDirect
	// ModeBoxed stores the target in a separate heap cell.
	ModeBoxed
)

func (m Mode) String() string {
	switch m {
	case ModeInline:
		return "inline"
	case ModeDirect:
		return "direct"
	case ModeBoxed:
		return "boxed"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ModeOf decides the storage mode for values of type t under the given
// inline capacity. The decision depends only on the type, never on the
// value, so callers may fix it once per type.
func ModeOf(t reflect.Type, capacity uintptr) Mode {
	switch {
	case t.Size() <= capacity && PointerFree(t):
		return ModeInline
	case PointerShaped(t):
		return ModeDirect
	default:
		return ModeBoxed
	}
}

// PointerFree reports whether values of type t contain no pointers at
// any depth. Only such values may be placed in a raw buffer the garbage
// collector does not scan.
func PointerFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || PointerFree(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !PointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		// Ptr, UnsafePointer, Chan, Func, Interface, Map, Slice, String.
		return false
	}
}

// PointerShaped reports whether values of type t are represented by a
// single pointer word, which an interface holds directly without
// allocating.
func PointerShaped(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.UnsafePointer, reflect.Chan, reflect.Func, reflect.Map:
		return true
	default:
		return false
	}
}

// Adaptive is the cell of the heap-capable owning wrappers. The buffer
// and the reference slot are both always present; which one is live is
// implied by the operation table installed next to the cell, never by a
// stored discriminant. The reference slot is a single traced word: the
// pointer-shaped value itself in the direct mode, the box address in
// the boxed mode. Operations address the slot in place, so a *T formed
// over it is stable for the target's lifetime.
type Adaptive struct {
	_      [0]uint64 // keeps Inline 8-byte aligned
	Inline [InlineCapacity]byte
	Ref    unsafe.Pointer
}

// Fixed is the cell of the fixed-capacity owning wrappers. B fixes the
// buffer's size at the type level; there is no boxed mode, so a store
// either fits the buffer, rides the reference slot (pointer-shaped
// targets), or is rejected.
type Fixed[B Buffer] struct {
	_   [0]uint64 // keeps Buf 8-byte aligned
	Buf B
	Ref unsafe.Pointer
}

// Buffer enumerates the admissible fixed-cell capacities.
type Buffer interface {
	[8]byte | [16]byte | [24]byte | [32]byte | [48]byte |
		[64]byte | [96]byte | [128]byte | [256]byte
}

// SizeOf returns the capacity of buffer type B in bytes.
func SizeOf[B Buffer]() uintptr {
	var b B
	return unsafe.Sizeof(b)
}

// PutAdaptive stores v into the adaptive cell. The mode is the one the
// cell's freshly installed table was built with, so no type inspection
// happens here. Any previous content must have been destroyed by the
// cell's old table.
func PutAdaptive[T any](h *Adaptive, v T, mode Mode) {
	switch mode {
	case ModeInline:
		*(*T)(unsafe.Pointer(&h.Inline)) = v
	case ModeDirect:
		*(*T)(unsafe.Pointer(&h.Ref)) = v
	default:
		p := new(T)
		*p = v
		h.Ref = unsafe.Pointer(p)
	}
}

// PutFixed stores v into the fixed cell. Targets that would need
// boxing were already rejected when the cell's table was built; only
// the inline and direct modes reach here.
func PutFixed[B Buffer, T any](h *Fixed[B], v T, mode Mode) {
	if mode == ModeInline {
		*(*T)(unsafe.Pointer(&h.Buf)) = v
		return
	}
	*(*T)(unsafe.Pointer(&h.Ref)) = v
}

// RejectFixed builds the error a fixed cell panics with when a target
// type exceeds its capacity.
func RejectFixed(t reflect.Type, capacity uintptr) error {
	return fmt.Errorf(
		"callable: target %v (size %d, not pointer-shaped) cannot be stored in place within %d bytes",
		t, t.Size(), capacity,
	)
}
