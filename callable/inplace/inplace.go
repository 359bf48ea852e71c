// Package inplace provides the fixed-capacity owning wrappers: same
// lifecycle contracts as the callable package, but the storage buffer's
// size is chosen by the caller at the type level and there is no heap
// fallback. A target that can be held neither by the buffer (small,
// pointer-free) nor by the reference slot (pointer-shaped) is rejected
// when the wrapper is constructed; nothing in this package allocates.
package inplace

import (
	"unsafe"

	"github.com/on-the-ground/call_able_go/callable"
	"github.com/on-the-ground/call_able_go/callable/internal/optable"
	"github.com/on-the-ground/call_able_go/callable/internal/storage"
)

// Buffer enumerates the admissible capacities. The capacity is the
// byte-array type itself: inplace.Copyable[inplace.Cap16, int, int] is
// a distinct type from its Cap32 counterpart.
type Buffer = storage.Buffer

// Capacity aliases for the Buffer parameter. Cap8 holds exactly one
// pointer word.
type (
	Cap8   = [8]byte
	Cap16  = [16]byte
	Cap24  = [24]byte
	Cap32  = [32]byte
	Cap48  = [48]byte
	Cap64  = [64]byte
	Cap96  = [96]byte
	Cap128 = [128]byte
	Cap256 = [256]byte
)

// Copyable is the fixed-capacity counterpart of [callable.Copyable].
type Copyable[B Buffer, I, O any] struct {
	cell  storage.Fixed[B]
	table *optable.Table[I, O]
}

// NewCopyable wraps the given target. Panics if values of type T cannot
// be stored within capacity B.
func NewCopyable[B Buffer, I, O, T any, PT callable.Target[T, I, O]](target T) Copyable[B, I, O] {
	var w Copyable[B, I, O]
	w.table = optable.Fixed[B, I, O, T, PT](optable.KindCopyable)
	storage.PutFixed(&w.cell, target, w.table.Mode)
	return w
}

// NewCopyableFunc wraps a plain function.
func NewCopyableFunc[B Buffer, I, O any](fn func(I) O) Copyable[B, I, O] {
	return NewCopyable[B, I, O, callable.FuncOf[I, O]](callable.FuncOf[I, O](fn))
}

// AssignCopyable replaces w's target, destroying the previous one.
// Panics if the new target does not fit.
func AssignCopyable[B Buffer, I, O, T any, PT callable.Target[T, I, O]](w *Copyable[B, I, O], target T) {
	tb := optable.Fixed[B, I, O, T, PT](optable.KindCopyable)
	w.tab().Destroy(w.handle())
	w.table = tb
	storage.PutFixed(&w.cell, target, tb.Mode)
}

// Invoke calls the wrapped target. Panics with [callable.ErrEmptyCall]
// if w is empty.
func (w *Copyable[B, I, O]) Invoke(in I) O {
	out, _ := w.tab().Invoke(w.handle(), in)
	return out
}

// Empty reports whether w holds no target.
func (w *Copyable[B, I, O]) Empty() bool {
	return w.tab().Sentinel
}

// Clear destroys the wrapped target, if any, and leaves w empty.
func (w *Copyable[B, I, O]) Clear() {
	w.tab().Destroy(w.handle())
	w.table = optable.Empty[I, O]()
}

// Clone duplicates w into its own same-capacity storage.
func (w *Copyable[B, I, O]) Clone() Copyable[B, I, O] {
	var out Copyable[B, I, O]
	out.table = w.tab()
	out.table.Clone(out.handle(), w.handle())
	return out
}

// CloneFrom replaces w's target with a copy of src's.
func (w *Copyable[B, I, O]) CloneFrom(src *Copyable[B, I, O]) {
	if w == src {
		return
	}
	w.tab().Destroy(w.handle())
	w.table = src.tab()
	w.table.Clone(w.handle(), src.handle())
}

// Move transfers w's target into the returned wrapper and leaves w
// empty.
func (w *Copyable[B, I, O]) Move() Copyable[B, I, O] {
	var out Copyable[B, I, O]
	out.table = w.tab()
	w.table = optable.Empty[I, O]()
	out.table.Relocate(out.handle(), w.handle())
	return out
}

// MoveFrom destroys w's current target and transfers src's into w.
// Self move panics.
func (w *Copyable[B, I, O]) MoveFrom(src *Copyable[B, I, O]) {
	if w == src {
		panic("callable: self move assignment")
	}
	w.tab().Destroy(w.handle())
	w.table = src.tab()
	src.table = optable.Empty[I, O]()
	w.table.Relocate(w.handle(), src.handle())
}

// Swap exchanges the contents of w and other. Same-capacity cells
// relocate as plain values, so the struct swap suffices; no allocation
// on any path.
func (w *Copyable[B, I, O]) Swap(other *Copyable[B, I, O]) {
	if w == other {
		return
	}
	w.cell, other.cell = other.cell, w.cell
	w.table, other.table = other.table, w.table
}

func (w *Copyable[B, I, O]) handle() unsafe.Pointer { return unsafe.Pointer(&w.cell) }

func (w *Copyable[B, I, O]) tab() *optable.Table[I, O] {
	if w.table == nil {
		w.table = optable.Empty[I, O]()
	}
	return w.table
}

// CopyableE is [Copyable] under the failing policy.
type CopyableE[B Buffer, I, O any] struct {
	cell  storage.Fixed[B]
	table *optable.Table[I, O]
}

// NewCopyableE wraps the given failing target. Panics if values of type
// T cannot be stored within capacity B.
func NewCopyableE[B Buffer, I, O, T any, PT callable.TargetE[T, I, O]](target T) CopyableE[B, I, O] {
	var w CopyableE[B, I, O]
	w.table = optable.FixedE[B, I, O, T, PT](optable.KindCopyable)
	storage.PutFixed(&w.cell, target, w.table.Mode)
	return w
}

// NewCopyableEFunc wraps a plain failing function.
func NewCopyableEFunc[B Buffer, I, O any](fn func(I) (O, error)) CopyableE[B, I, O] {
	return NewCopyableE[B, I, O, callable.FuncEOf[I, O]](callable.FuncEOf[I, O](fn))
}

// AssignCopyableE replaces w's target, destroying the previous one.
func AssignCopyableE[B Buffer, I, O, T any, PT callable.TargetE[T, I, O]](w *CopyableE[B, I, O], target T) {
	tb := optable.FixedE[B, I, O, T, PT](optable.KindCopyable)
	w.tab().Destroy(w.handle())
	w.table = tb
	storage.PutFixed(&w.cell, target, tb.Mode)
}

// Invoke calls the wrapped target, or reports [callable.ErrEmptyCall]
// if w is empty.
func (w *CopyableE[B, I, O]) Invoke(in I) (O, error) {
	return w.tab().Invoke(w.handle(), in)
}

// Empty reports whether w holds no target.
func (w *CopyableE[B, I, O]) Empty() bool {
	return w.tab().Sentinel
}

// Clear destroys the wrapped target, if any, and leaves w empty.
func (w *CopyableE[B, I, O]) Clear() {
	w.tab().Destroy(w.handle())
	w.table = optable.EmptyE[I, O]()
}

// Clone duplicates w.
func (w *CopyableE[B, I, O]) Clone() CopyableE[B, I, O] {
	var out CopyableE[B, I, O]
	out.table = w.tab()
	out.table.Clone(out.handle(), w.handle())
	return out
}

// CloneFrom replaces w's target with a copy of src's.
func (w *CopyableE[B, I, O]) CloneFrom(src *CopyableE[B, I, O]) {
	if w == src {
		return
	}
	w.tab().Destroy(w.handle())
	w.table = src.tab()
	w.table.Clone(w.handle(), src.handle())
}

// Move transfers w's target into the returned wrapper and leaves w
// empty.
func (w *CopyableE[B, I, O]) Move() CopyableE[B, I, O] {
	var out CopyableE[B, I, O]
	out.table = w.tab()
	w.table = optable.EmptyE[I, O]()
	out.table.Relocate(out.handle(), w.handle())
	return out
}

// MoveFrom destroys w's current target and transfers src's into w.
// Self move panics.
func (w *CopyableE[B, I, O]) MoveFrom(src *CopyableE[B, I, O]) {
	if w == src {
		panic("callable: self move assignment")
	}
	w.tab().Destroy(w.handle())
	w.table = src.tab()
	src.table = optable.EmptyE[I, O]()
	w.table.Relocate(w.handle(), src.handle())
}

// Swap exchanges the contents of w and other.
func (w *CopyableE[B, I, O]) Swap(other *CopyableE[B, I, O]) {
	if w == other {
		return
	}
	w.cell, other.cell = other.cell, w.cell
	w.table, other.table = other.table, w.table
}

func (w *CopyableE[B, I, O]) handle() unsafe.Pointer { return unsafe.Pointer(&w.cell) }

func (w *CopyableE[B, I, O]) tab() *optable.Table[I, O] {
	if w.table == nil {
		w.table = optable.EmptyE[I, O]()
	}
	return w.table
}
