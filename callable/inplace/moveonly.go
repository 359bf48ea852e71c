package inplace

import (
	"unsafe"

	"github.com/on-the-ground/call_able_go/callable"
	"github.com/on-the-ground/call_able_go/callable/internal/optable"
	"github.com/on-the-ground/call_able_go/callable/internal/storage"
)

// MoveOnly is the fixed-capacity counterpart of [callable.MoveOnly]:
// no Clone, no clone entry in the table, no allocation anywhere.
type MoveOnly[B Buffer, I, O any] struct {
	cell  storage.Fixed[B]
	table *optable.Table[I, O]
}

// NewMoveOnly wraps the given target. Panics if values of type T cannot
// be stored within capacity B.
func NewMoveOnly[B Buffer, I, O, T any, PT callable.Target[T, I, O]](target T) MoveOnly[B, I, O] {
	var w MoveOnly[B, I, O]
	w.table = optable.Fixed[B, I, O, T, PT](optable.KindMoveOnly)
	storage.PutFixed(&w.cell, target, w.table.Mode)
	return w
}

// NewMoveOnlyFunc wraps a plain function.
func NewMoveOnlyFunc[B Buffer, I, O any](fn func(I) O) MoveOnly[B, I, O] {
	return NewMoveOnly[B, I, O, callable.FuncOf[I, O]](callable.FuncOf[I, O](fn))
}

// AssignMoveOnly replaces w's target, destroying the previous one.
func AssignMoveOnly[B Buffer, I, O, T any, PT callable.Target[T, I, O]](w *MoveOnly[B, I, O], target T) {
	tb := optable.Fixed[B, I, O, T, PT](optable.KindMoveOnly)
	w.tab().Destroy(w.handle())
	w.table = tb
	storage.PutFixed(&w.cell, target, tb.Mode)
}

// Invoke calls the wrapped target. Panics with [callable.ErrEmptyCall]
// if w is empty.
func (w *MoveOnly[B, I, O]) Invoke(in I) O {
	out, _ := w.tab().Invoke(w.handle(), in)
	return out
}

// Empty reports whether w holds no target.
func (w *MoveOnly[B, I, O]) Empty() bool {
	return w.tab().Sentinel
}

// Clear destroys the wrapped target, if any, and leaves w empty.
func (w *MoveOnly[B, I, O]) Clear() {
	w.tab().Destroy(w.handle())
	w.table = optable.Empty[I, O]()
}

// Move transfers w's target into the returned wrapper and leaves w
// empty.
func (w *MoveOnly[B, I, O]) Move() MoveOnly[B, I, O] {
	var out MoveOnly[B, I, O]
	out.table = w.tab()
	w.table = optable.Empty[I, O]()
	out.table.Relocate(out.handle(), w.handle())
	return out
}

// MoveFrom destroys w's current target and transfers src's into w.
// Self move panics.
func (w *MoveOnly[B, I, O]) MoveFrom(src *MoveOnly[B, I, O]) {
	if w == src {
		panic("callable: self move assignment")
	}
	w.tab().Destroy(w.handle())
	w.table = src.tab()
	src.table = optable.Empty[I, O]()
	w.table.Relocate(w.handle(), src.handle())
}

// Swap exchanges the contents of w and other.
func (w *MoveOnly[B, I, O]) Swap(other *MoveOnly[B, I, O]) {
	if w == other {
		return
	}
	w.cell, other.cell = other.cell, w.cell
	w.table, other.table = other.table, w.table
}

func (w *MoveOnly[B, I, O]) handle() unsafe.Pointer { return unsafe.Pointer(&w.cell) }

func (w *MoveOnly[B, I, O]) tab() *optable.Table[I, O] {
	if w.table == nil {
		w.table = optable.Empty[I, O]()
	}
	return w.table
}

// MoveOnlyE is [MoveOnly] under the failing policy.
type MoveOnlyE[B Buffer, I, O any] struct {
	cell  storage.Fixed[B]
	table *optable.Table[I, O]
}

// NewMoveOnlyE wraps the given failing target. Panics if values of type
// T cannot be stored within capacity B.
func NewMoveOnlyE[B Buffer, I, O, T any, PT callable.TargetE[T, I, O]](target T) MoveOnlyE[B, I, O] {
	var w MoveOnlyE[B, I, O]
	w.table = optable.FixedE[B, I, O, T, PT](optable.KindMoveOnly)
	storage.PutFixed(&w.cell, target, w.table.Mode)
	return w
}

// NewMoveOnlyEFunc wraps a plain failing function.
func NewMoveOnlyEFunc[B Buffer, I, O any](fn func(I) (O, error)) MoveOnlyE[B, I, O] {
	return NewMoveOnlyE[B, I, O, callable.FuncEOf[I, O]](callable.FuncEOf[I, O](fn))
}

// AssignMoveOnlyE replaces w's target, destroying the previous one.
func AssignMoveOnlyE[B Buffer, I, O, T any, PT callable.TargetE[T, I, O]](w *MoveOnlyE[B, I, O], target T) {
	tb := optable.FixedE[B, I, O, T, PT](optable.KindMoveOnly)
	w.tab().Destroy(w.handle())
	w.table = tb
	storage.PutFixed(&w.cell, target, tb.Mode)
}

// Invoke calls the wrapped target, or reports [callable.ErrEmptyCall]
// if w is empty.
func (w *MoveOnlyE[B, I, O]) Invoke(in I) (O, error) {
	return w.tab().Invoke(w.handle(), in)
}

// Empty reports whether w holds no target.
func (w *MoveOnlyE[B, I, O]) Empty() bool {
	return w.tab().Sentinel
}

// Clear destroys the wrapped target, if any, and leaves w empty.
func (w *MoveOnlyE[B, I, O]) Clear() {
	w.tab().Destroy(w.handle())
	w.table = optable.EmptyE[I, O]()
}

// Move transfers w's target into the returned wrapper and leaves w
// empty.
func (w *MoveOnlyE[B, I, O]) Move() MoveOnlyE[B, I, O] {
	var out MoveOnlyE[B, I, O]
	out.table = w.tab()
	w.table = optable.EmptyE[I, O]()
	out.table.Relocate(out.handle(), w.handle())
	return out
}

// MoveFrom destroys w's current target and transfers src's into w.
// Self move panics.
func (w *MoveOnlyE[B, I, O]) MoveFrom(src *MoveOnlyE[B, I, O]) {
	if w == src {
		panic("callable: self move assignment")
	}
	w.tab().Destroy(w.handle())
	w.table = src.tab()
	src.table = optable.EmptyE[I, O]()
	w.table.Relocate(w.handle(), src.handle())
}

// Swap exchanges the contents of w and other.
func (w *MoveOnlyE[B, I, O]) Swap(other *MoveOnlyE[B, I, O]) {
	if w == other {
		return
	}
	w.cell, other.cell = other.cell, w.cell
	w.table, other.table = other.table, w.table
}

func (w *MoveOnlyE[B, I, O]) handle() unsafe.Pointer { return unsafe.Pointer(&w.cell) }

func (w *MoveOnlyE[B, I, O]) tab() *optable.Table[I, O] {
	if w.table == nil {
		w.table = optable.EmptyE[I, O]()
	}
	return w.table
}
