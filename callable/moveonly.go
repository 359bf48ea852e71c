package callable

import (
	"unsafe"

	"github.com/on-the-ground/call_able_go/callable/internal/optable"
	"github.com/on-the-ground/call_able_go/callable/internal/storage"
)

// MoveOnly is an owning wrapper of a non-failing invocable that cannot
// be duplicated: there is no Clone, and its operation table carries no
// clone entry at all. Use it for targets owning resources that must
// have exactly one holder.
//
// Everything else — storage strategy, emptiness, move, swap, the hard
// fault on empty invocation — behaves as in [Copyable].
type MoveOnly[I, O any] struct {
	cell  storage.Adaptive
	table *optable.Table[I, O]
}

// NewMoveOnly wraps the given target.
func NewMoveOnly[I, O, T any, PT Target[T, I, O]](target T) MoveOnly[I, O] {
	var w MoveOnly[I, O]
	w.table = optable.Adaptive[I, O, T, PT](optable.KindMoveOnly)
	storage.PutAdaptive(&w.cell, target, w.table.Mode)
	return w
}

// NewMoveOnlyFunc wraps a plain function.
func NewMoveOnlyFunc[I, O any](fn func(I) O) MoveOnly[I, O] {
	return NewMoveOnly[I, O, FuncOf[I, O]](FuncOf[I, O](fn))
}

// AssignMoveOnly replaces w's target, destroying the previous one.
func AssignMoveOnly[I, O, T any, PT Target[T, I, O]](w *MoveOnly[I, O], target T) {
	w.tab().Destroy(w.handle())
	w.table = optable.Adaptive[I, O, T, PT](optable.KindMoveOnly)
	storage.PutAdaptive(&w.cell, target, w.table.Mode)
}

// Invoke calls the wrapped target. Panics with [ErrEmptyCall] if w is
// empty.
func (w *MoveOnly[I, O]) Invoke(in I) O {
	out, _ := w.tab().Invoke(w.handle(), in)
	return out
}

// Empty reports whether w holds no target.
func (w *MoveOnly[I, O]) Empty() bool {
	return w.tab().Sentinel
}

// Clear destroys the wrapped target, if any, and leaves w empty.
func (w *MoveOnly[I, O]) Clear() {
	w.tab().Destroy(w.handle())
	w.table = optable.Empty[I, O]()
}

// Move transfers w's target into the returned wrapper and leaves w
// empty.
func (w *MoveOnly[I, O]) Move() MoveOnly[I, O] {
	var out MoveOnly[I, O]
	out.table = w.tab()
	w.table = optable.Empty[I, O]()
	out.table.Relocate(out.handle(), w.handle())
	return out
}

// MoveFrom destroys w's current target and transfers src's into w.
// Self move panics.
func (w *MoveOnly[I, O]) MoveFrom(src *MoveOnly[I, O]) {
	if w == src {
		panic("callable: self move assignment")
	}
	w.tab().Destroy(w.handle())
	w.table = src.tab()
	src.table = optable.Empty[I, O]()
	w.table.Relocate(w.handle(), src.handle())
}

// Swap exchanges the contents of w and other.
func (w *MoveOnly[I, O]) Swap(other *MoveOnly[I, O]) {
	if w == other {
		return
	}
	w.cell, other.cell = other.cell, w.cell
	w.table, other.table = other.table, w.table
}

func (w *MoveOnly[I, O]) handle() unsafe.Pointer { return unsafe.Pointer(&w.cell) }

func (w *MoveOnly[I, O]) tab() *optable.Table[I, O] {
	if w.table == nil {
		w.table = optable.Empty[I, O]()
	}
	return w.table
}

// MoveOnlyE is [MoveOnly] under the failing policy.
type MoveOnlyE[I, O any] struct {
	cell  storage.Adaptive
	table *optable.Table[I, O]
}

// NewMoveOnlyE wraps the given failing target.
func NewMoveOnlyE[I, O, T any, PT TargetE[T, I, O]](target T) MoveOnlyE[I, O] {
	var w MoveOnlyE[I, O]
	w.table = optable.AdaptiveE[I, O, T, PT](optable.KindMoveOnly)
	storage.PutAdaptive(&w.cell, target, w.table.Mode)
	return w
}

// NewMoveOnlyEFunc wraps a plain failing function.
func NewMoveOnlyEFunc[I, O any](fn func(I) (O, error)) MoveOnlyE[I, O] {
	return NewMoveOnlyE[I, O, FuncEOf[I, O]](FuncEOf[I, O](fn))
}

// AssignMoveOnlyE replaces w's target, destroying the previous one.
func AssignMoveOnlyE[I, O, T any, PT TargetE[T, I, O]](w *MoveOnlyE[I, O], target T) {
	w.tab().Destroy(w.handle())
	w.table = optable.AdaptiveE[I, O, T, PT](optable.KindMoveOnly)
	storage.PutAdaptive(&w.cell, target, w.table.Mode)
}

// Invoke calls the wrapped target, or reports [ErrEmptyCall] if w is
// empty.
func (w *MoveOnlyE[I, O]) Invoke(in I) (O, error) {
	return w.tab().Invoke(w.handle(), in)
}

// Empty reports whether w holds no target.
func (w *MoveOnlyE[I, O]) Empty() bool {
	return w.tab().Sentinel
}

// Clear destroys the wrapped target, if any, and leaves w empty.
func (w *MoveOnlyE[I, O]) Clear() {
	w.tab().Destroy(w.handle())
	w.table = optable.EmptyE[I, O]()
}

// Move transfers w's target into the returned wrapper and leaves w
// empty.
func (w *MoveOnlyE[I, O]) Move() MoveOnlyE[I, O] {
	var out MoveOnlyE[I, O]
	out.table = w.tab()
	w.table = optable.EmptyE[I, O]()
	out.table.Relocate(out.handle(), w.handle())
	return out
}

// MoveFrom destroys w's current target and transfers src's into w.
// Self move panics.
func (w *MoveOnlyE[I, O]) MoveFrom(src *MoveOnlyE[I, O]) {
	if w == src {
		panic("callable: self move assignment")
	}
	w.tab().Destroy(w.handle())
	w.table = src.tab()
	src.table = optable.EmptyE[I, O]()
	w.table.Relocate(w.handle(), src.handle())
}

// Swap exchanges the contents of w and other.
func (w *MoveOnlyE[I, O]) Swap(other *MoveOnlyE[I, O]) {
	if w == other {
		return
	}
	w.cell, other.cell = other.cell, w.cell
	w.table, other.table = other.table, w.table
}

func (w *MoveOnlyE[I, O]) handle() unsafe.Pointer { return unsafe.Pointer(&w.cell) }

func (w *MoveOnlyE[I, O]) tab() *optable.Table[I, O] {
	if w.table == nil {
		w.table = optable.EmptyE[I, O]()
	}
	return w.table
}
