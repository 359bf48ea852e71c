package callable

import (
	"unsafe"

	"github.com/on-the-ground/call_able_go/callable/internal/optable"
	"github.com/on-the-ground/call_able_go/callable/internal/storage"
)

// Copyable is an owning, copyable wrapper of a non-failing invocable.
// Small pointer-free targets live in the wrapper's own buffer;
// everything else rides the cell's reference slot, boxed at most once.
//
// The zero value is empty. Invoking an empty Copyable panics with
// [ErrEmptyCall]; use [CopyableE] when "not bound yet" is a condition
// the caller wants to handle rather than a bug.
//
// A Copyable must not be duplicated by plain assignment — use Clone or
// Move. Plain assignment of a wrapper holding a boxed target produces
// two wrappers sharing one target.
type Copyable[I, O any] struct {
	cell  storage.Adaptive
	table *optable.Table[I, O]
}

// NewCopyable wraps the given target. The target is captured by value;
// later operations act on the wrapper's own copy.
func NewCopyable[I, O, T any, PT Target[T, I, O]](target T) Copyable[I, O] {
	var w Copyable[I, O]
	w.table = optable.Adaptive[I, O, T, PT](optable.KindCopyable)
	storage.PutAdaptive(&w.cell, target, w.table.Mode)
	return w
}

// NewCopyableFunc wraps a plain function.
func NewCopyableFunc[I, O any](fn func(I) O) Copyable[I, O] {
	return NewCopyable[I, O, FuncOf[I, O]](FuncOf[I, O](fn))
}

// AssignCopyable replaces w's target: the previous target is destroyed
// through the old table before the new one is installed.
func AssignCopyable[I, O, T any, PT Target[T, I, O]](w *Copyable[I, O], target T) {
	w.tab().Destroy(w.handle())
	w.table = optable.Adaptive[I, O, T, PT](optable.KindCopyable)
	storage.PutAdaptive(&w.cell, target, w.table.Mode)
}

// Invoke calls the wrapped target. Panics with [ErrEmptyCall] if w is
// empty.
func (w *Copyable[I, O]) Invoke(in I) O {
	out, _ := w.tab().Invoke(w.handle(), in)
	return out
}

// Empty reports whether w holds no target.
func (w *Copyable[I, O]) Empty() bool {
	return w.tab().Sentinel
}

// Clear destroys the wrapped target, if any, and leaves w empty —
// indistinguishable from a zero-value wrapper.
func (w *Copyable[I, O]) Clear() {
	w.tab().Destroy(w.handle())
	w.table = optable.Empty[I, O]()
}

// Clone duplicates w: the result holds its own copy of the target, in
// its own storage.
func (w *Copyable[I, O]) Clone() Copyable[I, O] {
	var out Copyable[I, O]
	out.table = w.tab()
	out.table.Clone(out.handle(), w.handle())
	return out
}

// CloneFrom replaces w's target with a copy of src's.
func (w *Copyable[I, O]) CloneFrom(src *Copyable[I, O]) {
	if w == src {
		return
	}
	w.tab().Destroy(w.handle())
	w.table = src.tab()
	w.table.Clone(w.handle(), src.handle())
}

// Move transfers w's target into the returned wrapper and leaves w
// empty. Never fails.
func (w *Copyable[I, O]) Move() Copyable[I, O] {
	var out Copyable[I, O]
	out.table = w.tab()
	w.table = optable.Empty[I, O]()
	out.table.Relocate(out.handle(), w.handle())
	return out
}

// MoveFrom destroys w's current target and transfers src's into w,
// leaving src empty. Self move is a contract violation and panics.
func (w *Copyable[I, O]) MoveFrom(src *Copyable[I, O]) {
	if w == src {
		panic("callable: self move assignment")
	}
	w.tab().Destroy(w.handle())
	w.table = src.tab()
	src.table = optable.Empty[I, O]()
	w.table.Relocate(w.handle(), src.handle())
}

// Swap exchanges the contents of w and other. Cells relocate as plain
// values — raw bytes plus a traced slot — so the compiler's struct swap
// is the relocate-through-a-temporary dance with no table indirection.
func (w *Copyable[I, O]) Swap(other *Copyable[I, O]) {
	if w == other {
		return
	}
	w.cell, other.cell = other.cell, w.cell
	w.table, other.table = other.table, w.table
}

func (w *Copyable[I, O]) handle() unsafe.Pointer { return unsafe.Pointer(&w.cell) }

// tab normalizes the zero value: a wrapper that was never constructed
// observes the empty sentinel, so the installed table is never nil.
func (w *Copyable[I, O]) tab() *optable.Table[I, O] {
	if w.table == nil {
		w.table = optable.Empty[I, O]()
	}
	return w.table
}

// CopyableE is [Copyable] under the failing policy: it wraps targets
// whose call may report an error, and invoking it while empty reports
// [ErrEmptyCall] instead of faulting.
type CopyableE[I, O any] struct {
	cell  storage.Adaptive
	table *optable.Table[I, O]
}

// NewCopyableE wraps the given failing target.
func NewCopyableE[I, O, T any, PT TargetE[T, I, O]](target T) CopyableE[I, O] {
	var w CopyableE[I, O]
	w.table = optable.AdaptiveE[I, O, T, PT](optable.KindCopyable)
	storage.PutAdaptive(&w.cell, target, w.table.Mode)
	return w
}

// NewCopyableEFunc wraps a plain failing function.
func NewCopyableEFunc[I, O any](fn func(I) (O, error)) CopyableE[I, O] {
	return NewCopyableE[I, O, FuncEOf[I, O]](FuncEOf[I, O](fn))
}

// AssignCopyableE replaces w's target, destroying the previous one.
func AssignCopyableE[I, O, T any, PT TargetE[T, I, O]](w *CopyableE[I, O], target T) {
	w.tab().Destroy(w.handle())
	w.table = optable.AdaptiveE[I, O, T, PT](optable.KindCopyable)
	storage.PutAdaptive(&w.cell, target, w.table.Mode)
}

// Invoke calls the wrapped target, or reports [ErrEmptyCall] if w is
// empty. Errors from the target itself pass through unchanged; the
// wrapper's state is untouched either way.
func (w *CopyableE[I, O]) Invoke(in I) (O, error) {
	return w.tab().Invoke(w.handle(), in)
}

// Empty reports whether w holds no target.
func (w *CopyableE[I, O]) Empty() bool {
	return w.tab().Sentinel
}

// Clear destroys the wrapped target, if any, and leaves w empty.
func (w *CopyableE[I, O]) Clear() {
	w.tab().Destroy(w.handle())
	w.table = optable.EmptyE[I, O]()
}

// Clone duplicates w.
func (w *CopyableE[I, O]) Clone() CopyableE[I, O] {
	var out CopyableE[I, O]
	out.table = w.tab()
	out.table.Clone(out.handle(), w.handle())
	return out
}

// CloneFrom replaces w's target with a copy of src's.
func (w *CopyableE[I, O]) CloneFrom(src *CopyableE[I, O]) {
	if w == src {
		return
	}
	w.tab().Destroy(w.handle())
	w.table = src.tab()
	w.table.Clone(w.handle(), src.handle())
}

// Move transfers w's target into the returned wrapper and leaves w
// empty.
func (w *CopyableE[I, O]) Move() CopyableE[I, O] {
	var out CopyableE[I, O]
	out.table = w.tab()
	w.table = optable.EmptyE[I, O]()
	out.table.Relocate(out.handle(), w.handle())
	return out
}

// MoveFrom destroys w's current target and transfers src's into w.
// Self move panics.
func (w *CopyableE[I, O]) MoveFrom(src *CopyableE[I, O]) {
	if w == src {
		panic("callable: self move assignment")
	}
	w.tab().Destroy(w.handle())
	w.table = src.tab()
	src.table = optable.EmptyE[I, O]()
	w.table.Relocate(w.handle(), src.handle())
}

// Swap exchanges the contents of w and other.
func (w *CopyableE[I, O]) Swap(other *CopyableE[I, O]) {
	if w == other {
		return
	}
	w.cell, other.cell = other.cell, w.cell
	w.table, other.table = other.table, w.table
}

func (w *CopyableE[I, O]) handle() unsafe.Pointer { return unsafe.Pointer(&w.cell) }

func (w *CopyableE[I, O]) tab() *optable.Table[I, O] {
	if w.table == nil {
		w.table = optable.EmptyE[I, O]()
	}
	return w.table
}
