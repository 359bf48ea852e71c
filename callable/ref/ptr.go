package ref

import (
	"github.com/on-the-ground/call_able_go/callable"
)

// Ptr is a non-owning, nullable, rebindable pointer to a non-failing
// invocable. It is trivially copyable: plain assignment duplicates the
// trampoline, and both copies call the same target.
//
// The zero value is null; invoking it panics with
// [callable.ErrEmptyCall]. Rebind by assigning the result of NewPtr,
// renullify with Clear.
type Ptr[I, O any] struct {
	trampoline func(I) O
}

// NewPtr points at the target the caller retains ownership of.
// Mutations of *target remain visible through the pointer.
func NewPtr[I, O, T any, PT callable.Target[T, I, O]](target *T) Ptr[I, O] {
	return Ptr[I, O]{trampoline: bind[I, O, T, PT](target)}
}

// NewPtrFunc points at a plain function. The function value itself is
// captured, not the address of the argument.
func NewPtrFunc[I, O any](fn func(I) O) Ptr[I, O] {
	f := callable.FuncOf[I, O](fn)
	return NewPtr[I, O, callable.FuncOf[I, O]](&f)
}

// Invoke calls the pointed-to target. Panics with
// [callable.ErrEmptyCall] if p is null.
func (p Ptr[I, O]) Invoke(in I) O {
	if p.trampoline == nil {
		panic(callable.ErrEmptyCall)
	}
	return p.trampoline(in)
}

// Empty reports whether p is null.
func (p Ptr[I, O]) Empty() bool {
	return p.trampoline == nil
}

// Clear renullifies p.
func (p *Ptr[I, O]) Clear() {
	p.trampoline = nil
}

// Swap exchanges the targets of p and other.
func (p *Ptr[I, O]) Swap(other *Ptr[I, O]) {
	p.trampoline, other.trampoline = other.trampoline, p.trampoline
}

// PtrE is [Ptr] under the failing policy: invoking a null PtrE reports
// [callable.ErrEmptyCall].
type PtrE[I, O any] struct {
	trampoline func(I) (O, error)
}

// NewPtrE points at the failing target the caller retains ownership of.
func NewPtrE[I, O, T any, PT callable.TargetE[T, I, O]](target *T) PtrE[I, O] {
	return PtrE[I, O]{trampoline: bindE[I, O, T, PT](target)}
}

// NewPtrEFunc points at a plain failing function.
func NewPtrEFunc[I, O any](fn func(I) (O, error)) PtrE[I, O] {
	f := callable.FuncEOf[I, O](fn)
	return NewPtrE[I, O, callable.FuncEOf[I, O]](&f)
}

// Invoke calls the pointed-to target, or reports
// [callable.ErrEmptyCall] if p is null.
func (p PtrE[I, O]) Invoke(in I) (O, error) {
	if p.trampoline == nil {
		var zero O
		return zero, callable.ErrEmptyCall
	}
	return p.trampoline(in)
}

// Empty reports whether p is null.
func (p PtrE[I, O]) Empty() bool {
	return p.trampoline == nil
}

// Clear renullifies p.
func (p *PtrE[I, O]) Clear() {
	p.trampoline = nil
}

// Swap exchanges the targets of p and other.
func (p *PtrE[I, O]) Swap(other *PtrE[I, O]) {
	p.trampoline, other.trampoline = other.trampoline, p.trampoline
}
