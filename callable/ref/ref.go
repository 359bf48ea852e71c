// Package ref provides the non-owning wrappers: a nullable, rebindable
// function pointer (Ptr) and a reference fixed at construction (Ref).
//
// Neither owns what it points at. A wrapper holds one trampoline, a
// closure bound at construction: binding a target object closes over
// its address and calls through it as the concrete type, so the
// caller's later mutations stay visible; binding a pointer-shaped
// target — a plain function adapter in particular — closes over the
// value itself, never the address of a temporary. Binding may allocate
// the closure cell once; invoking never allocates. The caller is
// responsible for the referenced object remaining valid for as long as
// the wrapper is used; the wrappers perform no lifecycle management of
// their own.
package ref

import (
	"reflect"

	"github.com/on-the-ground/call_able_go/callable"
	"github.com/on-the-ground/call_able_go/callable/internal/storage"
)

// bind builds the trampoline for a target. The branch runs once, at
// bind time; each trampoline body is unconditional, and the value a
// pointer-shaped trampoline addresses lives in its own closure cell.
func bind[I, O, T any, PT callable.Target[T, I, O]](target *T) func(I) O {
	if storage.PointerShaped(reflect.TypeFor[T]()) {
		v := *target
		return func(in I) O { return PT(&v).Invoke(in) }
	}
	return func(in I) O { return PT(target).Invoke(in) }
}

func bindE[I, O, T any, PT callable.TargetE[T, I, O]](target *T) func(I) (O, error) {
	if storage.PointerShaped(reflect.TypeFor[T]()) {
		v := *target
		return func(in I) (O, error) { return PT(&v).Invoke(in) }
	}
	return func(in I) (O, error) { return PT(target).Invoke(in) }
}

// Ref is a non-owning reference to a non-failing invocable, bound at
// construction: no empty state, no rebinding, no lifecycle operations.
// Its zero value is unusable by contract; only NewRef/NewRefFunc
// produce valid references.
type Ref[I, O any] struct {
	trampoline func(I) O
}

// NewRef binds a reference to the target the caller retains ownership
// of. Mutations of *target remain visible through the reference.
func NewRef[I, O, T any, PT callable.Target[T, I, O]](target *T) Ref[I, O] {
	return Ref[I, O]{trampoline: bind[I, O, T, PT](target)}
}

// NewRefFunc binds a reference to a plain function.
func NewRefFunc[I, O any](fn func(I) O) Ref[I, O] {
	f := callable.FuncOf[I, O](fn)
	return NewRef[I, O, callable.FuncOf[I, O]](&f)
}

// Invoke calls the referenced target.
func (r Ref[I, O]) Invoke(in I) O {
	if r.trampoline == nil {
		panic(callable.ErrEmptyCall)
	}
	return r.trampoline(in)
}

// RefE is [Ref] under the failing policy.
type RefE[I, O any] struct {
	trampoline func(I) (O, error)
}

// NewRefE binds a reference to the failing target the caller retains
// ownership of.
func NewRefE[I, O, T any, PT callable.TargetE[T, I, O]](target *T) RefE[I, O] {
	return RefE[I, O]{trampoline: bindE[I, O, T, PT](target)}
}

// NewRefEFunc binds a reference to a plain failing function.
func NewRefEFunc[I, O any](fn func(I) (O, error)) RefE[I, O] {
	f := callable.FuncEOf[I, O](fn)
	return NewRefE[I, O, callable.FuncEOf[I, O]](&f)
}

// Invoke calls the referenced target, or reports
// [callable.ErrEmptyCall] for a zero-value reference.
func (r RefE[I, O]) Invoke(in I) (O, error) {
	if r.trampoline == nil {
		var zero O
		return zero, callable.ErrEmptyCall
	}
	return r.trampoline(in)
}
