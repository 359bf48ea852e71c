package callable

// Func is the contract of a non-failing target: an invocable whose call
// takes one input of type I and returns one output of type O, with no
// error path. A wrapper declared over Func promises its callers the
// same thing, which is why only Func targets are admissible in it.
type Func[I, O any] interface {
	Invoke(in I) O
}

// FuncE is the contract of a failing target: its call may report an
// error, and wrappers over FuncE propagate that error unchanged.
type FuncE[I, O any] interface {
	Invoke(in I) (O, error)
}

// Target constrains the stored form of a non-failing target: a value of
// type T whose pointer satisfies Func. Accepting the pointer form lets
// stateful targets with pointer-receiver Invoke methods mutate in place
// inside the wrapper's storage.
type Target[T, I, O any] interface {
	*T
	Func[I, O]
}

// TargetE is Target for failing targets.
type TargetE[T, I, O any] interface {
	*T
	FuncE[I, O]
}

// FuncOf adapts a plain function as a non-failing target.
type FuncOf[I, O any] func(I) O

// Invoke implements [Func].
func (f FuncOf[I, O]) Invoke(in I) O { return f(in) }

// FuncEOf adapts a plain function as a failing target.
type FuncEOf[I, O any] func(I) (O, error)

// Invoke implements [FuncE].
func (f FuncEOf[I, O]) Invoke(in I) (O, error) { return f(in) }

// AsFuncE adapts a non-failing target for a failing-policy wrapper:
// the adapted call never reports an error.
func AsFuncE[I, O any](f Func[I, O]) FuncEOf[I, O] {
	return func(in I) (O, error) { return f.Invoke(in), nil }
}

// Unit fills the input or output position of a signature that has none.
type Unit struct{}

// Args2 packs two call arguments into one signature input.
type Args2[A, B any] struct {
	A1 A
	A2 B
}

// Args3 packs three call arguments into one signature input.
type Args3[A, B, C any] struct {
	A1 A
	A2 B
	A3 C
}

// NewFunc0 adapts a nullary function to the Unit-input signature.
func NewFunc0[O any](fn func() O) FuncOf[Unit, O] {
	return func(Unit) O { return fn() }
}

// NewFunc2 adapts a two-argument function to the Args2 signature.
func NewFunc2[A, B, O any](fn func(A, B) O) FuncOf[Args2[A, B], O] {
	return func(args Args2[A, B]) O { return fn(args.A1, args.A2) }
}

// NewFunc3 adapts a three-argument function to the Args3 signature.
func NewFunc3[A, B, C, O any](fn func(A, B, C) O) FuncOf[Args3[A, B, C], O] {
	return func(args Args3[A, B, C]) O { return fn(args.A1, args.A2, args.A3) }
}

// NewFunc0E adapts a nullary failing function to the Unit-input signature.
func NewFunc0E[O any](fn func() (O, error)) FuncEOf[Unit, O] {
	return func(Unit) (O, error) { return fn() }
}

// NewFunc2E adapts a two-argument failing function to the Args2 signature.
func NewFunc2E[A, B, O any](fn func(A, B) (O, error)) FuncEOf[Args2[A, B], O] {
	return func(args Args2[A, B]) (O, error) { return fn(args.A1, args.A2) }
}

// NewFunc3E adapts a three-argument failing function to the Args3 signature.
func NewFunc3E[A, B, C, O any](fn func(A, B, C) (O, error)) FuncEOf[Args3[A, B, C], O] {
	return func(args Args3[A, B, C]) (O, error) { return fn(args.A1, args.A2, args.A3) }
}
