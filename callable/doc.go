// Package callable provides type-erased callable containers: values
// that hold "any" invocable matching a fixed call signature behind a
// uniform interface, without virtual-dispatch hierarchies and without
// unconditional heap allocation.
//
// # Shape of a signature
//
// A signature is the generic pair [I, O]: one input type, one output
// type. Multi-argument calls are packed with [Args2]/[Args3] and
// argument-less or result-less positions filled with [Unit], via the
// NewFunc0/NewFunc2/NewFunc3 adapter family. The failure policy is part
// of the signature: non-failing wrappers hold [Func] targets and their
// Invoke returns O; failing wrappers (suffix E) hold [FuncE] targets
// and their Invoke returns (O, error). A non-failing wrapper cannot be
// constructed from a failing target — the constraint does not admit it.
//
// # How storage and dispatch work
//
// Constructing a wrapper from a concrete target selects a per-type
// operation table — a process-lifetime cached record of invoke,
// destroy, clone and relocate operations closed over the concrete type.
// Every later operation is one indirect call through that table; the
// wrapper never inspects the concrete type again. Small pointer-free
// targets live inline in the wrapper's buffer; pointer-shaped targets
// (plain functions, pointers) are held directly without allocating;
// only the rest is boxed, exactly once. The fixed-capacity variants in
// the inplace subpackage never box at all, and the ref subpackage holds
// targets it does not own.
//
// # What this package is not
//
// Wrappers support exactly one operation (invocation) plus lifecycle:
// clone, move, swap, clear. There is no introspection of the stored
// type and no comparison between two non-empty wrappers. Instances are
// plain values with no internal synchronization: racing a reassignment
// against an invocation of the same instance is the caller's bug to
// serialize. Copying a wrapper with plain assignment instead of
// Clone/Move is a contract violation, same family as copying a
// sync.Mutex.
package callable
