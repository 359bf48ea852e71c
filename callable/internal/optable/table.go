// Package optable builds and caches the operation tables the wrappers
// dispatch through.
//
// A table is an immutable record of four function pointers closed over
// one concrete target type. The body of every operation — which part of
// the storage cell it touches and how — is chosen once, while the table
// is built; invoking, destroying, cloning, or relocating a target costs
// exactly one indirect call, with no storage-mode branch at call time.
//
// Tables are process-lifetime singletons, one per (target type, wrapper
// kind, failure policy, buffer type), held in a sharded registry. Every
// wrapper holding the same concrete target shares the same table, and a
// wrapper is empty precisely when it points at the empty sentinel table
// of its signature and policy.
package optable

import (
	"fmt"
	"unsafe"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/on-the-ground/call_able_go/callable/internal/storage"
)

// ErrEmptyCall reports an invocation of an empty wrapper. The failing
// policy returns it from Invoke; the non-failing policy panics with it.
var ErrEmptyCall = fmt.Errorf("call of empty callable wrapper")

// Kind selects the lifecycle capability set of a table.
type Kind uint8

const (
	// KindCopyable tables carry all four operations.
	KindCopyable Kind = iota
	// KindMoveOnly tables have no Clone operation.
	KindMoveOnly
)

func (k Kind) String() string {
	switch k {
	case KindCopyable:
		return "copyable"
	case KindMoveOnly:
		return "move-only"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Invocable constrains PT to the pointer form of a non-failing target:
// a *T whose Invoke cannot report an error.
type Invocable[T, I, O any] interface {
	*T
	Invoke(in I) O
}

// InvocableE constrains PT to the pointer form of a failing target.
type InvocableE[T, I, O any] interface {
	*T
	Invoke(in I) (O, error)
}

// Table is the dispatch record installed in every owning wrapper. The
// handle passed to each operation is the address of the wrapper's
// storage cell; each operation casts it back per the storage mode fixed
// at construction.
type Table[I, O any] struct {
	// ID correlates this table's lifecycle log lines.
	ID string
	// Sentinel marks the two empty flavors. A wrapper is empty exactly
	// when its installed table is a sentinel; there is no other
	// representation of "holds nothing".
	Sentinel bool
	// Mode is the storage decision this table was built around. The
	// wrapper hands it back to the storage layer when installing a new
	// target, so storing never re-inspects the type.
	Mode storage.Mode
	// Invoke calls the stored target. Targets under the non-failing
	// policy report a statically-nil error.
	Invoke func(h unsafe.Pointer, in I) (O, error)
	// Destroy releases the stored target: zeroes inline bytes or drops
	// the cell's reference.
	Destroy func(h unsafe.Pointer)
	// Clone duplicates the source cell's target into the destination
	// cell. Nil in move-only tables.
	Clone func(dst, src unsafe.Pointer)
	// Relocate moves the source cell's target into the destination cell
	// and leaves the source holding nothing. Never fails.
	Relocate func(dst, src unsafe.Pointer)
}

// Empty returns the non-failing empty sentinel for the [I, O]
// signature: its Invoke enacts the hard fault, its other operations do
// nothing. The result is a process-lifetime singleton, so pointer
// equality against it is the emptiness test.
func Empty[I, O any]() *Table[I, O] {
	key := sentinelKey[I, O](false)
	return tableFor(key, func() *Table[I, O] {
		tb := newSentinel[I, O]()
		tb.Invoke = func(unsafe.Pointer, I) (O, error) {
			panic(ErrEmptyCall)
		}
		logCreated(tb.ID, "empty sentinel (non-failing)")
		return tb
	})
}

// EmptyE returns the failing empty sentinel for the [I, O] signature:
// its Invoke reports ErrEmptyCall.
func EmptyE[I, O any]() *Table[I, O] {
	key := sentinelKey[I, O](true)
	return tableFor(key, func() *Table[I, O] {
		tb := newSentinel[I, O]()
		tb.Invoke = func(unsafe.Pointer, I) (O, error) {
			var zero O
			return zero, ErrEmptyCall
		}
		logCreated(tb.ID, "empty sentinel (failing)")
		return tb
	})
}

func newSentinel[I, O any]() *Table[I, O] {
	return &Table[I, O]{
		ID:       uuid.New().String(),
		Sentinel: true,
		Destroy:  func(unsafe.Pointer) {},
		Clone:    func(dst, src unsafe.Pointer) {},
		Relocate: func(dst, src unsafe.Pointer) {},
	}
}

func logCreated(id string, desc string) {
	logger, _ := zap.NewProduction()
	logger.Sugar().Debugf("created op table: tableId: %v, %v", id, desc)
}
