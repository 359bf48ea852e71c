package optable

import (
	"reflect"
	"unsafe"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/on-the-ground/call_able_go/callable/internal/storage"
)

// Fixed returns the table for target type T stored in a Fixed[B] cell
// under the non-failing policy. Building the table for a target that
// would need boxing panics: the fixed cell has no heap fallback, so the
// first construction is where the rejection surfaces.
func Fixed[B storage.Buffer, I, O, T any, PT Invocable[T, I, O]](kind Kind) *Table[I, O] {
	key := fixedKey[B, I, O, T](kind, false)
	return tableFor(key, func() *Table[I, O] {
		mode := fixedMode[B, T]()
		tb := newFixed[B, I, O, T](kind, mode)
		if mode == storage.ModeInline {
			tb.Invoke = func(h unsafe.Pointer, in I) (O, error) {
				return PT(fixedInline[B, T](h)).Invoke(in), nil
			}
		} else {
			tb.Invoke = func(h unsafe.Pointer, in I) (O, error) {
				return PT(fixedDirect[B, T](h)).Invoke(in), nil
			}
		}
		return tb
	})
}

// FixedE is Fixed for targets under the failing policy.
func FixedE[B storage.Buffer, I, O, T any, PT InvocableE[T, I, O]](kind Kind) *Table[I, O] {
	key := fixedKey[B, I, O, T](kind, true)
	return tableFor(key, func() *Table[I, O] {
		mode := fixedMode[B, T]()
		tb := newFixed[B, I, O, T](kind, mode)
		if mode == storage.ModeInline {
			tb.Invoke = func(h unsafe.Pointer, in I) (O, error) {
				return PT(fixedInline[B, T](h)).Invoke(in)
			}
		} else {
			tb.Invoke = func(h unsafe.Pointer, in I) (O, error) {
				return PT(fixedDirect[B, T](h)).Invoke(in)
			}
		}
		return tb
	})
}

// fixedMode resolves T's storage mode under B's capacity, rejecting the
// boxed mode outright.
func fixedMode[B storage.Buffer, T any]() storage.Mode {
	t := reflect.TypeFor[T]()
	mode := storage.ModeOf(t, storage.SizeOf[B]())
	if mode == storage.ModeBoxed {
		panic(storage.RejectFixed(t, storage.SizeOf[B]()))
	}
	return mode
}

func newFixed[B storage.Buffer, I, O, T any](kind Kind, mode storage.Mode) *Table[I, O] {
	tb := &Table[I, O]{
		ID:       uuid.New().String(),
		Mode:     mode,
		Destroy:  fixedDestroy[B](mode),
		Relocate: fixedRelocate[B](mode),
	}
	if kind == KindCopyable {
		tb.Clone = fixedClone[B](mode)
	}
	logger, _ := zap.NewProduction()
	logger.Sugar().Debugf("created op table: tableId: %v, target: %v, capacity: %v, mode: %v, kind: %v",
		tb.ID, reflect.TypeFor[T](), storage.SizeOf[B](), mode, kind)
	return tb
}

func fixedInline[B storage.Buffer, T any](h unsafe.Pointer) *T {
	return (*T)(unsafe.Pointer(&(*storage.Fixed[B])(h).Buf))
}

// fixedDirect addresses the pointer-shaped value inside the cell's
// reference slot, without copying it out.
func fixedDirect[B storage.Buffer, T any](h unsafe.Pointer) *T {
	return (*T)(unsafe.Pointer(&(*storage.Fixed[B])(h).Ref))
}

func fixedDestroy[B storage.Buffer](mode storage.Mode) func(unsafe.Pointer) {
	if mode == storage.ModeInline {
		return func(h unsafe.Pointer) {
			var zero B
			(*storage.Fixed[B])(h).Buf = zero
		}
	}
	return func(h unsafe.Pointer) {
		(*storage.Fixed[B])(h).Ref = nil
	}
}

func fixedClone[B storage.Buffer](mode storage.Mode) func(dst, src unsafe.Pointer) {
	if mode == storage.ModeInline {
		return func(dst, src unsafe.Pointer) {
			(*storage.Fixed[B])(dst).Buf = (*storage.Fixed[B])(src).Buf
		}
	}
	// Direct-mode targets are single pointer words; a slot copy is the
	// same member-wise duplication the inline body performs.
	return func(dst, src unsafe.Pointer) {
		(*storage.Fixed[B])(dst).Ref = (*storage.Fixed[B])(src).Ref
	}
}

func fixedRelocate[B storage.Buffer](mode storage.Mode) func(dst, src unsafe.Pointer) {
	if mode == storage.ModeInline {
		return func(dst, src unsafe.Pointer) {
			d, s := (*storage.Fixed[B])(dst), (*storage.Fixed[B])(src)
			var zero B
			d.Buf = s.Buf
			s.Buf = zero
		}
	}
	return func(dst, src unsafe.Pointer) {
		d, s := (*storage.Fixed[B])(dst), (*storage.Fixed[B])(src)
		d.Ref = s.Ref
		s.Ref = nil
	}
}
