package optable

import (
	"reflect"
	"unsafe"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/on-the-ground/call_able_go/callable/internal/storage"
)

// Adaptive returns the table for target type T stored in an adaptive
// cell under the non-failing policy, building and caching it on first
// use.
func Adaptive[I, O, T any, PT Invocable[T, I, O]](kind Kind) *Table[I, O] {
	key := adaptiveKey[I, O, T](kind, false)
	return tableFor(key, func() *Table[I, O] {
		mode := storage.ModeOf(reflect.TypeFor[T](), storage.InlineCapacity)
		tb := newAdaptive[I, O, T](kind, mode)
		switch mode {
		case storage.ModeInline:
			tb.Invoke = func(h unsafe.Pointer, in I) (O, error) {
				return PT(adaptiveInline[T](h)).Invoke(in), nil
			}
		case storage.ModeDirect:
			tb.Invoke = func(h unsafe.Pointer, in I) (O, error) {
				return PT(adaptiveDirect[T](h)).Invoke(in), nil
			}
		default:
			tb.Invoke = func(h unsafe.Pointer, in I) (O, error) {
				return PT(adaptiveBoxed[T](h)).Invoke(in), nil
			}
		}
		return tb
	})
}

// AdaptiveE is Adaptive for targets under the failing policy.
func AdaptiveE[I, O, T any, PT InvocableE[T, I, O]](kind Kind) *Table[I, O] {
	key := adaptiveKey[I, O, T](kind, true)
	return tableFor(key, func() *Table[I, O] {
		mode := storage.ModeOf(reflect.TypeFor[T](), storage.InlineCapacity)
		tb := newAdaptive[I, O, T](kind, mode)
		switch mode {
		case storage.ModeInline:
			tb.Invoke = func(h unsafe.Pointer, in I) (O, error) {
				return PT(adaptiveInline[T](h)).Invoke(in)
			}
		case storage.ModeDirect:
			tb.Invoke = func(h unsafe.Pointer, in I) (O, error) {
				return PT(adaptiveDirect[T](h)).Invoke(in)
			}
		default:
			tb.Invoke = func(h unsafe.Pointer, in I) (O, error) {
				return PT(adaptiveBoxed[T](h)).Invoke(in)
			}
		}
		return tb
	})
}

// newAdaptive assembles the lifecycle operations shared by both
// policies. The per-mode bodies are picked here, once.
func newAdaptive[I, O, T any](kind Kind, mode storage.Mode) *Table[I, O] {
	tb := &Table[I, O]{
		ID:       uuid.New().String(),
		Mode:     mode,
		Destroy:  adaptiveDestroy(mode),
		Relocate: adaptiveRelocate(mode),
	}
	if kind == KindCopyable {
		tb.Clone = adaptiveClone[T](mode)
	}
	logger, _ := zap.NewProduction()
	logger.Sugar().Debugf("created op table: tableId: %v, target: %v, mode: %v, kind: %v",
		tb.ID, reflect.TypeFor[T](), mode, kind)
	return tb
}

func adaptiveInline[T any](h unsafe.Pointer) *T {
	return (*T)(unsafe.Pointer(&(*storage.Adaptive)(h).Inline))
}

// adaptiveDirect addresses the pointer-shaped value inside the cell's
// reference slot. No copy is taken, so invocation stays allocation-free
// and mutations land in the slot.
func adaptiveDirect[T any](h unsafe.Pointer) *T {
	return (*T)(unsafe.Pointer(&(*storage.Adaptive)(h).Ref))
}

func adaptiveBoxed[T any](h unsafe.Pointer) *T {
	return (*T)((*storage.Adaptive)(h).Ref)
}

func adaptiveDestroy(mode storage.Mode) func(unsafe.Pointer) {
	if mode == storage.ModeInline {
		return func(h unsafe.Pointer) {
			(*storage.Adaptive)(h).Inline = [storage.InlineCapacity]byte{}
		}
	}
	return func(h unsafe.Pointer) {
		(*storage.Adaptive)(h).Ref = nil
	}
}

func adaptiveClone[T any](mode storage.Mode) func(dst, src unsafe.Pointer) {
	switch mode {
	case storage.ModeInline:
		return func(dst, src unsafe.Pointer) {
			(*storage.Adaptive)(dst).Inline = (*storage.Adaptive)(src).Inline
		}
	case storage.ModeDirect:
		return func(dst, src unsafe.Pointer) {
			(*storage.Adaptive)(dst).Ref = (*storage.Adaptive)(src).Ref
		}
	default:
		return func(dst, src unsafe.Pointer) {
			dup := *adaptiveBoxed[T](src)
			(*storage.Adaptive)(dst).Ref = unsafe.Pointer(&dup)
		}
	}
}

func adaptiveRelocate(mode storage.Mode) func(dst, src unsafe.Pointer) {
	if mode == storage.ModeInline {
		return func(dst, src unsafe.Pointer) {
			d, s := (*storage.Adaptive)(dst), (*storage.Adaptive)(src)
			d.Inline = s.Inline
			s.Inline = [storage.InlineCapacity]byte{}
		}
	}
	return func(dst, src unsafe.Pointer) {
		d, s := (*storage.Adaptive)(dst), (*storage.Adaptive)(src)
		d.Ref = s.Ref
		s.Ref = nil
	}
}
