package callable_test

import (
	"errors"
	"testing"

	"github.com/on-the-ground/call_able_go/callable"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counter is small and pointer-free, so it lands in the wrapper's
// inline buffer. Its output exposes its state: the nth call returns
// n + in.
type counter struct {
	hits int
}

func (c *counter) Invoke(in int) int {
	c.hits++
	return c.hits + in
}

// bigCounter is the same probe padded past the inline capacity, so it
// is boxed.
type bigCounter struct {
	_    [64]byte
	hits int
}

func (c *bigCounter) Invoke(in int) int {
	c.hits++
	return c.hits + in
}

func TestCopyable_ZeroValueIsEmpty(t *testing.T) {
	var w callable.Copyable[int, int]
	assert.True(t, w.Empty())
	assert.PanicsWithValue(t, callable.ErrEmptyCall, func() { w.Invoke(1) })
}

func TestCopyable_WrapsPlainFunc(t *testing.T) {
	w := callable.NewCopyableFunc[int, int](func(i int) int { return i * 2 })
	assert.False(t, w.Empty())
	assert.Equal(t, 4, w.Invoke(2))
	assert.Equal(t, 0, w.Invoke(0))
}

func TestCopyable_StatefulTargetMutatesInPlace(t *testing.T) {
	w := callable.NewCopyable[int, int](counter{})
	assert.Equal(t, 1, w.Invoke(0))
	assert.Equal(t, 2, w.Invoke(0))
	assert.Equal(t, 13, w.Invoke(10))
}

func TestCopyable_StatefulBoxedTargetMutatesInPlace(t *testing.T) {
	w := callable.NewCopyable[int, int](bigCounter{})
	assert.Equal(t, 1, w.Invoke(0))
	assert.Equal(t, 2, w.Invoke(0))
}

func TestCopyable_CloneDoesNotAliasInlineState(t *testing.T) {
	w := callable.NewCopyable[int, int](counter{})
	w.Invoke(0)
	w.Invoke(0) // state: 2 hits

	dup := w.Clone()
	require.False(t, dup.Empty())

	// Each side advances its own copy from 2.
	assert.Equal(t, 3, dup.Invoke(0))
	assert.Equal(t, 3, w.Invoke(0))
	assert.Equal(t, 4, w.Invoke(0))
	assert.Equal(t, 4, dup.Invoke(0))
}

func TestCopyable_CloneDoesNotAliasBoxedState(t *testing.T) {
	w := callable.NewCopyable[int, int](bigCounter{})
	w.Invoke(0)

	dup := w.Clone()
	assert.Equal(t, 2, dup.Invoke(0))
	assert.Equal(t, 2, w.Invoke(0))
	assert.Equal(t, 3, dup.Invoke(0))
}

func TestCopyable_CloneFromReplacesTarget(t *testing.T) {
	src := callable.NewCopyableFunc[int, int](func(i int) int { return i + 100 })
	dst := callable.NewCopyable[int, int](counter{})

	dst.CloneFrom(&src)
	assert.Equal(t, 101, dst.Invoke(1))
	assert.Equal(t, 101, src.Invoke(1))

	// Self clone keeps the target untouched.
	dst.CloneFrom(&dst)
	assert.Equal(t, 102, dst.Invoke(2))
}

func TestCopyable_MoveLeavesSourceEmpty(t *testing.T) {
	w := callable.NewCopyable[int, int](counter{})
	w.Invoke(0) // state: 1 hit

	m := w.Move()
	require.True(t, w.Empty())
	assert.PanicsWithValue(t, callable.ErrEmptyCall, func() { w.Invoke(0) })

	// The moved-to wrapper continues from the source's state.
	assert.Equal(t, 2, m.Invoke(0))
}

func TestCopyable_MoveFromDestroysOldTarget(t *testing.T) {
	src := callable.NewCopyable[int, int](counter{})
	src.Invoke(0)
	dst := callable.NewCopyableFunc[int, int](func(i int) int { return -i })

	dst.MoveFrom(&src)
	assert.True(t, src.Empty())
	assert.Equal(t, 2, dst.Invoke(0))
}

func TestCopyable_SelfMovePanics(t *testing.T) {
	w := callable.NewCopyable[int, int](counter{})
	assert.PanicsWithValue(t, "callable: self move assignment", func() {
		w.MoveFrom(&w)
	})
}

func TestCopyable_SwapExchangesContents(t *testing.T) {
	a := callable.NewCopyableFunc[int, int](func(i int) int { return i + 1 })
	b := callable.NewCopyableFunc[int, int](func(i int) int { return i - 1 })

	a.Swap(&b)
	assert.Equal(t, 0, a.Invoke(1))
	assert.Equal(t, 2, b.Invoke(1))

	// Self swap is a no-op.
	a.Swap(&a)
	assert.Equal(t, 0, a.Invoke(1))
}

func TestCopyable_SwapWithEmpty(t *testing.T) {
	held := callable.NewCopyable[int, int](counter{})
	var empty callable.Copyable[int, int]

	held.Swap(&empty)
	assert.True(t, held.Empty())
	assert.False(t, empty.Empty())
	assert.Equal(t, 1, empty.Invoke(0))

	var e1, e2 callable.Copyable[int, int]
	e1.Swap(&e2)
	assert.True(t, e1.Empty())
	assert.True(t, e2.Empty())
}

func TestCopyable_ClearMatchesZeroValue(t *testing.T) {
	w := callable.NewCopyable[int, int](bigCounter{})
	w.Clear()
	assert.True(t, w.Empty())
	assert.PanicsWithValue(t, callable.ErrEmptyCall, func() { w.Invoke(0) })

	// Clearing an already-empty wrapper stays empty.
	w.Clear()
	assert.True(t, w.Empty())
}

func TestCopyable_AssignReplacesTargetType(t *testing.T) {
	w := callable.NewCopyableFunc[int, int](func(i int) int { return i * 2 })
	require.Equal(t, 4, w.Invoke(2))

	callable.AssignCopyable[int, int](&w, counter{})
	assert.Equal(t, 1, w.Invoke(0))

	callable.AssignCopyable[int, int](&w, bigCounter{})
	assert.Equal(t, 1, w.Invoke(0))
}

func TestCopyableE_EmptyInvokeReportsError(t *testing.T) {
	var w callable.CopyableE[int, int]
	require.True(t, w.Empty())

	_, err := w.Invoke(1)
	assert.ErrorIs(t, err, callable.ErrEmptyCall)

	// The wrapper is usable once a target arrives.
	callable.AssignCopyableE[int, int](&w, callable.FuncEOf[int, int](func(i int) (int, error) {
		return i + 1, nil
	}))
	out, err := w.Invoke(1)
	require.NoError(t, err)
	assert.Equal(t, 2, out)
}

func TestCopyableE_TargetErrorPassesThrough(t *testing.T) {
	errBoom := errors.New("boom")
	w := callable.NewCopyableEFunc[int, int](func(i int) (int, error) {
		if i < 0 {
			return 0, errBoom
		}
		return i, nil
	})

	_, err := w.Invoke(-1)
	assert.ErrorIs(t, err, errBoom)

	// A target error does not disturb the wrapper.
	require.False(t, w.Empty())
	out, err := w.Invoke(7)
	require.NoError(t, err)
	assert.Equal(t, 7, out)
}

func TestCopyableE_LifecycleMirrorsNonFailing(t *testing.T) {
	w := callable.NewCopyableEFunc[int, int](func(i int) (int, error) { return i + 1, nil })

	dup := w.Clone()
	out, err := dup.Invoke(1)
	require.NoError(t, err)
	assert.Equal(t, 2, out)

	m := w.Move()
	assert.True(t, w.Empty())
	out, err = m.Invoke(2)
	require.NoError(t, err)
	assert.Equal(t, 3, out)

	m.Swap(&w)
	assert.True(t, m.Empty())
	assert.False(t, w.Empty())
}
