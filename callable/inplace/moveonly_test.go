package inplace_test

import (
	"testing"

	"github.com/on-the-ground/call_able_go/callable"
	"github.com/on-the-ground/call_able_go/callable/inplace"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveOnly_ZeroValueIsEmpty(t *testing.T) {
	var w inplace.MoveOnly[inplace.Cap8, int, int]
	assert.True(t, w.Empty())
	assert.PanicsWithValue(t, callable.ErrEmptyCall, func() { w.Invoke(0) })
}

func TestMoveOnly_MoveLeavesSourceEmpty(t *testing.T) {
	w := inplace.NewMoveOnly[inplace.Cap16, int, int](tally{})
	w.Invoke(0)

	m := w.Move()
	require.True(t, w.Empty())
	assert.Equal(t, 2, m.Invoke(0))
}

func TestMoveOnly_OversizedTargetIsRejected(t *testing.T) {
	assert.Panics(t, func() {
		inplace.NewMoveOnly[inplace.Cap8, int, int](wide{1, 2, 3})
	})
}

func TestMoveOnly_SelfMovePanics(t *testing.T) {
	w := inplace.NewMoveOnly[inplace.Cap16, int, int](tally{})
	assert.PanicsWithValue(t, "callable: self move assignment", func() {
		w.MoveFrom(&w)
	})
}

func TestMoveOnly_SwapWithEmpty(t *testing.T) {
	held := inplace.NewMoveOnly[inplace.Cap16, int, int](tally{})
	var empty inplace.MoveOnly[inplace.Cap16, int, int]

	held.Swap(&empty)
	assert.True(t, held.Empty())
	assert.Equal(t, 1, empty.Invoke(0))
}

func TestMoveOnlyE_EmptyInvokeReportsError(t *testing.T) {
	var w inplace.MoveOnlyE[inplace.Cap8, int, int]
	_, err := w.Invoke(0)
	assert.ErrorIs(t, err, callable.ErrEmptyCall)
}

func TestMoveOnlyE_AssignAndMove(t *testing.T) {
	var w inplace.MoveOnlyE[inplace.Cap8, int, int]
	inplace.AssignMoveOnlyE[inplace.Cap8, int, int](&w, callable.FuncEOf[int, int](
		func(i int) (int, error) { return i * 2, nil },
	))

	out, err := w.Invoke(3)
	require.NoError(t, err)
	assert.Equal(t, 6, out)

	m := w.Move()
	assert.True(t, w.Empty())
	out, err = m.Invoke(4)
	require.NoError(t, err)
	assert.Equal(t, 8, out)
}
