package optable_test

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/on-the-ground/call_able_go/callable/internal/optable"
	"github.com/on-the-ground/call_able_go/callable/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probe struct {
	n int
}

func (p *probe) Invoke(in int) int {
	p.n += in
	return p.n
}

type probeE struct {
	n int
}

func (p *probeE) Invoke(in int) (int, error) {
	p.n += in
	return p.n, nil
}

func TestAdaptive_TablesAreSingletons(t *testing.T) {
	a := optable.Adaptive[int, int, probe](optable.KindCopyable)
	b := optable.Adaptive[int, int, probe](optable.KindCopyable)
	if a != b {
		t.Fatalf("expected one table per target type, got %p and %p", a, b)
	}
	assert.Equal(t, a.ID, b.ID)
}

func TestAdaptive_KeysSeparateKindAndPolicy(t *testing.T) {
	copyable := optable.Adaptive[int, int, probe](optable.KindCopyable)
	moveOnly := optable.Adaptive[int, int, probe](optable.KindMoveOnly)
	failing := optable.AdaptiveE[int, int, probeE](optable.KindCopyable)

	assert.NotSame(t, copyable, moveOnly)
	assert.NotNil(t, copyable.Clone)
	assert.Nil(t, moveOnly.Clone)
	assert.NotNil(t, failing.Invoke)
}

func TestAdaptive_ConcurrentFirstUseAgreesOnOneTable(t *testing.T) {
	const workers = 16
	var wg sync.WaitGroup
	results := make([]*optable.Table[uint32, uint32], workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			results[slot] = optable.Adaptive[uint32, uint32, raceProbe](optable.KindCopyable)
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if results[i] != results[0] {
			t.Fatalf("worker %d saw a different table", i)
		}
	}
}

// raceProbe exists only for the concurrent first-build test, so its
// table cannot have been warmed by another test.
type raceProbe struct {
	n uint32
}

func (p *raceProbe) Invoke(in uint32) uint32 {
	p.n += in
	return p.n
}

func TestEmpty_SentinelsAreSingletonsPerPolicy(t *testing.T) {
	nonFailing := optable.Empty[int, int]()
	failing := optable.EmptyE[int, int]()

	assert.Same(t, nonFailing, optable.Empty[int, int]())
	assert.Same(t, failing, optable.EmptyE[int, int]())
	assert.NotSame(t, nonFailing, failing)
	assert.True(t, nonFailing.Sentinel)
	assert.True(t, failing.Sentinel)
}

func TestEmpty_SentinelEnforcesThePolicy(t *testing.T) {
	var cell storage.Adaptive
	h := unsafe.Pointer(&cell)

	assert.PanicsWithValue(t, optable.ErrEmptyCall, func() {
		optable.Empty[int, int]().Invoke(h, 1)
	})

	_, err := optable.EmptyE[int, int]().Invoke(h, 1)
	assert.ErrorIs(t, err, optable.ErrEmptyCall)

	// The lifecycle operations of a sentinel are inert.
	optable.Empty[int, int]().Destroy(h)
	optable.Empty[int, int]().Relocate(h, h)
}

func TestAdaptive_OperationsDriveTheCell(t *testing.T) {
	tb := optable.Adaptive[int, int, probe](optable.KindCopyable)
	require.Equal(t, storage.ModeInline, tb.Mode)

	var src, dst storage.Adaptive
	storage.PutAdaptive(&src, probe{n: 10}, tb.Mode)

	out, err := tb.Invoke(unsafe.Pointer(&src), 5)
	require.NoError(t, err)
	assert.Equal(t, 15, out)

	tb.Clone(unsafe.Pointer(&dst), unsafe.Pointer(&src))
	out, _ = tb.Invoke(unsafe.Pointer(&dst), 1)
	assert.Equal(t, 16, out)
	out, _ = tb.Invoke(unsafe.Pointer(&src), 1)
	assert.Equal(t, 16, out)

	tb.Relocate(unsafe.Pointer(&dst), unsafe.Pointer(&src))
	out, _ = tb.Invoke(unsafe.Pointer(&dst), 0)
	assert.Equal(t, 16, out)

	tb.Destroy(unsafe.Pointer(&dst))
}

func TestFixed_RejectsOversizedTargetAtBuild(t *testing.T) {
	assert.Panics(t, func() {
		optable.Fixed[[8]byte, int, int, wideProbe](optable.KindCopyable)
	})
}

type wideProbe struct {
	a, b int64
}

func (p *wideProbe) Invoke(in int) int {
	return int(p.a+p.b) + in
}

func TestFixed_BuildsInlineAndDirectTables(t *testing.T) {
	inline := optable.Fixed[[16]byte, int, int, wideProbe](optable.KindCopyable)
	assert.Equal(t, storage.ModeInline, inline.Mode)

	var cell storage.Fixed[[16]byte]
	storage.PutFixed(&cell, wideProbe{a: 1, b: 2}, inline.Mode)
	out, err := inline.Invoke(unsafe.Pointer(&cell), 4)
	require.NoError(t, err)
	assert.Equal(t, 7, out)

	inline.Destroy(unsafe.Pointer(&cell))
	out, _ = inline.Invoke(unsafe.Pointer(&cell), 4)
	assert.Equal(t, 4, out)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "copyable", optable.KindCopyable.String())
	assert.Equal(t, "move-only", optable.KindMoveOnly.String())
}
