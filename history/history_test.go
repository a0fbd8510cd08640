// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudeng.io/hexed/delta"
	"cloudeng.io/hexed/history"
	"cloudeng.io/hexed/rope"
	"cloudeng.io/hexed/selection"
)

func insertDelta(base *rope.Rope, at int, s string) delta.Delta {
	return delta.NewBuilder(base.Len()).Replace(at, at, rope.New([]byte(s))).Build()
}

func apply(t *testing.T, base *rope.Rope, d delta.Delta) *rope.Rope {
	t.Helper()
	r, err := delta.Apply(base, d)
	require.NoError(t, err)
	return r
}

func TestUndoRedoRoundTrip(t *testing.T) {
	h := history.New()
	assert.False(t, h.HasUndo())
	assert.False(t, h.HasRedo())

	base := rope.New([]byte("hello"))
	d := insertDelta(base, 5, "!")
	after := apply(t, base, d)

	h.PerformFinal(base, d, selection.Single(5))
	assert.True(t, h.HasUndo())
	assert.False(t, h.HasRedo())

	inv, sel, ok := h.Undo(after, selection.Single(6))
	require.True(t, ok)
	restored := apply(t, after, inv)
	assert.Equal(t, base.Bytes(), restored.Bytes())
	assert.Equal(t, 5, sel.Main().Caret)
	assert.True(t, h.HasRedo())
	assert.False(t, h.HasUndo())

	redoDelta, redoSel, ok := h.Redo(restored, sel)
	require.True(t, ok)
	redone := apply(t, restored, redoDelta)
	assert.Equal(t, after.Bytes(), redone.Bytes())
	assert.Equal(t, 6, redoSel.Main().Caret)
}

func TestUndoEmptyStackReturnsFalse(t *testing.T) {
	h := history.New()
	_, _, ok := h.Undo(rope.New([]byte("x")), selection.Single(0))
	assert.False(t, ok)
}

func TestPerformFinalClearsRedo(t *testing.T) {
	h := history.New()
	base := rope.New([]byte("abc"))
	d1 := insertDelta(base, 3, "d")
	h.PerformFinal(base, d1, selection.Single(3))
	mid := apply(t, base, d1)

	_, _, ok := h.Undo(mid, selection.Single(4))
	require.True(t, ok)
	require.True(t, h.HasRedo())

	d2 := insertDelta(base, 0, "X")
	h.PerformFinal(base, d2, selection.Single(0))
	assert.False(t, h.HasRedo(), "a fresh edit must discard stale redo history")
}

func TestPerformFinalPanicsWhilePartialPending(t *testing.T) {
	h := history.New()
	base := rope.New([]byte("ab"))
	d := insertDelta(base, 2, "c")
	h.PerformPartial(base, d, selection.Single(2))

	assert.PanicsWithError(t, history.ErrPartialPending.Error(), func() {
		h.PerformFinal(base, d, selection.Single(2))
	})
}

func TestPartialCoalescesIntoOneUndoStep(t *testing.T) {
	h := history.New()
	base := rope.New([]byte("go"))

	d1 := insertDelta(base, 2, "p")
	mid1 := apply(t, base, d1)
	h.PerformPartial(base, d1, selection.Single(2))

	d2 := insertDelta(mid1, 3, "h")
	mid2 := apply(t, mid1, d2)
	h.PerformPartial(mid1, d2, selection.Single(3))

	assert.False(t, h.HasUndo(), "nothing lands on the undo stack until committed")
	h.CommitPartial()
	require.True(t, h.HasUndo())

	inv, sel, ok := h.Undo(mid2, selection.Single(4))
	require.True(t, ok)
	restored := apply(t, mid2, inv)
	assert.Equal(t, base.Bytes(), restored.Bytes(), "one undo should unwind the whole typed run")
	assert.Equal(t, 2, sel.Main().Caret, "the snapshot from the first partial call is preserved")
}

func TestCommitPartialNoopWhenEmpty(t *testing.T) {
	h := history.New()
	h.CommitPartial()
	assert.False(t, h.HasUndo())
}
