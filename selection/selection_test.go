// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudeng.io/hexed/delta"
	"cloudeng.io/hexed/rope"
	"cloudeng.io/hexed/selection"
)

// assertInvariants checks Testable Property 1 (sort/disjoint) and 2
// (bounded carets) against maxLen.
func assertInvariants(t *testing.T, s selection.Selection, maxLen int) {
	t.Helper()
	regions := s.Regions()
	require.NotEmpty(t, regions)
	mainCount := 0
	for i, r := range regions {
		assert.GreaterOrEqual(t, r.Caret, 0)
		assert.LessOrEqual(t, r.Caret, maxLen)
		assert.GreaterOrEqual(t, r.Tail, 0)
		assert.LessOrEqual(t, r.Tail, maxLen)
		if r.Main {
			mainCount++
			assert.Equal(t, s.MainIndex(), i)
		}
		if i > 0 {
			assert.Less(t, regions[i-1].Max(), r.Min(), "regions must be sorted and disjoint")
		}
	}
	assert.Equal(t, 1, mainCount, "exactly one region must be main")
}

func TestSingleSelectAll(t *testing.T) {
	s := selection.Single(3)
	assertInvariants(t, s, 10)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 3, s.Main().Caret)

	all := selection.SelectAll(10)
	assertInvariants(t, all, 10)
	assert.Equal(t, selection.Region{Caret: 9, Tail: 0, Main: true}, all.Main())
}

func TestMapSelectionsKeepsDisjointRegions(t *testing.T) {
	s := selection.Selection{}
	s = selection.SelectAll(20)
	s = s.MapSelections(func(r selection.Region) []selection.Region {
		return []selection.Region{
			{Caret: 4, Tail: 0},
			{Caret: 9, Tail: 5},
			{Caret: 19, Tail: 10},
		}
	})
	assertInvariants(t, s, 20)
	assert.Equal(t, 3, s.Len())
}

func TestMapSelectionsMergesAdjacentSameDirection(t *testing.T) {
	s := selection.SelectAll(20).MapSelections(func(r selection.Region) []selection.Region {
		return []selection.Region{
			{Caret: 5, Tail: 0},
			{Caret: 5, Tail: 5}, // overlaps at 5, same direction
		}
	})
	assertInvariants(t, s, 20)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, 5, s.Region(0).Caret)
	assert.Equal(t, 0, s.Region(0).Tail)
}

func TestRetainRemove(t *testing.T) {
	s := selection.SelectAll(20).MapSelections(func(r selection.Region) []selection.Region {
		return []selection.Region{{Caret: 0, Tail: 0}, {Caret: 5, Tail: 5}, {Caret: 10, Tail: 10}}
	})
	require.Equal(t, 3, s.Len())

	retained := s.Retain(1)
	assertInvariants(t, retained, 20)
	assert.Equal(t, 1, retained.Len())
	assert.Equal(t, 5, retained.Main().Caret)

	removed := s.Remove(1)
	assertInvariants(t, removed, 20)
	require.Equal(t, 2, removed.Len())
	assert.Equal(t, 0, removed.Region(0).Caret)
	assert.Equal(t, 10, removed.Region(1).Caret)

	single := selection.Single(0)
	assert.Equal(t, single, single.Remove(0), "removing the only region is a no-op")
}

func TestSelectNextPrevWrap(t *testing.T) {
	s := selection.SelectAll(20).MapSelections(func(r selection.Region) []selection.Region {
		return []selection.Region{{Caret: 0, Tail: 0}, {Caret: 5, Tail: 5}, {Caret: 10, Tail: 10}}
	})
	require.Equal(t, 3, s.Len())
	start := s.MainIndex()

	s = s.SelectNext(1)
	assert.Equal(t, (start+1)%3, s.MainIndex())

	s = s.SelectNext(5)
	assert.Equal(t, (start+1+5)%3, s.MainIndex())

	back := s.SelectPrev(1)
	assert.Equal(t, s.MainIndex(), (back.MainIndex()+1)%3, "prev undoes one next")
}

func TestSimpleMoveAndExtend(t *testing.T) {
	s := selection.Single(10)
	const bpl = 16
	const maxLen = 100

	s2 := s.SimpleMove(selection.Right, 3, bpl, maxLen)
	assertInvariants(t, s2, maxLen)
	assert.Equal(t, 13, s2.Main().Caret)
	assert.Equal(t, 13, s2.Main().Tail, "simple_move collapses the tail onto the caret")

	s3 := s.SimpleExtend(selection.Down, 2, bpl, maxLen)
	assertInvariants(t, s3, maxLen)
	assert.Equal(t, 10+2*bpl, s3.Main().Caret)
	assert.Equal(t, 10, s3.Main().Tail, "simple_extend keeps the tail anchored")

	clamped := s.SimpleMove(selection.Left, 1000, bpl, maxLen)
	assert.Equal(t, 0, clamped.Main().Caret)
}

func TestJumpToBoundary(t *testing.T) {
	const bpl = 8
	const maxLen = 40
	s := selection.Single(19) // line 2, column 3

	up := s.JumpToBoundary(selection.Up, bpl, maxLen)
	assert.Equal(t, 0, up.Main().Caret)

	down := s.JumpToBoundary(selection.Down, bpl, maxLen)
	assert.Equal(t, maxLen-1, down.Main().Caret)

	left := s.JumpToBoundary(selection.Left, bpl, maxLen)
	assert.Equal(t, 16, left.Main().Caret)

	right := s.JumpToBoundary(selection.Right, bpl, maxLen)
	assert.Equal(t, 23, right.Main().Caret)

	extended := s.ExtendToBoundary(selection.Right, bpl, maxLen)
	assert.Equal(t, 19, extended.Main().Tail)
}

func TestSwapCaretCollapseDirection(t *testing.T) {
	s := selection.SelectAll(10) // Caret 9, Tail 0 (forward)

	swapped := s.SwapCaret()
	assert.Equal(t, 0, swapped.Main().Caret)
	assert.Equal(t, 9, swapped.Main().Tail)

	collapsed := s.Collapse()
	assert.True(t, collapsed.Main().IsDegenerate())

	backward := s.ToBackward()
	assert.Equal(t, selection.Backward, backward.Main().Direction())
	assert.Equal(t, 0, backward.Main().Min())
	assert.Equal(t, 9, backward.Main().Max())

	forward := backward.ToForward()
	assert.Equal(t, selection.Forward, forward.Main().Direction())
}

func TestSplitRegion(t *testing.T) {
	r := selection.Region{Caret: 9, Tail: 0} // forward, [0,9]
	pieces := selection.SplitRegion(r, 4, 4)
	require.Len(t, pieces, 2)
	assert.Equal(t, 0, pieces[0].Min())
	assert.Equal(t, 3, pieces[0].Max())
	assert.Equal(t, 5, pieces[1].Min())
	assert.Equal(t, 9, pieces[1].Max())
	for _, p := range pieces {
		assert.Equal(t, selection.Forward, p.Direction())
	}

	whole := selection.SplitRegion(r, 0, 9)
	assert.Empty(t, whole)
}

func TestApplyDeltaOverflowCaretStaysPastEnd(t *testing.T) {
	// Testable Property 8: caret at data.len() before an insertion
	// that isn't at-caret stays past the new end.
	base := rope.New([]byte("ABCD"))
	s := selection.Single(base.Len())
	d := delta.NewBuilder(base.Len()).Replace(0, 0, rope.New([]byte("XY"))).Build()

	s2 := s.ApplyDelta(d, base.Len())
	assert.Equal(t, d.NewLen(), s2.Main().Caret)
}

func TestApplyDeltaOffsetCaretsForHexHalf(t *testing.T) {
	base := rope.New([]byte("FF"))
	s := selection.Single(0)
	// simulate inserting a provisional half byte at caret 0.
	d := delta.NewBuilder(base.Len()).Replace(0, 0, rope.New([]byte{0x70})).Build()
	s2 := s.ApplyDeltaOffsetCarets(d, -1, 0, base.Len())
	assert.Equal(t, 0, s2.Main().Caret, "caret stays on the provisional byte")
}
