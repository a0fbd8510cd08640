// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package selection

// MoveDir is a cursor movement direction, distinct from a region's
// forward/backward caret/tail discipline.
type MoveDir int

const (
	Left MoveDir = iota
	Right
	Up
	Down
)

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// delta returns the signed column offset for one unit of movement in
// dir, given bytes-per-line.
func (d MoveDir) delta(n, bpl int) int {
	switch d {
	case Left:
		return -n
	case Right:
		return n
	case Up:
		return -n * bpl
	case Down:
		return n * bpl
	}
	return 0
}

// mapEachRegion applies f to every region's caret (and, when extend is
// false, collapses the tail onto the new caret), then re-sorts and
// re-merges: two regions moving into overlap must still satisfy the
// sort/disjoint invariant afterward.
func (s Selection) mapEachRegion(extend bool, f func(caret int) int) Selection {
	regions := make([]Region, len(s.regions))
	for i, r := range s.regions {
		nc := f(r.Caret)
		nt := r.Tail
		if !extend {
			nt = nc
		}
		regions[i] = Region{Caret: nc, Tail: nt}
	}
	return normalizeAfterTransform(regions, s.main)
}

// SimpleMove moves every region's caret by n columns (Left/Right) or
// n lines (Up/Down), clamped to [0, maxLen], collapsing the tail onto
// the new caret.
func (s Selection) SimpleMove(dir MoveDir, n, bpl, maxLen int) Selection {
	return s.mapEachRegion(false, func(caret int) int {
		return clampInt(caret+dir.delta(n, bpl), 0, maxLen)
	})
}

// SimpleExtend is SimpleMove but keeps the tail anchored.
func (s Selection) SimpleExtend(dir MoveDir, n, bpl, maxLen int) Selection {
	return s.mapEachRegion(true, func(caret int) int {
		return clampInt(caret+dir.delta(n, bpl), 0, maxLen)
	})
}

// boundary returns the target caret position for a jump_to_boundary in
// dir from caret.
func boundary(dir MoveDir, caret, bpl, maxLen int) int {
	switch dir {
	case Up:
		return 0
	case Down:
		if maxLen == 0 {
			return 0
		}
		return maxLen - 1
	case Left:
		return caret - caret%bpl
	case Right:
		lineStart := caret - caret%bpl
		end := lineStart + bpl - 1
		if maxLen == 0 {
			return 0
		}
		return clampInt(end, 0, maxLen-1)
	}
	return caret
}

// JumpToBoundary moves every region's caret to the line/data boundary
// in dir, collapsing the tail onto it.
func (s Selection) JumpToBoundary(dir MoveDir, bpl, maxLen int) Selection {
	return s.mapEachRegion(false, func(caret int) int {
		return boundary(dir, caret, bpl, maxLen)
	})
}

// ExtendToBoundary is JumpToBoundary but keeps the tail anchored.
func (s Selection) ExtendToBoundary(dir MoveDir, bpl, maxLen int) Selection {
	return s.mapEachRegion(true, func(caret int) int {
		return boundary(dir, caret, bpl, maxLen)
	})
}

// JumpTo moves every region's caret and tail to the absolute offset.
func (s Selection) JumpTo(offset int) Selection {
	return s.mapEachRegion(false, func(int) int { return offset })
}

// ExtendTo moves every region's caret to the absolute offset, keeping
// the tail anchored.
func (s Selection) ExtendTo(offset int) Selection {
	return s.mapEachRegion(true, func(int) int { return offset })
}

// eachRegion rebuilds the selection by applying f to every region
// independently, re-normalizing afterward (used by the trivial
// rearrangements, which can turn a forward region backward or vice
// versa and so may change adjacency).
func (s Selection) eachRegion(f func(Region) Region) Selection {
	regions := make([]Region, len(s.regions))
	for i, r := range s.regions {
		regions[i] = f(r)
	}
	return normalizeAfterTransform(regions, s.main)
}

// SwapCaret exchanges caret and tail in every region.
func (s Selection) SwapCaret() Selection {
	return s.eachRegion(func(r Region) Region {
		return Region{Caret: r.Tail, Tail: r.Caret}
	})
}

// Collapse collapses every region's tail onto its caret.
func (s Selection) Collapse() Selection {
	return s.eachRegion(func(r Region) Region {
		return Region{Caret: r.Caret, Tail: r.Caret}
	})
}

// ToForward rewrites every region so caret >= tail, without moving the
// covered byte range.
func (s Selection) ToForward() Selection {
	return s.eachRegion(func(r Region) Region {
		return Region{Caret: r.Max(), Tail: r.Min()}
	})
}

// ToBackward rewrites every region so caret < tail where the region is
// non-degenerate, without moving the covered byte range.
func (s Selection) ToBackward() Selection {
	return s.eachRegion(func(r Region) Region {
		if r.Min() == r.Max() {
			return r
		}
		return Region{Caret: r.Min(), Tail: r.Max()}
	})
}
