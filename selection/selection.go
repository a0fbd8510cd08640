// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package selection implements the ordered, non-overlapping
// multi-selection engine: a sorted list of caret/tail regions, one of
// which is designated "main", that moves and merges in lockstep as the
// buffer it addresses is edited.
package selection

import (
	"errors"
	"fmt"

	"cloudeng.io/hexed/delta"
)

// ErrMergeDisjoint is raised when MapSelections is asked to merge two
// overlapping regions with incompatible directions. This can only
// happen if a caller's transform function produces regions that no
// longer respect the forward/backward discipline of their neighbors,
// which is a programming error in the caller, not a runtime condition.
var ErrMergeDisjoint = errors.New("selection: cannot merge regions with mixed direction")

// Direction reports whether a region's caret leads or trails its tail.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Region is one selected span, expressed as a moving caret and an
// anchored tail. A degenerate region (Caret == Tail) is a bare cursor.
type Region struct {
	Caret int
	Tail  int
	Main  bool
}

// Min returns the lower bound of the region.
func (r Region) Min() int {
	if r.Caret < r.Tail {
		return r.Caret
	}
	return r.Tail
}

// Max returns the upper (inclusive) bound of the region.
func (r Region) Max() int {
	if r.Caret > r.Tail {
		return r.Caret
	}
	return r.Tail
}

// Len returns the number of bytes the region covers (at least 1).
func (r Region) Len() int { return r.Max() - r.Min() + 1 }

// IsDegenerate reports whether the region is a bare cursor.
func (r Region) IsDegenerate() bool { return r.Caret == r.Tail }

// Direction reports the region's forward/backward discipline.
func (r Region) Direction() Direction {
	if r.Caret >= r.Tail {
		return Forward
	}
	return Backward
}

// overlaps reports whether r and next, given r sorts before next by
// Max, share at least one position.
func (r Region) overlaps(next Region) bool {
	return r.Max() >= next.Min()
}

// merge combines two adjacent, overlapping regions sharing the same
// direction discipline, per the engine's merge rule. Mixed-direction
// merges are a programming error.
func merge(a, b Region) Region {
	switch {
	case a.Direction() == Forward && b.Direction() == Forward:
		return Region{Caret: max(a.Caret, b.Caret), Tail: min(a.Tail, b.Tail)}
	case a.Direction() == Backward && b.Direction() == Backward:
		return Region{Caret: min(a.Caret, b.Caret), Tail: max(a.Tail, b.Tail)}
	default:
		panic(fmt.Errorf("%w: %+v vs %+v", ErrMergeDisjoint, a, b))
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Selection is the ordered, non-overlapping list of regions bound to a
// buffer, never empty. Regions are sorted by Max; exactly one has
// Main == true, at MainIndex().
type Selection struct {
	regions []Region
	main    int
}

// Single returns a selection with one degenerate region at pos.
func Single(pos int) Selection {
	return Selection{regions: []Region{{Caret: pos, Tail: pos, Main: true}}, main: 0}
}

// Len returns the number of regions.
func (s Selection) Len() int { return len(s.regions) }

// MainIndex returns the index of the main region.
func (s Selection) MainIndex() int { return s.main }

// Main returns the main region.
func (s Selection) Main() Region { return s.regions[s.main] }

// Region returns the region at index i.
func (s Selection) Region(i int) Region { return s.regions[i] }

// Regions returns a defensive copy of the region list, in order.
func (s Selection) Regions() []Region {
	out := make([]Region, len(s.regions))
	copy(out, s.regions)
	return out
}

// withRegions returns a new Selection built from regions (which must
// already be sorted and non-overlapping), with mainIdx as the new main
// index, clamped into range and with exactly one Main flag set.
func withRegions(regions []Region, mainIdx int) Selection {
	if len(regions) == 0 {
		panic("selection: a selection must never become empty")
	}
	if mainIdx < 0 {
		mainIdx = 0
	}
	if mainIdx >= len(regions) {
		mainIdx = len(regions) - 1
	}
	for i := range regions {
		regions[i].Main = i == mainIdx
	}
	return Selection{regions: regions, main: mainIdx}
}

// MapSelections applies f to every region in order, merges adjacent
// results that overlap according to the engine's merge rule, and
// re-establishes sort order and the main index: the new main is
// whichever merged region absorbed the old main.
func (s Selection) MapSelections(f func(Region) []Region) Selection {
	var out []Region
	var mainPos int // index into out that contains the (possibly merged) former main
	for i, r := range s.regions {
		for _, nr := range f(r) {
			if n := len(out); n > 0 && out[n-1].overlaps(nr) {
				out[n-1] = merge(out[n-1], nr)
			} else {
				out = append(out, nr)
			}
			if i == s.main {
				mainPos = len(out) - 1
			}
		}
	}
	return withRegions(out, mainPos)
}

// ApplyDelta transforms every region's caret and tail through d's
// position transform (forward bias), given the length of the buffer
// before d was applied.
func (s Selection) ApplyDelta(d delta.Delta, oldLen int) Selection {
	return s.ApplyDeltaOffsetCarets(d, 0, 0, oldLen)
}

// ApplyDeltaOffsetCarets is ApplyDelta followed by a signed shift of
// every caret and tail, clamped to the delta's new length. It is used
// by the half-hex-byte insert states, where the caret must not simply
// follow the provisional byte's position transform.
func (s Selection) ApplyDeltaOffsetCarets(d delta.Delta, caretOff, tailOff, oldLen int) Selection {
	if oldLen != d.BaseLen {
		panic("selection: ApplyDelta: oldLen does not match delta's base length")
	}
	newLen := d.NewLen()
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > newLen {
			return newLen
		}
		return v
	}
	regions := make([]Region, len(s.regions))
	for i, r := range s.regions {
		regions[i] = Region{
			Caret: clamp(d.Transform(r.Caret) + caretOff),
			Tail:  clamp(d.Transform(r.Tail) + tailOff),
		}
	}
	return normalizeAfterTransform(regions, s.main)
}

// normalizeAfterTransform re-sorts and re-merges regions after a
// position transform may have pushed them out of order or caused new
// overlaps (e.g. several regions collapsing onto the same deleted
// range).
func normalizeAfterTransform(regions []Region, mainIdx int) Selection {
	type tagged struct {
		r       Region
		wasMain bool
	}
	tg := make([]tagged, len(regions))
	for i, r := range regions {
		tg[i] = tagged{r: r, wasMain: i == mainIdx}
	}
	// stable sort by Max, insertion sort since selection counts are
	// always small in an interactive editor.
	for i := 1; i < len(tg); i++ {
		for j := i; j > 0 && tg[j-1].r.Max() > tg[j].r.Max(); j-- {
			tg[j-1], tg[j] = tg[j], tg[j-1]
		}
	}
	var out []Region
	mainPos := 0
	for _, t := range tg {
		if n := len(out); n > 0 && out[n-1].overlaps(t.r) {
			out[n-1] = merge(out[n-1], t.r)
		} else {
			out = append(out, t.r)
		}
		if t.wasMain {
			mainPos = len(out) - 1
		}
	}
	return withRegions(out, mainPos)
}

// RegionsInRange returns the indices [lo, hi) of the first and one
// past the last region overlapping the byte range [lo, hi). Scans
// linearly; region counts in this editor are small enough that a
// binary search over Max would not pay for its own complexity.
func (s Selection) RegionsInRange(lo, hi int) (first, last int) {
	first = len(s.regions)
	for i, r := range s.regions {
		if r.Max() >= lo && r.Min() < hi {
			if first == len(s.regions) {
				first = i
			}
			last = i + 1
		}
	}
	if first == len(s.regions) {
		return first, first
	}
	return first, last
}

// Retain keeps only region i.
func (s Selection) Retain(i int) Selection {
	r := s.regions[i]
	r.Main = true
	return Selection{regions: []Region{r}, main: 0}
}

// Remove drops region i, preserving a non-empty selection: a no-op
// when only one region remains.
func (s Selection) Remove(i int) Selection {
	if len(s.regions) == 1 {
		return s
	}
	out := make([]Region, 0, len(s.regions)-1)
	out = append(out, s.regions[:i]...)
	out = append(out, s.regions[i+1:]...)
	mainIdx := s.main
	if i < s.main {
		mainIdx--
	}
	// if i == s.main, mainIdx is left pointing at the region that now
	// occupies that slot; withRegions clamps it if it was the last one.
	return withRegions(out, mainIdx)
}

// SelectNext advances the main index by n, modulo the region count.
func (s Selection) SelectNext(n int) Selection {
	return withRegions(s.Regions(), mod(s.main+n, len(s.regions)))
}

// SelectPrev retreats the main index by n, modulo the region count.
func (s Selection) SelectPrev(n int) Selection {
	return withRegions(s.Regions(), mod(s.main-n, len(s.regions)))
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}

// SelectAll replaces the selection with a single forward region
// covering [0, n-1].
func SelectAll(n int) Selection {
	if n <= 0 {
		return Single(0)
	}
	return withRegions([]Region{{Caret: n - 1, Tail: 0}}, 0)
}

// SplitRegion excises [s, e] (inclusive) from r, returning the
// remaining piece(s); each inherits r's direction. Returns nil if the
// excised range covers all of r.
func SplitRegion(r Region, s, e int) []Region {
	lo, hi := r.Min(), r.Max()
	var pieces []Region
	mk := func(a, b int) Region {
		if r.Direction() == Forward {
			return Region{Caret: b, Tail: a}
		}
		return Region{Caret: a, Tail: b}
	}
	if lo < s {
		pieces = append(pieces, mk(lo, min(hi, s-1)))
	}
	if hi > e {
		pieces = append(pieces, mk(max(lo, e+1), hi))
	}
	return pieces
}
