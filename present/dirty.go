// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package present implements the presentation contract (§4.I): the two
// kinds of dirty-region notification the editing core emits after
// every mode transition, plus the status-line data a terminal frontend
// renders from. It never mutates core state; everything here is a pure
// view over values handed to it by buffer and workspace.
package present

import "sort"

// Kind distinguishes the two DirtyBytes variants.
type Kind int

const (
	// ChangeInPlace means the listed byte ranges changed appearance —
	// selection moved, caret moved, a byte was overwritten — without
	// altering the buffer's length.
	ChangeInPlace Kind = iota
	// ChangeLength means the total length changed; the presentation
	// must redraw from scratch from the current start offset.
	ChangeLength
)

// DirtyBytes is the core's redraw notification, emitted after each
// mode transition. A zero DirtyBytes is ChangeInPlace with no
// intervals (nothing to redraw).
type DirtyBytes struct {
	Kind      Kind
	Intervals [][2]int // half-open, disjoint, sorted; valid only when Kind == ChangeInPlace
}

// Length returns the ChangeLength variant.
func Length() DirtyBytes { return DirtyBytes{Kind: ChangeLength} }

// InPlace returns the ChangeInPlace variant covering intervals,
// normalized into disjoint, sorted, half-open ranges.
func InPlace(intervals [][2]int) DirtyBytes {
	return DirtyBytes{Kind: ChangeInPlace, Intervals: coalesce(intervals)}
}

// Merge combines two dirty notifications from the same transition: any
// ChangeLength dominates, since the presentation must redraw from
// scratch regardless of which in-place intervals were also touched.
func (d DirtyBytes) Merge(other DirtyBytes) DirtyBytes {
	if d.Kind == ChangeLength || other.Kind == ChangeLength {
		return Length()
	}
	return InPlace(append(append([][2]int{}, d.Intervals...), other.Intervals...))
}

// coalesce sorts intervals by start and merges overlapping or
// touching ones into the minimal disjoint cover.
func coalesce(intervals [][2]int) [][2]int {
	if len(intervals) == 0 {
		return nil
	}
	cp := append([][2]int{}, intervals...)
	sort.Slice(cp, func(i, j int) bool { return cp[i][0] < cp[j][0] })
	out := cp[:1]
	for _, iv := range cp[1:] {
		last := &out[len(out)-1]
		if iv[0] <= last[1] {
			if iv[1] > last[1] {
				last[1] = iv[1]
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}
