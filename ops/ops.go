// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package ops implements the buffer's delta factories: pure functions
// from (rope, selection, arguments) to a Δ describing the edit, mirror
// of the constructor shape in cloudeng.io/text/edit (Insert/Delete/
// Replace) adapted to build a delta.Delta against a persistent
// rope.Rope and an ordered selection.Selection rather than a flat byte
// slice. None of these functions mutate their arguments.
package ops

import (
	"cloudeng.io/hexed/delta"
	"cloudeng.io/hexed/rope"
	"cloudeng.io/hexed/selection"
)

// Deletion deletes every region's [min, max+1) range.
func Deletion(base *rope.Rope, sel selection.Selection) delta.Delta {
	b := delta.NewBuilder(base.Len())
	for _, r := range sel.Regions() {
		b.Delete(r.Min(), r.Max()+1)
	}
	return b.Build()
}

// Backspace deletes one byte before each region's caret, for regions
// whose caret is greater than zero.
func Backspace(base *rope.Rope, sel selection.Selection) delta.Delta {
	b := delta.NewBuilder(base.Len())
	for _, r := range sel.Regions() {
		if r.Caret > 0 {
			b.Delete(r.Caret-1, r.Caret)
		}
	}
	return b.Build()
}

// DeleteCursor deletes one byte at each region's caret, bounded by the
// base length (a caret sitting at base.Len() deletes nothing).
func DeleteCursor(base *rope.Rope, sel selection.Selection) delta.Delta {
	b := delta.NewBuilder(base.Len())
	for _, r := range sel.Regions() {
		if r.Caret < base.Len() {
			b.Delete(r.Caret, r.Caret+1)
		}
	}
	return b.Build()
}

// Insert splices bytes in at each region's caret. Positioning the
// caret before or after the selected range is the caller's
// responsibility (done by the dispatcher before building the
// selection passed in here); this factory is direction-agnostic.
func Insert(base *rope.Rope, sel selection.Selection, bytes []byte) delta.Delta {
	b := delta.NewBuilder(base.Len())
	for _, r := range sel.Regions() {
		b.Replace(r.Caret, r.Caret, rope.New(bytes))
	}
	return b.Build()
}

// Change replaces the single byte at each region's caret with bytes,
// used to commit a hex half-byte edit.
func Change(base *rope.Rope, sel selection.Selection, bytes []byte) delta.Delta {
	b := delta.NewBuilder(base.Len())
	for _, r := range sel.Regions() {
		end := r.Caret
		if end < base.Len() {
			end++
		}
		b.Replace(r.Caret, end, rope.New(bytes))
	}
	return b.Build()
}

// Paste inserts register contents at each region: at region.Max()+1
// when after is true, else at region.Min(). If contents has fewer
// entries than sel has regions, the last entry is reused for the
// remaining regions. Each region's chosen entry is repeated count
// times.
func Paste(base *rope.Rope, sel selection.Selection, contents [][]byte, after bool, count int) delta.Delta {
	b := delta.NewBuilder(base.Len())
	if len(contents) == 0 || count <= 0 {
		return b.Build()
	}
	for i, r := range sel.Regions() {
		entry := contents[min(i, len(contents)-1)]
		rep := repeat(entry, count)
		pos := r.Min()
		if after {
			pos = r.Max() + 1
		}
		b.Replace(pos, pos, rope.New(rep))
	}
	return b.Build()
}

// Replace overwrites every byte covered by every region with b.
func Replace(base *rope.Rope, sel selection.Selection, b byte) delta.Delta {
	bd := delta.NewBuilder(base.Len())
	for _, r := range sel.Regions() {
		fill := make([]byte, r.Len())
		for i := range fill {
			fill[i] = b
		}
		bd.Replace(r.Min(), r.Max()+1, rope.New(fill))
	}
	return bd.Build()
}

// OverwriteHalf replaces the byte at each region's caret with b, used
// to commit the first hex digit of a two-digit byte entry (the second
// digit lands via Change once both nibbles are known).
func OverwriteHalf(base *rope.Rope, sel selection.Selection, b byte) delta.Delta {
	return Change(base, sel, []byte{b})
}

func repeat(entry []byte, count int) []byte {
	out := make([]byte, 0, len(entry)*count)
	for i := 0; i < count; i++ {
		out = append(out, entry...)
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
