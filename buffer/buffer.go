// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package buffer implements component D: the Buf type that coordinates
// rope updates, selection transforms and history recording behind a
// single family of apply_* calls, so that no caller can update one of
// the three without the others falling out of sync.
package buffer

import (
	"cloudeng.io/hexed/delta"
	"cloudeng.io/hexed/history"
	"cloudeng.io/hexed/present"
	"cloudeng.io/hexed/rope"
	"cloudeng.io/hexed/selection"
)

// Buf is one open buffer: its bytes, its selection, its yank
// registers, its dirty flag and its undo/redo history. Path is empty
// for a scratch buffer with no backing file.
type Buf struct {
	Path      string
	Data      *rope.Rope
	Selection selection.Selection
	Registers map[rune][][]byte
	Dirty     bool
	History   *history.History
}

// New returns a buffer over contents with a single degenerate
// selection at offset 0, matching the lifecycle rule that every
// buffer is born with a selection and an empty history.
func New(path string, contents []byte) *Buf {
	return &Buf{
		Path:      path,
		Data:      rope.New(contents),
		Selection: selection.Single(0),
		Registers: map[rune][][]byte{},
		History:   history.New(),
	}
}

// ApplyDelta applies d as a complete edit: it inverts d against the
// current data, pushes that inverse to history as a final action,
// replaces data, transforms the selection through d, marks the buffer
// dirty, and returns the ChangeLength redraw token (applying any delta
// can change the buffer's length, so the presentation always redraws
// from scratch here).
func (b *Buf) ApplyDelta(d delta.Delta) present.DirtyBytes {
	return b.applyDelta(d, 0, 0, false)
}

// ApplyIncompleteDelta is ApplyDelta but folds into the history's
// partial slot instead of pushing a final undo entry, for use while a
// coalescing run (e.g. insert mode) is in progress.
func (b *Buf) ApplyIncompleteDelta(d delta.Delta) present.DirtyBytes {
	return b.applyDelta(d, 0, 0, true)
}

// ApplyDeltaOffsetCarets is ApplyDelta, additionally shifting every
// region's caret and tail by the signed offsets after the position
// transform — used by the half-hex-byte insert state, where the caret
// must not simply follow the provisional byte's position transform.
func (b *Buf) ApplyDeltaOffsetCarets(d delta.Delta, caretOff, tailOff int) present.DirtyBytes {
	return b.applyDelta(d, caretOff, tailOff, false)
}

// ApplyIncompleteDeltaOffsetCarets combines the two variants above.
func (b *Buf) ApplyIncompleteDeltaOffsetCarets(d delta.Delta, caretOff, tailOff int) present.DirtyBytes {
	return b.applyDelta(d, caretOff, tailOff, true)
}

func (b *Buf) applyDelta(d delta.Delta, caretOff, tailOff int, incomplete bool) present.DirtyBytes {
	oldLen := b.Data.Len()
	if incomplete {
		b.History.PerformPartial(b.Data, d, b.Selection)
	} else {
		b.History.PerformFinal(b.Data, d, b.Selection)
	}
	out, err := delta.Apply(b.Data, d)
	if err != nil {
		panic(err)
	}
	b.Data = out
	b.Selection = b.Selection.ApplyDeltaOffsetCarets(d, caretOff, tailOff, oldLen)
	b.Dirty = true
	return present.Length()
}

// CommitDelta flushes any pending partial edit to the undo stack.
// Called when leaving insert or replace mode.
func (b *Buf) CommitDelta() {
	b.History.CommitPartial()
}

// PerformUndo pops the most recent undo entry, applies it, and
// restores the selection snapshot stored alongside it. ok is false
// when there is nothing to undo.
func (b *Buf) PerformUndo() (dirty present.DirtyBytes, ok bool) {
	inv, sel, ok := b.History.Undo(b.Data, b.Selection)
	if !ok {
		return present.DirtyBytes{}, false
	}
	out, err := delta.Apply(b.Data, inv)
	if err != nil {
		panic(err)
	}
	b.Data = out
	b.Selection = sel
	b.Dirty = true
	return present.Length(), true
}

// PerformRedo is the mirror image of PerformUndo.
func (b *Buf) PerformRedo() (dirty present.DirtyBytes, ok bool) {
	inv, sel, ok := b.History.Redo(b.Data, b.Selection)
	if !ok {
		return present.DirtyBytes{}, false
	}
	out, err := delta.Apply(b.Data, inv)
	if err != nil {
		panic(err)
	}
	b.Data = out
	b.Selection = sel
	b.Dirty = true
	return present.Length(), true
}

// YankSelections snapshots each selected region's byte range into
// register reg, one entry per region, in selection order.
func (b *Buf) YankSelections(reg rune) {
	regions := b.Selection.Regions()
	out := make([][]byte, len(regions))
	for i, r := range regions {
		out[i] = append([]byte(nil), b.Data.Slice(r.Min(), r.Max()+1)...)
	}
	b.Registers[reg] = out
}

// MapSelections applies f to the current selection via
// selection.MapSelections and returns a ChangeInPlace token covering
// the union of every region's old and new extent, coalesced into
// disjoint intervals — the selection's movement or shape change is the
// only thing that needs to be redrawn.
func (b *Buf) MapSelections(f func(selection.Region) []selection.Region) present.DirtyBytes {
	old := b.Selection.Regions()
	b.Selection = b.Selection.MapSelections(f)
	touched := make([][2]int, 0, len(old)+b.Selection.Len())
	for _, r := range old {
		touched = append(touched, [2]int{r.Min(), r.Max() + 1})
	}
	for _, r := range b.Selection.Regions() {
		touched = append(touched, [2]int{r.Min(), r.Max() + 1})
	}
	return present.InPlace(touched)
}

// SetSelection installs a new selection computed by the caller (e.g.
// movement, select_next/prev/all, retain/remove) and returns a
// ChangeInPlace token covering the union of the old and new extents,
// the same redraw contract MapSelections provides for the
// region-closure case.
func (b *Buf) SetSelection(next selection.Selection) present.DirtyBytes {
	old := b.Selection.Regions()
	b.Selection = next
	touched := make([][2]int, 0, len(old)+next.Len())
	for _, r := range old {
		touched = append(touched, [2]int{r.Min(), r.Max() + 1})
	}
	for _, r := range next.Regions() {
		touched = append(touched, [2]int{r.Min(), r.Max() + 1})
	}
	return present.InPlace(touched)
}

// OverflowSelStyle reports whether the last region's caret and/or tail
// sit at data.Len(), the "one past the end" slot the presentation
// layer renders as a phantom cell.
func (b *Buf) OverflowSelStyle() (caretOverflow, tailOverflow bool) {
	last := b.Selection.Region(b.Selection.Len() - 1)
	n := b.Data.Len()
	return last.Caret == n, last.Tail == n
}
