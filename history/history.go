// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package history implements the undo/redo stacks that sit above a
// buffer's rope and selection: two LIFO stacks of inverse deltas, and a
// single coalescing slot for the edit currently in progress (e.g. an
// insert-mode run, where every keystroke should undo as one unit
// rather than one per byte).
package history

import (
	"errors"

	"cloudeng.io/hexed/algo/container/list"
	"cloudeng.io/hexed/delta"
	"cloudeng.io/hexed/rope"
	"cloudeng.io/hexed/selection"
)

// ErrPartialPending is the programming error raised by PerformFinal
// when a partial (coalescing) edit is still open. Callers must
// CommitPartial first; concretely, leaving insert or replace mode
// commits before any other edit can land on the stack.
var ErrPartialPending = errors.New("history: perform_final called while a partial edit is pending")

// entry is one undo/redo stack slot: the delta that undoes an edit,
// paired with the selection to restore alongside it.
type entry struct {
	inverse delta.Delta
	sel     selection.Selection
}

// History holds the undo and redo stacks plus the in-progress partial
// edit for one buffer. Use New to construct one; the zero value is not
// usable since the underlying lists need their sentinels initialized.
type History struct {
	undo    *list.Double[entry]
	redo    *list.Double[entry]
	partial *entry
}

// New returns an empty History.
func New() *History {
	return &History{
		undo: list.NewDouble[entry](),
		redo: list.NewDouble[entry](),
	}
}

// HasUndo reports whether Undo would do anything.
func (h *History) HasUndo() bool { return h.undo.Len() > 0 }

// HasRedo reports whether Redo would do anything.
func (h *History) HasRedo() bool { return h.redo.Len() > 0 }

// PerformFinal records a complete edit: d was just applied to current
// (the rope as it stood *before* d), with sel the selection as it
// stood before the edit. It pushes invert(d, current) onto the undo
// stack and clears redo, since a fresh edit invalidates redo history.
// It panics with ErrPartialPending if a partial edit is still open —
// the dispatcher must CommitPartial first.
func (h *History) PerformFinal(current *rope.Rope, d delta.Delta, sel selection.Selection) {
	if h.partial != nil {
		panic(ErrPartialPending)
	}
	h.undo.Append(entry{inverse: delta.Invert(d, current), sel: sel})
	h.redo.Reset()
}

// PerformPartial folds an in-progress edit into the coalescing slot.
// The first call in a run records invert(d, current) and sel, the
// selection as it stood before the run started; subsequent calls
// chain the new edit's inverse in front of the running inverse, so the
// slot always undoes the whole run back to its starting state in one
// step. The selection snapshot from the first call is never
// overwritten.
func (h *History) PerformPartial(current *rope.Rope, d delta.Delta, sel selection.Selection) {
	inv := delta.Invert(d, current)
	if h.partial == nil {
		h.partial = &entry{inverse: inv, sel: sel}
		return
	}
	h.partial.inverse = delta.Chain(inv, h.partial.inverse)
}

// CommitPartial flushes the pending partial edit, if any, onto the
// undo stack and clears redo. A no-op when nothing is pending.
func (h *History) CommitPartial() {
	if h.partial == nil {
		return
	}
	h.undo.Append(*h.partial)
	h.redo.Reset()
	h.partial = nil
}

// Undo pops the most recent undo entry, returning the delta to apply
// (the stored inverse) and the selection to restore, and pushes the
// re-inverted edit onto the redo stack so Redo can restore it. ok is
// false when the undo stack is empty.
func (h *History) Undo(current *rope.Rope, curSel selection.Selection) (d delta.Delta, sel selection.Selection, ok bool) {
	e, popped := popTail(h.undo)
	if !popped {
		return delta.Delta{}, selection.Selection{}, false
	}
	h.redo.Append(entry{inverse: delta.Invert(e.inverse, current), sel: curSel})
	return e.inverse, e.sel, true
}

// Redo is the mirror image of Undo.
func (h *History) Redo(current *rope.Rope, curSel selection.Selection) (d delta.Delta, sel selection.Selection, ok bool) {
	e, popped := popTail(h.redo)
	if !popped {
		return delta.Delta{}, selection.Selection{}, false
	}
	h.undo.Append(entry{inverse: delta.Invert(e.inverse, current), sel: curSel})
	return e.inverse, e.sel, true
}

// popTail removes and returns the last-appended value in dl. Double
// has no direct pop, so this removes the tail value via RemoveReverse
// with an always-true comparison: starting the reverse scan at the
// tail guarantees the first (and only) node visited is the one meant,
// regardless of whether other entries compare equal by value.
func popTail[T any](dl *list.Double[T]) (T, bool) {
	if dl.Len() == 0 {
		var zero T
		return zero, false
	}
	v := dl.Tail()
	dl.RemoveReverse(v, func(T, T) bool { return true })
	return v, true
}
