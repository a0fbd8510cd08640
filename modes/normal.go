// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package modes

import (
	"fmt"

	"cloudeng.io/hexed/buffer"
	"cloudeng.io/hexed/ops"
	"cloudeng.io/hexed/present"
	"cloudeng.io/hexed/selection"
)

// Normal is the initial and default mode: single-key commands, most of
// them multiplied by an accumulating count prefix.
type Normal struct {
	count CountState

	awaitingReg bool
	pendingReg  rune
}

func (m *Normal) Name() string { return "Normal" }

// CountState exposes the accumulated prefix for the status line.
func (m *Normal) CountState() CountState { return m.count }

func (m *Normal) Transition(ev Event, b *buffer.Buf, vo *ViewOptions) Result {
	if m.awaitingReg {
		m.awaitingReg = false
		if ev.Key == KeyNone && !ev.Alt && !ev.Ctrl && ev.Rune != 0 {
			m.pendingReg = ev.Rune
		}
		return handled()
	}
	return m.dispatch(ev, b, vo)
}

// register returns the register named by a pending '"'-prefix key, or
// the default unnamed register '"' if none was given, and clears the
// pending name.
func (m *Normal) register() rune {
	r := m.pendingReg
	if r == 0 {
		r = '"'
	}
	m.pendingReg = 0
	return r
}

func (m *Normal) dispatch(ev Event, b *buffer.Buf, vo *ViewOptions) Result {
	switch {
	case ev.Key == KeyNone && !ev.Alt && !ev.Ctrl && isCountDigit(ev.Rune, m.count.Hex):
		m.count.Digit(ev.Rune)
		return handled()
	case ev.IsRune('x'):
		m.count.ToggleHex()
		return handled()
	case ev.IsRune('"'):
		m.awaitingReg = true
		return handled()
	case ev.Key == KeyBackspace:
		if m.count.Active() {
			m.count.Backspace()
			return handled()
		}
	case ev.Key == KeyEsc:
		if m.count.Active() {
			m.count = CountState{}
			return handled()
		}
	}

	n := m.count.Resolved()
	bpl := vo.BytesPerLine
	maxLen := b.Data.Len()
	res := m.action(ev, n, b, vo, bpl, maxLen)
	if res.Outcome != NotHandled {
		m.count = CountState{}
	}
	return res
}

func isCountDigit(r rune, hex bool) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	return hex && r >= 'a' && r <= 'f'
}

func (m *Normal) action(ev Event, n int, b *buffer.Buf, vo *ViewOptions, bpl, maxLen int) Result {
	switch {
	case ev.IsRune('h'):
		vo.MarkDirty(b.SetSelection(b.Selection.SimpleMove(selection.Left, n, bpl, maxLen)))
		return handled()
	case ev.IsRune('l'):
		vo.MarkDirty(b.SetSelection(b.Selection.SimpleMove(selection.Right, n, bpl, maxLen)))
		return handled()
	case ev.IsRune('k'):
		vo.MarkDirty(b.SetSelection(b.Selection.SimpleMove(selection.Up, n, bpl, maxLen)))
		return handled()
	case ev.IsRune('j'):
		vo.MarkDirty(b.SetSelection(b.Selection.SimpleMove(selection.Down, n, bpl, maxLen)))
		return handled()
	case ev.IsRune('H'):
		vo.MarkDirty(b.SetSelection(b.Selection.SimpleExtend(selection.Left, n, bpl, maxLen)))
		return handled()
	case ev.IsRune('L'):
		vo.MarkDirty(b.SetSelection(b.Selection.SimpleExtend(selection.Right, n, bpl, maxLen)))
		return handled()
	case ev.IsRune('K'):
		vo.MarkDirty(b.SetSelection(b.Selection.SimpleExtend(selection.Up, n, bpl, maxLen)))
		return handled()
	case ev.IsRune('J'):
		vo.MarkDirty(b.SetSelection(b.Selection.SimpleExtend(selection.Down, n, bpl, maxLen)))
		return handled()

	case ev.IsRune('g'):
		return m.jumpOrEnter(b, vo, n, false)
	case ev.IsRune('G'):
		return m.jumpOrEnter(b, vo, n, true)

	case ev.IsAltRune('s'):
		return pushed(&Split{})

	case ev.IsRune(';'):
		vo.MarkDirty(b.SetSelection(b.Selection.Collapse()))
		return handled()
	case ev.IsAltRune(';'):
		vo.MarkDirty(b.SetSelection(b.Selection.SwapCaret()))
		return handled()

	case ev.IsRune('%'):
		vo.MarkDirty(b.SetSelection(selection.SelectAll(b.Data.Len())))
		return handled()

	case ev.IsRune(' '):
		vo.MarkDirty(b.SetSelection(b.Selection.Retain(oneIndexed(n, b.Selection))))
		return handled()
	case ev.IsAltRune(' '):
		vo.MarkDirty(b.SetSelection(b.Selection.Remove(oneIndexed(n, b.Selection))))
		return handled()

	case ev.IsRune('('):
		vo.MarkDirty(b.SetSelection(b.Selection.SelectPrev(n)))
		return handled()
	case ev.IsRune(')'):
		vo.MarkDirty(b.SetSelection(b.Selection.SelectNext(n)))
		return handled()

	case ev.IsRune('d'):
		b.YankSelections(m.register())
		vo.MarkDirty(b.ApplyDelta(ops.Deletion(b.Data, b.Selection)))
		return handled()
	case ev.IsRune('y'):
		b.YankSelections(m.register())
		return handled()
	case ev.IsRune('p'):
		vo.MarkDirty(b.ApplyDelta(ops.Paste(b.Data, b.Selection, b.Registers[m.register()], true, n)))
		return handled()
	case ev.IsRune('P'):
		vo.MarkDirty(b.ApplyDelta(ops.Paste(b.Data, b.Selection, b.Registers[m.register()], false, n)))
		return handled()
	case ev.IsRune('c'):
		b.YankSelections(m.register())
		return pushed(&Replace{Hex: false})
	case ev.IsRune('C'):
		b.YankSelections(m.register())
		return pushed(&Replace{Hex: true})

	case ev.IsRune('i'):
		return pushed(&Insert{InsertMode: InsertBefore, Hex: false})
	case ev.IsRune('I'):
		return pushed(&Insert{InsertMode: InsertBefore, Hex: true})
	case ev.IsRune('a'):
		vo.MarkDirty(b.MapSelections(appendPoint))
		return pushed(&Insert{InsertMode: InsertAfter, Hex: false})
	case ev.IsRune('A'):
		vo.MarkDirty(b.MapSelections(appendPoint))
		return pushed(&Insert{InsertMode: InsertAfter, Hex: true})
	case ev.IsRune('r'):
		return pushed(&Insert{InsertMode: InsertOverwrite, Hex: false})
	case ev.IsRune('R'):
		return pushed(&Insert{InsertMode: InsertOverwrite, Hex: true})

	case ev.IsRune('s'):
		return pushed(newSearch(Collapse{}, false))
	case ev.IsRune('S'):
		return pushed(newSearch(Collapse{}, true))

	case ev.IsRune('u'):
		if _, ok := b.PerformUndo(); !ok {
			vo.SetInfo("nothing left to undo")
			return handled()
		}
		vo.MarkDirty(present.Length())
		return handled()
	case ev.IsRune('U'):
		if _, ok := b.PerformRedo(); !ok {
			vo.SetInfo("nothing left to redo")
			return handled()
		}
		vo.MarkDirty(present.Length())
		return handled()

	case ev.IsRune('M'):
		l := b.Selection.Main().Len()
		vo.SetInfo(fmt.Sprintf("%d = 0x%x bytes", l, l))
		return handled()

	case ev.IsRune(':'):
		return pushed(NewCommand())
	}
	return Result{Outcome: NotHandled}
}

// appendPoint is the selection-shape fix 'a'/'A' apply before entering
// Insert(after): every region collapses to a degenerate caret one past
// its own end, so that a direction-agnostic Insert lands after the
// selected bytes rather than before them.
func appendPoint(r selection.Region) []selection.Region {
	p := r.Max() + 1
	return []selection.Region{{Caret: p, Tail: p}}
}

func oneIndexed(n int, sel selection.Selection) int {
	i := n - 1
	if i < 0 || i >= sel.Len() {
		return sel.MainIndex()
	}
	return i
}

func (m *Normal) jumpOrEnter(b *buffer.Buf, vo *ViewOptions, n int, extend bool) Result {
	if m.count.Active() {
		offset := n
		if offset > b.Data.Len() {
			offset = b.Data.Len()
		}
		if extend {
			vo.MarkDirty(b.SetSelection(b.Selection.ExtendTo(offset)))
		} else {
			vo.MarkDirty(b.SetSelection(b.Selection.JumpTo(offset)))
		}
		return handled()
	}
	return pushed(&JumpTo{Extend: extend})
}
