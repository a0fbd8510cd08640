// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package modes

import (
	"cloudeng.io/hexed/buffer"
	"cloudeng.io/hexed/selection"
)

// JumpTo is the one-shot mode entered by a bare 'g'/'G' with no pending
// count: the next directional key performs a jump/extend to the
// corresponding boundary, and any other key pops back to Normal
// without side effects.
type JumpTo struct {
	Extend bool
}

func (m *JumpTo) Name() string { return "Jump" }

func (m *JumpTo) Transition(ev Event, b *buffer.Buf, vo *ViewOptions) Result {
	bpl := vo.BytesPerLine
	maxLen := b.Data.Len()
	dir, ok := directionOf(ev)
	if !ok {
		return popped()
	}
	if m.Extend {
		vo.MarkDirty(b.SetSelection(b.Selection.ExtendToBoundary(dir, bpl, maxLen)))
	} else {
		vo.MarkDirty(b.SetSelection(b.Selection.JumpToBoundary(dir, bpl, maxLen)))
	}
	return popped()
}

// directionOf maps the four directional Normal-mode keys (both plain
// and their extend-shifted forms) onto a selection.MoveDir.
func directionOf(ev Event) (selection.MoveDir, bool) {
	switch {
	case ev.IsRune('h'), ev.IsRune('H'):
		return selection.Left, true
	case ev.IsRune('l'), ev.IsRune('L'):
		return selection.Right, true
	case ev.IsRune('k'), ev.IsRune('K'):
		return selection.Up, true
	case ev.IsRune('j'), ev.IsRune('J'):
		return selection.Down, true
	}
	return 0, false
}
