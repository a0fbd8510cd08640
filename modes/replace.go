// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package modes

import (
	"cloudeng.io/hexed/buffer"
	"cloudeng.io/hexed/ops"
)

// Replace implements §4.G mode 7: single-shot per selection. One ascii
// key, or two hex digits, overwrite every selected byte uniformly with
// that value as one committed (not incomplete) delta, then Replace
// pops itself. Esc cancels without applying anything.
type Replace struct {
	Hex bool

	hexHalf *byte
}

func (m *Replace) Name() string { return "Replace" }

// HasHalfCursor reports whether a hex digit is pending.
func (m *Replace) HasHalfCursor() bool { return m.hexHalf != nil }

func (m *Replace) Transition(ev Event, b *buffer.Buf, vo *ViewOptions) Result {
	switch {
	case ev.Key == KeyEsc:
		return popped()
	case ev.IsCtrlRune('o'):
		m.Hex = !m.Hex
		m.hexHalf = nil
		return handled()
	case ev.IsCtrlRune('n'):
		vo.MarkDirty(b.ApplyDelta(ops.Replace(b.Data, b.Selection, 0)))
		return popped()
	case ev.Key == KeyBackspace:
		if m.hexHalf != nil {
			m.hexHalf = nil
			return handled()
		}
		return popped()
	case ev.Key == KeyLeft, ev.Key == KeyRight, ev.Key == KeyUp, ev.Key == KeyDown:
		return popped()
	}

	if m.Hex {
		d, ok := hexDigit(ev)
		if !ok {
			return handled()
		}
		if m.hexHalf == nil {
			hi := d << 4
			m.hexHalf = &hi
			return handled()
		}
		full := *m.hexHalf | d
		m.hexHalf = nil
		vo.MarkDirty(b.ApplyDelta(ops.Replace(b.Data, b.Selection, full)))
		return popped()
	}
	if ev.Key == KeyNone && !ev.Alt && !ev.Ctrl && ev.Rune != 0 && ev.Rune < 256 {
		vo.MarkDirty(b.ApplyDelta(ops.Replace(b.Data, b.Selection, byte(ev.Rune))))
		return popped()
	}
	return Result{Outcome: NotHandled}
}
