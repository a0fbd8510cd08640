// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package modes

import (
	"cloudeng.io/hexed/buffer"
	"cloudeng.io/hexed/present"
	"cloudeng.io/hexed/selection"
)

// Split is the one-shot mode entered by Alt-s: the next key either
// splits every selection region into fixed-width chunks, splits on
// null-byte runs, or hands off to Search with the Split acceptor.
type Split struct {
	count CountState
}

func (m *Split) Name() string { return "Split" }

func (m *Split) Transition(ev Event, b *buffer.Buf, vo *ViewOptions) Result {
	switch {
	case ev.Key == KeyNone && !ev.Alt && !ev.Ctrl && isCountDigit(ev.Rune, m.count.Hex):
		m.count.Digit(ev.Rune)
		return handled()
	case ev.IsRune('x'):
		m.count.ToggleHex()
		return handled()
	case ev.Key == KeyBackspace && m.count.Active():
		m.count.Backspace()
		return handled()
	case ev.Key == KeyEsc:
		return popped()
	}

	n := m.count.Resolved()
	switch {
	case ev.IsRune('b'):
		vo.MarkDirty(splitByWidth(b, 1*n))
		return popped()
	case ev.IsRune('w'):
		vo.MarkDirty(splitByWidth(b, 2*n))
		return popped()
	case ev.IsRune('d'):
		vo.MarkDirty(splitByWidth(b, 4*n))
		return popped()
	case ev.IsRune('q'):
		vo.MarkDirty(splitByWidth(b, 8*n))
		return popped()
	case ev.IsRune('o'):
		vo.MarkDirty(splitByWidth(b, 16*n))
		return popped()
	case ev.IsRune('n'):
		vo.MarkDirty(splitByPattern(b, ZeroRun(n)))
		return popped()
	case ev.IsRune('/'):
		return pushed(newSearch(SplitAcceptor{}, false))
	case ev.IsRune('?'):
		return pushed(newSearch(SplitAcceptor{}, true))
	}
	return popped()
}

// splitByWidth rewrites every selection region as consecutive chunks of
// at most width bytes, each inheriting the parent region's direction.
func splitByWidth(b *buffer.Buf, width int) present.DirtyBytes {
	if width <= 0 {
		width = 1
	}
	return b.MapSelections(func(r selection.Region) []selection.Region {
		lo, hi := r.Min(), r.Max()
		var out []selection.Region
		for start := lo; start <= hi; start += width {
			end := start + width - 1
			if end > hi {
				end = hi
			}
			if r.Direction() == selection.Forward {
				out = append(out, selection.Region{Caret: end, Tail: start})
			} else {
				out = append(out, selection.Region{Caret: start, Tail: end})
			}
		}
		return out
	})
}

// splitByPattern rewrites every selection region into the runs of bytes
// that lie *between* matches of p found inside that region (used by
// 'n', which splits hex dumps around runs of null bytes).
func splitByPattern(b *buffer.Buf, p Pattern) present.DirtyBytes {
	return b.MapSelections(func(r selection.Region) []selection.Region {
		data := b.Data.Slice(r.Min(), r.Max()+1)
		matches := FindAll(data, p)
		if len(matches) == 0 {
			return []selection.Region{r}
		}
		var pieces []selection.Region
		cursor := 0
		mk := func(a, end int) {
			if a > end {
				return
			}
			lo, hi := r.Min()+a, r.Min()+end
			if r.Direction() == selection.Forward {
				pieces = append(pieces, selection.Region{Caret: hi, Tail: lo})
			} else {
				pieces = append(pieces, selection.Region{Caret: lo, Tail: hi})
			}
		}
		for _, m := range matches {
			mk(cursor, m[0]-1)
			cursor = m[1]
		}
		mk(cursor, len(data)-1)
		return pieces
	})
}
