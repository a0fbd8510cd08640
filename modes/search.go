// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package modes

import (
	"cloudeng.io/hexed/buffer"
	"cloudeng.io/hexed/selection"
)

// Acceptor consumes a completed search Pattern: Collapse shrinks each
// selection region down to the matches inside it, Split divides each
// region at the matches. New acceptors can be added without changing
// Search itself.
type Acceptor interface {
	// Accept runs the acceptor's effect against the current buffer and
	// reports the stack outcome Search should return (always a pop,
	// since an acceptor is one-shot).
	Accept(b *buffer.Buf, vo *ViewOptions, p Pattern) Result
}

// Search builds a Pattern interactively, byte by byte, in either ascii
// or hex input mode, and on Enter hands the finished pattern to its
// acceptor.
type Search struct {
	Acceptor Acceptor
	Hex      bool

	pattern []PatternElem
	cursor  int
	hexHalf *byte // first nibble of a pending hex byte, nil when none
}

// newSearch returns a Search mode ready to accept input for acceptor,
// starting in ascii or hex mode as requested.
func newSearch(acceptor Acceptor, hex bool) *Search {
	return &Search{Acceptor: acceptor, Hex: hex}
}

func (m *Search) Name() string { return "Search" }

func (m *Search) Transition(ev Event, b *buffer.Buf, vo *ViewOptions) Result {
	switch {
	case ev.Key == KeyEnter:
		p := Pattern(append([]PatternElem(nil), m.pattern...))
		return m.Acceptor.Accept(b, vo, p)
	case ev.Key == KeyEsc:
		return popped()
	case ev.IsCtrlRune('o'):
		m.Hex = !m.Hex
		m.hexHalf = nil
		return handled()
	case ev.IsCtrlRune('n'):
		m.insert(PatternElem{Literal: 0})
		return handled()
	case ev.IsCtrlRune('w'):
		m.insert(PatternElem{Wildcard: true})
		return handled()
	case ev.Key == KeyLeft:
		if m.cursor > 0 {
			m.cursor--
		}
		return handled()
	case ev.Key == KeyRight:
		if m.cursor < len(m.pattern) {
			m.cursor++
		}
		return handled()
	case ev.Key == KeyBackspace:
		if m.hexHalf != nil {
			m.hexHalf = nil
			return handled()
		}
		if m.cursor > 0 {
			m.pattern = append(m.pattern[:m.cursor-1], m.pattern[m.cursor:]...)
			m.cursor--
		}
		return handled()
	case ev.Key == KeyDelete:
		if m.cursor < len(m.pattern) {
			m.pattern = append(m.pattern[:m.cursor], m.pattern[m.cursor+1:]...)
		}
		return handled()
	}

	if m.Hex {
		if d, ok := hexDigit(ev); ok {
			m.hexDigit(d)
			return handled()
		}
		return handled()
	}
	if ev.Key == KeyNone && !ev.Alt && !ev.Ctrl && ev.Rune != 0 {
		m.insert(PatternElem{Literal: byte(ev.Rune)})
		return handled()
	}
	return handled()
}

// HasHalfCursor reports whether a hex digit is pending, for the
// presentation layer's split-caret rendering.
func (m *Search) HasHalfCursor() bool { return m.hexHalf != nil }

func (m *Search) insert(e PatternElem) {
	m.pattern = append(m.pattern[:m.cursor], append([]PatternElem{e}, m.pattern[m.cursor:]...)...)
	m.cursor++
}

func (m *Search) hexDigit(d byte) {
	if m.hexHalf == nil {
		v := d << 4
		m.hexHalf = &v
		return
	}
	v := *m.hexHalf | d
	m.hexHalf = nil
	m.insert(PatternElem{Literal: v})
}

func hexDigit(ev Event) (byte, bool) {
	if ev.Key != KeyNone || ev.Alt || ev.Ctrl {
		return 0, false
	}
	r := ev.Rune
	switch {
	case r >= '0' && r <= '9':
		return byte(r - '0'), true
	case r >= 'a' && r <= 'f':
		return byte(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return byte(r-'A') + 10, true
	}
	return 0, false
}

// Collapse is an Acceptor, not pushed directly by the user: it maps
// every selection region to the list of match intervals found inside
// it, each shrunk by one on the right to become an inclusive region,
// inheriting the parent's direction. A pattern with no matches
// anywhere leaves the selection untouched and pops without marking
// anything dirty.
type Collapse struct{}

func (Collapse) Accept(b *buffer.Buf, vo *ViewOptions, p Pattern) Result {
	if p.Len() == 0 {
		return popped()
	}
	anyMatch := false
	dirty := b.MapSelections(func(r selection.Region) []selection.Region {
		data := b.Data.Slice(r.Min(), r.Max()+1)
		matches := FindAll(data, p)
		if len(matches) == 0 {
			return []selection.Region{r}
		}
		anyMatch = true
		out := make([]selection.Region, 0, len(matches))
		for _, mRange := range matches {
			lo, hi := r.Min()+mRange[0], r.Min()+mRange[1]-1
			if r.Direction() == selection.Forward {
				out = append(out, selection.Region{Caret: hi, Tail: lo})
			} else {
				out = append(out, selection.Region{Caret: lo, Tail: hi})
			}
		}
		return out
	})
	if !anyMatch {
		return popped()
	}
	vo.MarkDirty(dirty)
	return popped()
}

// SplitAcceptor is the Split-mode Acceptor for '/'/'?' interactive
// pattern search: every selection region is divided at the pattern's
// matches the same way the fixed-width and null-run splits work.
type SplitAcceptor struct{}

func (SplitAcceptor) Accept(b *buffer.Buf, vo *ViewOptions, p Pattern) Result {
	if p.Len() == 0 {
		return popped()
	}
	vo.MarkDirty(splitByPattern(b, p))
	return popped()
}
