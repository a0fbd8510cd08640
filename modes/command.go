// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package modes

import "cloudeng.io/hexed/buffer"

// Command is the ':'-prompt line editor (§4.G mode 8). It only collects
// and edits the line; recognizing and running the command by name is
// the workspace dispatcher's job, since commands like ":e"/":db" act
// across the whole buffer collection, which a Mode's Transition (bound
// to a single *buffer.Buf) cannot reach. Once Enter or Esc pops this
// mode, the dispatcher inspects Done/Cancelled/Line to decide what
// happened.
type Command struct {
	line      []rune
	cursor    int
	done      bool
	cancelled bool
}

// NewCommand returns an empty Command prompt.
func NewCommand() *Command { return &Command{} }

func (m *Command) Name() string { return "Command" }

// Line returns the text typed so far (or, once Done, the final line).
func (m *Command) Line() string { return string(m.line) }

// Done reports whether Enter was pressed.
func (m *Command) Done() bool { return m.done }

// Cancelled reports whether Esc was pressed.
func (m *Command) Cancelled() bool { return m.cancelled }

func (m *Command) Transition(ev Event, b *buffer.Buf, vo *ViewOptions) Result {
	switch {
	case ev.Key == KeyEnter:
		m.done = true
		return popped()
	case ev.Key == KeyEsc:
		m.cancelled = true
		return popped()
	case ev.Key == KeyBackspace:
		if m.cursor > 0 {
			m.line = append(m.line[:m.cursor-1], m.line[m.cursor:]...)
			m.cursor--
		}
		return handled()
	case ev.Key == KeyDelete:
		if m.cursor < len(m.line) {
			m.line = append(m.line[:m.cursor], m.line[m.cursor+1:]...)
		}
		return handled()
	case ev.Key == KeyLeft:
		if m.cursor > 0 {
			m.cursor--
		}
		return handled()
	case ev.Key == KeyRight:
		if m.cursor < len(m.line) {
			m.cursor++
		}
		return handled()
	case ev.Key == KeyNone && !ev.Alt && !ev.Ctrl && ev.Rune != 0:
		m.line = append(m.line[:m.cursor], append([]rune{ev.Rune}, m.line[m.cursor:]...)...)
		m.cursor++
		return handled()
	}
	return handled()
}
