// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package modes

import "cloudeng.io/hexed/buffer"

// Outcome classifies what a Transition did to the mode stack.
type Outcome int

const (
	NotHandled Outcome = iota
	Handled
	Popped
	Pushed
)

// Result is the return value of Transition: NotHandled asks the
// dispatcher to fall through to default handling (terminal resize,
// etc.); Handled means the event was consumed with no stack change;
// Popped removes the mode that returned it; Pushed installs the given
// modes on top, the last of which becomes the new top. The spec names
// only NotHandled/Pop/Push as the interesting cases for the modes that
// change the stack; Handled is this repo's explicit spelling of "event
// consumed, stack unchanged" rather than overloading Pushed with an
// empty list.
type Result struct {
	Outcome Outcome
	Next    []Mode
}

func handled() Result { return Result{Outcome: Handled} }
func popped() Result  { return Result{Outcome: Popped} }
func pushed(m ...Mode) Result {
	return Result{Outcome: Pushed, Next: m}
}

// Mode is one frame of the mode stack. Transition consumes ev against
// the given buffer and shared view options, and reports what happened
// to the stack.
type Mode interface {
	Name() string
	Transition(ev Event, b *buffer.Buf, vo *ViewOptions) Result
}

// Stack is the dispatcher's mode stack; the last element is the
// current top.
type Stack struct {
	frames []Mode
}

// NewStack returns a stack with initial as its only (and initial) mode.
func NewStack(initial Mode) *Stack {
	return &Stack{frames: []Mode{initial}}
}

// Top returns the current top mode.
func (s *Stack) Top() Mode { return s.frames[len(s.frames)-1] }

// Len returns the current stack depth.
func (s *Stack) Len() int { return len(s.frames) }

// Dispatch sends ev to the top mode and applies the resulting stack
// change. It returns the outcome plus the mode that actually processed
// ev (before any pop), so a caller can e.g. type-assert a popped
// *Command to read its finished line, or a popped Quitting to know the
// editor is exiting; the bottom frame is never itself popped.
func (s *Stack) Dispatch(ev Event, b *buffer.Buf, vo *ViewOptions) (Outcome, Mode) {
	top := s.Top()
	res := top.Transition(ev, b, vo)
	switch res.Outcome {
	case Popped:
		if len(s.frames) > 1 {
			s.frames = s.frames[:len(s.frames)-1]
		}
	case Pushed:
		s.frames = append(s.frames, res.Next...)
	}
	return res.Outcome, top
}
