// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package modes implements component G: the mode stack and dispatcher
// that turn terminal key events into buffer mutations. The top of the
// stack consumes each event; Normal is the initial and default mode.
package modes

// Key names a non-printable key an Event may carry.
type Key int

const (
	KeyNone Key = iota
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyResize
)

// Event is one terminal input event. A printable key sets Rune; a
// control key sets Key. Alt/Ctrl report modifier state for the keys
// that use them (e.g. Alt-s, Ctrl-n).
type Event struct {
	Rune rune
	Key  Key
	Alt  bool
	Ctrl bool
	// Width/Height are valid only when Key == KeyResize.
	Width, Height int
}

// IsRune reports whether the event is an unmodified printable
// character equal to r.
func (e Event) IsRune(r rune) bool {
	return e.Key == KeyNone && !e.Alt && !e.Ctrl && e.Rune == r
}

// IsAltRune reports whether the event is r with Alt held.
func (e Event) IsAltRune(r rune) bool {
	return e.Key == KeyNone && e.Alt && !e.Ctrl && e.Rune == r
}

// IsCtrlRune reports whether the event is r with Ctrl held.
func (e Event) IsCtrlRune(r rune) bool {
	return e.Key == KeyNone && e.Ctrl && !e.Alt && e.Rune == r
}
