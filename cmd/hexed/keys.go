// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"unicode/utf8"

	"cloudeng.io/hexed/modes"
)

// decodeKey turns the next raw byte run read from a raw-mode terminal
// into one modes.Event, reporting how many bytes it consumed. Key
// decoding is explicitly out of scope for the editing core (the core
// only consumes abstract Events); this is the terminal frontend's
// half of that boundary, kept deliberately minimal since it carries no
// editing semantics of its own.
func decodeKey(buf []byte) (modes.Event, int) {
	if len(buf) == 0 {
		return modes.Event{}, 0
	}
	b := buf[0]
	switch b {
	case '\r', '\n':
		return modes.Event{Key: modes.KeyEnter}, 1
	case 0x1b:
		return decodeEscape(buf)
	case 0x7f, 0x08:
		return modes.Event{Key: modes.KeyBackspace}, 1
	}
	if b < 0x20 {
		return modes.Event{Rune: rune(b) + 'a' - 1, Ctrl: true}, 1
	}
	r, n := utf8.DecodeRune(buf)
	if r == utf8.RuneError {
		return modes.Event{Rune: rune(b)}, 1
	}
	return modes.Event{Rune: r}, n
}

// decodeEscape handles a lone Esc and the CSI arrow/delete sequences a
// standard terminal emits for the arrow and delete keys.
func decodeEscape(buf []byte) (modes.Event, int) {
	if len(buf) < 3 || buf[1] != '[' {
		return modes.Event{Key: modes.KeyEsc}, 1
	}
	switch buf[2] {
	case 'A':
		return modes.Event{Key: modes.KeyUp}, 3
	case 'B':
		return modes.Event{Key: modes.KeyDown}, 3
	case 'C':
		return modes.Event{Key: modes.KeyRight}, 3
	case 'D':
		return modes.Event{Key: modes.KeyLeft}, 3
	case '3':
		if len(buf) >= 4 && buf[3] == '~' {
			return modes.Event{Key: modes.KeyDelete}, 4
		}
	}
	return modes.Event{Key: modes.KeyEsc}, 1
}
