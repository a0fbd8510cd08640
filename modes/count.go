// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package modes

// CountState accumulates a Normal-mode count prefix digit by digit.
// The zero value means "no count" (equivalent to 1). Digits 0-9 are
// always accepted; a-f only once Hex has been switched on by an 'x'.
type CountState struct {
	active bool
	Hex    bool
	Value  int
}

// Active reports whether any digit (or 'x') has been typed yet.
func (c CountState) Active() bool { return c.active }

// Resolved returns the effective count: 1 when no digits were typed,
// else the accumulated value (at least 1, since a stray 'x' or a
// leading zero with nothing else is treated as 1).
func (c CountState) Resolved() int {
	if !c.active || c.Value == 0 {
		return 1
	}
	return c.Value
}

// ToggleHex switches the prefix into hex-digit mode, used by 'x'.
func (c *CountState) ToggleHex() {
	c.active = true
	c.Hex = true
}

// Digit folds one decimal or (if Hex) hex digit into the count.
// Reports false if r is not a valid digit in the current mode.
func (c *CountState) Digit(r rune) bool {
	var v int
	switch {
	case r >= '0' && r <= '9':
		v = int(r - '0')
	case c.Hex && r >= 'a' && r <= 'f':
		v = int(r-'a') + 10
	default:
		return false
	}
	base := 10
	if c.Hex {
		base = 16
	}
	c.active = true
	c.Value = c.Value*base + v
	return true
}

// Backspace removes the last digit typed, reverting Hex if the count
// becomes completely empty. Reports whether the state is now back to
// "no count at all" (the caller should discard the CountState).
func (c *CountState) Backspace() (empty bool) {
	base := 10
	if c.Hex {
		base = 16
	}
	if c.Value > 0 {
		c.Value /= base
	}
	if c.Value == 0 {
		c.active = false
		c.Hex = false
		return true
	}
	return false
}
