// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package present

import "fmt"

// ByteInfo is the two-line "hex: XX" / "binary: bbbbbbbb" panel
// describing a single byte, supplementing §4.I with the per-byte
// properties view the distilled spec.md never mentioned.
type ByteInfo struct {
	Hex    string
	Binary string
}

// DescribeByte renders b the way a frontend's info panel shows the
// byte currently under the caret.
func DescribeByte(b byte) ByteInfo {
	return ByteInfo{
		Hex:    fmt.Sprintf("hex: %02x", b),
		Binary: fmt.Sprintf("binary: %08b", b),
	}
}
