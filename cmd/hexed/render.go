// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"cloudeng.io/hexed/buffer"
	"cloudeng.io/hexed/modes"
	"cloudeng.io/hexed/present"
	"cloudeng.io/hexed/workspace"
)

// render draws the hex+ASCII dump and status line the core's §1
// non-goals explicitly leave to a presentation layer. It always
// redraws from the view's current window; HandleEvent's DirtyBytes
// token exists for a frontend sophisticated enough to patch the
// screen in place, which this minimal one is not.
func render(w io.Writer, ws *workspace.Workspace, vo *modes.ViewOptions) {
	fmt.Fprint(w, "\x1b[2J\x1b[H")
	b := ws.Current()
	n := b.Data.Len()
	start := vo.StartOffset
	if start > n {
		start = n
	}
	end := start + vo.Size
	if end > n {
		end = n
	}
	if vo.Size == 0 {
		end = n
	}
	width := vo.BytesPerLine
	if width <= 0 {
		width = 16
	}
	data := b.Data.Slice(start, end)
	for off := 0; off < len(data); off += width {
		line := data[off:min(off+width, len(data))]
		fmt.Fprintf(w, "%08x  ", start+off)
		for i := 0; i < width; i++ {
			if i < len(line) {
				fmt.Fprintf(w, "%02x ", line[i])
			} else {
				fmt.Fprint(w, "   ")
			}
		}
		fmt.Fprint(w, " ")
		for _, c := range line {
			if c >= 0x20 && c < 0x7f {
				fmt.Fprintf(w, "%c", c)
			} else {
				fmt.Fprint(w, ".")
			}
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, statusLine(b, ws))
	fmt.Fprintln(w)
	fmt.Fprint(w, byteInfoLines(b))
}

// byteInfoLines renders the hex/binary panel for the byte under the
// caret, or a placeholder when the buffer is empty.
func byteInfoLines(b *buffer.Buf) string {
	caret := b.Selection.Main().Caret
	if b.Data.Len() == 0 || caret < 0 || caret >= b.Data.Len() {
		return "hex: -- -- binary: --------\n"
	}
	info := present.DescribeByte(b.Data.Slice(caret, caret+1)[0])
	return fmt.Sprintf("%s  %s\n", info.Hex, info.Binary)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func statusLine(b *buffer.Buf, ws *workspace.Workspace) string {
	name := b.Path
	if name == "" {
		name = "[scratch]"
	}
	dirty := ""
	if b.Dirty {
		dirty = "*"
	}
	msg, _ := ws.Info()
	return fmt.Sprintf("%s%s -- %d buffer(s) -- %s", name, dirty, len(ws.Buffers()), msg)
}
