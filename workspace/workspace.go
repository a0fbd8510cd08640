// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package workspace implements component H: the multi-buffer
// workspace and the ':'-command registry that binds the editing core
// (buffer, modes) to the external file-I/O collaborator named in §1.
package workspace

import (
	"cloudeng.io/hexed/algo/container/list"
	"cloudeng.io/hexed/buffer"
	"cloudeng.io/hexed/modes"
)

// FileIO is the external collaborator the workspace delegates all
// filesystem access to, per §1: "the core exposes a buffer collection
// with read_bytes/write_bytes/switch/delete hooks". A terminal
// frontend supplies a concrete implementation; the workspace and the
// command registry never touch the filesystem directly.
type FileIO interface {
	// ReadBytes reads the full contents of path.
	ReadBytes(path string) ([]byte, error)
	// WriteBytes writes data to path, creating or truncating it.
	WriteBytes(path string, data []byte) error
	// Canonicalize resolves path to the form used to detect that two
	// strings name the same file (used by ":e" to find an already-open
	// buffer). Implementations that cannot canonicalize may return path
	// unchanged.
	Canonicalize(path string) (string, error)
	// Exists reports whether path already names a file, distinguishing
	// "open as new scratch content" from a genuine read failure in
	// Open (":e" and the initial path).
	Exists(path string) bool
}

// Workspace owns the open buffers, the mode stack, and the shared view
// options, and is the receiver every registered Command runs against.
type Workspace struct {
	io      FileIO
	buffers []*buffer.Buf
	current int
	history *list.Single[string]

	Stack *modes.Stack
	View  modes.ViewOptions
}

// New returns a Workspace with a single scratch buffer, ready to open
// path if non-empty.
func New(io FileIO, bytesPerLine int, path string) *Workspace {
	w := &Workspace{
		io:      io,
		buffers: []*buffer.Buf{buffer.New("", nil)},
		history: list.NewSingle[string](),
		Stack:   modes.NewStack(&modes.Normal{}),
		View:    modes.ViewOptions{BytesPerLine: bytesPerLine},
	}
	if path != "" {
		_ = w.Open(path)
	}
	return w
}

// Current returns the buffer currently being edited.
func (w *Workspace) Current() *buffer.Buf { return w.buffers[w.current] }

// Buffers returns the open buffers in workspace order.
func (w *Workspace) Buffers() []*buffer.Buf { return w.buffers }

// CurrentIndex returns the index of the current buffer within Buffers.
func (w *Workspace) CurrentIndex() int { return w.current }

func (w *Workspace) findOpen(canonPath string) (int, bool) {
	for i, b := range w.buffers {
		if b.Path != "" && b.Path == canonPath {
			return i, true
		}
	}
	return -1, false
}

// Open switches to path if a buffer already covers it, otherwise reads
// it (an absent file opens as an empty buffer at that path, mirroring
// ":e newfile" in vi-lineage editors) and makes it the new current
// buffer. It is also used by New to open the initial positional
// argument.
func (w *Workspace) Open(path string) error {
	canon, err := w.io.Canonicalize(path)
	if err != nil {
		canon = path
	}
	if i, ok := w.findOpen(canon); ok {
		w.current = i
		return nil
	}
	var data []byte
	if w.io.Exists(path) {
		data, err = w.io.ReadBytes(path)
		if err != nil {
			return fsError(err)
		}
	}
	b := buffer.New(canon, data)
	w.buffers = append(w.buffers, b)
	w.current = len(w.buffers) - 1
	return nil
}
