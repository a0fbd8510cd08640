// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package workspace

import (
	"fmt"
	"strings"

	"cloudeng.io/hexed/buffer"
	"cloudeng.io/hexed/cmdutil"
	herrors "cloudeng.io/hexed/errors"
	"cloudeng.io/hexed/modes"
	"cloudeng.io/hexed/ops"
)

// CommandFunc is one ':'-command's implementation. It reports whether
// the editor should now quit, and any error to show in the status
// line (a *herrors.Taxonomy's Message() is used verbatim; any other
// error's Error() is).
type CommandFunc func(w *Workspace, arg string) (quit bool, err error)

// Command is one named ':'-command, registered under one or more
// aliases (e.g. "q" and "quit"), adapted from the name/description/
// runner shape of cloudeng.io/cmdutil/subcmd.Command but built around
// a single free-form argument string instead of flag.FlagSet parsing,
// since every ':'-command here takes one optional path-shaped tail
// rather than flags.
type Command struct {
	Names   []string
	Summary string
	Run     CommandFunc
}

// CommandSet is the registry of all recognized ':'-commands, mirroring
// cmdutil/subcmd.CommandSet's flat list-of-peers shape.
type CommandSet struct {
	cmds []Command
}

// DefaultCommands returns the §6 command table plus the supplemented
// ":r", ":ls", ":history" and ":version" commands documented in
// SPEC_FULL.md.
func DefaultCommands() *CommandSet {
	return &CommandSet{cmds: []Command{
		{Names: []string{"q", "quit"}, Summary: "quit unless the current buffer has unsaved changes", Run: cmdQuit},
		{Names: []string{"q!", "quit!"}, Summary: "quit unconditionally", Run: cmdQuitForce},
		{Names: []string{"w", "write"}, Summary: "write the current buffer", Run: cmdWrite},
		{Names: []string{"wa", "write-all"}, Summary: "write every path-backed buffer", Run: cmdWriteAll},
		{Names: []string{"wq"}, Summary: "write-all then quit", Run: cmdWriteQuit},
		{Names: []string{"e", "edit"}, Summary: "open or switch to a buffer by path", Run: cmdEdit},
		{Names: []string{"db", "delete-buffer"}, Summary: "close the current buffer", Run: cmdDeleteBuffer(false)},
		{Names: []string{"db!", "delete-buffer!"}, Summary: "close the current buffer unconditionally", Run: cmdDeleteBuffer(true)},
		{Names: []string{"r", "read"}, Summary: "insert a file's contents at the caret", Run: cmdRead},
		{Names: []string{"ls"}, Summary: "list open buffers", Run: cmdList},
		{Names: []string{"version"}, Summary: "show build version information", Run: cmdVersion},
		{Names: []string{"history"}, Summary: "list previously executed ':'-commands", Run: cmdHistory},
	}}
}

func (cs *CommandSet) lookup(name string) (Command, bool) {
	for _, c := range cs.cmds {
		for _, n := range c.Names {
			if n == name {
				return c, true
			}
		}
	}
	return Command{}, false
}

// Dispatch parses line (the name up to the first space, and the
// free-form tail as its argument) and runs the matching Command,
// reporting the result in w.View.Info per §7's user-facing error
// policy and returning whether the editor should exit. Recognized
// commands are appended to the workspace's command history after
// running, so ":history" itself never appears as its own last entry.
func (cs *CommandSet) Dispatch(w *Workspace, line string) (quit bool) {
	name, arg := splitCommandLine(line)
	if name == "" {
		return false
	}
	cmd, ok := cs.lookup(name)
	if !ok {
		w.View.SetInfo(herrors.NewTaxonomy(herrors.UnknownCommand, "Unknown command %s", name).Message())
		return false
	}
	quit, err := cmd.Run(w, arg)
	if err != nil {
		w.View.SetInfo(errMessage(err))
	}
	w.history.Append(line)
	return quit
}

func errMessage(err error) string {
	if t, ok := err.(*herrors.Taxonomy); ok {
		return t.Message()
	}
	return err.Error()
}

func splitCommandLine(line string) (name, arg string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ""
	}
	if i := strings.IndexByte(line, ' '); i >= 0 {
		return line[:i], strings.TrimSpace(line[i+1:])
	}
	return line, ""
}

func fsError(err error) error {
	return herrors.NewTaxonomy(herrors.FilesystemError, "%v", herrors.Caller(err))
}

func cmdQuit(w *Workspace, _ string) (bool, error) {
	b := w.Current()
	if b.Dirty && b.Path != "" {
		return false, herrors.NewTaxonomy(herrors.DirtyBufferRefuse, "unsaved changes! Run :wq or :q! instead.")
	}
	w.Stack = modes.NewStack(modes.Quitting{})
	return true, nil
}

func cmdQuitForce(w *Workspace, _ string) (bool, error) {
	w.Stack = modes.NewStack(modes.Quitting{})
	return true, nil
}

// cmdWrite writes the current buffer to path, or to its own Path if
// arg is empty. The Open Question resolution documented in
// SPEC_FULL.md: the buffer's path field is updated only when it was
// previously unset, so "w new/path" on an already-path-backed buffer
// is a pure save-as and does not rename it.
func cmdWrite(w *Workspace, arg string) (bool, error) {
	b := w.Current()
	path := strings.TrimSpace(arg)
	if path == "" {
		path = b.Path
	}
	if path == "" {
		return false, herrors.NewTaxonomy(herrors.NoPath, "buffer has no path")
	}
	data := b.Data.Slice(0, b.Data.Len())
	if err := w.io.WriteBytes(path, data); err != nil {
		return false, fsError(err)
	}
	b.Dirty = false
	if b.Path == "" {
		b.Path = path
	}
	return false, nil
}

// cmdWriteAll writes every path-backed buffer, continuing past a
// failed write so one bad path doesn't stop the rest from saving, and
// aggregates every failure into a single herrors.FilesystemError via
// the teacher's thread-safe errors.M collector.
func cmdWriteAll(w *Workspace, _ string) (bool, error) {
	errs := herrors.M{}
	for _, b := range w.buffers {
		if b.Path == "" {
			continue
		}
		data := b.Data.Slice(0, b.Data.Len())
		if err := w.io.WriteBytes(b.Path, data); err != nil {
			errs.Append(fmt.Errorf("%s: %w", b.Path, err))
			continue
		}
		b.Dirty = false
	}
	if err := errs.Err(); err != nil {
		return false, herrors.NewTaxonomy(herrors.FilesystemError, "%v", err)
	}
	return false, nil
}

func cmdWriteQuit(w *Workspace, arg string) (bool, error) {
	if quit, err := cmdWriteAll(w, arg); err != nil {
		return quit, err
	}
	w.Stack = modes.NewStack(modes.Quitting{})
	return true, nil
}

func cmdEdit(w *Workspace, arg string) (bool, error) {
	path := strings.TrimSpace(arg)
	if path == "" {
		return false, herrors.NewTaxonomy(herrors.NoPath, "no path given")
	}
	if err := w.Open(path); err != nil {
		return false, err
	}
	return false, nil
}

func cmdDeleteBuffer(force bool) CommandFunc {
	return func(w *Workspace, _ string) (bool, error) {
		b := w.Current()
		if !force && b.Dirty && b.Path != "" {
			return false, herrors.NewTaxonomy(herrors.DirtyBufferRefuse, "unsaved changes! Run :wq or :q! instead.")
		}
		i := w.current
		w.buffers = append(w.buffers[:i], w.buffers[i+1:]...)
		if len(w.buffers) == 0 {
			w.buffers = []*buffer.Buf{buffer.New("", nil)}
		}
		if w.current >= len(w.buffers) {
			w.current = len(w.buffers) - 1
		}
		return false, nil
	}
}

func cmdRead(w *Workspace, arg string) (bool, error) {
	path := strings.TrimSpace(arg)
	if path == "" {
		return false, herrors.NewTaxonomy(herrors.NoPath, "no path given")
	}
	data, err := w.io.ReadBytes(path)
	if err != nil {
		return false, fsError(err)
	}
	b := w.Current()
	d := ops.Insert(b.Data, b.Selection, data)
	w.View.MarkDirty(b.ApplyDelta(d))
	return false, nil
}

func cmdList(w *Workspace, _ string) (bool, error) {
	var sb strings.Builder
	for i, b := range w.buffers {
		name := b.Path
		if name == "" {
			name = "[scratch]"
		}
		mark := ""
		if b.Dirty {
			mark = "*"
		}
		cur := " "
		if i == w.current {
			cur = ">"
		}
		fmt.Fprintf(&sb, "%s%d:%s%s ", cur, i+1, name, mark)
	}
	w.View.SetInfo(strings.TrimSpace(sb.String()))
	return false, nil
}

// cmdHistory reports every ':'-command line executed so far this
// session, oldest first, via the same list.Single[T] the teacher's
// algo/container/list package provides for the history undo/redo
// stacks' doubly-linked sibling.
func cmdHistory(w *Workspace, _ string) (bool, error) {
	if w.history.Len() == 0 {
		w.View.SetInfo("no commands run yet")
		return false, nil
	}
	var sb strings.Builder
	i := 1
	for line := range w.history.Forward() {
		fmt.Fprintf(&sb, "%d:%s ", i, line)
		i++
	}
	w.View.SetInfo(strings.TrimSpace(sb.String()))
	return false, nil
}

func cmdVersion(w *Workspace, _ string) (bool, error) {
	bi := cmdutil.BuildInfoJSON()
	if bi == nil {
		w.View.SetInfo("build information unavailable")
		return false, nil
	}
	w.View.SetInfo(string(bi))
	return false, nil
}
