// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package workspace

import (
	"context"

	"cloudeng.io/hexed/logging/ctxlog"
	"cloudeng.io/hexed/modes"
	"cloudeng.io/hexed/present"
)

// HandleEvent sends one input event through the mode stack against the
// current buffer, executing a finished ':'-command line or detecting
// the Quitting sentinel the way the abstract dispatcher in §4.G
// describes, and reports the resulting redraw token (if any) and
// whether the editor should now exit.
func (w *Workspace) HandleEvent(ctx context.Context, cs *CommandSet, ev modes.Event) (dirty present.DirtyBytes, hasDirty, quit bool) {
	outcome, top := w.Stack.Dispatch(ev, w.Current(), &w.View)
	if outcome == modes.Popped {
		if cmd, ok := top.(*modes.Command); ok && cmd.Done() {
			ctxlog.Info(ctx, "command", "line", cmd.Line())
			if cs.Dispatch(w, cmd.Line()) {
				quit = true
			}
		}
	}
	if _, ok := w.Stack.Top().(modes.Quitting); ok {
		quit = true
	}
	dirty, hasDirty = w.View.TakeDirty()
	return dirty, hasDirty, quit
}

// Info returns the pending one-line status message, if any, left by
// the transition HandleEvent just ran.
func (w *Workspace) Info() (string, bool) {
	return w.View.TakeInfo()
}
