// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package modes

import "cloudeng.io/hexed/present"

// ViewOptions is the shared mutable state modes write into: the
// presentation layout plus the one-shot info line and dirty-region
// token produced by the transition just run.
type ViewOptions struct {
	BytesPerLine int
	StartOffset  int
	Size         int

	Info    string
	hasInfo bool

	dirty    present.DirtyBytes
	hasDirty bool
}

// SetInfo records a one-line status message for the presentation layer
// to show until the next transition overwrites or clears it.
func (v *ViewOptions) SetInfo(msg string) {
	v.Info = msg
	v.hasInfo = true
}

// TakeInfo returns the pending info message, if any, and clears it.
func (v *ViewOptions) TakeInfo() (string, bool) {
	if !v.hasInfo {
		return "", false
	}
	v.hasInfo = false
	msg := v.Info
	v.Info = ""
	return msg, true
}

// MarkDirty records a redraw token, merging with anything already
// pending from earlier in the same transition (ChangeLength always
// wins, per present.DirtyBytes.Merge).
func (v *ViewOptions) MarkDirty(d present.DirtyBytes) {
	if v.hasDirty {
		v.dirty = v.dirty.Merge(d)
	} else {
		v.dirty = d
		v.hasDirty = true
	}
}

// TakeDirty drains the pending dirty token, if any, for the dispatcher
// to turn into a redraw.
func (v *ViewOptions) TakeDirty() (present.DirtyBytes, bool) {
	if !v.hasDirty {
		return present.DirtyBytes{}, false
	}
	v.hasDirty = false
	return v.dirty, true
}
