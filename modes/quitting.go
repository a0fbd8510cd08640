// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package modes

import "cloudeng.io/hexed/buffer"

// Quitting is the terminal mode (§4.G mode 9): a workspace command
// (":q", ":q!", ":wq", ...) pushes it once it has decided the editor
// should exit. It consumes nothing; the dispatcher detects it on top
// of the stack and stops reading events.
type Quitting struct{}

func (Quitting) Name() string { return "Quitting" }

func (Quitting) Transition(Event, *buffer.Buf, *ViewOptions) Result {
	return handled()
}
