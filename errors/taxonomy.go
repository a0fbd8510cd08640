// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package errors

import "fmt"

// Bug marks an error as a programming error rather than a condition a
// user action can trigger: InvalidDelta, BuilderMisuse and
// MergeDisjoint all wrap it, so a caller can `errors.Is(err,
// errors.Bug)` to decide whether to translate a failure into a status
// line message or into a panic with a diagnostic.
var Bug = New("hexed: programming error")

// Kind names one of the §7 error-taxonomy entries.
type Kind int

const (
	FilesystemError Kind = iota
	NoPath
	UnknownCommand
	DirtyBufferRefuse
	EmptyHistory
	InvalidDelta
	BuilderMisuse
	MergeDisjoint
)

func (k Kind) String() string {
	switch k {
	case FilesystemError:
		return "FilesystemError"
	case NoPath:
		return "NoPath"
	case UnknownCommand:
		return "UnknownCommand"
	case DirtyBufferRefuse:
		return "DirtyBufferRefuse"
	case EmptyHistory:
		return "EmptyHistory"
	case InvalidDelta:
		return "InvalidDelta"
	case BuilderMisuse:
		return "BuilderMisuse"
	case MergeDisjoint:
		return "MergeDisjoint"
	}
	return "Unknown"
}

// isBug reports whether errors of this Kind are programming errors
// (the dispatcher should panic with a diagnostic) rather than
// user-facing ones (the dispatcher should show Message() in the
// status line and stay put).
func (k Kind) isBug() bool {
	switch k {
	case InvalidDelta, BuilderMisuse, MergeDisjoint:
		return true
	}
	return false
}

// Taxonomy is one §7 error: a Kind plus the text shown verbatim as the
// status-line info message for user-facing kinds.
type Taxonomy struct {
	Kind Kind
	Msg  string
}

// NewTaxonomy constructs a §7 Taxonomy error of the given Kind.
func NewTaxonomy(k Kind, format string, args ...any) *Taxonomy {
	return &Taxonomy{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

func (t *Taxonomy) Error() string { return fmt.Sprintf("%s: %s", t.Kind, t.Msg) }

// Message returns the text a user-facing Taxonomy error should show
// verbatim in the status line's info field.
func (t *Taxonomy) Message() string { return t.Msg }

// Is reports whether target is Bug for a programming-error Kind,
// supporting errors.Is(err, errors.Bug).
func (t *Taxonomy) Is(target error) bool {
	return target == Bug && t.Kind.isBug()
}
