// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package modes

// Pattern is an ordered sequence of literal bytes or wildcards, built
// interactively by Search mode and consumed by split/collapse.
type Pattern []PatternElem

// PatternElem is one piece of a Pattern: either a literal byte or a
// wildcard that matches any byte.
type PatternElem struct {
	Wildcard bool
	Literal  byte
}

// Len returns the number of bytes the pattern matches.
func (p Pattern) Len() int { return len(p) }

func (p PatternElem) matches(b byte) bool {
	return p.Wildcard || p.Literal == b
}

// FindAll returns every half-open interval in data matching p, scanned
// left to right, non-overlapping (each match consumes its full width
// before scanning resumes).
func FindAll(data []byte, p Pattern) [][2]int {
	if len(p) == 0 || len(data) < len(p) {
		return nil
	}
	var out [][2]int
	for i := 0; i+len(p) <= len(data); {
		if matchAt(data, p, i) {
			out = append(out, [2]int{i, i + len(p)})
			i += len(p)
			continue
		}
		i++
	}
	return out
}

func matchAt(data []byte, p Pattern, at int) bool {
	for i, elem := range p {
		if !elem.matches(data[at+i]) {
			return false
		}
	}
	return true
}

// ZeroRun returns a pattern of n literal zero bytes, used by Split's
// 'n' binding.
func ZeroRun(n int) Pattern {
	p := make(Pattern, n)
	for i := range p {
		p[i] = PatternElem{Literal: 0}
	}
	return p
}
