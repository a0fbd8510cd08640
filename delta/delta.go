// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package delta implements the edit algebra that sits between the
// byte-rope and everything that must stay consistent across an edit:
// selections, history, and the buffer itself. A Delta describes an edit
// from a base rope of known length to a target rope as an ordered
// sequence of Copy (carry a range of the base forward unchanged) and
// Insert (splice in new material) elements. Deltas compose (Chain),
// invert (Invert, the basis of undo), and factor into their inserted
// and deleted components (Factor) so that selections and history can
// reason about an edit without materializing intermediate ropes.
package delta

import (
	"errors"
	"fmt"

	"cloudeng.io/hexed/rope"
)

// ErrBuilderMisuse is the error Builder panics with when calls are made
// out of order or with overlapping ranges.
var ErrBuilderMisuse = errors.New("delta: builder misuse: overlapping or out-of-order range")

type elemKind int

const (
	copyElem elemKind = iota
	insertElem
)

type element struct {
	kind       elemKind
	start, end int        // valid when kind == copyElem: range in the delta's base
	frag       *rope.Rope // valid when kind == insertElem
}

func (e element) length() int {
	if e.kind == copyElem {
		return e.end - e.start
	}
	return e.frag.Len()
}

// Delta is an edit from a rope of length BaseLen to a rope of length
// NewLen(), expressed as an ordered Copy/Insert sequence.
type Delta struct {
	BaseLen int
	elems   []element
}

// NewLen returns the length of the rope produced by applying d.
func (d Delta) NewLen() int {
	n := 0
	for _, e := range d.elems {
		n += e.length()
	}
	return n
}

// IsIdentity reports whether d makes no change at all.
func (d Delta) IsIdentity() bool {
	return len(d.elems) == 1 && d.elems[0].kind == copyElem &&
		d.elems[0].start == 0 && d.elems[0].end == d.BaseLen
}

// Apply implements the rope contract operation `apply_delta(Δ)`: it
// returns the rope produced by applying d to base, or ErrInvalidDelta
// if base's length does not match d.BaseLen.
func Apply(base *rope.Rope, d Delta) (*rope.Rope, error) {
	if base.Len() != d.BaseLen {
		return nil, rope.ErrInvalidDelta
	}
	out := rope.Empty
	for _, e := range d.elems {
		switch e.kind {
		case copyElem:
			out = out.Concat(rope.New(base.Slice(e.start, e.end)))
		case insertElem:
			out = out.Concat(e.frag)
		}
	}
	return out, nil
}

// WithoutSubset implements the rope contract operation
// `without_subset(S)`: it returns a rope containing exactly the bytes
// of r at positions not marked in s. r.Len() must equal s.Len().
func WithoutSubset(r *rope.Rope, s Subset) *rope.Rope {
	if r.Len() != s.Len() {
		panic("delta: WithoutSubset: length mismatch")
	}
	out := rope.Empty
	pos := 0
	for _, run := range s.runs {
		if !run.deleted {
			out = out.Concat(rope.New(r.Slice(pos, pos+run.n)))
		}
		pos += run.n
	}
	return out
}

// Builder accumulates disjoint, monotone-increasing delete/replace
// calls against a base of known length and emits a Delta. Overlapping
// or out-of-order calls are a programming error and panic with
// ErrBuilderMisuse, mirroring the teacher's own fail-fast posture on
// API misuse (cloudeng.io/cmdutil/subcmd panics on duplicate
// registration rather than returning an error the caller is likely to
// ignore).
type Builder struct {
	baseLen int
	cursor  int
	elems   []element
}

// NewBuilder returns a Builder for a base rope of length baseLen.
func NewBuilder(baseLen int) *Builder {
	return &Builder{baseLen: baseLen}
}

func (b *Builder) carryTo(start int) {
	if start < b.cursor {
		panic(fmt.Errorf("%w: range start %d precedes cursor %d", ErrBuilderMisuse, start, b.cursor))
	}
	if start > b.cursor {
		b.elems = append(b.elems, element{kind: copyElem, start: b.cursor, end: start})
	}
	b.cursor = start
}

// Delete records that [start, end) of the base is removed.
func (b *Builder) Delete(start, end int) *Builder {
	if end < start || end > b.baseLen {
		panic(fmt.Errorf("%w: invalid range [%d,%d)", ErrBuilderMisuse, start, end))
	}
	b.carryTo(start)
	b.cursor = end
	return b
}

// Replace records that [start, end) of the base is replaced by ins.
// Either bound may equal the other (a pure insertion) or ins may be
// empty (a pure deletion, equivalent to Delete).
func (b *Builder) Replace(start, end int, ins *rope.Rope) *Builder {
	if end < start || end > b.baseLen {
		panic(fmt.Errorf("%w: invalid range [%d,%d)", ErrBuilderMisuse, start, end))
	}
	b.carryTo(start)
	if ins != nil && !ins.IsEmpty() {
		b.elems = append(b.elems, element{kind: insertElem, frag: ins})
	}
	b.cursor = end
	return b
}

// Build finalizes the Delta, carrying forward any unconsumed tail of
// the base.
func (b *Builder) Build() Delta {
	b.carryTo(b.baseLen)
	return Delta{BaseLen: b.baseLen, elems: append([]element(nil), b.elems...)}
}

// Identity returns the no-op delta over a base of the given length.
func Identity(baseLen int) Delta {
	return NewBuilder(baseLen).Build()
}

// Factor splits d into inserts, a delta that carries every base byte
// forward unchanged while splicing in exactly d's own Insert elements
// (so applying it to base yields the "union" of base and d's new
// material, with nothing removed), and deletions, a subset of that
// union marking the base ranges that d actually dropped. Per the
// algebra's second law, applying inserts to base yields the union,
// deletions is a subset of it, and removing deletions from the union
// reproduces apply(d, base).
func Factor(d Delta) (inserts Delta, deletions Subset) {
	var deletedRanges [][2]int
	basePos := 0
	unionPos := 0
	for _, e := range d.elems {
		switch e.kind {
		case copyElem:
			if e.start > basePos {
				// a gap: these base bytes were dropped by d, but
				// inserts must still carry them into the union.
				gap := e.start - basePos
				deletedRanges = append(deletedRanges, [2]int{unionPos, unionPos + gap})
				unionPos += gap
			}
			unionPos += e.end - e.start
			basePos = e.end
		case insertElem:
			unionPos += e.frag.Len()
		}
	}
	if basePos < d.BaseLen {
		gap := d.BaseLen - basePos
		deletedRanges = append(deletedRanges, [2]int{unionPos, unionPos + gap})
		unionPos += gap
	}
	inserts = buildInserts(d)
	deletions = FromRanges(unionPos, deletedRanges)
	return inserts, deletions
}

// buildInserts constructs the full-retention delta described by
// Factor: every base byte copied forward, d's Insert elements spliced
// in at their original positions.
func buildInserts(d Delta) Delta {
	ib := NewBuilder(d.BaseLen)
	basePos := 0
	for _, e := range d.elems {
		switch e.kind {
		case copyElem:
			if e.start > basePos {
				// carry the skipped base range forward too (nothing is
				// dropped by inserts).
				ib.carryTo(e.start)
			}
			ib.carryTo(e.end)
			basePos = e.end
		case insertElem:
			ib.carryTo(basePos)
			ib.elems = append(ib.elems, element{kind: insertElem, frag: e.frag})
		}
	}
	return ib.Build()
}

// insertedSubset returns the subset of d's own union (as built by
// Factor) marking the positions that originate from d's Insert
// elements, i.e. the genuinely new material as opposed to base bytes
// carried forward.
func insertedSubset(d Delta) Subset {
	var ranges [][2]int
	basePos, unionPos := 0, 0
	for _, e := range d.elems {
		switch e.kind {
		case copyElem:
			if e.start > basePos {
				unionPos += e.start - basePos
			}
			unionPos += e.end - e.start
			basePos = e.end
		case insertElem:
			n := e.frag.Len()
			ranges = append(ranges, [2]int{unionPos, unionPos + n})
			unionPos += n
		}
	}
	if basePos < d.BaseLen {
		unionPos += d.BaseLen - basePos
	}
	return FromRanges(unionPos, ranges)
}

// Synthesize reconstructs a Delta over a base of length
// inserted.Len() - inserted.Count() (the reference positions not marked
// in inserted; d.NewLen() when used from Invert) from: tombstones, bytes to splice back in; inserted, marking
// which reference positions should be replaced by the next bytes of
// tombstones; and deleted, marking which reference positions are
// absent from the delta's output entirely. Reference positions marked
// in neither subset are copied forward from the delta's own base in
// order.
func Synthesize(tombstones *rope.Rope, inserted, deleted Subset) Delta {
	if inserted.Len() != deleted.Len() {
		panic("delta: Synthesize: inserted/deleted length mismatch")
	}
	refLen := inserted.Len()
	b := NewBuilder(refLen - inserted.Count())
	tPos, sPos := 0, 0
	for lo := 0; lo < refLen; {
		ins, dRun := runAt(inserted, lo), runAt(deleted, lo)
		step := min(ins.n, dRun.n)
		switch {
		case ins.deleted && dRun.deleted:
			// new material that is itself dropped: consume the
			// tombstones behind it but emit nothing for this span.
			tPos += step
		case ins.deleted && !dRun.deleted:
			frag := rope.New(tombstones.Slice(tPos, tPos+step))
			b.Replace(sPos, sPos, frag)
			tPos += step
		case !ins.deleted && dRun.deleted:
			b.Delete(sPos, sPos+step)
			sPos += step
		default:
			// kept, carried forward unchanged: leave the cursor where
			// it is so the next Delete/Replace/Build call emits one
			// Copy spanning the whole accumulated run.
			sPos += step
		}
		lo += step
	}
	return b.Build()
}

// Transform maps a position in d's base to the corresponding position
// in d's result, with forward bias: a position that falls inside
// material d deletes, or that sits exactly at a point where d inserts
// new material, maps to the first surviving position at or after it
// (so newly inserted text "pushes" a caret sitting at the insertion
// point forward, past the insertion, rather than leaving it behind).
// pos == d.BaseLen (one past the end) maps to d.NewLen() for the same
// reason: it falls after everything d's loop visits.
func (d Delta) Transform(pos int) int {
	outPos := 0
	for _, e := range d.elems {
		if e.kind == insertElem {
			outPos += e.frag.Len()
			continue
		}
		if pos < e.start {
			return outPos
		}
		if pos < e.end {
			return outPos + (pos - e.start)
		}
		outPos += e.end - e.start
	}
	return outPos
}

func runAt(s Subset, pos int) subRun {
	p := 0
	for _, r := range s.runs {
		if pos < p+r.n {
			return subRun{n: p + r.n - pos, deleted: r.deleted}
		}
		p += r.n
	}
	return subRun{n: s.length - pos, deleted: false}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Invert returns the inverse of d as applied to base: applying the
// result to apply(d, base) reproduces base (the third algebra law).
// It factors d into its inserted/deleted halves, materializes the
// union to recover the tombstones (the base bytes d dropped), then
// synthesizes the reverse edit: the union positions d deleted are
// spliced back in from the tombstones, the positions d inserted are
// dropped, and everything else is carried forward from d's result.
func Invert(d Delta, base *rope.Rope) Delta {
	inserts, deletions := Factor(d)
	union, err := Apply(base, inserts)
	if err != nil {
		panic(err)
	}
	tombstones := WithoutSubset(union, deletions.Complement())
	newMaterial := insertedSubset(d)
	return Synthesize(tombstones, deletions, newMaterial)
}

// segment describes one contiguous span of a delta's target, either
// copied forward from its base or freshly inserted.
type segment struct {
	fromBase    bool
	baseStart   int
	frag        *rope.Rope
	targetStart int
	targetEnd   int
}

func segmentsOf(d Delta) []segment {
	segs := make([]segment, 0, len(d.elems))
	pos := 0
	for _, e := range d.elems {
		n := e.length()
		if e.kind == copyElem {
			segs = append(segs, segment{fromBase: true, baseStart: e.start, targetStart: pos, targetEnd: pos + n})
		} else {
			segs = append(segs, segment{fromBase: false, frag: e.frag, targetStart: pos, targetEnd: pos + n})
		}
		pos += n
	}
	return segs
}

// Chain composes two consecutive deltas, d1: base -> mid and d2: mid ->
// final, into a single delta base -> final, as required whenever a
// partial edit run folds a new incomplete delta into the one already
// recorded in history. Unlike Builder, Chain never auto-carries a gap
// forward as a Copy: any base range d1 kept but d2 then dropped must
// stay dropped, so the composed elements are appended directly rather
// than through Builder's "copy whatever's skipped" convenience.
func Chain(d1, d2 Delta) Delta {
	if d1.NewLen() != d2.BaseLen {
		panic("delta: Chain: d1's result length does not match d2's base length")
	}
	segs := segmentsOf(d1)
	var elems []element
	appendCopy := func(start, end int) {
		if n := len(elems); n > 0 && elems[n-1].kind == copyElem && elems[n-1].end == start {
			elems[n-1].end = end
			return
		}
		elems = append(elems, element{kind: copyElem, start: start, end: end})
	}
	si := 0
	for _, e := range d2.elems {
		if e.kind == insertElem {
			elems = append(elems, element{kind: insertElem, frag: e.frag})
			continue
		}
		lo, hi := e.start, e.end
		for lo < hi {
			for segs[si].targetEnd <= lo {
				si++
			}
			seg := segs[si]
			segLo := max(lo, seg.targetStart)
			segHi := min(hi, seg.targetEnd)
			off := segLo - seg.targetStart
			n := segHi - segLo
			if seg.fromBase {
				appendCopy(seg.baseStart+off, seg.baseStart+off+n)
			} else {
				elems = append(elems, element{kind: insertElem, frag: rope.New(seg.frag.Slice(off, off+n))})
			}
			lo = segHi
		}
	}
	return Delta{BaseLen: d1.BaseLen, elems: elems}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
