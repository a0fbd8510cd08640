// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package delta

// Subset is a run-length-encoded marking over the positions of a
// reference string of a known length: each position is either marked
// ("deleted", in the vocabulary of the delta algebra) or not. It never
// stores more than one run per maximal span of identical marking.
type Subset struct {
	length int
	runs   []subRun
}

type subRun struct {
	n       int
	deleted bool
}

// EmptySubset returns a subset over a reference string of the given
// length with nothing marked.
func EmptySubset(length int) Subset {
	if length == 0 {
		return Subset{length: 0}
	}
	return Subset{length: length, runs: []subRun{{n: length, deleted: false}}}
}

// FromRanges builds a subset over a reference string of the given
// length with the supplied half-open, sorted, disjoint ranges marked.
func FromRanges(length int, ranges [][2]int) Subset {
	s := Subset{length: length}
	pos := 0
	for _, rg := range ranges {
		if rg[0] < pos || rg[1] < rg[0] || rg[1] > length {
			panic("delta: FromRanges: ranges must be sorted, disjoint and in bounds")
		}
		if rg[0] > pos {
			s.runs = append(s.runs, subRun{n: rg[0] - pos, deleted: false})
		}
		if rg[1] > rg[0] {
			s.runs = append(s.runs, subRun{n: rg[1] - rg[0], deleted: true})
		}
		pos = rg[1]
	}
	if pos < length {
		s.runs = append(s.runs, subRun{n: length - pos, deleted: false})
	}
	return s.normalize()
}

// normalize merges adjacent runs sharing the same marking and drops
// zero-length runs, restoring the invariant that runs alternate.
func (s Subset) normalize() Subset {
	out := make([]subRun, 0, len(s.runs))
	for _, r := range s.runs {
		if r.n == 0 {
			continue
		}
		if n := len(out); n > 0 && out[n-1].deleted == r.deleted {
			out[n-1].n += r.n
			continue
		}
		out = append(out, r)
	}
	s.runs = out
	return s
}

// Len returns the length of the reference string this subset indexes.
func (s Subset) Len() int { return s.length }

// Count returns the number of marked positions.
func (s Subset) Count() int {
	n := 0
	for _, r := range s.runs {
		if r.deleted {
			n += r.n
		}
	}
	return n
}

// Ranges returns the marked spans as half-open, sorted, disjoint
// [start, end) pairs.
func (s Subset) Ranges() [][2]int {
	var out [][2]int
	pos := 0
	for _, r := range s.runs {
		if r.deleted {
			out = append(out, [2]int{pos, pos + r.n})
		}
		pos += r.n
	}
	return out
}

// Complement returns a subset over the same reference string with
// every marking flipped.
func (s Subset) Complement() Subset {
	out := make([]subRun, len(s.runs))
	for i, r := range s.runs {
		out[i] = subRun{n: r.n, deleted: !r.deleted}
	}
	return Subset{length: s.length, runs: out}
}

// walker exposes a subset's runs as a cursor that can be consumed in
// sub-run-sized steps, used by Union/TransformExpand/TransformShrink to
// walk two subsets in lock-step without pre-splitting either of them.
type walker struct {
	runs []subRun
	idx  int
	left int // remaining length of runs[idx] not yet consumed
}

func newWalker(runs []subRun) *walker {
	w := &walker{runs: runs}
	if len(runs) > 0 {
		w.left = runs[0].n
	}
	return w
}

func (w *walker) done() bool { return w.idx >= len(w.runs) }

// peek returns the marking and remaining length of the current run
// without consuming anything.
func (w *walker) peek() (deleted bool, left int) {
	if w.done() {
		return false, 1 << 62
	}
	return w.runs[w.idx].deleted, w.left
}

// take consumes exactly n positions of the current run; n must not
// exceed the remaining length of that run.
func (w *walker) take(n int) {
	if w.done() {
		return
	}
	w.left -= n
	if w.left == 0 {
		w.idx++
		if !w.done() {
			w.left = w.runs[w.idx].n
		}
	}
}

// Union returns a subset over the same reference string marking a
// position when either s or other marks it.
func (s Subset) Union(other Subset) Subset {
	if s.length != other.length {
		panic("delta: Union: length mismatch")
	}
	a, b := newWalker(s.runs), newWalker(other.runs)
	out := Subset{length: s.length}
	remaining := s.length
	for remaining > 0 {
		da, la := a.peek()
		db, lb := b.peek()
		step := la
		if lb < step {
			step = lb
		}
		if step > remaining {
			step = remaining
		}
		a.take(step)
		b.take(step)
		out.runs = append(out.runs, subRun{n: step, deleted: da || db})
		remaining -= step
	}
	return out.normalize()
}

// TransformExpand re-indexes s, a subset of a string of length s.length,
// onto a longer reference string in which ins marks newly inserted
// material. Positions covered by ins are never marked in the result
// (new material starts out "not deleted"); all other positions carry
// s's marking, consumed in order.
func (s Subset) TransformExpand(ins Subset) Subset {
	if ins.Count()+s.length != ins.length {
		panic("delta: TransformExpand: ins does not add up with s")
	}
	a := newWalker(s.runs)
	out := Subset{length: ins.length}
	for _, r := range ins.runs {
		remaining := r.n
		if r.deleted {
			out.runs = append(out.runs, subRun{n: remaining, deleted: false})
			continue
		}
		for remaining > 0 {
			deleted, left := a.peek()
			took := remaining
			if left < took {
				took = left
			}
			a.take(took)
			out.runs = append(out.runs, subRun{n: took, deleted: deleted})
			remaining -= took
		}
	}
	return out.normalize()
}

// TransformShrink removes the positions marked by t from s, producing a
// subset over the shorter string of length s.length-t.Count(). s and t
// must share the same reference length.
func (s Subset) TransformShrink(t Subset) Subset {
	if s.length != t.length {
		panic("delta: TransformShrink: length mismatch")
	}
	a := newWalker(s.runs)
	out := Subset{length: s.length - t.Count()}
	for _, r := range t.runs {
		remaining := r.n
		for remaining > 0 {
			deleted, left := a.peek()
			took := remaining
			if left < took {
				took = left
			}
			a.take(took)
			if !r.deleted {
				out.runs = append(out.runs, subRun{n: took, deleted: deleted})
			}
			remaining -= took
		}
	}
	return out.normalize()
}
