// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package rope provides a persistent, structurally shared byte sequence
// backed by a balanced binary tree of byte-chunk leaves. It is the
// storage primitive for the editing core: every edit produces a new
// Rope while leaving the previous one, and anything still referencing
// it, untouched.
//
// There is no off-the-shelf rope library in use anywhere in the corpus
// this package was grounded on; it is hand-rolled in the same spirit as
// the teacher's own from-scratch generic containers (a linked list, a
// circular buffer, a heap), using the Go 1.23 iter.Seq idiom those
// containers expose for traversal.
package rope

import (
	"errors"
	"iter"
)

// Leaf size bounds. No leaf holds more than MaxLeaf bytes. MinLeaf is
// enforced only where concat joins two leaves; build and split can
// leave shorter non-root leaves (1025 bytes build as 1024 + 1), and a
// short leaf next to an inner node is not merged.
const (
	MinLeaf = 511
	MaxLeaf = 1024
)

// ErrInvalidDelta is returned when an operation is asked to apply
// against a base whose length does not match its expectation.
var ErrInvalidDelta = errors.New("rope: invalid delta: base length mismatch")

// Rope is an immutable sequence of bytes.
type Rope struct {
	root node
}

// node is the internal tree representation. It is never mutated once
// constructed; every operation returns new nodes.
type node interface {
	length() int
}

type leaf struct {
	b []byte
}

func (l *leaf) length() int { return len(l.b) }

type inner struct {
	left, right  node
	leftLen      int
	totalLen     int
	depth        int
}

func (n *inner) length() int { return n.totalLen }

func depthOf(n node) int {
	if n == nil {
		return 0
	}
	if in, ok := n.(*inner); ok {
		return in.depth
	}
	return 1
}

// Empty is the zero-length rope.
var Empty = &Rope{root: &leaf{}}

// New returns a new Rope containing a copy of v.
func New(v []byte) *Rope {
	if len(v) == 0 {
		return Empty
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return &Rope{root: build(cp)}
}

// build constructs a balanced tree of leaves sized at most MaxLeaf from
// a single contiguous byte slice. It owns the slice (no further copies
// are made of it).
func build(v []byte) node {
	if len(v) <= MaxLeaf {
		return &leaf{b: v}
	}
	mid := len(v) / 2
	// Round to a chunk boundary so both sides stay <= MaxLeaf even for
	// very large inputs.
	if rem := mid % MaxLeaf; rem != 0 && len(v) > MaxLeaf {
		mid = (mid / MaxLeaf) * MaxLeaf
		if mid == 0 {
			mid = MaxLeaf
		}
	}
	l := build(v[:mid])
	r := build(v[mid:])
	return joinBalanced(l, r)
}

func joinBalanced(l, r node) *inner {
	return &inner{
		left:     l,
		right:    r,
		leftLen:  l.length(),
		totalLen: l.length() + r.length(),
		depth:    1 + max(depthOf(l), depthOf(r)),
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Len returns the number of bytes in the rope.
func (r *Rope) Len() int {
	if r == nil || r.root == nil {
		return 0
	}
	return r.root.length()
}

// IsEmpty reports whether the rope has zero length.
func (r *Rope) IsEmpty() bool {
	return r.Len() == 0
}

// Bytes materializes the entire rope as a single byte slice.
func (r *Rope) Bytes() []byte {
	return r.Slice(0, r.Len())
}

// Slice materializes the half-open byte range [start, end). Panics if
// the range is out of bounds, mirroring slice semantics on a []byte.
func (r *Rope) Slice(start, end int) []byte {
	if start < 0 || end > r.Len() || start > end {
		panic("rope: slice out of range")
	}
	out := make([]byte, 0, end-start)
	out = appendRange(out, r.root, start, end)
	return out
}

func appendRange(out []byte, n node, start, end int) []byte {
	if start >= end {
		return out
	}
	switch v := n.(type) {
	case *leaf:
		return append(out, v.b[start:end]...)
	case *inner:
		if start < v.leftLen {
			out = appendRange(out, v.left, start, min(end, v.leftLen))
		}
		if end > v.leftLen {
			out = appendRange(out, v.right, max0(start-v.leftLen), end-v.leftLen)
		}
		return out
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max0(a int) int {
	if a < 0 {
		return 0
	}
	return a
}

// IterChunks yields the underlying leaf chunks (as borrowed slices, not
// copies) that overlap [start, end), in order. Callers must not retain
// or mutate the yielded slices beyond the iteration.
func (r *Rope) IterChunks(start, end int) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		iterRange(r.root, start, end, yield)
	}
}

func iterRange(n node, start, end int, yield func([]byte) bool) bool {
	if start >= end {
		return true
	}
	switch v := n.(type) {
	case *leaf:
		return yield(v.b[start:end])
	case *inner:
		if start < v.leftLen {
			if !iterRange(v.left, start, min(end, v.leftLen), yield) {
				return false
			}
		}
		if end > v.leftLen {
			if !iterRange(v.right, max0(start-v.leftLen), end-v.leftLen, yield) {
				return false
			}
		}
	}
	return true
}

// split divides n at position at into two new, independent nodes whose
// lengths sum to n.length(). Leaf fragments produced at the cut point
// may be shorter than MinLeaf; callers rejoin fragments with concat,
// which merges a fragment only when its neighbor at the seam is also a
// leaf.
func split(n node, at int) (node, node) {
	switch v := n.(type) {
	case *leaf:
		l := make([]byte, at)
		copy(l, v.b[:at])
		r := make([]byte, len(v.b)-at)
		copy(r, v.b[at:])
		return newLeaf(l), newLeaf(r)
	case *inner:
		if at <= v.leftLen {
			l, r := split(v.left, at)
			return l, concat(r, v.right)
		}
		l, r := split(v.right, at-v.leftLen)
		return concat(v.left, l), r
	}
	return emptyNode(), emptyNode()
}

func emptyNode() node { return &leaf{} }

func newLeaf(b []byte) node {
	return &leaf{b: b}
}

// concat joins two nodes, merging them when both are leaves and either
// fits together with the other in MaxLeaf or is below MinLeaf, and
// periodically
// flattening and rebuilding when the tree has grown unbalanced relative
// to its size (classic rope rebalancing, simplified to a whole-rebuild
// rather than Fibonacci-threshold partial rebuilds).
func concat(a, b node) node {
	if a == nil || a.length() == 0 {
		if b == nil {
			return emptyNode()
		}
		return b
	}
	if b == nil || b.length() == 0 {
		return a
	}
	al, aok := a.(*leaf)
	bl, bok := b.(*leaf)
	if aok && bok {
		combined := len(al.b) + len(bl.b)
		switch {
		case combined <= MaxLeaf:
			merged := make([]byte, 0, combined)
			merged = append(merged, al.b...)
			merged = append(merged, bl.b...)
			return &leaf{b: merged}
		case len(al.b) < MinLeaf || len(bl.b) < MinLeaf:
			merged := make([]byte, 0, combined)
			merged = append(merged, al.b...)
			merged = append(merged, bl.b...)
			mid := combined / 2
			return joinBalanced(&leaf{b: merged[:mid]}, &leaf{b: merged[mid:]})
		}
	}
	n := joinBalanced(a, b)
	if unbalanced(n) {
		return buildFromChunks(flatten(n, nil))
	}
	return n
}

func unbalanced(n *inner) bool {
	// A balanced binary tree over ln leaves has depth ~log2(ln). Allow
	// generous slack before paying for a full rebuild.
	leaves := (n.totalLen / MinLeaf) + 1
	budget := 2
	for l := leaves; l > 1; l >>= 1 {
		budget++
	}
	return n.depth > budget+4
}

func flatten(n node, out [][]byte) [][]byte {
	switch v := n.(type) {
	case *leaf:
		if len(v.b) > 0 {
			out = append(out, v.b)
		}
	case *inner:
		out = flatten(v.left, out)
		out = flatten(v.right, out)
	}
	return out
}

func buildFromChunks(chunks [][]byte) node {
	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	flat := make([]byte, 0, total)
	for _, c := range chunks {
		flat = append(flat, c...)
	}
	return build(flat)
}

// Insert returns a new Rope with v inserted at pos.
func (r *Rope) Insert(pos int, v []byte) *Rope {
	if pos < 0 || pos > r.Len() {
		panic("rope: insert out of range")
	}
	if len(v) == 0 {
		return r
	}
	l, rr := split(r.root, pos)
	mid := New(v).root
	return &Rope{root: concat(concat(l, mid), rr)}
}

// Delete returns a new Rope with the half-open range [start, end)
// removed.
func (r *Rope) Delete(start, end int) *Rope {
	if start < 0 || end > r.Len() || start > end {
		panic("rope: delete out of range")
	}
	l, rest := split(r.root, start)
	_, rr := split(rest, end-start)
	return &Rope{root: concat(l, rr)}
}

// Splice returns a new Rope with [start, end) replaced by v. It is
// equivalent to, but cheaper than, Delete followed by Insert.
func (r *Rope) Splice(start, end int, v []byte) *Rope {
	if start < 0 || end > r.Len() || start > end {
		panic("rope: splice out of range")
	}
	l, rest := split(r.root, start)
	_, rr := split(rest, end-start)
	mid := New(v).root
	return &Rope{root: concat(concat(l, mid), rr)}
}

// Concat returns a new Rope equal to r followed by other.
func (r *Rope) Concat(other *Rope) *Rope {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return &Rope{root: concat(r.root, other.root)}
}

