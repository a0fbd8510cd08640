// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package present_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cloudeng.io/hexed/present"
)

func TestInPlaceCoalescesOverlappingAndTouchingIntervals(t *testing.T) {
	d := present.InPlace([][2]int{{5, 8}, {0, 3}, {3, 5}, {20, 22}})
	assert.Equal(t, present.ChangeInPlace, d.Kind)
	assert.Equal(t, [][2]int{{0, 8}, {20, 22}}, d.Intervals)
}

func TestInPlaceWithNoIntervals(t *testing.T) {
	d := present.InPlace(nil)
	assert.Equal(t, present.ChangeInPlace, d.Kind)
	assert.Nil(t, d.Intervals)
}

func TestLengthVariant(t *testing.T) {
	d := present.Length()
	assert.Equal(t, present.ChangeLength, d.Kind)
}

func TestMergeChangeLengthDominates(t *testing.T) {
	a := present.InPlace([][2]int{{0, 1}})
	b := present.Length()
	assert.Equal(t, present.ChangeLength, a.Merge(b).Kind)
	assert.Equal(t, present.ChangeLength, b.Merge(a).Kind)
}

func TestMergeTwoInPlaceUnionsIntervals(t *testing.T) {
	a := present.InPlace([][2]int{{0, 2}})
	b := present.InPlace([][2]int{{2, 4}})
	got := a.Merge(b)
	assert.Equal(t, present.ChangeInPlace, got.Kind)
	assert.Equal(t, [][2]int{{0, 4}}, got.Intervals)
}

func TestZeroValueIsChangeInPlaceWithNoIntervals(t *testing.T) {
	var d present.DirtyBytes
	assert.Equal(t, present.ChangeInPlace, d.Kind)
	assert.Nil(t, d.Intervals)
}
