// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fzx_test

import (
	"math"
	"testing"

	"code.fzxlib.dev/fzx"
)

func TestMatchedItemRoundtrip(t *testing.T) {
	cases := []struct {
		index uint32
		score float32
	}{
		{0, 0},
		{1, 42},
		{1000000, -17},
		{7, float32(math.Inf(1))},
		{8, float32(math.Inf(-1))},
	}
	for _, c := range cases {
		m := fzx.NewMatchedItem(c.index, c.score)
		if got := m.Index(); got != c.index {
			t.Fatalf("Index() = %d, want %d", got, c.index)
		}
		if got := m.Score(); got != c.score {
			t.Fatalf("Score() = %v, want %v", got, c.score)
		}
	}
}

func TestMatchedItemOrdering(t *testing.T) {
	high := fzx.NewMatchedItem(0, 100)
	low := fzx.NewMatchedItem(1, 1)
	if !high.Less(low) {
		t.Fatalf("higher score item should sort before a lower score item")
	}
	if low.Less(high) {
		t.Fatalf("lower score item should not sort before a higher score item")
	}
}

func TestMatchedItemOrderingTieBreaksOnIndex(t *testing.T) {
	a := fzx.NewMatchedItem(3, 10)
	b := fzx.NewMatchedItem(9, 10)
	if !a.Less(b) {
		t.Fatalf("equal scores should tie-break on the lower index")
	}
}
