// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fzx

import "testing"

// These are white-box tests: the teacher carries no white-box test file
// either, but job.go's merge-tree bookkeeping (mergeState, merge2) and
// worker.go's per-range scoring loop (scoreRange) are cheap to drive directly
// without spinning up goroutines, so they get their own coverage instead
// of relying solely on engine_test.go's end-to-end flow.

func TestMergeStateTracksChildren(t *testing.T) {
	ms := newMergeState(0, 8)
	if got, want := ms.size(), uint8(3); got != want {
		t.Fatalf("size() = %d, want %d", got, want)
	}
	if ms.done() {
		t.Fatalf("freshly built mergeState reports done")
	}
	for c := uint8(0); c < ms.size(); c++ {
		if ms.contains(c) {
			t.Fatalf("child %d reported merged before set()", c)
		}
		ms.set(c)
	}
	if !ms.done() {
		t.Fatalf("mergeState not done after every child set()")
	}

	ms.reset()
	if ms.done() {
		t.Fatalf("reset() should rearm every child as unmerged")
	}
}

func TestMergeStateAtMatchesBinomialTree(t *testing.T) {
	ms := newMergeState(4, 64)
	for c := uint8(0); c < ms.size(); c++ {
		if got, want := ms.at(c), uint8(4)+(1<<c); got != want {
			t.Fatalf("at(%d) = %d, want %d", c, got, want)
		}
	}
}

func TestMerge2InterleavesSortedInput(t *testing.T) {
	a := []MatchedItem{NewMatchedItem(0, 10), NewMatchedItem(2, 4)}
	b := []MatchedItem{NewMatchedItem(1, 8), NewMatchedItem(3, 1)}

	var out []MatchedItem
	merge2(&out, a, b)

	if len(out) != len(a)+len(b) {
		t.Fatalf("merge2 produced %d items, want %d", len(out), len(a)+len(b))
	}
	for i := 1; i < len(out); i++ {
		if !out[i-1].Less(out[i]) {
			t.Fatalf("merge2 output not sorted: %v then %v", out[i-1], out[i])
		}
	}
}

func TestScoreRangeFiltersAndScores(t *testing.T) {
	var items Items
	for _, s := range []string{"app/models/user.rb", "README.md", "app/models/comment.rb"} {
		if err := items.Push(s); err != nil {
			t.Fatalf("Push(%q): %v", s, err)
		}
	}

	job := jobState{items: items, query: "amo", hasQuery: true}
	var out workerResults

	w := &worker{}
	w.scoreRange(&job, &out, 0, uint64(items.Size()))

	if len(out.items) != 2 {
		t.Fatalf("scoreRange matched %d items, want 2 (README.md should be filtered out)", len(out.items))
	}
	for _, mi := range out.items {
		if mi.Index() == 1 {
			t.Fatalf("scoreRange kept index 1 (README.md), which doesn't fuzzy-match %q", job.query)
		}
	}
}
