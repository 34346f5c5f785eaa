// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fzx

// jobState is the snapshot of work handed to every worker goroutine: the
// item set to search, the active query, and the shared reservation counter
// workers fetch-add against to split that item set between themselves.
// This is the Go rendition of the original's Job struct (fzx.hpp); shared
// ownership via std::shared_ptr becomes a plain value copy, since Items and
// the query string are immutable from a worker's point of view once
// published and Go's garbage collector keeps the backing arrays alive for
// as long as any copy references them.
type jobState struct {
	items     Items
	query     string
	hasQuery  bool
	queue     *reservationCounter
	queryTick uint64
}

// Result is a single item matched against the active query: the item text
// itself, its index in the original item set, and its fuzzy match score
// (already multiplied down to the original's user-facing scale).
type Result struct {
	Line  string
	Index uint32
	Score float32
}

// workerResults is what one worker goroutine publishes through its
// ValueTx: a sorted (by MatchedItem.Less) batch of matches plus the
// timestamps identifying which job they were computed against, so the
// merge step below and Engine's readers can tell whether two workers'
// results are comparable. Direct port of the original's Results struct
// (worker.hpp).
type workerResults struct {
	items     []MatchedItem
	query     string
	hasQuery  bool
	itemsTick uint64
	queryTick uint64
}

// newerThan reports whether r was computed against strictly newer items or
// a strictly newer query than b — meaning b is stale and should be
// discarded rather than merged.
func (r *workerResults) newerThan(b *workerResults) bool {
	return r.itemsTick > b.itemsTick || r.queryTick > b.queryTick
}

// sameTick reports whether r and b were computed against the exact same
// job, and so are safe to merge together.
func (r *workerResults) sameTick(b *workerResults) bool {
	return r.itemsTick == b.itemsTick && r.queryTick == b.queryTick
}

// kParentMap maps a worker index to the index of the worker responsible
// for merging its results. Worker 0 is its own parent and, once every
// other worker's results have percolated up to it, is the one that
// notifies the external callback. This is the exact binomial-tree layout
// from the original's worker.cpp, unrolled for kMaxThreads == 64.
var kParentMap = [kMaxThreads]uint8{
	0x00, 0x00, 0x00, 0x02, 0x00, 0x04, 0x04, 0x06, 0x00, 0x08, 0x08, 0x0A, 0x08, 0x0C, 0x0C, 0x0E,
	0x00, 0x10, 0x10, 0x12, 0x10, 0x14, 0x14, 0x16, 0x10, 0x18, 0x18, 0x1A, 0x18, 0x1C, 0x1C, 0x1E,
	0x00, 0x20, 0x20, 0x22, 0x20, 0x24, 0x24, 0x26, 0x20, 0x28, 0x28, 0x2A, 0x28, 0x2C, 0x2C, 0x2E,
	0x20, 0x30, 0x30, 0x32, 0x30, 0x34, 0x34, 0x36, 0x30, 0x38, 0x38, 0x3A, 0x38, 0x3C, 0x3C, 0x3E,
}

// kMaxChildrenMap maps a worker index to the maximum number of children it
// could ever be responsible for, in a tree of exactly kMaxThreads lanes.
var kMaxChildrenMap = [kMaxThreads]uint8{
	6, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	4, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	5, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	4, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
}

// mergeState tracks, for one worker, which of its children in the
// binomial merge tree have had their results folded in yet. A worker with
// workerIndex i and a pool of workersCount lanes is responsible for
// children at i+1, i+2, i+4, ... up to whichever of those indices actually
// exist in the pool. Direct port of the original's MergeState.
type mergeState struct {
	index uint8
	count uint8
	mask  uint8
	state uint8
}

func newMergeState(workerIndex uint8, workersCount int) mergeState {
	ms := mergeState{index: workerIndex}
	for ms.count < kMaxChildrenMap[workerIndex] && int(workerIndex)+(1<<ms.count) < workersCount {
		ms.count++
	}
	ms.mask = ^(uint8(0xFF) << ms.count)
	ms.state = ms.mask
	return ms
}

// size returns how many children this worker merges results from.
func (ms *mergeState) size() uint8 { return ms.count }

// at returns the worker index of the nth child.
func (ms *mergeState) at(child uint8) uint8 { return ms.index + (1 << child) }

// reset rearms the merge state for a fresh job, marking every child as
// not-yet-merged.
func (ms *mergeState) reset() { ms.state = ms.mask }

// set marks the nth child's results as merged.
func (ms *mergeState) set(child uint8) { ms.state &^= 1 << child }

// done reports whether every child's results have been merged.
func (ms *mergeState) done() bool { return ms.state == 0 }

// contains reports whether the nth child's results have already been
// merged.
func (ms *mergeState) contains(child uint8) bool { return ms.state&(1<<child) == 0 }

// merge2 merges the two sorted slices a and b into *r, reusing *r's
// backing array across calls to avoid reallocating on every merge step.
// Direct port of the original's merge2 (worker.cpp).
func merge2(r *[]MatchedItem, a, b []MatchedItem) {
	out := (*r)[:0]
	if cap(out) < len(a)+len(b) {
		out = make([]MatchedItem, 0, len(a)+len(b))
	}
	ai, bi := 0, 0
	for ai < len(a) && bi < len(b) {
		if a[ai].Less(b[bi]) {
			out = append(out, a[ai])
			ai++
		} else {
			out = append(out, b[bi])
			bi++
		}
	}
	out = append(out, a[ai:]...)
	out = append(out, b[bi:]...)
	*r = out
}
