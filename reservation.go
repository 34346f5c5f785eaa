// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fzx

import "code.hybscloud.com/atomix"

// reservationCounter hands out disjoint [start, end) ranges of item indices
// to worker goroutines via a single atomic fetch-add, so no two workers
// ever score the same item and no coordination beyond the one counter is
// needed. This is a direct port of the original's ItemQueue::take
// (item_queue.hpp); ItemQueue::take(n, max) ("unused atm" in the original)
// is folded into the size bound that reset stores and take clamps against,
// rather than carried over as a second method.
type reservationCounter struct {
	taken atomix.Uint64
	size  uint64
}

// reset rearms the counter to hand out indices over
// [0, size).
func (r *reservationCounter) reset(size uint64) {
	r.taken.StoreRelease(0)
	r.size = size
}

// take reserves up to n item indices, returning the half-open range
// [start, end) of indices the caller now owns exclusively. end-start may be
// less than n, or the range may be empty, once the counter runs past size.
func (r *reservationCounter) take(n uint64) (start, end uint64) {
	start = r.taken.AddAcqRel(n) - n
	if start >= r.size {
		return r.size, r.size
	}
	end = start + n
	if end > r.size {
		end = r.size
	}
	return start, end
}

// get returns how many indices have been reserved so far, clamped to size.
// This is what Engine.Progress reads to report how much of the current job
// has been claimed by some worker (not necessarily scored yet).
func (r *reservationCounter) get() uint64 {
	taken := r.taken.LoadAcquire()
	if taken > r.size {
		return r.size
	}
	return taken
}
