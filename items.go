// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fzx

// Items is a push-only vector of strings.
//
// Items is a value type: copying it copies two slice headers, not the
// backing arrays. A copy taken before a later Push sees exactly the items
// that existed at copy time — Push only writes past the end of every older
// copy's view, either into spare capacity of the shared backing array or
// into a newly allocated larger one it then reassigns the producer's own
// slice headers to, so older copies stay valid for as long as anything
// references them. This is the Go-native replacement for the original's
// manually reference-counted storage: the garbage collector already keeps
// an old backing array alive for exactly as long as a copy needs it.
//
// Only the most up-to-date copy may call Push: a push through an older copy
// would overwrite bytes and offsets that newer copies already expose
// (this mirrors the original's documented constraint).
type Items struct {
	strs       []byte
	offsets    []uint64
	maxStrSize int
}

// packedOffset is the 64-bit packed (offset, size) word stored per item,
// laid out exactly like the original's Offset encoding: 38 bits of byte
// offset, 25 bits of byte size, one reserved bit.
type packedOffset = uint64

// Size returns the number of items pushed so far.
func (it *Items) Size() int {
	return len(it.offsets)
}

// At returns the item at index n.
//
// Accessing an index out of [0, Size()) is undefined behavior, matching the
// original's documented contract — callers are expected to range over
// [0, Size()).
func (it *Items) At(n int) string {
	word := it.offsets[n]
	offset := word & kItemOffsetMask
	size := (word >> kItemSizeShift) & kItemSizeMask
	return string(it.strs[offset : offset+size])
}

// MaxStrSize returns the length of the longest item pushed so far.
func (it *Items) MaxStrSize() int {
	return it.maxStrSize
}

// Clear resets the vector to empty, releasing its backing arrays.
func (it *Items) Clear() {
	it.strs = nil
	it.offsets = nil
	it.maxStrSize = 0
}

// Push appends a string to the vector. Empty strings are silently ignored,
// matching the original.
//
// Push must only be called by the single writer that owns this Items
// value — see the type doc comment.
func (it *Items) Push(s string) error {
	if len(s) == 0 {
		return nil
	}
	if len(s) > kItemSizeMask {
		return ErrCapacity
	}
	if len(it.offsets)+1 > kItemOffsetMask {
		return ErrCapacity
	}

	aligned := int(roundUp(uint64(len(s)), kItemAlign))
	offset := len(it.strs)
	needed := offset + aligned

	if needed+kOveralloc > cap(it.strs) {
		newCap := int(roundPow2(uint64(needed))) + kOveralloc
		grown := make([]byte, len(it.strs), newCap)
		copy(grown, it.strs)
		it.strs = grown
	}
	it.strs = it.strs[:needed]
	// Zero the newly claimed alignment padding along with the string itself,
	// so that a reader never observes leftover bytes
	// from a previous, larger allocation at this offset.
	clear(it.strs[offset:needed])
	copy(it.strs[offset:], s)

	word := packedOffset(offset) | (packedOffset(len(s)) << kItemSizeShift)
	if len(it.offsets) == cap(it.offsets) {
		// The offset array starts at 512 entries and doubles from there.
		newCap := 2 * cap(it.offsets)
		if newCap < 512 {
			newCap = 512
		}
		grown := make([]uint64, len(it.offsets), newCap)
		copy(grown, it.offsets)
		it.offsets = grown
	}
	it.offsets = append(it.offsets, word)

	if len(s) > it.maxStrSize {
		it.maxStrSize = len(s)
	}
	return nil
}
