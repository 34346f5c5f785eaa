// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fzx

import "math"

// matchedItemMin and matchedItemMax are the sentinel high-word values used
// to represent +/-Inf scores without ever needing a float comparison to
// sort matched items.
const (
	matchedItemMin int32 = math.MinInt32
	matchedItemMax int32 = math.MaxInt32
)

// MatchedItem packs an item index and its fuzzy match score into a single
// int64, so that two matched items can be ordered with one integer
// comparison instead of a float compare plus tiebreak. The score occupies
// the high 32 bits, negated so that higher scores sort first; the item
// index occupies the low 32 bits. This is a direct translation of the
// original's MatchedItem bit layout (matched_item.hpp).
type MatchedItem int64

// NewMatchedItem packs index and score into a MatchedItem.
func NewMatchedItem(index uint32, score float32) MatchedItem {
	var hi int32
	switch {
	case math.IsInf(float64(score), 1):
		hi = matchedItemMin
	case math.IsInf(float64(score), -1):
		hi = matchedItemMax
	default:
		// No loss of precision: scores are whole numbers, haystacks are
		// capped at kMatchMaxLen and the maximum possible score is
		// kMatchMaxLen * scoreMatchConsecutive, comfortably inside a
		// float32's exact integer range. A fractional part would be
		// truncated toward zero.
		hi = -int32(score)
	}
	return MatchedItem((int64(uint32(hi)) << 32) | int64(index))
}

// Index returns the packed item index.
func (m MatchedItem) Index() uint32 {
	return uint32(m)
}

// Score returns the packed score.
func (m MatchedItem) Score() float32 {
	v := int32(uint64(m) >> 32)
	switch v {
	case matchedItemMax:
		return float32(math.Inf(-1))
	case matchedItemMin:
		return float32(math.Inf(1))
	default:
		return -float32(v)
	}
}

// Less reports whether m sorts before b: higher score first, lower index
// breaking ties. Because the score is negated into the high bits, this is
// exactly integer comparison.
func (m MatchedItem) Less(b MatchedItem) bool {
	return m < b
}
