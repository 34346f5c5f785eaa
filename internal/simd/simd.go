// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package simd holds the tiled fast paths for fuzzy subsequence scanning
// and scoring.
//
// The original engine dispatches to hand-written SSE4.2 inner loops
// (matchFuzzySSE in match.cpp, scoreSSE<N> in match/fzy/fzy.cpp) once a
// haystack or needle is long enough to amortize the vector setup cost,
// falling back to scalar code otherwise. Go gives no portable access to
// that instruction set without cgo or assembly stubs per GOARCH — neither
// of which the retrieved examples carry for this kind of byte scan — so
// this package keeps the spirit of the original's dispatch (cheap scalar
// path below a size threshold, a wider-stride path above it) but expresses
// the "wide lane" with 4-way loop unrolling instead of an actual SIMD
// register: ContainsFuzzy unrolls its haystack scan four bytes at a time,
// and Score unrolls the scoring recurrence four needle rows (one "tile")
// at a time, selected by TileCount the same way scoreSSE<N> is selected by
// needle length.
package simd

import "math"

// LaneWidth is how many haystack bytes ContainsFuzzy compares per needle
// character before falling back to the scalar remainder, and how many
// needle rows Score advances per tile.
const LaneWidth = 4

// ContainsFuzzy reports whether every byte of lowerNeedle appears, in
// order, somewhere in lowerHaystack. Both slices must already be
// ASCII-lowercased; their lengths are independent. It is the tiled counterpart to a scalar subsequence scan: the
// haystack is walked LaneWidth bytes at a time, checking all four lanes
// against the current needle byte before advancing, which keeps the branch
// predictor on a single comparison pattern for the common case where the
// needle character doesn't appear in short runs.
func ContainsFuzzy(lowerNeedle, lowerHaystack []byte) bool {
	if len(lowerNeedle) == 0 {
		return true
	}
	ni := 0
	hi := 0
	n := len(lowerHaystack)
	want := lowerNeedle[ni]

	for ; hi+LaneWidth <= n; hi += LaneWidth {
		lane := lowerHaystack[hi : hi+LaneWidth : hi+LaneWidth]
		for l := 0; l < LaneWidth; l++ {
			if lane[l] == want {
				ni++
				if ni == len(lowerNeedle) {
					return true
				}
				want = lowerNeedle[ni]
			}
		}
	}
	for ; hi < n; hi++ {
		if lowerHaystack[hi] == want {
			ni++
			if ni == len(lowerNeedle) {
				return true
			}
			want = lowerNeedle[ni]
		}
	}
	return false
}

// MaxTiledNeedleLen is the longest needle Score handles; it mirrors the
// original's scoreSSE<16> ceiling. Longer needles fall back to a row-major
// scorer outside this package.
const MaxTiledNeedleLen = 4 * LaneWidth

// TileCount returns how many four-row tiles Score advances per haystack
// byte for a needle of length n, mirroring the original's choice of
// scoreSSE<4>, scoreSSE<8>, scoreSSE<12> or scoreSSE<16> by needle-length
// bucket. It returns 0 for n outside the tiled range: n <= 1 has its own
// dedicated single-character scorer upstream, and n > MaxTiledNeedleLen
// falls back to the row-major scorer.
func TileCount(n int) int {
	if n <= 1 || n > MaxTiledNeedleLen {
		return 0
	}
	return (n + LaneWidth - 1) / LaneWidth
}

// Constants bundles the scoring weights Score needs. Kept independent of
// package fzx's own Score constants to avoid an import cycle (fzx imports
// internal/simd, not the other way around).
type Constants struct {
	GapLeading       float32
	GapInner         float32
	GapTrailing      float32
	MatchConsecutive float32
}

// scoreMin mirrors score.go's ScoreMin without importing fzx.
var scoreMin = float32(math.Inf(-1))

// Score computes the same DP recurrence as the portable row-major scorer
// (one cell depends on the cell directly above-left and the cell directly
// left), but walks it column-major: one haystack byte at a time, advancing
// every needle row that byte could affect in lockstep, grouped into
// LaneWidth-wide tiles the way scoreSSE<N> groups SIMD lanes. Row k's
// state at haystack position i only ever depends on row k-1's state at
// position i-1 (already computed and about to be overwritten) and row k's
// own state at position i-1, so reordering the two loops does not change
// which operands feed which addition or max — the result is bitwise
// identical to the row-major scorer for the same inputs.
//
// lowerNeedle and lowerHaystack must already be ASCII-lowercased; bonus[i]
// is the precomputed boundary bonus for lowerHaystack[i]. len(lowerNeedle)
// must be in (1, MaxTiledNeedleLen].
func Score(lowerNeedle, lowerHaystack []byte, bonus []float32, c Constants) float32 {
	n := len(lowerNeedle)
	if n == 0 {
		return scoreMin
	}

	var d, m, dNext, mNext [MaxTiledNeedleLen]float32
	for row := 0; row < n; row++ {
		d[row] = scoreMin
		m[row] = scoreMin
	}

	tiles := TileCount(n)
	for i := 0; i < len(lowerHaystack); i++ {
		ch := lowerHaystack[i]
		b := bonus[i]
		leadingScore := float32(i)*c.GapLeading + b

		for tile := 0; tile < tiles; tile++ {
			base := tile * LaneWidth
			for lane := 0; lane < LaneWidth; lane++ {
				row := base + lane
				if row >= n {
					break
				}

				gapScore := c.GapInner
				if row == n-1 {
					gapScore = c.GapTrailing
				}

				if lowerNeedle[row] != ch {
					dNext[row] = scoreMin
					mNext[row] = m[row] + gapScore
					continue
				}

				score := leadingScore
				if row > 0 {
					score = maxScore(m[row-1]+b, d[row-1]+c.MatchConsecutive)
				}
				dNext[row] = score
				mNext[row] = maxScore(score, m[row]+gapScore)
			}
		}

		d, dNext = dNext, d
		m, mNext = mNext, m
	}

	return m[n-1]
}

func maxScore(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
