// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
//
// The scoring algorithm below is a Go port of the fzy matcher
// (https://github.com/jhawthorn/fzy), MIT licensed, copyright 2014 John
// Hawthorn, as adapted by the fzx project this package's domain model is
// grounded on.

package fzx

import (
	"math"

	"code.fzxlib.dev/fzx/internal/simd"
)

// Score is a fuzzy match quality score. Scores are kept as whole-number-ish
// float32s multiplied by 200 internally (ScoreMultiplier converts back),
// which keeps the arithmetic below exact over the score range this engine
// cares about.
type Score = float32

const (
	ScoreMultiplier = 0.005

	scoreGapLeading      Score = -1
	scoreGapTrailing     Score = -1
	scoreGapInner        Score = -2
	scoreMatchConsecutive Score = 200
	scoreMatchSlash      Score = 180
	scoreMatchWord       Score = 160
	scoreMatchCapital    Score = 140
	scoreMatchDot        Score = 120
)

// ScoreMax and ScoreMin are the two sentinel scores: ScoreMax for an exact
// (length-equal) match, ScoreMin for "no usable score" — still a valid
// match, just unconditionally ranked last.
var (
	ScoreMax Score = float32(math.Inf(1))
	ScoreMin Score = float32(math.Inf(-1))
)

// bonusStates[class][prevChar] is the bonus earned by matching a character
// of the given class right after prevChar. Class 1 is lowercase/digit,
// class 2 is uppercase (so that reaching an uppercase letter from a
// lowercase one earns the camelCase boundary bonus).
var bonusStates = buildBonusStates()

// bonusIndex maps a haystack byte to its bonus class (0 = none).
var bonusIndex = buildBonusIndex()

func buildBonusStates() [3][256]Score {
	var r [3][256]Score
	r[1]['/'] = scoreMatchSlash
	r[1]['-'] = scoreMatchWord
	r[1]['_'] = scoreMatchWord
	r[1][' '] = scoreMatchWord
	r[1]['.'] = scoreMatchDot

	r[2]['/'] = scoreMatchSlash
	r[2]['-'] = scoreMatchWord
	r[2]['_'] = scoreMatchWord
	r[2][' '] = scoreMatchWord
	r[2]['.'] = scoreMatchDot
	for c := byte('a'); c <= 'z'; c++ {
		r[2][c] = scoreMatchCapital
	}
	return r
}

func buildBonusIndex() [256]uint8 {
	var r [256]uint8
	for c := byte('A'); c <= 'Z'; c++ {
		r[c] = 2
	}
	for c := byte('a'); c <= 'z'; c++ {
		r[c] = 1
	}
	for c := byte('0'); c <= '9'; c++ {
		r[c] = 1
	}
	return r
}

func precomputeBonus(haystack string, bonus []Score) {
	lastCh := byte('/')
	for i := 0; i < len(haystack); i++ {
		ch := haystack[i]
		bonus[i] = bonusStates[bonusIndex[ch]][lastCh]
		lastCh = ch
	}
}

// matchState holds the precomputed, lower-cased needle/haystack plus the
// per-position bonus table the DP recurrence below reads from. This
// mirrors the original's MatchStruct.
type matchState struct {
	needleLen, haystackLen int
	lowerNeedle            []byte
	lowerHaystack          []byte
	bonus                  []Score
}

func newMatchState(needle, haystack string) matchState {
	st := matchState{needleLen: len(needle), haystackLen: len(haystack)}
	if st.haystackLen > kMatchMaxLen || st.needleLen > st.haystackLen {
		return st
	}
	st.lowerNeedle = make([]byte, st.needleLen)
	for i := 0; i < st.needleLen; i++ {
		st.lowerNeedle[i] = toLowerByte(needle[i])
	}
	st.lowerHaystack = make([]byte, st.haystackLen)
	for i := 0; i < st.haystackLen; i++ {
		st.lowerHaystack[i] = toLowerByte(haystack[i])
	}
	st.bonus = make([]Score, st.haystackLen)
	precomputeBonus(haystack, st.bonus)
	return st
}

// matchRow fills in row `row` of the D (best score ending in a match at
// this position) and M (best score overall at this position) matrices,
// given the previous row's D/M values. This is the exact recurrence from
// the original's MatchStruct::matchRow.
func (st *matchState) matchRow(row int, currD, currM, lastD, lastM []Score) {
	prevScore := ScoreMin
	gapScore := scoreGapInner
	if row == st.needleLen-1 {
		gapScore = scoreGapTrailing
	}

	for i := 0; i < st.haystackLen; i++ {
		if st.lowerNeedle[row] == st.lowerHaystack[i] {
			score := ScoreMin
			switch {
			case row == 0:
				score = Score(i)*scoreGapLeading + st.bonus[i]
			case i > 0:
				score = max32(
					lastM[i-1]+st.bonus[i],
					lastD[i-1]+scoreMatchConsecutive,
				)
			}
			currD[i] = score
			prevScore = max32(score, prevScore+gapScore)
			currM[i] = prevScore
		} else {
			currD[i] = ScoreMin
			prevScore = prevScore + gapScore
			currM[i] = prevScore
		}
	}
}

func max32(a, b Score) Score {
	if a > b {
		return a
	}
	return b
}

// ScoreMatch computes the fuzzy match score of needle against haystack.
// The caller must already know needle fuzzy-matches haystack (see
// MatchFuzzy) — ScoreMatch does not re-verify that.
func ScoreMatch(needle, haystack string) Score {
	if len(needle) == 0 {
		return ScoreMin
	}
	if len(haystack) > kMatchMaxLen || len(needle) > len(haystack) {
		return ScoreMin
	}
	if len(needle) == len(haystack) {
		// A haystack already known to fuzzy-match with an equal-length
		// needle can only be an exact match (ignoring case).
		return ScoreMax
	}
	if len(needle) == 1 {
		return scoreSingleChar(needle, haystack)
	}

	st := newMatchState(needle, haystack)

	if simd.TileCount(st.needleLen) > 0 {
		return simd.Score(st.lowerNeedle, st.lowerHaystack, st.bonus, tileConstants)
	}
	return scorePortable(&st)
}

// tileConstants mirrors this file's scoreGap*/scoreMatchConsecutive
// weights for internal/simd's tiled scorer, which cannot import them
// directly without an import cycle.
var tileConstants = simd.Constants{
	GapLeading:       scoreGapLeading,
	GapInner:         scoreGapInner,
	GapTrailing:      scoreGapTrailing,
	MatchConsecutive: scoreMatchConsecutive,
}

// scorePortable is the row-major DP scorer: one full haystack pass per
// needle row, ping-ponging between two rolling D/M rows. internal/simd's
// Score reorders the same recurrence into a haystack-major, needle-row-
// minor walk instead (see its doc comment for why that's safe); this is
// the fallback for needles longer than internal/simd handles, and the
// baseline MatchPositions' full-matrix walk is checked against in tests.
func scorePortable(st *matchState) Score {
	var d, m [2][]Score
	d[0] = make([]Score, st.haystackLen)
	d[1] = make([]Score, st.haystackLen)
	m[0] = make([]Score, st.haystackLen)
	m[1] = make([]Score, st.haystackLen)

	lastD, lastM := d[0], m[0]
	currD, currM := d[1], m[1]

	for i := 0; i < st.needleLen; i++ {
		st.matchRow(i, currD, currM, lastD, lastM)
		currD, lastD = lastD, currD
		currM, lastM = lastM, currM
	}

	return lastM[st.haystackLen-1]
}

// scoreSingleChar is the O(haystack) specialization for a one-character
// needle, avoiding the general DP matrices entirely.
func scoreSingleChar(needle, haystack string) Score {
	if len(haystack) == 0 {
		return ScoreMin
	}
	if len(haystack) == 1 {
		return ScoreMax
	}

	lowerNeedle := toLowerByte(needle[0])
	lastCh := byte('/')
	score := ScoreMin

	ch := haystack[0]
	if lowerNeedle == toLowerByte(ch) {
		score = bonusStates[bonusIndex[ch]][lastCh]
	}
	lastCh = ch

	for i := 1; i < len(haystack); i++ {
		ch = haystack[i]
		score += scoreGapTrailing
		if lowerNeedle == toLowerByte(ch) {
			bonus := bonusStates[bonusIndex[ch]][lastCh]
			if ns := Score(i)*scoreGapLeading + bonus; ns > score {
				score = ns
			}
		}
		lastCh = ch
	}

	return score
}

// MatchPositions computes the fuzzy match score of needle against
// haystack and, if positions is non-nil, fills it with the haystack index
// each needle character matched against (backtracked from the full DP
// matrices). len(positions) must be >= len(needle).
//
// This retains the full D/M matrices (O(needle*haystack) memory) instead
// of the two rolling rows ScoreMatch uses, because backtracking needs
// every row. It is meant for the (rare, user-facing) case of highlighting
// match positions, not the hot scoring path every item goes through.
func MatchPositions(needle, haystack string, positions []int) Score {
	if len(needle) == 0 {
		return ScoreMin
	}

	st := newMatchState(needle, haystack)
	n, h := st.needleLen, st.haystackLen

	if h > kMatchMaxLen || n > h {
		return ScoreMin
	}
	if n == h {
		if positions != nil {
			for i := 0; i < n; i++ {
				positions[i] = i
			}
		}
		return ScoreMax
	}

	d := make([][]Score, n)
	m := make([][]Score, n)
	for i := range d {
		d[i] = make([]Score, h)
		m[i] = make([]Score, h)
	}

	var lastD, lastM []Score
	for i := 0; i < n; i++ {
		st.matchRow(i, d[i], m[i], lastD, lastM)
		lastD, lastM = d[i], m[i]
	}

	if positions != nil {
		matchRequired := false
		j := h - 1
		for i := n - 1; i >= 0; i-- {
			for ; j >= 0; j-- {
				if d[i][j] != ScoreMin && (matchRequired || d[i][j] == m[i][j]) {
					matchRequired = i > 0 && j > 0 && m[i][j] == d[i-1][j-1]+scoreMatchConsecutive
					positions[i] = j
					j--
					break
				}
			}
		}
	}

	return m[n-1][h-1]
}
