// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fzx

import (
	"strings"

	"code.fzxlib.dev/fzx/internal/simd"
)

// fuzzyTileThreshold is the haystack length at or above which MatchFuzzy hands
// off to the tiled scan in internal/simd, mirroring the original's
// matchFuzzy/matchFuzzySSE split (match.cpp) where short haystacks aren't
// worth the wider setup.
const fuzzyTileThreshold = 16

// MatchFuzzy reports whether every byte of needle appears in haystack, in
// order, ASCII case-insensitively. An empty needle always matches.
func MatchFuzzy(needle, haystack string) bool {
	if len(needle) == 0 {
		return true
	}
	if len(haystack) < fuzzyTileThreshold {
		ni := 0
		for hi := 0; hi < len(haystack); hi++ {
			if toLowerByte(needle[ni]) == toLowerByte(haystack[hi]) {
				ni++
				if ni == len(needle) {
					return true
				}
			}
		}
		return false
	}

	lowerNeedle := make([]byte, len(needle))
	for i := 0; i < len(needle); i++ {
		lowerNeedle[i] = toLowerByte(needle[i])
	}
	lowerHaystack := make([]byte, len(haystack))
	for i := 0; i < len(haystack); i++ {
		lowerHaystack[i] = toLowerByte(haystack[i])
	}
	return simd.ContainsFuzzy(lowerNeedle, lowerHaystack)
}

// MatchBegin reports whether haystack starts with needle, ASCII
// case-insensitively.
func MatchBegin(needle, haystack string) bool {
	if len(needle) > len(haystack) {
		return false
	}
	return equalFoldASCII(needle, haystack[:len(needle)])
}

// MatchEnd reports whether haystack ends with needle, ASCII
// case-insensitively.
func MatchEnd(needle, haystack string) bool {
	if len(needle) > len(haystack) {
		return false
	}
	return equalFoldASCII(needle, haystack[len(haystack)-len(needle):])
}

// MatchExact reports whether haystack contains needle as a contiguous
// substring, ASCII case-insensitively.
func MatchExact(needle, haystack string) bool {
	if len(needle) == 0 {
		return true
	}
	if len(needle) > len(haystack) {
		return false
	}
	lowerNeedle := toLowerASCII(needle)
	lowerHaystack := toLowerASCII(haystack)
	return strings.Contains(lowerHaystack, lowerNeedle)
}

// MatchSubstrIndex is like MatchExact but returns the byte offset of the
// first occurrence, or -1 if needle does not occur in haystack.
func MatchSubstrIndex(needle, haystack string) int {
	if len(needle) == 0 {
		return 0
	}
	if len(needle) > len(haystack) {
		return -1
	}
	return strings.Index(toLowerASCII(haystack), toLowerASCII(needle))
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if toLowerByte(a[i]) != toLowerByte(b[i]) {
			return false
		}
	}
	return true
}

func toLowerASCII(s string) string {
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		b[i] = toLowerByte(s[i])
	}
	return string(b)
}
