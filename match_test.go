// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fzx_test

import (
	"strings"
	"testing"

	"code.fzxlib.dev/fzx"
)

func TestMatchFuzzy(t *testing.T) {
	cases := []struct {
		needle, haystack string
		want             bool
	}{
		{"", "anything", true},
		{"abc", "abc", true},
		{"abc", "a1b2c3", true},
		{"abc", "ABC", true},
		{"abc", "acb", false},
		{"abc", "ab", false},
		{"xyz", "", false},
		{"needle", strings.Repeat("haystack ", 10) + "needle at the end", true},
	}
	for _, c := range cases {
		if got := fzx.MatchFuzzy(c.needle, c.haystack); got != c.want {
			t.Fatalf("MatchFuzzy(%q, %q) = %v, want %v", c.needle, c.haystack, got, c.want)
		}
	}
}

func TestMatchFuzzyLongHaystackTiledPath(t *testing.T) {
	// Longer than fuzzyTileThreshold, exercising internal/simd.ContainsFuzzy.
	haystack := strings.Repeat("x", 40) + "needle" + strings.Repeat("y", 40)
	if !fzx.MatchFuzzy("needle", haystack) {
		t.Fatalf("MatchFuzzy(%q, long haystack) = false, want true", "needle")
	}
	if fzx.MatchFuzzy("missing", haystack) {
		t.Fatalf("MatchFuzzy(%q, long haystack) = true, want false", "missing")
	}
}

func TestMatchBeginEndExact(t *testing.T) {
	if !fzx.MatchBegin("Hell", "hello world") {
		t.Fatalf("MatchBegin should match case-insensitively at the start")
	}
	if fzx.MatchBegin("world", "hello world") {
		t.Fatalf("MatchBegin should not match in the middle")
	}
	if !fzx.MatchEnd("WORLD", "hello world") {
		t.Fatalf("MatchEnd should match case-insensitively at the end")
	}
	if fzx.MatchEnd("hello", "hello world") {
		t.Fatalf("MatchEnd should not match at the start")
	}
	if !fzx.MatchExact("LO WOR", "hello world") {
		t.Fatalf("MatchExact should match a case-insensitive substring")
	}
	if fzx.MatchExact("zz", "hello world") {
		t.Fatalf("MatchExact should not match an absent substring")
	}
}

func TestMatchSubstrIndex(t *testing.T) {
	if got, want := fzx.MatchSubstrIndex("world", "hello world"), 6; got != want {
		t.Fatalf("MatchSubstrIndex = %d, want %d", got, want)
	}
	if got, want := fzx.MatchSubstrIndex("zz", "hello world"), -1; got != want {
		t.Fatalf("MatchSubstrIndex = %d, want %d", got, want)
	}
	if got, want := fzx.MatchSubstrIndex("", "hello"), 0; got != want {
		t.Fatalf("MatchSubstrIndex(empty) = %d, want %d", got, want)
	}
}
