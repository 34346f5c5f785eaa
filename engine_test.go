// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fzx_test

import (
	"testing"
	"time"

	"code.fzxlib.dev/fzx"
)

func newTestEngine(t *testing.T, threads int) *fzx.Engine {
	t.Helper()
	e := fzx.NewEngine()
	if err := e.SetThreads(threads); err != nil {
		t.Fatalf("SetThreads(%d): %v", threads, err)
	}
	e.SetCallback(func() {})
	if err := e.Start(); err != nil {
		t.Fatalf("Start(): %v", err)
	}
	t.Cleanup(e.Stop)
	return e
}

func pushAll(t *testing.T, e *fzx.Engine, items []string) {
	t.Helper()
	for _, s := range items {
		if err := e.PushItem(s); err != nil {
			t.Fatalf("PushItem(%q): %v", s, err)
		}
	}
}

func TestEngineNoQueryReturnsAllItems(t *testing.T) {
	e := newTestEngine(t, 2)
	pushAll(t, e, []string{"one", "two", "three"})
	e.Commit()

	if got, want := e.ResultsSize(), 3; got != want {
		t.Fatalf("ResultsSize() = %d, want %d", got, want)
	}
	for i, want := range []string{"one", "two", "three"} {
		if got := e.GetResult(i).Line; got != want {
			t.Fatalf("GetResult(%d).Line = %q, want %q", i, got, want)
		}
	}
}

func TestEngineQueryFiltersAndRanks(t *testing.T) {
	e := newTestEngine(t, 4)
	pushAll(t, e, []string{
		"app/models/user.rb",
		"app/models/order.rb",
		"README.md",
		"app/controllers/users_controller.rb",
	})
	e.SetQuery("usr")
	e.Commit()

	if !e.AwaitResults(nil) {
		t.Fatalf("AwaitResults returned false")
	}

	n := e.ResultsSize()
	if n == 0 {
		t.Fatalf("ResultsSize() = 0, want at least one match for %q", "usr")
	}
	for i := 0; i < n; i++ {
		line := e.GetResult(i).Line
		if !fzx.MatchFuzzy("usr", line) {
			t.Fatalf("GetResult(%d).Line = %q does not fuzzy-match the query", i, line)
		}
	}
	for i := 1; i < n; i++ {
		if e.GetResult(i).Score > e.GetResult(i-1).Score {
			t.Fatalf("results not sorted best-first: item %d scores higher than item %d", i, i-1)
		}
	}
}

func TestEngineCommitRequiredToPublish(t *testing.T) {
	e := newTestEngine(t, 2)
	pushAll(t, e, []string{"alpha", "beta"})
	e.SetQuery("al")
	// Deliberately not calling Commit: SetQuery alone must not publish,
	// so results still reflect the unfiltered item set.
	if got, want := e.ResultsSize(), 2; got != want {
		t.Fatalf("ResultsSize() before Commit = %d, want %d (SetQuery must not auto-publish)", got, want)
	}
}

func TestEngineAwaitResultsTimesOutOnStop(t *testing.T) {
	e := newTestEngine(t, 1)
	pushAll(t, e, []string{"one"})

	stop := make(chan struct{})
	done := make(chan bool, 1)
	go func() { done <- e.AwaitResults(stop) }()

	// No query committed, so the master worker never publishes fresh
	// results beyond what's already loaded; closing stop must still
	// unblock AwaitResults.
	time.Sleep(20 * time.Millisecond)
	close(stop)

	select {
	case got := <-done:
		if got {
			t.Fatalf("AwaitResults = true, want false (no results were ever published)")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout: AwaitResults did not return after stop was closed")
	}
}

func TestEngineErrNilWhenHealthy(t *testing.T) {
	e := newTestEngine(t, 2)
	pushAll(t, e, []string{"one", "two"})
	e.Commit()
	if err := e.Err(); err != nil {
		t.Fatalf("Err() = %v, want nil", err)
	}
}

func TestEngineStartTwiceReturnsInvalidState(t *testing.T) {
	e := newTestEngine(t, 2)
	if err := e.Start(); !fzx.IsInvalidState(err) {
		t.Fatalf("second Start() = %v, want ErrInvalidState", err)
	}
}

func TestEngineSetThreadsWhileRunningReturnsInvalidState(t *testing.T) {
	e := newTestEngine(t, 2)
	if err := e.SetThreads(4); !fzx.IsInvalidState(err) {
		t.Fatalf("SetThreads() while running = %v, want ErrInvalidState", err)
	}
}
