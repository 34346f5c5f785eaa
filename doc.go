// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fzx provides a concurrent fuzzy-matching engine core.
//
// It is built around six pieces: a push-only Items vector, a triple-buffered
// ValueTx value hand-off, an Events multi-flag wait/post primitive, an ASCII
// fuzzy Matcher/Scorer, a Worker goroutine pool that matches and merges
// results, and an Engine facade tying all of it together.
//
// # Quick Start
//
//	e := fzx.NewEngine()
//	e.SetCallback(func() {
//	    // called from a worker goroutine whenever fresh results are ready
//	})
//	if err := e.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer e.Stop()
//
//	e.PushItem("src/fzx/engine.go")
//	e.PushItem("src/fzx/worker.go")
//	e.SetQuery("engine")
//	e.Commit()
//
//	backoff := iox.Backoff{}
//	for !e.LoadResults() {
//	    backoff.Wait()
//	}
//	for i := 0; i < e.ResultsSize(); i++ {
//	    r := e.GetResult(i)
//	    fmt.Println(r.Line, r.Score)
//	}
//
// # Concurrency model
//
// Exactly one goroutine — the engine's owner — calls the Engine's methods:
// PushItem, SetQuery, Commit, Start, Stop, and SetThreads, and the read
// accessors (LoadResults, ResultsSize, GetResult, Query, Processing,
// Progress) alike. LoadResults advances the single consumer side of the
// master worker's ValueTx, and the other accessors read that buffer and the
// owner's live Items without further locking, so none of them may run
// concurrently with each other or with the owner's writes. The Callback
// fires from worker goroutines.
//
// Internally, each worker goroutine runs its own state machine driven by
// [Events], reserves chunks of items from a shared atomic counter, matches
// and scores its chunk, and merges its sorted results with its siblings
// along a fixed binomial tree until worker 0 holds the full, globally
// sorted result set and invokes the user's callback.
//
// # Error handling
//
// PushItem returns ErrCapacity rather than panicking when an item or the
// item count exceeds a hard limit — see errors.go. Start and SetThreads
// return ErrInvalidState for logic violations (starting twice,
// reconfiguring the thread count while running) instead of silently
// no-oping. A *WorkerAbortedError surfaces from Engine.Err if a worker
// goroutine terminates after an internal failure; once that happens the
// engine's output is frozen.
//
// # Race detection
//
// Go's race detector cannot observe the acquire/release ordering that
// ValueTx, Events and the reservation counter establish through
// code.hybscloud.com/atomix — it only tracks mutexes, channels, and
// WaitGroups. Concurrency tests that would trip false positives for this
// reason skip themselves when RaceEnabled is true, matching the same caveat the
// underlying atomics ecosystem already documents for its own lock-free
// algorithms.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for every atomic field
// with explicit memory ordering, [code.hybscloud.com/spin] for the
// bounded pre-sleep retry in the worker merge step, and
// [code.hybscloud.com/iox] for semantic error classification and the
// adaptive backoff helper used by Engine.AwaitResults.
package fzx
