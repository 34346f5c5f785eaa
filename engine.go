// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fzx

import (
	"runtime"
	"sync"

	"code.hybscloud.com/iox"
)

// Callback is invoked whenever new results for the most recent committed
// query become available. It may be called concurrently with itself from
// different worker goroutines and must not block.
type Callback func()

// Engine is a concurrent fuzzy-matching search core: push items into it,
// set and commit a query, and a pool of worker goroutines scores every
// item against that query in parallel, merging their results through a
// binomial tree into a single sorted result set. This is the Go rendition
// of the original's Fzx facade (fzx.hpp/fzx.cpp).
//
// Engine must be started with Start before PushItem/SetQuery/Commit are
// called, and stopped with Stop to join its worker goroutines. All
// exported methods are safe to call from a single "main" goroutine
// concurrently with the Callback firing from worker goroutines; Engine
// does not support multiple concurrent writers.
type Engine struct {
	items    Items
	query    string
	hasQuery bool

	jobMu sync.RWMutex
	job   jobState

	workers  []*worker
	wg       sync.WaitGroup
	callback Callback

	threads int
	running bool
}

// NewEngine returns a ready-to-configure Engine defaulting to
// runtime.NumCPU() worker goroutines.
func NewEngine() *Engine {
	e := &Engine{}
	_ = e.SetThreads(runtime.NumCPU()) // e.running is always false here
	return e
}

// SetCallback sets the function invoked when new results become
// available. Must be called before Start.
func (e *Engine) SetCallback(cb Callback) {
	e.callback = cb
}

// SetThreads bounds the worker pool size to [1, kMaxThreads]. Must be
// called before Start; returns ErrInvalidState if the engine is already
// running rather than silently reconfiguring a live worker pool.
func (e *Engine) SetThreads(threads int) error {
	if e.running {
		return ErrInvalidState
	}
	if threads < 1 {
		threads = 1
	}
	if threads > kMaxThreads {
		threads = kMaxThreads
	}
	e.threads = threads
	return nil
}

// Start spawns the worker pool. It returns ErrInvalidState if the engine
// is already running.
func (e *Engine) Start() error {
	if e.running {
		return ErrInvalidState
	}
	e.running = true

	e.workers = make([]*worker, e.threads)
	for i := range e.workers {
		e.workers[i] = newWorker(uint8(i), e)
	}
	e.wg.Add(len(e.workers))
	for _, w := range e.workers {
		go w.run()
	}
	return nil
}

// Stop signals every worker goroutine to exit and waits for them to do so.
// It is a no-op if not running. This is the Go rendition of the original's
// Fzx::stop, which posts kStop to every worker and then joins each
// std::thread in turn; a sync.WaitGroup plays the role of thread join here.
func (e *Engine) Stop() {
	if !e.running {
		return
	}
	e.running = false

	for _, w := range e.workers {
		w.events.Post(eventStop)
	}
	e.wg.Wait()
	e.workers = nil
}

// PushItem appends s to the list of items to search. It does not take
// effect until the next Commit.
func (e *Engine) PushItem(s string) error {
	return e.items.Push(s)
}

// ItemsSize returns how many items have been pushed.
func (e *Engine) ItemsSize() int {
	return e.items.Size()
}

// GetItem returns the i'th pushed item.
func (e *Engine) GetItem(i int) string {
	return e.items.At(i)
}

// SetQuery sets the active query text. Unlike the original this does not
// implicitly commit: callers must call Commit afterward to publish the new
// query (and any items pushed since the last commit) to the worker pool.
// This split is deliberate — see the design notes — so that a caller
// pushing a batch of items and setting a query in the same tick doesn't
// wake workers up twice.
func (e *Engine) SetQuery(query string) {
	e.query = query
	e.hasQuery = query != ""
}

// Commit publishes the current item set and query to the worker pool and
// wakes every worker goroutine up to process them.
func (e *Engine) Commit() {
	queryChanged := e.job.query != e.query || e.job.hasQuery != e.hasQuery
	itemsChanged := e.job.items.Size() != e.items.Size()
	if !queryChanged && !itemsChanged {
		return
	}

	queueChanged := queryChanged || (itemsChanged && e.hasQuery)

	e.jobMu.Lock()
	if itemsChanged {
		e.job.items = e.items
	}
	if queueChanged {
		if e.hasQuery {
			e.job.queue = &reservationCounter{}
			e.job.queue.reset(uint64(e.items.Size()))
		} else {
			e.job.queue = nil
		}
	}
	if queryChanged {
		e.job.queryTick++
		e.job.query = e.query
		e.job.hasQuery = e.hasQuery
	}
	e.jobMu.Unlock()

	for _, w := range e.workers {
		w.events.Post(eventJob)
	}
}

// loadJob returns a snapshot of the current job. Called only from worker
// goroutines.
func (e *Engine) loadJob() jobState {
	e.jobMu.RLock()
	defer e.jobMu.RUnlock()
	return e.job
}

func (e *Engine) notify() {
	if e.callback != nil {
		e.callback()
	}
}

func (e *Engine) masterWorker() *worker {
	if len(e.workers) == 0 {
		return nil
	}
	return e.workers[0]
}

func (e *Engine) results() *workerResults {
	master := e.masterWorker()
	if master == nil {
		return nil
	}
	return master.output.ReadBuffer()
}

// LoadResults picks up the most recently published result set, if any has
// been committed since the last call. Call this before ResultsSize/
// GetResult/Query to see a consistent snapshot.
func (e *Engine) LoadResults() bool {
	master := e.masterWorker()
	if master == nil {
		return false
	}
	return master.output.Load()
}

// ResultsSize returns how many results are available: the matched subset
// if a query is active, or the full item count otherwise.
func (e *Engine) ResultsSize() int {
	if res := e.results(); res != nil && res.hasQuery {
		return len(res.items)
	}
	return e.items.Size()
}

// GetResult returns the i'th result, ranked best match first.
func (e *Engine) GetResult(i int) Result {
	if res := e.results(); res != nil && res.hasQuery {
		if i < 0 || i >= len(res.items) {
			return Result{}
		}
		m := res.items[i]
		return Result{Line: e.items.At(int(m.Index())), Index: m.Index(), Score: m.Score() * ScoreMultiplier}
	}
	if i < 0 || i >= e.items.Size() {
		return Result{}
	}
	return Result{Line: e.items.At(i), Index: uint32(i)}
}

// Query returns the query the currently loaded results were computed
// against, which may lag behind a query set with SetQuery but not yet
// reflected in results.
func (e *Engine) Query() string {
	if res := e.results(); res != nil && res.hasQuery {
		return res.query
	}
	return ""
}

// Processing reports whether a query is set and the currently loaded
// results are stale with respect to the live item set and query. It always
// reports false while no query is set, even if the loaded results were
// computed for an earlier query.
func (e *Engine) Processing() bool {
	if !e.hasQuery {
		return false
	}
	res := e.results()
	if res == nil {
		return false
	}
	return uint64(e.items.Size()) != res.itemsTick || e.query != res.query || e.hasQuery != res.hasQuery
}

// Progress returns an estimate, in [0, 1], of how much of the active job
// has been claimed by some worker for scoring. It updates independently of
// LoadResults and does not account for the final sort/merge step.
func (e *Engine) Progress() float64 {
	e.jobMu.RLock()
	queue := e.job.queue
	total := e.items.Size()
	e.jobMu.RUnlock()

	if queue == nil {
		return 1.0
	}
	processed := queue.get()
	if total == 0 {
		return 1.0
	}
	if processed > uint64(total) {
		processed = uint64(total)
	}
	return float64(processed) / float64(total)
}

// Synchronized reports whether the currently loaded results already
// reflect the live item set and query. Prefer Processing for anything but
// tests and benchmarks.
func (e *Engine) Synchronized() bool {
	res := e.results()
	if res == nil {
		return true
	}
	return uint64(e.items.Size()) == res.itemsTick && e.query == res.query && e.hasQuery == res.hasQuery
}

// Err returns the first worker abort recorded since Start, or nil if every
// worker goroutine is still healthy. Once a worker aborts its output is
// frozen: the engine keeps serving whatever results were last published,
// but will never publish new ones.
func (e *Engine) Err() error {
	for _, w := range e.workers {
		if msg, aborted := w.aborted(); aborted {
			return &WorkerAbortedError{Worker: int(w.index), Message: msg}
		}
	}
	return nil
}

// AwaitResults blocks, spinning then sleeping via iox.Backoff, until
// LoadResults reports fresh results or stop reports true. This is an
// addition over the original (which only ever drives loadResults from an
// external event loop's callback) for callers that would rather block a
// goroutine than wire up a callback.
func (e *Engine) AwaitResults(stop <-chan struct{}) bool {
	var backoff iox.Backoff
	for {
		if e.LoadResults() {
			return true
		}
		select {
		case <-stop:
			return false
		default:
		}
		backoff.Wait()
	}
}
