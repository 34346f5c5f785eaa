// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fzx

import (
	"fmt"
	"sort"
	"sync"

	"code.hybscloud.com/spin"
)

// Worker event flags, posted through an Events value to wake a worker
// goroutine up and tell it what changed. Direct port of the original's
// Worker::Event enum (worker.hpp).
const (
	eventStop  uint32 = 1 << 0
	eventJob   uint32 = 1 << 1
	eventMerge uint32 = 1 << 2
)

// worker is one scoring goroutine. index 0 is the master: once every other
// worker's results have percolated up through the binomial merge tree,
// index 0 is the one that invokes the engine's callback.
type worker struct {
	output *ValueTx[workerResults]
	events *Events
	engine *Engine
	index  uint8

	errMu   sync.Mutex
	errMsg  string
	errored bool
}

func newWorker(index uint8, engine *Engine) *worker {
	return &worker{
		output: NewValueTx[workerResults](),
		events: NewEvents(),
		engine: engine,
		index:  index,
	}
}

// aborted reports whether this worker hit an unrecoverable error, and if
// so, what it was.
func (w *worker) aborted() (string, bool) {
	w.errMu.Lock()
	defer w.errMu.Unlock()
	return w.errMsg, w.errored
}

func (w *worker) setAborted(msg string) {
	w.errMu.Lock()
	defer w.errMu.Unlock()
	w.errored = true
	w.errMsg = msg
}

// run is the worker goroutine's whole lifetime. It is a direct,
// label-for-label port of the original's Worker::run (worker.cpp): wait for
// events, load a new job if one arrived, reserve and score chunks of items
// against the query, sort the local batch, then merge in whatever children
// this worker owns in the binomial merge tree before publishing upward.
// goto is used here, rather than restructured loops, because it is the
// clearest possible mapping of the five-entry-point state machine the
// original expresses with labels — rewriting it as nested loops obscures
// exactly which state is being resumed from where.
func (w *worker) run() {
	defer w.engine.wg.Done()
	defer w.recoverPanic()

	var job jobState
	var lastItemsTick, lastQueryTick uint64
	var tmp []MatchedItem

	parentIndex := kParentMap[w.index]
	merge := newMergeState(w.index, len(w.engine.workers))
	published := false

	publish := func() {
		if published {
			return
		}
		published = true
		w.output.Commit()
		if w.index == 0 {
			w.engine.notify()
		} else {
			w.engine.workers[parentIndex].events.Post(eventMerge)
		}
	}

	loadJob := func() bool {
		changed := false
		job = w.engine.loadJob()
		if itemsSize := uint64(job.items.Size()); lastItemsTick < itemsSize {
			lastItemsTick = itemsSize
			changed = true
		}
		if lastQueryTick < job.queryTick {
			lastQueryTick = job.queryTick
			changed = true
		}
		return changed
	}

	var ev uint32
	var out *workerResults

wait:
	ev = w.events.Wait()
	if ev&eventStop != 0 {
		return
	}

	if ev&eventJob != 0 && loadJob() {
	match:
		published = false
		merge.reset()

		out = w.output.WriteBuffer()
		out.itemsTick = uint64(job.items.Size())
		out.queryTick = job.queryTick
		out.query = job.query
		out.hasQuery = job.hasQuery
		out.items = out.items[:0]

		if !job.hasQuery || job.query == "" {
			publish()
			goto wait
		}

		for {
			start, end := job.queue.take(kChunkSize)
			if start >= end {
				break
			}
			w.scoreRange(&job, out, start, end)

			ev = w.events.Get()
			if ev&eventStop != 0 {
				return
			}
			if ev&eventJob != 0 && loadJob() {
				goto match
			}
		}

		sort.Slice(out.items, func(i, j int) bool { return out.items[i].Less(out.items[j]) })
	}

	if !merge.done() {
		out = w.output.WriteBuffer()
		for i := uint8(0); i < merge.size(); i++ {
			if merge.contains(i) {
				continue
			}
			id := merge.at(i)
			child := w.engine.workers[id]
			if !child.output.Load() {
				waiter := spin.Wait{}
				for attempt := 0; attempt < kMergeSpinAttempts && !child.output.Load(); attempt++ {
					waiter.Once()
				}
			}
			cres := child.output.ReadBuffer()

			if cres.newerThan(out) {
				goto wait
			}
			if !cres.sameTick(out) {
				continue
			}
			if len(cres.items) > 0 {
				merge2(&tmp, out.items, cres.items)
				tmp, out.items = out.items, tmp
			}
			merge.set(i)
		}
		if !merge.done() {
			goto wait
		}
	}

	publish()
	goto wait
}

// scoreRange matches and scores items[start:end] against the active
// query, appending survivors to out.items. The dispatch between the
// generic row-major scorer, the single-character fast path and
// internal/simd's tiled scorer all happens inside ScoreMatch by needle
// length, the same way the original picks between score(), score1() and
// scoreSSE<N>(); MatchFuzzy similarly hands long haystacks off to
// internal/simd's fuzzy-subsequence scan.
func (w *worker) scoreRange(job *jobState, out *workerResults, start, end uint64) {
	for i := start; i < end; i++ {
		item := job.items.At(int(i))
		if !MatchFuzzy(job.query, item) {
			continue
		}
		s := ScoreMatch(job.query, item)
		out.items = append(out.items, NewMatchedItem(uint32(i), s))
	}
}

// recoverPanic turns a panic inside run into a recorded WorkerAbortedError
// and still notifies the callback, so a caller blocked in AwaitResults (or
// polling LoadResults) isn't left hanging. This is the Go idiom for the
// original's try/catch around Worker::run, which records the error message
// and still invokes the callback from its catch block.
func (w *worker) recoverPanic() {
	r := recover()
	if r == nil {
		return
	}
	w.setAborted(fmt.Sprint(r))
	w.engine.notify()
}
