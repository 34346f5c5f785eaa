// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fzx

import "code.hybscloud.com/atomix"

// ValueTx is a single-producer, single-consumer, wait-free value hand-off.
//
// Three buffers are rotated between a writer index, a reader index, and one
// shared "unused" index. The writer fills WriteBuffer, calls Commit to swap
// it for the unused slot, and the reader calls Load to pick up whichever
// slot was most recently committed, never blocking either side on the
// other. This is the same three-buffer rotation the original's Tx<T>
// template uses (tx.hpp); only the unused-index swap changes, because Go's
// atomics package used throughout this module (code.hybscloud.com/atomix)
// has no native exchange primitive.
//
// code.hybscloud.com/atomix exposes Load/Store/Add/CompareAndSwap with
// explicit ordering, but no Swap/Exchange. The unused-slot handoff below
// emulates one with a CAS-retry loop, exactly the idiom the teacher
// package's own MPMC.Dequeue catchup and SCQ slot-repair logic used for the
// same kind of gap. Because ValueTx only ever has one producer and one
// consumer contending on mUnused, the loop is expected to succeed on its
// first or second attempt.
type ValueTx[T any] struct {
	buffers [3]T
	ticks   [3]uint64

	_ pad

	write uint8 // producer-owned, never touched by the consumer

	_ pad

	read uint8 // consumer-owned, never touched by the producer

	_ pad

	unused atomix.Uint64 // holds the index (0-2) of the slot nobody currently owns
}

// NewValueTx returns a ValueTx with buffer 0 owned by the writer, buffer 1
// owned by the reader, and buffer 2 unused, matching the original's default
// member initializers.
func NewValueTx[T any]() *ValueTx[T] {
	tx := &ValueTx[T]{write: 0, read: 1}
	tx.unused.StoreRelaxed(2)
	return tx
}

// exchangeUnused swaps in newIdx as the unused slot index and returns the
// previous value, emulating atomix's missing exchange primitive via a
// CAS-retry loop that repeats until its compare-and-swap succeeds.
func exchangeUnused(u *atomix.Uint64, newIdx uint8, acquire bool) uint8 {
	for {
		var old uint64
		if acquire {
			old = u.LoadAcquire()
		} else {
			old = u.LoadRelaxed()
		}
		var ok bool
		if acquire {
			ok = u.CompareAndSwapAcqRel(old, uint64(newIdx))
		} else {
			ok = u.CompareAndSwapRelaxed(old, uint64(newIdx))
		}
		if ok {
			return uint8(old)
		}
	}
}

// WriteBuffer returns a pointer to the producer's current buffer. The
// pointer is only valid up to the next Commit call.
func (tx *ValueTx[T]) WriteBuffer() *T {
	return &tx.buffers[tx.write]
}

// Commit publishes the data in WriteBuffer and rotates in a new (possibly
// stale) write buffer for the next round.
func (tx *ValueTx[T]) Commit() {
	tx.ticks[tx.write]++
	tick := tx.ticks[tx.write]
	tx.write = exchangeUnused(&tx.unused, tx.write, true)
	tx.ticks[tx.write] = tick
}

// ReadBuffer returns a pointer to the consumer's current buffer. The
// pointer is only valid up to the next Load call.
func (tx *ValueTx[T]) ReadBuffer() *T {
	return &tx.buffers[tx.read]
}

// Load picks up the most recently committed buffer, if any. It reports
// false (leaving ReadBuffer unchanged) when no new data has been committed
// since the last call.
func (tx *ValueTx[T]) Load() bool {
	tick := tx.ticks[tx.read]
	tx.read = exchangeUnused(&tx.unused, tx.read, true)
	if tx.ticks[tx.read] > tick {
		return true
	}
	tx.read = exchangeUnused(&tx.unused, tx.read, true)
	return tx.ticks[tx.read] > tick
}

// WriteTick returns the tick of the writer's current buffer.
func (tx *ValueTx[T]) WriteTick() uint64 {
	return tx.ticks[tx.write]
}

// ReadTick returns the tick of the reader's current buffer.
func (tx *ValueTx[T]) ReadTick() uint64 {
	return tx.ticks[tx.read]
}
