// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fzx_test

import (
	"testing"
	"time"

	"code.hybscloud.com/iox"

	"code.fzxlib.dev/fzx"
)

func TestValueTxLoadBeforeAnyCommit(t *testing.T) {
	tx := fzx.NewValueTx[int]()
	if tx.Load() {
		t.Fatalf("Load() = true before any Commit, want false")
	}
}

func TestValueTxCommitThenLoad(t *testing.T) {
	tx := fzx.NewValueTx[string]()
	*tx.WriteBuffer() = "hello"
	tx.Commit()

	if !tx.Load() {
		t.Fatalf("Load() = false after Commit, want true")
	}
	if got, want := *tx.ReadBuffer(), "hello"; got != want {
		t.Fatalf("ReadBuffer() = %q, want %q", got, want)
	}

	// No new commit since the last Load: nothing new to see.
	if tx.Load() {
		t.Fatalf("Load() = true with no new Commit, want false")
	}
}

func TestValueTxMultipleCommitsLatestWins(t *testing.T) {
	tx := fzx.NewValueTx[int]()
	for i := 1; i <= 3; i++ {
		*tx.WriteBuffer() = i
		tx.Commit()
	}
	if !tx.Load() {
		t.Fatalf("Load() = false, want true")
	}
	if got, want := *tx.ReadBuffer(), 3; got != want {
		t.Fatalf("ReadBuffer() = %d, want %d", got, want)
	}
}

func TestValueTxConcurrentProducerConsumer(t *testing.T) {
	if fzx.RaceEnabled {
		t.Skip("skip: lock-free algorithm uses cross-variable memory ordering")
	}

	tx := fzx.NewValueTx[int]()
	const n = 10000
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i := 1; i <= n; i++ {
			*tx.WriteBuffer() = i
			tx.Commit()
		}
	}()

	var backoff iox.Backoff
	last := 0
	deadline := time.Now().Add(5 * time.Second)
	for last < n {
		if tx.Load() {
			v := *tx.ReadBuffer()
			if v < last {
				t.Fatalf("saw value %d after %d: results went backward", v, last)
			}
			last = v
			backoff.Reset()
		} else {
			if time.Now().After(deadline) {
				t.Fatalf("timeout waiting to observe final value %d, last seen %d", n, last)
			}
			backoff.Wait()
		}
	}
	<-done
}
