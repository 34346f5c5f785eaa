// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fzx_test

import (
	"testing"
	"time"

	"code.fzxlib.dev/fzx"
)

func TestEventsGetNoPost(t *testing.T) {
	ev := fzx.NewEvents()
	if got := ev.Get(); got != 0 {
		t.Fatalf("Get() = %#x, want 0", got)
	}
}

func TestEventsPostThenGet(t *testing.T) {
	ev := fzx.NewEvents()
	ev.Post(0x1)
	ev.Post(0x4)
	if got, want := ev.Get(), uint32(0x5); got != want {
		t.Fatalf("Get() = %#x, want %#x", got, want)
	}
	// Consumed: nothing left.
	if got := ev.Get(); got != 0 {
		t.Fatalf("Get() after consuming = %#x, want 0", got)
	}
}

func TestEventsWaitWakesOnPost(t *testing.T) {
	ev := fzx.NewEvents()
	woke := make(chan uint32, 1)

	go func() {
		woke <- ev.Wait()
	}()

	// Give the waiter a moment to actually park before posting.
	time.Sleep(10 * time.Millisecond)
	ev.Post(0x2)

	select {
	case got := <-woke:
		if got != 0x2 {
			t.Fatalf("Wait() = %#x, want %#x", got, 0x2)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout: Wait() never returned after Post")
	}
}

func TestEventsWaitReturnsImmediatelyIfAlreadyPosted(t *testing.T) {
	ev := fzx.NewEvents()
	ev.Post(0x8)

	done := make(chan uint32, 1)
	go func() { done <- ev.Wait() }()

	select {
	case got := <-done:
		if got != 0x8 {
			t.Fatalf("Wait() = %#x, want %#x", got, 0x8)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout: Wait() should not block when events are already pending")
	}
}
