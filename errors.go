// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fzx

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrCapacity indicates an operation could not proceed because a hard
// capacity limit was reached: an item larger than kItemSizeMask bytes, or
// more items than kItemOffsetMask allows.
var ErrCapacity = errors.New("fzx: capacity exceeded")

// ErrInvalidState indicates the caller used the engine facade out of
// order: starting twice, or reconfiguring thread count while running.
// Engine.GetResult does not return it; an out-of-range index yields a zero
// Result instead.
var ErrInvalidState = errors.New("fzx: invalid state")

// WorkerAbortedError reports that a worker goroutine terminated after an
// internal failure (a panic recovered at the goroutine boundary). It
// carries the worker index and the recovered message, mirroring the
// original implementation's per-worker error message buffer.
type WorkerAbortedError struct {
	Worker  int
	Message string
}

func (e *WorkerAbortedError) Error() string {
	return fmt.Sprintf("fzx: worker %d aborted: %s", e.Worker, e.Message)
}

// IsCapacity reports whether err is (or wraps) ErrCapacity.
func IsCapacity(err error) bool {
	return errors.Is(err, ErrCapacity)
}

// IsInvalidState reports whether err is (or wraps) ErrInvalidState.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

// IsWorkerAborted reports whether err is (or wraps) a *WorkerAbortedError.
func IsWorkerAborted(err error) bool {
	var target *WorkerAbortedError
	return errors.As(err, &target)
}

// IsWouldBlock reports whether err indicates a non-blocking call has
// nothing to do right now. No call in this package returns such an error
// (LoadResults and AwaitResults report with a bool); this delegates to
// [iox.IsWouldBlock] for ecosystem consistency.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal, not a failure.
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}
