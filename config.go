// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fzx

// kChunkSize is how many items a worker reserves at once from the shared
// work queue. Higher values risk uneven splits across workers; lower values
// synchronize workers more often and cost more L1 cache misses.
const kChunkSize = 0x4000

// kMaxThreads is the hard limit on worker goroutines. The binomial merge
// tree in job.go is precomputed for exactly this many lanes.
const kMaxThreads = 64

// kCacheLine is the assumed CPU cache line size, used to pad hot fields
// that are written by different goroutines to avoid false sharing.
const kCacheLine = 64

// kOveralloc is how many extra bytes item storage keeps allocated past the
// logical end. Nothing reads these bytes today: internal/simd scans
// lower-cased copies of each item, never the arena itself.
const kOveralloc = 64

// kItemAlign is the item alignment inside the byte arena.
const kItemAlign = 16

// kItemOffsetMask is 38 bits of offset, giving 256GB of addressable item
// storage before a new backing array must be allocated with no compaction.
const kItemOffsetMask = 0x3FFFFFFFFF

// kItemSizeMask is 25 bits of size, i.e. a 32MB cap on any single item.
const kItemSizeMask = 0x1FFFFFF

// kItemSizeShift is where the size field begins within a packed offset word.
const kItemSizeShift = 38

// kMatchMaxLen is the longest haystack the scorer will consider. Anything
// longer is still a valid match but scores as ScoreMin, ranking it below
// every reasonably sized candidate instead of rejecting it outright.
const kMatchMaxLen = 1024

// kMergeSpinAttempts bounds how many times a worker re-polls a child's
// ValueTx in the merge step before giving up and returning to Events.wait.
// Past this many attempts the child is treated as genuinely not ready yet
// rather than "about to be done".
const kMergeSpinAttempts = 32

// pad is cache line padding to prevent false sharing between hot fields
// written by different goroutines, the same device the teacher package
// uses around its queue head/tail/threshold fields.
type pad [kCacheLine]byte
