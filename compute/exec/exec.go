// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package exec provides the launch machinery shared by the quiver kernels:
// block-parallel scheduling over row spans, validity-bitmap aggregation with
// a global valid counter, and typed views over column buffers.
package exec

import (
	"encoding/binary"
	"math/bits"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/apache/arrow-go/v18/arrow/memory"
)

// DefaultBlockSize is the number of rows a block claims per scheduling step.
// Must be a multiple of 32 so validity words never straddle blocks.
const DefaultBlockSize = 256

// Ctx carries the allocator and launch shape for one kernel invocation.
// The zero value is usable and falls back to the defaults.
type Ctx struct {
	Mem memory.Allocator

	// NumBlocks is the number of concurrent blocks (goroutines) per launch.
	// Zero means GOMAXPROCS.
	NumBlocks int

	// BlockSize is the number of rows per scheduling span. Rounded down to a
	// multiple of 32; values below 32 fall back to DefaultBlockSize.
	BlockSize int
}

func (c *Ctx) Allocator() memory.Allocator {
	if c.Mem == nil {
		return memory.DefaultAllocator
	}
	return c.Mem
}

func (c *Ctx) Allocate(nbytes int) *memory.Buffer {
	buf := memory.NewResizableBuffer(c.Allocator())
	buf.Resize(nbytes)
	return buf
}

// AllocateBitmap allocates a validity bitmap for nbits rows, sized up to
// whole 32-bit words so every validity word is written with one aligned
// store and is owned by exactly one block.
func (c *Ctx) AllocateBitmap(nbits int) *memory.Buffer {
	nwords := (nbits + 31) / 32
	return c.Allocate(nwords * 4)
}

func (c *Ctx) blocks() int {
	if c.NumBlocks > 0 {
		return c.NumBlocks
	}
	return runtime.GOMAXPROCS(0)
}

func (c *Ctx) spanRows() int {
	if c.BlockSize >= 32 {
		return c.BlockSize &^ 31
	}
	return DefaultBlockSize
}

// Run launches body over n rows in a grid-stride pattern: block b processes
// spans b, b+blocks, b+2*blocks, ... of BlockSize rows each, so a fixed
// number of blocks covers inputs of any length. Each row is visited exactly
// once. Inputs that fit in a single span run inline on the caller.
func (c *Ctx) Run(n int, body func(begin, end int)) {
	if n == 0 {
		return
	}
	span := c.spanRows()
	nspans := (n + span - 1) / span
	blocks := min(c.blocks(), nspans)
	if blocks <= 1 {
		body(0, n)
		return
	}

	var wg sync.WaitGroup
	for b := 0; b < blocks; b++ {
		wg.Add(1)
		go func(b int) {
			defer wg.Done()
			for s := b; s < nspans; s += blocks {
				begin := s * span
				body(begin, min(begin+span, n))
			}
		}(b)
	}
	wg.Wait()
}

// RunValidity launches vote over n rows like Run, additionally assembling
// the output validity bitmap and the global valid count. vote returns the
// validity bits for rows [begin, end) with bit k describing row begin+k;
// each 32-row word is voted and written by exactly one block, so there is
// no read-modify-write on shared bitmap words. Block-local popcounts are
// folded into the global counter only after the block has finished all its
// spans. Returns the final count of valid rows once every block completes;
// bitmap must hold at least BytesForBits(n) rounded up to whole words (see
// AllocateBitmap).
func (c *Ctx) RunValidity(n int, bitmap []byte, vote func(begin, end int) uint32) int64 {
	if n == 0 {
		return 0
	}
	nwords := (n + 31) / 32
	spanWords := c.spanRows() / 32
	nspans := (nwords + spanWords - 1) / spanWords
	blocks := min(c.blocks(), nspans)

	var total int64
	runBlock := func(b int) {
		var local int64
		for s := b; s < nspans; s += blocks {
			last := min((s+1)*spanWords, nwords)
			for w := s * spanWords; w < last; w++ {
				begin := w * 32
				end := min(begin+32, n)
				word := vote(begin, end)
				if end-begin < 32 {
					// padding bits past the last row stay clear
					word &= 1<<uint(end-begin) - 1
				}
				binary.LittleEndian.PutUint32(bitmap[w*4:], word)
				local += int64(bits.OnesCount32(word))
			}
		}
		atomic.AddInt64(&total, local)
	}

	if blocks <= 1 {
		runBlock(0)
		return total
	}

	var wg sync.WaitGroup
	for b := 0; b < blocks; b++ {
		wg.Add(1)
		go func(b int) {
			defer wg.Done()
			runBlock(b)
		}(b)
	}
	wg.Wait()
	return atomic.LoadInt64(&total)
}
