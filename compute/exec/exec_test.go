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

package exec_test

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/bitutil"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quiverdb/quiver/compute/exec"
)

func TestRunCoversEveryRowOnce(t *testing.T) {
	for _, n := range []int{1, 31, 32, 255, 256, 257, 4096, 100003} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			ectx := &exec.Ctx{NumBlocks: 8, BlockSize: 64}
			visits := make([]int32, n)
			ectx.Run(n, func(begin, end int) {
				for i := begin; i < end; i++ {
					atomic.AddInt32(&visits[i], 1)
				}
			})
			for i, v := range visits {
				if v != 1 {
					t.Fatalf("row %d visited %d times", i, v)
				}
			}
		})
	}
}

func TestRunEmptyInput(t *testing.T) {
	ectx := &exec.Ctx{}
	ectx.Run(0, func(begin, end int) {
		t.Fatal("kernel body launched for empty input")
	})
}

func TestRunSmallInputInline(t *testing.T) {
	ectx := &exec.Ctx{NumBlocks: 8}
	var calls int // no synchronization: inline path runs on this goroutine
	ectx.Run(10, func(begin, end int) {
		calls++
		assert.Equal(t, 0, begin)
		assert.Equal(t, 10, end)
	})
	assert.Equal(t, 1, calls)
}

func TestRunValidityPattern(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	const n = 10000
	ectx := &exec.Ctx{Mem: mem, NumBlocks: 4, BlockSize: 96}
	bitmap := ectx.AllocateBitmap(n)
	defer bitmap.Release()

	valid := ectx.RunValidity(n, bitmap.Bytes(), func(begin, end int) uint32 {
		var bits uint32
		for i := begin; i < end; i++ {
			if i%3 == 0 {
				bits |= 1 << uint(i-begin)
			}
		}
		return bits
	})

	want := (n + 2) / 3
	assert.EqualValues(t, want, valid)
	assert.Equal(t, want, bitutil.CountSetBits(bitmap.Bytes(), 0, n))
	for _, i := range []int{0, 1, 2, 3, 96, 9999} {
		assert.Equal(t, i%3 == 0, bitutil.BitIsSet(bitmap.Bytes(), i), "row %d", i)
	}
}

func TestRunValidityTailWordMasked(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	const n = 37
	ectx := &exec.Ctx{Mem: mem}
	bitmap := ectx.AllocateBitmap(n)
	defer bitmap.Release()

	// an over-eager vote may set bits past the last row; they must not
	// reach the bitmap or the count
	valid := ectx.RunValidity(n, bitmap.Bytes(), func(begin, end int) uint32 {
		return ^uint32(0)
	})
	assert.EqualValues(t, n, valid)
	for i := n; i < 8*bitmap.Len(); i++ {
		assert.False(t, bitutil.BitIsSet(bitmap.Bytes(), i), "padding bit %d set", i)
	}
}

func TestRunValidityManyBlocks(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	// sizes chosen to land on and around block and word boundaries
	for _, n := range []int{32, 64, 255, 256, 8192, 65537} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			ectx := &exec.Ctx{Mem: mem, NumBlocks: 16, BlockSize: 32}
			bitmap := ectx.AllocateBitmap(n)
			defer bitmap.Release()

			valid := ectx.RunValidity(n, bitmap.Bytes(), func(begin, end int) uint32 {
				var bits uint32
				for i := begin; i < end; i++ {
					if i%2 == 0 {
						bits |= 1 << uint(i-begin)
					}
				}
				return bits
			})
			assert.EqualValues(t, (n+1)/2, valid)
			assert.Equal(t, (n+1)/2, bitutil.CountSetBits(bitmap.Bytes(), 0, n))
		})
	}
}

func TestAllocateBitmapWholeWords(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ectx := &exec.Ctx{Mem: mem}
	for nbits, nbytes := range map[int]int{1: 4, 31: 4, 32: 4, 33: 8, 256: 32} {
		buf := ectx.AllocateBitmap(nbits)
		assert.Equal(t, nbytes, buf.Len(), "nbits=%d", nbits)
		buf.Release()
	}
}

func TestBlockSizeRoundedToWords(t *testing.T) {
	// spans must stay word aligned even for odd configured sizes
	ectx := &exec.Ctx{NumBlocks: 3, BlockSize: 100}
	n := 1000
	visits := make([]int32, n)
	ectx.Run(n, func(begin, end int) {
		if begin%96 != 0 {
			t.Errorf("span start %d not aligned to rounded block size", begin)
		}
		for i := begin; i < end; i++ {
			atomic.AddInt32(&visits[i], 1)
		}
	})
	for i, v := range visits {
		require.Equal(t, int32(1), v, "row %d", i)
	}
}
