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

package kernels

import (
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/bitutil"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"golang.org/x/exp/constraints"

	"github.com/quiverdb/quiver/compute/exec"
	"github.com/quiverdb/quiver/internal/debug"
)

// Normalize runs the float canonicalization kernel: -0.0 becomes +0.0 and
// any NaN becomes the positive quiet NaN. The validity bitmap is copied
// verbatim; values under null slots are normalized like any other, which is
// unobservable. Purely elementwise and idempotent.
func Normalize(ectx *exec.Ctx, input arrow.ArrayData) arrow.ArrayData {
	switch input.DataType().ID() {
	case arrow.FLOAT32:
		return normalizeExec[float32](ectx, input)
	case arrow.FLOAT64:
		return normalizeExec[float64](ectx, input)
	}
	debug.Assert(false, "normalize dispatched with non-float type")
	return nil
}

// NormalizeInPlace rewrites the value buffer of data directly. The caller
// must exclusively own the buffer.
func NormalizeInPlace(ectx *exec.Ctx, data arrow.ArrayData) {
	switch data.DataType().ID() {
	case arrow.FLOAT32:
		vals := exec.GetValues[float32](data, 1)
		ectx.Run(data.Len(), func(begin, end int) { normalizeSpan(vals[begin:end]) })
	case arrow.FLOAT64:
		vals := exec.GetValues[float64](data, 1)
		ectx.Run(data.Len(), func(begin, end int) { normalizeSpan(vals[begin:end]) })
	default:
		debug.Assert(false, "normalize dispatched with non-float type")
	}
}

func normalizeExec[T constraints.Float](ectx *exec.Ctx, input arrow.ArrayData) arrow.ArrayData {
	var (
		size   = input.Len()
		inVals = exec.GetValues[T](input, 1)
		values = exec.AllocateValues[T](ectx, size)
		out    = exec.Reinterpret[T](values.Bytes())
	)
	defer values.Release()

	var bitmap *memory.Buffer
	if inMask := exec.ValidityBitmap(input); inMask != nil {
		bitmap = ectx.AllocateBitmap(size)
		defer bitmap.Release()
		bitutil.CopyBitmap(inMask, input.Offset(), size, bitmap.Bytes(), 0)
	}

	ectx.Run(size, func(begin, end int) {
		copy(out[begin:end], inVals[begin:end])
		normalizeSpan(out[begin:end])
	})
	return array.NewData(input.DataType(), size, []*memory.Buffer{bitmap, values}, nil, exec.NullCount(input), 0)
}

func normalizeSpan[T constraints.Float](vals []T) {
	for i, v := range vals {
		switch {
		case v != v:
			vals[i] = T(math.NaN())
		case v == 0:
			// catches -0.0, rewrites to the positive zero
			vals[i] = 0
		}
	}
}
