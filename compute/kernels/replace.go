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
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/bitutil"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/quiverdb/quiver/compute/exec"
	"github.com/quiverdb/quiver/internal/debug"
)

// Replace runs the value replacement kernel for input's element type.
// Preconditions (matching lengths, no nulls in oldValues, shared type,
// non-empty input and mapping, CanReplace) hold by the time dispatch runs.
func Replace(ectx *exec.Ctx, input, oldValues, newValues arrow.ArrayData) arrow.ArrayData {
	switch physicalType(input.DataType().ID()) {
	case arrow.INT8:
		return replaceExec[int8](ectx, input, oldValues, newValues)
	case arrow.INT16:
		return replaceExec[int16](ectx, input, oldValues, newValues)
	case arrow.INT32:
		return replaceExec[int32](ectx, input, oldValues, newValues)
	case arrow.INT64:
		return replaceExec[int64](ectx, input, oldValues, newValues)
	case arrow.UINT8:
		return replaceExec[uint8](ectx, input, oldValues, newValues)
	case arrow.UINT16:
		return replaceExec[uint16](ectx, input, oldValues, newValues)
	case arrow.UINT32:
		return replaceExec[uint32](ectx, input, oldValues, newValues)
	case arrow.UINT64:
		return replaceExec[uint64](ectx, input, oldValues, newValues)
	case arrow.FLOAT32:
		return replaceExec[float32](ectx, input, oldValues, newValues)
	case arrow.FLOAT64:
		return replaceExec[float64](ectx, input, oldValues, newValues)
	}
	debug.Assert(false, "replace dispatched with unsupported type")
	return nil
}

func replaceExec[T exec.FixedWidth](ectx *exec.Ctx, input, oldValues, newValues arrow.ArrayData) arrow.ArrayData {
	var (
		size    = input.Len()
		inVals  = exec.GetValues[T](input, 1)
		oldVals = exec.GetValues[T](oldValues, 1)
		newVals = exec.GetValues[T](newValues, 1)
		values  = exec.AllocateValues[T](ectx, size)
		out     = exec.Reinterpret[T](values.Bytes())
	)
	defer values.Release()

	inMask := exec.ValidityBitmap(input)
	if exec.NullCount(input) == 0 {
		inMask = nil
	}
	newMask := exec.ValidityBitmap(newValues)
	if exec.NullCount(newValues) == 0 {
		newMask = nil
	}

	if inMask == nil && newMask == nil {
		// neither operand is nullable: no validity bookkeeping, no bitmap
		ectx.Run(size, func(begin, end int) {
			for i := begin; i < end; i++ {
				v := inVals[i]
				out[i] = v
				for j, old := range oldVals {
					if old == v {
						out[i] = newVals[j]
						break
					}
				}
			}
		})
		return array.NewData(input.DataType(), size, []*memory.Buffer{nil, values}, nil, 0, 0)
	}

	var (
		bitmap = ectx.AllocateBitmap(size)
		inOff  = input.Offset()
		newOff = newValues.Offset()
	)
	defer bitmap.Release()

	valid := ectx.RunValidity(size, bitmap.Bytes(), func(begin, end int) uint32 {
		var bits uint32
		for i := begin; i < end; i++ {
			v := inVals[i]
			out[i] = v
			if inMask != nil && bitutil.BitIsNotSet(inMask, inOff+i) {
				// invalid rows pass through invalid, value irrelevant
				continue
			}
			rowValid := true
			for j, old := range oldVals {
				if old == v {
					// first match wins for duplicate oldValues entries
					out[i] = newVals[j]
					if newMask != nil {
						rowValid = bitutil.BitIsSet(newMask, newOff+j)
					}
					break
				}
			}
			if rowValid {
				bits |= 1 << uint(i-begin)
			}
		}
		return bits
	})

	return array.NewData(input.DataType(), size, []*memory.Buffer{bitmap, values}, nil, size-int(valid), 0)
}
