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
	"github.com/apache/arrow-go/v18/arrow/scalar"

	"github.com/quiverdb/quiver/compute/exec"
	"github.com/quiverdb/quiver/internal/debug"
)

// FillNull runs the column-sourced null replacement kernel. input must have
// at least one null and replacement none; both share a supported type of
// equal length. The output is fully valid and carries no bitmap.
func FillNull(ectx *exec.Ctx, input, replacement arrow.ArrayData) arrow.ArrayData {
	switch physicalType(input.DataType().ID()) {
	case arrow.INT8:
		return fillNullExec[int8](ectx, input, replacement)
	case arrow.INT16:
		return fillNullExec[int16](ectx, input, replacement)
	case arrow.INT32:
		return fillNullExec[int32](ectx, input, replacement)
	case arrow.INT64:
		return fillNullExec[int64](ectx, input, replacement)
	case arrow.UINT8:
		return fillNullExec[uint8](ectx, input, replacement)
	case arrow.UINT16:
		return fillNullExec[uint16](ectx, input, replacement)
	case arrow.UINT32:
		return fillNullExec[uint32](ectx, input, replacement)
	case arrow.UINT64:
		return fillNullExec[uint64](ectx, input, replacement)
	case arrow.FLOAT32:
		return fillNullExec[float32](ectx, input, replacement)
	case arrow.FLOAT64:
		return fillNullExec[float64](ectx, input, replacement)
	}
	debug.Assert(false, "fill null dispatched with unsupported type")
	return nil
}

// FillNullScalar is FillNull with a virtual constant replacement column:
// every invalid row takes the scalar's value.
func FillNullScalar(ectx *exec.Ctx, input arrow.ArrayData, value scalar.Scalar) arrow.ArrayData {
	switch physicalType(input.DataType().ID()) {
	case arrow.INT8:
		return fillNullScalarExec(ectx, input, exec.UnboxScalar[int8](value))
	case arrow.INT16:
		return fillNullScalarExec(ectx, input, exec.UnboxScalar[int16](value))
	case arrow.INT32:
		return fillNullScalarExec(ectx, input, exec.UnboxScalar[int32](value))
	case arrow.INT64:
		return fillNullScalarExec(ectx, input, exec.UnboxScalar[int64](value))
	case arrow.UINT8:
		return fillNullScalarExec(ectx, input, exec.UnboxScalar[uint8](value))
	case arrow.UINT16:
		return fillNullScalarExec(ectx, input, exec.UnboxScalar[uint16](value))
	case arrow.UINT32:
		return fillNullScalarExec(ectx, input, exec.UnboxScalar[uint32](value))
	case arrow.UINT64:
		return fillNullScalarExec(ectx, input, exec.UnboxScalar[uint64](value))
	case arrow.FLOAT32:
		return fillNullScalarExec(ectx, input, exec.UnboxScalar[float32](value))
	case arrow.FLOAT64:
		return fillNullScalarExec(ectx, input, exec.UnboxScalar[float64](value))
	}
	debug.Assert(false, "fill null dispatched with unsupported type")
	return nil
}

func fillNullExec[T exec.FixedWidth](ectx *exec.Ctx, input, replacement arrow.ArrayData) arrow.ArrayData {
	var (
		size     = input.Len()
		inVals   = exec.GetValues[T](input, 1)
		replVals = exec.GetValues[T](replacement, 1)
		inMask   = exec.ValidityBitmap(input)
		inOff    = input.Offset()
		values   = exec.AllocateValues[T](ectx, size)
		out      = exec.Reinterpret[T](values.Bytes())
	)
	defer values.Release()
	debug.Assert(inMask != nil, "fill null kernel launched without input bitmap")

	ectx.Run(size, func(begin, end int) {
		for i := begin; i < end; i++ {
			if bitutil.BitIsSet(inMask, inOff+i) {
				out[i] = inVals[i]
			} else {
				out[i] = replVals[i]
			}
		}
	})
	return array.NewData(input.DataType(), size, []*memory.Buffer{nil, values}, nil, 0, 0)
}

func fillNullScalarExec[T exec.FixedWidth](ectx *exec.Ctx, input arrow.ArrayData, repl T) arrow.ArrayData {
	var (
		size   = input.Len()
		inVals = exec.GetValues[T](input, 1)
		inMask = exec.ValidityBitmap(input)
		inOff  = input.Offset()
		values = exec.AllocateValues[T](ectx, size)
		out    = exec.Reinterpret[T](values.Bytes())
	)
	defer values.Release()
	debug.Assert(inMask != nil, "fill null kernel launched without input bitmap")

	ectx.Run(size, func(begin, end int) {
		for i := begin; i < end; i++ {
			if bitutil.BitIsSet(inMask, inOff+i) {
				out[i] = inVals[i]
			} else {
				out[i] = repl
			}
		}
	})
	return array.NewData(input.DataType(), size, []*memory.Buffer{nil, values}, nil, 0, 0)
}
