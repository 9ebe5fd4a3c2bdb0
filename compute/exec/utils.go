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

package exec

import (
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/bitutil"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/arrow/scalar"
	"golang.org/x/exp/constraints"
)

// FixedWidth is the set of physical element types the kernels instantiate
// over. Fixed-width logical types not listed here (dates, times, timestamps,
// durations) are routed through their integer storage representation.
type FixedWidth interface {
	constraints.Integer | constraints.Float
}

func Reinterpret[T FixedWidth](b []byte) []T {
	var t T
	sz := int(unsafe.Sizeof(t))
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), len(b)/sz)
}

// GetValues returns the typed view of buffer i, adjusted for the array's
// offset and length.
func GetValues[T FixedWidth](data arrow.ArrayData, i int) []T {
	if data.Len() == 0 {
		return nil
	}
	vals := Reinterpret[T](data.Buffers()[i].Bytes())
	return vals[data.Offset() : data.Offset()+data.Len()]
}

// AllocateValues allocates a value buffer holding n elements of T.
func AllocateValues[T FixedWidth](c *Ctx, n int) *memory.Buffer {
	var t T
	return c.Allocate(n * int(unsafe.Sizeof(t)))
}

func UnboxScalar[T FixedWidth](s scalar.Scalar) T {
	return Reinterpret[T](s.(scalar.PrimitiveScalar).Data())[0]
}

// ValidityBitmap returns the packed validity bytes of data, or nil when the
// array carries no bitmap. Bit positions must be adjusted by data.Offset().
func ValidityBitmap(data arrow.ArrayData) []byte {
	if buf := data.Buffers()[0]; buf != nil {
		return buf.Bytes()
	}
	return nil
}

// NullCount resolves the array's null count, counting bitmap bits when the
// stored value is array.UnknownNullCount.
func NullCount(data arrow.ArrayData) int {
	if data.NullN() != array.UnknownNullCount {
		return data.NullN()
	}
	bm := ValidityBitmap(data)
	if bm == nil {
		return 0
	}
	return data.Len() - bitutil.CountSetBits(bm, data.Offset(), data.Len())
}
