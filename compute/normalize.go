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

package compute

import (
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/quiverdb/quiver/compute/kernels"
)

// NormalizeNansAndZeros returns a copy of the floating point column input
// with every -0.0 rewritten to +0.0 and every NaN rewritten to the canonical
// positive quiet NaN. The validity bitmap is copied verbatim; the transform
// touches values only and is idempotent.
func NormalizeNansAndZeros(ctx context.Context, input arrow.Array) (arrow.Array, error) {
	if !kernels.CanNormalize(input.DataType()) {
		return nil, fmt.Errorf("%w: normalize expects a floating point column, got %s",
			ErrTypeMismatch, input.DataType())
	}
	if input.Len() == 0 {
		return viewOf(input), nil
	}

	data := kernels.Normalize(GetExecCtx(ctx), input.Data())
	defer data.Release()
	return array.MakeFromData(data), nil
}

// NormalizeNansAndZerosInPlace applies the same rewrite directly to data's
// value buffer. The caller must exclusively own the buffer; validity is left
// untouched.
func NormalizeNansAndZerosInPlace(ctx context.Context, data arrow.ArrayData) error {
	if !kernels.CanNormalize(data.DataType()) {
		return fmt.Errorf("%w: normalize expects a floating point column, got %s",
			ErrTypeMismatch, data.DataType())
	}
	if data.Len() == 0 {
		return nil
	}
	kernels.NormalizeInPlace(GetExecCtx(ctx), data)
	return nil
}
