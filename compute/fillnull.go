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
	"github.com/apache/arrow-go/v18/arrow/scalar"

	"github.com/quiverdb/quiver/compute/kernels"
)

// FillNulls returns a copy of input with every null row filled from the same
// row of replacement. replacement must share input's element type and
// length, and must itself contain no nulls; the result is fully valid and
// carries no validity bitmap. An input without nulls is returned unmodified
// without launching a kernel.
func FillNulls(ctx context.Context, input, replacement arrow.Array) (arrow.Array, error) {
	if !arrow.TypeEqual(input.DataType(), replacement.DataType()) {
		return nil, fmt.Errorf("%w: input %s, replacement %s",
			ErrTypeMismatch, input.DataType(), replacement.DataType())
	}
	if replacement.Len() != input.Len() {
		return nil, fmt.Errorf("%w: replacement column has %d rows, input %d",
			ErrSizeMismatch, replacement.Len(), input.Len())
	}
	if replacement.NullN() > 0 {
		return nil, fmt.Errorf("%w: replacement column must not contain nulls", ErrInvalidArgument)
	}
	if input.Len() == 0 || input.NullN() == 0 {
		return viewOf(input), nil
	}
	if !kernels.CanReplace(input.DataType()) {
		return nil, fmt.Errorf("%w: fill nulls on %s", ErrUnsupportedType, input.DataType())
	}

	data := kernels.FillNull(GetExecCtx(ctx), input.Data(), replacement.Data())
	defer data.Release()
	return array.MakeFromData(data), nil
}

// FillNullsScalar is FillNulls sourcing every replacement from one scalar,
// as if from a constant column. value must be valid and match input's
// element type.
func FillNullsScalar(ctx context.Context, input arrow.Array, value scalar.Scalar) (arrow.Array, error) {
	if !arrow.TypeEqual(input.DataType(), value.DataType()) {
		return nil, fmt.Errorf("%w: input %s, replacement scalar %s",
			ErrTypeMismatch, input.DataType(), value.DataType())
	}
	if !value.IsValid() {
		return nil, fmt.Errorf("%w: replacement scalar is null", ErrInvalidArgument)
	}
	if input.Len() == 0 || input.NullN() == 0 {
		return viewOf(input), nil
	}
	if !kernels.CanReplace(input.DataType()) {
		return nil, fmt.Errorf("%w: fill nulls on %s", ErrUnsupportedType, input.DataType())
	}

	data := kernels.FillNullScalar(GetExecCtx(ctx), input.Data(), value)
	defer data.Release()
	return array.MakeFromData(data), nil
}
