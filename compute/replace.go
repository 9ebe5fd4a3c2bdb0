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

// FindAndReplace returns a copy of input where every valid row equal to
// oldValues[j] (the first such j when oldValues holds duplicates) is
// replaced by newValues[j], taking on that replacement's validity as well: a
// valid row matched to a null replacement becomes null. Rows that are
// invalid or match nothing pass through unchanged.
//
// oldValues and newValues must have equal length and share input's element
// type, and oldValues must contain no nulls. A zero-length input or an empty
// mapping returns input unmodified without launching a kernel.
func FindAndReplace(ctx context.Context, input, oldValues, newValues arrow.Array) (arrow.Array, error) {
	if !arrow.TypeEqual(input.DataType(), oldValues.DataType()) ||
		!arrow.TypeEqual(input.DataType(), newValues.DataType()) {
		return nil, fmt.Errorf("%w: input %s, old values %s, new values %s",
			ErrTypeMismatch, input.DataType(), oldValues.DataType(), newValues.DataType())
	}
	if oldValues.Len() != newValues.Len() {
		return nil, fmt.Errorf("%w: %d old values mapped to %d new values",
			ErrSizeMismatch, oldValues.Len(), newValues.Len())
	}
	if oldValues.NullN() > 0 {
		return nil, fmt.Errorf("%w: old values must not contain nulls", ErrInvalidArgument)
	}
	if input.Len() == 0 || oldValues.Len() == 0 {
		return viewOf(input), nil
	}
	if !kernels.CanReplace(input.DataType()) {
		return nil, fmt.Errorf("%w: find and replace on %s", ErrUnsupportedType, input.DataType())
	}

	data := kernels.Replace(GetExecCtx(ctx), input.Data(), oldValues.Data(), newValues.Data())
	defer data.Release()
	return array.MakeFromData(data), nil
}
