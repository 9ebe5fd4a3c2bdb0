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

// Package compute exposes quiver's null-aware columnar transformations over
// Arrow arrays: mapped value replacement, null filling from a column or
// scalar, and canonicalization of signed float zeros and NaNs.
//
// Every operation validates its preconditions synchronously, then runs one
// bulk-parallel kernel launch and blocks until it completes. Inputs are
// never mutated (NormalizeNansAndZerosInPlace excepted) and may be shared
// across concurrent operations; each output array is exclusively owned by
// its invocation until returned.
package compute

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/quiverdb/quiver/compute/exec"
)

type execCtxKey struct{}

// SetExecCtx attaches an execution context (allocator and launch shape) to
// ctx for use by subsequent operations.
func SetExecCtx(ctx context.Context, ectx *exec.Ctx) context.Context {
	return context.WithValue(ctx, execCtxKey{}, ectx)
}

// GetExecCtx returns the execution context attached to ctx, or a default one
// (Go allocator, GOMAXPROCS blocks, 256-row spans) when none is attached.
func GetExecCtx(ctx context.Context) *exec.Ctx {
	if ec, ok := ctx.Value(execCtxKey{}).(*exec.Ctx); ok {
		return ec
	}
	return &exec.Ctx{}
}

// viewOf returns a new array sharing arr's underlying data.
func viewOf(arr arrow.Array) arrow.Array {
	return array.MakeFromData(arr.Data())
}
