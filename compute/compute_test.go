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

package compute_test

import (
	"context"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"

	"github.com/quiverdb/quiver/compute"
	"github.com/quiverdb/quiver/compute/exec"
)

func TestGetExecCtxDefaults(t *testing.T) {
	ectx := compute.GetExecCtx(context.Background())
	assert.NotNil(t, ectx)
	assert.Same(t, memory.DefaultAllocator, ectx.Allocator())
}

func TestSetExecCtxRoundTrip(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	want := &exec.Ctx{Mem: mem, NumBlocks: 2, BlockSize: 64}
	ctx := compute.SetExecCtx(context.Background(), want)
	assert.Same(t, want, compute.GetExecCtx(ctx))
}
