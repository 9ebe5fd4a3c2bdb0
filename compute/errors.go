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

import "errors"

// Precondition errors. All are detected synchronously before any kernel is
// launched and are deterministic contract violations, never transient.
var (
	// ErrTypeMismatch signals operands whose element types disagree.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrSizeMismatch signals paired sequences of unequal length.
	ErrSizeMismatch = errors.New("size mismatch")
	// ErrInvalidArgument signals disallowed nulls in a replacement source.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupportedType signals an element type with no kernel
	// instantiation, e.g. a variable-length type.
	ErrUnsupportedType = errors.New("unsupported type")
)
