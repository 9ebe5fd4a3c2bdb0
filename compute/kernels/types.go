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

// Package kernels holds the type-dispatched transformation kernels: value
// replacement, null filling from a column or scalar, and canonicalization of
// signed float zeros and NaNs. Callers are expected to have validated
// operation preconditions; dispatch here only routes a runtime type to the
// matching generic instantiation.
package kernels

import (
	"github.com/apache/arrow-go/v18/arrow"
)

// physicalType maps fixed-width temporal ids onto the integer id of their
// storage representation; all other ids map to themselves.
func physicalType(id arrow.Type) arrow.Type {
	switch id {
	case arrow.DATE32, arrow.TIME32:
		return arrow.INT32
	case arrow.DATE64, arrow.TIME64, arrow.TIMESTAMP, arrow.DURATION:
		return arrow.INT64
	}
	return id
}

// CanReplace reports whether columns of dt are supported by the replace and
// fill-null kernels. Only fixed-width element types with an integer or float
// physical representation qualify; variable-length, bit-packed boolean, and
// nested types do not.
func CanReplace(dt arrow.DataType) bool {
	switch physicalType(dt.ID()) {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64,
		arrow.FLOAT32, arrow.FLOAT64:
		return true
	}
	return false
}

// CanNormalize reports whether dt is a floating point type accepted by the
// normalize kernel.
func CanNormalize(dt arrow.DataType) bool {
	switch dt.ID() {
	case arrow.FLOAT32, arrow.FLOAT64:
		return true
	}
	return false
}
