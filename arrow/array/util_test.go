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

package array_test

import (
	"testing"

	"github.com/apache/arrow-lists/go/arrow"
	"github.com/apache/arrow-lists/go/arrow/array"
	"github.com/apache/arrow-lists/go/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requirePanicsWith fails t unless fn panics with an error wrapping target.
func requirePanicsWith(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected a panic wrapping %v", target)
		err, ok := r.(error)
		require.Truef(t, ok, "panic value %v is not an error", r)
		assert.ErrorIs(t, err, target)
	}()
	fn()
}

func int32Data(vals ...int32) *array.Data {
	return array.NewData(arrow.PrimitiveTypes.Int32, len(vals), nil,
		[]*memory.Buffer{memory.NewBufferBytes(arrow.CastToBytes(vals))}, nil, 0, 0)
}

func bitmapOf(valid ...bool) *memory.Buffer {
	buf := make([]byte, (len(valid)+7)/8)
	for i, v := range valid {
		if v {
			buf[i/8] |= 1 << (uint(i) % 8)
		}
	}
	return memory.NewBufferBytes(buf)
}

func int32Values(t *testing.T, arr arrow.Array) []int32 {
	t.Helper()
	v, ok := arr.(*array.Int32)
	require.Truef(t, ok, "expected *array.Int32, got %T", arr)
	return v.Values()
}
