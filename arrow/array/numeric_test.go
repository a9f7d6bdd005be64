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

func TestNumericBuilder(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ab := array.NewNumericBuilder[int64](mem, arrow.PrimitiveTypes.Int64)
	defer ab.Release()

	ab.Retain()
	ab.Release()

	ab.Append(1)
	ab.Append(2)
	ab.Append(3)
	ab.AppendNull()
	ab.Append(5)
	ab.Append(6)
	ab.AppendNull()
	ab.Append(8)
	ab.Append(9)
	ab.Append(10)

	// check state of builder before NewArray
	assert.Equal(t, 10, ab.Len(), "unexpected Len()")
	assert.Equal(t, 2, ab.NullN(), "unexpected NullN()")

	a := ab.NewNumericArray()

	// check state of builder after NewArray
	assert.Zero(t, ab.Len(), "unexpected ArrayBuilder.Len(), NewArray did not reset state")
	assert.Zero(t, ab.Cap(), "unexpected ArrayBuilder.Cap(), NewArray did not reset state")
	assert.Zero(t, ab.NullN(), "unexpected ArrayBuilder.NullN(), NewArray did not reset state")

	// check state of array
	assert.Equal(t, 2, a.NullN(), "unexpected null count")
	assert.Equal(t, []int64{1, 2, 3, 0, 5, 6, 0, 8, 9, 10}, a.Values(), "unexpected Int64Values")
	assert.Equal(t, []byte{0xb7}, a.NullBitmapBytes()[:1]) // 4 bytes due to minBuilderCapacity
	assert.Len(t, a.Values(), 10, "unexpected length of Int64Values")
	assert.Equal(t, "[1 2 3 (null) 5 6 (null) 8 9 10]", a.String())

	a.Release()

	ab.Append(7)
	ab.Append(8)

	a = ab.NewNumericArray()

	assert.Equal(t, 0, a.NullN())
	assert.Equal(t, []int64{7, 8}, a.Values())
	assert.Len(t, a.Values(), 2)

	a.Release()
}

func TestNumericBuilder_AppendValues(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ab := array.NewNumericBuilder[float32](mem, arrow.PrimitiveTypes.Float32)
	defer ab.Release()

	exp := []float32{0, 1, 2, 3}
	ab.AppendValues(exp, nil)
	ab.AppendValues([]float32{4, 5}, []bool{true, false})
	ab.AppendValues(nil, nil)

	a := ab.NewNumericArray()
	defer a.Release()

	assert.Equal(t, 6, a.Len())
	assert.Equal(t, 1, a.NullN())
	assert.Equal(t, float32(4), a.Value(4))
	assert.True(t, a.IsNull(5))

	assert.Panics(t, func() { ab.AppendValues([]float32{1}, []bool{true, true}) })
}

func TestNumericBuilderTypeMismatch(t *testing.T) {
	mem := memory.NewGoAllocator()
	requirePanicsWith(t, arrow.ErrType, func() {
		array.NewNumericBuilder[int32](mem, arrow.PrimitiveTypes.Int64)
	})
	requirePanicsWith(t, arrow.ErrType, func() {
		array.NewNumericBuilder[int64](mem, arrow.BinaryTypes.String)
	})
}

func TestNumericTemporalTypes(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	dtype := &arrow.TimestampType{Unit: arrow.Millisecond, TimeZone: "America/New_York"}
	ab := array.NewNumericBuilder[arrow.Timestamp](mem, dtype)
	defer ab.Release()

	ab.AppendValues([]arrow.Timestamp{1, 2, 3}, nil)
	arr := ab.NewArray()
	defer arr.Release()

	ts, ok := arr.(*array.Timestamp)
	require.True(t, ok)
	assert.Same(t, dtype, ts.DataType())
	assert.Equal(t, arrow.Timestamp(2), ts.Value(1))
}

func TestNumericSlice(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ab := array.NewNumericBuilder[int16](mem, arrow.PrimitiveTypes.Int16)
	defer ab.Release()
	ab.AppendValues([]int16{1, 2, 3, 4, 5}, []bool{true, false, true, true, true})

	arr := ab.NewNumericArray()
	defer arr.Release()

	slice := array.NewSlice(arr, 1, 4).(*array.Int16)
	defer slice.Release()

	assert.Equal(t, 3, slice.Len())
	assert.Equal(t, []int16{2, 3, 4}, slice.Values())
	assert.True(t, slice.IsNull(0))
	assert.Equal(t, 1, slice.NullN())
	assert.Equal(t, "[(null) 3 4]", slice.String())
}

func TestNumericJSON(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ab := array.NewNumericBuilder[uint8](mem, arrow.PrimitiveTypes.Uint8)
	defer ab.Release()

	require.NoError(t, ab.UnmarshalJSON([]byte(`[1, null, 255]`)))
	arr := ab.NewNumericArray()
	defer arr.Release()

	assert.Equal(t, []uint8{1, 0, 255}, arr.Values())
	assert.True(t, arr.IsNull(1))

	out, err := arr.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[1, null, 255]`, string(out))

	assert.Error(t, ab.UnmarshalJSON([]byte(`[256]`)), "value overflows uint8")
	assert.Error(t, ab.UnmarshalJSON([]byte(`["a"]`)))
	assert.Error(t, ab.UnmarshalJSON([]byte(`{}`)))
}
