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

func TestBinaryBuilder(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ab := array.NewBinaryBuilder(mem, arrow.BinaryTypes.Binary)
	defer ab.Release()

	exp := [][]byte{[]byte("foo"), []byte("bar"), nil, []byte("sydney"), []byte("cameron")}
	for _, v := range exp {
		if v == nil {
			ab.AppendNull()
		} else {
			ab.Append(v)
		}
	}

	assert.Equal(t, len(exp), ab.Len(), "unexpected Len()")
	assert.Equal(t, 1, ab.NullN(), "unexpected NullN()")
	assert.Equal(t, 19, ab.DataLen())

	ar := ab.NewBinaryArray()
	defer ar.Release()

	// check state of builder after NewBinaryArray
	assert.Zero(t, ab.Len(), "unexpected ArrayBuilder.Len(), NewBinaryArray did not reset state")
	assert.Zero(t, ab.Cap(), "unexpected ArrayBuilder.Cap(), NewBinaryArray did not reset state")
	assert.Zero(t, ab.NullN(), "unexpected ArrayBuilder.NullN(), NewBinaryArray did not reset state")

	for i, v := range exp {
		if v == nil {
			assert.True(t, ar.IsNull(i))
			continue
		}
		assert.Equal(t, v, ar.Value(i))
	}
	assert.Equal(t, 6, ar.ValueOffset(3))
	assert.Equal(t, 6, ar.ValueLen(3))
	assert.Equal(t, `["foo" "bar" (null) "sydney" "cameron"]`, ar.String())
}

func TestBinarySliceAndJSON(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ab := array.NewBinaryBuilder(mem, arrow.BinaryTypes.Binary)
	defer ab.Release()

	require.NoError(t, ab.UnmarshalJSON([]byte(`["AQI=", null, "AwQF"]`)))
	arr := ab.NewBinaryArray()
	defer arr.Release()

	assert.Equal(t, []byte{1, 2}, arr.Value(0))
	assert.Equal(t, []byte{3, 4, 5}, arr.Value(2))

	slice := array.NewSlice(arr, 1, 3).(*array.Binary)
	defer slice.Release()
	assert.True(t, slice.IsNull(0))
	assert.Equal(t, []byte{3, 4, 5}, slice.Value(1))
	assert.Equal(t, 2, slice.ValueOffset(1))

	out, err := arr.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `["AQI=", null, "AwQF"]`, string(out))

	assert.Error(t, ab.UnmarshalJSON([]byte(`["not base64!"]`)))
}

func TestStringBuilder(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	sb := array.NewStringBuilder(mem)
	defer sb.Release()

	sb.Append("hello")
	sb.AppendNull()
	sb.AppendValues([]string{"", "world"}, nil)
	assert.Equal(t, arrow.BinaryTypes.String, sb.Type())

	arr := sb.NewArray()
	defer arr.Release()

	str, ok := arr.(*array.String)
	require.True(t, ok, "StringBuilder builds *array.String")
	assert.Equal(t, 4, str.Len())
	assert.Equal(t, "hello", str.Value(0))
	assert.True(t, str.IsNull(1))
	assert.Equal(t, "", str.Value(2))
	assert.Equal(t, "world", str.Value(3))
	assert.Equal(t, 5, str.ValueOffset(3))
	assert.Equal(t, 5, str.ValueLen(3))
	assert.Equal(t, `["hello" (null) "" "world"]`, str.String())

	out, err := str.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `["hello", null, "", "world"]`, string(out))

	slice := array.NewSlice(str, 2, 4).(*array.String)
	defer slice.Release()
	assert.Equal(t, "world", slice.Value(1))
}

func TestStringBuilderJSON(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	sb := array.NewStringBuilder(mem)
	defer sb.Release()

	require.NoError(t, sb.UnmarshalJSON([]byte(`["a", null, "bc"]`)))
	arr := sb.NewStringArray()
	defer arr.Release()

	assert.Equal(t, "bc", arr.Value(2))
	assert.Equal(t, 1, arr.NullN())
	assert.Error(t, sb.UnmarshalJSON([]byte(`[1]`)))
}
