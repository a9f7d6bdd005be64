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

var emptyListElemTypes = []arrow.DataType{
	arrow.FixedWidthTypes.Boolean,
	arrow.PrimitiveTypes.Int8,
	arrow.PrimitiveTypes.Int16,
	arrow.PrimitiveTypes.Int32,
	arrow.PrimitiveTypes.Int64,
	arrow.PrimitiveTypes.Uint8,
	arrow.PrimitiveTypes.Uint16,
	arrow.PrimitiveTypes.Uint32,
	arrow.PrimitiveTypes.Uint64,
	arrow.PrimitiveTypes.Float32,
	arrow.PrimitiveTypes.Float64,
	arrow.FixedWidthTypes.Date32,
	arrow.FixedWidthTypes.Date64,
	arrow.FixedWidthTypes.Time32s,
	arrow.FixedWidthTypes.Time32ms,
	arrow.FixedWidthTypes.Time64us,
	arrow.FixedWidthTypes.Time64ns,
	arrow.FixedWidthTypes.Duration_s,
	arrow.FixedWidthTypes.Duration_ns,
	arrow.FixedWidthTypes.Timestamp_ms,
	&arrow.TimestampType{Unit: arrow.Microsecond},
	arrow.BinaryTypes.String,
	arrow.BinaryTypes.Binary,
}

func testEmptyList[O arrow.Offset](t *testing.T) {
	for _, elem := range emptyListElemTypes {
		t.Run(elem.String(), func(t *testing.T) {
			mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
			defer mem.AssertSize(t, 0)

			arr, err := array.NewEmptyList[O](mem, elem)
			require.NoError(t, err)
			defer arr.Release()

			assert.True(t, arrow.TypeEqual(listTypeOf[O](elem), arr.DataType()))
			assert.True(t, arrow.TypeEqual(elem, arr.ValueType()))
			assert.Zero(t, arr.Len())
			assert.Zero(t, arr.NullN())
			assert.Zero(t, arr.ListValues().Len())
			assert.Equal(t, []O{0}, arr.Offsets())
			assert.Equal(t, "[]", arr.String())
		})
	}
}

func TestEmptyList(t *testing.T)      { testEmptyList[int32](t) }
func TestEmptyLargeList(t *testing.T) { testEmptyList[int64](t) }

func TestEmptyFixedSizeList(t *testing.T) {
	for _, elem := range emptyListElemTypes {
		t.Run(elem.String(), func(t *testing.T) {
			mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
			defer mem.AssertSize(t, 0)

			arr, err := array.NewEmptyFixedSizeList(mem, elem)
			require.NoError(t, err)
			defer arr.Release()

			assert.True(t, arrow.TypeEqual(arrow.FixedSizeListOf(0, elem), arr.DataType()))
			assert.True(t, arrow.TypeEqual(elem, arr.ValueType()))
			assert.Zero(t, arr.Len())
			assert.Zero(t, arr.ValueLength())
			assert.Zero(t, arr.ListValues().Len())
			assert.Equal(t, "FixedSizeListArray<0>\n[\n]", arr.GoString())
		})
	}
}

func TestEmptyUtf8List(t *testing.T) {
	arr, err := array.NewEmptyList[int32](nil, arrow.BinaryTypes.String)
	require.NoError(t, err)
	defer arr.Release()

	assert.Equal(t, arrow.LIST, arr.DataType().ID())
	assert.Equal(t, "list<item: utf8, nullable>", arr.DataType().String())
	assert.Zero(t, arr.Len())

	values, ok := arr.ListValues().(*array.String)
	require.Truef(t, ok, "expected *array.String values, got %T", arr.ListValues())
	assert.Zero(t, values.Len())
	assert.Equal(t, "ListArray\n[\n]", arr.GoString())
}

func TestEmptyListUnsupported(t *testing.T) {
	unsupported := []arrow.DataType{
		arrow.Null,
		arrow.FixedWidthTypes.Float16,
		arrow.ListOf(arrow.PrimitiveTypes.Int32),
		arrow.LargeListOf(arrow.PrimitiveTypes.Int32),
		arrow.FixedSizeListOf(2, arrow.PrimitiveTypes.Int32),
		&arrow.Time32Type{Unit: arrow.Microsecond},
		&arrow.Time64Type{Unit: arrow.Second},
		nil,
	}

	for _, elem := range unsupported {
		name := "nil"
		if elem != nil {
			name = elem.String()
		}
		t.Run(name, func(t *testing.T) {
			mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
			defer mem.AssertSize(t, 0)

			check := func(t *testing.T, kind string, err error) {
				var typed *array.UnsupportedElementTypeError
				require.ErrorAs(t, err, &typed)
				assert.Equal(t, kind, typed.Kind)
				assert.Equal(t, elem, typed.Elem)
				assert.ErrorIs(t, err, arrow.ErrNotImplemented)
				if elem != nil {
					assert.Contains(t, err.Error(), elem.String())
				} else {
					assert.Contains(t, err.Error(), "<nil>")
				}
			}

			arr, err := array.NewEmptyList[int32](mem, elem)
			assert.Nil(t, arr)
			check(t, "List", err)

			larr, err := array.NewEmptyList[int64](mem, elem)
			assert.Nil(t, larr)
			check(t, "LargeList", err)

			farr, err := array.NewEmptyFixedSizeList(mem, elem)
			assert.Nil(t, farr)
			check(t, "FixedSizeList", err)
		})
	}
}
