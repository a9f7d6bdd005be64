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

package array

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/apache/arrow-lists/go/arrow"
	"github.com/apache/arrow-lists/go/arrow/bitutil"
	"github.com/apache/arrow-lists/go/arrow/internal/debug"
)

// array holds the state shared by every concrete array kind.
type array struct {
	refCount        int64
	data            *Data
	nullBitmapBytes []byte
}

// Retain increases the reference count by 1.
// Retain may be called simultaneously from multiple goroutines.
func (a *array) Retain() {
	atomic.AddInt64(&a.refCount, 1)
}

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
// Release may be called simultaneously from multiple goroutines.
func (a *array) Release() {
	debug.Assert(atomic.LoadInt64(&a.refCount) > 0, "too many releases")

	if atomic.AddInt64(&a.refCount, -1) == 0 {
		a.data.Release()
		a.data, a.nullBitmapBytes = nil, nil
	}
}

// DataType returns the type metadata for this instance.
func (a *array) DataType() arrow.DataType { return a.data.dtype }

// NullN returns the number of null values in the array.
func (a *array) NullN() int { return a.data.NullN() }

// NullBitmapBytes returns a byte slice of the validity bitmap.
func (a *array) NullBitmapBytes() []byte { return a.nullBitmapBytes }

func (a *array) Data() arrow.ArrayData { return a.data }

// Len returns the number of elements in the array.
func (a *array) Len() int { return a.data.length }

// Offset returns the logical offset of the array into its buffers.
func (a *array) Offset() int { return a.data.offset }

// IsNull returns true if value at index is null.
// NOTE: IsNull will panic if NullBitmapBytes is not empty and 0 > i ≥ Len.
func (a *array) IsNull(i int) bool {
	return len(a.nullBitmapBytes) != 0 && bitutil.BitIsNotSet(a.nullBitmapBytes, a.data.offset+i)
}

// IsValid returns true if value at index is not null.
// NOTE: IsValid will panic if NullBitmapBytes is not empty and 0 > i ≥ Len.
func (a *array) IsValid(i int) bool {
	return len(a.nullBitmapBytes) == 0 || bitutil.BitIsSet(a.nullBitmapBytes, a.data.offset+i)
}

// BufferMemorySize returns the buffer memory of the array data.
func (a *array) BufferMemorySize() int { return a.data.BufferMemorySize() }

func (a *array) setData(data *Data) {
	// retain before releasing in case a.data == data
	data.Retain()
	if a.data != nil {
		a.data.Release()
	}

	a.nullBitmapBytes = nil
	if data.nullBitmap != nil {
		a.nullBitmapBytes = data.nullBitmap.Bytes()
	}
	a.data = data
}

type arrayConstructorFn func(arrow.ArrayData) arrow.Array

var makeArrayFn [arrow.LARGE_LIST + 1]arrayConstructorFn

func unsupportedArrayType(data arrow.ArrayData) arrow.Array {
	panic(fmt.Errorf("arrow/array: %w: no array implemented for %s", arrow.ErrNotImplemented, data.DataType()))
}

func numericArrayFn[T NumericType]() arrayConstructorFn {
	return func(data arrow.ArrayData) arrow.Array { return NewNumericData[T](data) }
}

// MakeFromData constructs a strongly-typed array instance from generic Data.
func MakeFromData(data arrow.ArrayData) arrow.Array {
	id := data.DataType().ID()
	if id < 0 || int(id) >= len(makeArrayFn) {
		return unsupportedArrayType(data)
	}
	return makeArrayFn[id](data)
}

// NewSlice constructs a zero-copy slice of the array with the indicated
// indices i and j, corresponding to array[i:j].
// The returned array must be Release()'d after use.
//
// NewSlice panics if the slice is outside the valid range of the input array.
// NewSlice panics if j < i.
func NewSlice(arr arrow.Array, i, j int64) arrow.Array {
	data := NewSliceData(arr.Data(), i, j)
	slice := MakeFromData(data)
	data.Release()
	return slice
}

func init() {
	makeArrayFn = [...]arrayConstructorFn{
		arrow.NULL:            unsupportedArrayType,
		arrow.BOOL:            func(data arrow.ArrayData) arrow.Array { return NewBooleanData(data) },
		arrow.UINT8:           numericArrayFn[uint8](),
		arrow.INT8:            numericArrayFn[int8](),
		arrow.UINT16:          numericArrayFn[uint16](),
		arrow.INT16:           numericArrayFn[int16](),
		arrow.UINT32:          numericArrayFn[uint32](),
		arrow.INT32:           numericArrayFn[int32](),
		arrow.UINT64:          numericArrayFn[uint64](),
		arrow.INT64:           numericArrayFn[int64](),
		arrow.FLOAT16:         unsupportedArrayType,
		arrow.FLOAT32:         numericArrayFn[float32](),
		arrow.FLOAT64:         numericArrayFn[float64](),
		arrow.STRING:          func(data arrow.ArrayData) arrow.Array { return NewStringData(data) },
		arrow.BINARY:          func(data arrow.ArrayData) arrow.Array { return NewBinaryData(data) },
		arrow.DATE32:          numericArrayFn[arrow.Date32](),
		arrow.DATE64:          numericArrayFn[arrow.Date64](),
		arrow.TIMESTAMP:       numericArrayFn[arrow.Timestamp](),
		arrow.TIME32:          numericArrayFn[arrow.Time32](),
		arrow.TIME64:          numericArrayFn[arrow.Time64](),
		arrow.LIST:            func(data arrow.ArrayData) arrow.Array { return NewListData(data) },
		arrow.FIXED_SIZE_LIST: func(data arrow.ArrayData) arrow.Array { return NewFixedSizeListData(data) },
		arrow.DURATION:        numericArrayFn[arrow.Duration](),
		arrow.LARGE_LIST:      func(data arrow.ArrayData) arrow.Array { return NewLargeListData(data) },
	}
}

// Arrays longer than printThreshold elements only render their first and
// last printWindow elements.
const (
	printThreshold = 20
	printWindow    = 10
)

// elementStrings renders the elements of an array of length n with render,
// replacing the middle of long arrays with a count of the elided elements.
func elementStrings(n int, render func(i int) string) []string {
	if n <= printThreshold {
		out := make([]string, n)
		for i := range out {
			out[i] = render(i)
		}
		return out
	}

	out := make([]string, 0, 2*printWindow+1)
	for i := 0; i < printWindow; i++ {
		out = append(out, render(i))
	}
	out = append(out, fmt.Sprintf("...%d elements...", n-2*printWindow))
	for i := n - printWindow; i < n; i++ {
		out = append(out, render(i))
	}
	return out
}

func compactString(elems []string) string {
	return "[" + strings.Join(elems, " ") + "]"
}

func debugString(header string, elems []string) string {
	o := new(strings.Builder)
	o.WriteString(header)
	o.WriteString("\n[\n")
	for _, e := range elems {
		o.WriteString("  ")
		o.WriteString(e)
		o.WriteString(",\n")
	}
	o.WriteString("]")
	return o.String()
}
