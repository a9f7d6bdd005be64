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
	"bytes"
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/apache/arrow-lists/go/arrow"
	"github.com/apache/arrow-lists/go/arrow/bitutil"
	"github.com/apache/arrow-lists/go/arrow/internal/debug"
	"github.com/apache/arrow-lists/go/arrow/memory"
	"github.com/goccy/go-json"
	"golang.org/x/xerrors"
)

// FixedSizeList represents an immutable sequence of N array values.
type FixedSizeList struct {
	array
	n      int32
	values arrow.Array
}

// NewFixedSizeListData returns a new FixedSizeList array value, from data.
//
// NewFixedSizeListData panics with an error wrapping ErrShapeMismatch unless
// data holds no buffers and exactly one child, with ErrTypeTagMismatch
// unless the data type is a *arrow.FixedSizeListType, and with
// ErrStrideMismatch if the list size is positive and does not divide the
// length of the values.
func NewFixedSizeListData(data arrow.ArrayData) *FixedSizeList {
	a := &FixedSizeList{}
	a.refCount = 1
	a.setData(data.(*Data))
	return a
}

func (a *FixedSizeList) setData(data *Data) {
	if n := len(data.buffers); n != 0 {
		panic(fmt.Errorf("%w: FixedSizeList data should not contain a buffer for value offsets, got %d buffers", ErrShapeMismatch, n))
	}
	if n := len(data.childData); n != 1 {
		panic(fmt.Errorf("%w: FixedSizeList data should contain a single child array (values), got %d", ErrShapeMismatch, n))
	}
	dt, ok := data.dtype.(*arrow.FixedSizeListType)
	if !ok {
		panic(fmt.Errorf("%w: FixedSizeList data should contain a fixed_size_list data type, got %s", ErrTypeTagMismatch, data.dtype))
	}
	if n := int(dt.Len()); n > 0 && data.childData[0].Len()%n != 0 {
		panic(fmt.Errorf("%w: FixedSizeList child array length %d should be a multiple of %d", ErrStrideMismatch, data.childData[0].Len(), n))
	}

	a.array.setData(data)
	a.n = dt.Len()
	if a.values != nil {
		a.values.Release()
	}
	a.values = MakeFromData(data.childData[0])
}

// ListValues returns the values array shared by every element.
func (a *FixedSizeList) ListValues() arrow.Array { return a.values }

// ValueType returns the data type of the values array.
func (a *FixedSizeList) ValueType() arrow.DataType { return a.values.DataType() }

// ValueOffset returns the start of element i in the values array.
func (a *FixedSizeList) ValueOffset(i int) int { return (a.array.data.offset + i) * int(a.n) }

// ValueLength returns the number of values held by every element.
func (a *FixedSizeList) ValueLength() int { return int(a.n) }

// ValueOffsets returns the span [start, end) of element i in the values array.
func (a *FixedSizeList) ValueOffsets(i int) (start, end int64) {
	n := int64(a.n)
	start = int64(a.array.data.offset+i) * n
	end = start + n
	return
}

// Value returns element i as a zero-copy slice of the values array.
// The returned array must be Release'd after use.
func (a *FixedSizeList) Value(i int) arrow.Array {
	beg, end := a.ValueOffsets(i)
	return NewSlice(a.values, beg, end)
}

// BufferMemorySize returns the buffer memory of the list data and of the
// values array.
func (a *FixedSizeList) BufferMemorySize() int {
	return a.array.data.BufferMemorySize() + a.values.BufferMemorySize()
}

// ArrayMemorySize returns the memory of the list data, the values array and
// the view itself.
func (a *FixedSizeList) ArrayMemorySize() int {
	return a.array.data.ArrayMemorySize() + a.values.ArrayMemorySize() + int(unsafe.Sizeof(*a))
}

func (a *FixedSizeList) elementString(i int, null string) string {
	if a.IsNull(i) {
		return null
	}
	sub := a.Value(i)
	defer sub.Release()
	return sub.String()
}

func (a *FixedSizeList) String() string {
	return compactString(elementStrings(a.Len(), func(i int) string {
		return a.elementString(i, "(null)")
	}))
}

// GoString returns a multi-line rendering of the list, one element per line.
func (a *FixedSizeList) GoString() string {
	header := fmt.Sprintf("FixedSizeListArray<%d>", a.n)
	return debugString(header, elementStrings(a.Len(), func(i int) string {
		return a.elementString(i, "null")
	}))
}

func (a *FixedSizeList) getOneForMarshal(i int) interface{} {
	if a.IsNull(i) {
		return nil
	}
	slice := a.Value(i)
	defer slice.Release()
	v, err := json.Marshal(slice)
	if err != nil {
		panic(err)
	}

	return json.RawMessage(v)
}

func (a *FixedSizeList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	buf.WriteByte('[')
	for i := 0; i < a.Len(); i++ {
		if i != 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(a.getOneForMarshal(i)); err != nil {
			return nil, err
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func (a *FixedSizeList) Retain() {
	a.array.Retain()
	a.values.Retain()
}

func (a *FixedSizeList) Release() {
	a.array.Release()
	a.values.Release()
}

type FixedSizeListBuilder struct {
	builder

	dtype  *arrow.FixedSizeListType
	values Builder // value builder for the list's elements.
}

// NewFixedSizeListBuilder returns a builder, using the provided memory allocator.
// The created list builder will create a list whose elements will be of type etype.
func NewFixedSizeListBuilder(mem memory.Allocator, n int32, etype arrow.DataType) *FixedSizeListBuilder {
	return newFixedSizeListBuilder(mem, arrow.FixedSizeListOf(n, etype), NewBuilder(mem, etype))
}

// NewFixedSizeListBuilderWithValues returns a builder of lists of n values
// appended to values. The builder takes over the caller's reference to values.
func NewFixedSizeListBuilderWithValues(mem memory.Allocator, n int32, values Builder) *FixedSizeListBuilder {
	return newFixedSizeListBuilder(mem, arrow.FixedSizeListOf(n, values.Type()), values)
}

func newFixedSizeListBuilder(mem memory.Allocator, dtype *arrow.FixedSizeListType, values Builder) *FixedSizeListBuilder {
	return &FixedSizeListBuilder{
		builder: builder{refCount: 1, mem: mem},
		dtype:   dtype,
		values:  values,
	}
}

func (b *FixedSizeListBuilder) Type() arrow.DataType { return b.dtype }

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
func (b *FixedSizeListBuilder) Release() {
	debug.Assert(atomic.LoadInt64(&b.refCount) > 0, "too many releases")

	if atomic.AddInt64(&b.refCount, -1) == 0 {
		if b.nullBitmap != nil {
			b.nullBitmap.Release()
			b.nullBitmap = nil
		}
		b.values.Release()
	}
}

// Append starts a new element. The caller appends exactly n values to the
// ValueBuilder for it.
func (b *FixedSizeListBuilder) Append(v bool) {
	b.Reserve(1)
	b.unsafeAppendBoolToBitmap(v)
}

// AppendNull appends a null element along with the n null values it spans.
func (b *FixedSizeListBuilder) AppendNull() {
	b.Reserve(1)
	b.unsafeAppendBoolToBitmap(false)
	b.values.AppendNulls(int(b.dtype.Len()))
}

func (b *FixedSizeListBuilder) AppendNulls(n int) {
	for i := 0; i < n; i++ {
		b.AppendNull()
	}
}

// AppendValues appends len(valid) elements whose values have already been
// appended to the ValueBuilder.
func (b *FixedSizeListBuilder) AppendValues(valid []bool) {
	b.Reserve(len(valid))
	b.builder.unsafeAppendBoolsToBitmap(valid, len(valid))
}

func (b *FixedSizeListBuilder) unsafeAppendBoolToBitmap(isValid bool) {
	if isValid {
		bitutil.SetBit(b.nullBitmap.Bytes(), b.length)
	} else {
		b.nulls++
	}
	b.length++
}

// Reserve ensures there is enough space for appending n elements
// by checking the capacity and calling Resize if necessary.
func (b *FixedSizeListBuilder) Reserve(n int) {
	b.builder.reserve(n, b.Resize)
}

// Resize adjusts the space allocated by b to n elements. If n is greater than b.Cap(),
// additional memory will be allocated. If n is smaller, the allocated memory may reduced.
func (b *FixedSizeListBuilder) Resize(n int) {
	if n < minBuilderCapacity {
		n = minBuilderCapacity
	}

	if b.capacity == 0 {
		b.init(n)
	} else {
		b.builder.resize(n, b.builder.init)
	}
}

func (b *FixedSizeListBuilder) ValueBuilder() Builder {
	return b.values
}

// NewArray creates a FixedSizeList array from the memory buffers used by the builder and resets the FixedSizeListBuilder
// so it can be used to build a new array.
func (b *FixedSizeListBuilder) NewArray() arrow.Array {
	return b.NewListArray()
}

// NewListArray creates a FixedSizeList array from the memory buffers used by the builder and resets the FixedSizeListBuilder
// so it can be used to build a new array.
func (b *FixedSizeListBuilder) NewListArray() (a *FixedSizeList) {
	data := b.newData()
	a = NewFixedSizeListData(data)
	data.Release()
	return
}

func (b *FixedSizeListBuilder) newData() (data *Data) {
	values := b.values.NewArray()
	defer values.Release()

	data = NewData(
		b.dtype, b.length,
		b.nullBitmap,
		nil,
		[]arrow.ArrayData{values.Data()},
		b.nulls,
		0,
	)
	b.reset()

	return
}

func (b *FixedSizeListBuilder) unmarshalOne(dec *json.Decoder) error {
	t, err := dec.Token()
	if err != nil {
		return err
	}

	switch t {
	case json.Delim('['):
		b.Append(true)
		before := b.values.Len()
		if err := b.values.unmarshal(dec); err != nil {
			return err
		}
		if got := b.values.Len() - before; got != int(b.dtype.Len()) {
			return xerrors.Errorf("arrow/array: %s element holds %d values: %w", b.dtype, got, ErrStrideMismatch)
		}
		// consume ']'
		_, err := dec.Token()
		return err
	case nil:
		b.AppendNull()
	default:
		return &json.UnmarshalTypeError{
			Value:  fmt.Sprint(t),
			Struct: b.dtype.String(),
		}
	}

	return nil
}

func (b *FixedSizeListBuilder) unmarshal(dec *json.Decoder) error {
	for dec.More() {
		if err := b.unmarshalOne(dec); err != nil {
			return err
		}
	}
	return nil
}

func (b *FixedSizeListBuilder) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return unmarshalArray(dec, b, "fixed size list")
}

var (
	_ arrow.Array = (*FixedSizeList)(nil)
	_ Builder     = (*FixedSizeListBuilder)(nil)
)
