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
)

// BaseList represents an immutable sequence of variable-length lists whose
// element spans are delimited by offsets of width O into a shared values
// array.
type BaseList[O arrow.Offset] struct {
	array
	values  arrow.Array
	offsets []O
}

type (
	// List is a BaseList with 32-bit offsets.
	List = BaseList[int32]
	// LargeList is a BaseList with 64-bit offsets.
	LargeList = BaseList[int64]
)

// NewBaseListData returns a new list array value, from data.
//
// NewBaseListData panics with an error wrapping ErrShapeMismatch unless data
// holds exactly one buffer and one child, with ErrTypeTagMismatch unless the
// data type is the list type for offsets of width O, and with
// ErrOffsetConvention unless the offsets buffer starts at zero. The offsets
// are otherwise trusted.
func NewBaseListData[O arrow.Offset](data arrow.ArrayData) *BaseList[O] {
	a := &BaseList[O]{}
	a.refCount = 1
	a.setData(data.(*Data))
	return a
}

// NewListData returns a new List array value, from data.
func NewListData(data arrow.ArrayData) *List { return NewBaseListData[int32](data) }

// NewLargeListData returns a new LargeList array value, from data.
func NewLargeListData(data arrow.ArrayData) *LargeList { return NewBaseListData[int64](data) }

func listTypeID[O arrow.Offset]() arrow.Type {
	var traits arrow.OffsetTraits[O]
	if traits.SizeBytes() == arrow.Int64SizeBytes {
		return arrow.LARGE_LIST
	}
	return arrow.LIST
}

func listKind[O arrow.Offset]() string { return arrow.OffsetTraits[O]{}.Prefix() + "List" }

func (a *BaseList[O]) setData(data *Data) {
	kind := listKind[O]()
	if n := len(data.buffers); n != 1 {
		panic(fmt.Errorf("%w: %s data should contain a single buffer only (value offsets), got %d", ErrShapeMismatch, kind, n))
	}
	if n := len(data.childData); n != 1 {
		panic(fmt.Errorf("%w: %s data should contain a single child array (values), got %d", ErrShapeMismatch, kind, n))
	}
	if _, ok := data.dtype.(arrow.ListLikeType); !ok || data.dtype.ID() != listTypeID[O]() {
		panic(fmt.Errorf("%w: %s data cannot hold type %s", ErrTypeTagMismatch, kind, data.dtype))
	}

	var offsets []O
	if buf := data.buffers[0]; buf != nil {
		offsets = arrow.OffsetTraits[O]{}.CastFromBytes(buf.Bytes())
	}
	switch {
	case len(offsets) == 0:
		panic(fmt.Errorf("%w: %s offsets buffer is empty", ErrOffsetConvention, kind))
	case offsets[0] != 0:
		panic(fmt.Errorf("%w: %s offsets start at %d", ErrOffsetConvention, kind, offsets[0]))
	}

	a.array.setData(data)
	a.offsets = offsets
	if a.values != nil {
		a.values.Release()
	}
	a.values = MakeFromData(data.childData[0])
}

// ListValues returns the values array shared by every element.
func (a *BaseList[O]) ListValues() arrow.Array { return a.values }

// ValueType returns the data type of the values array.
func (a *BaseList[O]) ValueType() arrow.DataType { return a.values.DataType() }

// ValueOffset returns the start of element i in the values array.
func (a *BaseList[O]) ValueOffset(i int) O { return a.offsets[a.array.data.offset+i] }

// ValueLength returns the number of values held by element i.
func (a *BaseList[O]) ValueLength(i int) O {
	j := a.array.data.offset + i
	return a.offsets[j+1] - a.offsets[j]
}

// ValueOffsets returns the span [start, end) of element i in the values array.
func (a *BaseList[O]) ValueOffsets(i int) (start, end int64) {
	j := a.array.data.offset + i
	start, end = int64(a.offsets[j]), int64(a.offsets[j+1])
	return
}

// ValueRange returns the span [start, end) of element i as indices into
// the values array. It panics if an offset does not fit in an int.
func (a *BaseList[O]) ValueRange(i int) (start, end int) {
	var traits arrow.OffsetTraits[O]
	j := a.array.data.offset + i
	return traits.ToInt(a.offsets[j]), traits.ToInt(a.offsets[j+1])
}

// Value returns element i as a zero-copy slice of the values array.
// The returned array must be Release'd after use.
func (a *BaseList[O]) Value(i int) arrow.Array {
	beg, end := a.ValueRange(i)
	return NewSlice(a.values, int64(beg), int64(end))
}

// Offsets returns the len+1 offsets of the elements of this view.
func (a *BaseList[O]) Offsets() []O {
	beg := a.array.data.offset
	return a.offsets[beg : beg+a.array.data.length+1]
}

// ArrayMemorySize returns the memory of the list data and the view itself.
// The values array is not included.
func (a *BaseList[O]) ArrayMemorySize() int {
	return a.array.data.ArrayMemorySize() + int(unsafe.Sizeof(*a))
}

func (a *BaseList[O]) elementString(i int, null string) string {
	if a.IsNull(i) {
		return null
	}
	sub := a.Value(i)
	defer sub.Release()
	return sub.String()
}

func (a *BaseList[O]) String() string {
	return compactString(elementStrings(a.Len(), func(i int) string {
		return a.elementString(i, "(null)")
	}))
}

// GoString returns a multi-line rendering of the list, one element per line.
func (a *BaseList[O]) GoString() string {
	return debugString(arrow.OffsetTraits[O]{}.Prefix()+"ListArray", elementStrings(a.Len(), func(i int) string {
		return a.elementString(i, "null")
	}))
}

func (a *BaseList[O]) getOneForMarshal(i int) interface{} {
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

func (a *BaseList[O]) MarshalJSON() ([]byte, error) {
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

func (a *BaseList[O]) Retain() {
	a.array.Retain()
	a.values.Retain()
}

func (a *BaseList[O]) Release() {
	a.array.Release()
	a.values.Release()
}

// BaseListBuilder builds list arrays with offsets of width O.
type BaseListBuilder[O arrow.Offset] struct {
	builder

	dtype   arrow.ListLikeType
	values  Builder // value builder for the list's elements.
	offsets *typedBufferBuilder[O]
}

type (
	ListBuilder      = BaseListBuilder[int32]
	LargeListBuilder = BaseListBuilder[int64]
)

// NewListBuilder returns a builder, using the provided memory allocator.
// The created list builder will create a list whose elements will be of type etype.
func NewListBuilder(mem memory.Allocator, etype arrow.DataType) *ListBuilder {
	return newBaseListBuilder[int32](mem, arrow.ListOf(etype), NewBuilder(mem, etype))
}

// NewLargeListBuilder returns a builder, using the provided memory allocator.
// The created list builder will create a list whose elements will be of type etype.
func NewLargeListBuilder(mem memory.Allocator, etype arrow.DataType) *LargeListBuilder {
	return newBaseListBuilder[int64](mem, arrow.LargeListOf(etype), NewBuilder(mem, etype))
}

// NewListBuilderWithValues returns a list builder appending its values to
// values. The builder takes over the caller's reference to values.
func NewListBuilderWithValues(mem memory.Allocator, values Builder) *ListBuilder {
	return newBaseListBuilder[int32](mem, arrow.ListOf(values.Type()), values)
}

// NewLargeListBuilderWithValues returns a large list builder appending its
// values to values. The builder takes over the caller's reference to values.
func NewLargeListBuilderWithValues(mem memory.Allocator, values Builder) *LargeListBuilder {
	return newBaseListBuilder[int64](mem, arrow.LargeListOf(values.Type()), values)
}

func newBaseListBuilder[O arrow.Offset](mem memory.Allocator, dtype arrow.ListLikeType, values Builder) *BaseListBuilder[O] {
	return &BaseListBuilder[O]{
		builder: builder{refCount: 1, mem: mem},
		dtype:   dtype,
		values:  values,
		offsets: newTypedBufferBuilder[O](mem),
	}
}

func (b *BaseListBuilder[O]) Type() arrow.DataType { return b.dtype }

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
func (b *BaseListBuilder[O]) Release() {
	debug.Assert(atomic.LoadInt64(&b.refCount) > 0, "too many releases")

	if atomic.AddInt64(&b.refCount, -1) == 0 {
		if b.nullBitmap != nil {
			b.nullBitmap.Release()
			b.nullBitmap = nil
		}
		b.values.Release()
		b.offsets.Release()
	}
}

func (b *BaseListBuilder[O]) appendNextOffset() {
	b.offsets.AppendValue(O(b.values.Len()))
}

// Append starts a new element. Its values are whatever is appended to the
// ValueBuilder before the next element is started.
func (b *BaseListBuilder[O]) Append(v bool) {
	b.Reserve(1)
	b.unsafeAppendBoolToBitmap(v)
	b.appendNextOffset()
}

func (b *BaseListBuilder[O]) AppendNull() {
	b.Reserve(1)
	b.unsafeAppendBoolToBitmap(false)
	b.appendNextOffset()
}

func (b *BaseListBuilder[O]) AppendNulls(n int) {
	for i := 0; i < n; i++ {
		b.AppendNull()
	}
}

// AppendValues appends len(valid) elements, with offsets giving the start
// of each in the ValueBuilder.
func (b *BaseListBuilder[O]) AppendValues(offsets []O, valid []bool) {
	b.Reserve(len(valid))
	b.offsets.AppendValues(offsets)
	b.builder.unsafeAppendBoolsToBitmap(valid, len(valid))
}

func (b *BaseListBuilder[O]) unsafeAppendBoolToBitmap(isValid bool) {
	if isValid {
		bitutil.SetBit(b.nullBitmap.Bytes(), b.length)
	} else {
		b.nulls++
	}
	b.length++
}

func (b *BaseListBuilder[O]) init(capacity int) {
	b.builder.init(capacity)
	b.offsets.resize((capacity + 1) * arrow.OffsetTraits[O]{}.SizeBytes())
}

// Reserve ensures there is enough space for appending n elements
// by checking the capacity and calling Resize if necessary.
func (b *BaseListBuilder[O]) Reserve(n int) {
	b.builder.reserve(n, b.resizeHelper)
}

// Resize adjusts the space allocated by b to n elements. If n is greater than b.Cap(),
// additional memory will be allocated. If n is smaller, the allocated memory may reduced.
func (b *BaseListBuilder[O]) Resize(n int) {
	b.resizeHelper(n)
	b.offsets.resize((n + 1) * arrow.OffsetTraits[O]{}.SizeBytes())
}

func (b *BaseListBuilder[O]) resizeHelper(n int) {
	if n < minBuilderCapacity {
		n = minBuilderCapacity
	}

	if b.capacity == 0 {
		b.init(n)
	} else {
		b.builder.resize(n, b.builder.init)
	}
}

func (b *BaseListBuilder[O]) ValueBuilder() Builder {
	return b.values
}

// NewArray creates a list array from the memory buffers used by the builder and resets the builder
// so it can be used to build a new array.
func (b *BaseListBuilder[O]) NewArray() arrow.Array {
	return b.NewListArray()
}

// NewListArray creates a list array from the memory buffers used by the builder and resets the builder
// so it can be used to build a new array.
func (b *BaseListBuilder[O]) NewListArray() (a *BaseList[O]) {
	data := b.newData()
	a = NewBaseListData[O](data)
	data.Release()
	return
}

// NewLargeListArray is NewListArray for builders of large lists.
func (b *BaseListBuilder[O]) NewLargeListArray() *BaseList[O] { return b.NewListArray() }

func (b *BaseListBuilder[O]) newData() (data *Data) {
	if b.offsets.Len() != b.length+1 {
		b.appendNextOffset()
	}

	values := b.values.NewArray()
	defer values.Release()

	offsets := b.offsets.Finish()
	defer offsets.Release()

	data = NewData(
		b.dtype, b.length,
		b.nullBitmap,
		[]*memory.Buffer{offsets},
		[]arrow.ArrayData{values.Data()},
		b.nulls,
		0,
	)
	b.reset()

	return
}

func (b *BaseListBuilder[O]) unmarshalOne(dec *json.Decoder) error {
	t, err := dec.Token()
	if err != nil {
		return err
	}

	switch t {
	case json.Delim('['):
		b.Append(true)
		if err := b.values.unmarshal(dec); err != nil {
			return err
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

func (b *BaseListBuilder[O]) unmarshal(dec *json.Decoder) error {
	for dec.More() {
		if err := b.unmarshalOne(dec); err != nil {
			return err
		}
	}
	return nil
}

func (b *BaseListBuilder[O]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return unmarshalArray(dec, b, "list")
}

var (
	_ arrow.Array = (*List)(nil)
	_ arrow.Array = (*LargeList)(nil)
	_ Builder     = (*ListBuilder)(nil)
	_ Builder     = (*LargeListBuilder)(nil)
)
