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
	"sync/atomic"

	"github.com/apache/arrow-lists/go/arrow"
	"github.com/apache/arrow-lists/go/arrow/bitutil"
	"github.com/apache/arrow-lists/go/arrow/memory"
	"github.com/goccy/go-json"
)

const (
	minBuilderCapacity = 1 << 5
)

// Builder provides an interface to build arrow arrays.
type Builder interface {
	// you can unmarshal a json array to add the values to a builder
	json.Unmarshaler

	// Type returns the datatype that this is building
	Type() arrow.DataType

	// Retain increases the reference count by 1.
	// Retain may be called simultaneously from multiple goroutines.
	Retain()

	// Release decreases the reference count by 1.
	Release()

	// Len returns the number of elements in the array builder.
	Len() int

	// Cap returns the total number of elements that can be stored
	// without allocating additional memory.
	Cap() int

	// NullN returns the number of null values in the array builder.
	NullN() int

	// AppendNull adds a new null value to the array being built.
	AppendNull()

	// AppendNulls adds new n null values to the array being built.
	AppendNulls(n int)

	// Reserve ensures there is enough space for appending n elements
	// by checking the capacity and calling Resize if necessary.
	Reserve(n int)

	// Resize adjusts the space allocated by b to n elements. If n is greater than b.Cap(),
	// additional memory will be allocated. If n is smaller, the allocated memory may reduced.
	Resize(n int)

	// NewArray creates a new array from the memory buffers used
	// by the builder and resets the Builder so it can be used to build
	// a new array.
	NewArray() arrow.Array

	unmarshalOne(*json.Decoder) error
	unmarshal(*json.Decoder) error
}

// builder provides common functionality for managing the validity bitmap (nulls) when building arrays.
type builder struct {
	refCount   int64
	mem        memory.Allocator
	nullBitmap *memory.Buffer
	nulls      int
	length     int
	capacity   int
}

// Retain increases the reference count by 1.
// Retain may be called simultaneously from multiple goroutines.
func (b *builder) Retain() {
	atomic.AddInt64(&b.refCount, 1)
}

// Len returns the number of elements in the array builder.
func (b *builder) Len() int { return b.length }

// Cap returns the total number of elements that can be stored without allocating additional memory.
func (b *builder) Cap() int { return b.capacity }

// NullN returns the number of null values in the array builder.
func (b *builder) NullN() int { return b.nulls }

func (b *builder) init(capacity int) {
	toAlloc := bitutil.CeilByte(capacity) / 8
	b.nullBitmap = memory.NewResizableBuffer(b.mem)
	b.nullBitmap.Resize(toAlloc)
	b.capacity = capacity
	memory.Set(b.nullBitmap.Buf(), 0)
}

func (b *builder) reset() {
	if b.nullBitmap != nil {
		b.nullBitmap.Release()
		b.nullBitmap = nil
	}

	b.nulls = 0
	b.length = 0
	b.capacity = 0
}

func (b *builder) resize(newBits int, init func(int)) {
	if b.nullBitmap == nil {
		init(newBits)
		return
	}

	newBytesN := bitutil.CeilByte(newBits) / 8
	oldBytesN := b.nullBitmap.Len()
	b.nullBitmap.Resize(newBytesN)
	b.capacity = newBits
	if oldBytesN < newBytesN {
		memory.Set(b.nullBitmap.Buf()[oldBytesN:], 0)
	}
	if newBits < b.length {
		b.length = newBits
		b.nulls = newBits - bitutil.CountSetBits(b.nullBitmap.Buf(), 0, newBits)
	}
}

func (b *builder) reserve(elements int, resize func(int)) {
	if b.length+elements > b.capacity {
		newCap := bitutil.NextPowerOf2(b.length + elements)
		resize(newCap)
	}
}

// unsafeAppendBoolsToBitmap appends the contents of valid to the validity bitmap.
// As an optimization, if the valid slice is empty, the next length bits will be set to valid (not null).
func (b *builder) unsafeAppendBoolsToBitmap(valid []bool, length int) {
	if len(valid) == 0 {
		b.unsafeSetValid(length)
		return
	}

	for _, v := range valid {
		b.UnsafeAppendBoolToBitmap(v)
	}
}

func (b *builder) unsafeSetValid(length int) {
	bitmap := b.nullBitmap.Bytes()
	for i := b.length; i < b.length+length; i++ {
		bitutil.SetBit(bitmap, i)
	}
	b.length += length
}

func (b *builder) UnsafeAppendBoolToBitmap(isValid bool) {
	if isValid {
		bitutil.SetBit(b.nullBitmap.Bytes(), b.length)
	} else {
		b.nulls++
	}
	b.length++
}

// newLeafBuilder returns a builder for the leaf types that list values may
// be built from, or nil if dtype is not one of them.
func newLeafBuilder(mem memory.Allocator, dtype arrow.DataType) Builder {
	switch dtype.ID() {
	case arrow.BOOL:
		return NewBooleanBuilder(mem)
	case arrow.UINT8:
		return NewNumericBuilder[uint8](mem, dtype)
	case arrow.INT8:
		return NewNumericBuilder[int8](mem, dtype)
	case arrow.UINT16:
		return NewNumericBuilder[uint16](mem, dtype)
	case arrow.INT16:
		return NewNumericBuilder[int16](mem, dtype)
	case arrow.UINT32:
		return NewNumericBuilder[uint32](mem, dtype)
	case arrow.INT32:
		return NewNumericBuilder[int32](mem, dtype)
	case arrow.UINT64:
		return NewNumericBuilder[uint64](mem, dtype)
	case arrow.INT64:
		return NewNumericBuilder[int64](mem, dtype)
	case arrow.FLOAT32:
		return NewNumericBuilder[float32](mem, dtype)
	case arrow.FLOAT64:
		return NewNumericBuilder[float64](mem, dtype)
	case arrow.DATE32:
		return NewNumericBuilder[arrow.Date32](mem, dtype)
	case arrow.DATE64:
		return NewNumericBuilder[arrow.Date64](mem, dtype)
	case arrow.TIME32:
		switch dtype.(*arrow.Time32Type).Unit {
		case arrow.Second, arrow.Millisecond:
			return NewNumericBuilder[arrow.Time32](mem, dtype)
		}
	case arrow.TIME64:
		switch dtype.(*arrow.Time64Type).Unit {
		case arrow.Microsecond, arrow.Nanosecond:
			return NewNumericBuilder[arrow.Time64](mem, dtype)
		}
	case arrow.DURATION:
		return NewNumericBuilder[arrow.Duration](mem, dtype)
	case arrow.TIMESTAMP:
		return NewNumericBuilder[arrow.Timestamp](mem, dtype)
	case arrow.STRING:
		return NewStringBuilder(mem)
	case arrow.BINARY:
		return NewBinaryBuilder(mem, arrow.BinaryTypes.Binary)
	}
	return nil
}

// NewBuilder returns a builder for dtype, using the provided memory
// allocator. It panics if no builder is implemented for dtype.
func NewBuilder(mem memory.Allocator, dtype arrow.DataType) Builder {
	if b := newLeafBuilder(mem, dtype); b != nil {
		return b
	}

	switch dt := dtype.(type) {
	case *arrow.ListType:
		return newBaseListBuilder[int32](mem, dt, NewBuilder(mem, dt.Elem()))
	case *arrow.LargeListType:
		return newBaseListBuilder[int64](mem, dt, NewBuilder(mem, dt.Elem()))
	case *arrow.FixedSizeListType:
		return newFixedSizeListBuilder(mem, dt, NewBuilder(mem, dt.Elem()))
	}
	panic(fmt.Errorf("arrow/array: %w: unsupported builder for %s", arrow.ErrNotImplemented, dtype))
}
