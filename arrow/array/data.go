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
	"unsafe"

	"github.com/apache/arrow-lists/go/arrow"
	"github.com/apache/arrow-lists/go/arrow/bitutil"
	"github.com/apache/arrow-lists/go/arrow/internal/debug"
	"github.com/apache/arrow-lists/go/arrow/memory"
)

// UnknownNullCount tells NewData to compute the null count from the
// validity bitmap the first time it is requested.
const UnknownNullCount = -1

// Data represents the memory and metadata for an Arrow array.
type Data struct {
	refCount   int64
	dtype      arrow.DataType
	nulls      int64
	offset     int
	length     int
	nullBitmap *memory.Buffer
	buffers    []*memory.Buffer
	childData  []arrow.ArrayData
}

// NewData creates a new Data. The validity bitmap, the buffers and the
// children are retained and released again once the Data is released.
func NewData(dtype arrow.DataType, length int, nullBitmap *memory.Buffer, buffers []*memory.Buffer, childData []arrow.ArrayData, nulls, offset int) *Data {
	if nullBitmap != nil {
		nullBitmap.Retain()
	}
	for _, b := range buffers {
		if b != nil {
			b.Retain()
		}
	}
	for _, child := range childData {
		if child != nil {
			child.Retain()
		}
	}

	return &Data{
		refCount:   1,
		dtype:      dtype,
		nulls:      int64(nulls),
		length:     length,
		offset:     offset,
		nullBitmap: nullBitmap,
		buffers:    buffers,
		childData:  childData,
	}
}

// Retain increases the reference count by 1.
// Retain may be called simultaneously from multiple goroutines.
func (d *Data) Retain() {
	atomic.AddInt64(&d.refCount, 1)
}

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
// Release may be called simultaneously from multiple goroutines.
func (d *Data) Release() {
	debug.Assert(atomic.LoadInt64(&d.refCount) > 0, "too many releases")

	if atomic.AddInt64(&d.refCount, -1) == 0 {
		if d.nullBitmap != nil {
			d.nullBitmap.Release()
		}
		for _, b := range d.buffers {
			if b != nil {
				b.Release()
			}
		}
		for _, b := range d.childData {
			if b != nil {
				b.Release()
			}
		}
		d.nullBitmap, d.buffers, d.childData = nil, nil, nil
	}
}

// DataType returns the DataType of the data.
func (d *Data) DataType() arrow.DataType { return d.dtype }

// NullN returns the number of nulls.
func (d *Data) NullN() int {
	if n := atomic.LoadInt64(&d.nulls); n >= 0 {
		return int(n)
	}

	n := 0
	if d.nullBitmap != nil {
		n = d.length - bitutil.CountSetBits(d.nullBitmap.Bytes(), d.offset, d.length)
	}
	atomic.StoreInt64(&d.nulls, int64(n))
	return n
}

// Len returns the length.
func (d *Data) Len() int { return d.length }

// Offset returns the offset.
func (d *Data) Offset() int { return d.offset }

// NullBitmap returns the validity bitmap, which may be nil.
func (d *Data) NullBitmap() *memory.Buffer { return d.nullBitmap }

// Buffers returns the buffers.
func (d *Data) Buffers() []*memory.Buffer { return d.buffers }

// Children returns the child data, one entry per child array.
func (d *Data) Children() []arrow.ArrayData { return d.childData }

// BufferMemorySize returns the capacity in bytes of the validity bitmap and
// every buffer. Child data is not included.
func (d *Data) BufferMemorySize() int {
	var size int
	if d.nullBitmap != nil {
		size += d.nullBitmap.Cap()
	}
	for _, b := range d.buffers {
		if b != nil {
			size += b.Cap()
		}
	}
	return size
}

// ArrayMemorySize returns BufferMemorySize plus the size of the Data itself.
func (d *Data) ArrayMemorySize() int {
	return d.BufferMemorySize() + int(unsafe.Sizeof(*d))
}

// NewSliceData returns a new slice that shares backing data with the input.
// The returned Data slice starts at i and extends j-i elements, such as:
//
//	slice := data[i:j]
//
// The returned value must be Release'd after use.
//
// NewSliceData panics if the slice is outside the valid range of the input Data.
// NewSliceData panics if j < i.
func NewSliceData(data arrow.ArrayData, i, j int64) arrow.ArrayData {
	if i < 0 || j > int64(data.Len()) || i > j {
		panic(fmt.Errorf("arrow/array: slice [%d:%d] out of range for length %d: %w", i, j, data.Len(), arrow.ErrIndex))
	}

	nulls := UnknownNullCount
	if data.NullN() == 0 {
		nulls = 0
	}

	return NewData(data.DataType(), int(j-i), data.NullBitmap(), data.Buffers(), data.Children(), nulls, data.Offset()+int(i))
}

var (
	_ arrow.ArrayData = (*Data)(nil)
)
