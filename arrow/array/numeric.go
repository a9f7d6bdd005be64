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
	"reflect"
	"strconv"
	"strings"
	"sync/atomic"
	"unsafe"

	"github.com/apache/arrow-lists/go/arrow"
	"github.com/apache/arrow-lists/go/arrow/bitutil"
	"github.com/apache/arrow-lists/go/arrow/internal/debug"
	"github.com/apache/arrow-lists/go/arrow/memory"
	"github.com/goccy/go-json"
	"golang.org/x/exp/constraints"
	"golang.org/x/xerrors"
)

// NumericType is the set of Go types backing the fixed-width arrays.
type NumericType interface {
	constraints.Integer | constraints.Float
}

// Numeric represents an immutable sequence of fixed-width values.
type Numeric[T NumericType] struct {
	array
	values []T
}

type (
	Int8      = Numeric[int8]
	Int16     = Numeric[int16]
	Int32     = Numeric[int32]
	Int64     = Numeric[int64]
	Uint8     = Numeric[uint8]
	Uint16    = Numeric[uint16]
	Uint32    = Numeric[uint32]
	Uint64    = Numeric[uint64]
	Float32   = Numeric[float32]
	Float64   = Numeric[float64]
	Date32    = Numeric[arrow.Date32]
	Date64    = Numeric[arrow.Date64]
	Time32    = Numeric[arrow.Time32]
	Time64    = Numeric[arrow.Time64]
	Timestamp = Numeric[arrow.Timestamp]
	Duration  = Numeric[arrow.Duration]
)

// NewNumericData creates a new Numeric array from the data.
func NewNumericData[T NumericType](data arrow.ArrayData) *Numeric[T] {
	a := &Numeric[T]{}
	a.refCount = 1
	a.setData(data.(*Data))
	return a
}

// Value returns the value at the specified index.
func (a *Numeric[T]) Value(i int) T { return a.values[i] }

// Values returns the values.
func (a *Numeric[T]) Values() []T { return a.values }

func (a *Numeric[T]) String() string {
	o := new(strings.Builder)
	o.WriteString("[")
	for i, v := range a.values {
		if i > 0 {
			o.WriteString(" ")
		}
		switch {
		case a.IsNull(i):
			o.WriteString("(null)")
		default:
			fmt.Fprintf(o, "%v", v)
		}
	}
	o.WriteString("]")
	return o.String()
}

func (a *Numeric[T]) setData(data *Data) {
	if len(data.buffers) != 1 {
		panic(fmt.Errorf("%w: %s array expects 1 buffer, got %d", ErrShapeMismatch, data.dtype, len(data.buffers)))
	}

	a.array.setData(data)
	a.values = nil
	if vals := data.buffers[0]; vals != nil {
		values := arrow.CastFromBytesTo[T](vals.Bytes())
		beg := a.array.data.offset
		end := beg + a.array.data.length
		a.values = values[beg:end]
	}
}

func (a *Numeric[T]) getOneForMarshal(i int) interface{} {
	if a.IsNull(i) {
		return nil
	}
	return a.values[i]
}

func (a *Numeric[T]) MarshalJSON() ([]byte, error) {
	vals := make([]interface{}, a.Len())
	for i := range vals {
		vals[i] = a.getOneForMarshal(i)
	}
	return json.Marshal(vals)
}

func (a *Numeric[T]) ArrayMemorySize() int {
	return a.data.ArrayMemorySize() + int(unsafe.Sizeof(*a))
}

func bitWidthOf[T NumericType]() int {
	var z T
	return int(unsafe.Sizeof(z)) * 8
}

// parseNumber converts a JSON number to T, rejecting values T cannot hold.
func parseNumber[T NumericType](n json.Number) (T, error) {
	var z T
	bits := bitWidthOf[T]()
	switch reflect.TypeOf(z).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(string(n), 10, bits)
		return T(v), err
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		v, err := strconv.ParseUint(string(n), 10, bits)
		return T(v), err
	default:
		v, err := strconv.ParseFloat(string(n), bits)
		return T(v), err
	}
}

// NumericBuilder builds Numeric arrays of any fixed-width arrow type backed
// by T.
type NumericBuilder[T NumericType] struct {
	builder

	dtype   arrow.DataType
	data    *memory.Buffer
	rawData []T
}

// NewNumericBuilder returns a builder for arrays of dtype. It panics if dtype
// is not a fixed-width type of the same width as T.
func NewNumericBuilder[T NumericType](mem memory.Allocator, dtype arrow.DataType) *NumericBuilder[T] {
	fw, ok := dtype.(arrow.FixedWidthDataType)
	if !ok || fw.BitWidth() != bitWidthOf[T]() {
		panic(fmt.Errorf("arrow/array: %w: cannot build %s from %T values", arrow.ErrType, dtype, *new(T)))
	}
	return &NumericBuilder[T]{builder: builder{refCount: 1, mem: mem}, dtype: dtype}
}

func (b *NumericBuilder[T]) Type() arrow.DataType { return b.dtype }

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
func (b *NumericBuilder[T]) Release() {
	debug.Assert(atomic.LoadInt64(&b.refCount) > 0, "too many releases")

	if atomic.AddInt64(&b.refCount, -1) == 0 {
		if b.nullBitmap != nil {
			b.nullBitmap.Release()
			b.nullBitmap = nil
		}
		if b.data != nil {
			b.data.Release()
			b.data = nil
			b.rawData = nil
		}
	}
}

func (b *NumericBuilder[T]) Append(v T) {
	b.Reserve(1)
	b.UnsafeAppend(v)
}

func (b *NumericBuilder[T]) AppendNull() {
	b.Reserve(1)
	b.UnsafeAppendBoolToBitmap(false)
}

func (b *NumericBuilder[T]) AppendNulls(n int) {
	for i := 0; i < n; i++ {
		b.AppendNull()
	}
}

func (b *NumericBuilder[T]) UnsafeAppend(v T) {
	bitutil.SetBit(b.nullBitmap.Bytes(), b.length)
	b.rawData[b.length] = v
	b.length++
}

// AppendValues will append the values in the v slice. The valid slice determines which values
// in v are valid (not null). The valid slice must either be empty or be equal in length to v. If empty,
// all values in v are appended and considered valid.
func (b *NumericBuilder[T]) AppendValues(v []T, valid []bool) {
	if len(v) != len(valid) && len(valid) != 0 {
		panic("len(v) != len(valid) && len(valid) != 0")
	}

	if len(v) == 0 {
		return
	}

	b.Reserve(len(v))
	copy(b.rawData[b.length:], v)
	b.builder.unsafeAppendBoolsToBitmap(valid, len(v))
}

func (b *NumericBuilder[T]) init(capacity int) {
	b.builder.init(capacity)

	b.data = memory.NewResizableBuffer(b.mem)
	b.data.Resize(capacity * bitWidthOf[T]() / 8)
	b.rawData = arrow.CastFromBytesTo[T](b.data.Bytes())
}

// Reserve ensures there is enough space for appending n elements
// by checking the capacity and calling Resize if necessary.
func (b *NumericBuilder[T]) Reserve(n int) {
	b.builder.reserve(n, b.Resize)
}

// Resize adjusts the space allocated by b to n elements. If n is greater than b.Cap(),
// additional memory will be allocated. If n is smaller, the allocated memory may reduced.
func (b *NumericBuilder[T]) Resize(n int) {
	nBuilder := n
	if n < minBuilderCapacity {
		n = minBuilderCapacity
	}

	if b.capacity == 0 {
		b.init(n)
	} else {
		b.builder.resize(nBuilder, b.init)
		b.data.Resize(n * bitWidthOf[T]() / 8)
		b.rawData = arrow.CastFromBytesTo[T](b.data.Bytes())
	}
}

// NewArray creates a Numeric array from the memory buffers used by the builder and resets the NumericBuilder
// so it can be used to build a new array.
func (b *NumericBuilder[T]) NewArray() arrow.Array {
	return b.NewNumericArray()
}

// NewNumericArray creates a Numeric array from the memory buffers used by the builder and resets the NumericBuilder
// so it can be used to build a new array.
func (b *NumericBuilder[T]) NewNumericArray() (a *Numeric[T]) {
	data := b.newData()
	a = NewNumericData[T](data)
	data.Release()
	return
}

func (b *NumericBuilder[T]) newData() (data *Data) {
	bytesRequired := b.length * bitWidthOf[T]() / 8
	if bytesRequired > 0 && bytesRequired < b.data.Len() {
		// trim buffers
		b.data.Resize(bytesRequired)
	}
	data = NewData(b.dtype, b.length, b.nullBitmap, []*memory.Buffer{b.data}, nil, b.nulls, 0)
	b.reset()

	if b.data != nil {
		b.data.Release()
		b.data = nil
		b.rawData = nil
	}

	return
}

func (b *NumericBuilder[T]) unmarshalOne(dec *json.Decoder) error {
	t, err := dec.Token()
	if err != nil {
		return err
	}

	switch v := t.(type) {
	case nil:
		b.AppendNull()
	case json.Number:
		val, err := parseNumber[T](v)
		if err != nil {
			return xerrors.Errorf("arrow/array: cannot unmarshal %q into %s: %w", v.String(), b.dtype, err)
		}
		b.Append(val)
	case float64:
		b.Append(T(v))
	default:
		return &json.UnmarshalTypeError{
			Value: fmt.Sprint(t),
			Type:  reflect.TypeOf(*new(T)),
		}
	}
	return nil
}

func (b *NumericBuilder[T]) unmarshal(dec *json.Decoder) error {
	for dec.More() {
		if err := b.unmarshalOne(dec); err != nil {
			return err
		}
	}
	return nil
}

func (b *NumericBuilder[T]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return unmarshalArray(dec, b, "numeric")
}

// unmarshalArray reads the opening bracket of a JSON array from dec and
// appends its elements to b.
func unmarshalArray(dec *json.Decoder, b Builder, kind string) error {
	t, err := dec.Token()
	if err != nil {
		return err
	}

	if delim, ok := t.(json.Delim); !ok || delim != '[' {
		return xerrors.Errorf("arrow/array: %s builder must unpack from json array, found %v", kind, t)
	}

	return b.unmarshal(dec)
}

var (
	_ arrow.Array = (*Int64)(nil)
	_ Builder     = (*NumericBuilder[int64])(nil)
)
