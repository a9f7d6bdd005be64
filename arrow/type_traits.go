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

package arrow

import (
	"fmt"
	"unsafe"
)

const (
	Int32SizeBytes = int(unsafe.Sizeof(int32(0)))
	Int64SizeBytes = int(unsafe.Sizeof(int64(0)))
)

// CastFromBytesTo reinterprets b as a slice of T. The result shares b's
// memory and holds exactly len(b)/sizeof(T) elements, so indexing past the
// bytes that are really present panics instead of reading foreign memory.
func CastFromBytesTo[T any](b []byte) []T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	n := len(b) / size
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

// CastToBytes reinterprets v as a byte slice sharing the same memory.
func CastToBytes[T any](v []T) []byte {
	if len(v) == 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(v))), len(v)*size)
}

// Offset is the set of integer widths usable for variable-size list
// offsets.
type Offset interface {
	int32 | int64
}

// OffsetTraits describes the offset width O of a variable-size list.
type OffsetTraits[O Offset] struct{}

var (
	Int32OffsetTraits OffsetTraits[int32]
	Int64OffsetTraits OffsetTraits[int64]
)

// SizeBytes returns the width of a single offset in bytes.
func (OffsetTraits[O]) SizeBytes() int {
	var o O
	return int(unsafe.Sizeof(o))
}

// Prefix returns the tag used when naming list kinds of this width: empty
// for 32-bit offsets and "Large" for 64-bit offsets.
func (t OffsetTraits[O]) Prefix() string {
	if t.SizeBytes() == Int64SizeBytes {
		return "Large"
	}
	return ""
}

// BytesRequired returns the number of bytes required to be allocated
// in order to hold the passed in number of offsets.
func (t OffsetTraits[O]) BytesRequired(n int) int { return t.SizeBytes() * n }

// CastFromBytes reinterprets a byte slice as a slice of offsets.
func (OffsetTraits[O]) CastFromBytes(b []byte) []O { return CastFromBytesTo[O](b) }

// CastToBytes reinterprets a slice of offsets as a byte slice.
func (OffsetTraits[O]) CastToBytes(v []O) []byte { return CastToBytes(v) }

// ToInt converts v to the platform index type. It panics if v does not fit,
// which can only happen for 64-bit offsets on 32-bit platforms. List arrays
// index their values through it.
func (OffsetTraits[O]) ToInt(v O) int {
	i := int(v)
	if O(i) != v {
		panic(fmt.Errorf("arrow: offset %d overflows int: %w", v, ErrIndex))
	}
	return i
}
