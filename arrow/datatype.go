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

	"github.com/apache/arrow-lists/go/arrow/internal/debug"
)

// Type is a logical type. They can be expressed as
// either a primitive physical type (bytes or bits of some fixed size), a
// nested type consisting of other data types, or another data type (e.g. a
// timestamp encoded as an int64)
type Type int

const (
	// NULL type having no physical storage
	NULL Type = iota

	// BOOL is a 1 bit, LSB bit-packed ordering
	BOOL

	// UINT8 is an Unsigned 8-bit little-endian integer
	UINT8

	// INT8 is a Signed 8-bit little-endian integer
	INT8

	// UINT16 is an Unsigned 16-bit little-endian integer
	UINT16

	// INT16 is a Signed 16-bit little-endian integer
	INT16

	// UINT32 is an Unsigned 32-bit little-endian integer
	UINT32

	// INT32 is a Signed 32-bit little-endian integer
	INT32

	// UINT64 is an Unsigned 64-bit little-endian integer
	UINT64

	// INT64 is a Signed 64-bit little-endian integer
	INT64

	// FLOAT16 is a 2-byte floating point value
	FLOAT16

	// FLOAT32 is a 4-byte floating point value
	FLOAT32

	// FLOAT64 is an 8-byte floating point value
	FLOAT64

	// STRING is a UTF8 variable-length string
	STRING

	// BINARY is a Variable-length byte type (no guarantee of UTF8-ness)
	BINARY

	// DATE32 is int32 days since the UNIX epoch
	DATE32

	// DATE64 is int64 milliseconds since the UNIX epoch
	DATE64

	// TIMESTAMP is an exact timestamp encoded with int64 since UNIX epoch
	TIMESTAMP

	// TIME32 is a signed 32-bit integer, representing either seconds or
	// milliseconds since midnight
	TIME32

	// TIME64 is a signed 64-bit integer, representing either microseconds or
	// nanoseconds since midnight
	TIME64

	// LIST is a list of some logical data type, with 32-bit offsets
	LIST

	// FIXED_SIZE_LIST is a list where every element holds the same number
	// of values
	FIXED_SIZE_LIST

	// DURATION is a measure of elapsed time in either seconds, milliseconds,
	// microseconds or nanoseconds.
	DURATION

	// LARGE_LIST is like LIST but with 64-bit offsets
	LARGE_LIST

	maxType
)

var typeNames = [...]string{
	NULL:            "NULL",
	BOOL:            "BOOL",
	UINT8:           "UINT8",
	INT8:            "INT8",
	UINT16:          "UINT16",
	INT16:           "INT16",
	UINT32:          "UINT32",
	INT32:           "INT32",
	UINT64:          "UINT64",
	INT64:           "INT64",
	FLOAT16:         "FLOAT16",
	FLOAT32:         "FLOAT32",
	FLOAT64:         "FLOAT64",
	STRING:          "STRING",
	BINARY:          "BINARY",
	DATE32:          "DATE32",
	DATE64:          "DATE64",
	TIMESTAMP:       "TIMESTAMP",
	TIME32:          "TIME32",
	TIME64:          "TIME64",
	LIST:            "LIST",
	FIXED_SIZE_LIST: "FIXED_SIZE_LIST",
	DURATION:        "DURATION",
	LARGE_LIST:      "LARGE_LIST",
}

func (t Type) String() string {
	if t < 0 || t >= maxType {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// DataType is the representation of an Arrow type.
type DataType interface {
	fmt.Stringer
	ID() Type
	// Name is name of the data type.
	Name() string
	Fingerprint() string
}

// FixedWidthDataType is the representation of an Arrow type that
// requires a fixed number of bits in memory for each element.
type FixedWidthDataType interface {
	DataType
	// BitWidth returns the number of bits required to store a single element of this data type in memory.
	BitWidth() int
}

type BinaryDataType interface {
	DataType
	IsUtf8() bool
	binary()
}

// ListLikeType is implemented by the list types, whose arrays hold a single
// child array of values.
type ListLikeType interface {
	DataType
	Elem() DataType
	ElemField() Field
}

// TemporalWithUnit is implemented by the types parameterized over a TimeUnit.
type TemporalWithUnit interface {
	FixedWidthDataType
	TimeUnit() TimeUnit
}

// TypeEqual checks if two DataType are the same, including the element types
// of nested types.
func TypeEqual(left, right DataType) bool {
	switch {
	case left == nil || right == nil:
		return left == nil && right == nil
	case left.ID() != right.ID():
		return false
	}

	switch l := left.(type) {
	case ListLikeType:
		r := right.(ListLikeType)
		if l.ElemField().Nullable != r.ElemField().Nullable {
			return false
		}
		if lf, ok := l.(*FixedSizeListType); ok && lf.Len() != right.(*FixedSizeListType).Len() {
			return false
		}
		return TypeEqual(l.Elem(), r.Elem())
	default:
		return left.Fingerprint() == right.Fingerprint()
	}
}

func typeIDFingerprint(id Type) string {
	c := string(rune(int(id) + int('A')))
	return "@" + c
}

func typeFingerprint(typ DataType) string { return typeIDFingerprint(typ.ID()) }

func timeUnitFingerprint(unit TimeUnit) rune {
	switch unit {
	case Second:
		return 's'
	case Millisecond:
		return 'm'
	case Microsecond:
		return 'u'
	case Nanosecond:
		return 'n'
	default:
		debug.Assert(false, "unexpected time unit")
		return rune(0)
	}
}
