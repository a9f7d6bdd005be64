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

package arrow_test

import (
	"testing"

	"github.com/apache/arrow-lists/go/arrow"
	"github.com/stretchr/testify/assert"
)

func TestTypeString(t *testing.T) {
	assert.Equal(t, "LIST", arrow.LIST.String())
	assert.Equal(t, "LARGE_LIST", arrow.LARGE_LIST.String())
	assert.Equal(t, "FIXED_SIZE_LIST", arrow.FIXED_SIZE_LIST.String())
	assert.Equal(t, "Type(-1)", arrow.Type(-1).String())
	assert.Equal(t, "Type(100)", arrow.Type(100).String())
}

// TestTimeUnit_String verifies each time unit matches its string representation.
func TestTimeUnit_String(t *testing.T) {
	tests := []struct {
		u   arrow.TimeUnit
		exp string
	}{
		{arrow.Nanosecond, "ns"},
		{arrow.Microsecond, "us"},
		{arrow.Millisecond, "ms"},
		{arrow.Second, "s"},
	}
	for _, test := range tests {
		t.Run(test.exp, func(t *testing.T) {
			assert.Equal(t, test.exp, test.u.String())
		})
	}
}

func TestDataTypeStrings(t *testing.T) {
	tests := []struct {
		dt  arrow.DataType
		exp string
	}{
		{arrow.PrimitiveTypes.Int32, "int32"},
		{arrow.PrimitiveTypes.Uint64, "uint64"},
		{arrow.FixedWidthTypes.Boolean, "bool"},
		{arrow.FixedWidthTypes.Time32ms, "time32[ms]"},
		{arrow.FixedWidthTypes.Duration_us, "duration[us]"},
		{&arrow.TimestampType{Unit: arrow.Second}, "timestamp[s]"},
		{arrow.FixedWidthTypes.Timestamp_ns, "timestamp[ns, tz=UTC]"},
		{arrow.BinaryTypes.String, "utf8"},
		{arrow.BinaryTypes.Binary, "binary"},
		{arrow.ListOf(arrow.PrimitiveTypes.Int32), "list<item: int32, nullable>"},
		{arrow.ListOfNonNullable(arrow.BinaryTypes.String), "list<item: utf8>"},
		{arrow.LargeListOf(arrow.PrimitiveTypes.Int8), "large_list<item: int8, nullable>"},
		{arrow.FixedSizeListOf(3, arrow.PrimitiveTypes.Float64), "fixed_size_list<item: float64, nullable>[3]"},
		{arrow.ListOf(arrow.ListOf(arrow.FixedWidthTypes.Boolean)), "list<item: list<item: bool, nullable>, nullable>"},
	}
	for _, test := range tests {
		t.Run(test.exp, func(t *testing.T) {
			assert.Equal(t, test.exp, test.dt.String())
		})
	}
}

func TestListOf(t *testing.T) {
	for _, tc := range []arrow.DataType{
		arrow.FixedWidthTypes.Boolean,
		arrow.PrimitiveTypes.Int8,
		arrow.PrimitiveTypes.Float64,
		arrow.BinaryTypes.String,
		arrow.ListOf(arrow.PrimitiveTypes.Int32),
		arrow.FixedSizeListOf(10, arrow.PrimitiveTypes.Int32),
	} {
		t.Run(tc.Name(), func(t *testing.T) {
			got := arrow.ListOf(tc)
			assert.Equal(t, "list", got.Name())
			assert.Equal(t, arrow.LIST, got.ID())
			assert.Same(t, tc, got.Elem())
			assert.Equal(t, arrow.Field{Name: "item", Type: tc, Nullable: true}, got.ElemField())

			large := arrow.LargeListOf(tc)
			assert.Equal(t, arrow.LARGE_LIST, large.ID())
			assert.Same(t, tc, large.Elem())
		})
	}

	assert.Panics(t, func() { arrow.ListOf(nil) })
	assert.Panics(t, func() { arrow.LargeListOf(nil) })
	assert.Panics(t, func() { arrow.ListOfField(arrow.Field{Name: "item"}) })
}

func TestFixedSizeListOf(t *testing.T) {
	dt := arrow.FixedSizeListOf(3, arrow.PrimitiveTypes.Int32)
	assert.Equal(t, arrow.FIXED_SIZE_LIST, dt.ID())
	assert.EqualValues(t, 3, dt.Len())
	assert.Equal(t, arrow.PrimitiveTypes.Int32, dt.Elem())

	zero := arrow.FixedSizeListOf(0, arrow.PrimitiveTypes.Int32)
	assert.EqualValues(t, 0, zero.Len())

	assert.PanicsWithValue(t, "arrow: invalid size", func() {
		arrow.FixedSizeListOf(-1, arrow.PrimitiveTypes.Int32)
	})
	assert.PanicsWithValue(t, "arrow: nil DataType", func() {
		arrow.FixedSizeListOf(1, nil)
	})

	nn := arrow.FixedSizeListOfNonNullable(2, arrow.PrimitiveTypes.Int8)
	assert.False(t, nn.ElemField().Nullable)
}

func TestTypeEqual(t *testing.T) {
	tests := []struct {
		left, right arrow.DataType
		exp         bool
	}{
		{nil, nil, true},
		{arrow.PrimitiveTypes.Int32, nil, false},
		{arrow.PrimitiveTypes.Int32, &arrow.Int32Type{}, true},
		{arrow.PrimitiveTypes.Int32, arrow.PrimitiveTypes.Int64, false},
		{&arrow.Time32Type{Unit: arrow.Second}, arrow.FixedWidthTypes.Time32s, true},
		{arrow.FixedWidthTypes.Time32s, arrow.FixedWidthTypes.Time32ms, false},
		{&arrow.TimestampType{Unit: arrow.Second}, &arrow.TimestampType{Unit: arrow.Second, TimeZone: "UTC"}, false},
		{arrow.ListOf(arrow.PrimitiveTypes.Int32), arrow.ListOf(arrow.PrimitiveTypes.Int32), true},
		{arrow.ListOf(arrow.PrimitiveTypes.Int32), arrow.ListOfNonNullable(arrow.PrimitiveTypes.Int32), false},
		{arrow.ListOf(arrow.PrimitiveTypes.Int32), arrow.LargeListOf(arrow.PrimitiveTypes.Int32), false},
		{arrow.ListOf(arrow.PrimitiveTypes.Int32), arrow.ListOf(arrow.PrimitiveTypes.Int16), false},
		{arrow.FixedSizeListOf(2, arrow.PrimitiveTypes.Int32), arrow.FixedSizeListOf(2, arrow.PrimitiveTypes.Int32), true},
		{arrow.FixedSizeListOf(2, arrow.PrimitiveTypes.Int32), arrow.FixedSizeListOf(3, arrow.PrimitiveTypes.Int32), false},
	}
	for _, test := range tests {
		assert.Equal(t, test.exp, arrow.TypeEqual(test.left, test.right), "%v == %v", test.left, test.right)
	}
}

func TestFieldFingerprint(t *testing.T) {
	f := arrow.Field{Name: "item", Type: arrow.PrimitiveTypes.Int32, Nullable: true}
	assert.Equal(t, "Fnitem{"+arrow.PrimitiveTypes.Int32.Fingerprint()+"}", f.Fingerprint())
	assert.Equal(t, "item: type=int32, nullable", f.String())
	assert.True(t, f.Equal(arrow.ListOf(arrow.PrimitiveTypes.Int32).ElemField()))
	assert.False(t, f.Equal(arrow.Field{Name: "x", Type: arrow.PrimitiveTypes.Int32, Nullable: true}))
}

func TestTimeUnitFingerprint(t *testing.T) {
	fps := map[string]arrow.DataType{}
	for _, dt := range []arrow.DataType{
		arrow.FixedWidthTypes.Time32s,
		arrow.FixedWidthTypes.Time32ms,
		arrow.FixedWidthTypes.Time64us,
		arrow.FixedWidthTypes.Time64ns,
		arrow.FixedWidthTypes.Duration_us,
		arrow.FixedWidthTypes.Duration_ns,
	} {
		fp := dt.Fingerprint()
		assert.NotContains(t, fps, fp, "%s shares a fingerprint", dt)
		fps[fp] = dt
	}
	assert.Equal(t, arrow.FixedWidthTypes.Time32s.Fingerprint(), (&arrow.Time32Type{Unit: arrow.Second}).Fingerprint())
}
