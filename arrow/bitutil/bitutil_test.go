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

package bitutil_test

import (
	"fmt"
	"testing"

	"github.com/apache/arrow-lists/go/arrow/bitutil"
	"github.com/stretchr/testify/assert"
)

func TestCeilByte(t *testing.T) {
	tests := []struct {
		name    string
		in, exp int
	}{
		{"zero", 0, 0},
		{"five", 5, 8},
		{"sixteen", 16, 16},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.exp, bitutil.CeilByte(test.in))
		})
	}
}

func TestBytesForBits(t *testing.T) {
	assert.EqualValues(t, 0, bitutil.BytesForBits(0))
	assert.EqualValues(t, 1, bitutil.BytesForBits(1))
	assert.EqualValues(t, 1, bitutil.BytesForBits(8))
	assert.EqualValues(t, 2, bitutil.BytesForBits(9))
}

func TestSetClearBit(t *testing.T) {
	buf := make([]byte, 2)
	bitutil.SetBit(buf, 0)
	bitutil.SetBit(buf, 3)
	bitutil.SetBit(buf, 9)
	assert.Equal(t, []byte{0x09, 0x02}, buf)
	assert.True(t, bitutil.BitIsSet(buf, 3))
	assert.True(t, bitutil.BitIsNotSet(buf, 4))

	bitutil.ClearBit(buf, 3)
	assert.Equal(t, []byte{0x01, 0x02}, buf)

	bitutil.SetBitTo(buf, 15, true)
	bitutil.SetBitTo(buf, 0, false)
	assert.Equal(t, []byte{0x00, 0x82}, buf)
}

func TestCountSetBits(t *testing.T) {
	// 0b01011001, 0b00000001: bits 0, 3, 4, 6, 8 are set
	buf := []byte{0x59, 0x01, 0xff}
	tests := []struct {
		offset, n int
		exp       int
	}{
		{0, 9, 5},
		{1, 6, 3},
		{0, 0, 0},
		{3, 2, 2},
		{8, 16, 9},
		{5, 19, 10},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("off=%d,n=%d", test.offset, test.n), func(t *testing.T) {
			assert.Equal(t, test.exp, bitutil.CountSetBits(buf, test.offset, test.n))
		})
	}
}

func TestNextPowerOf2(t *testing.T) {
	for _, tc := range []struct{ in, exp int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {32, 32}, {33, 64}, {1000, 1024},
	} {
		assert.Equal(t, tc.exp, bitutil.NextPowerOf2(tc.in), "NextPowerOf2(%d)", tc.in)
	}
}
