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
	"github.com/stretchr/testify/require"
)

func TestOffsetTraits(t *testing.T) {
	assert.Equal(t, "", arrow.Int32OffsetTraits.Prefix())
	assert.Equal(t, "Large", arrow.Int64OffsetTraits.Prefix())
	assert.Equal(t, 4, arrow.Int32OffsetTraits.SizeBytes())
	assert.Equal(t, 8, arrow.Int64OffsetTraits.SizeBytes())
	assert.Equal(t, 12, arrow.Int32OffsetTraits.BytesRequired(3))
	assert.Equal(t, 24, arrow.Int64OffsetTraits.BytesRequired(3))
	assert.Equal(t, 7, arrow.Int64OffsetTraits.ToInt(7))
	assert.Equal(t, -3, arrow.Int32OffsetTraits.ToInt(-3))
}

func TestOffsetTraitsCast(t *testing.T) {
	offsets := []int64{0, 3, 6, 8}
	b := arrow.Int64OffsetTraits.CastToBytes(offsets)
	require.Len(t, b, 32)

	back := arrow.Int64OffsetTraits.CastFromBytes(b)
	assert.Equal(t, offsets, back)

	back[1] = 4
	assert.EqualValues(t, 4, offsets[1], "casts share memory")

	assert.Nil(t, arrow.Int32OffsetTraits.CastFromBytes(nil))
	assert.Nil(t, arrow.Int32OffsetTraits.CastToBytes(nil))
}

func TestCastFromBytesToIsScoped(t *testing.T) {
	b := make([]byte, 10, 64)
	v := arrow.CastFromBytesTo[int32](b)
	assert.Len(t, v, 2, "trailing partial element dropped")
	assert.Equal(t, 2, cap(v), "view does not extend into spare capacity")
	assert.Panics(t, func() { _ = v[2] })
}
