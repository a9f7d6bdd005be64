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

	"github.com/apache/arrow-lists/go/arrow"
	"github.com/apache/arrow-lists/go/arrow/internal/debug"
	"github.com/apache/arrow-lists/go/arrow/memory"
)

// UnsupportedElementTypeError is returned when an empty list is requested
// for an element type that has no leaf builder.
type UnsupportedElementTypeError struct {
	Kind string         // list kind requested, such as "List" or "FixedSizeList"
	Elem arrow.DataType // rejected element type, possibly nil
}

func (e *UnsupportedElementTypeError) Error() string {
	elem := "<nil>"
	if e.Elem != nil {
		elem = e.Elem.String()
	}
	return fmt.Sprintf("arrow/array: empty %s of element type %s is not supported", e.Kind, elem)
}

func (e *UnsupportedElementTypeError) Unwrap() error { return arrow.ErrNotImplemented }

func emptyValuesBuilder(mem memory.Allocator, kind string, elem arrow.DataType) (Builder, error) {
	var values Builder
	if elem != nil {
		values = newLeafBuilder(mem, elem)
	}
	if values == nil {
		err := &UnsupportedElementTypeError{Kind: kind, Elem: elem}
		debug.Log(err.Error())
		return nil, err
	}
	return values, nil
}

func listOf[O arrow.Offset](elem arrow.DataType) arrow.ListLikeType {
	if listTypeID[O]() == arrow.LARGE_LIST {
		return arrow.LargeListOf(elem)
	}
	return arrow.ListOf(elem)
}

// NewEmptyList returns a list array of length zero with offsets of width O
// whose values are of type elem. A nil mem uses memory.DefaultAllocator.
//
// elem must be one of the leaf types: a signed or unsigned integer, a
// floating point, boolean, date32, date64, time32 in s or ms, time64 in us or
// ns, duration, timestamp, utf8 or binary. Any other type yields an
// *UnsupportedElementTypeError.
func NewEmptyList[O arrow.Offset](mem memory.Allocator, elem arrow.DataType) (*BaseList[O], error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	values, err := emptyValuesBuilder(mem, listKind[O](), elem)
	if err != nil {
		return nil, err
	}

	bldr := newBaseListBuilder[O](mem, listOf[O](elem), values)
	defer bldr.Release()

	return bldr.NewListArray(), nil
}

// NewEmptyFixedSizeList returns a fixed size list array of length zero and
// list size zero whose values are of type elem. It accepts the same element
// types as NewEmptyList.
func NewEmptyFixedSizeList(mem memory.Allocator, elem arrow.DataType) (*FixedSizeList, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	values, err := emptyValuesBuilder(mem, "FixedSizeList", elem)
	if err != nil {
		return nil, err
	}

	bldr := newFixedSizeListBuilder(mem, arrow.FixedSizeListOf(0, elem), values)
	defer bldr.Release()

	return bldr.NewListArray(), nil
}
