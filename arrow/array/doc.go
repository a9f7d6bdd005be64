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

// Package array provides implementations of the Arrow array kinds used by the
// list-array family: the list arrays themselves and the leaf arrays their
// values are built from.
//
// Arrays are immutable views over reference counted array data. A view is
// created from a *Data with one of the New*Data constructors or MakeFromData,
// and slicing with NewSlice shares the underlying buffers.
//
// Builders are used to assemble new arrays. Each builder owns its buffers
// until NewArray hands them to the resulting array and resets itself.
package array
