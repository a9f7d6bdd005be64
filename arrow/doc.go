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

// Package arrow provides the type descriptors and array interfaces for a
// columnar in-memory format, with a focus on nested list arrays.
//
// The array package wraps reference counted array data into typed views. The
// list views (List, LargeList and FixedSizeList) expose each element as a
// zero-copy slice of a shared values array.
//
// # Requirements
//
// Go 1.21 or newer is required.
//
// # Build tags
//
//	assert  enable runtime consistency assertions (arrow/internal/debug)
//	debug   enable debug logging to stderr (arrow/internal/debug)
package arrow
