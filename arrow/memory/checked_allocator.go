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

package memory

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/apache/arrow-lists/go/arrow/internal/debug"
)

// CheckedAllocator wraps an Allocator and tracks every live allocation so
// tests can assert that all buffers were released.
type CheckedAllocator struct {
	mem Allocator
	sz  int64

	allocs sync.Map
}

func NewCheckedAllocator(mem Allocator) *CheckedAllocator {
	return &CheckedAllocator{mem: mem}
}

// CurrentAlloc returns the number of bytes currently allocated.
func (a *CheckedAllocator) CurrentAlloc() int { return int(atomic.LoadInt64(&a.sz)) }

func (a *CheckedAllocator) Allocate(size int) []byte {
	atomic.AddInt64(&a.sz, int64(size))
	out := a.mem.Allocate(size)
	if size == 0 {
		return out
	}

	a.track(out, allocFrames)
	return out
}

func (a *CheckedAllocator) Reallocate(size int, b []byte) []byte {
	atomic.AddInt64(&a.sz, int64(size-len(b)))

	if len(b) > 0 {
		a.allocs.Delete(uintptr(unsafe.Pointer(&b[0])))
	}
	out := a.mem.Reallocate(size, b)
	if size == 0 {
		return out
	}

	a.track(out, reallocFrames)
	return out
}

func (a *CheckedAllocator) Free(b []byte) {
	atomic.AddInt64(&a.sz, int64(len(b)*-1))
	defer a.mem.Free(b)

	if len(b) == 0 {
		return
	}

	a.allocs.Delete(uintptr(unsafe.Pointer(&b[0])))
}

func (a *CheckedAllocator) track(b []byte, skip int) {
	ptr := uintptr(unsafe.Pointer(&b[0]))
	if pc, _, l, ok := runtime.Caller(skip); ok {
		a.allocs.Store(ptr, &dalloc{pc: pc, line: l, sz: len(b)})
	}
}

// allocFrames and reallocFrames are the number of stack frames skipped when
// recording the call site of an allocation. They can be tuned with the
// ARROW_CHECKED_ALLOC_FRAMES and ARROW_CHECKED_REALLOC_FRAMES environment
// variables when the default does not land on the interesting caller.
const (
	defAllocFrames   = 5
	defReallocFrames = 4
)

var allocFrames, reallocFrames = defAllocFrames, defReallocFrames

func init() {
	allocFrames = framesFromEnv("ARROW_CHECKED_ALLOC_FRAMES", allocFrames)
	reallocFrames = framesFromEnv("ARROW_CHECKED_REALLOC_FRAMES", reallocFrames)
}

func framesFromEnv(key string, def int) int {
	val, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	f, err := strconv.Atoi(val)
	if err != nil || f < 0 {
		return def
	}
	return f
}

type dalloc struct {
	pc   uintptr
	line int
	sz   int
}

// TestingT is the subset of testing.TB used by AssertSize.
type TestingT interface {
	Errorf(format string, args ...interface{})
	Helper()
}

// AssertSize reports every allocation still alive and fails t when the
// number of bytes outstanding differs from sz.
func (a *CheckedAllocator) AssertSize(t TestingT, sz int) {
	a.allocs.Range(func(_, value interface{}) bool {
		info := value.(*dalloc)
		f := runtime.FuncForPC(info.pc)
		msg := fmt.Sprintf("LEAK of %d bytes FROM %s line %d", info.sz, f.Name(), info.line)
		debug.Log(msg)
		t.Errorf("%s\n", msg)
		return true
	})

	if got := a.CurrentAlloc(); got != sz {
		t.Helper()
		t.Errorf("invalid memory size exp=%d, got=%d", sz, got)
	}
}

// CheckedAllocatorScope records the allocation level of a CheckedAllocator
// so a later CheckSize can verify that a block of code returned to it.
type CheckedAllocatorScope struct {
	alloc *CheckedAllocator
	sz    int
}

func NewCheckedAllocatorScope(alloc *CheckedAllocator) *CheckedAllocatorScope {
	return &CheckedAllocatorScope{alloc: alloc, sz: alloc.CurrentAlloc()}
}

func (c *CheckedAllocatorScope) CheckSize(t TestingT) {
	if sz := c.alloc.CurrentAlloc(); c.sz != sz {
		t.Helper()
		t.Errorf("invalid memory size exp=%d, got=%d", c.sz, sz)
	}
}

var (
	_ Allocator = (*CheckedAllocator)(nil)
)
