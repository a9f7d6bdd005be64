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

// Command arrow-lists builds a list array from a JSON document and displays
// its layout.
//
// Examples:
//
//	$> echo '[[0, 1, 2], null, [3]]' | arrow-lists
//	type: list<item: int64, nullable>
//	length: 3
//	nulls: 1
//	  [0]: offsets=[0, 3) len=3
//	  [1]: (null)
//	  [2]: offsets=[3, 4) len=1
//	[...]
//	values: [[0 1 2] (null) [3]]
//
//	$> arrow-lists --fixed=0 --type=utf8 /dev/null
//	type: fixed_size_list<item: utf8, nullable>[0]
//	length: 0
//	[...]
package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/apache/arrow-lists/go/arrow"
	"github.com/apache/arrow-lists/go/arrow/array"
	"github.com/apache/arrow-lists/go/arrow/memory"
	"github.com/docopt/docopt-go"
	"golang.org/x/xerrors"
)

const usage = `Arrow Lists.
Usage:
  arrow-lists -h | --help
  arrow-lists [--large | --fixed=N] [--type=TYPE] [--debug] [<file>]
Options:
  -h --help     Show this screen.
  --large       Build a list with 64-bit offsets.
  --fixed=N     Build a fixed size list of N values per element.
  --type=TYPE   Element type of the lists [default: int64].
  --debug       Print the multi-line rendering of the array.`

type config struct {
	Help  bool
	Large bool
	Fixed string
	Type  string
	Debug bool
	File  string
}

var elemTypes = map[string]arrow.DataType{
	"bool":          arrow.FixedWidthTypes.Boolean,
	"int8":          arrow.PrimitiveTypes.Int8,
	"int16":         arrow.PrimitiveTypes.Int16,
	"int32":         arrow.PrimitiveTypes.Int32,
	"int64":         arrow.PrimitiveTypes.Int64,
	"uint8":         arrow.PrimitiveTypes.Uint8,
	"uint16":        arrow.PrimitiveTypes.Uint16,
	"uint32":        arrow.PrimitiveTypes.Uint32,
	"uint64":        arrow.PrimitiveTypes.Uint64,
	"float16":       arrow.FixedWidthTypes.Float16,
	"float32":       arrow.PrimitiveTypes.Float32,
	"float64":       arrow.PrimitiveTypes.Float64,
	"date32":        arrow.FixedWidthTypes.Date32,
	"date64":        arrow.FixedWidthTypes.Date64,
	"time32[s]":     arrow.FixedWidthTypes.Time32s,
	"time32[ms]":    arrow.FixedWidthTypes.Time32ms,
	"time64[us]":    arrow.FixedWidthTypes.Time64us,
	"time64[ns]":    arrow.FixedWidthTypes.Time64ns,
	"duration[s]":   arrow.FixedWidthTypes.Duration_s,
	"duration[ms]":  arrow.FixedWidthTypes.Duration_ms,
	"duration[us]":  arrow.FixedWidthTypes.Duration_us,
	"duration[ns]":  arrow.FixedWidthTypes.Duration_ns,
	"timestamp[s]":  &arrow.TimestampType{Unit: arrow.Second},
	"timestamp[ms]": &arrow.TimestampType{Unit: arrow.Millisecond},
	"timestamp[us]": &arrow.TimestampType{Unit: arrow.Microsecond},
	"timestamp[ns]": &arrow.TimestampType{Unit: arrow.Nanosecond},
	"utf8":          arrow.BinaryTypes.String,
	"binary":        arrow.BinaryTypes.Binary,
	"null":          arrow.Null,
}

// listArray is implemented by every list kind this command builds.
type listArray interface {
	arrow.Array
	ValueOffsets(i int) (start, end int64)
	GoString() string
}

func main() {
	log.SetPrefix("arrow-lists: ")
	log.SetFlags(0)

	cfg, err := parseArgs(os.Args[1:], docopt.PrintHelpAndExit)
	if err != nil {
		log.Fatal(err)
	}

	if err := process(os.Stdout, cfg); err != nil {
		log.Fatal(err)
	}
}

func parseArgs(argv []string, help func(error, string)) (config, error) {
	var cfg config

	p := &docopt.Parser{HelpHandler: help}
	opts, err := p.ParseArgs(usage, argv, "")
	if err != nil {
		return cfg, err
	}
	err = opts.Bind(&cfg)
	return cfg, err
}

func process(w io.Writer, cfg config) error {
	if cfg.File == "" || cfg.File == "-" {
		return run(w, os.Stdin, cfg)
	}

	f, err := os.Open(cfg.File)
	if err != nil {
		return xerrors.Errorf("could not open input: %w", err)
	}
	defer f.Close()

	return run(w, f, cfg)
}

func run(w io.Writer, r io.Reader, cfg config) error {
	elem, ok := elemTypes[cfg.Type]
	if !ok {
		return xerrors.Errorf("unknown element type %q", cfg.Type)
	}

	fixed := -1
	if cfg.Fixed != "" {
		// list sizes are stored as int32.
		n, err := strconv.ParseInt(cfg.Fixed, 10, 32)
		if err != nil || n < 0 {
			return xerrors.Errorf("--fixed needs a non-negative list size, got %q", cfg.Fixed)
		}
		fixed = int(n)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return xerrors.Errorf("could not read input: %w", err)
	}

	mem := memory.NewGoAllocator()
	arr, err := buildList(mem, elem, cfg.Large, fixed, bytes.TrimSpace(raw))
	if err != nil {
		return err
	}
	defer arr.Release()

	printList(w, arr, cfg.Debug)
	return nil
}

// buildList builds the list described by input. A negative fixed selects a
// variable size list. An empty input yields an empty list.
func buildList(mem memory.Allocator, elem arrow.DataType, large bool, fixed int, input []byte) (listArray, error) {
	// the empty list doubles as a check that elem has a leaf builder.
	empty, err := newEmptyList(mem, elem, large, fixed)
	if err != nil {
		return nil, err
	}
	if len(input) == 0 {
		return empty, nil
	}
	empty.Release()

	var bldr array.Builder
	switch {
	case fixed >= 0:
		bldr = array.NewFixedSizeListBuilder(mem, int32(fixed), elem)
	case large:
		bldr = array.NewLargeListBuilder(mem, elem)
	default:
		bldr = array.NewListBuilder(mem, elem)
	}
	defer bldr.Release()

	if err := bldr.UnmarshalJSON(input); err != nil {
		return nil, xerrors.Errorf("could not decode %s lists: %w", elem, err)
	}
	return bldr.NewArray().(listArray), nil
}

func newEmptyList(mem memory.Allocator, elem arrow.DataType, large bool, fixed int) (listArray, error) {
	switch {
	case fixed == 0:
		arr, err := array.NewEmptyFixedSizeList(mem, elem)
		if err != nil {
			return nil, err
		}
		return arr, nil
	case fixed > 0:
		// the factory only builds fixed size lists of size zero.
		probe, err := array.NewEmptyFixedSizeList(mem, elem)
		if err != nil {
			return nil, err
		}
		probe.Release()
		bldr := array.NewFixedSizeListBuilder(mem, int32(fixed), elem)
		defer bldr.Release()
		return bldr.NewListArray(), nil
	case large:
		arr, err := array.NewEmptyList[int64](mem, elem)
		if err != nil {
			return nil, err
		}
		return arr, nil
	default:
		arr, err := array.NewEmptyList[int32](mem, elem)
		if err != nil {
			return nil, err
		}
		return arr, nil
	}
}

func printList(w io.Writer, arr listArray, debug bool) {
	fmt.Fprintf(w, "type: %s\n", arr.DataType())
	fmt.Fprintf(w, "length: %d\n", arr.Len())
	fmt.Fprintf(w, "nulls: %d\n", arr.NullN())
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			fmt.Fprintf(w, "  [%d]: (null)\n", i)
			continue
		}
		beg, end := arr.ValueOffsets(i)
		fmt.Fprintf(w, "  [%d]: offsets=[%d, %d) len=%d\n", i, beg, end, end-beg)
	}
	fmt.Fprintf(w, "buffer memory: %d bytes\n", arr.BufferMemorySize())
	fmt.Fprintf(w, "array memory: %d bytes\n", arr.ArrayMemorySize())
	if debug {
		fmt.Fprintf(w, "values: %s\n", arr.GoString())
		return
	}
	fmt.Fprintf(w, "values: %v\n", arr)
}
