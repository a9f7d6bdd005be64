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

package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/apache/arrow-lists/go/arrow"
	"github.com/apache/arrow-lists/go/arrow/array"
	"github.com/docopt/docopt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	for _, tc := range []struct {
		argv []string
		want config
	}{
		{[]string{}, config{Type: "int64"}},
		{[]string{"--large", "in.json"}, config{Large: true, Type: "int64", File: "in.json"}},
		{[]string{"--fixed=3", "--type=utf8", "--debug"}, config{Fixed: "3", Type: "utf8", Debug: true}},
	} {
		t.Run(strings.Join(tc.argv, " "), func(t *testing.T) {
			cfg, err := parseArgs(tc.argv, docopt.NoHelpHandler)
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg)
		})
	}

	_, err := parseArgs([]string{"--large", "--fixed=2"}, docopt.NoHelpHandler)
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	for _, tc := range []struct {
		name  string
		cfg   config
		input string
		want  []string
	}{
		{
			name:  "list",
			cfg:   config{Type: "int64"},
			input: `[[0, 1, 2], null, [3]]`,
			want: []string{
				"type: list<item: int64, nullable>\n",
				"length: 3\n",
				"nulls: 1\n",
				"  [0]: offsets=[0, 3) len=3\n",
				"  [1]: (null)\n",
				"  [2]: offsets=[3, 4) len=1\n",
				"values: [[0 1 2] (null) [3]]\n",
			},
		},
		{
			name:  "large list",
			cfg:   config{Large: true, Type: "utf8"},
			input: `[["a", "bc"], []]`,
			want: []string{
				"type: large_list<item: utf8, nullable>\n",
				"nulls: 0\n",
				"  [0]: offsets=[0, 2) len=2\n",
				"  [1]: offsets=[2, 2) len=0\n",
				`values: [["a" "bc"] []]` + "\n",
			},
		},
		{
			name:  "fixed size list",
			cfg:   config{Fixed: "2", Type: "int32", Debug: true},
			input: `[[1, 2], null]`,
			want: []string{
				"type: fixed_size_list<item: int32, nullable>[2]\n",
				"  [0]: offsets=[0, 2) len=2\n",
				"  [1]: (null)\n",
				"values: FixedSizeListArray<2>\n[\n  [1 2],\n  null,\n]\n",
			},
		},
		{
			name: "empty list",
			cfg:  config{Type: "int64"},
			want: []string{
				"type: list<item: int64, nullable>\n",
				"length: 0\n",
				"values: []\n",
			},
		},
		{
			name:  "empty fixed size list",
			cfg:   config{Fixed: "0", Type: "utf8"},
			input: " \n",
			want: []string{
				"type: fixed_size_list<item: utf8, nullable>[0]\n",
				"length: 0\n",
			},
		},
		{
			name: "empty fixed size list of size 3",
			cfg:  config{Fixed: "3", Type: "bool"},
			want: []string{
				"type: fixed_size_list<item: bool, nullable>[3]\n",
				"length: 0\n",
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out := new(strings.Builder)
			require.NoError(t, run(out, strings.NewReader(tc.input), tc.cfg))
			for _, line := range tc.want {
				assert.Contains(t, out.String(), line)
			}
			assert.Contains(t, out.String(), "buffer memory: ")
			assert.Contains(t, out.String(), "array memory: ")
		})
	}
}

func TestRunErrors(t *testing.T) {
	runInput := func(cfg config, input string) error {
		return run(new(strings.Builder), strings.NewReader(input), cfg)
	}

	err := runInput(config{Type: "decimal"}, `[]`)
	assert.ErrorContains(t, err, `unknown element type "decimal"`)

	for _, input := range []string{"", `[[1.5]]`} {
		err = runInput(config{Type: "float16"}, input)
		var unsupported *array.UnsupportedElementTypeError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, "List", unsupported.Kind)
		assert.True(t, errors.Is(err, arrow.ErrNotImplemented))
	}

	err = runInput(config{Type: "null", Large: true}, "")
	assert.ErrorContains(t, err, "empty LargeList of element type null")

	for _, fixed := range []string{"x", "-1", "2147483648", "4294967298"} {
		err = runInput(config{Type: "int64", Fixed: fixed}, `[]`)
		assert.ErrorContains(t, err, "--fixed needs a non-negative list size")
	}

	err = runInput(config{Type: "int64", Fixed: "2"}, `[[1, 2, 3]]`)
	assert.ErrorIs(t, err, array.ErrStrideMismatch)

	err = runInput(config{Type: "int64"}, `{"a": [1]}`)
	assert.ErrorContains(t, err, "could not decode int64 lists")
}
