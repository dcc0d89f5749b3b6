// Copyright 2023 The Topograf Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package topology

import (
	"math"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToValueScalars(t *testing.T) {
	tests := []struct {
		in  any
		out any
	}{
		{in: nil, out: nil},
		{in: "s", out: "s"},
		{in: true, out: true},
		{in: 42, out: int64(42)},
		{in: int32(-7), out: int64(-7)},
		{in: uint16(8080), out: int64(8080)},
		{in: int64(math.MaxInt64), out: int64(math.MaxInt64)},
		{in: uint64(math.MaxUint64), out: float64(math.MaxUint64)},
		{in: 1.5, out: 1.5},
		{in: float32(0.5), out: 0.5},
		{in: math.NaN(), out: nil},
		{in: math.Inf(1), out: nil},
		{in: math.Inf(-1), out: nil},
		{
			in:  time.Date(1979, 5, 27, 7, 32, 0, 0, time.UTC),
			out: "1979-05-27T07:32:00Z",
		},
		{
			in:  time.Date(1979, 5, 27, 0, 32, 0, 999999000, time.FixedZone("", -7*3600)),
			out: "1979-05-27T00:32:00.999999-07:00",
		},
	}

	for _, test := range tests {
		assert.Equal(t, test.out, ToValue(test.in), "%#v", test.in)
	}
}

func TestToValueContainers(t *testing.T) {
	in := map[string]any{
		"list":   []any{int64(1), "two", 3.0, math.NaN()},
		"tables": []map[string]any{{"a": int64(1)}, {"b": false}},
		"nested": map[string]any{"deep": map[string]any{"x": int8(1)}},
	}

	assert.Equal(t, map[string]any{
		"list":   []any{int64(1), "two", 3.0, nil},
		"tables": []any{map[string]any{"a": int64(1)}, map[string]any{"b": false}},
		"nested": map[string]any{"deep": map[string]any{"x": int64(1)}},
	}, ToValue(in))
}

func TestToValueLocalDateTimes(t *testing.T) {
	var doc map[string]any
	require.NoError(t, toml.Unmarshal([]byte(`
odt = 1979-05-27T07:32:00Z
ldt = 1979-05-27T07:32:00
ld = 1979-05-27
lt = 07:32:00
`), &doc))

	assert.Equal(t, map[string]any{
		"odt": "1979-05-27T07:32:00Z",
		"ldt": "1979-05-27T07:32:00",
		"ld":  "1979-05-27",
		"lt":  "07:32:00",
	}, ToValue(doc))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, "table", kindOf(map[string]any{}))
	assert.Equal(t, "array", kindOf([]any{}))
	assert.Equal(t, "integer", kindOf(int64(1)))
	assert.Equal(t, "float", kindOf(1.0))
	assert.Equal(t, "boolean", kindOf(false))
	assert.Equal(t, "string", kindOf(""))
	assert.Equal(t, "datetime", kindOf(time.Now()))
}
