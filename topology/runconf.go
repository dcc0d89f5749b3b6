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
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// RunConf is the runtime configuration of a node. It is one of NoConf,
// Passive or Active.
type RunConf interface {
	runConf()
}

// NoConf is the configuration of the synthetic root.
type NoConf struct{}

// Passive is a node that only declares where it lives.
// Documents never produce it yet.
type Passive struct {
	Location Location
}

// Active is a node with a location and free-form parameters. Params holds
// JSON-like values only: nil, bool, int64, float64, string, []any and
// map[string]any.
type Active struct {
	Params   any
	Location Location
}

func (NoConf) runConf()  {}
func (Passive) runConf() {}
func (Active) runConf()  {}

// LocationOf returns the location carried by c, if any.
func LocationOf(c RunConf) (Location, bool) {
	switch c := c.(type) {
	case Active:
		return c.Location, true
	case Passive:
		return c.Location, true
	default:
		return Location{}, false
	}
}

// Query evaluates a JSONPath expression against the node parameters.
func (a Active) Query(expr string) ([]any, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", expr, err)
	}
	return x.Get(a.Params), nil
}

// ParamsJSON renders the parameters as JSON with sorted keys.
func (a Active) ParamsJSON() string {
	opts := oj.DefaultOptions
	opts.Sort = true
	return oj.JSON(a.Params, &opts)
}
