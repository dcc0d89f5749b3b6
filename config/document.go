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

package config

import (
	"fmt"
	"io/ioutil"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/universum/topograf/topology"
)

// LoadTopologyBinary decodes the TOML document b and builds its topology.
func LoadTopologyBinary(b []byte, opts ...topology.Option) (*topology.Topology, error) {
	var doc topology.Document
	if err := toml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("config: invalid topology document: %w", err)
	}
	return topology.Parse(doc, opts...)
}

// LoadTopologyFile reads the TOML document f and builds its topology.
func LoadTopologyFile(f string, opts ...topology.Option) (*topology.Topology, error) {
	b, err := ioutil.ReadFile(filepath.Clean(f))
	if err != nil {
		return nil, err
	}
	return LoadTopologyBinary(b, opts...)
}
