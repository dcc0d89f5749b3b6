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
	"bytes"
	"io/ioutil"
	"path/filepath"
	"text/template"

	"github.com/BurntSushi/toml"
)

var configTemplate = template.Must(template.New("configFileTemplate").Parse(defaultConfigTemplate))

// LoadBinary loads, parses and validates the provided buffer b (as a config)
// and returns the Config.
func LoadBinary(b []byte) (*Config, error) {
	cfg := new(Config)
	_, err := toml.Decode(string(b), cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.validateAndApplyDefaults(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile loads, parses and validates the provided file and returns the Config.
func LoadFile(f string) (*Config, error) {
	b, err := ioutil.ReadFile(filepath.Clean(f))
	if err != nil {
		return nil, err
	}
	return LoadBinary(b)
}

// WriteConfigFile renders config using the template and writes it to specified file path.
func WriteConfigFile(path string, config *Config) error {
	var buffer bytes.Buffer

	if err := configTemplate.Execute(&buffer, config); err != nil {
		return err
	}

	return ioutil.WriteFile(path, buffer.Bytes(), 0644)
}

// helper function to make config creation independent of root dir
func rootify(path, root string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// Note: any changes to the template must be reflected in the appropriate structs and tags.
const defaultConfigTemplate = `# This is a TOML config file.
# For more information, see https://github.com/toml-lang/toml

##### main topograf config options #####
[topograf]

# Alias, from the [hosts] table of the topology, of the machine topograf runs on.
host = "{{ .Topograf.Host }}"

# Path to the topology document. Relative paths are resolved against the home directory.
topology_file = "{{ .Topograf.TopologyFile }}"

# Scratch directory used while deploying.
tmp_directory = "{{ .Topograf.TmpDirectory }}"

# Sqlite database recording the resolved nodes and their bindings.
inventory_db = "{{ .Topograf.InventoryDB }}"

# Whether config entries that no node of the topology tree claims are an error.
strict = {{ .Topograf.Strict }}

##### advanced configuration options #####

# Absolute path to the topograf home directory.
home_directory = "{{ .Topograf.HomeDirectory }}"

##### logging configuration options #####
[logging]

# Whether to disable logging entirely.
disable = {{ .Logging.Disable }}

# The log file. If omitted or set to empty value, stdout will be used.
file = "{{ .Logging.File }}"

# The logging level. The available options include:
# trace, debug, info, warning, error, panic, fatal
level = "{{ .Logging.Level }}"
`
