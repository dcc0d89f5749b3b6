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

/*
	Package config implements the topograf tool configuration and the loading
	of topology documents from TOML.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/universum/topograf/topology"
)

const (
	defaultTopografDirectory = ".topograf"
	defaultConfigFileName    = "config.toml"
	defaultTopologyFileName  = "topology.toml"
	defaultTmpDirectory      = "tmp"
	defaultInventoryFileName = "inventory.db"

	defaultLogLevel = "info"
)

//nolint: gochecknoglobals
var defaultHomeDirectory = os.ExpandEnv(filepath.Join("$HOME", defaultTopografDirectory))

// DefaultConfigPath returns absolute path to the default configuration file.
// The returned path should be $HOME/.topograf/config.toml
func DefaultConfigPath() string {
	return filepath.Join(defaultHomeDirectory, defaultConfigFileName)
}

// Topograf is the main tool configuration.
type Topograf struct {
	// HomeDirectory specifies absolute path to the topograf home directory.
	// Relative paths below are resolved against it.
	HomeDirectory string `toml:"home_directory"`

	// Host specifies the alias, from the topology hosts, of the machine this tool runs on.
	Host string `toml:"host"`

	// TopologyFile specifies path to the topology document.
	TopologyFile string `toml:"topology_file"`

	// TmpDirectory specifies path to the scratch directory used while deploying.
	TmpDirectory string `toml:"tmp_directory"`

	// InventoryDB specifies path to the sqlite inventory of resolved nodes.
	InventoryDB string `toml:"inventory_db"`

	// Strict makes config entries not claimed by the topology tree an error.
	Strict bool `toml:"strict"`
}

// DefaultTopografConfig returns default Topograf config.
func DefaultTopografConfig() *Topograf {
	return &Topograf{
		HomeDirectory: defaultHomeDirectory,
		TopologyFile:  defaultTopologyFileName,
		TmpDirectory:  defaultTmpDirectory,
		InventoryDB:   defaultInventoryFileName,
	}
}

// TopologyPath returns the full path to the topology document.
func (cfg *Topograf) TopologyPath() string {
	return rootify(cfg.TopologyFile, cfg.HomeDirectory)
}

// TmpPath returns the full path to the scratch directory.
func (cfg *Topograf) TmpPath() string {
	return rootify(cfg.TmpDirectory, cfg.HomeDirectory)
}

// InventoryPath returns the full path to the inventory database.
func (cfg *Topograf) InventoryPath() string {
	return rootify(cfg.InventoryDB, cfg.HomeDirectory)
}

// ParseOptions returns the topology parse options selected by the config.
func (cfg *Topograf) ParseOptions() []topology.Option {
	if cfg.Strict {
		return []topology.Option{topology.DisallowUnusedConfig()}
	}
	return nil
}

func (cfg *Topograf) validateAndApplyDefaults() error {
	// if custom home directory is specified it must have an absolute path
	if len(cfg.HomeDirectory) > 0 {
		if !filepath.IsAbs(cfg.HomeDirectory) {
			return errors.New("config: specified home directory is not an absolute path")
		}
	} else {
		cfg.HomeDirectory = defaultHomeDirectory
	}

	if len(cfg.TopologyFile) == 0 {
		cfg.TopologyFile = defaultTopologyFileName
	}
	if len(cfg.TmpDirectory) == 0 {
		cfg.TmpDirectory = defaultTmpDirectory
	}
	if len(cfg.InventoryDB) == 0 {
		cfg.InventoryDB = defaultInventoryFileName
	}

	return nil
}

// Logging is the topograf logging configuration.
type Logging struct {
	// Disable disables logging entirely.
	Disable bool `toml:"disable"`

	// File specifies the log file, if omitted stdout will be used.
	File string `toml:"file"`

	// Level specifies the log level.
	Level string `toml:"level"`
}

func (cfg *Logging) validate() error {
	_, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("config: invalid logging level: %s (%v)", cfg.Level, err)
	}
	return nil
}

// DefaultLoggingConfig returns default logging configuration.
func DefaultLoggingConfig() *Logging {
	return &Logging{
		Disable: false,
		File:    "",
		Level:   defaultLogLevel,
	}
}

// Config is the top level topograf configuration.
type Config struct {
	Topograf *Topograf `toml:"topograf"`
	Logging  *Logging  `toml:"logging"`
}

// DefaultConfig returns full default config.
func DefaultConfig() *Config {
	return &Config{
		Topograf: DefaultTopografConfig(),
		Logging:  DefaultLoggingConfig(),
	}
}

func (cfg *Config) validateAndApplyDefaults() error {
	if cfg.Topograf == nil {
		return errors.New("config: No topograf block was present")
	}

	if err := cfg.Topograf.validateAndApplyDefaults(); err != nil {
		return err
	}

	if cfg.Logging == nil {
		cfg.Logging = DefaultLoggingConfig()
	}

	if err := cfg.Logging.validate(); err != nil {
		return err
	}

	return nil
}
