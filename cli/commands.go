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

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/universum/topograf/config"
	"github.com/universum/topograf/helpers"
	"github.com/universum/topograf/inventory"
	"github.com/universum/topograf/logger"
	"github.com/universum/topograf/topology"
)

// settings are the command line overrides shared by the subcommands.
type settings struct {
	configPath string
	topology   string
	host       string
	tmp        string
	strict     bool
}

// loadConfig reads the config file, falling back to defaults when the default
// file does not exist, and applies the command line overrides.
func loadConfig(s settings) (*config.Config, error) {
	var cfg *config.Config
	if s.configPath == "" {
		if _, err := os.Stat(config.DefaultConfigPath()); err == nil {
			s.configPath = config.DefaultConfigPath()
		}
	}
	if s.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(s.configPath); err != nil {
			return nil, err
		}
	} else {
		cfg = config.DefaultConfig()
	}

	if s.topology != "" {
		cfg.Topograf.TopologyFile = s.topology
	}
	if s.host != "" {
		cfg.Topograf.Host = s.host
	}
	if s.tmp != "" {
		cfg.Topograf.TmpDirectory = s.tmp
	}
	if s.strict {
		cfg.Topograf.Strict = true
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, module string) (*logrus.Logger, error) {
	l, err := logger.New(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Disable)
	if err != nil {
		return nil, err
	}
	return l.GetLogger(module), nil
}

func initConfig(path string, host string) error {
	cfg := config.DefaultConfig()
	cfg.Topograf.Host = host

	dir, _ := filepath.Split(path)
	if dir != "" {
		if err := helpers.EnsureDir(dir, 0700); err != nil {
			return err
		}
	}
	return config.WriteConfigFile(path, cfg)
}

// printTree writes one line per node: indented path, kind, binding and publicity.
func printTree(w io.Writer, topo *topology.Topology) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, n := range topo.Root.Children {
		if err := printNode(tw, n, 0); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printNode(w io.Writer, n *topology.Node, depth int) error {
	binding, publicity := "-", "-"
	if loc, ok := topology.LocationOf(n.Config); ok {
		binding = loc.Binding()
		if loc.Publicity != topology.PublicityUnspecified {
			publicity = loc.Publicity.String()
		}
	}
	if _, err := fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\n", strings.Repeat("  ", depth), n.Name, n.Kind, binding, publicity); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := printNode(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func check(s settings, out io.Writer) error {
	cfg, err := loadConfig(s)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, cmdCheck)
	if err != nil {
		return err
	}

	path := cfg.Topograf.TopologyPath()
	topo, err := config.LoadTopologyFile(path, cfg.Topograf.ParseOptions()...)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"hosts": len(topo.Hosts),
		"nodes": len(topo.Nodes()),
	}).Infof("Topology %v is valid", path)

	return printTree(out, topo)
}

func deploy(s settings, exec Executor) error {
	cfg, err := loadConfig(s)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, cmdTopograf)
	if err != nil {
		return err
	}

	topo, err := config.LoadTopologyFile(cfg.Topograf.TopologyPath(), cfg.Topograf.ParseOptions()...)
	if err != nil {
		return err
	}

	alias := cfg.Topograf.Host
	host, ok := topo.Hosts[alias]
	if !ok {
		return fmt.Errorf("topograf: host %q is not declared in %v", alias, cfg.Topograf.TopologyPath())
	}
	if addr, err := helpers.ResolveTCPAddress(host.Host, host.Port); err != nil {
		log.Warnf("Could not resolve %v (%v): %v", alias, host.Addr(), err)
	} else {
		log.Debugf("Host %v resolves to %v", alias, addr)
	}

	tmp := cfg.Topograf.TmpPath()
	if err := helpers.EnsureDir(tmp, 0700); err != nil {
		return err
	}

	dbPath := cfg.Topograf.InventoryPath()
	if err := helpers.EnsureDir(filepath.Dir(dbPath), 0700); err != nil {
		return err
	}
	db, err := inventory.EnsureInventoryDb(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := inventory.Store(db, topo); err != nil {
		return err
	}
	local, err := inventory.QueryNodes(db, alias)
	if err != nil {
		return err
	}
	for _, n := range local {
		log.WithFields(logrus.Fields{"binding": n.Binding(), "kind": n.Kind}).Debug(n.Path)
	}
	log.Infof("Recorded %v nodes, %v bound to %v", len(topo.Nodes()), len(local), alias)

	return exec.Execute(topo, alias, tmp)
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func (app *App) initCmd(args []string, usage string) {
	opts := app.newOpts(cmdInit+" [OPTIONS]", usage)
	path := opts.Flags("--config").Label("CONFIG").String("Path of the config file to write", config.DefaultConfigPath())
	host := opts.Flags("--host").Label("HOST").String("Alias of this machine in the topology hosts", "")

	params := opts.Parse(args)
	if len(params) != 0 {
		opts.PrintUsage()
		os.Exit(1)
	}

	exitOnError(initConfig(*path, *host))
	fmt.Fprintf(os.Stdout, "Saved generated config to %v\n", *path)
}

func (app *App) checkCmd(args []string, usage string) {
	opts := app.newOpts(cmdCheck+" [OPTIONS]", usage)
	cfgPath := opts.Flags("--config").Label("CONFIG").String("Path to the topograf config file", "")
	topo := opts.Flags("--topology").Label("TOPOLOGY").String("Path to the topology document", "")
	strict := opts.Flags("--strict").Label("STRICT").Bool("Fail on config entries no node claims")

	params := opts.Parse(args)
	if len(params) != 0 {
		opts.PrintUsage()
		os.Exit(1)
	}

	exitOnError(check(settings{configPath: *cfgPath, topology: *topo, strict: *strict}, os.Stdout))
}

func (app *App) topografCmd(args []string, usage string) {
	opts := app.newOpts(cmdTopograf+" [OPTIONS]", usage)
	host := opts.Flags("--host").Label("HOST").String("Alias of this machine in the topology hosts", "")
	tmp := opts.Flags("--tmp").Label("TMP_DIR").String("Scratch directory used while deploying", "")
	cfgPath := opts.Flags("--config").Label("CONFIG").String("Path to the topograf config file", "")
	topo := opts.Flags("--topology").Label("TOPOLOGY").String("Path to the topology document", "")

	params := opts.Parse(args)
	if len(params) != 0 {
		opts.PrintUsage()
		os.Exit(1)
	}

	s := settings{configPath: *cfgPath, topology: *topo, host: *host, tmp: *tmp}
	exitOnError(deploy(s, app.executor()))
}
