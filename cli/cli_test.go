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
	"bytes"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/universum/topograf/config"
	"github.com/universum/topograf/helpers"
	"github.com/universum/topograf/inventory"
	"github.com/universum/topograf/topology"
)

const document = `
[hosts]
r1 = { host = "127.0.0.1", port = 25000 }
r2 = { host = "127.0.0.2", port = 25000 }

[root]
r1 = ["d-a", "s-2"]

[root.r2]
s = ["s-1"]

[config.r1]
params = { mode = "p" }
location = { host = "r1", port = 25100, publicity = "internal" }

[config.r1.d-a]
params = { mode = "d" }
location = { host = "r1", port = 25101, publicity = "local" }

[config.r1.s-2]
params = { mode = "s" }
location = { host = "r1", port = 25102 }

[config.r2]
params = {}
location = { host = "r2", port = 25100 }

[config.r2.s]
params = { mode = "p" }
location = { host = "r2", port = 25201 }

[config.r2.s.s-1]
params = { mode = "s" }
location = { host = "r2", port = 25101 }
`

// setup writes a config and a topology document into a fresh home directory
// and returns the config path.
func setup(t *testing.T) (string, string) {
	home, err := ioutil.TempDir("", "topograf")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(home) })

	require.NoError(t, ioutil.WriteFile(filepath.Join(home, "topology.toml"), []byte(document), 0600))

	cfg := config.DefaultConfig()
	cfg.Topograf.HomeDirectory = home
	cfg.Logging.Disable = true

	cfgPath := filepath.Join(home, "config.toml")
	require.NoError(t, config.WriteConfigFile(cfgPath, cfg))
	return home, cfgPath
}

type recordingExecutor struct {
	host  string
	tmp   string
	nodes int
}

func (e *recordingExecutor) Execute(topo *topology.Topology, host string, tmpDir string) error {
	e.host = host
	e.tmp = tmpDir
	e.nodes = len(topo.Nodes())
	return nil
}

func TestCheckPrintsTree(t *testing.T) {
	_, cfgPath := setup(t)

	var out bytes.Buffer
	require.NoError(t, check(settings{configPath: cfgPath}, &out))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"r1", "node", "r1:25100", "internal"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"r1.d-a", "terminal", "r1:25101", "local"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"r1.s-2", "terminal", "r1:25102", "-"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"r2.s", "node", "r2:25201", "-"}, strings.Fields(lines[3]))
	assert.True(t, strings.HasPrefix(lines[4], "  r2.s.s-1"))
}

func TestCheckStrict(t *testing.T) {
	_, cfgPath := setup(t)

	err := check(settings{configPath: cfgPath, strict: true}, ioutil.Discard)
	assert.True(t, errors.Is(err, topology.ErrUnusedConfig))
}

func TestCheckMissingTopology(t *testing.T) {
	_, cfgPath := setup(t)

	err := check(settings{configPath: cfgPath, topology: "/path/that/does/not/exist.toml"}, ioutil.Discard)
	assert.Error(t, err)
}

func TestDeployPlaceholder(t *testing.T) {
	home, cfgPath := setup(t)

	err := deploy(settings{configPath: cfgPath, host: "r1"}, placeholderExecutor{})
	assert.Equal(t, ErrExecutionNotImplemented, err)

	exists, err := helpers.DirExists(filepath.Join(home, "tmp"))
	require.NoError(t, err)
	assert.True(t, exists)

	db, err := inventory.EnsureInventoryDb(filepath.Join(home, "inventory.db"))
	require.NoError(t, err)
	defer db.Close()

	nodes, err := inventory.QueryNodes(db, "r1")
	require.NoError(t, err)
	assert.Len(t, nodes, 3)
}

func TestDeployExecutor(t *testing.T) {
	home, cfgPath := setup(t)
	tmp := filepath.Join(home, "scratch")

	exec := &recordingExecutor{}
	require.NoError(t, deploy(settings{configPath: cfgPath, host: "r2", tmp: tmp}, exec))

	assert.Equal(t, "r2", exec.host)
	assert.Equal(t, tmp, exec.tmp)
	assert.Equal(t, 5, exec.nodes)
}

func TestDeployUnknownHost(t *testing.T) {
	_, cfgPath := setup(t)

	exec := &recordingExecutor{}
	err := deploy(settings{configPath: cfgPath, host: "r9"}, exec)
	assert.Error(t, err)
	assert.Empty(t, exec.host)
}

func TestInitConfig(t *testing.T) {
	home, err := ioutil.TempDir("", "topograf")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	path := filepath.Join(home, "nested", "config.toml")
	require.NoError(t, initConfig(path, "r1"))

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "r1", cfg.Topograf.Host)
}

func TestAppCommands(t *testing.T) {
	noop := func([]string, string) {}

	app := &App{Name: "hostapp", Commands: map[string]Command{
		"cmd1": {Info: "first", Run: noop},
	}}
	cmds, info, err := app.commands()
	require.NoError(t, err)
	assert.Len(t, cmds, 4)
	assert.Equal(t, "first", info["cmd1"])
	assert.Contains(t, cmds, cmdTopograf)

	app.Commands["check"] = Command{Run: noop}
	_, _, err = app.commands()
	assert.Error(t, err)
}

func TestAppExecutor(t *testing.T) {
	app := &App{}
	assert.Equal(t, ErrExecutionNotImplemented, app.executor().Execute(nil, "", ""))

	exec := &recordingExecutor{}
	app.Executor = exec
	assert.Equal(t, exec, app.executor())
}

func TestDeployCreatesInventoryDir(t *testing.T) {
	home, cfgPath := setup(t)

	// home directory and inventory live in directories that do not exist yet
	cfg, err := config.LoadFile(cfgPath)
	require.NoError(t, err)
	cfg.Topograf.TopologyFile = filepath.Join(home, "topology.toml")
	cfg.Topograf.HomeDirectory = filepath.Join(home, "fresh")
	cfg.Topograf.InventoryDB = filepath.Join("state", "inventory.db")
	require.NoError(t, config.WriteConfigFile(cfgPath, cfg))

	exec := &recordingExecutor{}
	tmp := filepath.Join(home, "scratch")
	require.NoError(t, deploy(settings{configPath: cfgPath, host: "r1", tmp: tmp}, exec))

	_, err = os.Stat(filepath.Join(home, "fresh", "state", "inventory.db"))
	assert.NoError(t, err)
}
