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
	Package cli runs the topograf subcommands. Applications embedding topograf
	add their own subcommands next to the built-in ones and may plug in the
	component that deploys a validated topology.
*/
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/tav/golly/optparse"
	"github.com/universum/topograf/topology"
)

// ErrExecutionNotImplemented is returned by the default executor.
var ErrExecutionNotImplemented = errors.New("topograf: topology execution is not implemented")

// Command is a subcommand handler in the form optparse dispatches to.
type Command struct {
	Info string
	Run  func(args []string, usage string)
}

// Executor turns a validated topology into running processes on the host
// with the given alias. It must not modify the topology.
type Executor interface {
	Execute(topo *topology.Topology, host string, tmpDir string) error
}

type placeholderExecutor struct{}

func (placeholderExecutor) Execute(*topology.Topology, string, string) error {
	return ErrExecutionNotImplemented
}

// App describes a binary built around topograf.
type App struct {
	Name    string
	Version string
	Logo    string

	// Commands are the application's own subcommands. They cannot replace
	// the built-in ones.
	Commands map[string]Command

	// Executor deploys the topology for the 'topograf' subcommand. When nil
	// the subcommand fails after validation.
	Executor Executor
}

const (
	cmdInit     = "init"
	cmdCheck    = "check"
	cmdTopograf = "topograf"
)

func (app *App) executor() Executor {
	if app.Executor == nil {
		return placeholderExecutor{}
	}
	return app.Executor
}

func (app *App) commands() (map[string]func([]string, string), map[string]string, error) {
	cmds := map[string]func([]string, string){
		cmdInit:     app.initCmd,
		cmdCheck:    app.checkCmd,
		cmdTopograf: app.topografCmd,
	}
	info := map[string]string{
		cmdInit:     "Write a default topograf config",
		cmdCheck:    "Validate a topology document and print its tree",
		cmdTopograf: "Validate, record and deploy the topology on this host",
	}
	for name, cmd := range app.Commands {
		if _, ok := cmds[name]; ok {
			return nil, nil, fmt.Errorf("cli: command %q is reserved", name)
		}
		cmds[name] = cmd.Run
		info[name] = cmd.Info
	}
	return cmds, info, nil
}

// Run dispatches os.Args to the matching subcommand.
func (app *App) Run() {
	cmds, info, err := app.commands()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	optparse.Commands(app.Name, app.Version, cmds, info, app.Logo)
}

func (app *App) newOpts(command string, usage string) *optparse.Parser {
	return optparse.New("Usage: " + app.Name + " " + command + "\n\n  " + usage + "\n")
}
