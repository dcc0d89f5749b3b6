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

package main

import (
	"github.com/universum/topograf/cli"
)

func main() {
	var logo = `
  _                                    __
 | |_ ___  _ __   ___   __ _ _ __ __ _/ _|
 | __/ _ \| '_ \ / _ \ / _' | '__/ _' | |_
 | || (_) | |_) | (_) | (_| | | | (_| |  _|
  \__\___/| .__/ \___/ \__, |_|  \__,_|_|
          |_|          |___/
`
	app := &cli.App{
		Name:    "topograf",
		Version: "0.1.0",
		Logo:    logo,
	}
	app.Run()
}
