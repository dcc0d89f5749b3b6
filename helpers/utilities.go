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
	Package helpers implements small filesystem and network functions shared
	by the topograf commands.
*/
package helpers

import (
	"fmt"
	"os"
)

// DirExists checks whether a directory exists at the given path.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !info.IsDir() {
		return false, fmt.Errorf("%v exists but is not a directory", path)
	}
	return true, nil
}

// EnsureDir checks whether a directory exists at the given path. If not, it will be created.
func EnsureDir(dir string, mode os.FileMode) error {
	exists, err := DirExists(dir)
	if err != nil {
		return err
	}
	if !exists {
		if err := os.MkdirAll(dir, mode); err != nil {
			return fmt.Errorf("could not create directory %v: %v", dir, err)
		}
	}
	return nil
}
