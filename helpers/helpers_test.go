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

package helpers

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// I guess in the case of a test file, globals are fine
//nolint: gochecknoglobals
var testDir string

func TestMain(m *testing.M) {
	var err error
	testDir, err = ioutil.TempDir("", "helpers")
	if err != nil {
		panic(err)
	}

	code := m.Run()

	if err := os.RemoveAll(testDir); err != nil {
		panic(err)
	}
	os.Exit(code)
}

func TestDirExists_Pass(t *testing.T) {
	dir := filepath.Join(testDir, "exists")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}

	exists, err := DirExists(dir)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, true, exists, " DirExists should return true for an existing directory")
}

func TestDirExists_Fail(t *testing.T) {
	exists, err := DirExists("completely_random_directory/xxx")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, false, exists, " DirExists should return false for a non existing directory")
}

func TestDirExists_File(t *testing.T) {
	f := filepath.Join(testDir, "file")
	if err := ioutil.WriteFile(f, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	exists, err := DirExists(f)
	assert.False(t, exists)
	assert.Error(t, err)
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(testDir, "a", "b", "c")
	assert.Nil(t, EnsureDir(dir, 0700))
	exists, err := DirExists(dir)
	assert.Nil(t, err)
	assert.True(t, exists)

	// second call is a no-op
	assert.Nil(t, EnsureDir(dir, 0700))
}

func TestResolveTCPAddress(t *testing.T) {
	addr, err := ResolveTCPAddress("127.0.0.1", 25000)
	assert.Nil(t, err)
	assert.Equal(t, "127.0.0.1:25000", addr.String())

	_, err = ResolveTCPAddress("127.0.0.1:1", 1)
	assert.Error(t, err)
}
