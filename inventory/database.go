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
	Package inventory records a resolved topology in a SQL database, so that
	deployment tooling can look up which node owns which binding on which host.
*/
package inventory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	// Blank import so that go-sqlite3 is registered before package init
	// https://golang.org/doc/effective_go.html#blank_import
	_ "github.com/mattn/go-sqlite3"
)

const (
	// Driver is the database driver used for inventory files.
	Driver = "sqlite3"

	hostsTable = "Hosts"
	nodesTable = "Nodes"
)

type column struct {
	name string
	typ  string
}

//nolint: gochecknoglobals
var (
	hostsColumns = []column{
		{"Alias", "TEXT"},
		{"Host", "TEXT"},
		{"Port", "INTEGER"},
	}
	nodesColumns = []column{
		{"Path", "TEXT"},
		{"Parent", "TEXT"},
		{"Kind", "TEXT"},
		{"Conf", "TEXT"},
		{"Host", "TEXT"},
		{"Port", "INTEGER"},
		{"Publicity", "TEXT"},
		{"Params", "BLOB"},
	}
)

// EnsureInventoryDb opens the inventory at path, creating its tables if needed.
func EnsureInventoryDb(path string) (*sqlx.DB, error) {
	db, err := OpenDatabase(path, Driver)
	if err != nil {
		return nil, err
	}

	if err := createTable(db, hostsTable, hostsColumns); err != nil {
		db.Close()
		return nil, err
	}
	if err := createTable(db, nodesTable, nodesColumns); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func OpenDatabase(dataSourceName, dbDriver string) (*sqlx.DB, error) {
	return sqlx.Connect(dbDriver, dataSourceName)
}

func createTable(db *sqlx.DB, tableName string, columns []column) error {
	paramsAndTypes := make([]string, 0, len(columns))
	for _, c := range columns {
		paramsAndTypes = append(paramsAndTypes, c.name+" "+c.typ)
	}

	paramsText := "idx INTEGER PRIMARY KEY, " + strings.Join(paramsAndTypes, ", ")
	if err := detectSQLInjection(tableName, paramsText); err != nil {
		return err
	}

	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s ( %s )", tableName, paramsText)
	_, err := db.Exec(query)
	return err
}

func columnList(columns []column, prefix string) string {
	names := make([]string, 0, len(columns))
	for _, c := range columns {
		names = append(names, prefix+c.name)
	}
	return strings.Join(names, ", ")
}

func detectSQLInjection(values ...string) error {
	for _, v := range values {
		if strings.ContainsAny(v, "'") || strings.ContainsAny(v, ";") {
			return errors.New("detected possible SQL injection")
		}
	}
	return nil
}
