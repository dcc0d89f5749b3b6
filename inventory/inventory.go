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

package inventory

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/ohler55/ojg/oj"
	"github.com/universum/topograf/topology"
)

// Conf values recorded for a node.
const (
	ConfNone    = "none"
	ConfPassive = "passive"
	ConfActive  = "active"
)

// HostRecord is a row of the Hosts table.
type HostRecord struct {
	Alias string `db:"Alias"`
	Host  string `db:"Host"`
	Port  int    `db:"Port"`
}

// NodeRecord is a row of the Nodes table. Host and Port are the node binding;
// Params is the JSON encoding of the node parameters for active nodes.
type NodeRecord struct {
	Path      string `db:"Path"`
	Parent    string `db:"Parent"`
	Kind      string `db:"Kind"`
	Conf      string `db:"Conf"`
	Host      string `db:"Host"`
	Port      int    `db:"Port"`
	Publicity string `db:"Publicity"`
	Params    []byte `db:"Params"`
}

// Binding returns the "alias:port" binding of the node.
func (r NodeRecord) Binding() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// DecodeParams parses the recorded parameters back into JSON-like values.
func (r NodeRecord) DecodeParams() (any, error) {
	if len(r.Params) == 0 {
		return nil, nil
	}
	return oj.Parse(r.Params)
}

func newNodeRecord(n *topology.Node) NodeRecord {
	rec := NodeRecord{
		Path:   n.Name,
		Parent: n.Parent,
		Kind:   n.Kind.String(),
	}
	switch c := n.Config.(type) {
	case topology.Active:
		rec.Conf = ConfActive
		rec.Params = []byte(c.ParamsJSON())
	case topology.Passive:
		rec.Conf = ConfPassive
	default:
		rec.Conf = ConfNone
	}
	if loc, ok := topology.LocationOf(n.Config); ok {
		rec.Host = loc.Host
		rec.Port = int(loc.Port)
		rec.Publicity = loc.Publicity.String()
	}
	return rec
}

// Store replaces the recorded topology with topo in a single transaction.
func Store(db *sqlx.DB, topo *topology.Topology) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	if err := store(tx, topo); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%v (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

func store(tx *sqlx.Tx, topo *topology.Topology) error {
	for _, table := range []string{hostsTable, nodesTable} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	hostsInsert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		hostsTable, columnList(hostsColumns, ""), columnList(hostsColumns, ":"))
	aliases := make([]string, 0, len(topo.Hosts))
	for alias := range topo.Hosts {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	for _, alias := range aliases {
		h := topo.Hosts[alias]
		if _, err := tx.NamedExec(hostsInsert, HostRecord{Alias: alias, Host: h.Host, Port: int(h.Port)}); err != nil {
			return err
		}
	}

	nodesInsert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		nodesTable, columnList(nodesColumns, ""), columnList(nodesColumns, ":"))
	for _, n := range topo.Nodes() {
		if _, err := tx.NamedExec(nodesInsert, newNodeRecord(n)); err != nil {
			return err
		}
	}
	return nil
}

// QueryHosts returns all recorded hosts ordered by alias.
func QueryHosts(db *sqlx.DB) ([]HostRecord, error) {
	var hosts []HostRecord
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY Alias", columnList(hostsColumns, ""), hostsTable)
	if err := db.Select(&hosts, query); err != nil {
		return nil, err
	}
	return hosts, nil
}

// QueryNodes returns the recorded nodes bound to the host alias, in tree
// order. An empty alias returns every node.
func QueryNodes(db *sqlx.DB, alias string) ([]NodeRecord, error) {
	var nodes []NodeRecord
	query := fmt.Sprintf("SELECT %s FROM %s", columnList(nodesColumns, ""), nodesTable)
	var args []interface{}
	if alias != "" {
		query += " WHERE Host = ?"
		args = append(args, alias)
	}
	query += " ORDER BY idx"
	if err := db.Select(&nodes, query, args...); err != nil {
		return nil, err
	}
	return nodes, nil
}

// QueryBinding returns the node bound to alias:port, if any.
func QueryBinding(db *sqlx.DB, alias string, port uint16) (NodeRecord, bool, error) {
	var node NodeRecord
	query := fmt.Sprintf("SELECT %s FROM %s WHERE Host = ? AND Port = ?", columnList(nodesColumns, ""), nodesTable)
	err := db.Get(&node, query, alias, int(port))
	if err == sql.ErrNoRows {
		return NodeRecord{}, false, nil
	}
	if err != nil {
		return NodeRecord{}, false, err
	}
	return node, true, nil
}
