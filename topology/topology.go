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
	Package topology turns a decoded deployment document into a validated tree
	of logical software nodes bound to physical hosts.

	A document has three sections: 'hosts' (physical machine aliases), 'root'
	(the shape of the logical tree) and 'config' (per node runtime parameters
	and network locations, nested by dotted path). Parse either returns a fully
	validated Topology or a *ParseError; nothing is ever partially built.
*/
package topology

import (
	"errors"
	"fmt"
	"net"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const (
	hostsSection  = "hosts"
	rootSection   = "root"
	configSection = "config"

	pathSeparator = "."
)

// Document is a decoded configuration document, i.e. the result of
// unmarshalling TOML (or any other nested key/value format) into a map.
type Document = map[string]any

// Host is a physical machine alias.
type Host struct {
	Host string `mapstructure:"host"`
	Port uint16 `mapstructure:"port"`
}

// Addr returns the host:port form of the host.
func (h Host) Addr() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(int(h.Port)))
}

// Publicity tells how widely a node location is meant to be reachable.
type Publicity int

const (
	PublicityUnspecified Publicity = iota
	PublicityLocal
	PublicityInternal
	PublicityExternal
)

// ParsePublicity parses the textual publicity used in documents.
func ParsePublicity(s string) (Publicity, error) {
	switch s {
	case "local":
		return PublicityLocal, nil
	case "internal":
		return PublicityInternal, nil
	case "external":
		return PublicityExternal, nil
	}
	return PublicityUnspecified, fmt.Errorf("unknown publicity %q, expected one of local, internal, external", s)
}

func (p Publicity) String() string {
	switch p {
	case PublicityLocal:
		return "local"
	case PublicityInternal:
		return "internal"
	case PublicityExternal:
		return "external"
	default:
		return ""
	}
}

// Location is the network endpoint of a configured node. Host is an alias
// from the topology hosts.
type Location struct {
	Host      string    `mapstructure:"host"`
	Port      uint16    `mapstructure:"port"`
	Publicity Publicity `mapstructure:"publicity"`
}

// Binding returns the "alias:port" identity of the location. Two nodes of a
// valid topology never share a binding.
func (l Location) Binding() string {
	return l.Host + ":" + strconv.Itoa(int(l.Port))
}

// NodeKind distinguishes leaves from nodes that own children.
type NodeKind int

const (
	Terminal NodeKind = iota
	Group
)

func (k NodeKind) String() string {
	if k == Group {
		return "node"
	}
	return "terminal"
}

// Node is a single node of the logical tree. Name is the dotted path of the
// node and Parent the dotted path of its parent; both are empty for the root,
// and Parent is empty for top level nodes.
type Node struct {
	Name     string
	Parent   string
	Config   RunConf
	Kind     NodeKind
	Children []*Node
}

// IsRoot reports whether n is the synthetic root of a topology.
func (n *Node) IsRoot() bool {
	return n.Name == "" && n.Parent == ""
}

// Topology is a validated deployment topology.
type Topology struct {
	Hosts map[string]Host
	Root  *Node
}

// Option changes how Parse treats a document.
type Option func(*options)

type options struct {
	disallowUnused bool
}

// DisallowUnusedConfig makes Parse fail when a config entry is not claimed by
// any node of the tree shape.
func DisallowUnusedConfig() Option {
	return func(o *options) {
		o.disallowUnused = true
	}
}

// Parse builds a Topology out of a decoded document. The document is not
// modified.
func Parse(doc Document, opts ...Option) (*Topology, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	hostsTable, err := section(doc, hostsSection)
	if err != nil {
		return nil, err
	}
	shape, err := section(doc, rootSection)
	if err != nil {
		return nil, err
	}
	configTable, err := section(doc, configSection)
	if err != nil {
		return nil, err
	}

	hosts, err := decodeHosts(hostsTable)
	if err != nil {
		return nil, err
	}

	confs := make(configs)
	if err := resolveConfigs("", configTable, confs); err != nil {
		return nil, err
	}
	if err := validateReferences(hosts, confs); err != nil {
		return nil, err
	}

	children, err := buildTree("", shape, confs)
	if err != nil {
		return nil, err
	}

	if o.disallowUnused && len(confs) > 0 {
		unused := sortedKeys(confs)
		return nil, &ParseError{
			Parent: configSection,
			Name:   unused[0],
			Err:    ErrUnusedConfig,
			Detail: strings.Join(unused, ", "),
		}
	}

	return &Topology{
		Hosts: hosts,
		Root: &Node{
			Config:   NoConf{},
			Kind:     Group,
			Children: children,
		},
	}, nil
}

func section(doc Document, name string) (map[string]any, error) {
	v, ok := doc[name]
	if !ok {
		return nil, &ParseError{Name: name, Err: ErrMissingSection}
	}
	t, ok := v.(map[string]any)
	if !ok {
		return nil, &ParseError{Name: name, Err: ErrMissingSection, Detail: "expected a table, got " + kindOf(v)}
	}
	return t, nil
}

func decodeHosts(table map[string]any) (map[string]Host, error) {
	hosts := make(map[string]Host, len(table))
	for _, alias := range sortedKeys(table) {
		host, err := decodeEndpoint[Host](table[alias])
		if err != nil {
			return nil, &ParseError{Parent: hostsSection, Name: alias, Err: ErrInvalidHost, Detail: err.Error()}
		}
		hosts[alias] = host
	}
	return hosts, nil
}

func decodeLocation(v any) (Location, error) {
	return decodeEndpoint[Location](v)
}

//nolint: gochecknoglobals
var (
	portType      = reflect.TypeOf(uint16(0))
	publicityType = reflect.TypeOf(PublicityUnspecified)
)

// decodeEndpoint decodes a host or location table. 'host' and 'port' are
// required, unknown keys are ignored.
func decodeEndpoint[T any](v any) (T, error) {
	var out T
	t, ok := v.(map[string]any)
	if !ok {
		return out, fmt.Errorf("expected a table, got %s", kindOf(v))
	}

	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: endpointHook,
		Metadata:   &md,
		Result:     &out,
		TagName:    "mapstructure",
	})
	if err != nil {
		return out, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(t); err != nil {
		var merr *mapstructure.Error
		if errors.As(err, &merr) {
			return out, errors.New(strings.Join(merr.Errors, "; "))
		}
		return out, err
	}
	for _, key := range []string{"host", "port"} {
		if slices.Contains(md.Unset, key) {
			return out, fmt.Errorf("'%s' is missed", key)
		}
	}
	return out, nil
}

// endpointHook range checks ports and parses publicity names.
func endpointHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	switch to {
	case portType:
		n, ok := toInt64(data)
		if !ok {
			return nil, fmt.Errorf("'port' must be an integer, got %s", kindOf(data))
		}
		if n < 0 || n > 65535 {
			return nil, fmt.Errorf("'port' %d is out of range", n)
		}
		return uint16(n), nil
	case publicityType:
		s, ok := data.(string)
		if !ok {
			return nil, fmt.Errorf("'publicity' must be a string, got %s", kindOf(data))
		}
		return ParsePublicity(s)
	}
	return data, nil
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + pathSeparator + name
}
