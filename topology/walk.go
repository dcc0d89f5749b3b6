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

package topology

import "errors"

// SkipChildren can be returned by a walk function to leave the children of
// the current node unvisited.
var SkipChildren = errors.New("skip children")

// Walk visits n and all of its descendants depth first, parents before
// children. Any error other than SkipChildren stops the walk and is returned.
func (n *Node) Walk(fn func(*Node) error) error {
	if err := fn(n); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	for _, child := range n.Children {
		if err := child.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// Nodes returns every node of the topology except the root, in walk order.
func (t *Topology) Nodes() []*Node {
	var nodes []*Node
	_ = t.Root.Walk(func(n *Node) error {
		if n != t.Root {
			nodes = append(nodes, n)
		}
		return nil
	})
	return nodes
}

// Find returns the node with the given dotted path.
func (t *Topology) Find(path string) (*Node, bool) {
	var found *Node
	errFound := errors.New("found")
	_ = t.Root.Walk(func(n *Node) error {
		if n != t.Root && n.Name == path {
			found = n
			return errFound
		}
		return nil
	})
	return found, found != nil
}

// Bindings maps the "alias:port" binding of every configured node to its path.
func (t *Topology) Bindings() map[string]string {
	bindings := make(map[string]string)
	for _, n := range t.Nodes() {
		if loc, ok := LocationOf(n.Config); ok {
			bindings[loc.Binding()] = n.Name
		}
	}
	return bindings
}
