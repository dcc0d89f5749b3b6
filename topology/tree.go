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

// buildTree walks the shape section under parent and returns the nodes it
// declares, taking their configs out of confs.
//
// A nested table only groups names: its key does not become a node and its
// nodes are spliced into the caller's list. An array of strings declares a
// group node named after the key whose children are terminal leaves; both the
// group and every leaf must have a config.
func buildTree(parent string, shape map[string]any, confs configs) ([]*Node, error) {
	nodes := make([]*Node, 0, len(shape))
	for _, name := range sortedKeys(shape) {
		path := joinPath(parent, name)

		var leaves []string
		switch v := shape[name].(type) {
		case map[string]any:
			children, err := buildTree(path, v, confs)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, children...)
			continue
		case []string:
			leaves = v
		case []any:
			leaves = make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, &ParseError{Parent: parent, Name: name, Err: ErrUnexpectedValue, Detail: kindOf(item)}
				}
				leaves = append(leaves, s)
			}
		default:
			return nil, &ParseError{Parent: parent, Name: name, Err: ErrUnexpectedValue, Detail: kindOf(v)}
		}

		children := make([]*Node, 0, len(leaves))
		for _, leaf := range leaves {
			leafPath := joinPath(path, leaf)
			conf, ok := confs.take(leafPath)
			if !ok {
				return nil, &ParseError{Parent: path, Name: leaf, Err: ErrMissingConfig}
			}
			children = append(children, &Node{
				Name:   leafPath,
				Parent: path,
				Config: conf,
				Kind:   Terminal,
			})
		}

		conf, ok := confs.take(path)
		if !ok {
			return nil, &ParseError{Parent: parent, Name: name, Err: ErrMissingConfig}
		}
		nodes = append(nodes, &Node{
			Name:     path,
			Parent:   parent,
			Config:   conf,
			Kind:     Group,
			Children: children,
		})
	}
	return nodes, nil
}
