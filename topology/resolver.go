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

const (
	paramsKey   = "params"
	locationKey = "location"
)

// configs maps the dotted path of a node to its runtime configuration.
type configs map[string]RunConf

// take removes the config of path and returns it.
func (c configs) take(path string) (RunConf, bool) {
	conf, ok := c[path]
	if ok {
		delete(c, path)
	}
	return conf, ok
}

// resolveConfigs flattens the config section into acc. Every table under
// parent is a configured node: its 'params' and 'location' make the node
// config and the remaining keys are nested nodes.
func resolveConfigs(parent string, table map[string]any, acc configs) error {
	for _, name := range sortedKeys(table) {
		scope, ok := table[name].(map[string]any)
		if !ok {
			return &ParseError{Parent: parent, Name: name, Err: ErrUnexpectedValue, Detail: kindOf(table[name])}
		}

		params, hasParams := scope[paramsKey]
		rawLocation, hasLocation := scope[locationKey]
		switch {
		case hasParams && hasLocation:
		case hasParams:
			return &ParseError{Parent: parent, Name: name, Err: ErrMissingLocationOrParams, Detail: "conf 'location' is missed"}
		case hasLocation:
			return &ParseError{Parent: parent, Name: name, Err: ErrMissingLocationOrParams, Detail: "conf 'params' is missed"}
		default:
			return &ParseError{Parent: parent, Name: name, Err: ErrMissingLocationOrParams, Detail: "conf 'location' and 'params' are missed"}
		}

		location, err := decodeLocation(rawLocation)
		if err != nil {
			return &ParseError{Parent: parent, Name: name, Err: ErrInvalidLocation, Detail: err.Error()}
		}

		path := joinPath(parent, name)
		if _, dup := acc[path]; dup {
			return &ParseError{Parent: parent, Name: name, Err: ErrDuplicatePath, Detail: path}
		}
		acc[path] = Active{Params: ToValue(params), Location: location}

		if err := resolveConfigs(path, nested(scope), acc); err != nil {
			return err
		}
	}
	return nil
}

// nested returns the scope without its reserved keys. The document itself
// stays untouched.
func nested(scope map[string]any) map[string]any {
	rest := make(map[string]any, len(scope))
	for k, v := range scope {
		if k == paramsKey || k == locationKey {
			continue
		}
		rest[k] = v
	}
	return rest
}
