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

import "fmt"

// validateReferences checks that every location refers to a known host and
// that no binding is claimed twice. Paths are visited in sorted order, so the
// lexically first of two colliding paths is reported as the owner.
func validateReferences(hosts map[string]Host, confs configs) error {
	owners := make(map[string]string, len(confs))
	for _, path := range sortedKeys(confs) {
		loc, ok := LocationOf(confs[path])
		if !ok {
			continue
		}
		if _, ok := hosts[loc.Host]; !ok {
			return &ParseError{Parent: configSection, Name: path, Err: ErrUnknownHost, Detail: loc.Host}
		}

		binding := loc.Binding()
		if owner, ok := owners[binding]; ok {
			return &ParseError{
				Parent: configSection,
				Name:   path,
				Err:    ErrDuplicateBinding,
				Detail: fmt.Sprintf("(%s): %s", binding, owner),
			}
		}
		owners[binding] = path
	}
	return nil
}
