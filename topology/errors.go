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

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedValue is returned when a document value has a kind that is
	// not allowed at its position.
	ErrUnexpectedValue = errors.New("unexpected value")
	// ErrMissingLocationOrParams is returned when a config scope does not
	// declare both 'params' and 'location'.
	ErrMissingLocationOrParams = errors.New("missing location or params")
	// ErrInvalidLocation is returned when 'location' is present but malformed.
	ErrInvalidLocation = fmt.Errorf("%w: invalid location", ErrMissingLocationOrParams)
	// ErrDuplicatePath is returned when two config scopes resolve to the same
	// dotted path, e.g. a quoted key containing a dot next to nested tables.
	ErrDuplicatePath = errors.New("duplicate config path")
	// ErrMissingConfig is returned when a node of the tree shape has no config.
	ErrMissingConfig = errors.New("missed config")
	// ErrUnknownHost is returned when a location refers to an unknown host alias.
	ErrUnknownHost = errors.New("unknown host")
	// ErrDuplicateBinding is returned when two nodes share one host:port.
	ErrDuplicateBinding = errors.New("duplicate service")
	// ErrMissingSection is returned when a top level section is absent or is not a table.
	ErrMissingSection = errors.New("missing section")
	// ErrInvalidHost is returned for malformed 'hosts' entries.
	ErrInvalidHost = errors.New("invalid host")
	// ErrUnusedConfig is returned by strict parsing for configs no node claims.
	ErrUnusedConfig = errors.New("unused config")
)

// ParseError describes where in the document parsing failed. Parent is the
// dotted path of the enclosing scope ("" at the top level) and Name the
// offending key. Err is one of the sentinel errors of this package.
type ParseError struct {
	Parent string
	Name   string
	Err    error
	Detail string
}

func (e *ParseError) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return fmt.Sprintf("topology: %s (parent: %q, name: %q)", msg, e.Parent, e.Name)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
