/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scene holds the editable component tree: shapes, groups and the scene
// that orders them. Every editable value of a component is a property cell, so
// the tracker and the undo records can treat them uniformly.
package scene

import (
	"fmt"

	"go.jetify.com/typeid/v2"

	"github.com/Flutterish/osu-framework-designer-sub000/internal/prop"
)

const (
	PrefixShape = "shape"
	PrefixGroup = "group"
)

// Component is anything that can be selected and edited.
type Component interface {
	ID() string
	Name() string
	// Properties lists the cells of this component, not of its children.
	Properties() []prop.Property
	Children() []Component
}

// Transformable is implemented by components with a transform state.
type Transformable interface {
	Component
	Normalize()
}

func newID(prefix string) string { return typeid.MustGenerate(prefix).String() }

// ValidateID checks that id is a well-formed type id with the expected prefix.
func ValidateID(id, prefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", id, err)
	}
	if parsed.Prefix() != prefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", prefix, parsed.Prefix(), id)
	}
	return nil
}

// Walk visits c and its descendants depth-first, parents before children.
// Returning false from fn skips the children of that component.
func Walk(c Component, fn func(Component) bool) {
	if c == nil || !fn(c) {
		return
	}
	for _, ch := range c.Children() {
		Walk(ch, fn)
	}
}
