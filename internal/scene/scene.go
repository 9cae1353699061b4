/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"fmt"
	"slices"

	"github.com/Flutterish/osu-framework-designer-sub000/internal/prop"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/vector"
)

// list is an ordered set of components shared by Group and Scene.
type list struct{ items []Component }

func (l *list) Len() int                  { return len(l.items) }
func (l *list) Components() []Component   { return slices.Clone(l.items) }
func (l *list) IndexOf(c Component) int   { return slices.Index(l.items, c) }
func (l *list) Contains(c Component) bool { return l.IndexOf(c) >= 0 }

// Insert places c at index, clamped to the valid range. A component already in
// the list is moved.
func (l *list) Insert(index int, c Component) {
	if i := l.IndexOf(c); i >= 0 {
		l.items = slices.Delete(l.items, i, i+1)
	}
	index = min(max(index, 0), len(l.items))
	l.items = slices.Insert(l.items, index, c)
}

// Remove takes c out of the list and reports where it was.
func (l *list) Remove(c Component) (int, bool) {
	i := l.IndexOf(c)
	if i < 0 {
		return -1, false
	}
	l.items = slices.Delete(l.items, i, i+1)
	return i, true
}

// Group is a named container component. Selecting a group tracks its members.
type Group struct {
	list
	id    string
	Label *prop.Cell[string]
}

func NewGroup(name string, members ...Component) *Group {
	g := &Group{id: newID(PrefixGroup), Label: prop.New("name", name, nonEmpty)}
	for _, m := range members {
		g.Insert(g.Len(), m)
	}
	return g
}

func (g *Group) ID() string                  { return g.id }
func (g *Group) Name() string                { return g.Label.Get() }
func (g *Group) Properties() []prop.Property { return []prop.Property{g.Label} }
func (g *Group) Children() []Component       { return g.Components() }

// Normalize normalizes every transformable member.
func (g *Group) Normalize() {
	for _, c := range g.items {
		if t, ok := c.(Transformable); ok {
			t.Normalize()
		}
	}
}

func (g *Group) String() string { return fmt.Sprintf("group %q (%d)", g.Name(), g.Len()) }

// Scene is the ordered root of the component tree. Later components draw on top.
type Scene struct{ list }

func New() *Scene { return &Scene{} }

// Add appends c on top.
func (s *Scene) Add(c Component) { s.Insert(s.Len(), c) }

// Find looks a component up by id anywhere in the tree.
func (s *Scene) Find(id string) Component {
	return s.find(func(c Component) bool { return c.ID() == id })
}

// FindByName returns the first component with the given name, depth-first.
func (s *Scene) FindByName(name string) Component {
	return s.find(func(c Component) bool { return c.Name() == name })
}

func (s *Scene) find(match func(Component) bool) Component {
	var found Component
	for _, root := range s.items {
		Walk(root, func(c Component) bool {
			if found == nil && match(c) {
				found = c
			}
			return found == nil
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// Shapes returns every shape in draw order, flattening groups.
func (s *Scene) Shapes() []*Shape {
	var out []*Shape
	for _, root := range s.items {
		Walk(root, func(c Component) bool {
			if sh, ok := c.(*Shape); ok {
				out = append(out, sh)
			}
			return true
		})
	}
	return out
}

// HitTest returns the topmost shape under p together with the top-level
// component that holds it. Both are nil when nothing is hit.
func (s *Scene) HitTest(p vector.Pt) (Component, *Shape) {
	for i := len(s.items) - 1; i >= 0; i-- {
		root := s.items[i]
		var hit *Shape
		Walk(root, func(c Component) bool {
			if sh, ok := c.(*Shape); ok && sh.Contains(p) {
				hit = sh
			}
			return true
		})
		if hit != nil {
			return root, hit
		}
	}
	return nil, nil
}
