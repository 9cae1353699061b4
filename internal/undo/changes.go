/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package undo

import (
	"fmt"
	"strings"

	"github.com/Flutterish/osu-framework-designer-sub000/internal/prop"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/scene"
)

// Change is one reversible edit. The set of variants is closed: PropChanged,
// PropsChanged, ComponentAdded, ComponentRemoved, ComponentsAdded and
// ComponentsRemoved.
//
// Undo and Redo apply the edit to live objects; the History only stores changes
// and never calls them. Dispose releases the buffers a batch change owns and may
// be called more than once.
type Change interface {
	Undo()
	Redo()
	Dispose()
	String() string
	change()
}

// Container holds components in order. scene.Scene and scene.Group satisfy it.
type Container interface {
	Insert(index int, c scene.Component)
	Remove(c scene.Component) (int, bool)
}

// PropChanged records one property going from Previous to Next.
type PropChanged struct {
	Target   prop.Property
	Previous any
	Next     any
}

func (c PropChanged) Undo()    { c.Target.SetValue(c.Previous) }
func (c PropChanged) Redo()    { c.Target.SetValue(c.Next) }
func (c PropChanged) Dispose() {}
func (c PropChanged) change()  {}

func (c PropChanged) String() string {
	return fmt.Sprintf("%s: %v -> %v", c.Target.Name(), c.Previous, c.Next)
}

// PropsChanged is a batch of property changes from one gesture.
type PropsChanged struct {
	Changes  []PropChanged
	disposed bool
}

// NewPropsChanged allocates a batch with room for n changes.
func NewPropsChanged(n int) *PropsChanged {
	return &PropsChanged{Changes: make([]PropChanged, 0, n)}
}

// Undo restores the previous values in reverse order.
func (c *PropsChanged) Undo() {
	for i := len(c.Changes) - 1; i >= 0; i-- {
		c.Changes[i].Undo()
	}
}

func (c *PropsChanged) Redo() {
	for _, ch := range c.Changes {
		ch.Redo()
	}
}

func (c *PropsChanged) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.Changes = nil
}

// Disposed reports whether the batch buffer was released.
func (c *PropsChanged) Disposed() bool { return c.disposed }
func (c *PropsChanged) Len() int       { return len(c.Changes) }
func (c *PropsChanged) change()        {}

func (c *PropsChanged) String() string {
	parts := make([]string, len(c.Changes))
	for i, ch := range c.Changes {
		parts[i] = ch.String()
	}
	return fmt.Sprintf("props(%d){%s}", len(c.Changes), strings.Join(parts, "; "))
}

// ComponentAdded records c being inserted into In at Index.
type ComponentAdded struct {
	In        Container
	Component scene.Component
	Index     int
}

func (c ComponentAdded) Undo()    { c.In.Remove(c.Component) }
func (c ComponentAdded) Redo()    { c.In.Insert(c.Index, c.Component) }
func (c ComponentAdded) Dispose() {}
func (c ComponentAdded) change()  {}

func (c ComponentAdded) String() string {
	return fmt.Sprintf("added %s at %d", c.Component.Name(), c.Index)
}

// ComponentRemoved records c being taken out of In at Index.
type ComponentRemoved struct {
	In        Container
	Component scene.Component
	Index     int
}

func (c ComponentRemoved) Undo()    { c.In.Insert(c.Index, c.Component) }
func (c ComponentRemoved) Redo()    { c.In.Remove(c.Component) }
func (c ComponentRemoved) Dispose() {}
func (c ComponentRemoved) change()  {}

func (c ComponentRemoved) String() string {
	return fmt.Sprintf("removed %s from %d", c.Component.Name(), c.Index)
}

// Placement is a component and the index it had when the batch was applied.
type Placement struct {
	Component scene.Component
	Index     int
}

// ComponentsAdded records several insertions, in the order they happened.
type ComponentsAdded struct {
	In       Container
	Items    []Placement
	disposed bool
}

func (c *ComponentsAdded) Undo() {
	for i := len(c.Items) - 1; i >= 0; i-- {
		c.In.Remove(c.Items[i].Component)
	}
}

func (c *ComponentsAdded) Redo() {
	for _, it := range c.Items {
		c.In.Insert(it.Index, it.Component)
	}
}

func (c *ComponentsAdded) Dispose() {
	if !c.disposed {
		c.disposed = true
		c.Items = nil
	}
}

func (c *ComponentsAdded) Disposed() bool { return c.disposed }
func (c *ComponentsAdded) change()        {}
func (c *ComponentsAdded) String() string { return "added " + placements(c.Items) }

// ComponentsRemoved records several removals, in the order they happened. Each
// index is the one the component had at the moment it was removed, so undoing in
// reverse order restores the exact original order.
type ComponentsRemoved struct {
	In       Container
	Items    []Placement
	disposed bool
}

func (c *ComponentsRemoved) Undo() {
	for i := len(c.Items) - 1; i >= 0; i-- {
		c.In.Insert(c.Items[i].Index, c.Items[i].Component)
	}
}

func (c *ComponentsRemoved) Redo() {
	for _, it := range c.Items {
		c.In.Remove(it.Component)
	}
}

func (c *ComponentsRemoved) Dispose() {
	if !c.disposed {
		c.disposed = true
		c.Items = nil
	}
}

func (c *ComponentsRemoved) Disposed() bool { return c.disposed }
func (c *ComponentsRemoved) change()        {}
func (c *ComponentsRemoved) String() string { return "removed " + placements(c.Items) }

// RemoveAll removes each component from in and returns the record, or nil when
// nothing was removed.
func RemoveAll(in Container, cs ...scene.Component) *ComponentsRemoved {
	rec := &ComponentsRemoved{In: in, Items: make([]Placement, 0, len(cs))}
	for _, c := range cs {
		if i, ok := in.Remove(c); ok {
			rec.Items = append(rec.Items, Placement{Component: c, Index: i})
		}
	}
	if len(rec.Items) == 0 {
		return nil
	}
	return rec
}

func placements(items []Placement) string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = fmt.Sprintf("%s@%d", it.Component.Name(), it.Index)
	}
	return "[" + strings.Join(names, ", ") + "]"
}
