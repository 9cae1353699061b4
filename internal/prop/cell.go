/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package prop holds observable value cells. A cell normalizes every assignment and
// notifies its own listeners only when the normalized value actually changes; that
// guard is what stops listener chains that write back into each other from looping.
package prop

import "fmt"

// Normalizer maps an assigned value to the value that is stored. prev is the value
// currently held, so returning it rejects the assignment.
type Normalizer[T any] func(prev, next T) T

// Property is the untyped view of a cell used by change tracking and undo records.
type Property interface {
	Name() string
	Value() any
	// SetValue assigns v when it has the cell's type. It reports whether the stored
	// value changed.
	SetValue(v any) bool
	// Watch registers fn for effective changes and returns a func that removes it.
	Watch(fn func(old, new any)) (unsubscribe func())
}

type listener[T any] struct {
	fn     func(old, new T)
	active bool
}

// Cell is a single observable value. It is not safe for concurrent use; cells
// live on the UI thread together with the shape that owns them.
type Cell[T comparable] struct {
	name      string
	value     T
	normalize Normalizer[T]
	listeners []*listener[T]
}

// New creates a cell. The initial value is normalized against the zero value of T.
func New[T comparable](name string, initial T, norm Normalizer[T]) *Cell[T] {
	c := &Cell[T]{name: name, normalize: norm}
	c.value = c.normalized(initial)
	return c
}

func (c *Cell[T]) Name() string { return c.name }
func (c *Cell[T]) Get() T       { return c.value }
func (c *Cell[T]) Value() any   { return c.value }

func (c *Cell[T]) String() string { return fmt.Sprintf("%s=%v", c.name, c.value) }

func (c *Cell[T]) normalized(v T) T {
	if c.normalize == nil {
		return v
	}
	return c.normalize(c.value, v)
}

// Set assigns v after normalization and notifies listeners if the stored value
// changed. It reports whether it did.
func (c *Cell[T]) Set(v T) bool {
	v = c.normalized(v)
	if v == c.value {
		return false
	}
	old := c.value
	c.value = v

	// Listeners may subscribe, unsubscribe or write other cells while we dispatch.
	ls := make([]*listener[T], len(c.listeners))
	copy(ls, c.listeners)
	for _, l := range ls {
		if l.active {
			l.fn(old, v)
		}
	}
	return true
}

func (c *Cell[T]) SetValue(v any) bool {
	tv, ok := v.(T)
	if !ok {
		return false
	}
	return c.Set(tv)
}

// Subscribe registers fn for effective changes. The returned func removes it and
// may be called more than once.
func (c *Cell[T]) Subscribe(fn func(old, new T)) (unsubscribe func()) {
	l := &listener[T]{fn: fn, active: true}
	c.listeners = append(c.listeners, l)
	return func() {
		if !l.active {
			return
		}
		l.active = false
		for i, x := range c.listeners {
			if x == l {
				c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
				break
			}
		}
	}
}

func (c *Cell[T]) Watch(fn func(old, new any)) (unsubscribe func()) {
	return c.Subscribe(func(old, new T) { fn(old, new) })
}

// Listeners returns the number of registered listeners.
func (c *Cell[T]) Listeners() int { return len(c.listeners) }
