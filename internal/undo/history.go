/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package undo stores reversible edits in a linear history with a cursor.
package undo

import (
	"log/slog"

	applog "github.com/Flutterish/osu-framework-designer-sub000/internal/log"
)

const DefaultCapacity = 256

// Config bounds the history.
type Config struct {
	// Capacity is the maximum number of stored changes. When exceeded, the oldest
	// change is dropped and disposed. Zero means DefaultCapacity; negative means
	// unbounded.
	Capacity int
}

// History is a linear list of changes and a cursor at the last applied one.
// Branching is not supported: pushing while changes are undone discards them.
// A History is not safe for concurrent use.
type History struct {
	cfg     Config
	changes []Change
	current int
	locked  bool

	pushed listeners
	popped listeners
	log    *slog.Logger
}

func NewHistory(cfg Config) *History {
	if cfg.Capacity == 0 {
		cfg.Capacity = DefaultCapacity
	}
	return &History{cfg: cfg, current: -1, log: applog.WithComponent("undo")}
}

// Push appends c after the cursor. Changes after the cursor are disposed and
// dropped first. Push does nothing while the history is locked.
func (h *History) Push(c Change) {
	if h.locked || c == nil {
		return
	}
	if tail := h.current + 1; tail < len(h.changes) {
		discarded := h.changes[tail:]
		for _, d := range discarded {
			d.Dispose()
		}
		clear(discarded)
		h.changes = h.changes[:tail]
		h.log.Debug("discarded redo branch", slog.Int("count", len(discarded)))
	}
	h.changes = append(h.changes, c)
	h.current = len(h.changes) - 1
	h.enforceCapacity()
	h.log.Debug("push", slog.String("change", c.String()), slog.Int("current", h.current))
	h.pushed.emit(c)
}

// Back moves the cursor one step towards the start and returns the change that
// the caller should undo.
func (h *History) Back() (Change, bool) {
	if h.locked || h.current < 0 {
		return nil, false
	}
	c := h.changes[h.current]
	h.current--
	h.popped.emit(c)
	return c, true
}

// Forward moves the cursor one step towards the end and returns the change that
// the caller should redo.
func (h *History) Forward() (Change, bool) {
	if h.locked || h.current >= len(h.changes)-1 {
		return nil, false
	}
	h.current++
	c := h.changes[h.current]
	h.pushed.emit(c)
	return c, true
}

// SetLocked suppresses Push, Back and Forward, e.g. while a change is replayed.
func (h *History) SetLocked(v bool)  { h.locked = v }
func (h *History) Locked() bool      { return h.locked }
func (h *History) HasUndo() bool     { return h.current >= 0 }
func (h *History) HasRedo() bool     { return h.current < len(h.changes)-1 }
func (h *History) CurrentIndex() int { return h.current }
func (h *History) Len() int          { return len(h.changes) }

// Changes returns a copy of the stored changes, oldest first.
func (h *History) Changes() []Change { return append([]Change(nil), h.changes...) }

// Clear disposes and drops every change.
func (h *History) Clear() {
	for _, c := range h.changes {
		c.Dispose()
	}
	h.changes = nil
	h.current = -1
}

// OnChangePushed registers fn for Push and Forward. The returned func unregisters it.
func (h *History) OnChangePushed(fn func(Change)) func() { return h.pushed.add(fn) }

// OnChangePopped registers fn for Back.
func (h *History) OnChangePopped(fn func(Change)) func() { return h.popped.add(fn) }

func (h *History) enforceCapacity() {
	if h.cfg.Capacity < 0 {
		return
	}
	drop := len(h.changes) - h.cfg.Capacity
	if drop <= 0 {
		return
	}
	for _, c := range h.changes[:drop] {
		c.Dispose()
	}
	h.changes = append([]Change(nil), h.changes[drop:]...)
	h.current -= drop
	h.log.Debug("capacity reached", slog.Int("dropped", drop), slog.Int("capacity", h.cfg.Capacity))
}

type listener struct {
	fn     func(Change)
	active bool
}

type listeners []*listener

func (ls *listeners) add(fn func(Change)) func() {
	l := &listener{fn: fn, active: true}
	*ls = append(*ls, l)
	return func() {
		if !l.active {
			return
		}
		l.active = false
		for i, x := range *ls {
			if x == l {
				*ls = append((*ls)[:i:i], (*ls)[i+1:]...)
				return
			}
		}
	}
}

func (ls listeners) emit(c Change) {
	for _, l := range append(listeners(nil), ls...) {
		if l.active {
			l.fn(c)
		}
	}
}
