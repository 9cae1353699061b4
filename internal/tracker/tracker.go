/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package tracker watches the properties of the selected components and turns
// the ones that changed since the last flush into an undo record.
package tracker

import (
	"cmp"
	"log/slog"
	"slices"

	applog "github.com/Flutterish/osu-framework-designer-sub000/internal/log"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/prop"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/scene"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/undo"
)

type entry struct {
	prop    prop.Property
	initial any
	current any
	refs    int
	seq     uint64
	unwatch func()
}

func (e *entry) dirty() bool { return e.initial != e.current }

// Tracker holds (initial, current) for every property reachable from a tracked
// component. A property reached through two tracked components is watched once.
type Tracker struct {
	entries  map[prop.Property]*entry
	byRoot   map[scene.Component][]prop.Property
	selected []scene.Component
	dirty    int
	seq      uint64
	log      *slog.Logger
}

func New() *Tracker {
	return &Tracker{
		entries: make(map[prop.Property]*entry),
		byRoot:  make(map[scene.Component][]prop.Property),
		log:     applog.WithComponent("tracker"),
	}
}

// StartTracking snapshots every property of c and its descendants and starts
// watching them. Tracking an already tracked component does nothing.
func (t *Tracker) StartTracking(c scene.Component) {
	if c == nil {
		return
	}
	if _, ok := t.byRoot[c]; ok {
		return
	}
	var props []prop.Property
	scene.Walk(c, func(x scene.Component) bool {
		for _, p := range x.Properties() {
			t.acquire(p)
			props = append(props, p)
		}
		return true
	})
	t.byRoot[c] = props
	t.selected = append(t.selected, c)
}

// StopTracking stops watching the properties of c. Unrecorded changes are lost.
func (t *Tracker) StopTracking(c scene.Component) {
	props, ok := t.byRoot[c]
	if !ok {
		return
	}
	for _, p := range props {
		t.release(p)
	}
	delete(t.byRoot, c)
	t.selected = slices.DeleteFunc(t.selected, func(x scene.Component) bool { return x == c })
}

// SetSelection makes the tracked set exactly cs. Components leaving the
// selection are released before new ones are snapshotted.
func (t *Tracker) SetSelection(cs ...scene.Component) {
	for _, c := range slices.Clone(t.selected) {
		if !slices.Contains(cs, c) {
			t.StopTracking(c)
		}
	}
	for _, c := range cs {
		t.StartTracking(c)
	}
	t.log.Debug("selection", slog.Int("components", len(t.selected)), slog.Int("properties", len(t.entries)))
}

// Selection returns the tracked components in the order they started tracking.
func (t *Tracker) Selection() []scene.Component { return slices.Clone(t.selected) }

// Len is the number of distinct tracked properties.
func (t *Tracker) Len() int { return len(t.entries) }

// AnyChanged reports whether some tracked property differs from its snapshot.
func (t *Tracker) AnyChanged() bool { return t.dirty > 0 }

// CreateChangeRecord returns one PropChanged per dirty property, in tracking
// order. It does not flush.
func (t *Tracker) CreateChangeRecord() *undo.PropsChanged {
	dirty := make([]*entry, 0, t.dirty)
	for _, e := range t.entries {
		if e.dirty() {
			dirty = append(dirty, e)
		}
	}
	slices.SortFunc(dirty, func(a, b *entry) int { return cmp.Compare(a.seq, b.seq) })
	rec := undo.NewPropsChanged(len(dirty))
	for _, e := range dirty {
		rec.Changes = append(rec.Changes, undo.PropChanged{Target: e.prop, Previous: e.initial, Next: e.current})
	}
	return rec
}

// Flush makes the current values the new snapshot without recording anything.
func (t *Tracker) Flush() {
	for _, e := range t.entries {
		e.initial = e.current
	}
	t.dirty = 0
}

// FlushComponent is Flush restricted to the properties of c and its descendants.
func (t *Tracker) FlushComponent(c scene.Component) {
	scene.Walk(c, func(x scene.Component) bool {
		for _, p := range x.Properties() {
			if e, ok := t.entries[p]; ok && e.dirty() {
				e.initial = e.current
				t.dirty--
			}
		}
		return true
	})
}

func (t *Tracker) acquire(p prop.Property) {
	if e, ok := t.entries[p]; ok {
		e.refs++
		return
	}
	t.seq++
	v := p.Value()
	e := &entry{prop: p, initial: v, current: v, refs: 1, seq: t.seq}
	e.unwatch = p.Watch(func(_, _ any) {
		// Re-entrant dispatch can deliver stale values; the cell is authoritative.
		was := e.dirty()
		e.current = p.Value()
		switch now := e.dirty(); {
		case now && !was:
			t.dirty++
		case was && !now:
			t.dirty--
		}
	})
	t.entries[p] = e
}

func (t *Tracker) release(p prop.Property) {
	e, ok := t.entries[p]
	if !ok {
		return
	}
	if e.refs--; e.refs > 0 {
		return
	}
	e.unwatch()
	if e.dirty() {
		t.dirty--
		t.log.Debug("dropped unrecorded change", slog.String("prop", p.Name()))
	}
	delete(t.entries, p)
}
