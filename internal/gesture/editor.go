/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package gesture turns pointer drags on selection handles into transform
// mutations and commits each finished drag as one undoable change.
package gesture

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	applog "github.com/Flutterish/osu-framework-designer-sub000/internal/log"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/scene"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/tracker"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/transform"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/undo"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/vector"
)

var (
	ErrNoSelection   = errors.New("nothing selected")
	ErrGestureActive = errors.New("a gesture is already in progress")
)

// Options tunes rounding and snapping of non-precise drags.
type Options struct {
	// RoundPlaces is the number of decimals kept by non-precise drags.
	RoundPlaces int
	// RotationStep snaps non-precise rotation to multiples of this many degrees.
	// Zero falls back to RoundPlaces rounding.
	RotationStep float32
	// SnapThreshold is the smart guide distance in world units. Zero disables snapping.
	SnapThreshold float32
	// HistoryCapacity bounds the undo history (see undo.Config).
	HistoryCapacity int
	// MaxShear bounds the shear cells of shapes built for this editor (see
	// transform.NewBounded). Zero means transform.DefaultMaxShear.
	MaxShear float32
}

func DefaultOptions() Options {
	return Options{
		RoundPlaces:     0,
		RotationStep:    1,
		SnapThreshold:   4,
		HistoryCapacity: undo.DefaultCapacity,
		MaxShear:        transform.DefaultMaxShear,
	}
}

// Editor owns the selection and connects it to the tracker and the history.
type Editor struct {
	Scene   *scene.Scene
	History *undo.History
	Tracker *tracker.Tracker

	opts      Options
	selection []scene.Component
	drag      Drag
	log       *slog.Logger
}

func NewEditor(sc *scene.Scene, opts Options) *Editor {
	if sc == nil {
		sc = scene.New()
	}
	return &Editor{
		Scene:   sc,
		History: undo.NewHistory(undo.Config{Capacity: opts.HistoryCapacity}),
		Tracker: tracker.New(),
		opts:    opts,
		log:     applog.WithComponent("gesture"),
	}
}

func (e *Editor) Options() Options { return e.opts }

// Select replaces the selection. A gesture in progress is committed first.
func (e *Editor) Select(cs ...scene.Component) {
	if e.drag != nil {
		e.EndGesture()
	}
	e.selection = slices.DeleteFunc(slices.Clone(cs), func(c scene.Component) bool { return c == nil })
	e.Tracker.SetSelection(e.selection...)
}

func (e *Editor) Selection() []scene.Component { return slices.Clone(e.selection) }

// InGesture reports whether a drag is in progress.
func (e *Editor) InGesture() bool { return e.drag != nil }

// states returns the transform of every selected shape, groups flattened.
func (e *Editor) states() []*transform.State {
	var out []*transform.State
	for _, c := range e.selection {
		scene.Walk(c, func(x scene.Component) bool {
			if s, ok := x.(*scene.Shape); ok && !slices.Contains(out, s.Transform) {
				out = append(out, s.Transform)
			}
			return true
		})
	}
	return out
}

// BeginDrag starts a gesture on handle h at world point start.
func (e *Editor) BeginDrag(h Handle, start vector.Pt) (Drag, error) {
	if e.drag != nil {
		return nil, ErrGestureActive
	}
	states := e.states()
	if len(states) == 0 {
		return nil, ErrNoSelection
	}
	d, err := newDrag(e, h, start, states)
	if err != nil {
		return nil, err
	}
	e.Tracker.Flush()
	e.drag = d
	e.log.Debug("drag start", slog.String("handle", h.String()), slog.Int("shapes", len(states)))
	return d, nil
}

// EndGesture normalizes the touched transforms and pushes one record holding
// every property that changed. It returns the record, or nil when nothing changed.
func (e *Editor) EndGesture() undo.Change {
	if e.drag == nil {
		return nil
	}
	e.drag.finish()
	e.drag = nil
	for _, c := range e.selection {
		if t, ok := c.(scene.Transformable); ok {
			t.Normalize()
		}
	}
	rec := e.Tracker.CreateChangeRecord()
	if rec.Len() == 0 {
		rec.Dispose()
		return nil
	}
	e.History.Push(rec)
	e.Tracker.Flush()
	e.log.Debug("drag end", slog.Int("changes", rec.Len()))
	return rec
}

// CancelGesture puts every changed property back to its value at drag start
// without recording anything.
func (e *Editor) CancelGesture() {
	if e.drag == nil {
		return
	}
	e.drag.finish()
	e.drag = nil
	rec := e.Tracker.CreateChangeRecord()
	rec.Undo()
	rec.Dispose()
	e.Tracker.Flush()
	e.log.Debug("drag cancelled")
}

// Undo reverts the change before the history cursor. The replay itself is not recorded.
func (e *Editor) Undo() bool {
	if e.drag != nil {
		e.CancelGesture()
	}
	c, ok := e.History.Back()
	if !ok {
		return false
	}
	e.replay(c.Undo)
	e.log.Debug("undo", slog.String("change", c.String()))
	return true
}

// Redo reapplies the change after the history cursor.
func (e *Editor) Redo() bool {
	if e.drag != nil {
		e.CancelGesture()
	}
	c, ok := e.History.Forward()
	if !ok {
		return false
	}
	e.replay(c.Redo)
	e.log.Debug("redo", slog.String("change", c.String()))
	return true
}

func (e *Editor) replay(fn func()) {
	e.History.SetLocked(true)
	defer e.History.SetLocked(false)
	fn()
	e.dropDetached()
	e.Tracker.Flush()
}

// dropDetached deselects components that are no longer in the scene.
func (e *Editor) dropDetached() {
	kept := slices.DeleteFunc(slices.Clone(e.selection), func(c scene.Component) bool {
		return e.Scene.Find(c.ID()) == nil
	})
	if len(kept) != len(e.selection) {
		e.selection = kept
		e.Tracker.SetSelection(kept...)
	}
}

// Add appends c to the scene as one undoable change. A gesture in progress is
// committed first.
func (e *Editor) Add(c scene.Component) error {
	if c == nil {
		return errors.New("add: nil component")
	}
	if e.Scene.Find(c.ID()) != nil {
		return fmt.Errorf("add %s: already in the scene", c.Name())
	}
	if e.drag != nil {
		e.EndGesture()
	}
	e.Scene.Add(c)
	e.History.Push(undo.ComponentAdded{In: e.Scene, Component: c, Index: e.Scene.IndexOf(c)})
	return nil
}

// Remove takes top-level components out of the scene as one undoable change.
// It reports whether anything was removed.
func (e *Editor) Remove(cs ...scene.Component) bool {
	if e.drag != nil {
		e.EndGesture()
	}
	rec := undo.RemoveAll(e.Scene, cs...)
	if rec == nil {
		return false
	}
	e.History.Push(rec)
	e.dropDetached()
	return true
}
