/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gesture

import (
	"fmt"
	"math"
	"slices"

	"github.com/Flutterish/osu-framework-designer-sub000/internal/transform"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/vector"
)

// Modifiers are the key states that affect a drag.
type Modifiers struct {
	// Precise keeps raw targets: no rounding and no snapping.
	Precise bool
}

// Drag receives pointer positions in world space for one gesture. Positions are
// absolute; every Update recomputes the targets from the drag start. Updates
// after the gesture ended are ignored.
type Drag interface {
	Handle() Handle
	Update(p vector.Pt, m Modifiers)
	finish()
}

type base struct {
	handle Handle
	start  vector.Pt
	opts   Options
	done   bool
}

func (b *base) Handle() Handle { return b.handle }
func (b *base) finish()        { b.done = true }

func (b *base) resolve(v float32, m Modifiers) float32 {
	if m.Precise {
		return v
	}
	return vector.FloatRound(v, b.opts.RoundPlaces)
}

func newDrag(e *Editor, h Handle, start vector.Pt, states []*transform.State) (Drag, error) {
	b := base{handle: h, start: start, opts: e.opts}
	switch {
	case h.isEdge():
		return newEdgeDrag(b, states), nil
	case h.isShear():
		return newShearDrag(b, states), nil
	case h == HandleMove:
		return newMoveDrag(b, e, states), nil
	case h == HandleRotate:
		return newRotateDrag(b, states), nil
	case h == HandleOrigin:
		return &OriginDrag{base: b, states: states}, nil
	}
	return nil, fmt.Errorf("drag: unsupported handle %v", h)
}

// EdgeDrag moves one edge, or two for a corner, keeping the opposite ones fixed.
type EdgeDrag struct {
	base
	shapes []edgeStart
}

type edgeStart struct {
	st                       *transform.State
	left, right, top, bottom float32
}

func newEdgeDrag(b base, states []*transform.State) *EdgeDrag {
	d := &EdgeDrag{base: b}
	for _, st := range states {
		d.shapes = append(d.shapes, edgeStart{
			st: st, left: st.LeftEdge(), right: st.RightEdge(), top: st.TopEdge(), bottom: st.BottomEdge(),
		})
	}
	return d
}

func (d *EdgeDrag) Update(p vector.Pt, m Modifiers) {
	if d.done {
		return
	}
	left, right, top, bottom := d.handle.edges()
	for _, s := range d.shapes {
		delta := s.st.ToFrame(p.Sub(d.start))
		// Vertical first: with ShearX a top/bottom change shifts the left/right edges.
		if top {
			s.st.SetTopEdge(d.resolve(s.top+delta.Y, m))
		}
		if bottom {
			s.st.SetBottomEdge(d.resolve(s.bottom+delta.Y, m))
		}
		if left {
			s.st.SetLeftEdge(d.resolve(s.left+delta.X, m))
		}
		if right {
			s.st.SetRightEdge(d.resolve(s.right+delta.X, m))
		}
	}
}

// MoveDrag translates the selection. Without Precise the moved bounds snap to
// the edges and centres of the other shapes.
type MoveDrag struct {
	base
	states  []*transform.State
	starts  []vector.Pt
	bounds  vector.Rect
	anchors []vector.Rect
	guides  []vector.GuideLine
}

func newMoveDrag(b base, e *Editor, states []*transform.State) *MoveDrag {
	d := &MoveDrag{base: b, states: states}
	for i, st := range states {
		d.starts = append(d.starts, st.Position())
		qb := st.Quad().Bounds()
		if i == 0 {
			d.bounds = qb
		} else {
			d.bounds = d.bounds.Union(qb)
		}
	}
	for _, sh := range e.Scene.Shapes() {
		if !slices.Contains(states, sh.Transform) {
			d.anchors = append(d.anchors, sh.Transform.Quad().Bounds())
		}
	}
	return d
}

// Guides returns the smart guides matched by the last update.
func (d *MoveDrag) Guides() []vector.GuideLine { return d.guides }

func (d *MoveDrag) Update(p vector.Pt, m Modifiers) {
	if d.done {
		return
	}
	delta := p.Sub(d.start)
	d.guides = nil
	if !m.Precise && d.opts.SnapThreshold > 0 && len(d.anchors) > 0 {
		off, guides := vector.ComputeSmartGuides(d.bounds.Translated(delta), d.anchors, vector.SnapOptions{
			Threshold: d.opts.SnapThreshold, SnapToEdges: true, SnapToCenters: true,
		})
		delta = delta.Add(off)
		d.guides = guides
	}
	for i, st := range d.states {
		target := d.starts[i].Add(delta)
		st.X.Set(d.resolve(target.X, m))
		st.Y.Set(d.resolve(target.Y, m))
	}
}

// RotateDrag turns each shape about its own origin by the angle the pointer
// sweeps around that origin. Full turns accumulate.
type RotateDrag struct {
	base
	shapes []rotateStart
}

type rotateStart struct {
	st    *transform.State
	pivot vector.Pt
	rot   float32
	last  float32
	swept float32
}

func newRotateDrag(b base, states []*transform.State) *RotateDrag {
	d := &RotateDrag{base: b}
	for _, st := range states {
		pivot := st.Position()
		d.shapes = append(d.shapes, rotateStart{
			st: st, pivot: pivot, rot: st.Rotation.Get(),
			last: vector.Rad2Deg(b.start.Sub(pivot).Angle()),
		})
	}
	return d
}

func (d *RotateDrag) Update(p vector.Pt, m Modifiers) {
	if d.done {
		return
	}
	for i := range d.shapes {
		s := &d.shapes[i]
		cur := vector.Rad2Deg(p.Sub(s.pivot).Angle())
		s.swept += vector.AngleDeltaDeg(s.last, cur)
		s.last = cur
		s.st.Rotation.Set(d.snapAngle(s.rot+s.swept, m))
	}
}

func (d *RotateDrag) snapAngle(deg float32, m Modifiers) float32 {
	if m.Precise || d.opts.RotationStep <= 0 {
		return d.resolve(deg, m)
	}
	step := float64(d.opts.RotationStep)
	return float32(math.Round(float64(deg)/step) * step)
}

// ShearDrag slides one edge along itself. The pointer offset is measured in the
// frame the shape had at drag start.
type ShearDrag struct {
	base
	shapes []shearStart
}

type shearStart struct {
	st     *transform.State
	params transform.Params
}

func newShearDrag(b base, states []*transform.State) *ShearDrag {
	d := &ShearDrag{base: b}
	for _, st := range states {
		d.shapes = append(d.shapes, shearStart{st: st, params: st.Params()})
	}
	return d
}

func (d *ShearDrag) Update(p vector.Pt, m Modifiers) {
	if d.done {
		return
	}
	for _, s := range d.shapes {
		s.st.SetParams(s.params)
		delta := s.st.ToFrame(p.Sub(d.start))
		switch d.handle {
		case HandleShearTop:
			s.st.ShearTop(d.resolve(delta.X, m))
		case HandleShearBottom:
			s.st.ShearBottom(d.resolve(delta.X, m))
		case HandleShearLeft:
			s.st.ShearLeft(d.resolve(delta.Y, m))
		case HandleShearRight:
			s.st.ShearRight(d.resolve(delta.Y, m))
		}
	}
}

// OriginDrag moves the pivot under the pointer without moving the shape.
// Without Precise it snaps to the corners, edge midpoints and centre.
type OriginDrag struct {
	base
	states []*transform.State
}

func (d *OriginDrag) Update(p vector.Pt, m Modifiers) {
	if d.done {
		return
	}
	for _, st := range d.states {
		um := st.UnitMatrix()
		if um.Det() == 0 {
			continue
		}
		uv := um.Invert().Apply(p)
		if !m.Precise {
			uv = vector.Pt{X: vector.FloatRound(uv.X*2, 0) / 2, Y: vector.FloatRound(uv.Y*2, 0) / 2}
		}
		st.SetOrigin(uv)
	}
}
