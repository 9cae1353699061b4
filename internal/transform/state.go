/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package transform keeps the editable geometric parameters of one shape
// (position, size, rotation, scale, shear, origin) consistent with each other and
// with the affine matrix that draws it.
//
// Conventions:
//   - (X, Y) is the world position of the origin.
//   - Origin is in the unit square of the unrotated, unsheared box: (0,0) top-left,
//     (1,1) bottom-right. It is the pivot for rotation, scale and shear.
//   - Rotation is in degrees and free-ranging; compare with vector.AngleDeltaDeg.
//   - The matrix is T(X,Y)·R(Rotation)·Shear(−ShearX,−ShearY)·Scale·T(−Origin·Size).
package transform

import (
	"fmt"

	"github.com/Flutterish/osu-framework-designer-sub000/internal/prop"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/vector"
)

// DefaultMaxShear bounds both shear cells of a State built with New. Shear
// mutators near a collapsed axis would otherwise push the shear towards infinity.
const DefaultMaxShear float32 = 100

// Params is a plain snapshot of every cell of a State.
type Params struct {
	X, Y             float32
	Width, Height    float32
	Rotation         float32
	ScaleX, ScaleY   float32
	ShearX, ShearY   float32
	OriginX, OriginY float32
}

// Box returns params for an unrotated box at (x, y) with unit scale and top-left origin.
func Box(x, y, w, h float32) Params {
	return Params{X: x, Y: y, Width: w, Height: h, ScaleX: 1, ScaleY: 1}
}

// State is the set of property cells for one shape plus a lazily built matrix.
// It is owned by its shape and used from the UI thread only.
type State struct {
	X, Y             *prop.Cell[float32]
	Width, Height    *prop.Cell[float32]
	Rotation         *prop.Cell[float32]
	ScaleX, ScaleY   *prop.Cell[float32]
	ShearX, ShearY   *prop.Cell[float32]
	OriginX, OriginY *prop.Cell[float32]

	maxShear float32
	drawInfo vector.Affine2D
	valid    bool
}

// New creates a state holding p with shear bounded by DefaultMaxShear.
// Non-finite values in p are stored as zero.
func New(p Params) *State { return NewBounded(p, DefaultMaxShear) }

// NewBounded is New with both shear cells clamped to [-maxShear, maxShear]. The
// bound is fixed for the life of the state; a non-positive or non-finite value
// means DefaultMaxShear.
func NewBounded(p Params, maxShear float32) *State {
	if !(maxShear > 0) || !vector.IsFinite(maxShear) {
		maxShear = DefaultMaxShear
	}
	clampShear := prop.Clamp(-maxShear, maxShear)
	s := &State{
		maxShear: maxShear,
		X:        prop.New("x", p.X, prop.Finite),
		Y:        prop.New("y", p.Y, prop.Finite),
		Width:    prop.New("width", p.Width, prop.Finite),
		Height:   prop.New("height", p.Height, prop.Finite),
		Rotation: prop.New("rotation", p.Rotation, prop.Finite),
		ScaleX:   prop.New("scaleX", p.ScaleX, prop.Finite),
		ScaleY:   prop.New("scaleY", p.ScaleY, prop.Finite),
		ShearX:   prop.New("shearX", p.ShearX, clampShear),
		ShearY:   prop.New("shearY", p.ShearY, clampShear),
		OriginX:  prop.New("originX", p.OriginX, prop.Finite),
		OriginY:  prop.New("originY", p.OriginY, prop.Finite),
	}
	for _, c := range s.cells() {
		c.Subscribe(func(_, _ float32) { s.valid = false })
	}
	return s
}

// MaxShear is the bound applied to ShearX and ShearY.
func (s *State) MaxShear() float32 { return s.maxShear }

func (s *State) cells() []*prop.Cell[float32] {
	return []*prop.Cell[float32]{
		s.X, s.Y, s.Width, s.Height, s.Rotation,
		s.ScaleX, s.ScaleY, s.ShearX, s.ShearY, s.OriginX, s.OriginY,
	}
}

// Properties lists the cells in a stable order for change tracking.
func (s *State) Properties() []prop.Property {
	cs := s.cells()
	out := make([]prop.Property, len(cs))
	for i, c := range cs {
		out[i] = c
	}
	return out
}

func (s *State) Params() Params {
	return Params{
		X:        s.X.Get(),
		Y:        s.Y.Get(),
		Width:    s.Width.Get(),
		Height:   s.Height.Get(),
		Rotation: s.Rotation.Get(),
		ScaleX:   s.ScaleX.Get(),
		ScaleY:   s.ScaleY.Get(),
		ShearX:   s.ShearX.Get(),
		ShearY:   s.ShearY.Get(),
		OriginX:  s.OriginX.Get(),
		OriginY:  s.OriginY.Get(),
	}
}

// SetParams assigns every cell. Each cell still normalizes and notifies on its own.
func (s *State) SetParams(p Params) {
	s.X.Set(p.X)
	s.Y.Set(p.Y)
	s.Width.Set(p.Width)
	s.Height.Set(p.Height)
	s.Rotation.Set(p.Rotation)
	s.ScaleX.Set(p.ScaleX)
	s.ScaleY.Set(p.ScaleY)
	s.ShearX.Set(p.ShearX)
	s.ShearY.Set(p.ShearY)
	s.OriginX.Set(p.OriginX)
	s.OriginY.Set(p.OriginY)
}

// CopyFrom takes over every value of o.
func (s *State) CopyFrom(o *State) { s.SetParams(o.Params()) }

func (s *State) String() string {
	p := s.Params()
	return fmt.Sprintf("pos=(%g,%g) size=(%g,%g) rot=%g scale=(%g,%g) shear=(%g,%g) origin=(%g,%g)",
		p.X, p.Y, p.Width, p.Height, p.Rotation, p.ScaleX, p.ScaleY, p.ShearX, p.ShearY, p.OriginX, p.OriginY)
}

func (s *State) Position() vector.Pt { return vector.Pt{X: s.X.Get(), Y: s.Y.Get()} }
func (s *State) Origin() vector.Pt   { return vector.Pt{X: s.OriginX.Get(), Y: s.OriginY.Get()} }
func (s *State) Size() vector.Pt     { return vector.Pt{X: s.Width.Get(), Y: s.Height.Get()} }

func (s *State) setPosition(p vector.Pt) {
	s.X.Set(p.X)
	s.Y.Set(p.Y)
}

func (s *State) radians() float32 { return vector.Deg2Rad(s.Rotation.Get()) }

// DrawInfo maps local box coordinates [0,W]×[0,H] to world space. It is rebuilt
// after any cell changed.
func (s *State) DrawInfo() vector.Affine2D {
	if !s.valid {
		p := s.Params()
		s.drawInfo = vector.Compose(vector.Params{
			Translation: vector.Pt{X: p.X, Y: p.Y},
			Scale:       vector.Pt{X: p.ScaleX, Y: p.ScaleY},
			Shear:       vector.Pt{X: p.ShearX, Y: p.ShearY},
			Rotation:    vector.Deg2Rad(p.Rotation),
		}).Mul(vector.Translate(-p.OriginX*p.Width, -p.OriginY*p.Height))
		s.valid = true
	}
	return s.drawInfo
}

// UnitMatrix maps the unit square onto the shape's quad.
func (s *State) UnitMatrix() vector.Affine2D {
	return s.DrawInfo().Mul(vector.Scale(s.Width.Get(), s.Height.Get()))
}

// Quad returns the four world-space corners.
func (s *State) Quad() vector.Quad {
	return vector.QuadOf(s.DrawInfo(), s.Width.Get(), s.Height.Get())
}

// axisX is the world displacement per unit of width: R·(Sx, −ShearY·Sx).
func (s *State) axisX() vector.Pt {
	sx := s.ScaleX.Get()
	return vector.Pt{X: sx, Y: -s.ShearY.Get() * sx}.Rotated(s.radians())
}

// axisY is the world displacement per unit of height: R·(−ShearX·Sy, Sy).
func (s *State) axisY() vector.Pt {
	sy := s.ScaleY.Get()
	return vector.Pt{X: -s.ShearX.Get() * sy, Y: sy}.Rotated(s.radians())
}

// BasisX runs from the left edge to the right edge in world space.
func (s *State) BasisX() vector.Pt { return s.axisX().Mul(s.Width.Get()) }

// BasisY runs from the top edge to the bottom edge in world space.
func (s *State) BasisY() vector.Pt { return s.axisY().Mul(s.Height.Get()) }

// PointAt returns the world position of unit box coordinates (u, v).
func (s *State) PointAt(u, v float32) vector.Pt {
	o := s.Origin()
	return s.Position().
		Add(s.BasisX().Mul(u - o.X)).
		Add(s.BasisY().Mul(v - o.Y))
}
