/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package transform

import "github.com/Flutterish/osu-framework-designer-sub000/internal/vector"

// Edge values live in the shape-aligned frame R(−Rotation)·world. For an
// unrotated shape that frame is plain world space.

// ToFrame converts a world point into the shape-aligned frame.
func (s *State) ToFrame(p vector.Pt) vector.Pt { return p.Rotated(-s.radians()) }

// FromFrame converts a shape-aligned frame point back into world space.
func (s *State) FromFrame(p vector.Pt) vector.Pt { return p.Rotated(s.radians()) }

func (s *State) framePosition() vector.Pt { return s.ToFrame(s.Position()) }

func (s *State) scaledWidth() float32  { return s.Width.Get() * s.ScaleX.Get() }
func (s *State) scaledHeight() float32 { return s.Height.Get() * s.ScaleY.Get() }

func (s *State) LeftEdge() float32 {
	return s.framePosition().X - s.OriginX.Get()*s.scaledWidth()
}

func (s *State) RightEdge() float32 {
	return s.framePosition().X + (1-s.OriginX.Get())*s.scaledWidth()
}

func (s *State) TopEdge() float32 {
	return s.framePosition().Y - s.OriginY.Get()*s.scaledHeight()
}

func (s *State) BottomEdge() float32 {
	return s.framePosition().Y + (1-s.OriginY.Get())*s.scaledHeight()
}

// SetLeftEdge moves the left edge to v, keeping the right edge fixed.
func (s *State) SetLeftEdge(v float32) {
	sx := s.ScaleX.Get()
	if sx == 0 {
		return
	}
	s.resizeX(-(v-s.LeftEdge())/sx, 1)
}

// SetRightEdge moves the right edge to v, keeping the left edge fixed.
func (s *State) SetRightEdge(v float32) {
	sx := s.ScaleX.Get()
	if sx == 0 {
		return
	}
	s.resizeX((v-s.RightEdge())/sx, 0)
}

// SetTopEdge moves the top edge to v, keeping the bottom edge fixed.
func (s *State) SetTopEdge(v float32) {
	sy := s.ScaleY.Get()
	if sy == 0 {
		return
	}
	s.resizeY(-(v-s.TopEdge())/sy, 1)
}

// SetBottomEdge moves the bottom edge to v, keeping the top edge fixed.
func (s *State) SetBottomEdge(v float32) {
	sy := s.ScaleY.Get()
	if sy == 0 {
		return
	}
	s.resizeY((v-s.BottomEdge())/sy, 0)
}

// resizeX grows the width by dw while the vertical edge at unit coordinate fixed
// keeps its world position.
func (s *State) resizeX(dw, fixed float32) {
	shift := s.axisX().Mul((s.OriginX.Get() - fixed) * dw)
	pos := s.Position().Add(shift)
	s.Width.Set(s.Width.Get() + dw)
	s.setPosition(pos)
}

func (s *State) resizeY(dh, fixed float32) {
	shift := s.axisY().Mul((s.OriginY.Get() - fixed) * dh)
	pos := s.Position().Add(shift)
	s.Height.Set(s.Height.Get() + dh)
	s.setPosition(pos)
}

// Corner setters take a frame point and move the two adjacent edges.

func (s *State) SetTopLeft(p vector.Pt) {
	s.SetTopEdge(p.Y)
	s.SetLeftEdge(p.X)
}

func (s *State) SetTopRight(p vector.Pt) {
	s.SetTopEdge(p.Y)
	s.SetRightEdge(p.X)
}

func (s *State) SetBottomLeft(p vector.Pt) {
	s.SetBottomEdge(p.Y)
	s.SetLeftEdge(p.X)
}

func (s *State) SetBottomRight(p vector.Pt) {
	s.SetBottomEdge(p.Y)
	s.SetRightEdge(p.X)
}

// SetOrigin moves the pivot to o (unit box coordinates) without moving the shape.
func (s *State) SetOrigin(o vector.Pt) {
	if !o.Finite() {
		return
	}
	d := o.Sub(s.Origin())
	pos := s.Position().Add(s.BasisX().Mul(d.X)).Add(s.BasisY().Mul(d.Y))
	s.OriginX.Set(o.X)
	s.OriginY.Set(o.Y)
	s.setPosition(pos)
}
