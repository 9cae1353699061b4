/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package transform

import "github.com/Flutterish/osu-framework-designer-sub000/internal/vector"

// Normalize restores the canonical form: positive width, height and scale, and
// ShearY == 0. The drawn shape is preserved. When both axes are mirrored the
// shape is turned by 180° and the ordered corners stay where they were; when one
// axis is mirrored the position shifts so the outline stays in place.
// Calling Normalize twice is the same as calling it once.
//
// The quad is only kept while the ShearX that results from folding ShearY stays
// within MaxShear. Beyond that ShearX is clamped to ±MaxShear: BasisX is kept,
// BasisY is not, so the quad changes.
func (s *State) Normalize() {
	s.normalizeShear()

	w, h := s.Width.Get(), s.Height.Get()
	sx, sy := s.ScaleX.Get(), s.ScaleY.Get()
	flipX := w*sx < 0
	flipY := h*sy < 0
	bx, by := s.BasisX(), s.BasisY()
	o := s.Origin()

	s.Width.Set(abs(w))
	s.Height.Set(abs(h))
	s.ScaleX.Set(abs(sx))
	s.ScaleY.Set(abs(sy))

	switch {
	case flipX && flipY:
		s.Rotation.Set(s.Rotation.Get() + 180)
	case flipX:
		s.setPosition(s.Position().Add(bx.Mul(1 - 2*o.X)))
	case flipY:
		s.setPosition(s.Position().Add(by.Mul(1 - 2*o.Y)))
	}
}

// CopyProps makes the shape fill the image of the unit square under m. Scale is
// kept; width, height, rotation and shear are derived, and the position is chosen
// so that the current origin lands in the right place.
func (s *State) CopyProps(m vector.Affine2D) { s.apply(vector.Decompose(m)) }

// CopyQuad is CopyProps for four ordered corners.
func (s *State) CopyQuad(q vector.Quad) { s.apply(vector.DecomposeQuad(q)) }

func (s *State) apply(p vector.Params) {
	sx, sy := s.ScaleX.Get(), s.ScaleY.Get()
	if !vector.IsNormal(sx) {
		sx = 1
		s.ScaleX.Set(sx)
	}
	if !vector.IsNormal(sy) {
		sy = 1
		s.ScaleY.Set(sy)
	}
	rot := s.Rotation.Get()
	s.Rotation.Set(rot + vector.AngleDeltaDeg(rot, vector.Rad2Deg(p.Rotation)))
	s.Width.Set(p.Scale.X / sx)
	s.Height.Set(p.Scale.Y / sy)
	s.ShearX.Set(p.Shear.X)
	s.ShearY.Set(0)

	o := s.Origin()
	s.setPosition(p.Translation.Add(s.BasisX().Mul(o.X)).Add(s.BasisY().Mul(o.Y)))
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
