/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package transform

import (
	"log/slog"

	applog "github.com/Flutterish/osu-framework-designer-sub000/internal/log"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/vector"
)

// ShearTop moves the top edge by d along the frame x axis; the bottom edge stays.
func (s *State) ShearTop(d float32) { s.shearHorizontal(d, 1) }

// ShearBottom moves the bottom edge by d along the frame x axis; the top edge stays.
func (s *State) ShearBottom(d float32) { s.shearHorizontal(-d, 0) }

// ShearLeft moves the left edge by d along the frame y axis; the right edge stays.
func (s *State) ShearLeft(d float32) { s.shearVertical(d, 1) }

// ShearRight moves the right edge by d along the frame y axis; the left edge stays.
func (s *State) ShearRight(d float32) { s.shearVertical(-d, 0) }

// shearHorizontal adds d/(H·Sy) to ShearX. The edge at unit coordinate v = fixed
// keeps its world position. Clamping by the cell is honoured: the position is
// corrected for the shear actually stored.
func (s *State) shearHorizontal(d, fixed float32) {
	h := s.scaledHeight()
	if !vector.IsNormal(h) {
		return
	}
	prev := s.ShearX.Get()
	s.ShearX.Set(prev + d/h)
	applied := (s.ShearX.Get() - prev) * h
	// y basis gains −applied along the frame x axis.
	shift := vector.Pt{X: 1}.Rotated(s.radians()).Mul((s.OriginY.Get() - fixed) * -applied)
	s.setPosition(s.Position().Add(shift))
	s.normalizeShear()
}

// shearVertical adds d/(W·Sx) to ShearY, keeping the edge at u = fixed in place.
func (s *State) shearVertical(d, fixed float32) {
	w := s.scaledWidth()
	if !vector.IsNormal(w) {
		return
	}
	prev := s.ShearY.Get()
	s.ShearY.Set(prev + d/w)
	applied := (s.ShearY.Get() - prev) * w
	shift := vector.Pt{Y: 1}.Rotated(s.radians()).Mul((s.OriginX.Get() - fixed) * -applied)
	s.setPosition(s.Position().Add(shift))
	s.normalizeShear()
}

// normalizeShear folds ShearY into rotation, width, height and ShearX so that the
// canonical form has ShearY == 0. The world-space quad does not change unless the
// folded ShearX exceeds the state's shear bound, in which case it is clamped and
// only BasisX is kept.
func (s *State) normalizeShear() {
	if s.ShearY.Get() == 0 {
		return
	}
	bx, by := s.BasisX(), s.BasisY()
	if bx.Len() == 0 {
		// Collapsed x axis: ShearY has no visible effect.
		s.ShearY.Set(0)
		return
	}
	k := float32(1)
	if s.scaledWidth() < 0 {
		k = -1
	}
	theta := bx.Mul(k).Angle()
	ux := bx.Rotated(-theta)
	uy := by.Rotated(-theta)

	sx, sy := s.ScaleX.Get(), s.ScaleY.Get()
	rot := s.Rotation.Get()
	w, h := s.Width.Get(), s.Height.Get()
	if vector.IsNormal(sx) {
		w = ux.X / sx
	}
	if vector.IsNormal(sy) {
		h = uy.Y / sy
	}
	var zx float32
	if vector.IsNormal(uy.Y) {
		zx = -uy.X / uy.Y
	}
	if zx > s.maxShear || zx < -s.maxShear {
		applog.WithComponent("transform").Debug("shear saturated",
			slog.Float64("shearX", float64(zx)), slog.Float64("max", float64(s.maxShear)))
	}

	s.Rotation.Set(rot + vector.AngleDeltaDeg(rot, vector.Rad2Deg(theta)))
	s.Width.Set(w)
	s.Height.Set(h)
	s.ShearX.Set(zx)
	s.ShearY.Set(0)
}
