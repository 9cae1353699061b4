/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "math"

// Params is the human-editable form of an affine transform. Shear.Y is always 0
// on output of the decompositions: two shear axes plus rotation over-describe the
// same linear map.
type Params struct {
	Translation Pt
	Scale       Pt
	Shear       Pt
	Rotation    float32 // radians
}

// Compose builds T·R·Z·S: scale first, then shear by (−Shear.X, −Shear.Y), then
// rotate, then translate.
func Compose(p Params) Affine2D {
	return Translate(p.Translation.X, p.Translation.Y).
		Mul(Rotate(p.Rotation)).
		Mul(Shear(-p.Shear.X, -p.Shear.Y)).
		Mul(Scale(p.Scale.X, p.Scale.Y))
}

// Decompose is the inverse of Compose for well-conditioned input
// (Scale.X > 0, Scale.Y != 0, Shear.Y == 0, |Rotation| < π).
// Degenerate matrices never fail: a zero y scale yields a zero shear.
func Decompose(m Affine2D) Params {
	return decomposeBasis(Pt{m.E, m.F}, Pt{m.A, m.B}, Pt{m.C, m.D})
}

// decomposeBasis works on the images of the x and y axes. Rotation comes from the
// x axis image; un-rotating leaves a triangular linear part.
func decomposeBasis(t, ex, ey Pt) Params {
	a, b := float64(ex.X), float64(ex.Y)
	c, d := float64(ey.X), float64(ey.Y)

	rot := math.Atan2(b, a)
	sin, cos := math.Sincos(-rot)

	sx := cos*a - sin*b
	uc := cos*c - sin*d
	sy := sin*c + cos*d

	var zx float64
	if sy != 0 {
		zx = -uc / sy
	}
	return Params{
		Translation: t,
		Scale:       Pt{float32(sx), float32(sy)},
		Shear:       Pt{float32(zx), 0},
		Rotation:    float32(rot),
	}
}

// Quad is an ordered set of corners, the image of a unit square (or box) under
// an affine transform.
type Quad struct {
	TopLeft, TopRight, BottomLeft, BottomRight Pt
}

// QuadOf maps the box [0,w]×[0,h] through m.
func QuadOf(m Affine2D, w, h float32) Quad {
	return Quad{
		TopLeft:     m.Apply(Pt{0, 0}),
		TopRight:    m.Apply(Pt{w, 0}),
		BottomLeft:  m.Apply(Pt{0, h}),
		BottomRight: m.Apply(Pt{w, h}),
	}
}

func (q Quad) Corners() [4]Pt {
	return [4]Pt{q.TopLeft, q.TopRight, q.BottomRight, q.BottomLeft}
}

func (q Quad) Bounds() Rect {
	return BoundsOf(q.TopLeft, q.TopRight, q.BottomLeft, q.BottomRight)
}

// Matrix returns the affine transform mapping the unit square onto q.
// Only parallelograms are represented exactly.
func (q Quad) Matrix() Affine2D {
	ex := q.TopRight.Sub(q.TopLeft)
	ey := q.BottomRight.Sub(q.TopLeft).Sub(ex)
	return Affine2D{A: ex.X, B: ex.Y, C: ey.X, D: ey.Y, E: q.TopLeft.X, F: q.TopLeft.Y}
}

// Near compares corners pairwise in order.
func (q Quad) Near(o Quad, eps float32) bool {
	a, b := q.Corners(), o.Corners()
	for i := range a {
		if !near(a[i].X, b[i].X, eps) || !near(a[i].Y, b[i].Y, eps) {
			return false
		}
	}
	return true
}

// SameShape compares corners as a set, ignoring order. Mirrored boxes that were
// normalized keep their outline but permute their corners.
func (q Quad) SameShape(o Quad, eps float32) bool {
	a, b := q.Corners(), o.Corners()
	used := [4]bool{}
	for _, p := range a {
		found := false
		for j, r := range b {
			if !used[j] && near(p.X, r.X, eps) && near(p.Y, r.Y, eps) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// DecomposeQuad reads the same parameters as Decompose straight off the corners,
// without building the matrix: x basis TR−TL, y basis (BR−TL)−(TR−TL).
func DecomposeQuad(q Quad) Params {
	ex := q.TopRight.Sub(q.TopLeft)
	diag := q.BottomRight.Sub(q.TopLeft)
	return decomposeBasis(q.TopLeft, ex, diag.Sub(ex))
}
