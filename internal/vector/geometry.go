/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Basic 2D geometry and transforms for resolution-independent editing.
// Float values use float32; interactive editing tolerances do not need more.

import "math"

// Pt is a 2D point or vector.
type Pt struct{ X, Y float32 }

func (p Pt) Add(q Pt) Pt      { return Pt{p.X + q.X, p.Y + q.Y} }
func (p Pt) Sub(q Pt) Pt      { return Pt{p.X - q.X, p.Y - q.Y} }
func (p Pt) Mul(k float32) Pt { return Pt{p.X * k, p.Y * k} }
func (p Pt) Len() float32     { return float32(math.Hypot(float64(p.X), float64(p.Y))) }
func (p Pt) Angle() float32   { return float32(math.Atan2(float64(p.Y), float64(p.X))) }

// Rotated rotates p around the origin by rad.
func (p Pt) Rotated(rad float32) Pt {
	s, c := math.Sincos(float64(rad))
	return Pt{
		X: float32(c)*p.X - float32(s)*p.Y,
		Y: float32(s)*p.X + float32(c)*p.Y,
	}
}

// Finite reports whether both components are finite numbers.
func (p Pt) Finite() bool { return IsFinite(p.X) && IsFinite(p.Y) }

// Rect is an axis-aligned rectangle defined by min corner and size.
type Rect struct {
	X, Y float32
	W, H float32
}

func R(x, y, w, h float32) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Min() Pt { return Pt{r.X, r.Y} }
func (r Rect) Max() Pt { return Pt{r.X + r.W, r.Y + r.H} }

func (r Rect) Contains(p Pt) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// Inset returns a rectangle inset by dx,dy on all sides (negative grows).
func (r Rect) Inset(dx, dy float32) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

// Union returns the minimal rect containing both.
func (r Rect) Union(o Rect) Rect {
	minX := min(r.X, o.X)
	minY := min(r.Y, o.Y)
	maxX := max(r.X+r.W, o.X+o.W)
	maxY := max(r.Y+r.H, o.Y+o.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Translated moves the rect by d.
func (r Rect) Translated(d Pt) Rect { return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H} }

// BoundsOf returns the axis-aligned bounds of pts. It returns the zero Rect for no points.
func BoundsOf(pts ...Pt) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, minY = min(minX, p.X), min(minY, p.Y)
		maxX, maxY = max(maxX, p.X), max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Affine2D represents a 2D affine transform as matrix:
// | a c e |
// | b d f |
// | 0 0 1 |
// stored as [a b c d e f]. (a, b) is the image of the x axis, (c, d) of the y axis.
type Affine2D struct{ A, B, C, D, E, F float32 }

var Identity = Affine2D{A: 1, D: 1}

// Mul returns m·n, i.e. n is applied first.
func (m Affine2D) Mul(n Affine2D) Affine2D {
	return Affine2D{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

func (m Affine2D) Apply(p Pt) Pt {
	return Pt{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// ApplyVec transforms a direction; translation is ignored.
func (m Affine2D) ApplyVec(v Pt) Pt {
	return Pt{
		X: m.A*v.X + m.C*v.Y,
		Y: m.B*v.X + m.D*v.Y,
	}
}

func (m Affine2D) Translation() Pt { return Pt{m.E, m.F} }

func (m Affine2D) Det() float32 { return m.A*m.D - m.B*m.C }

// Invert computes the inverse of m. A singular matrix yields Identity.
func (m Affine2D) Invert() Affine2D {
	det := m.Det()
	if det == 0 {
		return Identity
	}
	invDet := 1 / det
	return Affine2D{
		A: m.D * invDet,
		B: -m.B * invDet,
		C: -m.C * invDet,
		D: m.A * invDet,
		E: (m.C*m.F - m.D*m.E) * invDet,
		F: (m.B*m.E - m.A*m.F) * invDet,
	}
}

// Near reports whether all six coefficients differ by at most eps.
func (m Affine2D) Near(n Affine2D, eps float32) bool {
	return near(m.A, n.A, eps) && near(m.B, n.B, eps) && near(m.C, n.C, eps) &&
		near(m.D, n.D, eps) && near(m.E, n.E, eps) && near(m.F, n.F, eps)
}

func Translate(tx, ty float32) Affine2D { return Affine2D{A: 1, D: 1, E: tx, F: ty} }
func Scale(sx, sy float32) Affine2D     { return Affine2D{A: sx, D: sy} }
func Rotate(rad float32) Affine2D {
	s, c := math.Sincos(float64(rad))
	return Affine2D{A: float32(c), B: float32(s), C: -float32(s), D: float32(c)}
}

// Shear returns x' = x + hx·y, y' = hy·x + y.
func Shear(hx, hy float32) Affine2D { return Affine2D{A: 1, B: hy, C: hx, D: 1} }

// FloatRound rounds v to n decimal places deterministically.
func FloatRound(v float32, places int) float32 {
	if places < 0 {
		return v
	}
	pow := float32(math.Pow(10, float64(places)))
	return float32(math.Round(float64(v*pow))) / pow
}

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// IsNormal reports whether v can safely be used as a divisor: finite, non-zero, not subnormal.
func IsNormal(v float32) bool {
	if !IsFinite(v) {
		return false
	}
	a := v
	if a < 0 {
		a = -a
	}
	return a >= 0x1p-126
}

func near(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
