/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"math"
	"testing"
)

const tol = 1e-4

func inf() float64 { return math.Inf(1) }
func nan() float64 { return math.NaN() }

func paramsNear(a, b Params, eps float32) bool {
	return near(a.Translation.X, b.Translation.X, eps) && near(a.Translation.Y, b.Translation.Y, eps) &&
		near(a.Scale.X, b.Scale.X, eps) && near(a.Scale.Y, b.Scale.Y, eps) &&
		near(a.Shear.X, b.Shear.X, eps) && near(a.Shear.Y, b.Shear.Y, eps) &&
		near(a.Rotation, b.Rotation, eps)
}

func TestDecomposeComposeRoundTrip(t *testing.T) {
	cases := []Params{
		{Translation: Pt{0, 0}, Scale: Pt{1, 1}},
		{Translation: Pt{10, -20}, Scale: Pt{2, 3}, Rotation: 0.5},
		{Translation: Pt{-3.5, 7}, Scale: Pt{0.25, 4}, Shear: Pt{0.4, 0}, Rotation: -1.2},
		{Translation: Pt{100, 100}, Scale: Pt{1.5, -2}, Shear: Pt{-0.75, 0}, Rotation: 2.8},
		{Translation: Pt{1, 2}, Scale: Pt{3, 0.5}, Shear: Pt{1.2, 0}, Rotation: -3.0},
	}
	for _, want := range cases {
		got := Decompose(Compose(want))
		if !paramsNear(got, want, tol) {
			t.Errorf("Decompose(Compose(%+v)) = %+v", want, got)
		}
	}
}

func TestDecomposeRoundTripGrid(t *testing.T) {
	for _, rot := range []float32{-2.5, -1, 0, 0.3, 1.5, 3} {
		for _, sx := range []float32{0.5, 1, 7} {
			for _, sy := range []float32{-3, 0.2, 1} {
				for _, zx := range []float32{-1, 0, 0.6} {
					want := Params{Translation: Pt{sx * 3, -sy}, Scale: Pt{sx, sy}, Shear: Pt{zx, 0}, Rotation: rot}
					got := Decompose(Compose(want))
					if !paramsNear(got, want, tol) {
						t.Fatalf("round trip mismatch for %+v: %+v", want, got)
					}
				}
			}
		}
	}
}

func TestComposeOrderIsScaleShearRotateTranslate(t *testing.T) {
	p := Params{Translation: Pt{5, 0}, Scale: Pt{2, 1}, Shear: Pt{-1, 0}, Rotation: float32(math.Pi / 2)}
	// (0,1) -> scale (0,1) -> shear by +1 along x (1,1) -> rotate 90° (-1,1) -> translate (4,1)
	got := Compose(p).Apply(Pt{0, 1})
	if !near(got.X, 4, tol) || !near(got.Y, 1, tol) {
		t.Fatalf("unexpected composed point: %+v", got)
	}
}

func TestDecomposeDegenerate(t *testing.T) {
	got := Decompose(Affine2D{E: 3, F: 4})
	if got.Translation != (Pt{3, 4}) || got.Scale != (Pt{}) || got.Shear != (Pt{}) || got.Rotation != 0 {
		t.Fatalf("zero linear part should decompose to zeros: %+v", got)
	}
	// collapsed y axis: shear would divide by zero
	got = Decompose(Affine2D{A: 2, C: 5})
	if got.Scale.Y != 0 || got.Shear.X != 0 || got.Scale.X != 2 {
		t.Fatalf("unexpected degenerate decomposition: %+v", got)
	}
	if math.IsNaN(float64(got.Shear.X)) {
		t.Fatalf("NaN leaked from degenerate decomposition")
	}
}

func TestDecomposeQuadMatchesMatrix(t *testing.T) {
	p := Params{Translation: Pt{12, -4}, Scale: Pt{80, 30}, Shear: Pt{0.3, 0}, Rotation: 0.9}
	m := Compose(p)
	q := QuadOf(m, 1, 1)
	fromQuad := DecomposeQuad(q)
	fromMatrix := Decompose(m)
	if !paramsNear(fromQuad, fromMatrix, 1e-3) {
		t.Fatalf("quad decomposition %+v differs from matrix %+v", fromQuad, fromMatrix)
	}
	if !q.Matrix().Near(m, 1e-3) {
		t.Fatalf("Quad.Matrix() = %+v, want %+v", q.Matrix(), m)
	}
}

func TestDecomposeQuadZeroEdges(t *testing.T) {
	p := Pt{5, 5}
	got := DecomposeQuad(Quad{p, p, p, p})
	if got.Scale != (Pt{}) || got.Translation != p {
		t.Fatalf("collapsed quad should give zero scale: %+v", got)
	}
}

func TestQuadSameShape(t *testing.T) {
	q := QuadOf(Identity, 10, 5)
	mirrored := Quad{TopLeft: q.TopRight, TopRight: q.TopLeft, BottomLeft: q.BottomRight, BottomRight: q.BottomLeft}
	if q.Near(mirrored, tol) {
		t.Fatalf("mirrored quad must not be ordered-equal")
	}
	if !q.SameShape(mirrored, tol) {
		t.Fatalf("mirrored quad must have the same outline")
	}
	if q.SameShape(QuadOf(Identity, 10, 6), tol) {
		t.Fatalf("different quads reported as same shape")
	}
}
