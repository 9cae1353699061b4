/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestPolygonContains(t *testing.T) {
	tri := []Pt{{0, 0}, {10, 0}, {0, 10}}
	if !PolygonContains(tri, Pt{1, 1}) {
		t.Fatalf("expected hit inside triangle")
	}
	// inside the bounding box but outside the triangle
	if PolygonContains(tri, Pt{8, 8}) {
		t.Fatalf("did not expect hit past the hypotenuse")
	}
	if PolygonContains(tri, Pt{20, 20}) || PolygonContains(tri[:2], Pt{1, 0}) {
		t.Fatalf("did not expect hit far away or on a degenerate polygon")
	}
	q := Compose(Params{Translation: Pt{5, 5}, Rotation: Deg2Rad(45), Scale: Pt{10, 10}}).Apply
	diamond := []Pt{q(Pt{0, 0}), q(Pt{1, 0}), q(Pt{1, 1}), q(Pt{0, 1})}
	if !PolygonContains(diamond, q(Pt{0.5, 0.5})) || PolygonContains(diamond, Pt{6, 5.5}) {
		t.Fatalf("rotated square hit test wrong")
	}
}

func TestPolygonArea(t *testing.T) {
	sq := []Pt{{0, 0}, {10, 0}, {10, 5}, {0, 5}}
	if got := PolygonArea(sq); got != 50 {
		t.Fatalf("area = %v", got)
	}
	rev := []Pt{sq[3], sq[2], sq[1], sq[0]}
	if got := PolygonArea(rev); got != -50 {
		t.Fatalf("reversed area = %v", got)
	}
}
