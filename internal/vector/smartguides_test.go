/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestComputeSmartGuides(t *testing.T) {
	frame := R(0, 0, 240, 160)
	badge := R(300, 0, 40, 40)
	cases := []struct {
		name    string
		moving  Rect
		anchors []Rect
		opts    SnapOptions
		want    Pt
		guides  int
	}{
		{"left and top edges", R(3, -2, 50, 50), []Rect{frame}, SnapOptions{Threshold: 4, SnapToEdges: true}, Pt{-3, 2}, 2},
		{"right edge onto left edge", R(244, 60, 20, 20), []Rect{frame}, SnapOptions{Threshold: 4, SnapToEdges: true}, Pt{X: -4}, 1},
		{"centres", R(99, 58, 40, 40), []Rect{frame}, SnapOptions{Threshold: 4, SnapToCenters: true}, Pt{1, 2}, 2},
		{"outside threshold", R(20, 20, 10, 10), []Rect{frame}, SnapOptions{Threshold: 4, SnapToEdges: true}, Pt{}, 0},
		{"closest anchor per axis", R(296, 161, 20, 20), []Rect{frame, badge}, SnapOptions{Threshold: 5, SnapToEdges: true}, Pt{4, -1}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			off, guides := ComputeSmartGuides(tc.moving, tc.anchors, tc.opts)
			if off != tc.want {
				t.Fatalf("offset = %+v, want %+v", off, tc.want)
			}
			if len(guides) != tc.guides {
				t.Fatalf("guides = %+v, want %d", guides, tc.guides)
			}
		})
	}
}

func TestGuideLineSpansBothRects(t *testing.T) {
	_, guides := ComputeSmartGuides(R(2, 200, 30, 30), []Rect{R(0, 0, 100, 100)}, SnapOptions{Threshold: 4, SnapToEdges: true})
	if len(guides) != 1 {
		t.Fatalf("want one guide, got %+v", guides)
	}
	g := guides[0]
	if g.Orientation != Vertical || g.Kind != "edge" || g.Position != 0 {
		t.Fatalf("unexpected guide %+v", g)
	}
	if g.From != (Pt{0, 0}) || g.To != (Pt{0, 230}) {
		t.Fatalf("guide spans %v..%v, want (0,0)..(0,230)", g.From, g.To)
	}
	if g.Orientation.String() != "vertical" || Horizontal.String() != "horizontal" {
		t.Fatal("orientation names")
	}
}
