/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Smart guides snap a moving shape's bounds to the bounds of other shapes while a
// move gesture runs without the precise modifier. Pure functions so they can be
// tested without any frontend.

import "math"

// SnapOptions controls which guide candidates are considered and the threshold.
type SnapOptions struct {
	// Threshold is the maximum distance at which snapping occurs. Typical UI values
	// are 6–8 pixels.
	Threshold     float32
	SnapToEdges   bool
	SnapToCenters bool
}

// Orientation of a guide line.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// GuideLine describes a guide generated by a snap. Kind is "edge" or "center".
// Position is the x (vertical) or y (horizontal) coordinate, rounded to 3 places.
type GuideLine struct {
	Orientation Orientation
	Kind        string
	Position    float32
	From        Pt
	To          Pt
}

type axisCandidate struct {
	dist  float32
	delta float32
	guide GuideLine
	ok    bool
}

func (c *axisCandidate) consider(delta, threshold float32, g GuideLine) {
	dist := float32(math.Abs(float64(delta)))
	if dist > threshold || (c.ok && dist >= c.dist) {
		return
	}
	*c = axisCandidate{dist: dist, delta: delta, guide: g, ok: true}
}

// ComputeSmartGuides returns the offset that snaps moving onto the closest anchor
// feature on each axis independently, plus the guides to display.
func ComputeSmartGuides(moving Rect, anchors []Rect, opts SnapOptions) (Pt, []GuideLine) {
	if opts.Threshold <= 0 {
		opts.Threshold = 6
	}
	var bx, by axisCandidate
	for _, a := range anchors {
		mx := [3]float32{moving.X, moving.X + moving.W, moving.X + moving.W/2}
		ax := [3]float32{a.X, a.X + a.W, a.X + a.W/2}
		my := [3]float32{moving.Y, moving.Y + moving.H, moving.Y + moving.H/2}
		ay := [3]float32{a.Y, a.Y + a.H, a.Y + a.H/2}

		if opts.SnapToEdges {
			for _, mi := range [2]int{0, 1} {
				for _, ai := range [2]int{0, 1} {
					bx.consider(ax[ai]-mx[mi], opts.Threshold, verticalGuide(ax[ai], moving, a, "edge"))
					by.consider(ay[ai]-my[mi], opts.Threshold, horizontalGuide(ay[ai], moving, a, "edge"))
				}
			}
		}
		if opts.SnapToCenters {
			bx.consider(ax[2]-mx[2], opts.Threshold, verticalGuide(ax[2], moving, a, "center"))
			by.consider(ay[2]-my[2], opts.Threshold, horizontalGuide(ay[2], moving, a, "center"))
		}
	}

	var offset Pt
	var guides []GuideLine
	if bx.ok {
		offset.X = FloatRound(bx.delta, 3)
		guides = append(guides, bx.guide)
	}
	if by.ok {
		offset.Y = FloatRound(by.delta, 3)
		guides = append(guides, by.guide)
	}
	return offset, guides
}

func verticalGuide(x float32, a, b Rect, kind string) GuideLine {
	x = FloatRound(x, 3)
	return GuideLine{
		Orientation: Vertical,
		Kind:        kind,
		Position:    x,
		From:        Pt{x, min(a.Y, b.Y)},
		To:          Pt{x, max(a.Y+a.H, b.Y+b.H)},
	}
}

func horizontalGuide(y float32, a, b Rect, kind string) GuideLine {
	y = FloatRound(y, 3)
	return GuideLine{
		Orientation: Horizontal,
		Kind:        kind,
		Position:    y,
		From:        Pt{min(a.X, b.X), y},
		To:          Pt{max(a.X+a.W, b.X+b.W), y},
	}
}
