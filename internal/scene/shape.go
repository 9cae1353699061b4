/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/Flutterish/osu-framework-designer-sub000/internal/prop"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/transform"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/vector"
)

// Kind selects how a shape's box is outlined.
type Kind string

const (
	KindRect    Kind = "rect"
	KindEllipse Kind = "ellipse"
	KindPolygon Kind = "polygon"
)

func (k Kind) Valid() bool {
	switch k {
	case KindRect, KindEllipse, KindPolygon:
		return true
	}
	return false
}

const (
	MinCorners     = 3
	MaxCorners     = 64
	ellipseSegs    = 48
	DefaultFill    = "#4a90d9"
	DefaultCorners = 5
)

// Shape is a leaf component: a box with a transform and an outline kind.
type Shape struct {
	id   string
	kind Kind

	Label     *prop.Cell[string]
	Fill      *prop.Cell[string]
	Corners   *prop.Cell[int]
	Transform *transform.State
}

// NewShape creates a shape of kind k. Unknown kinds fall back to a rectangle.
func NewShape(k Kind, name string, p transform.Params) *Shape {
	return NewShapeFrom(k, name, transform.New(p))
}

// NewShapeFrom is NewShape around an existing transform state, e.g. one built
// with transform.NewBounded.
func NewShapeFrom(k Kind, name string, st *transform.State) *Shape {
	if !k.Valid() {
		k = KindRect
	}
	if st == nil {
		st = transform.New(transform.Box(0, 0, 0, 0))
	}
	return &Shape{
		id:        newID(PrefixShape),
		kind:      k,
		Label:     prop.New("name", name, nonEmpty),
		Fill:      prop.New("fill", DefaultFill, normalizeColor),
		Corners:   prop.New("corners", DefaultCorners, prop.ClampInt(MinCorners, MaxCorners)),
		Transform: st,
	}
}

func (s *Shape) ID() string            { return s.id }
func (s *Shape) Name() string          { return s.Label.Get() }
func (s *Shape) Kind() Kind            { return s.kind }
func (s *Shape) Children() []Component { return nil }
func (s *Shape) Normalize()            { s.Transform.Normalize() }

func (s *Shape) String() string {
	return fmt.Sprintf("%s %q [%s]", s.kind, s.Name(), s.Transform)
}

// Properties lists the transform cells first, then the shape's own cells.
// The corner count is only editable on polygons.
func (s *Shape) Properties() []prop.Property {
	ps := s.Transform.Properties()
	ps = append(ps, s.Label, s.Fill)
	if s.kind == KindPolygon {
		ps = append(ps, s.Corners)
	}
	return ps
}

// Outline returns the world-space polygon that draws the shape.
func (s *Shape) Outline() []vector.Pt {
	switch s.kind {
	case KindEllipse:
		return s.around(ellipseSegs, 0)
	case KindPolygon:
		return s.around(s.Corners.Get(), -math.Pi/2)
	default:
		c := s.Transform.Quad().Corners()
		return c[:]
	}
}

// Contains reports whether the world point p is inside the outline.
func (s *Shape) Contains(p vector.Pt) bool {
	pts := s.Outline()
	return vector.BoundsOf(pts...).Contains(p) && vector.PolygonContains(pts, p)
}

// around samples n points on the ellipse inscribed in the box, starting at angle start.
func (s *Shape) around(n int, start float64) []vector.Pt {
	pts := make([]vector.Pt, n)
	for i := range pts {
		sin, cos := math.Sincos(start + 2*math.Pi*float64(i)/float64(n))
		pts[i] = s.Transform.PointAt(float32(0.5+0.5*cos), float32(0.5+0.5*sin))
	}
	return pts
}

// FillRGBA parses the fill cell. The cell only ever holds valid colors.
func (s *Shape) FillRGBA() color.RGBA {
	c, _ := parseColor(s.Fill.Get())
	return c
}

func nonEmpty(prev, next string) string {
	if strings.TrimSpace(next) == "" {
		return prev
	}
	return next
}

// normalizeColor accepts #rgb and #rrggbb, stores the lower-case long form and
// rejects anything else.
func normalizeColor(prev, next string) string {
	c, ok := parseColor(next)
	if !ok {
		return prev
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func parseColor(s string) (color.RGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}
