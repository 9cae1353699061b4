/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes preview images of a scene: each shape's outline is
// drawn in world units on a canvas fitted around all shapes.
package export

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/Flutterish/osu-framework-designer-sub000/internal/scene"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/vector"
)

// Options controls preview output. Zero colors and widths fall back to defaults.
type Options struct {
	// Margin is added around the union of the shape bounds, in world units.
	Margin float32
	// Scale is the number of pixels per world unit for PNG output.
	Scale         float32
	Background    color.RGBA
	Stroke        color.RGBA
	StrokeWidth   float32
	IncludeGuides bool
	GuideColor    color.RGBA
	Labels        bool
}

const (
	DefaultMargin = 16
	maxPixels     = 8192
)

func (o Options) withDefaults() Options {
	if o.Margin <= 0 {
		o.Margin = DefaultMargin
	}
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.Background == (color.RGBA{}) {
		o.Background = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	if o.Stroke == (color.RGBA{}) {
		o.Stroke = color.RGBA{A: 255}
	}
	if o.StrokeWidth <= 0 {
		o.StrokeWidth = 1
	}
	if o.GuideColor == (color.RGBA{}) {
		o.GuideColor = color.RGBA{R: 255, A: 255}
	}
	return o
}

// item is a shape flattened for drawing.
type item struct {
	name    string
	outline []vector.Pt
	fill    color.RGBA
	bounds  vector.Rect
}

func collect(shapes []*scene.Shape) []item {
	out := make([]item, 0, len(shapes))
	for _, s := range shapes {
		pts := s.Outline()
		if len(pts) < 3 || !finite(pts) {
			continue
		}
		out = append(out, item{name: s.Name(), outline: pts, fill: s.FillRGBA(), bounds: vector.BoundsOf(pts...)})
	}
	return out
}

func finite(pts []vector.Pt) bool {
	for _, p := range pts {
		if !p.Finite() {
			return false
		}
	}
	return true
}

// canvas returns the world rectangle covered by a preview of items.
// An empty scene yields a margin-sized square at the origin.
func canvas(items []item, margin float32) vector.Rect {
	if len(items) == 0 {
		return vector.R(-margin, -margin, 2*margin, 2*margin)
	}
	r := items[0].bounds
	for _, it := range items[1:] {
		r = r.Union(it.bounds)
	}
	return r.Inset(-margin, -margin)
}

// Canvas returns the world rectangle a preview of shapes covers with opts.
func Canvas(shapes []*scene.Shape, opts Options) vector.Rect {
	return canvas(collect(shapes), opts.withDefaults().Margin)
}

// File writes a preview to path, choosing the format from its extension.
func File(path string, shapes []*scene.Shape, opts Options) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure out dir: %w", err)
		}
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		return PDF(path, shapes, opts)
	case ".png":
		return PNG(path, shapes, opts)
	case ".svg":
		return SVG(path, shapes, opts)
	default:
		return fmt.Errorf("unsupported preview format %q", ext)
	}
}
