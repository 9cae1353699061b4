/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	raster "golang.org/x/image/vector"

	"github.com/Flutterish/osu-framework-designer-sub000/internal/scene"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/vector"
)

// PNG writes an anti-aliased raster preview to path at opts.Scale pixels per unit.
func PNG(path string, shapes []*scene.Shape, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := WritePNG(f, shapes, opts); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	return nil
}

// WritePNG encodes the raster preview to w.
func WritePNG(w io.Writer, shapes []*scene.Shape, opts Options) error {
	img, err := Render(shapes, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Render rasterizes the preview. Images larger than 8192 pixels per side are refused.
func Render(shapes []*scene.Shape, opts Options) (*image.RGBA, error) {
	opts = opts.withDefaults()
	items := collect(shapes)
	c := canvas(items, opts.Margin)
	pw := int(math.Ceil(float64(c.W * opts.Scale)))
	ph := int(math.Ceil(float64(c.H * opts.Scale)))
	if pw <= 0 || ph <= 0 || pw > maxPixels || ph > maxPixels {
		return nil, fmt.Errorf("render: canvas %dx%d px out of range", pw, ph)
	}

	img := image.NewRGBA(image.Rect(0, 0, pw, ph))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: opts.Background}, image.Point{}, draw.Src)

	toPx := func(p vector.Pt) vector.Pt {
		return vector.Pt{X: (p.X - c.X) * opts.Scale, Y: (p.Y - c.Y) * opts.Scale}
	}
	z := raster.NewRasterizer(pw, ph)
	for _, it := range items {
		px := make([]vector.Pt, len(it.outline))
		for i, p := range it.outline {
			px[i] = toPx(p)
		}
		z.Reset(pw, ph)
		fillPolygon(z, px)
		z.Draw(img, img.Bounds(), image.NewUniform(it.fill), image.Point{})

		z.Reset(pw, ph)
		strokePolygon(z, px, opts.StrokeWidth*opts.Scale)
		z.Draw(img, img.Bounds(), image.NewUniform(opts.Stroke), image.Point{})

		if opts.IncludeGuides {
			b := it.bounds
			corners := []vector.Pt{toPx(b.Min()), toPx(vector.Pt{X: b.X + b.W, Y: b.Y}), toPx(b.Max()), toPx(vector.Pt{X: b.X, Y: b.Y + b.H})}
			z.Reset(pw, ph)
			strokePolygon(z, corners, 1)
			z.Draw(img, img.Bounds(), image.NewUniform(opts.GuideColor), image.Point{})
		}
		if opts.Labels {
			at := toPx(it.bounds.Min())
			d := font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(opts.Stroke),
				Face: basicfont.Face7x13,
				Dot:  fixed.P(int(at.X), int(at.Y)-2),
			}
			d.DrawString(it.name)
		}
	}
	return img, nil
}

func fillPolygon(z *raster.Rasterizer, pts []vector.Pt) {
	z.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		z.LineTo(p.X, p.Y)
	}
	z.ClosePath()
}

// strokePolygon adds one quad of the given width per closed-outline segment.
func strokePolygon(z *raster.Rasterizer, pts []vector.Pt, width float32) {
	half := width / 2
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		d := b.Sub(a)
		l := d.Len()
		if l == 0 {
			continue
		}
		n := vector.Pt{X: -d.Y / l * half, Y: d.X / l * half}
		fillPolygon(z, []vector.Pt{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)})
	}
}
