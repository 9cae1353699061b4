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
	"image/color"
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/Flutterish/osu-framework-designer-sub000/internal/scene"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/vector"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/version"
)

// PDF writes a single-page vector preview to path. One world unit is one point.
func PDF(path string, shapes []*scene.Shape, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pdf: %w", err)
	}
	if err := WritePDF(f, shapes, opts); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close pdf: %w", err)
	}
	return nil
}

// WritePDF writes the PDF preview to w.
func WritePDF(w io.Writer, shapes []*scene.Shape, opts Options) error {
	opts = opts.withDefaults()
	items := collect(shapes)
	c := canvas(items, opts.Margin)

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: float64(c.W), Ht: float64(c.H)},
	})
	pdf.SetTitle("Shape preview", false)
	pdf.SetCreator("designer "+version.String(), false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	setFillColor(pdf, opts.Background)
	pdf.Rect(0, 0, float64(c.W), float64(c.H), "F")

	pdf.SetFont("Helvetica", "", 8)
	for _, it := range items {
		pts := make([]gofpdf.PointType, len(it.outline))
		for i, p := range it.outline {
			pts[i] = pdfPoint(p, c)
		}
		setFillColor(pdf, it.fill)
		setDrawColor(pdf, opts.Stroke)
		pdf.SetLineWidth(float64(opts.StrokeWidth))
		pdf.Polygon(pts, "FD")

		if opts.IncludeGuides {
			setDrawColor(pdf, opts.GuideColor)
			pdf.SetLineWidth(0.2)
			tl := pdfPoint(it.bounds.Min(), c)
			pdf.Rect(tl.X, tl.Y, float64(it.bounds.W), float64(it.bounds.H), "D")
		}
		if opts.Labels {
			at := pdfPoint(it.bounds.Min(), c)
			pdf.SetTextColor(int(opts.Stroke.R), int(opts.Stroke.G), int(opts.Stroke.B))
			pdf.Text(at.X, at.Y-2, it.name)
		}
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func pdfPoint(p vector.Pt, c vector.Rect) gofpdf.PointType {
	return gofpdf.PointType{X: float64(p.X - c.X), Y: float64(p.Y - c.Y)}
}

func setDrawColor(pdf *gofpdf.Fpdf, c color.RGBA) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c color.RGBA) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}
