/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/Flutterish/osu-framework-designer-sub000/internal/scene"
)

// SVG writes a vector preview to path. The viewBox is the canvas in world units.
func SVG(path string, shapes []*scene.Shape, opts Options) error {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, shapes, opts); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// WriteSVG writes the SVG document to w. Shapes become <polygon> elements in draw order.
func WriteSVG(w io.Writer, shapes []*scene.Shape, opts Options) error {
	opts = opts.withDefaults()
	items := collect(shapes)
	c := canvas(items, opts.Margin)

	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(w, format, args...)
	}

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%g\" height=\"%g\" viewBox=\"%g %g %g %g\">\n",
		c.W*opts.Scale, c.H*opts.Scale, c.X, c.Y, c.W, c.H)
	wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"%s\"/>\n", c.X, c.Y, c.W, c.H, svgColor(opts.Background))

	for _, it := range items {
		pts := make([]string, len(it.outline))
		for i, p := range it.outline {
			pts[i] = fmt.Sprintf("%g,%g", p.X, p.Y)
		}
		wf("  <polygon id=\"%s\" points=\"%s\" fill=\"%s\" stroke=\"%s\" stroke-width=\"%g\"/>\n",
			esc(it.name), strings.Join(pts, " "), svgColor(it.fill), svgColor(opts.Stroke), opts.StrokeWidth)
		if opts.IncludeGuides {
			b := it.bounds
			wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"none\" stroke=\"%s\" stroke-width=\"0.2\"/>\n",
				b.X, b.Y, b.W, b.H, svgColor(opts.GuideColor))
		}
		if opts.Labels {
			wf("  <text x=\"%g\" y=\"%g\" font-family=\"Helvetica, Arial, sans-serif\" font-size=\"8\" fill=\"%s\">%s</text>\n",
				it.bounds.X, it.bounds.Y-2, svgColor(opts.Stroke), esc(it.name))
		}
	}
	wf("</svg>\n")

	if werr != nil {
		return fmt.Errorf("build svg: %w", werr)
	}
	return nil
}

func svgColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func esc(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
