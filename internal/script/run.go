/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/Flutterish/osu-framework-designer-sub000/internal/gesture"
	applog "github.com/Flutterish/osu-framework-designer-sub000/internal/log"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/scene"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/transform"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/vector"
)

// Tolerance is the largest difference an expect step accepts.
const Tolerance = 1e-2

// Result is the outcome of a run.
type Result struct {
	Scene  *scene.Scene
	Editor *gesture.Editor
	// Steps is the number of steps that completed.
	Steps int
}

// Build creates the starting scene of doc. Shape names must be unique. Shear
// cells are bounded by maxShear (see transform.NewBounded).
func Build(doc Document, maxShear float32) (*scene.Scene, error) {
	sc := scene.New()
	groups := map[string]*scene.Group{}
	seen := map[string]bool{}
	for _, ss := range doc.Shapes {
		if seen[ss.Name] {
			return nil, fmt.Errorf("duplicate shape name %q", ss.Name)
		}
		seen[ss.Name] = true
		sh := newShape(ss, maxShear)
		if ss.Group == "" {
			sc.Add(sh)
			continue
		}
		g, ok := groups[ss.Group]
		if !ok {
			g = scene.NewGroup(ss.Group)
			groups[ss.Group] = g
			sc.Add(g)
		}
		g.Insert(g.Len(), sh)
	}
	return sc, nil
}

func newShape(ss ShapeSpec, maxShear float32) *scene.Shape {
	p := transform.Box(ss.X, ss.Y, ss.Width, ss.Height)
	p.Rotation = ss.Rotation
	p.ShearX = ss.ShearX
	p.OriginX, p.OriginY = ss.OriginX, ss.OriginY
	if ss.ScaleX != nil {
		p.ScaleX = *ss.ScaleX
	}
	if ss.ScaleY != nil {
		p.ScaleY = *ss.ScaleY
	}
	sh := scene.NewShapeFrom(scene.Kind(ss.Kind), ss.Name, transform.NewBounded(p, maxShear))
	if ss.Corners != 0 {
		sh.Corners.Set(ss.Corners)
	}
	if ss.Fill != "" {
		sh.Fill.Set(ss.Fill)
	}
	return sh
}

// Run builds the scene of doc and replays its steps in order. It stops at the
// first failing step or when ctx is done; the partial result is returned either way.
func Run(ctx context.Context, doc Document, opts gesture.Options) (*Result, error) {
	sc, err := Build(doc, opts.MaxShear)
	if err != nil {
		return nil, err
	}
	res := &Result{Scene: sc, Editor: gesture.NewEditor(sc, opts)}
	lg := applog.WithComponent("script")
	for i, st := range doc.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		sctx := applog.ContextWith(ctx, slog.Int("step", i+1), slog.String("op", st.Op))
		if err := res.run(st); err != nil {
			lg.ErrorContext(sctx, "step failed", slog.Any("err", err))
			return res, &Error{Step: i, Op: st.Op, Message: err.Error()}
		}
		lg.DebugContext(sctx, "step done")
		res.Steps++
	}
	return res, nil
}

func (r *Result) run(st Step) error {
	e := r.Editor
	switch st.Op {
	case "select":
		if st.At != nil {
			root, _ := r.Scene.HitTest(pt(*st.At))
			if root == nil {
				return fmt.Errorf("nothing at (%g, %g)", st.At.X, st.At.Y)
			}
			e.Select(root)
			return nil
		}
		cs, err := r.resolve(st.Targets)
		if err != nil {
			return err
		}
		e.Select(cs...)
	case "drag", "cancel":
		return r.drag(st)
	case "undo":
		if !e.Undo() {
			applog.WithComponent("script").Warn("nothing to undo")
		}
	case "redo":
		if !e.Redo() {
			applog.WithComponent("script").Warn("nothing to redo")
		}
	case "remove":
		cs, err := r.resolve(st.Targets)
		if err != nil {
			return err
		}
		if !e.Remove(cs...) {
			return fmt.Errorf("none of %s is a top-level component", strings.Join(st.Targets, ", "))
		}
	case "expect":
		return r.expect(st.Target, st.Values)
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
	return nil
}

func (r *Result) resolve(names []string) ([]scene.Component, error) {
	out := make([]scene.Component, 0, len(names))
	for _, n := range names {
		c := r.Scene.FindByName(n)
		if c == nil {
			return nil, fmt.Errorf("no component named %q", n)
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *Result) drag(st Step) error {
	if st.From == nil || st.To == nil {
		return fmt.Errorf("%s needs from and to", st.Op)
	}
	h, err := gesture.ParseHandle(st.Handle)
	if err != nil {
		return err
	}
	d, err := r.Editor.BeginDrag(h, pt(*st.From))
	if err != nil {
		return err
	}
	m := gesture.Modifiers{Precise: st.Precise}
	for _, p := range st.Path {
		d.Update(pt(p), m)
	}
	d.Update(pt(*st.To), m)
	if st.Op == "cancel" {
		r.Editor.CancelGesture()
		return nil
	}
	r.Editor.EndGesture()
	return nil
}

func (r *Result) expect(name string, want map[string]float32) error {
	c := r.Scene.FindByName(name)
	sh, ok := c.(*scene.Shape)
	if !ok {
		return fmt.Errorf("no shape named %q", name)
	}
	got := Values(sh.Transform.Params())
	keys := make([]string, 0, len(want))
	for k := range want {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	var diffs []string
	for _, k := range keys {
		v, ok := got[k]
		if !ok {
			return fmt.Errorf("unknown property %q", k)
		}
		if !valueNear(k, v, want[k]) {
			diffs = append(diffs, fmt.Sprintf("%s = %g, want %g", k, v, want[k]))
		}
	}
	if len(diffs) > 0 {
		return fmt.Errorf("%s: %s", name, strings.Join(diffs, "; "))
	}
	return nil
}

// valueNear compares rotation by the shortest angle and everything else directly.
func valueNear(key string, got, want float32) bool {
	if key == "rotation" {
		return vector.AnglesNearDeg(got, want, Tolerance)
	}
	return math.Abs(float64(got-want)) <= Tolerance
}

// Values maps property names to the values in p.
func Values(p transform.Params) map[string]float32 {
	return map[string]float32{
		"x":        p.X,
		"y":        p.Y,
		"width":    p.Width,
		"height":   p.Height,
		"rotation": p.Rotation,
		"scaleX":   p.ScaleX,
		"scaleY":   p.ScaleY,
		"shearX":   p.ShearX,
		"shearY":   p.ShearY,
		"originX":  p.OriginX,
		"originY":  p.OriginY,
	}
}

func pt(p Point) vector.Pt { return vector.Pt{X: p.X, Y: p.Y} }
