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
	"errors"
	"strings"
	"testing"

	"github.com/Flutterish/osu-framework-designer-sub000/internal/gesture"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/scene"
)

func TestLoadAndRunResizeScript(t *testing.T) {
	doc, err := Load("testdata/resize.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Shapes) != 3 || len(doc.Steps) != 15 {
		t.Fatalf("unexpected document: %d shapes, %d steps", len(doc.Shapes), len(doc.Steps))
	}
	res, err := Run(context.Background(), doc, gesture.DefaultOptions())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Steps != len(doc.Steps) {
		t.Fatalf("completed %d of %d steps", res.Steps, len(doc.Steps))
	}
	if res.Scene.Len() != 2 {
		t.Fatalf("expected card and one group at top level, got %d", res.Scene.Len())
	}
	badge, ok := res.Scene.FindByName("badge").(*scene.Shape)
	if !ok || badge.Kind() != scene.KindEllipse {
		t.Fatalf("badge not found as ellipse")
	}
	if got := badge.Transform.Params(); got.X != 310 || got.Y != 20 {
		t.Fatalf("redo should restore the move, got %+v", got)
	}
	star := res.Scene.FindByName("star").(*scene.Shape)
	if star.Corners.Get() != 5 {
		t.Fatalf("corners = %d", star.Corners.Get())
	}
	if res.Editor.History.Len() != 2 || res.Editor.History.HasRedo() {
		t.Fatalf("history len=%d redo=%v", res.Editor.History.Len(), res.Editor.History.HasRedo())
	}
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"not json":        `{`,
		"missing steps":   `{"shapes": []}`,
		"unknown kind":    `{"shapes": [{"name": "a", "kind": "star", "width": 1, "height": 1}], "steps": []}`,
		"unknown op":      `{"shapes": [], "steps": [{"op": "jump"}]}`,
		"drag no handle":  `{"shapes": [], "steps": [{"op": "drag", "from": {"x": 0, "y": 0}, "to": {"x": 1, "y": 1}}]}`,
		"select no names": `{"shapes": [], "steps": [{"op": "select"}]}`,
		"bad fill":        `{"shapes": [{"name": "a", "kind": "rect", "width": 1, "height": 1, "fill": "red"}], "steps": []}`,
		"few corners":     `{"shapes": [{"name": "a", "kind": "polygon", "width": 1, "height": 1, "corners": 2}], "steps": []}`,
		"extra field":     `{"shapes": [], "steps": [], "zoom": 2}`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(src)); err == nil {
				t.Fatalf("expected an error for %s", src)
			}
		})
	}
}

func TestValidateJoinsAllViolations(t *testing.T) {
	err := Validate([]byte(`{"shapes": [{"name": "", "kind": "rect"}], "steps": [{"op": "expect"}]}`))
	if err == nil {
		t.Fatal("expected violations")
	}
	if n := strings.Count(err.Error(), "\n") + 1; n < 3 {
		t.Fatalf("expected several joined violations, got %d: %v", n, err)
	}
}

func TestRunReportsFailingStep(t *testing.T) {
	doc, err := Parse([]byte(`{
		"shapes": [{"name": "a", "kind": "rect", "width": 10, "height": 10}],
		"steps": [
			{"op": "select", "targets": ["a"]},
			{"op": "expect", "target": "a", "values": {"width": 20}}
		]
	}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res, err := Run(context.Background(), doc, gesture.DefaultOptions())
	var se *Error
	if !errors.As(err, &se) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if se.Step != 1 || se.Op != "expect" || !strings.Contains(se.Message, "width = 10, want 20") {
		t.Fatalf("unexpected error %+v", se)
	}
	if !strings.HasPrefix(err.Error(), "step 2 (expect)") {
		t.Fatalf("error text %q", err)
	}
	if res == nil || res.Steps != 1 {
		t.Fatalf("partial result should count the first step")
	}
}

func TestExpectComparesRotationByAngle(t *testing.T) {
	const script = `{
		"shapes": [{"name": "a", "kind": "rect", "width": 100, "height": 50}],
		"steps": [
			{"op": "select", "targets": ["a"]},
			{"op": "drag", "handle": "bottomRight", "from": {"x": 100, "y": 50}, "to": {"x": -100, "y": -50}, "precise": true},
			{"op": "expect", "target": "a", "values": {"rotation": -180, "width": 100, "height": 50, "x": 0, "y": 0}},
			{"op": "expect", "target": "a", "values": {"rotation": 540}},
			{"op": "expect", "target": "a", "values": {"rotation": 90}}
		]
	}`
	doc, err := Parse([]byte(script))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res, err := Run(context.Background(), doc, gesture.DefaultOptions())
	var se *Error
	if !errors.As(err, &se) || se.Step != 4 {
		t.Fatalf("expected the last expect to fail, got %v", err)
	}
	if !strings.Contains(se.Message, "rotation = 180, want 90") {
		t.Fatalf("message %q", se.Message)
	}
	if res.Steps != 4 {
		t.Fatalf("completed %d steps", res.Steps)
	}
}

func TestRunBoundsShearFromOptions(t *testing.T) {
	doc, err := Parse([]byte(`{
		"shapes": [{"name": "a", "kind": "rect", "width": 10, "height": 10, "shearX": 5}],
		"steps": []
	}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	opts := gesture.DefaultOptions()
	opts.MaxShear = 2
	res, err := Run(context.Background(), doc, opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	a := res.Scene.FindByName("a").(*scene.Shape)
	if a.Transform.ShearX.Get() != 2 || a.Transform.MaxShear() != 2 {
		t.Fatalf("shearX = %v, bound %v", a.Transform.ShearX.Get(), a.Transform.MaxShear())
	}
}

func TestRunUnknownTargetAndDuplicateNames(t *testing.T) {
	doc := Document{
		Shapes: []ShapeSpec{{Name: "a", Kind: "rect", Width: 1, Height: 1}},
		Steps:  []Step{{Op: "select", Targets: []string{"b"}}},
	}
	if _, err := Run(context.Background(), doc, gesture.DefaultOptions()); err == nil || !strings.Contains(err.Error(), `"b"`) {
		t.Fatalf("expected unknown name error, got %v", err)
	}
	doc.Shapes = append(doc.Shapes, ShapeSpec{Name: "a", Kind: "ellipse", Width: 1, Height: 1})
	if _, err := Run(context.Background(), doc, gesture.DefaultOptions()); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate name error, got %v", err)
	}
}

func TestRunDragWithoutSelection(t *testing.T) {
	doc := Document{
		Shapes: []ShapeSpec{{Name: "a", Kind: "rect", Width: 1, Height: 1}},
		Steps:  []Step{{Op: "drag", Handle: "move", From: &Point{}, To: &Point{X: 1}}},
	}
	_, err := Run(context.Background(), doc, gesture.DefaultOptions())
	if err == nil || !strings.Contains(err.Error(), gesture.ErrNoSelection.Error()) {
		t.Fatalf("expected no selection error, got %v", err)
	}
}

func TestRunRemoveAndUndo(t *testing.T) {
	doc := Document{
		Shapes: []ShapeSpec{
			{Name: "a", Kind: "rect", Width: 1, Height: 1},
			{Name: "b", Kind: "rect", X: 5, Width: 1, Height: 1},
		},
		Steps: []Step{
			{Op: "select", Targets: []string{"a", "b"}},
			{Op: "remove", Targets: []string{"a"}},
		},
	}
	res, err := Run(context.Background(), doc, gesture.DefaultOptions())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Scene.Len() != 1 || len(res.Editor.Selection()) != 1 {
		t.Fatalf("scene len %d selection %d", res.Scene.Len(), len(res.Editor.Selection()))
	}
	res.Editor.Undo()
	if res.Scene.FindByName("a") == nil {
		t.Fatal("undo should bring a back")
	}
}

func TestRunHonoursScaleAndContext(t *testing.T) {
	half := float32(0.5)
	doc := Document{
		Shapes: []ShapeSpec{{Name: "a", Kind: "rect", Width: 10, Height: 10, ScaleX: &half}},
		Steps:  []Step{{Op: "expect", Target: "a", Values: map[string]float32{"scaleX": 0.5, "scaleY": 1}}},
	}
	if _, err := Run(context.Background(), doc, gesture.DefaultOptions()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Run(ctx, doc, gesture.DefaultOptions())
	if !errors.Is(err, context.Canceled) || res.Steps != 0 {
		t.Fatalf("expected cancellation before the first step, got %v", err)
	}
}

func TestSelectAtPoint(t *testing.T) {
	doc, err := Parse([]byte(`{
		"shapes": [
			{"name": "back", "kind": "rect", "width": 100, "height": 100},
			{"name": "dot", "kind": "ellipse", "x": 40, "y": 40, "width": 20, "height": 20, "group": "dots"}
		],
		"steps": [
			{"op": "select", "at": {"x": 50, "y": 50}},
			{"op": "drag", "handle": "move", "from": {"x": 50, "y": 50}, "to": {"x": 60, "y": 50}, "precise": true},
			{"op": "expect", "target": "dot", "values": {"x": 50}},
			{"op": "expect", "target": "back", "values": {"x": 0}},
			{"op": "select", "at": {"x": 500, "y": 500}}
		]
	}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res, err := Run(context.Background(), doc, gesture.DefaultOptions())
	if err == nil || !strings.Contains(err.Error(), "nothing at (500, 500)") {
		t.Fatalf("expected a miss on the last step, got %v", err)
	}
	if res.Steps != 4 {
		t.Fatalf("completed %d steps", res.Steps)
	}
	if sel := res.Editor.Selection(); len(sel) != 1 || sel[0].Name() != "dots" {
		t.Fatalf("selection = %v", sel)
	}
}
