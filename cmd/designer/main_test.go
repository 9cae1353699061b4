/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Flutterish/osu-framework-designer-sub000/internal/config"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/script"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/version"
)

func runCLI(t *testing.T, args ...string) (int, string, *script.Result) {
	t.Helper()
	var out bytes.Buffer
	var res *script.Result
	code := run(context.Background(), config.Defaults(), args, &out, &res)
	return code, out.String(), res
}

func TestVersionAndUsage(t *testing.T) {
	if code, out, _ := runCLI(t, "version"); code != 0 || strings.TrimSpace(out) != version.String() {
		t.Fatalf("version: code %d, out %q", code, out)
	}
	if code, out, _ := runCLI(t); code != 2 || !strings.Contains(out, "Usage:") {
		t.Fatalf("no args: code %d, out %q", code, out)
	}
	if code, _, _ := runCLI(t, "frobnicate"); code != 2 {
		t.Fatalf("unknown command: code %d", code)
	}
	if code, out, _ := runCLI(t, "run"); code != 2 || !strings.Contains(out, "requires") {
		t.Fatalf("run without script: code %d, out %q", code, out)
	}
}

func TestDemoWritesPreview(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.svg")
	code, out, res := runCLI(t, "demo", path)
	if code != 0 {
		t.Fatalf("demo failed (%d):\n%s", code, out)
	}
	if res == nil || res.Steps != 12 {
		t.Fatalf("demo result %+v", res)
	}
	for _, want := range []string{"frame", "sun", "star", "Preview written to"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil || strings.Count(string(data), "<polygon") != 3 {
		t.Fatalf("preview: %v\n%s", err, data)
	}
}

func TestRunScriptFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "s.json")
	body := `{"shapes": [{"name": "a", "kind": "rect", "width": 10, "height": 10}],
		"steps": [{"op": "select", "targets": ["a"]},
		          {"op": "drag", "handle": "right", "from": {"x": 10, "y": 5}, "to": {"x": 30, "y": 5}}]}`
	if err := os.WriteFile(src, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	code, out, res := runCLI(t, "run", src)
	if code != 0 {
		t.Fatalf("run failed (%d):\n%s", code, out)
	}
	if got := res.Scene.Shapes()[0].Transform.Width.Get(); got != 30 {
		t.Fatalf("width = %v", got)
	}
	if !strings.Contains(out, "history: 1/1") {
		t.Fatalf("summary missing history:\n%s", out)
	}
	if code, out, _ := runCLI(t, "run", src, filepath.Join(dir, "x.bmp")); code != 1 || !strings.Contains(out, "unsupported") {
		t.Fatalf("bad preview format: code %d, out %q", code, out)
	}
}

func TestRunReportsBadScripts(t *testing.T) {
	if code, out, _ := runCLI(t, "run", filepath.Join(t.TempDir(), "missing.json")); code != 1 || !strings.Contains(out, "Error:") {
		t.Fatalf("missing file: code %d, out %q", code, out)
	}
	src := filepath.Join(t.TempDir(), "fail.json")
	body := `{"shapes": [{"name": "a", "kind": "rect", "width": 10, "height": 10}],
		"steps": [{"op": "expect", "target": "a", "values": {"height": 11}}]}`
	if err := os.WriteFile(src, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	code, out, res := runCLI(t, "run", src)
	if code != 1 || res == nil || !strings.Contains(out, "step 1 (expect)") {
		t.Fatalf("failing step: code %d, out %q", code, out)
	}
}

func TestConfigMarksEnvOverrides(t *testing.T) {
	t.Setenv("DESIGNER_LOG_LEVEL", "debug")
	code, out, _ := runCLI(t, "config")
	if code != 0 || !strings.Contains(out, "(from DESIGNER_LOG_LEVEL)") {
		t.Fatalf("config: code %d, out %q", code, out)
	}
	if strings.Contains(out, "DESIGNER_HISTORY_CAPACITY") {
		t.Fatalf("capacity is not overridden:\n%s", out)
	}
}

func TestDescribeWithoutSession(t *testing.T) {
	if got := describe(nil); got != "no session\n" {
		t.Fatalf("describe(nil) = %q", got)
	}
}
