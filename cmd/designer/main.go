/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Flutterish/osu-framework-designer-sub000/internal/config"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/crash"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/export"
	applog "github.com/Flutterish/osu-framework-designer-sub000/internal/log"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/script"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/version"
)

//go:embed demo.json
var demoScript []byte

func usage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "designer %s\n\n", version.String())
	_, _ = fmt.Fprintln(w, "Usage:")
	_, _ = fmt.Fprintln(w, "  designer version|-v|--version        Show version")
	_, _ = fmt.Fprintln(w, "  designer run <script.json> [out]     Replay a script, optionally writing a .pdf/.png/.svg preview")
	_, _ = fmt.Fprintln(w, "  designer demo [out]                  Replay the built-in demo script")
	_, _ = fmt.Fprintln(w, "  designer config                      Print the effective configuration")
}

func main() {
	var res *script.Result
	defer crash.Recover(crash.Options{State: func() string { return describe(res) }})

	cfg, err := config.Load()
	if err != nil {
		// Logging is not configured yet; fall back to the environment.
		applog.Init(applog.FromEnv())
		applog.WithComponent("cli").Error("config failed", slog.Any("err", err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	cfg.Apply()
	defer func() { _ = applog.Close() }()

	code := run(context.Background(), cfg, os.Args[1:], os.Stdout, &res)
	if code != 0 {
		_ = applog.Close()
		os.Exit(code)
	}
}

// run executes one command and returns the process exit code. The replayed
// session is stored in *res as soon as it exists.
func run(ctx context.Context, cfg config.AppConfig, args []string, out io.Writer, res **script.Result) int {
	l := applog.WithComponent("cli")
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) == 0 {
		usage(out)
		return 2
	}
	switch args[0] {
	case "version", "--version", "-v":
		_, _ = fmt.Fprintln(out, version.String())
		return 0
	case "config":
		printConfig(out, cfg)
		return 0
	case "run":
		if len(args) < 2 {
			_, _ = fmt.Fprintln(out, "run requires <script.json>")
			usage(out)
			return 2
		}
		doc, err := script.Load(args[1])
		if err != nil {
			l.Error("load script failed", slog.Any("err", err))
			_, _ = fmt.Fprintln(out, "Error:", err)
			return 1
		}
		return replay(ctx, cfg, doc, args[2:], out, res)
	case "demo":
		doc, err := script.Parse(demoScript)
		if err != nil {
			l.Error("demo script invalid", slog.Any("err", err))
			_, _ = fmt.Fprintln(out, "Error:", err)
			return 1
		}
		return replay(ctx, cfg, doc, args[1:], out, res)
	}
	usage(out)
	return 2
}

func replay(ctx context.Context, cfg config.AppConfig, doc script.Document, rest []string, out io.Writer, res **script.Result) int {
	l := applog.WithOperation(applog.WithComponent("cli"), "replay")
	r, err := script.Run(ctx, doc, cfg.GestureOptions())
	*res = r
	if err != nil {
		l.Error("script failed", slog.Any("err", err))
		_, _ = fmt.Fprintln(out, "Error:", err)
		if r == nil {
			return 1
		}
		_, _ = fmt.Fprint(out, describe(r))
		return 1
	}
	l.Info("script done", slog.Int("steps", r.Steps), slog.Int("history", r.Editor.History.Len()))
	_, _ = fmt.Fprint(out, describe(r))
	if len(rest) > 0 {
		path := rest[0]
		if err := export.File(path, r.Scene.Shapes(), export.Options{Labels: true}); err != nil {
			l.Error("export failed", slog.Any("err", err), slog.String("path", path))
			_, _ = fmt.Fprintln(out, "Error:", err)
			return 1
		}
		_, _ = fmt.Fprintln(out, "Preview written to", path)
	}
	return 0
}

// describe lists every shape with its transform and the history position.
func describe(r *script.Result) string {
	if r == nil {
		return "no session\n"
	}
	var b strings.Builder
	for _, s := range r.Scene.Shapes() {
		fmt.Fprintf(&b, "%-12s %-8s %s\n", s.Name(), s.Kind(), s.Transform)
	}
	h := r.Editor.History
	fmt.Fprintf(&b, "steps: %d, history: %d/%d\n", r.Steps, h.CurrentIndex()+1, h.Len())
	return b.String()
}

func printConfig(w io.Writer, cfg config.AppConfig) {
	rows := []struct {
		key string
		val any
	}{
		{"history.capacity", cfg.History.Capacity},
		{"editing.round_places", cfg.Editing.RoundPlaces},
		{"editing.rotation_step", cfg.Editing.RotationStep},
		{"editing.snap_threshold", cfg.Editing.SnapThreshold},
		{"editing.max_shear", cfg.Editing.MaxShear},
		{"logging.level", cfg.Logging.Level},
		{"logging.format", cfg.Logging.Format},
		{"logging.source", cfg.Logging.Source},
		{"logging.file", cfg.Logging.File},
	}
	for _, r := range rows {
		line := fmt.Sprintf("%-24s %v", r.key, r.val)
		if env, ok := config.EnvOverrideFor(r.key); ok {
			line += " (from " + env + ")"
		}
		_, _ = fmt.Fprintln(w, line)
	}
}
