/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	applog "github.com/Flutterish/osu-framework-designer-sub000/internal/log"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/transform"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadFileMissingGivesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg != Defaults() {
		t.Fatalf("got %#v, want defaults", cfg)
	}
}

func TestLoadFileMergesOverDefaults(t *testing.T) {
	path := writeFile(t, "editing:\n  round_places: 2\nlogging:\n  level: \" DEBUG \"\n  source: true\n")
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.Editing.RoundPlaces != 2 || cfg.Logging.Level != "debug" || !cfg.Logging.Source {
		t.Fatalf("file values not applied: %#v", cfg)
	}
	if cfg.Editing.RotationStep != 1 || cfg.History.Capacity != Defaults().History.Capacity {
		t.Fatalf("absent keys should keep defaults: %#v", cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "history:\n  capacity: 10\n")
	t.Setenv("DESIGNER_HISTORY_CAPACITY", "-1")
	t.Setenv("DESIGNER_EDITING_SNAP_THRESHOLD", "0")
	t.Setenv("DESIGNER_LOG_FORMAT", "JSON")
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.History.Capacity != -1 || cfg.Editing.SnapThreshold != 0 || cfg.Logging.Format != "json" {
		t.Fatalf("env overrides not applied: %#v", cfg)
	}
	if name, ok := EnvOverrideFor("history.capacity"); !ok || name != "DESIGNER_HISTORY_CAPACITY" {
		t.Fatalf("EnvOverrideFor = %q, %v", name, ok)
	}
	if _, ok := EnvOverrideFor("editing.max_shear"); ok {
		t.Fatalf("max_shear is not overridden")
	}
	if _, ok := EnvOverrideFor("no.such.key"); ok {
		t.Fatalf("unknown keys are never overridden")
	}
}

func TestBadInputIsReported(t *testing.T) {
	if _, err := LoadFile(writeFile(t, "editing: [1, 2")); err == nil {
		t.Fatal("expected a yaml error")
	}
	t.Setenv("DESIGNER_EDITING_ROUND_PLACES", "many")
	if _, err := LoadFile(writeFile(t, "")); err == nil {
		t.Fatal("expected an env parse error")
	}
}

func TestValidateJoinsProblems(t *testing.T) {
	cfg := Defaults()
	cfg.Editing.RoundPlaces = 9
	cfg.Editing.MaxShear = 0
	cfg.Logging.Format = "xml"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected errors")
	}
	for _, want := range []string{"round_places", "max_shear", "logging.format"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("missing %q in %v", want, err)
		}
	}
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "designer", "config.yaml")
	t.Setenv(EnvConfigPath, path)
	cfg := Defaults()
	cfg.Editing.RotationStep = 15
	cfg.Logging.File = "designer.log"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got != cfg {
		t.Fatalf("got %#v, want %#v", got, cfg)
	}
	bad := Defaults()
	bad.Editing.SnapThreshold = -1
	if err := Save(bad); err == nil {
		t.Fatal("invalid config must not be saved")
	}
}

func TestConversions(t *testing.T) {
	cfg := Defaults()
	cfg.Editing.RoundPlaces = 1
	cfg.Editing.MaxShear = 3
	cfg.History.Capacity = 5
	cfg.Logging.Level = "warn"
	g := cfg.GestureOptions()
	if g.RoundPlaces != 1 || g.HistoryCapacity != 5 || g.SnapThreshold != 4 || g.MaxShear != 3 {
		t.Fatalf("gesture options %+v", g)
	}
	if l := cfg.LogOptions(); l.Level != "warn" || l.Format != "console" {
		t.Fatalf("log options %+v", l)
	}
	if Defaults().Editing.MaxShear != transform.DefaultMaxShear {
		t.Fatalf("default max_shear = %v", Defaults().Editing.MaxShear)
	}
}

func TestApplyInitializesLogger(t *testing.T) {
	t.Cleanup(func() { applog.Init(applog.FromEnv()) })
	cfg := Defaults()
	cfg.Logging.Level = "error"
	cfg.Apply()
	if applog.L().Enabled(context.Background(), slog.LevelWarn) {
		t.Fatal("warn enabled after applying level error")
	}
	if !applog.L().Enabled(context.Background(), slog.LevelError) {
		t.Fatal("error disabled")
	}
}
