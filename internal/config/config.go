/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package config loads the user configuration: a YAML file in the user config
// directory, overlaid with DESIGNER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/Flutterish/osu-framework-designer-sub000/internal/gesture"
	applog "github.com/Flutterish/osu-framework-designer-sub000/internal/log"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/transform"
	"github.com/Flutterish/osu-framework-designer-sub000/internal/undo"
)

// EnvPrefix is prepended to every environment override, e.g. DESIGNER_EDITING_ROUND_PLACES.
const EnvPrefix = "DESIGNER"

// EnvConfigPath points Load at a different file.
const EnvConfigPath = "DESIGNER_CONFIG"

type HistoryConfig struct {
	// Capacity bounds the undo history; negative means unbounded.
	Capacity int `yaml:"capacity" envconfig:"CAPACITY"`
}

type EditingConfig struct {
	RoundPlaces   int     `yaml:"round_places" envconfig:"ROUND_PLACES"`
	RotationStep  float32 `yaml:"rotation_step" envconfig:"ROTATION_STEP"`
	SnapThreshold float32 `yaml:"snap_threshold" envconfig:"SNAP_THRESHOLD"`
	MaxShear      float32 `yaml:"max_shear" envconfig:"MAX_SHEAR"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`
	Format string `yaml:"format" envconfig:"FORMAT"`
	Source bool   `yaml:"source" envconfig:"SOURCE"`
	File   string `yaml:"file" envconfig:"FILE"`
}

// AppConfig is the user-editable configuration.
//
// config_version: bump when the structure changes in a backward-incompatible way.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version" ignored:"true"`
	History       HistoryConfig `yaml:"history" envconfig:"HISTORY"`
	Editing       EditingConfig `yaml:"editing" envconfig:"EDITING"`
	Logging       LoggingConfig `yaml:"logging" envconfig:"LOG"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		History:       HistoryConfig{Capacity: undo.DefaultCapacity},
		Editing:       EditingConfig{RoundPlaces: 0, RotationStep: 1, SnapThreshold: 4, MaxShear: transform.DefaultMaxShear},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// ConfigPath returns the per-user config file path, or $DESIGNER_CONFIG when set.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve config directory: %w", err)
	}
	return filepath.Join(base, "designer", "config.yaml"), nil
}

// Load reads the user config file (if present) over the defaults and applies
// environment overrides.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return Defaults(), err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path. A missing file is not an error.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Defaults(), fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("environment overrides: %w", err)
	}
	cfg.normalize()
	return cfg, cfg.Validate()
}

// Save writes cfg to the user config file.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile writes cfg as YAML to path, creating the directory.
func SaveFile(path string, cfg AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *AppConfig) normalize() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.File = strings.TrimSpace(c.Logging.File)
}

// Validate reports every out-of-range setting.
func (c AppConfig) Validate() error {
	var errs []error
	if c.Editing.RoundPlaces < 0 || c.Editing.RoundPlaces > 6 {
		errs = append(errs, fmt.Errorf("editing.round_places must be within 0..6, got %d", c.Editing.RoundPlaces))
	}
	if c.Editing.RotationStep < 0 || c.Editing.RotationStep >= 360 {
		errs = append(errs, fmt.Errorf("editing.rotation_step must be within [0, 360), got %g", c.Editing.RotationStep))
	}
	if c.Editing.SnapThreshold < 0 {
		errs = append(errs, fmt.Errorf("editing.snap_threshold must not be negative, got %g", c.Editing.SnapThreshold))
	}
	if !(c.Editing.MaxShear > 0) {
		errs = append(errs, fmt.Errorf("editing.max_shear must be positive, got %g", c.Editing.MaxShear))
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// envKeys maps YAML keys to the variable that overrides them.
var envKeys = map[string]string{
	"history.capacity":       "HISTORY_CAPACITY",
	"editing.round_places":   "EDITING_ROUND_PLACES",
	"editing.rotation_step":  "EDITING_ROTATION_STEP",
	"editing.snap_threshold": "EDITING_SNAP_THRESHOLD",
	"editing.max_shear":      "EDITING_MAX_SHEAR",
	"logging.level":          "LOG_LEVEL",
	"logging.format":         "LOG_FORMAT",
	"logging.source":         "LOG_SOURCE",
	"logging.file":           "LOG_FILE",
}

// EnvOverrideFor returns the env var name if the field is overridden by the environment.
func EnvOverrideFor(key string) (string, bool) {
	suffix, ok := envKeys[key]
	if !ok {
		return "", false
	}
	name := EnvPrefix + "_" + suffix
	if _, set := os.LookupEnv(name); !set {
		return "", false
	}
	return name, true
}

// GestureOptions converts the editing and history sections for the editor.
func (c AppConfig) GestureOptions() gesture.Options {
	return gesture.Options{
		RoundPlaces:     c.Editing.RoundPlaces,
		RotationStep:    c.Editing.RotationStep,
		SnapThreshold:   c.Editing.SnapThreshold,
		HistoryCapacity: c.History.Capacity,
		MaxShear:        c.Editing.MaxShear,
	}
}

// LogOptions converts the logging section.
func (c AppConfig) LogOptions() applog.Options {
	return applog.Options{Level: c.Logging.Level, Format: c.Logging.Format, AddSource: c.Logging.Source, File: c.Logging.File}
}

// Apply initializes the process-wide logger. Editing settings reach the editor
// through GestureOptions.
func (c AppConfig) Apply() {
	applog.Init(c.LogOptions())
}
