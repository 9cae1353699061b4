/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package log owns the process-wide slog logger. Records go to stderr, either as
// compact one-line text or as JSON, and optionally to a rotated JSON file.
// Callers tag records with a component and an operation; contextual attributes
// travel in a context.Context (see ContextWith).
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Flutterish/osu-framework-designer-sub000/internal/version"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

const envPrefix = "DESIGNER_LOG_"

// Options controls logger initialization. Every field can be overridden from the
// environment (see WithEnv):
//   - DESIGNER_LOG_LEVEL=debug|info|warn|error
//   - DESIGNER_LOG_FORMAT=console|json
//   - DESIGNER_LOG_FILE=<path> (JSON, rotated)
//   - DESIGNER_LOG_SOURCE=true|false
type Options struct {
	Level     string
	Format    string // "console" or "json"
	AddSource bool
	File      string
	// Console receives the stderr handler output. Nil means os.Stderr.
	Console io.Writer
}

var (
	mu      sync.RWMutex
	current *slog.Logger
	file    *lj.Logger
)

// L returns the application logger, initializing it from the environment on first use.
func L() *slog.Logger {
	mu.RLock()
	l := current
	mu.RUnlock()
	if l != nil {
		return l
	}
	Init(FromEnv())
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Init replaces the application logger and slog.Default. A previously opened log
// file is closed.
func Init(opts Options) {
	lvl := parseLevel(opts.Level)
	out := opts.Console
	if out == nil {
		out = os.Stderr
	}

	var console slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		console = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: lvl, AddSource: opts.AddSource})
	} else {
		console = &textHandler{level: lvl, source: opts.AddSource, w: out, mu: &sync.Mutex{}}
	}
	handlers := []slog.Handler{withContextAttrs(console)}

	var rotated *lj.Logger
	if path := strings.TrimSpace(opts.File); path != "" {
		rotated = &lj.Logger{Filename: path, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
		fh := slog.NewJSONHandler(rotated, &slog.HandlerOptions{Level: lvl, AddSource: opts.AddSource})
		handlers = append(handlers, withContextAttrs(fh))
	}

	logger := slog.New(fanOut(handlers...)).With(
		slog.String("app", "designer"),
		slog.String("ver", version.String()),
		slog.Time("ts_init", time.Now()),
	)

	mu.Lock()
	prev := file
	current, file = logger, rotated
	mu.Unlock()
	if prev != nil {
		_ = prev.Close()
	}
	slog.SetDefault(logger)
}

// Close flushes and closes the log file, if any. The console handler keeps working.
func Close() error {
	mu.Lock()
	f := file
	file = nil
	mu.Unlock()
	if f == nil {
		return nil
	}
	return f.Close()
}

// FromEnv returns the defaults (info, console) overlaid with the environment.
func FromEnv() Options {
	return Options{Level: "info", Format: "console"}.WithEnv()
}

// WithEnv overlays the DESIGNER_LOG_* variables that are set onto o.
func (o Options) WithEnv() Options {
	if v, ok := lookup("LEVEL"); ok {
		o.Level = v
	}
	if v, ok := lookup("FORMAT"); ok {
		o.Format = v
	}
	if v, ok := lookup("SOURCE"); ok {
		o.AddSource = strings.EqualFold(v, "true") || v == "1"
	}
	if v, ok := lookup("FILE"); ok {
		o.File = v
	}
	return o
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// WithComponent returns a logger with the component attribute pre-set.
func WithComponent(name string) *slog.Logger { return L().With(slog.String("component", name)) }

// WithOperation annotates the logger with an operation name.
func WithOperation(l *slog.Logger, op string) *slog.Logger { return l.With(slog.String("op", op)) }

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
