/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package script loads JSON edit scripts and replays them against an editor.
// A script declares the starting shapes and a list of steps (select, drag,
// undo and so on) so that editing sessions can be reproduced headless.
package script

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON []byte

// Point is a world coordinate.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// ShapeSpec declares one starting shape. Shapes sharing a Group name are
// wrapped in one group, placed where the first of them appears.
type ShapeSpec struct {
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	Group    string   `json:"group,omitempty"`
	X        float32  `json:"x,omitempty"`
	Y        float32  `json:"y,omitempty"`
	Width    float32  `json:"width"`
	Height   float32  `json:"height"`
	Rotation float32  `json:"rotation,omitempty"`
	ScaleX   *float32 `json:"scaleX,omitempty"`
	ScaleY   *float32 `json:"scaleY,omitempty"`
	ShearX   float32  `json:"shearX,omitempty"`
	OriginX  float32  `json:"originX,omitempty"`
	OriginY  float32  `json:"originY,omitempty"`
	Corners  int      `json:"corners,omitempty"`
	Fill     string   `json:"fill,omitempty"`
}

// Step is one scripted action. Which fields apply depends on Op. A select
// step names its targets or picks the component under At.
type Step struct {
	Op      string             `json:"op"`
	Targets []string           `json:"targets,omitempty"`
	Target  string             `json:"target,omitempty"`
	Handle  string             `json:"handle,omitempty"`
	At      *Point             `json:"at,omitempty"`
	From    *Point             `json:"from,omitempty"`
	To      *Point             `json:"to,omitempty"`
	Path    []Point            `json:"path,omitempty"`
	Precise bool               `json:"precise,omitempty"`
	Values  map[string]float32 `json:"values,omitempty"`
}

// Document is a parsed script.
type Document struct {
	Shapes []ShapeSpec `json:"shapes"`
	Steps  []Step      `json:"steps"`
}

// Error reports a failing step.
type Error struct {
	Step    int
	Op      string
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("step %d (%s): %s", e.Step+1, e.Op, e.Message) }

// Validate checks data against the script schema. All violations are joined.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validate script: %w", err)
	}
	if result.Valid() {
		return nil
	}
	errs := make([]error, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		errs = append(errs, errors.New(e.String()))
	}
	return errors.Join(errs...)
}

// Parse validates and decodes a script.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := Validate(data); err != nil {
		return doc, err
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("decode script: %w", err)
	}
	return doc, nil
}

// Load reads and parses the script at path.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read script: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return doc, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
