/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gesture

import "fmt"

// Handle names the part of the selection box being dragged.
type Handle int

const (
	HandleLeft Handle = iota
	HandleRight
	HandleTop
	HandleBottom
	HandleTopLeft
	HandleTopRight
	HandleBottomLeft
	HandleBottomRight
	HandleMove
	HandleRotate
	HandleOrigin
	HandleShearTop
	HandleShearBottom
	HandleShearLeft
	HandleShearRight
)

var handleNames = [...]string{
	HandleLeft:        "left",
	HandleRight:       "right",
	HandleTop:         "top",
	HandleBottom:      "bottom",
	HandleTopLeft:     "topLeft",
	HandleTopRight:    "topRight",
	HandleBottomLeft:  "bottomLeft",
	HandleBottomRight: "bottomRight",
	HandleMove:        "move",
	HandleRotate:      "rotate",
	HandleOrigin:      "origin",
	HandleShearTop:    "shearTop",
	HandleShearBottom: "shearBottom",
	HandleShearLeft:   "shearLeft",
	HandleShearRight:  "shearRight",
}

func (h Handle) String() string {
	if h < 0 || int(h) >= len(handleNames) {
		return fmt.Sprintf("Handle(%d)", int(h))
	}
	return handleNames[h]
}

// HandleNames lists every handle name in declaration order.
func HandleNames() []string { return append([]string(nil), handleNames[:]...) }

func ParseHandle(s string) (Handle, error) {
	for i, n := range handleNames {
		if n == s {
			return Handle(i), nil
		}
	}
	return 0, fmt.Errorf("unknown handle %q", s)
}

// edges decomposes an edge or corner handle into the edges it moves.
func (h Handle) edges() (left, right, top, bottom bool) {
	switch h {
	case HandleLeft:
		left = true
	case HandleRight:
		right = true
	case HandleTop:
		top = true
	case HandleBottom:
		bottom = true
	case HandleTopLeft:
		top, left = true, true
	case HandleTopRight:
		top, right = true, true
	case HandleBottomLeft:
		bottom, left = true, true
	case HandleBottomRight:
		bottom, right = true, true
	}
	return
}

func (h Handle) isEdge() bool  { return h >= HandleLeft && h <= HandleBottomRight }
func (h Handle) isShear() bool { return h >= HandleShearTop && h <= HandleShearRight }
