/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"math"
	"testing"
)

func TestAngleDeltaDeg(t *testing.T) {
	cases := []struct{ a, b, want float32 }{
		{0, 10, 10},
		{350, 10, 20},
		{10, 350, -20},
		{720, 0, 0},
		{-90, 630, 0},
		{0, 180, -180},
		{45, 44, -1},
	}
	for _, c := range cases {
		if got := AngleDeltaDeg(c.a, c.b); !near(got, c.want, 1e-4) {
			t.Errorf("AngleDeltaDeg(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestAngleDeltaRadians(t *testing.T) {
	got := AngleDelta(0, 7)
	if !near(got, float32(7-2*math.Pi), 1e-5) {
		t.Fatalf("AngleDelta(0, 7) = %v", got)
	}
	if got := AngleDelta(0.1, -0.1); !near(got, -0.2, 1e-6) {
		t.Fatalf("AngleDelta(0.1, -0.1) = %v", got)
	}
}

func TestAnglesNearDeg(t *testing.T) {
	if !AnglesNearDeg(359.99, 0, 0.05) {
		t.Fatalf("expected 359.99° ≈ 0°")
	}
	if AnglesNearDeg(90, 270, 1) {
		t.Fatalf("90° and 270° are not near")
	}
}

func TestDegRadConversions(t *testing.T) {
	if got := Rad2Deg(Deg2Rad(123.5)); !near(got, 123.5, 1e-4) {
		t.Fatalf("round trip deg->rad->deg = %v", got)
	}
}
