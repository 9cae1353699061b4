/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "math"

// Rotations are free-ranging (720° is not 0°), so comparing two angles with plain
// subtraction is wrong. Use these helpers instead.

func Deg2Rad(deg float32) float32 { return float32(float64(deg) * math.Pi / 180) }
func Rad2Deg(rad float32) float32 { return float32(float64(rad) * 180 / math.Pi) }

// AngleDelta returns the signed shortest rotation from a to b, in radians, within [-π, π).
func AngleDelta(a, b float32) float32 {
	return float32(wrap(float64(b)-float64(a), 2*math.Pi))
}

// AngleDeltaDeg is AngleDelta for degrees, within [-180, 180).
func AngleDeltaDeg(a, b float32) float32 {
	return float32(wrap(float64(b)-float64(a), 360))
}

// AnglesNearDeg reports whether two degree angles point the same way within eps degrees.
func AnglesNearDeg(a, b, eps float32) bool {
	d := AngleDeltaDeg(a, b)
	return d <= eps && d >= -eps
}

func wrap(d, period float64) float64 {
	half := period / 2
	d = math.Mod(d+half, period)
	if d < 0 {
		d += period
	}
	return d - half
}
