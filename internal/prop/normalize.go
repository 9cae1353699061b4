/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package prop

import "github.com/Flutterish/osu-framework-designer-sub000/internal/vector"

// Finite rejects NaN and ±Inf, keeping the previous value. It is the containment
// boundary for numeric blow-ups in the transform mutators.
func Finite(prev, next float32) float32 {
	if !vector.IsFinite(next) {
		return prev
	}
	return next
}

// FinitePt rejects a point if either component is not finite.
func FinitePt(prev, next vector.Pt) vector.Pt {
	if !next.Finite() {
		return prev
	}
	return next
}

// Clamp rejects non-finite input and clamps the rest to [lo, hi].
func Clamp(lo, hi float32) Normalizer[float32] {
	return func(prev, next float32) float32 {
		if !vector.IsFinite(next) {
			return prev
		}
		return min(max(next, lo), hi)
	}
}

// ClampInt clamps to [lo, hi], e.g. the corner count of a polygon.
func ClampInt(lo, hi int) Normalizer[int] {
	return func(_, next int) int { return min(max(next, lo), hi) }
}

// Chain applies normalizers in order; each one sees the original previous value.
func Chain[T any](ns ...Normalizer[T]) Normalizer[T] {
	return func(prev, next T) T {
		for _, n := range ns {
			if n != nil {
				next = n(prev, next)
			}
		}
		return next
	}
}
