// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package sampler

import (
	"math"

	"github.com/0xsoniclabs/crow/errkind"
)

// Pick selects an index of the weight vector with probability proportional
// to its weight. Weights are normalized to sum one, and the first index
// whose cumulative weight exceeds u is returned. If rounding leaves u
// above the total, the last index with a positive weight is returned.
func Pick(weights []float64, u float64) (int, error) {
	total := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return 0, errkind.Domainf("invalid weight %v at cell %d", w, i)
		}
		total += w
	}
	if total <= 0 {
		return 0, errkind.Domainf("all %d cells have zero probability weight", len(weights))
	}
	sum := 0.0 // Kahan's summation algorithm for the cumulative weight
	c := 0.0   // compensation term
	lastPositive := -1
	for i, w := range weights {
		y := w/total - c
		t := sum + y
		c = (t - sum) - y
		sum = t
		if w > 0 {
			if u < sum {
				return i, nil
			}
			lastPositive = i
		}
	}
	return lastPositive, nil
}
