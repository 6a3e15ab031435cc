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

package ndist

import (
	"math"

	"github.com/0xsoniclabs/crow/errkind"
)

const maxNewtonIterations = 100

// invert solves f(x) = p on [lo,hi] for a non-decreasing f with derivative
// df. Newton-Raphson steps leaving the current bracket are replaced by
// bisection.
func invert(f, df func(float64) (float64, error), p, lo, hi, tolerance float64) (float64, error) {
	if !(p >= 0 && p <= 1) {
		return 0, errkind.Domainf("probability %v outside [0,1]", p)
	}
	flo, err := f(lo)
	if err != nil {
		return 0, err
	}
	if p <= flo {
		return lo, nil
	}
	fhi, err := f(hi)
	if err != nil {
		return 0, err
	}
	if p >= fhi {
		return hi, nil
	}
	x := lo + (hi-lo)*(p-flo)/(fhi-flo)
	for range maxNewtonIterations {
		fx, err := f(x)
		if err != nil {
			return 0, err
		}
		r := fx - p
		if math.Abs(r) < tolerance {
			return x, nil
		}
		if r < 0 {
			lo = x
		} else {
			hi = x
		}
		d, err := df(x)
		if err != nil {
			return 0, err
		}
		next := x - r/d
		if d <= 0 || math.IsNaN(next) || next <= lo || next >= hi {
			next = (lo + hi) / 2
		}
		if math.Abs(next-x) < tolerance*math.Max(1, math.Abs(x)) {
			return next, nil
		}
		x = next
	}
	return x, nil
}
