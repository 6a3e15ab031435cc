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

package interp

import "math"

// Cubic B-spline kernel of the tensor-product spline, its first two
// derivatives and its antiderivative starting at -2. The kernel is
// supported on (-2,2) and takes the values 1, 4, 1 at -1, 0, 1.

func bspline(t float64) float64 {
	a := math.Abs(t)
	switch {
	case a < 1:
		return 4 - 6*t*t + 3*a*a*a
	case a < 2:
		d := 2 - a
		return d * d * d
	}
	return 0
}

func bsplineDerivative(t float64) float64 {
	a := math.Abs(t)
	switch {
	case a < 1:
		return -12*t + 9*t*a
	case a < 2:
		d := 2 - a
		return -3 * d * d * math.Copysign(1, t)
	}
	return 0
}

func bsplineSecondDerivative(t float64) float64 {
	a := math.Abs(t)
	switch {
	case a < 1:
		return -12 + 18*a
	case a < 2:
		return 6 * (2 - a)
	}
	return 0
}

func bsplineIntegral(s float64) float64 {
	switch {
	case s <= -2:
		return 0
	case s <= -1:
		d := 2 + s
		return d * d * d * d / 4
	case s <= 0:
		return 3 + 4*s - 2*s*s*s - 0.75*s*s*s*s
	case s <= 1:
		return 3 + 4*s - 2*s*s*s + 0.75*s*s*s*s
	case s < 2:
		d := 2 - s
		return 6 - d*d*d*d/4
	}
	return 6
}
