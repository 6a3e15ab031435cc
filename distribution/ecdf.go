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

package distribution

import (
	"math"

	"github.com/0xsoniclabs/crow/errkind"
	"github.com/cockroachdb/errors"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

const (
	// NumECDFPoints is the number of points kept after compressing a tabulated cdf.
	NumECDFPoints = 300

	// tailProbability bounds the tabulated range of distributions with an
	// infinite support.
	tailProbability = 1e-6
)

// ECDF is a piecewise linear approximation of a cdf over [Lower,Upper].
// Points are stored on the normalized domain [0,1]; the first point is
// (0,0) and the last is (1,1).
type ECDF struct {
	Lower, Upper float64
	Points       [][2]float64
}

// ToECDF tabulates the cdf of s at n+1 equidistant points and compresses
// the resulting line with the Visvalingam-Whyatt algorithm.
func ToECDF(s *Scalar, n int) (*ECDF, error) {
	if n < 2 {
		return nil, errkind.Configf("ECDF needs at least 2 intervals, got %d", n)
	}
	lo, hi, err := tabulationRange(s)
	if err != nil {
		return nil, err
	}
	ls := orb.LineString{}
	ls = append(ls, orb.Point{0.0, 0.0})
	for i := 1; i < n; i++ {
		u := float64(i) / float64(n)
		y := (s.Cdf(lo+u*(hi-lo)) - s.Cdf(lo)) / (s.Cdf(hi) - s.Cdf(lo))
		ls = append(ls, orb.Point{u, y})
	}
	ls = append(ls, orb.Point{1.0, 1.0})

	keep := NumECDFPoints
	if keep > len(ls) {
		keep = len(ls)
	}
	compressed := simplify.VisvalingamKeep(keep).Simplify(ls).(orb.LineString)
	f := &ECDF{Lower: lo, Upper: hi, Points: make([][2]float64, 0, len(compressed))}
	for i := range compressed {
		// drop flat segments so that the points are strictly increasing
		if i > 0 && i < len(compressed)-1 && compressed[i][1] <= f.Points[len(f.Points)-1][1] {
			continue
		}
		f.Points = append(f.Points, [2]float64(compressed[i]))
	}
	if err := f.Check(); err != nil {
		return nil, errors.Wrapf(err, "cannot tabulate %v distribution", s.Type())
	}
	return f, nil
}

// tabulationRange returns finite bounds covering the support of s.
func tabulationRange(s *Scalar) (float64, float64, error) {
	lo, hi := s.Bounds()
	var err error
	if math.IsInf(lo, -1) {
		if lo, err = s.Quantile(tailProbability); err != nil {
			return 0, 0, err
		}
	}
	if math.IsInf(hi, 1) {
		if hi, err = s.Quantile(1 - tailProbability); err != nil {
			return 0, 0, err
		}
	}
	if !(lo < hi) {
		return 0, 0, errkind.Domainf("%v distribution has a degenerate range [%v,%v]", s.Type(), lo, hi)
	}
	return lo, hi, nil
}

// Cdf evaluates the piecewise linear cdf.
func (f *ECDF) Cdf(x float64) float64 {
	u := (x - f.Lower) / (f.Upper - f.Lower)
	if u <= 0 {
		return 0.0
	}
	for i := range len(f.Points) - 1 {
		if f.Points[i+1][0] >= u {
			scale := (u - f.Points[i][0]) / (f.Points[i+1][0] - f.Points[i][0])
			return f.Points[i][1] + scale*(f.Points[i+1][1]-f.Points[i][1])
		}
	}
	return 1.0
}

// Quantile evaluates the inverse of the piecewise linear cdf.
func (f *ECDF) Quantile(y float64) float64 {
	if y <= 0 {
		return f.Lower
	}
	u := 1.0
	for i := range len(f.Points) - 1 {
		if f.Points[i+1][1] >= y {
			scale := (y - f.Points[i][1]) / (f.Points[i+1][1] - f.Points[i][1])
			u = f.Points[i][0] + scale*(f.Points[i+1][0]-f.Points[i][0])
			break
		}
	}
	return f.Lower + u*(f.Upper-f.Lower)
}

// Check whether the piecewise linear function is valid as a cdf.
func (f *ECDF) Check() error {
	if len(f.Points) < 2 {
		return errkind.Configf("ECDF must have at least start and end point")
	}
	if f.Points[0] != [2]float64{0.0, 0.0} {
		return errkind.Configf("ECDF must start at (0,0), but starts at (%v,%v)", f.Points[0][0], f.Points[0][1])
	}
	last := len(f.Points) - 1
	if f.Points[last] != [2]float64{1.0, 1.0} {
		return errkind.Configf("ECDF must end at (1,1), but ends at (%v,%v)", f.Points[last][0], f.Points[last][1])
	}
	for i := range len(f.Points) - 1 {
		if f.Points[i][0] >= f.Points[i+1][0] || f.Points[i][1] > f.Points[i+1][1] {
			return errkind.Configf("ECDF points must be monotonically increasing, but point %v (%v,%v) is not smaller than point %v (%v,%v)", i, f.Points[i][0], f.Points[i][1], i+1, f.Points[i+1][0], f.Points[i+1][1])
		}
	}
	return nil
}
