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

import (
	"math"

	"github.com/0xsoniclabs/crow/errkind"
	"github.com/0xsoniclabs/crow/lattice"
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/lapack/gonum"
)

// relative tolerance on the spacing of axis nodes
const spacingTolerance = 1e-9

// Spline is a tensor-product cubic spline through the values of a
// rectilinear grid with uniformly spaced nodes along each axis. Values
// are stored row-major with the last axis varying fastest.
type Spline struct {
	axes   [][]float64
	lower  []float64
	upper  []float64
	step   []float64
	shape  []int // number of nodes per axis
	values []float64

	coeffShape []int // number of coefficients per axis, nodes+2
	coeffs     []float64

	nearest *Nearest
}

// SplineOption customizes the boundary conditions of a spline.
type SplineOption func(*splineOptions)

type splineOptions struct {
	alpha, beta []float64
}

// WithBoundaryDerivatives sets the second derivatives at the lower (alpha)
// and upper (beta) end of each axis. Zero values give a natural spline.
func WithBoundaryDerivatives(alpha, beta []float64) SplineOption {
	return func(o *splineOptions) {
		o.alpha = alpha
		o.beta = beta
	}
}

// NewSpline fits a spline to the grid spanned by axes.
func NewSpline(axes [][]float64, values []float64, opts ...SplineOption) (*Spline, error) {
	dim := len(axes)
	if dim == 0 {
		return nil, errkind.Configf("spline needs at least one axis")
	}
	o := splineOptions{alpha: make([]float64, dim), beta: make([]float64, dim)}
	for _, opt := range opts {
		opt(&o)
	}
	if len(o.alpha) != dim || len(o.beta) != dim {
		return nil, errkind.Configf("spline needs %d boundary derivatives per end, got %d and %d", dim, len(o.alpha), len(o.beta))
	}

	s := &Spline{
		axes:       make([][]float64, dim),
		lower:      make([]float64, dim),
		upper:      make([]float64, dim),
		step:       make([]float64, dim),
		shape:      make([]int, dim),
		coeffShape: make([]int, dim),
	}
	for i, axis := range axes {
		if err := checkAxis(i, axis); err != nil {
			return nil, err
		}
		n := len(axis)
		s.axes[i] = append([]float64(nil), axis...)
		s.lower[i] = axis[0]
		s.upper[i] = axis[n-1]
		s.step[i] = (axis[n-1] - axis[0]) / float64(n-1)
		s.shape[i] = n
		s.coeffShape[i] = n + 2
	}
	size, err := lattice.Size(s.shape, 0)
	if err != nil {
		return nil, err
	}
	if len(values) != size {
		return nil, errkind.Configf("grid of shape %v needs %d values, got %d", s.shape, size, len(values))
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errkind.Configf("grid value %d is not finite: %v", i, v)
		}
	}
	s.values = append([]float64(nil), values...)

	// fit axis by axis, each pass replacing the node count of one axis by
	// its coefficient count
	coeffs := s.values
	current := append([]int(nil), s.shape...)
	for axis := range dim {
		if coeffs, err = s.fitAxis(coeffs, current, axis, o.alpha[axis], o.beta[axis]); err != nil {
			return nil, err
		}
		current[axis] = s.coeffShape[axis]
	}
	s.coeffs = coeffs

	points := make([][]float64, 0, size)
	err = lattice.ForEach(s.shape, func(index []int) error {
		points = append(points, s.node(index))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.nearest, err = NewNearest(points, s.values); err != nil {
		return nil, err
	}
	return s, nil
}

func checkAxis(i int, axis []float64) error {
	n := len(axis)
	if n < 2 {
		return errkind.Configf("axis %d needs at least 2 nodes, got %d", i, n)
	}
	h := (axis[n-1] - axis[0]) / float64(n-1)
	for j := 1; j < n; j++ {
		if !(axis[j] > axis[j-1]) {
			return errkind.Configf("axis %d is not strictly increasing at node %d", i, j)
		}
		if math.Abs(axis[j]-axis[j-1]-h) > spacingTolerance*math.Max(1, math.Abs(h)) {
			return errkind.Configf("axis %d is not uniformly spaced at node %d", i, j)
		}
	}
	return nil
}

// fitAxis solves the one dimensional interpolation problem along axis for
// every combination of the other axes. data has the given shape; the
// result has the coefficient count in place of the node count of axis.
func (s *Spline) fitAxis(data []float64, shape []int, axis int, alpha, beta float64) ([]float64, error) {
	outer, inner := 1, 1
	for i := 0; i < axis; i++ {
		outer *= shape[i]
	}
	for i := axis + 1; i < len(shape); i++ {
		inner *= shape[i]
	}
	m := shape[axis] // nodes
	n := m - 1       // intervals
	h := s.step[axis]
	lowCorr := alpha * h * h / 6
	highCorr := beta * h * h / 6

	result := make([]float64, outer*(n+3)*inner)
	unknowns := n - 1
	rhs := make([]float64, unknowns*inner)
	dl := make([]float64, max(unknowns-1, 0))
	d := make([]float64, unknowns)
	du := make([]float64, max(unknowns-1, 0))
	impl := gonum.Implementation{}

	for o := range outer {
		in := data[o*m*inner : (o+1)*m*inner]
		out := result[o*(n+3)*inner : (o+1)*(n+3)*inner]
		y := func(j, c int) float64 { return in[j*inner+c] }
		set := func(k, c int, v float64) { out[k*inner+c] = v }
		get := func(k, c int) float64 { return out[k*inner+c] }

		for c := range inner {
			set(1, c, (y(0, c)-lowCorr)/6)
			set(n+1, c, (y(n, c)-highCorr)/6)
		}
		if unknowns > 0 {
			for j := 1; j <= unknowns; j++ {
				for c := range inner {
					v := y(j, c)
					if j == 1 {
						v -= get(1, c)
					}
					if j == unknowns {
						v -= get(n+1, c)
					}
					rhs[(j-1)*inner+c] = v
				}
			}
			// Dgtsv overwrites its diagonals
			for i := range d {
				d[i] = 4
			}
			for i := range dl {
				dl[i] = 1
				du[i] = 1
			}
			if ok := impl.Dgtsv(unknowns, inner, dl, d, du, rhs, inner); !ok {
				return nil, errors.AssertionFailedf("tridiagonal system of axis %d is singular", axis)
			}
			for j := 0; j < unknowns; j++ {
				for c := range inner {
					set(j+2, c, rhs[j*inner+c])
				}
			}
		}
		for c := range inner {
			set(0, c, lowCorr+2*get(1, c)-get(2, c))
			set(n+2, c, highCorr+2*get(n+1, c)-get(n, c))
		}
	}
	return result, nil
}

// Dim returns the number of axes.
func (s *Spline) Dim() int { return len(s.axes) }

// Axes returns the node coordinates of every axis.
func (s *Spline) Axes() [][]float64 { return s.axes }

// Values returns the fitted grid values.
func (s *Spline) Values() []float64 { return s.values }

// Bounds returns the lower and upper corner of the grid.
func (s *Spline) Bounds() ([]float64, []float64) { return s.lower, s.upper }

// Shape returns the number of nodes per axis.
func (s *Spline) Shape() []int { return s.shape }

func (s *Spline) node(index []int) []float64 {
	x := make([]float64, len(index))
	for i, k := range index {
		x[i] = s.axes[i][k]
	}
	return x
}

// Contains reports whether x lies inside the grid extent.
func (s *Spline) Contains(x []float64) bool {
	for i, v := range x {
		if v < s.lower[i] || v > s.upper[i] {
			return false
		}
	}
	return true
}

func (s *Spline) checkDim(x []float64) error {
	if len(x) != len(s.axes) {
		return errkind.Configf("point has dimension %d, spline has %d", len(x), len(s.axes))
	}
	return nil
}

// localWeights computes, for one axis, the first coefficient index and the
// weights of the four coefficients whose kernels cover x.
func (s *Spline) localWeights(axis int, x float64, kernel func(float64) float64) (int, []float64) {
	n := s.shape[axis] - 1
	t := (x - s.lower[axis]) / s.step[axis]
	l := int(math.Floor(t))
	l = min(max(l, 0), n-1)
	w := make([]float64, 4)
	for j := range w {
		w[j] = kernel(t - float64(l+j) + 1)
	}
	return l, w
}

// contract sums coeffs weighted by the tensor product of per-axis weights
// starting at the given coefficient offsets.
func (s *Spline) contract(offsets []int, weights [][]float64) float64 {
	lens := make([]int, len(weights))
	for i, w := range weights {
		lens[i] = len(w)
	}
	index := make([]int, len(offsets))
	sum := 0.0
	_ = lattice.ForEach(lens, func(local []int) error {
		p := 1.0
		for i, j := range local {
			p *= weights[i][j]
			index[i] = offsets[i] + j
		}
		if p != 0 {
			sum += p * s.coeffs[lattice.Flatten(index, s.coeffShape)]
		}
		return nil
	})
	return sum
}

// Evaluate interpolates at x. Points outside the grid extent take the value
// of the nearest grid node.
func (s *Spline) Evaluate(x []float64) (float64, error) {
	if err := s.checkDim(x); err != nil {
		return 0, err
	}
	if !s.Contains(x) {
		return s.nearest.Value(x)
	}
	return s.PartialDerivative(x, make([]int, len(x)))
}

// PartialDerivative evaluates the mixed partial derivative of the spline at
// x, differentiating orders[i] times (0, 1 or 2) along axis i. Outside the
// grid extent every derivative is zero.
func (s *Spline) PartialDerivative(x []float64, orders []int) (float64, error) {
	if err := s.checkDim(x); err != nil {
		return 0, err
	}
	if len(orders) != len(x) {
		return 0, errkind.Configf("need %d derivative orders, got %d", len(x), len(orders))
	}
	if !s.Contains(x) {
		return 0, nil
	}
	offsets := make([]int, len(x))
	weights := make([][]float64, len(x))
	for i, v := range x {
		var kernel func(float64) float64
		scale := 1.0
		switch orders[i] {
		case 0:
			kernel = bspline
		case 1:
			kernel = bsplineDerivative
			scale = 1 / s.step[i]
		case 2:
			kernel = bsplineSecondDerivative
			scale = 1 / (s.step[i] * s.step[i])
		default:
			return 0, errkind.NotImplementedf("derivative of order %d", orders[i])
		}
		offsets[i], weights[i] = s.localWeights(i, v, kernel)
		for j := range weights[i] {
			weights[i][j] *= scale
		}
	}
	return s.contract(offsets, weights), nil
}

// Integral integrates the spline over the box between the lower grid
// corner and x. Coordinates are clamped to the grid extent.
func (s *Spline) Integral(x []float64) (float64, error) {
	if err := s.checkDim(x); err != nil {
		return 0, err
	}
	offsets := make([]int, len(x))
	weights := make([][]float64, len(x))
	for i, v := range x {
		t := (math.Min(math.Max(v, s.lower[i]), s.upper[i]) - s.lower[i]) / s.step[i]
		// coefficients k with support reaching into [0,t]
		last := min(int(math.Floor(t))+3, s.coeffShape[i]-1)
		weights[i] = make([]float64, last+1)
		for k := range weights[i] {
			weights[i][k] = s.step[i] * (bsplineIntegral(t-float64(k)+1) - bsplineIntegral(-float64(k)+1))
		}
	}
	return s.contract(offsets, weights), nil
}

// IntegralSpline fits a new spline to the integral of s evaluated at every
// grid node.
func (s *Spline) IntegralSpline() (*Spline, error) {
	values := make([]float64, len(s.values))
	err := lattice.ForEach(s.shape, func(index []int) error {
		v, err := s.Integral(s.node(index))
		if err != nil {
			return err
		}
		values[lattice.Flatten(index, s.shape)] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewSpline(s.axes, values)
}

// DerivativeSpline fits a new spline to the mixed first partial derivative
// of s evaluated at every grid node.
func (s *Spline) DerivativeSpline() (*Spline, error) {
	orders := lattice.Uniform(len(s.axes), 1)
	values := make([]float64, len(s.values))
	err := lattice.ForEach(s.shape, func(index []int) error {
		v, err := s.PartialDerivative(s.node(index), orders)
		if err != nil {
			return err
		}
		values[lattice.Flatten(index, s.shape)] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewSpline(s.axes, values)
}

// CheckRange verifies that every grid value lies in [lo-tolerance,
// hi+tolerance].
func (s *Spline) CheckRange(lo, hi, tolerance float64) error {
	for i, v := range s.values {
		if v < lo-tolerance || v > hi+tolerance {
			index := make([]int, len(s.shape))
			lattice.Unflatten(i, s.shape, index)
			return errkind.Domainf("grid value %v at node %v is outside [%v,%v]", v, s.node(index), lo, hi)
		}
	}
	return nil
}
