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

	"github.com/0xsoniclabs/crow/config"
	"github.com/0xsoniclabs/crow/distribution"
	"github.com/0xsoniclabs/crow/errkind"
	"github.com/0xsoniclabs/crow/interp"
	"github.com/0xsoniclabs/crow/lattice"
	"github.com/0xsoniclabs/crow/random"
	"github.com/0xsoniclabs/crow/sampler"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// half width of the tabulated box in standard deviations
	boxWidth = 6.0
	// singular values below this fraction of the largest are dropped
	singularTolerance = 1e-12
)

// CovarianceType tells how reduced-rank samples are placed around the mean.
type CovarianceType int

const (
	// Absolute samples are mean + X·z.
	Absolute CovarianceType = iota
	// Relative samples are mean·(1 + X·z) per component.
	Relative
)

// ParseCovarianceType converts "abs" or "rel" into a covariance type.
func ParseCovarianceType(s string) (CovarianceType, error) {
	switch s {
	case "abs", "absolute":
		return Absolute, nil
	case "rel", "relative":
		return Relative, nil
	}
	return 0, errkind.Configf("unknown covariance type %q, expected abs or rel", s)
}

// MultivariateNormal is a normal distribution with mean mu and covariance
// sigma. In full mode the cdf is a spline fitted to the integral of the
// density tabulated over mu ± 6σ. In reduced mode samples are drawn from
// the leading principal components of sigma.
type MultivariateNormal struct {
	base
	mu    []float64
	sigma *mat.SymDense

	// full rank
	chol       mat.Cholesky
	choleskyOK bool
	inverse    *mat.SymDense
	det        float64
	cdf        *interp.Spline

	// reduced rank
	rank      int
	covType   CovarianceType
	transform *mat.Dense // N×rank
	singular  []float64
}

// MVNOption customizes a multivariate normal distribution.
type MVNOption func(*MultivariateNormal)

// WithRank switches to reduced-rank sampling on the given number of
// principal components.
func WithRank(rank int, covType CovarianceType) MVNOption {
	return func(d *MultivariateNormal) {
		d.rank = rank
		d.covType = covType
	}
}

// NewMultivariateNormal creates the distribution from the mean and the
// covariance given as a flat row-major vector of N² values.
func NewMultivariateNormal(mu, covariance []float64, cfg *config.Config, src random.Source, opts ...MVNOption) (*MultivariateNormal, error) {
	b, err := newBase(cfg, src)
	if err != nil {
		return nil, err
	}
	n := len(mu)
	if n == 0 {
		return nil, errkind.Configf("mean vector is empty")
	}
	if len(covariance) != n*n {
		return nil, errkind.Configf("covariance of a %d-dimensional normal needs %d values, got %d", n, n*n, len(covariance))
	}
	d := &MultivariateNormal{base: b, mu: append([]float64(nil), mu...)}
	for _, opt := range opts {
		opt(d)
	}
	if d.rank < 0 || d.rank > n {
		return nil, errkind.Configf("rank %d out of range [1,%d]", d.rank, n)
	}

	allZero := true
	sym := mat.NewSymDense(n, nil)
	for i := range n {
		for j := i; j < n; j++ {
			v := (covariance[i*n+j] + covariance[j*n+i]) / 2
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errkind.Configf("covariance entry (%d,%d) is not finite", i, j)
			}
			if v != 0 {
				allZero = false
			}
			sym.SetSym(i, j, v)
		}
	}
	if allZero {
		return nil, errkind.Configf("covariance matrix is zero")
	}
	d.sigma = sym

	for i := range n {
		if v := sym.At(i, i); v < 0 || (d.rank == 0 && v == 0) {
			return nil, errkind.Configf("variance of component %d is not positive", i)
		}
	}

	d.choleskyOK = d.chol.Factorize(sym)
	if d.choleskyOK {
		d.det = d.chol.Det()
		d.inverse = mat.NewSymDense(n, nil)
		if err := d.chol.InverseTo(d.inverse); err != nil {
			d.choleskyOK = false
		}
	}

	if d.rank > 0 {
		if err := d.reduce(); err != nil {
			return nil, err
		}
		// degenerate components get a zero-width box
		d.setBox()
		return d, nil
	}
	if !d.choleskyOK {
		return nil, errkind.Configf("covariance matrix is not positive definite")
	}
	d.setBox()
	if err := d.tabulateCdf(cfg); err != nil {
		return nil, err
	}
	return d, nil
}

// setBox spans mu ± 6σ of every marginal.
func (d *MultivariateNormal) setBox() {
	n := len(d.mu)
	d.lower = make([]float64, n)
	d.upper = make([]float64, n)
	for i := range n {
		s := d.marginalStdDev(i)
		d.lower[i] = d.mu[i] - boxWidth*s
		d.upper[i] = d.mu[i] + boxWidth*s
	}
}

// reduce computes the transform X = U·sqrt(S) restricted to the leading
// rank singular directions.
func (d *MultivariateNormal) reduce() error {
	var svd mat.SVD
	if ok := svd.Factorize(d.sigma, mat.SVDFull); !ok {
		return errkind.Configf("singular value decomposition of the covariance failed")
	}
	values := svd.Values(nil)
	var u mat.Dense
	svd.UTo(&u)
	n := len(d.mu)
	d.singular = make([]float64, d.rank)
	d.transform = mat.NewDense(n, d.rank, nil)
	for j := range d.rank {
		s := values[j]
		if s < singularTolerance*values[0] {
			s = 0
		}
		d.singular[j] = s
		for i := range n {
			d.transform.Set(i, j, u.At(i, j)*math.Sqrt(s))
		}
	}
	return nil
}

// tabulateCdf fits a spline to the density over the box and derives the cdf
// spline from its integral.
func (d *MultivariateNormal) tabulateCdf(cfg *config.Config) error {
	n := len(d.mu)
	shape := lattice.Uniform(n, cfg.CdfDivisions+1)
	size, err := lattice.Size(shape, cfg.MaxSplineNodes)
	if err != nil {
		return err
	}
	axes := make([][]float64, n)
	for i := range axes {
		axes[i] = make([]float64, cfg.CdfDivisions+1)
		for k := range axes[i] {
			axes[i][k] = d.lower[i] + (d.upper[i]-d.lower[i])*float64(k)/float64(cfg.CdfDivisions)
		}
	}
	values := make([]float64, size)
	x := make([]float64, n)
	err = lattice.ForEach(shape, func(index []int) error {
		for i, k := range index {
			x[i] = axes[i][k]
		}
		v, err := d.Pdf(x)
		values[lattice.Flatten(index, shape)] = v
		return err
	})
	if err != nil {
		return err
	}
	pdf, err := interp.NewSpline(axes, values)
	if err != nil {
		return err
	}
	if d.cdf, err = pdf.IntegralSpline(); err != nil {
		return err
	}
	return d.cdf.CheckRange(0, 1, d.cdfTolerance)
}

func (d *MultivariateNormal) Type() Type { return MultivariateNormalType }

// Mean returns the mean vector.
func (d *MultivariateNormal) Mean() []float64 { return d.mu }

// Covariance returns the symmetrized covariance matrix.
func (d *MultivariateNormal) Covariance() *mat.SymDense { return d.sigma }

// Rank returns the number of principal components used for sampling, or
// zero in full mode.
func (d *MultivariateNormal) Rank() int { return d.rank }

// Determinant returns det(sigma).
func (d *MultivariateNormal) Determinant() (float64, error) {
	if !d.choleskyOK {
		return 0, errkind.Domainf("covariance matrix is singular")
	}
	return d.det, nil
}

// CholeskyFactor returns the lower triangular L with L·Lᵀ = sigma.
func (d *MultivariateNormal) CholeskyFactor() (*mat.TriDense, error) {
	if !d.choleskyOK {
		return nil, errkind.Domainf("covariance matrix is singular")
	}
	var l mat.TriDense
	d.chol.LTo(&l)
	return &l, nil
}

// TransformMatrix returns the N×rank matrix mapping principal components
// onto coordinates.
func (d *MultivariateNormal) TransformMatrix() (*mat.Dense, error) {
	if d.rank == 0 {
		return nil, errkind.NotImplementedf("transform matrix of a full-rank normal")
	}
	return d.transform, nil
}

// SingularValues returns the retained singular values of sigma.
func (d *MultivariateNormal) SingularValues() []float64 { return d.singular }

// CoordinateTransformed maps a vector of rank standard normal components
// onto a point.
func (d *MultivariateNormal) CoordinateTransformed(z []float64) ([]float64, error) {
	if d.rank == 0 {
		return nil, errkind.NotImplementedf("coordinate transform of a full-rank normal")
	}
	if len(z) != d.rank {
		return nil, errkind.Configf("need %d components, got %d", d.rank, len(z))
	}
	var y mat.VecDense
	y.MulVec(d.transform, mat.NewVecDense(d.rank, append([]float64(nil), z...)))
	x := make([]float64, len(d.mu))
	for i := range x {
		if d.covType == Relative {
			x[i] = d.mu[i] * (1 + y.AtVec(i))
		} else {
			x[i] = d.mu[i] + y.AtVec(i)
		}
	}
	return x, nil
}

// Pdf returns the density (2π)^(-N/2)·det^(-1/2)·exp(-½(x-μ)ᵀΣ⁻¹(x-μ)).
func (d *MultivariateNormal) Pdf(x []float64) (float64, error) {
	if err := d.checkPoint(x); err != nil {
		return 0, err
	}
	if !d.choleskyOK {
		return 0, errkind.Domainf("density of a singular covariance matrix")
	}
	n := len(x)
	delta := mat.NewVecDense(n, nil)
	for i := range x {
		delta.SetVec(i, x[i]-d.mu[i])
	}
	q := mat.Inner(delta, d.inverse, delta)
	return math.Pow(2*math.Pi, -float64(n)/2) / math.Sqrt(d.det) * math.Exp(-q/2), nil
}

func (d *MultivariateNormal) Cdf(x []float64) (float64, error) {
	if err := d.checkPoint(x); err != nil {
		return 0, err
	}
	if d.cdf == nil {
		return 0, errkind.NotImplementedf("cdf of a reduced-rank normal")
	}
	v, err := d.cdf.Evaluate(x)
	if err != nil {
		return 0, err
	}
	return d.probability(v, x)
}

func (d *MultivariateNormal) InverseCdf(f, g float64) ([]float64, error) {
	if d.cdf == nil {
		return nil, errkind.NotImplementedf("inverse cdf of a reduced-rank normal")
	}
	return d.inverseCdf(sampler.CDFFunc(d.Cdf), f, g, d.src)
}

// Sample draws from the cdf grid in full mode and from the principal
// components in reduced mode.
func (d *MultivariateNormal) Sample(src random.Source) ([]float64, error) {
	if d.rank == 0 {
		return d.inverseCdf(sampler.CDFFunc(d.Cdf), src.Float64(), src.Float64(), src)
	}
	z := make([]float64, d.rank)
	for i := range z {
		u := src.Float64()
		for u == 0 {
			u = src.Float64()
		}
		z[i] = distuv.UnitNormal.Quantile(u)
	}
	return d.CoordinateTransformed(z)
}

// marginalStdDev is the standard deviation of one component. In reduced
// mode it is the norm of the transform row, so components outside the
// retained subspace shrink accordingly.
func (d *MultivariateNormal) marginalStdDev(axis int) float64 {
	if d.rank == 0 {
		return math.Sqrt(d.sigma.At(axis, axis))
	}
	s := floats.Norm(d.transform.RawRowView(axis), 2)
	if d.covType == Relative {
		s *= math.Abs(d.mu[axis])
	}
	return s
}

// Marginal returns the analytic cdf of one component. A component with
// zero variance is a step at its mean.
func (d *MultivariateNormal) Marginal(x float64, axis int) (float64, error) {
	if err := d.checkAxis(axis); err != nil {
		return 0, err
	}
	s := d.marginalStdDev(axis)
	if s == 0 {
		if x < d.mu[axis] {
			return 0, nil
		}
		return 1, nil
	}
	return distuv.Normal{Mu: d.mu[axis], Sigma: s}.CDF(x), nil
}

func (d *MultivariateNormal) InverseMarginal(p float64, axis int) (float64, error) {
	if err := d.checkAxis(axis); err != nil {
		return 0, err
	}
	if !(p >= 0 && p <= 1) {
		return 0, errkind.Domainf("probability %v outside [0,1]", p)
	}
	s := d.marginalStdDev(axis)
	if s == 0 {
		return d.mu[axis], nil
	}
	return distuv.Normal{Mu: d.mu[axis], Sigma: s}.Quantile(p), nil
}

func (d *MultivariateNormal) Parameters() distribution.Parameters {
	p := d.base.Parameters()
	p["rank"] = float64(d.rank)
	return p
}

func (d *MultivariateNormal) UpdateParameter(name string, value float64) error {
	if name == "rank" {
		return errkind.Configf("parameter %q is read-only", name)
	}
	return d.base.UpdateParameter(name, value)
}
