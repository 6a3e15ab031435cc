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

package registry

import "github.com/0xsoniclabs/crow/errkind"

// operations counted by the metrics
const (
	opPdf        = "pdf"
	opCdf        = "cdf"
	opInverseCdf = "inverse_cdf"
	opRandom     = "random"
	opCheckCdf   = "check_cdf"
)

// observe counts an evaluation and its failure.
func (r *Registry) observe(operation, family string, err error) {
	r.metrics.IncrementEvaluation(operation, family)
	if err != nil {
		r.metrics.IncrementFailure(operation, errkind.KindOf(err).String())
	}
}

// Pdf evaluates the density of a scalar distribution.
func (r *Registry) Pdf(alias string, x float64) (float64, error) {
	s, err := r.Scalar(alias)
	if err != nil {
		return 0, err
	}
	r.observe(opPdf, string(s.Type()), nil)
	return s.Pdf(x), nil
}

// Cdf evaluates the cdf of a scalar distribution.
func (r *Registry) Cdf(alias string, x float64) (float64, error) {
	s, err := r.Scalar(alias)
	if err != nil {
		return 0, err
	}
	r.observe(opCdf, string(s.Type()), nil)
	return s.Cdf(x), nil
}

// InverseCdf evaluates the quantile function of a scalar distribution.
func (r *Registry) InverseCdf(alias string, p float64) (float64, error) {
	s, err := r.Scalar(alias)
	if err != nil {
		return 0, err
	}
	x, err := s.Quantile(p)
	r.observe(opInverseCdf, string(s.Type()), err)
	return x, err
}

// Random samples a scalar distribution with the shared random source and
// updates the trigger state.
func (r *Registry) Random(alias string) (float64, error) {
	s, err := r.Scalar(alias)
	if err != nil {
		return 0, err
	}
	u := r.src.Float64()
	x, err := s.Random(u)
	r.observe(opRandom, string(s.Type()), err)
	if err != nil {
		return 0, err
	}
	if r.window != nil && r.window.contains(u, x) {
		r.trigger(alias)
	}
	return x, nil
}

// CheckCdf compares the cdf of a scalar distribution at x with a draw of
// the shared random source and triggers the distribution if the draw does
// not exceed it.
func (r *Registry) CheckCdf(alias string, x float64) (bool, error) {
	s, err := r.Scalar(alias)
	if err != nil {
		return false, err
	}
	r.observe(opCheckCdf, string(s.Type()), nil)
	return r.check(alias, s.Cdf(x)), nil
}

// PdfND evaluates the density of an N-dimensional distribution.
func (r *Registry) PdfND(alias string, x []float64) (float64, error) {
	d, err := r.ND(alias)
	if err != nil {
		return 0, err
	}
	v, err := d.Pdf(x)
	r.observe(opPdf, string(d.Type()), err)
	return v, err
}

// CdfND evaluates the cdf of an N-dimensional distribution.
func (r *Registry) CdfND(alias string, x []float64) (float64, error) {
	d, err := r.ND(alias)
	if err != nil {
		return 0, err
	}
	v, err := d.Cdf(x)
	r.observe(opCdf, string(d.Type()), err)
	return v, err
}

// InverseCdfND maps the draws f and g to a point of an N-dimensional
// distribution.
func (r *Registry) InverseCdfND(alias string, f, g float64) ([]float64, error) {
	d, err := r.ND(alias)
	if err != nil {
		return nil, err
	}
	x, err := d.InverseCdf(f, g)
	r.observe(opInverseCdf, string(d.Type()), err)
	return x, err
}

// RandomND samples an N-dimensional distribution with the shared random source.
func (r *Registry) RandomND(alias string) ([]float64, error) {
	d, err := r.ND(alias)
	if err != nil {
		return nil, err
	}
	x, err := d.Sample(r.src)
	r.observe(opRandom, string(d.Type()), err)
	return x, err
}

// CheckCdfND is the N-dimensional counterpart of CheckCdf.
func (r *Registry) CheckCdfND(alias string, x []float64) (bool, error) {
	d, err := r.ND(alias)
	if err != nil {
		return false, err
	}
	p, err := d.Cdf(x)
	r.observe(opCheckCdf, string(d.Type()), err)
	if err != nil {
		return false, err
	}
	return r.check(alias, p), nil
}

func (r *Registry) check(alias string, p float64) bool {
	if r.src.Float64() <= p {
		r.trigger(alias)
		return true
	}
	return false
}

// MarginalND evaluates the marginal cdf of an N-dimensional distribution
// along axis.
func (r *Registry) MarginalND(alias string, x float64, axis int) (float64, error) {
	d, err := r.ND(alias)
	if err != nil {
		return 0, err
	}
	v, err := d.Marginal(x, axis)
	r.observe(opCdf, string(d.Type()), err)
	return v, err
}

// InverseMarginalND inverts the marginal cdf of an N-dimensional
// distribution along axis.
func (r *Registry) InverseMarginalND(alias string, p float64, axis int) (float64, error) {
	d, err := r.ND(alias)
	if err != nil {
		return 0, err
	}
	v, err := d.InverseMarginal(p, axis)
	r.observe(opInverseCdf, string(d.Type()), err)
	return v, err
}
