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

// Package distribution provides one dimensional probability distributions
// built from an analytic kernel, a truncation policy and a forcing policy.
package distribution

import (
	"math"

	"github.com/0xsoniclabs/crow/errkind"
)

// Scalar is a one dimensional distribution. A Scalar is not safe for
// concurrent mutation.
type Scalar struct {
	typ        Type
	params     Parameters
	kernel     kernel
	truncation TruncationMode
	forcing    ForcingMode
	forced     float64

	// cached untruncated cdf and survival at the bounds
	cdfLow, cdfHigh   float64
	survLow, survHigh float64
	// bounds in the upper tail are resolved through the survival function
	upper bool
}

// New builds a distribution of family t. Missing bounds default to the
// support of the kernel.
func New(t Type, params Parameters, opts ...Option) (*Scalar, error) {
	s := &Scalar{typ: t}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	p, err := completeParameters(t, params)
	if err != nil {
		return nil, err
	}
	if err := s.rebuild(p); err != nil {
		return nil, err
	}
	return s, nil
}

// rebuild validates p and installs the kernel it describes. On error the
// receiver is left untouched.
func (s *Scalar) rebuild(p Parameters) error {
	k, err := newKernel(s.typ, p)
	if err != nil {
		return err
	}
	lo, hi := k.support()
	if _, found := p[XMin]; !found {
		p[XMin] = lo
	}
	if _, found := p[XMax]; !found {
		p[XMax] = hi
	}
	xMin, xMax := p[XMin], p[XMax]
	if !(xMin <= xMax) {
		return errkind.Configf("%v distribution has inconsistent bounds [%v,%v]", s.typ, xMin, xMax)
	}
	cdfLow, cdfHigh := k.cdf(xMin), k.cdf(xMax)
	survLow, survHigh := survival(k, xMin), survival(k, xMax)
	_, tail := k.(upperTail)
	upper := tail && cdfLow > 0.5
	mass := cdfHigh - cdfLow
	if upper {
		mass = survLow - survHigh
	}
	if !k.discrete() && s.truncation == Renormalize && !(mass > 0) {
		return errkind.Configf("%v distribution has no probability mass in [%v,%v]", s.typ, xMin, xMax)
	}
	s.params = p
	s.kernel = k
	s.cdfLow, s.cdfHigh = cdfLow, cdfHigh
	s.survLow, s.survHigh = survLow, survHigh
	s.upper = upper
	return nil
}

// Type returns the family tag.
func (s *Scalar) Type() Type { return s.typ }

// Truncation returns the truncation mode.
func (s *Scalar) Truncation() TruncationMode { return s.truncation }

// Forcing returns the forcing mode and its constant.
func (s *Scalar) Forcing() (ForcingMode, float64) { return s.forcing, s.forced }

// Bounds returns the truncation bounds.
func (s *Scalar) Bounds() (float64, float64) { return s.params[XMin], s.params[XMax] }

// IsDiscrete reports whether the kernel is a discrete law.
func (s *Scalar) IsDiscrete() bool { return s.kernel.discrete() }

// Parameters returns a copy of the parameter map.
func (s *Scalar) Parameters() Parameters { return s.params.Clone() }

// VariableNames returns the parameter names in alphabetical order.
func (s *Scalar) VariableNames() []string { return s.params.Names() }

// Parameter returns the value of a named parameter.
func (s *Scalar) Parameter(name string) (float64, error) {
	v, found := s.params[name]
	if !found {
		return 0, errkind.Lookupf("%v distribution has no parameter %q", s.typ, name)
	}
	return v, nil
}

// UpdateParameter changes one parameter and rebuilds the kernel. The
// previous state is kept if the new value is invalid.
func (s *Scalar) UpdateParameter(name string, value float64) error {
	if _, found := s.params[name]; !found {
		return errkind.Lookupf("%v distribution has no parameter %q", s.typ, name)
	}
	if math.IsNaN(value) {
		return errkind.Configf("parameter %q of %v distribution is NaN", name, s.typ)
	}
	p := s.params.Clone()
	p[name] = value
	return s.rebuild(p)
}

func (s *Scalar) renormalized() bool {
	return s.truncation == Renormalize && !s.kernel.discrete()
}

// Pdf returns the density, or the probability mass for discrete kernels.
func (s *Scalar) Pdf(x float64) float64 {
	if !s.renormalized() {
		return s.kernel.pdf(x)
	}
	if x < s.params[XMin] || x > s.params[XMax] {
		return 0
	}
	return s.kernel.pdf(x) / s.mass()
}

// mass is the untruncated probability of [xMin,xMax].
func (s *Scalar) mass() float64 {
	if s.upper {
		return s.survLow - s.survHigh
	}
	return s.cdfHigh - s.cdfLow
}

// Cdf returns the cumulative probability of x.
func (s *Scalar) Cdf(x float64) float64 {
	if !s.renormalized() {
		return s.kernel.cdf(x)
	}
	if x <= s.params[XMin] {
		return 0
	}
	if x >= s.params[XMax] {
		return 1
	}
	if s.upper {
		return (s.survLow - survival(s.kernel, x)) / s.mass()
	}
	return (s.kernel.cdf(x) - s.cdfLow) / s.mass()
}

// Quantile returns the inverse of Cdf. The ends of [0,1] map to the bounds
// exactly.
func (s *Scalar) Quantile(p float64) (float64, error) {
	if !(p >= 0 && p <= 1) {
		return 0, errkind.Domainf("probability %v outside [0,1]", p)
	}
	if !s.renormalized() {
		switch {
		case s.kernel.discrete():
			return s.kernel.quantile(p), nil
		case p == 0:
			lo, _ := s.kernel.support()
			return lo, nil
		case p == 1:
			_, hi := s.kernel.support()
			return hi, nil
		}
		return s.kernel.quantile(p), nil
	}
	switch p {
	case 0:
		return s.params[XMin], nil
	case 1:
		return s.params[XMax], nil
	}
	var x float64
	if s.upper {
		r := s.survLow - p*s.mass()
		if r <= 0 || r >= 1 {
			return 0, errkind.Domainf("quantile of %v is not resolvable within [%v,%v]", p, s.params[XMin], s.params[XMax])
		}
		x = s.kernel.(upperTail).survivalQuantile(r)
	} else {
		q := s.cdfLow + p*s.mass()
		if q <= 0 || q >= 1 {
			// Bounds far in a tail lose all resolution in the untruncated cdf.
			return 0, errkind.Domainf("quantile of %v is not resolvable within [%v,%v]", p, s.params[XMin], s.params[XMax])
		}
		x = s.kernel.quantile(q)
	}
	return math.Min(math.Max(x, s.params[XMin]), s.params[XMax]), nil
}

// Random turns a uniform draw u into a sample honoring the forcing policy.
func (s *Scalar) Random(u float64) (float64, error) {
	switch s.forcing {
	case ForcedValue:
		return s.forced, nil
	case ForcedProbability:
		return s.Quantile(s.forced)
	}
	return s.Quantile(u)
}

// UntruncatedPdf returns the density of the kernel ignoring the bounds.
func (s *Scalar) UntruncatedPdf(x float64) float64 { return s.kernel.pdf(x) }

// UntruncatedCdf returns the cdf of the kernel ignoring the bounds.
func (s *Scalar) UntruncatedCdf(x float64) float64 { return s.kernel.cdf(x) }

// Mean, StdDev, Median and Mode describe the untruncated kernel.
func (s *Scalar) Mean() float64   { return s.kernel.mean() }
func (s *Scalar) StdDev() float64 { return s.kernel.stdDev() }
func (s *Scalar) Median() float64 { return s.kernel.median() }
func (s *Scalar) Mode() float64   { return s.kernel.mode() }

// Hazard returns pdf(x)/(1-cdf(x)).
func (s *Scalar) Hazard(x float64) (float64, error) {
	if s.typ == Constant {
		return 0, errkind.NotImplementedf("hazard of a constant distribution")
	}
	survival := 1 - s.Cdf(x)
	if survival <= 0 {
		return math.Inf(1), nil
	}
	return s.Pdf(x) / survival, nil
}
