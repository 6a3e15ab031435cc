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
	"gonum.org/v1/gonum/stat/distuv"
)

// kernel is the untruncated law of a scalar family.
type kernel interface {
	pdf(x float64) float64
	cdf(x float64) float64
	// quantile expects p in (0,1).
	quantile(p float64) float64
	support() (float64, float64)
	mean() float64
	stdDev() float64
	median() float64
	mode() float64
	discrete() bool
}

// upperTail is implemented by kernels that resolve 1-cdf beyond the
// precision of cdf near 1.
type upperTail interface {
	survival(x float64) float64
	// survivalQuantile expects s in (0,1) and returns x with survival(x) = s.
	survivalQuantile(s float64) float64
}

// survival returns 1-cdf of k, accurately where k supports it.
func survival(k kernel, x float64) float64 {
	if t, ok := k.(upperTail); ok {
		return t.survival(x)
	}
	return 1 - k.cdf(x)
}

// newKernel validates the parameters of family t and builds its kernel.
func newKernel(t Type, p Parameters) (kernel, error) {
	positive := func(names ...string) error {
		for _, name := range names {
			if !(p[name] > 0) || math.IsInf(p[name], 1) {
				return errkind.Configf("parameter %q of %v distribution must be positive and finite, got %v", name, t, p[name])
			}
		}
		return nil
	}
	probability := func(name string) error {
		if v := p[name]; !(v >= 0 && v <= 1) {
			return errkind.Configf("parameter %q of %v distribution must be in [0,1], got %v", name, t, v)
		}
		return nil
	}

	switch t {
	case Uniform:
		lo, hi := p[XMin], p[XMax]
		if math.IsInf(lo, 0) || math.IsInf(hi, 0) || !(lo < hi) {
			return nil, errkind.Configf("uniform distribution needs finite xMin < xMax, got [%v,%v]", lo, hi)
		}
		return uniformKernel{distuv.Uniform{Min: lo, Max: hi}}, nil
	case Normal:
		if err := positive("sigma"); err != nil {
			return nil, err
		}
		return normalKernel{distuv.Normal{Mu: p["mu"], Sigma: p["sigma"]}}, nil
	case LogNormal:
		if err := positive("sigma"); err != nil {
			return nil, err
		}
		return logNormalKernel{dist: distuv.LogNormal{Mu: p["mu"], Sigma: p["sigma"]}, low: p["low"]}, nil
	case Logistic:
		if err := positive("scale"); err != nil {
			return nil, err
		}
		return logisticKernel{distuv.Logistic{Mu: p["location"], S: p["scale"]}}, nil
	case Laplace:
		if err := positive("scale"); err != nil {
			return nil, err
		}
		return laplaceKernel{distuv.Laplace{Mu: p["location"], Scale: p["scale"]}}, nil
	case Triangular:
		a, b, c := p["lowerBound"], p["upperBound"], p["xPeak"]
		if !(a < b) || c < a || c > b || math.IsInf(a, 0) || math.IsInf(b, 0) {
			return nil, errkind.Configf("triangular distribution needs lowerBound <= xPeak <= upperBound with lowerBound < upperBound, got %v, %v, %v", a, c, b)
		}
		return triangularKernel{distuv.NewTriangle(a, b, c, nil)}, nil
	case Exponential:
		if err := positive("lambda"); err != nil {
			return nil, err
		}
		return exponentialKernel{dist: distuv.Exponential{Rate: p["lambda"]}, low: p["low"]}, nil
	case Weibull:
		if err := positive("k", "lambda"); err != nil {
			return nil, err
		}
		return weibullKernel{dist: distuv.Weibull{K: p["k"], Lambda: p["lambda"]}, low: p["low"]}, nil
	case Gamma:
		if err := positive("k", "theta"); err != nil {
			return nil, err
		}
		return gammaKernel{dist: distuv.Gamma{Alpha: p["k"], Beta: 1 / p["theta"]}, low: p["low"]}, nil
	case Beta:
		if err := positive("alpha", "beta", "scale"); err != nil {
			return nil, err
		}
		return betaKernel{dist: distuv.Beta{Alpha: p["alpha"], Beta: p["beta"]}, scale: p["scale"], low: p["low"]}, nil
	case Poisson:
		if err := positive("mu"); err != nil {
			return nil, err
		}
		return poissonKernel{distuv.Poisson{Lambda: p["mu"]}}, nil
	case Binomial:
		n := p["n"]
		if !(n >= 1) || n != math.Floor(n) || math.IsInf(n, 1) {
			return nil, errkind.Configf("parameter \"n\" of binomial distribution must be a positive integer, got %v", n)
		}
		if err := probability("p"); err != nil {
			return nil, err
		}
		return binomialKernel{distuv.Binomial{N: n, P: p["p"]}}, nil
	case Bernoulli:
		if err := probability("p"); err != nil {
			return nil, err
		}
		return bernoulliKernel{p: p["p"]}, nil
	case Geometric:
		if v := p["p"]; !(v > 0 && v <= 1) {
			return nil, errkind.Configf("parameter \"p\" of geometric distribution must be in (0,1], got %v", v)
		}
		return geometricKernel{p: p["p"]}, nil
	case Constant:
		if v := p["value"]; math.IsInf(v, 0) {
			return nil, errkind.Configf("constant distribution needs a finite value, got %v", v)
		}
		return constantKernel{value: p["value"]}, nil
	}
	return nil, errkind.Configf("unknown distribution type %q", t)
}
