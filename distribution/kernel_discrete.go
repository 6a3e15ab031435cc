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

	"gonum.org/v1/gonum/stat/distuv"
)

func isInteger(x float64) bool { return x == math.Floor(x) }

type poissonKernel struct{ dist distuv.Poisson }

func (k poissonKernel) pdf(x float64) float64 { return k.dist.Prob(x) }
func (k poissonKernel) cdf(x float64) float64 { return k.dist.CDF(x) }

// quantile returns the smallest count whose cumulative mass reaches p.
func (k poissonKernel) quantile(p float64) float64 {
	if p >= 1 {
		return math.Inf(1)
	}
	prev := -1.0
	for n := 0.0; ; n++ {
		c := k.cdf(n)
		// stop once the cdf saturates below p beyond the mean
		if c >= p || (c == prev && n > k.dist.Lambda) {
			return n
		}
		prev = c
	}
}

func (k poissonKernel) support() (float64, float64) { return 0, math.Inf(1) }
func (k poissonKernel) mean() float64               { return k.dist.Mean() }
func (k poissonKernel) stdDev() float64             { return k.dist.StdDev() }
func (k poissonKernel) median() float64             { return k.quantile(0.5) }
func (k poissonKernel) mode() float64               { return math.Floor(k.dist.Lambda) }
func (k poissonKernel) discrete() bool              { return true }

type binomialKernel struct{ dist distuv.Binomial }

func (k binomialKernel) pdf(x float64) float64 {
	if x < 0 || x > k.dist.N || !isInteger(x) {
		return 0
	}
	switch k.dist.P {
	case 0:
		if x == 0 {
			return 1
		}
		return 0
	case 1:
		if x == k.dist.N {
			return 1
		}
		return 0
	}
	return k.dist.Prob(x)
}

func (k binomialKernel) cdf(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x >= k.dist.N {
		return 1
	}
	switch k.dist.P {
	case 0:
		return 1
	case 1:
		return 0
	}
	return k.dist.CDF(x)
}

func (k binomialKernel) quantile(p float64) float64 {
	for n := 0.0; n < k.dist.N; n++ {
		if k.cdf(n) >= p {
			return n
		}
	}
	return k.dist.N
}

func (k binomialKernel) support() (float64, float64) { return 0, k.dist.N }
func (k binomialKernel) mean() float64               { return k.dist.Mean() }
func (k binomialKernel) stdDev() float64             { return k.dist.StdDev() }
func (k binomialKernel) median() float64             { return k.quantile(0.5) }
func (k binomialKernel) mode() float64 {
	return math.Min(math.Floor((k.dist.N+1)*k.dist.P), k.dist.N)
}
func (k binomialKernel) discrete() bool { return true }

type bernoulliKernel struct{ p float64 }

func (k bernoulliKernel) pdf(x float64) float64 {
	switch x {
	case 0:
		return 1 - k.p
	case 1:
		return k.p
	}
	return 0
}

func (k bernoulliKernel) cdf(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x < 1:
		return 1 - k.p
	}
	return 1
}

func (k bernoulliKernel) quantile(p float64) float64 {
	if p <= 1-k.p {
		return 0
	}
	return 1
}

func (k bernoulliKernel) support() (float64, float64) { return 0, 1 }
func (k bernoulliKernel) mean() float64               { return k.p }
func (k bernoulliKernel) stdDev() float64             { return math.Sqrt(k.p * (1 - k.p)) }
func (k bernoulliKernel) median() float64             { return k.quantile(0.5) }
func (k bernoulliKernel) mode() float64 {
	if k.p > 0.5 {
		return 1
	}
	return 0
}
func (k bernoulliKernel) discrete() bool { return true }

// geometricKernel counts the failures before the first success.
type geometricKernel struct{ p float64 }

func (k geometricKernel) pdf(x float64) float64 {
	if x < 0 || !isInteger(x) {
		return 0
	}
	return k.p * math.Pow(1-k.p, x)
}

func (k geometricKernel) cdf(x float64) float64 {
	if x < 0 {
		return 0
	}
	return 1 - math.Pow(1-k.p, math.Floor(x)+1)
}

func (k geometricKernel) quantile(p float64) float64 {
	if k.p == 1 || p <= k.p {
		return 0
	}
	if p >= 1 {
		return math.Inf(1)
	}
	n := math.Ceil(math.Log1p(-p)/math.Log1p(-k.p) - 1)
	// Guard against rounding in the logarithms.
	for n > 0 && k.cdf(n-1) >= p {
		n--
	}
	for k.cdf(n) < p {
		n++
	}
	return n
}

func (k geometricKernel) support() (float64, float64) { return 0, math.Inf(1) }
func (k geometricKernel) mean() float64               { return (1 - k.p) / k.p }
func (k geometricKernel) stdDev() float64             { return math.Sqrt(1-k.p) / k.p }
func (k geometricKernel) median() float64             { return k.quantile(0.5) }
func (k geometricKernel) mode() float64               { return 0 }
func (k geometricKernel) discrete() bool              { return true }

// constantKernel is a point mass.
type constantKernel struct{ value float64 }

func (k constantKernel) pdf(x float64) float64 {
	if x == k.value {
		return 1
	}
	return 0
}

func (k constantKernel) cdf(x float64) float64 {
	if x < k.value {
		return 0
	}
	return 1
}

func (k constantKernel) quantile(float64) float64    { return k.value }
func (k constantKernel) support() (float64, float64) { return k.value, k.value }
func (k constantKernel) mean() float64               { return k.value }
func (k constantKernel) stdDev() float64             { return 0 }
func (k constantKernel) median() float64             { return k.value }
func (k constantKernel) mode() float64               { return k.value }
func (k constantKernel) discrete() bool              { return true }
