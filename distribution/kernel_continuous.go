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

type uniformKernel struct{ dist distuv.Uniform }

func (k uniformKernel) pdf(x float64) float64      { return k.dist.Prob(x) }
func (k uniformKernel) cdf(x float64) float64      { return k.dist.CDF(x) }
func (k uniformKernel) quantile(p float64) float64 { return k.dist.Quantile(p) }
func (k uniformKernel) support() (float64, float64) {
	return k.dist.Min, k.dist.Max
}
func (k uniformKernel) mean() float64   { return k.dist.Mean() }
func (k uniformKernel) stdDev() float64 { return k.dist.StdDev() }
func (k uniformKernel) median() float64 { return k.dist.Median() }

// mode of a uniform law is any point of the support; the midpoint is reported.
func (k uniformKernel) mode() float64  { return k.dist.Median() }
func (k uniformKernel) discrete() bool { return false }

type normalKernel struct{ dist distuv.Normal }

func (k normalKernel) pdf(x float64) float64      { return k.dist.Prob(x) }
func (k normalKernel) cdf(x float64) float64      { return k.dist.CDF(x) }
func (k normalKernel) quantile(p float64) float64 { return k.dist.Quantile(p) }
func (k normalKernel) support() (float64, float64) {
	return math.Inf(-1), math.Inf(1)
}
func (k normalKernel) mean() float64   { return k.dist.Mu }
func (k normalKernel) stdDev() float64 { return k.dist.Sigma }
func (k normalKernel) median() float64 { return k.dist.Mu }
func (k normalKernel) mode() float64   { return k.dist.Mu }
func (k normalKernel) discrete() bool  { return false }

// symmetric laws mirror the lower tail
func (k normalKernel) survival(x float64) float64         { return k.dist.CDF(2*k.dist.Mu - x) }
func (k normalKernel) survivalQuantile(s float64) float64 { return 2*k.dist.Mu - k.dist.Quantile(s) }

// logNormalKernel is a log-normal law shifted to start at low.
type logNormalKernel struct {
	dist distuv.LogNormal
	low  float64
}

func (k logNormalKernel) pdf(x float64) float64 {
	if x <= k.low {
		return 0
	}
	return k.dist.Prob(x - k.low)
}

func (k logNormalKernel) cdf(x float64) float64 {
	if x <= k.low {
		return 0
	}
	return k.dist.CDF(x - k.low)
}

func (k logNormalKernel) quantile(p float64) float64 { return k.low + k.dist.Quantile(p) }
func (k logNormalKernel) support() (float64, float64) {
	return k.low, math.Inf(1)
}
func (k logNormalKernel) mean() float64   { return k.low + k.dist.Mean() }
func (k logNormalKernel) stdDev() float64 { return k.dist.StdDev() }
func (k logNormalKernel) median() float64 { return k.low + k.dist.Median() }
func (k logNormalKernel) mode() float64   { return k.low + k.dist.Mode() }
func (k logNormalKernel) discrete() bool  { return false }

type logisticKernel struct{ dist distuv.Logistic }

func (k logisticKernel) pdf(x float64) float64      { return k.dist.Prob(x) }
func (k logisticKernel) cdf(x float64) float64      { return k.dist.CDF(x) }
func (k logisticKernel) quantile(p float64) float64 { return k.dist.Quantile(p) }
func (k logisticKernel) support() (float64, float64) {
	return math.Inf(-1), math.Inf(1)
}
func (k logisticKernel) mean() float64   { return k.dist.Mu }
func (k logisticKernel) stdDev() float64 { return k.dist.StdDev() }
func (k logisticKernel) median() float64 { return k.dist.Mu }
func (k logisticKernel) mode() float64   { return k.dist.Mu }
func (k logisticKernel) discrete() bool  { return false }

func (k logisticKernel) survival(x float64) float64         { return k.dist.CDF(2*k.dist.Mu - x) }
func (k logisticKernel) survivalQuantile(s float64) float64 { return 2*k.dist.Mu - k.dist.Quantile(s) }

type laplaceKernel struct{ dist distuv.Laplace }

func (k laplaceKernel) pdf(x float64) float64      { return k.dist.Prob(x) }
func (k laplaceKernel) cdf(x float64) float64      { return k.dist.CDF(x) }
func (k laplaceKernel) quantile(p float64) float64 { return k.dist.Quantile(p) }
func (k laplaceKernel) support() (float64, float64) {
	return math.Inf(-1), math.Inf(1)
}
func (k laplaceKernel) mean() float64   { return k.dist.Mu }
func (k laplaceKernel) stdDev() float64 { return k.dist.StdDev() }
func (k laplaceKernel) median() float64 { return k.dist.Mu }
func (k laplaceKernel) mode() float64   { return k.dist.Mu }
func (k laplaceKernel) discrete() bool  { return false }

func (k laplaceKernel) survival(x float64) float64         { return k.dist.CDF(2*k.dist.Mu - x) }
func (k laplaceKernel) survivalQuantile(s float64) float64 { return 2*k.dist.Mu - k.dist.Quantile(s) }

type triangularKernel struct{ dist distuv.Triangle }

func (k triangularKernel) pdf(x float64) float64      { return k.dist.Prob(x) }
func (k triangularKernel) cdf(x float64) float64      { return k.dist.CDF(x) }
func (k triangularKernel) quantile(p float64) float64 { return k.dist.Quantile(p) }
func (k triangularKernel) support() (float64, float64) {
	// The bounds are reported by the quantile function at its ends.
	return k.dist.Quantile(0), k.dist.Quantile(1)
}
func (k triangularKernel) mean() float64   { return k.dist.Mean() }
func (k triangularKernel) stdDev() float64 { return k.dist.StdDev() }
func (k triangularKernel) median() float64 { return k.dist.Median() }
func (k triangularKernel) mode() float64   { return k.dist.Mode() }
func (k triangularKernel) discrete() bool  { return false }

// exponentialKernel is an exponential law shifted to start at low.
type exponentialKernel struct {
	dist distuv.Exponential
	low  float64
}

func (k exponentialKernel) pdf(x float64) float64 {
	if x < k.low {
		return 0
	}
	return k.dist.Prob(x - k.low)
}

func (k exponentialKernel) cdf(x float64) float64 {
	if x <= k.low {
		return 0
	}
	return k.dist.CDF(x - k.low)
}

func (k exponentialKernel) quantile(p float64) float64 { return k.low + k.dist.Quantile(p) }
func (k exponentialKernel) support() (float64, float64) {
	return k.low, math.Inf(1)
}
func (k exponentialKernel) mean() float64   { return k.low + k.dist.Mean() }
func (k exponentialKernel) stdDev() float64 { return k.dist.StdDev() }
func (k exponentialKernel) median() float64 { return k.low + k.dist.Median() }
func (k exponentialKernel) mode() float64   { return k.low }
func (k exponentialKernel) discrete() bool  { return false }

func (k exponentialKernel) survival(x float64) float64 {
	if x <= k.low {
		return 1
	}
	return k.dist.Survival(x - k.low)
}

func (k exponentialKernel) survivalQuantile(s float64) float64 {
	return k.low - math.Log(s)/k.dist.Rate
}

// weibullKernel is a Weibull law shifted to start at low.
type weibullKernel struct {
	dist distuv.Weibull
	low  float64
}

func (k weibullKernel) pdf(x float64) float64 {
	if x < k.low {
		return 0
	}
	return k.dist.Prob(x - k.low)
}

func (k weibullKernel) cdf(x float64) float64 {
	if x <= k.low {
		return 0
	}
	return k.dist.CDF(x - k.low)
}

func (k weibullKernel) quantile(p float64) float64 { return k.low + k.dist.Quantile(p) }
func (k weibullKernel) support() (float64, float64) {
	return k.low, math.Inf(1)
}
func (k weibullKernel) mean() float64   { return k.low + k.dist.Mean() }
func (k weibullKernel) stdDev() float64 { return k.dist.StdDev() }
func (k weibullKernel) median() float64 { return k.low + k.dist.Median() }
func (k weibullKernel) mode() float64   { return k.low + k.dist.Mode() }
func (k weibullKernel) discrete() bool  { return false }

func (k weibullKernel) survival(x float64) float64 {
	if x <= k.low {
		return 1
	}
	return k.dist.Survival(x - k.low)
}

func (k weibullKernel) survivalQuantile(s float64) float64 {
	return k.low + k.dist.Lambda*math.Pow(-math.Log(s), 1/k.dist.K)
}

// gammaKernel is a gamma law with shape k and scale theta shifted to start at low.
type gammaKernel struct {
	dist distuv.Gamma
	low  float64
}

func (k gammaKernel) pdf(x float64) float64 {
	if x < k.low {
		return 0
	}
	return k.dist.Prob(x - k.low)
}

func (k gammaKernel) cdf(x float64) float64 {
	if x <= k.low {
		return 0
	}
	return k.dist.CDF(x - k.low)
}

func (k gammaKernel) quantile(p float64) float64 { return k.low + k.dist.Quantile(p) }
func (k gammaKernel) support() (float64, float64) {
	return k.low, math.Inf(1)
}
func (k gammaKernel) mean() float64   { return k.low + k.dist.Mean() }
func (k gammaKernel) stdDev() float64 { return k.dist.StdDev() }
func (k gammaKernel) median() float64 { return k.quantile(0.5) }
func (k gammaKernel) mode() float64   { return k.low + k.dist.Mode() }
func (k gammaKernel) discrete() bool  { return false }

// betaKernel is a beta law stretched onto [low, low+scale].
type betaKernel struct {
	dist  distuv.Beta
	scale float64
	low   float64
}

func (k betaKernel) pdf(x float64) float64 {
	y := (x - k.low) / k.scale
	if y < 0 || y > 1 {
		return 0
	}
	return k.dist.Prob(y) / k.scale
}

func (k betaKernel) cdf(x float64) float64 {
	y := (x - k.low) / k.scale
	if y <= 0 {
		return 0
	}
	if y >= 1 {
		return 1
	}
	return k.dist.CDF(y)
}

func (k betaKernel) quantile(p float64) float64 { return k.low + k.scale*k.dist.Quantile(p) }
func (k betaKernel) support() (float64, float64) {
	return k.low, k.low + k.scale
}
func (k betaKernel) mean() float64   { return k.low + k.scale*k.dist.Mean() }
func (k betaKernel) stdDev() float64 { return k.scale * k.dist.StdDev() }
func (k betaKernel) median() float64 { return k.quantile(0.5) }
func (k betaKernel) mode() float64   { return k.low + k.scale*k.dist.Mode() }
func (k betaKernel) discrete() bool  { return false }
