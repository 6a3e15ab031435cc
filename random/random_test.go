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

package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestGenerator_Reproducible(t *testing.T) {
	a := NewGenerator(42)
	b := NewGenerator(42)
	for range 100 {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestGenerator_SeedResets(t *testing.T) {
	g := NewGenerator(7)
	first := []float64{g.Float64(), g.Float64(), g.Float64()}
	g.Seed(7)
	for i := range first {
		assert.Equal(t, first[i], g.Float64())
	}
}

func TestGenerator_Range(t *testing.T) {
	g := NewGenerator(DefaultSeed)
	for range 10000 {
		u := g.Float64()
		if u < 0 || u >= 1 {
			t.Fatalf("draw %v out of [0,1)", u)
		}
	}
}

// TestGenerator_Uniformity performs a chi-squared test over ten equal buckets.
func TestGenerator_Uniformity(t *testing.T) {
	g := NewGenerator(999)
	const buckets = 10
	const numSteps = 100000
	counts := make([]float64, buckets)
	for range numSteps {
		counts[int(g.Float64()*buckets)]++
	}
	expected := float64(numSteps) / buckets
	chi2 := 0.0
	for _, c := range counts {
		chi2 += (c - expected) * (c - expected) / expected
	}
	critical := distuv.ChiSquared{K: buckets - 1}.Quantile(0.999)
	if chi2 > critical {
		t.Fatalf("generator is biased: chi2=%v critical=%v", chi2, critical)
	}
}
