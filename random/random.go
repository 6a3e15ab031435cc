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

// Package random provides the seedable engine that drives every sampling
// operation of the distribution engine.
package random

import (
	"golang.org/x/exp/rand"
)

// DefaultSeed is the seed of a generator created without an explicit seed.
const DefaultSeed = 1

//go:generate mockgen -source random.go -destination random_mock.go -package random

// Source draws uniform random numbers.
type Source interface {
	// Seed resets the engine to a reproducible state.
	Seed(seed uint64)
	// Float64 draws a number uniformly distributed in [0,1).
	Float64() float64
}

// Generator is a Source backed by a PCG engine.
type Generator struct {
	rg *rand.Rand
}

// NewGenerator creates a generator seeded with the given value.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rg: rand.New(rand.NewSource(seed))}
}

// Seed resets the engine.
func (g *Generator) Seed(seed uint64) {
	g.rg.Seed(seed)
}

// Float64 draws a number uniformly distributed in [0,1).
func (g *Generator) Float64() float64 {
	return g.rg.Float64()
}
