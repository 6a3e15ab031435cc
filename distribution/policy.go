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
	"fmt"
	"math"

	"github.com/0xsoniclabs/crow/errkind"
)

// TruncationMode selects how the bounds [xMin,xMax] act on a kernel.
type TruncationMode int

const (
	// Renormalize restricts the support to the bounds and rescales the
	// density so that it integrates to one over them.
	Renormalize TruncationMode = iota
	// Untruncated ignores the bounds for evaluation and sampling.
	Untruncated
)

func (m TruncationMode) String() string {
	switch m {
	case Renormalize:
		return "renormalize"
	case Untruncated:
		return "untruncated"
	}
	return fmt.Sprintf("TruncationMode(%d)", int(m))
}

// ForcingMode selects what a sample request returns.
type ForcingMode int

const (
	NoForcing ForcingMode = iota
	// ForcedValue returns a fixed value for every sample.
	ForcedValue
	// ForcedProbability returns the quantile of a fixed probability.
	ForcedProbability
)

func (m ForcingMode) String() string {
	switch m {
	case NoForcing:
		return "none"
	case ForcedValue:
		return "value"
	case ForcedProbability:
		return "probability"
	}
	return fmt.Sprintf("ForcingMode(%d)", int(m))
}

// Option customizes a scalar distribution at construction.
type Option func(*Scalar) error

// WithTruncation sets the truncation mode. The default is Renormalize.
func WithTruncation(mode TruncationMode) Option {
	return func(s *Scalar) error {
		if mode != Renormalize && mode != Untruncated {
			return errkind.Configf("unknown truncation mode %v", mode)
		}
		s.truncation = mode
		return nil
	}
}

// WithForcedValue makes every sample return v.
func WithForcedValue(v float64) Option {
	return func(s *Scalar) error {
		if math.IsNaN(v) {
			return errkind.Configf("forced value must not be NaN")
		}
		s.forcing = ForcedValue
		s.forced = v
		return nil
	}
}

// WithForcedProbability makes every sample return the quantile of p.
func WithForcedProbability(p float64) Option {
	return func(s *Scalar) error {
		if !(p >= 0 && p <= 1) {
			return errkind.Configf("forced probability must be in [0,1], got %v", p)
		}
		s.forcing = ForcedProbability
		s.forced = p
		return nil
	}
}
