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
	"sort"

	"github.com/0xsoniclabs/crow/errkind"
)

// Type is the tag of a scalar distribution family.
type Type string

const (
	Uniform     Type = "Uniform"
	Normal      Type = "Normal"
	LogNormal   Type = "LogNormal"
	Logistic    Type = "Logistic"
	Laplace     Type = "Laplace"
	Triangular  Type = "Triangular"
	Exponential Type = "Exponential"
	Weibull     Type = "Weibull"
	Gamma       Type = "Gamma"
	Beta        Type = "Beta"
	Poisson     Type = "Poisson"
	Binomial    Type = "Binomial"
	Bernoulli   Type = "Bernoulli"
	Geometric   Type = "Geometric"
	Constant    Type = "Constant"
)

// Names of the truncation bounds present in every parameter map.
const (
	XMin = "xMin"
	XMax = "xMax"
)

// parameterSpec describes one entry of a parameter map. Parameters without
// a default must be supplied by the caller.
type parameterSpec struct {
	name       string
	value      float64
	hasDefault bool
}

func required(name string) parameterSpec { return parameterSpec{name: name} }

func optional(name string, value float64) parameterSpec {
	return parameterSpec{name: name, value: value, hasDefault: true}
}

var typeParameters = map[Type][]parameterSpec{
	Uniform:     {required(XMin), required(XMax)},
	Normal:      {required("mu"), required("sigma")},
	LogNormal:   {required("mu"), required("sigma"), optional("low", 0)},
	Logistic:    {required("location"), required("scale")},
	Laplace:     {required("location"), required("scale")},
	Triangular:  {required("xPeak"), required("lowerBound"), required("upperBound")},
	Exponential: {required("lambda"), optional("low", 0)},
	Weibull:     {required("k"), required("lambda"), optional("low", 0)},
	Gamma:       {required("k"), optional("theta", 1), optional("low", 0)},
	Beta:        {required("alpha"), required("beta"), optional("scale", 1), optional("low", 0)},
	Poisson:     {required("mu")},
	Binomial:    {required("n"), required("p")},
	Bernoulli:   {required("p")},
	Geometric:   {required("p")},
	Constant:    {required("value")},
}

// Types returns all supported scalar families in alphabetical order.
func Types() []Type {
	types := make([]Type, 0, len(typeParameters))
	for t := range typeParameters {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// ParseType converts a family name into a type tag.
func ParseType(name string) (Type, error) {
	t := Type(name)
	if _, found := typeParameters[t]; !found {
		return "", errkind.Configf("unknown distribution type %q", name)
	}
	return t, nil
}

// Parameters maps parameter names to values. The set of keys of a
// distribution is fixed at construction; values are mutable.
type Parameters map[string]float64

// Clone returns a copy of the parameter map.
func (p Parameters) Clone() Parameters {
	c := make(Parameters, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// Names returns the parameter names in alphabetical order.
func (p Parameters) Names() []string {
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// completeParameters merges user parameters with the defaults of type t
// and rejects unknown or missing entries. The truncation bounds are always
// accepted; missing bounds are filled later from the kernel support.
func completeParameters(t Type, user Parameters) (Parameters, error) {
	specs, found := typeParameters[t]
	if !found {
		return nil, errkind.Configf("unknown distribution type %q", t)
	}
	known := map[string]bool{XMin: true, XMax: true}
	result := Parameters{}
	for _, spec := range specs {
		known[spec.name] = true
		if v, found := user[spec.name]; found {
			result[spec.name] = v
		} else if spec.hasDefault {
			result[spec.name] = spec.value
		} else {
			return nil, errkind.Configf("%v distribution requires parameter %q", t, spec.name)
		}
	}
	for _, name := range user.Names() {
		if !known[name] {
			return nil, errkind.Configf("%v distribution has no parameter %q", t, name)
		}
		v := user[name]
		if math.IsNaN(v) {
			return nil, errkind.Configf("parameter %q of %v distribution is NaN", name, t)
		}
		result[name] = v
	}
	return result, nil
}
