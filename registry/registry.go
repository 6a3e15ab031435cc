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

// Package registry keeps the distributions of a simulation under string
// aliases and evaluates them by alias with a shared random source.
// A Registry is not safe for concurrent use.
package registry

import (
	"sort"
	"time"

	"github.com/0xsoniclabs/crow/config"
	"github.com/0xsoniclabs/crow/distribution"
	"github.com/0xsoniclabs/crow/errkind"
	"github.com/0xsoniclabs/crow/logger"
	"github.com/0xsoniclabs/crow/ndist"
	"github.com/0xsoniclabs/crow/random"
)

// Registry owns scalar and N-dimensional distributions by alias.
type Registry struct {
	cfg     *config.Config
	log     logger.Logger
	src     random.Source
	metrics *Metrics

	scalars map[string]*distribution.Scalar
	nds     map[string]ndist.Distribution

	window        *Window
	triggered     map[string]bool
	lastTriggered string
}

// Option customizes a registry.
type Option func(*Registry)

// WithSource replaces the random source created from the configured seed.
func WithSource(src random.Source) Option {
	return func(r *Registry) {
		r.src = src
	}
}

// WithMetrics records evaluations in m.
func WithMetrics(m *Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// New creates an empty registry.
func New(cfg *config.Config, log logger.Logger, opts ...Option) (*Registry, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewLogger(cfg.LogLevel, "Registry")
	}
	r := &Registry{
		cfg:       cfg,
		log:       log,
		scalars:   make(map[string]*distribution.Scalar),
		nds:       make(map[string]ndist.Distribution),
		triggered: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.src == nil {
		r.src = random.NewGenerator(cfg.RandomSeed)
	}
	return r, nil
}

// Source returns the random source shared by all distributions.
func (r *Registry) Source() random.Source { return r.src }

// Seed resets the shared random source.
func (r *Registry) Seed(seed uint64) {
	r.src.Seed(seed)
}

// RandomDraw returns a uniform draw of the shared random source.
func (r *Registry) RandomDraw() float64 {
	return r.src.Float64()
}

// IsEmpty reports whether no distribution is registered.
func (r *Registry) IsEmpty() bool {
	return len(r.scalars) == 0 && len(r.nds) == 0
}

// Reset removes all distributions and trigger state.
func (r *Registry) Reset() {
	r.log.Noticef("Removing %d scalar and %d multivariate distributions", len(r.scalars), len(r.nds))
	r.scalars = make(map[string]*distribution.Scalar)
	r.nds = make(map[string]ndist.Distribution)
	r.ResetTriggers()
	r.metrics.ResetDistributions()
}

func (r *Registry) checkAlias(alias string) error {
	if alias == "" {
		return errkind.Configf("distribution alias must not be empty")
	}
	if r.exists(alias) {
		return errkind.Configf("distribution %q is already registered", alias)
	}
	return nil
}

func (r *Registry) exists(alias string) bool {
	_, scalar := r.scalars[alias]
	_, nd := r.nds[alias]
	return scalar || nd
}

// AddScalar creates and registers a scalar distribution.
func (r *Registry) AddScalar(typ distribution.Type, alias string, params distribution.Parameters, opts ...distribution.Option) (*distribution.Scalar, error) {
	if err := r.checkAlias(alias); err != nil {
		return nil, err
	}
	s, err := distribution.New(typ, params, opts...)
	if err != nil {
		return nil, err
	}
	r.scalars[alias] = s
	r.metrics.AddDistribution(string(typ), 1)
	r.log.Infof("Added %v distribution %q with parameters %v", typ, alias, s.Parameters())
	return s, nil
}

// AddND registers an existing N-dimensional distribution.
func (r *Registry) AddND(alias string, d ndist.Distribution) error {
	if err := r.checkAlias(alias); err != nil {
		return err
	}
	if d == nil {
		return errkind.Configf("distribution %q is nil", alias)
	}
	r.nds[alias] = d
	r.metrics.AddDistribution(string(d.Type()), 1)
	r.log.Infof("Added %v distribution %q of dimension %d", d.Type(), alias, d.Dim())
	return nil
}

// AddMultivariate builds an N-dimensional distribution from spec and
// registers it.
func (r *Registry) AddMultivariate(spec NDSpec) (ndist.Distribution, error) {
	if err := r.checkAlias(spec.Alias); err != nil {
		return nil, err
	}
	start := time.Now()
	d, err := spec.build(r.cfg, r.src)
	if err != nil {
		return nil, err
	}
	hours, minutes, seconds := logger.ParseTime(time.Since(start))
	r.log.Infof("Built %v distribution %q in %vh %vm %vs", spec.Type, spec.Alias, hours, minutes, seconds)
	if err := r.AddND(spec.Alias, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Scalar returns the scalar distribution registered under alias.
func (r *Registry) Scalar(alias string) (*distribution.Scalar, error) {
	s, found := r.scalars[alias]
	if !found {
		if _, nd := r.nds[alias]; nd {
			return nil, errkind.Lookupf("distribution %q is multivariate, not scalar", alias)
		}
		return nil, errkind.Lookupf("distribution %q not found", alias)
	}
	return s, nil
}

// ND returns the N-dimensional distribution registered under alias.
func (r *Registry) ND(alias string) (ndist.Distribution, error) {
	d, found := r.nds[alias]
	if !found {
		if _, scalar := r.scalars[alias]; scalar {
			return nil, errkind.Lookupf("distribution %q is scalar, not multivariate", alias)
		}
		return nil, errkind.Lookupf("distribution %q not found", alias)
	}
	return d, nil
}

// Type returns the family name of the distribution registered under alias.
func (r *Registry) Type(alias string) (string, error) {
	if s, found := r.scalars[alias]; found {
		return string(s.Type()), nil
	}
	if d, found := r.nds[alias]; found {
		return string(d.Type()), nil
	}
	return "", errkind.Lookupf("distribution %q not found", alias)
}

// Dimensionality returns 1 for scalar distributions and the number of
// coordinates for N-dimensional ones.
func (r *Registry) Dimensionality(alias string) (int, error) {
	if _, found := r.scalars[alias]; found {
		return 1, nil
	}
	if d, found := r.nds[alias]; found {
		return d.Dim(), nil
	}
	return 0, errkind.Lookupf("distribution %q not found", alias)
}

// DistributionNames returns all aliases in lexical order.
func (r *Registry) DistributionNames() []string {
	names := make([]string, 0, len(r.scalars)+len(r.nds))
	for alias := range r.scalars {
		names = append(names, alias)
	}
	for alias := range r.nds {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) parameters(alias string) (distribution.Parameters, error) {
	if s, found := r.scalars[alias]; found {
		return s.Parameters(), nil
	}
	if d, found := r.nds[alias]; found {
		return d.Parameters(), nil
	}
	return nil, errkind.Lookupf("distribution %q not found", alias)
}

// VariableNames returns the parameter names of the distribution under alias.
func (r *Registry) VariableNames(alias string) ([]string, error) {
	params, err := r.parameters(alias)
	if err != nil {
		return nil, err
	}
	return params.Names(), nil
}

// Variable returns a parameter of the distribution under alias.
func (r *Registry) Variable(alias, name string) (float64, error) {
	params, err := r.parameters(alias)
	if err != nil {
		return 0, err
	}
	v, found := params[name]
	if !found {
		return 0, errkind.Lookupf("distribution %q has no parameter %q", alias, name)
	}
	return v, nil
}

// UpdateVariable changes a parameter of the distribution under alias.
func (r *Registry) UpdateVariable(alias, name string, value float64) error {
	if s, found := r.scalars[alias]; found {
		return s.UpdateParameter(name, value)
	}
	if d, found := r.nds[alias]; found {
		return d.UpdateParameter(name, value)
	}
	return errkind.Lookupf("distribution %q not found", alias)
}
