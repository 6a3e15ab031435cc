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

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts the work done by a registry. A nil *Metrics records nothing.
type Metrics struct {
	// Evaluations by operation (pdf, cdf, inverse_cdf, random, check_cdf) and family
	Evaluations *prometheus.CounterVec

	// Failed evaluations by operation and error kind
	Failures *prometheus.CounterVec

	// Trigger events by alias
	Triggers *prometheus.CounterVec

	// Registered distributions by family
	Distributions *prometheus.GaugeVec
}

// NewMetrics creates the registry metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "crow_evaluations_total",
			Help: "Total distribution evaluations by operation and family",
		}, []string{"operation", "family"}),

		Failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "crow_evaluation_failures_total",
			Help: "Total failed distribution evaluations by operation and error kind",
		}, []string{"operation", "kind"}),

		Triggers: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "crow_triggers_total",
			Help: "Total trigger events by distribution alias",
		}, []string{"alias"}),

		Distributions: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "crow_distributions",
			Help: "Number of registered distributions by family",
		}, []string{"family"}),
	}
}

// IncrementEvaluation records one evaluation.
func (m *Metrics) IncrementEvaluation(operation, family string) {
	if m != nil {
		m.Evaluations.WithLabelValues(operation, family).Inc()
	}
}

// IncrementFailure records one failed evaluation.
func (m *Metrics) IncrementFailure(operation, kind string) {
	if m != nil {
		m.Failures.WithLabelValues(operation, kind).Inc()
	}
}

// IncrementTrigger records one trigger event.
func (m *Metrics) IncrementTrigger(alias string) {
	if m != nil {
		m.Triggers.WithLabelValues(alias).Inc()
	}
}

// AddDistribution adjusts the number of registered distributions.
func (m *Metrics) AddDistribution(family string, delta float64) {
	if m != nil {
		m.Distributions.WithLabelValues(family).Add(delta)
	}
}

// ResetDistributions clears the gauge of registered distributions.
func (m *Metrics) ResetDistributions() {
	if m != nil {
		m.Distributions.Reset()
	}
}
