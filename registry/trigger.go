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
	"math"

	"github.com/0xsoniclabs/crow/errkind"
)

// Window selects the samples that trigger a distribution: the uniform draw
// must lie in [PLow,PHigh] and the sampled value in [VLow,VHigh].
type Window struct {
	PLow, PHigh float64
	VLow, VHigh float64
}

// UnboundedWindow accepts every draw and every value.
func UnboundedWindow() Window {
	return Window{PLow: 0, PHigh: 1, VLow: math.Inf(-1), VHigh: math.Inf(1)}
}

func (w Window) validate() error {
	if !(0 <= w.PLow && w.PLow <= w.PHigh && w.PHigh <= 1) {
		return errkind.Configf("probability window [%v,%v] is not within [0,1]", w.PLow, w.PHigh)
	}
	if !(w.VLow <= w.VHigh) {
		return errkind.Configf("value window [%v,%v] is empty", w.VLow, w.VHigh)
	}
	return nil
}

func (w Window) contains(u, x float64) bool {
	return w.PLow <= u && u <= w.PHigh && w.VLow <= x && x <= w.VHigh
}

// SetWindow enables triggering of sampled scalar distributions.
func (r *Registry) SetWindow(w Window) error {
	if err := w.validate(); err != nil {
		return err
	}
	r.window = &w
	return nil
}

// ClearWindow disables triggering by samples. CheckCdf still triggers.
func (r *Registry) ClearWindow() {
	r.window = nil
}

func (r *Registry) trigger(alias string) {
	r.triggered[alias] = true
	r.lastTriggered = alias
	r.metrics.IncrementTrigger(alias)
	r.log.Debugf("Distribution %q triggered", alias)
}

// Triggered reports whether the distribution under alias triggered since
// the last reset.
func (r *Registry) Triggered(alias string) bool {
	return r.triggered[alias]
}

// LastTriggered returns the alias that triggered most recently, or "" if
// none did. Only the latest alias is kept.
func (r *Registry) LastTriggered() string {
	return r.lastTriggered
}

// AtLeastOneTriggered reports whether any distribution triggered since the
// last reset.
func (r *Registry) AtLeastOneTriggered() bool {
	return len(r.triggered) > 0
}

// ResetTriggers clears the trigger state.
func (r *Registry) ResetTriggers() {
	r.triggered = make(map[string]bool)
	r.lastTriggered = ""
}
