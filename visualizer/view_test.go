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

package visualizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetViewStateRejectsNil(t *testing.T) {
	err := setViewState(nil, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry is nil")
}

func TestBuildViewState(t *testing.T) {
	view, err := buildViewState(sampleRegistry(t), 15)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "mvn<2>", "n"}, view.aliases)
	assert.Contains(t, view.skipped, "c")

	n := view.scalars["n"]
	require.NotNil(t, n)
	assert.Equal(t, "Normal", n.typ)
	require.Equal(t, len(n.pdf), len(n.cdf))
	for i := 1; i < len(n.cdf); i++ {
		assert.Greater(t, n.cdf[i][0], n.cdf[i-1][0])
		assert.GreaterOrEqual(t, n.cdf[i][1], n.cdf[i-1][1])
	}
	assert.InDelta(t, 0.0, n.cdf[0][1], 1e-12)
	assert.InDelta(t, 1.0, n.cdf[len(n.cdf)-1][1], 1e-12)

	mvn := view.nds["mvn<2>"]
	require.NotNil(t, mvn)
	assert.Len(t, mvn.marginals, 2)
	for _, curve := range mvn.marginals {
		assert.Len(t, curve, marginalPoints+1)
		assert.Less(t, curve[0][1], 1e-6)
		assert.Greater(t, curve[marginalPoints][1], 1-1e-6)
	}
	assert.Len(t, mvn.samples, 15)
}

func TestCurrentViewWithoutState(t *testing.T) {
	clearView(t)
	_, err := currentView()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not initialised")
}
