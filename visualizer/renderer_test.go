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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/0xsoniclabs/crow/config"
	"github.com/0xsoniclabs/crow/distribution"
	"github.com/0xsoniclabs/crow/logger"
	"github.com/0xsoniclabs/crow/ndist"
	"github.com/0xsoniclabs/crow/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func sampleRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := logger.NewMockLogger(ctrl)
	log.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
	reg, err := registry.New(config.Default(), log)
	require.NoError(t, err)
	_, err = reg.AddScalar(distribution.Normal, "n", distribution.Parameters{"mu": 0, "sigma": 1})
	require.NoError(t, err)
	_, err = reg.AddScalar(distribution.Constant, "c", distribution.Parameters{"value": 3})
	require.NoError(t, err)
	_, err = reg.AddMultivariate(registry.NDSpec{
		Type:       ndist.MultivariateNormalType,
		Alias:      "mvn<2>",
		Mu:         []float64{0, 0},
		Covariance: []float64{4, 2, 2, 3},
	})
	require.NoError(t, err)
	return reg
}

func serve(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest("GET", target, nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestVisualizer_renderMain(t *testing.T) {
	handler, err := NewHandler(sampleRegistry(t), 20)
	require.NoError(t, err)

	rr := serve(t, handler, "/")
	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `href="/scalar?alias=n"`)
	assert.Contains(t, body, `href="/marginal?alias=mvn%3C2%3E"`)
	assert.Contains(t, body, `href="/samples?alias=mvn%3C2%3E"`)
	assert.Contains(t, body, "mvn&lt;2&gt;")
	assert.NotContains(t, body, "mvn<2>")
	// constant distributions cannot be tabulated
	assert.Contains(t, body, "c: ")
}

func TestVisualizer_renderCharts(t *testing.T) {
	handler, err := NewHandler(sampleRegistry(t), 20)
	require.NoError(t, err)

	tests := map[string]string{
		"/scalar?alias=n":            "PDF",
		"/marginal?alias=mvn%3C2%3E": "x2",
		"/samples?alias=mvn%3C2%3E":  "(x1, x2)",
	}
	for target, series := range tests {
		t.Run(target, func(t *testing.T) {
			rr := serve(t, handler, target)
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), "echarts")
			assert.Contains(t, rr.Body.String(), series)
		})
	}
}

func TestVisualizer_unknownAliasIsNotFound(t *testing.T) {
	handler, err := NewHandler(sampleRegistry(t), 0)
	require.NoError(t, err)

	for _, target := range []string{"/scalar?alias=x", "/scalar?alias=c", "/marginal?alias=n", "/samples?alias=n"} {
		rr := serve(t, handler, target)
		assert.Equal(t, http.StatusNotFound, rr.Code, target)
	}
}

func TestVisualizer_withoutStateIsUnavailable(t *testing.T) {
	clearView(t)
	for _, h := range []http.HandlerFunc{renderMain, renderScalar, renderMarginal, renderSamples} {
		rr := serve(t, h, "/?alias=n")
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	}
}

func clearView(t *testing.T) {
	t.Helper()
	currentMu.Lock()
	currentState = nil
	currentMu.Unlock()
}
