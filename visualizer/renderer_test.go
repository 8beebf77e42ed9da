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

	"github.com/0xsoniclabs/poissonrng/distribution/poisson"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleView(t *testing.T) View {
	t.Helper()
	table, err := poisson.Build(3)
	require.NoError(t, err)
	return View{
		Lambda:  3,
		Table:   table,
		Samples: []uint32{0, 1, 2, 2, 3, 3, 3, 4, 5, 6},
	}
}

func resetViewState(t *testing.T) {
	t.Helper()
	currentMu.Lock()
	currentState = nil
	currentMu.Unlock()
	t.Cleanup(func() {
		currentMu.Lock()
		currentState = nil
		currentMu.Unlock()
	})
}

func serve(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest("GET", path, nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	newServeMux().ServeHTTP(rr, req)
	return rr
}

func TestVisualizer_RenderMain(t *testing.T) {
	rr := serve(t, "/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, MainHtml, rr.Body.String())
}

func TestVisualizer_PagesNeedView(t *testing.T) {
	resetViewState(t)
	for _, ref := range []string{pmfRef, cdfRef, summaryRef} {
		rr := serve(t, "/"+ref)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code, ref)
	}
}

func TestVisualizer_RenderPages(t *testing.T) {
	resetViewState(t)
	require.NoError(t, setViewState(sampleView(t)))
	for _, ref := range []string{pmfRef, cdfRef, summaryRef} {
		rr := serve(t, "/"+ref)
		assert.Equal(t, http.StatusOK, rr.Code, ref)
		assert.Contains(t, rr.Body.String(), "echarts", ref)
	}
}

func TestVisualizer_SummaryWithoutSamples(t *testing.T) {
	resetViewState(t)
	view := sampleView(t)
	view.Samples = nil
	require.NoError(t, setViewState(view))
	assert.Equal(t, http.StatusNotFound, serve(t, "/"+summaryRef).Code)
	assert.Equal(t, http.StatusOK, serve(t, "/"+pmfRef).Code)
}

func TestVisualizer_SetViewStateRejectsEmptyTable(t *testing.T) {
	resetViewState(t)
	assert.Error(t, setViewState(View{Lambda: 1}))
	assert.Error(t, setViewState(View{Lambda: 1, Table: poisson.Table{Probabilities: []float64{-1, 2}}}))
	_, err := currentView()
	assert.Error(t, err)
}

func TestVisualizer_BuildViewState(t *testing.T) {
	state, err := buildViewState(sampleView(t))
	require.NoError(t, err)
	assert.Equal(t, 0, state.table.Offset)
	assert.InDelta(t, 1.0, state.cdf[len(state.cdf)-1], 1e-12)
	assert.InDelta(t, 0.1, state.empirical[0], 1e-12)
	assert.InDelta(t, 0.3, state.empirical[3], 1e-12)
	assert.InDelta(t, 1.0, state.ecdf[len(state.ecdf)-1], 1e-12)
	assert.Equal(t, 10, state.summary.Count)
	assert.InDelta(t, 2.9, state.summary.Mean, 1e-12)
}

func TestVisualizer_OutcomeLabels(t *testing.T) {
	assert.Equal(t, []string{"4", "5", "6"}, outcomeLabels(4, 3))
}

func TestVisualizer_ConvertData(t *testing.T) {
	assert.Equal(t, []opts.BarData{{Value: 0.25}, {Value: 0.75}}, convertBarData([]float64{0.25, 0.75}))
	assert.Equal(t, []opts.LineData{{Value: 0.5}}, convertLineData([]float64{0.5}))
}

func TestVisualizer_Cumulative(t *testing.T) {
	assert.Equal(t, []float64{0.5, 0.75, 1}, cumulative([]float64{0.5, 0.25, 0.25}))
}
