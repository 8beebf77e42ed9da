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
	"fmt"
	"sync"

	"github.com/0xsoniclabs/poissonrng/distribution/poisson"
	"github.com/0xsoniclabs/poissonrng/generator"
	"github.com/0xsoniclabs/poissonrng/statistics/discrete"
)

// View is the input of the visualizer: a table and optionally samples
// drawn from it.
type View struct {
	Lambda  float64
	Table   poisson.Table
	Samples []uint32
}

type viewState struct {
	lambda    float64
	table     poisson.Table
	cdf       []float64
	empirical []float64 // empirical frequencies, nil without samples
	ecdf      []float64
	summary   generator.Summary
	fit       [2]float64 // chi-squared statistic and p-value
}

var (
	currentMu    sync.RWMutex
	currentState *viewState
)

func setViewState(view View) error {
	derived, err := buildViewState(view)
	if err != nil {
		return err
	}
	currentMu.Lock()
	currentState = derived
	currentMu.Unlock()
	return nil
}

func buildViewState(view View) (*viewState, error) {
	if view.Table.Size() == 0 {
		return nil, fmt.Errorf("visualizer: table is empty")
	}
	if err := discrete.CheckPMF(view.Table.Probabilities); err != nil {
		return nil, fmt.Errorf("visualizer: invalid table: %w", err)
	}
	state := &viewState{
		lambda: view.Lambda,
		table:  view.Table,
		cdf:    discrete.CDF(view.Table.Probabilities),
	}
	if len(view.Samples) > 0 {
		state.empirical = generator.Histogram(view.Samples, view.Table.Offset, view.Table.Size())
		state.ecdf = cumulative(state.empirical)
		state.summary = generator.Summarize(view.Samples)
		state.fit[0], state.fit[1] = generator.GoodnessOfFit(view.Samples, view.Table)
	}
	return state, nil
}

func cumulative(freq []float64) []float64 {
	c := make([]float64, len(freq))
	sum := 0.0
	for i, f := range freq {
		sum += f
		c[i] = sum
	}
	return c
}

func currentView() (*viewState, error) {
	currentMu.RLock()
	defer currentMu.RUnlock()
	if currentState == nil {
		return nil, fmt.Errorf("visualizer: distribution not initialised")
	}
	return currentState, nil
}
