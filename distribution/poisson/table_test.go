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

package poisson

import (
	"math"
	"testing"

	"github.com/0xsoniclabs/poissonrng/config"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"
)

var lambdas = []float64{0.001, 0.5, 1, 3.7, 10, 42.5, 100, 1000, 10000}

func TestTable_MassIsOne(t *testing.T) {
	for _, lambda := range lambdas {
		table, err := Build(lambda)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, table.Mass(), 1e-6, "lambda %v", lambda)
	}
}

func TestTable_OutcomesAreNonNegative(t *testing.T) {
	for _, lambda := range lambdas {
		table, err := Build(lambda)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, table.Offset, 0, "lambda %v", lambda)
		for i, p := range table.Probabilities {
			assert.Greater(t, p, 0.0, "outcome %d of lambda %v", table.Outcome(i), lambda)
		}
	}
}

func TestTable_ModeIsNearLambda(t *testing.T) {
	for _, lambda := range lambdas {
		table, err := Build(lambda)
		require.NoError(t, err)
		assert.InDelta(t, math.Floor(lambda), float64(table.Mode()), 1, "lambda %v", lambda)
	}
}

func TestTable_MatchesPoissonProbabilities(t *testing.T) {
	for _, lambda := range lambdas {
		table, err := Build(lambda)
		require.NoError(t, err)
		ref := distuv.Poisson{Lambda: lambda}
		for i, p := range table.Probabilities {
			assert.InEpsilon(t, ref.Prob(float64(table.Outcome(i))), p, 1e-9, "outcome %d of lambda %v", table.Outcome(i), lambda)
		}
	}
}

func TestTable_EntriesAreAboveThreshold(t *testing.T) {
	params := DefaultParams()
	for _, lambda := range lambdas {
		table, err := params.Build(lambda)
		require.NoError(t, err)
		for _, p := range table.Probabilities {
			assert.GreaterOrEqual(t, p, params.Threshold)
		}
		// the neighbours of the window are negligible
		assert.Less(t, PMF(lambda, float64(table.Outcome(table.Size()))), params.Threshold)
		if table.Offset > 0 {
			assert.Less(t, PMF(lambda, float64(table.Offset-1)), params.Threshold)
		}
	}
}

func TestTable_SizeGrowsWithLambda(t *testing.T) {
	prev := 0
	for _, lambda := range []float64{1, 10, 100, 1000, 10000} {
		table, err := Build(lambda)
		require.NoError(t, err)
		assert.Greater(t, table.Size(), prev, "lambda %v", lambda)
		prev = table.Size()
	}
}

func TestTable_LambdaOne(t *testing.T) {
	table, err := Build(1)
	require.NoError(t, err)
	assert.Equal(t, 0, table.Offset)
	assert.Equal(t, 0, table.Mode())
	assert.InDelta(t, math.Exp(-1), table.Probabilities[0], 1e-12)
	assert.LessOrEqual(t, table.Outcome(table.Size()-1), 20)
}

func TestTable_SmallLambdaKeepsFewOutcomes(t *testing.T) {
	table, err := Build(0.001)
	require.NoError(t, err)
	assert.Equal(t, 0, table.Offset)
	assert.Equal(t, 4, table.Size())
	assert.InDelta(t, math.Exp(-0.001), table.Probabilities[0], 1e-15)
}

func TestTable_LargeLambdaIsCentred(t *testing.T) {
	table, err := Build(10000)
	require.NoError(t, err)
	assert.Greater(t, table.Offset, 9000)
	assert.Less(t, table.Outcome(table.Size()-1), 11000)
}

func TestTable_RejectsInvalidLambda(t *testing.T) {
	for _, lambda := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1), 1e12} {
		_, err := Build(lambda)
		assert.True(t, errors.Is(err, ErrInvalidLambda), "lambda %v: %v", lambda, err)
	}
}

func TestTable_ThresholdAboveEveryProbabilityIsDegenerate(t *testing.T) {
	params := DefaultParams()
	params.Threshold = 0.5
	_, err := params.Build(10)
	assert.True(t, errors.Is(err, ErrDegenerate), "unexpected error %v", err)
}

func TestTable_TinyCapacityIsDegenerate(t *testing.T) {
	params := DefaultParams()
	params.CapacityMultiplier = 0.1
	params.CapacityBase = 0
	_, err := params.Build(1)
	assert.True(t, errors.Is(err, ErrDegenerate), "unexpected error %v", err)
}

func TestParams_Capacity(t *testing.T) {
	params := DefaultParams()
	capacity, err := params.Capacity(10)
	require.NoError(t, err)
	assert.Equal(t, 164, capacity)

	capacity, err = params.Capacity(1)
	require.NoError(t, err)
	assert.Equal(t, 96, capacity)

	params.MaxCapacity = 100
	_, err = params.Capacity(10)
	assert.True(t, errors.Is(err, ErrInvalidLambda))
}

func TestParams_CheckRejectsInvalidSettings(t *testing.T) {
	tests := map[string]func(*Params){
		"zero threshold":      func(p *Params) { p.Threshold = 0 },
		"threshold of one":    func(p *Params) { p.Threshold = 1 },
		"nan threshold":       func(p *Params) { p.Threshold = math.NaN() },
		"zero multiplier":     func(p *Params) { p.CapacityMultiplier = 0 },
		"infinite multiplier": func(p *Params) { p.CapacityMultiplier = math.Inf(1) },
		"negative base":       func(p *Params) { p.CapacityBase = -1 },
		"tiny capacity":       func(p *Params) { p.MaxCapacity = 1 },
	}
	require.NoError(t, DefaultParams().Check())
	for name, modify := range tests {
		t.Run(name, func(t *testing.T) {
			params := DefaultParams()
			modify(&params)
			assert.Error(t, params.Check())
			_, err := params.Build(10)
			assert.Error(t, err)
		})
	}
}

func TestPMF_NegativeOutcomesHaveNoMass(t *testing.T) {
	assert.Equal(t, 0.0, PMF(3, -1))
	assert.Equal(t, 0.0, PMF(0.5, -7))
}

func TestParams_FromConfig(t *testing.T) {
	cfg := &config.Config{
		Threshold:          1e-9,
		CapacityMultiplier: 8,
		CapacityBase:       1,
		MaxCapacity:        4096,
	}
	params := ParamsFromConfig(cfg)
	assert.Equal(t, Params{Threshold: 1e-9, CapacityMultiplier: 8, CapacityBase: 1, MaxCapacity: 4096}, params)
	assert.NoError(t, params.Check())
}

func TestTable_EntriesEqualPMF(t *testing.T) {
	for _, lambda := range lambdas {
		table, err := Build(lambda)
		require.NoError(t, err)
		for i, p := range table.Probabilities {
			require.Equal(t, PMF(lambda, float64(table.Outcome(i))), p, "lambda %v outcome %d", lambda, table.Outcome(i))
		}
	}
}
