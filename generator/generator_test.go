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

package generator

import (
	"context"
	"testing"

	"github.com/0xsoniclabs/poissonrng/config"
	"github.com/0xsoniclabs/poissonrng/distribution/poisson"
	"github.com/0xsoniclabs/poissonrng/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSampler(t *testing.T, lambda float64, family engine.Family) poisson.Sampler {
	t.Helper()
	m := poisson.NewManager()
	require.NoError(t, m.SetLambda(lambda))
	t.Cleanup(func() { assert.NoError(t, m.Close()) })
	s, err := m.Sampler(family)
	require.NoError(t, err)
	return s
}

func TestGenerate_OutputDoesNotDependOnWorkers(t *testing.T) {
	s := newSampler(t, 10, engine.MRG32k3a)
	n := 3*config.ChunkSize + 17
	single := make([]uint32, n)
	parallel := make([]uint32, n)
	require.NoError(t, Generate(context.Background(), s, 7, single, 1))
	require.NoError(t, Generate(context.Background(), s, 7, parallel, 4))
	assert.Equal(t, single, parallel)
}

func TestGenerate_SeedsChangeOutput(t *testing.T) {
	s := newSampler(t, 10, engine.PCG)
	a := make([]uint32, 1000)
	b := make([]uint32, 1000)
	require.NoError(t, Generate(context.Background(), s, 1, a, 2))
	require.NoError(t, Generate(context.Background(), s, 2, b, 2))
	assert.NotEqual(t, a, b)
}

func TestGenerate_ChunksUseDistinctStreams(t *testing.T) {
	s := newSampler(t, 100, engine.MRG31k3p)
	out := make([]uint32, 2*config.ChunkSize)
	require.NoError(t, Generate(context.Background(), s, 3, out, 2))
	assert.NotEqual(t, out[:config.ChunkSize], out[config.ChunkSize:])
}

func TestGenerate_EmptyBuffer(t *testing.T) {
	s := newSampler(t, 10, engine.PCG)
	assert.NoError(t, Generate(context.Background(), s, 1, nil, 4))
}

func TestGenerate_CancelledContext(t *testing.T) {
	s := newSampler(t, 10, engine.PCG)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Generate(ctx, s, 1, make([]uint32, 4*config.ChunkSize), 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerate_WorkerPanicBecomesError(t *testing.T) {
	var s poisson.Sampler // no table
	err := Generate(context.Background(), s, 1, make([]uint32, 10), 1)
	var panicErr *PanicError
	require.ErrorAs(t, err, &panicErr)
	assert.Contains(t, panicErr.Error(), "Stack Trace")
}

func TestGenerate_MomentsMatchLambda(t *testing.T) {
	const lambda = 10.0
	for _, family := range []engine.Family{engine.MRG32k3a, engine.MRG31k3p, engine.PCG} {
		t.Run(family.String(), func(t *testing.T) {
			s := newSampler(t, lambda, family)
			out := make([]uint32, 1_000_000)
			require.NoError(t, Generate(context.Background(), s, config.DefaultSeed, out, 4))
			summary := Summarize(out)
			assert.Equal(t, len(out), summary.Count)
			assert.InEpsilon(t, lambda, summary.Mean, 0.01)
			assert.InEpsilon(t, lambda, summary.Variance, 0.05)
			assert.Less(t, summary.Min, uint32(3))
			assert.Greater(t, summary.Max, uint32(20))
		})
	}
}

func TestGenerate_SamplesFitTable(t *testing.T) {
	s := newSampler(t, 25, engine.MRG32k3a)
	out := make([]uint32, 200_000)
	require.NoError(t, Generate(context.Background(), s, 11, out, 4))
	table, err := poisson.Build(25)
	require.NoError(t, err)
	statistic, pValue := GoodnessOfFit(out, table)
	assert.Greater(t, statistic, 0.0)
	assert.Greater(t, pValue, 1e-4)
}
