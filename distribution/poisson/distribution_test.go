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
	"testing"

	"github.com/0xsoniclabs/poissonrng/distribution/discrete"
	"github.com/0xsoniclabs/poissonrng/memory"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestDistribution_NewIsEmpty(t *testing.T) {
	d := NewDistribution()
	assert.True(t, d.Empty())
	assert.Equal(t, 0, d.Size())
	assert.Equal(t, 0, d.Offset())
	assert.Nil(t, d.Table())
	assert.NoError(t, d.Release())
}

func TestDistribution_SetLambdaMatchesHostTable(t *testing.T) {
	for _, method := range []discrete.Method{discrete.Alias, discrete.CDF} {
		t.Run(method.String(), func(t *testing.T) {
			d, err := NewDistributionWithLambda(42.5, WithMethod(method), WithDomain(memory.Host))
			require.NoError(t, err)
			host, err := Build(42.5)
			require.NoError(t, err)
			assert.False(t, d.Empty())
			assert.Equal(t, host.Size(), d.Size())
			assert.Equal(t, host.Offset, d.Offset())
			assert.Equal(t, uint32(host.Offset), d.Sample(0))
			last := d.Sample(^uint32(0))
			assert.GreaterOrEqual(t, last, uint32(host.Offset))
			assert.LessOrEqual(t, last, uint32(host.Outcome(host.Size()-1)))
		})
	}
}

func TestDistribution_RejectedLambdaKeepsTable(t *testing.T) {
	alloc := memory.NewTrackingAllocator(nil)
	d, err := NewDistributionWithLambda(10, WithAllocator(alloc))
	require.NoError(t, err)
	size, offset := d.Size(), d.Offset()

	err = d.SetLambda(0)
	assert.True(t, errors.Is(err, ErrInvalidLambda))
	assert.False(t, d.Empty())
	assert.Equal(t, size, d.Size())
	assert.Equal(t, offset, d.Offset())
	assert.Equal(t, 0, alloc.Stats().Releases)
}

func TestDistribution_NewWithInvalidLambdaFails(t *testing.T) {
	_, err := NewDistributionWithLambda(-3)
	assert.True(t, errors.Is(err, ErrInvalidLambda))
}

func TestDistribution_UsesTableCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := NewMockTableCache(ctrl)
	cache.EXPECT().Get(7.0).Return(Table{Probabilities: []float64{0.25, 0.75}, Offset: 3}, nil)
	cache.EXPECT().Get(8.0).Return(Table{}, errors.New("store unavailable"))

	d := NewDistribution(WithTableCache(cache))
	require.NoError(t, d.SetLambda(7))
	assert.Equal(t, 2, d.Size())
	assert.Equal(t, 3, d.Offset())

	assert.Error(t, d.SetLambda(8))
	assert.Equal(t, 2, d.Size())
}

func TestDistribution_UnknownMethodFails(t *testing.T) {
	d := NewDistribution(WithMethod(discrete.Method(9)))
	assert.Error(t, d.SetLambda(10))
	assert.True(t, d.Empty())
}

func TestDistribution_ReleaseIsIdempotent(t *testing.T) {
	alloc := memory.NewTrackingAllocator(nil)
	d, err := NewDistributionWithLambda(10, WithAllocator(alloc))
	require.NoError(t, err)
	require.NoError(t, d.Release())
	require.NoError(t, d.Release())
	assert.True(t, d.Empty())
	stats := alloc.Stats()
	assert.Equal(t, 1, stats.Releases)
	assert.Equal(t, 0, stats.Live)
}

func TestDistribution_RebuildReleasesPreviousTable(t *testing.T) {
	alloc := memory.NewTrackingAllocator(nil)
	d, err := NewDistributionWithLambda(5, WithAllocator(alloc))
	require.NoError(t, err)
	require.NoError(t, d.SetLambda(50))
	stats := alloc.Stats()
	assert.Equal(t, 2, stats.Allocations)
	assert.Equal(t, 1, stats.Releases)
	assert.Equal(t, 1, stats.Live)
}
