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

package memory

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestDomain_ParseAndString(t *testing.T) {
	for _, d := range []Domain{Host, Device} {
		parsed, err := ParseDomain(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}
	_, err := ParseDomain("gpu")
	assert.Error(t, err)
	assert.Equal(t, "domain(7)", Domain(7).String())
}

func TestHeapAllocator_AllocateAndRelease(t *testing.T) {
	alloc := NewHeapAllocator()
	buf, err := alloc.Allocate(Device, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, Device, buf.Domain)
	assert.Len(t, buf.Floats, 3)
	assert.Len(t, buf.Words, 2)
	assert.Equal(t, 32, buf.Bytes())

	other, err := alloc.Allocate(Host, 1, 0)
	require.NoError(t, err)
	assert.NotEqual(t, buf.ID, other.ID)

	require.NoError(t, alloc.Release(buf))
	assert.Nil(t, buf.Floats)
	assert.Nil(t, buf.Words)
	assert.NoError(t, alloc.Release(nil))
}

func TestHeapAllocator_RejectsNegativeSizes(t *testing.T) {
	_, err := NewHeapAllocator().Allocate(Host, -1, 0)
	assert.Error(t, err)
}

func TestTrackingAllocator_CountsLiveBuffers(t *testing.T) {
	alloc := NewTrackingAllocator(nil)
	a, err := alloc.Allocate(Device, 4, 4)
	require.NoError(t, err)
	b, err := alloc.Allocate(Host, 2, 0)
	require.NoError(t, err)

	stats := alloc.Stats()
	assert.Equal(t, 2, stats.Allocations)
	assert.Equal(t, 2, stats.Live)
	assert.Equal(t, 48+16, stats.LiveBytes)

	require.NoError(t, alloc.Release(a))
	stats = alloc.Stats()
	assert.Equal(t, 1, stats.Releases)
	assert.Equal(t, 1, stats.Live)
	assert.Equal(t, 16, stats.LiveBytes)

	require.NoError(t, alloc.Release(b))
	assert.Equal(t, 0, alloc.Stats().Live)
}

func TestTrackingAllocator_DetectsDoubleRelease(t *testing.T) {
	alloc := NewTrackingAllocator(nil)
	buf, err := alloc.Allocate(Device, 1, 1)
	require.NoError(t, err)
	require.NoError(t, alloc.Release(buf))

	err = alloc.Release(buf)
	assert.True(t, errors.Is(err, ErrDoubleRelease), "got %v", err)
	assert.Equal(t, 1, alloc.Stats().Releases)
}

func TestTrackingAllocator_DetectsForeignBuffer(t *testing.T) {
	alloc := NewTrackingAllocator(nil)
	err := alloc.Release(&Buffer{ID: 1 << 60})
	assert.True(t, errors.Is(err, ErrUnknownBuffer), "got %v", err)
}

func TestTrackingAllocator_ForwardsToInnerAllocator(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := NewMockAllocator(ctrl)
	buf := &Buffer{ID: 99, Domain: Device, Floats: make([]float64, 2)}

	gomock.InOrder(
		inner.EXPECT().Allocate(Device, 2, 0).Return(buf, nil),
		inner.EXPECT().Release(buf).Return(nil),
	)

	alloc := NewTrackingAllocator(inner)
	got, err := alloc.Allocate(Device, 2, 0)
	require.NoError(t, err)
	assert.Same(t, buf, got)
	require.NoError(t, alloc.Release(got))
}

func TestTrackingAllocator_PropagatesAllocationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := NewMockAllocator(ctrl)
	inner.EXPECT().Allocate(Device, 1, 1).Return(nil, errors.New("out of device memory"))

	alloc := NewTrackingAllocator(inner)
	_, err := alloc.Allocate(Device, 1, 1)
	assert.Error(t, err)
	assert.Equal(t, 0, alloc.Stats().Allocations)
}
