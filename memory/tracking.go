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
	"sync"

	"github.com/cockroachdb/errors"
)

// Stats summarizes the activity of a TrackingAllocator.
type Stats struct {
	Allocations int // number of successful allocations
	Releases    int // number of successful releases
	Live        int // buffers allocated but not released
	LiveBytes   int // payload bytes of live buffers
}

// TrackingAllocator wraps an allocator and records every buffer it hands
// out. Releasing a buffer twice, or a buffer it never allocated, is
// reported as an error instead of being forwarded.
type TrackingAllocator struct {
	inner    Allocator
	mutex    sync.Mutex
	live     map[uint64]int
	released map[uint64]struct{}
	stats    Stats
}

// NewTrackingAllocator creates a tracking allocator; a nil inner
// allocator defaults to the heap allocator.
func NewTrackingAllocator(inner Allocator) *TrackingAllocator {
	if inner == nil {
		inner = NewHeapAllocator()
	}
	return &TrackingAllocator{
		inner:    inner,
		live:     map[uint64]int{},
		released: map[uint64]struct{}{},
	}
}

func (a *TrackingAllocator) Allocate(domain Domain, floats, words int) (*Buffer, error) {
	buf, err := a.inner.Allocate(domain, floats, words)
	if err != nil {
		return nil, err
	}
	a.mutex.Lock()
	defer a.mutex.Unlock()
	size := buf.Bytes()
	a.live[buf.ID] = size
	a.stats.Allocations++
	a.stats.Live++
	a.stats.LiveBytes += size
	return buf, nil
}

func (a *TrackingAllocator) Release(buf *Buffer) error {
	if buf == nil {
		return nil
	}
	a.mutex.Lock()
	defer a.mutex.Unlock()
	size, ok := a.live[buf.ID]
	if !ok {
		if _, done := a.released[buf.ID]; done {
			return errors.Wrapf(ErrDoubleRelease, "buffer %d", buf.ID)
		}
		return errors.Wrapf(ErrUnknownBuffer, "buffer %d", buf.ID)
	}
	if err := a.inner.Release(buf); err != nil {
		return err
	}
	delete(a.live, buf.ID)
	a.released[buf.ID] = struct{}{}
	a.stats.Releases++
	a.stats.Live--
	a.stats.LiveBytes -= size
	return nil
}

// Stats returns a snapshot of the allocator's counters.
func (a *TrackingAllocator) Stats() Stats {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.stats
}
