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

// Package memory provides the buffers holding sampling tables in the
// memory domain in which variates are generated.
package memory

import (
	"fmt"
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

//go:generate mockgen -source allocator.go -destination allocator_mock.go -package memory

// Domain identifies where a buffer resides.
type Domain int

const (
	Host   Domain = iota // memory of the controlling process
	Device               // memory of the parallel execution domain
)

func (d Domain) String() string {
	switch d {
	case Host:
		return "host"
	case Device:
		return "device"
	}
	return fmt.Sprintf("domain(%d)", int(d))
}

// ParseDomain converts a domain name into a Domain.
func ParseDomain(name string) (Domain, error) {
	switch name {
	case "host":
		return Host, nil
	case "device":
		return Device, nil
	}
	return 0, errors.Newf("unknown memory domain %q", name)
}

var (
	ErrDoubleRelease = errors.New("buffer released twice")
	ErrUnknownBuffer = errors.New("buffer not owned by allocator")
)

// Buffer is a block of domain memory holding floating point and
// integer words of a sampling table.
type Buffer struct {
	ID     uint64
	Domain Domain
	Floats []float64
	Words  []uint32
}

// Bytes returns the size of the buffer's payload.
func (b *Buffer) Bytes() int {
	return 8*len(b.Floats) + 4*len(b.Words)
}

// Allocator hands out and takes back domain buffers.
type Allocator interface {
	// Allocate reserves a buffer of the given number of float and word entries.
	Allocate(domain Domain, floats, words int) (*Buffer, error)
	// Release returns a buffer to the allocator.
	Release(buf *Buffer) error
}

var lastBufferID atomic.Uint64

// NewHeapAllocator returns an allocator backed by the Go heap. Device
// buffers are ordinary heap memory read by the generator workers.
func NewHeapAllocator() Allocator {
	return heapAllocator{}
}

type heapAllocator struct{}

func (heapAllocator) Allocate(domain Domain, floats, words int) (*Buffer, error) {
	if floats < 0 || words < 0 {
		return nil, errors.Newf("invalid buffer size (%d floats, %d words)", floats, words)
	}
	return &Buffer{
		ID:     lastBufferID.Add(1),
		Domain: domain,
		Floats: make([]float64, floats),
		Words:  make([]uint32, words),
	}, nil
}

func (heapAllocator) Release(buf *Buffer) error {
	if buf == nil {
		return nil
	}
	buf.Floats = nil
	buf.Words = nil
	return nil
}
