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

// Package discrete provides O(1) and O(log n) lookup tables turning a
// uniform 32-bit word into an outcome of a finite discrete distribution.
// The tables live in a memory.Domain and are read-only once initialised,
// so any number of goroutines may sample from them concurrently.
package discrete

import (
	"fmt"

	"github.com/0xsoniclabs/poissonrng/memory"
	"github.com/cockroachdb/errors"
)

//go:generate mockgen -source table.go -destination table_mock.go -package discrete

// Method selects the construction of a lookup table.
type Method int

const (
	Alias Method = iota // Walker/Vose alias table, O(1) lookup
	CDF                 // cumulative table, binary search lookup
)

func (m Method) String() string {
	switch m {
	case Alias:
		return "alias"
	case CDF:
		return "cdf"
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// ParseMethod converts a method name into a Method.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "alias":
		return Alias, nil
	case "cdf":
		return CDF, nil
	}
	return 0, errors.Newf("unknown discrete method %q", name)
}

// uint32Scale maps a 32-bit word onto [0,1).
const uint32Scale = 1.0 / (1 << 32)

// Table is a sampling structure built from a probability array.
type Table interface {
	// Init builds the table from probabilities p of the outcomes
	// offset, offset+1, ... and stores it in the table's memory domain.
	// Previously held buffers are released first.
	Init(p []float64, offset int) error
	// Size returns the number of outcomes of the table.
	Size() int
	// Offset returns the outcome of the first entry.
	Offset() int
	// Sample maps a uniform word in [0, 2^32) to an outcome.
	Sample(u uint32) uint32
	// Deallocate releases the table's buffers; it is a no-op on an
	// empty table.
	Deallocate() error
	// Empty reports whether the table holds no buffers.
	Empty() bool
}

// New creates an empty table for the given method whose buffers are
// drawn from alloc in the given domain. A nil allocator defaults to the
// heap allocator.
func New(method Method, domain memory.Domain, alloc memory.Allocator) (Table, error) {
	if alloc == nil {
		alloc = memory.NewHeapAllocator()
	}
	base := tableBase{domain: domain, alloc: alloc}
	switch method {
	case Alias:
		return &aliasTable{tableBase: base}, nil
	case CDF:
		return &cdfTable{tableBase: base}, nil
	}
	return nil, errors.Newf("unsupported discrete method %v", method)
}

// tableBase holds the state shared by all table variants.
type tableBase struct {
	domain memory.Domain
	alloc  memory.Allocator
	buf    *memory.Buffer
	size   int
	offset int
}

func (t *tableBase) Size() int   { return t.size }
func (t *tableBase) Offset() int { return t.offset }
func (t *tableBase) Empty() bool { return t.buf == nil }

func (t *tableBase) Deallocate() error {
	if t.buf == nil {
		return nil
	}
	buf := t.buf
	t.buf = nil
	t.size = 0
	t.offset = 0
	if err := t.alloc.Release(buf); err != nil {
		return errors.Wrapf(err, "failed to release %v buffer %d", t.domain, buf.ID)
	}
	return nil
}

// upload allocates a domain buffer and copies the host arrays into it.
func (t *tableBase) upload(floats []float64, words []uint32) error {
	buf, err := t.alloc.Allocate(t.domain, len(floats), len(words))
	if err != nil {
		return errors.Wrapf(err, "failed to allocate %v buffer", t.domain)
	}
	copy(buf.Floats, floats)
	copy(buf.Words, words)
	t.buf = buf
	return nil
}
