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

// Package engine provides the raw pseudo-random engines feeding the
// sampling adapters and the remapping of their native output onto the
// full 32-bit range.
package engine

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
)

// Family identifies a pseudo-random engine family.
type Family int

const (
	MRG32k3a Family = iota // L'Ecuyer combined MRG, raw output in [1, 4294967087]
	MRG31k3p               // L'Ecuyer/Touzin combined MRG, raw output in [1, 2^31-1]
	PCG                    // permuted congruential generator, full 32-bit output
)

var familyNames = map[Family]string{
	MRG32k3a: "mrg32k3a",
	MRG31k3p: "mrg31k3p",
	PCG:      "pcg",
}

func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("family(%d)", int(f))
}

// ParseFamily converts an engine name into a Family.
func ParseFamily(name string) (Family, error) {
	for f, n := range familyNames {
		if n == name {
			return f, nil
		}
	}
	return 0, errors.Newf("unknown engine family %q", name)
}

// Engine produces raw generator words.
type Engine interface {
	Family() Family
	// Next returns the next raw word in the family's native range.
	Next() uint32
}

// New creates an engine of the given family. A zero seed selects the
// family's default seed.
func New(family Family, seed uint64) (Engine, error) {
	switch family {
	case MRG32k3a:
		return newMRG32k3a(seed), nil
	case MRG31k3p:
		return newMRG31k3p(seed), nil
	case PCG:
		return newPCG(seed), nil
	}
	return nil, errors.Newf("unsupported engine family %v", family)
}

// Range returns the smallest and largest raw word of a family.
func Range(family Family) (uint32, uint32) {
	switch family {
	case MRG32k3a:
		return 1, mrg32k3aM1
	case MRG31k3p:
		return 1, mrg31k3pM1
	}
	return 0, math.MaxUint32
}

// Remap stretches a raw word of the family's native range linearly onto
// [0, 2^32-1]. The MRG families produce fewer distinct words than the
// target range holds, so some target words are never produced and
// outcome probabilities deviate slightly from an exact uniform input.
func Remap(family Family, raw uint32) uint32 {
	switch family {
	case MRG32k3a:
		return stretch(raw, mrg32k3aM1)
	case MRG31k3p:
		return stretch(raw, mrg31k3pM1)
	}
	return raw
}

// stretch maps [1, m] onto [0, 2^32-1] as (raw-1) * (2^32-1) / (m-1).
func stretch(raw uint32, m uint64) uint32 {
	if raw == 0 {
		raw = 1
	}
	if uint64(raw) > m {
		return math.MaxUint32
	}
	return uint32(uint64(raw-1) * math.MaxUint32 / (m - 1))
}

// splitMix64 derives well mixed state words from a seed.
func splitMix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// seedComponents fills a combined MRG state with values in [1, m).
func seedComponents(seed uint64, s1 *[3]int64, m1 int64, s2 *[3]int64, m2 int64) {
	state := seed
	for i := range s1 {
		s1[i] = int64(splitMix64(&state)%uint64(m1-1)) + 1
	}
	for i := range s2 {
		s2[i] = int64(splitMix64(&state)%uint64(m2-1)) + 1
	}
}
