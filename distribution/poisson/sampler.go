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
	"github.com/0xsoniclabs/poissonrng/engine"
)

const (
	// InputWidth is the number of engine words consumed per variate.
	InputWidth = 1
	// OutputWidth is the number of variates produced per application.
	OutputWidth = 1
)

// Lookup maps a uniform word in [0, 2^32) to an outcome. Both
// discrete.Table and *Distribution implement it.
type Lookup interface {
	Sample(u uint32) uint32
}

// Sampler turns raw words of one engine family into Poisson variates.
// MRG words are stretched linearly from [1, M1] onto the full 32-bit
// range before the lookup; the resulting grid is slightly coarser than
// 2^-32 and is not corrected.
type Sampler struct {
	lookup Lookup
	family engine.Family
}

// NewSampler binds a lookup to an engine family. A sampler bound to a
// *Distribution follows its rebuilds.
func NewSampler(lookup Lookup, family engine.Family) Sampler {
	return Sampler{lookup: lookup, family: family}
}

// Family returns the engine family of the raw input words.
func (s Sampler) Family() engine.Family {
	return s.family
}

// Apply samples one variate from one raw word.
func (s Sampler) Apply(input [InputWidth]uint32, output *[OutputWidth]uint32) {
	output[0] = s.Sample(input[0])
}

// Sample maps one raw word to a variate.
func (s Sampler) Sample(raw uint32) uint32 {
	return s.lookup.Sample(engine.Remap(s.family, raw))
}
