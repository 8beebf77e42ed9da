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

package engine

import "golang.org/x/exp/rand"

const defaultPCGSeed = 0x853c49e6748fea9b

type pcg struct {
	src rand.PCGSource
}

func newPCG(seed uint64) *pcg {
	if seed == 0 {
		seed = defaultPCGSeed
	}
	g := &pcg{}
	g.src.Seed(seed)
	return g
}

func (g *pcg) Family() Family { return PCG }

// Next returns the high half of the 64-bit output.
func (g *pcg) Next() uint32 {
	return uint32(g.src.Uint64() >> 32)
}
