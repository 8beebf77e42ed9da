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

const (
	mrg31k3pM1  = 2147483647
	mrg31k3pM2  = 2147462579
	mrg31k3pA12 = 1 << 22
	mrg31k3pA13 = 1<<7 + 1
	mrg31k3pA21 = 1 << 15
	mrg31k3pA23 = 1<<15 + 1
)

// mrg31k3p is L'Ecuyer and Touzin's MRG31k3p.
type mrg31k3p struct {
	s1 [3]int64
	s2 [3]int64
}

func newMRG31k3p(seed uint64) *mrg31k3p {
	g := &mrg31k3p{}
	if seed == 0 {
		g.s1 = [3]int64{defaultMRGSeed, defaultMRGSeed, defaultMRGSeed}
		g.s2 = g.s1
		return g
	}
	seedComponents(seed, &g.s1, mrg31k3pM1, &g.s2, mrg31k3pM2)
	return g
}

func (g *mrg31k3p) Family() Family { return MRG31k3p }

func (g *mrg31k3p) Next() uint32 {
	p1 := (mrg31k3pA12*g.s1[1] + mrg31k3pA13*g.s1[0]) % mrg31k3pM1
	g.s1[0], g.s1[1], g.s1[2] = g.s1[1], g.s1[2], p1

	p2 := (mrg31k3pA21*g.s2[2] + mrg31k3pA23*g.s2[0]) % mrg31k3pM2
	g.s2[0], g.s2[1], g.s2[2] = g.s2[1], g.s2[2], p2

	if p1 > p2 {
		return uint32(p1 - p2)
	}
	return uint32(p1 - p2 + mrg31k3pM1)
}
