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
	mrg32k3aM1   = 4294967087
	mrg32k3aM2   = 4294944443
	mrg32k3aA12  = 1403580
	mrg32k3aA13n = 810728
	mrg32k3aA21  = 527612
	mrg32k3aA23n = 1370589

	// defaultMRGSeed is the state value of every component of the
	// unseeded generator.
	defaultMRGSeed = 12345
)

// mrg32k3a is L'Ecuyer's MRG32k3a. The components hold the last three
// values of each recurrence, oldest first.
type mrg32k3a struct {
	s1 [3]int64
	s2 [3]int64
}

func newMRG32k3a(seed uint64) *mrg32k3a {
	g := &mrg32k3a{}
	if seed == 0 {
		g.s1 = [3]int64{defaultMRGSeed, defaultMRGSeed, defaultMRGSeed}
		g.s2 = g.s1
		return g
	}
	seedComponents(seed, &g.s1, mrg32k3aM1, &g.s2, mrg32k3aM2)
	return g
}

func (g *mrg32k3a) Family() Family { return MRG32k3a }

func (g *mrg32k3a) Next() uint32 {
	p1 := (mrg32k3aA12*g.s1[1] - mrg32k3aA13n*g.s1[0]) % mrg32k3aM1
	if p1 < 0 {
		p1 += mrg32k3aM1
	}
	g.s1[0], g.s1[1], g.s1[2] = g.s1[1], g.s1[2], p1

	p2 := (mrg32k3aA21*g.s2[2] - mrg32k3aA23n*g.s2[0]) % mrg32k3aM2
	if p2 < 0 {
		p2 += mrg32k3aM2
	}
	g.s2[0], g.s2[1], g.s2[2] = g.s2[1], g.s2[2], p2

	if p1 > p2 {
		return uint32(p1 - p2)
	}
	return uint32(p1 - p2 + mrg32k3aM1)
}
