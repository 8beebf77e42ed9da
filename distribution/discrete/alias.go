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

package discrete

import (
	"github.com/0xsoniclabs/poissonrng/statistics/discrete"
	"github.com/cockroachdb/errors"
)

// aliasTable keeps the acceptance probability of every bucket in the
// float section of its buffer and the alias index in the word section.
type aliasTable struct {
	tableBase
}

func (t *aliasTable) Init(p []float64, offset int) error {
	if err := t.Deallocate(); err != nil {
		return err
	}
	prob, alias, err := buildAlias(p)
	if err != nil {
		return errors.Wrap(err, "failed to build alias table")
	}
	if err := t.upload(prob, alias); err != nil {
		return err
	}
	t.size = len(prob)
	t.offset = offset
	return nil
}

// Sample splits x = u/2^32 scaled by the table size into a bucket index
// and a fractional part deciding between the bucket and its alias.
func (t *aliasTable) Sample(u uint32) uint32 {
	nx := float64(t.size) * (float64(u) * uint32Scale)
	i := int(nx)
	if i >= t.size {
		i = t.size - 1
	}
	y := nx - float64(i)
	if y < t.buf.Floats[i] {
		return uint32(t.offset + i)
	}
	return uint32(t.offset + int(t.buf.Words[i]))
}

// buildAlias builds the alias table for a probability array with Vose's
// method.
func buildAlias(p []float64) ([]float64, []uint32, error) {
	f, err := discrete.Normalize(p)
	if err != nil {
		return nil, nil, err
	}
	if err := discrete.CheckPMF(f); err != nil {
		return nil, nil, err
	}

	n := len(f)
	prob := make([]float64, n)
	alias := make([]uint32, n)
	scaled := make([]float64, n)
	small := make([]int, 0, n)
	large := make([]int, 0, n)
	for i, x := range f {
		scaled[i] = x * float64(n)
		if scaled[i] < 1.0 {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}

	for len(small) > 0 && len(large) > 0 {
		s := small[len(small)-1]
		small = small[:len(small)-1]
		l := large[len(large)-1]
		large = large[:len(large)-1]

		prob[s] = scaled[s]
		alias[s] = uint32(l)

		scaled[l] = scaled[l] + scaled[s] - 1.0
		if scaled[l] < 1.0 {
			small = append(small, l)
		} else {
			large = append(large, l)
		}
	}

	// remaining buckets are full up to rounding errors
	for _, i := range large {
		prob[i] = 1.0
		alias[i] = uint32(i)
	}
	for _, i := range small {
		prob[i] = 1.0
		alias[i] = uint32(i)
	}
	return prob, alias, nil
}
