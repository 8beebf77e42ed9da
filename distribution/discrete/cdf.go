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

// cdfTable keeps the cumulative distribution in the float section of
// its buffer.
type cdfTable struct {
	tableBase
}

func (t *cdfTable) Init(p []float64, offset int) error {
	if err := t.Deallocate(); err != nil {
		return err
	}
	f, err := discrete.Normalize(p)
	if err != nil {
		return errors.Wrap(err, "failed to build cdf table")
	}
	if err := discrete.CheckPMF(f); err != nil {
		return errors.Wrap(err, "failed to build cdf table")
	}
	if err := t.upload(discrete.CDF(f), nil); err != nil {
		return err
	}
	t.size = len(f)
	t.offset = offset
	return nil
}

// Sample returns the first outcome whose cumulative probability reaches
// x = u/2^32.
func (t *cdfTable) Sample(u uint32) uint32 {
	x := float64(u) * uint32Scale
	cdf := t.buf.Floats
	lo, hi := 0, t.size-1
	for lo < hi {
		mid := (lo + hi) / 2
		if x > cdf[mid] {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return uint32(t.offset + lo)
}
