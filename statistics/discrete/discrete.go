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
	"math"

	"github.com/cockroachdb/errors"
)

// pmfTolerance is the admissible deviation of a pmf's total from one.
const pmfTolerance = 1e-9

// CheckPMF checks if the given probability mass function (pmf) of a
// a discrete finite random variable is valid.  A valid pmf has all
// probabilities in the range [0,1], and the sum of all probabilities
// must be 1.
func CheckPMF(f []float64) error {
	if len(f) == 0 {
		return errors.New("empty pmf")
	}
	total := 0.0
	for i, x := range f {
		if x < 0.0 || x > 1.0 || math.IsNaN(x) {
			return errors.Newf("invalid probability (%v) at position %d of the pmf", x, i)
		}
		total += x
	}
	if math.Abs(total-1.0) > pmfTolerance {
		return errors.Newf("total is not one (%v)", total)
	}
	return nil
}

// Sum adds up the probabilities with Kahan's compensated summation.
func Sum(f []float64) float64 {
	sum := 0.0
	c := 0.0
	for _, p := range f {
		y := p - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}
	return sum
}

// Normalize rescales non-negative weights into a pmf.
func Normalize(w []float64) ([]float64, error) {
	total := Sum(w)
	if !(total > 0) || math.IsInf(total, 0) {
		return nil, errors.Newf("weights cannot be normalized (total %v)", total)
	}
	f := make([]float64, len(w))
	for i, x := range w {
		if x < 0 || math.IsNaN(x) {
			return nil, errors.Newf("invalid weight (%v) at position %d", x, i)
		}
		f[i] = x / total
	}
	return f, nil
}

// CDF returns the cumulative distribution of a pmf. The last entry is
// forced to one so that every uniform number in [0,1) finds a bucket.
func CDF(f []float64) []float64 {
	cdf := make([]float64, len(f))
	sum := 0.0
	c := 0.0
	for i, p := range f {
		y := p - c
		t := sum + y
		c = (t - sum) - y
		sum = t
		cdf[i] = sum
	}
	if n := len(cdf); n > 0 {
		cdf[n-1] = 1.0
	}
	return cdf
}

// Mode returns the index of the largest probability; ties resolve to
// the smallest index.
func Mode(f []float64) int {
	k := 0
	for i := range f {
		if f[i] > f[k] {
			k = i
		}
	}
	return k
}
