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

package generator

import (
	"github.com/0xsoniclabs/poissonrng/distribution/poisson"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Summary describes a set of samples.
type Summary struct {
	Count    int
	Mean     float64
	Variance float64
	Min      uint32
	Max      uint32
}

// Summarize computes the moments and the range of the samples.
func Summarize(samples []uint32) Summary {
	if len(samples) == 0 {
		return Summary{}
	}
	x := toFloats(samples)
	mean, variance := stat.MeanVariance(x, nil)
	if len(samples) == 1 {
		variance = 0
	}
	return Summary{
		Count:    len(samples),
		Mean:     mean,
		Variance: variance,
		Min:      uint32(floats.Min(x)),
		Max:      uint32(floats.Max(x)),
	}
}

// Histogram returns the relative frequency of outcomes offset to
// offset+size-1. Samples outside this range count towards the total only.
func Histogram(samples []uint32, offset, size int) []float64 {
	freq := make([]float64, size)
	if len(samples) == 0 {
		return freq
	}
	for _, s := range samples {
		if i := int(s) - offset; i >= 0 && i < size {
			freq[i]++
		}
	}
	floats.Scale(1/float64(len(samples)), freq)
	return freq
}

// minExpected is the smallest expected count of a chi-squared cell.
const minExpected = 5

// GoodnessOfFit returns Pearson's chi-squared statistic of the samples
// against the table together with its p-value. Outcomes outside the
// table are folded into its first and last entry, and neighbouring
// entries are pooled until every cell expects at least five samples.
func GoodnessOfFit(samples []uint32, table poisson.Table) (float64, float64) {
	size := table.Size()
	if size < 2 || len(samples) == 0 {
		return 0, 1
	}
	counts := make([]float64, size)
	for _, s := range samples {
		counts[min(max(int(s)-table.Offset, 0), size-1)]++
	}
	scale := float64(len(samples)) / table.Mass()

	var observed, expected []float64
	var o, e float64
	for i, p := range table.Probabilities {
		o += counts[i]
		e += p * scale
		if e >= minExpected {
			observed = append(observed, o)
			expected = append(expected, e)
			o, e = 0, 0
		}
	}
	if n := len(expected); n > 0 {
		observed[n-1] += o
		expected[n-1] += e
	}
	if len(expected) < 2 {
		return 0, 1
	}
	statistic := stat.ChiSquare(observed, expected)
	pValue := distuv.ChiSquared{K: float64(len(expected) - 1)}.Survival(statistic)
	return statistic, pValue
}

func toFloats(samples []uint32) []float64 {
	x := make([]float64, len(samples))
	for i, s := range samples {
		x[i] = float64(s)
	}
	return x
}
