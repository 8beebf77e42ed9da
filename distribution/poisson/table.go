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

// Package poisson builds truncated Poisson probability tables, keeps them
// in a memory domain as discrete lookup tables and rebuilds them only
// when the mean changes.
package poisson

import (
	"math"
	"slices"

	"github.com/0xsoniclabs/poissonrng/config"
	"github.com/0xsoniclabs/poissonrng/statistics/discrete"
	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidLambda marks means that are not positive and finite, or
	// whose working buffer would exceed the configured capacity limit.
	ErrInvalidLambda = errors.New("invalid lambda")
	// ErrDegenerate marks truncation windows holding no outcome.
	ErrDegenerate = errors.New("distribution-degenerate")
	// ErrNotInitialized is returned when sampling is requested before a
	// table was built.
	ErrNotInitialized = errors.New("distribution not initialized")
)

// Params tunes the construction of probability tables.
type Params struct {
	Threshold          float64 // negligible probability mass
	CapacityMultiplier float64 // scale of the sqrt(λ) capacity heuristic
	CapacityBase       float64 // offset added to sqrt(λ)
	MaxCapacity        int     // limit of the working buffer
}

// DefaultParams returns the parameters of the config package.
func DefaultParams() Params {
	return Params{
		Threshold:          config.NegligibleMass,
		CapacityMultiplier: config.CapacityMultiplier,
		CapacityBase:       config.CapacityBase,
		MaxCapacity:        config.MaxCapacity,
	}
}

// ParamsFromConfig returns the parameters selected by a configuration.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		Threshold:          cfg.Threshold,
		CapacityMultiplier: cfg.CapacityMultiplier,
		CapacityBase:       cfg.CapacityBase,
		MaxCapacity:        cfg.MaxCapacity,
	}
}

// Check validates the parameters.
func (p Params) Check() error {
	if !(p.Threshold > 0 && p.Threshold < 1) {
		return errors.Newf("threshold (%v) is not in (0,1)", p.Threshold)
	}
	if !(p.CapacityMultiplier > 0) || math.IsInf(p.CapacityMultiplier, 0) {
		return errors.Newf("capacity multiplier (%v) is not positive", p.CapacityMultiplier)
	}
	if !(p.CapacityBase >= 0) || math.IsInf(p.CapacityBase, 0) {
		return errors.Newf("capacity base (%v) is negative", p.CapacityBase)
	}
	if p.MaxCapacity < 2 {
		return errors.Newf("maximum capacity (%v) is below two", p.MaxCapacity)
	}
	return nil
}

// Capacity returns the size of the working buffer for λ, that is
// 2 * floor(CapacityMultiplier * (CapacityBase + sqrt(λ))).
func (p Params) Capacity(lambda float64) (int, error) {
	if !(lambda > 0) || math.IsInf(lambda, 0) {
		return 0, errors.Mark(errors.Newf("lambda (%v) must be positive and finite", lambda), ErrInvalidLambda)
	}
	half := math.Floor(p.CapacityMultiplier * (p.CapacityBase + math.Sqrt(lambda)))
	if half > float64(p.MaxCapacity/2) {
		return 0, errors.Mark(errors.Newf("lambda (%v) needs a buffer above the capacity limit (%v)", lambda, p.MaxCapacity), ErrInvalidLambda)
	}
	if half < 1 {
		return 0, errors.Mark(errors.Newf("capacity heuristic yields an empty buffer for lambda %v", lambda), ErrDegenerate)
	}
	return 2 * int(half), nil
}

// Table is a truncated Poisson probability mass function. Probabilities[i]
// is the probability of outcome Offset+i.
type Table struct {
	Probabilities []float64
	Offset        int
}

// Size returns the number of outcomes in the table.
func (t Table) Size() int {
	return len(t.Probabilities)
}

// Outcome returns the outcome of entry i.
func (t Table) Outcome(i int) int {
	return t.Offset + i
}

// Mass returns the total probability kept in the table.
func (t Table) Mass() float64 {
	return discrete.Sum(t.Probabilities)
}

// Mode returns the most probable outcome.
func (t Table) Mode() int {
	return t.Outcome(discrete.Mode(t.Probabilities))
}

// PMF is the Poisson probability of x computed in log space.
func PMF(lambda float64, x float64) float64 {
	return pmf(lambda, math.Log(lambda), x)
}

func pmf(lambda, logLambda, x float64) float64 {
	lg, _ := math.Lgamma(x + 1.0)
	return math.Exp(x*logLambda - lg - lambda)
}

// Build computes the table of λ with the default parameters.
func Build(lambda float64) (Table, error) {
	return DefaultParams().Build(lambda)
}

// Build computes the truncated table of λ. The window of the working
// buffer is centred at floor(λ); probabilities are computed from the
// centre outwards and each direction stops at the first value below the
// threshold, so only the non-negligible part of the support is visited.
func (p Params) Build(lambda float64) (Table, error) {
	if err := p.Check(); err != nil {
		return Table{}, err
	}
	capacity, err := p.Capacity(lambda)
	if err != nil {
		return Table{}, err
	}

	half := capacity / 2
	left := int(math.Floor(lambda)) - half
	logLambda := math.Log(lambda)
	prob := func(i int) float64 {
		return pmf(lambda, logLambda, float64(left+i))
	}

	buf := make([]float64, capacity)
	lo := 0
	for i := half; i >= 0; i-- {
		pp := prob(i)
		if pp < p.Threshold {
			lo = i + 1
			break
		}
		buf[i] = pp
	}
	hi := capacity - 1
	for i := half + 1; i < capacity; i++ {
		pp := prob(i)
		if pp < p.Threshold {
			hi = i - 1
			break
		}
		buf[i] = pp
	}
	if hi < lo {
		return Table{}, errors.Mark(errors.Newf("no outcome of lambda %v reaches the threshold %v", lambda, p.Threshold), ErrDegenerate)
	}

	size := copy(buf, buf[lo:hi+1])
	return Table{
		Probabilities: slices.Clip(buf[:size]),
		Offset:        left + lo,
	}, nil
}
