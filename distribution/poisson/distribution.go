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
	"github.com/0xsoniclabs/poissonrng/distribution/discrete"
	"github.com/0xsoniclabs/poissonrng/logger"
	"github.com/0xsoniclabs/poissonrng/memory"
	"github.com/cockroachdb/errors"
	"github.com/op/go-logging"
)

// Option configures a Distribution or a Manager.
type Option func(*settings)

type settings struct {
	method    discrete.Method
	domain    memory.Domain
	alloc     memory.Allocator
	source    TableCache
	log       *logging.Logger
	tolerance float64
	onRebuild func(lambda float64)
}

func newSettings(opts []Option) settings {
	s := settings{
		method: discrete.Alias,
		domain: memory.Device,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.alloc == nil {
		s.alloc = memory.NewHeapAllocator()
	}
	if s.source == nil {
		s.source = NewTableCache(0, DefaultParams())
	}
	if s.log == nil {
		s.log = logger.NewLogger("info", "Poisson")
	}
	return s
}

// WithMethod selects the lookup table construction.
func WithMethod(method discrete.Method) Option {
	return func(s *settings) { s.method = method }
}

// WithDomain selects the memory domain holding the lookup tables.
func WithDomain(domain memory.Domain) Option {
	return func(s *settings) { s.domain = domain }
}

// WithAllocator sets the allocator of the lookup tables.
func WithAllocator(alloc memory.Allocator) Option {
	return func(s *settings) { s.alloc = alloc }
}

// WithParams builds tables with the given parameters and no caching.
func WithParams(params Params) Option {
	return func(s *settings) { s.source = NewTableCache(0, params) }
}

// WithTableCache obtains host tables from the given cache.
func WithTableCache(cache TableCache) Option {
	return func(s *settings) { s.source = cache }
}

// WithLogger sets the logger.
func WithLogger(log *logging.Logger) Option {
	return func(s *settings) { s.log = log }
}

// WithLambdaTolerance makes a Manager treat means within the given
// relative distance of the cached one as equal. Zero requires exact
// equality.
func WithLambdaTolerance(tolerance float64) Option {
	return func(s *settings) { s.tolerance = tolerance }
}

// WithRebuildHook registers a function called after every rebuild of a
// Manager's distribution.
func WithRebuildHook(hook func(lambda float64)) Option {
	return func(s *settings) { s.onRebuild = hook }
}

// Distribution is a Poisson distribution held as a discrete lookup table
// in a memory domain. The zero value of the table means empty.
type Distribution struct {
	settings settings
	table    discrete.Table
}

// NewDistribution creates an empty distribution.
func NewDistribution(opts ...Option) *Distribution {
	return &Distribution{settings: newSettings(opts)}
}

// NewDistributionWithLambda creates a distribution built for lambda.
func NewDistributionWithLambda(lambda float64, opts ...Option) (*Distribution, error) {
	d := NewDistribution(opts...)
	if err := d.SetLambda(lambda); err != nil {
		return nil, err
	}
	return d, nil
}

// SetLambda rebuilds the lookup table for lambda. The host table is
// computed first so that a rejected mean leaves the current table intact.
func (d *Distribution) SetLambda(lambda float64) error {
	host, err := d.settings.source.Get(lambda)
	if err != nil {
		return errors.Wrapf(err, "cannot compute probability table of lambda %v", lambda)
	}
	if err := d.Release(); err != nil {
		return err
	}
	table, err := discrete.New(d.settings.method, d.settings.domain, d.settings.alloc)
	if err != nil {
		return err
	}
	if err := table.Init(host.Probabilities, host.Offset); err != nil {
		return errors.Wrapf(err, "cannot initialise %v table of lambda %v", d.settings.method, lambda)
	}
	d.table = table
	return nil
}

// Sample maps a uniform word to an outcome. The distribution must not be
// empty.
func (d *Distribution) Sample(u uint32) uint32 {
	return d.table.Sample(u)
}

// Size returns the number of outcomes of the table.
func (d *Distribution) Size() int {
	if d.table == nil {
		return 0
	}
	return d.table.Size()
}

// Offset returns the smallest outcome of the table.
func (d *Distribution) Offset() int {
	if d.table == nil {
		return 0
	}
	return d.table.Offset()
}

// Empty reports whether no table is held.
func (d *Distribution) Empty() bool {
	return d.table == nil || d.table.Empty()
}

// Table returns the lookup table, nil when empty.
func (d *Distribution) Table() discrete.Table {
	return d.table
}

// Release frees the lookup table. Releasing an empty distribution is a
// no-op.
func (d *Distribution) Release() error {
	if d.table == nil {
		return nil
	}
	err := d.table.Deallocate()
	d.table = nil
	return err
}
