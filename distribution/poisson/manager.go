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
	"math"

	"github.com/0xsoniclabs/poissonrng/engine"
	"github.com/cockroachdb/errors"
)

// noCopy is caught by go vet's copylocks check.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Manager owns one Distribution and the mean it was built for, and
// rebuilds it only when a different mean is requested. Managers are not
// safe for concurrent use and must not be copied; ownership is handed
// over with Move or MoveFrom.
type Manager struct {
	noCopy   noCopy
	settings settings
	dist     *Distribution
	lambda   float64
	built    bool
	rebuilds uint64
}

// NewManager creates a manager holding an empty distribution.
func NewManager(opts ...Option) *Manager {
	s := newSettings(opts)
	return &Manager{
		settings: s,
		dist:     &Distribution{settings: s},
	}
}

// SetLambda makes the distribution match lambda. Nothing is rebuilt if
// lambda equals the mean of the current table. On failure the cached
// mean is kept.
func (m *Manager) SetLambda(lambda float64) error {
	if m.built && m.sameLambda(lambda) {
		return nil
	}
	m.settings.log.Debugf("rebuilding %v table for lambda %v", m.settings.method, lambda)
	if err := m.dist.SetLambda(lambda); err != nil {
		if m.dist.Empty() {
			m.built = false
			m.lambda = 0
		}
		return err
	}
	m.lambda = lambda
	m.built = true
	m.rebuilds++
	m.settings.log.Debugf("table for lambda %v has %d outcomes starting at %d", lambda, m.dist.Size(), m.dist.Offset())
	if m.settings.onRebuild != nil {
		m.settings.onRebuild(lambda)
	}
	return nil
}

func (m *Manager) sameLambda(lambda float64) bool {
	if m.settings.tolerance <= 0 {
		return lambda == m.lambda
	}
	return math.Abs(lambda-m.lambda) <= m.settings.tolerance*math.Max(math.Abs(lambda), math.Abs(m.lambda))
}

// Lambda returns the mean of the current table and whether one is built.
func (m *Manager) Lambda() (float64, bool) {
	return m.lambda, m.built
}

// Rebuilds returns the number of successful rebuilds.
func (m *Manager) Rebuilds() uint64 {
	return m.rebuilds
}

// Distribution returns the owned distribution.
func (m *Manager) Distribution() *Distribution {
	return m.dist
}

// Sampler returns the sampling adapter of the managed distribution for
// the given engine family. The sampler reads the table current at each
// call, so it stays valid across rebuilds and follows the distribution
// through Move and MoveFrom; it must not be used after Close.
func (m *Manager) Sampler(family engine.Family) (Sampler, error) {
	if !m.built || m.dist.Empty() {
		return Sampler{}, ErrNotInitialized
	}
	return NewSampler(m.dist, family), nil
}

// Move transfers the distribution into a new manager and leaves m empty.
func (m *Manager) Move() *Manager {
	dst := &Manager{
		settings: m.settings,
		dist:     m.dist,
		lambda:   m.lambda,
		built:    m.built,
		rebuilds: m.rebuilds,
	}
	m.reset()
	return dst
}

// MoveFrom releases the distribution of m and takes over the one of src,
// which is left empty.
func (m *Manager) MoveFrom(src *Manager) error {
	if src == m {
		return nil
	}
	err := m.dist.Release()
	m.settings = src.settings
	m.dist = src.dist
	m.lambda = src.lambda
	m.built = src.built
	m.rebuilds = src.rebuilds
	src.reset()
	if err != nil {
		return errors.Wrap(err, "cannot release replaced distribution")
	}
	return nil
}

// Close releases the distribution. Later calls are no-ops.
func (m *Manager) Close() error {
	err := m.dist.Release()
	m.reset()
	return err
}

func (m *Manager) reset() {
	m.dist = &Distribution{settings: m.settings}
	m.lambda = 0
	m.built = false
	m.rebuilds = 0
}
