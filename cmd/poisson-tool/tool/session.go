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

// Package tool implements the commands of poisson-tool.
package tool

import (
	"github.com/0xsoniclabs/poissonrng/config"
	"github.com/0xsoniclabs/poissonrng/distribution/discrete"
	"github.com/0xsoniclabs/poissonrng/distribution/poisson"
	"github.com/0xsoniclabs/poissonrng/memory"
	"github.com/0xsoniclabs/poissonrng/tablestore"
	"github.com/cockroachdb/errors"
	"github.com/op/go-logging"
)

// openTableSource returns the table store selected by the configuration,
// or an in-memory cache when no store is configured. The returned
// function closes the source.
func openTableSource(cfg *config.Config) (poisson.TableCache, func() error, error) {
	params := poisson.ParamsFromConfig(cfg)
	if err := params.Check(); err != nil {
		return nil, nil, err
	}
	if cfg.TableDB == "" {
		return poisson.NewTableCache(cfg.CacheSize, params), func() error { return nil }, nil
	}
	store, err := tablestore.Open(cfg.TableDB, params)
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}

// session is a manager with its table source and allocator.
type session struct {
	manager *poisson.Manager
	source  poisson.TableCache
	alloc   *memory.TrackingAllocator
	method  discrete.Method
	domain  memory.Domain
	close   func() error
}

func newSession(cfg *config.Config, log *logging.Logger) (*session, error) {
	method, err := discrete.ParseMethod(cfg.Method)
	if err != nil {
		return nil, err
	}
	domain, err := memory.ParseDomain(cfg.Domain)
	if err != nil {
		return nil, err
	}
	source, closeSource, err := openTableSource(cfg)
	if err != nil {
		return nil, err
	}
	alloc := memory.NewTrackingAllocator(nil)
	manager := poisson.NewManager(
		poisson.WithMethod(method),
		poisson.WithDomain(domain),
		poisson.WithAllocator(alloc),
		poisson.WithTableCache(source),
		poisson.WithLogger(log),
		poisson.WithLambdaTolerance(cfg.LambdaTolerance),
		poisson.WithRebuildHook(func(lambda float64) {
			log.Infof("Built %v table for lambda %v in %v memory", method, lambda, domain)
		}),
	)
	return &session{
		manager: manager,
		source:  source,
		alloc:   alloc,
		method:  method,
		domain:  domain,
		close:   closeSource,
	}, nil
}

// Close releases the distribution and closes the table source.
func (s *session) Close() error {
	err := errors.Join(s.manager.Close(), s.close())
	if live := s.alloc.Stats().Live; live != 0 && err == nil {
		err = errors.Newf("%d buffers were not released", live)
	}
	return err
}
