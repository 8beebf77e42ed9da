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

// Package generator fills buffers with Poisson variates in parallel.
package generator

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/0xsoniclabs/poissonrng/config"
	"github.com/0xsoniclabs/poissonrng/distribution/poisson"
	"github.com/0xsoniclabs/poissonrng/engine"
	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

// ChunkSeed derives the engine seed of a chunk, so the content of a chunk
// does not depend on the worker producing it.
func ChunkSeed(seed uint64, chunk uint64) uint64 {
	return seed ^ (chunk+1)*0x9e3779b97f4a7c15
}

// Generate fills out with variates of the sampler. The buffer is split
// into chunks of config.ChunkSize words and every chunk draws from its own
// engine; at most workers chunks are filled at once.
func Generate(ctx context.Context, sampler poisson.Sampler, seed uint64, out []uint32, workers int) error {
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for chunk, start := uint64(0), 0; start < len(out); chunk, start = chunk+1, start+config.ChunkSize {
		if gctx.Err() != nil {
			break
		}
		part := out[start:min(start+config.ChunkSize, len(out))]
		chunkSeed := ChunkSeed(seed, chunk)
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = NewPanicError(fmt.Sprint(r), debug.Stack())
				}
			}()
			if err := gctx.Err(); err != nil {
				return err
			}
			return fill(sampler, chunkSeed, part)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func fill(sampler poisson.Sampler, seed uint64, out []uint32) error {
	gen, err := engine.New(sampler.Family(), seed)
	if err != nil {
		return errors.Wrapf(err, "cannot create %v engine", sampler.Family())
	}
	for i := range out {
		out[i] = sampler.Sample(gen.Next())
	}
	return nil
}
