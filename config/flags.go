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

package config

import (
	"runtime"

	"github.com/urfave/cli/v2"
)

var (
	LambdaFlag = cli.Float64Flag{
		Name:  "lambda",
		Usage: "mean of the Poisson distribution",
		Value: 10,
	}
	SamplesFlag = cli.IntFlag{
		Name:  "samples",
		Usage: "number of variates to generate",
		Value: DefaultSamples,
	}
	EngineFlag = cli.StringFlag{
		Name:  "engine",
		Usage: "pseudo-random engine family (\"mrg32k3a\", \"mrg31k3p\", \"pcg\")",
		Value: DefaultEngine,
	}
	MethodFlag = cli.StringFlag{
		Name:  "method",
		Usage: "discrete table construction method (\"alias\", \"cdf\")",
		Value: DefaultMethod,
	}
	DomainFlag = cli.StringFlag{
		Name:  "domain",
		Usage: "memory domain of the sampling tables (\"host\", \"device\")",
		Value: DefaultDomain,
	}
	SeedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "seed of the pseudo-random engine",
		Value: DefaultSeed,
	}
	WorkersFlag = cli.IntFlag{
		Name:  "workers",
		Usage: "number of worker goroutines generating variates",
		Value: runtime.NumCPU(),
	}
	OutputFlag = cli.PathFlag{
		Name:  "output",
		Usage: "gzip file receiving the generated variates",
	}
	ProfileDBFlag = cli.PathFlag{
		Name:  "profile-db",
		Usage: "sqlite3 database recording sampling runs",
	}
	TableDBFlag = cli.PathFlag{
		Name:  "table-db",
		Usage: "leveldb directory persisting probability tables",
	}
	PortFlag = cli.StringFlag{
		Name:  "port",
		Usage: "port of the visualizer web server",
		Value: "8080",
	}
	ThresholdFlag = cli.Float64Flag{
		Name:  "threshold",
		Usage: "negligible probability mass excluded from tables",
		Value: NegligibleMass,
	}
	CapacityMultiplierFlag = cli.Float64Flag{
		Name:  "capacity-multiplier",
		Usage: "scale of the sqrt(lambda) capacity heuristic",
		Value: CapacityMultiplier,
	}
	CapacityBaseFlag = cli.Float64Flag{
		Name:  "capacity-base",
		Usage: "offset added to sqrt(lambda) in the capacity heuristic",
		Value: CapacityBase,
	}
	MaxCapacityFlag = cli.IntFlag{
		Name:  "max-capacity",
		Usage: "maximum number of entries of the working buffer",
		Value: MaxCapacity,
	}
	CacheSizeFlag = cli.IntFlag{
		Name:  "cache-size",
		Usage: "number of probability tables cached in memory (0 disables caching)",
		Value: DefaultCacheSize,
	}
	LambdaToleranceFlag = cli.Float64Flag{
		Name:  "lambda-tolerance",
		Usage: "relative difference under which a new lambda reuses the current table (0 compares exactly)",
	}
)
