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
	"math"

	"github.com/0xsoniclabs/poissonrng/logger"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// Config summarizes the options of a poisson-tool run.
type Config struct {
	AppName     string
	CommandName string

	LogLevel string

	Lambda          float64 // mean of the distribution
	LambdaTolerance float64 // relative tolerance of the lambda cache (0 is exact)
	Samples         int     // number of generated variates
	Engine          string  // engine family
	Method          string  // discrete table method
	Domain          string  // memory domain of the tables
	Seed            int64   // engine seed
	Workers         int     // number of generator workers

	Threshold          float64 // negligible probability mass
	CapacityMultiplier float64 // capacity heuristic multiplier
	CapacityBase       float64 // capacity heuristic base offset
	MaxCapacity        int     // capacity limit
	CacheSize          int     // host table cache size

	Output    string // sample file
	ProfileDB string // sqlite3 profile database
	TableDB   string // leveldb table store
	Port      string // visualizer port
}

// NewConfig creates and validates the configuration of the current command.
func NewConfig(ctx *cli.Context) (*Config, error) {
	cfg := createConfigFromFlags(ctx)
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid configuration of %v", cfg.CommandName)
	}
	return cfg, nil
}

// createConfigFromFlags returns Config instance with user specified values or the default ones
func createConfigFromFlags(ctx *cli.Context) *Config {
	cfg := &Config{
		AppName:     ctx.App.HelpName,
		CommandName: ctx.Command.Name,

		LogLevel:           getFlagValue(ctx, logger.LogLevelFlag).(string),
		Lambda:             getFlagValue(ctx, LambdaFlag).(float64),
		LambdaTolerance:    getFlagValue(ctx, LambdaToleranceFlag).(float64),
		Samples:            getFlagValue(ctx, SamplesFlag).(int),
		Engine:             getFlagValue(ctx, EngineFlag).(string),
		Method:             getFlagValue(ctx, MethodFlag).(string),
		Domain:             getFlagValue(ctx, DomainFlag).(string),
		Seed:               getFlagValue(ctx, SeedFlag).(int64),
		Workers:            getFlagValue(ctx, WorkersFlag).(int),
		Threshold:          getFlagValue(ctx, ThresholdFlag).(float64),
		CapacityMultiplier: getFlagValue(ctx, CapacityMultiplierFlag).(float64),
		CapacityBase:       getFlagValue(ctx, CapacityBaseFlag).(float64),
		MaxCapacity:        getFlagValue(ctx, MaxCapacityFlag).(int),
		CacheSize:          getFlagValue(ctx, CacheSizeFlag).(int),
		Output:             getFlagValue(ctx, OutputFlag).(string),
		ProfileDB:          getFlagValue(ctx, ProfileDBFlag).(string),
		TableDB:            getFlagValue(ctx, TableDBFlag).(string),
		Port:               getFlagValue(ctx, PortFlag).(string),
	}
	return cfg
}

// Validate checks the numeric options. Lambda is checked again by the
// table builder; it is rejected here so that a command fails before
// opening any database.
func (cfg *Config) Validate() error {
	if !(cfg.Lambda > 0) || math.IsInf(cfg.Lambda, 0) {
		return errors.Newf("lambda must be a positive finite number, got %v", cfg.Lambda)
	}
	if cfg.LambdaTolerance < 0 || math.IsNaN(cfg.LambdaTolerance) {
		return errors.Newf("lambda tolerance must not be negative, got %v", cfg.LambdaTolerance)
	}
	if cfg.Samples < 0 {
		return errors.Newf("number of samples must not be negative, got %v", cfg.Samples)
	}
	if cfg.Workers < 1 {
		return errors.Newf("number of workers must be at least one, got %v", cfg.Workers)
	}
	if !(cfg.Threshold > 0 && cfg.Threshold < 1) {
		return errors.Newf("threshold must be in (0,1), got %v", cfg.Threshold)
	}
	if !(cfg.CapacityMultiplier > 0) || !(cfg.CapacityBase >= 0) {
		return errors.Newf("invalid capacity heuristic (multiplier %v, base %v)", cfg.CapacityMultiplier, cfg.CapacityBase)
	}
	if cfg.MaxCapacity < 2 {
		return errors.Newf("maximum capacity must be at least two, got %v", cfg.MaxCapacity)
	}
	return nil
}

// getFlagValue returns value specified by user if flag is present in cli context, otherwise return default flag value
func getFlagValue(ctx *cli.Context, flag interface{}) interface{} {
	cmdFlags := ctx.Command.Flags
	for _, cmdFlag := range cmdFlags {
		switch f := flag.(type) {
		case cli.IntFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Int(f.Name)
			}

		case cli.Int64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Int64(f.Name)
			}

		case cli.Float64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Float64(f.Name)
			}

		case cli.StringFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.String(f.Name)
			}

		case cli.PathFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Path(f.Name)
			}

		case cli.BoolFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Bool(f.Name)
			}
		}
	}

	// If flag not found, return the default value of the flag
	switch f := flag.(type) {
	case cli.IntFlag:
		return f.Value
	case cli.Int64Flag:
		return f.Value
	case cli.Float64Flag:
		return f.Value
	case cli.StringFlag:
		return f.Value
	case cli.PathFlag:
		return f.Value
	case cli.BoolFlag:
		return f.Value
	}

	return nil
}
