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

package tool

import (
	"time"

	"github.com/0xsoniclabs/poissonrng/config"
	"github.com/0xsoniclabs/poissonrng/distribution/poisson"
	"github.com/0xsoniclabs/poissonrng/engine"
	"github.com/0xsoniclabs/poissonrng/generator"
	"github.com/0xsoniclabs/poissonrng/logger"
	"github.com/0xsoniclabs/poissonrng/profile/sampleprofile"
	"github.com/0xsoniclabs/poissonrng/report"
	"github.com/0xsoniclabs/poissonrng/samplefile"
	"github.com/cockroachdb/errors"
	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
)

// SampleCommand generates variates and prints their summary.
var SampleCommand = cli.Command{
	Action:    sampleAction,
	Name:      "sample",
	Usage:     "generate Poisson variates",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&config.LambdaFlag,
		&config.LambdaToleranceFlag,
		&config.SamplesFlag,
		&config.EngineFlag,
		&config.MethodFlag,
		&config.DomainFlag,
		&config.SeedFlag,
		&config.WorkersFlag,
		&config.ThresholdFlag,
		&config.CapacityMultiplierFlag,
		&config.CapacityBaseFlag,
		&config.MaxCapacityFlag,
		&config.CacheSizeFlag,
		&config.TableDBFlag,
		&config.OutputFlag,
		&config.ProfileDBFlag,
	},
	Description: "The sample command draws variates with the selected engine and lookup method and reports their statistics.",
}

// run is the outcome of a sampling run.
type run struct {
	table      poisson.Table
	samples    []uint32
	buildTime  time.Duration
	sampleTime time.Duration
}

// generateSamples builds the distribution of cfg.Lambda and draws
// cfg.Samples variates from it.
func generateSamples(ctx *cli.Context, cfg *config.Config, log *logging.Logger) (r run, err error) {
	family, err := engine.ParseFamily(cfg.Engine)
	if err != nil {
		return run{}, err
	}
	s, err := newSession(cfg, log)
	if err != nil {
		return run{}, err
	}
	defer func() {
		err = errors.Join(err, s.Close())
	}()

	start := time.Now()
	if err := s.manager.SetLambda(cfg.Lambda); err != nil {
		return run{}, err
	}
	r.buildTime = time.Since(start)
	if r.table, err = s.source.Get(cfg.Lambda); err != nil {
		return run{}, err
	}

	sampler, err := s.manager.Sampler(family)
	if err != nil {
		return run{}, err
	}
	r.samples = make([]uint32, cfg.Samples)
	start = time.Now()
	if err := generator.Generate(ctx.Context, sampler, uint64(cfg.Seed), r.samples, cfg.Workers); err != nil {
		return run{}, err
	}
	r.sampleTime = time.Since(start)
	h, m, sec := logger.ParseTime(r.sampleTime)
	log.Noticef("Generated %d %v variates in %vh %vm %vs", cfg.Samples, family, h, m, sec)
	return r, nil
}

func sampleAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "PoissonSample")

	r, err := generateSamples(ctx, cfg, log)
	if err != nil {
		return err
	}
	summary := generator.Summarize(r.samples)
	statistic, pValue := generator.GoodnessOfFit(r.samples, r.table)
	report.WriteSummary(ctx.App.Writer, cfg.Lambda, summary, &report.Fit{Statistic: statistic, PValue: pValue})

	if cfg.Output != "" {
		log.Noticef("Write sample file %v", cfg.Output)
		if err := writeSampleFile(cfg, r.samples); err != nil {
			return err
		}
	}
	if cfg.ProfileDB != "" {
		log.Noticef("Record run in profile database %v", cfg.ProfileDB)
		if err := recordProfile(cfg, r, summary); err != nil {
			return err
		}
	}
	return nil
}

func writeSampleFile(cfg *config.Config, samples []uint32) error {
	family, err := engine.ParseFamily(cfg.Engine)
	if err != nil {
		return err
	}
	fw, err := samplefile.NewFileWriter(cfg.Output)
	if err != nil {
		return err
	}
	if err := fw.WriteHeader(samplefile.Header{Lambda: cfg.Lambda, Engine: family, Seed: uint64(cfg.Seed)}); err != nil {
		return errors.Join(err, fw.Close())
	}
	for start := 0; start < len(samples); start += config.ChunkSize {
		if err := fw.WriteSamples(samples[start:min(start+config.ChunkSize, len(samples))]); err != nil {
			return errors.Join(err, fw.Close())
		}
	}
	return fw.Close()
}

func recordProfile(cfg *config.Config, r run, summary generator.Summary) error {
	db, err := sampleprofile.NewProfileDB(cfg.ProfileDB)
	if err != nil {
		return err
	}
	err = db.Add(sampleprofile.Record{
		Lambda:      cfg.Lambda,
		Engine:      cfg.Engine,
		Method:      cfg.Method,
		Domain:      cfg.Domain,
		TableSize:   r.table.Size(),
		TableOffset: r.table.Offset,
		Samples:     summary.Count,
		Mean:        summary.Mean,
		Variance:    summary.Variance,
		BuildNanos:  r.buildTime.Nanoseconds(),
		SampleNanos: r.sampleTime.Nanoseconds(),
	})
	return errors.Join(err, db.Close())
}
