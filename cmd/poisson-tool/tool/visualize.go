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
	"github.com/0xsoniclabs/poissonrng/config"
	"github.com/0xsoniclabs/poissonrng/distribution/poisson"
	"github.com/0xsoniclabs/poissonrng/logger"
	"github.com/0xsoniclabs/poissonrng/samplefile"
	"github.com/0xsoniclabs/poissonrng/visualizer"
	"github.com/cockroachdb/errors"
	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
)

// VisualizeCommand serves charts of a distribution and its samples.
var VisualizeCommand = cli.Command{
	Action:    visualizeAction,
	Name:      "visualize",
	Usage:     "serve charts of the distribution and of samples",
	ArgsUsage: "[sample file]",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&config.LambdaFlag,
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
		&config.PortFlag,
	},
	Description: `The visualize command serves charts on the given port. Samples are
read from the sample file if one is given; otherwise they are generated
with the selected engine.`,
}

func visualizeAction(ctx *cli.Context) error {
	if ctx.Args().Len() > 1 {
		return errors.New("visualize expects at most one sample file")
	}
	cfg, err := config.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "PoissonVisualize")

	view, err := loadView(ctx, cfg, log)
	if err != nil {
		return err
	}
	log.Noticef("Serve charts of lambda %v on port %v", view.Lambda, cfg.Port)
	return visualizer.FireUpWeb(view, cfg.Port)
}

func loadView(ctx *cli.Context, cfg *config.Config, log *logging.Logger) (visualizer.View, error) {
	if ctx.Args().Len() == 0 {
		r, err := generateSamples(ctx, cfg, log)
		if err != nil {
			return visualizer.View{}, err
		}
		return visualizer.View{Lambda: cfg.Lambda, Table: r.table, Samples: r.samples}, nil
	}

	fr, err := samplefile.NewFileReader(ctx.Args().First())
	if err != nil {
		return visualizer.View{}, err
	}
	samples, err := fr.ReadAll()
	if err = errors.Join(err, fr.Close()); err != nil {
		return visualizer.View{}, err
	}
	lambda := fr.Header().Lambda
	log.Infof("Read %d samples of lambda %v from %v", len(samples), lambda, ctx.Args().First())
	table, err := poisson.ParamsFromConfig(cfg).Build(lambda)
	if err != nil {
		return visualizer.View{}, err
	}
	return visualizer.View{Lambda: lambda, Table: table, Samples: samples}, nil
}
