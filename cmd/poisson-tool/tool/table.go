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
	"github.com/0xsoniclabs/poissonrng/logger"
	"github.com/0xsoniclabs/poissonrng/report"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// TableCommand prints the truncated probability table of a mean.
var TableCommand = cli.Command{
	Action:    tableAction,
	Name:      "table",
	Usage:     "build and print the probability table of lambda",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&config.LambdaFlag,
		&config.ThresholdFlag,
		&config.CapacityMultiplierFlag,
		&config.CapacityBaseFlag,
		&config.MaxCapacityFlag,
		&config.CacheSizeFlag,
		&config.TableDBFlag,
	},
	Description: "The table command computes the truncated Poisson table of lambda, optionally persisting it in a table store.",
}

func tableAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "PoissonTable")
	source, closeSource, err := openTableSource(cfg)
	if err != nil {
		return err
	}
	table, err := source.Get(cfg.Lambda)
	if err != nil {
		return errors.Join(err, closeSource())
	}
	log.Noticef("Table of lambda %v holds %d outcomes starting at %d", cfg.Lambda, table.Size(), table.Offset)
	report.WriteTable(ctx.App.Writer, cfg.Lambda, table, nil)
	return closeSource()
}
