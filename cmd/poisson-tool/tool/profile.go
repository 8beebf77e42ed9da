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
	"os"

	"github.com/0xsoniclabs/poissonrng/logger"
	"github.com/0xsoniclabs/poissonrng/profile/sampleprofile"
	"github.com/0xsoniclabs/poissonrng/report"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// ProfileCommand lists the runs recorded in a profile database.
var ProfileCommand = cli.Command{
	Action:    profileAction,
	Name:      "profile",
	Usage:     "list the runs recorded in a profile database",
	ArgsUsage: "<profile db>",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
	},
}

func profileAction(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return errors.New("profile expects the path of a profile database")
	}
	log := logger.NewLogger(ctx.String(logger.LogLevelFlag.Name), "PoissonProfile")
	if _, err := os.Stat(ctx.Args().First()); err != nil {
		return errors.Wrapf(err, "cannot open profile database %v", ctx.Args().First())
	}
	db, err := sampleprofile.NewProfileDB(ctx.Args().First())
	if err != nil {
		return err
	}
	records, err := db.Records()
	if err != nil {
		return errors.Join(err, db.Close())
	}
	log.Infof("Found %d runs", len(records))
	report.WriteProfiles(ctx.App.Writer, records)
	return db.Close()
}
