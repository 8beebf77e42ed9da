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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgsBuilder_FormatsFlags(t *testing.T) {
	args := NewArgs("tool").
		Arg("sample").
		Flag(LambdaFlag.Name, 2.5).
		Flag(SamplesFlag.Name, 100).
		Flag(SeedFlag.Name, int64(-7)).
		Flag(EngineFlag.Name, "pcg").
		Flag("verbose", true).
		Flag("quiet", false).
		Arg(3).
		Build()
	assert.Equal(t, []string{
		"tool", "sample",
		"--lambda", "2.5",
		"--samples", "100",
		"--seed", "-7",
		"--engine", "pcg",
		"--verbose",
		"3",
	}, args)
}

func TestArgsBuilder_RejectsUnsupportedTypes(t *testing.T) {
	assert.Panics(t, func() { NewArgs("tool").Flag("x", []int{1}) })
	assert.Panics(t, func() { NewArgs("tool").Arg(1.5) })
}
