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

package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/0xsoniclabs/poissonrng/distribution/poisson"
	"github.com/0xsoniclabs/poissonrng/generator"
	"github.com/0xsoniclabs/poissonrng/profile/sampleprofile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTable_ListsEveryOutcome(t *testing.T) {
	table, err := poisson.Build(1)
	require.NoError(t, err)
	var buf bytes.Buffer
	WriteTable(&buf, 1, table, nil)

	out := buf.String()
	assert.Contains(t, out, "Poisson(1): 15 outcomes from 0")
	assert.Contains(t, out, "3.678794e-01")
	assert.Contains(t, strings.ToUpper(out), "CUMULATIVE")
	assert.NotContains(t, strings.ToUpper(out), "EMPIRICAL")
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), table.Size())
}

func TestWriteTable_AddsEmpiricalColumn(t *testing.T) {
	table := poisson.Table{Probabilities: []float64{0.25, 0.75}, Offset: 4}
	var buf bytes.Buffer
	WriteTable(&buf, 5, table, []float64{0.5})

	out := buf.String()
	assert.Contains(t, strings.ToUpper(out), "EMPIRICAL")
	assert.Contains(t, out, "5.000000e-01")
	assert.Contains(t, out, "0.000000e+00")
}

func TestWriteSummary_RendersMoments(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, 10, generator.Summary{Count: 3, Mean: 9.5, Variance: 11, Min: 2, Max: 21}, nil)

	out := buf.String()
	assert.Contains(t, out, "3 samples of Poisson(10)")
	assert.Contains(t, out, "9.500000")
	assert.Contains(t, out, "11.000000")
	assert.Contains(t, out, "21")
	assert.NotContains(t, out, "p-value")
}

func TestWriteSummary_RendersFit(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, 10, generator.Summary{Count: 1}, &Fit{Statistic: 12.5, PValue: 0.25})
	assert.Contains(t, buf.String(), "p-value")
	assert.Contains(t, buf.String(), "0.2500")
}

func TestWriteProfiles_ListsRecords(t *testing.T) {
	var buf bytes.Buffer
	WriteProfiles(&buf, []sampleprofile.Record{
		{Lambda: 10, Engine: "pcg", Method: "alias", Domain: "host", TableSize: 40, Samples: 5, Mean: 9.8, Variance: 10.1, BuildNanos: 1500},
	})
	out := buf.String()
	assert.Contains(t, out, "pcg")
	assert.Contains(t, out, "9.8000")
	assert.Contains(t, out, "1.5µs")
}

func TestWriteSummary_GroupsLargeCounts(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, 10, generator.Summary{Count: 1_000_000, Mean: 10, Variance: 10}, nil)
	assert.Contains(t, buf.String(), "1,000,000 samples of Poisson(10)")
}
