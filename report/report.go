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

// Package report renders probability tables and sample summaries as
// text tables.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/0xsoniclabs/poissonrng/distribution/poisson"
	"github.com/0xsoniclabs/poissonrng/generator"
	"github.com/0xsoniclabs/poissonrng/profile/sampleprofile"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer groups the digits of large counts.
var printer = message.NewPrinter(language.English)

// Fit is the goodness of fit of samples against a table.
type Fit struct {
	Statistic float64
	PValue    float64
}

// WriteTable renders the outcomes of a table with their probability and
// cumulative probability. When freq is not nil, it holds the empirical
// frequency of every outcome and is rendered as an extra column.
func WriteTable(w io.Writer, lambda float64, t poisson.Table, freq []float64) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.SetTitle(fmt.Sprintf("Poisson(%v): %d outcomes from %d", lambda, t.Size(), t.Offset))
	header := table.Row{"Outcome", "Probability", "Cumulative"}
	if freq != nil {
		header = append(header, "Empirical")
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	cumulative := 0.0
	for i, p := range t.Probabilities {
		cumulative += p
		row := table.Row{t.Outcome(i), fmt.Sprintf("%.6e", p), fmt.Sprintf("%.9f", cumulative)}
		if freq != nil {
			f := 0.0
			if i < len(freq) {
				f = freq[i]
			}
			row = append(row, fmt.Sprintf("%.6e", f))
		}
		tw.AppendRow(row)
	}
	tw.AppendFooter(table.Row{"Mode", t.Mode(), fmt.Sprintf("mass %.12f", t.Mass())})
	tw.Render()
}

// WriteSummary renders the statistics of a sample against the moments of
// the distribution. A nil fit omits the goodness of fit rows.
func WriteSummary(w io.Writer, lambda float64, s generator.Summary, fit *Fit) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.SetTitle(printer.Sprintf("%d samples of Poisson(%s)", s.Count, fmt.Sprint(lambda)))
	tw.AppendHeader(table.Row{"Statistic", "Sample", "Expected"})
	tw.AppendRows([]table.Row{
		{"mean", fmt.Sprintf("%.6f", s.Mean), fmt.Sprintf("%.6f", lambda)},
		{"variance", fmt.Sprintf("%.6f", s.Variance), fmt.Sprintf("%.6f", lambda)},
		{"min", s.Min, ""},
		{"max", s.Max, ""},
	})
	if fit != nil {
		tw.AppendSeparator()
		tw.AppendRows([]table.Row{
			{"chi-squared", fmt.Sprintf("%.4f", fit.Statistic), ""},
			{"p-value", fmt.Sprintf("%.4f", fit.PValue), ""},
		})
	}
	tw.Render()
}

// WriteProfiles renders the records of a profile database.
func WriteProfiles(w io.Writer, records []sampleprofile.Record) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Lambda", "Engine", "Method", "Domain", "Size", "Offset", "Samples", "Mean", "Variance", "Build", "Sample"})
	for _, r := range records {
		tw.AppendRow(table.Row{
			r.Lambda, r.Engine, r.Method, r.Domain, r.TableSize, r.TableOffset, r.Samples,
			fmt.Sprintf("%.4f", r.Mean), fmt.Sprintf("%.4f", r.Variance),
			time.Duration(r.BuildNanos), time.Duration(r.SampleNanos),
		})
	}
	tw.AppendFooter(table.Row{"", "", "", "", "", "", "Runs", len(records)})
	tw.Render()
}
