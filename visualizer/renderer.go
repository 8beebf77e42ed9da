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

// Package visualizer serves charts of a truncated Poisson distribution and
// of samples drawn from it.
package visualizer

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// HTML references for the rendered pages.
const pmfRef = "pmf"
const cdfRef = "cdf"
const summaryRef = "summary"

// MainHtml is the index page.
const MainHtml = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>Poisson Distribution</title>
  </head>
  <body>
    <h1>Poisson Distribution</h1>
    <ul>
    <li> <h3> <a href="/` + pmfRef + `"> Probability Mass Function </a> </h3> </li>
    <li> <h3> <a href="/` + cdfRef + `"> Cumulative Distribution Function </a> </h3> </li>
    <li> <h3> <a href="/` + summaryRef + `"> Sample Summary </a> </h3> </li>
    </ul>
</body>
</html>
`

// renderMain renders the main menu.
func renderMain(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprint(w, MainHtml)
}

func globalOptions(title string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Theme:     types.ThemeChalk,
			PageTitle: title,
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
	}
}

// outcomeLabels returns the outcomes of a window as axis labels.
func outcomeLabels(offset, size int) []string {
	labels := make([]string, size)
	for i := range labels {
		labels[i] = strconv.Itoa(offset + i)
	}
	return labels
}

// convertBarData converts probabilities to bar chart items.
func convertBarData(data []float64) []opts.BarData {
	items := make([]opts.BarData, len(data))
	for i, v := range data {
		items[i] = opts.BarData{Value: v}
	}
	return items
}

// convertLineData converts cumulative probabilities to line chart items.
func convertLineData(data []float64) []opts.LineData {
	items := make([]opts.LineData, len(data))
	for i, v := range data {
		items[i] = opts.LineData{Value: v}
	}
	return items
}

// newPMFChart creates a bar chart of the table and the empirical frequencies.
func newPMFChart(view *viewState) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions(fmt.Sprintf("Poisson(%v) PMF", view.lambda))...)
	bar.SetXAxis(outcomeLabels(view.table.Offset, view.table.Size())).
		AddSeries("Probability", convertBarData(view.table.Probabilities))
	if view.empirical != nil {
		bar.AddSeries("Empirical", convertBarData(view.empirical))
	}
	return bar
}

// renderPMF renders the probability mass function.
func renderPMF(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	_ = newPMFChart(view).Render(w)
}

// newCDFChart creates a line chart of the cumulative distribution.
func newCDFChart(view *viewState) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(globalOptions(fmt.Sprintf("Poisson(%v) CDF", view.lambda))...)
	line.SetXAxis(outcomeLabels(view.table.Offset, view.table.Size())).
		AddSeries("Cumulative", convertLineData(view.cdf))
	if view.ecdf != nil {
		line.AddSeries("Empirical", convertLineData(view.ecdf))
	}
	return line
}

// renderCDF renders the cumulative distribution function.
func renderCDF(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	_ = newCDFChart(view).Render(w)
}

// renderSummary renders the sample statistics as a bar chart next to the
// moments of the distribution.
func renderSummary(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if view.summary.Count == 0 {
		http.Error(w, "visualizer: no samples", http.StatusNotFound)
		return
	}
	title := fmt.Sprintf("%d samples; chi-squared %.2f (p=%.3f)", view.summary.Count, view.fit[0], view.fit[1])
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions(title)...)
	bar.SetXAxis([]string{"mean", "variance"}).
		AddSeries("Sample", convertBarData([]float64{view.summary.Mean, view.summary.Variance})).
		AddSeries("Expected", convertBarData([]float64{view.lambda, view.lambda}))
	_ = bar.Render(w)
}

func newServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", renderMain)
	mux.HandleFunc("/"+pmfRef, renderPMF)
	mux.HandleFunc("/"+cdfRef, renderCDF)
	mux.HandleFunc("/"+summaryRef, renderSummary)
	return mux
}

// FireUpWeb publishes the view and serves the charts on the given port.
func FireUpWeb(view View, addr string) error {
	if err := setViewState(view); err != nil {
		return err
	}
	return http.ListenAndServe(":"+addr, newServeMux())
}
