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

// Package chart renders validation trials as an HTML bar chart.
package chart

import (
	"fmt"
	"io"

	"github.com/0xsoniclabs/occupancy/report"
	"github.com/cockroachdb/errors"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// convertProbabilities converts a probability series into bar items.
func convertProbabilities(data []float64) []opts.BarData {
	items := make([]opts.BarData, 0, len(data))
	for _, v := range data {
		items = append(items, opts.BarData{Value: v})
	}
	return items
}

// newTrialChart builds a bar chart comparing computed and empirical
// probabilities of each trial.
func newTrialChart(title string, records []report.Record) *charts.Bar {
	labels := make([]string, 0, len(records))
	computed := make([]float64, 0, len(records))
	empirical := make([]float64, 0, len(records))
	for _, r := range records {
		label := fmt.Sprintf("#%d %s", r.Trial, r.Pattern)
		if r.Exceeded {
			label += " (!)"
		}
		labels = append(labels, label)
		computed = append(computed, r.Computed)
		empirical = append(empirical, r.Empirical)
	}

	chart := charts.NewBar()
	chart.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{
		Theme: types.ThemeChalk,
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
		}))
	chart.SetXAxis(labels).
		AddSeries("Computed", convertProbabilities(computed)).
		AddSeries("Empirical", convertProbabilities(empirical))
	return chart
}

// Render writes the chart of the given trials as an HTML page.
func Render(w io.Writer, title string, records []report.Record) error {
	if len(records) == 0 {
		return errors.New("no trials to render")
	}
	if err := newTrialChart(title, records).Render(w); err != nil {
		return errors.Wrap(err, "failed to render trial chart")
	}
	return nil
}
