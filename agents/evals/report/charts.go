/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"errors"
	"io"
	"slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/praveenksekaran/Agents/agents/evals"
)

// ErrNoMetrics is returned when no summary metric survives the filter.
var ErrNoMetrics = errors.New("no metrics to plot")

// BarChart writes an HTML page with one bar per summary metric whose name
// contains any of metrics, or every metric when none are given.
func BarChart(w io.Writer, result *evals.EvaluationResult, title string, metrics ...string) error {
	selected, err := selectMetrics(result, metrics)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(selected))
	data := make([]opts.BarData, 0, len(selected))
	for _, m := range selected {
		names = append(names, m.Name)
		data = append(data, opts.BarData{Name: m.Name, Value: m.Value})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).AddSeries(title, data)
	return bar.Render(w)
}

// RadarChart writes an HTML page with one filled series over the selected
// summary metrics. Every axis spans the minimum to the maximum selected value.
func RadarChart(w io.Writer, result *evals.EvaluationResult, title string, metrics ...string) error {
	selected, err := selectMetrics(result, metrics)
	if err != nil {
		return err
	}

	values := make([]float64, 0, len(selected))
	for _, m := range selected {
		values = append(values, m.Value)
	}
	lo, hi := slices.Min(values), slices.Max(values)

	indicators := make([]*opts.Indicator, 0, len(selected))
	for _, m := range selected {
		indicators = append(indicators, &opts.Indicator{Name: m.Name, Min: float32(lo), Max: float32(hi)})
	}

	radar := charts.NewRadar()
	radar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithRadarComponentOpts(opts.RadarComponent{Indicator: indicators}),
	)
	radar.AddSeries(title, []opts.RadarData{{Name: title, Value: values}},
		charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.3)}),
	)
	return radar.Render(w)
}

func selectMetrics(result *evals.EvaluationResult, metrics []string) (evals.SummaryMetrics, error) {
	if result == nil {
		return nil, ErrNoMetrics
	}
	selected := result.SummaryMetrics.Filter(metrics...)
	if len(selected) == 0 {
		return nil, ErrNoMetrics
	}
	return selected, nil
}
