/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package report renders evaluation results.

EvalReport writes the summary metrics and the head of the metrics table as
markdown tables:

	result := evals.Score(cases)
	if err := report.EvalReport(os.Stdout, result); err != nil {
		return err
	}

DataFrameRows writes individual rows as examples, optionally followed by a
drill-down that compares predicted and reference tool calls position by
position:

	err := report.DataFrameRows(w, result.MetricsTable,
		report.WithColumns("prompt", "response", "predicted_trajectory", "reference_trajectory"),
		report.WithNumRows(3),
		report.WithDrilldown(),
	)

Drilldown returns the comparison as data; rows whose trajectories are not
sequences come back as DrilldownSkipped rather than failing.

BarChart and RadarChart write standalone HTML pages plotting the summary
metrics whose names contain any of the given substrings:

	err := report.RadarChart(f, result, "paint-agent", "/mean")

Observations summarises an evals.NamespacedObserver tree of ResultCollectors,
one table row per namespace, and reports whether any fell below a threshold.
*/
package report
