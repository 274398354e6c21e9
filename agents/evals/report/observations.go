/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"fmt"
	"io"

	"github.com/praveenksekaran/Agents/agents/evals"
)

// Observations walks an observer tree and writes one markdown table row per
// namespace that saw evaluations: its pass rate, mean grade and failures. It
// reports whether any namespace's pass rate or mean grade is below threshold.
func Observations(w io.Writer, obs *evals.NamespacedObserver[*evals.ResultCollector], threshold float64) (bool, error) {
	table := newMarkdownTable(w, []string{"namespace", "pass rate", "mean grade", "failures"})
	below := false
	var appendErr error

	obs.Walk(func(name string, collector *evals.ResultCollector) {
		total := collector.Total()
		if total == 0 || appendErr != nil {
			return
		}
		failures := collector.Failures()
		grades := collector.Grades()

		passRate := float64(total-int64(len(failures))) / float64(total)
		status := ""
		if passRate < threshold || (len(grades) > 0 && collector.Mean() < threshold) {
			below = true
			status = "FAIL "
		}

		mean := "-"
		if len(grades) > 0 {
			mean = fmt.Sprintf("%.2f", collector.Mean())
		}
		failed := "-"
		if len(failures) > 0 {
			failed = cell(failures[0])
			if len(failures) > 1 {
				failed = fmt.Sprintf("%s (+%d more)", failed, len(failures)-1)
			}
		}

		appendErr = table.Append([]string{
			name,
			fmt.Sprintf("%s%.1f%% (%d/%d)", status, passRate*100, total-int64(len(failures)), total),
			mean,
			failed,
		})
	})
	if appendErr != nil {
		return below, fmt.Errorf("appending observation: %w", appendErr)
	}
	if err := table.Render(); err != nil {
		return below, fmt.Errorf("rendering observations: %w", err)
	}
	return below, nil
}
