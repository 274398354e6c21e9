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

// HeadRows is the number of metrics table rows EvalReport shows.
const HeadRows = 5

// EvalReport writes the summary metrics of result as a markdown table,
// followed by the first HeadRows rows of its metrics table when present.
func EvalReport(w io.Writer, result *evals.EvaluationResult) error {
	if result == nil {
		return fmt.Errorf("nil evaluation result")
	}

	if _, err := io.WriteString(w, "### Summary Metrics\n\n"); err != nil {
		return err
	}
	table := newMarkdownTable(w, []string{"metric", "value"})
	for _, m := range result.SummaryMetrics {
		if err := table.Append([]string{m.Name, cell(m.Value)}); err != nil {
			return fmt.Errorf("appending %s: %w", m.Name, err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering summary metrics: %w", err)
	}

	if result.MetricsTable == nil {
		return nil
	}
	if _, err := io.WriteString(w, "\n### Row-wise Metrics\n\n"); err != nil {
		return err
	}
	return writeRows(w, result.MetricsTable.Columns, result.MetricsTable.Head(HeadRows))
}

func writeRows(w io.Writer, columns []string, rows []evals.Row) error {
	table := newMarkdownTable(w, columns)
	for i, row := range rows {
		cells := make([]string, len(columns))
		for j, c := range columns {
			cells[j] = cell(row[c])
		}
		if err := table.Append(cells); err != nil {
			return fmt.Errorf("appending row %d: %w", i, err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering metrics table: %w", err)
	}
	return nil
}
