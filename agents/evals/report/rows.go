/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/praveenksekaran/Agents/agents/evals"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultNumRows is the number of rows DataFrameRows shows by default.
const DefaultNumRows = 3

// RowOption configures DataFrameRows.
type RowOption func(*rowConfig)

type rowConfig struct {
	columns   []string
	numRows   int
	drilldown bool
}

// WithColumns restricts the output to the given columns, in that order.
func WithColumns(columns ...string) RowOption {
	return func(c *rowConfig) {
		c.columns = columns
	}
}

// WithNumRows sets the number of rows shown.
func WithNumRows(n int) RowOption {
	return func(c *rowConfig) {
		c.numRows = n
	}
}

// WithDrilldown adds a trajectory drill-down after each row when both
// trajectory columns are shown.
func WithDrilldown() RowOption {
	return func(c *rowConfig) {
		c.drilldown = true
	}
}

// DataFrameRows writes the first rows of table one example at a time, each
// column as a title-cased heading followed by its value.
func DataFrameRows(w io.Writer, table *evals.MetricsTable, opts ...RowOption) error {
	cfg := rowConfig{numRows: DefaultNumRows}
	for _, opt := range opts {
		opt(&cfg)
	}
	if table == nil {
		return nil
	}
	table = table.Select(cfg.columns...)

	drill := cfg.drilldown &&
		slices.Contains(table.Columns, evals.ColumnPredictedTrajectory) &&
		slices.Contains(table.Columns, evals.ColumnReferenceTrajectory)

	for _, row := range table.Head(cfg.numRows) {
		if _, err := io.WriteString(w, "### Example:\n\n"); err != nil {
			return err
		}
		for _, c := range table.Columns {
			if _, err := fmt.Fprintf(w, "%s:\n%s\n\n", ColumnTitle(c), formatValue(row[c])); err != nil {
				return err
			}
		}
		if drill {
			if err := WriteDrilldown(w, row); err != nil {
				return err
			}
		}
	}
	return nil
}

// ColumnTitle turns a snake_case column name into Title Case words.
func ColumnTitle(column string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(column, "_", " "))
}
