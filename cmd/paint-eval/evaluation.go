/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chainguard-dev/clog"
	"github.com/praveenksekaran/Agents/agents/evals"
	"github.com/praveenksekaran/Agents/agents/evals/judge"
	"github.com/praveenksekaran/Agents/agents/evals/report"
	"github.com/praveenksekaran/Agents/paint/paintagent"
)

// Report files written to the output directory.
const (
	reportFile = "report.md"
	barFile    = "bar.html"
	radarFile  = "radar.html"
)

// evaluation scores one dataset run.
type evaluation struct {
	name        string
	outputDir   string
	threshold   float64
	concurrency int

	// start is nil when every case carries recorded events.
	start paintagent.Starter

	// judge is optional.
	judge     judge.Interface
	criterion string
}

// run collects, scores and reports the cases. It reports whether the mean
// trajectory exact match reaches the threshold.
func (e *evaluation) run(ctx context.Context, cases []evals.Case) (bool, error) {
	log := clog.FromContext(ctx).With("dataset", e.name)

	if e.start != nil {
		var err error
		if cases, err = evals.Collect(ctx, cases, e.concurrency, paintagent.RunFunc(e.start)); err != nil {
			return false, fmt.Errorf("collecting responses: %w", err)
		}
	}
	for _, c := range cases {
		if len(c.Events) == 0 {
			return false, fmt.Errorf("case %s has no events to score", c.Name)
		}
	}

	root := evals.NewNamespacedObserver(func(name string) *evals.ResultCollector {
		return evals.NewResultCollector(evals.NewMetricsObserver(name))
	})
	dataset := root.Child(e.name)
	trajectory := dataset.Child("trajectory")

	result := evals.Score(cases, evals.WithObserverFactory(func(name string) evals.Observer {
		return trajectory.Child(name)
	}))

	if e.judge != nil {
		quality := dataset.Child(judge.MetricResponseQuality)
		if err := judge.Grade(ctx, e.judge, e.criterion, cases, result,
			judge.WithConcurrency(e.concurrency),
			judge.WithObserverFactory(func(name string) evals.Observer { return quality.Child(name) }),
		); err != nil {
			log.With("error", err.Error()).Warn("Some responses could not be judged")
		}
	}

	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return false, fmt.Errorf("creating output directory: %w", err)
	}
	if err := e.writeFile(reportFile, func(w io.Writer) error {
		return e.writeReport(w, result, root)
	}); err != nil {
		return false, err
	}
	if err := e.writeFile(barFile, func(w io.Writer) error {
		return report.BarChart(w, result, e.name, "/mean")
	}); err != nil {
		return false, err
	}
	if err := e.writeFile(radarFile, func(w io.Writer) error {
		return report.RadarChart(w, result, e.name, "/mean")
	}); err != nil {
		return false, err
	}

	mean, ok := result.SummaryMetrics.Get(evals.MetricExactMatch + "/mean")
	if !ok {
		return false, errors.New("no trajectory exact match in the results")
	}
	log.With("exact_match", mean).With("threshold", e.threshold).With("output", e.outputDir).
		Info("Evaluation complete")
	return mean >= e.threshold, nil
}

func (e *evaluation) writeReport(w io.Writer, result *evals.EvaluationResult, root *evals.NamespacedObserver[*evals.ResultCollector]) error {
	if _, err := fmt.Fprintf(w, "# Evaluation: %s\n\n", e.name); err != nil {
		return err
	}
	if err := report.EvalReport(w, result); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n## Examples\n\n"); err != nil {
		return err
	}
	if err := report.DataFrameRows(w, result.MetricsTable,
		report.WithNumRows(len(result.MetricsTable.Rows)),
		report.WithDrilldown(),
	); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n## Observations\n\n"); err != nil {
		return err
	}
	_, err := report.Observations(w, root, e.threshold)
	return err
}

func (e *evaluation) writeFile(name string, write func(io.Writer) error) (err error) {
	path := filepath.Join(e.outputDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
