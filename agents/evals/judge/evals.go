/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/chainguard-dev/clog"
	"github.com/praveenksekaran/Agents/agents/agenttrace"
	"github.com/praveenksekaran/Agents/agents/evals"
	"golang.org/x/sync/errgroup"
)

const (
	// MetricResponseQuality is the judge score column and summary metric prefix.
	MetricResponseQuality = "response_quality"
	// ColumnJudgeReasoning holds the judge's explanation for each row.
	ColumnJudgeReasoning = "response_quality_reasoning"
)

// GradeOption configures Grade.
type GradeOption func(*gradeConfig)

type gradeConfig struct {
	limit    int
	observer func(caseName string) evals.Observer
}

// WithConcurrency bounds the number of judgements in flight.
func WithConcurrency(n int) GradeOption {
	return func(c *gradeConfig) {
		c.limit = n
	}
}

// WithObserverFactory reports each judgement to the observer returned for
// its case name.
func WithObserverFactory(factory func(caseName string) evals.Observer) GradeOption {
	return func(c *gradeConfig) {
		c.observer = factory
	}
}

// Grade judges the final response of every case and records the scores in
// result, whose rows must be in case order as evals.Score produces them.
// Cases with a reference response are judged in golden mode and the rest in
// standalone mode. Cases whose judgement fails keep no score and their errors
// are returned joined once every other case has been graded.
func Grade(ctx context.Context, j Interface, criterion string, cases []evals.Case, result *evals.EvaluationResult, opts ...GradeOption) error {
	if result == nil || result.MetricsTable == nil {
		return errors.New("evaluation result has no metrics table")
	}
	if got, want := len(result.MetricsTable.Rows), len(cases); got != want {
		return fmt.Errorf("metrics table has %d rows for %d cases", got, want)
	}
	cfg := gradeConfig{observer: func(string) evals.Observer { return evals.NopObserver{} }}
	for _, opt := range opts {
		opt(&cfg)
	}

	judgements := make([]*Judgement, len(cases))
	var (
		mu   sync.Mutex
		errs []error
	)

	var g errgroup.Group
	if cfg.limit > 0 {
		g.SetLimit(cfg.limit)
	}
	for i, c := range cases {
		g.Go(func() error {
			obs := cfg.observer(c.Name)
			obs.Increment()

			req := &Request{
				Mode:         StandaloneMode,
				ActualAnswer: evals.ParseEvents(c.Events).Response,
				Criterion:    criterion,
			}
			if c.ReferenceResponse != "" {
				req.Mode = GoldenMode
				req.ReferenceAnswer = c.ReferenceResponse
			}
			if req.ActualAnswer == "" {
				judgements[i] = &Judgement{Mode: req.Mode, Reasoning: "the agent produced no final response"}
				obs.Grade(0, judgements[i].Reasoning)
				obs.Fail(fmt.Sprintf("%s: no final response to judge", c.Name))
				return nil
			}

			clog.FromContext(ctx).With("case", c.Name).With("mode", req.Mode).Info("Judging response")
			jm, err := j.Judge(ctx, req)
			if err != nil {
				obs.Fail(fmt.Sprintf("%s: judge failed: %v", c.Name, err))
				mu.Lock()
				errs = append(errs, fmt.Errorf("case %s: %w", c.Name, err))
				mu.Unlock()
				return nil
			}
			judgements[i] = jm
			obs.Grade(jm.Score, jm.Reasoning)
			for _, s := range jm.Suggestions {
				obs.Log("Suggestion: " + s)
			}
			return nil
		})
	}
	_ = g.Wait()

	var scores []float64
	for i, jm := range judgements {
		if jm == nil {
			continue
		}
		result.MetricsTable.Rows[i][MetricResponseQuality] = jm.Score
		result.MetricsTable.Rows[i][ColumnJudgeReasoning] = jm.Reasoning
		scores = append(scores, jm.Score)
	}
	for _, col := range []string{MetricResponseQuality, ColumnJudgeReasoning} {
		if !slices.Contains(result.MetricsTable.Columns, col) {
			result.MetricsTable.Columns = append(result.MetricsTable.Columns, col)
		}
	}
	if len(scores) > 0 {
		mean, std := evals.MeanStd(scores)
		result.SummaryMetrics = append(result.SummaryMetrics,
			evals.Metric{Name: MetricResponseQuality + "/mean", Value: mean},
			evals.Metric{Name: MetricResponseQuality + "/std", Value: std},
		)
	}

	return errors.Join(errs...)
}

// NewGoldenEval creates a trace evaluation that judges the trace result
// against goldenAnswer.
func NewGoldenEval[T any](j Interface, criterion, goldenAnswer string, callbacks ...agenttrace.TraceCallback[*Judgement]) evals.ObservableTraceCallback[T] {
	return newEval[T](j, &Request{Mode: GoldenMode, ReferenceAnswer: goldenAnswer, Criterion: criterion}, callbacks)
}

// NewStandaloneEval creates a trace evaluation that judges the trace result
// against criterion alone.
func NewStandaloneEval[T any](j Interface, criterion string, callbacks ...agenttrace.TraceCallback[*Judgement]) evals.ObservableTraceCallback[T] {
	return newEval[T](j, &Request{Mode: StandaloneMode, Criterion: criterion}, callbacks)
}

func newEval[T any](j Interface, base *Request, callbacks []agenttrace.TraceCallback[*Judgement]) evals.ObservableTraceCallback[T] {
	return func(o evals.Observer, trace *agenttrace.Trace[T]) {
		answer, err := answerText(trace.Result)
		if err != nil {
			o.Fail(fmt.Sprintf("Failed to extract response: %v", err))
			return
		}

		// The judge's own traces go to callbacks rather than the caller's tracer.
		ctx := agenttrace.WithTracer(context.Background(), agenttrace.ByCode(callbacks...))
		ctx = agenttrace.WithInvocationContext(ctx, trace.Invocation)

		req := *base
		req.ActualAnswer = answer
		resp, err := j.Judge(ctx, &req)
		if err != nil {
			o.Fail(fmt.Sprintf("Judge failed: %v", err))
			return
		}
		o.Grade(resp.Score, resp.Reasoning)
		for _, s := range resp.Suggestions {
			o.Log("Suggestion: " + s)
		}
	}
}

func answerText(v any) (string, error) {
	switch r := v.(type) {
	case nil:
		return "", errors.New("trace has no result")
	case string:
		if r == "" {
			return "", errors.New("trace has an empty result")
		}
		return r, nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	if string(data) == "null" {
		return "", errors.New("trace has no result")
	}
	return string(data), nil
}
