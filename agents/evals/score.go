/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evals

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Trajectory metric names, matching the Vertex AI evaluation service.
const (
	MetricExactMatch    = "trajectory_exact_match"
	MetricInOrderMatch  = "trajectory_in_order_match"
	MetricAnyOrderMatch = "trajectory_any_order_match"
	MetricPrecision     = "trajectory_precision"
	MetricRecall        = "trajectory_recall"
	MetricResponseMatch = "response_match"

	// RowCount is the summary metric holding the number of scored cases.
	RowCount = "row_count"
)

// TrajectoryMetrics lists the trajectory metrics in reporting order.
var TrajectoryMetrics = []string{
	MetricExactMatch,
	MetricInOrderMatch,
	MetricAnyOrderMatch,
	MetricPrecision,
	MetricRecall,
}

// Metrics table columns besides the metrics themselves.
const (
	ColumnCase                = "case"
	ColumnPrompt              = "prompt"
	ColumnResponse            = "response"
	ColumnPredictedTrajectory = "predicted_trajectory"
	ColumnReferenceTrajectory = "reference_trajectory"
)

// ScoreOption configures Score.
type ScoreOption func(*scoreConfig)

type scoreConfig struct {
	observer func(caseName string) Observer
}

// WithObserver reports every case to obs.
func WithObserver(obs Observer) ScoreOption {
	return func(c *scoreConfig) {
		c.observer = func(string) Observer { return obs }
	}
}

// WithObserverFactory reports each case to the observer returned for its name,
// for example a child of a NamespacedObserver.
func WithObserverFactory(factory func(caseName string) Observer) ScoreOption {
	return func(c *scoreConfig) {
		c.observer = factory
	}
}

// Score compares the trajectory parsed from each case's events against its
// reference trajectory and aggregates the per-case metrics.
func Score(cases []Case, opts ...ScoreOption) *EvaluationResult {
	cfg := scoreConfig{observer: func(string) Observer { return NopObserver{} }}
	for _, opt := range opts {
		opt(&cfg)
	}

	withResponse := false
	for _, c := range cases {
		if c.ReferenceResponse != "" {
			withResponse = true
			break
		}
	}

	metricNames := slices.Clone(TrajectoryMetrics)
	if withResponse {
		metricNames = append(metricNames, MetricResponseMatch)
	}
	columns := []string{ColumnCase, ColumnPrompt, ColumnResponse, ColumnPredictedTrajectory, ColumnReferenceTrajectory}
	columns = append(columns, metricNames...)

	table := &MetricsTable{Columns: columns, Rows: make([]Row, 0, len(cases))}
	values := make(map[string][]float64, len(columns))

	for _, c := range cases {
		parsed := ParseEvents(c.Events)
		pred, ref := parsed.PredictedTrajectory, c.ReferenceTrajectory
		if ref == nil {
			ref = []ToolInvocation{}
		}

		scores := map[string]float64{
			MetricExactMatch:    ExactMatch(pred, ref),
			MetricInOrderMatch:  InOrderMatch(pred, ref),
			MetricAnyOrderMatch: AnyOrderMatch(pred, ref),
			MetricPrecision:     Precision(pred, ref),
			MetricRecall:        Recall(pred, ref),
		}
		if c.ReferenceResponse != "" {
			scores[MetricResponseMatch] = ResponseMatch(parsed.Response, c.ReferenceResponse)
		}

		row := Row{
			ColumnCase:                c.Name,
			ColumnPrompt:              c.Prompt,
			ColumnResponse:            parsed.Response,
			ColumnPredictedTrajectory: pred,
			ColumnReferenceTrajectory: ref,
		}
		for name, v := range scores {
			row[name] = v
			values[name] = append(values[name], v)
		}
		table.Rows = append(table.Rows, row)

		obs := cfg.observer(c.Name)
		obs.Increment()
		obs.Grade(scores[MetricExactMatch], fmt.Sprintf("predicted %s, reference %s", trajectoryString(pred), trajectoryString(ref)))
		if scores[MetricExactMatch] == 0 {
			obs.Fail(fmt.Sprintf("%s: trajectory mismatch: got = %s, wanted = %s", c.Name, trajectoryString(pred), trajectoryString(ref)))
		}
	}

	summary := SummaryMetrics{{Name: RowCount, Value: float64(len(cases))}}
	for _, name := range metricNames {
		mean, std := MeanStd(values[name])
		summary = append(summary,
			Metric{Name: name + "/mean", Value: mean},
			Metric{Name: name + "/std", Value: std},
		)
	}

	return &EvaluationResult{SummaryMetrics: summary, MetricsTable: table}
}

// ExactMatch is 1 when both trajectories hold the same calls in the same order.
func ExactMatch(pred, ref []ToolInvocation) float64 {
	if len(pred) != len(ref) {
		return 0
	}
	for i := range pred {
		if !pred[i].Equal(ref[i]) {
			return 0
		}
	}
	return 1
}

// InOrderMatch is 1 when the reference calls appear in the prediction in
// order, possibly with other calls in between.
func InOrderMatch(pred, ref []ToolInvocation) float64 {
	i := 0
	for _, p := range pred {
		if i < len(ref) && p.Equal(ref[i]) {
			i++
		}
	}
	if i == len(ref) {
		return 1
	}
	return 0
}

// AnyOrderMatch is 1 when every reference call appears in the prediction.
func AnyOrderMatch(pred, ref []ToolInvocation) float64 {
	for _, r := range ref {
		if !containsInvocation(pred, r) {
			return 0
		}
	}
	return 1
}

// Precision is the fraction of predicted calls found in the reference.
func Precision(pred, ref []ToolInvocation) float64 {
	if len(pred) == 0 {
		if len(ref) == 0 {
			return 1
		}
		return 0
	}
	hits := 0
	for _, p := range pred {
		if containsInvocation(ref, p) {
			hits++
		}
	}
	return float64(hits) / float64(len(pred))
}

// Recall is the fraction of reference calls found in the prediction.
func Recall(pred, ref []ToolInvocation) float64 {
	if len(ref) == 0 {
		return 1
	}
	hits := 0
	for _, r := range ref {
		if containsInvocation(pred, r) {
			hits++
		}
	}
	return float64(hits) / float64(len(ref))
}

// ResponseMatch is 1 when the responses are equal ignoring case and
// surrounding whitespace.
func ResponseMatch(got, want string) float64 {
	if strings.EqualFold(strings.TrimSpace(got), strings.TrimSpace(want)) {
		return 1
	}
	return 0
}

// MeanStd returns the mean and the sample standard deviation of vs.
func MeanStd(vs []float64) (float64, float64) {
	if len(vs) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	mean := sum / float64(len(vs))
	if len(vs) < 2 {
		return mean, 0
	}
	var sq float64
	for _, v := range vs {
		sq += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(sq / float64(len(vs)-1))
}

func trajectoryString(traj []ToolInvocation) string {
	parts := make([]string, 0, len(traj))
	for _, t := range traj {
		parts = append(parts, t.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
