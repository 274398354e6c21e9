/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package testevals

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/praveenksekaran/Agents/agents/evals"
)

// observer reports evaluation outcomes through a testing.TB.
type observer struct {
	tb     testing.TB
	prefix string
	count  atomic.Int64
}

// New returns an Observer that fails tb on every evaluation failure.
func New(tb testing.TB) evals.Observer {
	return &observer{tb: tb}
}

// NewPrefix is New with every message prefixed, typically by a namespace.
func NewPrefix(tb testing.TB, prefix string) evals.Observer {
	return &observer{tb: tb, prefix: prefix}
}

func (o *observer) format(msg string) string {
	if o.prefix == "" {
		return msg
	}
	return o.prefix + ": " + msg
}

// Fail marks the test as failed.
func (o *observer) Fail(msg string) {
	o.tb.Helper()
	o.tb.Error(o.format(msg))
}

// Log logs a message on the test.
func (o *observer) Log(msg string) {
	o.tb.Helper()
	o.tb.Log(o.format(msg))
}

// Grade logs the score and its reasoning.
func (o *observer) Grade(score float64, reasoning string) {
	o.tb.Helper()
	o.tb.Log(o.format(fmt.Sprintf("Grade: %.2f - %s", score, reasoning)))
}

func (o *observer) Increment() { o.count.Add(1) }

func (o *observer) Total() int64 { return o.count.Load() }

// AtLeast fails tb when the named summary metric is missing or below min.
func AtLeast(tb testing.TB, result *evals.EvaluationResult, metric string, min float64) {
	tb.Helper()
	got, ok := result.SummaryMetrics.Get(metric)
	if !ok {
		tb.Errorf("summary metric %s: got = missing, wanted >= %v", metric, min)
		return
	}
	if got < min {
		tb.Errorf("summary metric %s: got = %v, wanted >= %v", metric, got, min)
	}
}
