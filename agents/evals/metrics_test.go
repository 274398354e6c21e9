/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evals

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsObserver(t *testing.T) {
	const ns = "/paint/metrics-observer-test"
	obs := NewMetricsObserver(ns)

	obs.Increment()
	obs.Increment()
	obs.Grade(0.75, "close")
	obs.Fail("mismatch")
	obs.Log("ignored")

	if got := obs.Total(); got != 2 {
		t.Errorf("Total: got = %d, wanted = 2", got)
	}
	if got := testutil.ToFloat64(evaluationCounter.WithLabelValues(ns)); got != 2 {
		t.Errorf("evaluations: got = %v, wanted = 2", got)
	}
	if got := testutil.ToFloat64(failureCounter.WithLabelValues(ns)); got != 1 {
		t.Errorf("failures: got = %v, wanted = 1", got)
	}
	if got := testutil.ToFloat64(gradeGauge.WithLabelValues(ns)); got != 0.75 {
		t.Errorf("grade: got = %v, wanted = 0.75", got)
	}
	if got := testutil.CollectAndCount(gradeHistogram, "agent_evaluation_grade_distribution"); got < 1 {
		t.Errorf("grade histogram series: got = %d, wanted >= 1", got)
	}
}
