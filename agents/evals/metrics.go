/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evals

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	evaluationCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_evaluations_total",
			Help: "Total number of agent evaluations performed",
		},
		[]string{"namespace"},
	)

	failureCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_evaluation_failures_total",
			Help: "Total number of failed evaluations",
		},
		[]string{"namespace"},
	)

	gradeGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "agent_evaluation_grade",
			Help: "Most recent evaluation grade (0.0-1.0)",
		},
		[]string{"namespace"},
	)

	gradeHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agent_evaluation_grade_distribution",
			Help:    "Distribution of evaluation grades",
			Buckets: []float64{0, 0.25, 0.5, 0.75, 1},
		},
		[]string{"namespace"},
	)
)

// MetricsObserver exports evaluation outcomes as Prometheus metrics labeled
// with its namespace.
type MetricsObserver struct {
	namespace string
	total     atomic.Int64

	evalCounter prometheus.Counter
	failCounter prometheus.Counter
	gradeGauge  prometheus.Gauge
	gradeHist   prometheus.Observer
}

// NewMetricsObserver creates a metrics observer for namespace. It can be used
// directly as a NamespacedObserver factory.
func NewMetricsObserver(namespace string) *MetricsObserver {
	labels := prometheus.Labels{"namespace": namespace}
	return &MetricsObserver{
		namespace:   namespace,
		evalCounter: evaluationCounter.With(labels),
		failCounter: failureCounter.With(labels),
		gradeGauge:  gradeGauge.With(labels),
		gradeHist:   gradeHistogram.With(labels),
	}
}

// Increment implements Observer.
func (m *MetricsObserver) Increment() {
	m.total.Add(1)
	m.evalCounter.Inc()
}

// Fail implements Observer.
func (m *MetricsObserver) Fail(string) {
	m.failCounter.Inc()
}

// Grade implements Observer.
func (m *MetricsObserver) Grade(score float64, _ string) {
	m.gradeGauge.Set(score)
	m.gradeHist.Observe(score)
}

// Log implements Observer. Messages are not exported.
func (m *MetricsObserver) Log(string) {}

// Total implements Observer.
func (m *MetricsObserver) Total() int64 {
	return m.total.Load()
}
