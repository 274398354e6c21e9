/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"
	"time"

	"github.com/chainguard-dev/clog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// GenAI provides OpenTelemetry metrics for agent runs: token usage, tool
// calls, agent transfers and model call latency. Instruments that fail to
// initialize degrade to no-ops.
type GenAI struct {
	promptTokens     metric.Int64Counter
	completionTokens metric.Int64Counter
	toolCallCounter  metric.Int64Counter
	transferCounter  metric.Int64Counter
	modelLatency     metric.Float64Histogram
	attrEnricher     AttributeEnricher
}

// NewGenAI creates GenAI metrics on the global meter provider.
// The model name is recorded as a dimension, so one meter name serves every agent.
func NewGenAI(meterName string) *GenAI {
	return NewGenAIWithProvider(otel.GetMeterProvider(), meterName)
}

// NewGenAIWithProvider creates GenAI metrics on the given meter provider.
func NewGenAIWithProvider(mp metric.MeterProvider, meterName string) *GenAI {
	meter := mp.Meter(meterName, metric.WithInstrumentationVersion("1.0.0"))
	log := clog.FromContext(context.Background()).With("meter", meterName)

	promptTokens, err := meter.Int64Counter("genai.token.prompt",
		metric.WithDescription("The number of prompt tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		log.Warn("Failed to create prompt tokens counter, metrics will be disabled", "error", err)
		promptTokens = noop.Int64Counter{}
	}

	completionTokens, err := meter.Int64Counter("genai.token.completion",
		metric.WithDescription("The number of completion tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		log.Warn("Failed to create completion tokens counter, metrics will be disabled", "error", err)
		completionTokens = noop.Int64Counter{}
	}

	toolCallCounter, err := meter.Int64Counter("genai.tool.calls",
		metric.WithDescription("The number of tool calls made during execution"),
		metric.WithUnit("{calls}"))
	if err != nil {
		log.Warn("Failed to create tool call counter, metrics will be disabled", "error", err)
		toolCallCounter = noop.Int64Counter{}
	}

	transferCounter, err := meter.Int64Counter("genai.agent.transfers",
		metric.WithDescription("The number of transfers between agents"),
		metric.WithUnit("{transfers}"))
	if err != nil {
		log.Warn("Failed to create transfer counter, metrics will be disabled", "error", err)
		transferCounter = noop.Int64Counter{}
	}

	modelLatency, err := meter.Float64Histogram("genai.model.latency",
		metric.WithDescription("Latency of model generate calls"),
		metric.WithUnit("s"))
	if err != nil {
		log.Warn("Failed to create model latency histogram, metrics will be disabled", "error", err)
		modelLatency = noop.Float64Histogram{}
	}

	return &GenAI{
		promptTokens:     promptTokens,
		completionTokens: completionTokens,
		toolCallCounter:  toolCallCounter,
		transferCounter:  transferCounter,
		modelLatency:     modelLatency,
	}
}

// SetAttributeEnricher sets the enricher called before each recording.
func (m *GenAI) SetAttributeEnricher(enricher AttributeEnricher) {
	m.attrEnricher = enricher
}

func (m *GenAI) attributes(ctx context.Context, base []attribute.KeyValue, extra []attribute.KeyValue) metric.MeasurementOption {
	if m.attrEnricher != nil {
		base = m.attrEnricher(ctx, base)
	}
	return metric.WithAttributes(append(base, extra...)...)
}

// RecordTokens records prompt and completion token usage.
func (m *GenAI) RecordTokens(ctx context.Context, model string, promptTokens, completionTokens int64, attrs ...attribute.KeyValue) {
	opt := m.attributes(ctx, []attribute.KeyValue{attribute.String("model", model)}, attrs)
	m.promptTokens.Add(ctx, promptTokens, opt)
	m.completionTokens.Add(ctx, completionTokens, opt)
}

// RecordToolCall records a tool invocation.
func (m *GenAI) RecordToolCall(ctx context.Context, model, toolName string, attrs ...attribute.KeyValue) {
	m.toolCallCounter.Add(ctx, 1, m.attributes(ctx, []attribute.KeyValue{
		attribute.String("model", model),
		attribute.String("tool", toolName),
	}, attrs))
}

// RecordTransfer records control moving from one agent to another.
func (m *GenAI) RecordTransfer(ctx context.Context, from, to string, attrs ...attribute.KeyValue) {
	m.transferCounter.Add(ctx, 1, m.attributes(ctx, []attribute.KeyValue{
		attribute.String("from", from),
		attribute.String("to", to),
	}, attrs))
}

// RecordModelLatency records the duration of one model call.
func (m *GenAI) RecordModelLatency(ctx context.Context, model string, d time.Duration, attrs ...attribute.KeyValue) {
	m.modelLatency.Record(ctx, d.Seconds(), m.attributes(ctx, []attribute.KeyValue{
		attribute.String("model", model),
	}, attrs))
}
