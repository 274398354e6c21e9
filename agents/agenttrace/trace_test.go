/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

type mockTracer[T any] struct {
	mu     sync.Mutex
	traces []*Trace[T]
}

func (m *mockTracer[T]) NewTrace(ctx context.Context, prompt string) *Trace[T] {
	return newTraceWithTracer[T](ctx, m, prompt)
}

func (m *mockTracer[T]) RecordTrace(trace *Trace[T]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.traces = append(m.traces, trace)
}

func TestWithTracer(t *testing.T) {
	ctx := context.Background()
	tracer := &mockTracer[string]{}

	if got := TracerFromContext[string](WithTracer[string](ctx, tracer)); got != tracer {
		t.Errorf("retrieved tracer: got = %v, wanted = %v", got, tracer)
	}
	if got := TracerFromContext[string](ctx); got == nil {
		t.Error("tracer from empty context: got = nil, wanted = default tracer")
	}
	if got := TracerFromContext[int](WithTracer[string](ctx, tracer)); got == nil {
		t.Error("tracer for other type: got = nil, wanted = default tracer")
	}
}

func TestTraceLifecycle(t *testing.T) {
	tracer := &mockTracer[string]{}
	ctx := WithTracer[string](context.Background(), tracer)
	ctx = WithInvocationContext(ctx, InvocationContext{
		AppName:   "paint_agent",
		UserID:    "user-1",
		SessionID: "session-1",
		Agent:     "product_selector",
	})

	trace := StartTrace[string](ctx, "paint my room")
	if trace.InputPrompt != "paint my room" {
		t.Errorf("prompt: got = %q, wanted = %q", trace.InputPrompt, "paint my room")
	}
	if trace.ID == "" {
		t.Error("trace ID: got = empty, wanted = non-empty")
	}

	tc := trace.StartToolCall("tc1", "set_session_value", map[string]any{"key": "ROOM_LAYOUT"})
	tc.Complete(map[string]any{"key": "ROOM_LAYOUT"}, nil)

	trace.RecordTransfer("product_selector", "room_planner_agent")

	tc = trace.StartToolCall("tc2", "get_session_value", map[string]any{"key": "PAINTS"})
	tc.Complete(nil, errors.New("not found"))

	trace.BadToolCall("tc3", "unknown_tool", nil, errors.New("unknown tool"))

	if len(tracer.traces) != 0 {
		t.Fatalf("recorded before completion: got = %d, wanted = 0", len(tracer.traces))
	}
	trace.Complete("done", nil)

	if len(tracer.traces) != 1 {
		t.Fatalf("recorded after completion: got = %d, wanted = 1", len(tracer.traces))
	}

	if len(trace.ToolCalls) != 3 {
		t.Fatalf("tool calls: got = %d, wanted = 3", len(trace.ToolCalls))
	}
	wantAgents := []string{"product_selector", "room_planner_agent", "room_planner_agent"}
	for i, want := range wantAgents {
		if got := trace.ToolCalls[i].Agent; got != want {
			t.Errorf("tool call %d agent: got = %q, wanted = %q", i, got, want)
		}
	}
	if len(trace.Transfers) != 1 || trace.Transfers[0].To != "room_planner_agent" {
		t.Errorf("transfers: got = %+v, wanted one transfer to room_planner_agent", trace.Transfers)
	}

	s := trace.String()
	for _, want := range []string{"paint my room", "set_session_value", "product_selector -> room_planner_agent", "Error: not found", "Result: done"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
}

func TestByCode(t *testing.T) {
	var calls atomic.Int32
	tracer := ByCode[string](
		func(*Trace[string]) { calls.Add(1) },
		nil,
		func(*Trace[string]) { calls.Add(1) },
	)

	trace := tracer.NewTrace(context.Background(), "prompt")
	trace.Complete("result", nil)

	if got := calls.Load(); got != 2 {
		t.Errorf("callback invocations: got = %d, wanted = 2", got)
	}
}

func TestEnrichAttributes(t *testing.T) {
	inv := InvocationContext{AppName: "paint_agent", Agent: "coverage_calculator_agent", Turn: 3, SessionID: "s"}
	attrs := inv.EnrichAttributes([]attribute.KeyValue{attribute.String("model", "gemini-2.5-flash")})

	got := map[string]string{}
	for _, kv := range attrs {
		got[string(kv.Key)] = kv.Value.Emit()
	}
	want := map[string]string{
		"model": "gemini-2.5-flash",
		"app":   "paint_agent",
		"agent": "coverage_calculator_agent",
		"turn":  "3",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("attribute %s: got = %q, wanted = %q", k, got[k], v)
		}
	}
	if _, ok := got["session_id"]; ok {
		t.Error("session_id must not be a metric attribute")
	}
}
