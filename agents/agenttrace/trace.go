/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/praveenksekaran/Agents/agents/agenttrace"

// ToolCall represents a single tool invocation within a trace
type ToolCall[T any] struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Agent     string         `json:"agent,omitempty"`
	Params    map[string]any `json:"params"`
	Result    any            `json:"result"`
	Error     error          `json:"error,omitempty"`
	StartTime time.Time      `json:"start_time"`
	EndTime   time.Time      `json:"end_time"`
	trace     *Trace[T]
	mu        sync.Mutex
	span      oteltrace.Span
}

// Transfer records control moving from one agent to another
type Transfer struct {
	From string    `json:"from"`
	To   string    `json:"to"`
	Time time.Time `json:"time"`
}

// Trace represents a complete agent interaction from prompt to result
type Trace[T any] struct {
	ID          string            `json:"id"`
	InputPrompt string            `json:"input_prompt"`
	Invocation  InvocationContext `json:"invocation,omitempty"`
	ToolCalls   []*ToolCall[T]    `json:"tool_calls"`
	Transfers   []Transfer        `json:"transfers,omitempty"`
	Result      T                 `json:"result"`
	Error       error             `json:"error,omitempty"`
	StartTime   time.Time         `json:"start_time"`
	EndTime     time.Time         `json:"end_time"`
	Metadata    map[string]any    `json:"metadata,omitempty"`
	tracer      Tracer[T]
	mu          sync.Mutex
	ctx         context.Context
	span        oteltrace.Span
}

func newTraceWithTracer[T any](ctx context.Context, tracer Tracer[T], prompt string) *Trace[T] {
	inv := GetInvocationContext(ctx)

	attrs := []attribute.KeyValue{attribute.String("agent.prompt", prompt)}
	if inv.Agent != "" {
		attrs = append(attrs, attribute.String("agent.name", inv.Agent))
	}
	if inv.SessionID != "" {
		attrs = append(attrs, attribute.String("session_id", inv.SessionID))
	}
	if inv.UserID != "" {
		attrs = append(attrs, attribute.String("user_id", inv.UserID))
	}

	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "agent.invocation", oteltrace.WithAttributes(attrs...))

	return &Trace[T]{
		ID:          uuid.NewString(),
		InputPrompt: prompt,
		Invocation:  inv,
		ToolCalls:   []*ToolCall[T]{},
		StartTime:   time.Now(),
		Metadata:    make(map[string]any),
		tracer:      tracer,
		ctx:         ctx,
		span:        span,
	}
}

// StartToolCall starts a new tool call and returns it
func (t *Trace[T]) StartToolCall(id, name string, params map[string]any) *ToolCall[T] {
	agent := t.currentAgent()
	_, span := otel.Tracer(instrumentationName).Start(t.ctx, "agent.tool_call", oteltrace.WithAttributes(
		attribute.String("tool.name", name),
		attribute.String("tool.id", id),
		attribute.String("agent.name", agent),
	))

	return &ToolCall[T]{
		ID:        id,
		Name:      name,
		Agent:     agent,
		Params:    params,
		StartTime: time.Now(),
		trace:     t,
		span:      span,
	}
}

// BadToolCall records a tool call that failed due to bad arguments or unknown tool
func (t *Trace[T]) BadToolCall(id, name string, params map[string]any, err error) {
	_, span := otel.Tracer(instrumentationName).Start(t.ctx, "agent.tool_call", oteltrace.WithAttributes(
		attribute.String("tool.name", name),
		attribute.String("tool.id", id),
		attribute.String("error", err.Error()),
	))
	span.SetStatus(codes.Error, err.Error())
	span.End()

	now := time.Now()
	tc := &ToolCall[T]{
		ID:        id,
		Name:      name,
		Agent:     t.currentAgent(),
		Params:    params,
		StartTime: now,
		EndTime:   now,
		Error:     err,
		trace:     t,
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.ToolCalls = append(t.ToolCalls, tc)
}

// RecordTransfer records control moving between agents and makes the
// receiving agent current for subsequent tool calls.
func (t *Trace[T]) RecordTransfer(from, to string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.Transfers = append(t.Transfers, Transfer{From: from, To: to, Time: time.Now()})
	t.Invocation.Agent = to
	if t.span != nil {
		t.span.AddEvent("agent.transfer", oteltrace.WithAttributes(
			attribute.String("from", from),
			attribute.String("to", to),
		))
	}
}

// RecordTokenUsage records model and token usage as span attributes.
func (t *Trace[T]) RecordTokenUsage(model string, inputTokens, outputTokens int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.span != nil {
		t.span.SetAttributes(
			attribute.String("model", model),
			attribute.Int64("tokens.input", inputTokens),
			attribute.Int64("tokens.output", outputTokens),
			attribute.Int64("tokens.total", inputTokens+outputTokens),
		)
	}
}

func (t *Trace[T]) currentAgent() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.Invocation.Agent
}

// Complete marks the tool call as complete and adds it to the parent trace
func (tc *ToolCall[T]) Complete(result any, err error) {
	tc.mu.Lock()
	tc.Result = result
	tc.Error = err
	tc.EndTime = time.Now()
	trace := tc.trace
	span := tc.span
	tc.mu.Unlock()

	if span != nil {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}

	trace.mu.Lock()
	defer trace.mu.Unlock()
	trace.ToolCalls = append(trace.ToolCalls, tc)
}

// Duration returns the duration of the tool call
func (tc *ToolCall[T]) Duration() time.Duration {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if tc.EndTime.IsZero() {
		return time.Since(tc.StartTime)
	}
	return tc.EndTime.Sub(tc.StartTime)
}

// Complete marks the trace as complete with the given result and records it
func (t *Trace[T]) Complete(result T, err error) {
	t.mu.Lock()
	t.Result = result
	t.Error = err
	t.EndTime = time.Now()
	tracer := t.tracer
	span := t.span
	t.mu.Unlock()

	if span != nil {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}

	tracer.RecordTrace(t)
}

// Duration returns the total duration of the trace
func (t *Trace[T]) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.EndTime.IsZero() {
		return time.Since(t.StartTime)
	}
	return t.EndTime.Sub(t.StartTime)
}

// String returns a structured representation of the trace
func (t *Trace[T]) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var sb strings.Builder

	duration := time.Since(t.StartTime)
	if !t.EndTime.IsZero() {
		duration = t.EndTime.Sub(t.StartTime)
	}

	fmt.Fprintf(&sb, "=== Trace %s ===\n", t.ID)
	fmt.Fprintf(&sb, "Prompt: %q\n", t.InputPrompt)
	if t.Invocation.SessionID != "" {
		fmt.Fprintf(&sb, "Session: %s (user %s)\n", t.Invocation.SessionID, t.Invocation.UserID)
	}
	fmt.Fprintf(&sb, "Duration: %v\n", duration)

	if len(t.Transfers) > 0 {
		fmt.Fprintf(&sb, "\nTransfers (%d):\n", len(t.Transfers))
		for _, tr := range t.Transfers {
			fmt.Fprintf(&sb, "  %s -> %s\n", tr.From, tr.To)
		}
	}

	if len(t.ToolCalls) == 0 {
		sb.WriteString("\nNo tool calls\n")
	} else {
		fmt.Fprintf(&sb, "\nTool Calls (%d):\n", len(t.ToolCalls))
		for i, tc := range t.ToolCalls {
			fmt.Fprintf(&sb, "  [%d] %s (ID: %s, agent: %s)\n", i+1, tc.Name, tc.ID, tc.Agent)

			if len(tc.Params) > 0 {
				keys := make([]string, 0, len(tc.Params))
				for k := range tc.Params {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				sb.WriteString("      Params:\n")
				for _, k := range keys {
					fmt.Fprintf(&sb, "        %s: %v\n", k, tc.Params[k])
				}
			}

			switch {
			case tc.Error != nil:
				fmt.Fprintf(&sb, "      Error: %v\n", tc.Error)
			case tc.Result != nil:
				fmt.Fprintf(&sb, "      Result: %s\n", truncate(fmt.Sprintf("%v", tc.Result), 200))
			}
		}
	}

	sb.WriteString("\nCompletion:\n")
	switch {
	case t.Error != nil:
		fmt.Fprintf(&sb, "  Error: %v\n", t.Error)
	case any(t.Result) != nil:
		fmt.Fprintf(&sb, "  Result: %s\n", truncate(fmt.Sprintf("%v", t.Result), 500))
	default:
		sb.WriteString("  Result: <nil>\n")
	}

	return sb.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
