/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package agenttrace provides tracing infrastructure for agent invocations.

# Overview

  - InvocationContext: app, user, session, agent and turn metadata for trace enrichment
  - Trace[T]: one invocation from user message to final response
  - ToolCall[T]: a single tool invocation within a trace
  - Transfer: control moving from one agent to a sub-agent or back to a parent
  - Tracer[T]: creates traces and records them when they complete

# Usage

	ctx = agenttrace.WithInvocationContext(ctx, agenttrace.InvocationContext{
		AppName:   "paint_agent",
		UserID:    "user-generic",
		SessionID: sess.ID,
		Agent:     "product_selector",
	})

	tracer := agenttrace.ByCode[string](func(trace *agenttrace.Trace[string]) {
		log.Printf("trace %s: %d tool calls", trace.ID, len(trace.ToolCalls))
	})
	ctx = agenttrace.WithTracer[string](ctx, tracer)

	trace := agenttrace.StartTrace[string](ctx, "How much paint do I need?")
	tc := trace.StartToolCall("tc1", "calculate_paint_cost", map[string]any{"sq_feet": 100.0})
	tc.Complete(map[string]any{"cost": 20.0}, nil)
	trace.RecordTransfer("product_selector", "room_planner_agent")
	trace.Complete("It will cost $20.", nil)
*/
package agenttrace
