/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evals_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/praveenksekaran/Agents/agents/agenttrace"
	"github.com/praveenksekaran/Agents/agents/evals"
)

// testObserver records everything it observes.
type testObserver struct {
	mu       sync.Mutex
	failures []string
	logs     []string
	grades   []float64
	count    int64
}

func (o *testObserver) Fail(msg string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failures = append(o.failures, msg)
}

func (o *testObserver) Log(msg string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.logs = append(o.logs, msg)
}

func (o *testObserver) Grade(score float64, reasoning string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.grades = append(o.grades, score)
	o.logs = append(o.logs, fmt.Sprintf("Grade: %.2f - %s", score, reasoning))
}

func (o *testObserver) Increment() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.count++
}

func (o *testObserver) Total() int64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.count
}

func plannerTrace(ctx context.Context, toolErr error) *agenttrace.Trace[string] {
	ctx = agenttrace.WithInvocationContext(ctx, agenttrace.InvocationContext{Agent: "product_selector"})
	trace := agenttrace.StartTrace[string](ctx, "paint my room")
	trace.StartToolCall("1", "set_session_value", map[string]any{"key": "ROOM_LAYOUT"}).Complete("ok", nil)
	trace.RecordTransfer("product_selector", "room_planner_agent")
	trace.StartToolCall("2", "get_session_value", map[string]any{"key": "PAINTS"}).Complete(nil, toolErr)
	return trace
}

func TestTraceChecks(t *testing.T) {
	tests := []struct {
		name     string
		check    evals.ObservableTraceCallback[string]
		toolErr  error
		wantFail string
	}{
		{name: "exact", check: evals.ExactToolCalls[string](2)},
		{name: "exact mismatch", check: evals.ExactToolCalls[string](1), wantFail: "tool call count: got = 2, wanted = 1"},
		{name: "range", check: evals.RangeToolCalls[string](1, 3)},
		{name: "no calls", check: evals.NoToolCalls[string](), wantFail: "tool call count: got = 2, wanted = 0"},
		{name: "only", check: evals.OnlyToolCalls[string]("set_session_value"), wantFail: `unexpected tool call "get_session_value", only allowed: [set_session_value]`},
		{name: "required", check: evals.RequiredToolCalls[string]("calculate_paint_cost", "get_session_value", "a"), wantFail: "missing required tool calls: [a calculate_paint_cost]"},
		{name: "named", check: evals.ToolCallNamed[string]("get_session_value", func(_ evals.Observer, tc *agenttrace.ToolCall[string]) error {
			if tc.Agent != "room_planner_agent" {
				return fmt.Errorf("agent: got = %s", tc.Agent)
			}
			return nil
		})},
		{name: "named missing", check: evals.ToolCallNamed[string]("calculate_paint_cost", func(evals.Observer, *agenttrace.ToolCall[string]) error { return nil }),
			wantFail: `tool call named "calculate_paint_cost": got = not found, wanted = found`},
		{name: "no errors", check: evals.NoErrors[string]()},
		{name: "tool error", check: evals.NoErrors[string](), toolErr: errors.New("not found"), wantFail: "tool call get_session_value error: got = not found, wanted = nil"},
		{name: "transfers", check: evals.TransferPath[string]("room_planner_agent")},
		{name: "transfers mismatch", check: evals.TransferPath[string]("room_planner_agent", "coverage_calculator_agent"),
			wantFail: "transfers: got = [room_planner_agent], wanted = [room_planner_agent coverage_calculator_agent]"},
		{name: "result", check: evals.ResultValidator(func(s string) error {
			if !strings.Contains(s, "coats") {
				return errors.New("no coats question")
			}
			return nil
		}), wantFail: "no coats question"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := &testObserver{}
			ctx := agenttrace.WithTracer(context.Background(), agenttrace.ByCode(evals.Inject(obs, tt.check)))
			plannerTrace(ctx, tt.toolErr).Complete("Welcome!", nil)

			if obs.Total() != 1 {
				t.Errorf("total: got = %d, wanted = 1", obs.Total())
			}
			var want []string
			if tt.wantFail != "" {
				want = []string{tt.wantFail}
			}
			if diff := cmp.Diff(want, obs.failures); diff != "" {
				t.Errorf("failures (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNamespacedObserver(t *testing.T) {
	created := map[string]*testObserver{}
	var mu sync.Mutex
	root := evals.NewNamespacedObserver(func(name string) *testObserver {
		mu.Lock()
		defer mu.Unlock()
		o := &testObserver{}
		created[name] = o
		return o
	})

	tracer := evals.BuildTracer(root.Child("paint"), map[string]evals.ObservableTraceCallback[string]{
		"no-errors": evals.NoErrors[string](),
		"planner":   evals.TransferPath[string]("coverage_calculator_agent"),
	})
	ctx := agenttrace.WithTracer(context.Background(), tracer)
	plannerTrace(ctx, nil).Complete("done", nil)

	if root.Child("paint") != root.Child("paint") {
		t.Error("Child: wanted the same namespace on every call")
	}

	var visited []string
	root.Walk(func(name string, _ *testObserver) {
		visited = append(visited, name)
	})
	if diff := cmp.Diff([]string{"/", "/paint", "/paint/no-errors", "/paint/planner"}, visited); diff != "" {
		t.Errorf("Walk (-want +got):\n%s", diff)
	}

	if got := created["/paint/no-errors"].Total(); got != 1 {
		t.Errorf("no-errors total: got = %d, wanted = 1", got)
	}
	if got := len(created["/paint/no-errors"].failures); got != 0 {
		t.Errorf("no-errors failures: got = %d, wanted = 0", got)
	}
	if got := len(created["/paint/planner"].failures); got != 1 {
		t.Errorf("planner failures: got = %d, wanted = 1", got)
	}
}

func TestScoreWithObserverFactory(t *testing.T) {
	root := evals.NewNamespacedObserver(func(string) *testObserver { return &testObserver{} })
	evals.Score([]evals.Case{
		{Name: "match", Events: eventsFor("ok", setLayout), ReferenceTrajectory: []evals.ToolInvocation{setLayout}},
		{Name: "miss", Events: eventsFor("ok"), ReferenceTrajectory: []evals.ToolInvocation{setLayout}},
	}, evals.WithObserverFactory(func(name string) evals.Observer { return root.Child(name) }))

	if got := root.Child("match").Inner().grades; len(got) != 1 || got[0] != 1 {
		t.Errorf("match grades: got = %v, wanted = [1]", got)
	}
	miss := root.Child("miss").Inner()
	if len(miss.failures) != 1 || !strings.Contains(miss.failures[0], "trajectory mismatch") {
		t.Errorf("miss failures: got = %v", miss.failures)
	}
}

func TestResultCollector(t *testing.T) {
	inner := &testObserver{}
	rc := evals.NewResultCollector(inner)

	rc.Increment()
	rc.Grade(0.25, "partial")
	rc.Fail("wrong tool")
	rc.Log("note")

	if diff := cmp.Diff([]string{"wrong tool"}, rc.Failures()); diff != "" {
		t.Errorf("Failures (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]evals.Grade{{Score: 0.25, Reasoning: "partial"}}, rc.Grades()); diff != "" {
		t.Errorf("Grades (-want +got):\n%s", diff)
	}
	if len(inner.failures) != 0 {
		t.Errorf("inner failures: got = %v, wanted none (failures are logged)", inner.failures)
	}
	if rc.Total() != 1 {
		t.Errorf("Total: got = %d, wanted = 1", rc.Total())
	}
}
