/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evals

import (
	"fmt"
	"maps"
	"slices"

	"github.com/praveenksekaran/Agents/agents/agenttrace"
)

// ExactToolCalls checks that the trace made exactly n tool calls.
func ExactToolCalls[T any](n int) ObservableTraceCallback[T] {
	return func(o Observer, trace *agenttrace.Trace[T]) {
		if got := len(trace.ToolCalls); got != n {
			o.Fail(fmt.Sprintf("tool call count: got = %d, wanted = %d", got, n))
		}
	}
}

// RangeToolCalls checks that the trace made between min and max tool calls, inclusive.
func RangeToolCalls[T any](min, max int) ObservableTraceCallback[T] {
	return func(o Observer, trace *agenttrace.Trace[T]) {
		if got := len(trace.ToolCalls); got < min || got > max {
			o.Fail(fmt.Sprintf("tool call count: got = %d, wanted = %d..%d", got, min, max))
		}
	}
}

// NoToolCalls checks that the trace made no tool calls.
func NoToolCalls[T any]() ObservableTraceCallback[T] {
	return ExactToolCalls[T](0)
}

// OnlyToolCalls checks that the trace used only the named tools.
func OnlyToolCalls[T any](toolNames ...string) ObservableTraceCallback[T] {
	allowed := make(map[string]struct{}, len(toolNames))
	for _, name := range toolNames {
		allowed[name] = struct{}{}
	}

	return func(o Observer, trace *agenttrace.Trace[T]) {
		for _, tc := range trace.ToolCalls {
			if _, ok := allowed[tc.Name]; !ok {
				o.Fail(fmt.Sprintf("unexpected tool call %q, only allowed: %v", tc.Name, toolNames))
				return
			}
		}
	}
}

// RequiredToolCalls checks that the trace used each of the named tools at least once.
func RequiredToolCalls[T any](toolNames ...string) ObservableTraceCallback[T] {
	base := make(map[string]struct{}, len(toolNames))
	for _, name := range toolNames {
		base[name] = struct{}{}
	}

	return func(o Observer, trace *agenttrace.Trace[T]) {
		required := maps.Clone(base)
		for _, tc := range trace.ToolCalls {
			delete(required, tc.Name)
		}
		if len(required) > 0 {
			o.Fail(fmt.Sprintf("missing required tool calls: %v", slices.Sorted(maps.Keys(required))))
		}
	}
}

// ToolCallNamed runs validator on every call of the named tool and fails if
// the tool was never called.
func ToolCallNamed[T any](name string, validator func(o Observer, tc *agenttrace.ToolCall[T]) error) ObservableTraceCallback[T] {
	return func(o Observer, trace *agenttrace.Trace[T]) {
		found := false
		for _, tc := range trace.ToolCalls {
			if tc.Name != name {
				continue
			}
			found = true
			if err := validator(o, tc); err != nil {
				o.Fail(fmt.Sprintf("tool call %s validation failed: %v", name, err))
				return
			}
		}
		if !found {
			o.Fail(fmt.Sprintf("tool call named %q: got = not found, wanted = found", name))
		}
	}
}

// NoErrors checks that neither the trace nor any of its tool calls failed.
func NoErrors[T any]() ObservableTraceCallback[T] {
	return func(o Observer, trace *agenttrace.Trace[T]) {
		if trace.Error != nil {
			o.Fail(fmt.Sprintf("trace error: got = %v, wanted = nil", trace.Error))
			return
		}
		for _, tc := range trace.ToolCalls {
			if tc.Error != nil {
				o.Fail(fmt.Sprintf("tool call %s error: got = %v, wanted = nil", tc.Name, tc.Error))
				return
			}
		}
	}
}

// TransferPath checks that control moved through exactly the named agents,
// in order.
func TransferPath[T any](agents ...string) ObservableTraceCallback[T] {
	return func(o Observer, trace *agenttrace.Trace[T]) {
		got := make([]string, 0, len(trace.Transfers))
		for _, tr := range trace.Transfers {
			got = append(got, tr.To)
		}
		if !slices.Equal(got, agents) {
			o.Fail(fmt.Sprintf("transfers: got = %v, wanted = %v", got, agents))
		}
	}
}

// ResultValidator runs validator on the trace result.
func ResultValidator[T any](validator func(result T) error) ObservableTraceCallback[T] {
	return func(o Observer, trace *agenttrace.Trace[T]) {
		if err := validator(trace.Result); err != nil {
			o.Fail(err.Error())
		}
	}
}

// BuildCallbacks injects a child of observer, named after each check, into
// every check of evalMap.
func BuildCallbacks[T any, O Observer](observer *NamespacedObserver[O], evalMap map[string]ObservableTraceCallback[T]) []agenttrace.TraceCallback[T] {
	callbacks := make([]agenttrace.TraceCallback[T], 0, len(evalMap))
	for _, name := range slices.Sorted(maps.Keys(evalMap)) {
		callbacks = append(callbacks, Inject(observer.Child(name), evalMap[name]))
	}
	return callbacks
}

// BuildTracer returns a tracer that runs every check of evalMap on each
// completed trace.
func BuildTracer[T any, O Observer](observer *NamespacedObserver[O], evalMap map[string]ObservableTraceCallback[T]) agenttrace.Tracer[T] {
	return agenttrace.ByCode(BuildCallbacks(observer, evalMap)...)
}
