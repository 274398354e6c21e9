/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package testevals adapts testing.TB to evals.Observer, so trace checks and
// trajectory scores fail Go tests directly.
//
//	func TestPlanner(t *testing.T) {
//		obs := evals.NewNamespacedObserver(func(name string) evals.Observer {
//			return testevals.NewPrefix(t, name)
//		})
//		tracer := evals.BuildTracer(obs, map[string]evals.ObservableTraceCallback[string]{
//			"no-errors": evals.NoErrors[string](),
//		})
//		ctx := agenttrace.WithTracer(context.Background(), tracer)
//		// Run the agent with ctx.
//	}
//
// AtLeast asserts a summary metric of an evaluation result:
//
//	result := evals.Score(cases, evals.WithObserver(testevals.New(t)))
//	testevals.AtLeast(t, result, "trajectory_exact_match/mean", 0.8)
package testevals
