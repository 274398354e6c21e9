/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package evals extracts and scores the tool-call trajectories of agent
conversations.

# Trajectories

ParseEvents walks the events of a conversation and returns a ParsedOutput:
the last text the model produced and the distinct tool calls it made, in the
order they first appeared.

	out := evals.ParseEvents(events)
	fmt.Print(evals.FormatMarkdown(out))

	traj, err := out.JSON()

Two ToolInvocation values are equal when they name the same tool with the same
inputs after JSON normalisation, so 1 and 1.0 compare equal.

# Scoring

Score compares each Case's predicted trajectory with its reference and
produces an EvaluationResult using the Vertex AI trajectory metric names:

  - trajectory_exact_match
  - trajectory_in_order_match
  - trajectory_any_order_match
  - trajectory_precision
  - trajectory_recall
  - response_match, when cases carry a reference response

The summary holds row_count plus the mean and sample standard deviation of
each metric, keyed as "<metric>/mean" and "<metric>/std". The metrics table
holds one row per case and is what the report package renders.

	ds, err := evals.LoadDataset(ctx, "gs://my-bucket/paint.yaml")
	if err != nil {
		return err
	}
	cases, err := evals.Collect(ctx, ds.Cases, 4, runCase)
	if err != nil {
		return err
	}
	result := evals.Score(cases, evals.WithObserver(collector))

# Observers

Each scored case is reported to an Observer: Grade receives the exact match
score and Fail is called when the trajectories differ. ResultCollector keeps
failures and grades, MetricsObserver exports them to Prometheus, and
NamespacedObserver arranges observers in a tree, one node per case or check.

The same observers grade live traces. BuildTracer turns a map of
ObservableTraceCallback checks into an agenttrace.Tracer:

	obs := evals.NewNamespacedObserver(evals.NewMetricsObserver)
	tracer := evals.BuildTracer(obs, map[string]evals.ObservableTraceCallback[string]{
		"no-errors": evals.NoErrors[string](),
		"planner":   evals.TransferPath[string]("room_planner_agent"),
	})
	ctx = agenttrace.WithTracer(ctx, tracer)
*/
package evals
