/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package judge grades agent responses with a Gemini model acting as an
// evaluator.
//
// A judge runs in one of two modes. Golden mode compares a response with a
// reference answer, and standalone mode scores a response against a
// criterion alone. Scores range from 0.0 (failing) to 1.0 (ideal).
//
//	j, err := judge.New(client.Models, judge.WithModel("gemini-2.5-pro"))
//	if err != nil {
//		return err
//	}
//	err = judge.Grade(ctx, j, judge.DefaultCriterion, cases, result, 4)
//
// Grade adds a response_quality column to an evals.EvaluationResult along with
// its mean and standard deviation in the summary metrics.
package judge
