/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evals

import (
	"context"
	"fmt"
	"slices"

	"github.com/chainguard-dev/clog"
	"github.com/praveenksekaran/Agents/agents/session"
	"golang.org/x/sync/errgroup"
)

// RunFunc produces the conversation events for a case, typically by sending
// its prompt to an agent.
type RunFunc func(ctx context.Context, c Case) ([]*session.Event, error)

// Collect runs every case that has no recorded events, at most limit at a
// time, and returns the cases with their events filled in. Cases that already
// carry events are left as they are. The first failure cancels the rest.
func Collect(ctx context.Context, cases []Case, limit int, run RunFunc) ([]Case, error) {
	out := slices.Clone(cases)

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i := range out {
		if len(out[i].Events) > 0 {
			continue
		}
		g.Go(func() error {
			clog.FromContext(ctx).With("case", out[i].Name).Info("Running evaluation case")
			events, err := run(ctx, out[i])
			if err != nil {
				return fmt.Errorf("case %s: %w", out[i].Name, err)
			}
			out[i].Events = events
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
