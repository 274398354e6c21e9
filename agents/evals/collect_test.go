/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evals_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/praveenksekaran/Agents/agents/evals"
	"github.com/praveenksekaran/Agents/agents/session"
	"google.golang.org/genai"
)

func TestCollect(t *testing.T) {
	recorded := eventsFor("recorded")
	cases := []evals.Case{
		{Name: "a", Prompt: "one"},
		{Name: "b", Prompt: "two", Events: recorded},
		{Name: "c", Prompt: "three"},
	}

	var inFlight, peak, runs atomic.Int32
	got, err := evals.Collect(context.Background(), cases, 1, func(_ context.Context, c evals.Case) ([]*session.Event, error) {
		runs.Add(1)
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		if n > peak.Load() {
			peak.Store(n)
		}
		return eventsFor("answer to " + c.Prompt), nil
	})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if runs.Load() != 2 {
		t.Errorf("runs: got = %d, wanted = 2", runs.Load())
	}
	if peak.Load() != 1 {
		t.Errorf("concurrency: got = %d, wanted = 1", peak.Load())
	}
	for i, want := range []string{"answer to one", "recorded", "answer to three"} {
		if got := evals.ParseEvents(got[i].Events).Response; got != want {
			t.Errorf("case %d response: got = %q, wanted = %q", i, got, want)
		}
	}
	if cases[0].Events != nil {
		t.Error("input cases modified")
	}
}

func TestCollectError(t *testing.T) {
	boom := errors.New("boom")
	_, err := evals.Collect(context.Background(), []evals.Case{{Name: "a"}, {Name: "b"}}, 0,
		func(_ context.Context, c evals.Case) ([]*session.Event, error) {
			if c.Name == "b" {
				return nil, boom
			}
			return []*session.Event{{Content: genai.NewContentFromText("ok", genai.RoleModel)}}, nil
		})
	if !errors.Is(err, boom) {
		t.Errorf("error: got = %v, wanted = %v", err, boom)
	}
}
