/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package paintagent

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/praveenksekaran/Agents/agents/evals"
	"github.com/praveenksekaran/Agents/agents/executor/googleexecutor"
	"github.com/praveenksekaran/Agents/agents/metrics"
	"github.com/praveenksekaran/Agents/agents/reasoningengine"
	"github.com/praveenksekaran/Agents/agents/session"
	"github.com/praveenksekaran/Agents/paint/catalog"
)

// Conversation is one customer session with the paint agent.
type Conversation interface {
	// Send delivers a user message and returns the events produced in reply.
	Send(ctx context.Context, message string) ([]*session.Event, error)
	// Reply extracts the text shown to the customer from Send's events.
	Reply(events []*session.Event) string
}

// Starter opens a new Conversation for a user.
type Starter func(ctx context.Context, userID string) (Conversation, error)

// NewRunner builds the agent tree for model and a runner for it.
func NewRunner(gen googleexecutor.Generator, model string, sessions session.Service, opts ...googleexecutor.Option) (*googleexecutor.Runner, error) {
	root, err := New(model)
	if err != nil {
		return nil, err
	}
	opts = append([]googleexecutor.Option{
		googleexecutor.WithAppName(AppName),
		googleexecutor.WithAttributeEnricher(metrics.InvocationEnricher),
	}, opts...)
	return googleexecutor.New(gen, root, sessions, opts...)
}

// LocalStarter opens conversations on runner, seeding each session with the
// catalog.
func LocalStarter(runner *googleexecutor.Runner, products catalog.Catalog) Starter {
	return func(ctx context.Context, userID string) (Conversation, error) {
		sess, err := runner.NewSession(ctx, userID, InitialState(products))
		if err != nil {
			return nil, fmt.Errorf("creating session: %w", err)
		}
		clog.FromContext(ctx).With("user_id", userID).With("session_id", sess.ID).Info("Started local session")
		return &local{runner: runner, userID: userID, sessionID: sess.ID}, nil
	}
}

// RemoteStarter opens conversations on a deployed Reasoning Engine.
func RemoteStarter(client *reasoningengine.Client) Starter {
	return func(ctx context.Context, userID string) (Conversation, error) {
		id, err := client.CreateSession(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("creating remote session: %w", err)
		}
		return &remote{client: client, userID: userID, sessionID: id}, nil
	}
}

type local struct {
	runner    *googleexecutor.Runner
	userID    string
	sessionID string
}

func (l *local) Send(ctx context.Context, message string) ([]*session.Event, error) {
	return l.runner.Run(ctx, l.userID, l.sessionID, message)
}

func (l *local) Reply(events []*session.Event) string {
	if r := evals.ParseEvents(events).Response; r != "" {
		return r
	}
	return reasoningengine.NoResponse
}

type remote struct {
	client    *reasoningengine.Client
	userID    string
	sessionID string
}

func (r *remote) Send(ctx context.Context, message string) ([]*session.Event, error) {
	return r.client.Query(ctx, r.userID, r.sessionID, message)
}

func (r *remote) Reply(events []*session.Event) string {
	return reasoningengine.ResponseText(events)
}

// RunFunc adapts a Starter to evaluation: each case gets a fresh conversation
// and its prompt is sent as the only user message.
func RunFunc(start Starter) evals.RunFunc {
	return func(ctx context.Context, c evals.Case) ([]*session.Event, error) {
		if c.Prompt == "" {
			return nil, errors.New("case has no prompt")
		}
		conv, err := start(ctx, "eval-"+evals.NewID(8))
		if err != nil {
			return nil, err
		}
		return conv.Send(ctx, c.Prompt)
	}
}
