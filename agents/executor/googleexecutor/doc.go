/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package googleexecutor runs agent trees on Google Gemini.

A Runner owns the conversation loop the agents themselves only declare:

  - the session history is converted into model contents for the active agent
  - the agent instruction is rendered with session state
  - model calls are retried on quota and transient errors
  - function calls are dispatched to the agent's tools with the session state
  - the built-in transfer_to_agent tool moves control between agents
  - before and after model callbacks run around every call
  - token, tool and transfer metrics and an agenttrace trace are recorded

# Usage

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  project,
		Location: "us-central1",
		Backend:  genai.BackendVertexAI,
	})
	runner, err := googleexecutor.New(client.Models, root, session.NewInMemoryService(),
		googleexecutor.WithModel("gemini-2.0-flash"),
	)
	sess, err := runner.NewSession(ctx, "user-1", map[string]any{"PAINTS": catalog})
	events, err := runner.Run(ctx, "user-1", sess.ID, "I want to paint my bedroom")

Run returns every event produced after the user message. An invocation ends
when the active agent replies with text and no function calls, or with
ErrMaxTurns when the turn budget is spent.

The next Run on the same session starts with the agent that last held the
conversation.
*/
package googleexecutor
