/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor

import (
	"encoding/json"
	"fmt"

	"github.com/praveenksekaran/Agents/agents/session"
	"google.golang.org/genai"
)

// History converts session events into the model contents seen by the named
// agent. The user's messages and the agent's own turns are passed through.
// Turns of other agents are retold as user-role context so the model does not
// mistake them for its own calls.
func History(agentName string, events []*session.Event) []*genai.Content {
	out := make([]*genai.Content, 0, len(events))
	for _, ev := range events {
		if ev == nil || ev.Content == nil || len(ev.Content.Parts) == 0 {
			continue
		}
		if ev.Author == session.UserAuthor || ev.Author == agentName {
			out = append(out, ev.Content)
			continue
		}
		if c := retell(ev); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func retell(ev *session.Event) *genai.Content {
	parts := []*genai.Part{genai.NewPartFromText("For context:")}
	for _, p := range ev.Content.Parts {
		switch {
		case p == nil, p.Thought:
		case p.Text != "":
			parts = append(parts, genai.NewPartFromText(fmt.Sprintf("[%s] said: %s", ev.Author, p.Text)))
		case p.FunctionCall != nil:
			parts = append(parts, genai.NewPartFromText(fmt.Sprintf("[%s] called tool `%s` with parameters: %s",
				ev.Author, p.FunctionCall.Name, compactJSON(p.FunctionCall.Args))))
		case p.FunctionResponse != nil:
			parts = append(parts, genai.NewPartFromText(fmt.Sprintf("[%s] `%s` tool returned result: %s",
				ev.Author, p.FunctionResponse.Name, compactJSON(p.FunctionResponse.Response))))
		}
	}
	if len(parts) == 1 {
		return nil
	}
	return &genai.Content{Role: genai.RoleUser, Parts: parts}
}

func compactJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
