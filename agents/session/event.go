/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package session

import (
	"time"

	"google.golang.org/genai"
)

// Author used for events carrying the user's message.
const UserAuthor = "user"

// Event is one entry in a conversation: a user message, a model turn, or the
// responses to the tool calls of a model turn.
type Event struct {
	ID           string         `json:"id,omitempty"`
	InvocationID string         `json:"invocation_id,omitempty"`
	Author       string         `json:"author,omitempty"`
	Timestamp    time.Time      `json:"timestamp,omitzero"`
	Content      *genai.Content `json:"content,omitempty"`
	Actions      Actions        `json:"actions,omitzero"`
}

// Actions are side effects attached to an event.
type Actions struct {
	// StateDelta holds session state changes made while producing the event.
	StateDelta map[string]any `json:"state_delta,omitempty"`
	// TransferToAgent names the agent that handles the next model turn.
	TransferToAgent string `json:"transfer_to_agent,omitempty"`
}

// FunctionCalls returns the function calls carried by the event, in order.
func (e *Event) FunctionCalls() []*genai.FunctionCall {
	if e == nil || e.Content == nil {
		return nil
	}
	var calls []*genai.FunctionCall
	for _, part := range e.Content.Parts {
		if part != nil && part.FunctionCall != nil {
			calls = append(calls, part.FunctionCall)
		}
	}
	return calls
}

// IsFinalResponse reports whether the event is a model turn that carries
// text and neither calls nor answers a function.
func (e *Event) IsFinalResponse() bool {
	if e == nil || e.Content == nil || e.Content.Role != genai.RoleModel {
		return false
	}
	hasText := false
	for _, part := range e.Content.Parts {
		if part == nil {
			continue
		}
		if part.FunctionCall != nil || part.FunctionResponse != nil {
			return false
		}
		if part.Text != "" && !part.Thought {
			hasText = true
		}
	}
	return hasText
}
