/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package tools

import (
	"context"

	"github.com/chainguard-dev/clog"
	"github.com/praveenksekaran/Agents/agents/agenttrace"
	"github.com/praveenksekaran/Agents/agents/session"
	"github.com/praveenksekaran/Agents/agents/toolcall"
)

const (
	SetSessionValueName = "set_session_value"
	GetSessionValueName = "get_session_value"
)

// SetSessionValue stores a value in the session state.
func SetSessionValue() toolcall.Tool[string] {
	return toolcall.Tool[string]{
		Def: toolcall.Definition{
			Name:        SetSessionValueName,
			Description: "Stores a value in the session state under the given key.",
			Parameters: []toolcall.Parameter{
				{Name: "key", Type: "string", Description: "The session state key", Required: true},
				{Name: "value", Type: "string", Description: "The value to store", Required: true},
			},
		},
		Handler: func(ctx context.Context, call toolcall.ToolCall, trace *agenttrace.Trace[string], state *session.State) map[string]any {
			key, errResp := toolcall.Param[string](call, trace, "key")
			if errResp != nil {
				return errResp
			}
			value, errResp := toolcall.Param[string](call, trace, "value")
			if errResp != nil {
				return errResp
			}

			tc := trace.StartToolCall(call.ID, call.Name, call.Args)
			state.Set(key, value)
			clog.FromContext(ctx).With("key", key).Info("Stored session value")

			result := map[string]any{"key": key, "value": value}
			tc.Complete(result, nil)
			return result
		},
	}
}

// GetSessionValue reads a value from the session state.
func GetSessionValue() toolcall.Tool[string] {
	return toolcall.Tool[string]{
		Def: toolcall.Definition{
			Name:        GetSessionValueName,
			Description: "Reads the value stored in the session state under the given key.",
			Parameters: []toolcall.Parameter{
				{Name: "key", Type: "string", Description: "The session state key", Required: true},
			},
		},
		Handler: func(_ context.Context, call toolcall.ToolCall, trace *agenttrace.Trace[string], state *session.State) map[string]any {
			key, errResp := toolcall.Param[string](call, trace, "key")
			if errResp != nil {
				return errResp
			}

			tc := trace.StartToolCall(call.ID, call.Name, call.Args)
			var result map[string]any
			if value, ok := state.Get(key); ok {
				result = map[string]any{"key": key, "value": value}
			} else {
				result = map[string]any{"key": key, "value": nil, "found": false}
			}
			tc.Complete(result, nil)
			return result
		},
	}
}
