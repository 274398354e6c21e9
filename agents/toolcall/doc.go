/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package toolcall defines provider-independent tools.

A Tool pairs a Definition (name, description, typed parameters) with a
Handler that receives the call arguments, the active trace and the session
state, and returns a result map for the model.

Hand-written handlers extract arguments with Param and OptionalParam:

	tool := toolcall.Tool[string]{
		Def: toolcall.Definition{
			Name:        "get_session_value",
			Description: "Reads a value from the session state",
			Parameters: []toolcall.Parameter{
				{Name: "key", Type: "string", Description: "State key", Required: true},
			},
		},
		Handler: func(ctx context.Context, call toolcall.ToolCall, trace *agenttrace.Trace[string], state *session.State) map[string]any {
			key, errResp := toolcall.Param[string](call, trace, "key")
			if errResp != nil {
				return errResp
			}
			v, _ := state.Get(key)
			return map[string]any{"key": key, "value": v}
		},
	}

Typed tools declare their input as a struct and get the schema by reflection:

	type costInput struct {
		PricePerLiter float64 `json:"price_per_liter" jsonschema:"description=Price per liter,required"`
	}
	tool := toolcall.Typed[costInput, string]("calculate_paint_cost", "...", fn)

The googletool subpackage converts tools to genai function declarations.
*/
package toolcall
