/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/praveenksekaran/Agents/agents/agenttrace"
	"github.com/praveenksekaran/Agents/agents/schema"
	"github.com/praveenksekaran/Agents/agents/session"
	"github.com/praveenksekaran/Agents/agents/toolcall/params"
)

// ToolCall is a provider-independent representation of a tool call.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// Definition describes a tool's schema (name, description, parameters).
type Definition struct {
	Name        string
	Description string
	Parameters  []Parameter
}

// Parameter describes a single tool parameter.
type Parameter struct {
	Name        string
	Type        string // "string", "integer", "boolean", "number"
	Description string
	Required    bool
}

// Handler executes a tool call. The session state is the conversation's
// key-value store. The returned map is sent back to the model as the
// function response; failures are reported as {"error": ...}.
type Handler[Resp any] func(ctx context.Context, call ToolCall, trace *agenttrace.Trace[Resp], state *session.State) map[string]any

// Tool defines a tool once with a single handler that works with any provider.
type Tool[Resp any] struct {
	Def     Definition
	Handler Handler[Resp]
}

// Param extracts a required parameter from the tool call args.
// On error, records a bad tool call on the trace and returns an error response.
func Param[T any](call ToolCall, trace interface {
	BadToolCall(string, string, map[string]any, error)
}, name string) (T, map[string]any) {
	v, err := params.Extract[T](call.Args, name)
	if err != nil {
		trace.BadToolCall(call.ID, call.Name, call.Args, fmt.Errorf("bad %s parameter: %w", name, err))
		return v, params.Error("%s", err)
	}
	return v, nil
}

// OptionalParam extracts an optional parameter from the tool call args.
func OptionalParam[T any](call ToolCall, name string, defaultValue T) (T, map[string]any) {
	v, err := params.ExtractOptional[T](call.Args, name, defaultValue)
	if err != nil {
		return v, params.Error("%s", err)
	}
	return v, nil
}

// DefinitionFor derives a Definition from the JSON schema of In.
// In must be a struct whose fields carry json and jsonschema tags.
func DefinitionFor[In any](name, description string) Definition {
	props := schema.Properties(schema.ReflectType[In]())
	def := Definition{
		Name:        name,
		Description: description,
		Parameters:  make([]Parameter, 0, len(props)),
	}
	for _, p := range props {
		def.Parameters = append(def.Parameters, Parameter{
			Name:        p.Name,
			Type:        p.Type,
			Description: p.Description,
			Required:    p.Required,
		})
	}
	return def
}

// Typed builds a Tool whose arguments are decoded into In before fn runs.
// Missing required parameters and undecodable arguments are reported to the
// model and recorded on the trace as bad tool calls.
func Typed[In, Resp any](name, description string, fn func(ctx context.Context, in In, state *session.State) (map[string]any, error)) Tool[Resp] {
	def := DefinitionFor[In](name, description)
	return Tool[Resp]{
		Def: def,
		Handler: func(ctx context.Context, call ToolCall, trace *agenttrace.Trace[Resp], state *session.State) map[string]any {
			for _, p := range def.Parameters {
				if _, ok := call.Args[p.Name]; p.Required && !ok {
					err := fmt.Errorf("%s parameter is required", p.Name)
					trace.BadToolCall(call.ID, call.Name, call.Args, err)
					return params.Error("%s", err)
				}
			}

			in, err := decodeArgs[In](call.Args)
			if err != nil {
				trace.BadToolCall(call.ID, call.Name, call.Args, err)
				return params.Error("decoding arguments: %v", err)
			}

			tc := trace.StartToolCall(call.ID, call.Name, call.Args)
			result, err := fn(ctx, in, state)
			tc.Complete(result, err)
			if err != nil {
				return params.Error("%s", err)
			}
			return result
		},
	}
}

func decodeArgs[In any](args map[string]any) (In, error) {
	var in In
	raw, err := json.Marshal(args)
	if err != nil {
		return in, fmt.Errorf("encoding arguments: %w", err)
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return in, err
	}
	return in, nil
}
