/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googletool

import (
	"context"
	"fmt"
	"maps"

	"github.com/praveenksekaran/Agents/agents/agenttrace"
	"github.com/praveenksekaran/Agents/agents/session"
	"github.com/praveenksekaran/Agents/agents/toolcall"
	"google.golang.org/genai"
)

// Metadata describes a tool available to a Gemini agent.
type Metadata[Response any] struct {
	// Definition is the Gemini function declaration.
	Definition *genai.FunctionDeclaration

	// Handler processes a function call against the session state.
	Handler func(ctx context.Context, call *genai.FunctionCall, trace *agenttrace.Trace[Response], state *session.State) *genai.FunctionResponse
}

// FromTool converts a provider-independent tool into Gemini metadata.
func FromTool[Resp any](t toolcall.Tool[Resp]) Metadata[Resp] {
	return Metadata[Resp]{
		Definition: Declaration(t.Def),
		Handler: func(ctx context.Context, call *genai.FunctionCall, trace *agenttrace.Trace[Resp], state *session.State) *genai.FunctionResponse {
			args := call.Args
			if args == nil {
				args = map[string]any{}
			}
			result := t.Handler(ctx, toolcall.ToolCall{
				ID:   call.ID,
				Name: call.Name,
				Args: args,
			}, trace, state)
			return &genai.FunctionResponse{
				ID:       call.ID,
				Name:     call.Name,
				Response: result,
			}
		},
	}
}

// Map converts a set of tools into Gemini metadata keyed by name.
func Map[Resp any](tools map[string]toolcall.Tool[Resp]) map[string]Metadata[Resp] {
	out := make(map[string]Metadata[Resp], len(tools))
	for name, t := range tools {
		out[name] = FromTool(t)
	}
	return out
}

// Declaration builds the Gemini function declaration for a definition.
func Declaration(def toolcall.Definition) *genai.FunctionDeclaration {
	decl := &genai.FunctionDeclaration{
		Name:        def.Name,
		Description: def.Description,
	}
	if len(def.Parameters) == 0 {
		return decl
	}

	s := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(def.Parameters)),
	}
	for _, p := range def.Parameters {
		s.Properties[p.Name] = &genai.Schema{
			Type:        schemaType(p.Type),
			Description: p.Description,
		}
		if p.Required {
			s.Required = append(s.Required, p.Name)
		}
	}
	decl.Parameters = s
	return decl
}

func schemaType(t string) genai.Type {
	switch t {
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

// Error creates a FunctionResponse with an error message
func Error(call *genai.FunctionCall, format string, args ...any) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   call.ID,
		Name: call.Name,
		Response: map[string]any{
			"error": fmt.Sprintf(format, args...),
		},
	}
}

// ErrorWithContext creates a FunctionResponse with an error and additional context
func ErrorWithContext(call *genai.FunctionCall, err error, context map[string]any) *genai.FunctionResponse {
	response := map[string]any{
		"error": err.Error(),
	}
	maps.Copy(response, context)
	return &genai.FunctionResponse{
		ID:       call.ID,
		Name:     call.Name,
		Response: response,
	}
}
