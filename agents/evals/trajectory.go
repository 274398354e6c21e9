/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evals

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"strings"

	"github.com/praveenksekaran/Agents/agents/session"
	"google.golang.org/genai"
)

// ToolInvocation is one tool call in an agent trajectory.
type ToolInvocation struct {
	ToolName  string         `json:"tool_name" yaml:"tool_name"`
	ToolInput map[string]any `json:"tool_input" yaml:"tool_input"`
}

// Equal reports whether two invocations name the same tool with the same
// inputs. Inputs are compared by their JSON form, so numerically equal values
// of different Go types (1 and 1.0) match.
func (ti ToolInvocation) Equal(other ToolInvocation) bool {
	if ti.ToolName != other.ToolName {
		return false
	}
	a, errA := json.Marshal(normalizeInput(ti.ToolInput))
	b, errB := json.Marshal(normalizeInput(other.ToolInput))
	if errA != nil || errB != nil {
		return reflect.DeepEqual(ti.ToolInput, other.ToolInput)
	}
	return bytes.Equal(a, b)
}

// String renders the invocation as name(json).
func (ti ToolInvocation) String() string {
	b, err := json.Marshal(normalizeInput(ti.ToolInput))
	if err != nil {
		return fmt.Sprintf("%s(%v)", ti.ToolName, ti.ToolInput)
	}
	return fmt.Sprintf("%s(%s)", ti.ToolName, b)
}

func normalizeInput(in map[string]any) map[string]any {
	if in == nil {
		return map[string]any{}
	}
	return in
}

// ParsedOutput is the final response and tool-call trajectory extracted from
// a conversation.
type ParsedOutput struct {
	Response            string           `json:"response"`
	PredictedTrajectory []ToolInvocation `json:"predicted_trajectory"`
}

// JSON returns the trajectory serialized as a JSON array.
func (p ParsedOutput) JSON() (string, error) {
	traj := p.PredictedTrajectory
	if traj == nil {
		traj = []ToolInvocation{}
	}
	b, err := json.Marshal(traj)
	if err != nil {
		return "", fmt.Errorf("marshaling trajectory: %w", err)
	}
	return string(b), nil
}

// ParseEvents walks the events in order and collects every function call into
// the trajectory, dropping calls structurally equal to one already seen. The
// response is the last non-empty text part of a model-authored content.
func ParseEvents(events []*session.Event) ParsedOutput {
	out := ParsedOutput{PredictedTrajectory: []ToolInvocation{}}
	for _, ev := range events {
		if ev == nil || ev.Content == nil || len(ev.Content.Parts) == 0 {
			continue
		}
		for _, part := range ev.Content.Parts {
			if part == nil {
				continue
			}
			if fc := part.FunctionCall; fc != nil {
				inv := ToolInvocation{ToolName: fc.Name, ToolInput: maps.Clone(fc.Args)}
				if inv.ToolInput == nil {
					inv.ToolInput = map[string]any{}
				}
				if !containsInvocation(out.PredictedTrajectory, inv) {
					out.PredictedTrajectory = append(out.PredictedTrajectory, inv)
				}
			}
			if ev.Content.Role == genai.RoleModel && part.Text != "" {
				out.Response = strings.TrimSpace(part.Text)
			}
		}
	}
	return out
}

func containsInvocation(traj []ToolInvocation, inv ToolInvocation) bool {
	for _, t := range traj {
		if t.Equal(inv) {
			return true
		}
	}
	return false
}

// AsTrajectory converts a row value into a trajectory. It accepts
// []ToolInvocation, or a []any of maps with tool_name and tool_input keys as
// produced by decoding JSON. Any other value is not a trajectory.
func AsTrajectory(v any) ([]ToolInvocation, bool) {
	switch t := v.(type) {
	case []ToolInvocation:
		return t, true
	case []any:
		out := make([]ToolInvocation, 0, len(t))
		for _, item := range t {
			m, ok := item.(map[string]any)
			if !ok {
				out = append(out, ToolInvocation{})
				continue
			}
			name, _ := m["tool_name"].(string)
			input, _ := m["tool_input"].(map[string]any)
			out = append(out, ToolInvocation{ToolName: name, ToolInput: input})
		}
		return out, true
	case []map[string]any:
		out := make([]ToolInvocation, 0, len(t))
		for _, m := range t {
			name, _ := m["tool_name"].(string)
			input, _ := m["tool_input"].(map[string]any)
			out = append(out, ToolInvocation{ToolName: name, ToolInput: input})
		}
		return out, true
	default:
		return nil, false
	}
}
