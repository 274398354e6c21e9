/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/praveenksekaran/Agents/agents/promptbuilder"
	"github.com/praveenksekaran/Agents/agents/toolcall"
)

// Option configures an Agent.
type Option func(*Agent) error

// WithDescription sets the description other agents see when deciding
// whether to transfer.
func WithDescription(desc string) Option {
	return func(a *Agent) error {
		a.Description = desc
		return nil
	}
}

// WithModel sets the Gemini model for this agent.
func WithModel(model string) Option {
	return func(a *Agent) error {
		if !strings.HasPrefix(model, "gemini-") {
			return fmt.Errorf("model %q does not appear to be a Gemini model (expected gemini-* format)", model)
		}
		a.Model = model
		return nil
	}
}

// WithInstruction sets the system instruction.
func WithInstruction(p *promptbuilder.Prompt) Option {
	return func(a *Agent) error {
		if p == nil {
			return errors.New("instruction prompt cannot be nil")
		}
		a.Instruction = p
		return nil
	}
}

// WithTools adds tools. A tool may not use the reserved transfer tool name.
func WithTools(tools ...toolcall.Tool[string]) Option {
	return func(a *Agent) error {
		seen := make(map[string]struct{}, len(tools))
		for _, t := range tools {
			if _, dup := seen[t.Def.Name]; dup {
				return fmt.Errorf("duplicate tool %q", t.Def.Name)
			}
			seen[t.Def.Name] = struct{}{}
			if t.Def.Name == TransferToolName {
				return fmt.Errorf("tool name %q is reserved", TransferToolName)
			}
			if t.Handler == nil {
				return fmt.Errorf("tool %q has no handler", t.Def.Name)
			}
		}
		merged, err := toolcall.Merge[string](a.Tools, toolcall.Set[string](tools))
		if err != nil {
			return err
		}
		a.Tools = merged
		return nil
	}
}

// WithSubAgents adds agents this agent may transfer to.
func WithSubAgents(subs ...*Agent) Option {
	return func(a *Agent) error {
		for _, s := range subs {
			if s == nil {
				return errors.New("sub-agent cannot be nil")
			}
		}
		a.SubAgents = append(a.SubAgents, subs...)
		return nil
	}
}

// WithBeforeModel sets the callback run before each model call.
func WithBeforeModel(cb BeforeModelCallback) Option {
	return func(a *Agent) error {
		a.BeforeModel = cb
		return nil
	}
}

// WithAfterModel sets the callback run after each model call.
func WithAfterModel(cb AfterModelCallback) Option {
	return func(a *Agent) error {
		a.AfterModel = cb
		return nil
	}
}
