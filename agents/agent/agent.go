/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agent

import (
	"context"
	"errors"
	"fmt"
	"unicode"

	"github.com/praveenksekaran/Agents/agents/promptbuilder"
	"github.com/praveenksekaran/Agents/agents/session"
	"github.com/praveenksekaran/Agents/agents/toolcall"
	"google.golang.org/genai"
)

// ErrDuplicateName is returned by Validate when two agents in a tree share a name.
var ErrDuplicateName = errors.New("duplicate agent name")

// TransferToolName is the built-in tool an agent calls to hand the
// conversation to another agent.
const TransferToolName = "transfer_to_agent"

// CallbackContext is what model callbacks see of the running invocation.
type CallbackContext struct {
	AgentName    string
	InvocationID string
	State        *session.State
}

// ModelRequest is the request about to be sent to the model.
type ModelRequest struct {
	Model    string
	Contents []*genai.Content
	Config   *genai.GenerateContentConfig
}

// BeforeModelCallback runs before each model call. The request may be
// modified in place. Returning a non-nil response skips the model call and
// uses that response instead.
type BeforeModelCallback func(ctx context.Context, cc *CallbackContext, req *ModelRequest) (*genai.GenerateContentResponse, error)

// AfterModelCallback runs after each model call. Returning a non-nil response
// replaces the model's response.
type AfterModelCallback func(ctx context.Context, cc *CallbackContext, resp *genai.GenerateContentResponse) (*genai.GenerateContentResponse, error)

// Agent is a declarative LLM agent: an instruction, the tools it may call and
// the sub-agents it may hand the conversation to.
type Agent struct {
	Name        string
	Description string
	// Model overrides the runner's default model when set.
	Model string
	// Instruction is the system instruction. Placeholders are filled from
	// session state on every turn.
	Instruction *promptbuilder.Prompt
	Tools       toolcall.Set[string]
	SubAgents   []*Agent
	BeforeModel BeforeModelCallback
	AfterModel  AfterModelCallback
}

// New creates an agent with the given options applied in order.
func New(name string, opts ...Option) (*Agent, error) {
	if !isIdentifier(name) {
		return nil, fmt.Errorf("agent name %q must be an identifier", name)
	}
	if name == session.UserAuthor {
		return nil, fmt.Errorf("agent name %q is reserved", name)
	}
	a := &Agent{Name: name}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, fmt.Errorf("agent %s: %w", name, err)
		}
	}
	return a, nil
}

// Find searches the tree rooted at a depth-first for the named agent.
func (a *Agent) Find(name string) *Agent {
	if a == nil {
		return nil
	}
	if a.Name == name {
		return a
	}
	for _, sub := range a.SubAgents {
		if found := sub.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Parent returns the agent whose SubAgents contain the named agent, or nil
// for the root and for unknown names.
func (a *Agent) Parent(name string) *Agent {
	if a == nil {
		return nil
	}
	for _, sub := range a.SubAgents {
		if sub.Name == name {
			return a
		}
		if p := sub.Parent(name); p != nil {
			return p
		}
	}
	return nil
}

// TransferTargets lists the agents the named agent may transfer to within the
// tree rooted at a: its sub-agents, then its parent, then its siblings.
func (a *Agent) TransferTargets(name string) []*Agent {
	self := a.Find(name)
	if self == nil {
		return nil
	}
	targets := append([]*Agent(nil), self.SubAgents...)
	if parent := a.Parent(name); parent != nil {
		targets = append(targets, parent)
		for _, sib := range parent.SubAgents {
			if sib.Name != name {
				targets = append(targets, sib)
			}
		}
	}
	return targets
}

// Validate checks that every agent in the tree has a unique name.
func (a *Agent) Validate() error {
	seen := make(map[string]struct{})
	var walk func(*Agent) error
	walk = func(n *Agent) error {
		if n == nil {
			return errors.New("nil agent in tree")
		}
		if _, dup := seen[n.Name]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateName, n.Name)
		}
		seen[n.Name] = struct{}{}
		for _, sub := range n.SubAgents {
			if err := walk(sub); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(a)
}

// Walk calls fn for every agent in the tree, parents before children.
func (a *Agent) Walk(fn func(*Agent)) {
	if a == nil {
		return
	}
	fn(a)
	for _, sub := range a.SubAgents {
		sub.Walk(fn)
	}
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case unicode.IsLetter(r), r == '_':
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return s != ""
}
