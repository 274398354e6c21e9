/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"maps"
)

// stringLiteral only accepts untyped string constants from callers.
type stringLiteral string

// Prompt is an immutable template with named placeholders.
type Prompt struct {
	segments []segment
	bindings map[string]binding
}

// NewPrompt parses a template literal and records its placeholders as unbound.
func NewPrompt(template stringLiteral) (*Prompt, error) {
	segs, err := parseTemplate(string(template))
	if err != nil {
		return nil, err
	}
	bindings := make(map[string]binding)
	for _, s := range segs {
		if s.placeholder() {
			bindings[s.name] = &unboundBinding{name: s.name}
		}
	}
	return &Prompt{segments: segs, bindings: bindings}, nil
}

// GetBindings returns the names of all placeholders in the template.
func (p *Prompt) GetBindings() map[string]struct{} {
	names := make(map[string]struct{}, len(p.bindings))
	for name := range p.bindings {
		names[name] = struct{}{}
	}
	return names
}

// Unbound returns the names of placeholders that have no value yet.
func (p *Prompt) Unbound() map[string]struct{} {
	names := make(map[string]struct{})
	for name, b := range p.bindings {
		if _, ok := b.(*unboundBinding); ok {
			names[name] = struct{}{}
		}
	}
	return names
}

func (p *Prompt) with(name string, b binding) (*Prompt, error) {
	if err := existsAndUnbound(p.bindings, name); err != nil {
		return nil, err
	}
	np := &Prompt{
		segments: p.segments,
		bindings: maps.Clone(p.bindings),
	}
	np.bindings[name] = b
	return np, nil
}

// BindStringLiteral binds a developer-supplied literal to a placeholder.
func (p *Prompt) BindStringLiteral(name string, value stringLiteral) (*Prompt, error) {
	return p.with(name, &literalBinding{val: string(value)})
}

// BindJSON binds data to a placeholder as indented JSON.
func (p *Prompt) BindJSON(name string, data any) (*Prompt, error) {
	return p.with(name, &jsonBinding{data: data})
}

// BindXML binds data to a placeholder as indented XML.
func (p *Prompt) BindXML(name string, data any) (*Prompt, error) {
	return p.with(name, &xmlBinding{data: data})
}

// BindYAML binds data to a placeholder as YAML.
func (p *Prompt) BindYAML(name string, data any) (*Prompt, error) {
	return p.with(name, &yamlBinding{data: data})
}

// BindState binds every still-unbound placeholder from a session state
// snapshot. Placeholders with no matching key bind to the empty string, so the
// result always builds.
func (p *Prompt) BindState(state map[string]any) *Prompt {
	np := &Prompt{
		segments: p.segments,
		bindings: maps.Clone(p.bindings),
	}
	for name, b := range np.bindings {
		if _, ok := b.(*unboundBinding); !ok {
			continue
		}
		v, found := state[name]
		np.bindings[name] = &stateBinding{val: v, found: found}
	}
	return np
}

// Build renders the prompt, returning an error if any placeholder is unbound.
func (p *Prompt) Build() (string, error) {
	values := make(map[string]string, len(p.bindings))
	for name, b := range p.bindings {
		v, err := b.value()
		if err != nil {
			return "", err
		}
		values[name] = v
	}
	return render(p.segments, func(name string) (string, error) {
		return values[name], nil
	})
}
