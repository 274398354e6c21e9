/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall

import (
	"fmt"
	"sort"
)

// ToolProvider defines tools for an agent.
// Implementations return provider-independent tool definitions; conversion to
// SDK-specific types happens in the executor.
type ToolProvider[Resp any] interface {
	// Tools returns the tools keyed by name.
	Tools() map[string]Tool[Resp]
}

// Set is a ToolProvider over a fixed list of tools.
type Set[Resp any] []Tool[Resp]

var _ ToolProvider[any] = Set[any](nil)

// Tools implements ToolProvider. Later tools win on duplicate names.
func (s Set[Resp]) Tools() map[string]Tool[Resp] {
	out := make(map[string]Tool[Resp], len(s))
	for _, t := range s {
		out[t.Def.Name] = t
	}
	return out
}

// Names returns the tool names in sorted order.
func Names[Resp any](p ToolProvider[Resp]) []string {
	tools := p.Tools()
	names := make([]string, 0, len(tools))
	for name := range tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge combines providers into a Set, returning an error on duplicate names.
func Merge[Resp any](providers ...ToolProvider[Resp]) (Set[Resp], error) {
	seen := make(map[string]struct{})
	var out Set[Resp]
	for _, p := range providers {
		if p == nil {
			continue
		}
		for _, name := range Names(p) {
			if _, dup := seen[name]; dup {
				return nil, fmt.Errorf("duplicate tool %q", name)
			}
			seen[name] = struct{}{}
			out = append(out, p.Tools()[name])
		}
	}
	return out, nil
}
