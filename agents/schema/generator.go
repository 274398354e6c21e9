/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"slices"

	"github.com/invopop/jsonschema"
)

// Generator wraps jsonschema.Reflector with the defaults used for tool inputs.
type Generator struct {
	reflector jsonschema.Reflector
}

// NewGenerator constructs a generator for flat tool input structs.
func NewGenerator() *Generator {
	return &Generator{
		reflector: jsonschema.Reflector{
			RequiredFromJSONSchemaTags: true,
			ExpandedStruct:             true,
			AllowAdditionalProperties:  true,
			DoNotReference:             true,
		},
	}
}

// Reflect returns the JSON schema for the provided value.
func (g *Generator) Reflect(v any) *jsonschema.Schema {
	return g.reflector.Reflect(v)
}

// Reflect derives the JSON schema for the provided value using a default generator.
func Reflect(v any) *jsonschema.Schema {
	return NewGenerator().Reflect(v)
}

// ReflectType allocates a zero value of T and reflects it to a schema.
func ReflectType[T any]() *jsonschema.Schema {
	var zero T
	return Reflect(&zero)
}

// Property is one top-level property of an object schema.
type Property struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// Properties flattens the top-level properties of s in declaration order.
func Properties(s *jsonschema.Schema) []Property {
	if s == nil || s.Properties == nil {
		return nil
	}
	out := make([]Property, 0, s.Properties.Len())
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		p := Property{
			Name:     pair.Key,
			Required: slices.Contains(s.Required, pair.Key),
		}
		if pair.Value != nil {
			p.Type = pair.Value.Type
			p.Description = pair.Value.Description
		}
		out = append(out, p)
	}
	return out
}
