/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// InvocationContext identifies the conversation an agent execution belongs to.
// It is used to enrich traces and metrics.
type InvocationContext struct {
	AppName   string `json:"app_name,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Agent     string `json:"agent,omitempty"` // Agent handling the current turn
	Turn      int    `json:"turn,omitempty"`  // Model turn within the invocation, starting at 1
}

// EnrichAttributes adds invocation attributes to the provided base attributes.
//
// Only bounded labels are added. user_id and session_id stay on the trace
// spans and are never used as metric dimensions.
func (i InvocationContext) EnrichAttributes(baseAttrs []attribute.KeyValue) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, len(baseAttrs), len(baseAttrs)+3)
	copy(attrs, baseAttrs)

	if i.AppName != "" {
		attrs = append(attrs, attribute.String("app", i.AppName))
	}
	if i.Agent != "" {
		attrs = append(attrs, attribute.String("agent", i.Agent))
	}
	attrs = append(attrs, attribute.Int("turn", i.Turn))
	return attrs
}

type contextKey string

const invocationContextKey contextKey = "invocation_context"

// WithInvocationContext adds invocation context to the Go context
func WithInvocationContext(ctx context.Context, inv InvocationContext) context.Context {
	return context.WithValue(ctx, invocationContextKey, inv)
}

// GetInvocationContext retrieves invocation context from the Go context
func GetInvocationContext(ctx context.Context) InvocationContext {
	if inv, ok := ctx.Value(invocationContextKey).(InvocationContext); ok {
		return inv
	}
	return InvocationContext{}
}
