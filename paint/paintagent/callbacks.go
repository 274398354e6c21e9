/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package paintagent

import (
	"context"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/praveenksekaran/Agents/agents/agent"
	"google.golang.org/genai"
)

// LogQueryToModel logs the latest user message sent to the model.
func LogQueryToModel(ctx context.Context, cc *agent.CallbackContext, req *agent.ModelRequest) (*genai.GenerateContentResponse, error) {
	if n := len(req.Contents); n > 0 {
		last := req.Contents[n-1]
		if last != nil && last.Role == genai.RoleUser {
			if text := contentText(last); text != "" {
				clog.FromContext(ctx).With("agent", cc.AgentName).With("text", text).Info("Query to model")
			}
		}
	}
	return nil, nil
}

// LogModelResponse logs the text and function calls of the model response.
func LogModelResponse(ctx context.Context, cc *agent.CallbackContext, resp *genai.GenerateContentResponse) (*genai.GenerateContentResponse, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return nil, nil
	}
	log := clog.FromContext(ctx).With("agent", cc.AgentName)
	for _, part := range resp.Candidates[0].Content.Parts {
		switch {
		case part == nil:
		case part.Text != "":
			log.With("text", part.Text).Info("Response from model")
		case part.FunctionCall != nil:
			log.With("function", part.FunctionCall.Name).With("args", part.FunctionCall.Args).Info("Function call from model")
		}
	}
	return nil, nil
}

func contentText(c *genai.Content) string {
	var texts []string
	for _, p := range c.Parts {
		if p != nil && p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return strings.TrimSpace(strings.Join(texts, "\n"))
}
