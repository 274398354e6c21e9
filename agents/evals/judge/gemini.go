/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/praveenksekaran/Agents/agents/agenttrace"
	"github.com/praveenksekaran/Agents/agents/executor/googleexecutor"
	"github.com/praveenksekaran/Agents/agents/executor/retry"
	"github.com/praveenksekaran/Agents/agents/metrics"
	"google.golang.org/genai"
)

// DefaultModel is the judge model used unless WithModel overrides it.
const DefaultModel = "gemini-2.5-flash"

// Option configures a Gemini judge.
type Option func(*gemini) error

// WithModel sets the Gemini model used for judgements.
func WithModel(model string) Option {
	return func(g *gemini) error {
		if !strings.HasPrefix(model, "gemini-") {
			return fmt.Errorf("model %q does not appear to be a Gemini model (expected gemini-* format)", model)
		}
		g.model = model
		return nil
	}
}

// WithRetryConfig sets the retry behavior for transient Vertex AI errors.
func WithRetryConfig(cfg retry.RetryConfig) Option {
	return func(g *gemini) error {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid retry config: %w", err)
		}
		g.retryConfig = cfg
		return nil
	}
}

var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"mode": {
			Type:        genai.TypeString,
			Description: "The judgement mode: golden or standalone",
		},
		"score": {
			Type:        genai.TypeNumber,
			Description: "The evaluation score",
		},
		"reasoning": {
			Type:        genai.TypeString,
			Description: "Explanation of the score",
		},
		"suggestions": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type:        genai.TypeString,
				Description: "Improvement suggestions",
			},
		},
	},
	Required: []string{"mode", "score", "reasoning", "suggestions"},
}

// gemini implements Interface using a Gemini model.
type gemini struct {
	gen         googleexecutor.Generator
	model       string
	retryConfig retry.RetryConfig
	metrics     *metrics.GenAI
}

// New creates a judge backed by gen. *genai.Models satisfies
// googleexecutor.Generator.
func New(gen googleexecutor.Generator, opts ...Option) (Interface, error) {
	if gen == nil {
		return nil, errors.New("generator is required")
	}
	g := &gemini{
		gen:         gen,
		model:       DefaultModel,
		retryConfig: retry.DefaultRetryConfig(),
		metrics:     metrics.NewGenAI("github.com/praveenksekaran/Agents/judge"),
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Judge implements Interface.
func (g *gemini) Judge(ctx context.Context, request *Request) (*Judgement, error) {
	prompt, err := request.Prompt()
	if err != nil {
		return nil, fmt.Errorf("building judge prompt: %w", err)
	}

	trace := agenttrace.StartTrace[*Judgement](ctx, prompt)
	judgement, err := g.judge(ctx, trace, request.Mode, prompt)
	trace.Complete(judgement, err)
	return judgement, err
}

func (g *gemini) judge(ctx context.Context, trace *agenttrace.Trace[*Judgement], mode Mode, prompt string) (*Judgement, error) {
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.1),
		MaxOutputTokens:  8192,
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema,
	}
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	start := time.Now()
	resp, err := retry.RetryWithBackoff(ctx, g.retryConfig, "judge", googleexecutor.IsRetryable, func() (*genai.GenerateContentResponse, error) {
		return g.gen.GenerateContent(ctx, g.model, contents, config)
	})
	g.metrics.RecordModelLatency(ctx, g.model, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("generating judgement: %w", err)
	}
	if resp.UsageMetadata != nil {
		in, out := int64(resp.UsageMetadata.PromptTokenCount), int64(resp.UsageMetadata.CandidatesTokenCount)
		g.metrics.RecordTokens(ctx, g.model, in, out)
		trace.RecordTokenUsage(g.model, in, out)
	}

	text := resp.Text()
	if text == "" {
		return nil, errors.New("judge returned an empty response")
	}
	judgement, err := Extract[*Judgement](text)
	if err != nil {
		clog.FromContext(ctx).With("response", text).Warn("Unparseable judge response")
		return nil, fmt.Errorf("parsing judgement: %w", err)
	}
	if judgement == nil {
		return nil, errors.New("judge returned a null judgement")
	}
	if judgement.Score < 0 || judgement.Score > 1 {
		return nil, fmt.Errorf("judge score %v is outside [0, 1]", judgement.Score)
	}
	judgement.Mode = mode
	return judgement, nil
}
