/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/praveenksekaran/Agents/agents/executor/retry"
	"github.com/praveenksekaran/Agents/agents/metrics"
)

// Option is a functional option for configuring a Runner.
type Option func(*Runner) error

// WithAppName overrides the application name, which defaults to the root agent's name.
func WithAppName(name string) Option {
	return func(r *Runner) error {
		if name == "" {
			return errors.New("app name cannot be empty")
		}
		r.appName = name
		return nil
	}
}

// WithModel sets the default model for agents that do not name one.
func WithModel(model string) Option {
	return func(r *Runner) error {
		if !strings.HasPrefix(model, "gemini-") {
			return fmt.Errorf("model %q does not appear to be a Gemini model (expected gemini-* format)", model)
		}
		r.model = model
		return nil
	}
}

// WithTemperature sets the sampling temperature, between 0.0 and 2.0.
func WithTemperature(temperature float32) Option {
	return func(r *Runner) error {
		if temperature < 0.0 || temperature > 2.0 {
			return fmt.Errorf("temperature must be between 0.0 and 2.0, got %f", temperature)
		}
		r.temperature = temperature
		return nil
	}
}

// WithMaxOutputTokens sets the maximum output tokens per model call.
func WithMaxOutputTokens(tokens int32) Option {
	return func(r *Runner) error {
		if tokens <= 0 {
			return fmt.Errorf("max output tokens must be positive, got %d", tokens)
		}
		if tokens > 65536 {
			return fmt.Errorf("max output tokens %d exceeds maximum of 65536", tokens)
		}
		r.maxOutputTokens = tokens
		return nil
	}
}

// WithMaxTurns bounds the model calls made for one user message.
func WithMaxTurns(turns int) Option {
	return func(r *Runner) error {
		if turns <= 0 {
			return fmt.Errorf("max turns must be positive, got %d", turns)
		}
		r.maxTurns = turns
		return nil
	}
}

// WithRetryConfig sets the retry configuration for transient Vertex AI errors.
func WithRetryConfig(cfg retry.RetryConfig) Option {
	return func(r *Runner) error {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid retry config: %w", err)
		}
		r.retryConfig = cfg
		return nil
	}
}

// WithMetrics replaces the metrics instance, for example to record on a
// dedicated meter provider.
func WithMetrics(m *metrics.GenAI) Option {
	return func(r *Runner) error {
		if m == nil {
			return errors.New("metrics cannot be nil")
		}
		r.genaiMetrics = m
		return nil
	}
}

// WithAttributeEnricher sets an enricher that adds attributes to every metric.
func WithAttributeEnricher(enricher metrics.AttributeEnricher) Option {
	return func(r *Runner) error {
		r.genaiMetrics.SetAttributeEnricher(enricher)
		return nil
	}
}
