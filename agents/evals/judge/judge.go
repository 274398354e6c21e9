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
)

// Mode specifies the type of judgement to perform.
type Mode string

const (
	// GoldenMode evaluates a response against a reference answer.
	GoldenMode Mode = "golden"
	// StandaloneMode evaluates a single response against a criterion without a reference.
	StandaloneMode Mode = "standalone"
)

// Request contains the context for a judgement.
type Request struct {
	Mode Mode `json:"mode"`

	// ReferenceAnswer is the golden answer to compare against.
	ReferenceAnswer string `json:"reference_answer,omitempty"`

	// ActualAnswer is the answer to evaluate.
	ActualAnswer string `json:"actual_answer"`

	// Criterion specifies the evaluation criterion.
	Criterion string `json:"criterion"`
}

// Validate checks that the request carries what its mode needs.
func (r *Request) Validate() error {
	if r == nil {
		return errors.New("request is required")
	}
	var errs []error
	switch r.Mode {
	case GoldenMode:
		if r.ReferenceAnswer == "" {
			errs = append(errs, errors.New("reference_answer is required for golden mode"))
		}
	case StandaloneMode:
	default:
		errs = append(errs, fmt.Errorf("unknown judgement mode %q", r.Mode))
	}
	if r.ActualAnswer == "" {
		errs = append(errs, errors.New("actual_answer is required"))
	}
	if r.Criterion == "" {
		errs = append(errs, errors.New("criterion is required"))
	}
	return errors.Join(errs...)
}

// Judgement contains the judgement result.
type Judgement struct {
	Mode Mode `json:"mode"`

	// Score runs from 0.0 (awful) to 1.0 (ideal).
	Score float64 `json:"score"`

	// Reasoning explains the score.
	Reasoning string `json:"reasoning"`

	// Suggestions provides improvement recommendations. Empty for perfect scores.
	Suggestions []string `json:"suggestions"`
}

// String returns a formatted representation of the judgement.
func (j *Judgement) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Grade: %.2f", j.Score)
	if j.Reasoning != "" {
		fmt.Fprintf(&sb, " - %s", j.Reasoning)
	}
	sb.WriteString("\n")
	for _, suggestion := range j.Suggestions {
		fmt.Fprintf(&sb, "  Suggestion: %s\n", suggestion)
	}

	return strings.TrimRight(sb.String(), "\n")
}

// Interface defines the contract for judge implementations.
type Interface interface {
	// Judge evaluates the actual answer in request according to its mode.
	Judge(ctx context.Context, request *Request) (*Judgement, error)
}
