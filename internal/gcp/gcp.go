/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package gcp locates the Google Cloud project and region the commands run
// against and builds the clients they share.
package gcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"cloud.google.com/go/compute/metadata"
	"github.com/chainguard-dev/clog"
	"github.com/chainguard-dev/terraform-infra-common/pkg/httpmetrics"
	"github.com/praveenksekaran/Agents/agents/reasoningengine"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/genai"
)

// Config selects the Vertex AI project and region. Unset fields are detected
// from the metadata server when running on Google Cloud.
type Config struct {
	Project  string `env:"GOOGLE_CLOUD_PROJECT"`
	Location string `env:"GOOGLE_CLOUD_LOCATION"`
}

// Resolve fills in the project and region.
func (c *Config) Resolve(ctx context.Context) error {
	if c.Project != "" && c.Location != "" {
		return nil
	}
	if !metadata.OnGCE() {
		return errors.New("GOOGLE_CLOUD_PROJECT and GOOGLE_CLOUD_LOCATION are required outside Google Cloud")
	}
	log := clog.FromContext(ctx)

	if c.Project == "" {
		project, err := metadata.ProjectIDWithContext(ctx)
		if err != nil {
			return fmt.Errorf("detecting project ID: %w", err)
		}
		c.Project = project
		log.With("project_id", project).Info("Detected Google Cloud project")
	}
	if c.Location == "" {
		zone, err := metadata.ZoneWithContext(ctx)
		if err != nil {
			return fmt.Errorf("detecting zone: %w", err)
		}
		c.Location = Region(zone)
		log.With("region", c.Location).Info("Detected Google Cloud region")
	}
	return nil
}

// Region returns the region a zone belongs to, for example us-central1 for
// us-central1-a.
func Region(zone string) string {
	if i := strings.LastIndex(zone, "-"); i > 0 {
		return zone[:i]
	}
	return zone
}

// NewGenAIClient creates a Gemini client on Vertex AI.
func NewGenAIClient(ctx context.Context, cfg Config) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  cfg.Project,
		Location: cfg.Location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Google AI client: %w", err)
	}
	return client, nil
}

// NewEngineClient creates a Reasoning Engine client authenticated with
// application default credentials whose requests are counted by httpmetrics.
func NewEngineClient(ctx context.Context, rawURL string) (*reasoningengine.Client, error) {
	ts, err := google.DefaultTokenSource(ctx, reasoningengine.Scope)
	if err != nil {
		return nil, fmt.Errorf("creating token source: %w", err)
	}
	hc := &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.ReuseTokenSource(nil, ts),
			Base:   httpmetrics.WrapTransport(http.DefaultTransport),
		},
	}
	return reasoningengine.New(ctx, rawURL, reasoningengine.WithHTTPClient(hc))
}
