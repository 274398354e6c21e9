/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main runs the paint estimation agent as a console chat.
//
// By default the agent tree runs locally against Gemini on Vertex AI. When
// AGENT_QUERY_URL names a deployed Reasoning Engine, messages are sent there
// instead.
//
// Type "/layout <file>" to send a floor plan (JSON or YAML) as the room layout,
// and "exit" to quit.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chainguard-dev/clog"
	_ "github.com/chainguard-dev/clog/gcp/init"
	"github.com/chainguard-dev/terraform-infra-common/pkg/httpmetrics"
	"github.com/chainguard-dev/terraform-infra-common/pkg/profiler"
	"github.com/joho/godotenv"
	"github.com/praveenksekaran/Agents/agents/session"
	"github.com/praveenksekaran/Agents/internal/gcp"
	"github.com/praveenksekaran/Agents/paint/catalog"
	"github.com/praveenksekaran/Agents/paint/estimate"
	"github.com/praveenksekaran/Agents/paint/paintagent"
	"github.com/sethvargo/go-envconfig"
)

type config struct {
	GCP gcp.Config

	Model         string `env:"MODEL,default=gemini-2.5-flash"`
	ProductsPath  string `env:"PAINT_PRODUCTS_PATH"`
	AgentQueryURL string `env:"AGENT_QUERY_URL"`
	UserID        string `env:"USER_ID,default=user"`
	MetricsPort   int    `env:"METRICS_PORT,default=2112"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := godotenv.Load(); err != nil {
		clog.FromContext(ctx).With("error", err.Error()).Debug("No .env file loaded")
	}

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "failed to process config: %v", err)
	}

	go httpmetrics.ServeMetrics()
	profiler.SetupProfiler()
	defer httpmetrics.SetupTracer(ctx)()

	products, err := catalog.Load(cfg.ProductsPath)
	if err != nil {
		clog.FatalContextf(ctx, "failed to load paint catalog: %v", err)
	}

	start, err := newStarter(ctx, cfg, products)
	if err != nil {
		clog.FatalContextf(ctx, "failed to set up agent: %v", err)
	}
	conv, err := start(ctx, cfg.UserID)
	if err != nil {
		clog.FatalContextf(ctx, "failed to start conversation: %v", err)
	}

	if err := chat(ctx, conv, products, os.Stdin, os.Stdout); err != nil {
		clog.FatalContextf(ctx, "chat failed: %v", err)
	}
}

func newStarter(ctx context.Context, cfg config, products catalog.Catalog) (paintagent.Starter, error) {
	log := clog.FromContext(ctx)

	if cfg.AgentQueryURL != "" {
		client, err := gcp.NewEngineClient(ctx, cfg.AgentQueryURL)
		if err != nil {
			return nil, err
		}
		log.With("url", client.BaseURL()).Info("Using deployed Reasoning Engine")
		return paintagent.RemoteStarter(client), nil
	}

	if err := cfg.GCP.Resolve(ctx); err != nil {
		return nil, err
	}
	client, err := gcp.NewGenAIClient(ctx, cfg.GCP)
	if err != nil {
		return nil, err
	}
	runner, err := paintagent.NewRunner(client.Models, cfg.Model, session.NewInMemoryService())
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}
	log.With("model", cfg.Model).With("project_id", cfg.GCP.Project).With("region", cfg.GCP.Location).
		Info("Running paint agent locally")
	return paintagent.LocalStarter(runner, products), nil
}

// chat relays lines from in to the conversation until EOF or "exit".
func chat(ctx context.Context, conv paintagent.Conversation, products catalog.Catalog, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "exit" || line == "quit":
			return nil
		case strings.HasPrefix(line, "/layout "):
			msg, err := layoutMessage(strings.TrimSpace(strings.TrimPrefix(line, "/layout ")), products)
			if err != nil {
				fmt.Fprintf(out, "Could not read layout: %v\n", err)
				continue
			}
			line = msg
		}

		events, err := conv.Send(ctx, line)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Fprintf(out, "Agent error: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "Agent: %s\n", conv.Reply(events))
	}
}

func layoutMessage(path string, products catalog.Catalog) (string, error) {
	floors, err := estimate.LoadFloors(path)
	if err != nil {
		return "", err
	}
	return paintagent.NewLayout(floors, products).Message()
}
