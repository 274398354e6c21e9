/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main evaluates the paint agent against a dataset of conversations.
//
// Each case without recorded events is sent to the agent, locally or on the
// Reasoning Engine named by AGENT_QUERY_URL. Trajectories are scored against
// the references, responses are optionally graded by a judge model, and
// report.md, bar.html and radar.html are written to OUTPUT_DIR. The process
// exits non-zero when the mean trajectory exact match is below EVAL_THRESHOLD.
package main

import (
	"context"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/chainguard-dev/clog"
	_ "github.com/chainguard-dev/clog/gcp/init"
	"github.com/chainguard-dev/terraform-infra-common/pkg/httpmetrics"
	"github.com/chainguard-dev/terraform-infra-common/pkg/profiler"
	"github.com/joho/godotenv"
	"github.com/praveenksekaran/Agents/agents/evals"
	"github.com/praveenksekaran/Agents/agents/evals/judge"
	"github.com/praveenksekaran/Agents/agents/session"
	"github.com/praveenksekaran/Agents/internal/gcp"
	"github.com/praveenksekaran/Agents/paint/catalog"
	"github.com/praveenksekaran/Agents/paint/paintagent"
	"github.com/sethvargo/go-envconfig"
	"google.golang.org/genai"
)

type config struct {
	GCP gcp.Config

	Dataset     string  `env:"EVAL_DATASET,required"`
	OutputDir   string  `env:"OUTPUT_DIR,default=eval-results"`
	Threshold   float64 `env:"EVAL_THRESHOLD,default=0.8"`
	Concurrency int     `env:"EVAL_CONCURRENCY,default=4"`

	Model         string `env:"MODEL,default=gemini-2.5-flash"`
	ProductsPath  string `env:"PAINT_PRODUCTS_PATH"`
	AgentQueryURL string `env:"AGENT_QUERY_URL"`

	// JudgeModel enables response grading when set.
	JudgeModel     string `env:"JUDGE_MODEL"`
	JudgeCriterion string `env:"JUDGE_CRITERION"`

	MetricsPort int `env:"METRICS_PORT,default=2112"`
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

	ds, err := evals.LoadDataset(ctx, cfg.Dataset)
	if err != nil {
		clog.FatalContextf(ctx, "failed to load dataset: %v", err)
	}
	clog.FromContext(ctx).With("dataset", ds.Name).With("cases", len(ds.Cases)).Info("Loaded evaluation dataset")

	ev := &evaluation{
		name:        ds.Name,
		outputDir:   cfg.OutputDir,
		threshold:   cfg.Threshold,
		concurrency: cfg.Concurrency,
		criterion:   cfg.JudgeCriterion,
	}
	if ev.criterion == "" {
		ev.criterion = judge.DefaultCriterion
	}

	var client *genai.Client
	models := func() (*genai.Client, error) {
		if client != nil {
			return client, nil
		}
		if err := cfg.GCP.Resolve(ctx); err != nil {
			return nil, err
		}
		c, err := gcp.NewGenAIClient(ctx, cfg.GCP)
		client = c
		return c, err
	}

	if slices.ContainsFunc(ds.Cases, func(c evals.Case) bool { return len(c.Events) == 0 }) {
		if cfg.AgentQueryURL != "" {
			engine, err := gcp.NewEngineClient(ctx, cfg.AgentQueryURL)
			if err != nil {
				clog.FatalContextf(ctx, "failed to create Reasoning Engine client: %v", err)
			}
			ev.start = paintagent.RemoteStarter(engine)
		} else {
			products, err := catalog.Load(cfg.ProductsPath)
			if err != nil {
				clog.FatalContextf(ctx, "failed to load paint catalog: %v", err)
			}
			c, err := models()
			if err != nil {
				clog.FatalContextf(ctx, "failed to create Gemini client: %v", err)
			}
			runner, err := paintagent.NewRunner(c.Models, cfg.Model, session.NewInMemoryService())
			if err != nil {
				clog.FatalContextf(ctx, "failed to create runner: %v", err)
			}
			ev.start = paintagent.LocalStarter(runner, products)
		}
	}

	if cfg.JudgeModel != "" {
		c, err := models()
		if err != nil {
			clog.FatalContextf(ctx, "failed to create Gemini client: %v", err)
		}
		if ev.judge, err = judge.New(c.Models, judge.WithModel(cfg.JudgeModel)); err != nil {
			clog.FatalContextf(ctx, "failed to create judge: %v", err)
		}
	}

	passed, err := ev.run(ctx, ds.Cases)
	if err != nil {
		clog.FatalContextf(ctx, "evaluation failed: %v", err)
	}
	if !passed {
		clog.ErrorContextf(ctx, "%s mean is below the threshold of %.2f", evals.MetricExactMatch, cfg.Threshold)
		cancel()
		os.Exit(1)
	}
	clog.InfoContextf(ctx, "Evaluation passed; reports written to %s", cfg.OutputDir)
}
