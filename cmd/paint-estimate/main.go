/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main prints the paint needed for a floor plan and what it costs,
// without involving the agent.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/chainguard-dev/clog"
	_ "github.com/chainguard-dev/clog/gcp/init"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/praveenksekaran/Agents/paint/catalog"
	"github.com/praveenksekaran/Agents/paint/estimate"
	"github.com/sethvargo/go-envconfig"
)

type config struct {
	FloorsPath   string `env:"FLOORS_PATH,required"`
	ProductsPath string `env:"PAINT_PRODUCTS_PATH"`
	Format       string `env:"OUTPUT_FORMAT,default=table"`
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

	floors, err := estimate.LoadFloors(cfg.FloorsPath)
	if err != nil {
		clog.FatalContextf(ctx, "failed to load floors: %v", err)
	}
	products, err := catalog.Load(cfg.ProductsPath)
	if err != nil {
		clog.FatalContextf(ctx, "failed to load paint catalog: %v", err)
	}

	summary := estimate.Summarize(floors, products)
	if err := write(os.Stdout, cfg.Format, summary); err != nil {
		clog.FatalContextf(ctx, "failed to write estimate: %v", err)
	}
}

func write(w io.Writer, format string, summary estimate.ProjectSummary) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	case "table":
		return writeTable(w, summary)
	default:
		return fmt.Errorf("unknown output format %q (want table or json)", format)
	}
}

func writeTable(w io.Writer, summary estimate.ProjectSummary) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Paint", "Product", "Color", "Area", "Liters", "Cost"}),
	)
	for _, e := range summary.Estimates {
		if err := table.Append([]string{
			e.PaintID,
			e.Product.Brand + " " + e.Product.Name,
			e.Product.Color,
			fmt.Sprintf("%.2f", e.TotalArea),
			fmt.Sprintf("%.1f", e.LitersRequired),
			fmt.Sprintf("$%.2f", e.TotalCost),
		}); err != nil {
			return fmt.Errorf("appending %s: %w", e.PaintID, err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering estimate: %w", err)
	}
	_, err := fmt.Fprintf(w, "Grand total: $%.2f\n", summary.GrandTotal)
	return err
}
