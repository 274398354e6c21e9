/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package estimate

import (
	"math"

	"github.com/praveenksekaran/Agents/paint/catalog"
)

// Coats assumed by LitersRequired.
const Coats = 2

// PaintEstimate is the quantity and cost of one paint across the project.
type PaintEstimate struct {
	PaintID        string          `json:"paintId"`
	Product        catalog.Product `json:"paintProduct"`
	TotalArea      float64         `json:"totalArea"`
	LitersRequired float64         `json:"litersRequired"`
	TotalCost      float64         `json:"totalCost"`
}

// ProjectSummary is every estimate plus their total cost.
type ProjectSummary struct {
	Estimates  []PaintEstimate `json:"estimates"`
	GrandTotal float64         `json:"grandTotal"`
}

// OpeningsArea sums the area of the wall's doors and windows.
func OpeningsArea(w Wall) float64 {
	var area float64
	for _, o := range w.Openings {
		area += o.Width * o.Height
	}
	return area
}

// WallArea is the wall's area minus its openings, never below zero.
func WallArea(w Wall) float64 {
	return max(0, w.Length*w.Height-OpeningsArea(w))
}

// PaintArea sums the area of the walls painted with paintID.
func PaintArea(walls []Wall, paintID string) float64 {
	var area float64
	for _, w := range walls {
		if w.PaintID == paintID {
			area += WallArea(w)
		}
	}
	return area
}

// LitersRequired is the paint needed for two coats over area, rounded up to
// the next tenth of a liter.
func LitersRequired(area, coveragePerLiter float64) float64 {
	return math.Ceil(area*Coats/coveragePerLiter*10) / 10
}

// usedPaints lists the paint ids assigned to walls in first-use order.
func usedPaints(walls []Wall) []string {
	var ids []string
	seen := make(map[string]struct{})
	for _, w := range walls {
		if w.PaintID == "" {
			continue
		}
		if _, ok := seen[w.PaintID]; ok {
			continue
		}
		seen[w.PaintID] = struct{}{}
		ids = append(ids, w.PaintID)
	}
	return ids
}

// Estimates computes one estimate per paint used on the floors. Paints
// missing from products are skipped.
func Estimates(floors []Floor, products catalog.Catalog) []PaintEstimate {
	walls := Walls(floors)
	idx := products.Index()

	out := []PaintEstimate{}
	for _, id := range usedPaints(walls) {
		p, ok := idx[id]
		if !ok {
			continue
		}
		area := PaintArea(walls, id)
		liters := LitersRequired(area, p.CoveragePerLiter)
		out = append(out, PaintEstimate{
			PaintID:        id,
			Product:        p,
			TotalArea:      area,
			LitersRequired: liters,
			TotalCost:      liters * p.PricePerLiter,
		})
	}
	return out
}

// GrandTotal sums the cost of the estimates.
func GrandTotal(estimates []PaintEstimate) float64 {
	var total float64
	for _, e := range estimates {
		total += e.TotalCost
	}
	return total
}

// Summarize computes the estimates and grand total for the floors.
func Summarize(floors []Floor, products catalog.Catalog) ProjectSummary {
	estimates := Estimates(floors, products)
	return ProjectSummary{
		Estimates:  estimates,
		GrandTotal: GrandTotal(estimates),
	}
}
