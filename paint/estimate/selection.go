/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package estimate

import "github.com/praveenksekaran/Agents/paint/catalog"

// SelectedPaint is a paint chosen for the project with the wall area it must
// cover. It is the shape the coverage calculator's cost tool consumes.
type SelectedPaint struct {
	ProductID        string  `json:"productId"`
	Brand            string  `json:"brand"`
	Name             string  `json:"name"`
	Color            string  `json:"color"`
	PricePerLiter    float64 `json:"pricePerLiter"`
	CoveragePerLiter float64 `json:"coveragePerLiter"`
	PaintableAreaSum float64 `json:"paintableArea_sum"`
}

// Selection groups the painted walls by product in first-use order and sums
// their paintable area. Unlike WallArea, a wall whose openings exceed it
// contributes a negative area. Paints missing from products are skipped.
func Selection(floors []Floor, products catalog.Catalog) []SelectedPaint {
	idx := products.Index()
	pos := make(map[string]int)

	var out []SelectedPaint
	for _, w := range Walls(floors) {
		if w.PaintID == "" {
			continue
		}
		p, ok := idx[w.PaintID]
		if !ok {
			continue
		}
		area := w.Length*w.Height - OpeningsArea(w)
		if i, ok := pos[w.PaintID]; ok {
			out[i].PaintableAreaSum += area
			continue
		}
		pos[w.PaintID] = len(out)
		out = append(out, SelectedPaint{
			ProductID:        p.ID,
			Brand:            p.Brand,
			Name:             p.Name,
			Color:            p.Color,
			PricePerLiter:    p.PricePerLiter,
			CoveragePerLiter: p.CoveragePerLiter,
			PaintableAreaSum: area,
		})
	}
	return out
}
