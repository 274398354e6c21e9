/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package tools

import (
	"context"
	"fmt"
	"math"

	"github.com/praveenksekaran/Agents/agents/session"
	"github.com/praveenksekaran/Agents/agents/toolcall"
)

const (
	CoverageCalculatorName = "paint_coverage_calculator"
	PaintCostName          = "calculate_paint_cost"
)

// WallSquareFeet is the wall area of a rectangular room: its perimeter times
// the ceiling height.
func WallSquareFeet(height, length, width float64) float64 {
	return ((2 * length) + (2 * width)) * height
}

// PaintCost prices the paint needed to cover sqFeet once.
func PaintCost(pricePerLiter, coverageRate, sqFeet float64) float64 {
	return sqFeet / coverageRate * pricePerLiter
}

// CoatsPaintCost prices the paint needed to cover area with the given number
// of coats.
func CoatsPaintCost(pricePerLiter, coveragePerLiter, area float64, coats int) float64 {
	return (area * float64(coats)) / coveragePerLiter * pricePerLiter
}

type coverageInput struct {
	CeilingHeight float64 `json:"ceiling_height_in_m" jsonschema:"required,description=Height of the ceiling in meters"`
	RoomLength    float64 `json:"room_length_in_m" jsonschema:"required,description=Length of the room in meters"`
	RoomWidth     float64 `json:"room_width_in_m" jsonschema:"required,description=Width of the room in meters"`
}

// CoverageCalculator computes the paintable wall area of a room.
func CoverageCalculator() toolcall.Tool[string] {
	return toolcall.Typed[coverageInput, string](CoverageCalculatorName,
		"Calculates the square footage of the walls of a room from its ceiling height, length and width.",
		func(_ context.Context, in coverageInput, _ *session.State) (map[string]any, error) {
			return map[string]any{
				"square_feet": WallSquareFeet(in.CeilingHeight, in.RoomLength, in.RoomWidth),
			}, nil
		})
}

type costInput struct {
	PricePerLiter float64 `json:"price_per_liter" jsonschema:"required,description=Price per liter of paint"`
	CoverageRate  float64 `json:"coverage_rate" jsonschema:"required,description=Square feet one liter of paint covers"`
	SqFeet        float64 `json:"sq_feet" jsonschema:"required,description=Square feet to paint"`
}

// Cost prices the paint for an area given the price and coverage rate.
func Cost() toolcall.Tool[string] {
	return toolcall.Typed[costInput, string](PaintCostName,
		"Calculates the total cost of paint for an area given the price per liter and coverage rate.",
		func(_ context.Context, in costInput, _ *session.State) (map[string]any, error) {
			cost := PaintCost(in.PricePerLiter, in.CoverageRate, in.SqFeet)
			if err := finite("cost", cost); err != nil {
				return nil, err
			}
			return map[string]any{"cost": cost}, nil
		})
}

type coatsCostInput struct {
	PricePerLiter    float64 `json:"pricePerLiter" jsonschema:"required,description=Price per liter of paint"`
	CoveragePerLiter float64 `json:"coveragePerLiter" jsonschema:"required,description=Coverage rate of the paint in square feet per liter"`
	PaintableArea    float64 `json:"paintableArea_sum" jsonschema:"required,description=Total square feet to paint"`
	Coats            int     `json:"coats" jsonschema:"required,description=Number of coats"`
}

// CoatsCost prices the paint for a selected product over several coats. It
// shares its name with Cost; an agent uses one or the other.
func CoatsCost() toolcall.Tool[string] {
	return toolcall.Typed[coatsCostInput, string](PaintCostName,
		"Calculates the total cost of paint for a selected paint, its paintable area and the number of coats.",
		func(_ context.Context, in coatsCostInput, _ *session.State) (map[string]any, error) {
			cost := CoatsPaintCost(in.PricePerLiter, in.CoveragePerLiter, in.PaintableArea, in.Coats)
			if err := finite("cost_of_paint", cost); err != nil {
				return nil, err
			}
			return map[string]any{"cost_of_paint": cost}, nil
		})
}

func finite(name string, v float64) error {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return fmt.Errorf("%s is not a finite number (%v); check the coverage rate", name, v)
	}
	return nil
}
