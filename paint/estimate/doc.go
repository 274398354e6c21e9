/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package estimate computes paint quantities and costs for a floor plan.
//
// Areas are in square feet and coverage in square feet per liter. Estimates
// assume two coats and round liters up to the next tenth.
package estimate
