/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package params provides parameter extraction and error formatting for tool
// handlers. Tool arguments arrive as map[string]any decoded from model output,
// so numbers may be float64, int or json.Number depending on the caller.
package params
