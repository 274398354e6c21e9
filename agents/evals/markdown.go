/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evals

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// FormatMarkdown renders the response followed by the function calls and
// their arguments. Argument keys are sorted.
func FormatMarkdown(out ParsedOutput) string {
	var sb strings.Builder
	sb.WriteString("### AI Response\n")
	sb.WriteString(out.Response)
	sb.WriteString("\n\n")

	if len(out.PredictedTrajectory) == 0 {
		return sb.String()
	}
	sb.WriteString("### Function Calls\n")
	for _, call := range out.PredictedTrajectory {
		fmt.Fprintf(&sb, "- **Function**: `%s`\n", call.ToolName)
		sb.WriteString("  - **Arguments**\n")
		for _, k := range slices.Sorted(maps.Keys(call.ToolInput)) {
			fmt.Fprintf(&sb, "    - `%s`: `%v`\n", k, call.ToolInput[k])
		}
	}
	return sb.String()
}
