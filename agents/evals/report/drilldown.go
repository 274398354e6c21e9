/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/praveenksekaran/Agents/agents/evals"
)

// DrilldownStatus tells whether a row could be drilled into.
type DrilldownStatus int

const (
	// DrilldownValid means both trajectories were sequences and were paired.
	DrilldownValid DrilldownStatus = iota
	// DrilldownSkipped means a trajectory was missing or not a sequence.
	DrilldownSkipped
)

func (s DrilldownStatus) String() string {
	switch s {
	case DrilldownValid:
		return "valid"
	case DrilldownSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("DrilldownStatus(%d)", int(s))
	}
}

// InputComparison compares one predicted input with the reference input of
// the same key. Missing is set when the reference lacks the key.
type InputComparison struct {
	Key       string
	Predicted any
	Reference any
	Missing   bool
}

// ToolPair is a predicted call paired with the reference call at the same
// position.
type ToolPair struct {
	Predicted string
	Reference string
	// InputsComparable is false when either call has no input map, in which
	// case Inputs is empty.
	InputsComparable bool
	Inputs           []InputComparison
}

// DrilldownResult compares the predicted and reference trajectories of a row.
type DrilldownResult struct {
	Status DrilldownStatus
	Reason string
	Pairs  []ToolPair
}

// Drilldown pairs the predicted and reference calls of row position by
// position, up to the shorter trajectory, and compares the inputs of each
// pair key by key over the predicted keys.
func Drilldown(row evals.Row) DrilldownResult {
	pred, ok := evals.AsTrajectory(row[evals.ColumnPredictedTrajectory])
	if !ok {
		return DrilldownResult{Status: DrilldownSkipped, Reason: fmt.Sprintf("%s is not a sequence", evals.ColumnPredictedTrajectory)}
	}
	ref, ok := evals.AsTrajectory(row[evals.ColumnReferenceTrajectory])
	if !ok {
		return DrilldownResult{Status: DrilldownSkipped, Reason: fmt.Sprintf("%s is not a sequence", evals.ColumnReferenceTrajectory)}
	}

	n := min(len(pred), len(ref))
	res := DrilldownResult{Status: DrilldownValid, Pairs: make([]ToolPair, 0, n)}
	for i := range n {
		p, r := pred[i], ref[i]
		pair := ToolPair{
			Predicted:        p.ToolName,
			Reference:        r.ToolName,
			InputsComparable: p.ToolInput != nil && r.ToolInput != nil,
		}
		if pair.InputsComparable {
			for _, k := range slices.Sorted(maps.Keys(p.ToolInput)) {
				rv, found := r.ToolInput[k]
				pair.Inputs = append(pair.Inputs, InputComparison{
					Key:       k,
					Predicted: p.ToolInput[k],
					Reference: rv,
					Missing:   !found,
				})
			}
		}
		res.Pairs = append(res.Pairs, pair)
	}
	return res
}

// Render writes the tool names of every pair followed by its compared input
// values. A skipped result writes nothing.
func (d DrilldownResult) Render(w io.Writer) error {
	if d.Status != DrilldownValid {
		return nil
	}
	for _, pair := range d.Pairs {
		if _, err := fmt.Fprintf(w, "Tool Names: (%s, %s)\n", pair.Predicted, pair.Reference); err != nil {
			return err
		}
		for _, in := range pair.Inputs {
			ref := formatValue(in.Reference)
			if in.Missing {
				ref = "N/A"
			}
			if _, err := fmt.Fprintf(w, "Tool Input Key: %s\nTool Values: %s %s\n", in.Key, formatValue(in.Predicted), ref); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteDrilldown drills into row and renders the result to w.
func WriteDrilldown(w io.Writer, row evals.Row) error {
	return Drilldown(row).Render(w)
}
