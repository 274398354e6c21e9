/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evals

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Metric is a named summary value.
type Metric struct {
	Name  string
	Value float64
}

// SummaryMetrics is an ordered list of summary values. It marshals to a JSON
// object whose keys keep the list order.
type SummaryMetrics []Metric

// Get returns the value of the named metric.
func (sm SummaryMetrics) Get(name string) (float64, bool) {
	for _, m := range sm {
		if m.Name == name {
			return m.Value, true
		}
	}
	return 0, false
}

// Filter keeps the metrics whose name contains any of the substrings. With no
// substrings every metric is kept.
func (sm SummaryMetrics) Filter(substrings ...string) SummaryMetrics {
	if len(substrings) == 0 {
		return sm
	}
	var out SummaryMetrics
	for _, m := range sm {
		for _, s := range substrings {
			if strings.Contains(m.Name, s) {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (sm SummaryMetrics) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range sm {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.Value)
		if err != nil {
			return nil, fmt.Errorf("metric %s: %w", m.Name, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler, keeping the object key order.
func (sm *SummaryMetrics) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("summary metrics must be a JSON object")
	}
	var out SummaryMetrics
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}
		var v float64
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("metric %s: %w", name, err)
		}
		out = append(out, Metric{Name: name, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*sm = out
	return nil
}

// Row is one row of a metrics table keyed by column name.
type Row map[string]any

// MetricsTable holds per-case evaluation values.
type MetricsTable struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Head returns the first n rows, or all of them when there are fewer.
func (t *MetricsTable) Head(n int) []Row {
	if t == nil || n <= 0 {
		return nil
	}
	return t.Rows[:min(n, len(t.Rows))]
}

// Select returns a table restricted to the given columns, in that order.
// Columns the table does not have are dropped.
func (t *MetricsTable) Select(columns ...string) *MetricsTable {
	if t == nil || len(columns) == 0 {
		return t
	}
	have := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		have[c] = true
	}
	out := &MetricsTable{Rows: make([]Row, 0, len(t.Rows))}
	for _, c := range columns {
		if have[c] {
			out.Columns = append(out.Columns, c)
		}
	}
	for _, r := range t.Rows {
		nr := make(Row, len(out.Columns))
		for _, c := range out.Columns {
			if v, ok := r[c]; ok {
				nr[c] = v
			}
		}
		out.Rows = append(out.Rows, nr)
	}
	return out
}

// EvaluationResult is the outcome of an evaluation run.
type EvaluationResult struct {
	SummaryMetrics SummaryMetrics `json:"summary_metrics"`
	MetricsTable   *MetricsTable  `json:"metrics_table,omitempty"`
}
