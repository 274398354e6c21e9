/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/praveenksekaran/Agents/paint/catalog"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    catalog.Catalog
		wantErr error
	}{{
		name: "json",
		data: `[{"id": "p1", "brand": "B", "name": "White", "pricePerLiter": 10, "coveragePerLiter": 50}]`,
		want: catalog.Catalog{{ID: "p1", Brand: "B", Name: "White", PricePerLiter: 10, CoveragePerLiter: 50}},
	}, {
		name: "yaml",
		data: "- id: p1\n  name: White\n  pricePerLiter: 10.5\n  coveragePerLiter: 50\n- id: p2\n  name: Blue\n",
		want: catalog.Catalog{
			{ID: "p1", Name: "White", PricePerLiter: 10.5, CoveragePerLiter: 50},
			{ID: "p2", Name: "Blue"},
		},
	}, {
		name:    "duplicate",
		data:    `[{"id": "p1"}, {"id": "p1"}]`,
		wantErr: catalog.ErrDuplicateProduct,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := catalog.Parse([]byte(tt.data))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse error: got = %v, wanted = %v", err, tt.wantErr)
				}
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := catalog.Parse([]byte(`[{"name": "no id"}]`)); err == nil {
		t.Error("missing id: got = nil error, wanted = error")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paints.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": "p9", "name": "Gray"}]`), 0o600))

	got, err := catalog.Load(path)
	require.NoError(t, err)
	if p, ok := got.Find("p9"); !ok || p.Name != "Gray" {
		t.Errorf("Find(p9): got = %+v, %v, wanted = Gray, true", p, ok)
	}

	if _, err := catalog.Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file: got = nil error, wanted = error")
	}

	def, err := catalog.Load("")
	require.NoError(t, err)
	if len(def) == 0 {
		t.Error("default catalog: got = empty, wanted = products")
	}
}

func TestDefault(t *testing.T) {
	c := catalog.Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	idx := c.Index()
	if len(idx) != len(c) {
		t.Errorf("Index: got = %d entries, wanted = %d", len(idx), len(c))
	}
	for _, p := range c {
		if p.PricePerLiter <= 0 || p.CoveragePerLiter <= 0 {
			t.Errorf("product %s: price and coverage must be positive, got %v and %v", p.ID, p.PricePerLiter, p.CoveragePerLiter)
		}
	}
	if _, ok := c.Find("no-such-paint"); ok {
		t.Error("Find(unknown): got = found, wanted = not found")
	}
}
