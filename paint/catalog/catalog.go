/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed products.json
var defaultProducts []byte

// ErrDuplicateProduct is returned when two products share an id.
var ErrDuplicateProduct = errors.New("duplicate product id")

// Product is a paint the store sells. Coverage is in square feet per liter.
type Product struct {
	ID               string  `json:"id" yaml:"id"`
	Brand            string  `json:"brand" yaml:"brand"`
	Name             string  `json:"name" yaml:"name"`
	Color            string  `json:"color" yaml:"color"`
	Description      string  `json:"description" yaml:"description"`
	PricePerLiter    float64 `json:"pricePerLiter" yaml:"pricePerLiter"`
	CoveragePerLiter float64 `json:"coveragePerLiter" yaml:"coveragePerLiter"`
	ThumbnailURL     string  `json:"thumbnailUrl" yaml:"thumbnailUrl"`
}

// Catalog is an ordered list of products.
type Catalog []Product

// Parse decodes a catalog from JSON or YAML.
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads a catalog file. An empty path loads the built-in catalog.
func Load(path string) (Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// Default returns the built-in catalog.
func Default() Catalog {
	c, err := Parse(defaultProducts)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog: %v", err))
	}
	return c
}

// Validate checks that every product has a unique, non-empty id.
func (c Catalog) Validate() error {
	var errs []error
	seen := make(map[string]struct{}, len(c))
	for i, p := range c {
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("product %d: id is required", i))
			continue
		}
		if _, dup := seen[p.ID]; dup {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateProduct, p.ID))
		}
		seen[p.ID] = struct{}{}
	}
	return errors.Join(errs...)
}

// Find returns the product with the given id.
func (c Catalog) Find(id string) (Product, bool) {
	for _, p := range c {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Index maps product ids to products.
func (c Catalog) Index() map[string]Product {
	idx := make(map[string]Product, len(c))
	for _, p := range c {
		idx[p.ID] = p
	}
	return idx
}
