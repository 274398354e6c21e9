/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/praveenksekaran/Agents/agents/session"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for dataset files that are neither YAML nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Case is one evaluation case: a prompt, optionally the events an agent
// produced for it, and the expected trajectory and response.
type Case struct {
	Name                string           `json:"name"`
	Prompt              string           `json:"prompt"`
	Events              []*session.Event `json:"events,omitempty"`
	ReferenceTrajectory []ToolInvocation `json:"reference_trajectory"`
	ReferenceResponse   string           `json:"reference_response,omitempty"`
}

// Dataset is a named list of cases.
type Dataset struct {
	Name  string `json:"name"`
	Cases []Case `json:"cases"`
}

// Format identifies a dataset encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// DatasetOption configures LoadDataset.
type DatasetOption func(*datasetConfig)

type datasetConfig struct {
	client *storage.Client
}

// WithStorageClient sets the Cloud Storage client used for gs:// paths.
// Without it a client is created from application default credentials.
func WithStorageClient(client *storage.Client) DatasetOption {
	return func(c *datasetConfig) {
		c.client = client
	}
}

// LoadDataset reads a dataset from a local file or a gs://bucket/object path.
func LoadDataset(ctx context.Context, path string, opts ...DatasetOption) (*Dataset, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	var cfg datasetConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var data []byte
	if strings.HasPrefix(path, "gs://") {
		data, err = readObject(ctx, cfg.client, path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}

	ds, err := ParseDataset(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}
	if ds.Name == "" {
		ds.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return ds, nil
}

// ParseDataset decodes a dataset. YAML is converted to JSON first so both
// formats share the JSON field names of the event types.
func ParseDataset(data []byte, format Format) (*Dataset, error) {
	switch format {
	case FormatJSON:
	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
		b, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("converting yaml to json: %w", err)
		}
		data = b
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}
	for i := range ds.Cases {
		if ds.Cases[i].Name == "" {
			ds.Cases[i].Name = fmt.Sprintf("case-%d", i+1)
		}
	}
	return &ds, nil
}

func readObject(ctx context.Context, client *storage.Client, uri string) ([]byte, error) {
	bucket, object, ok := strings.Cut(strings.TrimPrefix(uri, "gs://"), "/")
	if !ok || bucket == "" || object == "" {
		return nil, fmt.Errorf("invalid gcs uri %q, expected gs://bucket/object", uri)
	}

	if client == nil {
		c, err := storage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("creating storage client: %w", err)
		}
		defer c.Close()
		client = c
	}

	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
