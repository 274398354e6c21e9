/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package reasoningengine

import (
	"errors"
	"net/http"

	"github.com/praveenksekaran/Agents/agents/executor/retry"
	"golang.org/x/oauth2"
)

// Option configures a Client.
type Option func(*Client) error

// WithHTTPClient sets the HTTP client used for requests. The client is
// expected to attach credentials itself.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("http client cannot be nil")
		}
		c.httpClient = hc
		return nil
	}
}

// WithTokenSource authenticates requests with the given token source instead
// of Application Default Credentials.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) error {
		if ts == nil {
			return errors.New("token source cannot be nil")
		}
		c.tokenSource = ts
		return nil
	}
}

// WithRetryConfig sets the retry configuration for quota and transient errors.
func WithRetryConfig(cfg retry.RetryConfig) Option {
	return func(c *Client) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		c.retryConfig = cfg
		return nil
	}
}
