/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor

import (
	"errors"
	"strings"

	"github.com/praveenksekaran/Agents/agents/executor/retry"
	"google.golang.org/genai"
)

// IsRetryable reports whether err is a quota, rate limit or
// transient server error from Vertex AI.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return retry.StatusRetryable(apiErr.Code)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return retry.StatusRetryable(apiErrPtr.Code)
	}

	errStr := err.Error()
	for _, s := range []string{
		"Resource exhausted", "RESOURCE_EXHAUSTED", "429", "rate limit",
		"quota exceeded", "Overloaded", "503", "Internal error", "server error",
	} {
		if strings.Contains(errStr, s) {
			return true
		}
	}
	return false
}
