/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package reasoningengine_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/praveenksekaran/Agents/agents/executor/retry"
	"github.com/praveenksekaran/Agents/agents/reasoningengine"
	"github.com/praveenksekaran/Agents/agents/session"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/genai"
)

const resource = "/v1beta1/projects/p/locations/us-central1/reasoningEngines/123"

func fastRetry() reasoningengine.Option {
	return reasoningengine.WithRetryConfig(retry.RetryConfig{
		MaxRetries:  2,
		BaseBackoff: time.Millisecond,
		MaxBackoff:  time.Millisecond,
	})
}

func newClient(t *testing.T, handler http.HandlerFunc) *reasoningengine.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := reasoningengine.New(context.Background(), srv.URL+resource,
		reasoningengine.WithHTTPClient(srv.Client()), fastRetry())
	require.NoError(t, err)
	return client
}

func TestBaseURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{{
		name: "query suffix",
		raw:  "https://us-central1-aiplatform.googleapis.com/v1beta1/projects/p/locations/l/reasoningEngines/1:query",
		want: "https://us-central1-aiplatform.googleapis.com/v1beta1/projects/p/locations/l/reasoningEngines/1",
	}, {
		name: "v1 upgraded",
		raw:  "https://us-central1-aiplatform.googleapis.com/v1/projects/p/locations/l/reasoningEngines/1:streamQuery",
		want: "https://us-central1-aiplatform.googleapis.com/v1beta1/projects/p/locations/l/reasoningEngines/1",
	}, {
		name: "already clean",
		raw:  "https://example.com/v1beta1/projects/p/reasoningEngines/1",
		want: "https://example.com/v1beta1/projects/p/reasoningEngines/1",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reasoningengine.BaseURL(tt.raw); got != tt.want {
				t.Errorf("BaseURL: got = %q, wanted = %q", got, tt.want)
			}
		})
	}
}

func TestNewValidation(t *testing.T) {
	ctx := context.Background()
	if _, err := reasoningengine.New(ctx, ""); err == nil {
		t.Error("empty URL: got = nil error, wanted = error")
	}
	if _, err := reasoningengine.New(ctx, "https://example.com/v1/x", reasoningengine.WithHTTPClient(nil)); err == nil {
		t.Error("nil http client: got = nil error, wanted = error")
	}
	if _, err := reasoningengine.New(ctx, "https://example.com/v1/x", reasoningengine.WithRetryConfig(retry.RetryConfig{MaxRetries: -1})); err == nil {
		t.Error("negative retries: got = nil error, wanted = error")
	}
}

func TestTokenSource(t *testing.T) {
	var auth atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth.Store(r.Header.Get("Authorization"))
		io.WriteString(w, `{"output": {"id": "s-1"}}`)
	}))
	t.Cleanup(srv.Close)

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, srv.Client())
	client, err := reasoningengine.New(ctx, srv.URL+resource,
		reasoningengine.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "tok"})))
	require.NoError(t, err)

	if _, err := client.CreateSession(ctx, "u"); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if got := auth.Load(); got != "Bearer tok" {
		t.Errorf("Authorization: got = %v, wanted = %q", got, "Bearer tok")
	}
}

func TestCreateSession(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{name: "output id", body: `{"output": {"id": "s-1", "user_id": "u"}}`, want: "s-1"},
		{name: "top level id", body: `{"id": "s-2"}`, want: "s-2"},
		{name: "resource name", body: `{"name": "projects/p/sessions/s-3"}`, want: "projects/p/sessions/s-3"},
		{name: "nested session", body: `{"session": {"id": "s-4"}}`, want: "s-4"},
		{name: "output wins", body: `{"output": {"id": "s-5"}, "id": "other"}`, want: "s-5"},
		{name: "no id", body: `{"output": {}}`, wantErr: true},
		{name: "not json", body: `oops`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]any
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != resource+":query" {
					t.Errorf("request: got = %s %s, wanted = POST %s:query", r.Method, r.URL.Path, resource)
				}
				if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
					t.Errorf("decoding body: %v", err)
				}
				io.WriteString(w, tt.body)
			})

			id, err := client.CreateSession(context.Background(), "user-1")
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateSession error: got = %v, wanted error = %v", err, tt.wantErr)
			}
			if id != tt.want {
				t.Errorf("id: got = %q, wanted = %q", id, tt.want)
			}

			want := map[string]any{
				"input":       map[string]any{"user_id": "user-1"},
				"classMethod": "create_session",
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("request body (-want +got):\n%s", diff)
			}
		})
	}
}

func TestQuery(t *testing.T) {
	stream := strings.Join([]string{
		`{"id":"e1","invocation_id":"i1","author":"product_selector","timestamp":1767225600.5,"content":{"role":"model","parts":[{"functionCall":{"name":"set_session_value","args":{"key":"ROOM_LAYOUT","value":"kitchen"}}}]},"actions":{"state_delta":{"ROOM_LAYOUT":"kitchen"}}}`,
		`not json`,
		``,
		`{"id":"e2","author":"product_selector","content":{"role":"model","parts":[{"functionCall":{"name":"transfer_to_agent","args":{"agent_name":"room_planner_agent"}}}]},"actions":{"transfer_to_agent":"room_planner_agent"}}`,
		`{"id":"e3","author":"room_planner_agent","content":{"role":"model","parts":[{"text":"How many coats?"}]}}`,
	}, "\n")

	var got map[string]any
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != resource+":streamQuery" {
			t.Errorf("path: got = %s, wanted = %s:streamQuery", r.URL.Path, resource)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		io.WriteString(w, stream)
	})

	events, err := client.Query(context.Background(), "user-1", "s-1", "paint my kitchen")
	require.NoError(t, err)

	wantBody := map[string]any{"input": map[string]any{
		"user_id":    "user-1",
		"session_id": "s-1",
		"message":    "paint my kitchen",
	}}
	if diff := cmp.Diff(wantBody, got); diff != "" {
		t.Errorf("request body (-want +got):\n%s", diff)
	}

	if len(events) != 3 {
		t.Fatalf("events: got = %d, wanted = 3", len(events))
	}
	if got, want := events[0].Timestamp, time.Unix(1767225600, int64(500*time.Millisecond)).UTC(); !got.Equal(want) {
		t.Errorf("timestamp: got = %v, wanted = %v", got, want)
	}
	if got := events[0].Actions.StateDelta["ROOM_LAYOUT"]; got != "kitchen" {
		t.Errorf("state delta: got = %v, wanted = kitchen", got)
	}
	if calls := events[0].FunctionCalls(); len(calls) != 1 || calls[0].Name != "set_session_value" {
		t.Errorf("function calls: got = %+v, wanted one set_session_value", calls)
	}
	if got := events[1].Actions.TransferToAgent; got != "room_planner_agent" {
		t.Errorf("transfer: got = %q, wanted = room_planner_agent", got)
	}
	if !events[2].IsFinalResponse() {
		t.Error("last event: got = not final, wanted = final response")
	}
	if got := reasoningengine.ResponseText(events); got != "How many coats?" {
		t.Errorf("ResponseText: got = %q, wanted = %q", got, "How many coats?")
	}
}

func TestDecodeEventsSnakeCase(t *testing.T) {
	stream := strings.Join([]string{
		`{"id":"e1","invocation_id":"i1","author":"coverage_calculator_agent","content":{"role":"model","parts":[{"function_call":{"id":"c1","name":"calculate_paint_cost","args":{"pricePerLiter":10,"coveragePerLiter":50,"paintableArea_sum":100,"coats":2}}}]},"actions":{"state_delta":{}}}`,
		`{"id":"e2","invocation_id":"i1","author":"coverage_calculator_agent","content":{"role":"user","parts":[{"function_response":{"id":"c1","name":"calculate_paint_cost","response":{"cost_of_paint":40}}}]},"actions":{"state_delta":{"TOTAL_COST":40}}}`,
		`{"id":"e3","invocation_id":"i1","author":"coverage_calculator_agent","content":{"role":"model","parts":[{"text":"The total is $40.00."}]},"actions":{}}`,
	}, "\n")

	events, err := reasoningengine.DecodeEvents(context.Background(), strings.NewReader(stream))
	require.NoError(t, err)
	if len(events) != 3 {
		t.Fatalf("events: got = %d, wanted = 3", len(events))
	}

	if got := events[0].InvocationID; got != "i1" {
		t.Errorf("invocation id: got = %q, wanted = i1", got)
	}
	calls := events[0].FunctionCalls()
	if len(calls) != 1 {
		t.Fatalf("function calls: got = %d, wanted = 1", len(calls))
	}
	wantArgs := map[string]any{"pricePerLiter": float64(10), "coveragePerLiter": float64(50), "paintableArea_sum": float64(100), "coats": float64(2)}
	if calls[0].Name != "calculate_paint_cost" {
		t.Errorf("call name: got = %q, wanted = calculate_paint_cost", calls[0].Name)
	}
	if diff := cmp.Diff(wantArgs, calls[0].Args); diff != "" {
		t.Errorf("call args (-want +got):\n%s", diff)
	}

	parts := events[1].Content.Parts
	if len(parts) != 1 || parts[0].FunctionResponse == nil {
		t.Fatalf("function response: got = %+v, wanted one function response part", parts)
	}
	if got := parts[0].FunctionResponse.Response["cost_of_paint"]; got != float64(40) {
		t.Errorf("response: got = %v, wanted = 40", got)
	}
	if got := events[1].Actions.StateDelta["TOTAL_COST"]; got != float64(40) {
		t.Errorf("state delta: got = %v, wanted = 40", got)
	}

	if got := reasoningengine.ResponseText(events); got != "The total is $40.00." {
		t.Errorf("ResponseText: got = %q, wanted = %q", got, "The total is $40.00.")
	}
}

func TestRetries(t *testing.T) {
	t.Run("transient then success", func(t *testing.T) {
		var calls atomic.Int32
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) < 3 {
				http.Error(w, "quota", http.StatusTooManyRequests)
				return
			}
			io.WriteString(w, `{"id": "s-1"}`)
		})

		id, err := client.CreateSession(context.Background(), "u")
		require.NoError(t, err)
		if id != "s-1" {
			t.Errorf("id: got = %q, wanted = s-1", id)
		}
		if got := calls.Load(); got != 3 {
			t.Errorf("calls: got = %d, wanted = 3", got)
		}
	})

	t.Run("client error not retried", func(t *testing.T) {
		var calls atomic.Int32
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			http.Error(w, "bad session", http.StatusBadRequest)
		})

		_, err := client.Query(context.Background(), "u", "missing", "hi")
		var apiErr *reasoningengine.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("error: got = %v, wanted = *APIError", err)
		}
		if apiErr.StatusCode != http.StatusBadRequest || apiErr.Body != "bad session" {
			t.Errorf("APIError: got = %+v, wanted = 400 bad session", apiErr)
		}
		if got := calls.Load(); got != 1 {
			t.Errorf("calls: got = %d, wanted = 1", got)
		}
	})

	t.Run("retries exhausted", func(t *testing.T) {
		var calls atomic.Int32
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.CreateSession(context.Background(), "u")
		if !retry.IsRetryableStatus(err) {
			t.Errorf("error: got = %v, wanted = retryable status error", err)
		}
		if got := calls.Load(); got != 3 {
			t.Errorf("calls: got = %d, wanted = 3", got)
		}
	})
}

func TestResponseText(t *testing.T) {
	model := func(texts ...string) *session.Event {
		parts := make([]*genai.Part, 0, len(texts))
		for _, s := range texts {
			parts = append(parts, genai.NewPartFromText(s))
		}
		return &session.Event{Content: genai.NewContentFromParts(parts, genai.RoleModel)}
	}

	tests := []struct {
		name   string
		events []*session.Event
		want   string
	}{
		{name: "empty", want: reasoningengine.NoResponse},
		{name: "no content", events: []*session.Event{{Author: "x"}, nil}, want: reasoningengine.NoResponse},
		{name: "whitespace only", events: []*session.Event{model("  ", "\n")}, want: reasoningengine.NoResponse},
		{name: "joined", events: []*session.Event{model("Hello"), model("Pick a paint", "or two ")}, want: "Hello\nPick a paint\nor two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reasoningengine.ResponseText(tt.events); got != tt.want {
				t.Errorf("ResponseText: got = %q, wanted = %q", got, tt.want)
			}
		})
	}
}
