/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package reasoningengine

import (
	"bufio"
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/praveenksekaran/Agents/agents/executor/retry"
	"github.com/praveenksekaran/Agents/agents/session"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/genai"
)

// Scope requested from Application Default Credentials.
const Scope = "https://www.googleapis.com/auth/cloud-platform"

// NoResponse is returned by ResponseText when the events carry no text.
const NoResponse = "No response from agent"

var methodSuffix = regexp.MustCompile(`:[^/]+$`)

// Client talks to a single deployed Reasoning Engine resource.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	tokenSource oauth2.TokenSource
	retryConfig retry.RetryConfig
}

// APIError is returned when the engine answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("reasoning engine API error: %s - %s", e.Status, e.Body)
}

// HTTPStatus returns the response status code.
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}

// BaseURL normalizes a resource URL: a trailing ":method" suffix is removed
// and the v1 API is swapped for v1beta1, which custom methods require.
func BaseURL(rawURL string) string {
	return strings.Replace(methodSuffix.ReplaceAllString(rawURL, ""), "/v1/", "/v1beta1/", 1)
}

// New creates a client for the Reasoning Engine resource at rawURL.
func New(ctx context.Context, rawURL string, opts ...Option) (*Client, error) {
	if rawURL == "" {
		return nil, errors.New("reasoning engine URL is required")
	}
	c := &Client{
		baseURL:     BaseURL(rawURL),
		retryConfig: retry.DefaultRetryConfig(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}

	if c.httpClient == nil {
		if c.tokenSource == nil {
			ts, err := google.DefaultTokenSource(ctx, Scope)
			if err != nil {
				return nil, fmt.Errorf("creating token source: %w", err)
			}
			c.tokenSource = ts
		}
		c.httpClient = oauth2.NewClient(ctx, oauth2.ReuseTokenSource(nil, c.tokenSource))
	}
	return c, nil
}

// BaseURL returns the normalized resource URL the client posts to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type queryRequest struct {
	Input       map[string]any `json:"input"`
	ClassMethod string         `json:"classMethod,omitempty"`
}

// CreateSession creates a session for userID and returns its id.
func (c *Client) CreateSession(ctx context.Context, userID string) (string, error) {
	body, err := c.post(ctx, "query", queryRequest{
		Input:       map[string]any{"user_id": userID},
		ClassMethod: "create_session",
	})
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	var resp struct {
		Output struct {
			ID string `json:"id"`
		} `json:"output"`
		ID      string `json:"id"`
		Name    string `json:"name"`
		Session struct {
			ID string `json:"id"`
		} `json:"session"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decoding create session response: %w", err)
	}
	for _, id := range []string{resp.Output.ID, resp.ID, resp.Name, resp.Session.ID} {
		if id != "" {
			clog.FromContext(ctx).With("session_id", id).With("user_id", userID).Info("Created remote session")
			return id, nil
		}
	}
	return "", fmt.Errorf("create session: no session id in response: %s", body)
}

// Query sends message within the given session and returns the events the
// engine streamed back, in order. Lines that do not decode are skipped.
func (c *Client) Query(ctx context.Context, userID, sessionID, message string) ([]*session.Event, error) {
	body, err := c.post(ctx, "streamQuery", queryRequest{
		Input: map[string]any{
			"user_id":    userID,
			"session_id": sessionID,
			"message":    message,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("stream query: %w", err)
	}
	return DecodeEvents(ctx, bytes.NewReader(body))
}

// wireEvent is the engine's event encoding. The engine serializes events
// with snake_case keys and fractional Unix-second timestamps; camelCase keys
// are accepted as well.
type wireEvent struct {
	ID                string       `json:"id"`
	InvocationID      string       `json:"invocation_id"`
	InvocationIDCamel string       `json:"invocationId"`
	Author            string       `json:"author"`
	Timestamp         float64      `json:"timestamp"`
	Content           *wireContent `json:"content"`
	Actions           struct {
		StateDelta           map[string]any `json:"state_delta"`
		StateDeltaCamel      map[string]any `json:"stateDelta"`
		TransferToAgent      string         `json:"transfer_to_agent"`
		TransferToAgentCamel string         `json:"transferToAgent"`
	} `json:"actions"`
}

type wireContent struct {
	Role  string     `json:"role"`
	Parts []wirePart `json:"parts"`
}

type wirePart struct {
	Text                  string                  `json:"text"`
	Thought               bool                    `json:"thought"`
	FunctionCall          *genai.FunctionCall     `json:"function_call"`
	FunctionCallCamel     *genai.FunctionCall     `json:"functionCall"`
	FunctionResponse      *genai.FunctionResponse `json:"function_response"`
	FunctionResponseCamel *genai.FunctionResponse `json:"functionResponse"`
}

func (p wirePart) part() *genai.Part {
	return &genai.Part{
		Text:             p.Text,
		Thought:          p.Thought,
		FunctionCall:     cmp.Or(p.FunctionCall, p.FunctionCallCamel),
		FunctionResponse: cmp.Or(p.FunctionResponse, p.FunctionResponseCamel),
	}
}

func (c *wireContent) content() *genai.Content {
	if c == nil {
		return nil
	}
	out := &genai.Content{Role: c.Role, Parts: make([]*genai.Part, 0, len(c.Parts))}
	for _, p := range c.Parts {
		out.Parts = append(out.Parts, p.part())
	}
	return out
}

func (w wireEvent) event() *session.Event {
	ev := &session.Event{
		ID:           w.ID,
		InvocationID: cmp.Or(w.InvocationID, w.InvocationIDCamel),
		Author:       w.Author,
		Content:      w.Content.content(),
		Actions: session.Actions{
			StateDelta:      w.Actions.StateDelta,
			TransferToAgent: cmp.Or(w.Actions.TransferToAgent, w.Actions.TransferToAgentCamel),
		},
	}
	if ev.Actions.StateDelta == nil {
		ev.Actions.StateDelta = w.Actions.StateDeltaCamel
	}
	if w.Timestamp > 0 {
		sec, frac := math.Modf(w.Timestamp)
		ev.Timestamp = time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC()
	}
	return ev
}

// DecodeEvents reads newline-delimited JSON events from r.
func DecodeEvents(ctx context.Context, r io.Reader) ([]*session.Event, error) {
	log := clog.FromContext(ctx)

	var events []*session.Event
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var w wireEvent
		if err := json.Unmarshal(line, &w); err != nil {
			log.With("error", err.Error()).With("line", string(line)).Warn("Skipping unparsable event line")
			continue
		}
		events = append(events, w.event())
	}
	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("reading events: %w", err)
	}
	return events, nil
}

func (c *Client) post(ctx context.Context, method string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}
	url := c.baseURL + ":" + method

	return retry.RetryWithBackoff(ctx, c.retryConfig, method, retry.IsRetryableStatus, func() ([]byte, error) {
		clog.FromContext(ctx).With("url", url).Debug("Calling reasoning engine")

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("sending request: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("reading response: %w", err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &APIError{
				StatusCode: resp.StatusCode,
				Status:     resp.Status,
				Body:       strings.TrimSpace(string(body)),
			}
		}
		return body, nil
	})
}

// ResponseText joins the text of every part in events with newlines.
// It returns NoResponse when there is no text.
func ResponseText(events []*session.Event) string {
	var texts []string
	for _, ev := range events {
		if ev == nil || ev.Content == nil {
			continue
		}
		for _, part := range ev.Content.Parts {
			if part != nil && part.Text != "" {
				texts = append(texts, part.Text)
			}
		}
	}
	if text := strings.TrimSpace(strings.Join(texts, "\n")); text != "" {
		return text
	}
	return NoResponse
}
