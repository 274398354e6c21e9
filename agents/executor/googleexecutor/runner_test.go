/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/praveenksekaran/Agents/agents/agent"
	"github.com/praveenksekaran/Agents/agents/agenttrace"
	"github.com/praveenksekaran/Agents/agents/executor/googleexecutor"
	"github.com/praveenksekaran/Agents/agents/executor/retry"
	"github.com/praveenksekaran/Agents/agents/promptbuilder"
	"github.com/praveenksekaran/Agents/agents/session"
	"github.com/praveenksekaran/Agents/agents/toolcall"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type step struct {
	resp *genai.GenerateContentResponse
	err  error
}

type request struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

// fakeGenerator replays scripted steps and records every request.
type fakeGenerator struct {
	mu       sync.Mutex
	steps    []step
	requests []request
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, request{model: model, contents: contents, config: config})
	if len(f.steps) == 0 {
		return textResponse("done"), nil
	}
	s := f.steps[0]
	f.steps = f.steps[1:]
	return s.resp, s.err
}

func (f *fakeGenerator) systemInstruction(i int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	si := f.requests[i].config.SystemInstruction
	if si == nil {
		return ""
	}
	return si.Parts[0].Text
}

func modelResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      genai.NewContentFromParts(parts, genai.RoleModel),
			FinishReason: genai.FinishReasonStop,
		}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     10,
			CandidatesTokenCount: 5,
		},
	}
}

func textResponse(text string) *genai.GenerateContentResponse {
	return modelResponse(genai.NewPartFromText(text))
}

func callResponse(name string, args map[string]any) *genai.GenerateContentResponse {
	return modelResponse(genai.NewPartFromFunctionCall(name, args))
}

func setTool() toolcall.Tool[string] {
	return toolcall.Tool[string]{
		Def: toolcall.Definition{
			Name:        "set_session_value",
			Description: "Stores a value in session state",
			Parameters: []toolcall.Parameter{
				{Name: "key", Type: "string", Required: true},
				{Name: "value", Type: "string", Required: true},
			},
		},
		Handler: func(_ context.Context, call toolcall.ToolCall, trace *agenttrace.Trace[string], state *session.State) map[string]any {
			key, errResp := toolcall.Param[string](call, trace, "key")
			if errResp != nil {
				return errResp
			}
			value, errResp := toolcall.Param[string](call, trace, "value")
			if errResp != nil {
				return errResp
			}
			tc := trace.StartToolCall(call.ID, call.Name, call.Args)
			state.Set(key, value)
			result := map[string]any{"key": key, "value": value}
			tc.Complete(result, nil)
			return result
		},
	}
}

func fastRetry() retry.RetryConfig {
	return retry.RetryConfig{MaxRetries: 2, BaseBackoff: time.Millisecond, MaxBackoff: time.Millisecond}
}

type fixture struct {
	gen    *fakeGenerator
	runner *googleexecutor.Runner
	sess   *session.Session
}

func newFixture(t *testing.T, root *agent.Agent, steps ...step) fixture {
	t.Helper()
	gen := &fakeGenerator{steps: steps}
	runner, err := googleexecutor.New(gen, root, session.NewInMemoryService(),
		googleexecutor.WithModel("gemini-2.0-flash"),
		googleexecutor.WithRetryConfig(fastRetry()),
		googleexecutor.WithMaxTurns(5),
	)
	require.NoError(t, err)
	sess, err := runner.NewSession(context.Background(), "user-1", map[string]any{"COATS": 2})
	require.NoError(t, err)
	return fixture{gen: gen, runner: runner, sess: sess}
}

func paintTree(t *testing.T) *agent.Agent {
	t.Helper()
	planner, err := agent.New("room_planner_agent",
		agent.WithDescription("Plans the rooms to paint"),
		agent.WithInstruction(promptbuilder.MustNewPrompt("Plan {{ROOM_LAYOUT}} with {{COATS}} coats.")),
		agent.WithTools(setTool()),
	)
	require.NoError(t, err)
	root, err := agent.New("product_selector",
		agent.WithInstruction(promptbuilder.MustNewPrompt("Greet the customer.")),
		agent.WithTools(setTool()),
		agent.WithSubAgents(planner),
	)
	require.NoError(t, err)
	return root
}

func TestRunTextResponse(t *testing.T) {
	f := newFixture(t, paintTree(t), step{resp: textResponse("  Welcome to PY Designs!  ")})

	events, err := f.runner.Run(context.Background(), "user-1", f.sess.ID, "hello")
	require.NoError(t, err)

	if len(events) != 1 {
		t.Fatalf("events: got = %d, wanted = 1", len(events))
	}
	if !events[0].IsFinalResponse() {
		t.Error("final response: got = false, wanted = true")
	}
	if events[0].Author != "product_selector" {
		t.Errorf("author: got = %q, wanted = %q", events[0].Author, "product_selector")
	}
	if got := len(f.sess.Events()); got != 2 {
		t.Errorf("session events: got = %d, wanted = 2", got)
	}
	if f.gen.requests[0].model != "gemini-2.0-flash" {
		t.Errorf("model: got = %q, wanted = %q", f.gen.requests[0].model, "gemini-2.0-flash")
	}
	if si := f.gen.systemInstruction(0); !strings.HasPrefix(si, "Greet the customer.") || !strings.Contains(si, "`room_planner_agent`: Plans the rooms to paint") {
		t.Errorf("system instruction: got = %q", si)
	}
}

func TestRunToolCallUpdatesState(t *testing.T) {
	f := newFixture(t, paintTree(t),
		step{resp: callResponse("set_session_value", map[string]any{"key": "ROOM_LAYOUT", "value": "north wall 4x3"})},
		step{resp: textResponse("Saved your layout.")},
	)

	events, err := f.runner.Run(context.Background(), "user-1", f.sess.ID, "my room is 4 by 3")
	require.NoError(t, err)
	require.Len(t, events, 3)

	if v, _ := f.sess.State.Get("ROOM_LAYOUT"); v != "north wall 4x3" {
		t.Errorf("ROOM_LAYOUT: got = %v, wanted = %q", v, "north wall 4x3")
	}
	if diff := cmp.Diff(map[string]any{"ROOM_LAYOUT": "north wall 4x3"}, events[1].Actions.StateDelta); diff != "" {
		t.Errorf("state delta (-want +got):\n%s", diff)
	}
	fr := events[1].Content.Parts[0].FunctionResponse
	if fr == nil || fr.Response["key"] != "ROOM_LAYOUT" {
		t.Errorf("function response: got = %+v", fr)
	}

	// The second request carries the call and its response.
	contents := f.gen.requests[1].contents
	if got := len(contents); got != 3 {
		t.Fatalf("second request contents: got = %d, wanted = 3", got)
	}
	if contents[1].Parts[0].FunctionCall == nil || contents[2].Parts[0].FunctionResponse == nil {
		t.Error("second request: wanted function call followed by function response")
	}
}

func TestRunTransfer(t *testing.T) {
	f := newFixture(t, paintTree(t),
		step{resp: callResponse("set_session_value", map[string]any{"key": "ROOM_LAYOUT", "value": "bedroom"})},
		step{resp: callResponse(agent.TransferToolName, map[string]any{"agent_name": "room_planner_agent"})},
		step{resp: textResponse("How many coats would you like?")},
		step{resp: textResponse("Three coats it is.")},
	)
	ctx := context.Background()

	events, err := f.runner.Run(ctx, "user-1", f.sess.ID, "paint my bedroom")
	require.NoError(t, err)
	require.Len(t, events, 5)

	if got := events[3].Actions.TransferToAgent; got != "room_planner_agent" {
		t.Errorf("transfer action: got = %q, wanted = %q", got, "room_planner_agent")
	}
	if got := events[4].Author; got != "room_planner_agent" {
		t.Errorf("final author: got = %q, wanted = %q", got, "room_planner_agent")
	}
	if si := f.gen.systemInstruction(2); !strings.HasPrefix(si, "Plan bedroom with 2 coats.") {
		t.Errorf("planner instruction: got = %q", si)
	}

	// The planner sees the selector's turns retold as context.
	var retold bool
	for _, c := range f.gen.requests[2].contents {
		if c.Role == genai.RoleUser && len(c.Parts) > 0 && c.Parts[0].Text == "For context:" {
			retold = true
		}
	}
	if !retold {
		t.Error("planner history: wanted retold context from product_selector")
	}

	// The next message goes straight to the planner.
	_, err = f.runner.Run(ctx, "user-1", f.sess.ID, "three coats")
	require.NoError(t, err)
	if si := f.gen.systemInstruction(3); !strings.HasPrefix(si, "Plan bedroom") {
		t.Errorf("follow-up instruction: got = %q, wanted planner instruction", si)
	}
}

func TestRunBadFunctionCalls(t *testing.T) {
	tests := []struct {
		name      string
		call      *genai.GenerateContentResponse
		wantError string
	}{{
		name:      "unknown tool",
		call:      callResponse("paint_the_house", nil),
		wantError: "Unknown function: paint_the_house",
	}, {
		name:      "unknown transfer target",
		call:      callResponse(agent.TransferToolName, map[string]any{"agent_name": "coverage_calculator_agent"}),
		wantError: `agent "coverage_calculator_agent" is not a transfer target of "product_selector"`,
	}, {
		name:      "missing transfer target",
		call:      callResponse(agent.TransferToolName, map[string]any{}),
		wantError: "agent_name parameter is required",
	}, {
		name:      "missing parameter",
		call:      callResponse("set_session_value", map[string]any{"key": "COATS"}),
		wantError: "value parameter is required",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, paintTree(t), step{resp: tt.call}, step{resp: textResponse("sorry")})
			events, err := f.runner.Run(context.Background(), "user-1", f.sess.ID, "hi")
			require.NoError(t, err)
			require.Len(t, events, 3)

			fr := events[1].Content.Parts[0].FunctionResponse
			if fr == nil || fr.Response["error"] != tt.wantError {
				t.Errorf("error response: got = %+v, wanted error = %q", fr, tt.wantError)
			}
			if events[1].Actions.TransferToAgent != "" {
				t.Errorf("transfer: got = %q, wanted = none", events[1].Actions.TransferToAgent)
			}
		})
	}
}

func TestRunMaxTurns(t *testing.T) {
	var steps []step
	for range 5 {
		steps = append(steps, step{resp: callResponse("set_session_value", map[string]any{"key": "K", "value": "v"})})
	}
	f := newFixture(t, paintTree(t), steps...)

	events, err := f.runner.Run(context.Background(), "user-1", f.sess.ID, "loop")
	if !errors.Is(err, googleexecutor.ErrMaxTurns) {
		t.Fatalf("error: got = %v, wanted = %v", err, googleexecutor.ErrMaxTurns)
	}
	if len(events) != 10 {
		t.Errorf("events: got = %d, wanted = 10", len(events))
	}
}

func TestRunRetriesTransientErrors(t *testing.T) {
	f := newFixture(t, paintTree(t),
		step{err: genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}},
		step{err: genai.APIError{Code: 503}},
		step{resp: textResponse("hello")},
	)
	if _, err := f.runner.Run(context.Background(), "user-1", f.sess.ID, "hi"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := len(f.gen.requests); got != 3 {
		t.Errorf("requests: got = %d, wanted = 3", got)
	}

	f = newFixture(t, paintTree(t), step{err: genai.APIError{Code: 400, Message: "bad request"}})
	if _, err := f.runner.Run(context.Background(), "user-1", f.sess.ID, "hi"); err == nil {
		t.Error("non-retryable: got = nil, wanted = error")
	}
	if got := len(f.gen.requests); got != 1 {
		t.Errorf("non-retryable requests: got = %d, wanted = 1", got)
	}
}

func TestRunMalformedFunctionCall(t *testing.T) {
	malformed := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonMalformedFunctionCall}},
	}
	f := newFixture(t, paintTree(t), step{resp: malformed}, step{resp: textResponse("ok")})

	events, err := f.runner.Run(context.Background(), "user-1", f.sess.ID, "hi")
	require.NoError(t, err)
	require.Len(t, events, 1)

	contents := f.gen.requests[1].contents
	last := contents[len(contents)-1]
	if !strings.HasPrefix(last.Parts[0].Text, "The function call was malformed.") {
		t.Errorf("nudge: got = %q", last.Parts[0].Text)
	}
}

func TestRunCallbacks(t *testing.T) {
	var before, after int
	root, err := agent.New("product_selector",
		agent.WithBeforeModel(func(_ context.Context, cc *agent.CallbackContext, req *agent.ModelRequest) (*genai.GenerateContentResponse, error) {
			before++
			if cc.AgentName != "product_selector" || len(req.Contents) == 0 {
				t.Errorf("before callback: got agent = %q, contents = %d", cc.AgentName, len(req.Contents))
			}
			if before == 2 {
				return textResponse("cached answer"), nil
			}
			return nil, nil
		}),
		agent.WithAfterModel(func(_ context.Context, _ *agent.CallbackContext, resp *genai.GenerateContentResponse) (*genai.GenerateContentResponse, error) {
			after++
			return nil, nil
		}),
	)
	require.NoError(t, err)

	f := newFixture(t, root, step{resp: textResponse("from model")})
	ctx := context.Background()

	events, err := f.runner.Run(ctx, "user-1", f.sess.ID, "first")
	require.NoError(t, err)
	if got := events[0].Content.Parts[0].Text; got != "from model" {
		t.Errorf("first: got = %q, wanted = %q", got, "from model")
	}

	events, err = f.runner.Run(ctx, "user-1", f.sess.ID, "second")
	require.NoError(t, err)
	if got := events[0].Content.Parts[0].Text; got != "cached answer" {
		t.Errorf("second: got = %q, wanted = %q", got, "cached answer")
	}
	if len(f.gen.requests) != 1 {
		t.Errorf("model calls: got = %d, wanted = 1", len(f.gen.requests))
	}
	if before != 2 || after != 2 {
		t.Errorf("callbacks: got before = %d, after = %d, wanted 2 and 2", before, after)
	}

	failing, err := agent.New("failing", agent.WithBeforeModel(func(context.Context, *agent.CallbackContext, *agent.ModelRequest) (*genai.GenerateContentResponse, error) {
		return nil, errors.New("boom")
	}))
	require.NoError(t, err)
	f = newFixture(t, failing)
	if _, err := f.runner.Run(ctx, "user-1", f.sess.ID, "hi"); err == nil {
		t.Error("failing callback: got = nil, wanted = error")
	}
}

func TestRunUnknownSession(t *testing.T) {
	f := newFixture(t, paintTree(t))
	if _, err := f.runner.Run(context.Background(), "user-1", "missing", "hi"); !errors.Is(err, session.ErrNotFound) {
		t.Errorf("error: got = %v, wanted = %v", err, session.ErrNotFound)
	}
}

func TestNewValidation(t *testing.T) {
	root := paintTree(t)
	gen := &fakeGenerator{}
	sessions := session.NewInMemoryService()

	tests := []struct {
		name string
		gen  googleexecutor.Generator
		root *agent.Agent
		svc  session.Service
		opts []googleexecutor.Option
	}{
		{name: "nil generator", root: root, svc: sessions},
		{name: "nil root", gen: gen, svc: sessions},
		{name: "nil sessions", gen: gen, root: root},
		{name: "bad model", gen: gen, root: root, svc: sessions, opts: []googleexecutor.Option{googleexecutor.WithModel("claude")}},
		{name: "bad temperature", gen: gen, root: root, svc: sessions, opts: []googleexecutor.Option{googleexecutor.WithTemperature(3)}},
		{name: "bad turns", gen: gen, root: root, svc: sessions, opts: []googleexecutor.Option{googleexecutor.WithMaxTurns(0)}},
		{name: "bad retry", gen: gen, root: root, svc: sessions, opts: []googleexecutor.Option{googleexecutor.WithRetryConfig(retry.RetryConfig{MaxRetries: -1})}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := googleexecutor.New(tt.gen, tt.root, tt.svc, tt.opts...); err == nil {
				t.Error("New: got = nil, wanted = error")
			}
		})
	}
}
