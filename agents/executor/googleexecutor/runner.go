/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/google/uuid"
	"github.com/praveenksekaran/Agents/agents/agent"
	"github.com/praveenksekaran/Agents/agents/agenttrace"
	"github.com/praveenksekaran/Agents/agents/executor/retry"
	"github.com/praveenksekaran/Agents/agents/metrics"
	"github.com/praveenksekaran/Agents/agents/session"
	"github.com/praveenksekaran/Agents/agents/toolcall"
	"github.com/praveenksekaran/Agents/agents/toolcall/googletool"
	"google.golang.org/genai"
)

// ErrMaxTurns is returned when an invocation uses every model turn it is
// allowed without producing a final text response.
var ErrMaxTurns = errors.New("maximum model turns reached")

// Generator produces model content. *genai.Models satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var _ Generator = (*genai.Models)(nil)

// Runner executes an agent tree against Gemini, one user message at a time.
type Runner struct {
	appName         string
	root            *agent.Agent
	sessions        session.Service
	gen             Generator
	model           string
	temperature     float32
	maxOutputTokens int32
	maxTurns        int
	genaiMetrics    *metrics.GenAI
	retryConfig     retry.RetryConfig
}

// New creates a Runner for the tree rooted at root.
func New(gen Generator, root *agent.Agent, sessions session.Service, options ...Option) (*Runner, error) {
	if gen == nil {
		return nil, errors.New("generator is required")
	}
	if root == nil {
		return nil, errors.New("root agent is required")
	}
	if sessions == nil {
		return nil, errors.New("session service is required")
	}
	if err := root.Validate(); err != nil {
		return nil, fmt.Errorf("invalid agent tree: %w", err)
	}

	r := &Runner{
		appName:         root.Name,
		root:            root,
		sessions:        sessions,
		gen:             gen,
		model:           "gemini-2.5-flash",
		temperature:     0.1,
		maxOutputTokens: 8192,
		maxTurns:        20,
		genaiMetrics:    metrics.NewGenAI("github.com/praveenksekaran/Agents"),
		retryConfig:     retry.DefaultRetryConfig(),
	}
	for _, opt := range options {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return r, nil
}

// AppName is the application name sessions are scoped to.
func (r *Runner) AppName() string { return r.appName }

// NewSession starts a session for userID seeded with initial state.
func (r *Runner) NewSession(ctx context.Context, userID string, initial map[string]any) (*session.Session, error) {
	return r.sessions.Create(ctx, r.appName, userID, initial)
}

// Run sends message on the session and drives the agent tree until an agent
// answers with text. It returns the events produced after the user message.
func (r *Runner) Run(ctx context.Context, userID, sessionID, message string) (events []*session.Event, err error) {
	sess, err := r.sessions.Get(ctx, r.appName, userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	invocationID := "e-" + uuid.NewString()
	current := r.activeAgent(sess)
	inv := agenttrace.InvocationContext{
		AppName:   r.appName,
		UserID:    userID,
		SessionID: sessionID,
		Agent:     current.Name,
	}
	ctx = agenttrace.WithInvocationContext(ctx, inv)
	log := clog.FromContext(ctx).With("session_id", sessionID).With("invocation_id", invocationID)

	trace := agenttrace.StartTrace[string](ctx, message)
	var final string
	defer func() {
		trace.Complete(final, err)
	}()

	if err := r.sessions.AppendEvent(ctx, sess, &session.Event{
		InvocationID: invocationID,
		Author:       session.UserAuthor,
		Content:      genai.NewContentFromText(message, genai.RoleUser),
	}); err != nil {
		return nil, fmt.Errorf("appending user message: %w", err)
	}

	var nudge *genai.Content
	for turn := 1; turn <= r.maxTurns; turn++ {
		inv.Agent, inv.Turn = current.Name, turn
		turnCtx := agenttrace.WithInvocationContext(ctx, inv)
		log := log.With("agent", current.Name).With("turn", turn)

		resp, err := r.generate(turnCtx, current, sess, trace, invocationID, nudge)
		nudge = nil
		if err != nil {
			return events, err
		}

		candidate := resp.Candidates[0]
		if candidate.FinishReason == genai.FinishReasonMalformedFunctionCall {
			log.With("finish_message", candidate.FinishMessage).
				Warn("Model attempted a malformed function call, asking it to retry")
			nudge = genai.NewContentFromText(fmt.Sprintf(
				"The function call was malformed. Please try again using the available functions: %v",
				r.functionNames(current)), genai.RoleUser)
			continue
		}
		if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
			return events, errors.New("no content generated - candidate has no parts")
		}

		content := candidate.Content
		content.Role = genai.RoleModel
		modelEvent := &session.Event{
			InvocationID: invocationID,
			Author:       current.Name,
			Content:      content,
		}
		if err := r.sessions.AppendEvent(ctx, sess, modelEvent); err != nil {
			return events, fmt.Errorf("appending model event: %w", err)
		}
		events = append(events, modelEvent)

		calls := modelEvent.FunctionCalls()
		if len(calls) == 0 {
			final = eventText(modelEvent)
			if final == "" {
				log.Error("Unexpected response format - no text and no tool calls")
				return events, errors.New("unexpected response format from model")
			}
			log.With("text_length", len(final)).Info("Agent produced final response")
			return events, nil
		}

		respEvent, next := r.dispatch(turnCtx, current, sess, trace, invocationID, calls)
		if err := r.sessions.AppendEvent(ctx, sess, respEvent); err != nil {
			return events, fmt.Errorf("appending tool responses: %w", err)
		}
		events = append(events, respEvent)

		if next != nil {
			log.With("to", next.Name).Info("Transferring to agent")
			trace.RecordTransfer(current.Name, next.Name)
			r.genaiMetrics.RecordTransfer(turnCtx, current.Name, next.Name)
			current = next
		}
	}

	return events, fmt.Errorf("%w (%d)", ErrMaxTurns, r.maxTurns)
}

// activeAgent picks the agent that handles the next user message: the target
// of the latest transfer or the author of the latest agent event, falling
// back to the root.
func (r *Runner) activeAgent(sess *session.Session) *agent.Agent {
	events := sess.Events()
	for i := len(events) - 1; i >= 0; i-- {
		ev := events[i]
		if ev.Actions.TransferToAgent != "" {
			if a := r.root.Find(ev.Actions.TransferToAgent); a != nil {
				return a
			}
		}
		if ev.Author == session.UserAuthor {
			continue
		}
		if a := r.root.Find(ev.Author); a != nil {
			return a
		}
	}
	return r.root
}

func (r *Runner) modelFor(a *agent.Agent) string {
	if a.Model != "" {
		return a.Model
	}
	return r.model
}

func (r *Runner) generate(ctx context.Context, a *agent.Agent, sess *session.Session, trace *agenttrace.Trace[string], invocationID string, nudge *genai.Content) (*genai.GenerateContentResponse, error) {
	instruction, err := r.instruction(a, sess.State)
	if err != nil {
		return nil, err
	}

	config := &genai.GenerateContentConfig{
		Temperature:     ptr(r.temperature),
		MaxOutputTokens: r.maxOutputTokens,
	}
	if instruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: instruction}},
		}
	}
	if decls := r.declarations(a); len(decls) > 0 {
		config.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	contents := History(a.Name, sess.Events())
	if nudge != nil {
		contents = append(contents, nudge)
	}

	req := &agent.ModelRequest{Model: r.modelFor(a), Contents: contents, Config: config}
	cc := &agent.CallbackContext{AgentName: a.Name, InvocationID: invocationID, State: sess.State}

	var resp *genai.GenerateContentResponse
	if a.BeforeModel != nil {
		if resp, err = a.BeforeModel(ctx, cc, req); err != nil {
			return nil, fmt.Errorf("before model callback of %s: %w", a.Name, err)
		}
	}
	if resp == nil {
		start := time.Now()
		resp, err = retry.RetryWithBackoff(ctx, r.retryConfig, "generate_content", IsRetryable, func() (*genai.GenerateContentResponse, error) {
			return r.gen.GenerateContent(ctx, req.Model, req.Contents, req.Config)
		})
		r.genaiMetrics.RecordModelLatency(ctx, req.Model, time.Since(start))
		if err != nil {
			return nil, fmt.Errorf("generating content with model %q: %w", req.Model, err)
		}
		if resp != nil && resp.UsageMetadata != nil {
			r.genaiMetrics.RecordTokens(ctx, req.Model, int64(resp.UsageMetadata.PromptTokenCount), int64(resp.UsageMetadata.CandidatesTokenCount))
			trace.RecordTokenUsage(req.Model, int64(resp.UsageMetadata.PromptTokenCount), int64(resp.UsageMetadata.CandidatesTokenCount))
		}
	}

	if a.AfterModel != nil {
		replaced, err := a.AfterModel(ctx, cc, resp)
		if err != nil {
			return nil, fmt.Errorf("after model callback of %s: %w", a.Name, err)
		}
		if replaced != nil {
			resp = replaced
		}
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, errors.New("no content generated - no candidates")
	}
	return resp, nil
}

// instruction renders the agent's instruction from session state and
// describes the agents it may transfer to.
func (r *Runner) instruction(a *agent.Agent, state *session.State) (string, error) {
	var sb strings.Builder
	if a.Instruction != nil {
		text, err := a.Instruction.BindState(state.Snapshot()).Build()
		if err != nil {
			return "", fmt.Errorf("building instruction for %s: %w", a.Name, err)
		}
		sb.WriteString(text)
	}

	targets := r.root.TransferTargets(a.Name)
	if len(targets) == 0 {
		return sb.String(), nil
	}
	if sb.Len() > 0 {
		sb.WriteString("\n\n")
	}
	fmt.Fprintf(&sb, "You are agent `%s`.\n\nYou can transfer the conversation to these agents:\n", a.Name)
	for _, t := range targets {
		fmt.Fprintf(&sb, "- `%s`: %s\n", t.Name, t.Description)
	}
	fmt.Fprintf(&sb, "\nIf another agent is better suited to the request, call `%s` with its name. Otherwise answer yourself.", agent.TransferToolName)
	return sb.String(), nil
}

func transferDefinition() toolcall.Definition {
	return toolcall.Definition{
		Name:        agent.TransferToolName,
		Description: "Transfer the conversation to another agent.",
		Parameters: []toolcall.Parameter{{
			Name:        "agent_name",
			Type:        "string",
			Description: "The name of the agent to transfer to.",
			Required:    true,
		}},
	}
}

func (r *Runner) declarations(a *agent.Agent) []*genai.FunctionDeclaration {
	tools := a.Tools.Tools()
	decls := make([]*genai.FunctionDeclaration, 0, len(tools)+1)
	for _, name := range toolcall.Names[string](a.Tools) {
		decls = append(decls, googletool.Declaration(tools[name].Def))
	}
	if len(r.root.TransferTargets(a.Name)) > 0 {
		decls = append(decls, googletool.Declaration(transferDefinition()))
	}
	return decls
}

func (r *Runner) functionNames(a *agent.Agent) []string {
	decls := r.declarations(a)
	out := make([]string, 0, len(decls))
	for _, d := range decls {
		out = append(out, d.Name)
	}
	return out
}

// dispatch executes the function calls of one model turn and returns the
// event carrying their responses, plus the transfer target if one was chosen.
func (r *Runner) dispatch(ctx context.Context, a *agent.Agent, sess *session.Session, trace *agenttrace.Trace[string], invocationID string, calls []*genai.FunctionCall) (*session.Event, *agent.Agent) {
	log := clog.FromContext(ctx).With("agent", a.Name)
	tools := googletool.Map(a.Tools.Tools())
	model := r.modelFor(a)

	var next *agent.Agent
	parts := make([]*genai.Part, 0, len(calls))
	for _, call := range calls {
		log.With("tool", call.Name).With("id", call.ID).Info("Executing tool call")
		r.genaiMetrics.RecordToolCall(ctx, model, call.Name)

		var resp *genai.FunctionResponse
		switch meta, ok := tools[call.Name]; {
		case call.Name == agent.TransferToolName:
			var target *agent.Agent
			resp, target = r.transfer(a, call, trace)
			if target != nil {
				next = target
			}
		case ok:
			resp = meta.Handler(ctx, call, trace, sess.State)
		default:
			log.With("function", call.Name).Error("Unknown function call requested by model")
			trace.BadToolCall(call.ID, call.Name, call.Args, fmt.Errorf("unknown function: %q", call.Name))
			resp = googletool.Error(call, "Unknown function: %s", call.Name)
		}
		parts = append(parts, &genai.Part{FunctionResponse: resp})
	}

	ev := &session.Event{
		InvocationID: invocationID,
		Author:       a.Name,
		Content:      &genai.Content{Role: genai.RoleUser, Parts: parts},
		Actions: session.Actions{
			StateDelta: sess.State.TakeDelta(),
		},
	}
	if next != nil {
		ev.Actions.TransferToAgent = next.Name
	}
	return ev, next
}

func (r *Runner) transfer(from *agent.Agent, call *genai.FunctionCall, trace *agenttrace.Trace[string]) (*genai.FunctionResponse, *agent.Agent) {
	name, _ := call.Args["agent_name"].(string)
	if name == "" {
		err := errors.New("agent_name parameter is required")
		trace.BadToolCall(call.ID, call.Name, call.Args, err)
		return googletool.Error(call, "%s", err), nil
	}

	targets := r.root.TransferTargets(from.Name)
	available := make([]string, 0, len(targets))
	for _, t := range targets {
		if t.Name == name {
			result := map[string]any{"transferred_to": name}
			trace.StartToolCall(call.ID, call.Name, call.Args).Complete(result, nil)
			return &genai.FunctionResponse{ID: call.ID, Name: call.Name, Response: result}, t
		}
		available = append(available, t.Name)
	}

	err := fmt.Errorf("agent %q is not a transfer target of %q", name, from.Name)
	trace.BadToolCall(call.ID, call.Name, call.Args, err)
	return googletool.ErrorWithContext(call, err, map[string]any{"available_agents": available}), nil
}

// eventText joins the non-thought text parts of an event.
func eventText(ev *session.Event) string {
	var texts []string
	for _, p := range ev.Content.Parts {
		if p != nil && p.Text != "" && !p.Thought {
			texts = append(texts, p.Text)
		}
	}
	return strings.TrimSpace(strings.Join(texts, "\n"))
}

func ptr[T any](v T) *T {
	return &v
}
