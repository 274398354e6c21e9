/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package agent declares LLM agents and the trees they form.

An agent is configuration only: a name, a system instruction, tools and
sub-agents. The googleexecutor Runner executes a tree, calling the model for
the active agent and moving control when the model calls the built-in
transfer_to_agent tool.

	planner, err := agent.New("room_planner_agent",
		agent.WithDescription("Plans rooms"),
		agent.WithInstruction(plannerPrompt),
		agent.WithTools(tools.SetSessionValue(), tools.GetSessionValue()),
	)
	root, err := agent.New("product_selector",
		agent.WithInstruction(selectorPrompt),
		agent.WithSubAgents(planner),
	)
	if err := root.Validate(); err != nil { ... }

An agent may transfer to its sub-agents, its parent and its siblings.
*/
package agent
