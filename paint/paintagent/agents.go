/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package paintagent

import (
	"fmt"

	"github.com/praveenksekaran/Agents/agents/agent"
	"github.com/praveenksekaran/Agents/agents/promptbuilder"
	"github.com/praveenksekaran/Agents/paint/catalog"
	"github.com/praveenksekaran/Agents/paint/tools"
)

// AppName identifies paint sessions.
const AppName = "paint_agent"

const (
	ProductSelector    = "product_selector"
	RoomPlanner        = "room_planner_agent"
	CoverageCalculator = "coverage_calculator_agent"
)

// Session state keys.
const (
	KeyRoomLayout = "ROOM_LAYOUT"
	KeyCoats      = "COATS"
	KeyPaints     = "PAINTS"
	KeyTotalCost  = "TOTAL_COST"
)

// DefaultCoats is used when the customer does not give a number.
const DefaultCoats = 2

var (
	productSelectorInstruction = promptbuilder.MustNewPrompt(`You represent the paint department of PY Designs.

- At the start of a conversation, let the user know you're here to help them
  find the estimate and right amount of paint for their DIY project.
- Say "Hello! Please start by drawing your room layout on the canvas to the left.
  Once you are done, click 'Complete' to proceed."
- Receive the room layout from the user and store it in the session state under 'ROOM_LAYOUT'
  using the set_session_value tool.
- Transfer to the 'room_planner_agent'.`)

	roomPlannerInstruction = promptbuilder.MustNewPrompt(`- Ask the user how many coats they'd like to paint. Store their answer as 'COATS'
  (default to 2 if they respond with something like 'yes').
- Show the name and color of every paint in 'PAINTS' and tell the customer that all
  these paints will be used.
- To calculate the cost of each paint, transfer to the 'coverage_calculator_agent'.`)

	coverageCalculatorInstruction = promptbuilder.MustNewPrompt(`- Calculate the cost of each paint in 'PAINTS' with the calculate_paint_cost tool,
  using the number of coats stored in 'COATS'.
- For each paint in 'PAINTS', show the volume in liters and the cost in dollars in a
  table.
- Provide the total cost of paint in 'TOTAL_COST'.`)
)

// New builds the agent tree. An empty model leaves the choice to the runner.
func New(model string) (*agent.Agent, error) {
	modelOpts := func(opts ...agent.Option) []agent.Option {
		if model != "" {
			opts = append(opts, agent.WithModel(model))
		}
		return opts
	}

	calculator, err := agent.New(CoverageCalculator, modelOpts(
		agent.WithDescription("Calculates the liters and cost of each selected paint and the project total."),
		agent.WithInstruction(coverageCalculatorInstruction),
		agent.WithTools(tools.CoatsCost(), tools.GetSessionValue()),
		agent.WithBeforeModel(LogQueryToModel),
		agent.WithAfterModel(LogModelResponse),
	)...)
	if err != nil {
		return nil, err
	}

	planner, err := agent.New(RoomPlanner, modelOpts(
		agent.WithDescription("Plans the rooms to paint: number of coats and the paints to use."),
		agent.WithInstruction(roomPlannerInstruction),
		agent.WithTools(tools.SetSessionValue(), tools.GetSessionValue()),
		agent.WithSubAgents(calculator),
	)...)
	if err != nil {
		return nil, err
	}

	root, err := agent.New(ProductSelector, modelOpts(
		agent.WithDescription("Greets the customer and collects the room layout."),
		agent.WithInstruction(productSelectorInstruction),
		agent.WithTools(tools.SetSessionValue()),
		agent.WithSubAgents(planner),
		agent.WithBeforeModel(LogQueryToModel),
		agent.WithAfterModel(LogModelResponse),
	)...)
	if err != nil {
		return nil, err
	}

	if err := root.Validate(); err != nil {
		return nil, fmt.Errorf("paint agent tree: %w", err)
	}
	return root, nil
}

// InitialState seeds a session with the paint catalog and the default
// number of coats.
func InitialState(products catalog.Catalog) map[string]any {
	return map[string]any{
		KeyPaints: products,
		KeyCoats:  DefaultCoats,
	}
}
