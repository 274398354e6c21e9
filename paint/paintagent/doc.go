/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package paintagent declares the paint department's agent tree.

The root product_selector greets the customer, stores the room layout and
hands over to room_planner_agent, which asks how many coats to apply, shows
the selected paints and hands over to coverage_calculator_agent to price
them.

	root, err := paintagent.New("gemini-2.5-flash")
	runner, err := googleexecutor.New(client.Models, root, session.NewInMemoryService(),
		googleexecutor.WithAppName(paintagent.AppName))
	sess, err := runner.NewSession(ctx, userID, paintagent.InitialState(products))

Session state keys shared by the agents are ROOM_LAYOUT, COATS, PAINTS and
TOTAL_COST.
*/
package paintagent
