/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package paintagent

import (
	"github.com/praveenksekaran/Agents/agents/promptbuilder"
	"github.com/praveenksekaran/Agents/paint/catalog"
	"github.com/praveenksekaran/Agents/paint/estimate"
)

var layoutPrompt = promptbuilder.MustNewPrompt("I have completed the floor plan layout. Here is the detailed room data:\n\n{{layout}}")

// Layout is the message sent when the customer completes the floor plan: the
// paints chosen for the walls with the area each must cover.
type Layout struct {
	Paints []estimate.SelectedPaint `json:"paints"`
}

var _ promptbuilder.Bindable = Layout{}

// NewLayout summarizes the painted walls of a floor plan.
func NewLayout(floors []estimate.Floor, products catalog.Catalog) Layout {
	return Layout{Paints: estimate.Selection(floors, products)}
}

// Bind implements promptbuilder.Bindable.
func (l Layout) Bind(prompt *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	if l.Paints == nil {
		l.Paints = []estimate.SelectedPaint{}
	}
	return prompt.BindJSON("layout", l)
}

// Message renders the user message for the layout.
func (l Layout) Message() (string, error) {
	p, err := l.Bind(layoutPrompt)
	if err != nil {
		return "", err
	}
	return p.Build()
}
