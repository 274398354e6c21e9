/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package promptbuilder builds prompts from templates with {{name}} placeholders.

Templates are parsed once and every bind returns a new Prompt, so a prompt
declared at package level can be shared by concurrent requests:

	var instruction = promptbuilder.MustNewPrompt(`You are helping {{USER}}.
	Paints on offer:
	{{PAINTS}}`)

	text, err := instruction.BindState(sess.State.Snapshot()).Build()

BindStringLiteral only accepts constants. Runtime data goes through BindJSON
or BindYAML, or through BindState, which fills the remaining placeholders from
a session state snapshot and renders missing keys as the empty string.

Request types implement Bindable to bind their own fields:

	func (l Layout) Bind(p *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
		return p.BindJSON("layout", l.Floors)
	}
*/
package promptbuilder
