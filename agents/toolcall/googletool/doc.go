/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package googletool adapts provider-independent tools to Google Gemini function calling.

FromTool turns a toolcall.Tool into a function declaration plus a handler that
accepts *genai.FunctionCall and returns *genai.FunctionResponse:

	meta := googletool.FromTool(tool)
	cfg.Tools = []*genai.Tool{{
		FunctionDeclarations: []*genai.FunctionDeclaration{meta.Definition},
	}}

	// In the executor, for each function call:
	resp := meta.Handler(ctx, call, trace, sess.State)

Parameter types map onto genai schema types: "string", "integer", "number",
"boolean", "array" and "object". Unknown types fall back to string.

Error and ErrorWithContext build error responses for calls that never reach a
handler, for example calls to tools the agent does not declare.
*/
package googletool
