/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package reasoningengine is a client for an agent deployed to Vertex AI
// Agent Engine (Reasoning Engine).
//
// The client creates sessions through the engine's class method dispatcher
// and streams queries, decoding the newline-delimited events the engine
// emits into [session.Event] values so they can be scored with the evals
// package just like events produced by a local runner.
//
// # Usage
//
//	client, err := reasoningengine.New(ctx, os.Getenv("AGENT_QUERY_URL"))
//	if err != nil {
//		return err
//	}
//	sessionID, err := client.CreateSession(ctx, "user-1")
//	if err != nil {
//		return err
//	}
//	events, err := client.Query(ctx, "user-1", sessionID, "I want to paint my kitchen")
//	if err != nil {
//		return err
//	}
//	fmt.Println(reasoningengine.ResponseText(events))
//
// Requests authenticate with Application Default Credentials unless a client
// or token source is supplied with [WithHTTPClient] or [WithTokenSource].
// Quota and transient server errors are retried with exponential backoff.
package reasoningengine
