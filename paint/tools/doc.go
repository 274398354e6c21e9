/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package tools defines the function tools the paint agents call.
//
// Calculator tools decode their arguments into typed inputs; the session tools
// read and write the conversation's state. None of the calculators validate
// their inputs: a zero coverage rate yields an infinite or NaN result, which
// the tool reports to the model as an error because it cannot be encoded.
package tools
