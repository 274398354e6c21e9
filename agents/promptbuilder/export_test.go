/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

// Literal exposes the literal conversion to the external test package.
func Literal(s string) stringLiteral { return stringLiteral(s) }
