/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evals

import "math/rand/v2"

// DefaultIDLength is the length NewID uses when given a non-positive length.
const DefaultIDLength = 8

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewID returns a random identifier of lowercase letters and digits, suitable
// for naming evaluation runs and experiments.
func NewID(length int) string {
	if length <= 0 {
		length = DefaultIDLength
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return string(b)
}
