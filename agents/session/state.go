/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package session

import (
	"maps"
	"sync"
)

// State is the key-value store scoped to one conversation. Tools read and
// write it; changes since the last TakeDelta are tracked so they can be
// attached to the event that produced them.
type State struct {
	mu     sync.RWMutex
	values map[string]any
	delta  map[string]any
}

// NewState returns a State seeded with a copy of initial.
func NewState(initial map[string]any) *State {
	values := make(map[string]any, len(initial))
	maps.Copy(values, initial)
	return &State{
		values: values,
		delta:  make(map[string]any),
	}
}

// Get returns the value stored under key.
func (s *State) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key.
func (s *State) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.delta[key] = value
}

// Delete removes key. The removal is recorded in the delta as a nil value.
func (s *State) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	s.delta[key] = nil
}

// Apply merges delta into the state without recording it as a new change.
// Nil values remove their key.
func (s *State) Apply(delta map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range delta {
		if v == nil {
			delete(s.values, k)
			continue
		}
		s.values[k] = v
	}
}

// Snapshot returns a copy of the current values.
func (s *State) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}

// TakeDelta returns the changes since the previous call and resets them.
// It returns nil when nothing changed.
func (s *State) TakeDelta() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.delta) == 0 {
		return nil
	}
	d := s.delta
	s.delta = make(map[string]any)
	return d
}
