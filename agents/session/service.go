/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("session not found")

// Session is one conversation between a user and an app.
type Session struct {
	ID      string
	AppName string
	UserID  string
	State   *State

	mu         sync.RWMutex
	events     []*Event
	lastUpdate time.Time
}

// Events returns a copy of the session's event list.
func (s *Session) Events() []*Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Event, len(s.events))
	copy(out, s.events)
	return out
}

// LastUpdate returns the time of the last appended event.
func (s *Session) LastUpdate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdate
}

// Service manages sessions and their events.
type Service interface {
	// Create starts a new session seeded with initial state.
	Create(ctx context.Context, appName, userID string, initial map[string]any) (*Session, error)
	// Get returns an existing session or ErrNotFound.
	Get(ctx context.Context, appName, userID, sessionID string) (*Session, error)
	// List returns the user's sessions ordered by ID.
	List(ctx context.Context, appName, userID string) ([]*Session, error)
	// AppendEvent records ev on the session and applies its state delta.
	AppendEvent(ctx context.Context, sess *Session, ev *Event) error
	// Delete removes a session.
	Delete(ctx context.Context, appName, userID, sessionID string) error
}

type key struct {
	app, user, id string
}

// InMemoryService is a process-local Service safe for concurrent use.
type InMemoryService struct {
	mu       sync.RWMutex
	sessions map[key]*Session
}

var _ Service = (*InMemoryService)(nil)

// NewInMemoryService returns an empty in-memory session service.
func NewInMemoryService() *InMemoryService {
	return &InMemoryService{sessions: make(map[key]*Session)}
}

func (m *InMemoryService) Create(_ context.Context, appName, userID string, initial map[string]any) (*Session, error) {
	if appName == "" || userID == "" {
		return nil, fmt.Errorf("app name and user id are required (app=%q user=%q)", appName, userID)
	}
	sess := &Session{
		ID:         uuid.NewString(),
		AppName:    appName,
		UserID:     userID,
		State:      NewState(initial),
		lastUpdate: time.Now(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[key{appName, userID, sess.ID}] = sess
	return sess, nil
}

func (m *InMemoryService) Get(_ context.Context, appName, userID, sessionID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[key{appName, userID, sessionID}]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}
	return sess, nil
}

func (m *InMemoryService) List(_ context.Context, appName, userID string) ([]*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Session
	for k, sess := range m.sessions {
		if k.app == appName && k.user == userID {
			out = append(out, sess)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *InMemoryService) AppendEvent(_ context.Context, sess *Session, ev *Event) error {
	if sess == nil || ev == nil {
		return errors.New("session and event are required")
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	// Deltas produced through sess.State are already applied.
	if len(ev.Actions.StateDelta) > 0 {
		sess.State.Apply(ev.Actions.StateDelta)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.events = append(sess.events, ev)
	sess.lastUpdate = ev.Timestamp
	return nil
}

func (m *InMemoryService) Delete(_ context.Context, appName, userID, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key{appName, userID, sessionID}
	if _, ok := m.sessions[k]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}
	delete(m.sessions, k)
	return nil
}
