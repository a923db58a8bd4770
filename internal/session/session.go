// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the state of one authenticated chat session.
//
// A session is ephemeral: it exists from login to logout and keeps the
// transcript in memory only. Nothing here touches the credential store.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/chatgate/internal/store"
)

// Welcome is the first assistant line shown when a session opens.
const Welcome = "Hello! I'm your AI assistant. How can I help you today?"

// Turn is one exchange in the transcript.
type Turn struct {
	User  string
	Reply string
	At    time.Time
}

// Session is the state of one logged-in user.
type Session struct {
	mu sync.Mutex

	id        string
	account   store.Account
	startedAt time.Time
	turns     []Turn

	now func() time.Time
}

// New opens a session for an authenticated account.
func New(acct store.Account) *Session {
	return &Session{
		id:        uuid.NewString(),
		account:   acct,
		startedAt: time.Now(),
		now:       time.Now,
	}
}

// WithClock overrides the time source (used in tests).
func (s *Session) WithClock(now func() time.Time) *Session {
	s.now = now
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Account returns the authenticated account.
func (s *Session) Account() store.Account {
	return s.account
}

// StartedAt returns when the session opened.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// Append records one completed exchange.
func (s *Session) Append(user, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, Turn{User: user, Reply: reply, At: s.now()})
}

// Turns returns a copy of the transcript in order.
func (s *Session) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len returns the number of recorded exchanges.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}
