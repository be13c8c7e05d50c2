// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/n3t-labs/n3t-tui/internal/logger"
	"github.com/n3t-labs/n3t-tui/internal/model"
	"github.com/n3t-labs/n3t-tui/internal/util"
)

const sessionFile = "session.json"

// sessionState is the on-disk shape. The two fields always move together:
// authenticated iff a user is present.
type sessionState struct {
	IsAuthenticated bool        `json:"is_authenticated"`
	User            *model.User `json:"user"`
	Token           string      `json:"token,omitempty"`
}

// SessionStore tracks the signed-in user across restarts.
type SessionStore struct {
	mu    sync.RWMutex
	path  string
	state sessionState
}

// OpenSession loads the session from the given directory. A missing or
// corrupt file yields a signed-out session.
func OpenSession(dir string) *SessionStore {
	s := &SessionStore{path: filepath.Join(dir, sessionFile)}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return s
	}
	var st sessionState
	if err := json.Unmarshal(data, &st); err != nil {
		logger.L().Warn("discarding corrupt session file", zap.Error(err))
		return s
	}
	// Enforce the pairing invariant regardless of what the file claims.
	if st.User == nil {
		st = sessionState{}
	} else {
		st.IsAuthenticated = true
	}
	s.state = st
	return s
}

// Login records the authenticated user and persists the session.
func (s *SessionStore) Login(user model.User, token string) error {
	s.mu.Lock()
	s.state = sessionState{IsAuthenticated: true, User: &user, Token: token}
	s.mu.Unlock()
	return s.save()
}

// Logout clears the session unconditionally and persists the cleared state.
func (s *SessionStore) Logout() error {
	s.mu.Lock()
	s.state = sessionState{}
	s.mu.Unlock()
	return s.save()
}

// IsAuthenticated reports whether a user is signed in.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User != nil
}

// User returns a copy of the signed-in user, or nil.
func (s *SessionStore) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

// Token returns the stored session token, empty when signed out.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *SessionStore) save() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.state, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return util.AtomicWriteFile(s.path, data, 0600)
}
