package service

import (
	"sync"

	"leadops_backend/platform/ai"
)

// maxSessionMessages bounds session history to the most recent exchanges so
// provider requests stay small.
const maxSessionMessages = 20

type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string][]ai.ChatMessage
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string][]ai.ChatMessage)}
}

// History returns a copy of the session's messages.
func (s *sessionStore) History(sessionID string) []ai.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.sessions[sessionID]
	return append([]ai.ChatMessage(nil), history...)
}

// Append adds messages to a session, trimming to the newest
// maxSessionMessages entries.
func (s *sessionStore) Append(sessionID string, messages ...ai.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.sessions[sessionID], messages...)
	if len(history) > maxSessionMessages {
		history = history[len(history)-maxSessionMessages:]
	}
	s.sessions[sessionID] = history
}
