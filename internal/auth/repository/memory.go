package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"leadops_backend/platform/apperr"
)

type refreshRecord struct {
	userID    uuid.UUID
	expiresAt time.Time
}

// Memory is an in-memory auth repository used in tests and database-less
// deployments.
type Memory struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]User
	tokens  map[string]refreshRecord
	byEmail map[string]uuid.UUID
}

// NewMemory creates an empty in-memory auth repository.
func NewMemory() *Memory {
	return &Memory{
		users:   make(map[uuid.UUID]User),
		tokens:  make(map[string]refreshRecord),
		byEmail: make(map[string]uuid.UUID),
	}
}

var _ Repository = (*Memory)(nil)

func (m *Memory) CreateUser(_ context.Context, email, passwordHash string, roles []string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(email)
	if _, exists := m.byEmail[key]; exists {
		return User{}, apperr.Conflict("email already registered")
	}

	user := User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Roles:        append([]string(nil), roles...),
		CreatedAt:    time.Now().UTC(),
	}
	m.users[user.ID] = user
	m.byEmail[key] = user.ID
	return user, nil
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[strings.ToLower(email)]
	if !ok {
		return User{}, apperr.NotFound("user not found")
	}
	return m.users[id], nil
}

func (m *Memory) GetUserByID(_ context.Context, userID uuid.UUID) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[userID]
	if !ok {
		return User{}, apperr.NotFound("user not found")
	}
	return user, nil
}

func (m *Memory) CreateRefreshToken(_ context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tokens[tokenHash] = refreshRecord{userID: userID, expiresAt: expiresAt}
	return nil
}

func (m *Memory) GetRefreshToken(_ context.Context, tokenHash string) (uuid.UUID, time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.tokens[tokenHash]
	if !ok {
		return uuid.Nil, time.Time{}, apperr.NotFound("refresh token not found")
	}
	return rec.userID, rec.expiresAt, nil
}

func (m *Memory) RevokeRefreshToken(_ context.Context, tokenHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.tokens, tokenHash)
	return nil
}

func (m *Memory) RevokeAllRefreshTokens(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for hash, rec := range m.tokens {
		if rec.userID == userID {
			delete(m.tokens, hash)
		}
	}
	return nil
}
