// Package state keeps the per-session application state: login, language,
// current view and mute flag.
package state

import (
	"context"
	"sync"
	"time"

	"github.com/liliang-cn/agribot/internal/domain"
)

// Store loads and saves AppState by session id. Load returns
// domain.ErrNoSession for unknown sessions.
type Store interface {
	Load(ctx context.Context, sessionID string) (*domain.AppState, error)
	Save(ctx context.Context, state *domain.AppState) error
	Delete(ctx context.Context, sessionID string) error
	Count(ctx context.Context) (int, error)
}

// MemoryStore is a process-local Store
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]domain.AppState
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]domain.AppState)}
}

// Load returns a copy of the stored state
func (s *MemoryStore) Load(_ context.Context, sessionID string) (*domain.AppState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.states[sessionID]
	if !ok {
		return nil, domain.ErrNoSession
	}
	return cloneState(&st), nil
}

// Save stores a copy of state
func (s *MemoryStore) Save(_ context.Context, state *domain.AppState) error {
	state.UpdatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.SessionID] = *cloneState(state)
	return nil
}

// Delete forgets a session
func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, sessionID)
	return nil
}

// Count returns the number of live sessions
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states), nil
}

func cloneState(st *domain.AppState) *domain.AppState {
	out := *st
	if st.User != nil {
		u := *st.User
		out.User = &u
	}
	return &out
}
