package memory

import (
	"context"
	"sync"

	"github.com/compwatch-labs/compwatch-cli/internal/core/domain"
	"github.com/compwatch-labs/compwatch-cli/internal/core/ports/driven"
)

// Ensure StateStore implements the interface.
var _ driven.StateStore = (*StateStore)(nil)

// StateStore is an in-memory implementation of driven.StateStore.
type StateStore struct {
	mu     sync.RWMutex
	states map[string]domain.PostState
}

// NewStateStore creates an empty in-memory state store.
func NewStateStore() *StateStore {
	return &StateStore{states: make(map[string]domain.PostState)}
}

// Get returns the state for a post, or nil if the post has no row yet.
func (s *StateStore) Get(ctx context.Context, postID string) (*domain.PostState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[postID]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

// Save creates or updates a ledger row.
func (s *StateStore) Save(ctx context.Context, state *domain.PostState) error {
	if state == nil || state.PostID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.PostID] = *state
	return nil
}

// All returns every ledger row, keyed by post id.
func (s *StateStore) All(ctx context.Context) (map[string]domain.PostState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.PostState, len(s.states))
	for id, state := range s.states {
		out[id] = state
	}
	return out, nil
}
