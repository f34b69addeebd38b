// Package memory provides in-memory store implementations for tests and
// ephemeral runs.
package memory

import (
	"context"
	"sync"

	"github.com/compwatch-labs/compwatch-cli/internal/core/domain"
	"github.com/compwatch-labs/compwatch-cli/internal/core/ports/driven"
)

// Ensure RawPostStore implements the interface.
var _ driven.RawPostStore = (*RawPostStore)(nil)

// RawPostStore is an in-memory implementation of driven.RawPostStore.
type RawPostStore struct {
	mu    sync.RWMutex
	posts []domain.RawPost
}

// NewRawPostStore creates an empty in-memory raw post store.
func NewRawPostStore() *RawPostStore {
	return &RawPostStore{}
}

// Append adds posts to the end of the store.
func (s *RawPostStore) Append(ctx context.Context, posts []domain.RawPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append(s.posts, posts...)
	return nil
}

// List returns all posts in store order.
func (s *RawPostStore) List(ctx context.Context) ([]domain.RawPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.RawPost, len(s.posts))
	copy(out, s.posts)
	return out, nil
}

// IDs returns the set of post ids currently in the store.
func (s *RawPostStore) IDs(ctx context.Context) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make(map[string]struct{}, len(s.posts))
	for _, post := range s.posts {
		ids[post.ID] = struct{}{}
	}
	return ids, nil
}

// Remove deletes exactly the posts whose ids are in the set.
func (s *RawPostStore) Remove(ctx context.Context, ids map[string]struct{}) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.posts[:0]
	removed := 0
	for _, post := range s.posts {
		if _, drop := ids[post.ID]; drop {
			removed++
			continue
		}
		kept = append(kept, post)
	}
	s.posts = kept
	return removed, nil
}
