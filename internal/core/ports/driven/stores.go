package driven

import (
	"context"

	"github.com/compwatch-labs/compwatch-cli/internal/core/domain"
)

// RawPostStore is the append-oriented intake store, one raw post per line.
// Append never rewrites existing entries; Remove replaces the whole store
// image atomically.
type RawPostStore interface {
	// Append adds newly fetched posts to the end of the store.
	Append(ctx context.Context, posts []domain.RawPost) error

	// List returns all posts in store order. Malformed lines are skipped.
	List(ctx context.Context) ([]domain.RawPost, error)

	// IDs returns the set of post ids currently in the store.
	IDs(ctx context.Context) (map[string]struct{}, error)

	// Remove deletes exactly the posts whose ids are in the set, via an
	// atomic replace of the store image. Returns the number removed.
	Remove(ctx context.Context, ids map[string]struct{}) (int, error)
}

// DatasetStore persists the canonical dataset document consumed by the
// results viewer. Save is an atomic replace.
type DatasetStore interface {
	Load(ctx context.Context) (*domain.Dataset, error)
	Save(ctx context.Context, ds *domain.Dataset) error
}

// AliasStore loads the externally curated alias tables. Read-only.
type AliasStore interface {
	Load(ctx context.Context) (*domain.AliasTable, error)
}

// StateStore is the durable per-post processing ledger.
type StateStore interface {
	// Get returns the state for a post, or nil (and no error) if the post
	// has no ledger row yet.
	Get(ctx context.Context, postID string) (*domain.PostState, error)

	// Save creates or updates a ledger row.
	Save(ctx context.Context, state *domain.PostState) error

	// All returns every ledger row, keyed by post id.
	All(ctx context.Context) (map[string]domain.PostState, error)
}
