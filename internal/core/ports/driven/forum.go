// Package driven defines the interfaces the core services depend on.
// Adapters implement these; services never import adapters.
package driven

import (
	"context"

	"github.com/compwatch-labs/compwatch-cli/internal/core/domain"
)

// ForumClient talks to the upstream forum API. Implementations handle
// transport-level retry with exponential backoff for transient failures
// (timeouts, 5xx, rate limiting); a non-transient failure is returned
// immediately and must not be retried.
type ForumClient interface {
	// ListPosts fetches one listing page, newest first. skip/first are the
	// upstream pagination offsets. A short or empty page means the listing
	// is exhausted.
	ListPosts(ctx context.Context, skip, first int) ([]domain.PostSummary, error)

	// GetPost fetches the full post for a listing entry.
	GetPost(ctx context.Context, id string) (*domain.RawPost, error)
}
