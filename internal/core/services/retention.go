package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/compwatch-labs/compwatch-cli/internal/core/domain"
	"github.com/compwatch-labs/compwatch-cli/internal/core/ports/driven"
	"github.com/compwatch-labs/compwatch-cli/internal/logger"
)

// PruneToSize trims the raw intake store back down to retain posts. Only
// posts with a decisive ledger outcome are candidates, oldest first; pending
// and held posts are never pruned even if the store stays over the cap,
// because their only copy of the post body is the intake store. The ledger
// rows of pruned posts are kept so skip-marks survive the prune.
func PruneToSize(ctx context.Context, raw driven.RawPostStore, states map[string]domain.PostState, retain int) (int, error) {
	posts, err := raw.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list raw posts: %w", err)
	}
	overflow := len(posts) - retain
	if overflow <= 0 {
		return 0, nil
	}

	var candidates []domain.RawPost
	for _, post := range posts {
		if state, ok := states[post.ID]; ok && state.Status.Decisive() {
			candidates = append(candidates, post)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].CreatedAt.Equal(candidates[j].CreatedAt) {
			return candidates[i].ID < candidates[j].ID
		}
		return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
	})
	if len(candidates) > overflow {
		candidates = candidates[:overflow]
	}
	if len(candidates) == 0 {
		logger.Info("prune: store over cap by %d but no processed posts to drop", overflow)
		return 0, nil
	}

	ids := make(map[string]struct{}, len(candidates))
	for _, post := range candidates {
		ids[post.ID] = struct{}{}
	}
	removed, err := raw.Remove(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("prune raw posts: %w", err)
	}
	logger.Info("prune complete: %d posts removed, %d retained", removed, len(posts)-removed)
	return removed, nil
}
