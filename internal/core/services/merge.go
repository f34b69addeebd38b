package services

import (
	"time"

	"github.com/compwatch-labs/compwatch-cli/internal/core/domain"
	"github.com/compwatch-labs/compwatch-cli/internal/logger"
)

// MergeStats lists the per-post outcomes of one merge pass.
type MergeStats struct {
	Merged   []string
	Held     []string
	Excluded []string
}

// Merge folds normalized records into the dataset. A record merges only once
// its post has aged past the lag window; until then it is held and will be
// re-extracted on a later run. A post that ends the lag window with negative
// votes is excluded for good: community downvotes are the only quality
// signal available, and the window gives them time to arrive. Merging is an
// upsert keyed by post id, so re-processing a post is idempotent.
func Merge(ds *domain.Dataset, records []domain.CanonicalRecord, posts map[string]domain.RawPost, now time.Time, lagDays int) MergeStats {
	var stats MergeStats

	for _, record := range records {
		post, ok := posts[record.PostID]
		if !ok {
			// Record without an intake post should not happen; treat as
			// held so nothing is lost.
			logger.Warn("merge: no raw post for record %s, holding", record.PostID)
			stats.Held = append(stats.Held, record.PostID)
			continue
		}

		if post.AgeDays(now) < lagDays {
			logger.Debug("merge: post %s still inside lag window, held", record.PostID)
			stats.Held = append(stats.Held, record.PostID)
			continue
		}

		if post.VoteCount < 0 {
			logger.Debug("merge: post %s downvoted (%d), excluded", record.PostID, post.VoteCount)
			stats.Excluded = append(stats.Excluded, record.PostID)
			continue
		}

		ds.Upsert(record)
		stats.Merged = append(stats.Merged, record.PostID)
	}

	logger.Info("merge complete: %d merged, %d held, %d excluded",
		len(stats.Merged), len(stats.Held), len(stats.Excluded))
	return stats
}
