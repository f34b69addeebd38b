// Package services implements the pipeline stages: fetch, extract,
// normalize, merge and retention, plus the orchestrator that chains them.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/compwatch-labs/compwatch-cli/internal/core/domain"
	"github.com/compwatch-labs/compwatch-cli/internal/core/ports/driven"
	"github.com/compwatch-labs/compwatch-cli/internal/logger"
)

// FetchStats summarizes one fetch pass.
type FetchStats struct {
	Fetched      int
	SkippedLag   int
	SkippedTitle int
}

// Fetcher retrieves new raw posts from the upstream listing and appends them
// to the intake store. Pagination is sequential; each page's offset depends
// on the previous page.
type Fetcher struct {
	forum    driven.ForumClient
	raw      driven.RawPostStore
	states   driven.StateStore
	pageSize int
	lagDays  int
	now      func() time.Time
}

// NewFetcher creates a fetcher. now is injectable for tests; pass nil for
// time.Now.
func NewFetcher(forum driven.ForumClient, raw driven.RawPostStore, states driven.StateStore, pageSize, lagDays int, now func() time.Time) *Fetcher {
	if now == nil {
		now = time.Now
	}
	return &Fetcher{forum: forum, raw: raw, states: states, pageSize: pageSize, lagDays: lagDays, now: now}
}

// Fetch paginates the listing newest-first until either budget posts have
// been collected or a page contains only already-seen posts (the listing is
// stably ordered, so everything older is seen too). Posts still inside the
// lag window are not persisted; they will be picked up by a later run once
// their votes have had time to accumulate. Posts without the compensation
// title convention are dropped at the door.
func (f *Fetcher) Fetch(ctx context.Context, budget int) (FetchStats, error) {
	var stats FetchStats

	existing, err := f.raw.IDs(ctx)
	if err != nil {
		return stats, fmt.Errorf("read existing ids: %w", err)
	}
	// Ledger rows outlive pruning, so a post processed and pruned long ago
	// still counts as seen and is never downloaded again.
	ledger, err := f.states.All(ctx)
	if err != nil {
		return stats, fmt.Errorf("read state ledger: %w", err)
	}
	for id := range ledger {
		existing[id] = struct{}{}
	}

	lagCutoff := f.now().AddDate(0, 0, -f.lagDays)

	for skip := 0; stats.Fetched < budget; skip += f.pageSize {
		page, err := f.forum.ListPosts(ctx, skip, f.pageSize)
		if err != nil {
			return stats, fmt.Errorf("%w: list posts at offset %d: %w", domain.ErrFetchFailed, skip, err)
		}
		if len(page) == 0 {
			break
		}

		allSeen := true
		var batch []domain.RawPost
		for _, summary := range page {
			if _, seen := existing[summary.ID]; seen {
				continue
			}
			allSeen = false

			if summary.CreatedAt.After(lagCutoff) {
				stats.SkippedLag++
				continue
			}

			post, err := f.forum.GetPost(ctx, summary.ID)
			if err != nil {
				return stats, fmt.Errorf("%w: get post %s: %w", domain.ErrFetchFailed, summary.ID, err)
			}

			if !strings.Contains(post.Title, "|") {
				stats.SkippedTitle++
				// The body is dropped; skip-mark the id so the post is
				// not downloaded again next run.
				mark := domain.PostState{
					PostID:    post.ID,
					Status:    domain.StatusTitleSkipped,
					Reason:    "no compensation title marker",
					UpdatedAt: f.now(),
				}
				if err := f.states.Save(ctx, &mark); err != nil {
					return stats, fmt.Errorf("save skip mark for post %s: %w", post.ID, err)
				}
				existing[post.ID] = struct{}{}
				continue
			}

			batch = append(batch, *post)
			existing[post.ID] = struct{}{}
			stats.Fetched++
			logger.Debug("fetched post %s from %s: %.50s",
				post.ID, post.CreatedAt.Format("2006-01-02"), post.Title)

			if stats.Fetched >= budget {
				break
			}
		}

		if len(batch) > 0 {
			if err := f.raw.Append(ctx, batch); err != nil {
				return stats, fmt.Errorf("append raw posts: %w", err)
			}
		}

		// Incremental short-circuit: a fully-seen page means the cursor
		// has caught up with a previous run.
		if allSeen {
			break
		}
		if len(page) < f.pageSize {
			break
		}
	}

	logger.Info("fetch complete: %d new posts (%d lag-skipped, %d title-skipped)",
		stats.Fetched, stats.SkippedLag, stats.SkippedTitle)
	return stats, nil
}
