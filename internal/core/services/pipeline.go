package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/compwatch-labs/compwatch-cli/internal/core/domain"
	"github.com/compwatch-labs/compwatch-cli/internal/core/ports/driven"
	"github.com/compwatch-labs/compwatch-cli/internal/core/ports/driving"
	"github.com/compwatch-labs/compwatch-cli/internal/logger"
)

// Pipeline chains the stages into one run: fetch, extract, normalize, merge,
// prune. It owns nothing durable itself; every store is injected through a
// driven port.
type Pipeline struct {
	settings domain.Settings
	forum    driven.ForumClient
	llm      driven.LLMService
	raw      driven.RawPostStore
	dataset  driven.DatasetStore
	aliases  driven.AliasStore
	states   driven.StateStore
	now      func() time.Time
}

var _ driving.PipelineRunner = (*Pipeline)(nil)

// NewPipeline wires the stages together. now is injectable for tests; pass
// nil for time.Now.
func NewPipeline(
	settings domain.Settings,
	forum driven.ForumClient,
	llm driven.LLMService,
	raw driven.RawPostStore,
	dataset driven.DatasetStore,
	aliases driven.AliasStore,
	states driven.StateStore,
	now func() time.Time,
) *Pipeline {
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		settings: settings,
		forum:    forum,
		llm:      llm,
		raw:      raw,
		dataset:  dataset,
		aliases:  aliases,
		states:   states,
		now:      now,
	}
}

// Run executes one full pipeline pass. Every stage leaves its durable store
// consistent before the next stage starts, so a failure partway through
// never needs rollback; the next run picks up from the ledger.
func (p *Pipeline) Run(ctx context.Context) (*domain.RunReport, error) {
	report := &domain.RunReport{RunID: uuid.NewString()[:8]}
	logger.Section("run %s", report.RunID)

	fetcher := NewFetcher(p.forum, p.raw, p.states, p.settings.Forum.PageSize, p.settings.App.LagDays, p.now)
	fetchStats, err := fetcher.Fetch(ctx, p.settings.App.MaxFetchRecs)
	if err != nil {
		return nil, fmt.Errorf("fetch stage: %w", err)
	}
	report.Fetched = fetchStats.Fetched
	report.SkippedLag = fetchStats.SkippedLag
	report.SkippedTitle = fetchStats.SkippedTitle

	states, err := p.states.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state ledger: %w", err)
	}

	posts, err := p.raw.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list raw posts: %w", err)
	}

	postsByID := make(map[string]domain.RawPost, len(posts))
	var pending []domain.RawPost
	for _, post := range posts {
		postsByID[post.ID] = post
		state, ok := states[post.ID]
		if !ok || state.Status.NeedsExtraction() {
			pending = append(pending, post)
		}
	}
	logger.Info("extraction queue: %d of %d posts", len(pending), len(posts))

	extractor := NewExtractor(p.llm, p.settings.OfferBounds(), p.settings.App.NWorkers)
	candidates, err := extractor.Extract(ctx, pending)
	if err != nil {
		return nil, fmt.Errorf("extract stage: %w", err)
	}

	table, err := p.aliases.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load alias tables: %w", err)
	}

	ds, err := p.dataset.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	var records []domain.CanonicalRecord
	seenUnmapped := make(map[string]struct{})
	for _, c := range candidates {
		switch c.Status {
		case domain.ExtractionValid:
			report.Extracted++
			record, unmapped := Normalize(c, postsByID[c.PostID], table)
			records = append(records, record)
			for _, u := range unmapped {
				key := string(u.Kind) + "\x00" + domain.NormalizeLabel(u.Label)
				if _, dup := seenUnmapped[key]; dup {
					continue
				}
				seenUnmapped[key] = struct{}{}
				report.Unmapped = append(report.Unmapped, u)
			}
		case domain.ExtractionSchemaInvalid:
			report.SchemaInvalid++
			if err := p.saveState(ctx, states, c.PostID, domain.StatusSchemaInvalid, c.Reason); err != nil {
				return nil, err
			}
		case domain.ExtractionUnparsable:
			report.Unparsable++
			if err := p.saveState(ctx, states, c.PostID, domain.StatusUnparsable, c.Reason); err != nil {
				return nil, err
			}
		}
	}

	mergeStats := Merge(ds, records, postsByID, p.now(), p.settings.App.LagDays)
	report.Merged = len(mergeStats.Merged)
	report.Held = len(mergeStats.Held)
	report.Excluded = len(mergeStats.Excluded)

	for _, id := range mergeStats.Merged {
		if err := p.saveState(ctx, states, id, domain.StatusMerged, ""); err != nil {
			return nil, err
		}
	}
	for _, id := range mergeStats.Held {
		if err := p.saveState(ctx, states, id, domain.StatusHeld, "inside lag window"); err != nil {
			return nil, err
		}
	}
	for _, id := range mergeStats.Excluded {
		if err := p.saveState(ctx, states, id, domain.StatusExcluded, "downvoted after lag window"); err != nil {
			return nil, err
		}
	}

	if err := p.dataset.Save(ctx, ds); err != nil {
		return nil, fmt.Errorf("save dataset: %w", err)
	}
	report.DatasetSize = ds.Len()

	pruned, err := PruneToSize(ctx, p.raw, states, p.settings.App.MaxRecs)
	if err != nil {
		return nil, fmt.Errorf("retention stage: %w", err)
	}
	report.Pruned = pruned

	return report, nil
}

// RemovePosts deletes the given posts from the raw intake store, and from
// the dataset when editDataset is set. The state ledger is left alone so the
// posts are not re-fetched and re-processed on the next run.
func (p *Pipeline) RemovePosts(ctx context.Context, ids []string, editDataset bool) (int, int, error) {
	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	rawRemoved, err := p.raw.Remove(ctx, idSet)
	if err != nil {
		return 0, 0, fmt.Errorf("remove raw posts: %w", err)
	}

	datasetRemoved := 0
	if editDataset {
		ds, err := p.dataset.Load(ctx)
		if err != nil {
			return rawRemoved, 0, fmt.Errorf("load dataset: %w", err)
		}
		for id := range idSet {
			if ds.Remove(id) {
				datasetRemoved++
			}
		}
		if datasetRemoved > 0 {
			if err := p.dataset.Save(ctx, ds); err != nil {
				return rawRemoved, 0, fmt.Errorf("save dataset: %w", err)
			}
		}
	}

	logger.Info("removed %d raw posts, %d dataset records", rawRemoved, datasetRemoved)
	return rawRemoved, datasetRemoved, nil
}

// saveState upserts a ledger row and keeps the in-memory view in sync so the
// retention stage sees this run's outcomes.
func (p *Pipeline) saveState(ctx context.Context, states map[string]domain.PostState, postID string, status domain.PostStatus, reason string) error {
	attempts := 1
	if prev, ok := states[postID]; ok {
		attempts = prev.Attempts + 1
	}
	state := domain.PostState{
		PostID:    postID,
		Status:    status,
		Attempts:  attempts,
		Reason:    reason,
		UpdatedAt: p.now(),
	}
	if err := p.states.Save(ctx, &state); err != nil {
		return fmt.Errorf("save state for post %s: %w", postID, err)
	}
	states[postID] = state
	return nil
}
