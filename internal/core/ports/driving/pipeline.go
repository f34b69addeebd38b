// Package driving defines the interfaces through which the outside world
// (CLI commands) invokes the core services.
package driving

import (
	"context"

	"github.com/compwatch-labs/compwatch-cli/internal/core/domain"
)

// PipelineRunner runs the ingestion-and-curation pipeline. The process model
// is batch/one-shot: the external scheduler must not overlap invocations
// that mutate the same stores (single-writer precondition).
type PipelineRunner interface {
	// Run executes one full pass: fetch, extract, normalize, merge, prune.
	// Per-post failures are contained and reported; only run-level
	// failures return an error, leaving durable stores last-known-good.
	Run(ctx context.Context) (*domain.RunReport, error)

	// RemovePosts deletes exactly the given post ids from the raw intake
	// store regardless of age or processing state. When editDataset is
	// set, the matching canonical records are also removed from the
	// dataset as a separate, explicit edit. Returns the counts removed
	// from the raw store and from the dataset.
	RemovePosts(ctx context.Context, ids []string, editDataset bool) (rawRemoved, datasetRemoved int, err error)
}
