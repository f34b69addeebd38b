package memory

import (
	"context"
	"sync"

	"github.com/compwatch-labs/compwatch-cli/internal/core/domain"
	"github.com/compwatch-labs/compwatch-cli/internal/core/ports/driven"
)

// Ensure DatasetStore implements the interface.
var _ driven.DatasetStore = (*DatasetStore)(nil)

// DatasetStore is an in-memory implementation of driven.DatasetStore.
type DatasetStore struct {
	mu      sync.Mutex
	records []domain.CanonicalRecord
}

// NewDatasetStore creates an empty in-memory dataset store.
func NewDatasetStore() *DatasetStore {
	return &DatasetStore{}
}

// Load returns a dataset built from the stored records.
func (s *DatasetStore) Load(ctx context.Context) (*domain.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.DatasetFrom(s.records), nil
}

// Save replaces the stored records with the dataset's canonical order.
func (s *DatasetStore) Save(ctx context.Context, ds *domain.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = ds.Records()
	return nil
}
