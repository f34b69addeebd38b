package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/compwatch-labs/compwatch-cli/internal/core/domain"
	"github.com/compwatch-labs/compwatch-cli/internal/core/ports/driven"
)

// Ensure DatasetStore implements the interface.
var _ driven.DatasetStore = (*DatasetStore)(nil)

// DatasetStore persists the canonical dataset as a single JSON array. The
// serialized order is the dataset's canonical order, so two runs that merge
// the same records produce byte-identical files.
type DatasetStore struct {
	mu   sync.Mutex
	path string
}

// NewDatasetStore creates a dataset store backed by the file at path.
func NewDatasetStore(path string) *DatasetStore {
	return &DatasetStore{path: path}
}

// Load reads the dataset. A missing file yields an empty dataset.
func (s *DatasetStore) Load(ctx context.Context) (*domain.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewDataset(), nil
		}
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var records []domain.CanonicalRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	return domain.DatasetFrom(records), nil
}

// Save replaces the dataset file atomically.
func (s *DatasetStore) Save(ctx context.Context, ds *domain.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := ds.Records()
	if records == nil {
		records = []domain.CanonicalRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	return writeFileAtomic(s.path, append(data, '\n'))
}
