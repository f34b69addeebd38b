package memory

import (
	"context"

	"github.com/compwatch-labs/compwatch-cli/internal/core/domain"
	"github.com/compwatch-labs/compwatch-cli/internal/core/ports/driven"
)

// Ensure AliasStore implements the interface.
var _ driven.AliasStore = (*AliasStore)(nil)

// AliasStore is an in-memory implementation of driven.AliasStore.
type AliasStore struct {
	table *domain.AliasTable
}

// NewAliasStore creates an alias store serving the given table. Pass nil for
// an empty table.
func NewAliasStore(table *domain.AliasTable) *AliasStore {
	if table == nil {
		table = domain.NewAliasTable(nil, nil, nil)
	}
	return &AliasStore{table: table}
}

// Load returns the configured table.
func (s *AliasStore) Load(ctx context.Context) (*domain.AliasTable, error) {
	return s.table, nil
}
