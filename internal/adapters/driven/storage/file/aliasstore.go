package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/compwatch-labs/compwatch-cli/internal/core/domain"
	"github.com/compwatch-labs/compwatch-cli/internal/core/ports/driven"
	"github.com/compwatch-labs/compwatch-cli/internal/logger"
)

// Ensure AliasStore implements the interface.
var _ driven.AliasStore = (*AliasStore)(nil)

// Alias map file names, relative to the data directory.
const (
	CompanyMapFile  = "company_map.json"
	RoleMapFile     = "role_map.json"
	LocationMapFile = "location_map.json"
)

// aliasCluster is one entry of a curated alias map file: a canonical name
// and the raw labels that should resolve to it.
type aliasCluster struct {
	ClusterName string   `json:"cluster_name"`
	Cluster     []string `json:"cluster"`
}

// AliasStore loads the curated alias tables from JSON map files in the data
// directory. The files are maintained by hand outside the pipeline; a
// missing file just means no aliases are known for that kind yet.
type AliasStore struct {
	dir string
}

// NewAliasStore creates an alias store reading from dir.
func NewAliasStore(dir string) *AliasStore {
	return &AliasStore{dir: dir}
}

// Load reads all three alias map files and builds the lookup table.
func (s *AliasStore) Load(ctx context.Context) (*domain.AliasTable, error) {
	company, err := s.loadMap(CompanyMapFile)
	if err != nil {
		return nil, err
	}
	role, err := s.loadMap(RoleMapFile)
	if err != nil {
		return nil, err
	}
	location, err := s.loadMap(LocationMapFile)
	if err != nil {
		return nil, err
	}

	table := domain.NewAliasTable(company, role, location)
	logger.Debug("alias tables loaded: %d company, %d role, %d location",
		table.Size(domain.AliasCompany), table.Size(domain.AliasRole), table.Size(domain.AliasLocation))
	return table, nil
}

// loadMap flattens one cluster file into label -> canonical name. The
// canonical name itself is added as an alias so already-canonical labels
// resolve too.
func (s *AliasStore) loadMap(name string) (map[string]string, error) {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read alias map %s: %w", name, err)
	}

	var clusters []aliasCluster
	if err := json.Unmarshal(data, &clusters); err != nil {
		return nil, fmt.Errorf("parse alias map %s: %w", name, err)
	}

	aliases := make(map[string]string)
	for _, c := range clusters {
		aliases[c.ClusterName] = c.ClusterName
		for _, label := range c.Cluster {
			aliases[label] = c.ClusterName
		}
	}
	return aliases, nil
}
