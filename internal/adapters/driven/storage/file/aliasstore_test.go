package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compwatch-labs/compwatch-cli/internal/core/domain"
)

func writeAliasMap(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestAliasStore_LoadClusterFiles(t *testing.T) {
	dir := t.TempDir()
	writeAliasMap(t, dir, CompanyMapFile, `[
		{"cluster_name": "Google", "cluster": ["goog", "google india"]},
		{"cluster_name": "Amazon", "cluster": ["amzn"]}
	]`)
	writeAliasMap(t, dir, RoleMapFile, `[
		{"cluster_name": "Software Engineer", "cluster": ["sde", "sde ii"]}
	]`)

	table, err := NewAliasStore(dir).Load(context.Background())
	require.NoError(t, err)

	id, ok := table.Lookup(domain.AliasCompany, "goog")
	require.True(t, ok)
	assert.Equal(t, "Google", id)

	// The canonical name resolves to itself.
	id, ok = table.Lookup(domain.AliasCompany, "google")
	require.True(t, ok)
	assert.Equal(t, "Google", id)

	id, ok = table.Lookup(domain.AliasRole, "SDE II")
	require.True(t, ok)
	assert.Equal(t, "Software Engineer", id)

	_, ok = table.Lookup(domain.AliasLocation, "blr")
	assert.False(t, ok)
}

func TestAliasStore_MissingFilesYieldEmptyTable(t *testing.T) {
	table, err := NewAliasStore(t.TempDir()).Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, table.Size(domain.AliasCompany))
	assert.Equal(t, 0, table.Size(domain.AliasRole))
	assert.Equal(t, 0, table.Size(domain.AliasLocation))
}

func TestAliasStore_MalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	writeAliasMap(t, dir, CompanyMapFile, `{not json`)

	_, err := NewAliasStore(dir).Load(context.Background())

	require.Error(t, err)
}
