package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAliasTable_Lookup(t *testing.T) {
	table := NewAliasTable(
		map[string]string{"goog": "Google", "google india": "Google"},
		map[string]string{"sde": "Software Engineer"},
		map[string]string{"blr": "Bangalore"},
	)

	id, ok := table.Lookup(AliasCompany, "goog")
	require.True(t, ok)
	assert.Equal(t, "Google", id)

	id, ok = table.Lookup(AliasRole, "sde")
	require.True(t, ok)
	assert.Equal(t, "Software Engineer", id)

	_, ok = table.Lookup(AliasLocation, "pune")
	assert.False(t, ok)
}

func TestAliasTable_LookupIsCaseAndSpaceInsensitive(t *testing.T) {
	table := NewAliasTable(map[string]string{"Google India": "Google"}, nil, nil)

	id, ok := table.Lookup(AliasCompany, "  GOOGLE   india ")
	require.True(t, ok)
	assert.Equal(t, "Google", id)
}

func TestAliasTable_Size(t *testing.T) {
	table := NewAliasTable(map[string]string{"a": "A", "b": "B"}, nil, nil)
	assert.Equal(t, 2, table.Size(AliasCompany))
	assert.Equal(t, 0, table.Size(AliasRole))
}

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "google india", NormalizeLabel("  Google   India "))
	assert.Equal(t, "", NormalizeLabel("   "))
	assert.Equal(t, "sde ii", NormalizeLabel("SDE\tII"))
}
