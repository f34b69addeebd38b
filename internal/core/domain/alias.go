package domain

import "strings"

// AliasKind identifies which alias table a label belongs to.
type AliasKind string

const (
	AliasCompany  AliasKind = "company"
	AliasRole     AliasKind = "role"
	AliasLocation AliasKind = "location"
)

// AliasTable maps raw labels to canonical identifiers for each entity kind.
// Tables are curated externally and read-only to the pipeline. A lookup miss
// is not an error: the normalized raw label itself becomes a provisional
// canonical identifier and is reported as unmapped for later curation.
type AliasTable struct {
	tables map[AliasKind]map[string]string
}

// NewAliasTable creates an alias table from per-kind mappings. Keys are
// normalized on insertion so lookups are case and whitespace insensitive.
func NewAliasTable(company, role, location map[string]string) *AliasTable {
	t := &AliasTable{tables: map[AliasKind]map[string]string{
		AliasCompany:  {},
		AliasRole:     {},
		AliasLocation: {},
	}}
	for label, id := range company {
		t.tables[AliasCompany][NormalizeLabel(label)] = id
	}
	for label, id := range role {
		t.tables[AliasRole][NormalizeLabel(label)] = id
	}
	for label, id := range location {
		t.tables[AliasLocation][NormalizeLabel(label)] = id
	}
	return t
}

// Lookup resolves a raw label to its canonical identifier. The second return
// is false on a miss.
func (t *AliasTable) Lookup(kind AliasKind, label string) (string, bool) {
	m, ok := t.tables[kind]
	if !ok {
		return "", false
	}
	id, ok := m[NormalizeLabel(label)]
	return id, ok
}

// Size returns the number of aliases for a kind.
func (t *AliasTable) Size(kind AliasKind) int {
	return len(t.tables[kind])
}

// NormalizeLabel lowercases a label and collapses internal whitespace runs
// to single spaces.
func NormalizeLabel(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), " ")
}

// UnmappedLabel records an alias-table miss observed during normalization.
type UnmappedLabel struct {
	Kind  AliasKind
	Label string
}
