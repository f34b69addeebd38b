package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compwatch-labs/compwatch-cli/internal/core/domain"
)

func aliasTable() *domain.AliasTable {
	return domain.NewAliasTable(
		map[string]string{"goog": "Google", "google india": "Google"},
		map[string]string{"sde": "Software Engineer", "sde ii": "Software Engineer"},
		map[string]string{"blr": "Bangalore", "bangalore": "Bangalore"},
	)
}

func candidate() domain.CandidateRecord {
	return domain.CandidateRecord{
		PostID:          "p1",
		Company:         "Goog",
		Role:            "SDE II",
		Location:        "Bangalore, India",
		YearsExperience: 4,
		BaseOffer:       30,
		TotalOffer:      45,
		Currency:        "INR",
		InterviewExp:    "3 rounds",
		Status:          domain.ExtractionValid,
	}
}

func TestNormalize_ResolvesAliases(t *testing.T) {
	post := domain.RawPost{ID: "p1", CreatedAt: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)}

	record, unmapped := Normalize(candidate(), post, aliasTable())

	assert.Empty(t, unmapped)
	assert.Equal(t, "p1", record.PostID)
	assert.Equal(t, "Google", record.CompanyID)
	assert.Equal(t, "Software Engineer", record.RoleID)
	assert.Equal(t, "Bangalore", record.LocationID)
	assert.Equal(t, 4.0, record.YearsExperience)
	assert.Equal(t, "Mid (2-6)", record.YearsBand)
	assert.Equal(t, 30.0, record.BaseOffer)
	assert.Equal(t, 45.0, record.TotalOffer)
	assert.Equal(t, "INR", record.Currency)
	assert.Equal(t, "3 rounds", record.InterviewExp)
	assert.Equal(t, post.CreatedAt, record.CreatedAt)
}

func TestNormalize_UnmappedLabelsGetProvisionalIDs(t *testing.T) {
	c := candidate()
	c.Company = "definitely new startup"
	c.Role = "prompt engineer"

	record, unmapped := Normalize(c, domain.RawPost{ID: "p1"}, aliasTable())

	assert.Equal(t, "Definitely New Startup", record.CompanyID)
	assert.Equal(t, "Prompt Engineer", record.RoleID)
	assert.Equal(t, "Bangalore", record.LocationID)

	require.Len(t, unmapped, 2)
	assert.Equal(t, domain.AliasCompany, unmapped[0].Kind)
	assert.Equal(t, "definitely new startup", unmapped[0].Label)
	assert.Equal(t, domain.AliasRole, unmapped[1].Kind)
	assert.Equal(t, "prompt engineer", unmapped[1].Label)
}

func TestNormalize_ProvisionalIDIsStable(t *testing.T) {
	c := candidate()
	c.Company = "  NEW   co "

	first, _ := Normalize(c, domain.RawPost{ID: "p1"}, aliasTable())
	second, _ := Normalize(c, domain.RawPost{ID: "p1"}, aliasTable())

	assert.Equal(t, "New Co", first.CompanyID)
	assert.Equal(t, first.CompanyID, second.CompanyID)
}

func TestPrimaryLocation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bangalore, India", "Bangalore"},
		{"Hyderabad/Remote (hybrid)", "Hyderabad"},
		{"Pune (onsite)", "Pune"},
		{"Chennai", "Chennai"},
		{"n/a", "n/a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, primaryLocation(tt.in), "input %q", tt.in)
	}
}

func TestNormalize_MissingLocationPassesThrough(t *testing.T) {
	c := candidate()
	c.Location = "n/a"

	record, unmapped := Normalize(c, domain.RawPost{ID: "p1"}, aliasTable())

	assert.Equal(t, "n/a", record.LocationID)
	assert.Empty(t, unmapped)
}
