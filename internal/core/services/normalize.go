package services

import (
	"strings"

	"github.com/compwatch-labs/compwatch-cli/internal/core/domain"
)

// Normalize maps a valid candidate record's free-text labels onto canonical
// identifiers using the alias tables and produces the canonical record for
// the post. It is a pure function: alias-table misses are reported as
// unmapped labels for later curation, never treated as errors.
func Normalize(c domain.CandidateRecord, post domain.RawPost, table *domain.AliasTable) (domain.CanonicalRecord, []domain.UnmappedLabel) {
	var unmapped []domain.UnmappedLabel

	resolve := func(kind domain.AliasKind, label string) string {
		if label == "n/a" {
			return "n/a"
		}
		if id, ok := table.Lookup(kind, label); ok {
			return id
		}
		unmapped = append(unmapped, domain.UnmappedLabel{Kind: kind, Label: label})
		return provisionalID(label)
	}

	return domain.CanonicalRecord{
		PostID:          c.PostID,
		CompanyID:       resolve(domain.AliasCompany, c.Company),
		RoleID:          resolve(domain.AliasRole, c.Role),
		LocationID:      resolve(domain.AliasLocation, primaryLocation(c.Location)),
		YearsExperience: c.YearsExperience,
		YearsBand:       domain.YearsBand(c.YearsExperience),
		BaseOffer:       c.BaseOffer,
		TotalOffer:      c.TotalOffer,
		Currency:        c.Currency,
		InterviewExp:    c.InterviewExp,
		CreatedAt:       post.CreatedAt,
	}, unmapped
}

// primaryLocation reduces a free-text location to its leading segment.
// Posters often write "Bangalore, India" or "Hyderabad/Remote (hybrid)";
// only the first segment identifies a place the alias table can know.
func primaryLocation(location string) string {
	if location == "n/a" {
		return location
	}
	if idx := strings.IndexAny(location, ",/"); idx >= 0 {
		location = location[:idx]
	}
	if idx := strings.Index(location, "("); idx >= 0 {
		location = location[:idx]
	}
	return strings.TrimSpace(location)
}

// provisionalID turns an unmapped label into a stable provisional canonical
// identifier: the normalized label, title-cased. Re-running the pipeline
// before the alias tables catch up yields the same identifier.
func provisionalID(label string) string {
	words := strings.Fields(strings.ToLower(label))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
