package domain

import (
	"strings"
	"time"
)

// ExtractionStatus is the outcome of one extraction pass over a raw post.
type ExtractionStatus string

const (
	// ExtractionValid means the reply parsed and passed all checks.
	ExtractionValid ExtractionStatus = "valid"

	// ExtractionSchemaInvalid means the reply was well-formed but the
	// content is implausible (numeric bounds, empty company, intern role).
	// Content problems are not retried.
	ExtractionSchemaInvalid ExtractionStatus = "schema_invalid"

	// ExtractionUnparsable means the reply could not be parsed into the
	// expected shape twice in a row. The post is skip-marked permanently.
	ExtractionUnparsable ExtractionStatus = "unparsable"
)

// CandidateRecord is the transient output of the extraction stage. It lives
// only within a single extract -> normalize -> merge pass and is never
// persisted.
type CandidateRecord struct {
	PostID          string
	Company         string
	Role            string
	Location        string
	YearsExperience float64
	BaseOffer       float64
	TotalOffer      float64
	Currency        string
	InterviewExp    string
	Status          ExtractionStatus

	// Reason carries a short human-readable explanation for non-valid
	// statuses, surfaced in verbose logs and the state ledger.
	Reason string
}

// CanonicalRecord is a validated, normalized compensation record as stored
// in the durable dataset.
type CanonicalRecord struct {
	PostID          string    `json:"post_id"`
	CompanyID       string    `json:"company_id"`
	RoleID          string    `json:"role_id"`
	LocationID      string    `json:"location_id"`
	YearsExperience float64   `json:"yoe"`
	YearsBand       string    `json:"yoe_band"`
	BaseOffer       float64   `json:"base"`
	TotalOffer      float64   `json:"total"`
	Currency        string    `json:"currency"`
	InterviewExp    string    `json:"interview_exp,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// OfferBounds holds the configured plausible ranges for compensation values.
type OfferBounds struct {
	MinBase  float64
	MaxBase  float64
	MinTotal float64
	MaxTotal float64
}

// FitOffer checks v against [min, max]. Values above max are assumed to be
// absolute amounts rather than lakhs and get one rescue attempt: divide by
// 100000 and re-check. Returns the (possibly rescued) value and whether it
// fits.
func FitOffer(v, min, max float64) (float64, bool) {
	if v > max {
		if converted := v / 100000; converted >= min && converted <= max {
			return converted, true
		}
	}
	if v >= min && v <= max {
		return v, true
	}
	return v, false
}

// YearsBand maps years of experience onto the reporting band used by the
// results viewer.
func YearsBand(yoe float64) string {
	switch {
	case yoe <= 1:
		return "Entry (0-1)"
	case yoe <= 6:
		return "Mid (2-6)"
	case yoe <= 10:
		return "Senior (7-10)"
	default:
		return "Senior + (11+)"
	}
}

// IsInternRole reports whether a role label describes an internship.
// Intern offers are not comparable to full-time offers and are rejected.
func IsInternRole(role string) bool {
	return strings.Contains(strings.ToLower(role), "intern")
}
