package domain

import "time"

// PostStatus is the durable processing status of a raw post in the state
// ledger. The ledger is what makes skip-marks and merge outcomes survive
// across pipeline runs.
type PostStatus string

const (
	// StatusPending means the post has not produced any outcome yet.
	StatusPending PostStatus = "pending"

	// StatusHeld means the post extracted cleanly but is still inside the
	// lag window; it is re-evaluated on a later run.
	StatusHeld PostStatus = "held"

	// StatusMerged means a canonical record for the post is in the dataset.
	StatusMerged PostStatus = "merged"

	// StatusExcluded means the post was down-voted after the lag window
	// closed and is permanently excluded from the dataset.
	StatusExcluded PostStatus = "excluded"

	// StatusSchemaInvalid means extraction produced implausible content.
	// Permanent skip-mark.
	StatusSchemaInvalid PostStatus = "schema_invalid"

	// StatusUnparsable means extraction failed to produce the expected
	// shape twice in a row. Permanent skip-mark.
	StatusUnparsable PostStatus = "unparsable"

	// StatusTitleSkipped means the post was rejected at the door for not
	// following the compensation title convention. The post body is never
	// stored; the mark keeps the fetcher from downloading it again.
	StatusTitleSkipped PostStatus = "title_skipped"
)

// Decisive reports whether the status is a final outcome. Only posts with a
// decisive outcome are eligible for size-bound pruning; pending and held
// posts are left untouched regardless of count.
func (s PostStatus) Decisive() bool {
	switch s {
	case StatusMerged, StatusExcluded, StatusSchemaInvalid, StatusUnparsable, StatusTitleSkipped:
		return true
	}
	return false
}

// NeedsExtraction reports whether the post should go through the extraction
// stage on this run.
func (s PostStatus) NeedsExtraction() bool {
	return s == StatusPending || s == StatusHeld
}

// PostState is one ledger row: the processing state of a single post.
type PostState struct {
	PostID    string
	Status    PostStatus
	Attempts  int
	Reason    string
	UpdatedAt time.Time
}
