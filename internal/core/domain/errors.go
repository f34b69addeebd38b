package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates the configuration file cannot be used.
	// Fatal at process start, before any store is touched.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingToken indicates the extraction service access token is not
	// configured. Fatal at process start, before any store is touched.
	ErrMissingToken = errors.New("extraction service token not configured")

	// ErrFetchFailed indicates the upstream listing could not be fetched
	// after exhausting the retry budget. Aborts the run; durable stores
	// keep their last-known-good state.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrExtractionFailed indicates the extraction service could not be
	// reached after exhausting the retry budget. Aborts remaining
	// extraction work for the run.
	ErrExtractionFailed = errors.New("extraction failed")
)
