package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/compwatch-labs/compwatch-cli/internal/core/domain"
	"github.com/compwatch-labs/compwatch-cli/internal/core/ports/driven"
)

// stateStore implements driven.StateStore.
type stateStore struct {
	store *Store
}

var _ driven.StateStore = (*stateStore)(nil)

// Get retrieves the ledger row for a post.
// Returns nil and no error if the post has no row yet.
func (s *stateStore) Get(ctx context.Context, postID string) (*domain.PostState, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT post_id, status, attempts, reason, updated_at
		FROM post_states WHERE post_id = ?
	`, postID)

	state, err := scanPostState(row)
	if err == sql.ErrNoRows {
		return nil, nil // Per interface: return nil and no error if not found
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

// Save creates or updates a ledger row.
func (s *stateStore) Save(ctx context.Context, state *domain.PostState) error {
	if state == nil || state.PostID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO post_states (post_id, status, attempts, reason, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(post_id) DO UPDATE SET
			status = excluded.status,
			attempts = excluded.attempts,
			reason = excluded.reason,
			updated_at = excluded.updated_at
	`, state.PostID, string(state.Status), state.Attempts,
		nullString(state.Reason), state.UpdatedAt.UTC().Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("saving post state: %w", err)
	}
	return nil
}

// All returns every ledger row, keyed by post id.
func (s *stateStore) All(ctx context.Context) (map[string]domain.PostState, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT post_id, status, attempts, reason, updated_at
		FROM post_states
	`)
	if err != nil {
		return nil, fmt.Errorf("querying post states: %w", err)
	}
	defer rows.Close()

	states := make(map[string]domain.PostState)
	for rows.Next() {
		state, err := scanPostStateRows(rows)
		if err != nil {
			return nil, err
		}
		states[state.PostID] = *state
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating post states: %w", err)
	}

	return states, nil
}

// ==================== Helper Functions ====================

// scanPostState scans a single ledger row.
func scanPostState(row *sql.Row) (*domain.PostState, error) {
	var state domain.PostState
	var status string
	var reason sql.NullString
	var updatedAt string

	if err := row.Scan(&state.PostID, &status, &state.Attempts, &reason, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning post state: %w", err)
	}

	state.Status = domain.PostStatus(status)
	if reason.Valid {
		state.Reason = reason.String
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		state.UpdatedAt = t
	}

	return &state, nil
}

// scanPostStateRows scans a ledger row from *sql.Rows.
func scanPostStateRows(rows *sql.Rows) (*domain.PostState, error) {
	var state domain.PostState
	var status string
	var reason sql.NullString
	var updatedAt string

	if err := rows.Scan(&state.PostID, &status, &state.Attempts, &reason, &updatedAt); err != nil {
		return nil, fmt.Errorf("scanning post state: %w", err)
	}

	state.Status = domain.PostStatus(status)
	if reason.Valid {
		state.Reason = reason.String
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		state.UpdatedAt = t
	}

	return &state, nil
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
