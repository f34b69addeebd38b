package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compwatch-labs/compwatch-cli/internal/core/domain"
	"github.com/compwatch-labs/compwatch-cli/internal/core/ports/driven"
)

func testStateStore(t *testing.T) driven.StateStore {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store.StateStore()
}

func TestStateStore_GetMissingRow(t *testing.T) {
	states := testStateStore(t)

	state, err := states.Get(context.Background(), "nope")

	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestStateStore_SaveAndGet(t *testing.T) {
	states := testStateStore(t)
	ctx := context.Background()
	updatedAt := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	saved := domain.PostState{
		PostID:    "p1",
		Status:    domain.StatusUnparsable,
		Attempts:  2,
		Reason:    "no JSON object in reply",
		UpdatedAt: updatedAt,
	}
	require.NoError(t, states.Save(ctx, &saved))

	got, err := states.Get(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "p1", got.PostID)
	assert.Equal(t, domain.StatusUnparsable, got.Status)
	assert.Equal(t, 2, got.Attempts)
	assert.Equal(t, "no JSON object in reply", got.Reason)
	assert.True(t, got.UpdatedAt.Equal(updatedAt))
}

func TestStateStore_SaveUpsertsExistingRow(t *testing.T) {
	states := testStateStore(t)
	ctx := context.Background()

	require.NoError(t, states.Save(ctx, &domain.PostState{
		PostID: "p1", Status: domain.StatusHeld, Attempts: 1, UpdatedAt: time.Now(),
	}))
	require.NoError(t, states.Save(ctx, &domain.PostState{
		PostID: "p1", Status: domain.StatusMerged, Attempts: 2, UpdatedAt: time.Now(),
	}))

	got, err := states.Get(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.StatusMerged, got.Status)
	assert.Equal(t, 2, got.Attempts)
	assert.Equal(t, "", got.Reason)
}

func TestStateStore_SaveRejectsInvalidInput(t *testing.T) {
	states := testStateStore(t)
	ctx := context.Background()

	err := states.Save(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = states.Save(ctx, &domain.PostState{Status: domain.StatusMerged})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStateStore_All(t *testing.T) {
	states := testStateStore(t)
	ctx := context.Background()

	require.NoError(t, states.Save(ctx, &domain.PostState{
		PostID: "a", Status: domain.StatusMerged, Attempts: 1, UpdatedAt: time.Now(),
	}))
	require.NoError(t, states.Save(ctx, &domain.PostState{
		PostID: "b", Status: domain.StatusSchemaInvalid, Attempts: 1,
		Reason: "intern offer", UpdatedAt: time.Now(),
	}))

	all, err := states.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, domain.StatusMerged, all["a"].Status)
	assert.Equal(t, "intern offer", all["b"].Reason)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.StateStore().Save(ctx, &domain.PostState{
		PostID: "p1", Status: domain.StatusMerged, Attempts: 1, UpdatedAt: time.Now(),
	}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.StateStore().Get(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.StatusMerged, got.Status)
}
