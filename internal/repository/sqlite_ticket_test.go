package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/releaseplan/internal/domain"
	"github.com/alexanderramin/releaseplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRelease(t *testing.T, ctx context.Context, store *SQLiteSnapshotStore) *domain.Release {
	t.Helper()
	rel := testutil.NewTestRelease("R1", testutil.Date(2026, 2, 2))
	require.NoError(t, store.Releases.Create(ctx, rel))
	return rel
}

func TestTicketRepo_RoundTripKeepsOptionalFields(t *testing.T) {
	store := NewSQLiteSnapshotStore(testutil.NewTestDB(t))
	ctx := context.Background()
	rel := seedRelease(t, ctx, store)

	withEffort := testutil.NewTestTicket("Effort", testutil.Date(2026, 2, 2), testutil.Date(2026, 2, 4),
		testutil.WithReleaseID(rel.ID), testutil.WithAssignee("Alice"), testutil.WithEffort(2.5),
		testutil.WithRequiredSkills("go", "sql"), testutil.WithStatus(domain.TicketInProgress))
	withPoints := testutil.NewTestTicket("Points", testutil.Date(2026, 2, 3), testutil.Date(2026, 2, 5),
		testutil.WithReleaseID(rel.ID), testutil.WithStoryPoints(5))
	require.NoError(t, store.Tickets.Create(ctx, &withEffort))
	require.NoError(t, store.Tickets.Create(ctx, &withPoints))

	got, err := store.Tickets.GetByID(ctx, withEffort.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.AssignedTo)
	assert.Equal(t, domain.TicketInProgress, got.Status)
	require.NotNil(t, got.EffortDays)
	assert.Equal(t, 2.5, *got.EffortDays)
	assert.Nil(t, got.StoryPoints)
	assert.Equal(t, []string{"go", "sql"}, got.RequiredSkills)

	got, err = store.Tickets.GetByID(ctx, withPoints.ID)
	require.NoError(t, err)
	assert.Nil(t, got.EffortDays)
	require.NotNil(t, got.StoryPoints)
	assert.Equal(t, 5.0, *got.StoryPoints)
	assert.Empty(t, got.RequiredSkills)
	assert.Equal(t, "", got.AssignedTo)

	list, err := store.Tickets.ListByRelease(ctx, rel.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, withEffort.ID, list[0].ID)
}

func TestTicketRepo_UpdateAndUpsert(t *testing.T) {
	store := NewSQLiteSnapshotStore(testutil.NewTestDB(t))
	ctx := context.Background()
	rel := seedRelease(t, ctx, store)

	tk := testutil.NewTestTicket("Move me", testutil.Date(2026, 2, 2), testutil.Date(2026, 2, 4),
		testutil.WithReleaseID(rel.ID), testutil.WithAssignee("Alice"))
	require.NoError(t, store.Tickets.Create(ctx, &tk))

	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	tk.Reassign("Bob", now)
	tk.Reschedule(testutil.Date(2026, 2, 9), testutil.Date(2026, 2, 11), now)
	require.NoError(t, store.Tickets.Update(ctx, &tk))

	got, err := store.Tickets.GetByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.AssignedTo)
	assert.Equal(t, testutil.Date(2026, 2, 9), got.StartDate)
	assert.Equal(t, now, got.UpdatedAt)

	tk.Title = "Renamed"
	require.NoError(t, store.Tickets.Upsert(ctx, &tk))
	fresh := testutil.NewTestTicket("New via upsert", testutil.Date(2026, 2, 2), testutil.Date(2026, 2, 2),
		testutil.WithReleaseID(rel.ID))
	require.NoError(t, store.Tickets.Upsert(ctx, &fresh))

	list, err := store.Tickets.ListByRelease(ctx, rel.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	got, err = store.Tickets.GetByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)

	missing := tk
	missing.ID = "missing"
	assert.ErrorIs(t, store.Tickets.Update(ctx, &missing), ErrNotFound)
	_, err = store.Tickets.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
