package tournament_test

import (
	"context"
	"testing"
	"time"

	"github.com/mauv0809/stumps/internal/database"
	"github.com/mauv0809/stumps/internal/scoring"
	"github.com/mauv0809/stumps/internal/standings"
	"github.com/mauv0809/stumps/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (tournament.TournamentStore, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	return tournament.New(db), teardown
}

func TestTournamentStore(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	tour := &tournament.Tournament{
		ID:         "t1",
		Name:       "Summer Cup",
		TotalOvers: 20,
		Teams:      []scoring.Team{{ID: "A", Name: "Lions"}, {ID: "B", Name: "Tigers"}},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, store.Create(ctx, tour))
	assert.ErrorIs(t, store.Create(ctx, tour), scoring.ErrConflict)

	got, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Summer Cup", got.Name)
	assert.Equal(t, int64(1), got.Version)
	team, ok := got.Team("B")
	require.True(t, ok)
	assert.Equal(t, "Tigers", team.Name)

	stale, err := store.Get(ctx, "t1")
	require.NoError(t, err)

	got.Standings = standings.Table{
		Rows:            []standings.Standing{{TeamID: "A", TeamName: "Lions", Points: 2, NetRunRate: 1.25}},
		AppliedMatchIDs: []string{"m1"},
	}
	require.NoError(t, store.Save(ctx, got))
	assert.Equal(t, int64(2), got.Version)

	assert.ErrorIs(t, store.Save(ctx, stale), scoring.ErrConflict)

	reloaded, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, reloaded.Standings.AppliedMatchIDs)
	row, ok := reloaded.Standings.Row("A")
	require.True(t, ok)
	assert.Equal(t, 1.25, row.NetRunRate)

	_, err = store.Get(ctx, "nope")
	assert.ErrorIs(t, err, scoring.ErrNotFound)

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
