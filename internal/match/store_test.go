package match_test

import (
	"context"
	"testing"
	"time"

	"github.com/mauv0809/stumps/internal/database"
	"github.com/mauv0809/stumps/internal/match"
	"github.com/mauv0809/stumps/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (match.MatchStore, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	return match.New(db), teardown
}

func newMatch(t *testing.T, id, tournamentID string, createdAt time.Time) *scoring.Match {
	t.Helper()
	m, err := scoring.NewMatch(id, tournamentID,
		scoring.Team{ID: "A", Name: "Lions", Players: []scoring.Player{{ID: "a1", Name: "Ann"}}},
		scoring.Team{ID: "B", Name: "Tigers"},
		20, createdAt)
	require.NoError(t, err)
	return m
}

func TestCreateAndGet(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	created := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	m := newMatch(t, "m1", "t1", created)
	require.NoError(t, store.Create(ctx, m))
	assert.Equal(t, int64(1), m.Version)

	got, err := store.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "m1", got.ID)
	assert.Equal(t, "t1", got.TournamentID)
	assert.Equal(t, int64(1), got.Version)
	assert.Equal(t, "Lions", got.Teams[0].Name)
	assert.Equal(t, "Ann", got.Teams[0].Players[0].Name)
	assert.Equal(t, scoring.MatchUpcoming, got.Status)
	assert.True(t, created.Equal(got.CreatedAt))

	err = store.Create(ctx, newMatch(t, "m1", "", created))
	assert.ErrorIs(t, err, scoring.ErrConflict)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, scoring.ErrNotFound)
}

func TestSave_RoundTripsScoringState(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	m := newMatch(t, "m1", "", time.Now())
	require.NoError(t, store.Create(ctx, m))

	out, err := scoring.RecordBall(m, 0, scoring.BallInput{
		StrikerID: "a1", NonStrikerID: "a2", BowlerID: "b1", Runs: 4, Commentary: "Cracking drive",
	}, nil, time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, out.Match))
	assert.Equal(t, int64(2), out.Match.Version)

	got, err := store.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Version)
	assert.Equal(t, scoring.MatchLive, got.Status)
	assert.Equal(t, 4, got.Innings[0].Runs)
	require.Len(t, got.Innings[0].Overs, 1)
	assert.Equal(t, "Cracking drive", got.Innings[0].Overs[0].Balls[0].Commentary)
	batter, ok := got.Innings[0].Batter("a1")
	require.True(t, ok)
	assert.Equal(t, 1, batter.Fours)
}

func TestSave_Conflict(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	m := newMatch(t, "m1", "", time.Now())
	require.NoError(t, store.Create(ctx, m))

	first, err := store.Get(ctx, "m1")
	require.NoError(t, err)
	second, err := store.Get(ctx, "m1")
	require.NoError(t, err)

	first.TotalOvers = 10
	require.NoError(t, store.Save(ctx, first))

	second.TotalOvers = 15
	err = store.Save(ctx, second)
	assert.ErrorIs(t, err, scoring.ErrConflict)
	assert.Equal(t, int64(1), second.Version)

	got, err := store.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 10, got.TotalOvers)

	ghost := newMatch(t, "ghost", "", time.Now())
	assert.ErrorIs(t, store.Save(ctx, ghost), scoring.ErrNotFound)
}

func TestList(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.Create(ctx, newMatch(t, "m1", "t1", base)))
	require.NoError(t, store.Create(ctx, newMatch(t, "m2", "t1", base.Add(time.Hour))))
	require.NoError(t, store.Create(ctx, newMatch(t, "m3", "t2", base.Add(2*time.Hour))))

	all, err := store.List(ctx, match.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "m3", all[0].ID)

	t1, err := store.List(ctx, match.ListFilter{TournamentID: "t1"})
	require.NoError(t, err)
	require.Len(t, t1, 2)
	assert.Equal(t, "m2", t1[0].ID)

	limited, err := store.List(ctx, match.ListFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	live, err := store.List(ctx, match.ListFilter{Status: scoring.MatchLive})
	require.NoError(t, err)
	assert.Empty(t, live)
}
