package standings

import (
	"testing"

	"github.com/mauv0809/stumps/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedMatch(id string, first, second scoring.Innings, result scoring.Result) *scoring.Match {
	first.BattingTeamID, first.BowlingTeamID = "A", "B"
	second.BattingTeamID, second.BowlingTeamID = "B", "A"
	first.OversAllotted, second.OversAllotted = 20, 20
	return &scoring.Match{
		ID:         id,
		Teams:      [2]scoring.Team{{ID: "A", Name: "Lions"}, {ID: "B", Name: "Tigers"}},
		Innings:    [2]scoring.Innings{first, second},
		Status:     scoring.MatchCompleted,
		TotalOvers: 20,
		Result:     &result,
	}
}

func TestApply_DecisiveWin(t *testing.T) {
	m := completedMatch("m1",
		scoring.Innings{Runs: 180, Wickets: 6, LegalBalls: 120},
		scoring.Innings{Runs: 160, Wickets: 10, LegalBalls: 118},
		scoring.Result{Type: scoring.ResultWin, WinnerTeamID: "A", Margin: "20 runs"},
	)

	table, err := Apply(Table{}, m)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"m1"}, table.AppliedMatchIDs)

	winner := table.Rows[0]
	assert.Equal(t, "A", winner.TeamID)
	assert.Equal(t, "Lions", winner.TeamName)
	assert.Equal(t, 1, winner.MatchesPlayed)
	assert.Equal(t, 1, winner.Won)
	assert.Equal(t, 2, winner.Points)
	assert.Equal(t, 180, winner.RunsFor)
	assert.Equal(t, 160, winner.RunsAgainst)
	assert.Equal(t, 120, winner.BallsBowled, "bowling a side out charges the full allotment")
	assert.Equal(t, 1.0, winner.NetRunRate)

	loser := table.Rows[1]
	assert.Equal(t, "B", loser.TeamID)
	assert.Equal(t, 1, loser.MatchesPlayed)
	assert.Equal(t, 1, loser.Lost)
	assert.Equal(t, 0, loser.Points)
	assert.Equal(t, -1.0, loser.NetRunRate)
}

func TestApply_ChaseWinUsesBallsFaced(t *testing.T) {
	m := completedMatch("m1",
		scoring.Innings{Runs: 150, Wickets: 7, LegalBalls: 120},
		scoring.Innings{Runs: 151, Wickets: 2, LegalBalls: 90},
		scoring.Result{Type: scoring.ResultWin, WinnerTeamID: "B"},
	)
	table, err := Apply(Table{}, m)
	require.NoError(t, err)

	b, ok := table.Row("B")
	require.True(t, ok)
	assert.Equal(t, 90, b.BallsFaced)
	// 151/15 - 150/20
	assert.Equal(t, 2.567, b.NetRunRate)
	assert.Equal(t, "B", table.Rows[0].TeamID)
}

func TestApply_TieAndNoResult(t *testing.T) {
	tie := completedMatch("tie",
		scoring.Innings{Runs: 150, Wickets: 10, LegalBalls: 120},
		scoring.Innings{Runs: 150, Wickets: 8, LegalBalls: 120},
		scoring.Result{Type: scoring.ResultTie},
	)
	washout := completedMatch("nr",
		scoring.Innings{Runs: 30, Wickets: 1, LegalBalls: 24},
		scoring.Innings{},
		scoring.Result{Type: scoring.ResultNoResult},
	)

	table, err := Apply(Table{}, tie)
	require.NoError(t, err)
	table, err = Apply(table, washout)
	require.NoError(t, err)

	for _, id := range []string{"A", "B"} {
		row, ok := table.Row(id)
		require.True(t, ok)
		assert.Equal(t, 2, row.MatchesPlayed, id)
		assert.Equal(t, 1, row.Tied, id)
		assert.Equal(t, 1, row.NoResult, id)
		assert.Equal(t, 2, row.Points, id)
	}
	assert.Equal(t, []string{"tie", "nr"}, table.AppliedMatchIDs)
}

func TestApply_Rejections(t *testing.T) {
	m := completedMatch("m1",
		scoring.Innings{Runs: 100, LegalBalls: 120},
		scoring.Innings{Runs: 90, LegalBalls: 120},
		scoring.Result{Type: scoring.ResultWin, WinnerTeamID: "A"},
	)

	t.Run("incomplete match", func(t *testing.T) {
		live := *m
		live.Status = scoring.MatchLive
		live.Result = nil
		_, err := Apply(Table{}, &live)
		assert.ErrorIs(t, err, scoring.ErrInvalidState)
	})

	t.Run("applied twice", func(t *testing.T) {
		table, err := Apply(Table{}, m)
		require.NoError(t, err)
		_, err = Apply(table, m)
		assert.ErrorIs(t, err, scoring.ErrInvalidState)
	})

	t.Run("input table untouched", func(t *testing.T) {
		start := Table{Rows: []Standing{{TeamID: "A", TeamName: "Lions", Points: 4, MatchesPlayed: 2}}}
		_, err := Apply(start, m)
		require.NoError(t, err)
		assert.Equal(t, 4, start.Rows[0].Points)
		assert.Empty(t, start.AppliedMatchIDs)
	})
}

func TestApply_Ordering(t *testing.T) {
	table := Table{Rows: []Standing{
		{TeamID: "C", TeamName: "Cobras", Points: 2, MatchesPlayed: 1, NetRunRate: 0.5},
		{TeamID: "D", TeamName: "Dragons", Points: 2, MatchesPlayed: 1, NetRunRate: 0.5},
		{TeamID: "E", TeamName: "Eagles", Points: 2, MatchesPlayed: 1, NetRunRate: 1.2},
	}}
	m := completedMatch("m1",
		scoring.Innings{Runs: 200, Wickets: 3, LegalBalls: 120},
		scoring.Innings{Runs: 100, Wickets: 10, LegalBalls: 80},
		scoring.Result{Type: scoring.ResultWin, WinnerTeamID: "A"},
	)
	table, err := Apply(table, m)
	require.NoError(t, err)

	var order []string
	for _, r := range table.Rows {
		order = append(order, r.TeamID)
	}
	// A: 2 points, NRR 10 - 5 = 5. B: 0 points.
	assert.Equal(t, []string{"A", "E", "C", "D", "B"}, order)
}

func TestNetRunRate_Fallback(t *testing.T) {
	row := Standing{MatchesPlayed: 2, RunsFor: 320, RunsAgainst: 300}
	// 320/40 - 300/40
	assert.Equal(t, 0.5, netRunRate(row, 20))
	assert.Equal(t, 0.0, netRunRate(Standing{}, 20))
}
