package standings

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/mauv0809/stumps/internal/scoring"
)

// Apply folds one completed match into the table and returns the re-sorted
// result. The input table is not modified.
func Apply(t Table, m *scoring.Match) (Table, error) {
	if m.Status != scoring.MatchCompleted || m.Result == nil {
		return Table{}, fmt.Errorf("%w: match %s is not completed", scoring.ErrInvalidState, m.ID)
	}
	if slices.Contains(t.AppliedMatchIDs, m.ID) {
		return Table{}, fmt.Errorf("%w: match %s is already in the table", scoring.ErrInvalidState, m.ID)
	}

	next := Table{
		Rows:            slices.Clone(t.Rows),
		AppliedMatchIDs: append(slices.Clone(t.AppliedMatchIDs), m.ID),
	}
	for _, team := range m.Teams {
		row := next.row(team)
		row.MatchesPlayed++
		for _, in := range m.Innings {
			switch team.ID {
			case in.BattingTeamID:
				row.RunsFor += in.Runs
				row.BallsFaced += ballsForRate(in, m.TotalOvers)
			case in.BowlingTeamID:
				row.RunsAgainst += in.Runs
				row.BallsBowled += ballsForRate(in, m.TotalOvers)
			}
		}

		switch m.Result.Type {
		case scoring.ResultTie:
			row.Tied++
			row.Points += PointsTie
		case scoring.ResultNoResult:
			row.NoResult++
			row.Points += PointsNoResult
		case scoring.ResultWin:
			switch team.ID {
			case m.Result.WinnerTeamID:
				row.Won++
				row.Points += PointsWin
			case m.LoserTeamID():
				row.Lost++
			}
		}
		row.NetRunRate = netRunRate(*row, m.TotalOvers)
	}
	next.sort()
	return next, nil
}

func (t *Table) row(team scoring.Team) *Standing {
	for i := range t.Rows {
		if t.Rows[i].TeamID == team.ID {
			if t.Rows[i].TeamName == "" {
				t.Rows[i].TeamName = team.Name
			}
			return &t.Rows[i]
		}
	}
	t.Rows = append(t.Rows, Standing{TeamID: team.ID, TeamName: team.Name})
	return &t.Rows[len(t.Rows)-1]
}

func (t *Table) sort() {
	slices.SortStableFunc(t.Rows, func(a, b Standing) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		if c := cmp.Compare(b.NetRunRate, a.NetRunRate); c != 0 {
			return c
		}
		return cmp.Compare(a.TeamName, b.TeamName)
	})
}

// ballsForRate is the ball count used for net run rate. A side bowled out is
// treated as having used its full allotment.
func ballsForRate(in scoring.Innings, totalOvers int) int {
	if in.Wickets >= scoring.MaxWickets {
		overs := in.OversAllotted
		if overs == 0 {
			overs = totalOvers
		}
		return overs * scoring.BallsPerOver
	}
	return in.LegalBalls
}

// netRunRate is runs-for per over faced minus runs-against per over bowled.
// Rows without ball counts fall back to matches played times the match length.
func netRunRate(r Standing, totalOvers int) float64 {
	faced, bowled := float64(r.BallsFaced), float64(r.BallsBowled)
	fallback := float64(r.MatchesPlayed * totalOvers * scoring.BallsPerOver)
	if faced == 0 {
		faced = fallback
	}
	if bowled == 0 {
		bowled = fallback
	}
	var nrr float64
	if faced > 0 {
		nrr += float64(r.RunsFor) * scoring.BallsPerOver / faced
	}
	if bowled > 0 {
		nrr -= float64(r.RunsAgainst) * scoring.BallsPerOver / bowled
	}
	return math.Round(nrr*1000) / 1000
}
