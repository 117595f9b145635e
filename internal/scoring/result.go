package scoring

import "fmt"

// computeResult compares the chase with the first innings. A revised target
// replaces the first innings total as the score to beat.
func computeResult(m *Match) *Result {
	first, second := m.Innings[0], m.Innings[1]
	par := first.Runs
	if second.Target > 0 {
		par = second.Target - 1
	}

	switch {
	case second.Runs > par:
		ballsLeft := m.TotalOvers*BallsPerOver - second.LegalBalls
		if ballsLeft < 0 {
			ballsLeft = 0
		}
		margin := fmt.Sprintf("%d wickets (%d balls remaining)", MaxWickets-second.Wickets, ballsLeft)
		return &Result{
			Type:         ResultWin,
			WinnerTeamID: second.BattingTeamID,
			Margin:       margin,
			Summary:      fmt.Sprintf("%s won by %s", m.teamName(second.BattingTeamID), margin),
		}
	case second.Runs < par:
		margin := fmt.Sprintf("%d runs", par-second.Runs)
		return &Result{
			Type:         ResultWin,
			WinnerTeamID: first.BattingTeamID,
			Margin:       margin,
			Summary:      fmt.Sprintf("%s won by %s", m.teamName(first.BattingTeamID), margin),
		}
	default:
		return &Result{Type: ResultTie, Summary: "Match tied"}
	}
}

// LoserTeamID returns the beaten side of a decided match.
func (m *Match) LoserTeamID() string {
	if m.Result == nil || m.Result.Type != ResultWin {
		return ""
	}
	if m.Teams[0].ID == m.Result.WinnerTeamID {
		return m.Teams[1].ID
	}
	return m.Teams[0].ID
}
