package scoring

import (
	"fmt"
	"slices"
	"time"
)

// NewMatch builds an upcoming match. Team one bats first unless a toss says
// otherwise.
func NewMatch(id, tournamentID string, home, away Team, totalOvers int, now time.Time) (*Match, error) {
	switch {
	case id == "":
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidArgument)
	case totalOvers <= 0:
		return nil, fmt.Errorf("%w: total overs must be positive", ErrInvalidArgument)
	case home.ID == "" || away.ID == "":
		return nil, fmt.Errorf("%w: both teams need an id", ErrInvalidArgument)
	case home.ID == away.ID:
		return nil, fmt.Errorf("%w: a team cannot play itself", ErrInvalidArgument)
	}
	m := &Match{
		ID:           id,
		TournamentID: tournamentID,
		Teams:        [2]Team{home, away},
		Status:       MatchUpcoming,
		TotalOvers:   totalOvers,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.setBattingOrder(home.ID, away.ID)
	return m, nil
}

func (m *Match) setBattingOrder(first, second string) {
	m.Innings[0] = newInnings(first, second)
	m.Innings[1] = newInnings(second, first)
}

func newInnings(batting, bowling string) Innings {
	return Innings{
		BattingTeamID: batting,
		BowlingTeamID: bowling,
		Status:        InningsUpcoming,
		Overs:         []Over{},
		Batting:       []BattingEntry{},
		Bowling:       []BowlingEntry{},
		FallOfWickets: []FallOfWicket{},
	}
}

// Team returns the team with the given id.
func (m *Match) Team(id string) (Team, bool) {
	for _, t := range m.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}

func (m *Match) teamName(id string) string {
	if t, ok := m.Team(id); ok && t.Name != "" {
		return t.Name
	}
	return id
}

// RecordToss stores the toss and sets the batting order from it.
func RecordToss(m *Match, toss Toss, now time.Time) (*Match, error) {
	if m.Status != MatchUpcoming {
		return nil, fmt.Errorf("%w: toss can only be recorded before play", ErrInvalidState)
	}
	if _, ok := m.Team(toss.WinnerTeamID); !ok {
		return nil, fmt.Errorf("%w: team %s is not in match %s", ErrNotFound, toss.WinnerTeamID, m.ID)
	}
	if toss.Decision != TossBat && toss.Decision != TossBowl {
		return nil, fmt.Errorf("%w: toss decision must be bat or bowl", ErrInvalidArgument)
	}
	loser := m.Teams[0].ID
	if loser == toss.WinnerTeamID {
		loser = m.Teams[1].ID
	}
	next := m.Clone()
	next.Toss = &toss
	if toss.Decision == TossBat {
		next.setBattingOrder(toss.WinnerTeamID, loser)
	} else {
		next.setBattingOrder(loser, toss.WinnerTeamID)
	}
	next.UpdatedAt = now
	return next, nil
}

// SetPlayingXI names the eleven players a team will field.
func SetPlayingXI(m *Match, teamID string, playerIDs []string, now time.Time) (*Match, error) {
	if m.Status != MatchUpcoming {
		return nil, fmt.Errorf("%w: playing XI can only be named before play", ErrInvalidState)
	}
	team, ok := m.Team(teamID)
	if !ok {
		return nil, fmt.Errorf("%w: team %s is not in match %s", ErrNotFound, teamID, m.ID)
	}
	if len(playerIDs) != PlayingXISize {
		return nil, fmt.Errorf("%w: playing XI needs %d players, got %d", ErrInvalidArgument, PlayingXISize, len(playerIDs))
	}
	seen := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		if id == "" {
			return nil, fmt.Errorf("%w: empty player id", ErrInvalidArgument)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: player %s listed twice", ErrInvalidArgument, id)
		}
		seen[id] = struct{}{}
		if len(team.Players) > 0 && !slices.ContainsFunc(team.Players, func(p Player) bool { return p.ID == id }) {
			return nil, fmt.Errorf("%w: player %s is not in the %s squad", ErrNotFound, id, team.Name)
		}
	}
	next := m.Clone()
	if next.PlayingXI == nil {
		next.PlayingXI = make(map[string][]string, 2)
	}
	next.PlayingXI[teamID] = slices.Clone(playerIDs)
	next.UpdatedAt = now
	return next, nil
}

// EndInnings closes the live innings. After the first innings the match goes
// to the break and the chase target is set; after the second the result is
// computed.
func EndInnings(m *Match, inningsIndex int, now time.Time) (*Match, error) {
	if inningsIndex < 0 || inningsIndex >= InningsCount {
		return nil, fmt.Errorf("%w: innings %d", ErrNotFound, inningsIndex)
	}
	if m.Status == MatchCompleted {
		return nil, fmt.Errorf("%w: match %s is completed", ErrInvalidState, m.ID)
	}
	if inningsIndex != m.CurrentInnings || m.Innings[inningsIndex].Status != InningsLive {
		return nil, fmt.Errorf("%w: innings %d is not live", ErrInvalidState, inningsIndex)
	}

	next := m.Clone()
	in := &next.Innings[inningsIndex]
	in.Status = InningsCompleted
	in.OversAllotted = next.TotalOvers
	if inningsIndex+1 < InningsCount {
		chase := &next.Innings[inningsIndex+1]
		chase.Target = in.Runs + 1
		next.CurrentInnings = inningsIndex + 1
		next.Status = MatchInningsBreak
	} else {
		in.RequiredRunRate = 0
		next.Status = MatchCompleted
		next.Result = computeResult(next)
	}
	next.UpdatedAt = now
	return next, nil
}

// StartNextInnings moves a match out of the innings break.
func StartNextInnings(m *Match, now time.Time) (*Match, error) {
	if m.Status != MatchInningsBreak {
		return nil, fmt.Errorf("%w: match %s is not at the innings break", ErrInvalidState, m.ID)
	}
	next := m.Clone()
	in := &next.Innings[next.CurrentInnings]
	in.Status = InningsLive
	in.RequiredRunRate = requiredRunRate(in.Target, in.Runs, next.TotalOvers*BallsPerOver-in.LegalBalls)
	next.Status = MatchLive
	next.UpdatedAt = now
	return next, nil
}

// ReduceOvers shortens the match. When the first innings is already complete
// the chase target is scaled to the new limit:
// floor(firstRuns * newLimit / firstOvers) + 1.
func ReduceOvers(m *Match, newLimit int, now time.Time) (*Match, error) {
	if m.Status == MatchCompleted {
		return nil, fmt.Errorf("%w: match %s is completed", ErrInvalidState, m.ID)
	}
	if newLimit <= 0 || newLimit >= m.TotalOvers {
		return nil, fmt.Errorf("%w: new limit %d must be between 1 and %d", ErrInvalidArgument, newLimit, m.TotalOvers-1)
	}
	if cur := m.Innings[m.CurrentInnings]; newLimit*BallsPerOver <= cur.LegalBalls {
		return nil, fmt.Errorf("%w: %d overs have already been bowled", ErrInvalidArgument, cur.OversCompleted())
	}

	next := m.Clone()
	next.TotalOvers = newLimit
	first := next.Innings[0]
	if first.Status == InningsCompleted {
		allotted := first.OversAllotted
		if allotted == 0 {
			allotted = m.TotalOvers
		}
		chase := &next.Innings[1]
		if newLimit < allotted {
			chase.Target = first.Runs*newLimit/allotted + 1
		}
		if chase.Status == InningsLive {
			chase.RequiredRunRate = requiredRunRate(chase.Target, chase.Runs, newLimit*BallsPerOver-chase.LegalBalls)
		}
	}
	next.UpdatedAt = now
	return next, nil
}

// AbandonMatch ends a match without a result.
func AbandonMatch(m *Match, now time.Time) (*Match, error) {
	if m.Status == MatchCompleted {
		return nil, fmt.Errorf("%w: match %s is completed", ErrInvalidState, m.ID)
	}
	next := m.Clone()
	for i := range next.Innings {
		if next.Innings[i].Status == InningsLive {
			next.Innings[i].Status = InningsCompleted
			next.Innings[i].OversAllotted = next.TotalOvers
		}
	}
	next.Status = MatchCompleted
	next.Result = &Result{Type: ResultNoResult, Summary: "No result"}
	next.UpdatedAt = now
	return next, nil
}
