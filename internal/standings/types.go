package standings

// Points awarded per result.
const (
	PointsWin      = 2
	PointsTie      = 1
	PointsNoResult = 1
)

// Standing is one team's row in a tournament table.
type Standing struct {
	TeamID        string  `json:"team_id" msgpack:"team_id"`
	TeamName      string  `json:"team_name" msgpack:"team_name"`
	MatchesPlayed int     `json:"matches_played" msgpack:"matches_played"`
	Won           int     `json:"won" msgpack:"won"`
	Lost          int     `json:"lost" msgpack:"lost"`
	Tied          int     `json:"tied" msgpack:"tied"`
	NoResult      int     `json:"no_result" msgpack:"no_result"`
	Points        int     `json:"points" msgpack:"points"`
	RunsFor       int     `json:"runs_for" msgpack:"runs_for"`
	RunsAgainst   int     `json:"runs_against" msgpack:"runs_against"`
	BallsFaced    int     `json:"balls_faced" msgpack:"balls_faced"`
	BallsBowled   int     `json:"balls_bowled" msgpack:"balls_bowled"`
	NetRunRate    float64 `json:"net_run_rate" msgpack:"net_run_rate"`
}

// Table is the ordered points table plus the matches already folded into it.
type Table struct {
	Rows            []Standing `json:"rows" msgpack:"rows"`
	AppliedMatchIDs []string   `json:"applied_match_ids" msgpack:"applied_match_ids"`
}

// Row returns the standing for a team.
func (t Table) Row(teamID string) (Standing, bool) {
	for _, r := range t.Rows {
		if r.TeamID == teamID {
			return r, true
		}
	}
	return Standing{}, false
}
