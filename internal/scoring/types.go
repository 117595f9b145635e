package scoring

import "time"

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	MatchUpcoming     MatchStatus = "upcoming"
	MatchLive         MatchStatus = "live"
	MatchInningsBreak MatchStatus = "innings-break"
	MatchCompleted    MatchStatus = "completed"
)

// InningsStatus is the lifecycle state of a single innings.
type InningsStatus string

const (
	InningsUpcoming  InningsStatus = "upcoming"
	InningsLive      InningsStatus = "live"
	InningsCompleted InningsStatus = "completed"
)

// ResultType describes how a completed match ended.
type ResultType string

const (
	ResultWin      ResultType = "win"
	ResultTie      ResultType = "tie"
	ResultNoResult ResultType = "no-result"
)

// DismissalType for wickets.
type DismissalType string

const (
	DismissalBowled      DismissalType = "bowled"
	DismissalCaught      DismissalType = "caught"
	DismissalLBW         DismissalType = "lbw"
	DismissalRunOut      DismissalType = "run_out"
	DismissalStumped     DismissalType = "stumped"
	DismissalHitWicket   DismissalType = "hit_wicket"
	DismissalHandledBall DismissalType = "handled_ball"
	DismissalObstructing DismissalType = "obstructing_the_field"
	DismissalTimedOut    DismissalType = "timed_out"
	DismissalRetiredHurt DismissalType = "retired_hurt"
	DismissalRetiredOut  DismissalType = "retired_out"
)

// CreditsBowler reports whether the bowler is credited with the wicket.
func (d DismissalType) CreditsBowler() bool {
	switch d {
	case DismissalRunOut, DismissalHandledBall, DismissalObstructing,
		DismissalTimedOut, DismissalRetiredHurt, DismissalRetiredOut:
		return false
	}
	return true
}

// TossDecision is what the toss winner elected to do.
type TossDecision string

const (
	TossBat  TossDecision = "bat"
	TossBowl TossDecision = "bowl"
)

const (
	BallsPerOver  = 6
	MaxWickets    = 10
	PlayingXISize = 11
	InningsCount  = 2
)

type Player struct {
	ID   string `json:"id" msgpack:"id"`
	Name string `json:"name" msgpack:"name"`
}

type Team struct {
	ID      string   `json:"id" msgpack:"id"`
	Name    string   `json:"name" msgpack:"name"`
	Players []Player `json:"players,omitempty" msgpack:"players"`
}

type Toss struct {
	WinnerTeamID string       `json:"winner_team_id" msgpack:"winner_team_id"`
	Decision     TossDecision `json:"decision" msgpack:"decision"`
}

type Result struct {
	Type         ResultType `json:"result_type" msgpack:"result_type"`
	WinnerTeamID string     `json:"winner_team_id,omitempty" msgpack:"winner_team_id"`
	Margin       string     `json:"margin,omitempty" msgpack:"margin"`
	Summary      string     `json:"summary" msgpack:"summary"`
}

// Match is the aggregate the engine transforms. It is persisted as a whole.
type Match struct {
	ID             string                `json:"id" msgpack:"id"`
	TournamentID   string                `json:"tournament_id,omitempty" msgpack:"tournament_id"`
	Teams          [2]Team               `json:"teams" msgpack:"teams"`
	Innings        [InningsCount]Innings `json:"innings" msgpack:"innings"`
	Status         MatchStatus           `json:"status" msgpack:"status"`
	TotalOvers     int                   `json:"total_overs" msgpack:"total_overs"`
	Result         *Result               `json:"result" msgpack:"result"`
	CurrentInnings int                   `json:"current_innings" msgpack:"current_innings"`
	Toss           *Toss                 `json:"toss,omitempty" msgpack:"toss"`
	PlayingXI      map[string][]string   `json:"playing_xi,omitempty" msgpack:"playing_xi"`
	Version        int64                 `json:"version" msgpack:"version"`
	CreatedAt      time.Time             `json:"created_at" msgpack:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at" msgpack:"updated_at"`
}

type Extras struct {
	Wides   int `json:"wides" msgpack:"wides"`
	NoBalls int `json:"no_balls" msgpack:"no_balls"`
	Byes    int `json:"byes" msgpack:"byes"`
	LegByes int `json:"leg_byes" msgpack:"leg_byes"`
	Total   int `json:"total" msgpack:"total"`
}

type Dismissal struct {
	Type     DismissalType `json:"type" msgpack:"type"`
	BowlerID string        `json:"bowler_id,omitempty" msgpack:"bowler_id"`
	Fielder  string        `json:"fielder,omitempty" msgpack:"fielder"`
}

type BattingEntry struct {
	PlayerID   string     `json:"player_id" msgpack:"player_id"`
	Runs       int        `json:"runs" msgpack:"runs"`
	Balls      int        `json:"balls" msgpack:"balls"`
	Fours      int        `json:"fours" msgpack:"fours"`
	Sixes      int        `json:"sixes" msgpack:"sixes"`
	StrikeRate float64    `json:"strike_rate" msgpack:"strike_rate"`
	Out        bool       `json:"out" msgpack:"out"`
	Dismissal  *Dismissal `json:"dismissal,omitempty" msgpack:"dismissal"`
}

type BowlingEntry struct {
	PlayerID     string  `json:"player_id" msgpack:"player_id"`
	LegalBalls   int     `json:"legal_balls" msgpack:"legal_balls"`
	RunsConceded int     `json:"runs_conceded" msgpack:"runs_conceded"`
	Wickets      int     `json:"wickets" msgpack:"wickets"`
	Maidens      int     `json:"maidens" msgpack:"maidens"`
	Economy      float64 `json:"economy" msgpack:"economy"`
}

type FallOfWicket struct {
	Score    int    `json:"score" msgpack:"score"`
	Wicket   int    `json:"wicket" msgpack:"wicket"`
	PlayerID string `json:"player_id" msgpack:"player_id"`
	Overs    string `json:"overs" msgpack:"overs"`
}

// Innings is one team's batting turn.
type Innings struct {
	BattingTeamID   string         `json:"batting_team_id" msgpack:"batting_team_id"`
	BowlingTeamID   string         `json:"bowling_team_id" msgpack:"bowling_team_id"`
	Runs            int            `json:"runs" msgpack:"runs"`
	Wickets         int            `json:"wickets" msgpack:"wickets"`
	LegalBalls      int            `json:"legal_balls" msgpack:"legal_balls"`
	Extras          Extras         `json:"extras" msgpack:"extras"`
	Status          InningsStatus  `json:"status" msgpack:"status"`
	Target          int            `json:"target,omitempty" msgpack:"target"`
	RequiredRunRate float64        `json:"required_run_rate,omitempty" msgpack:"required_run_rate"`
	RunRate         float64        `json:"run_rate" msgpack:"run_rate"`
	OversAllotted   int            `json:"overs_allotted,omitempty" msgpack:"overs_allotted"`
	Overs           []Over         `json:"overs" msgpack:"overs"`
	Batting         []BattingEntry `json:"batting" msgpack:"batting"`
	Bowling         []BowlingEntry `json:"bowling" msgpack:"bowling"`
	FallOfWickets   []FallOfWicket `json:"fall_of_wickets" msgpack:"fall_of_wickets"`
	StrikerID       string         `json:"striker_id,omitempty" msgpack:"striker_id"`
	NonStrikerID    string         `json:"non_striker_id,omitempty" msgpack:"non_striker_id"`
	CurrentBowlerID string         `json:"current_bowler_id,omitempty" msgpack:"current_bowler_id"`
}

// OversCompleted is floor(legal balls / 6).
func (in *Innings) OversCompleted() int { return in.LegalBalls / BallsPerOver }

// OversText renders the legal ball count as "overs.balls", e.g. "18.4".
func (in *Innings) OversText() string { return formatOvers(in.LegalBalls) }

type Over struct {
	Number       int    `json:"number" msgpack:"number"`
	BowlerID     string `json:"bowler_id" msgpack:"bowler_id"`
	Balls        []Ball `json:"balls" msgpack:"balls"`
	Runs         int    `json:"runs" msgpack:"runs"`
	RunsConceded int    `json:"runs_conceded" msgpack:"runs_conceded"`
	Wickets      int    `json:"wickets" msgpack:"wickets"`
	LegalBalls   int    `json:"legal_balls" msgpack:"legal_balls"`
	Completed    bool   `json:"completed" msgpack:"completed"`
	Maiden       bool   `json:"maiden" msgpack:"maiden"`
	Summary      string `json:"summary,omitempty" msgpack:"summary"`
}

type Ball struct {
	Sequence     int           `json:"sequence" msgpack:"sequence"`
	OverNumber   int           `json:"over_number" msgpack:"over_number"`
	StrikerID    string        `json:"striker_id" msgpack:"striker_id"`
	NonStrikerID string        `json:"non_striker_id" msgpack:"non_striker_id"`
	BowlerID     string        `json:"bowler_id" msgpack:"bowler_id"`
	Runs         int           `json:"runs" msgpack:"runs"`
	TotalRuns    int           `json:"total_runs" msgpack:"total_runs"`
	Wide         bool          `json:"wide" msgpack:"wide"`
	NoBall       bool          `json:"no_ball" msgpack:"no_ball"`
	Bye          bool          `json:"bye" msgpack:"bye"`
	LegBye       bool          `json:"leg_bye" msgpack:"leg_bye"`
	Wicket       bool          `json:"wicket" msgpack:"wicket"`
	Legal        bool          `json:"legal" msgpack:"legal"`
	Dismissal    DismissalType `json:"dismissal,omitempty" msgpack:"dismissal"`
	DismissedID  string        `json:"dismissed_id,omitempty" msgpack:"dismissed_id"`
	Fielder      string        `json:"fielder,omitempty" msgpack:"fielder"`
	Commentary   string        `json:"commentary" msgpack:"commentary"`
	Timestamp    time.Time     `json:"timestamp" msgpack:"timestamp"`
}

// BallInput is what the scoring operator submits for one delivery.
type BallInput struct {
	StrikerID    string        `json:"striker_id"`
	NonStrikerID string        `json:"non_striker_id"`
	BowlerID     string        `json:"bowler_id"`
	Runs         int           `json:"runs"`
	Wide         bool          `json:"wide"`
	NoBall       bool          `json:"no_ball"`
	Bye          bool          `json:"bye"`
	LegBye       bool          `json:"leg_bye"`
	Wicket       bool          `json:"wicket"`
	Dismissal    DismissalType `json:"dismissal,omitempty"`
	DismissedID  string        `json:"dismissed_id,omitempty"`
	Fielder      string        `json:"fielder,omitempty"`
	Commentary   string        `json:"commentary,omitempty"`
}

// BallOutcome is returned by RecordBall.
type BallOutcome struct {
	Match            *Match  `json:"-"`
	Innings          Innings `json:"innings"`
	Over             Over    `json:"over"`
	Ball             Ball    `json:"ball"`
	OverComplete     bool    `json:"over_complete"`
	ShouldEndInnings bool    `json:"should_end_innings"`
}
