package scoring

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/mauv0809/stumps/internal/commentary"
)

// Commentator produces a line of commentary for a delivery.
type Commentator interface {
	Describe(commentary.Facts) string
}

// RecordBall applies one delivery to the innings at inningsIndex and returns
// the updated match inside the outcome. m itself is never modified.
func RecordBall(m *Match, inningsIndex int, input BallInput, c Commentator, now time.Time) (*BallOutcome, error) {
	if inningsIndex < 0 || inningsIndex >= InningsCount {
		return nil, fmt.Errorf("%w: innings %d", ErrNotFound, inningsIndex)
	}
	if err := validateBallInput(input); err != nil {
		return nil, err
	}
	switch m.Status {
	case MatchCompleted:
		return nil, fmt.Errorf("%w: match %s is completed", ErrInvalidState, m.ID)
	case MatchInningsBreak:
		return nil, fmt.Errorf("%w: match %s is at the innings break", ErrInvalidState, m.ID)
	}
	if inningsIndex != m.CurrentInnings {
		return nil, fmt.Errorf("%w: innings %d is not in progress", ErrInvalidState, inningsIndex)
	}
	cur := &m.Innings[inningsIndex]
	switch {
	case cur.Status == InningsCompleted:
		return nil, fmt.Errorf("%w: innings %d is completed", ErrInvalidState, inningsIndex)
	case cur.Wickets >= MaxWickets:
		return nil, fmt.Errorf("%w: innings %d is all out", ErrInvalidState, inningsIndex)
	case cur.LegalBalls >= m.TotalOvers*BallsPerOver:
		return nil, fmt.Errorf("%w: innings %d has used its %d overs", ErrInvalidState, inningsIndex, m.TotalOvers)
	case cur.Target > 0 && cur.Runs >= cur.Target:
		return nil, fmt.Errorf("%w: innings %d has reached its target", ErrInvalidState, inningsIndex)
	}
	for _, id := range []string{input.StrikerID, input.NonStrikerID} {
		if !m.inPlayingXI(cur.BattingTeamID, id) {
			return nil, fmt.Errorf("%w: batter %s is not in the playing XI", ErrNotFound, id)
		}
		if b, ok := cur.findBatter(id); ok && b.Out {
			return nil, fmt.Errorf("%w: batter %s is already out", ErrInvalidArgument, id)
		}
	}
	if !m.inPlayingXI(cur.BowlingTeamID, input.BowlerID) {
		return nil, fmt.Errorf("%w: bowler %s is not in the playing XI", ErrNotFound, input.BowlerID)
	}

	next := m.Clone()
	in := &next.Innings[inningsIndex]
	if in.Status == InningsUpcoming {
		in.Status = InningsLive
	}
	if next.Status == MatchUpcoming {
		next.Status = MatchLive
	}

	over := in.openOver(input.BowlerID)
	ballInOver := over.LegalBalls + 1
	legal := !input.Wide && !input.NoBall
	total, batRuns, conceded := splitRuns(input)

	in.Runs += total
	switch {
	case input.Wide:
		in.Extras.Wides += total
	case input.NoBall:
		in.Extras.NoBalls++
		if input.Bye {
			in.Extras.Byes += input.Runs
		} else if input.LegBye {
			in.Extras.LegByes += input.Runs
		}
	case input.Bye:
		in.Extras.Byes += input.Runs
	case input.LegBye:
		in.Extras.LegByes += input.Runs
	}
	in.Extras.Total = in.Extras.Wides + in.Extras.NoBalls + in.Extras.Byes + in.Extras.LegByes

	// Both batters get an entry before any pointer is taken.
	in.batter(input.StrikerID)
	in.batter(input.NonStrikerID)
	striker := in.batter(input.StrikerID)
	if !input.Wide {
		striker.Balls++
	}
	striker.Runs += batRuns
	switch batRuns {
	case 4:
		striker.Fours++
	case 6:
		striker.Sixes++
	}
	striker.StrikeRate = strikeRate(striker.Runs, striker.Balls)

	bowler := in.bowler(input.BowlerID)
	bowler.RunsConceded += conceded
	if legal {
		bowler.LegalBalls++
		in.LegalBalls++
		over.LegalBalls++
	}
	over.Runs += total
	over.RunsConceded += conceded

	dismissedID := ""
	if input.Wicket {
		dismissedID = input.DismissedID
		if dismissedID == "" {
			dismissedID = input.StrikerID
		}
		in.Wickets++
		over.Wickets++
		d := &Dismissal{Type: input.Dismissal, Fielder: input.Fielder}
		if input.Dismissal.CreditsBowler() {
			bowler.Wickets++
			d.BowlerID = input.BowlerID
		}
		out := in.batter(dismissedID)
		out.Out = true
		out.Dismissal = d
		in.FallOfWickets = append(in.FallOfWickets, FallOfWicket{
			Score:    in.Runs,
			Wicket:   in.Wickets,
			PlayerID: dismissedID,
			Overs:    formatOvers(in.LegalBalls),
		})
	}

	overComplete := legal && over.LegalBalls == BallsPerOver
	// over.Balls does not hold this delivery yet; it is input.BowlerID's.
	if overComplete && over.RunsConceded == 0 && over.bowledBy(input.BowlerID) {
		bowler.Maidens++
	}
	bowler.Economy = economy(bowler.RunsConceded, bowler.LegalBalls)

	text := strings.TrimSpace(input.Commentary)
	if text == "" && c != nil {
		text = c.Describe(commentary.Facts{
			OverNumber: over.Number,
			BallInOver: ballInOver,
			Runs:       input.Runs,
			Wide:       input.Wide,
			NoBall:     input.NoBall,
			Bye:        input.Bye,
			LegBye:     input.LegBye,
			Wicket:     input.Wicket,
			Dismissal:  string(input.Dismissal),
		})
	}

	ball := Ball{
		Sequence:     len(over.Balls) + 1,
		OverNumber:   over.Number,
		StrikerID:    input.StrikerID,
		NonStrikerID: input.NonStrikerID,
		BowlerID:     input.BowlerID,
		Runs:         input.Runs,
		TotalRuns:    total,
		Wide:         input.Wide,
		NoBall:       input.NoBall,
		Bye:          input.Bye,
		LegBye:       input.LegBye,
		Wicket:       input.Wicket,
		Legal:        legal,
		Dismissal:    input.Dismissal,
		DismissedID:  dismissedID,
		Fielder:      input.Fielder,
		Commentary:   text,
		Timestamp:    now,
	}
	over.Balls = append(over.Balls, ball)
	if overComplete {
		over.complete()
	}

	in.StrikerID, in.NonStrikerID = input.StrikerID, input.NonStrikerID
	if input.Wicket {
		if dismissedID == in.StrikerID {
			in.StrikerID = ""
		} else {
			in.NonStrikerID = ""
		}
	} else {
		if input.Runs%2 == 1 {
			in.StrikerID, in.NonStrikerID = in.NonStrikerID, in.StrikerID
		}
		if overComplete {
			in.StrikerID, in.NonStrikerID = in.NonStrikerID, in.StrikerID
		}
	}
	in.CurrentBowlerID = input.BowlerID

	in.RunRate = runRate(in.Runs, in.LegalBalls)
	if in.Target > 0 {
		in.RequiredRunRate = requiredRunRate(in.Target, in.Runs, next.TotalOvers*BallsPerOver-in.LegalBalls)
	}
	next.UpdatedAt = now

	return &BallOutcome{
		Match:            next,
		Innings:          *in,
		Over:             *over,
		Ball:             ball,
		OverComplete:     overComplete,
		ShouldEndInnings: shouldEndInnings(in, next.TotalOvers),
	}, nil
}

// splitRuns works out the team total for the delivery, the runs credited to
// the striker and the runs charged to the bowler.
func splitRuns(in BallInput) (total, bat, conceded int) {
	switch {
	case in.Wide:
		total = 1 + in.Runs
		return total, 0, total
	case in.NoBall:
		total = 1 + in.Runs
		if !in.Bye && !in.LegBye {
			bat = in.Runs
		}
		return total, bat, 1 + bat
	case in.Bye || in.LegBye:
		return in.Runs, 0, 0
	default:
		return in.Runs, in.Runs, in.Runs
	}
}

func validateBallInput(in BallInput) error {
	switch {
	case in.StrikerID == "" || in.NonStrikerID == "":
		return fmt.Errorf("%w: striker and non-striker are required", ErrInvalidArgument)
	case in.BowlerID == "":
		return fmt.Errorf("%w: bowler is required", ErrInvalidArgument)
	case in.StrikerID == in.NonStrikerID:
		return fmt.Errorf("%w: striker and non-striker must differ", ErrInvalidArgument)
	case in.Runs < 0:
		return fmt.Errorf("%w: runs must not be negative", ErrInvalidArgument)
	case in.Wide && in.NoBall:
		return fmt.Errorf("%w: a delivery cannot be both wide and no-ball", ErrInvalidArgument)
	case in.Bye && in.LegBye:
		return fmt.Errorf("%w: a delivery cannot be both bye and leg-bye", ErrInvalidArgument)
	case in.Wide && (in.Bye || in.LegBye):
		return fmt.Errorf("%w: wide runs are already extras", ErrInvalidArgument)
	}
	if in.Wicket {
		if in.Dismissal == "" {
			return fmt.Errorf("%w: wicket requires a dismissal type", ErrInvalidArgument)
		}
		if in.DismissedID != "" && in.DismissedID != in.StrikerID && in.DismissedID != in.NonStrikerID {
			return fmt.Errorf("%w: dismissed player %s is not at the crease", ErrInvalidArgument, in.DismissedID)
		}
	}
	return nil
}

// inPlayingXI is true when no XI has been named for the team or the player is
// in it.
func (m *Match) inPlayingXI(teamID, playerID string) bool {
	xi, ok := m.PlayingXI[teamID]
	if !ok {
		return true
	}
	return slices.Contains(xi, playerID)
}

func shouldEndInnings(in *Innings, totalOvers int) bool {
	return in.Wickets >= MaxWickets ||
		in.LegalBalls >= totalOvers*BallsPerOver ||
		(in.Target > 0 && in.Runs >= in.Target)
}
