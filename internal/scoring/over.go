package scoring

import (
	"fmt"
	"strconv"
	"strings"
)

// openOver returns the over that the next delivery belongs to, creating it on
// the first delivery for that over number.
func (in *Innings) openOver(bowlerID string) *Over {
	number := in.LegalBalls / BallsPerOver
	if n := len(in.Overs); n > 0 && in.Overs[n-1].Number == number {
		return &in.Overs[n-1]
	}
	in.Overs = append(in.Overs, Over{Number: number, BowlerID: bowlerID})
	return &in.Overs[len(in.Overs)-1]
}

// bowledBy reports whether every delivery recorded in the over came from
// bowlerID. An over shared between two bowlers is nobody's maiden.
func (o *Over) bowledBy(bowlerID string) bool {
	for _, b := range o.Balls {
		if b.BowlerID != bowlerID {
			return false
		}
	}
	return true
}

func (o *Over) complete() {
	o.Completed = true
	o.Maiden = o.RunsConceded == 0 && o.bowledBy(o.BowlerID)
	o.Summary = summarizeOver(o)
}

func summarizeOver(o *Over) string {
	var head string
	if o.Maiden {
		head = "Maiden over!"
	} else {
		head = fmt.Sprintf("%d runs", o.Runs)
		if o.Wickets > 0 {
			head += fmt.Sprintf(", %d wickets", o.Wickets)
		}
	}
	tokens := make([]string, 0, len(o.Balls))
	for _, b := range o.Balls {
		tokens = append(tokens, ballToken(b))
	}
	return head + " " + strings.Join(tokens, " ")
}

func ballToken(b Ball) string {
	switch {
	case b.Wicket:
		return "W"
	case b.Wide:
		return "Wd"
	case b.NoBall:
		return "Nb"
	default:
		return strconv.Itoa(b.TotalRuns)
	}
}
