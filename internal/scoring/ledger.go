package scoring

import (
	"fmt"
	"math"
)

// batter returns the batting entry for id, appending one in batting order if
// this is the player's first appearance. The pointer is only valid until the
// next append to in.Batting.
func (in *Innings) batter(id string) *BattingEntry {
	for i := range in.Batting {
		if in.Batting[i].PlayerID == id {
			return &in.Batting[i]
		}
	}
	in.Batting = append(in.Batting, BattingEntry{PlayerID: id})
	return &in.Batting[len(in.Batting)-1]
}

func (in *Innings) findBatter(id string) (BattingEntry, bool) {
	for _, b := range in.Batting {
		if b.PlayerID == id {
			return b, true
		}
	}
	return BattingEntry{}, false
}

func (in *Innings) bowler(id string) *BowlingEntry {
	for i := range in.Bowling {
		if in.Bowling[i].PlayerID == id {
			return &in.Bowling[i]
		}
	}
	in.Bowling = append(in.Bowling, BowlingEntry{PlayerID: id})
	return &in.Bowling[len(in.Bowling)-1]
}

// Batter looks up a player's batting figures.
func (in *Innings) Batter(id string) (BattingEntry, bool) { return in.findBatter(id) }

// Bowler looks up a player's bowling figures.
func (in *Innings) Bowler(id string) (BowlingEntry, bool) {
	for _, b := range in.Bowling {
		if b.PlayerID == id {
			return b, true
		}
	}
	return BowlingEntry{}, false
}

func strikeRate(runs, balls int) float64 {
	if balls == 0 {
		return 0
	}
	return round2(float64(runs) * 100 / float64(balls))
}

// economy is runs per six legal balls.
func economy(runs, legalBalls int) float64 {
	if legalBalls == 0 {
		return 0
	}
	return round2(float64(runs) * BallsPerOver / float64(legalBalls))
}

func runRate(runs, legalBalls int) float64 { return economy(runs, legalBalls) }

func requiredRunRate(target, runs, remainingBalls int) float64 {
	if remainingBalls <= 0 || target <= 0 {
		return 0
	}
	remaining := target - runs
	if remaining < 0 {
		remaining = 0
	}
	return round2(float64(remaining) * BallsPerOver / float64(remainingBalls))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func formatOvers(legalBalls int) string {
	return fmt.Sprintf("%d.%d", legalBalls/BallsPerOver, legalBalls%BallsPerOver)
}
