package processor

import (
	"context"

	"github.com/mauv0809/stumps/internal/match"
	"github.com/mauv0809/stumps/internal/pubsub"
	"github.com/mauv0809/stumps/internal/scoring"
	"github.com/mauv0809/stumps/internal/tournament"
)

// Scorer is the set of operations the transport layer drives.
type Scorer interface {
	ScheduleMatch(ctx context.Context, in ScheduleMatchInput) (*scoring.Match, error)
	RecordToss(ctx context.Context, matchID string, toss scoring.Toss) (*scoring.Match, error)
	SetPlayingXI(ctx context.Context, matchID, teamID string, playerIDs []string) (*scoring.Match, error)
	RecordBall(ctx context.Context, matchID string, inningsIndex int, input scoring.BallInput) (*scoring.BallOutcome, error)
	EndInnings(ctx context.Context, matchID string, inningsIndex int) (*scoring.Match, error)
	StartNextInnings(ctx context.Context, matchID string) (*scoring.Match, error)
	ReduceOvers(ctx context.Context, matchID string, newLimit int) (*scoring.Match, error)
	AbandonMatch(ctx context.Context, matchID string) (*scoring.Match, error)
	GetMatch(ctx context.Context, matchID string) (*scoring.Match, error)
	ListMatches(ctx context.Context, filter match.ListFilter) ([]*scoring.Match, error)

	CreateTournament(ctx context.Context, in CreateTournamentInput) (*tournament.Tournament, error)
	GetTournament(ctx context.Context, tournamentID string) (*tournament.Tournament, error)
	ListTournaments(ctx context.Context) ([]*tournament.Tournament, error)
	ApplyMatchResultToStandings(ctx context.Context, tournamentID, matchID string) (*tournament.Tournament, error)
	HandleMatchCompleted(ctx context.Context, msg pubsub.MatchCompleted, dryRun bool) error
}

var _ Scorer = (*Processor)(nil)
