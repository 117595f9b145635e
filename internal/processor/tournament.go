package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/stumps/internal/broadcast"
	"github.com/mauv0809/stumps/internal/pubsub"
	"github.com/mauv0809/stumps/internal/scoring"
	"github.com/mauv0809/stumps/internal/standings"
	"github.com/mauv0809/stumps/internal/tournament"
)

func (p *Processor) CreateTournament(ctx context.Context, in CreateTournamentInput) (*tournament.Tournament, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: tournament name is required", scoring.ErrInvalidArgument)
	}
	if in.TotalOvers < 0 {
		return nil, fmt.Errorf("%w: overs must be positive", scoring.ErrInvalidArgument)
	}
	overs := in.TotalOvers
	if overs == 0 {
		overs = p.defaultOvers
	}
	seen := make(map[string]struct{}, len(in.Teams))
	for _, team := range in.Teams {
		if team.ID == "" {
			return nil, fmt.Errorf("%w: team id is required", scoring.ErrInvalidArgument)
		}
		if _, dup := seen[team.ID]; dup {
			return nil, fmt.Errorf("%w: team %q registered twice", scoring.ErrInvalidArgument, team.ID)
		}
		seen[team.ID] = struct{}{}
	}

	now := p.now()
	t := &tournament.Tournament{
		ID:         p.newID(),
		Name:       name,
		TotalOvers: overs,
		Teams:      in.Teams,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := p.tournaments.Create(ctx, t); err != nil {
		log.Error("Failed to create tournament", "error", err, "name", name)
		return nil, err
	}
	log.Info("Tournament created", "tournamentID", t.ID, "name", t.Name, "teams", len(t.Teams))
	return t, nil
}

func (p *Processor) GetTournament(ctx context.Context, tournamentID string) (*tournament.Tournament, error) {
	return p.tournaments.Get(ctx, tournamentID)
}

func (p *Processor) ListTournaments(ctx context.Context) ([]*tournament.Tournament, error) {
	return p.tournaments.List(ctx)
}

// ApplyMatchResultToStandings folds a completed match into the tournament table.
// Applying the same match twice is rejected with scoring.ErrInvalidState.
func (p *Processor) ApplyMatchResultToStandings(ctx context.Context, tournamentID, matchID string) (*tournament.Tournament, error) {
	unlock := p.locks.lock("tournament:" + tournamentID)
	defer unlock()

	m, err := p.matches.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if m.TournamentID != "" && m.TournamentID != tournamentID {
		return nil, fmt.Errorf("%w: match %s belongs to tournament %s", scoring.ErrInvalidArgument, matchID, m.TournamentID)
	}

	var updated *tournament.Tournament
	err = p.retryOnConflict("apply result", tournamentID, func() error {
		t, err := p.tournaments.Get(ctx, tournamentID)
		if err != nil {
			return err
		}
		table, err := standings.Apply(t.Standings, m)
		if err != nil {
			return err
		}
		t.Standings = table
		t.UpdatedAt = p.now()
		if err := p.tournaments.Save(ctx, t); err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		log.Warn("Standings update rejected", "tournamentID", tournamentID, "matchID", matchID, "error", err)
		return nil, err
	}

	p.metrics.IncStandingsApplied()
	log.Info("Standings updated", "tournamentID", tournamentID, "matchID", matchID)
	p.publish(broadcast.TournamentTopic(tournamentID), broadcast.Event{
		Type:         broadcast.EventStandingsUpdated,
		MatchID:      matchID,
		TournamentID: tournamentID,
		Version:      updated.Version,
		Payload:      updated.Standings,
	})
	if p.pubsub != nil {
		if err := p.pubsub.SendMessage(pubsub.EventStandingsUpdated, pubsub.StandingsUpdated{TournamentID: tournamentID, MatchID: matchID}); err != nil {
			log.Error("Failed to publish standings update", "error", err, "tournamentID", tournamentID)
		}
	}
	return updated, nil
}

// HandleMatchCompleted applies a finished match to its tournament and sends the
// notifications. Redelivery of an already applied match is a no-op.
func (p *Processor) HandleMatchCompleted(ctx context.Context, msg pubsub.MatchCompleted, dryRun bool) error {
	m, err := p.matches.Get(ctx, msg.MatchID)
	if err != nil {
		return err
	}
	if m.Status != scoring.MatchCompleted {
		return fmt.Errorf("%w: match %s is %s", scoring.ErrInvalidState, m.ID, m.Status)
	}

	var t *tournament.Tournament
	if m.TournamentID != "" {
		t, err = p.ApplyMatchResultToStandings(ctx, m.TournamentID, m.ID)
		if errors.Is(err, scoring.ErrInvalidState) {
			log.Info("Match already applied to standings, skipping", "matchID", m.ID, "tournamentID", m.TournamentID)
			return nil
		}
		if err != nil {
			return err
		}
	}

	if err := p.notifier.SendResultNotification(m, dryRun); err != nil {
		log.Error("Failed to send result notification", "error", err, "matchID", m.ID)
	}
	if t != nil {
		if err := p.notifier.SendStandingsNotification(t, dryRun); err != nil {
			log.Error("Failed to send standings notification", "error", err, "tournamentID", t.ID)
		}
	}
	return nil
}
