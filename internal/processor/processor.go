package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/stumps/internal/broadcast"
	"github.com/mauv0809/stumps/internal/match"
	"github.com/mauv0809/stumps/internal/metrics"
	"github.com/mauv0809/stumps/internal/notifier"
	"github.com/mauv0809/stumps/internal/pubsub"
	"github.com/mauv0809/stumps/internal/scoring"
	"github.com/mauv0809/stumps/internal/tournament"
)

// New creates a new Processor. publisher and commentator may be nil.
func New(matches match.MatchStore, tournaments tournament.TournamentStore, publisher broadcast.Publisher, notif notifier.Notifier, metrics metrics.Metrics, commentator scoring.Commentator, opts ...Option) *Processor {
	if notif == nil {
		notif = notifier.Nop{}
	}
	p := &Processor{
		matches:      matches,
		tournaments:  tournaments,
		publisher:    publisher,
		notifier:     notif,
		metrics:      metrics,
		commentator:  commentator,
		now:          time.Now,
		newID:        uuid.NewString,
		defaultOvers: 20,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ScheduleMatch creates an upcoming match. Inside a tournament the teams must be
// registered with it and the tournament's overs apply unless overridden.
func (p *Processor) ScheduleMatch(ctx context.Context, in ScheduleMatchInput) (*scoring.Match, error) {
	overs := in.TotalOvers
	if in.TournamentID != "" {
		t, err := p.tournaments.Get(ctx, in.TournamentID)
		if err != nil {
			return nil, err
		}
		if in.Home, err = registeredTeam(t, in.Home); err != nil {
			return nil, err
		}
		if in.Away, err = registeredTeam(t, in.Away); err != nil {
			return nil, err
		}
		if overs == 0 {
			overs = t.TotalOvers
		}
	}
	if overs == 0 {
		overs = p.defaultOvers
	}

	m, err := scoring.NewMatch(p.newID(), in.TournamentID, in.Home, in.Away, overs, p.now())
	if err != nil {
		return nil, err
	}
	if err := p.matches.Create(ctx, m); err != nil {
		log.Error("Failed to create match", "error", err, "matchID", m.ID)
		return nil, err
	}
	log.Info("Match scheduled", "matchID", m.ID, "tournamentID", m.TournamentID, "home", m.Teams[0].Name, "away", m.Teams[1].Name, "overs", m.TotalOvers)
	p.publishMatchUpdated(m)
	return m, nil
}

func registeredTeam(t *tournament.Tournament, team scoring.Team) (scoring.Team, error) {
	if len(t.Teams) == 0 {
		return team, nil
	}
	registered, ok := t.Team(team.ID)
	if !ok {
		return scoring.Team{}, fmt.Errorf("%w: team %q is not registered in tournament %s", scoring.ErrNotFound, team.ID, t.ID)
	}
	if len(team.Players) > 0 {
		registered.Players = team.Players
	}
	return registered, nil
}

func (p *Processor) RecordToss(ctx context.Context, matchID string, toss scoring.Toss) (*scoring.Match, error) {
	return p.mutateMatch(ctx, matchID, "record toss", func(cur *scoring.Match, now time.Time) (*scoring.Match, error) {
		return scoring.RecordToss(cur, toss, now)
	}, p.publishMatchUpdated)
}

func (p *Processor) SetPlayingXI(ctx context.Context, matchID, teamID string, playerIDs []string) (*scoring.Match, error) {
	return p.mutateMatch(ctx, matchID, "set playing xi", func(cur *scoring.Match, now time.Time) (*scoring.Match, error) {
		return scoring.SetPlayingXI(cur, teamID, playerIDs, now)
	}, p.publishMatchUpdated)
}

// RecordBall applies one delivery. Observers hear about it only once it is
// stored.
func (p *Processor) RecordBall(ctx context.Context, matchID string, inningsIndex int, input scoring.BallInput) (*scoring.BallOutcome, error) {
	var outcome *scoring.BallOutcome
	_, err := p.mutateMatch(ctx, matchID, "record ball", func(cur *scoring.Match, now time.Time) (*scoring.Match, error) {
		o, err := scoring.RecordBall(cur, inningsIndex, input, p.commentator, now)
		if err != nil {
			return nil, err
		}
		outcome = o
		return o.Match, nil
	}, func(m *scoring.Match) {
		outcome.Match = m
		p.metrics.IncBallsRecorded()
		log.Debug("Ball recorded", "matchID", matchID, "innings", inningsIndex, "over", outcome.Ball.OverNumber, "runs", outcome.Ball.TotalRuns, "score", fmt.Sprintf("%d/%d", outcome.Innings.Runs, outcome.Innings.Wickets))

		p.publish(broadcast.MatchTopic(m.ID), matchEvent(broadcast.EventBallRecorded, m, outcome))
		if outcome.OverComplete {
			p.metrics.IncOversCompleted()
			log.Info("Over complete", "matchID", m.ID, "over", outcome.Over.Number+1, "summary", outcome.Over.Summary)
			p.publish(broadcast.MatchTopic(m.ID), matchEvent(broadcast.EventOverComplete, m, outcome.Over))
		}
		p.publish(broadcast.TopicMatches, matchEvent(broadcast.EventMatchUpdated, m, summarize(m)))
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

func (p *Processor) EndInnings(ctx context.Context, matchID string, inningsIndex int) (*scoring.Match, error) {
	m, err := p.mutateMatch(ctx, matchID, "end innings", func(cur *scoring.Match, now time.Time) (*scoring.Match, error) {
		return scoring.EndInnings(cur, inningsIndex, now)
	}, func(m *scoring.Match) {
		p.metrics.IncInningsCompleted()
		in := m.Innings[inningsIndex]
		log.Info("Innings ended", "matchID", m.ID, "innings", inningsIndex, "score", fmt.Sprintf("%d/%d", in.Runs, in.Wickets), "overs", in.OversText())
		p.publish(broadcast.MatchTopic(m.ID), matchEvent(broadcast.EventInningsEnded, m, in))
		p.publishMatchUpdated(m)
	})
	if err != nil {
		return nil, err
	}
	if m.Status == scoring.MatchCompleted {
		p.matchCompleted(ctx, m)
	}
	return m, nil
}

func (p *Processor) StartNextInnings(ctx context.Context, matchID string) (*scoring.Match, error) {
	return p.mutateMatch(ctx, matchID, "start next innings", func(cur *scoring.Match, now time.Time) (*scoring.Match, error) {
		return scoring.StartNextInnings(cur, now)
	}, func(m *scoring.Match) {
		log.Info("Chase started", "matchID", m.ID, "target", m.Innings[m.CurrentInnings].Target)
		p.publishMatchUpdated(m)
	})
}

func (p *Processor) ReduceOvers(ctx context.Context, matchID string, newLimit int) (*scoring.Match, error) {
	return p.mutateMatch(ctx, matchID, "reduce overs", func(cur *scoring.Match, now time.Time) (*scoring.Match, error) {
		return scoring.ReduceOvers(cur, newLimit, now)
	}, func(m *scoring.Match) {
		log.Info("Overs reduced", "matchID", m.ID, "overs", m.TotalOvers, "target", m.Innings[1].Target)
		p.publishMatchUpdated(m)
	})
}

func (p *Processor) AbandonMatch(ctx context.Context, matchID string) (*scoring.Match, error) {
	m, err := p.mutateMatch(ctx, matchID, "abandon match", func(cur *scoring.Match, now time.Time) (*scoring.Match, error) {
		return scoring.AbandonMatch(cur, now)
	}, func(m *scoring.Match) {
		log.Info("Match abandoned", "matchID", m.ID)
		p.publishMatchUpdated(m)
	})
	if err != nil {
		return nil, err
	}
	p.matchCompleted(ctx, m)
	return m, nil
}

func (p *Processor) GetMatch(ctx context.Context, matchID string) (*scoring.Match, error) {
	return p.matches.Get(ctx, matchID)
}

func (p *Processor) ListMatches(ctx context.Context, filter match.ListFilter) ([]*scoring.Match, error) {
	return p.matches.List(ctx, filter)
}

// mutateMatch runs fn against the stored match under the match's lock and saves
// the result, reapplying fn on a fresh copy after a version conflict. announce
// runs before the lock is released, so events leave in commit order.
func (p *Processor) mutateMatch(ctx context.Context, matchID, op string, fn func(*scoring.Match, time.Time) (*scoring.Match, error), announce func(*scoring.Match)) (*scoring.Match, error) {
	start := time.Now()
	defer func() {
		p.metrics.ObserveProcessingDuration(time.Since(start).Seconds())
	}()

	unlock := p.locks.lock("match:" + matchID)
	defer unlock()

	var next *scoring.Match
	err := p.retryOnConflict(op, matchID, func() error {
		current, err := p.matches.Get(ctx, matchID)
		if err != nil {
			return err
		}
		next, err = fn(current, p.now())
		if err != nil {
			return err
		}
		return p.matches.Save(ctx, next)
	})
	if err != nil {
		log.Warn("Operation rejected", "op", op, "matchID", matchID, "error", err)
		return nil, err
	}
	if announce != nil {
		announce(next)
	}
	return next, nil
}

func (p *Processor) retryOnConflict(op, id string, attempt func() error) error {
	for retry := 0; ; retry++ {
		err := attempt()
		if err == nil || !errors.Is(err, scoring.ErrConflict) || retry >= maxConflictRetries {
			return err
		}
		p.metrics.IncConflictRetries()
		log.Warn("Version conflict, reapplying", "op", op, "id", id, "retry", retry+1)
	}
}

// matchCompleted hands a finished match to the completion pipeline: Pub/Sub when
// configured, otherwise in-process.
func (p *Processor) matchCompleted(ctx context.Context, m *scoring.Match) {
	p.metrics.IncMatchesCompleted()
	log.Info("Match completed", "matchID", m.ID, "result", resultSummary(m))

	msg := pubsub.MatchCompleted{MatchID: m.ID, TournamentID: m.TournamentID}
	if p.pubsub != nil {
		err := p.pubsub.SendMessage(pubsub.EventMatchCompleted, msg)
		if err == nil {
			return
		}
		log.Error("Failed to publish match completion, handling in-process", "error", err, "matchID", m.ID)
	}
	if err := p.HandleMatchCompleted(ctx, msg, false); err != nil {
		log.Error("Failed to handle match completion", "error", err, "matchID", m.ID)
	}
}

func (p *Processor) publishMatchUpdated(m *scoring.Match) {
	p.publish(broadcast.MatchTopic(m.ID), matchEvent(broadcast.EventMatchUpdated, m, m))
	p.publish(broadcast.TopicMatches, matchEvent(broadcast.EventMatchUpdated, m, summarize(m)))
}

// matchEvent stamps the stored version so viewers can discard stale snapshots.
func matchEvent(typ broadcast.EventType, m *scoring.Match, payload any) broadcast.Event {
	return broadcast.Event{
		Type:         typ,
		MatchID:      m.ID,
		TournamentID: m.TournamentID,
		Version:      m.Version,
		Payload:      payload,
	}
}

// publish never fails the caller: the state it describes is already stored.
func (p *Processor) publish(topic string, event broadcast.Event) {
	if p.publisher == nil {
		return
	}
	event.At = p.now()
	if err := p.publisher.Publish(topic, event); err != nil {
		p.metrics.IncBroadcastFailed()
		log.Error("Failed to broadcast event", "error", err, "topic", topic, "type", event.Type)
	}
}

func summarize(m *scoring.Match) MatchSummary {
	s := MatchSummary{
		ID:           m.ID,
		TournamentID: m.TournamentID,
		Status:       m.Status,
		Teams:        [2]string{m.Teams[0].Name, m.Teams[1].Name},
		Scores:       []InningsScore{},
		Result:       m.Result,
	}
	for _, in := range m.Innings {
		if in.Status == scoring.InningsUpcoming {
			continue
		}
		s.Scores = append(s.Scores, InningsScore{
			TeamID:  in.BattingTeamID,
			Runs:    in.Runs,
			Wickets: in.Wickets,
			Overs:   in.OversText(),
		})
	}
	return s
}

func resultSummary(m *scoring.Match) string {
	if m.Result == nil {
		return ""
	}
	return m.Result.Summary
}
