package processor

import (
	"sync"
	"time"

	"github.com/mauv0809/stumps/internal/broadcast"
	"github.com/mauv0809/stumps/internal/match"
	"github.com/mauv0809/stumps/internal/metrics"
	"github.com/mauv0809/stumps/internal/notifier"
	"github.com/mauv0809/stumps/internal/pubsub"
	"github.com/mauv0809/stumps/internal/scoring"
	"github.com/mauv0809/stumps/internal/tournament"
)

// maxConflictRetries is how many times an operation is reapplied after a
// version conflict before the conflict is surfaced.
const maxConflictRetries = 3

// Processor serialises scoring operations per match and per tournament, persists
// the results and tells observers about them.
type Processor struct {
	matches     match.MatchStore
	tournaments tournament.TournamentStore
	publisher   broadcast.Publisher
	notifier    notifier.Notifier
	metrics     metrics.Metrics
	pubsub      pubsub.PubSubClient
	commentator scoring.Commentator

	locks        keyedMutex
	now          func() time.Time
	newID        func() string
	defaultOvers int
}

// Option customises a Processor.
type Option func(*Processor)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

// WithIDGenerator replaces the uuid generator used for new aggregates.
func WithIDGenerator(newID func() string) Option {
	return func(p *Processor) { p.newID = newID }
}

// WithDefaultOvers sets the overs used when a match is scheduled without a
// limit and outside a tournament.
func WithDefaultOvers(overs int) Option {
	return func(p *Processor) { p.defaultOvers = overs }
}

// WithPubSub sends completion events through Pub/Sub instead of handling them
// in-process.
func WithPubSub(client pubsub.PubSubClient) Option {
	return func(p *Processor) { p.pubsub = client }
}

// ScheduleMatchInput describes a new fixture. Teams inside a tournament may be
// given by id only.
type ScheduleMatchInput struct {
	TournamentID string       `json:"tournament_id,omitempty" msgpack:"tournament_id"`
	Home         scoring.Team `json:"home" msgpack:"home"`
	Away         scoring.Team `json:"away" msgpack:"away"`
	TotalOvers   int          `json:"total_overs,omitempty" msgpack:"total_overs"`
}

// CreateTournamentInput describes a new tournament.
type CreateTournamentInput struct {
	Name       string         `json:"name" msgpack:"name"`
	TotalOvers int            `json:"total_overs,omitempty" msgpack:"total_overs"`
	Teams      []scoring.Team `json:"teams" msgpack:"teams"`
}

// InningsScore is one line of a match summary.
type InningsScore struct {
	TeamID  string `json:"team_id"`
	Runs    int    `json:"runs"`
	Wickets int    `json:"wickets"`
	Overs   string `json:"overs"`
}

// MatchSummary is the compact form sent to viewers of the match list.
type MatchSummary struct {
	ID           string              `json:"id"`
	TournamentID string              `json:"tournament_id,omitempty"`
	Status       scoring.MatchStatus `json:"status"`
	Teams        [2]string           `json:"teams"`
	Scores       []InningsScore      `json:"scores"`
	Result       *scoring.Result     `json:"result,omitempty"`
}

type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}
