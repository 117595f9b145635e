package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	prefix   string
	teardown func()
}

// EventType names the topic a message is sent to.
type EventType string

const (
	EventMatchCompleted   EventType = "match-completed"
	EventStandingsUpdated EventType = "standings-updated"
)

// MatchCompleted is published once a match reaches a result.
type MatchCompleted struct {
	MatchID      string `msgpack:"match_id" json:"match_id"`
	TournamentID string `msgpack:"tournament_id" json:"tournament_id"`
}

// StandingsUpdated is published after a result has been applied to a table.
type StandingsUpdated struct {
	TournamentID string `msgpack:"tournament_id" json:"tournament_id"`
	MatchID      string `msgpack:"match_id" json:"match_id"`
}
