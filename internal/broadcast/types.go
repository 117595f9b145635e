package broadcast

import "time"

// EventType names what changed.
type EventType string

const (
	EventBallRecorded     EventType = "ball-recorded"
	EventOverComplete     EventType = "over-complete"
	EventInningsEnded     EventType = "innings-ended"
	EventMatchUpdated     EventType = "match-updated"
	EventStandingsUpdated EventType = "standings-updated"
)

// TopicMatches is the global topic announcing that the match list changed.
const TopicMatches = "matches"

// MatchTopic is the per-match topic.
func MatchTopic(matchID string) string { return "match:" + matchID }

// TournamentTopic is the per-tournament topic.
func TournamentTopic(tournamentID string) string { return "tournament:" + tournamentID }

// Event is the envelope every observer receives.
type Event struct {
	Type         EventType `json:"type" msgpack:"type"`
	Topic        string    `json:"topic" msgpack:"topic"`
	MatchID      string    `json:"match_id,omitempty" msgpack:"match_id"`
	TournamentID string    `json:"tournament_id,omitempty" msgpack:"tournament_id"`
	Version      int64     `json:"version,omitempty" msgpack:"version"`
	Payload      any       `json:"payload,omitempty" msgpack:"payload"`
	At           time.Time `json:"at" msgpack:"at"`
}

// ClientMessage is what a websocket viewer may send.
type ClientMessage struct {
	Type  string `json:"type"`
	Topic string `json:"topic,omitempty"`
}
