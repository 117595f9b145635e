package notifier

import (
	"github.com/mauv0809/stumps/internal/scoring"
	"github.com/mauv0809/stumps/internal/tournament"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For completed matches
	SendResultNotification(match *scoring.Match, dryRun bool) error
	// For tournament tables after a result was applied
	SendStandingsNotification(t *tournament.Tournament, dryRun bool) error
}

// Nop drops every notification. It is used when Slack is not configured.
type Nop struct{}

func (Nop) SendResultNotification(*scoring.Match, bool) error            { return nil }
func (Nop) SendStandingsNotification(*tournament.Tournament, bool) error { return nil }
