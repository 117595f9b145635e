package notifier

import (
	"sync"

	"github.com/mauv0809/stumps/internal/scoring"
	"github.com/mauv0809/stumps/internal/tournament"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendResultNotificationFunc    func(match *scoring.Match, dryRun bool) error
	SendStandingsNotificationFunc func(t *tournament.Tournament, dryRun bool) error

	// Call records
	SendResultNotificationCalls []struct {
		Match  *scoring.Match
		DryRun bool
	}
	SendStandingsNotificationCalls []struct {
		Tournament *tournament.Tournament
		DryRun     bool
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = nil
	m.SendStandingsNotificationCalls = nil
}

func (m *Mock) SendResultNotification(match *scoring.Match, dryRun bool) error {
	m.mu.Lock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, struct {
		Match  *scoring.Match
		DryRun bool
	}{match, dryRun})
	fn := m.SendResultNotificationFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(match, dryRun)
	}
	return nil
}

func (m *Mock) SendStandingsNotification(t *tournament.Tournament, dryRun bool) error {
	m.mu.Lock()
	m.SendStandingsNotificationCalls = append(m.SendStandingsNotificationCalls, struct {
		Tournament *tournament.Tournament
		DryRun     bool
	}{t, dryRun})
	fn := m.SendStandingsNotificationFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(t, dryRun)
	}
	return nil
}

// ResultCalls returns the number of result notifications sent.
func (m *Mock) ResultCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SendResultNotificationCalls)
}

// StandingsCalls returns the number of standings notifications sent.
func (m *Mock) StandingsCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SendStandingsNotificationCalls)
}
