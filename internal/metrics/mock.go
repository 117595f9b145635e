package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	ballsRecorded       int
	oversCompleted      int
	inningsCompleted    int
	matchesCompleted    int
	standingsApplied    int
	conflictRetries     int
	broadcastFailed     int
	processingDurations []float64
	connectedViewers    int
	slackNotifSent      int
	slackNotifFailed    int
	startupTime         float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		processingDurations: make([]float64, 0),
	}
}

func (m *Mock) IncBallsRecorded()    { m.inc(&m.ballsRecorded) }
func (m *Mock) IncOversCompleted()   { m.inc(&m.oversCompleted) }
func (m *Mock) IncInningsCompleted() { m.inc(&m.inningsCompleted) }
func (m *Mock) IncMatchesCompleted() { m.inc(&m.matchesCompleted) }
func (m *Mock) IncStandingsApplied() { m.inc(&m.standingsApplied) }
func (m *Mock) IncConflictRetries()  { m.inc(&m.conflictRetries) }
func (m *Mock) IncBroadcastFailed()  { m.inc(&m.broadcastFailed) }
func (m *Mock) IncSlackNotifSent()   { m.inc(&m.slackNotifSent) }
func (m *Mock) IncSlackNotifFailed() { m.inc(&m.slackNotifFailed) }

func (m *Mock) inc(counter *int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*counter++
}

func (m *Mock) get(counter *int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *counter
}

func (m *Mock) ObserveProcessingDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processingDurations = append(m.processingDurations, duration)
}

func (m *Mock) SetConnectedViewers(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectedViewers = n
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// BallsRecorded returns the number of times IncBallsRecorded was called.
func (m *Mock) BallsRecorded() int { return m.get(&m.ballsRecorded) }

// OversCompleted returns the number of times IncOversCompleted was called.
func (m *Mock) OversCompleted() int { return m.get(&m.oversCompleted) }

// InningsCompleted returns the number of times IncInningsCompleted was called.
func (m *Mock) InningsCompleted() int { return m.get(&m.inningsCompleted) }

// MatchesCompleted returns the number of times IncMatchesCompleted was called.
func (m *Mock) MatchesCompleted() int { return m.get(&m.matchesCompleted) }

// StandingsApplied returns the number of times IncStandingsApplied was called.
func (m *Mock) StandingsApplied() int { return m.get(&m.standingsApplied) }

// ConflictRetries returns the number of times IncConflictRetries was called.
func (m *Mock) ConflictRetries() int { return m.get(&m.conflictRetries) }

// BroadcastFailed returns the number of times IncBroadcastFailed was called.
func (m *Mock) BroadcastFailed() int { return m.get(&m.broadcastFailed) }

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int { return m.get(&m.slackNotifSent) }

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int { return m.get(&m.slackNotifFailed) }

// ConnectedViewers returns the last value passed to SetConnectedViewers.
func (m *Mock) ConnectedViewers() int { return m.get(&m.connectedViewers) }

// ProcessingDurations returns every observed duration.
func (m *Mock) ProcessingDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.processingDurations...)
}
