package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncBallsRecorded()
	IncOversCompleted()
	IncInningsCompleted()
	IncMatchesCompleted()
	IncStandingsApplied()
	IncConflictRetries()
	IncBroadcastFailed()
	ObserveProcessingDuration(duration float64)
	SetConnectedViewers(n int)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
