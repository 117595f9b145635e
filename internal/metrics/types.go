package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	BallsRecorded      prometheus.Counter
	OversCompleted     prometheus.Counter
	InningsCompleted   prometheus.Counter
	MatchesCompleted   prometheus.Counter
	StandingsApplied   prometheus.Counter
	ConflictRetries    prometheus.Counter
	BroadcastFailed    prometheus.Counter
	ProcessingDuration prometheus.Histogram
	ConnectedViewers   prometheus.Gauge
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
