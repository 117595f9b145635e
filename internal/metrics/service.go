package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		BallsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stumps_balls_recorded_total",
			Help: "The total number of deliveries recorded.",
		}),
		OversCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stumps_overs_completed_total",
			Help: "The total number of overs completed.",
		}),
		InningsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stumps_innings_completed_total",
			Help: "The total number of innings ended.",
		}),
		MatchesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stumps_matches_completed_total",
			Help: "The total number of matches that reached a result.",
		}),
		StandingsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stumps_standings_applied_total",
			Help: "The total number of match results folded into tournament standings.",
		}),
		ConflictRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stumps_conflict_retries_total",
			Help: "The total number of mutations retried after a version conflict.",
		}),
		BroadcastFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stumps_broadcast_failed_total",
			Help: "The total number of broadcast events that could not be delivered.",
		}),
		ProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stumps_mutation_duration_seconds",
			Help:    "The duration of individual scoring mutations.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		ConnectedViewers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stumps_connected_viewers",
			Help: "The number of websocket viewers currently connected.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stumps_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stumps_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stumps_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.BallsRecorded,
		s.OversCompleted,
		s.InningsCompleted,
		s.MatchesCompleted,
		s.StandingsApplied,
		s.ConflictRetries,
		s.BroadcastFailed,
		s.ProcessingDuration,
		s.ConnectedViewers,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncBallsRecorded()    { s.BallsRecorded.Inc() }
func (s *Service) IncOversCompleted()   { s.OversCompleted.Inc() }
func (s *Service) IncInningsCompleted() { s.InningsCompleted.Inc() }
func (s *Service) IncMatchesCompleted() { s.MatchesCompleted.Inc() }
func (s *Service) IncStandingsApplied() { s.StandingsApplied.Inc() }
func (s *Service) IncConflictRetries()  { s.ConflictRetries.Inc() }
func (s *Service) IncBroadcastFailed()  { s.BroadcastFailed.Inc() }

func (s *Service) ObserveProcessingDuration(duration float64) {
	s.ProcessingDuration.Observe(duration)
}

func (s *Service) SetConnectedViewers(n int) {
	s.ConnectedViewers.Set(float64(n))
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
