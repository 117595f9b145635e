package http

import (
	"database/sql"
	"net/http"

	"github.com/mauv0809/stumps/internal/config"
	"github.com/mauv0809/stumps/internal/http/handlers"
	"github.com/mauv0809/stumps/internal/metrics"
	"github.com/mauv0809/stumps/internal/processor"
	"github.com/mauv0809/stumps/internal/pubsub"
)

// NewServer wires the routes. viewers serves the websocket endpoint; pubsub may
// be nil, in which case no push route is registered.
func NewServer(scorer processor.Scorer, metricsSvc metrics.Metrics, metricsHandler http.Handler, viewers http.Handler, cfg config.Config, db *sql.DB, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Scorer:         scorer,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Viewers:        viewers,
		Cfg:            cfg,
		DB:             db,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// Reads are open, writes need the scorer token when one is configured.
	auth := authMiddleware(s.Cfg.ScorerToken)

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(s.DB), paramsMiddleware))
	if s.Viewers != nil {
		s.Router.Handle("GET /ws", s.Viewers)
	}

	s.Router.Handle("GET /matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches", Chain(s.ScheduleMatchHandler(), paramsMiddleware, auth))
	s.Router.Handle("GET /matches/{id}", Chain(s.GetMatchHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/toss", Chain(s.RecordTossHandler(), paramsMiddleware, auth))
	s.Router.Handle("POST /matches/{id}/xi", Chain(s.SetPlayingXIHandler(), paramsMiddleware, auth))
	s.Router.Handle("POST /matches/{id}/innings/{n}/balls", Chain(s.RecordBallHandler(), paramsMiddleware, auth))
	s.Router.Handle("POST /matches/{id}/innings/{n}/end", Chain(s.EndInningsHandler(), paramsMiddleware, auth))
	s.Router.Handle("POST /matches/{id}/innings/next", Chain(s.StartNextInningsHandler(), paramsMiddleware, auth))
	s.Router.Handle("POST /matches/{id}/overs", Chain(s.ReduceOversHandler(), paramsMiddleware, auth))
	s.Router.Handle("POST /matches/{id}/abandon", Chain(s.AbandonMatchHandler(), paramsMiddleware, auth))

	s.Router.Handle("GET /tournaments", Chain(s.ListTournamentsHandler(), paramsMiddleware))
	s.Router.Handle("POST /tournaments", Chain(s.CreateTournamentHandler(), paramsMiddleware, auth))
	s.Router.Handle("GET /tournaments/{id}", Chain(s.GetTournamentHandler(), paramsMiddleware))
	s.Router.Handle("POST /tournaments/{id}/matches/{matchID}/result", Chain(s.ApplyResultHandler(), paramsMiddleware, auth))

	if secret := s.Cfg.Slack.SigningSecret; secret != "" {
		s.Router.Handle("POST /slack/command/standings", Chain(handlers.StandingsCommandHandler(s.Scorer), paramsMiddleware, slackVerifyMiddleware(secret)))
	}

	if s.pubsub != nil {
		s.Router.Handle("POST /pubsub/match-completed", Chain(handlers.MatchCompletedHandler(s.Scorer, s.pubsub), paramsMiddleware))
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
