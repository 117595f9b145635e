package http

import (
	"database/sql"
	"net/http"

	"github.com/mauv0809/stumps/internal/config"
	"github.com/mauv0809/stumps/internal/metrics"
	"github.com/mauv0809/stumps/internal/processor"
	"github.com/mauv0809/stumps/internal/pubsub"
)

type Server struct {
	Scorer         processor.Scorer
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Viewers        http.Handler
	Cfg            config.Config
	DB             *sql.DB
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}

type errorResponse struct {
	Error string `json:"error"`
}

type playingXIRequest struct {
	TeamID    string   `json:"team_id"`
	PlayerIDs []string `json:"player_ids"`
}

type reduceOversRequest struct {
	Overs int `json:"overs"`
}
