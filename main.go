package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/stumps/internal/broadcast"
	"github.com/mauv0809/stumps/internal/commentary"
	"github.com/mauv0809/stumps/internal/config"
	"github.com/mauv0809/stumps/internal/database"
	server "github.com/mauv0809/stumps/internal/http"
	"github.com/mauv0809/stumps/internal/match"
	"github.com/mauv0809/stumps/internal/metrics"
	"github.com/mauv0809/stumps/internal/notifier"
	"github.com/mauv0809/stumps/internal/notifier/slack"
	"github.com/mauv0809/stumps/internal/processor"
	"github.com/mauv0809/stumps/internal/pubsub"
	"github.com/mauv0809/stumps/internal/tournament"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warn("Unknown log level, keeping default", "level", cfg.LogLevel)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	matchStore := match.New(db)
	tournamentStore := tournament.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	hub := broadcast.NewHub(metricsSvc, nil)
	var publisher broadcast.Publisher = hub
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		relay := broadcast.NewRedisRelay(redisClient, cfg.Redis.Channel)
		go relay.Run(ctx, hub)
		publisher = relay
		log.Info("Broadcasting through redis", "addr", cfg.Redis.Addr, "channel", cfg.Redis.Channel)
	}

	var ps pubsub.PubSubClient
	opts := []processor.Option{processor.WithDefaultOvers(cfg.DefaultOvers)}
	if cfg.PubSub.ProjectID != "" {
		ps, err = pubsub.New(ctx, cfg.PubSub.ProjectID, cfg.PubSub.TopicPrefix)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		defer ps.Close()
		opts = append(opts, processor.WithPubSub(ps))
	}

	var notif notifier.Notifier = notifier.Nop{}
	if cfg.SlackEnabled() {
		notif = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	}

	proc := processor.New(matchStore, tournamentStore, publisher, notif, metricsSvc, commentary.New(nil), opts...)

	s := server.NewServer(
		proc,
		metricsSvc,
		metricsHandler,
		http.HandlerFunc(hub.HandleWS),
		cfg,
		db,
		ps,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Websocket connections are hijacked, so Shutdown does not wait for them.
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
