package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/matchday/internal/broadcast"
	"github.com/mauv0809/matchday/internal/config"
	"github.com/mauv0809/matchday/internal/database"
	server "github.com/mauv0809/matchday/internal/http"
	"github.com/mauv0809/matchday/internal/league"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/notifier"
	"github.com/mauv0809/matchday/internal/notifier/slack"
	"github.com/mauv0809/matchday/internal/processor"
	"github.com/mauv0809/matchday/internal/pubsub"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	config.ConfigureLogger(cfg)

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

	store := league.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	hub := broadcast.NewHub(metricsSvc)

	publishers := []broadcast.Publisher{hub}
	var pubsubClient pubsub.PubSubClient
	if cfg.PubSub.Enabled() {
		pubsubClient = pubsub.New(cfg.PubSub.ProjectID)
		defer pubsubClient.Close()
		publishers = append(publishers, pubsub.NewPublisher(pubsubClient, cfg.PubSub.TopicPrefix))
		log.Info("Publishing league updates to Pub/Sub", "project", cfg.PubSub.ProjectID, "prefix", cfg.PubSub.TopicPrefix)
	}

	var alerts notifier.Notifier = notifier.Disabled{}
	if cfg.Slack.Enabled() {
		alerts = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		log.Info("Slack is not configured, alerts are only broadcast to viewers")
	}

	proc := processor.New(store, broadcast.NewFanout(publishers...), alerts, metricsSvc)
	hub.OnConnect(proc.CurrentState)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go hub.Run(ctx)

	// Bring the denormalized stats in line with whatever is already stored.
	proc.Refresh(ctx, "startup")

	s := server.NewServer(
		store,
		metricsSvc,
		metricsHandler,
		cfg,
		alerts,
		proc,
		hub,
		pubsubClient,
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

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Viewers are disconnected first; Shutdown does not wait for hijacked connections.
		stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
