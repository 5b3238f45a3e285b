package http

import (
	"net/http"

	"github.com/mauv0809/matchday/internal/config"
	"github.com/mauv0809/matchday/internal/http/handlers"
	"github.com/mauv0809/matchday/internal/league"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/notifier"
	"github.com/mauv0809/matchday/internal/processor"
	"github.com/mauv0809/matchday/internal/pubsub"
)

// NewServer wires the routes. pubsubClient may be nil, in which case the push
// endpoint is not registered and recalculation only runs inline.
func NewServer(store league.LeagueStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, hub http.Handler, pubsubClient pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Hub:            hub,
		PubSub:         pubsubClient,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(handler, paramsMiddleware, authMiddleware)
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("POST /clear", Chain(handlers.ClearStoreHandler(s.Store, s.Processor), paramsMiddleware))
	if s.Hub != nil {
		s.Router.Handle("GET /ws", s.Hub)
	}

	s.Router.Handle("GET /teams", Chain(handlers.ListTeamsHandler(s.Store), paramsMiddleware))
	s.Router.Handle("POST /teams", Chain(handlers.CreateTeamHandler(s.Store, s.Processor), paramsMiddleware))
	s.Router.Handle("GET /teams/{id}", Chain(handlers.GetTeamHandler(s.Store), paramsMiddleware))
	s.Router.Handle("PUT /teams/{id}", Chain(handlers.UpdateTeamHandler(s.Store, s.Processor), paramsMiddleware))
	s.Router.Handle("DELETE /teams/{id}", Chain(handlers.DeleteTeamHandler(s.Store, s.Processor), paramsMiddleware))

	s.Router.Handle("GET /players", Chain(handlers.ListPlayersHandler(s.Store), paramsMiddleware))
	s.Router.Handle("POST /players", Chain(handlers.CreatePlayerHandler(s.Store, s.Processor), paramsMiddleware))
	s.Router.Handle("GET /players/{id}", Chain(handlers.GetPlayerHandler(s.Store), paramsMiddleware))
	s.Router.Handle("PUT /players/{id}", Chain(handlers.UpdatePlayerHandler(s.Store, s.Processor), paramsMiddleware))
	s.Router.Handle("DELETE /players/{id}", Chain(handlers.DeletePlayerHandler(s.Store, s.Processor), paramsMiddleware))
	s.Router.Handle("PATCH /players/{id}/cards", Chain(handlers.UpdateCardsHandler(s.Store, s.Processor), paramsMiddleware))

	s.Router.Handle("GET /matches", Chain(handlers.ListMatchesHandler(s.Store), paramsMiddleware))
	s.Router.Handle("POST /matches", Chain(handlers.CreateMatchHandler(s.Store, s.Processor), paramsMiddleware))
	s.Router.Handle("GET /matches/{id}", Chain(handlers.GetMatchHandler(s.Store), paramsMiddleware))
	s.Router.Handle("PUT /matches/{id}", Chain(handlers.UpdateMatchHandler(s.Store, s.Processor), paramsMiddleware))
	s.Router.Handle("DELETE /matches/{id}", Chain(handlers.DeleteMatchHandler(s.Store, s.Processor), paramsMiddleware))
	s.Router.Handle("GET /matches/{id}/events", Chain(handlers.ListMatchEventsHandler(s.Store), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/events", Chain(handlers.CreateMatchEventHandler(s.Store, s.Processor), paramsMiddleware))
	s.Router.Handle("DELETE /matches/{id}/events/{eventId}", Chain(handlers.DeleteMatchEventHandler(s.Store, s.Processor), paramsMiddleware))

	s.Router.Handle("GET /standings", Chain(handlers.StandingsHandler(s.Store), paramsMiddleware))
	var queue handlers.RecalculateQueue
	if s.PubSub != nil {
		queue = pubsub.NewPublisher(s.PubSub, s.Cfg.PubSub.TopicPrefix)
	}
	s.Router.Handle("POST /recalculate", Chain(handlers.RecalculateHandler(s.Processor, queue), paramsMiddleware))
	if s.PubSub != nil {
		s.Router.Handle("POST /pubsub/recalculate", Chain(handlers.PubSubRecalculateHandler(s.PubSub, s.Processor), paramsMiddleware))
	}

	verify := slackVerifyMiddleware(s.Cfg.Slack.SigningSecret)
	s.Router.Handle("POST /slack/command/standings", Chain(handlers.StandingsCommandHandler(s.Store, s.Notifier), paramsMiddleware, verify))
	s.Router.Handle("POST /slack/command/player-stats", Chain(handlers.PlayerStatsCommandHandler(s.Store, s.Notifier), paramsMiddleware, verify))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
