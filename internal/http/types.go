package http

import (
	"net/http"

	"github.com/mauv0809/matchday/internal/config"
	"github.com/mauv0809/matchday/internal/league"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/notifier"
	"github.com/mauv0809/matchday/internal/processor"
	"github.com/mauv0809/matchday/internal/pubsub"
)

type Server struct {
	Store          league.LeagueStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	// Hub upgrades /ws requests to viewer connections.
	Hub    http.Handler
	PubSub pubsub.PubSubClient
	Router *http.ServeMux
}
