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
		Recalculations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_recalculations_total",
			Help: "The total number of standings recalculation passes started.",
		}),
		RecalculationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_recalculation_failures_total",
			Help: "The total number of standings recalculation passes that failed.",
		}),
		RecalculationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "matchday_recalculation_duration_seconds",
			Help:    "The duration of a full standings recalculation pass.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		MessagesPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchday_messages_published_total",
			Help: "The total number of update messages published, by type.",
		}, []string{"type"}),
		MessagesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_messages_dropped_total",
			Help: "The total number of update messages dropped because a queue was full.",
		}),
		Viewers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "matchday_viewers",
			Help: "The number of connected websocket viewers.",
		}),
		Alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchday_alerts_total",
			Help: "The total number of match alerts emitted, by alert type.",
		}, []string{"type"}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "matchday_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.Recalculations,
		s.RecalculationFailures,
		s.RecalculationDuration,
		s.MessagesPublished,
		s.MessagesDropped,
		s.Viewers,
		s.Alerts,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncRecalculations() {
	s.Recalculations.Inc()
}

func (s *Service) IncRecalculationFailures() {
	s.RecalculationFailures.Inc()
}

func (s *Service) ObserveRecalculationDuration(duration float64) {
	s.RecalculationDuration.Observe(duration)
}

func (s *Service) IncMessagesPublished(eventType string) {
	s.MessagesPublished.WithLabelValues(eventType).Inc()
}

func (s *Service) IncMessagesDropped() {
	s.MessagesDropped.Inc()
}

func (s *Service) SetViewers(n int) {
	s.Viewers.Set(float64(n))
}

func (s *Service) IncAlerts(alertType string) {
	s.Alerts.WithLabelValues(alertType).Inc()
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
