package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	Recalculations        prometheus.Counter
	RecalculationFailures prometheus.Counter
	RecalculationDuration prometheus.Histogram
	MessagesPublished     *prometheus.CounterVec
	MessagesDropped       prometheus.Counter
	Viewers               prometheus.Gauge
	Alerts                *prometheus.CounterVec
	SlackNotifSent        prometheus.Counter
	SlackNotifFailed      prometheus.Counter
	StartupTimeSeconds    prometheus.Gauge
}
