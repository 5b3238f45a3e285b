package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncRecalculations()
	IncRecalculationFailures()
	ObserveRecalculationDuration(duration float64)
	IncMessagesPublished(eventType string)
	IncMessagesDropped()
	SetViewers(n int)
	IncAlerts(alertType string)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
