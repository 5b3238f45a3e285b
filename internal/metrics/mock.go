package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                    sync.Mutex
	recalculations        int
	recalculationFailures int
	durations             []float64
	published             map[string]int
	dropped               int
	viewers               int
	alerts                map[string]int
	slackNotifSent        int
	slackNotifFailed      int
	startupTime           float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		durations: make([]float64, 0),
		published: make(map[string]int),
		alerts:    make(map[string]int),
	}
}

func (m *Mock) IncRecalculations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recalculations++
}

func (m *Mock) IncRecalculationFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recalculationFailures++
}

func (m *Mock) ObserveRecalculationDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations = append(m.durations, duration)
}

func (m *Mock) IncMessagesPublished(eventType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published[eventType]++
}

func (m *Mock) IncMessagesDropped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropped++
}

func (m *Mock) SetViewers(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.viewers = n
}

func (m *Mock) IncAlerts(alertType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts[alertType]++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Recalculations returns the number of times IncRecalculations was called.
func (m *Mock) Recalculations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recalculations
}

// RecalculationFailures returns the number of times IncRecalculationFailures was called.
func (m *Mock) RecalculationFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recalculationFailures
}

// Durations returns every observed recalculation duration.
func (m *Mock) Durations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.durations...)
}

// Published returns how many messages of the given type were published.
func (m *Mock) Published(eventType string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.published[eventType]
}

// Dropped returns the number of times IncMessagesDropped was called.
func (m *Mock) Dropped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dropped
}

// Viewers returns the last value passed to SetViewers.
func (m *Mock) Viewers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.viewers
}

// Alerts returns how many alerts of the given type were emitted.
func (m *Mock) Alerts(alertType string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.alerts[alertType]
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
