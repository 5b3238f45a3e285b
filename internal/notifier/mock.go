package notifier

import (
	"sync"

	"github.com/mauv0809/matchday/internal/broadcast"
	"github.com/mauv0809/matchday/internal/league"
	"github.com/mauv0809/matchday/internal/standings"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendAlertFunc     func(alert broadcast.Alert, dryRun bool) error
	SendStandingsFunc func(rows []standings.Row, teams []league.Team, dryRun bool) error

	// Call records
	SendAlertCalls []struct {
		Alert  broadcast.Alert
		DryRun bool
	}
	SendStandingsCalls [][]standings.Row
	FormatCalls        []string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendAlertCalls = nil
	m.SendStandingsCalls = nil
	m.FormatCalls = nil
}

func (m *Mock) SendAlert(alert broadcast.Alert, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendAlertCalls = append(m.SendAlertCalls, struct {
		Alert  broadcast.Alert
		DryRun bool
	}{alert, dryRun})
	if m.SendAlertFunc != nil {
		return m.SendAlertFunc(alert, dryRun)
	}
	return nil
}

func (m *Mock) SendStandings(rows []standings.Row, teams []league.Team, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStandingsCalls = append(m.SendStandingsCalls, rows)
	if m.SendStandingsFunc != nil {
		return m.SendStandingsFunc(rows, teams, dryRun)
	}
	return nil
}

func (m *Mock) FormatStandingsResponse(rows []standings.Row, teams []league.Team) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatCalls = append(m.FormatCalls, "standings")
	return rows, nil
}

func (m *Mock) FormatPlayerStatsResponse(player league.Player, teamName string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatCalls = append(m.FormatCalls, "player-stats")
	return player, nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatCalls = append(m.FormatCalls, "player-not-found")
	return map[string]string{"error": "player not found: " + query}, nil
}

// Alerts returns the alerts sent so far.
func (m *Mock) Alerts() []broadcast.Alert {
	m.mu.Lock()
	defer m.mu.Unlock()
	alerts := make([]broadcast.Alert, len(m.SendAlertCalls))
	for i, c := range m.SendAlertCalls {
		alerts[i] = c.Alert
	}
	return alerts
}
