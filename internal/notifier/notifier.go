package notifier

import (
	"github.com/charmbracelet/log"
	"github.com/mauv0809/matchday/internal/broadcast"
	"github.com/mauv0809/matchday/internal/league"
	"github.com/mauv0809/matchday/internal/standings"
)

// Notifier defines a high-level interface for sending notifications about league events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For things happening in a match
	SendAlert(alert broadcast.Alert, dryRun bool) error
	// For the table after a match has ended
	SendStandings(rows []standings.Row, teams []league.Team, dryRun bool) error

	// For formatting responses for slash commands
	FormatStandingsResponse(rows []standings.Row, teams []league.Team) (any, error)
	FormatPlayerStatsResponse(player league.Player, teamName string) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
}

// Disabled is used when no notification provider is configured. It only logs.
type Disabled struct{}

var _ Notifier = Disabled{}

func (Disabled) SendAlert(alert broadcast.Alert, dryRun bool) error {
	log.Debug("Notifications disabled, not sending alert", "type", alert.Type, "matchID", alert.MatchID, "message", alert.Message)
	return nil
}

func (Disabled) SendStandings(rows []standings.Row, teams []league.Team, dryRun bool) error {
	log.Debug("Notifications disabled, not sending standings", "teams", len(rows))
	return nil
}

func (Disabled) FormatStandingsResponse(rows []standings.Row, teams []league.Team) (any, error) {
	return rows, nil
}

func (Disabled) FormatPlayerStatsResponse(player league.Player, teamName string) (any, error) {
	return player, nil
}

func (Disabled) FormatPlayerNotFoundResponse(query string) (any, error) {
	return map[string]string{"error": "player not found: " + query}, nil
}

