package processor

import (
	"context"

	"github.com/mauv0809/matchday/internal/league"
	"github.com/mauv0809/matchday/internal/notifier"
)

// Store defines the database operations required by the processor.
type Store interface {
	GetAllTeams(ctx context.Context) ([]league.Team, error)
	GetAllPlayers(ctx context.Context) ([]league.Player, error)
	GetAllMatches(ctx context.Context) ([]league.Match, error)
	GetAllEvents(ctx context.Context) ([]league.MatchEvent, error)
	ReplacePlayerStats(ctx context.Context, rows []league.PlayerStatsRow) error
	ReplaceTeamRecords(ctx context.Context, rows []league.TeamRecordRow) error
}

// Notifier is the notification surface the processor sends alerts and tables to.
type Notifier interface {
	notifier.Notifier
}
