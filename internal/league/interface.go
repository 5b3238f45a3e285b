package league

import "context"

// LeagueStore defines the interface for interacting with the league's data.
type LeagueStore interface {
	CreateTeam(ctx context.Context, team *Team) error
	GetTeam(ctx context.Context, id string) (*Team, error)
	GetAllTeams(ctx context.Context) ([]Team, error)
	UpdateTeam(ctx context.Context, team *Team) error
	DeleteTeam(ctx context.Context, id string) error

	CreatePlayer(ctx context.Context, player *Player) error
	GetPlayer(ctx context.Context, id string) (*Player, error)
	GetAllPlayers(ctx context.Context) ([]Player, error)
	UpdatePlayer(ctx context.Context, player *Player) error
	DeletePlayer(ctx context.Context, id string) error
	SetCardCounts(ctx context.Context, playerID string, yellow, red int) error

	CreateMatch(ctx context.Context, match *Match) error
	GetMatch(ctx context.Context, id string) (*Match, error)
	GetAllMatches(ctx context.Context) ([]Match, error)
	UpdateMatch(ctx context.Context, match *Match) error
	DeleteMatch(ctx context.Context, id string) error

	CreateEvent(ctx context.Context, event *MatchEvent) error
	GetAllEvents(ctx context.Context) ([]MatchEvent, error)
	GetMatchEvents(ctx context.Context, matchID string) ([]MatchEvent, error)
	DeleteEvent(ctx context.Context, matchID, eventID string) error

	ReplacePlayerStats(ctx context.Context, rows []PlayerStatsRow) error
	ReplaceTeamRecords(ctx context.Context, rows []TeamRecordRow) error

	Clear(ctx context.Context) error
}
