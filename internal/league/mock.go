package league

import (
	"context"
	"sync"
)

// MockStore is a mock implementation of the LeagueStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateTeamFunc         func(team *Team) error
	GetTeamFunc            func(id string) (*Team, error)
	GetAllTeamsFunc        func() ([]Team, error)
	UpdateTeamFunc         func(team *Team) error
	DeleteTeamFunc         func(id string) error
	CreatePlayerFunc       func(player *Player) error
	GetPlayerFunc          func(id string) (*Player, error)
	GetAllPlayersFunc      func() ([]Player, error)
	UpdatePlayerFunc       func(player *Player) error
	DeletePlayerFunc       func(id string) error
	SetCardCountsFunc      func(playerID string, yellow, red int) error
	CreateMatchFunc        func(match *Match) error
	GetMatchFunc           func(id string) (*Match, error)
	GetAllMatchesFunc      func() ([]Match, error)
	UpdateMatchFunc        func(match *Match) error
	DeleteMatchFunc        func(id string) error
	CreateEventFunc        func(event *MatchEvent) error
	GetAllEventsFunc       func() ([]MatchEvent, error)
	GetMatchEventsFunc     func(matchID string) ([]MatchEvent, error)
	DeleteEventFunc        func(matchID, eventID string) error
	ReplacePlayerStatsFunc func(rows []PlayerStatsRow) error
	ReplaceTeamRecordsFunc func(rows []TeamRecordRow) error
	ClearFunc              func() error

	// Call records
	CreateTeamCalls         []*Team
	DeleteTeamCalls         []string
	CreatePlayerCalls       []*Player
	CreateMatchCalls        []*Match
	UpdateMatchCalls        []*Match
	CreateEventCalls        []*MatchEvent
	ReplacePlayerStatsCalls [][]PlayerStatsRow
	ReplaceTeamRecordsCalls [][]TeamRecordRow
	SetCardCountsCalls      []struct {
		PlayerID    string
		Yellow, Red int
	}
	ClearCalls int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateTeamCalls = nil
	m.DeleteTeamCalls = nil
	m.CreatePlayerCalls = nil
	m.CreateMatchCalls = nil
	m.UpdateMatchCalls = nil
	m.CreateEventCalls = nil
	m.ReplacePlayerStatsCalls = nil
	m.ReplaceTeamRecordsCalls = nil
	m.SetCardCountsCalls = nil
	m.ClearCalls = 0
}

func (m *MockStore) CreateTeam(ctx context.Context, team *Team) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateTeamCalls = append(m.CreateTeamCalls, team)
	if m.CreateTeamFunc != nil {
		return m.CreateTeamFunc(team)
	}
	return nil
}

func (m *MockStore) GetTeam(ctx context.Context, id string) (*Team, error) {
	if m.GetTeamFunc != nil {
		return m.GetTeamFunc(id)
	}
	return nil, ErrNotFound
}

func (m *MockStore) GetAllTeams(ctx context.Context) ([]Team, error) {
	if m.GetAllTeamsFunc != nil {
		return m.GetAllTeamsFunc()
	}
	return []Team{}, nil
}

func (m *MockStore) UpdateTeam(ctx context.Context, team *Team) error {
	if m.UpdateTeamFunc != nil {
		return m.UpdateTeamFunc(team)
	}
	return nil
}

func (m *MockStore) DeleteTeam(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteTeamCalls = append(m.DeleteTeamCalls, id)
	if m.DeleteTeamFunc != nil {
		return m.DeleteTeamFunc(id)
	}
	return nil
}

func (m *MockStore) CreatePlayer(ctx context.Context, player *Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreatePlayerCalls = append(m.CreatePlayerCalls, player)
	if m.CreatePlayerFunc != nil {
		return m.CreatePlayerFunc(player)
	}
	return nil
}

func (m *MockStore) GetPlayer(ctx context.Context, id string) (*Player, error) {
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(id)
	}
	return nil, ErrNotFound
}

func (m *MockStore) GetAllPlayers(ctx context.Context) ([]Player, error) {
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return []Player{}, nil
}

func (m *MockStore) UpdatePlayer(ctx context.Context, player *Player) error {
	if m.UpdatePlayerFunc != nil {
		return m.UpdatePlayerFunc(player)
	}
	return nil
}

func (m *MockStore) DeletePlayer(ctx context.Context, id string) error {
	if m.DeletePlayerFunc != nil {
		return m.DeletePlayerFunc(id)
	}
	return nil
}

func (m *MockStore) SetCardCounts(ctx context.Context, playerID string, yellow, red int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCardCountsCalls = append(m.SetCardCountsCalls, struct {
		PlayerID    string
		Yellow, Red int
	}{playerID, yellow, red})
	if m.SetCardCountsFunc != nil {
		return m.SetCardCountsFunc(playerID, yellow, red)
	}
	return nil
}

func (m *MockStore) CreateMatch(ctx context.Context, match *Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateMatchCalls = append(m.CreateMatchCalls, match)
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(match)
	}
	return nil
}

func (m *MockStore) GetMatch(ctx context.Context, id string) (*Match, error) {
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(id)
	}
	return nil, ErrNotFound
}

func (m *MockStore) GetAllMatches(ctx context.Context) ([]Match, error) {
	if m.GetAllMatchesFunc != nil {
		return m.GetAllMatchesFunc()
	}
	return []Match{}, nil
}

func (m *MockStore) UpdateMatch(ctx context.Context, match *Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateMatchCalls = append(m.UpdateMatchCalls, match)
	if m.UpdateMatchFunc != nil {
		return m.UpdateMatchFunc(match)
	}
	return nil
}

func (m *MockStore) DeleteMatch(ctx context.Context, id string) error {
	if m.DeleteMatchFunc != nil {
		return m.DeleteMatchFunc(id)
	}
	return nil
}

func (m *MockStore) CreateEvent(ctx context.Context, event *MatchEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateEventCalls = append(m.CreateEventCalls, event)
	if m.CreateEventFunc != nil {
		return m.CreateEventFunc(event)
	}
	return nil
}

func (m *MockStore) GetAllEvents(ctx context.Context) ([]MatchEvent, error) {
	if m.GetAllEventsFunc != nil {
		return m.GetAllEventsFunc()
	}
	return []MatchEvent{}, nil
}

func (m *MockStore) GetMatchEvents(ctx context.Context, matchID string) ([]MatchEvent, error) {
	if m.GetMatchEventsFunc != nil {
		return m.GetMatchEventsFunc(matchID)
	}
	return []MatchEvent{}, nil
}

func (m *MockStore) DeleteEvent(ctx context.Context, matchID, eventID string) error {
	if m.DeleteEventFunc != nil {
		return m.DeleteEventFunc(matchID, eventID)
	}
	return nil
}

func (m *MockStore) ReplacePlayerStats(ctx context.Context, rows []PlayerStatsRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReplacePlayerStatsCalls = append(m.ReplacePlayerStatsCalls, rows)
	if m.ReplacePlayerStatsFunc != nil {
		return m.ReplacePlayerStatsFunc(rows)
	}
	return nil
}

func (m *MockStore) ReplaceTeamRecords(ctx context.Context, rows []TeamRecordRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReplaceTeamRecordsCalls = append(m.ReplaceTeamRecordsCalls, rows)
	if m.ReplaceTeamRecordsFunc != nil {
		return m.ReplaceTeamRecordsFunc(rows)
	}
	return nil
}

func (m *MockStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	if m.ClearFunc != nil {
		return m.ClearFunc()
	}
	return nil
}
