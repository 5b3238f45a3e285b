package league

import (
	"database/sql"
	"errors"
	"sync"
)

var (
	// ErrNotFound is returned when a row with the requested id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrTeamInUse is returned when deleting a team that matches still reference.
	ErrTeamInUse = errors.New("team is referenced by matches")
)

// store handles all database operations for the league.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	StatusScheduled MatchStatus = "scheduled"
	StatusLive      MatchStatus = "live"
	StatusFinished  MatchStatus = "finished"
)

// Valid reports whether s is a known lifecycle state.
func (s MatchStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusLive, StatusFinished:
		return true
	}
	return false
}

// EventKind is the type of a match event.
type EventKind string

const (
	EventGoal       EventKind = "goal"
	EventAssist     EventKind = "assist"
	EventYellowCard EventKind = "yellow_card"
	EventRedCard    EventKind = "red_card"
)

func (k EventKind) Valid() bool {
	switch k {
	case EventGoal, EventAssist, EventYellowCard, EventRedCard:
		return true
	}
	return false
}

// DefaultMinute is used when an event is recorded without a minute marker.
const DefaultMinute = "90"

// Team is a league team with its denormalized record.
type Team struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Logo      string `json:"logo"`
	Franchise string `json:"franchise"`
	Status    string `json:"status"`
	TeamRecord
}

// TeamRecord is the part of a team written by the standings recalculation.
type TeamRecord struct {
	Won          int `json:"won"`
	Drawn        int `json:"drawn"`
	Lost         int `json:"lost"`
	GoalsFor     int `json:"goalsFor"`
	GoalsAgainst int `json:"goalsAgainst"`
}

// TeamRecordRow pairs a team id with a freshly computed record.
type TeamRecordRow struct {
	TeamID string
	TeamRecord
}

// Player is a squad member. TeamID is empty for free agents.
type Player struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	TeamID       string      `json:"teamId"`
	Position     string      `json:"position"`
	JerseyNumber int         `json:"jerseyNumber"`
	Stats        PlayerStats `json:"stats"`
}

// PlayerStats holds the cumulative statistics of a player.
type PlayerStats struct {
	Goals       int `json:"goals"`
	Assists     int `json:"assists"`
	YellowCards int `json:"yellowCards"`
	RedCards    int `json:"redCards"`
	Minutes     int `json:"minutes"`
}

// PlayerStatsRow pairs a player id with freshly computed statistics.
type PlayerStatsRow struct {
	PlayerID string
	PlayerStats
}

// Rosters lists the player ids assigned to each side of a match.
type Rosters struct {
	Home []string `json:"teamA" msgpack:"home"`
	Away []string `json:"teamB" msgpack:"away"`
}

// Match is a fixture between two teams.
type Match struct {
	ID         string
	HomeTeamID string
	AwayTeamID string
	Date       string
	Time       string
	Status     MatchStatus
	HomeScore  int
	AwayScore  int
	Rosters    Rosters
}

// Counted reports whether the match contributes to the provisional standings.
func (m Match) Counted() bool {
	return m.Status == StatusFinished || m.Status == StatusLive
}

// Involves reports whether teamID plays in the match.
func (m Match) Involves(teamID string) bool {
	return teamID != "" && (m.HomeTeamID == teamID || m.AwayTeamID == teamID)
}

// MatchEvent is a goal, assist or card recorded against a match.
type MatchEvent struct {
	ID       string    `json:"id"`
	MatchID  string    `json:"matchId"`
	Kind     EventKind `json:"type"`
	TeamID   string    `json:"teamId"`
	PlayerID string    `json:"playerId"`
	Minute   string    `json:"minute"`
}

// Snapshot is the full contents of the four league collections.
type Snapshot struct {
	Teams   []Team
	Players []Player
	Matches []Match
	Events  []MatchEvent
}
