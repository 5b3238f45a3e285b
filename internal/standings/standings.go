// Package standings derives league tables and player statistics from the raw
// teams, players, matches and match events of a league. Every function is pure:
// the same snapshot always yields the same result.
package standings

import (
	"sort"

	"github.com/mauv0809/matchday/internal/league"
)

// Scope selects which matches contribute to a table.
type Scope string

const (
	// ScopeProvisional counts finished and live matches. The server table uses it.
	ScopeProvisional Scope = "provisional"
	// ScopeFinal counts finished matches only. Viewers use it to derive the table
	// from the match list they already hold, so a live score never moves a team.
	ScopeFinal Scope = "final"
)

// Counts reports whether a match in the given status contributes to the scope.
func (s Scope) Counts(status league.MatchStatus) bool {
	if s == ScopeFinal {
		return status == league.StatusFinished
	}
	return status == league.StatusFinished || status == league.StatusLive
}

// Row is one line of the standings projection.
type Row struct {
	TeamID       string `json:"teamId"`
	Points       int    `json:"points"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Drawn        int    `json:"drawn"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"gf"`
	GoalsAgainst int    `json:"ga"`
	GoalDiff     int    `json:"gd"`
}

// Result is the output of a full recomputation.
type Result struct {
	PlayerStats []league.PlayerStatsRow
	TeamRecords []league.TeamRecordRow
	Table       []Row
}

const (
	pointsWin       = 3
	pointsDraw      = 1
	minutesPerMatch = 90
)

// Compute runs a full recomputation over the snapshot. Player rows follow the
// snapshot's player order and team rows its team order.
func Compute(snap league.Snapshot) Result {
	rows := table(snap.Teams, snap.Matches, ScopeProvisional)

	records := make([]league.TeamRecordRow, len(rows))
	for i, r := range rows {
		records[i] = league.TeamRecordRow{
			TeamID: r.TeamID,
			TeamRecord: league.TeamRecord{
				Won:          r.Won,
				Drawn:        r.Drawn,
				Lost:         r.Lost,
				GoalsFor:     r.GoalsFor,
				GoalsAgainst: r.GoalsAgainst,
			},
		}
	}

	Sort(rows)
	return Result{
		PlayerStats: playerStats(snap.Players, snap.Matches, snap.Events),
		TeamRecords: records,
		Table:       rows,
	}
}

// Table builds the sorted standings projection for the given scope.
func Table(teams []league.Team, matches []league.Match, scope Scope) []Row {
	rows := table(teams, matches, scope)
	Sort(rows)
	return rows
}

// FinalTable is the table over finished matches only.
func FinalTable(teams []league.Team, matches []league.Match) []Row {
	return Table(teams, matches, ScopeFinal)
}

// Sort orders rows by points, then goal difference, then goals scored, all
// descending. Rows tied on all three keep their relative order.
func Sort(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].GoalDiff != rows[j].GoalDiff {
			return rows[i].GoalDiff > rows[j].GoalDiff
		}
		return rows[i].GoalsFor > rows[j].GoalsFor
	})
}

// table accumulates one unsorted row per team, in team order.
func table(teams []league.Team, matches []league.Match, scope Scope) []Row {
	rows := make([]Row, len(teams))
	index := make(map[string]int, len(teams))
	for i, t := range teams {
		rows[i] = Row{TeamID: t.ID}
		index[t.ID] = i
	}

	side := func(teamID string, own, opponent int) {
		i, ok := index[teamID]
		if !ok {
			return
		}
		r := &rows[i]
		r.Played++
		r.GoalsFor += own
		r.GoalsAgainst += opponent
		r.GoalDiff = r.GoalsFor - r.GoalsAgainst
		switch {
		case own > opponent:
			r.Won++
			r.Points += pointsWin
		case own == opponent:
			r.Drawn++
			r.Points += pointsDraw
		default:
			r.Lost++
		}
	}

	for _, m := range matches {
		if !scope.Counts(m.Status) {
			continue
		}
		side(m.HomeTeamID, m.HomeScore, m.AwayScore)
		side(m.AwayTeamID, m.AwayScore, m.HomeScore)
	}
	return rows
}

func playerStats(players []league.Player, matches []league.Match, events []league.MatchEvent) []league.PlayerStatsRow {
	rows := make([]league.PlayerStatsRow, len(players))
	index := make(map[string]int, len(players))
	byTeam := make(map[string][]int)
	for i, p := range players {
		rows[i] = league.PlayerStatsRow{PlayerID: p.ID}
		index[p.ID] = i
		if p.TeamID != "" {
			byTeam[p.TeamID] = append(byTeam[p.TeamID], i)
		}
	}

	for _, m := range matches {
		if m.Status != league.StatusFinished {
			continue
		}
		for _, i := range byTeam[m.HomeTeamID] {
			rows[i].Minutes += minutesPerMatch
		}
		if m.AwayTeamID == m.HomeTeamID {
			continue
		}
		for _, i := range byTeam[m.AwayTeamID] {
			rows[i].Minutes += minutesPerMatch
		}
	}

	for _, e := range events {
		i, ok := index[e.PlayerID]
		if !ok {
			continue
		}
		switch e.Kind {
		case league.EventGoal:
			rows[i].Goals++
		case league.EventAssist:
			rows[i].Assists++
		case league.EventYellowCard:
			rows[i].YellowCards++
		case league.EventRedCard:
			rows[i].RedCards++
		}
	}
	return rows
}
