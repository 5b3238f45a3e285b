package standings_test

import (
	"encoding/json"
	"testing"

	"github.com/mauv0809/matchday/internal/league"
	"github.com/mauv0809/matchday/internal/standings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teams(ids ...string) []league.Team {
	out := make([]league.Team, len(ids))
	for i, id := range ids {
		out[i] = league.Team{ID: id, Name: id}
	}
	return out
}

func match(id, home, away string, status league.MatchStatus, hs, as int) league.Match {
	return league.Match{ID: id, HomeTeamID: home, AwayTeamID: away, Status: status, HomeScore: hs, AwayScore: as}
}

func rowFor(t *testing.T, rows []standings.Row, teamID string) standings.Row {
	t.Helper()
	for _, r := range rows {
		if r.TeamID == teamID {
			return r
		}
	}
	t.Fatalf("no row for team %s", teamID)
	return standings.Row{}
}

func TestPointsLaw(t *testing.T) {
	tests := []struct {
		name       string
		home, away int
		wantHome   int
		wantAway   int
	}{
		{"home win", 3, 0, 3, 0},
		{"away win", 1, 2, 0, 3},
		{"draw", 1, 1, 1, 1},
		{"goalless draw", 0, 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := standings.Table(teams("h", "a"), []league.Match{
				match("m1", "h", "a", league.StatusFinished, tt.home, tt.away),
			}, standings.ScopeProvisional)

			home, away := rowFor(t, rows, "h"), rowFor(t, rows, "a")
			assert.Equal(t, tt.wantHome, home.Points)
			assert.Equal(t, tt.wantAway, away.Points)
			assert.Contains(t, []int{2, 3}, home.Points+away.Points)
			assert.Equal(t, 1, home.Played)
			assert.Equal(t, 1, away.Played)
			assert.Equal(t, 1, home.Won+home.Drawn+home.Lost)
		})
	}
}

func TestGoalDifferenceIdentity(t *testing.T) {
	matches := []league.Match{
		match("m1", "a", "b", league.StatusFinished, 4, 2),
		match("m2", "b", "c", league.StatusLive, 0, 3),
		match("m3", "c", "a", league.StatusFinished, 1, 1),
		match("m4", "a", "c", league.StatusScheduled, 9, 0),
	}
	for _, r := range standings.Table(teams("a", "b", "c"), matches, standings.ScopeProvisional) {
		assert.Equal(t, r.GoalsFor-r.GoalsAgainst, r.GoalDiff, r.TeamID)
	}
}

func TestSortOrdering(t *testing.T) {
	rows := []standings.Row{
		{TeamID: "A", Points: 6, GoalDiff: 2, GoalsFor: 5},
		{TeamID: "B", Points: 6, GoalDiff: 2, GoalsFor: 7},
		{TeamID: "C", Points: 6, GoalDiff: 3, GoalsFor: 1},
	}
	standings.Sort(rows)

	order := []string{rows[0].TeamID, rows[1].TeamID, rows[2].TeamID}
	assert.Equal(t, []string{"C", "B", "A"}, order)

	t.Run("full ties keep prior order", func(t *testing.T) {
		rows := []standings.Row{
			{TeamID: "x", Points: 1},
			{TeamID: "y", Points: 3},
			{TeamID: "z", Points: 1},
			{TeamID: "w", Points: 1},
		}
		standings.Sort(rows)
		assert.Equal(t, "y", rows[0].TeamID)
		assert.Equal(t, "x", rows[1].TeamID)
		assert.Equal(t, "z", rows[2].TeamID)
		assert.Equal(t, "w", rows[3].TeamID)
	})
}

func TestMinutesAccrual(t *testing.T) {
	snap := league.Snapshot{
		Teams:   teams("h", "a"),
		Players: []league.Player{{ID: "p1", TeamID: "h"}, {ID: "p2", TeamID: "a"}, {ID: "free"}},
		Matches: []league.Match{
			match("m1", "h", "a", league.StatusFinished, 2, 1),
		},
	}

	res := standings.Compute(snap)
	require.Len(t, res.PlayerStats, 3)
	assert.Equal(t, league.PlayerStatsRow{PlayerID: "p1", PlayerStats: league.PlayerStats{Minutes: 90}}, res.PlayerStats[0])
	assert.Equal(t, 90, res.PlayerStats[1].Minutes)
	assert.Equal(t, league.PlayerStats{}, res.PlayerStats[2].PlayerStats)

	t.Run("live matches do not accrue minutes", func(t *testing.T) {
		snap.Matches = append(snap.Matches, match("m2", "h", "a", league.StatusLive, 0, 0))
		res := standings.Compute(snap)
		assert.Equal(t, 90, res.PlayerStats[0].Minutes)
	})
}

func TestLiveVersusFinishedScope(t *testing.T) {
	ts := teams("h", "a")
	matches := []league.Match{match("m1", "h", "a", league.StatusLive, 1, 0)}

	provisional := standings.Table(ts, matches, standings.ScopeProvisional)
	assert.Equal(t, 3, rowFor(t, provisional, "h").Points)
	assert.Equal(t, 1, rowFor(t, provisional, "a").Played)

	final := standings.FinalTable(ts, matches)
	assert.Equal(t, 0, rowFor(t, final, "h").Points)
	assert.Equal(t, 0, rowFor(t, final, "a").Played)

	matches[0].Status = league.StatusFinished
	final = standings.FinalTable(ts, matches)
	assert.Equal(t, 3, rowFor(t, final, "h").Points)
	assert.Equal(t, 1, rowFor(t, final, "a").Played)
}

func TestOrphanEventsAreIgnored(t *testing.T) {
	snap := league.Snapshot{
		Teams:   teams("h", "a"),
		Players: []league.Player{{ID: "p1", TeamID: "h"}},
		Matches: []league.Match{match("m1", "h", "a", league.StatusLive, 1, 0)},
		Events: []league.MatchEvent{
			{ID: "e1", MatchID: "m1", Kind: league.EventGoal, PlayerID: "ghost"},
			{ID: "e2", MatchID: "m1", Kind: league.EventGoal, PlayerID: "p1"},
			{ID: "e3", MatchID: "m1", Kind: "own_goal", PlayerID: "p1"},
		},
	}

	var res standings.Result
	require.NotPanics(t, func() { res = standings.Compute(snap) })
	require.Len(t, res.PlayerStats, 1)
	assert.Equal(t, league.PlayerStats{Goals: 1}, res.PlayerStats[0].PlayerStats)
}

func TestEventCounters(t *testing.T) {
	snap := league.Snapshot{
		Players: []league.Player{{ID: "p1"}, {ID: "p2"}},
		Events: []league.MatchEvent{
			{Kind: league.EventGoal, PlayerID: "p1"},
			{Kind: league.EventGoal, PlayerID: "p1"},
			{Kind: league.EventAssist, PlayerID: "p2"},
			{Kind: league.EventYellowCard, PlayerID: "p2"},
			{Kind: league.EventRedCard, PlayerID: "p2"},
		},
	}

	res := standings.Compute(snap)
	assert.Equal(t, league.PlayerStats{Goals: 2}, res.PlayerStats[0].PlayerStats)
	assert.Equal(t, league.PlayerStats{Assists: 1, YellowCards: 1, RedCards: 1}, res.PlayerStats[1].PlayerStats)
}

func TestComputeIsIdempotent(t *testing.T) {
	snap := league.Snapshot{
		Teams:   teams("a", "b", "c"),
		Players: []league.Player{{ID: "p1", TeamID: "a"}, {ID: "p2", TeamID: "b"}},
		Matches: []league.Match{
			match("m1", "a", "b", league.StatusFinished, 2, 2),
			match("m2", "b", "c", league.StatusFinished, 1, 0),
			match("m3", "c", "a", league.StatusLive, 0, 1),
		},
		Events: []league.MatchEvent{{Kind: league.EventGoal, PlayerID: "p1"}},
	}

	first, err := json.Marshal(standings.Compute(snap))
	require.NoError(t, err)
	second, err := json.Marshal(standings.Compute(snap))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestComputeTeamRecords(t *testing.T) {
	snap := league.Snapshot{
		Teams: teams("a", "b", "c"),
		Matches: []league.Match{
			match("m1", "a", "b", league.StatusFinished, 3, 1),
			match("m2", "c", "a", league.StatusFinished, 2, 2),
			match("m3", "ghost", "b", league.StatusFinished, 5, 0),
		},
	}

	res := standings.Compute(snap)
	require.Len(t, res.TeamRecords, 3)
	assert.Equal(t, "a", res.TeamRecords[0].TeamID)
	assert.Equal(t, league.TeamRecord{Won: 1, Drawn: 1, GoalsFor: 5, GoalsAgainst: 3}, res.TeamRecords[0].TeamRecord)
	assert.Equal(t, league.TeamRecord{Lost: 2, GoalsFor: 1, GoalsAgainst: 8}, res.TeamRecords[1].TeamRecord)

	require.Len(t, res.Table, 3)
	assert.Equal(t, "a", res.Table[0].TeamID)
	assert.Equal(t, 4, res.Table[0].Points)
	assert.Equal(t, "c", res.Table[1].TeamID)
	assert.Equal(t, "b", res.Table[2].TeamID)
}

func TestStatsWireShape(t *testing.T) {
	res := standings.Compute(league.Snapshot{Players: []league.Player{{ID: "p1"}}})
	player := league.Player{ID: "p1", Stats: res.PlayerStats[0].PlayerStats}

	raw, err := json.Marshal(player)
	require.NoError(t, err)
	var decoded struct {
		Stats map[string]any `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	keys := make([]string, 0, len(decoded.Stats))
	for k := range decoded.Stats {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"goals", "assists", "yellowCards", "redCards", "minutes"}, keys)
}
