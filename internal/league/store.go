package league

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// New creates a new LeagueStore.
func New(db *sql.DB) LeagueStore {
	return &store{
		db: db,
	}
}

// --- Teams ---

// CreateTeam inserts a team. An id is generated when the team has none.
func (s *store) CreateTeam(ctx context.Context, team *Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if team.ID == "" {
		team.ID = uuid.New().String()
	}
	if team.Status == "" {
		team.Status = "active"
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO teams (id, name, logo, franchise, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, team.ID, team.Name, team.Logo, team.Franchise, team.Status, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	log.Info("Created team", "teamID", team.ID, "name", team.Name)
	return nil
}

const selectTeams = `
	SELECT t.id, t.name, t.logo, t.franchise, t.status,
		COALESCE(r.won, 0), COALESCE(r.drawn, 0), COALESCE(r.lost, 0),
		COALESCE(r.goals_for, 0), COALESCE(r.goals_against, 0)
	FROM teams t
	LEFT JOIN team_records r ON r.team_id = t.id
`

func scanTeam(scanner interface{ Scan(...any) error }) (Team, error) {
	var t Team
	err := scanner.Scan(&t.ID, &t.Name, &t.Logo, &t.Franchise, &t.Status,
		&t.Won, &t.Drawn, &t.Lost, &t.GoalsFor, &t.GoalsAgainst)
	return t, err
}

func (s *store) GetTeam(ctx context.Context, id string) (*Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	team, err := scanTeam(s.db.QueryRowContext(ctx, selectTeams+" WHERE t.id = ?", id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return &team, nil
}

// GetAllTeams returns every team in creation order.
func (s *store) GetAllTeams(ctx context.Context) ([]Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, selectTeams+" ORDER BY t.created_at, t.rowid")
	if err != nil {
		log.Error("Failed to query all teams", "error", err)
		return nil, err
	}
	defer rows.Close()

	teams := []Team{}
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

// UpdateTeam overwrites the descriptive fields of a team. The record is owned by
// the standings recalculation and is left untouched.
func (s *store) UpdateTeam(ctx context.Context, team *Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE teams SET name = ?, logo = ?, franchise = ?, status = ? WHERE id = ?
	`, team.Name, team.Logo, team.Franchise, team.Status, team.ID)
	if err != nil {
		return fmt.Errorf("failed to update team: %w", err)
	}
	return expectAffected(res, "team", team.ID)
}

// DeleteTeam removes a team. Its players become free agents. Teams that still
// appear in a match cannot be deleted.
func (s *store) DeleteTeam(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var inUse bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM matches WHERE home_team_id = ? OR away_team_id = ?)", id, id,
	).Scan(&inUse)
	if err != nil {
		return fmt.Errorf("failed to check team usage: %w", err)
	}
	if inUse {
		return fmt.Errorf("team %s: %w", id, ErrTeamInUse)
	}

	return s.deleteWithChildren(ctx, "team", id, []string{
		"UPDATE players SET team_id = NULL WHERE team_id = ?",
		"DELETE FROM team_records WHERE team_id = ?",
	}, "DELETE FROM teams WHERE id = ?")
}

// --- Players ---

func (s *store) CreatePlayer(ctx context.Context, player *Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if player.ID == "" {
		player.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO players (id, name, team_id, position, jersey_number, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, player.ID, player.Name, nullString(player.TeamID), player.Position, player.JerseyNumber, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	log.Info("Created player", "playerID", player.ID, "name", player.Name, "teamID", player.TeamID)
	return nil
}

const selectPlayers = `
	SELECT p.id, p.name, p.team_id, p.position, p.jersey_number,
		COALESCE(ps.goals, 0), COALESCE(ps.assists, 0),
		COALESCE(ps.yellow_cards, 0), COALESCE(ps.red_cards, 0),
		COALESCE(ps.minutes_played, 0)
	FROM players p
	LEFT JOIN player_stats ps ON ps.player_id = p.id
`

func scanPlayer(scanner interface{ Scan(...any) error }) (Player, error) {
	var p Player
	var teamID sql.NullString
	err := scanner.Scan(&p.ID, &p.Name, &teamID, &p.Position, &p.JerseyNumber,
		&p.Stats.Goals, &p.Stats.Assists, &p.Stats.YellowCards, &p.Stats.RedCards, &p.Stats.Minutes)
	p.TeamID = teamID.String
	return p, err
}

func (s *store) GetPlayer(ctx context.Context, id string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, err := scanPlayer(s.db.QueryRowContext(ctx, selectPlayers+" WHERE p.id = ?", id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &player, nil
}

// GetAllPlayers returns every player with their stored statistics, in creation order.
func (s *store) GetAllPlayers(ctx context.Context) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, selectPlayers+" ORDER BY p.created_at, p.rowid")
	if err != nil {
		log.Error("Failed to query all players", "error", err)
		return nil, err
	}
	defer rows.Close()

	players := []Player{}
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

func (s *store) UpdatePlayer(ctx context.Context, player *Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE players SET name = ?, team_id = ?, position = ?, jersey_number = ? WHERE id = ?
	`, player.Name, nullString(player.TeamID), player.Position, player.JerseyNumber, player.ID)
	if err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}
	return expectAffected(res, "player", player.ID)
}

func (s *store) DeletePlayer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleteWithChildren(ctx, "player", id, []string{
		"DELETE FROM player_stats WHERE player_id = ?",
	}, "DELETE FROM players WHERE id = ?")
}

// SetCardCounts overwrites a player's card counters directly, bypassing match
// events. The next standings recalculation recomputes them from events.
func (s *store) SetCardCounts(ctx context.Context, playerID string, yellow, red int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists bool
	if err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM players WHERE id = ?)", playerID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check player: %w", err)
	}
	if !exists {
		return fmt.Errorf("player %s: %w", playerID, ErrNotFound)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO player_stats (player_id, yellow_cards, red_cards) VALUES (?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			yellow_cards = excluded.yellow_cards,
			red_cards = excluded.red_cards;
	`, playerID, yellow, red)
	if err != nil {
		return fmt.Errorf("failed to set card counts: %w", err)
	}
	log.Info("Card counts edited manually", "playerID", playerID, "yellow", yellow, "red", red)
	return nil
}

// --- Matches ---

func (s *store) CreateMatch(ctx context.Context, match *Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if match.ID == "" {
		match.ID = uuid.New().String()
	}
	if match.Status == "" {
		match.Status = StatusScheduled
	}
	rosters, err := encodeRosters(match.Rosters)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO matches (id, home_team_id, away_team_id, match_date, match_time, status, home_score, away_score, rosters_blob, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, match.ID, match.HomeTeamID, match.AwayTeamID, match.Date, match.Time, match.Status,
		match.HomeScore, match.AwayScore, rosters, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}
	log.Info("Created match", "matchID", match.ID, "home", match.HomeTeamID, "away", match.AwayTeamID)
	return nil
}

const selectMatches = `
	SELECT id, home_team_id, away_team_id, match_date, match_time, status, home_score, away_score, rosters_blob
	FROM matches
`

// scanMatch is a helper function to scan a single match row.
func scanMatch(scanner interface{ Scan(...any) error }) (Match, error) {
	var m Match
	var rosters []byte
	err := scanner.Scan(&m.ID, &m.HomeTeamID, &m.AwayTeamID, &m.Date, &m.Time, &m.Status,
		&m.HomeScore, &m.AwayScore, &rosters)
	if err != nil {
		return m, err
	}
	if len(rosters) > 0 {
		if err := msgpack.Unmarshal(rosters, &m.Rosters); err != nil {
			log.Error("Failed to unmarshal rosters_blob", "error", err, "matchID", m.ID)
		}
	}
	return m, nil
}

func (s *store) GetMatch(ctx context.Context, id string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	match, err := scanMatch(s.db.QueryRowContext(ctx, selectMatches+" WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("match %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return &match, nil
}

// GetAllMatches retrieves all matches in creation order.
func (s *store) GetAllMatches(ctx context.Context) ([]Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, selectMatches+" ORDER BY created_at, rowid")
	if err != nil {
		log.Error("Failed to query all matches", "error", err)
		return nil, err
	}
	defer rows.Close()

	matches := []Match{}
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func (s *store) UpdateMatch(ctx context.Context, match *Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rosters, err := encodeRosters(match.Rosters)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE matches SET
			home_team_id = ?, away_team_id = ?, match_date = ?, match_time = ?,
			status = ?, home_score = ?, away_score = ?, rosters_blob = ?
		WHERE id = ?
	`, match.HomeTeamID, match.AwayTeamID, match.Date, match.Time, match.Status,
		match.HomeScore, match.AwayScore, rosters, match.ID)
	if err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}
	return expectAffected(res, "match", match.ID)
}

// DeleteMatch removes a match together with its events.
func (s *store) DeleteMatch(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleteWithChildren(ctx, "match", id, []string{
		"DELETE FROM match_events WHERE match_id = ?",
	}, "DELETE FROM matches WHERE id = ?")
}

// --- Events ---

func (s *store) CreateEvent(ctx context.Context, event *MatchEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Minute == "" {
		event.Minute = DefaultMinute
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO match_events (id, match_id, kind, team_id, player_id, minute, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, event.ID, event.MatchID, event.Kind, event.TeamID, event.PlayerID, event.Minute, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to create match event: %w", err)
	}
	log.Info("Recorded match event", "eventID", event.ID, "matchID", event.MatchID, "kind", event.Kind, "playerID", event.PlayerID)
	return nil
}

func (s *store) queryEvents(ctx context.Context, query string, args ...any) ([]MatchEvent, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []MatchEvent{}
	for rows.Next() {
		var e MatchEvent
		if err := rows.Scan(&e.ID, &e.MatchID, &e.Kind, &e.TeamID, &e.PlayerID, &e.Minute); err != nil {
			return nil, fmt.Errorf("failed to scan match event row: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *store) GetAllEvents(ctx context.Context) ([]MatchEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryEvents(ctx, `
		SELECT id, match_id, kind, team_id, player_id, minute
		FROM match_events ORDER BY created_at, rowid
	`)
}

func (s *store) GetMatchEvents(ctx context.Context, matchID string) ([]MatchEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryEvents(ctx, `
		SELECT id, match_id, kind, team_id, player_id, minute
		FROM match_events WHERE match_id = ? ORDER BY created_at, rowid
	`, matchID)
}

func (s *store) DeleteEvent(ctx context.Context, matchID, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM match_events WHERE id = ? AND match_id = ?", eventID, matchID)
	if err != nil {
		return fmt.Errorf("failed to delete match event: %w", err)
	}
	return expectAffected(res, "match event", eventID)
}

// --- Derived statistics ---

// ReplacePlayerStats overwrites the statistics of every listed player in one
// transaction. Rows for players deleted since the snapshot was read are skipped.
func (s *store) ReplacePlayerStats(ctx context.Context, rows []PlayerStatsRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin player stats transaction: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO player_stats (player_id, goals, assists, yellow_cards, red_cards, minutes_played)
		SELECT ?, ?, ?, ?, ?, ? WHERE EXISTS (SELECT 1 FROM players WHERE id = ?)
		ON CONFLICT(player_id) DO UPDATE SET
			goals = excluded.goals,
			assists = excluded.assists,
			yellow_cards = excluded.yellow_cards,
			red_cards = excluded.red_cards,
			minutes_played = excluded.minutes_played;
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare player_stats statement: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err := stmt.ExecContext(ctx, row.PlayerID, row.Goals, row.Assists, row.YellowCards, row.RedCards, row.Minutes, row.PlayerID)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to write stats for player %s: %w", row.PlayerID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit player_stats transaction: %w", err)
	}
	log.Debug("Replaced player stats", "count", len(rows))
	return nil
}

// ReplaceTeamRecords overwrites the record of every listed team in one transaction.
func (s *store) ReplaceTeamRecords(ctx context.Context, rows []TeamRecordRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin team records transaction: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO team_records (team_id, won, drawn, lost, goals_for, goals_against)
		SELECT ?, ?, ?, ?, ?, ? WHERE EXISTS (SELECT 1 FROM teams WHERE id = ?)
		ON CONFLICT(team_id) DO UPDATE SET
			won = excluded.won,
			drawn = excluded.drawn,
			lost = excluded.lost,
			goals_for = excluded.goals_for,
			goals_against = excluded.goals_against;
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare team_records statement: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err := stmt.ExecContext(ctx, row.TeamID, row.Won, row.Drawn, row.Lost, row.GoalsFor, row.GoalsAgainst, row.TeamID)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to write record for team %s: %w", row.TeamID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit team_records transaction: %w", err)
	}
	log.Debug("Replaced team records", "count", len(rows))
	return nil
}

// Clear deletes every row of every league table.
func (s *store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for clearing store: %w", err)
	}
	for _, table := range []string{"match_events", "matches", "player_stats", "team_records", "players", "teams"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to clear %s table: %w", table, err)
		}
	}
	return tx.Commit()
}

// deleteWithChildren detaches or removes the dependent rows of id and then the
// row itself in one transaction. Foreign key actions are not relied on: remote
// libsql connections do not enforce them.
func (s *store) deleteWithChildren(ctx context.Context, kind, id string, children []string, parent string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for deleting %s: %w", kind, err)
	}
	defer tx.Rollback()

	for _, stmt := range children {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("failed to delete %s dependents: %w", kind, err)
		}
	}
	res, err := tx.ExecContext(ctx, parent, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}
	if err := expectAffected(res, kind, id); err != nil {
		return err
	}
	return tx.Commit()
}

func expectAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func encodeRosters(r Rosters) ([]byte, error) {
	if len(r.Home) == 0 && len(r.Away) == 0 {
		return nil, nil
	}
	b, err := msgpack.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode rosters: %w", err)
	}
	return b, nil
}
