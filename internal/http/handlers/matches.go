package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/matchday/internal/broadcast"
	"github.com/mauv0809/matchday/internal/league"
	"github.com/mauv0809/matchday/internal/processor"
)

// matchPatch holds the fields of a match update. Absent fields keep their value.
type matchPatch struct {
	TeamA   *string             `json:"teamA"`
	TeamB   *string             `json:"teamB"`
	Date    *string             `json:"date"`
	Time    *string             `json:"time"`
	Status  *league.MatchStatus `json:"status"`
	Score   *league.Score       `json:"score"`
	Rosters *league.Rosters     `json:"rosters"`
}

func (p matchPatch) apply(m *league.Match) {
	if p.TeamA != nil {
		m.HomeTeamID = *p.TeamA
	}
	if p.TeamB != nil {
		m.AwayTeamID = *p.TeamB
	}
	if p.Date != nil {
		m.Date = *p.Date
	}
	if p.Time != nil {
		m.Time = *p.Time
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
	if p.Score != nil {
		m.HomeScore, m.AwayScore = p.Score.TeamA, p.Score.TeamB
	}
	if p.Rosters != nil {
		m.Rosters = *p.Rosters
	}
}

// validateMatch checks the match fields and that both teams exist.
func validateMatch(r *http.Request, store league.LeagueStore, m league.Match) (string, error) {
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return "teamA and teamB are required", nil
	}
	if m.HomeTeamID == m.AwayTeamID {
		return "a team cannot play itself", nil
	}
	if !m.Status.Valid() {
		return fmt.Sprintf("unknown status %q", m.Status), nil
	}
	if m.HomeScore < 0 || m.AwayScore < 0 {
		return "scores must not be negative", nil
	}
	for _, id := range []string{m.HomeTeamID, m.AwayTeamID} {
		if _, err := store.GetTeam(r.Context(), id); err != nil {
			if errors.Is(err, league.ErrNotFound) {
				return "unknown team " + id, nil
			}
			return "", err
		}
	}
	return "", nil
}

func ListMatchesHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := store.GetAllMatches(r.Context())
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, matches)
	}
}

func GetMatchHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		match, err := store.GetMatch(r.Context(), r.PathValue("id"))
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, match)
	}
}

func CreateMatchHandler(store league.LeagueStore, proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var match league.Match
		if !decodeBody(w, r, &match) {
			return
		}
		match.ID = ""
		if match.Status == "" {
			match.Status = league.StatusScheduled
		}
		msg, err := validateMatch(r, store, match)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		if msg != "" {
			respondWithError(w, http.StatusBadRequest, msg)
			return
		}

		if err := store.CreateMatch(r.Context(), &match); err != nil {
			respondWithStoreError(w, err)
			return
		}
		proc.Refresh(r.Context(), "match created")
		if alert, ok := statusAlert(r, store, league.StatusScheduled, match); ok {
			proc.Alert(r.Context(), alert, IsDryRunFromContext(r))
		}
		respondWithJSON(w, http.StatusCreated, match)
	}
}

// UpdateMatchHandler applies a partial update. Status changes to live or
// finished raise an alert.
func UpdateMatchHandler(store league.LeagueStore, proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch matchPatch
		if !decodeBody(w, r, &patch) {
			return
		}

		existing, err := store.GetMatch(r.Context(), r.PathValue("id"))
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		match := *existing
		patch.apply(&match)

		msg, err := validateMatch(r, store, match)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		if msg != "" {
			respondWithError(w, http.StatusBadRequest, msg)
			return
		}

		if err := store.UpdateMatch(r.Context(), &match); err != nil {
			respondWithStoreError(w, err)
			return
		}
		log.Info("Updated match", "matchID", match.ID, "status", match.Status, "score", fmt.Sprintf("%d-%d", match.HomeScore, match.AwayScore))
		proc.Refresh(r.Context(), "match updated")
		if alert, ok := statusAlert(r, store, existing.Status, match); ok {
			proc.Alert(r.Context(), alert, IsDryRunFromContext(r))
		}
		respondWithJSON(w, http.StatusOK, match)
	}
}

// DeleteMatchHandler removes a match and its events.
func DeleteMatchHandler(store league.LeagueStore, proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := store.DeleteMatch(r.Context(), id); err != nil {
			respondWithStoreError(w, err)
			return
		}
		log.Info("Deleted match", "matchID", id)
		proc.Refresh(r.Context(), "match deleted")
		w.WriteHeader(http.StatusNoContent)
	}
}

// statusAlert builds the alert for a match entering the live or finished state.
func statusAlert(r *http.Request, store league.LeagueStore, previous league.MatchStatus, m league.Match) (broadcast.Alert, bool) {
	if previous == m.Status {
		return broadcast.Alert{}, false
	}
	home, away := teamName(r, store, m.HomeTeamID), teamName(r, store, m.AwayTeamID)
	switch m.Status {
	case league.StatusLive:
		return broadcast.Alert{
			Type:    broadcast.AlertInfo,
			Message: fmt.Sprintf("Kick-off: %s vs %s", home, away),
			MatchID: m.ID,
		}, true
	case league.StatusFinished:
		return broadcast.Alert{
			Type:    broadcast.AlertMatchEnd,
			Message: fmt.Sprintf("Full time: %s %d - %d %s", home, m.HomeScore, m.AwayScore, away),
			MatchID: m.ID,
		}, true
	}
	return broadcast.Alert{}, false
}

func teamName(r *http.Request, store league.LeagueStore, id string) string {
	if id == "" {
		return "Unknown team"
	}
	team, err := store.GetTeam(r.Context(), id)
	if err != nil {
		return id
	}
	return team.Name
}
