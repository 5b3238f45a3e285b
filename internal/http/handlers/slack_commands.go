package handlers

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/matchday/internal/league"
	"github.com/mauv0809/matchday/internal/notifier"
	"github.com/mauv0809/matchday/internal/standings"
)

// StandingsCommandHandler answers /standings with the final table.
func StandingsCommandHandler(store league.LeagueStore, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := store.GetAllTeams(r.Context())
		if err != nil {
			http.Error(w, "Failed to get teams", http.StatusInternalServerError)
			log.Error("Failed to get teams from store", "error", err)
			return
		}
		matches, err := store.GetAllMatches(r.Context())
		if err != nil {
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			log.Error("Failed to get matches from store", "error", err)
			return
		}

		msg, err := notifier.FormatStandingsResponse(standings.FinalTable(teams, matches), teams)
		if err != nil {
			http.Error(w, "Failed to format standings", http.StatusInternalServerError)
			log.Error("Failed to format standings", "error", err)
			return
		}
		respondWithJSON(w, http.StatusOK, msg)
	}
}

// PlayerStatsCommandHandler answers /player-stats <name>. Names match
// case-insensitively.
func PlayerStatsCommandHandler(store league.LeagueStore, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		name := strings.TrimSpace(r.FormValue("text"))
		if name == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}
		log.Info("Received player stats command", "player", name)

		players, err := store.GetAllPlayers(r.Context())
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}

		var msg any
		player, ok := findPlayer(players, name)
		if !ok {
			log.Warn("Could not find player", "player", name)
			msg, err = notifier.FormatPlayerNotFoundResponse(name)
		} else {
			team := ""
			if player.TeamID != "" {
				team = teamName(r, store, player.TeamID)
			}
			msg, err = notifier.FormatPlayerStatsResponse(player, team)
		}
		if err != nil {
			http.Error(w, "Failed to format player stats", http.StatusInternalServerError)
			log.Error("Failed to format player stats", "error", err)
			return
		}
		respondWithJSON(w, http.StatusOK, msg)
	}
}

func findPlayer(players []league.Player, name string) (league.Player, bool) {
	for _, p := range players {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return league.Player{}, false
}
