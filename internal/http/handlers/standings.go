package handlers

import (
	"net/http"

	"github.com/mauv0809/matchday/internal/league"
	"github.com/mauv0809/matchday/internal/standings"
)

// StandingsHandler returns the sorted table. scope=final counts finished
// matches only; the default provisional table also counts live matches.
func StandingsHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope := standings.ScopeProvisional
		switch r.URL.Query().Get("scope") {
		case "", "provisional":
		case "final":
			scope = standings.ScopeFinal
		default:
			respondWithError(w, http.StatusBadRequest, "scope must be provisional or final")
			return
		}

		teams, err := store.GetAllTeams(r.Context())
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		matches, err := store.GetAllMatches(r.Context())
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, standings.Table(teams, matches, scope))
	}
}
