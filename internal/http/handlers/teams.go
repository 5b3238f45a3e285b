package handlers

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/matchday/internal/league"
	"github.com/mauv0809/matchday/internal/processor"
)

type teamRequest struct {
	Name      string `json:"name"`
	Logo      string `json:"logo"`
	Franchise string `json:"franchise"`
	Status    string `json:"status"`
}

func (req teamRequest) validate() string {
	if strings.TrimSpace(req.Name) == "" {
		return "name is required"
	}
	switch req.Status {
	case "", "active", "inactive":
		return ""
	}
	return "status must be active or inactive"
}

func ListTeamsHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := store.GetAllTeams(r.Context())
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, teams)
	}
}

func GetTeamHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, err := store.GetTeam(r.Context(), r.PathValue("id"))
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, team)
	}
}

// CreateTeamHandler adds a team. The team joins the table with an empty record.
func CreateTeamHandler(store league.LeagueStore, proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req teamRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if msg := req.validate(); msg != "" {
			respondWithError(w, http.StatusBadRequest, msg)
			return
		}

		team := league.Team{Name: strings.TrimSpace(req.Name), Logo: req.Logo, Franchise: req.Franchise, Status: req.Status}
		if err := store.CreateTeam(r.Context(), &team); err != nil {
			respondWithStoreError(w, err)
			return
		}
		proc.Refresh(r.Context(), "team created")
		respondWithJSON(w, http.StatusCreated, team)
	}
}

func UpdateTeamHandler(store league.LeagueStore, proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req teamRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if msg := req.validate(); msg != "" {
			respondWithError(w, http.StatusBadRequest, msg)
			return
		}
		if req.Status == "" {
			req.Status = "active"
		}

		team := league.Team{ID: r.PathValue("id"), Name: strings.TrimSpace(req.Name), Logo: req.Logo, Franchise: req.Franchise, Status: req.Status}
		if err := store.UpdateTeam(r.Context(), &team); err != nil {
			respondWithStoreError(w, err)
			return
		}
		proc.PublishTeams(r.Context())

		updated, err := store.GetTeam(r.Context(), team.ID)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, updated)
	}
}

// DeleteTeamHandler removes a team that no match refers to. Its players become
// free agents.
func DeleteTeamHandler(store league.LeagueStore, proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := store.DeleteTeam(r.Context(), id); err != nil {
			respondWithStoreError(w, err)
			return
		}
		log.Info("Deleted team", "teamID", id)
		proc.Refresh(r.Context(), "team deleted")
		w.WriteHeader(http.StatusNoContent)
	}
}
