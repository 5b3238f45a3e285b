package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/matchday/internal/league"
	"github.com/mauv0809/matchday/internal/processor"
)

type playerRequest struct {
	Name         string `json:"name"`
	TeamID       string `json:"teamId"`
	Position     string `json:"position"`
	JerseyNumber int    `json:"jerseyNumber"`
}

type cardsRequest struct {
	YellowCards *int `json:"yellowCards"`
	RedCards    *int `json:"redCards"`
}

// validatePlayer checks the request and that the referenced team exists.
func validatePlayer(r *http.Request, store league.LeagueStore, req playerRequest) (string, error) {
	if strings.TrimSpace(req.Name) == "" {
		return "name is required", nil
	}
	if req.JerseyNumber < 0 {
		return "jerseyNumber must not be negative", nil
	}
	if req.TeamID == "" {
		return "", nil
	}
	if _, err := store.GetTeam(r.Context(), req.TeamID); err != nil {
		if errors.Is(err, league.ErrNotFound) {
			return "unknown team " + req.TeamID, nil
		}
		return "", err
	}
	return "", nil
}

func ListPlayersHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := store.GetAllPlayers(r.Context())
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, players)
	}
}

func GetPlayerHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, err := store.GetPlayer(r.Context(), r.PathValue("id"))
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, player)
	}
}

// CreatePlayerHandler adds a player. A player on a team is credited with the
// minutes of that team's finished matches by the following pass.
func CreatePlayerHandler(store league.LeagueStore, proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req playerRequest
		if !decodeBody(w, r, &req) {
			return
		}
		msg, err := validatePlayer(r, store, req)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		if msg != "" {
			respondWithError(w, http.StatusBadRequest, msg)
			return
		}

		player := league.Player{Name: strings.TrimSpace(req.Name), TeamID: req.TeamID, Position: req.Position, JerseyNumber: req.JerseyNumber}
		if err := store.CreatePlayer(r.Context(), &player); err != nil {
			respondWithStoreError(w, err)
			return
		}
		proc.Refresh(r.Context(), "player created")
		respondWithCurrentPlayer(w, r, store, player.ID, http.StatusCreated)
	}
}

// UpdatePlayerHandler replaces a player's details. Moving a player to another
// team changes their minutes, so that triggers a recalculation.
func UpdatePlayerHandler(store league.LeagueStore, proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req playerRequest
		if !decodeBody(w, r, &req) {
			return
		}
		msg, err := validatePlayer(r, store, req)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		if msg != "" {
			respondWithError(w, http.StatusBadRequest, msg)
			return
		}

		existing, err := store.GetPlayer(r.Context(), r.PathValue("id"))
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		player := league.Player{ID: existing.ID, Name: strings.TrimSpace(req.Name), TeamID: req.TeamID, Position: req.Position, JerseyNumber: req.JerseyNumber}
		if err := store.UpdatePlayer(r.Context(), &player); err != nil {
			respondWithStoreError(w, err)
			return
		}

		if existing.TeamID != player.TeamID {
			log.Info("Player changed team", "playerID", player.ID, "from", existing.TeamID, "to", player.TeamID)
			proc.Refresh(r.Context(), "player reassigned")
		} else {
			proc.PublishPlayers(r.Context())
		}
		respondWithCurrentPlayer(w, r, store, player.ID, http.StatusOK)
	}
}

func DeletePlayerHandler(store league.LeagueStore, proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := store.DeletePlayer(r.Context(), id); err != nil {
			respondWithStoreError(w, err)
			return
		}
		log.Info("Deleted player", "playerID", id)
		proc.Refresh(r.Context(), "player deleted")
		w.WriteHeader(http.StatusNoContent)
	}
}

// UpdateCardsHandler overwrites a player's card counts directly. Match events
// remain authoritative: the next recalculation replaces these counts.
func UpdateCardsHandler(store league.LeagueStore, proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cardsRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.YellowCards == nil || req.RedCards == nil {
			respondWithError(w, http.StatusBadRequest, "yellowCards and redCards are required")
			return
		}
		if *req.YellowCards < 0 || *req.RedCards < 0 {
			respondWithError(w, http.StatusBadRequest, "card counts must not be negative")
			return
		}

		id := r.PathValue("id")
		if err := store.SetCardCounts(r.Context(), id, *req.YellowCards, *req.RedCards); err != nil {
			respondWithStoreError(w, err)
			return
		}
		proc.PublishPlayers(r.Context())
		respondWithCurrentPlayer(w, r, store, id, http.StatusOK)
	}
}

func respondWithCurrentPlayer(w http.ResponseWriter, r *http.Request, store league.LeagueStore, id string, status int) {
	player, err := store.GetPlayer(r.Context(), id)
	if err != nil {
		respondWithStoreError(w, err)
		return
	}
	respondWithJSON(w, status, player)
}
