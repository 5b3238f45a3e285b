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

type eventRequest struct {
	Type     league.EventKind `json:"type"`
	TeamID   string           `json:"teamId"`
	PlayerID string           `json:"playerId"`
	Minute   string           `json:"minute"`
}

func ListMatchEventsHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.PathValue("id")
		if _, err := store.GetMatch(r.Context(), matchID); err != nil {
			respondWithStoreError(w, err)
			return
		}
		events, err := store.GetMatchEvents(r.Context(), matchID)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, events)
	}
}

// CreateMatchEventHandler records a goal, assist or card. The team defaults to
// the player's current team.
func CreateMatchEventHandler(store league.LeagueStore, proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req eventRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if !req.Type.Valid() {
			respondWithError(w, http.StatusBadRequest, fmt.Sprintf("unknown event type %q", req.Type))
			return
		}
		if req.PlayerID == "" {
			respondWithError(w, http.StatusBadRequest, "playerId is required")
			return
		}

		match, err := store.GetMatch(r.Context(), r.PathValue("id"))
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		player, err := store.GetPlayer(r.Context(), req.PlayerID)
		if err != nil {
			if errors.Is(err, league.ErrNotFound) {
				respondWithError(w, http.StatusBadRequest, "unknown player "+req.PlayerID)
				return
			}
			respondWithStoreError(w, err)
			return
		}
		if req.TeamID == "" {
			req.TeamID = player.TeamID
		}
		if req.TeamID != "" && !match.Involves(req.TeamID) {
			respondWithError(w, http.StatusBadRequest, "team "+req.TeamID+" does not play in this match")
			return
		}

		event := league.MatchEvent{MatchID: match.ID, Kind: req.Type, TeamID: req.TeamID, PlayerID: player.ID, Minute: req.Minute}
		if err := store.CreateEvent(r.Context(), &event); err != nil {
			respondWithStoreError(w, err)
			return
		}
		proc.Refresh(r.Context(), "event recorded")
		proc.Alert(r.Context(), eventAlert(event, player.Name), IsDryRunFromContext(r))
		respondWithJSON(w, http.StatusCreated, event)
	}
}

func DeleteMatchEventHandler(store league.LeagueStore, proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID, eventID := r.PathValue("id"), r.PathValue("eventId")
		if err := store.DeleteEvent(r.Context(), matchID, eventID); err != nil {
			respondWithStoreError(w, err)
			return
		}
		log.Info("Deleted match event", "matchID", matchID, "eventID", eventID)
		proc.Refresh(r.Context(), "event deleted")
		w.WriteHeader(http.StatusNoContent)
	}
}

func eventAlert(e league.MatchEvent, playerName string) broadcast.Alert {
	alert := broadcast.Alert{MatchID: e.MatchID, Minute: e.Minute}
	switch e.Kind {
	case league.EventGoal:
		alert.Type = broadcast.AlertGoal
		alert.Message = fmt.Sprintf("Goal! %s scores (%s')", playerName, e.Minute)
	case league.EventAssist:
		alert.Type = broadcast.AlertInfo
		alert.Message = fmt.Sprintf("Assist by %s (%s')", playerName, e.Minute)
	case league.EventYellowCard:
		alert.Type = broadcast.AlertCard
		alert.Message = fmt.Sprintf("Yellow card for %s (%s')", playerName, e.Minute)
	case league.EventRedCard:
		alert.Type = broadcast.AlertCard
		alert.Message = fmt.Sprintf("Red card for %s (%s')", playerName, e.Minute)
	}
	return alert
}
