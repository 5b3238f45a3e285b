package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/matchday/internal/processor"
	"github.com/mauv0809/matchday/internal/pubsub"
)

// RecalculateQueue hands a recalculation request to a worker.
type RecalculateQueue interface {
	RequestRecalculate(reason string) error
}

// RecalculateHandler runs a pass on demand. Unlike the passes that follow a
// write, a failure here is reported to the caller. With ?async=true the pass is
// queued instead and 202 is returned; queue is nil when no queue is configured.
func RecalculateHandler(proc *processor.Processor, queue RecalculateQueue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("async") == "true" {
			if queue == nil {
				respondWithError(w, http.StatusBadRequest, "async recalculation requires Pub/Sub")
				return
			}
			if err := queue.RequestRecalculate("manual"); err != nil {
				log.Error("Failed to queue recalculation", "error", err)
				respondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}
			respondWithJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
			return
		}
		if err := proc.Recalculate(r.Context(), "manual"); err != nil {
			log.Error("Manual recalculation failed", "error", err)
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "recalculated"})
	}
}

// PubSubRecalculateHandler is the push endpoint for recalculate messages. A
// non-2xx response makes Pub/Sub redeliver the message.
func PubSubRecalculateHandler(client pubsub.PubSubClient, proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var push pubsub.PushRequest
		if !decodeBody(w, r, &push) {
			return
		}
		var req pubsub.RecalculateRequest
		if err := client.ProcessMessage(push.Message.Data, &req); err != nil {
			log.Error("Failed to decode pubsub message", "error", err, "messageID", push.Message.MessageID)
			respondWithError(w, http.StatusBadRequest, "invalid message payload")
			return
		}
		reason := req.Reason
		if reason == "" {
			reason = "pubsub"
		}
		log.Info("Received recalculate message", "messageID", push.Message.MessageID, "reason", reason)

		if err := proc.Recalculate(r.Context(), reason); err != nil {
			log.Error("Recalculation from pubsub failed", "error", err, "messageID", push.Message.MessageID)
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
