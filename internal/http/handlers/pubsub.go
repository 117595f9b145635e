package handlers

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/stumps/internal/processor"
	"github.com/mauv0809/stumps/internal/pubsub"
	"github.com/mauv0809/stumps/internal/scoring"
)

// MatchCompletedHandler consumes the match-completed push subscription. Errors
// that retrying cannot fix are acknowledged so Pub/Sub stops redelivering.
func MatchCompletedHandler(scorer processor.Scorer, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		env, rawData, err := readPushMessage(r)
		if err != nil {
			log.Error("Failed to read push message", "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Debug("Received match completed message", "subscription", env.Subscription, "messageID", env.Message.MessageID)

		var msg pubsub.MatchCompleted
		if err := pubsubClient.ProcessMessage(rawData, &msg); err != nil || msg.MatchID == "" {
			log.Error("Dropping undecodable match completed message", "error", err, "messageID", env.Message.MessageID)
			w.Write([]byte("OK"))
			return
		}

		isDryRun := IsDryRunFromContext(r)
		err = scorer.HandleMatchCompleted(r.Context(), msg, isDryRun)
		switch {
		case err == nil:
		case errors.Is(err, scoring.ErrNotFound), errors.Is(err, scoring.ErrInvalidState), errors.Is(err, scoring.ErrInvalidArgument):
			log.Warn("Acknowledging match completed message that cannot be applied", "error", err, "matchID", msg.MatchID)
		default:
			log.Error("Failed to handle match completed message", "error", err, "matchID", msg.MatchID)
			http.Error(w, "failed to handle message", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
