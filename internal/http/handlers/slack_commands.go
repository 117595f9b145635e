package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	slacknotifier "github.com/mauv0809/stumps/internal/notifier/slack"
	"github.com/mauv0809/stumps/internal/processor"
	"github.com/mauv0809/stumps/internal/scoring"
	"github.com/mauv0809/stumps/internal/tournament"
	"github.com/slack-go/slack"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

func ephemeral(text string) slack.Message {
	msg := slack.NewBlockMessage(slack.NewSectionBlock(
		slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil))
	msg.ResponseType = slack.ResponseTypeEphemeral
	return msg
}

// StandingsCommandHandler answers "/standings [tournament id or name]". With no
// text it shows the most recently created tournament.
func StandingsCommandHandler(scorer processor.Scorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			http.Error(w, "Failed to parse slash command", http.StatusBadRequest)
			log.Error("Failed to parse slash command", "error", err)
			return
		}
		query := strings.TrimSpace(cmd.Text)
		log.Debug("Received standings command", "user", cmd.UserName, "text", query)

		t, err := findTournament(r, scorer, query)
		switch {
		case errors.Is(err, scoring.ErrNotFound):
			if query == "" {
				respondWithSlackMsg(w, ephemeral("No tournaments yet."))
				return
			}
			respondWithSlackMsg(w, ephemeral(fmt.Sprintf("No tournament matches `%s`.", query)))
			return
		case err != nil:
			http.Error(w, "Failed to get tournament", http.StatusInternalServerError)
			log.Error("Failed to get tournament for standings command", "error", err, "query", query)
			return
		}

		msg := slacknotifier.FormatStandings(t)
		msg.ResponseType = slack.ResponseTypeInChannel
		respondWithSlackMsg(w, msg)
	}
}

// findTournament resolves query as an id first, then as a case-insensitive name.
func findTournament(r *http.Request, scorer processor.Scorer, query string) (*tournament.Tournament, error) {
	if query != "" {
		t, err := scorer.GetTournament(r.Context(), query)
		if !errors.Is(err, scoring.ErrNotFound) {
			return t, err
		}
	}
	all, err := scorer.ListTournaments(r.Context())
	if err != nil {
		return nil, err
	}
	for _, t := range all {
		// ListTournaments is newest first.
		if query == "" || strings.EqualFold(t.Name, query) {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: tournament %q", scoring.ErrNotFound, query)
}
