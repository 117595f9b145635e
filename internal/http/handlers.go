package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/stumps/internal/match"
	"github.com/mauv0809/stumps/internal/processor"
	"github.com/mauv0809/stumps/internal/scoring"
)

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := match.ListFilter{
			TournamentID: q.Get("tournament_id"),
			Status:       scoring.MatchStatus(q.Get("status")),
		}
		if raw := q.Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				writeError(w, r, fmt.Errorf("%w: limit must be a non-negative integer", scoring.ErrInvalidArgument))
				return
			}
			filter.Limit = limit
		}
		matches, err := s.Scorer.ListMatches(r.Context(), filter)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func (s *Server) ScheduleMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in processor.ScheduleMatchInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, err)
			return
		}
		m, err := s.Scorer.ScheduleMatch(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)
	}
}

func (s *Server) GetMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := s.Scorer.GetMatch(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func (s *Server) RecordTossHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var toss scoring.Toss
		if err := decodeJSON(w, r, &toss); err != nil {
			writeError(w, r, err)
			return
		}
		m, err := s.Scorer.RecordToss(r.Context(), r.PathValue("id"), toss)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func (s *Server) SetPlayingXIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req playingXIRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		m, err := s.Scorer.SetPlayingXI(r.Context(), r.PathValue("id"), req.TeamID, req.PlayerIDs)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func (s *Server) RecordBallHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inningsIndex, err := inningsParam(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		var input scoring.BallInput
		if err := decodeJSON(w, r, &input); err != nil {
			writeError(w, r, err)
			return
		}
		outcome, err := s.Scorer.RecordBall(r.Context(), r.PathValue("id"), inningsIndex, input)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, outcome)
	}
}

func (s *Server) EndInningsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inningsIndex, err := inningsParam(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		m, err := s.Scorer.EndInnings(r.Context(), r.PathValue("id"), inningsIndex)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func (s *Server) StartNextInningsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := s.Scorer.StartNextInnings(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func (s *Server) ReduceOversHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reduceOversRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		m, err := s.Scorer.ReduceOvers(r.Context(), r.PathValue("id"), req.Overs)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func (s *Server) AbandonMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := s.Scorer.AbandonMatch(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func (s *Server) ListTournamentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournaments, err := s.Scorer.ListTournaments(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, tournaments)
	}
}

func (s *Server) CreateTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in processor.CreateTournamentInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, err)
			return
		}
		t, err := s.Scorer.CreateTournament(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, t)
	}
}

func (s *Server) GetTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := s.Scorer.GetTournament(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

func (s *Server) ApplyResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentID, matchID := r.PathValue("id"), r.PathValue("matchID")
		t, err := s.Scorer.ApplyMatchResultToStandings(r.Context(), tournamentID, matchID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		log.Info("Result applied on request", "tournamentID", tournamentID, "matchID", matchID)
		writeJSON(w, http.StatusOK, t)
	}
}

func inningsParam(r *http.Request) (int, error) {
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil {
		return 0, fmt.Errorf("%w: innings must be 0 or 1", scoring.ErrInvalidArgument)
	}
	return n, nil
}
