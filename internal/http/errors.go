package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/stumps/internal/scoring"
)

const maxBodyBytes = 1 << 20

// statusFor maps the engine's error kinds onto HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, scoring.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, scoring.ErrInvalidState), errors.Is(err, scoring.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, scoring.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// decodeJSON reads a JSON body into v. Failures are ErrInvalidArgument.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", scoring.ErrInvalidArgument, err)
	}
	return nil
}
