package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Belphemur/EpisodeGrid/internal/apperrors"
	"github.com/Belphemur/EpisodeGrid/internal/config"
)

// ErrorResponse is the body of every non-2xx API response
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Code  int    `json:"code"`
}

const kindInvalidArgument = "invalid_argument"

// respondJSON writes data as JSON with the given status
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger := config.GetLogger()
		logger.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func respondBadRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, ErrorResponse{
		Error: message,
		Kind:  kindInvalidArgument,
		Code:  http.StatusBadRequest,
	})
}

// respondError maps a pipeline error to its HTTP status and writes it
func respondError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	respondJSON(w, status, ErrorResponse{
		Error: err.Error(),
		Kind:  apperrors.Kind(err),
		Code:  status,
	})
}

func statusForError(err error) int {
	var fetch *apperrors.FetchFailed
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, apperrors.ErrNoMatches):
		return http.StatusNotFound
	case errors.As(err, &fetch) && fetch.StatusCode == http.StatusNotFound:
		return http.StatusNotFound
	case errors.Is(err, &apperrors.ResolutionFailed{}),
		errors.Is(err, &apperrors.FetchFailed{}),
		errors.Is(err, &apperrors.MalformedData{}):
		return http.StatusBadGateway
	case errors.Is(err, &apperrors.AmbiguousPivot{}):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
