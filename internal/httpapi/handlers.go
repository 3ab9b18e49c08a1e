package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Belphemur/EpisodeGrid/internal/models"
	"github.com/Belphemur/EpisodeGrid/internal/services"
)

// Handler serves the episode grid pipeline over JSON
type Handler struct {
	service services.EpisodeGridService
	logger  zerolog.Logger
}

// NewHandler creates a new API handler
func NewHandler(service services.EpisodeGridService, logger zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// SearchShowsResponse is returned by GET /api/v1/shows
type SearchShowsResponse struct {
	Query string        `json:"query"`
	Shows []models.Show `json:"shows"`
}

// SearchShows resolves ?q= to candidate shows. No match is an empty list, not an error.
func (h *Handler) SearchShows(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respondBadRequest(w, "query parameter q is required")
		return
	}

	shows, err := h.service.Resolve(r.Context(), query)
	if err != nil {
		h.logger.Error().Err(err).Str("query", query).Msg("Failed to resolve shows")
		respondError(w, err)
		return
	}
	if shows == nil {
		shows = []models.Show{}
	}

	respondJSON(w, http.StatusOK, SearchShowsResponse{Query: query, Shows: shows})
}

// GetReport builds the report of the show in the {id} path parameter
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	showID, err := strconv.Atoi(idStr)
	if err != nil || showID < 1 {
		respondBadRequest(w, "invalid show id")
		return
	}

	report, err := h.service.Report(r.Context(), showID)
	if err != nil {
		h.logger.Error().Err(err).Int("showID", showID).Msg("Failed to build episode report")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// GetReportForQuery resolves ?q= and builds the report of its first match
func (h *Handler) GetReportForQuery(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respondBadRequest(w, "query parameter q is required")
		return
	}

	report, err := h.service.ReportForQuery(r.Context(), query)
	if err != nil {
		h.logger.Error().Err(err).Str("query", query).Msg("Failed to build episode report for query")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}
