package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Belphemur/EpisodeGrid/internal/config"
	"github.com/Belphemur/EpisodeGrid/internal/services"
)

// NewRouter creates and configures the HTTP router
func NewRouter(service services.EpisodeGridService) http.Handler {
	logger := config.GetLogger()
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(recoverMiddleware(logger))
	r.Use(loggingMiddleware(logger))
	r.Use(middleware.Compress(5))

	handler := NewHandler(service, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/shows", handler.SearchShows)
		r.Get("/shows/{id}/report", handler.GetReport)
		r.Get("/report", handler.GetReportForQuery)
	})

	return r
}

// NewHTTPServer wraps the router in an http.Server listening on address:port
func NewHTTPServer(address string, port int, service services.EpisodeGridService) *http.Server {
	if port == 0 {
		port = 8081
	}
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", address, port),
		Handler:           NewRouter(service),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
