package services

import (
	"context"

	"github.com/Belphemur/EpisodeGrid/internal/models"
)

// EpisodeSource is the upstream the pipeline reads shows and episodes from
type EpisodeSource interface {
	SearchShows(ctx context.Context, query string) ([]models.Show, error)
	SingleSearch(ctx context.Context, query string) ([]models.Show, error)
	GetEpisodes(ctx context.Context, showID int) (*models.EpisodeTable, error)
}

// EpisodeGridService runs the resolve, fetch and transform pipeline
type EpisodeGridService interface {
	// Resolve maps a free-text query to candidate shows using the configured search mode.
	// An empty result is not an error.
	Resolve(ctx context.Context, query string) ([]models.Show, error)

	// Report fetches a show's episodes and derives the season averages and the rating grid.
	Report(ctx context.Context, showID int) (*models.EpisodeReport, error)

	// ReportForQuery resolves query, picks the first match and builds its report.
	// It returns apperrors.ErrNoMatches when nothing matched.
	ReportForQuery(ctx context.Context, query string) (*models.EpisodeReport, error)
}
