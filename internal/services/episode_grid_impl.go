package services

import (
	"context"
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Belphemur/EpisodeGrid/internal/apperrors"
	"github.com/Belphemur/EpisodeGrid/internal/config"
	"github.com/Belphemur/EpisodeGrid/internal/metrics"
	"github.com/Belphemur/EpisodeGrid/internal/models"
	"github.com/Belphemur/EpisodeGrid/internal/ratings"
)

const buildStatusSuccess = "success"

// DefaultEpisodeGridService implements EpisodeGridService on top of an EpisodeSource
type DefaultEpisodeGridService struct {
	source     EpisodeSource
	searchMode string
}

// NewEpisodeGridService creates a pipeline reading from source. searchMode is
// config.SearchModeSearch or config.SearchModeSingle; anything else means search.
func NewEpisodeGridService(source EpisodeSource, searchMode string) EpisodeGridService {
	if searchMode != config.SearchModeSingle {
		searchMode = config.SearchModeSearch
	}
	return &DefaultEpisodeGridService{source: source, searchMode: searchMode}
}

// Resolve maps a query to candidate shows
func (s *DefaultEpisodeGridService) Resolve(ctx context.Context, query string) ([]models.Show, error) {
	if s.searchMode == config.SearchModeSingle {
		return s.source.SingleSearch(ctx, query)
	}
	return s.source.SearchShows(ctx, query)
}

// Report builds the report of a known show
func (s *DefaultEpisodeGridService) Report(ctx context.Context, showID int) (*models.EpisodeReport, error) {
	run := newRun()
	run.logger.Info().Int("showID", showID).Msg("Building episode report")

	report, err := s.build(ctx, run, showID)
	s.recordOutcome(run, err)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// ReportForQuery resolves query and builds the report of its first match
func (s *DefaultEpisodeGridService) ReportForQuery(ctx context.Context, query string) (*models.EpisodeReport, error) {
	run := newRun()
	run.logger.Info().Str("query", query).Str("searchMode", s.searchMode).Msg("Building episode report for query")

	report, err := s.buildForQuery(ctx, run, query)
	s.recordOutcome(run, err)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *DefaultEpisodeGridService) buildForQuery(ctx context.Context, run *pipelineRun, query string) (*models.EpisodeReport, error) {
	shows, err := s.Resolve(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(shows) == 0 {
		return nil, apperrors.NewNoMatchesError(query)
	}

	show := shows[0]
	run.logger.Info().
		Int("showID", show.ID).
		Str("show", show.Name).
		Int("candidates", len(shows)).
		Msg("Resolved query to show")

	report, err := s.build(ctx, run, show.ID)
	if err != nil {
		return nil, err
	}
	report.Show = &show
	return report, nil
}

// build runs fetch, averages and grid strictly in sequence
func (s *DefaultEpisodeGridService) build(ctx context.Context, run *pipelineRun, showID int) (*models.EpisodeReport, error) {
	table, err := s.source.GetEpisodes(ctx, showID)
	if err != nil {
		return nil, err
	}

	averages := ratings.SeasonAverages(table)

	grid, err := ratings.BuildGrid(table)
	if err != nil {
		return nil, err
	}

	run.logger.Info().
		Int("showID", showID).
		Int("episodes", table.Len()).
		Int("ratedSeasons", len(averages)).
		Int("gridRows", len(grid.Rows())).
		Int("gridColumns", len(grid.Columns())).
		Msg("Episode report built")

	return &models.EpisodeReport{
		Table:    table,
		Averages: averages,
		Grid:     grid,
	}, nil
}

// recordOutcome counts the run and reports data errors to Sentry.
// Upstream failures and empty searches are expected and only logged.
func (s *DefaultEpisodeGridService) recordOutcome(run *pipelineRun, err error) {
	logger := run.logger
	if err == nil {
		metrics.GridBuildsTotal.WithLabelValues(buildStatusSuccess).Inc()
		return
	}

	kind := apperrors.Kind(err)
	metrics.GridBuildsTotal.WithLabelValues(kind).Inc()

	var (
		malformed *apperrors.MalformedData
		pivot     *apperrors.AmbiguousPivot
	)
	switch {
	case errors.As(err, &malformed), errors.As(err, &pivot):
		logger.Error().Err(err).Str("kind", kind).Msg("Episode data cannot be turned into a report")
		captureException(run.id, err, kind)
	case errors.Is(err, apperrors.ErrNoMatches):
		logger.Info().Err(err).Msg("Query matched no show")
	default:
		logger.Warn().Err(err).Str("kind", kind).Msg("Episode report failed")
	}
}

// captureException is a no-op unless sentry.Init was called with a DSN
func captureException(runID string, err error, kind string) {
	hub := sentry.CurrentHub()
	if hub.Client() == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("error_kind", kind)
		scope.SetTag("run_id", runID)
		hub.CaptureException(err)
	})
}

// pipelineRun identifies one pipeline execution in logs and error reports
type pipelineRun struct {
	id     string
	logger zerolog.Logger
}

func newRun() *pipelineRun {
	id := uuid.NewString()
	return &pipelineRun{
		id:     id,
		logger: config.GetLogger().With().Str("runID", id).Logger(),
	}
}
