package client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Belphemur/EpisodeGrid/internal/apperrors"
	"github.com/Belphemur/EpisodeGrid/internal/config"
	"github.com/Belphemur/EpisodeGrid/internal/models"
)

// SearchShows resolves a free-text query to zero or more shows, in the API's order
func (c *client) SearchShows(ctx context.Context, query string) ([]models.Show, error) {
	logger := config.GetLogger()

	normalized := normalizeQuery(query)
	if normalized == "" {
		return nil, &apperrors.ResolutionFailed{Query: query, Err: errEmptyQuery}
	}

	endpoint := fmt.Sprintf("%s/search/shows?q=%s", c.baseURL, url.QueryEscape(normalized))
	logger.Info().Str("query", normalized).Msg("Searching TVMaze shows")

	resp, err := c.get(ctx, "search", endpoint)
	if err != nil {
		return nil, &apperrors.ResolutionFailed{Query: normalized, Err: err}
	}
	if !isSuccess(resp.StatusCode) {
		logger.Warn().Str("query", normalized).Int("status", resp.StatusCode).Msg("Show search returned non-success status")
		return nil, &apperrors.ResolutionFailed{Query: normalized, StatusCode: resp.StatusCode}
	}

	shows, err := c.searchParser.Parse(bytes.NewReader(resp.Body))
	if err != nil {
		c.invalidate(ctx, endpoint)
		logger.Error().Err(err).Str("query", normalized).Msg("Failed to parse show search results")
		return nil, &apperrors.ResolutionFailed{Query: normalized, StatusCode: resp.StatusCode, Err: err}
	}

	logger.Info().Str("query", normalized).Int("count", len(shows)).Msg("Show search completed")
	return shows, nil
}

// SingleSearch resolves a query to its best match. A 404 from the API means no match and
// yields an empty slice.
func (c *client) SingleSearch(ctx context.Context, query string) ([]models.Show, error) {
	logger := config.GetLogger()

	normalized := normalizeQuery(query)
	if normalized == "" {
		return nil, &apperrors.ResolutionFailed{Query: query, Err: errEmptyQuery}
	}

	endpoint := fmt.Sprintf("%s/singlesearch/shows?q=%s", c.baseURL, url.QueryEscape(normalized))
	logger.Info().Str("query", normalized).Msg("Single-searching TVMaze show")

	resp, err := c.get(ctx, "singlesearch", endpoint, http.StatusNotFound)
	if err != nil {
		return nil, &apperrors.ResolutionFailed{Query: normalized, Err: err}
	}
	if resp.StatusCode == http.StatusNotFound {
		logger.Info().Str("query", normalized).Msg("Single search found no show")
		return []models.Show{}, nil
	}
	if !isSuccess(resp.StatusCode) {
		logger.Warn().Str("query", normalized).Int("status", resp.StatusCode).Msg("Single search returned non-success status")
		return nil, &apperrors.ResolutionFailed{Query: normalized, StatusCode: resp.StatusCode}
	}

	show, err := c.singleParser.Parse(bytes.NewReader(resp.Body))
	if err != nil {
		c.invalidate(ctx, endpoint)
		logger.Error().Err(err).Str("query", normalized).Msg("Failed to parse single search result")
		return nil, &apperrors.ResolutionFailed{Query: normalized, StatusCode: resp.StatusCode, Err: err}
	}

	return []models.Show{show}, nil
}
