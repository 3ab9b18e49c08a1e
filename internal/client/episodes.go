package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/Belphemur/EpisodeGrid/internal/apperrors"
	"github.com/Belphemur/EpisodeGrid/internal/config"
	"github.com/Belphemur/EpisodeGrid/internal/models"
	"github.com/Belphemur/EpisodeGrid/internal/ratings"
)

// GetEpisodes fetches every episode of a show in a single request.
// No partial table is ever returned.
func (c *client) GetEpisodes(ctx context.Context, showID int) (*models.EpisodeTable, error) {
	logger := config.GetLogger()

	if showID < 1 {
		return nil, &apperrors.FetchFailed{ShowID: showID, Err: errInvalidShowID}
	}

	endpoint := fmt.Sprintf("%s/shows/%d/episodes", c.baseURL, showID)
	logger.Info().Int("showID", showID).Msg("Fetching episode list")

	resp, err := c.get(ctx, "episodes", endpoint)
	if err != nil {
		return nil, &apperrors.FetchFailed{ShowID: showID, Err: err}
	}
	if !isSuccess(resp.StatusCode) {
		logger.Warn().Int("showID", showID).Int("status", resp.StatusCode).Msg("Episode list returned non-success status")
		return nil, &apperrors.FetchFailed{ShowID: showID, StatusCode: resp.StatusCode}
	}

	episodes, err := c.episodeParser.Parse(bytes.NewReader(resp.Body))
	if err != nil {
		c.invalidate(ctx, endpoint)
		var malformed *apperrors.MalformedData
		if errors.As(err, &malformed) {
			malformed.ShowID = showID
			logger.Error().Err(malformed).Int("showID", showID).Int("index", malformed.Index).Msg("Malformed episode data")
			return nil, malformed
		}
		return nil, &apperrors.MalformedData{ShowID: showID, Index: -1, Reason: err.Error()}
	}

	ratings.SortEpisodes(episodes)

	logger.Info().Int("showID", showID).Int("episodes", len(episodes)).Msg("Fetched episode list")
	return &models.EpisodeTable{ShowID: showID, Episodes: episodes}, nil
}
