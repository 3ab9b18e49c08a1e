package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/Belphemur/EpisodeGrid/internal/config"
	"github.com/Belphemur/EpisodeGrid/internal/metrics"
)

// maxBodySize bounds how much of a response body is read into memory
const maxBodySize = 32 << 20

// apiResponse is a fully read response. It is also the value stored in the cache.
// Cache-served responses are counted by the cache's own hit metrics.
type apiResponse struct {
	StatusCode int    `json:"status"`
	Body       []byte `json:"body"`
}

// get fetches endpointURL, serving it from the cache when possible. Successful responses and
// responses whose status is listed in cacheable are stored; everything else is returned uncached.
// endpoint labels the request in metrics. The error is only set when no response was received.
func (c *client) get(ctx context.Context, endpoint, endpointURL string, cacheable ...int) (*apiResponse, error) {
	logger := config.GetLogger()

	if cached, ok := c.cache.Get(ctx, endpointURL); ok {
		var resp apiResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			logger.Debug().Str("url", endpointURL).Int("status", resp.StatusCode).Msg("Serving TVMaze response from cache")
			return &resp, nil
		}
		logger.Warn().Str("url", endpointURL).Msg("Dropping unreadable cache entry")
		c.cache.Delete(ctx, endpointURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpointURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", config.GetUserAgent())
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	httpResp, err := c.httpClient.Do(req)
	metrics.TVMazeRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.TVMazeRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		logger.Error().Err(err).Str("url", endpointURL).Msg("TVMaze request failed")
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer httpResp.Body.Close()

	metrics.TVMazeRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(httpResp.StatusCode)).Inc()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodySize))
	if err != nil {
		logger.Error().Err(err).Str("url", endpointURL).Int("status", httpResp.StatusCode).Msg("Failed to read TVMaze response body")
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	resp := &apiResponse{StatusCode: httpResp.StatusCode, Body: body}
	logger.Debug().
		Str("url", endpointURL).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Msg("Received TVMaze response")

	if isSuccess(resp.StatusCode) || slices.Contains(cacheable, resp.StatusCode) {
		if encoded, err := json.Marshal(resp); err == nil {
			c.cache.Set(ctx, endpointURL, encoded)
		}
	}

	return resp, nil
}

// invalidate removes a cached response whose body turned out to be unusable.
// Fresh payloads are cached before parsing, so this applies to both paths.
func (c *client) invalidate(ctx context.Context, endpointURL string) {
	c.cache.Delete(ctx, endpointURL)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
