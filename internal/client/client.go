package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go/failsafehttp"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"github.com/Belphemur/EpisodeGrid/internal/cache"
	"github.com/Belphemur/EpisodeGrid/internal/config"
	"github.com/Belphemur/EpisodeGrid/internal/models"
	"github.com/Belphemur/EpisodeGrid/internal/parser"
)

// cacheGroup labels the response cache in Prometheus metrics
const cacheGroup = "tvmaze"

// Client defines the interface for querying the TVMaze API
type Client interface {
	// SearchShows resolves a free-text query through /search/shows.
	// An empty slice with a nil error means nothing matched.
	SearchShows(ctx context.Context, query string) ([]models.Show, error)

	// SingleSearch resolves a query through /singlesearch/shows and returns at most one show.
	SingleSearch(ctx context.Context, query string) ([]models.Show, error)

	// GetEpisodes fetches the full episode list of a show, sorted by (season, number).
	GetEpisodes(ctx context.Context, showID int) (*models.EpisodeTable, error)

	// Close releases any resources held by the client (e.g., cache connections).
	Close() error
}

// client implements the Client interface
type client struct {
	httpClient    *http.Client
	baseURL       string
	cache         cache.Cache
	searchParser  parser.Parser[models.Show]
	singleParser  parser.SingleResultParser[models.Show]
	episodeParser parser.Parser[models.Episode]
}

// NewClient creates a new client instance with proxy, retry and cache configuration if provided
func NewClient(cfg *config.Config) Client {
	logger := config.GetLogger()

	// Parse timeout duration
	timeout := 15 * time.Second // default
	if cfg.ClientTimeout != "" {
		if parsedTimeout, err := time.ParseDuration(cfg.ClientTimeout); err != nil {
			logger.Warn().Err(err).Str("timeout", cfg.ClientTimeout).Msg("Invalid timeout duration, using default 15s")
		} else {
			timeout = parsedTimeout
		}
	}

	// Clone DefaultTransport to preserve all its settings (timeouts, connection pooling, HTTP/2, etc.)
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			// Log error but continue without proxy
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	// Retries sit below decompression so each attempt gets a fresh body
	var transport http.RoundTripper = baseTransport
	if policy := newRetryPolicy(cfg.Retry); policy != nil {
		transport = failsafehttp.NewRoundTripper(baseTransport, policy)
	}

	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: newCompressionTransport(transport),
	}

	responseCache, err := cache.NewFromConfig(cfg.Cache, cacheGroup, cache.NewZerologLogger(logger))
	if err != nil {
		logger.Warn().Err(err).Str("provider", cfg.Cache.Provider).Msg("Failed to create response cache, falling back to memory")
		responseCache, _ = cache.New("memory", cache.ProviderConfig{Size: 500, TTL: 10 * time.Minute, Group: cacheGroup})
	}

	baseURL := cfg.TVMazeBaseURL
	if baseURL == "" {
		baseURL = config.DefaultTVMazeBaseURL
	}

	return &client{
		httpClient:    httpClient,
		baseURL:       strings.TrimRight(baseURL, "/"),
		cache:         responseCache,
		searchParser:  parser.NewShowSearchParser(),
		singleParser:  parser.NewSingleShowParser(),
		episodeParser: parser.NewEpisodeParser(),
	}
}

// newRetryPolicy builds the transport retry policy. It returns nil when retries are disabled.
// Connection errors, 429 and 5xx responses are retried; after the last attempt the final
// response is handed back so its status code is preserved.
func newRetryPolicy(cfg config.RetryConfig) retrypolicy.RetryPolicy[*http.Response] {
	if cfg.MaxRetries <= 0 {
		return nil
	}

	delay := parseDurationOr(cfg.Delay, 250*time.Millisecond)
	maxDelay := parseDurationOr(cfg.MaxDelay, 2*time.Second)

	builder := failsafehttp.NewRetryPolicyBuilder().
		WithMaxRetries(cfg.MaxRetries).
		ReturnLastFailure()
	if maxDelay > delay {
		builder = builder.WithBackoff(delay, maxDelay)
	} else {
		builder = builder.WithDelay(delay)
	}
	return builder.Build()
}

func parseDurationOr(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Close releases any resources held by the client, such as cache connections.
func (c *client) Close() error {
	return c.cache.Close()
}
