package main

import (
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"github.com/Belphemur/EpisodeGrid/internal/client"
	"github.com/Belphemur/EpisodeGrid/internal/config"
	"github.com/Belphemur/EpisodeGrid/internal/services"
)

var (
	baseURL    string
	searchMode string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "episodegrid",
	Short: "TVMaze episode ratings as per-season averages and a season by episode grid",
	Long: `episodegrid resolves a show on TVMaze, fetches its episode list and derives
per-season average ratings and a rating grid (rows are episode numbers, columns are seasons).

Run "serve" to expose the pipeline over gRPC and JSON, or query it directly with
"search" and "grid".`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "TVMaze API root (default from config)")
	rootCmd.PersistentFlags().StringVar(&searchMode, "search-mode", "", `Show resolution endpoint: "search" or "single" (default from config)`)
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Timeout of a single CLI operation")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(gridCmd)
}

// effectiveConfig applies the persistent flags on top of the loaded configuration
func effectiveConfig() (*config.Config, error) {
	cfg := *config.GetConfig()
	if baseURL != "" {
		cfg.TVMazeBaseURL = baseURL
	}
	if searchMode != "" {
		cfg.SearchMode = searchMode
	}
	switch cfg.SearchMode {
	case "", config.SearchModeSearch, config.SearchModeSingle:
	default:
		return nil, fmt.Errorf("unknown search mode %q", cfg.SearchMode)
	}
	return &cfg, nil
}

// newPipeline wires the TVMaze client into the report service
func newPipeline(cfg *config.Config) (services.EpisodeGridService, client.Client) {
	c := client.NewClient(cfg)
	return services.NewEpisodeGridService(c, cfg.SearchMode), c
}

func initSentry(cfg *config.Config) {
	if cfg.Sentry.DSN == "" {
		return
	}
	logger := config.GetLogger()
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize Sentry")
		return
	}
	logger.Info().Str("environment", cfg.Sentry.Environment).Msg("Sentry error reporting enabled")
}

func main() {
	if cfg := config.GetConfig(); cfg != nil {
		initSentry(cfg)
	}

	err := rootCmd.Execute()
	sentry.Flush(2 * time.Second)
	if err != nil {
		os.Exit(1)
	}
}
