package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent with all HTTP requests.
const DefaultUserAgent = "EpisodeGrid/1.0 (+https://github.com/Belphemur/EpisodeGrid)"

// DefaultTVMazeBaseURL is the public TVMaze API root.
const DefaultTVMazeBaseURL = "https://api.tvmaze.com"

// Search modes select which TVMaze endpoint resolves a free-text query.
const (
	SearchModeSearch = "search" // /search/shows, zero or more scored matches
	SearchModeSingle = "single" // /singlesearch/shows, at most one match
)

type Config struct {
	TVMazeBaseURL         string        `mapstructure:"tvmaze_base_url"`
	SearchMode            string        `mapstructure:"search_mode"`
	ProxyConnectionString string        `mapstructure:"proxy_connection_string"`
	ClientTimeout         string        `mapstructure:"client_timeout"` // Go duration string like "30s", "1h", etc.
	UserAgent             string        `mapstructure:"user_agent"`
	Server                ServerConfig  `mapstructure:"server"`
	HTTP                  HTTPConfig    `mapstructure:"http"`
	Metrics               MetricsConfig `mapstructure:"metrics"`
	LogLevel              string        `mapstructure:"log_level"`
	Cache                 CacheConfig   `mapstructure:"cache"`
	Retry                 RetryConfig   `mapstructure:"retry"`
	Sentry                SentryConfig  `mapstructure:"sentry"`
}

// ServerConfig configures the gRPC listener.
type ServerConfig struct {
	Port    int    `mapstructure:"port"`
	Address string `mapstructure:"address"`
}

// HTTPConfig configures the JSON API listener. It shares Server.Address.
type HTTPConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

type CacheConfig struct {
	Provider string      `mapstructure:"provider"` // "memory", "redis" or "none"
	Size     int         `mapstructure:"size"`     // Maximum number of entries in the LRU cache
	TTL      string      `mapstructure:"ttl"`      // Go duration string like "1h", "24h", etc.
	Redis    RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RetryConfig tunes the HTTP transport retry policy. MaxRetries of 0 disables retries.
type RetryConfig struct {
	MaxRetries int    `mapstructure:"max_retries"`
	Delay      string `mapstructure:"delay"`
	MaxDelay   string `mapstructure:"max_delay"`
}

type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Initialize zerolog with console writer for human-readable output
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: false,
	}).With().Timestamp().Logger()

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	level := zerolog.InfoLevel
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	zerolog.SetGlobalLevel(level)
	logger = logger.Level(level)

	logger.Debug().Str("level", level.String()).Msg("Logging configured")
	globalConfig = config
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variable support
	v.AutomaticEnv()
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = v.BindEnv("log_level", "LOG_LEVEL")

	v.SetDefault("tvmaze_base_url", DefaultTVMazeBaseURL)
	v.SetDefault("search_mode", SearchModeSearch)
	v.SetDefault("client_timeout", "15s")
	v.SetDefault("server.address", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("http.enabled", true)
	v.SetDefault("http.port", 8081)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("cache.provider", "memory")
	v.SetDefault("cache.size", 500)
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("retry.max_retries", 2)
	v.SetDefault("retry.delay", "250ms")
	v.SetDefault("retry.max_delay", "2s")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	return &config, nil
}

func GetConfig() *Config {
	return globalConfig
}

func GetUserAgent() string {
	if globalConfig != nil && globalConfig.UserAgent != "" {
		return globalConfig.UserAgent
	}

	return DefaultUserAgent
}

func GetLogger() zerolog.Logger {
	return logger
}
