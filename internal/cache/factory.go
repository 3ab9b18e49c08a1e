package cache

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Belphemur/EpisodeGrid/internal/config"
)

const (
	defaultSize = 500
	defaultTTL  = 10 * time.Minute
)

// ProviderConfig holds the configuration needed to create a cache instance.
type ProviderConfig struct {
	// Size is the maximum number of entries kept by the memory provider.
	Size int

	// TTL is the time-to-live for cache entries.
	TTL time.Duration

	// OnEvict is called when an entry is evicted. Not all providers support this.
	OnEvict EvictCallback

	// Logger receives error reports from cache operations. If nil, errors are silently ignored.
	Logger Logger

	// RedisAddress is the Redis server address (e.g., "localhost:6379").
	RedisAddress string

	// RedisPassword is the password for the Redis server.
	RedisPassword string

	// RedisDB is the Redis database number.
	RedisDB int

	// Group labels the episodegrid_cache_* metrics. When non-empty the cache is
	// wrapped with instrumentation and backend errors are counted.
	Group string
}

// Provider is a constructor function that creates a Cache from config.
type Provider func(cfg ProviderConfig) (Cache, error)

var (
	mu        sync.RWMutex
	providers = make(map[string]Provider)
)

// Register registers a cache provider under the given name.
// It panics if the name is already registered or the provider is nil.
func Register(name string, p Provider) {
	mu.Lock()
	defer mu.Unlock()

	if p == nil {
		panic("cache: Register provider is nil")
	}
	if _, exists := providers[name]; exists {
		panic(fmt.Sprintf("cache: provider %q already registered", name))
	}
	providers[name] = p
}

// New creates a new Cache using the named provider and the given config.
// A non-empty cfg.Group wraps the result with metric instrumentation.
func New(name string, cfg ProviderConfig) (Cache, error) {
	mu.RLock()
	p, ok := providers[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("cache: unknown provider %q (registered: %v)", name, RegisteredProviders())
	}

	if cfg.Group == "" {
		return p(cfg)
	}

	group := cfg.Group
	cfg.Logger = &countingLogger{next: cfg.Logger, group: group}
	original := cfg.OnEvict
	cfg.OnEvict = func(key string, value []byte) {
		EvictionsTotal.WithLabelValues(group).Inc()
		if original != nil {
			original(key, value)
		}
	}

	inner, err := p(cfg)
	if err != nil {
		return nil, err
	}

	return newInstrumentedCache(inner, group), nil
}

// RegisteredProviders returns a sorted list of registered provider names.
func RegisteredProviders() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewFromConfig creates the cache described by cfg, instrumented under group.
// Invalid or missing size and TTL values fall back to 500 entries and 10 minutes.
func NewFromConfig(cfg config.CacheConfig, group string, logger Logger) (Cache, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = "memory"
	}

	size := cfg.Size
	if size <= 0 {
		size = defaultSize
	}

	ttl := defaultTTL
	if cfg.TTL != "" {
		if parsed, err := time.ParseDuration(cfg.TTL); err == nil && parsed > 0 {
			ttl = parsed
		}
	}

	return New(provider, ProviderConfig{
		Size:          size,
		TTL:           ttl,
		Logger:        logger,
		RedisAddress:  cfg.Redis.Address,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
		Group:         group,
	})
}
