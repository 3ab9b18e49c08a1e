package cache

import (
	"context"

	"github.com/rs/zerolog"
)

// EvictCallback is called when an entry is evicted from the cache.
// Only the memory provider reports evictions; Redis expires keys server-side.
type EvictCallback func(key string, value []byte)

// Cache stores raw upstream response payloads keyed by request URL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value by key. Returns the value and true if found, or nil and false if not.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a value with the given key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte)

	// Delete removes a key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string)

	// Len returns the number of entries currently in the cache.
	Len() int

	// Close releases any resources held by the cache (e.g., network connections).
	Close() error
}

// Logger receives errors from backends whose operations cannot fail loudly
type Logger interface {
	Error(msg string, err error)
}

type zerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger adapts a zerolog logger to the cache Logger interface
func NewZerologLogger(logger zerolog.Logger) Logger {
	return &zerologLogger{logger: logger}
}

func (l *zerologLogger) Error(msg string, err error) {
	l.logger.Error().Err(err).Msg(msg)
}
