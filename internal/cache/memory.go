package cache

import (
	"bytes"
	"context"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

func init() {
	Register("memory", newMemoryCache)
}

// lruCache keeps response bodies in process. Values are copied on the way in
// so a caller reusing its buffer cannot alter a cached body.
type lruCache struct {
	entries *lru.LRU[string, []byte]
}

func newMemoryCache(cfg ProviderConfig) (Cache, error) {
	size := cfg.Size
	if size <= 0 {
		size = defaultSize
	}
	var onEvict lru.EvictCallback[string, []byte]
	if cfg.OnEvict != nil {
		onEvict = lru.EvictCallback[string, []byte](cfg.OnEvict)
	}
	return &lruCache{
		entries: lru.NewLRU[string, []byte](size, onEvict, cfg.TTL),
	}, nil
}

func (m *lruCache) Get(_ context.Context, key string) ([]byte, bool) {
	return m.entries.Get(key)
}

func (m *lruCache) Set(_ context.Context, key string, value []byte) {
	m.entries.Add(key, bytes.Clone(value))
}

func (m *lruCache) Delete(_ context.Context, key string) {
	m.entries.Remove(key)
}

func (m *lruCache) Len() int {
	return m.entries.Len()
}

func (m *lruCache) Close() error {
	return nil
}
