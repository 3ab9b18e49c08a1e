package cache

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// instrumentedCache counts lookups and writes of the wrapped Cache under a group label
type instrumentedCache struct {
	inner   Cache
	group   string
	entries prometheus.GaugeFunc
}

func newInstrumentedCache(inner Cache, group string) *instrumentedCache {
	return &instrumentedCache{
		inner:   inner,
		group:   group,
		entries: registerEntriesGauge(group, inner.Len),
	}
}

func (c *instrumentedCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, ok := c.inner.Get(ctx, key)
	counter := MissesTotal
	if ok {
		counter = HitsTotal
	}
	counter.WithLabelValues(c.group).Inc()
	return val, ok
}

func (c *instrumentedCache) Set(ctx context.Context, key string, value []byte) {
	c.inner.Set(ctx, key, value)
	WritesTotal.WithLabelValues(c.group).Inc()
	EntryBytes.WithLabelValues(c.group).Observe(float64(len(value)))
}

func (c *instrumentedCache) Delete(ctx context.Context, key string) {
	c.inner.Delete(ctx, key)
}

func (c *instrumentedCache) Len() int {
	return c.inner.Len()
}

// Close drops the entries gauge before closing the wrapped cache.
func (c *instrumentedCache) Close() error {
	unregisterEntriesGauge(c.group, c.entries)
	return c.inner.Close()
}

// countingLogger forwards backend errors and counts them per group
type countingLogger struct {
	next  Logger
	group string
}

func (l *countingLogger) Error(msg string, err error) {
	ErrorsTotal.WithLabelValues(l.group).Inc()
	if l.next != nil {
		l.next.Error(msg, err)
	}
}
