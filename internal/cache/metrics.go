package cache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "episodegrid"
	metricsSubsystem = "cache"
)

// Response cache metrics, labelled by ProviderConfig.Group.
var (
	HitsTotal = newGroupCounter("hits_total", "Total number of cache hits.")

	MissesTotal = newGroupCounter("misses_total", "Total number of cache misses.")

	WritesTotal = newGroupCounter("writes_total", "Total number of entries written to the cache.")

	// EvictionsTotal only moves for the memory provider; Redis expires keys server-side.
	EvictionsTotal = newGroupCounter("evictions_total", "Total number of entries evicted from the cache.")

	// ErrorsTotal counts backend failures reported through the cache Logger.
	ErrorsTotal = newGroupCounter("errors_total", "Total number of cache backend errors.")

	// EntryBytes observes the size of stored response bodies.
	EntryBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "entry_bytes",
			Help:      "Size in bytes of the values written to the cache.",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
		},
		[]string{"cache"},
	)
)

func newGroupCounter(name, help string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      name,
			Help:      help,
		},
		[]string{"cache"},
	)
}

func init() {
	prometheus.MustRegister(
		HitsTotal,
		MissesTotal,
		WritesTotal,
		EvictionsTotal,
		ErrorsTotal,
		EntryBytes,
	)
}

var (
	entriesMu     sync.Mutex
	entriesGauges = make(map[string]prometheus.GaugeFunc)
	// entriesReg is swapped for an isolated registry in tests.
	entriesReg prometheus.Registerer = prometheus.DefaultRegisterer
)

// registerEntriesGauge exposes lenFunc as the entry count of group, read at scrape time.
// A gauge already registered for group is replaced; the new gauge is returned so its
// owner can later unregister exactly that one.
func registerEntriesGauge(group string, lenFunc func() int) prometheus.GaugeFunc {
	gauge := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Subsystem:   metricsSubsystem,
			Name:        "entries",
			Help:        "Current number of entries in the cache.",
			ConstLabels: prometheus.Labels{"cache": group},
		},
		func() float64 { return float64(lenFunc()) },
	)

	entriesMu.Lock()
	defer entriesMu.Unlock()

	if old, ok := entriesGauges[group]; ok {
		entriesReg.Unregister(old)
	}
	entriesGauges[group] = gauge
	_ = entriesReg.Register(gauge)
	return gauge
}

// unregisterEntriesGauge removes gauge unless another cache of the same group has since replaced it.
func unregisterEntriesGauge(group string, gauge prometheus.GaugeFunc) {
	entriesMu.Lock()
	defer entriesMu.Unlock()

	if current, ok := entriesGauges[group]; ok && current == gauge {
		entriesReg.Unregister(gauge)
		delete(entriesGauges, group)
	}
}
