package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exports cache activity to Prometheus. A nil *Metrics records
// nothing, so caches built without WithMetrics pay no cost.
type Metrics struct {
	lookups     *prometheus.CounterVec
	computes    *prometheus.CounterVec
	evictions   prometheus.Counter
	expirations prometheus.Counter
	entries     prometheus.Gauge
}

// NewMetrics registers the cache collectors with reg. Pass a fresh
// prometheus.NewRegistry() per cache in tests; a nil reg creates collectors
// that are not registered anywhere.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		lookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cortex_outline",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Cache lookups by result (hit, miss).",
		}, []string{"result"}),
		computes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cortex_outline",
			Subsystem: "cache",
			Name:      "computes_total",
			Help:      "Computations started on a miss, by outcome (ok, error).",
		}, []string{"outcome"}),
		evictions: f.NewCounter(prometheus.CounterOpts{
			Namespace: "cortex_outline",
			Subsystem: "cache",
			Name:      "evictions_total",
			Help:      "Entries evicted because the cache was at capacity.",
		}),
		expirations: f.NewCounter(prometheus.CounterOpts{
			Namespace: "cortex_outline",
			Subsystem: "cache",
			Name:      "expirations_total",
			Help:      "Entries removed on read because their TTL had elapsed.",
		}),
		entries: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "cortex_outline",
			Subsystem: "cache",
			Name:      "entries",
			Help:      "Entries currently stored.",
		}),
	}
}

func (m *Metrics) hit() {
	if m != nil {
		m.lookups.WithLabelValues("hit").Inc()
	}
}

func (m *Metrics) miss() {
	if m != nil {
		m.lookups.WithLabelValues("miss").Inc()
	}
}

func (m *Metrics) computed(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.computes.WithLabelValues("error").Inc()
		return
	}
	m.computes.WithLabelValues("ok").Inc()
}

func (m *Metrics) evicted() {
	if m != nil {
		m.evictions.Inc()
	}
}

func (m *Metrics) expired() {
	if m != nil {
		m.expirations.Inc()
	}
}

func (m *Metrics) setEntries(n int) {
	if m != nil {
		m.entries.Set(float64(n))
	}
}
