package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Restore outcomes recorded when a cart engine rehydrates its slot.
const (
	RestoreLoaded  = "loaded"
	RestoreEmpty   = "empty"
	RestoreCorrupt = "corrupt"
	RestoreFailed  = "failed"
)

// CartMetrics records cart engine activity.
type CartMetrics struct {
	mutations       *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
	restores        *prometheus.CounterVec
	sessions        prometheus.Gauge
	evictions       prometheus.Counter
}

// NewCartMetrics registers the cart metrics on the provided registerer. A nil registerer
// yields a recorder whose methods are no-ops.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations applied, by kind.",
	}, []string{"mutation"})
	persistFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_persist_failures_total",
		Help: "Cart snapshot writes that failed, by mutation kind.",
	}, []string{"mutation"})
	restores := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_restores_total",
		Help: "Cart slot restores, by outcome.",
	}, []string{"result"})
	sessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cart_sessions_active",
		Help: "Cart engines currently held in memory.",
	})
	evictions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_session_evictions_total",
		Help: "Cart engines dropped from the in-memory registry.",
	})
	reg.MustRegister(mutations, persistFailures, restores, sessions, evictions)
	return &CartMetrics{
		mutations:       mutations,
		persistFailures: persistFailures,
		restores:        restores,
		sessions:        sessions,
		evictions:       evictions,
	}
}

// IncMutation counts one applied mutation.
func (c *CartMetrics) IncMutation(kind string) {
	if c == nil || c.mutations == nil {
		return
	}
	c.mutations.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncPersistFailure counts a snapshot write that did not reach the store.
func (c *CartMetrics) IncPersistFailure(kind string) {
	if c == nil || c.persistFailures == nil {
		return
	}
	c.persistFailures.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncRestore counts a restore by outcome.
func (c *CartMetrics) IncRestore(result string) {
	if c == nil || c.restores == nil {
		return
	}
	c.restores.WithLabelValues(normalizeLabel(result)).Inc()
}

func (c *CartMetrics) SetActiveSessions(n int) {
	if c == nil || c.sessions == nil {
		return
	}
	c.sessions.Set(float64(n))
}

// IncSessionEviction counts an engine dropped from the session registry.
func (c *CartMetrics) IncSessionEviction() {
	if c == nil || c.evictions == nil {
		return
	}
	c.evictions.Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
