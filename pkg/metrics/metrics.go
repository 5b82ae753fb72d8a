// Package metrics provides Prometheus metrics for the sync pipeline.
//
// A sync run is a batch job, not a server, so metrics live on a dedicated
// registry and are either pushed to a Prometheus Pushgateway at the end of
// the run or discarded with the process.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Manager owns the metric set for one process.
type Manager struct {
	namespace string
	registry  *prometheus.Registry

	domainsFetched prometheus.Counter
	boardItems     prometheus.Counter
	matches        prometheus.Counter
	updates        prometheus.Counter
	updateFailures prometheus.Counter
	skips          prometheus.Counter

	runDuration prometheus.Gauge
	lastRunUnix prometheus.Gauge
}

// New constructs a Manager and registers all metrics on its registry.
func New(opts ...Option) *Manager {
	m := &Manager{
		namespace: "ssc_sync",
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.domainsFetched = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "scored_domains_fetched_total",
		Help:      "Scored domains retrieved from the ratings provider.",
	})
	m.boardItems = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "board_items_fetched_total",
		Help:      "Items retrieved from the tracking board.",
	})
	m.matches = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "matches_total",
		Help:      "Board items matched to a complete rating.",
	})
	m.updates = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "updates_total",
		Help:      "Board items successfully updated.",
	})
	m.updateFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "update_failures_total",
		Help:      "Board item updates that failed.",
	})
	m.skips = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "skips_total",
		Help:      "Board items skipped (no match, no rating, or no domain).",
	})
	m.runDuration = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "run_duration_seconds",
		Help:      "Wall-clock duration of the last sync run.",
	})
	m.lastRunUnix = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time at which the last sync run finished.",
	})

	m.registry.MustRegister(
		m.domainsFetched,
		m.boardItems,
		m.matches,
		m.updates,
		m.updateFailures,
		m.skips,
		m.runDuration,
		m.lastRunUnix,
	)
	return m
}

// AddFetched records scored domains retrieved from the ratings provider.
func (m *Manager) AddFetched(n int) { m.domainsFetched.Add(float64(n)) }

// AddItems records items retrieved from the board.
func (m *Manager) AddItems(n int) { m.boardItems.Add(float64(n)) }

// AddMatched records matches emitted by the join.
func (m *Manager) AddMatched(n int) { m.matches.Add(float64(n)) }

// AddUpdated records successful board updates.
func (m *Manager) AddUpdated(n int) { m.updates.Add(float64(n)) }

// AddFailed records failed board updates.
func (m *Manager) AddFailed(n int) { m.updateFailures.Add(float64(n)) }

// AddSkipped records skipped board items.
func (m *Manager) AddSkipped(n int) { m.skips.Add(float64(n)) }

// ObserveRun records the duration and completion time of a run.
func (m *Manager) ObserveRun(d time.Duration) {
	m.runDuration.Set(d.Seconds())
	m.lastRunUnix.Set(float64(time.Now().Unix()))
}

// Gatherer exposes the underlying registry, mainly for tests.
func (m *Manager) Gatherer() prometheus.Gatherer { return m.registry }

// Push delivers the registry to a Pushgateway, grouped by job and the given
// labels. Callers treat a push failure as non-fatal: the sync itself already
// succeeded or failed on its own terms.
func (m *Manager) Push(ctx context.Context, url, job string, grouping map[string]string) error {
	p := push.New(url, job).Gatherer(m.registry)
	for k, v := range grouping {
		p = p.Grouping(k, v)
	}
	if err := p.PushContext(ctx); err != nil {
		return errPush(err)
	}
	return nil
}
