// Package prom adapts hashentry.Metrics to Prometheus collectors, mirroring
// the shape of a typical cache metrics exporter: one adapter struct holding
// pre-registered collectors, constructed once per registerer and handed to
// hashentry.Config.Metrics.
package prom

import (
	"github.com/ohcgo/ohc/hashentry"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics implements hashentry.Metrics on top of a set of Prometheus
// collectors registered under the given namespace.
type Metrics struct {
	entriesCreated   prometheus.Counter
	blocksAllocated  prometheus.Counter
	allocationFailed prometheus.Counter
	lruWarnTotal     prometheus.Counter
	lruWarnLoops     prometheus.Histogram
	removeAllFreed   prometheus.Counter
}

// New registers the adapter's collectors on reg and returns the adapter.
// namespace is used as the Prometheus metric namespace (e.g. "ohc").
func New(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		entriesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hashentry",
			Name:      "entries_created_total",
			Help:      "Number of entries successfully created.",
		}),
		blocksAllocated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hashentry",
			Name:      "blocks_allocated_total",
			Help:      "Number of blocks consumed by created entries.",
		}),
		allocationFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hashentry",
			Name:      "allocation_failed_total",
			Help:      "Number of CreateEntry calls that failed due to allocator exhaustion.",
		}),
		lruWarnTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hashentry",
			Name:      "lru_warn_total",
			Help:      "Number of lookups that traversed at least LRUWarnThreshold links.",
		}),
		lruWarnLoops: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "hashentry",
			Name:      "lru_warn_loops",
			Help:      "Distribution of LRU link counts for lookups that crossed LRUWarnThreshold.",
			Buckets:   prometheus.ExponentialBuckets(64, 2, 12),
		}),
		removeAllFreed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hashentry",
			Name:      "remove_all_freed_total",
			Help:      "Number of entries freed by RemoveAll calls.",
		}),
	}
	reg.MustRegister(
		m.entriesCreated,
		m.blocksAllocated,
		m.allocationFailed,
		m.lruWarnTotal,
		m.lruWarnLoops,
		m.removeAllFreed,
	)
	return m
}

func (m *Metrics) EntryCreated(blocks int) {
	m.entriesCreated.Inc()
	m.blocksAllocated.Add(float64(blocks))
}

func (m *Metrics) AllocationFailed() { m.allocationFailed.Inc() }

func (m *Metrics) LRUWarn(loops int) {
	m.lruWarnTotal.Inc()
	m.lruWarnLoops.Observe(float64(loops))
}

func (m *Metrics) RemoveAllCompleted(freed int) { m.removeAllFreed.Add(float64(freed)) }

var _ hashentry.Metrics = (*Metrics)(nil)

// ArenaCollector exports arena.Stats as gauges. It implements
// prometheus.Collector, so it can be registered directly and scraped
// on-demand rather than pushed on every allocation.
type ArenaCollector struct {
	statsFn func() (total, free, used int)

	totalDesc *prometheus.Desc
	freeDesc  *prometheus.Desc
	usedDesc  *prometheus.Desc
}

// NewArenaCollector wraps statsFn, typically a closure over *arena.Arena.Stats.
func NewArenaCollector(namespace string, statsFn func() (total, free, used int)) *ArenaCollector {
	return &ArenaCollector{
		statsFn:   statsFn,
		totalDesc: prometheus.NewDesc(namespace+"_arena_blocks_total", "Total blocks in the arena.", nil, nil),
		freeDesc:  prometheus.NewDesc(namespace+"_arena_blocks_free", "Free blocks in the arena.", nil, nil),
		usedDesc:  prometheus.NewDesc(namespace+"_arena_blocks_used", "Used blocks in the arena.", nil, nil),
	}
}

func (c *ArenaCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalDesc
	ch <- c.freeDesc
	ch <- c.usedDesc
}

func (c *ArenaCollector) Collect(ch chan<- prometheus.Metric) {
	total, free, used := c.statsFn()
	ch <- prometheus.MustNewConstMetric(c.totalDesc, prometheus.GaugeValue, float64(total))
	ch <- prometheus.MustNewConstMetric(c.freeDesc, prometheus.GaugeValue, float64(free))
	ch <- prometheus.MustNewConstMetric(c.usedDesc, prometheus.GaugeValue, float64(used))
}

var _ prometheus.Collector = (*ArenaCollector)(nil)
