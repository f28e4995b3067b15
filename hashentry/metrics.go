package hashentry

// Metrics exposes hash-entry engine observability hooks. A NoopMetrics
// implementation is provided and used by default; metrics/prom adapts this
// interface to Prometheus.
type Metrics interface {
	// EntryCreated is called after a successful CreateEntry/CreateEntryWithLength,
	// reporting how many blocks the new chain occupies.
	EntryCreated(blocks int)
	// AllocationFailed is called when the allocator could not satisfy a
	// CreateEntry request.
	AllocationFailed()
	// LRUWarn is called when a lookup traverses at least LRUWarnThreshold
	// links, whether or not the rate limiter actually let a log line through.
	LRUWarn(loops int)
	// RemoveAllCompleted reports how many entries RemoveAll freed.
	RemoveAllCompleted(freed int)
}

// NoopMetrics discards every signal. It is safe for concurrent use and is
// the default when Config.Metrics is nil.
type NoopMetrics struct{}

func (NoopMetrics) EntryCreated(int)        {}
func (NoopMetrics) AllocationFailed()       {}
func (NoopMetrics) LRUWarn(int)             {}
func (NoopMetrics) RemoveAllCompleted(int)  {}

var _ Metrics = NoopMetrics{}
