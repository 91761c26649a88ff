// Package memory provides an in-memory metrics collector, useful for
// tests and for serving a JSON snapshot of counters without a metrics
// backend.
package memory

import (
	"sync"
	"time"

	"bank-ledger/pkg/metrics"
)

// Collector accumulates counts behind a mutex.
type Collector struct {
	mu sync.Mutex

	operations    map[string]*OperationStats
	saves         map[string]*SaveStats
	loads         map[string]*SaveStats
	auditRecords  int64
	auditFailures int64
	queueDepth    int
	circuitStates map[string]string
}

// OperationStats aggregates one ledger operation.
type OperationStats struct {
	Count    int64
	Failures int64
	Errors   map[string]int64
	Total    time.Duration
}

// SaveStats aggregates persistence activity for one collection.
type SaveStats struct {
	Count    int64
	Failures int64
	Total    time.Duration
}

// NewCollector creates an empty in-memory collector.
func NewCollector() *Collector {
	return &Collector{
		operations:    make(map[string]*OperationStats),
		saves:         make(map[string]*SaveStats),
		loads:         make(map[string]*SaveStats),
		circuitStates: make(map[string]string),
	}
}

// RecordOperation counts one ledger operation.
func (c *Collector) RecordOperation(op string, success bool, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.operations[op]
	if stats == nil {
		stats = &OperationStats{Errors: make(map[string]int64)}
		c.operations[op] = stats
	}
	stats.Count++
	stats.Total += duration
	if !success {
		stats.Failures++
	}
}

// RecordOperationError counts one classified operation error.
func (c *Collector) RecordOperationError(op string, class string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.operations[op]
	if stats == nil {
		stats = &OperationStats{Errors: make(map[string]int64)}
		c.operations[op] = stats
	}
	stats.Errors[class]++
}

// RecordSave counts one collection save.
func (c *Collector) RecordSave(collection string, success bool, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	record(c.saves, collection, success, duration)
}

// RecordLoad counts one collection load.
func (c *Collector) RecordLoad(collection string, success bool, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	record(c.loads, collection, success, duration)
}

func record(m map[string]*SaveStats, collection string, success bool, duration time.Duration) {
	stats := m[collection]
	if stats == nil {
		stats = &SaveStats{}
		m[collection] = stats
	}
	stats.Count++
	stats.Total += duration
	if !success {
		stats.Failures++
	}
}

// RecordAudit counts one audit record.
func (c *Collector) RecordAudit(success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.auditRecords++
	if !success {
		c.auditFailures++
	}
}

// RecordQueueDepth stores the latest queue depth.
func (c *Collector) RecordQueueDepth(depth int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queueDepth = depth
}

// RecordCircuitState stores the latest circuit state per breaker.
func (c *Collector) RecordCircuitState(name string, state metrics.CircuitState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.circuitStates[name] = state.String()
}

// Snapshot is a copy of all accumulated values.
type Snapshot struct {
	Operations    map[string]OperationStats `json:"operations"`
	Saves         map[string]SaveStats      `json:"saves"`
	Loads         map[string]SaveStats      `json:"loads"`
	AuditRecords  int64                     `json:"audit_records"`
	AuditFailures int64                     `json:"audit_failures"`
	QueueDepth    int                       `json:"queue_depth"`
	CircuitStates map[string]string         `json:"circuit_states"`
}

// Snapshot returns a copy of the collector's current state.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Operations:    make(map[string]OperationStats, len(c.operations)),
		Saves:         make(map[string]SaveStats, len(c.saves)),
		Loads:         make(map[string]SaveStats, len(c.loads)),
		AuditRecords:  c.auditRecords,
		AuditFailures: c.auditFailures,
		QueueDepth:    c.queueDepth,
		CircuitStates: make(map[string]string, len(c.circuitStates)),
	}
	for op, stats := range c.operations {
		copied := *stats
		copied.Errors = make(map[string]int64, len(stats.Errors))
		for class, n := range stats.Errors {
			copied.Errors[class] = n
		}
		snap.Operations[op] = copied
	}
	for col, stats := range c.saves {
		snap.Saves[col] = *stats
	}
	for col, stats := range c.loads {
		snap.Loads[col] = *stats
	}
	for name, state := range c.circuitStates {
		snap.CircuitStates[name] = state
	}
	return snap
}
