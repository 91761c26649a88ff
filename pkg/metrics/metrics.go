package metrics

import (
	"time"
)

// Collector defines the interface for collecting ledger metrics.
// Implementations can export metrics to various backends (Prometheus,
// an in-memory snapshot for tests, etc.).
type Collector interface {
	// Ledger operations
	RecordOperation(op string, success bool, duration time.Duration)
	RecordOperationError(op string, class string)

	// Persistence
	RecordSave(collection string, success bool, duration time.Duration)
	RecordLoad(collection string, success bool, duration time.Duration)

	// Audit trail
	RecordAudit(success bool)

	// Side-effect queue
	RecordQueueDepth(depth int)

	// Storage circuit breaker
	RecordCircuitState(name string, state CircuitState)
}

// CircuitState represents the state of a circuit breaker.
type CircuitState int

const (
	// CircuitClosed means the circuit breaker is allowing requests through.
	CircuitClosed CircuitState = iota
	// CircuitOpen means the circuit breaker is blocking requests.
	CircuitOpen
	// CircuitHalfOpen means the circuit breaker is testing if the backend has recovered.
	CircuitHalfOpen
)

// String returns the string representation of the circuit state.
func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// NoOpCollector is a no-op implementation of Collector.
// It's used as the default collector when metrics are not needed.
type NoOpCollector struct{}

// RecordOperation does nothing.
func (NoOpCollector) RecordOperation(op string, success bool, duration time.Duration) {}

// RecordOperationError does nothing.
func (NoOpCollector) RecordOperationError(op string, class string) {}

// RecordSave does nothing.
func (NoOpCollector) RecordSave(collection string, success bool, duration time.Duration) {}

// RecordLoad does nothing.
func (NoOpCollector) RecordLoad(collection string, success bool, duration time.Duration) {}

// RecordAudit does nothing.
func (NoOpCollector) RecordAudit(success bool) {}

// RecordQueueDepth does nothing.
func (NoOpCollector) RecordQueueDepth(depth int) {}

// RecordCircuitState does nothing.
func (NoOpCollector) RecordCircuitState(name string, state CircuitState) {}
