// Package prometheus implements metrics.Collector on top of the
// Prometheus client library.
package prometheus

import (
	"time"

	"bank-ledger/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports ledger metrics to Prometheus.
type Collector struct {
	operations       *prometheus.CounterVec
	operationErrors  *prometheus.CounterVec
	operationLatency *prometheus.HistogramVec

	saves       *prometheus.CounterVec
	saveLatency *prometheus.HistogramVec
	loads       *prometheus.CounterVec
	loadLatency *prometheus.HistogramVec

	auditRecords *prometheus.CounterVec

	queueDepth   prometheus.Gauge
	circuitState *prometheus.GaugeVec
}

// NewCollector creates a Prometheus collector with the given namespace.
func NewCollector(namespace string) *Collector {
	return &Collector{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of ledger operations per operation and status",
			},
			[]string{"operation", "status"},
		),
		operationErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operation_errors_total",
				Help:      "Total number of rejected ledger operations per operation and error class",
			},
			[]string{"operation", "class"},
		),
		operationLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Ledger operation latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		saves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "saves_total",
				Help:      "Total number of collection saves per collection and status",
			},
			[]string{"collection", "status"},
		),
		saveLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "save_duration_seconds",
				Help:      "Collection save latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"collection"},
		),
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "loads_total",
				Help:      "Total number of collection loads per collection and status",
			},
			[]string{"collection", "status"},
		),
		loadLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "load_duration_seconds",
				Help:      "Collection load latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"collection"},
		),
		auditRecords: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "audit_records_total",
				Help:      "Total number of audit records per status",
			},
			[]string{"status"},
		),
		queueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "side_effect_queue_depth",
				Help:      "Current depth of the side-effect queue",
			},
		),
		circuitState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "circuit_state",
				Help:      "Current circuit breaker state (0=closed, 1=open, 2=half-open)",
			},
			[]string{"name"},
		),
	}
}

// Register registers all metrics with the given registerer.
func (c *Collector) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		c.operations,
		c.operationErrors,
		c.operationLatency,
		c.saves,
		c.saveLatency,
		c.loads,
		c.loadLatency,
		c.auditRecords,
		c.queueDepth,
		c.circuitState,
	}
	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// RecordOperation counts one ledger operation.
func (c *Collector) RecordOperation(op string, success bool, duration time.Duration) {
	c.operations.WithLabelValues(op, statusLabel(success)).Inc()
	c.operationLatency.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordOperationError counts one classified operation error.
func (c *Collector) RecordOperationError(op string, class string) {
	c.operationErrors.WithLabelValues(op, class).Inc()
}

// RecordSave counts one collection save.
func (c *Collector) RecordSave(collection string, success bool, duration time.Duration) {
	c.saves.WithLabelValues(collection, statusLabel(success)).Inc()
	c.saveLatency.WithLabelValues(collection).Observe(duration.Seconds())
}

// RecordLoad counts one collection load.
func (c *Collector) RecordLoad(collection string, success bool, duration time.Duration) {
	c.loads.WithLabelValues(collection, statusLabel(success)).Inc()
	c.loadLatency.WithLabelValues(collection).Observe(duration.Seconds())
}

// RecordAudit counts one audit record.
func (c *Collector) RecordAudit(success bool) {
	c.auditRecords.WithLabelValues(statusLabel(success)).Inc()
}

// RecordQueueDepth sets the side-effect queue depth gauge.
func (c *Collector) RecordQueueDepth(depth int) {
	c.queueDepth.Set(float64(depth))
}

// RecordCircuitState sets the circuit state gauge.
func (c *Collector) RecordCircuitState(name string, state metrics.CircuitState) {
	c.circuitState.WithLabelValues(name).Set(float64(state))
}
