// Package writer decouples persistence and audit side effects from the
// ledger's mutation path. Jobs are enqueued inside the ledger's critical
// section and applied by a single worker goroutine, so effects land in the
// same order their mutations occurred.
package writer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"bank-ledger/pkg/logging"
	"bank-ledger/pkg/metrics"

	"go.uber.org/zap"
)

var (
	// ErrQueueClosed is returned when enqueueing after Close.
	ErrQueueClosed = errors.New("writer: queue closed")

	// ErrFlushTimeout is returned when Flush exceeds its deadline.
	ErrFlushTimeout = errors.New("writer: flush timeout")
)

// Job is one deferred side effect: a named closure applying a persistence
// snapshot or an audit record. A failing job is logged and counted, never
// retried and never propagated to the mutation that produced it.
type Job struct {
	Name string
	Run  func() error
}

// Queue is a bounded FIFO of side-effect jobs with exactly one worker.
// Enqueue blocks while the queue is full: side effects carry committed
// mutations and must not be dropped under backpressure.
type Queue struct {
	jobs       chan Job
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	logger     *logging.Logger
	metrics    metrics.Collector

	// Statistics (accessed atomically)
	totalJobs  int64
	failedJobs int64
	inFlight   int64

	// Ticker for periodic queue depth reporting
	depthTicker *time.Ticker
	depthStop   chan struct{}
}

// Config configures the queue.
type Config struct {
	// QueueSize is the bounded queue size (default: 256)
	QueueSize int

	// DepthReportInterval is how often queue depth is reported to
	// metrics (default: 5s)
	DepthReportInterval time.Duration
}

// Stats holds a point-in-time view of queue activity.
type Stats struct {
	QueueDepth int
	TotalJobs  int64
	FailedJobs int64
}

// New creates a queue without metrics.
func New(config Config) *Queue {
	return NewWithMetrics(config, metrics.NoOpCollector{})
}

// NewWithMetrics creates a queue reporting to the given collector.
// The worker starts immediately; the queue must be closed with Close.
func NewWithMetrics(config Config, collector metrics.Collector) *Queue {
	if config.QueueSize <= 0 {
		config.QueueSize = 256
	}
	if config.DepthReportInterval <= 0 {
		config.DepthReportInterval = 5 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())

	q := &Queue{
		jobs:        make(chan Job, config.QueueSize),
		ctx:         ctx,
		cancelFunc:  cancel,
		logger:      logging.Global().Named("writer"),
		metrics:     collector,
		depthTicker: time.NewTicker(config.DepthReportInterval),
		depthStop:   make(chan struct{}),
	}

	q.wg.Add(1)
	go q.worker()
	go q.reportDepth()

	return q
}

// Enqueue adds a job, blocking while the queue is full.
// Returns ErrQueueClosed once Close has been called.
func (q *Queue) Enqueue(job Job) error {
	select {
	case <-q.ctx.Done():
		return ErrQueueClosed
	default:
	}

	select {
	case q.jobs <- job:
		atomic.AddInt64(&q.totalJobs, 1)
		return nil
	case <-q.ctx.Done():
		return ErrQueueClosed
	}
}

// worker applies jobs one at a time, in enqueue order.
func (q *Queue) worker() {
	defer q.wg.Done()

	for {
		select {
		case job := <-q.jobs:
			q.apply(job)
		case <-q.ctx.Done():
			// Drain remaining jobs before exiting
			for {
				select {
				case job := <-q.jobs:
					q.apply(job)
				default:
					return
				}
			}
		}
	}
}

func (q *Queue) apply(job Job) {
	atomic.AddInt64(&q.inFlight, 1)
	defer atomic.AddInt64(&q.inFlight, -1)

	start := time.Now()
	err := job.Run()
	if err != nil {
		atomic.AddInt64(&q.failedJobs, 1)
		q.logger.Error("side effect failed",
			zap.String("job", job.Name),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return
	}
	q.logger.Debug("side effect applied",
		zap.String("job", job.Name),
		zap.Duration("duration", time.Since(start)),
	)
}

// Flush waits until every enqueued job has been applied, or until the
// timeout elapses.
func (q *Queue) Flush(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if len(q.jobs) == 0 && atomic.LoadInt64(&q.inFlight) == 0 {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrFlushTimeout
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// Close stops accepting jobs, drains the queue, and stops the worker.
func (q *Queue) Close() error {
	close(q.depthStop)
	q.depthTicker.Stop()

	q.cancelFunc()
	q.wg.Wait()
	return nil
}

// Stats returns current queue statistics.
func (q *Queue) Stats() Stats {
	return Stats{
		QueueDepth: len(q.jobs),
		TotalJobs:  atomic.LoadInt64(&q.totalJobs),
		FailedJobs: atomic.LoadInt64(&q.failedJobs),
	}
}

// reportDepth periodically reports queue depth to metrics.
func (q *Queue) reportDepth() {
	for {
		select {
		case <-q.depthTicker.C:
			q.metrics.RecordQueueDepth(len(q.jobs))
		case <-q.depthStop:
			return
		}
	}
}
