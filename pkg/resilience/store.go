// Package resilience wraps a storage.Store with a circuit breaker so a
// failing backend stops being hammered by every mutation's save. The
// in-memory ledger stays authoritative either way; an open circuit just
// turns saves into fast failures that the side-effect path logs and
// swallows.
package resilience

import (
	"time"

	"bank-ledger/pkg/logging"
	"bank-ledger/pkg/metrics"
	"bank-ledger/pkg/storage"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Config configures the store circuit breaker.
type Config struct {
	// MaxRequests is the number of probe requests allowed while half-open
	// (default: 1)
	MaxRequests uint32

	// Interval is the closed-state window after which failure counts reset
	// (default: 60s)
	Interval time.Duration

	// Timeout is how long the circuit stays open before probing
	// (default: 30s)
	Timeout time.Duration

	// ConsecutiveFailures is the trip threshold (default: 5)
	ConsecutiveFailures uint32
}

// DefaultConfig returns the default breaker configuration.
func DefaultConfig() Config {
	return Config{
		MaxRequests:         1,
		Interval:            60 * time.Second,
		Timeout:             30 * time.Second,
		ConsecutiveFailures: 5,
	}
}

// Store is a storage.Store guarded by a circuit breaker.
type Store struct {
	inner   storage.Store
	cb      *gobreaker.CircuitBreaker
	logger  *logging.Logger
	metrics metrics.Collector
}

// Wrap guards the given store with a circuit breaker.
func Wrap(inner storage.Store, config Config, collector metrics.Collector) *Store {
	if config.MaxRequests == 0 {
		config.MaxRequests = 1
	}
	if config.Interval == 0 {
		config.Interval = 60 * time.Second
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.ConsecutiveFailures == 0 {
		config.ConsecutiveFailures = 5
	}
	if collector == nil {
		collector = metrics.NoOpCollector{}
	}

	logger := logging.Global().Named("resilience")

	st := &Store{
		inner:   inner,
		logger:  logger,
		metrics: collector,
	}

	st.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "store",
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.ConsecutiveFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("store circuit breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)

			var state metrics.CircuitState
			switch to {
			case gobreaker.StateClosed:
				state = metrics.CircuitClosed
			case gobreaker.StateHalfOpen:
				state = metrics.CircuitHalfOpen
			case gobreaker.StateOpen:
				state = metrics.CircuitOpen
			}
			collector.RecordCircuitState(name, state)
		},
	})

	return st
}

// execute runs op through the breaker, mapping the breaker's own refusals
// to storage.ErrUnavailable.
func (s *Store) execute(op func() error) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, op()
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return storage.ErrUnavailable
	}
	return err
}

// executeLoad runs a load through the breaker, preserving the loaded value.
func executeLoad[T any](s *Store, load func() (T, error)) (T, error) {
	var zero T
	v, err := s.cb.Execute(func() (interface{}, error) {
		return load()
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return zero, storage.ErrUnavailable
		}
		return zero, err
	}
	return v.(T), nil
}

// LoadCustomers loads customers through the breaker.
func (s *Store) LoadCustomers() ([]storage.CustomerRecord, error) {
	return executeLoad(s, s.inner.LoadCustomers)
}

// LoadAccounts loads accounts through the breaker.
func (s *Store) LoadAccounts() ([]storage.AccountRecord, error) {
	return executeLoad(s, s.inner.LoadAccounts)
}

// LoadTransactions loads transactions through the breaker.
func (s *Store) LoadTransactions() ([]storage.TransactionRecord, error) {
	return executeLoad(s, s.inner.LoadTransactions)
}

// LoadCards loads cards through the breaker.
func (s *Store) LoadCards() ([]storage.CardRecord, error) {
	return executeLoad(s, s.inner.LoadCards)
}

// SaveCustomers saves customers through the breaker.
func (s *Store) SaveCustomers(records []storage.CustomerRecord) error {
	return s.execute(func() error { return s.inner.SaveCustomers(records) })
}

// SaveAccounts saves accounts through the breaker.
func (s *Store) SaveAccounts(records []storage.AccountRecord) error {
	return s.execute(func() error { return s.inner.SaveAccounts(records) })
}

// SaveTransactions saves transactions through the breaker.
func (s *Store) SaveTransactions(records []storage.TransactionRecord) error {
	return s.execute(func() error { return s.inner.SaveTransactions(records) })
}

// SaveCards saves cards through the breaker.
func (s *Store) SaveCards(records []storage.CardRecord) error {
	return s.execute(func() error { return s.inner.SaveCards(records) })
}
