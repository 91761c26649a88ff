// Package storage defines the persistence collaborator contract: flat
// per-collection record types and the Store interface the ledger saves
// through after each mutation and loads from at startup.
//
// The store is a side effect, not the source of truth — the in-memory
// ledger stays authoritative for the running process, and save failures
// are logged and swallowed upstream.
package storage

import (
	"errors"
	"time"
)

// ErrUnavailable is returned when the backing store is temporarily
// refusing operations (for example while a circuit breaker is open).
var ErrUnavailable = errors.New("storage: store unavailable")

// CustomerRecord is the flat persisted form of a customer.
type CustomerRecord struct {
	ID      string
	Name    string
	Surname string
	Age     int
}

// AccountRecord is the flat persisted form of an account.
// The record format carries no interest rate; savings accounts reload
// with the default rate.
type AccountRecord struct {
	ID      string
	Type    string
	OwnerID string
	Balance int64
}

// TransactionRecord is the flat persisted form of a transaction.
// Timestamps are persisted at calendar-date granularity.
type TransactionRecord struct {
	ID        string
	AccountID string
	Type      string
	Amount    int64
	Timestamp time.Time
}

// CardRecord is the flat persisted form of a card.
type CardRecord struct {
	Number     string
	AccountID  string
	Expiration time.Time
	Blocked    bool
}

// Store loads and saves the four entity collections. Save operations
// replace the stored collection with the given one.
type Store interface {
	LoadCustomers() ([]CustomerRecord, error)
	LoadAccounts() ([]AccountRecord, error)
	LoadTransactions() ([]TransactionRecord, error)
	LoadCards() ([]CardRecord, error)

	SaveCustomers([]CustomerRecord) error
	SaveAccounts([]AccountRecord) error
	SaveTransactions([]TransactionRecord) error
	SaveCards([]CardRecord) error
}
