package ledger

import (
	"fmt"
	"time"
)

// TransactionType distinguishes the two signed directions of a transaction.
type TransactionType string

const (
	// Deposit credits an account.
	Deposit TransactionType = "DEPOSIT"
	// Withdrawal debits an account.
	Withdrawal TransactionType = "WITHDRAWAL"
)

// ParseTransactionType converts a string to a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case Deposit:
		return Deposit, nil
	case Withdrawal:
		return Withdrawal, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTransactionType, s)
	}
}

// Transaction is an immutable record of a single balance movement.
// Transactions are append-only: once recorded they are never mutated or
// deleted, and an account's balance always equals the sum of its
// transactions' signed amounts.
type Transaction struct {
	ID        string
	AccountID string
	Type      TransactionType
	// Amount is the movement magnitude in minor currency units, always positive.
	Amount    int64
	Timestamp time.Time
}

// Signed returns the amount with the sign implied by the transaction type:
// positive for deposits, negative for withdrawals.
func (t Transaction) Signed() int64 {
	if t.Type == Withdrawal {
		return -t.Amount
	}
	return t.Amount
}
