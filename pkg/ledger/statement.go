package ledger

import (
	"fmt"
	"time"
)

// Statement is a derived, non-persisted view of one account's transaction
// history within an inclusive date window.
//
// ClosingBalance is the account's balance at generation time, not a
// balance reconstructed as of End; GeneratedAt records when that balance
// was read so callers can tell the two apart.
type Statement struct {
	ID             string
	AccountID      string
	Start          time.Time
	End            time.Time
	Transactions   []Transaction
	ClosingBalance int64
	GeneratedAt    time.Time
}

// GenerateStatement filters an account's history to transactions whose
// timestamp falls within [start, end], both bounds inclusive. A window
// with end before start yields an empty transaction list. The statement
// is a read-only view; nothing is recorded or persisted.
func (l *Ledger) GenerateStatement(accountID string, start, end time.Time) (st Statement, err error) {
	began := time.Now()
	defer func() { l.observe("generateBankStatement", began, err) }()

	l.mu.Lock()
	defer l.mu.Unlock()

	acct, ok := l.accounts[accountID]
	if !ok {
		return Statement{}, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}

	base := acct.base()
	filtered := make([]Transaction, 0)
	for _, tx := range base.transactions {
		if tx.Timestamp.Before(start) || tx.Timestamp.After(end) {
			continue
		}
		filtered = append(filtered, tx)
	}

	return Statement{
		ID:             l.newID(),
		AccountID:      accountID,
		Start:          start,
		End:            end,
		Transactions:   filtered,
		ClosingBalance: base.balance,
		GeneratedAt:    l.now(),
	}, nil
}
