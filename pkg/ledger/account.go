package ledger

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// AccountType distinguishes the two account variants.
type AccountType string

const (
	// Primary is a transactional account that may hold cards.
	Primary AccountType = "PRIMARY"
	// Savings is an interest-bearing account; it carries a rate and never holds cards.
	Savings AccountType = "SAVINGS"
)

// DefaultInterestRate is the rate (percent) assigned to newly created
// savings accounts.
const DefaultInterestRate = 1.5

// ParseAccountType converts a string to an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch AccountType(s) {
	case Primary:
		return Primary, nil
	case Savings:
		return Savings, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAccountType, s)
	}
}

// account is the capability shared by both in-memory account variants.
// All mutations happen under the ledger's lock.
type account interface {
	base() *accountBase
	snapshot() Account
}

// accountBase holds the state and movement behavior common to both
// variants; the two variants only differ in interest handling.
type accountBase struct {
	id           string
	kind         AccountType
	owner        *customer
	balance      int64
	transactions []Transaction
	cards        []*card
}

func (a *accountBase) base() *accountBase {
	return a
}

// deposit credits the account and appends the DEPOSIT record. Amount
// positivity is enforced at the ledger boundary; callers pass validated
// input. Caller holds the ledger lock.
func (a *accountBase) deposit(amount int64, at time.Time) Transaction {
	a.balance += amount
	tx := Transaction{
		ID:        uuid.NewString(),
		AccountID: a.id,
		Type:      Deposit,
		Amount:    amount,
		Timestamp: at,
	}
	a.transactions = append(a.transactions, tx)
	return tx
}

// withdraw debits the account and appends the WITHDRAWAL record, failing
// without side effects when the amount exceeds the balance. Caller holds
// the ledger lock.
func (a *accountBase) withdraw(amount int64, at time.Time) (Transaction, error) {
	if amount > a.balance {
		return Transaction{}, fmt.Errorf("%w: account %s balance %d, requested %d",
			ErrInsufficientFunds, a.id, a.balance, amount)
	}
	a.balance -= amount
	tx := Transaction{
		ID:        uuid.NewString(),
		AccountID: a.id,
		Type:      Withdrawal,
		Amount:    amount,
		Timestamp: at,
	}
	a.transactions = append(a.transactions, tx)
	return tx, nil
}

// attachCard appends a card to the account. Caller holds the ledger lock.
func (a *accountBase) attachCard(c *card) {
	a.cards = append(a.cards, c)
}

// detachCard removes a card from the account by number. Caller holds the
// ledger lock.
func (a *accountBase) detachCard(number string) {
	for i, c := range a.cards {
		if c.number == number {
			a.cards = append(a.cards[:i], a.cards[i+1:]...)
			return
		}
	}
}

func (a *accountBase) cardNumbers() []string {
	out := make([]string, len(a.cards))
	for i, c := range a.cards {
		out[i] = c.number
	}
	return out
}

// primaryAccount is the transactional account variant.
type primaryAccount struct {
	accountBase
}

func newPrimaryAccount(id string, owner *customer) *primaryAccount {
	return &primaryAccount{accountBase{id: id, kind: Primary, owner: owner}}
}

func (p *primaryAccount) snapshot() Account {
	return Account{
		ID:          p.id,
		Type:        Primary,
		OwnerID:     p.owner.id,
		Balance:     p.balance,
		CardNumbers: p.cardNumbers(),
	}
}

// savingsAccount is the interest-bearing account variant.
type savingsAccount struct {
	accountBase
	rate float64
}

func newSavingsAccount(id string, owner *customer, rate float64) *savingsAccount {
	return &savingsAccount{
		accountBase: accountBase{id: id, kind: Savings, owner: owner},
		rate:        rate,
	}
}

// applyInterest computes balance*rate/100 rounded to a whole minor unit
// and credits it through the deposit path, so the interest shows up in the
// history as a DEPOSIT transaction. A zero interest amount records nothing.
// Caller holds the ledger lock.
func (s *savingsAccount) applyInterest(at time.Time) (Transaction, bool) {
	interest := int64(math.Round(float64(s.balance) * s.rate / 100))
	if interest <= 0 {
		return Transaction{}, false
	}
	return s.deposit(interest, at), true
}

func (s *savingsAccount) snapshot() Account {
	return Account{
		ID:           s.id,
		Type:         Savings,
		OwnerID:      s.owner.id,
		Balance:      s.balance,
		InterestRate: s.rate,
		CardNumbers:  s.cardNumbers(),
	}
}

// Account is a point-in-time copy of an account, safe to hold outside the
// ledger's lock.
type Account struct {
	ID      string
	Type    AccountType
	OwnerID string
	// Balance is in minor currency units.
	Balance int64
	// InterestRate is the savings rate in percent; zero for primary accounts.
	InterestRate float64
	CardNumbers  []string
}
