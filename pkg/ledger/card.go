package ledger

import (
	"time"
)

// CardNumberLength is the required length of a card number.
const CardNumberLength = 16

// card is the in-memory card entity, attached to exactly one primary
// account. Blocking toggles the flag in place; deleting a card detaches it
// from both the account's card list and the ledger's card index.
type card struct {
	number     string
	accountID  string
	expiration time.Time
	blocked    bool
}

func (c *card) snapshot() Card {
	return Card{
		Number:     c.number,
		AccountID:  c.accountID,
		Expiration: c.expiration,
		Blocked:    c.blocked,
	}
}

// Card is a point-in-time copy of a card, safe to hold outside the
// ledger's lock.
type Card struct {
	Number     string
	AccountID  string
	Expiration time.Time
	Blocked    bool
}

// validCardNumber reports whether s is a fixed-length numeric card number.
func validCardNumber(s string) bool {
	if len(s) != CardNumberLength {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
