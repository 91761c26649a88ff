package ledger

import (
	"errors"
)

// Sentinel errors for the ledger's expected failure modes. All of them are
// recoverable conditions reported to the caller; callers are expected to
// match them with errors.Is since operations wrap them with the offending id.
var (
	// ErrCustomerNotFound is returned when a customer id is not in the index
	ErrCustomerNotFound = errors.New("ledger: customer not found")

	// ErrAccountNotFound is returned when an account id is not in the index
	ErrAccountNotFound = errors.New("ledger: account not found")

	// ErrCardNotFound is returned when a card number is not in the index
	ErrCardNotFound = errors.New("ledger: card not found")

	// ErrInvalidAmount is returned when a transaction amount is not positive
	ErrInvalidAmount = errors.New("ledger: amount must be positive")

	// ErrInvalidAccountType is returned for an unrecognized account type, or
	// for a savings-only operation invoked on a primary account
	ErrInvalidAccountType = errors.New("ledger: invalid account type")

	// ErrInvalidTransactionType is returned for an unrecognized transaction type
	ErrInvalidTransactionType = errors.New("ledger: invalid transaction type")

	// ErrInvalidRate is returned when an interest rate is negative
	ErrInvalidRate = errors.New("ledger: interest rate must be non-negative")

	// ErrInvalidCardNumber is returned when a card number is not a 16-digit string
	ErrInvalidCardNumber = errors.New("ledger: card number must be 16 digits")

	// ErrDuplicateCard is returned when a card number is already registered
	ErrDuplicateCard = errors.New("ledger: card number already registered")

	// ErrCardNotAllowed is returned when attaching a card to a savings account
	ErrCardNotAllowed = errors.New("ledger: cards attach to primary accounts only")

	// ErrSameAccount is returned when a transfer names one account as both
	// source and destination
	ErrSameAccount = errors.New("ledger: transfer requires two distinct accounts")

	// ErrInsufficientFunds is returned when a withdrawal or transfer exceeds
	// the source account's balance
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")

	// ErrCustomerHasAccounts is returned when deleting a customer that still
	// owns accounts
	ErrCustomerHasAccounts = errors.New("ledger: customer still owns accounts")

	// ErrAccountNotEmpty is returned when deleting an account with a non-zero balance
	ErrAccountNotEmpty = errors.New("ledger: account balance must be zero")

	// ErrAccountHasCards is returned when deleting an account with attached cards
	ErrAccountHasCards = errors.New("ledger: account still has cards attached")
)

// IsNotFound checks if the given error indicates an unknown customer,
// account, or card reference.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrCardNotFound)
}

// IsInvalidArgument checks if the given error indicates a rejected input
// value (non-positive amount, bad type string, malformed card number).
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidAccountType) ||
		errors.Is(err, ErrInvalidTransactionType) ||
		errors.Is(err, ErrInvalidRate) ||
		errors.Is(err, ErrInvalidCardNumber) ||
		errors.Is(err, ErrDuplicateCard) ||
		errors.Is(err, ErrCardNotAllowed) ||
		errors.Is(err, ErrSameAccount)
}

// IsInsufficientFunds checks if the given error indicates an overdraw attempt.
func IsInsufficientFunds(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsPreconditionViolation checks if the given error indicates a delete that
// would orphan dependent state.
func IsPreconditionViolation(err error) bool {
	return errors.Is(err, ErrCustomerHasAccounts) ||
		errors.Is(err, ErrAccountNotEmpty) ||
		errors.Is(err, ErrAccountHasCards)
}

// Classify returns a string classification of the error for metrics labels.
func Classify(err error) string {
	switch {
	case err == nil:
		return "none"
	case IsNotFound(err):
		return "not_found"
	case IsInsufficientFunds(err):
		return "insufficient_funds"
	case IsPreconditionViolation(err):
		return "precondition"
	case IsInvalidArgument(err):
		return "invalid_argument"
	default:
		return "other"
	}
}
