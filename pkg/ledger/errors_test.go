package ledger

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorPredicates(t *testing.T) {
	if !IsNotFound(ErrCustomerNotFound) || !IsNotFound(ErrAccountNotFound) || !IsNotFound(ErrCardNotFound) {
		t.Error("Expected not-found sentinels to match IsNotFound")
	}
	if !IsInsufficientFunds(ErrInsufficientFunds) {
		t.Error("Expected ErrInsufficientFunds to match IsInsufficientFunds")
	}
	if !IsPreconditionViolation(ErrCustomerHasAccounts) || !IsPreconditionViolation(ErrAccountNotEmpty) || !IsPreconditionViolation(ErrAccountHasCards) {
		t.Error("Expected precondition sentinels to match IsPreconditionViolation")
	}
	if !IsInvalidArgument(ErrInvalidAmount) || !IsInvalidArgument(ErrSameAccount) || !IsInvalidArgument(ErrDuplicateCard) {
		t.Error("Expected invalid-argument sentinels to match IsInvalidArgument")
	}
	if IsNotFound(ErrInvalidAmount) || IsInvalidArgument(ErrAccountNotFound) {
		t.Error("Predicates must not cross-match")
	}
}

func TestErrorPredicates_Wrapped(t *testing.T) {
	// Operations wrap sentinels with the offending id; predicates must see
	// through the wrapping.
	wrapped := fmt.Errorf("%w: account a1", ErrAccountNotFound)
	if !IsNotFound(wrapped) {
		t.Error("Expected wrapped error to match IsNotFound")
	}
	if !errors.Is(wrapped, ErrAccountNotFound) {
		t.Error("Expected errors.Is to match the sentinel")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "none"},
		{ErrAccountNotFound, "not_found"},
		{fmt.Errorf("%w: x", ErrCustomerNotFound), "not_found"},
		{ErrInsufficientFunds, "insufficient_funds"},
		{ErrAccountNotEmpty, "precondition"},
		{ErrInvalidAmount, "invalid_argument"},
		{errors.New("boom"), "other"},
	}
	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
