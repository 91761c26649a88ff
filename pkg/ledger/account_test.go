package ledger

import (
	"testing"
	"time"
)

func TestParseAccountType(t *testing.T) {
	if kind, err := ParseAccountType("PRIMARY"); err != nil || kind != Primary {
		t.Errorf("ParseAccountType(PRIMARY) = %v, %v", kind, err)
	}
	if kind, err := ParseAccountType("SAVINGS"); err != nil || kind != Savings {
		t.Errorf("ParseAccountType(SAVINGS) = %v, %v", kind, err)
	}
	if _, err := ParseAccountType("primary"); err == nil {
		t.Error("Expected error for lowercase type")
	}
	if _, err := ParseAccountType(""); err == nil {
		t.Error("Expected error for empty type")
	}
}

func TestParseTransactionType(t *testing.T) {
	if kind, err := ParseTransactionType("DEPOSIT"); err != nil || kind != Deposit {
		t.Errorf("ParseTransactionType(DEPOSIT) = %v, %v", kind, err)
	}
	if kind, err := ParseTransactionType("WITHDRAWAL"); err != nil || kind != Withdrawal {
		t.Errorf("ParseTransactionType(WITHDRAWAL) = %v, %v", kind, err)
	}
	if _, err := ParseTransactionType("TRANSFER"); err == nil {
		t.Error("Expected error for unknown type")
	}
}

func TestTransaction_Signed(t *testing.T) {
	deposit := Transaction{Type: Deposit, Amount: 100}
	if deposit.Signed() != 100 {
		t.Errorf("Expected 100, got %d", deposit.Signed())
	}
	withdrawal := Transaction{Type: Withdrawal, Amount: 100}
	if withdrawal.Signed() != -100 {
		t.Errorf("Expected -100, got %d", withdrawal.Signed())
	}
}

func TestSavingsAccount_ApplyInterest_Rounding(t *testing.T) {
	owner := &customer{id: "c1"}
	now := time.Now()

	tests := []struct {
		balance int64
		rate    float64
		want    int64
		applied bool
	}{
		{10000, 1.5, 150, true},
		{100, 1.5, 2, true}, // 1.5 rounds up
		{99, 1.5, 1, true},  // 1.485 rounds down
		{33, 1.5, 0, false}, // 0.495 rounds to zero, nothing recorded
		{10000, 0, 0, false},
		{0, 1.5, 0, false},
	}
	for _, tt := range tests {
		sav := newSavingsAccount("a1", owner, tt.rate)
		sav.balance = tt.balance

		tx, applied := sav.applyInterest(now)
		if applied != tt.applied {
			t.Errorf("balance=%d rate=%v: applied=%v, want %v", tt.balance, tt.rate, applied, tt.applied)
			continue
		}
		if !applied {
			if sav.balance != tt.balance || len(sav.transactions) != 0 {
				t.Errorf("balance=%d rate=%v: unapplied interest must not change state", tt.balance, tt.rate)
			}
			continue
		}
		if tx.Amount != tt.want || tx.Type != Deposit {
			t.Errorf("balance=%d rate=%v: got %s %d, want DEPOSIT %d", tt.balance, tt.rate, tx.Type, tx.Amount, tt.want)
		}
		if sav.balance != tt.balance+tt.want {
			t.Errorf("balance=%d rate=%v: balance %d, want %d", tt.balance, tt.rate, sav.balance, tt.balance+tt.want)
		}
	}
}

func TestValidCardNumber(t *testing.T) {
	valid := []string{"4000123412341234", "0000000000000000"}
	for _, number := range valid {
		if !validCardNumber(number) {
			t.Errorf("Expected %q to be valid", number)
		}
	}
	invalid := []string{"", "4000", "400012341234123", "40001234123412345", "400012341234123a", "4000-123412341234"}
	for _, number := range invalid {
		if validCardNumber(number) {
			t.Errorf("Expected %q to be invalid", number)
		}
	}
}
