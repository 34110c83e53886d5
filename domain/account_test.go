package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"client-ledger/domain"
	"client-ledger/shared"
)

// Helper to create decimals in tests, panics on error
func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAccount_NewAccount(t *testing.T) {
	acc := domain.NewAccount("acc-123", domain.Profile{Name: "Ana", DocumentNumber: "123"})
	if acc.ID != "acc-123" {
		t.Errorf("expected ID 'acc-123', got '%s'", acc.ID)
	}
	if !acc.Balance.IsZero() {
		t.Errorf("expected zero balance, got %s", acc.Balance)
	}
	if acc.DocumentNumber != "123" {
		t.Errorf("expected document '123', got '%s'", acc.DocumentNumber)
	}
}

func TestProfile_Validate(t *testing.T) {
	if err := (domain.Profile{DocumentNumber: "123"}).Validate(); err != nil {
		t.Errorf("expected valid profile, got %v", err)
	}
	var domainErr *domain.DomainError
	if err := (domain.Profile{Name: "Ana"}).Validate(); !errors.As(err, &domainErr) {
		t.Errorf("expected DomainError for empty document, got %T: %v", err, err)
	}
}

func TestAccount_ApplyCredit(t *testing.T) {
	acc := domain.NewAccount("acc-1", domain.Profile{DocumentNumber: "1"})

	t.Run("Success", func(t *testing.T) {
		if err := acc.Apply(domain.NewCredit(dec("100.00"))); err != nil {
			t.Fatalf("Apply credit failed: %v", err)
		}
		if shared.FormatAmount(acc.Balance) != "100.00" {
			t.Errorf("expected 100.00, got %s", shared.FormatAmount(acc.Balance))
		}
	})

	t.Run("ZeroIsAllowed", func(t *testing.T) {
		if err := acc.Apply(domain.NewCredit(decimal.Zero)); err != nil {
			t.Fatalf("zero credit failed: %v", err)
		}
		if !acc.Balance.Equal(dec("100")) {
			t.Errorf("zero credit changed balance to %s", acc.Balance)
		}
	})

	t.Run("FailOnNegativeAmount", func(t *testing.T) {
		err := acc.Apply(domain.NewCredit(dec("-10")))
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
		if !acc.Balance.Equal(dec("100")) {
			t.Errorf("negative credit must not act as a debit, balance is %s", acc.Balance)
		}
	})
}

func TestAccount_ApplyDebit(t *testing.T) {
	acc := domain.NewAccount("acc-1", domain.Profile{DocumentNumber: "1"})
	_ = acc.Apply(domain.NewCredit(dec("100.00")))

	t.Run("Success", func(t *testing.T) {
		if err := acc.Apply(domain.NewDebit(dec("30.00"))); err != nil {
			t.Fatalf("Apply debit failed: %v", err)
		}
		if shared.FormatAmount(acc.Balance) != "70.00" {
			t.Errorf("expected 70.00, got %s", shared.FormatAmount(acc.Balance))
		}
	})

	t.Run("FailOnInsufficientFunds", func(t *testing.T) {
		err := acc.Apply(domain.NewDebit(dec("1000.00")))
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}
		if !acc.Balance.Equal(dec("70")) {
			t.Errorf("balance should not change on error, got %s", acc.Balance)
		}
	})

	t.Run("FailOnNegativeAmount", func(t *testing.T) {
		err := acc.Apply(domain.NewDebit(dec("-10")))
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("FailOnUnknownKind", func(t *testing.T) {
		err := acc.Apply(domain.Transaction{Kind: "refund", Amount: dec("1")})
		var domainErr *domain.DomainError
		if !errors.As(err, &domainErr) {
			t.Errorf("expected DomainError, got %T: %v", err, err)
		}
	})
}

func TestAccount_Reset(t *testing.T) {
	acc := domain.NewAccount("acc-1", domain.Profile{DocumentNumber: "1"})
	_ = acc.Apply(domain.NewCredit(dec("70.00")))
	acc.Reset()
	if !acc.Balance.IsZero() {
		t.Fatalf("expected zero after reset, got %s", acc.Balance)
	}
	if shared.FormatAmount(acc.Balance) != "0.00" {
		t.Errorf("expected reset to keep scale, got %s", shared.FormatAmount(acc.Balance))
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"100.00", "100.00", false},
		{" 0 ", "0", false},
		{"12345678901234567890.123456789", "12345678901234567890.123456789", false},
		{"", "", true},
		{"abc", "", true},
		{"-1", "", true},
		{"0.0000000000000000000000000001", "0.0000000000000000000000000001", false},
		{"99999999999999999999999999999", "99999999999999999999999999999", false},
		{"0.00000000000000000000000000001", "", true},
		{"100000000000000000000000000000", "", true},
		{"1e-20000000", "", true},
		{"1e2000000000", "", true},
		{"0e2000000000", "", true},
		{"0e5", "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := domain.ParseAmount(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidAmount) {
					t.Errorf("expected ErrInvalidAmount, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount failed: %v", err)
			}
			if shared.FormatAmount(got) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, shared.FormatAmount(got))
			}
		})
	}
}
