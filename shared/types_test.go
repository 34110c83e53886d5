package shared_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"client-ledger/shared"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.RequireFromString("70.00"), "70.00"},
		{decimal.RequireFromString("100.00").Sub(decimal.RequireFromString("30.00")), "70.00"},
		{decimal.Zero, "0"},
		{decimal.New(0, -2), "0.00"},
		{decimal.New(15, 3), "15000"},
		{decimal.RequireFromString("1e-20"), "0.00000000000000000001"},
		{decimal.RequireFromString("-4.5"), "-4.5"},
	}
	for _, tt := range tests {
		if got := shared.FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%s) = %q, want %q", tt.in.String(), got, tt.want)
		}
	}
}

func TestSum(t *testing.T) {
	records := []shared.Balance{
		{AccountID: "a", Amount: decimal.RequireFromString("1.25")},
		{AccountID: "b", Amount: decimal.RequireFromString("2.75")},
	}
	if got := shared.Sum(records); !got.Equal(decimal.NewFromInt(4)) {
		t.Errorf("expected 4, got %s", got)
	}
	if got := shared.Sum(nil); !got.IsZero() {
		t.Errorf("expected zero for no records, got %s", got)
	}
}
