package shared

import "github.com/shopspring/decimal"

// Balance is one (account, amount) pair as captured by a ledger snapshot.
type Balance struct {
	AccountID string          `json:"account_id"`
	Amount    decimal.Decimal `json:"balance"`
}

// FormatAmount renders d in full precision, keeping its scale and never
// switching to scientific notation: 100.00 - 30.00 renders as "70.00".
func FormatAmount(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// Sum adds up the amounts of every record.
func Sum(records []Balance) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}
