package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// MaxAmountScale is the most digits accepted after the decimal point.
	MaxAmountScale = 28
	// MaxAmountIntegerDigits is the most digits accepted before it.
	MaxAmountIntegerDigits = 29
)

// ParseAmount reads a transaction amount exactly as written. It is the
// caller-side check: empty, malformed, negative and out-of-range input are
// rejected.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is required", ErrInvalidAmount)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidAmount, raw)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: amount cannot be negative: %s", ErrInvalidAmount, raw)
	}
	if err := checkAmountRange(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// checkAmountRange looks only at the exponent and coefficient length, so an
// input like "1e-20000000" is refused without ever being expanded.
func checkAmountRange(amount decimal.Decimal) error {
	exp := int64(amount.Exponent())
	if -exp > MaxAmountScale {
		return fmt.Errorf("%w: at most %d decimal places are allowed", ErrInvalidAmount, MaxAmountScale)
	}
	if integerDigits := int64(amount.NumDigits()) + exp; integerDigits > MaxAmountIntegerDigits {
		return fmt.Errorf("%w: at most %d integer digits are allowed", ErrInvalidAmount, MaxAmountIntegerDigits)
	}
	return nil
}
