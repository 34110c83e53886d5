package events

import (
	"github.com/shopspring/decimal"
)

type AccountOpenedEvent struct {
	BaseEvent
	DocumentNumber string `json:"documentNumber"`
}

type CreditAppliedEvent struct {
	BaseEvent
	Amount     decimal.Decimal `json:"amount"`
	NewBalance decimal.Decimal `json:"newBalance"`
}

type DebitAppliedEvent struct {
	BaseEvent
	Amount     decimal.Decimal `json:"amount"`
	NewBalance decimal.Decimal `json:"newBalance"`
}

// BalancesStoredEvent is emitted once per successful flush; it has no
// AccountID because it covers the whole ledger.
type BalancesStoredEvent struct {
	BaseEvent
	File     string          `json:"file"`
	Accounts int             `json:"accounts"`
	Total    decimal.Decimal `json:"total"`
}
