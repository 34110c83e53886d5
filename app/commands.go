package app

import (
	"github.com/shopspring/decimal"

	"client-ledger/domain"
	"client-ledger/shared"
	"client-ledger/store"
)

// --- Command Struct Definitions ---

type CreateAccountCommand struct {
	Profile domain.Profile
}

// TransactionCommand is shared by credits and debits; the service method
// called decides which rule applies.
type TransactionCommand struct {
	AccountID string
	Amount    decimal.Decimal
}

// --- Query Structures ---

type GetAccountQuery struct {
	AccountID string
}

// --- Results ---

type TransactionResult struct {
	AccountID  string
	Kind       domain.TransactionKind
	NewBalance decimal.Decimal
}

type SnapshotResult struct {
	File    store.SnapshotFile
	Path    string
	Records []shared.Balance
}
