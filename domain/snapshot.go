package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"client-ledger/shared"
)

// Snapshot is a point-in-time capture of every (id, balance) pair, as written
// to or read back from one snapshot file.
type Snapshot struct {
	Name     string           `json:"file"`
	Day      time.Time        `json:"day"`
	Sequence int              `json:"sequence"`
	Records  []shared.Balance `json:"records"`
}

func (s Snapshot) Total() decimal.Decimal {
	return shared.Sum(s.Records)
}

func (s Snapshot) Find(accountID string) (decimal.Decimal, bool) {
	for _, r := range s.Records {
		if r.AccountID == accountID {
			return r.Amount, true
		}
	}
	return decimal.Zero, false
}
