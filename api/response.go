package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"client-ledger/domain"
	"client-ledger/shared"
)

const (
	statusSuccess = "success"
	statusFail    = "fail"
)

type GenericResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SingleResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

// --- Request Bodies ---

type NewClientRequest struct {
	domain.Profile
}

type TransactionRequest struct {
	ClientID string      `json:"client_id"`
	Amount   AmountField `json:"amount"`
}

// AmountField accepts an amount written either as a JSON string ("10.50")
// or as a bare JSON number (10.50). Both keep every digit as written.
type AmountField string

func (a *AmountField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a number or a numeric string")
	}
	*a = AmountField(n.String())
	return nil
}

func (a AmountField) Decimal() (decimal.Decimal, error) {
	return domain.ParseAmount(string(a))
}

// --- Response Payloads ---

type CreateClientResponse struct {
	ID string `json:"id"`
}

type TransactionResponse struct {
	ClientID   string `json:"client_id"`
	NewBalance string `json:"new_balance"`
}

type ClientResponse struct {
	ID string `json:"id"`
	domain.Profile
	Balance string `json:"balance"`
}

type BalanceRecord struct {
	ClientID string `json:"client_id"`
	Balance  string `json:"balance"`
}

type StoreBalancesResponse struct {
	File    string          `json:"file"`
	Total   string          `json:"total"`
	Records []BalanceRecord `json:"records"`
}

func newClientResponse(account domain.Account) ClientResponse {
	return ClientResponse{
		ID:      account.ID,
		Profile: account.Profile,
		Balance: shared.FormatAmount(account.Balance),
	}
}

func newBalanceRecords(records []shared.Balance) []BalanceRecord {
	out := make([]BalanceRecord, 0, len(records))
	for _, r := range records {
		out = append(out, BalanceRecord{ClientID: r.AccountID, Balance: shared.FormatAmount(r.Amount)})
	}
	return out
}
