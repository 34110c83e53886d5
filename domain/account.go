package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Profile carries the client's identity. Only DocumentNumber has meaning to
// the ledger; the rest is kept for display.
type Profile struct {
	Name           string `json:"name"`
	BirthDate      string `json:"birth_date"`
	DocumentNumber string `json:"document_number"`
	Country        string `json:"country"`
}

func (p Profile) Validate() error {
	if p.DocumentNumber == "" {
		return NewDomainError("document number cannot be empty")
	}
	return nil
}

// Account is one client entry in the ledger. Profile fields never change
// after creation; Balance is changed only through Apply and Reset.
type Account struct {
	ID string `json:"id"`
	Profile
	Balance decimal.Decimal `json:"balance"`
}

func NewAccount(id string, profile Profile) *Account {
	return &Account{
		ID:      id,
		Profile: profile,
		Balance: decimal.Zero,
	}
}

type TransactionKind string

const (
	Credit TransactionKind = "credit"
	Debit  TransactionKind = "debit"
)

// Transaction is a balance change request. Credit and Debit share the same
// lookup and locking path and differ only in the rule Apply dispatches to.
type Transaction struct {
	Kind   TransactionKind
	Amount decimal.Decimal
}

func NewCredit(amount decimal.Decimal) Transaction {
	return Transaction{Kind: Credit, Amount: amount}
}

func NewDebit(amount decimal.Decimal) Transaction {
	return Transaction{Kind: Debit, Amount: amount}
}

// Apply mutates the balance by exactly tx.Amount or returns an error and
// leaves the account untouched.
func (a *Account) Apply(tx Transaction) error {
	if tx.Amount.IsNegative() {
		return fmt.Errorf("%w: %s amount cannot be negative: %s", ErrInvalidAmount, tx.Kind, tx.Amount.String())
	}

	switch tx.Kind {
	case Credit:
		a.Balance = a.Balance.Add(tx.Amount)
	case Debit:
		if a.Balance.LessThan(tx.Amount) {
			return fmt.Errorf("%w: client %s requested %s, available %s",
				ErrInsufficientFunds, a.ID, tx.Amount.String(), a.Balance.String())
		}
		a.Balance = a.Balance.Sub(tx.Amount)
	default:
		return NewDomainError("unknown transaction kind %q for client %s", tx.Kind, a.ID)
	}
	return nil
}

// Reset zeroes the balance while keeping its scale, so 70.00 becomes 0.00.
func (a *Account) Reset() {
	a.Balance = decimal.New(0, a.Balance.Exponent())
}
