package domain

import "fmt"

type DomainError struct {
	message string
}

func NewDomainError(format string, args ...interface{}) *DomainError {
	return &DomainError{message: fmt.Sprintf(format, args...)}
}

func (e *DomainError) Error() string {
	return e.message
}

var (
	ErrDuplicateIdentity = NewDomainError("client with this document number already exists")
	ErrAccountNotFound   = NewDomainError("client account not found")
	ErrInsufficientFunds = NewDomainError("insufficient balance to debit")
	ErrInvalidAmount     = NewDomainError("invalid transaction amount")
	ErrStorageFailure    = NewDomainError("snapshot storage failure")
)
