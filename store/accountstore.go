package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"client-ledger/domain"
	"client-ledger/shared"
)

type AccountStore interface {
	CreateAccount(profile domain.Profile) (string, error)

	FindAccount(id string) (domain.Account, error)

	ApplyCredit(id string, amount decimal.Decimal) (decimal.Decimal, error)

	ApplyDebit(id string, amount decimal.Decimal) (decimal.Decimal, error)

	SnapshotAndReset() []shared.Balance

	FlushWith(persist func([]shared.Balance) error) ([]shared.Balance, error)

	Accounts() []domain.Account
}

// InMemoryAccountStore is the ledger: every account of the process behind a
// single mutex. Each operation holds the lock from its first read to its last
// write, so lookups, duplicate checks and balance updates never interleave.
type InMemoryAccountStore struct {
	sync.Mutex
	accounts   []*domain.Account
	byID       map[string]*domain.Account
	byDocument map[string]*domain.Account
	newID      func() string
}

func NewInMemoryAccountStore() *InMemoryAccountStore {
	return &InMemoryAccountStore{
		accounts:   make([]*domain.Account, 0),
		byID:       make(map[string]*domain.Account),
		byDocument: make(map[string]*domain.Account),
		newID:      uuid.NewString,
	}
}

func (s *InMemoryAccountStore) CreateAccount(profile domain.Profile) (string, error) {
	s.Lock()
	defer s.Unlock()

	if _, exists := s.byDocument[profile.DocumentNumber]; exists {
		return "", fmt.Errorf("%w: document %q", domain.ErrDuplicateIdentity, profile.DocumentNumber)
	}

	id := s.newID()
	for {
		if _, taken := s.byID[id]; !taken {
			break
		}
		id = s.newID()
	}

	account := domain.NewAccount(id, profile)
	s.accounts = append(s.accounts, account)
	s.byID[id] = account
	s.byDocument[profile.DocumentNumber] = account
	return id, nil
}

func (s *InMemoryAccountStore) FindAccount(id string) (domain.Account, error) {
	s.Lock()
	defer s.Unlock()

	account, ok := s.byID[id]
	if !ok {
		return domain.Account{}, fmt.Errorf("%w: id %q", domain.ErrAccountNotFound, id)
	}
	return *account, nil
}

func (s *InMemoryAccountStore) ApplyCredit(id string, amount decimal.Decimal) (decimal.Decimal, error) {
	return s.apply(id, domain.NewCredit(amount))
}

func (s *InMemoryAccountStore) ApplyDebit(id string, amount decimal.Decimal) (decimal.Decimal, error) {
	return s.apply(id, domain.NewDebit(amount))
}

func (s *InMemoryAccountStore) apply(id string, tx domain.Transaction) (decimal.Decimal, error) {
	s.Lock()
	defer s.Unlock()

	account, ok := s.byID[id]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: id %q", domain.ErrAccountNotFound, id)
	}
	if err := account.Apply(tx); err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

// SnapshotAndReset captures every (id, balance) pair and zeroes all balances
// in one lock hold.
func (s *InMemoryAccountStore) SnapshotAndReset() []shared.Balance {
	records, _ := s.FlushWith(nil)
	return records
}

// FlushWith captures every (id, balance) pair and hands the copy to persist
// while the lock is still held. Balances are zeroed only when persist
// returns nil; on error the ledger is left exactly as it was.
func (s *InMemoryAccountStore) FlushWith(persist func([]shared.Balance) error) ([]shared.Balance, error) {
	s.Lock()
	defer s.Unlock()

	records := make([]shared.Balance, 0, len(s.accounts))
	for _, account := range s.accounts {
		records = append(records, shared.Balance{AccountID: account.ID, Amount: account.Balance})
	}

	if persist != nil {
		if err := persist(records); err != nil {
			return nil, err
		}
	}

	for _, account := range s.accounts {
		account.Reset()
	}
	return records, nil
}

// Accounts returns copies of every account in insertion order.
func (s *InMemoryAccountStore) Accounts() []domain.Account {
	s.Lock()
	defer s.Unlock()

	copied := make([]domain.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		copied = append(copied, *account)
	}
	return copied
}

func (s *InMemoryAccountStore) Len() int {
	s.Lock()
	defer s.Unlock()
	return len(s.accounts)
}

var _ AccountStore = (*InMemoryAccountStore)(nil)
