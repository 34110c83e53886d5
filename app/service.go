package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"client-ledger/domain"
	"client-ledger/events"
	"client-ledger/shared"
	"client-ledger/store"
)

// LedgerService is the application layer between the outer surfaces (HTTP,
// CLI, scheduler) and the ledger. It owns no state of its own: accounts live
// in the AccountStore and snapshots in the SnapshotStore.
type LedgerService struct {
	accounts  store.AccountStore
	snapshots store.SnapshotStore
	publisher events.Publisher
	logger    *zap.Logger
}

func NewLedgerService(accounts store.AccountStore, snapshots store.SnapshotStore, publisher events.Publisher, logger *zap.Logger) *LedgerService {
	if accounts == nil || snapshots == nil {
		panic("app: AccountStore and SnapshotStore must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if publisher == nil {
		publisher = events.NewLogPublisher(logger)
	}
	return &LedgerService{
		accounts:  accounts,
		snapshots: snapshots,
		publisher: publisher,
		logger:    logger,
	}
}

// --- Command Handlers ---

func (s *LedgerService) CreateAccount(ctx context.Context, cmd CreateAccountCommand) (string, error) {
	id, err := s.accounts.CreateAccount(cmd.Profile)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			s.logger.Warn("Client already exists", zap.String("document_number", cmd.Profile.DocumentNumber))
			return "", err
		}
		return "", fmt.Errorf("failed to create client with document %q: %w", cmd.Profile.DocumentNumber, err)
	}

	s.logger.Info("Client created", zap.String("client_id", id), zap.String("document_number", cmd.Profile.DocumentNumber))
	s.publish(ctx, events.AccountOpenedEvent{
		BaseEvent:      events.NewBaseEvent(id, events.AccountOpenedType),
		DocumentNumber: cmd.Profile.DocumentNumber,
	})
	return id, nil
}

func (s *LedgerService) Credit(ctx context.Context, cmd TransactionCommand) (TransactionResult, error) {
	return s.processTransaction(ctx, domain.Credit, cmd)
}

func (s *LedgerService) Debit(ctx context.Context, cmd TransactionCommand) (TransactionResult, error) {
	return s.processTransaction(ctx, domain.Debit, cmd)
}

func (s *LedgerService) processTransaction(ctx context.Context, kind domain.TransactionKind, cmd TransactionCommand) (TransactionResult, error) {
	var (
		balance decimal.Decimal
		err     error
	)
	switch kind {
	case domain.Credit:
		balance, err = s.accounts.ApplyCredit(cmd.AccountID, cmd.Amount)
	case domain.Debit:
		balance, err = s.accounts.ApplyDebit(cmd.AccountID, cmd.Amount)
	default:
		return TransactionResult{}, domain.NewDomainError("unknown transaction kind %q", kind)
	}

	fields := []zap.Field{
		zap.String("client_id", cmd.AccountID),
		zap.String("kind", string(kind)),
		zap.String("amount", shared.FormatAmount(cmd.Amount)),
	}
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			s.logger.Warn("Transaction rejected", append(fields, zap.Error(err))...)
			return TransactionResult{}, err
		}
		s.logger.Error("Transaction failed", append(fields, zap.Error(err))...)
		return TransactionResult{}, fmt.Errorf("%s for client %s failed: %w", kind, cmd.AccountID, err)
	}

	s.logger.Info("Transaction applied", append(fields, zap.String("new_balance", shared.FormatAmount(balance)))...)

	if kind == domain.Credit {
		s.publish(ctx, events.CreditAppliedEvent{
			BaseEvent:  events.NewBaseEvent(cmd.AccountID, events.CreditAppliedType),
			Amount:     cmd.Amount,
			NewBalance: balance,
		})
	} else {
		s.publish(ctx, events.DebitAppliedEvent{
			BaseEvent:  events.NewBaseEvent(cmd.AccountID, events.DebitAppliedType),
			Amount:     cmd.Amount,
			NewBalance: balance,
		})
	}

	return TransactionResult{AccountID: cmd.AccountID, Kind: kind, NewBalance: balance}, nil
}

// StoreBalances writes every balance to a new snapshot file and zeroes the
// ledger, as one step under the ledger lock. When the write fails nothing is
// reset and the storage error is returned.
func (s *LedgerService) StoreBalances(ctx context.Context) (SnapshotResult, error) {
	var path string
	records, err := s.accounts.FlushWith(func(records []shared.Balance) error {
		var saveErr error
		path, saveErr = s.snapshots.Save(records)
		return saveErr
	})
	if err != nil {
		s.logger.Error("Failed to store balances, ledger left untouched", zap.Error(err))
		return SnapshotResult{}, fmt.Errorf("failed to store balances: %w", err)
	}

	result := SnapshotResult{Path: path, Records: records}
	if file, ok := store.ParseSnapshotName(filepath.Base(path)); ok {
		result.File = file
	}

	total := shared.Sum(records)
	s.logger.Info("Balances stored and reset",
		zap.String("file", path),
		zap.Int("accounts", len(records)),
		zap.String("total", shared.FormatAmount(total)),
	)
	s.publish(ctx, events.BalancesStoredEvent{
		BaseEvent: events.NewBaseEvent("", events.BalancesStoredType),
		File:      filepath.Base(path),
		Accounts:  len(records),
		Total:     total,
	})
	return result, nil
}

// --- Query Handlers ---

func (s *LedgerService) GetAccount(_ context.Context, query GetAccountQuery) (domain.Account, error) {
	account, err := s.accounts.FindAccount(query.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.Account{}, err
		}
		return domain.Account{}, fmt.Errorf("failed to load client %s: %w", query.AccountID, err)
	}
	return account, nil
}

func (s *LedgerService) ListAccounts(_ context.Context) []domain.Account {
	return s.accounts.Accounts()
}

func (s *LedgerService) ListSnapshots(_ context.Context) ([]store.SnapshotFile, error) {
	return s.snapshots.List()
}

func (s *LedgerService) ReadSnapshot(_ context.Context, name string) (domain.Snapshot, error) {
	return s.snapshots.Read(name)
}

// publish never fails the caller: the ledger has already changed by the time
// an event exists.
func (s *LedgerService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		base := event.GetBase()
		s.logger.Warn("Failed to publish ledger event",
			zap.String("event_id", base.EventID.String()),
			zap.String("type", string(base.Type)),
			zap.Error(err),
		)
	}
}
