package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"client-ledger/domain"
	"client-ledger/store"
)

func TestNewFlushScheduler_RejectsBadSchedule(t *testing.T) {
	svc := NewLedgerService(store.NewInMemoryAccountStore(), store.NewFileSnapshotStore(t.TempDir()), nil, zap.NewNop())

	_, err := NewFlushScheduler("every tuesday-ish", svc, zap.NewNop())
	assert.Error(t, err)
}

func TestFlushScheduler_Flush(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	svc := NewLedgerService(store.NewInMemoryAccountStore(), store.NewFileSnapshotStore(dir), nil, zap.NewNop())
	ctx := context.Background()

	id, err := svc.CreateAccount(ctx, CreateAccountCommand{Profile: domain.Profile{DocumentNumber: "1"}})
	require.NoError(t, err)
	_, err = svc.Credit(ctx, TransactionCommand{AccountID: id, Amount: decimal.RequireFromString("9.99")})
	require.NoError(t, err)

	s, err := NewFlushScheduler("@daily", svc, zap.NewNop())
	require.NoError(t, err)

	s.Start()
	assert.False(t, s.Next().IsZero(), "a started scheduler knows its next run")
	s.Stop()

	s.flush()

	files, err := svc.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)

	acc, _ := svc.GetAccount(ctx, GetAccountQuery{AccountID: id})
	assert.True(t, acc.Balance.IsZero())
}
