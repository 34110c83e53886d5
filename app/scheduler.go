package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron"
	"go.uber.org/zap"
)

// FlushScheduler stores and resets ledger balances on a cron schedule
// (robfig/cron syntax with a seconds field, or descriptors such as @daily),
// evaluated in UTC so it rolls over with snapshot file names.
type FlushScheduler struct {
	cron    *cron.Cron
	service *LedgerService
	logger  *zap.Logger
}

func NewFlushScheduler(spec string, service *LedgerService, logger *zap.Logger) (*FlushScheduler, error) {
	s := &FlushScheduler{
		cron:    cron.NewWithLocation(time.UTC),
		service: service,
		logger:  logger,
	}
	if err := s.cron.AddFunc(spec, s.flush); err != nil {
		return nil, fmt.Errorf("invalid flush schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *FlushScheduler) Start() {
	s.logger.Info("Starting flush scheduler...")
	s.cron.Start()
}

func (s *FlushScheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("Flush scheduler stopped.")
}

// Next reports when the next flush is due.
func (s *FlushScheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *FlushScheduler) flush() {
	result, err := s.service.StoreBalances(context.Background())
	if err != nil {
		s.logger.Error("Scheduled flush failed", zap.Error(err))
		return
	}
	s.logger.Info("Scheduled flush completed", zap.String("file", result.Path), zap.Int("accounts", len(result.Records)))
}
