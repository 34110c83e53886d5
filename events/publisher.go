package events

import (
	"context"

	"go.uber.org/zap"
)

// Publisher hands ledger events to whatever is listening downstream.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// LogPublisher writes every event to the structured log. It is the default
// when no broker is configured.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, event Event) error {
	base := event.GetBase()
	p.logger.Info("Ledger event",
		zap.String("event_id", base.EventID.String()),
		zap.String("type", string(base.Type)),
		zap.String("account_id", base.AccountID),
		zap.Any("event", event),
	)
	return nil
}

var _ Publisher = (*LogPublisher)(nil)
