package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"client-ledger/events"
)

// Publisher sends ledger events to a Kafka topic as JSON, keyed by account
// id so every event of one account lands on the same partition.
type Publisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewPublisher(brokers []string, topic string, logger *zap.Logger) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			WriteTimeout: 10 * time.Second,
			RequiredAcks: kafka.RequireAll,
			MaxAttempts:  3,
			ErrorLogger:  kafka.LoggerFunc(func(msg string, args ...interface{}) { logger.Error(fmt.Sprintf(msg, args...)) }),
		},
		logger: logger,
	}
}

// newMessage encodes event as a JSON value keyed by account id, with its type
// in the event_type header.
func newMessage(event events.Event) (kafka.Message, error) {
	base := event.GetBase()
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal %s event %s: %w", base.Type, base.EventID, err)
	}
	return kafka.Message{
		Key:   []byte(base.AccountID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(base.Type)},
		},
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	base := event.GetBase()
	msg, err := newMessage(event)
	if err != nil {
		return err
	}

	produceCtx, cancel := context.WithTimeout(ctx, p.writer.WriteTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(produceCtx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event %s to kafka: %w", base.Type, base.EventID, err)
	}
	p.logger.Debug("Event published to Kafka",
		zap.String("topic", p.writer.Topic),
		zap.String("type", string(base.Type)),
		zap.String("key", base.AccountID),
	)
	return nil
}

func (p *Publisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer: %w", err)
	}
	return nil
}

var _ events.Publisher = (*Publisher)(nil)
