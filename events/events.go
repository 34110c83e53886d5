package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

type BaseEvent struct {
	EventID   uuid.UUID `json:"eventId"`
	AccountID string    `json:"accountId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

type Event interface {
	GetBase() BaseEvent
}

func (e BaseEvent) GetBase() BaseEvent {
	return e
}

const (
	AccountOpenedType  EventType = "AccountOpened"
	CreditAppliedType  EventType = "CreditApplied"
	DebitAppliedType   EventType = "DebitApplied"
	BalancesStoredType EventType = "BalancesStored"
)

func NewBaseEvent(accountID string, eventType EventType) BaseEvent {
	return BaseEvent{
		EventID:   uuid.New(),
		AccountID: accountID,
		Timestamp: time.Now().UTC(),
		Type:      eventType,
	}
}
