package events_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"client-ledger/events"
)

func TestNewBaseEvent(t *testing.T) {
	a := events.NewBaseEvent("acc-1", events.CreditAppliedType)
	b := events.NewBaseEvent("acc-1", events.CreditAppliedType)
	if a.EventID == b.EventID {
		t.Errorf("expected distinct event ids")
	}
	if a.AccountID != "acc-1" || a.Type != events.CreditAppliedType {
		t.Errorf("unexpected base event %+v", a)
	}
	if a.Timestamp.Location().String() != "UTC" {
		t.Errorf("expected UTC timestamp, got %s", a.Timestamp.Location())
	}
}

func TestEventJSON(t *testing.T) {
	event := events.CreditAppliedEvent{
		BaseEvent:  events.NewBaseEvent("acc-1", events.CreditAppliedType),
		Amount:     decimal.RequireFromString("10.50"),
		NewBalance: decimal.RequireFromString("110.50"),
	}
	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["type"] != "CreditApplied" || decoded["accountId"] != "acc-1" {
		t.Errorf("unexpected envelope: %s", data)
	}
	if decoded["amount"] != "10.5" {
		t.Errorf("expected amount as decimal string, got %v", decoded["amount"])
	}
}

func TestLogPublisher_Publish(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := events.NewLogPublisher(zap.New(core))

	event := events.AccountOpenedEvent{
		BaseEvent:      events.NewBaseEvent("acc-9", events.AccountOpenedType),
		DocumentNumber: "123",
	}
	if err := p.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	entries := logs.FilterMessage("Ledger event").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["type"] != "AccountOpened" || fields["account_id"] != "acc-9" {
		t.Errorf("unexpected fields %v", fields)
	}
}
