package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dieserjulian777/Cryptobot-Charles/internal/domain"
)

func testSequence(t *testing.T) *domain.OrderSequence {
	t.Helper()
	seq := domain.NewOrderSequence(domain.TradeSignal{
		Symbol:          "ETHUSDT",
		Direction:       domain.DirectionLong,
		Quantity:        decimal.RequireFromString("2"),
		EntryPrice:      decimal.RequireFromString("3000"),
		TakeProfitPrice: decimal.RequireFromString("3150"),
		StopLossPrice:   decimal.RequireFromString("2900"),
	})
	return seq
}

func openJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := NewJournal(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("NewJournal failed: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournal_RecordSuccess(t *testing.T) {
	j := openJournal(t)
	ctx := context.Background()

	seq := testSequence(t)
	seq.Outcome = domain.OutcomeSuccess
	for i, id := range []string{"101", "102", "103"} {
		seq.Legs[i].Status = domain.LegPlaced
		seq.Legs[i].ExchangeOrderID = id
	}

	if err := j.Record(ctx, seq, nil); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	records, err := j.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}

	rec := records[0]
	if rec.Symbol != "ETHUSDT" || rec.Direction != "LONG" {
		t.Errorf("record = %+v", rec)
	}
	if rec.Quantity != "2" || rec.EntryPrice != "3000" {
		t.Errorf("record = %+v", rec)
	}
	if rec.Outcome != string(domain.OutcomeSuccess) || rec.Error != "" {
		t.Errorf("outcome = %s, error = %q", rec.Outcome, rec.Error)
	}
	if rec.EntryOrderID != "101" || rec.TakeProfitOrderID != "102" || rec.StopLossOrderID != "103" {
		t.Errorf("order IDs = %s/%s/%s", rec.EntryOrderID, rec.TakeProfitOrderID, rec.StopLossOrderID)
	}
}

func TestJournal_RecordFailure(t *testing.T) {
	j := openJournal(t)
	ctx := context.Background()

	seq := testSequence(t)
	seq.Outcome = domain.OutcomePartialFailure
	seq.Legs[0].Status = domain.LegPlaced
	seq.Legs[0].ExchangeOrderID = "101"
	seq.Legs[1].Status = domain.LegFailed

	if err := j.Record(ctx, seq, errors.New("order placement failed: PRICE_FILTER")); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	records, _ := j.Recent(ctx, 1)
	if len(records) != 1 {
		t.Fatalf("records = %d", len(records))
	}
	rec := records[0]
	if rec.Outcome != string(domain.OutcomePartialFailure) {
		t.Errorf("outcome = %s", rec.Outcome)
	}
	if rec.Error == "" || rec.TakeProfitOrderID != "" {
		t.Errorf("record = %+v", rec)
	}
}

func TestJournal_RecentOrdering(t *testing.T) {
	j := openJournal(t)
	ctx := context.Background()

	for _, sym := range []string{"ETHUSDT", "SOLUSDT", "BTCUSDT"} {
		seq := testSequence(t)
		seq.Signal.Symbol = sym
		seq.Outcome = domain.OutcomeSuccess
		if err := j.Record(ctx, seq, nil); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	records, err := j.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Symbol != "BTCUSDT" || records[1].Symbol != "SOLUSDT" {
		t.Errorf("order = %s, %s; want newest first", records[0].Symbol, records[1].Symbol)
	}
}
