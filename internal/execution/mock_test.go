package execution

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dieserjulian777/Cryptobot-Charles/internal/domain"
	"github.com/dieserjulian777/Cryptobot-Charles/internal/infra"
)

var (
	_ domain.Gateway  = (*MockGateway)(nil)
	_ domain.Notifier = (*MockNotifier)(nil)
)

func TestMockGateway_SequentialIDs(t *testing.T) {
	g := NewMockGateway()
	req := domain.OrderRequest{
		Symbol:   "ETHUSDT",
		Side:     domain.SideBuy,
		Kind:     domain.OrderKindLimit,
		Quantity: decimal.RequireFromString("1"),
		Price:    decimal.RequireFromString("3000"),
	}

	first, err := g.PlaceOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	second, _ := g.PlaceOrder(context.Background(), req)

	if first != "mock-1" || second != "mock-2" {
		t.Errorf("IDs = %s, %s", first, second)
	}

	if err := g.CancelOrder(context.Background(), "ETHUSDT", first); err != nil {
		t.Errorf("CancelOrder failed: %v", err)
	}
}

func TestFactory_MockMode(t *testing.T) {
	cfg := &infra.Config{}
	cfg.Trading.Mode = "MOCK"
	f := NewFactory(cfg)

	gw, err := f.CreateGateway()
	if err != nil {
		t.Fatalf("CreateGateway failed: %v", err)
	}
	if _, ok := gw.(*MockGateway); !ok {
		t.Errorf("gateway = %T, want *MockGateway", gw)
	}

	n, err := f.CreateNotifier()
	if err != nil {
		t.Fatalf("CreateNotifier failed: %v", err)
	}
	if _, ok := n.(*MockNotifier); !ok {
		t.Errorf("notifier = %T, want *MockNotifier", n)
	}
}

func TestFactory_LiveModeRequiresSafetyLatch(t *testing.T) {
	t.Setenv("CONFIRM_REAL_MONEY", "")

	cfg := &infra.Config{}
	cfg.Trading.Mode = "LIVE"
	cfg.API.Binance.APIKey = "k"
	cfg.API.Binance.SecretKey = "s"

	if _, err := NewFactory(cfg).CreateGateway(); err == nil {
		t.Fatal("expected safety guard error without CONFIRM_REAL_MONEY")
	}
}

func TestFactory_UnknownMode(t *testing.T) {
	cfg := &infra.Config{}
	cfg.Trading.Mode = "YOLO"

	if _, err := NewFactory(cfg).CreateGateway(); err == nil {
		t.Error("expected error for unknown gateway mode")
	}
	if _, err := NewFactory(cfg).CreateNotifier(); err == nil {
		t.Error("expected error for unknown notifier mode")
	}
}
