package execution

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dieserjulian777/Cryptobot-Charles/internal/domain"
)

// MockGateway is a safe gateway that only logs orders and hands out
// synthetic order IDs.
type MockGateway struct {
	mu     sync.Mutex
	nextID int
}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (m *MockGateway) PlaceOrder(ctx context.Context, req domain.OrderRequest) (string, error) {
	m.mu.Lock()
	m.nextID++
	id := fmt.Sprintf("mock-%d", m.nextID)
	m.mu.Unlock()

	slog.Info("MOCK EXECUTION: Place Order",
		slog.String("id", id),
		slog.String("symbol", req.Symbol),
		slog.String("side", string(req.Side)),
		slog.String("type", string(req.Kind)),
		slog.String("price", req.Price.String()),
		slog.String("qty", req.Quantity.String()),
	)
	return id, nil
}

func (m *MockGateway) CancelOrder(ctx context.Context, symbol, orderID string) error {
	slog.Info("MOCK EXECUTION: Cancel Order",
		slog.String("symbol", symbol),
		slog.String("id", orderID),
	)
	return nil
}

// MockNotifier logs confirmations instead of delivering them.
type MockNotifier struct{}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Send(ctx context.Context, text string) error {
	slog.Info("MOCK NOTIFY", slog.String("text", text))
	return nil
}
