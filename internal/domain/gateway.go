package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// TimeInForceGTC is the only time-in-force the bot submits.
const TimeInForceGTC = "GTC"

// OrderRequest carries everything the exchange needs for one leg.
type OrderRequest struct {
	Symbol      string
	Side        Side
	Kind        OrderKind
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	StopPrice   decimal.Decimal // zero unless Kind is OrderKindStopLimit
	TimeInForce string
}

// Gateway places and cancels single orders on the exchange. Placement
// errors must carry the venue's human-readable message; the sequencer
// never retries a failed placement. CancelOrder is used only when
// compensation is enabled.
type Gateway interface {
	// PlaceOrder submits one order and returns its exchange-assigned ID.
	PlaceOrder(ctx context.Context, req OrderRequest) (string, error)

	// CancelOrder cancels a resting order by ID.
	CancelOrder(ctx context.Context, symbol, orderID string) error
}

// Notifier delivers a human-readable message to the trader. Delivery
// failures never change a trade outcome already decided.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// PriceSource exposes the last traded price per symbol. The second
// return value is false while no price has been observed yet.
type PriceSource interface {
	LastPrice(symbol string) (decimal.Decimal, bool)
}
