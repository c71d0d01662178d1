package domain

import "github.com/shopspring/decimal"

// Side of an exchange order.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// OrderKind is the order type submitted to the exchange.
type OrderKind string

const (
	OrderKindLimit     OrderKind = "LIMIT"
	OrderKindStopLimit OrderKind = "STOP_LIMIT"
)

// LegRole identifies a leg's position in the three-leg protocol.
type LegRole string

const (
	RoleEntry      LegRole = "ENTRY"
	RoleTakeProfit LegRole = "TAKE_PROFIT"
	RoleStopLoss   LegRole = "STOP_LOSS"
)

// LegStatus tracks the lifecycle of one leg.
type LegStatus string

const (
	LegNotAttempted LegStatus = "NOT_ATTEMPTED"
	LegPlaced       LegStatus = "PLACED"
	LegFailed       LegStatus = "FAILED"
	LegCancelled    LegStatus = "CANCELLED"
)

// Outcome of one full sequencer pass over a signal.
type Outcome string

const (
	OutcomeSuccess            Outcome = "SUCCESS"
	OutcomePartialFailure     Outcome = "PARTIAL_FAILURE"
	OutcomeValidationRejected Outcome = "VALIDATION_REJECTED"
)

// OrderLeg is a single exchange submission within an order sequence.
type OrderLeg struct {
	Role            LegRole
	Side            Side
	Kind            OrderKind
	Quantity        decimal.Decimal
	Price           decimal.Decimal
	StopPrice       decimal.Decimal // set only for STOP_LIMIT legs
	ExchangeOrderID string          // assigned by the exchange after placement
	Status          LegStatus
}

// Request converts the leg into a gateway order request.
func (l OrderLeg) Request(symbol string) OrderRequest {
	return OrderRequest{
		Symbol:      symbol,
		Side:        l.Side,
		Kind:        l.Kind,
		Quantity:    l.Quantity,
		Price:       l.Price,
		StopPrice:   l.StopPrice,
		TimeInForce: TimeInForceGTC,
	}
}

// OrderSequence is the aggregate for one signal: exactly three legs in
// placement order ENTRY, TAKE_PROFIT, STOP_LOSS. It lives for a single
// sequencer pass and is never read back on the trading path.
type OrderSequence struct {
	Signal  TradeSignal
	Legs    [3]OrderLeg
	Outcome Outcome
}

// takeProfitScale is the decimal precision the venue expects on the
// half-size take-profit quantity.
const takeProfitScale = 6

var takeProfitRatio = decimal.NewFromFloat(0.5)

// NewOrderSequence derives the three legs from a validated signal.
// The take-profit leg takes half the signal quantity rounded half-up to
// six decimal places; entry and stop-loss carry the full quantity. The
// stop-loss is a stop-limit order with stop price equal to limit price.
func NewOrderSequence(sig TradeSignal) *OrderSequence {
	entrySide := sig.EntrySide()
	exitSide := sig.ExitSide()
	tpQty := sig.Quantity.Mul(takeProfitRatio).Round(takeProfitScale)

	return &OrderSequence{
		Signal: sig,
		Legs: [3]OrderLeg{
			{
				Role:     RoleEntry,
				Side:     entrySide,
				Kind:     OrderKindLimit,
				Quantity: sig.Quantity,
				Price:    sig.EntryPrice,
				Status:   LegNotAttempted,
			},
			{
				Role:     RoleTakeProfit,
				Side:     exitSide,
				Kind:     OrderKindLimit,
				Quantity: tpQty,
				Price:    sig.TakeProfitPrice,
				Status:   LegNotAttempted,
			},
			{
				Role:      RoleStopLoss,
				Side:      exitSide,
				Kind:      OrderKindStopLimit,
				Quantity:  sig.Quantity,
				Price:     sig.StopLossPrice,
				StopPrice: sig.StopLossPrice,
				Status:    LegNotAttempted,
			},
		},
	}
}

// PlacedLegs returns the legs resting on the exchange, in placement order.
func (s *OrderSequence) PlacedLegs() []OrderLeg {
	var placed []OrderLeg
	for _, leg := range s.Legs {
		if leg.Status == LegPlaced {
			placed = append(placed, leg)
		}
	}
	return placed
}
