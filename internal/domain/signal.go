package domain

import "github.com/shopspring/decimal"

// Direction is the trade direction carried by an inbound alert.
type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
)

// TradeSignal is a validated trading alert. By the time a signal exists,
// every numeric field is a positive decimal and the symbol has passed
// the instrument allow-list.
type TradeSignal struct {
	Symbol          string
	Direction       Direction
	Quantity        decimal.Decimal
	EntryPrice      decimal.Decimal
	TakeProfitPrice decimal.Decimal
	StopLossPrice   decimal.Decimal
}

// EntrySide returns the side of the entry leg: BUY for LONG, SELL for SHORT.
func (s TradeSignal) EntrySide() Side {
	if s.Direction == DirectionLong {
		return SideBuy
	}
	return SideSell
}

// ExitSide returns the side shared by the take-profit and stop-loss legs,
// always the opposite of the entry side.
func (s TradeSignal) ExitSide() Side {
	if s.EntrySide() == SideBuy {
		return SideSell
	}
	return SideBuy
}
