package signal

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/dieserjulian777/Cryptobot-Charles/internal/domain"
)

// RawAlert mirrors the inbound webhook JSON. Numeric fields arrive as
// strings or bare numbers depending on the alerting platform, so
// json.Number accepts both.
type RawAlert struct {
	Ticker string      `json:"ticker"`
	Dir    string      `json:"dir"`
	Qty    json.Number `json:"qty"`
	Entry  json.Number `json:"entry"`
	TP     json.Number `json:"tp"`
	SL     json.Number `json:"sl"`
}

// Validator checks inbound alerts against the instrument allow-list and
// field rules before anything can touch the exchange.
type Validator struct {
	allowed map[string]struct{}
}

// NewValidator builds a validator for a fixed set of tradable tickers.
func NewValidator(allowlist []string) *Validator {
	allowed := make(map[string]struct{}, len(allowlist))
	for _, s := range allowlist {
		allowed[s] = struct{}{}
	}
	return &Validator{allowed: allowed}
}

// Validate normalizes a raw alert into a TradeSignal. It is a pure
// function of its input: no network, no side effects. Symbols outside
// the allow-list return UnauthorizedInstrumentError; everything else
// malformed returns ValidationError.
func (v *Validator) Validate(raw RawAlert) (domain.TradeSignal, error) {
	if raw.Ticker == "" {
		return domain.TradeSignal{}, &domain.ValidationError{Field: "ticker", Reason: "is required"}
	}
	if _, ok := v.allowed[raw.Ticker]; !ok {
		return domain.TradeSignal{}, &domain.UnauthorizedInstrumentError{Symbol: raw.Ticker}
	}

	dir := domain.Direction(raw.Dir)
	if dir != domain.DirectionLong && dir != domain.DirectionShort {
		return domain.TradeSignal{}, &domain.ValidationError{Field: "dir", Reason: "must be LONG or SHORT"}
	}

	qty, err := parsePositive("qty", raw.Qty)
	if err != nil {
		return domain.TradeSignal{}, err
	}
	entry, err := parsePositive("entry", raw.Entry)
	if err != nil {
		return domain.TradeSignal{}, err
	}
	tp, err := parsePositive("tp", raw.TP)
	if err != nil {
		return domain.TradeSignal{}, err
	}
	sl, err := parsePositive("sl", raw.SL)
	if err != nil {
		return domain.TradeSignal{}, err
	}

	return domain.TradeSignal{
		Symbol:          raw.Ticker,
		Direction:       dir,
		Quantity:        qty,
		EntryPrice:      entry,
		TakeProfitPrice: tp,
		StopLossPrice:   sl,
	}, nil
}

func parsePositive(field string, n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Decimal{}, &domain.ValidationError{Field: field, Reason: "is required"}
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Decimal{}, &domain.ValidationError{Field: field, Reason: "is not a number"}
	}
	if !d.IsPositive() {
		return decimal.Decimal{}, &domain.ValidationError{Field: field, Reason: "must be positive"}
	}
	return d, nil
}
