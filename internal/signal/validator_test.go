package signal

import (
	"errors"
	"testing"

	"github.com/dieserjulian777/Cryptobot-Charles/internal/domain"
)

var testAllowlist = []string{"ETHUSDT", "SOLUSDT"}

func validAlert() RawAlert {
	return RawAlert{
		Ticker: "ETHUSDT",
		Dir:    "LONG",
		Qty:    "1.0",
		Entry:  "3000",
		TP:     "3150",
		SL:     "2900",
	}
}

func TestValidator_Valid(t *testing.T) {
	v := NewValidator(testAllowlist)

	sig, err := v.Validate(validAlert())
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if sig.Symbol != "ETHUSDT" || sig.Direction != domain.DirectionLong {
		t.Errorf("signal = %+v", sig)
	}
	if sig.Quantity.String() != "1" {
		t.Errorf("quantity = %s", sig.Quantity)
	}
	if sig.EntryPrice.String() != "3000" || sig.TakeProfitPrice.String() != "3150" || sig.StopLossPrice.String() != "2900" {
		t.Errorf("prices = %s/%s/%s", sig.EntryPrice, sig.TakeProfitPrice, sig.StopLossPrice)
	}
}

func TestValidator_UnauthorizedSymbol(t *testing.T) {
	v := NewValidator(testAllowlist)

	raw := validAlert()
	raw.Ticker = "SHIBUSDT"

	_, err := v.Validate(raw)
	var unauthorized *domain.UnauthorizedInstrumentError
	if !errors.As(err, &unauthorized) {
		t.Fatalf("error = %v, want UnauthorizedInstrumentError", err)
	}
	if unauthorized.Symbol != "SHIBUSDT" {
		t.Errorf("symbol = %s", unauthorized.Symbol)
	}
}

func TestValidator_Malformed(t *testing.T) {
	v := NewValidator(testAllowlist)

	cases := []struct {
		name   string
		mutate func(*RawAlert)
		field  string
	}{
		{"missing ticker", func(r *RawAlert) { r.Ticker = "" }, "ticker"},
		{"bad direction", func(r *RawAlert) { r.Dir = "SIDEWAYS" }, "dir"},
		{"missing qty", func(r *RawAlert) { r.Qty = "" }, "qty"},
		{"qty not a number", func(r *RawAlert) { r.Qty = "lots" }, "qty"},
		{"zero qty", func(r *RawAlert) { r.Qty = "0" }, "qty"},
		{"negative entry", func(r *RawAlert) { r.Entry = "-3000" }, "entry"},
		{"missing tp", func(r *RawAlert) { r.TP = "" }, "tp"},
		{"zero sl", func(r *RawAlert) { r.SL = "0.0" }, "sl"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := validAlert()
			tc.mutate(&raw)

			_, err := v.Validate(raw)
			var vErr *domain.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("error = %v, want ValidationError", err)
			}
			if vErr.Field != tc.field {
				t.Errorf("field = %s, want %s", vErr.Field, tc.field)
			}
		})
	}
}

func TestValidator_NoSideEffects(t *testing.T) {
	v := NewValidator(testAllowlist)

	raw := validAlert()
	before := raw

	if _, err := v.Validate(raw); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if raw != before {
		t.Error("Validate mutated its input")
	}
}
