package domain

import "fmt"

// ValidationError reports malformed or missing input. A signal carrying
// one never reaches the exchange.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid signal: field %q %s", e.Field, e.Reason)
}

// UnauthorizedInstrumentError reports a symbol outside the configured
// allow-list. Kept distinct from ValidationError so the transport layer
// can answer with its own status code.
type UnauthorizedInstrumentError struct {
	Symbol string
}

func (e *UnauthorizedInstrumentError) Error() string {
	return fmt.Sprintf("symbol %q is not authorized for trading", e.Symbol)
}

// ExchangeError wraps a venue rejection of one leg. Message preserves
// the venue's text so notifications can show the trader what happened.
type ExchangeError struct {
	Leg     LegRole
	Message string
	Err     error
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("%s leg rejected: %s", e.Leg, e.Message)
}

func (e *ExchangeError) Unwrap() error { return e.Err }
