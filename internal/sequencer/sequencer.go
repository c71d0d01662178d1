package sequencer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/dieserjulian777/Cryptobot-Charles/internal/domain"
)

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithCancelOnFailure enables compensation: when a later leg fails, legs
// already resting on the exchange are cancelled instead of left open.
// Off by default; the failure notification then tells the trader exactly
// which orders are still resting so they can manage the exposure by hand.
func WithCancelOnFailure() Option {
	return func(s *Sequencer) { s.cancelOnFailure = true }
}

// WithPriceGuard rejects a signal before any placement when its entry
// price deviates from the last traded price by more than maxDeviationPct
// percent. Signals pass untouched while the feed has no price yet.
func WithPriceGuard(src domain.PriceSource, maxDeviationPct decimal.Decimal) Option {
	return func(s *Sequencer) {
		s.prices = src
		s.maxDeviationPct = maxDeviationPct
	}
}

// Sequencer drives one validated signal through the three-leg placement
// protocol: ENTRY, then TAKE_PROFIT, then STOP_LOSS. Legs go out strictly
// in that order; a later leg is never attempted before the earlier one is
// accepted, and a failure ends the pass at the failing leg.
type Sequencer struct {
	gateway  domain.Gateway
	notifier domain.Notifier

	cancelOnFailure bool
	prices          domain.PriceSource
	maxDeviationPct decimal.Decimal

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a sequencer bound to a gateway and a notifier.
func New(gateway domain.Gateway, notifier domain.Notifier, opts ...Option) *Sequencer {
	s := &Sequencer{
		gateway:  gateway,
		notifier: notifier,
		locks:    make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// symbolLock returns the mutex serializing sequences for one symbol.
// Different symbols get independent locks and run in parallel.
func (s *Sequencer) symbolLock(symbol string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[symbol]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[symbol] = lock
	}
	return lock
}

// Execute runs one full placement pass for a validated signal. The
// per-symbol lock is held for the whole pass, so two concurrent signals
// for the same symbol can never interleave their gateway calls.
// The returned error is nil only on full success.
func (s *Sequencer) Execute(ctx context.Context, sig domain.TradeSignal) (*domain.OrderSequence, error) {
	lock := s.symbolLock(sig.Symbol)
	lock.Lock()
	defer lock.Unlock()

	seq := domain.NewOrderSequence(sig)

	if err := s.checkPriceGuard(sig); err != nil {
		seq.Outcome = domain.OutcomeValidationRejected
		slog.Warn("Signal rejected by price guard",
			slog.String("symbol", sig.Symbol),
			slog.Any("error", err),
		)
		return seq, err
	}

	for i := range seq.Legs {
		leg := &seq.Legs[i]

		orderID, err := s.gateway.PlaceOrder(ctx, leg.Request(sig.Symbol))
		if err != nil {
			leg.Status = domain.LegFailed
			seq.Outcome = domain.OutcomePartialFailure

			exErr := &domain.ExchangeError{Leg: leg.Role, Message: err.Error(), Err: err}
			slog.Error("Leg placement failed",
				slog.String("symbol", sig.Symbol),
				slog.String("leg", string(leg.Role)),
				slog.Any("error", err),
			)

			if s.cancelOnFailure {
				s.cancelPlaced(ctx, seq)
			}
			s.notify(ctx, formatFailure(seq, exErr))
			return seq, exErr
		}

		leg.Status = domain.LegPlaced
		leg.ExchangeOrderID = orderID
		slog.Info("Leg placed",
			slog.String("symbol", sig.Symbol),
			slog.String("leg", string(leg.Role)),
			slog.String("order_id", orderID),
		)
	}

	seq.Outcome = domain.OutcomeSuccess
	s.notify(ctx, formatSuccess(sig))
	return seq, nil
}

func (s *Sequencer) checkPriceGuard(sig domain.TradeSignal) error {
	if s.prices == nil || !s.maxDeviationPct.IsPositive() {
		return nil
	}
	last, ok := s.prices.LastPrice(sig.Symbol)
	if !ok || !last.IsPositive() {
		return nil
	}

	deviation := sig.EntryPrice.Sub(last).Abs().Div(last).Mul(decimal.NewFromInt(100))
	if deviation.GreaterThan(s.maxDeviationPct) {
		return &domain.ValidationError{
			Field:  "entry",
			Reason: fmt.Sprintf("deviates %s%% from last traded price %s", deviation.StringFixed(2), last),
		}
	}
	return nil
}

// cancelPlaced backs out resting legs, newest first. A cancel failure
// leaves the leg PLACED so the notification still reports it as open.
func (s *Sequencer) cancelPlaced(ctx context.Context, seq *domain.OrderSequence) {
	for i := len(seq.Legs) - 1; i >= 0; i-- {
		leg := &seq.Legs[i]
		if leg.Status != domain.LegPlaced {
			continue
		}
		if err := s.gateway.CancelOrder(ctx, seq.Signal.Symbol, leg.ExchangeOrderID); err != nil {
			slog.Error("Cancel failed, order left resting",
				slog.String("symbol", seq.Signal.Symbol),
				slog.String("leg", string(leg.Role)),
				slog.Any("error", err),
			)
			continue
		}
		leg.Status = domain.LegCancelled
	}
}

func (s *Sequencer) notify(ctx context.Context, text string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Send(ctx, text); err != nil {
		slog.Warn("Notification delivery failed", slog.Any("error", err))
	}
}
