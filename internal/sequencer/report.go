package sequencer

import (
	"fmt"
	"strings"

	"github.com/dieserjulian777/Cryptobot-Charles/internal/domain"
)

// formatSuccess is the confirmation sent after all three legs land:
// the five trade parameters plus the reminder that trailing-stop
// management only starts once the take-profit fills.
func formatSuccess(sig domain.TradeSignal) string {
	return fmt.Sprintf(
		"🚀 <b>%s</b> %s Entry placed\n• Entry: %s\n• SL: %s\n• TP: %s\n• Qty: %s\n\n⚠️ TSL starts after TP is hit",
		sig.Symbol, sig.Direction, sig.EntryPrice, sig.StopLossPrice, sig.TakeProfitPrice, sig.Quantity,
	)
}

// formatFailure names the failing leg, the venue's error text, and every
// order the trader still has resting on the exchange. An unmatched entry
// is the most dangerous residual, so it gets its own warning line.
func formatFailure(seq *domain.OrderSequence, exErr *domain.ExchangeError) string {
	var b strings.Builder
	fmt.Fprintf(&b, "❌ <b>%s</b> %s: %s leg FAILED\n%s",
		seq.Signal.Symbol, seq.Signal.Direction, exErr.Leg, exErr.Message)

	var cancelled []string
	entryResting := false
	resting := seq.PlacedLegs()
	for _, leg := range seq.Legs {
		if leg.Status == domain.LegCancelled {
			cancelled = append(cancelled, string(leg.Role))
		}
	}

	if len(resting) > 0 {
		b.WriteString("\n\n⚠️ STILL OPEN on the exchange, manage manually:")
		for _, leg := range resting {
			fmt.Fprintf(&b, "\n• %s %s %s @ %s (order %s)",
				leg.Role, leg.Side, leg.Quantity, leg.Price, leg.ExchangeOrderID)
			if leg.Role == domain.RoleEntry {
				entryResting = true
			}
		}
	}
	if entryResting {
		b.WriteString("\n\n⚠️ The ENTRY order is resting unmatched: any fill is unprotected until you act.")
	}
	if len(cancelled) > 0 {
		fmt.Fprintf(&b, "\n\nCancelled: %s", strings.Join(cancelled, ", "))
	}
	if len(resting) == 0 && len(cancelled) == 0 {
		b.WriteString("\n\nNo orders were placed.")
	}
	return b.String()
}
