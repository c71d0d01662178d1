package execution

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dieserjulian777/Cryptobot-Charles/internal/domain"
	"github.com/dieserjulian777/Cryptobot-Charles/internal/infra"
	"github.com/dieserjulian777/Cryptobot-Charles/internal/infra/binance"
	"github.com/dieserjulian777/Cryptobot-Charles/internal/infra/telegram"
)

// Mode selects which gateway and notifier back the trade pipeline.
type Mode string

const (
	ModeMock Mode = "MOCK"
	ModeLive Mode = "LIVE"
)

// Factory creates the gateway and notifier for the configured mode.
type Factory struct {
	config *infra.Config
}

func NewFactory(cfg *infra.Config) *Factory {
	return &Factory{config: cfg}
}

// CreateGateway returns the order gateway for the configured mode.
// LIVE mode refuses to start unless the CONFIRM_REAL_MONEY safety latch
// is set, so a stray config edit cannot start trading real funds.
func (f *Factory) CreateGateway() (domain.Gateway, error) {
	mode := Mode(f.config.Trading.Mode)

	slog.Info("Initializing order gateway", "mode", mode)

	switch mode {
	case ModeMock:
		return NewMockGateway(), nil

	case ModeLive:
		if os.Getenv("CONFIRM_REAL_MONEY") != "true" {
			return nil, fmt.Errorf("SAFETY_GUARD: live trading requires 'CONFIRM_REAL_MONEY=true' environment variable")
		}
		slog.Info("🚨🚨🚨 Connecting to Binance LIVE (Mainnet) 🚨🚨🚨")
		return binance.NewClient(f.config), nil

	default:
		return nil, fmt.Errorf("unknown execution mode: %s", mode)
	}
}

// CreateNotifier returns the confirmation channel for the configured
// mode. MOCK logs locally; LIVE posts to Telegram.
func (f *Factory) CreateNotifier() (domain.Notifier, error) {
	switch Mode(f.config.Trading.Mode) {
	case ModeMock:
		return NewMockNotifier(), nil
	case ModeLive:
		return telegram.NewNotifier(f.config), nil
	default:
		return nil, fmt.Errorf("unknown execution mode: %s", f.config.Trading.Mode)
	}
}
