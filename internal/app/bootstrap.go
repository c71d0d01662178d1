package app

import (
	"fmt"
	"log/slog"

	"github.com/dieserjulian777/Cryptobot-Charles/internal/execution"
	"github.com/dieserjulian777/Cryptobot-Charles/internal/infra"
	"github.com/dieserjulian777/Cryptobot-Charles/internal/infra/binance"
	"github.com/dieserjulian777/Cryptobot-Charles/internal/sequencer"
	"github.com/dieserjulian777/Cryptobot-Charles/internal/server"
	"github.com/dieserjulian777/Cryptobot-Charles/internal/signal"
	"github.com/dieserjulian777/Cryptobot-Charles/internal/storage"
)

// Bootstrap wires config, gateway, notifier, journal and the HTTP layer
// into a runnable bot.
type Bootstrap struct {
	Config  *infra.Config
	Journal *storage.Journal      // nil when journaling is disabled
	Ticker  *binance.TickerWorker // nil when the price guard is disabled
	Server  *server.Server
}

// NewBootstrap creates an empty bootstrap instance.
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs the full startup sequence. On error the caller
// should exit; partially initialized resources are closed here.
func (b *Bootstrap) Initialize(configPath string) error {
	slog.Info("🚀 Bootstrapping Cryptobot Charles...")

	cfg, err := infra.LoadConfig(configPath)
	if err != nil {
		return err
	}
	b.Config = cfg

	slog.SetDefault(infra.NewLogger(cfg))

	if cfg.Storage.Path != "" {
		journal, err := storage.NewJournal(cfg.Storage.Path)
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		b.Journal = journal
		slog.Info("✅ Execution journal ready (WAL-mode)", "path", cfg.Storage.Path)
	}

	factory := execution.NewFactory(cfg)
	gateway, err := factory.CreateGateway()
	if err != nil {
		b.Close()
		return err
	}
	notifier, err := factory.CreateNotifier()
	if err != nil {
		b.Close()
		return err
	}

	var opts []sequencer.Option
	if cfg.Trading.CancelOnFailure {
		opts = append(opts, sequencer.WithCancelOnFailure())
	}
	if maxDeviation, ok := cfg.MaxEntryDeviation(); ok {
		b.Ticker = binance.NewTickerWorker(cfg.API.Binance.WSURL, cfg.Trading.AllowedTickers)
		opts = append(opts, sequencer.WithPriceGuard(b.Ticker, maxDeviation))
		slog.Info("✅ Price guard enabled", "max_deviation_pct", maxDeviation.String())
	}

	seq := sequencer.New(gateway, notifier, opts...)
	validator := signal.NewValidator(cfg.Trading.AllowedTickers)
	b.Server = server.New(validator, seq, b.Journal)

	slog.Info("✅ Bootstrap complete",
		"mode", cfg.Trading.Mode,
		"listen_addr", cfg.Server.ListenAddr,
		"allowed_tickers", cfg.Trading.AllowedTickers,
	)
	return nil
}

// Close releases resources acquired during Initialize.
func (b *Bootstrap) Close() {
	if b.Ticker != nil {
		b.Ticker.Stop()
	}
	if b.Journal != nil {
		if err := b.Journal.Close(); err != nil {
			slog.Warn("Journal close failed", slog.Any("error", err))
		}
	}
}
