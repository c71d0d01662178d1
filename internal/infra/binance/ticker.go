package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"

	"github.com/dieserjulian777/Cryptobot-Charles/internal/infra"
)

const tickerReadTimeout = 90 * time.Second

// TickerWorker keeps the last traded price per symbol from the Binance
// combined miniTicker stream. It implements domain.PriceSource and
// reconnects with exponential backoff when the stream drops.
type TickerWorker struct {
	wsBase  string
	symbols []string

	mu     sync.RWMutex
	prices map[string]decimal.Decimal

	connMu sync.Mutex
	conn   *websocket.Conn
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTickerWorker creates a worker for the given symbols. Start must be
// called before LastPrice returns anything.
func NewTickerWorker(wsBase string, symbols []string) *TickerWorker {
	return &TickerWorker{
		wsBase:  wsBase,
		symbols: symbols,
		prices:  make(map[string]decimal.Decimal),
	}
}

// LastPrice returns the most recent traded price for a symbol. The
// second return value is false until a tick has arrived.
func (w *TickerWorker) LastPrice(symbol string) (decimal.Decimal, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	price, ok := w.prices[symbol]
	return price, ok
}

// Start launches the connection loop. It returns immediately; the feed
// warms up in the background.
func (w *TickerWorker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.runLoop(ctx)
}

// Stop terminates the worker and waits for the loop to exit.
func (w *TickerWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.closeConnection()
	w.wg.Wait()
	slog.Info("Ticker stream disconnected")
}

func (w *TickerWorker) streamURL() string {
	streams := make([]string, 0, len(w.symbols))
	for _, s := range w.symbols {
		streams = append(streams, strings.ToLower(s)+"@miniTicker")
	}
	return w.wsBase + "/stream?streams=" + strings.Join(streams, "/")
}

func (w *TickerWorker) runLoop(ctx context.Context) {
	defer w.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Ticker worker panic recovered", slog.Any("panic", r))
		}
	}()

	retry := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := w.connect(ctx); err != nil {
			slog.Warn("Ticker stream connection failed",
				slog.Any("error", err),
				slog.Int("retry", retry),
			)
			delay := infra.CalculateBackoff(retry)
			retry++

			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
				continue
			}
		}

		retry = 0
		w.readLoop(ctx)
	}
}

func (w *TickerWorker) connect(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	header := make(http.Header)
	header.Set("User-Agent", infra.DefaultUserAgent)

	conn, _, err := dialer.DialContext(ctx, w.streamURL(), header)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}

	w.connMu.Lock()
	w.conn = conn
	w.connMu.Unlock()

	slog.Info("Ticker stream connected", slog.Int("symbols", len(w.symbols)))
	return nil
}

func (w *TickerWorker) readLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		w.connMu.Lock()
		conn := w.conn
		w.connMu.Unlock()
		if conn == nil {
			return
		}

		conn.SetReadDeadline(time.Now().Add(tickerReadTimeout))
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("Ticker stream read error", slog.Any("error", err))
			}
			w.closeConnection()
			return
		}

		w.handleMessage(message)
	}
}

func (w *TickerWorker) handleMessage(message []byte) {
	var msg streamMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		return
	}
	if msg.Data.Symbol == "" || msg.Data.Close == "" {
		return
	}

	price, err := decimal.NewFromString(msg.Data.Close)
	if err != nil {
		return
	}

	w.mu.Lock()
	w.prices[msg.Data.Symbol] = price
	w.mu.Unlock()
}

func (w *TickerWorker) closeConnection() {
	w.connMu.Lock()
	defer w.connMu.Unlock()
	if w.conn != nil {
		w.conn.Close()
		w.conn = nil
	}
}
