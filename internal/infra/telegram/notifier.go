package telegram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dieserjulian777/Cryptobot-Charles/internal/infra"
)

const maxSendAttempts = 3

// Notifier posts messages to a Telegram chat through the Bot API.
// Implements domain.Notifier; callers decide whether a delivery failure
// matters (for trade confirmations it never does).
type Notifier struct {
	apiURL     string
	token      string
	chatID     string
	httpClient *http.Client
}

// NewNotifier creates a notifier from config.
func NewNotifier(cfg *infra.Config) *Notifier {
	return &Notifier{
		apiURL: cfg.API.Telegram.APIURL,
		token:  cfg.API.Telegram.BotToken,
		chatID: cfg.API.Telegram.ChatID,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Send posts text with HTML formatting. Transient failures (network,
// 5xx, 429) are retried with exponential backoff; client errors return
// immediately.
func (n *Notifier) Send(ctx context.Context, text string) error {
	var lastErr error
	for attempt := 0; attempt < maxSendAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(infra.CalculateBackoff(attempt - 1)):
			}
		}

		retryable, err := n.post(ctx, text)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			return err
		}
		slog.Warn("Telegram send attempt failed",
			slog.Int("attempt", attempt+1),
			slog.Any("error", err),
		)
	}
	return lastErr
}

func (n *Notifier) post(ctx context.Context, text string) (retryable bool, err error) {
	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", text)
	form.Set("parse_mode", "HTML")

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.apiURL, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", infra.DefaultUserAgent)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return true, fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return false, nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	err = fmt.Errorf("telegram returned status %d: %s", resp.StatusCode, string(body))
	return resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests, err
}
