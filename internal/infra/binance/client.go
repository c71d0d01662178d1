package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dieserjulian777/Cryptobot-Charles/internal/domain"
	"github.com/dieserjulian777/Cryptobot-Charles/internal/infra"
)

const orderPath = "/api/v3/order"

// Client implements domain.Gateway against the Binance spot REST API.
// Every call goes through a token-bucket rate limiter and a circuit
// breaker so one bad stretch cannot burn the IP or hammer a dead venue.
type Client struct {
	baseURL    string
	signer     *Signer
	httpClient *http.Client
	limiter    *infra.RateLimiter
	breaker    *infra.CircuitBreaker
	recvWindow int
}

// NewClient creates a Binance REST client from config.
func NewClient(cfg *infra.Config) *Client {
	return &Client{
		baseURL: cfg.API.Binance.RestURL,
		signer:  NewSigner(cfg.API.Binance.APIKey, cfg.API.Binance.SecretKey),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		// Binance order endpoints allow 10 req/s; stay under it.
		limiter:    infra.NewRateLimiter(5, 10),
		breaker:    infra.NewCircuitBreaker(infra.DefaultCircuitBreakerConfig("binance-orders")),
		recvWindow: cfg.API.Binance.RecvWindowMS,
	}
}

// PlaceOrder submits one order and returns the exchange-assigned ID.
func (c *Client) PlaceOrder(ctx context.Context, req domain.OrderRequest) (string, error) {
	params := url.Values{}
	params.Set("symbol", req.Symbol)
	params.Set("side", string(req.Side))
	params.Set("type", orderType(req.Kind))
	params.Set("timeInForce", req.TimeInForce)
	params.Set("quantity", req.Quantity.String())
	params.Set("price", req.Price.String())
	if req.Kind == domain.OrderKindStopLimit {
		params.Set("stopPrice", req.StopPrice.String())
	}

	var resp placeOrderResponse
	if err := c.signedRequest(ctx, http.MethodPost, orderPath, params, &resp); err != nil {
		return "", err
	}
	return strconv.FormatInt(resp.OrderID, 10), nil
}

// CancelOrder cancels a resting order by exchange ID.
func (c *Client) CancelOrder(ctx context.Context, symbol, orderID string) error {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("orderId", orderID)
	return c.signedRequest(ctx, http.MethodDelete, orderPath, params, nil)
}

// orderType maps the domain order kind to Binance's wire name.
func orderType(kind domain.OrderKind) string {
	if kind == domain.OrderKindStopLimit {
		return "STOP_LOSS_LIMIT"
	}
	return "LIMIT"
}

// signedRequest appends timestamp and recvWindow, signs the query, and
// runs the call behind the rate limiter and circuit breaker.
func (c *Client) signedRequest(ctx context.Context, method, path string, params url.Values, out any) error {
	if !c.breaker.Allow() {
		return fmt.Errorf("binance circuit open, request rejected")
	}
	c.limiter.Wait()

	params.Set("timestamp", strconv.FormatInt(time.Now().UnixMilli(), 10))
	params.Set("recvWindow", strconv.Itoa(c.recvWindow))
	query := params.Encode()
	query += "&signature=" + c.signer.Sign(query)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path+"?"+query, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-MBX-APIKEY", c.signer.APIKey())
	req.Header.Set("User-Agent", infra.DefaultUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.breaker.RecordFailure()
		return fmt.Errorf("binance request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.breaker.RecordFailure()
		return fmt.Errorf("failed to read binance response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.breaker.RecordFailure()
		var venueErr apiError
		if json.Unmarshal(body, &venueErr) == nil && venueErr.Msg != "" {
			return fmt.Errorf("binance rejected request (code %d): %s", venueErr.Code, venueErr.Msg)
		}
		return fmt.Errorf("binance returned status %d: %s", resp.StatusCode, string(body))
	}

	c.breaker.RecordSuccess()
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode binance response: %w", err)
		}
	}
	return nil
}

// Close wipes API credentials from memory.
func (c *Client) Close() error {
	c.signer.Wipe()
	return nil
}
