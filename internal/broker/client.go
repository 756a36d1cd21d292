package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"tradelink/internal/util"
)

// Compile-time interface check.
var _ API = (*Client)(nil)

const (
	headerAPIKey    = "APCA-API-KEY-ID"
	headerAPISecret = "APCA-API-SECRET-KEY"

	defaultBaseURL = "https://paper-api.alpaca.markets/v2"
	defaultTimeout = 30 * time.Second
)

// APIError is a non-2xx response from the broker API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("alpaca api: status %d: %s", e.StatusCode, e.Body)
}

// Client implements API against the Alpaca v2 REST endpoints.
//
// GET reads are retried with backoff; POST/PATCH/DELETE order mutations are
// never retried here, since a replayed submission risks duplicate
// execution. Retry policy for mutations belongs to the caller.
type Client struct {
	apiKey     string
	apiSecret  string
	baseURL    string
	httpClient *http.Client
	limiter    *util.RateLimiter
	log        *slog.Logger

	retryAttempts int
	retryDelay    time.Duration
}

// NewClient creates a Client for the given credentials. An empty baseURL
// selects the paper-trading endpoint.
func NewClient(apiKey, apiSecret, baseURL string, rateLimitPerMin int) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if rateLimitPerMin <= 0 {
		rateLimitPerMin = 200
	}
	return &Client{
		apiKey:        apiKey,
		apiSecret:     apiSecret,
		baseURL:       baseURL,
		httpClient:    &http.Client{Timeout: defaultTimeout},
		limiter:       util.NewRateLimiter(rateLimitPerMin),
		log:           slog.Default().With("component", "alpaca"),
		retryAttempts: 3,
		retryDelay:    500 * time.Millisecond,
	}
}

// do performs one request and decodes the JSON response into out (when out
// is non-nil).
func (c *Client) do(ctx context.Context, method, endpoint string, payload, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set(headerAPISecret, c.apiSecret)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding %s response: %w", endpoint, err)
		}
	}
	return nil
}

// get performs a retried GET. Reads are idempotent, so transient transport
// failures are retried with exponential backoff.
func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	return util.Retry(ctx, c.retryAttempts, c.retryDelay, func() error {
		return c.do(ctx, http.MethodGet, endpoint, nil, out)
	})
}

// GetOrders returns orders filtered by native status; empty status returns
// everything the broker reports.
func (c *Client) GetOrders(ctx context.Context, status string) ([]Order, error) {
	endpoint := "/orders"
	if status != "" {
		endpoint += "?status=" + url.QueryEscape(status)
	}
	var orders []Order
	if err := c.get(ctx, endpoint, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// PlaceOrder submits a new order. Not retried.
func (c *Client) PlaceOrder(ctx context.Context, body PlaceOrderBody) (Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodPost, "/orders", body, &order); err != nil {
		return Order{}, err
	}
	c.log.Info("order placed", "symbol", body.Symbol, "side", body.Side, "qty", body.Qty, "orderid", order.ID)
	return order, nil
}

// ModifyOrder patches an existing order. Not retried.
func (c *Client) ModifyOrder(ctx context.Context, orderID string, body ModifyOrderBody) (Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(orderID), body, &order); err != nil {
		return Order{}, err
	}
	return order, nil
}

// CancelOrder cancels an open order.
func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodDelete, "/orders/"+url.PathEscape(orderID), nil, nil)
}

// GetPositions returns all current positions.
func (c *Client) GetPositions(ctx context.Context) ([]Position, error) {
	var positions []Position
	if err := c.get(ctx, "/positions", &positions); err != nil {
		return nil, err
	}
	return positions, nil
}

// GetAccount returns the account snapshot.
func (c *Client) GetAccount(ctx context.Context) (Account, error) {
	var account Account
	if err := c.get(ctx, "/account", &account); err != nil {
		return Account{}, err
	}
	return account, nil
}

// GetAssets returns all active US equity assets. The feed is a single call
// with no pagination cursor.
func (c *Client) GetAssets(ctx context.Context) ([]Asset, error) {
	var assets []Asset
	if err := c.get(ctx, "/assets?status=active&asset_class=us_equity", &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// VerifyCredentials confirms the configured key pair by fetching the
// account and checking that the broker returned an account id.
func (c *Client) VerifyCredentials(ctx context.Context) error {
	account, err := c.GetAccount(ctx)
	if err != nil {
		return fmt.Errorf("verifying credentials: %w", err)
	}
	if account.ID == "" {
		return fmt.Errorf("verifying credentials: account response missing id")
	}
	return nil
}
