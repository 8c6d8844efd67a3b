package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/dasportz/booking-backend/pkg/errors"
)

const (
	createOrderPath             = "/api/create-order"
	defaultTimeout              = 10 * time.Second
	responseBodyReadLimit int64 = 1024
	defaultFailureMessage       = "Failed to create order. Please try again."
	idempotencyKeyHeader        = "Idempotency-Key"
)

var errBaseURLRequired = errors.New("order backend base url is required")

// Client submits orders to the storefront order backend.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxAttempts int
	retryDelay  time.Duration
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the backend base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithRetry retries transport failures and 5xx responses. One attempt disables retries.
func WithRetry(maxAttempts int, delay time.Duration) Option {
	return func(c *Client) {
		if maxAttempts > 0 {
			c.maxAttempts = maxAttempts
		}
		if delay > 0 {
			c.retryDelay = delay
		}
	}
}

// NewClient builds the order backend client.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:     trimmed,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		maxAttempts: 1,
		retryDelay:  500 * time.Millisecond,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// PaymentConfig is the hosted payment widget configuration for online orders.
type PaymentConfig struct {
	AccountID string `json:"account_id"`
	Domain    string `json:"domain"`
}

// CreateOrderResponse normalizes both backend shapes: pay-at-outlet orders return an
// order object, online orders return a payment session under data.
type CreateOrderResponse struct {
	OrderID           string
	Amount            decimal.Decimal
	PaymentsSessionID string
	PaymentConfig     *PaymentConfig
}

// RequiresPayment reports whether the customer must complete an online payment.
func (r *CreateOrderResponse) RequiresPayment() bool {
	return r != nil && r.PaymentsSessionID != ""
}

type orderBody struct {
	OrderID           string          `json:"order_id"`
	Amount            decimal.Decimal `json:"amount"`
	PaymentsSessionID string          `json:"payments_session_id"`
	ZPayConfig        *PaymentConfig  `json:"zpayConfig"`
}

type createOrderEnvelope struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Order   *orderBody `json:"order"`
	Data    *orderBody `json:"data"`
}

// CreateOrder posts an order record. Every attempt of one call carries the same
// idempotency key. The backend's own failure message is surfaced when it sends one.
func (c *Client) CreateOrder(ctx context.Context, order any) (*CreateOrderResponse, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "order backend client not configured")
	}
	payload, err := json.Marshal(order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal order")
	}

	attempts := c.maxAttempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := retry.WithMaxRetries(uint64(attempts-1), retry.NewConstant(c.retryDelay))

	key := uuid.NewString()
	var out *CreateOrderResponse
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := c.createOrder(ctx, key, payload)
		if err != nil {
			if pkgerrors.IsRetryable(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		out = resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) createOrder(ctx context.Context, key string, payload []byte) (*CreateOrderResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(createOrderPath), bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build create order request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(idempotencyKeyHeader, key)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute create order request")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read create order response")
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, statusError(resp.StatusCode, body), "create order request failed")
	}

	var envelope createOrderEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil && resp.StatusCode == http.StatusOK {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode create order response")
	}

	if resp.StatusCode != http.StatusOK || !envelope.Success {
		message := strings.TrimSpace(envelope.Message)
		if message == "" {
			message = defaultFailureMessage
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, statusError(resp.StatusCode, body), message).
			WithDetails(map[string]any{"status": resp.StatusCode})
	}

	order := envelope.Data
	if order == nil {
		order = envelope.Order
	}
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "create order response missing order")
	}
	if envelope.Order != nil && envelope.Data != nil && order.Amount.IsZero() {
		order.Amount = envelope.Order.Amount
	}

	return &CreateOrderResponse{
		OrderID:           order.OrderID,
		Amount:            order.Amount,
		PaymentsSessionID: order.PaymentsSessionID,
		PaymentConfig:     order.ZPayConfig,
	}, nil
}

func statusError(status int, body []byte) error {
	if int64(len(body)) > responseBodyReadLimit {
		body = body[:responseBodyReadLimit]
	}
	return fmt.Errorf("status %d: %s", status, strings.TrimSpace(string(body)))
}

func (c *Client) buildURL(path string) string {
	return strings.TrimRight(c.baseURL, "/") + path
}

// AcceptedURL is the confirmation page a pay-at-outlet customer lands on.
func AcceptedURL(page, orderID string, amount decimal.Decimal, name, service string) string {
	params := url.Values{}
	params.Set("oid", orderID)
	params.Set("amount", amount.String())
	params.Set("name", name)
	params.Set("service", service)
	return page + "?" + params.Encode()
}
