package orderapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/dasportz/booking-backend/pkg/errors"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func newTestClient(t *testing.T, rt roundTripFunc, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithHTTPClient(&http.Client{Transport: rt})}, opts...)
	client, err := NewClient("http://backend.test/", opts...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestCreateOrderPayAtOutlet(t *testing.T) {
	var capturedURL string
	var payload map[string]any
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		if req.Header.Get("Content-Type") != "application/json" {
			t.Fatalf("content type header missing")
		}
		body, _ := io.ReadAll(req.Body)
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("unmarshal request body: %v", err)
		}
		return jsonResponse(http.StatusOK, `{"success":true,"order":{"order_id":"TEST123","amount":950}}`), nil
	})

	resp, err := client.CreateOrder(context.Background(), map[string]any{"customerName": "John Doe"})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if capturedURL != "http://backend.test/api/create-order" {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if payload["customerName"] != "John Doe" {
		t.Fatalf("unexpected payload %v", payload)
	}
	if resp.OrderID != "TEST123" || !resp.Amount.Equal(decimal.NewFromInt(950)) {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.RequiresPayment() {
		t.Fatalf("pay at outlet order should not require payment")
	}
}

func TestCreateOrderOnlineSession(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"success":true,"data":{"payments_session_id":"ps_1","amount":"790.00","order_id":"OID9","zpayConfig":{"account_id":"acct","domain":"IN"}}}`), nil
	})

	resp, err := client.CreateOrder(context.Background(), struct{}{})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if !resp.RequiresPayment() || resp.PaymentsSessionID != "ps_1" {
		t.Fatalf("expected payment session, got %+v", resp)
	}
	if resp.PaymentConfig == nil || resp.PaymentConfig.AccountID != "acct" {
		t.Fatalf("missing payment config")
	}
	if !resp.Amount.Equal(decimal.NewFromInt(790)) {
		t.Fatalf("unexpected amount %s", resp.Amount)
	}
}

func TestCreateOrderSurfacesBackendMessage(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadRequest, `{"success":false,"message":"Store closed"}`), nil
	})

	_, err := client.CreateOrder(context.Background(), struct{}{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.Message() != "Store closed" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestCreateOrderDefaultMessageOnUnsuccessful(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"success":false}`), nil
	})

	_, err := client.CreateOrder(context.Background(), struct{}{})
	if typed := pkgerrors.As(err); typed == nil || typed.Message() != defaultFailureMessage {
		t.Fatalf("expected default failure message, got %v", err)
	}
}

func TestCreateOrderRetriesServerErrors(t *testing.T) {
	calls := 0
	keys := map[string]struct{}{}
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		calls++
		keys[req.Header.Get(idempotencyKeyHeader)] = struct{}{}
		if calls < 3 {
			return jsonResponse(http.StatusBadGateway, `bad gateway`), nil
		}
		return jsonResponse(http.StatusOK, `{"success":true,"order":{"order_id":"R1","amount":1}}`), nil
	}, WithRetry(3, time.Millisecond))

	resp, err := client.CreateOrder(context.Background(), struct{}{})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if calls != 3 || resp.OrderID != "R1" {
		t.Fatalf("expected 3 calls and order R1, got %d %+v", calls, resp)
	}
	if len(keys) != 1 {
		t.Fatalf("expected one idempotency key across retries, got %v", keys)
	}
	if _, blank := keys[""]; blank {
		t.Fatalf("idempotency key header missing")
	}
}

func TestCreateOrderDoesNotRetryRejections(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(http.StatusBadRequest, `{"success":false,"message":"nope"}`), nil
	}, WithRetry(3, time.Millisecond))

	if _, err := client.CreateOrder(context.Background(), struct{}{}); err == nil {
		t.Fatalf("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected a single call, got %d", calls)
	}
}

func TestCreateOrderTransportFailure(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	_, err := client.CreateOrder(context.Background(), struct{}{})
	if !pkgerrors.IsRetryable(err) {
		t.Fatalf("expected retryable dependency error, got %v", err)
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient("  "); err == nil {
		t.Fatalf("expected error for blank base url")
	}
}

func TestAcceptedURL(t *testing.T) {
	got := AcceptedURL("order-accepted.html", "OID1", decimal.NewFromInt(700), "John Doe", "bat-knocking")
	want := "order-accepted.html?amount=700&name=John+Doe&oid=OID1&service=bat-knocking"
	if got != want {
		t.Fatalf("unexpected url %q", got)
	}
}
