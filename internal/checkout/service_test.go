package checkout

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/dasportz/booking-backend/internal/booking"
	"github.com/dasportz/booking-backend/pkg/config"
	"github.com/dasportz/booking-backend/pkg/enums"
	pkgerrors "github.com/dasportz/booking-backend/pkg/errors"
	"github.com/dasportz/booking-backend/pkg/logger"
	"github.com/dasportz/booking-backend/pkg/metrics"
	"github.com/dasportz/booking-backend/pkg/orderapi"
)

type stubOrders struct {
	resp  *orderapi.CreateOrderResponse
	err   error
	calls int
	last  any
}

func (s *stubOrders) CreateOrder(ctx context.Context, order any) (*orderapi.CreateOrderResponse, error) {
	s.calls++
	s.last = order
	return s.resp, s.err
}

func newService(t *testing.T, orders orderCreator) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}})
	svc, err := NewService(orders, Options{
		WhatsApp:     config.WhatsAppConfig{Number: "918800505769", BaseURL: "https://wa.me"},
		AcceptedPage: "order-accepted.html",
		TestMode:     true,
	}, metrics.NewBookingMetrics(prometheus.NewRegistry()), logg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func mustRules(t *testing.T, service enums.ServiceType) booking.Rules {
	t.Helper()
	rules, err := booking.RulesFor(service, booking.DefaultPricing(), nil)
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	return rules
}

func mustDispatch(t *testing.T, f *booking.Form, cmds ...booking.Command) {
	t.Helper()
	for _, cmd := range cmds {
		if _, err := f.Dispatch(cmd); err != nil {
			t.Fatalf("dispatch %T: %v", cmd, err)
		}
	}
}

func batForm(t *testing.T, method enums.PaymentMethod) *booking.Form {
	t.Helper()
	f := booking.NewForm(mustRules(t, enums.ServiceTypeBatKnocking))
	id := f.Lines()[0].ID
	mustDispatch(t, f,
		booking.SetCustomer{Customer: booking.Customer{Store: "Gaur City 1", Name: "John Doe", Phone: "9876543210"}},
		booking.SelectEntry{LineID: id, Name: "10000"},
		booking.SetLineDetails{LineID: id, Details: booking.LineDetails{Model: "MRF Genius"}},
		booking.SetPaymentMethod{Method: method},
		booking.ApplyCoupon{Code: "DA100"},
	)
	return f
}

func TestSubmitPayAtOutletResetsForm(t *testing.T) {
	t.Parallel()

	orders := &stubOrders{resp: &orderapi.CreateOrderResponse{OrderID: "TEST123", Amount: decimal.NewFromInt(700)}}
	svc := newService(t, orders)
	form := batForm(t, enums.PaymentMethodPayAtOutlet)

	outcome, err := svc.Submit(context.Background(), form)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Kind != KindAccepted || outcome.OrderID != "TEST123" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	record, ok := orders.last.(*booking.OrderRecord)
	if !ok || !record.TestMode || record.Payment.FinalAmount != 700 {
		t.Fatalf("unexpected record sent %+v", orders.last)
	}
	parsed, err := url.Parse(outcome.RedirectURL)
	if err != nil {
		t.Fatalf("parse redirect: %v", err)
	}
	if parsed.Path != "order-accepted.html" || parsed.Query().Get("oid") != "TEST123" || parsed.Query().Get("service") != "bat-knocking" {
		t.Fatalf("unexpected redirect %q", outcome.RedirectURL)
	}
	if form.Discount() != nil || form.Summary().SelectedLineCount != 0 || len(form.Lines()) != 1 {
		t.Fatalf("expected form reset after accepted order")
	}
}

func TestSubmitOnlineReturnsPaymentSession(t *testing.T) {
	t.Parallel()

	orders := &stubOrders{resp: &orderapi.CreateOrderResponse{
		OrderID:           "OID1",
		Amount:            decimal.NewFromInt(700),
		PaymentsSessionID: "ps_1",
		PaymentConfig:     &orderapi.PaymentConfig{AccountID: "acct", Domain: "IN"},
	}}
	svc := newService(t, orders)
	form := batForm(t, enums.PaymentMethodOnline)

	outcome, err := svc.Submit(context.Background(), form)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Kind != KindPayment || outcome.PaymentsSessionID != "ps_1" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if form.Summary().SelectedLineCount != 1 {
		t.Fatalf("online submission should keep the form until payment completes")
	}
}

func TestSubmitOnlineWithoutSessionFails(t *testing.T) {
	t.Parallel()

	orders := &stubOrders{resp: &orderapi.CreateOrderResponse{OrderID: "OID1"}}
	svc := newService(t, orders)

	_, err := svc.Submit(context.Background(), batForm(t, enums.PaymentMethodOnline))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestSubmitTransportFailurePreservesForm(t *testing.T) {
	t.Parallel()

	orders := &stubOrders{err: pkgerrors.New(pkgerrors.CodeDependency, "backend down")}
	svc := newService(t, orders)
	form := batForm(t, enums.PaymentMethodPayAtOutlet)
	before := form.Summary()

	if _, err := svc.Submit(context.Background(), form); err == nil {
		t.Fatalf("expected error")
	}
	after := form.Summary()
	if after.Total != before.Total || form.Discount() == nil {
		t.Fatalf("form state should be preserved on failure")
	}
}

func TestSubmitInvalidFormSkipsTransport(t *testing.T) {
	t.Parallel()

	orders := &stubOrders{}
	svc := newService(t, orders)
	form := booking.NewForm(mustRules(t, enums.ServiceTypeBatKnocking))

	_, err := svc.Submit(context.Background(), form)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if orders.calls != 0 {
		t.Fatalf("transport should not be called for invalid forms")
	}
}

func TestSubmitStringingComposesWhatsApp(t *testing.T) {
	t.Parallel()

	orders := &stubOrders{}
	svc := newService(t, orders)
	form := booking.NewForm(mustRules(t, enums.ServiceTypeStringing))
	id := form.Lines()[0].ID
	mustDispatch(t, form,
		booking.SetCustomer{Customer: booking.Customer{Store: "Gaur City 1", Name: "Asha", Phone: "9876543210"}},
		booking.SelectEntry{LineID: id, Brand: "Yonex", Name: "BG 65"},
		booking.SetLineDetails{LineID: id, Details: booking.LineDetails{Model: "Yonex Astrox 99", Tension: 24}},
		booking.SetPaymentMethod{Method: enums.PaymentMethodPayAtOutlet},
		booking.ApplyCoupon{Code: "DA100"},
	)

	outcome, err := svc.Submit(context.Background(), form)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Kind != KindWhatsApp || orders.calls != 0 {
		t.Fatalf("expected whatsapp hand-off, got %+v", outcome)
	}
	if !strings.HasPrefix(outcome.RedirectURL, "https://wa.me/918800505769?text=") {
		t.Fatalf("unexpected link %q", outcome.RedirectURL)
	}
	if !strings.Contains(outcome.Message, "• Total: ₹450") {
		t.Fatalf("expected coupon applied to total; message=%s", outcome.Message)
	}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	t.Parallel()

	logg := logger.New(logger.Options{Output: &bytes.Buffer{}})
	if _, err := NewService(nil, Options{WhatsApp: config.WhatsAppConfig{Number: "1"}}, nil, logg); err == nil {
		t.Fatalf("expected error for nil order creator")
	}
	if _, err := NewService(&stubOrders{}, Options{}, nil, logg); err == nil {
		t.Fatalf("expected error for missing whatsapp number")
	}
}
