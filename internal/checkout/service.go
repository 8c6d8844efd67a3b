package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dasportz/booking-backend/internal/booking"
	"github.com/dasportz/booking-backend/pkg/config"
	pkgerrors "github.com/dasportz/booking-backend/pkg/errors"
	"github.com/dasportz/booking-backend/pkg/logger"
	"github.com/dasportz/booking-backend/pkg/metrics"
	"github.com/dasportz/booking-backend/pkg/orderapi"
)

type orderCreator interface {
	CreateOrder(ctx context.Context, order any) (*orderapi.CreateOrderResponse, error)
}

// Kind is how a submission was handed off.
type Kind string

const (
	KindWhatsApp Kind = "whatsapp"
	KindAccepted Kind = "accepted"
	KindPayment  Kind = "payment"
)

// Outcome describes where the customer goes next.
type Outcome struct {
	Kind              Kind                    `json:"kind"`
	Record            *booking.OrderRecord    `json:"record"`
	Message           string                  `json:"message,omitempty"`
	RedirectURL       string                  `json:"redirectUrl,omitempty"`
	OrderID           string                  `json:"orderId,omitempty"`
	Amount            decimal.Decimal         `json:"amount"`
	PaymentsSessionID string                  `json:"paymentsSessionId,omitempty"`
	PaymentConfig     *orderapi.PaymentConfig `json:"paymentConfig,omitempty"`
}

// Service hands validated forms to their transport.
type Service interface {
	Submit(ctx context.Context, form *booking.Form) (*Outcome, error)
}

// Options are the submission settings shared by every service type.
type Options struct {
	WhatsApp     config.WhatsAppConfig
	AcceptedPage string
	TestMode     bool
}

type service struct {
	orders  orderCreator
	opts    Options
	metrics *metrics.BookingMetrics
	logg    *logger.Logger
	now     func() time.Time
}

// NewService builds the checkout service. Metrics are optional.
func NewService(orders orderCreator, opts Options, m *metrics.BookingMetrics, logg *logger.Logger) (Service, error) {
	if orders == nil {
		return nil, fmt.Errorf("order creator required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if opts.WhatsApp.Number == "" {
		return nil, fmt.Errorf("whatsapp number required")
	}
	if opts.AcceptedPage == "" {
		opts.AcceptedPage = "order-accepted.html"
	}
	return &service{orders: orders, opts: opts, metrics: m, logg: logg, now: time.Now}, nil
}

// Submit validates the form and hands it off. The form is reset only after a
// pay-at-outlet order is accepted; every failure leaves it untouched.
func (s *service) Submit(ctx context.Context, form *booking.Form) (*Outcome, error) {
	if form == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "form required")
	}
	rules := form.Rules()
	service := rules.ServiceType.String()
	ctx = s.logg.WithServiceType(ctx, service)
	ctx = s.logg.WithStore(ctx, form.Customer().Store)

	record, err := form.BuildRecord(s.opts.TestMode)
	if err != nil {
		s.metrics.IncSubmission(service, "invalid")
		return nil, err
	}

	if rules.Transport == booking.TransportWhatsApp {
		message := booking.ComposeMessage(rules, record)
		s.metrics.IncSubmission(service, "whatsapp")
		s.logg.Info(ctx, "order composed for whatsapp")
		return &Outcome{
			Kind:        KindWhatsApp,
			Record:      record,
			Message:     message,
			RedirectURL: booking.ShareLink(s.opts.WhatsApp.BaseURL, s.opts.WhatsApp.Number, message),
			Amount:      decimal.NewFromInt(int64(record.Amount)),
		}, nil
	}

	start := s.now()
	resp, err := s.orders.CreateOrder(ctx, record)
	s.metrics.ObserveSubmission(service, s.now().Sub(start))
	if err != nil {
		s.metrics.IncSubmission(service, "failed")
		s.logg.Error(ctx, "create order failed", err)
		return nil, err
	}
	ctx = s.logg.WithOrderID(ctx, resp.OrderID)

	outcome := &Outcome{
		Record:  record,
		OrderID: resp.OrderID,
		Amount:  resp.Amount,
	}
	if outcome.Amount.IsZero() {
		outcome.Amount = decimal.NewFromInt(int64(record.Amount))
	}

	if record.PaymentMethod.IsOnline() {
		if !resp.RequiresPayment() {
			s.metrics.IncSubmission(service, "failed")
			return nil, pkgerrors.New(pkgerrors.CodeDependency, "Payment session creation failed. Please try again.")
		}
		outcome.Kind = KindPayment
		outcome.PaymentsSessionID = resp.PaymentsSessionID
		outcome.PaymentConfig = resp.PaymentConfig
		s.metrics.IncSubmission(service, "payment")
		s.logg.Info(ctx, "payment session created")
		return outcome, nil
	}

	outcome.Kind = KindAccepted
	outcome.RedirectURL = orderapi.AcceptedURL(s.opts.AcceptedPage, resp.OrderID, outcome.Amount, record.CustomerName, service)
	form.Reset()
	s.metrics.IncSubmission(service, "accepted")
	s.logg.Info(ctx, "order accepted")
	return outcome, nil
}
