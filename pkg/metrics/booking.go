package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BookingMetrics records quote, coupon and order submission activity.
type BookingMetrics struct {
	quotes      *prometheus.CounterVec
	coupons     *prometheus.CounterVec
	submissions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewBookingMetrics registers the booking metrics on the provided registerer.
func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	if reg == nil {
		return &BookingMetrics{}
	}
	quotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_quotes_total",
		Help: "Order summaries computed per service type.",
	}, []string{"service"})
	coupons := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_coupon_validations_total",
		Help: "Coupon validations by outcome.",
	}, []string{"outcome"})
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_submissions_total",
		Help: "Order submissions by service type and outcome.",
	}, []string{"service", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "booking_submission_duration_seconds",
		Help:    "Duration of order hand-off to the order backend in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"service"})
	reg.MustRegister(quotes, coupons, submissions, duration)
	return &BookingMetrics{
		quotes:      quotes,
		coupons:     coupons,
		submissions: submissions,
		duration:    duration,
	}
}

// IncQuote counts a computed summary for the service.
func (m *BookingMetrics) IncQuote(service string) {
	if m == nil || m.quotes == nil {
		return
	}
	m.quotes.WithLabelValues(normalizeLabel(service)).Inc()
}

// IncCoupon counts a coupon validation; outcome is "applied" or "rejected".
func (m *BookingMetrics) IncCoupon(outcome string) {
	if m == nil || m.coupons == nil {
		return
	}
	m.coupons.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncSubmission counts an order submission attempt for the service.
func (m *BookingMetrics) IncSubmission(service, outcome string) {
	if m == nil || m.submissions == nil {
		return
	}
	m.submissions.WithLabelValues(normalizeLabel(service), normalizeLabel(outcome)).Inc()
}

// ObserveSubmission records how long the hand-off took.
func (m *BookingMetrics) ObserveSubmission(service string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(service)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
