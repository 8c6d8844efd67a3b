package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dasportz/booking-backend/api/controllers"
	bookingcontrollers "github.com/dasportz/booking-backend/api/controllers/booking"
	"github.com/dasportz/booking-backend/api/middleware"
	"github.com/dasportz/booking-backend/internal/booking"
	checkoutsvc "github.com/dasportz/booking-backend/internal/checkout"
	"github.com/dasportz/booking-backend/pkg/config"
	"github.com/dasportz/booking-backend/pkg/logger"
	"github.com/dasportz/booking-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	registry *booking.Registry,
	checkoutService checkoutsvc.Service,
	bookingMetrics *metrics.BookingMetrics,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, registry, logg))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog/{service}", bookingcontrollers.Catalog(registry, logg))
		r.Post("/quote", bookingcontrollers.Quote(registry, bookingMetrics, logg))
		r.Post("/coupons/validate", bookingcontrollers.ValidateCoupon(registry, bookingMetrics, logg))
		r.Post("/orders", bookingcontrollers.SubmitOrder(registry, checkoutService, logg))
	})

	return r
}
