package booking

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	bookingdto "github.com/dasportz/booking-backend/api/controllers/booking/dto"
	"github.com/dasportz/booking-backend/api/responses"
	"github.com/dasportz/booking-backend/api/validators"
	bookingsvc "github.com/dasportz/booking-backend/internal/booking"
	"github.com/dasportz/booking-backend/internal/checkout"
	"github.com/dasportz/booking-backend/pkg/enums"
	pkgerrors "github.com/dasportz/booking-backend/pkg/errors"
	"github.com/dasportz/booking-backend/pkg/logger"
	"github.com/dasportz/booking-backend/pkg/metrics"
	"github.com/dasportz/booking-backend/pkg/money"
)

// Catalog lists the selectable entries of a service type.
func Catalog(reg *bookingsvc.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service, err := enums.ParseServiceType(chi.URLParam(r, "service"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "unknown service type"))
			return
		}
		rules, err := reg.Rules(service)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bookingdto.NewCatalogResponse(service.String(), rules.Catalog))
	}
}

// Quote prices a form without submitting it. A rejected coupon is reported in the
// response and the total is computed without it.
func Quote(reg *bookingsvc.Registry, m *metrics.BookingMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload bookingdto.OrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		loaded, err := loadForm(reg, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		m.IncQuote(loaded.service.String())

		summary := loaded.form.Summary()
		resp := bookingdto.QuoteResponse{
			ServiceType:    loaded.service.String(),
			Summary:        summary,
			TotalFormatted: money.Format(summary.Total),
		}
		if strings.TrimSpace(payload.Coupon) != "" {
			result := reg.Coupons().Validate(payload.Coupon)
			resp.Coupon = &result
			m.IncCoupon(couponOutcome(loaded.couponErr == nil))
		}
		responses.WriteSuccess(w, resp)
	}
}

// ValidateCoupon checks a code. Rejections are a normal 200 response carrying the
// customer-facing message.
func ValidateCoupon(reg *bookingsvc.Registry, m *metrics.BookingMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload bookingdto.CouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result := reg.Coupons().Validate(payload.Code)
		m.IncCoupon(couponOutcome(result.Valid))
		responses.WriteSuccess(w, result)
	}
}

// SubmitOrder validates a form and hands it to its transport.
func SubmitOrder(reg *bookingsvc.Registry, svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload bookingdto.OrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		loaded, err := loadForm(reg, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if loaded.couponErr != nil {
			responses.WriteError(r.Context(), logg, w, loaded.couponErr)
			return
		}

		outcome, err := svc.Submit(r.Context(), loaded.form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, outcome)
	}
}

type loadedForm struct {
	form      *bookingsvc.Form
	service   enums.ServiceType
	couponErr error
}

// loadForm replays a request into a form. A rejected coupon is kept apart so callers
// decide whether it is fatal.
func loadForm(reg *bookingsvc.Registry, payload bookingdto.OrderRequest) (*loadedForm, error) {
	service, err := payload.Service()
	if err != nil {
		return nil, err
	}
	rules, err := reg.Rules(service)
	if err != nil {
		return nil, err
	}
	draft, err := payload.Draft()
	if err != nil {
		return nil, err
	}

	form, err := bookingsvc.FromDraft(rules, draft)
	if form == nil {
		return nil, err
	}
	return &loadedForm{form: form, service: service, couponErr: err}, nil
}

func couponOutcome(valid bool) string {
	if valid {
		return "applied"
	}
	return "rejected"
}
