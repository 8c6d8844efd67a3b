package controllers

import (
	"net/http"

	"github.com/dasportz/booking-backend/api/responses"
	"github.com/dasportz/booking-backend/internal/booking"
	"github.com/dasportz/booking-backend/pkg/config"
	"github.com/dasportz/booking-backend/pkg/enums"
	pkgerrors "github.com/dasportz/booking-backend/pkg/errors"
	"github.com/dasportz/booking-backend/pkg/logger"
)

const envHeader = "X-DaSportz-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready once every service type has a non-empty catalog.
func HealthReady(cfg *config.Config, reg *booking.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		if reg == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "booking rules not loaded"))
			return
		}
		for _, service := range []enums.ServiceType{
			enums.ServiceTypeStringing,
			enums.ServiceTypeBatKnocking,
			enums.ServiceTypeGlovesRepairing,
		} {
			rules, err := reg.Rules(service)
			if err != nil || len(rules.Catalog.All()) == 0 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "catalog not loaded").
					WithDetails(map[string]any{"serviceType": service}))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
