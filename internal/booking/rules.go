package booking

import (
	"fmt"

	"github.com/dasportz/booking-backend/internal/catalog"
	"github.com/dasportz/booking-backend/internal/coupons"
	"github.com/dasportz/booking-backend/pkg/config"
	"github.com/dasportz/booking-backend/pkg/enums"
	pkgerrors "github.com/dasportz/booking-backend/pkg/errors"
)

// Transport is how a finished order leaves the storefront.
type Transport string

const (
	TransportWhatsApp Transport = "whatsapp"
	TransportHTTP     Transport = "http"
)

// ThreadingPrices are the bat threading surcharges. Both is a fixed price of its own.
type ThreadingPrices struct {
	Top    int
	Bottom int
	Both   int
}

// Enabled reports whether the service offers threading at all.
func (p ThreadingPrices) Enabled() bool {
	return p.Top > 0 || p.Bottom > 0 || p.Both > 0
}

// Rules are the per-service pricing and completeness rules a Form enforces.
type Rules struct {
	ServiceType enums.ServiceType
	Catalog     *catalog.Catalog

	// ItemNoun names one line in messages ("Racket", "Bat"); SelectionNoun names what
	// a line selects from the catalog ("string", "package").
	ItemNoun      string
	SelectionNoun string

	ExpressSurcharge int
	OnlineDiscount   int
	Threading        ThreadingPrices
	Coupons          coupons.Policy

	// TensionMax of zero means the service takes no tension.
	TensionMin int
	TensionMax int

	PricedByEstimate       bool
	RequireModel           bool
	RequireRepairNature    bool
	RequirePaymentWhenFree bool

	DefaultPayment enums.PaymentMethod
	Transport      Transport
}

// RulesFor returns the rules for a service type. A nil stringing catalog falls back to
// the built-in one with the configured labour.
func RulesFor(service enums.ServiceType, pricing config.PricingConfig, stringing *catalog.Catalog) (Rules, error) {
	policy := coupons.Policy{Step: pricing.CouponStep, Max: pricing.CouponMax}

	switch service {
	case enums.ServiceTypeStringing:
		if stringing == nil {
			stringing = catalog.Stringing(pricing.RacketLabour)
		}
		return Rules{
			ServiceType:            service,
			Catalog:                stringing,
			ItemNoun:               "Racket",
			SelectionNoun:          "string",
			ExpressSurcharge:       pricing.ExpressSurcharge,
			OnlineDiscount:         pricing.OnlineDiscount,
			Coupons:                policy,
			TensionMin:             pricing.TensionMin,
			TensionMax:             pricing.TensionMax,
			RequirePaymentWhenFree: pricing.RequirePaymentWhenFree,
			Transport:              TransportWhatsApp,
		}, nil
	case enums.ServiceTypeBatKnocking:
		return Rules{
			ServiceType:            service,
			Catalog:                catalog.BatKnocking(),
			ItemNoun:               "Bat",
			SelectionNoun:          "package",
			Threading:              ThreadingPrices{Top: 100, Bottom: 100, Both: 150},
			Coupons:                policy,
			RequireModel:           true,
			RequirePaymentWhenFree: pricing.RequirePaymentWhenFree,
			DefaultPayment:         enums.PaymentMethodOnline,
			Transport:              TransportHTTP,
		}, nil
	case enums.ServiceTypeGlovesRepairing:
		return Rules{
			ServiceType:            service,
			Catalog:                catalog.Gloves(),
			ItemNoun:               "Gloves",
			SelectionNoun:          "make",
			Coupons:                policy,
			PricedByEstimate:       true,
			RequireModel:           true,
			RequireRepairNature:    true,
			RequirePaymentWhenFree: pricing.RequirePaymentWhenFree,
			Transport:              TransportHTTP,
		}, nil
	}
	return Rules{}, fmt.Errorf("unsupported service type %q", service)
}

// Registry holds the rules of every service type.
type Registry struct {
	rules   map[enums.ServiceType]Rules
	coupons coupons.Policy
}

// NewRegistry builds rules for every known service type.
func NewRegistry(pricing config.PricingConfig, stringing *catalog.Catalog) (*Registry, error) {
	reg := &Registry{
		rules:   make(map[enums.ServiceType]Rules),
		coupons: coupons.Policy{Step: pricing.CouponStep, Max: pricing.CouponMax},
	}
	for _, service := range []enums.ServiceType{
		enums.ServiceTypeStringing,
		enums.ServiceTypeBatKnocking,
		enums.ServiceTypeGlovesRepairing,
	} {
		rules, err := RulesFor(service, pricing, stringing)
		if err != nil {
			return nil, err
		}
		reg.rules[service] = rules
	}
	return reg, nil
}

// Rules returns the rules for a service type.
func (r *Registry) Rules(service enums.ServiceType) (Rules, error) {
	rules, ok := r.rules[service]
	if !ok {
		return Rules{}, pkgerrors.New(pkgerrors.CodeNotFound, "unknown service type").WithDetails(map[string]any{
			"serviceType": service,
		})
	}
	return rules, nil
}

// Coupons returns the shared coupon policy.
func (r *Registry) Coupons() coupons.Policy {
	return r.coupons
}

// DefaultPricing mirrors the storefront's published constants.
func DefaultPricing() config.PricingConfig {
	return config.PricingConfig{
		ExpressSurcharge: 20,
		OnlineDiscount:   10,
		RacketLabour:     100,
		CouponStep:       50,
		CouponMax:        500,
		TensionMin:       10,
		TensionMax:       35,
	}
}
