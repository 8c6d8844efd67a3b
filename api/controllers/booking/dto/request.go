package bookingdto

import (
	"strings"

	"github.com/dasportz/booking-backend/internal/booking"
	"github.com/dasportz/booking-backend/pkg/enums"
	pkgerrors "github.com/dasportz/booking-backend/pkg/errors"
)

// CustomerRequest carries the order contact fields. Completeness is checked by the
// booking rules so every missing field is reported together.
type CustomerRequest struct {
	Store string `json:"store" validate:"max=64"`
	Name  string `json:"name" validate:"max=128"`
	Phone string `json:"phone" validate:"max=20"`
}

// LineRequest is one racket, bat or pair of gloves.
type LineRequest struct {
	Brand        string   `json:"brand" validate:"max=64"`
	Name         string   `json:"name" validate:"max=64"`
	CustomName   string   `json:"customName" validate:"max=128"`
	Quantity     int      `json:"quantity" validate:"min=0,max=99"`
	Threading    []string `json:"threading" validate:"max=3,dive,oneof=top bottom both"`
	Model        string   `json:"model" validate:"max=128"`
	CustomModel  string   `json:"customModel" validate:"max=128"`
	Tension      int      `json:"tension" validate:"min=0,max=99"`
	ImageName    string   `json:"imageName" validate:"max=256"`
	RepairNature string   `json:"repairNature" validate:"max=512"`
	Estimate     int      `json:"estimate" validate:"min=0,max=100000"`
}

// OrderRequest is a complete form. Quotes and submissions share it.
type OrderRequest struct {
	ServiceType   string          `json:"serviceType" validate:"required,oneof=stringing bat-knocking gloves-repairing"`
	Customer      CustomerRequest `json:"customer"`
	Lines         []LineRequest   `json:"lines" validate:"required,min=1,max=50,dive"`
	Express       bool            `json:"express"`
	PickupDrop    bool            `json:"pickupDrop"`
	PaymentMethod string          `json:"paymentMethod" validate:"max=32"`
	Coupon        string          `json:"coupon" validate:"max=32"`
}

// CouponRequest asks whether a code is acceptable.
type CouponRequest struct {
	Code string `json:"code" validate:"required,max=32"`
}

// Service parses the service type.
func (r OrderRequest) Service() (enums.ServiceType, error) {
	service, err := enums.ParseServiceType(r.ServiceType)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid service type")
	}
	return service, nil
}

// Draft converts the request into a booking draft.
func (r OrderRequest) Draft() (booking.Draft, error) {
	draft := booking.Draft{
		Customer: booking.Customer{
			Store: r.Customer.Store,
			Name:  r.Customer.Name,
			Phone: r.Customer.Phone,
		},
		Flags:  booking.Flags{Express: r.Express, PickupDrop: r.PickupDrop},
		Coupon: r.Coupon,
	}

	if method := strings.TrimSpace(r.PaymentMethod); method != "" {
		parsed, err := enums.ParsePaymentMethod(method)
		if err != nil {
			return booking.Draft{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method").
				WithDetails(map[string]any{"paymentMethod": method})
		}
		draft.PaymentMethod = parsed
	}

	draft.Lines = make([]booking.DraftLine, 0, len(r.Lines))
	for _, line := range r.Lines {
		threading := make([]enums.ThreadingOption, 0, len(line.Threading))
		for _, opt := range line.Threading {
			threading = append(threading, enums.ThreadingOption(opt))
		}
		draft.Lines = append(draft.Lines, booking.DraftLine{
			Brand:      line.Brand,
			Name:       line.Name,
			CustomName: line.CustomName,
			Quantity:   line.Quantity,
			Threading:  threading,
			Details: booking.LineDetails{
				Model:        line.Model,
				CustomModel:  line.CustomModel,
				Tension:      line.Tension,
				ImageName:    line.ImageName,
				RepairNature: line.RepairNature,
				Estimate:     line.Estimate,
			},
		})
	}
	return draft, nil
}
