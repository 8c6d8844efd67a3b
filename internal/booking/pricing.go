package booking

import (
	"math"

	"github.com/google/uuid"

	"github.com/dasportz/booking-backend/internal/coupons"
	"github.com/dasportz/booking-backend/pkg/enums"
)

// LineCost is the priced view of one line. Unselected lines carry zero cost.
type LineCost struct {
	LineID    uuid.UUID `json:"lineId"`
	Selected  bool      `json:"selected"`
	UnitPrice int       `json:"unitPrice"`
	Quantity  int       `json:"quantity"`
	Cost      int       `json:"cost"`
}

// Summary is the derived price breakdown of a form. OnlineDiscount is the amount
// actually deducted, which is zero when the running total was already zero.
type Summary struct {
	SelectedLineCount int               `json:"selectedLineCount"`
	UnitCount         int               `json:"unitCount"`
	ServiceMode       enums.ServiceMode `json:"serviceMode"`
	ServiceLabel      string            `json:"serviceLabel"`
	PickupDrop        bool              `json:"pickupDrop"`
	Subtotal          int               `json:"subtotal"`
	ExpressSurcharge  int               `json:"expressSurcharge"`
	OnlineDiscount    int               `json:"onlineDiscount"`
	CouponDiscount    int               `json:"couponDiscount"`
	BeforeCoupon      int               `json:"beforeCoupon"`
	Total             int               `json:"total"`
	Lines             []LineCost        `json:"lines"`
}

// Flags are the order-wide service toggles.
type Flags struct {
	Express    bool `json:"express"`
	PickupDrop bool `json:"pickupDrop"`
}

// MaxEstimate is the largest repair estimate a line accepts, in rupees.
const MaxEstimate = 100000

// PickupDropSuffix is appended to the service label when pickup is requested.
const PickupDropSuffix = " • Pickup & Drop"

// Quote is everything Compute needs; it holds no state of its own.
type Quote struct {
	Lines    []LineItem
	Flags    Flags
	Payment  enums.PaymentMethod
	Discount *coupons.Discount
}

// UnitPrice is the per-unit price of a line before quantity, zero when the line has
// no valid selection.
func UnitPrice(rules Rules, line LineItem) int {
	if !line.Selection.IsValid() {
		return 0
	}
	if rules.PricedByEstimate {
		if line.Details.Estimate < 0 {
			return 0
		}
		return addCapped(line.Details.Estimate, line.Options.Surcharge(rules.Threading))
	}
	base := rules.Catalog.Labour()
	if line.Selection.Entry != nil {
		base = rules.Catalog.Price(*line.Selection.Entry)
	}
	return addCapped(base, line.Options.Surcharge(rules.Threading))
}

// Compute prices a quote. Steps run in a fixed order: line costs, express surcharge
// per selected line, online discount once, coupon once, then a clamp at zero. Sums
// saturate at math.MaxInt instead of wrapping.
func Compute(rules Rules, q Quote) Summary {
	summary := Summary{
		ServiceMode: enums.ServiceModeNormal,
		PickupDrop:  q.Flags.PickupDrop,
		Lines:       make([]LineCost, 0, len(q.Lines)),
	}
	if q.Flags.Express {
		summary.ServiceMode = enums.ServiceModeExpress
	}
	summary.ServiceLabel = summary.ServiceMode.Label()
	if q.Flags.PickupDrop {
		summary.ServiceLabel += PickupDropSuffix
	}

	for _, line := range q.Lines {
		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}
		cost := LineCost{LineID: line.ID, Quantity: qty}
		if line.Selection.IsValid() {
			cost.Selected = true
			cost.UnitPrice = UnitPrice(rules, line)
			cost.Cost = mulCapped(cost.UnitPrice, qty)
			summary.SelectedLineCount++
			summary.UnitCount = addCapped(summary.UnitCount, qty)
			summary.Subtotal = addCapped(summary.Subtotal, cost.Cost)
		}
		summary.Lines = append(summary.Lines, cost)
	}

	total := summary.Subtotal
	if q.Flags.Express {
		summary.ExpressSurcharge = mulCapped(rules.ExpressSurcharge, summary.SelectedLineCount)
		total = addCapped(total, summary.ExpressSurcharge)
	}
	if q.Payment.IsOnline() && total > 0 && rules.OnlineDiscount > 0 {
		summary.OnlineDiscount = rules.OnlineDiscount
		total -= summary.OnlineDiscount
	}
	if total < 0 {
		total = 0
	}
	summary.BeforeCoupon = total
	if q.Discount != nil {
		summary.CouponDiscount = q.Discount.Amount
		total -= q.Discount.Amount
	}
	if total < 0 {
		total = 0
	}
	summary.Total = total
	return summary
}

// addCapped adds non-negative amounts, stopping at math.MaxInt.
func addCapped(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// mulCapped multiplies non-negative amounts, stopping at math.MaxInt.
func mulCapped(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}
